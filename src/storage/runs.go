package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
)

// CreateRun persists the record of a completed chat request.
func CreateRun(ctx context.Context, db Execer, run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	query := `INSERT INTO runs (run_id, user_key, session_id, model, metrics, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, run.RunID, run.UserKey, run.SessionID, run.Model, run.Metrics, run.CreatedAt)
	return err
}

// GetRunByID retrieves a run record. Returns nil when not found.
func GetRunByID(ctx context.Context, db sqlscan.Querier, runID string) (*Run, error) {
	query := `SELECT run_id, user_key, session_id, model, metrics, created_at FROM runs WHERE run_id = ?`
	var r Run
	err := sqlscan.Get(ctx, db, &r, query, runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

// CreateFeedback records a user rating for a run.
func CreateFeedback(ctx context.Context, db Execer, fb *Feedback) error {
	if fb.ID == "" {
		fb.ID = uuid.New().String()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now()
	}

	query := `INSERT INTO feedback (id, run_id, score, comment, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, fb.ID, fb.RunID, fb.Score, fb.Comment, fb.CreatedAt)
	return err
}
