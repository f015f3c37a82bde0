package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// GetPreference retrieves a single preference value for a user.
// Returns nil when the preference does not exist.
func GetPreference(ctx context.Context, db sqlscan.Querier, userKey, key string) (*Preference, error) {
	query := `SELECT user_key, key, value, updated_at FROM preferences WHERE user_key = ? AND key = ?`
	var p Preference
	err := sqlscan.Get(ctx, db, &p, query, userKey, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// ListPreferences retrieves all preferences for a user ordered by key.
func ListPreferences(ctx context.Context, db sqlscan.Querier, userKey string) ([]Preference, error) {
	query := `SELECT user_key, key, value, updated_at FROM preferences WHERE user_key = ? ORDER BY key`
	var prefs []Preference
	if err := sqlscan.Select(ctx, db, &prefs, query, userKey); err != nil {
		return nil, err
	}
	return prefs, nil
}

// SetPreference inserts or replaces a preference value.
func SetPreference(ctx context.Context, db Execer, userKey, key, value string) error {
	query := `INSERT INTO preferences (user_key, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (user_key, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	_, err := db.ExecContext(ctx, query, userKey, key, value, time.Now())
	return err
}

// DeletePreference removes a preference. Deleting a missing key is not an error.
func DeletePreference(ctx context.Context, db Execer, userKey, key string) error {
	query := `DELETE FROM preferences WHERE user_key = ? AND key = ?`
	_, err := db.ExecContext(ctx, query, userKey, key)
	return err
}
