package storage

import (
	"context"
	"database/sql"
)

// Execer is the write half of a database handle. Store functions take it
// instead of *sql.DB so they run unchanged inside a transaction.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
