package adapters

import (
	"context"
)

// DBAdapter runs fully rendered SQL statements.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBRows iterates over the rows of a query.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

// DBResult reports the outcome of an Exec.
type DBResult interface {
	RowsAffected() (int64, error)
}

var (
	_ DBAdapter = (*PGXAdapter)(nil)
	_ DBAdapter = (*SQLAdapter)(nil)
	_ DBAdapter = (*SQLXAdapter)(nil)
)
