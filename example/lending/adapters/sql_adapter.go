package adapters

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// SQLAdapter implements DBAdapter for sql.DB.
type SQLAdapter struct {
	db *sql.DB
}

func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

func (a *SQLAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	return queryStd(ctx, a.db, query)
}

func (a *SQLAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	return a.db.ExecContext(ctx, query)
}

// SQLXAdapter implements DBAdapter for sqlx.DB.
type SQLXAdapter struct {
	db *sqlx.DB
}

func NewSQLXAdapter(db *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{db: db}
}

func (a *SQLXAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	return queryStd(ctx, a.db, query)
}

func (a *SQLXAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	return a.db.ExecContext(ctx, query)
}

type stdQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// queryStd serves both database/sql based adapters; sql.Result already satisfies DBResult.
func queryStd(ctx context.Context, db stdQuerier, query string) (DBRows, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return stdRows{rows: rows}, nil
}

type stdRows struct {
	rows *sql.Rows
}

func (r stdRows) Next() bool {
	return r.rows.Next()
}

func (r stdRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

func (r stdRows) Close() error {
	if err := r.rows.Err(); err != nil {
		_ = r.rows.Close()
		return err
	}

	return r.rows.Close()
}
