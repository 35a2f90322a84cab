package lending_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/substitute-go/example/lending"
	"github.com/AntonStoeckl/substitute-go/example/lending/adapters"
	"github.com/AntonStoeckl/substitute-go/substitute"
)

const (
	memberIsLent        = "IsLent"
	memberLentBooksOf   = "LentBooksOf"
	memberRecordLending = "RecordLending"
	memberQuery         = "Query"
	memberExec          = "Exec"
	memberNext          = "Next"
	memberScan          = "Scan"
	memberClose         = "Close"
	memberRowsAffected  = "RowsAffected"
)

type bookCatalogSubstitute struct {
	sub *substitute.Substitute
}

func (c bookCatalogSubstitute) IsLent(ctx context.Context, bookID uuid.UUID) (bool, error) {
	results := c.sub.Invoke(memberIsLent, ctx, bookID)
	return substitute.ResultAt[bool](results, 0), substitute.ResultAt[error](results, 1)
}

func (c bookCatalogSubstitute) LentBooksOf(ctx context.Context, readerID uuid.UUID) ([]lending.LentBook, error) {
	results := c.sub.Invoke(memberLentBooksOf, ctx, readerID)
	return substitute.ResultAt[[]lending.LentBook](results, 0), substitute.ResultAt[error](results, 1)
}

func (c bookCatalogSubstitute) RecordLending(ctx context.Context, lentBook lending.LentBook) error {
	return substitute.ResultAt[error](c.sub.Invoke(memberRecordLending, ctx, lentBook), 0)
}

var _ lending.BookCatalog = bookCatalogSubstitute{}

type dbAdapterSubstitute struct {
	sub *substitute.Substitute
}

func (a dbAdapterSubstitute) Query(ctx context.Context, query string) (adapters.DBRows, error) {
	results := a.sub.Invoke(memberQuery, ctx, query)
	return substitute.ResultAt[adapters.DBRows](results, 0), substitute.ResultAt[error](results, 1)
}

func (a dbAdapterSubstitute) Exec(ctx context.Context, query string) (adapters.DBResult, error) {
	results := a.sub.Invoke(memberExec, ctx, query)
	return substitute.ResultAt[adapters.DBResult](results, 0), substitute.ResultAt[error](results, 1)
}

var _ adapters.DBAdapter = dbAdapterSubstitute{}

type dbRowsSubstitute struct {
	sub *substitute.Substitute
}

func (r dbRowsSubstitute) Next() bool {
	return substitute.ResultAt[bool](r.sub.Invoke(memberNext), 0)
}

func (r dbRowsSubstitute) Scan(dest ...any) error {
	return substitute.ResultAt[error](r.sub.Invoke(memberScan, dest...), 0)
}

func (r dbRowsSubstitute) Close() error {
	return substitute.ResultAt[error](r.sub.Invoke(memberClose), 0)
}

var _ adapters.DBRows = dbRowsSubstitute{}

type dbResultSubstitute struct {
	sub *substitute.Substitute
}

func (r dbResultSubstitute) RowsAffected() (int64, error) {
	results := r.sub.Invoke(memberRowsAffected)
	return substitute.ResultAt[int64](results, 0), substitute.ResultAt[error](results, 1)
}

var _ adapters.DBResult = dbResultSubstitute{}

func givenSubstitute(t *testing.T, name string) *substitute.Substitute {
	t.Helper()

	sub, err := substitute.New(substitute.WithName(name))
	require.NoError(t, err)

	return sub
}
