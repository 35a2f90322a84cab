package lending

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/substitute-go/example/lending/adapters"
)

const (
	dialectPostgres  = "postgres"
	defaultTableName = "lendings"
	colBookID        = "book_id"
	colReaderID      = "reader_id"
	colLentAt        = "lent_at"
	colMetadata      = "metadata"
	colReturnedAt    = "returned_at"
	castJSONB        = "?::jsonb"

	logMsgLendingRecorded = "lending recorded"
	logMsgLendingRejected = "lending not recorded, book already has an open lending"
	logMsgCloseRowsFailed = "failed to close catalog rows"
	logAttrBookID         = "book_id"
	logAttrReaderID       = "reader_id"
	logAttrRowsAffected   = "rows_affected"
	logAttrError          = "error"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PostgresCatalog is a BookCatalog backed by a lendings table:
//
//	CREATE TABLE lendings (
//		book_id     uuid        NOT NULL,
//		reader_id   uuid        NOT NULL,
//		lent_at     timestamptz NOT NULL,
//		metadata    jsonb       NOT NULL DEFAULT '{}',
//		returned_at timestamptz
//	);
//	CREATE UNIQUE INDEX lendings_open_book ON lendings (book_id) WHERE returned_at IS NULL;
type PostgresCatalog struct {
	db     adapters.DBAdapter
	table  string
	logger Logger
}

// CatalogOption configures a PostgresCatalog.
type CatalogOption func(*PostgresCatalog) error

// WithTableName replaces the default table name "lendings".
func WithTableName(table string) CatalogOption {
	return func(c *PostgresCatalog) error {
		if table == "" {
			return ErrEmptyTableName
		}

		c.table = table

		return nil
	}
}

// WithCatalogLogger sets the logger of the catalog.
func WithCatalogLogger(logger Logger) CatalogOption {
	return func(c *PostgresCatalog) error {
		c.logger = logger
		return nil
	}
}

// NewPostgresCatalog creates a PostgresCatalog on top of db.
func NewPostgresCatalog(db adapters.DBAdapter, options ...CatalogOption) (*PostgresCatalog, error) {
	c := &PostgresCatalog{db: db, table: defaultTableName}

	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// IsLent reports whether bookID has an open lending.
func (c *PostgresCatalog) IsLent(ctx context.Context, bookID uuid.UUID) (bool, error) {
	query, _, err := goqu.Dialect(dialectPostgres).
		From(c.table).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C(colBookID).Eq(bookID.String()), goqu.C(colReturnedAt).IsNull()).
		ToSQL()
	if err != nil {
		return false, errors.Join(ErrBuildingQueryFailed, err)
	}

	var count int64

	err = c.readRows(ctx, query, func(rows adapters.DBRows) error {
		if err := rows.Scan(&count); err != nil {
			return errors.Join(ErrScanningRowFailed, err)
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// LentBooksOf returns the open lendings of readerID, oldest first.
func (c *PostgresCatalog) LentBooksOf(ctx context.Context, readerID uuid.UUID) ([]LentBook, error) {
	query, _, err := goqu.Dialect(dialectPostgres).
		From(c.table).
		Select(colBookID, colReaderID, colLentAt, colMetadata).
		Where(goqu.C(colReaderID).Eq(readerID.String()), goqu.C(colReturnedAt).IsNull()).
		Order(goqu.I(colLentAt).Asc()).
		ToSQL()
	if err != nil {
		return nil, errors.Join(ErrBuildingQueryFailed, err)
	}

	var lentBooks []LentBook

	err = c.readRows(ctx, query, func(rows adapters.DBRows) error {
		lentBook, err := scanLentBook(rows)
		if err != nil {
			return err
		}

		lentBooks = append(lentBooks, lentBook)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return lentBooks, nil
}

func scanLentBook(rows adapters.DBRows) (LentBook, error) {
	var (
		lentBook     LentBook
		bookID       string
		readerID     string
		metadataJSON []byte
	)

	if err := rows.Scan(&bookID, &readerID, &lentBook.LentAt, &metadataJSON); err != nil {
		return LentBook{}, errors.Join(ErrScanningRowFailed, err)
	}

	var err error

	if lentBook.BookID, err = uuid.Parse(bookID); err != nil {
		return LentBook{}, errors.Join(ErrScanningRowFailed, err)
	}

	if lentBook.ReaderID, err = uuid.Parse(readerID); err != nil {
		return LentBook{}, errors.Join(ErrScanningRowFailed, err)
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &lentBook.Metadata); err != nil {
			return LentBook{}, errors.Join(ErrInvalidMetadata, err)
		}
	}

	return lentBook, nil
}

// RecordLending inserts an open lending. It fails with ErrLendingNotRecorded unless exactly one row
// was inserted, which is the case when the book already has an open lending.
func (c *PostgresCatalog) RecordLending(ctx context.Context, lending LentBook) error {
	metadataJSON, err := json.MarshalToString(lending.Metadata)
	if err != nil {
		return errors.Join(ErrInvalidMetadata, err)
	}

	query, _, err := goqu.Dialect(dialectPostgres).
		Insert(c.table).
		Rows(goqu.Record{
			colBookID:   lending.BookID.String(),
			colReaderID: lending.ReaderID.String(),
			colLentAt:   lending.LentAt.UTC(),
			colMetadata: goqu.L(castJSONB, metadataJSON),
		}).
		OnConflict(goqu.DoNothing()).
		ToSQL()
	if err != nil {
		return errors.Join(ErrBuildingQueryFailed, err)
	}

	result, err := c.db.Exec(ctx, query)
	if err != nil {
		return errors.Join(ErrRecordingFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrGettingRowsAffected, err)
	}

	if rowsAffected != 1 {
		if c.logger != nil {
			c.logger.Warn(logMsgLendingRejected, logAttrBookID, lending.BookID.String(), logAttrRowsAffected, rowsAffected)
		}

		return fmt.Errorf("%w: %d rows affected", ErrLendingNotRecorded, rowsAffected)
	}

	if c.logger != nil {
		c.logger.Debug(
			logMsgLendingRecorded,
			logAttrBookID, lending.BookID.String(),
			logAttrReaderID, lending.ReaderID.String(),
		)
	}

	return nil
}

// readRows runs query and hands every row to scan. The adapters report an error that ended the
// iteration from Close, so a failing Close fails the read.
func (c *PostgresCatalog) readRows(ctx context.Context, query string, scan func(adapters.DBRows) error) error {
	rows, err := c.db.Query(ctx, query)
	if err != nil {
		return errors.Join(ErrQueryingFailed, err)
	}

	for rows.Next() {
		if err := scan(rows); err != nil {
			c.closeRows(rows)
			return err
		}
	}

	if err := rows.Close(); err != nil {
		return errors.Join(ErrQueryingFailed, err)
	}

	return nil
}

func (c *PostgresCatalog) closeRows(rows adapters.DBRows) {
	if err := rows.Close(); err != nil && c.logger != nil {
		c.logger.Warn(logMsgCloseRowsFailed, logAttrError, err.Error())
	}
}

var _ BookCatalog = (*PostgresCatalog)(nil)
