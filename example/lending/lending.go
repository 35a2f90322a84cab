package lending

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrBookAlreadyLent     = errors.New("book is already lent")
	ErrReaderLimitReached  = errors.New("reader has reached the maximum number of lent books")
	ErrLendingNotRecorded  = errors.New("lending was not recorded")
	ErrInvalidMaxBooks     = errors.New("max books per reader must be at least 1")
	ErrNilBookCatalog      = errors.New("nil book catalog supplied")
	ErrBuildingQueryFailed = errors.New("building query failed")
	ErrQueryingFailed      = errors.New("querying the catalog failed")
	ErrScanningRowFailed   = errors.New("scanning a catalog row failed")
	ErrRecordingFailed     = errors.New("recording the lending failed")
	ErrInvalidMetadata     = errors.New("invalid lending metadata")
	ErrEmptyTableName      = errors.New("empty table name supplied")
	ErrGettingRowsAffected = errors.New("getting rows affected failed")
)

// LentBook is one open lending.
type LentBook struct {
	BookID   uuid.UUID
	ReaderID uuid.UUID
	LentAt   time.Time
	Metadata Metadata
}

// Metadata is stored as JSON alongside a lending.
type Metadata struct {
	Branch string `json:"branch,omitempty"`
	Note   string `json:"note,omitempty"`
}

// BookCatalog knows which books are lent to whom.
type BookCatalog interface {
	IsLent(ctx context.Context, bookID uuid.UUID) (bool, error)
	LentBooksOf(ctx context.Context, readerID uuid.UUID) ([]LentBook, error)
	RecordLending(ctx context.Context, lending LentBook) error
}

// Logger is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
