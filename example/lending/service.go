package lending

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	defaultMaxBooksPerReader = 5

	logMsgBookLent      = "book lent"
	logMsgLendingDenied = "lending denied"
	logAttrReason       = "reason"
)

// LendingService applies the lending rules on top of a BookCatalog.
type LendingService struct {
	catalog           BookCatalog
	now               func() time.Time
	maxBooksPerReader int
	logger            Logger
}

// ServiceOption configures a LendingService.
type ServiceOption func(*LendingService) error

// WithClock replaces time.Now as the source of lending times.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *LendingService) error {
		s.now = now
		return nil
	}
}

// WithMaxBooksPerReader sets how many books a reader may have lent at the same time, 5 by default.
func WithMaxBooksPerReader(maxBooks int) ServiceOption {
	return func(s *LendingService) error {
		if maxBooks < 1 {
			return ErrInvalidMaxBooks
		}

		s.maxBooksPerReader = maxBooks

		return nil
	}
}

// WithServiceLogger sets the logger of the service.
func WithServiceLogger(logger Logger) ServiceOption {
	return func(s *LendingService) error {
		s.logger = logger
		return nil
	}
}

// NewLendingService creates a LendingService.
func NewLendingService(catalog BookCatalog, options ...ServiceOption) (*LendingService, error) {
	if catalog == nil {
		return nil, ErrNilBookCatalog
	}

	s := &LendingService{
		catalog:           catalog,
		now:               time.Now,
		maxBooksPerReader: defaultMaxBooksPerReader,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Lend lends bookID to readerID. It fails with ErrBookAlreadyLent if the book has an open lending
// and with ErrReaderLimitReached if the reader already holds the maximum number of books.
func (s *LendingService) Lend(ctx context.Context, bookID, readerID uuid.UUID, metadata Metadata) (LentBook, error) {
	lent, err := s.catalog.IsLent(ctx, bookID)
	if err != nil {
		return LentBook{}, err
	}

	if lent {
		s.logDenied(bookID, readerID, ErrBookAlreadyLent)
		return LentBook{}, fmt.Errorf("%w: %s", ErrBookAlreadyLent, bookID)
	}

	lentBooks, err := s.catalog.LentBooksOf(ctx, readerID)
	if err != nil {
		return LentBook{}, err
	}

	if len(lentBooks) >= s.maxBooksPerReader {
		s.logDenied(bookID, readerID, ErrReaderLimitReached)
		return LentBook{}, fmt.Errorf("%w: %d of %d", ErrReaderLimitReached, len(lentBooks), s.maxBooksPerReader)
	}

	lending := LentBook{
		BookID:   bookID,
		ReaderID: readerID,
		LentAt:   s.now(),
		Metadata: metadata,
	}

	if err := s.catalog.RecordLending(ctx, lending); err != nil {
		return LentBook{}, err
	}

	if s.logger != nil {
		s.logger.Info(logMsgBookLent, logAttrBookID, bookID.String(), logAttrReaderID, readerID.String())
	}

	return lending, nil
}

func (s *LendingService) logDenied(bookID, readerID uuid.UUID, reason error) {
	if s.logger != nil {
		s.logger.Info(
			logMsgLendingDenied,
			logAttrBookID, bookID.String(),
			logAttrReaderID, readerID.String(),
			logAttrReason, reason.Error(),
		)
	}
}
