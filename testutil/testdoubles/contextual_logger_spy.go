package testdoubles

import (
	"context"
	"slices"
	"sync"

	"github.com/AntonStoeckl/substitute-go/substitute"
)

// Log levels as recorded by ContextualLoggerSpy.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// ContextualLogRecord is one captured contextual log call.
type ContextualLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// ContextualLoggerSpy captures calls to the substitute.ContextualLogger methods.
type ContextualLoggerSpy struct {
	mu      sync.Mutex
	records []ContextualLogRecord
}

// NewContextualLoggerSpy creates an empty ContextualLoggerSpy.
func NewContextualLoggerSpy() *ContextualLoggerSpy {
	return &ContextualLoggerSpy{}
}

func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelDebug, msg, args)
}

func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelInfo, msg, args)
}

func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelWarn, msg, args)
}

func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelError, msg, args)
}

func (s *ContextualLoggerSpy) record(ctx context.Context, level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, ContextualLogRecord{
		Level:   level,
		Message: msg,
		Args:    slices.Clone(args),
		Context: ctx,
	})
}

// GetRecords returns a copy of all records of level.
func (s *ContextualLoggerSpy) GetRecords(level string) []ContextualLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []ContextualLogRecord
	for _, record := range s.records {
		if record.Level == level {
			records = append(records, record)
		}
	}

	return records
}

// HasLog reports whether a record with level and message was captured.
func (s *ContextualLoggerSpy) HasLog(level, message string) bool {
	return slices.ContainsFunc(s.GetRecords(level), func(record ContextualLogRecord) bool {
		return record.Message == message
	})
}

// GetTotalRecordCount returns the number of records across all levels.
func (s *ContextualLoggerSpy) GetTotalRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Reset clears all records.
func (s *ContextualLoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

var _ substitute.ContextualLogger = (*ContextualLoggerSpy)(nil)
