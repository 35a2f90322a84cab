package testdoubles

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"sync"
)

// LogHandlerSpy is a slog.Handler that captures log records for testing.
type LogHandlerSpy struct {
	mu          sync.Mutex
	records     []slog.Record
	logToStdout bool
}

// NewLogHandlerSpy creates a LogHandlerSpy.
// With logToStdout every record is also written as JSON to stdout, which helps when debugging a test.
func NewLogHandlerSpy(logToStdout bool) *LogHandlerSpy {
	return &LogHandlerSpy{logToStdout: logToStdout}
}

// Handle implements slog.Handler.
func (s *LogHandlerSpy) Handle(ctx context.Context, record slog.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record.Clone())

	if s.logToStdout {
		_ = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}).Handle(ctx, record)
	}

	return nil
}

// Enabled implements slog.Handler; every level is enabled.
func (s *LogHandlerSpy) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler. Attributes added via Logger.With are not tracked.
func (s *LogHandlerSpy) WithAttrs(_ []slog.Attr) slog.Handler {
	return s
}

// WithGroup implements slog.Handler. Groups are not tracked.
func (s *LogHandlerSpy) WithGroup(_ string) slog.Handler {
	return s
}

// GetRecords returns a copy of all captured records.
func (s *LogHandlerSpy) GetRecords() []slog.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.records)
}

// GetRecordCount returns the number of captured records.
func (s *LogHandlerSpy) GetRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// CountRecords returns how many records with level and message were captured.
func (s *LogHandlerSpy) CountRecords(level slog.Level, message string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, record := range s.records {
		if record.Level == level && record.Message == message {
			count++
		}
	}

	return count
}

// Reset clears all captured records.
func (s *LogHandlerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

// HasDebugLogWithMessage starts a fluent check on the first debug record with message.
func (s *LogHandlerSpy) HasDebugLogWithMessage(message string) *LogRecordMatcher {
	return s.findRecord(slog.LevelDebug, message)
}

// HasInfoLogWithMessage starts a fluent check on the first info record with message.
func (s *LogHandlerSpy) HasInfoLogWithMessage(message string) *LogRecordMatcher {
	return s.findRecord(slog.LevelInfo, message)
}

// HasErrorLogWithMessage starts a fluent check on the first error record with message.
func (s *LogHandlerSpy) HasErrorLogWithMessage(message string) *LogRecordMatcher {
	return s.findRecord(slog.LevelError, message)
}

func (s *LogHandlerSpy) findRecord(level slog.Level, message string) *LogRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Level == level && record.Message == message {
			attrs := make(map[string]slog.Value)
			record.Attrs(func(attr slog.Attr) bool {
				attrs[attr.Key] = attr.Value.Resolve()
				return true
			})

			return &LogRecordMatcher{found: true, attrs: attrs}
		}
	}

	return &LogRecordMatcher{}
}

// LogRecordMatcher checks the attributes of one captured record in a fluent chain.
type LogRecordMatcher struct {
	found bool
	attrs map[string]slog.Value
}

// WithAttr requires an attribute key whose value renders as value.
func (m *LogRecordMatcher) WithAttr(key, value string) *LogRecordMatcher {
	if !m.found {
		return m
	}

	if attr, ok := m.attrs[key]; !ok || attr.String() != value {
		m.found = false
	}

	return m
}

// WithDurationMS requires a non-negative duration_ms attribute.
func (m *LogRecordMatcher) WithDurationMS() *LogRecordMatcher {
	if !m.found {
		return m
	}

	attr, ok := m.attrs["duration_ms"]

	switch {
	case !ok:
		m.found = false
	case attr.Kind() == slog.KindFloat64:
		m.found = attr.Float64() >= 0
	case attr.Kind() == slog.KindInt64:
		m.found = attr.Int64() >= 0
	default:
		m.found = false
	}

	return m
}

// Assert reports whether the record exists and satisfied every check of the chain.
func (m *LogRecordMatcher) Assert() bool {
	return m.found
}
