// Package testdoubles provides spies for the observability interfaces of a Substitute.
//
//   - LogHandlerSpy: a slog.Handler that keeps every record, for use with slog.New
//   - ContextualLoggerSpy: captures context-aware log calls per level
//   - MetricsCollectorSpy: captures counters, durations and values with their labels
//   - TracingCollectorSpy: captures started and finished spans
//
// All spies are safe for concurrent use, so they can observe substitutes that are called from
// many goroutines.
package testdoubles
