package substitute

// Option defines a functional option for configuring a Substitute.
type Option func(*Substitute) error

// WithName sets the human-readable name used in log lines and verification messages,
// typically the name of the substituted interface.
func WithName(name string) Option {
	return func(s *Substitute) error {
		if name == "" {
			return ErrEmptySubstituteName
		}

		s.name = name

		return nil
	}
}

// WithLogger sets the logger for the Substitute.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: every recorded call, resolution and configured response
// Info level: verification outcomes
// Error level: usage errors.
func WithLogger(logger Logger) Option {
	return func(s *Substitute) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Substitute.
// It receives the log messages of context-taking operations with their context, enabling
// trace correlation when tracing is enabled.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(s *Substitute) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Substitute.
// It receives counters for recorded calls, stub resolutions, configured responses, verification
// failures and usage errors, plus verification durations.
func WithMetrics(collector MetricsCollector) Option {
	return func(s *Substitute) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Substitute.
// Every verification is wrapped in a span.
func WithTracing(collector TracingCollector) Option {
	return func(s *Substitute) error {
		s.tracingCollector = collector
		return nil
	}
}
