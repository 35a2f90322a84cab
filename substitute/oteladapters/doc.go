// Package oteladapters plugs OpenTelemetry into the observability options of a Substitute.
//
//	sub, err := substitute.New(
//		substitute.WithName("BookCatalog"),
//		substitute.WithContextualLogger(oteladapters.NewSlogBridgeLogger("lending-tests")),
//		substitute.WithMetrics(oteladapters.NewMetricsCollector(meterProvider.Meter("lending-tests"))),
//		substitute.WithTracing(oteladapters.NewTracingCollector(tracerProvider.Tracer("lending-tests"))),
//	)
//
// It lives in its own module so that the substitute package stays free of OpenTelemetry dependencies.
package oteladapters
