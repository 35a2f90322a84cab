package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"

	"github.com/AntonStoeckl/substitute-go/substitute"
	"github.com/AntonStoeckl/substitute-go/substitute/oteladapters"
)

// recordingLogger is a log.Logger that keeps emitted records.
type recordingLogger struct {
	embedded.Logger

	mu      sync.Mutex
	records []log.Record
}

func (l *recordingLogger) Emit(_ context.Context, record log.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, record)
}

func (l *recordingLogger) Enabled(context.Context, log.EnabledParameters) bool {
	return true
}

func (l *recordingLogger) Records() []log.Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]log.Record(nil), l.records...)
}

func attributesOf(record log.Record) map[string]log.Value {
	attrs := make(map[string]log.Value)
	record.WalkAttributes(func(kv log.KeyValue) bool {
		attrs[kv.Key] = kv.Value
		return true
	})

	return attrs
}

func Test_OTelLogger_EmitsRecordsWithSeverityBodyAndAttributes(t *testing.T) {
	// setup
	otelLogger := &recordingLogger{}
	logger := oteladapters.NewOTelLogger(otelLogger)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "call recorded", "member", "Number", "sequence_number", uint64(4))
	logger.InfoContext(ctx, "verification passed", "actual", 2, "duration_ms", 0.5)
	logger.WarnContext(ctx, "odd args", "dangling")
	logger.ErrorContext(ctx, "substitute usage error", "configured", true, 42, "not a key")

	// assert
	records := otelLogger.Records()
	require.Len(t, records, 4)

	assert.Equal(t, log.SeverityDebug, records[0].Severity())
	assert.Equal(t, "call recorded", records[0].Body().AsString())
	debugAttrs := attributesOf(records[0])
	assert.Equal(t, "Number", debugAttrs["member"].AsString())
	assert.Equal(t, int64(4), debugAttrs["sequence_number"].AsInt64())

	assert.Equal(t, log.SeverityInfo, records[1].Severity())
	infoAttrs := attributesOf(records[1])
	assert.Equal(t, int64(2), infoAttrs["actual"].AsInt64())
	assert.InDelta(t, 0.5, infoAttrs["duration_ms"].AsFloat64(), 0.0001)

	assert.Equal(t, log.SeverityWarn, records[2].Severity())
	assert.Zero(t, records[2].AttributesLen())

	assert.Equal(t, log.SeverityError, records[3].Severity())
	errorAttrs := attributesOf(records[3])
	assert.Len(t, errorAttrs, 1)
	assert.True(t, errorAttrs["configured"].AsBool())
}

func Test_SlogBridgeLoggerWithHandler_WritesToTheHandler(t *testing.T) {
	// setup
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// act
	logger.DebugContext(context.Background(), "call recorded", "member", "Number")

	// assert
	assert.Contains(t, buf.String(), `"msg":"call recorded"`)
	assert.Contains(t, buf.String(), `"member":"Number"`)
}

func Test_SlogBridgeLogger_WithSubstitute(t *testing.T) {
	// setup
	sub, err := substitute.New(
		substitute.WithName("Clock"),
		substitute.WithContextualLogger(oteladapters.NewSlogBridgeLogger("substitute-test")),
	)
	require.NoError(t, err)

	// act & assert
	sub.Invoke("Now")
	assert.NoError(t, sub.When("Now").VerifyContext(context.Background(), substitute.Once()))
}
