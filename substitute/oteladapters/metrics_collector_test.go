package oteladapters_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/substitute-go/substitute"
	"github.com/AntonStoeckl/substitute-go/substitute/oteladapters"
)

func givenMetricsCollector() (*oteladapters.MetricsCollector, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return oteladapters.NewMetricsCollector(provider.Meter("test")), reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	return resourceMetrics
}

func findMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Metrics {
	t.Helper()

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	require.Failf(t, "metric not found", "metric %q was not collected", name)

	return metricdata.Metrics{}
}

func Test_MetricsCollector_RecordDuration_RecordsSecondsInAHistogram(t *testing.T) {
	// setup
	collector, reader := givenMetricsCollector()

	// act
	collector.RecordDuration("substitute_verification_duration_seconds", 150*time.Millisecond, map[string]string{
		"member": "Number",
		"status": "success",
	})

	// assert
	m := findMetric(t, collect(t, reader), "substitute_verification_duration_seconds")
	assert.Equal(t, "s", m.Unit)
	assert.Equal(t, "Duration of received-call verifications", m.Description)

	histogram, ok := m.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(1), histogram.DataPoints[0].Count)
	assert.InDelta(t, 0.15, histogram.DataPoints[0].Sum, 0.001)

	expected := attribute.NewSet(attribute.String("member", "Number"), attribute.String("status", "success"))
	assert.True(t, histogram.DataPoints[0].Attributes.Equals(&expected))
}

func Test_MetricsCollector_IncrementCounter_AddsOnePerCall(t *testing.T) {
	// setup
	collector, reader := givenMetricsCollector()
	labels := map[string]string{"member": "Number"}

	// act
	collector.IncrementCounter("substitute_calls_recorded_total", labels)
	collector.IncrementCounterContext(context.Background(), "substitute_calls_recorded_total", labels)
	collector.IncrementCounter("custom_total", nil)

	// assert
	resourceMetrics := collect(t, reader)

	sum, ok := findMetric(t, resourceMetrics, "substitute_calls_recorded_total").Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)
	assert.True(t, sum.IsMonotonic)

	custom := findMetric(t, resourceMetrics, "custom_total")
	assert.Equal(t, "Substitute metric custom_total", custom.Description)
}

func Test_MetricsCollector_RecordValue_RecordsTheLastValueInAGauge(t *testing.T) {
	// setup
	collector, reader := givenMetricsCollector()

	// act
	collector.RecordValue("pending_matchers", 3, nil)
	collector.RecordValueContext(context.Background(), "pending_matchers", 1, nil)

	// assert
	gauge, ok := findMetric(t, collect(t, reader), "pending_matchers").Data.(metricdata.Gauge[float64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.InDelta(t, 1.0, gauge.DataPoints[0].Value, 0.0001)
}

func Test_MetricsCollector_When_UsedConcurrently_CountsEveryIncrement(t *testing.T) {
	// setup
	collector, reader := givenMetricsCollector()

	// act
	var wg sync.WaitGroup
	for n := 0; n < 20; n++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				collector.IncrementCounter("substitute_calls_recorded_total", map[string]string{"member": "Bar"})
			}
		}()
	}

	wg.Wait()

	// assert
	sum, ok := findMetric(t, collect(t, reader), "substitute_calls_recorded_total").Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1000), sum.DataPoints[0].Value)
}

func Test_MetricsCollector_WithSubstitute(t *testing.T) {
	// setup
	collector, reader := givenMetricsCollector()
	sub, err := substitute.New(substitute.WithName("Clock"), substitute.WithMetrics(collector))
	require.NoError(t, err)

	// act
	sub.When("Now").Returns(time.Unix(0, 0))
	sub.Invoke("Now")
	sub.Invoke("Now")
	require.NoError(t, sub.Received(substitute.Exactly(2), "Now"))

	// assert
	resourceMetrics := collect(t, reader)

	recorded, ok := findMetric(t, resourceMetrics, "substitute_calls_recorded_total").Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, recorded.DataPoints, 1)
	assert.Equal(t, int64(2), recorded.DataPoints[0].Value)

	durations, ok := findMetric(t, resourceMetrics, "substitute_verification_duration_seconds").Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, durations.DataPoints, 1)
	assert.Equal(t, uint64(1), durations.DataPoints[0].Count)
}
