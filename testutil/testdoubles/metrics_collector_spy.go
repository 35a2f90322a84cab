package testdoubles

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/AntonStoeckl/substitute-go/substitute"
)

// Metric record kinds captured by MetricsCollectorSpy.
const (
	KindCounter  = "counter"
	KindDuration = "duration"
	KindValue    = "value"
)

// MetricRecord is one captured metrics call.
type MetricRecord struct {
	Kind        string
	Metric      string
	Duration    time.Duration
	Value       float64
	Labels      map[string]string
	WithContext bool
}

// MetricsCollectorSpy captures metrics calls. It implements substitute.ContextualMetricsCollector,
// so the context-aware methods are used where a Substitute has a context at hand.
type MetricsCollectorSpy struct {
	mu      sync.Mutex
	records []MetricRecord
}

// NewMetricsCollectorSpy creates an empty MetricsCollectorSpy.
func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{}
}

func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.record(MetricRecord{Kind: KindDuration, Metric: metric, Duration: duration, Labels: labels})
}

func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.record(MetricRecord{Kind: KindCounter, Metric: metric, Labels: labels})
}

func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.record(MetricRecord{Kind: KindValue, Metric: metric, Value: value, Labels: labels})
}

func (s *MetricsCollectorSpy) RecordDurationContext(
	_ context.Context,
	metric string,
	duration time.Duration,
	labels map[string]string,
) {
	s.record(MetricRecord{Kind: KindDuration, Metric: metric, Duration: duration, Labels: labels, WithContext: true})
}

func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.record(MetricRecord{Kind: KindCounter, Metric: metric, Labels: labels, WithContext: true})
}

func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.record(MetricRecord{Kind: KindValue, Metric: metric, Value: value, Labels: labels, WithContext: true})
}

func (s *MetricsCollectorSpy) record(record MetricRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.Labels = maps.Clone(record.Labels)
	s.records = append(s.records, record)
}

// GetRecords returns a copy of all captured records.
func (s *MetricsCollectorSpy) GetRecords() []MetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.records)
}

// Count returns how many records of kind and metric carry all of the given labels.
func (s *MetricsCollectorSpy) Count(kind, metric string, labels map[string]string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, record := range s.records {
		if record.Kind == kind && record.Metric == metric && hasLabels(record.Labels, labels) {
			count++
		}
	}

	return count
}

// HasCounterRecord reports whether metric was incremented with all of the given labels.
func (s *MetricsCollectorSpy) HasCounterRecord(metric string, labels map[string]string) bool {
	return s.Count(KindCounter, metric, labels) > 0
}

// HasDurationRecord reports whether a duration for metric was recorded with all of the given labels.
func (s *MetricsCollectorSpy) HasDurationRecord(metric string, labels map[string]string) bool {
	return s.Count(KindDuration, metric, labels) > 0
}

// Reset clears all captured records.
func (s *MetricsCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

func hasLabels(actual, expected map[string]string) bool {
	for key, value := range expected {
		if actual[key] != value {
			return false
		}
	}

	return true
}

var _ substitute.ContextualMetricsCollector = (*MetricsCollectorSpy)(nil)
