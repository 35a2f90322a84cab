package substitute

import (
	"context"
	"errors"
	"strconv"
	"time"
)

const (
	logMsgCallRecorded         = "call recorded"
	logMsgCallResolved         = "call resolved"
	logMsgResponseConfigured   = "response configured"
	logMsgVerificationPassed   = "verification passed"
	logMsgVerificationFailed   = "verification failed"
	logMsgUsageError           = "substitute usage error"
	logAttrSubstitute          = "substitute"
	logAttrSubstituteID        = "substitute_id"
	logAttrMember              = "member"
	logAttrSequenceNumber      = "sequence_number"
	logAttrResponse            = "response"
	logAttrConfigured          = "configured"
	logAttrSpec                = "spec"
	logAttrExpected            = "expected"
	logAttrActual              = "actual"
	logAttrDurationMS          = "duration_ms"
	logAttrError               = "error"
	metricCallsRecorded        = "substitute_calls_recorded_total"
	metricStubResolutions      = "substitute_stub_resolutions_total"
	metricResponsesConfigured  = "substitute_responses_configured_total"
	metricVerificationDuration = "substitute_verification_duration_seconds"
	metricVerificationFailures = "substitute_verification_failures_total"
	metricUsageErrors          = "substitute_usage_errors_total"
	labelSubstitute            = "substitute"
	labelMember                = "member"
	labelStatus                = "status"
	labelResponse              = "response"
	labelErrorType             = "error_type"
	spanNameVerify             = "substitute.verify"
	spanAttrSubstituteID       = "substitute.id"
	spanAttrMember             = "substitute.member"
	spanAttrSpec               = "substitute.spec"
	spanAttrExpected           = "substitute.expected"
	spanAttrActual             = "substitute.actual"
	spanAttrErrorType          = "error.type"
	statusSuccess              = "success"
	statusError                = "error"
	statusConfigured           = "configured"
	statusDefault              = "default"
	errorTypeReceivedCalls     = "received_calls"
	errorTypeInvalidQuantity   = "invalid_quantity"
	errorTypeArgMatcherArity   = "arg_matcher_arity"
	errorTypeUnconsumed        = "unconsumed_arg_matchers"
	errorTypeUsage             = "usage"
)

func (s *Substitute) observeCallRecorded(call Call) {
	if s.logger != nil {
		s.logger.Debug(
			logMsgCallRecorded,
			logAttrSubstitute, s.name,
			logAttrSubstituteID, s.id.String(),
			logAttrMember, call.member,
			logAttrSequenceNumber, call.sequenceNumber,
		)
	}

	if s.metricsCollector != nil {
		s.metricsCollector.IncrementCounter(metricCallsRecorded, s.memberLabels(call.member))
	}
}

func (s *Substitute) observeResolution(call Call, configured bool) {
	status := statusDefault
	if configured {
		status = statusConfigured
	}

	if s.logger != nil {
		s.logger.Debug(
			logMsgCallResolved,
			logAttrSubstitute, s.name,
			logAttrMember, call.member,
			logAttrSequenceNumber, call.sequenceNumber,
			logAttrConfigured, configured,
		)
	}

	if s.metricsCollector != nil {
		labels := s.memberLabels(call.member)
		labels[labelStatus] = status
		s.metricsCollector.IncrementCounter(metricStubResolutions, labels)
	}
}

func (s *Substitute) observeConfigured(spec CallSpec, resp response) {
	if s.logger != nil {
		s.logger.Debug(
			logMsgResponseConfigured,
			logAttrSubstitute, s.name,
			logAttrSpec, spec.String(),
			logAttrResponse, resp.kind(),
		)
	}

	if s.metricsCollector != nil {
		labels := s.memberLabels(spec.member)
		labels[labelResponse] = resp.kind()
		s.metricsCollector.IncrementCounter(metricResponsesConfigured, labels)
	}
}

func (s *Substitute) observeUsageError(err error) {
	s.observeUsageErrorContext(context.Background(), err)
}

func (s *Substitute) observeUsageErrorContext(ctx context.Context, err error) {
	if s.logger != nil {
		s.logger.Error(logMsgUsageError, logAttrSubstitute, s.name, logAttrError, err.Error())
	}

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, logMsgUsageError, logAttrSubstitute, s.name, logAttrError, err.Error())
	}

	if s.metricsCollector != nil {
		labels := map[string]string{
			labelSubstitute: s.name,
			labelErrorType:  usageErrorType(err),
		}
		s.incrementCounterContext(ctx, metricUsageErrors, labels)
	}
}

func (s *Substitute) memberLabels(member string) map[string]string {
	return map[string]string{
		labelSubstitute: s.name,
		labelMember:     member,
	}
}

// incrementCounterContext uses the context-aware method if the collector supports it.
func (s *Substitute) incrementCounterContext(ctx context.Context, metric string, labels map[string]string) {
	if contextualCollector, ok := s.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metric, labels)
}

// recordDurationContext uses the context-aware method if the collector supports it.
func (s *Substitute) recordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if contextualCollector, ok := s.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metric, duration, labels)
}

func usageErrorType(err error) string {
	switch {
	case errors.Is(err, ErrArgMatcherArity):
		return errorTypeArgMatcherArity
	case errors.Is(err, ErrUnconsumedArgMatchers):
		return errorTypeUnconsumed
	case errors.Is(err, ErrInvalidQuantity):
		return errorTypeInvalidQuantity
	default:
		return errorTypeUsage
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds.
func toMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// === Verification Observer ===

// verificationObserver encapsulates logging, metrics and the tracing span of one verification.
type verificationObserver struct {
	s        *Substitute
	ctx      context.Context
	span     SpanContext
	spec     CallSpec
	quantity Quantity
	start    time.Time
}

func (s *Substitute) startVerification(ctx context.Context, spec CallSpec, quantity Quantity) *verificationObserver {
	observer := &verificationObserver{
		s:        s,
		ctx:      ctx,
		spec:     spec,
		quantity: quantity,
		start:    time.Now(),
	}

	if s.tracingCollector != nil {
		observer.ctx, observer.span = s.tracingCollector.StartSpan(ctx, spanNameVerify, map[string]string{
			spanAttrSubstituteID: s.id.String(),
			spanAttrMember:       spec.member,
			spanAttrSpec:         spec.String(),
			spanAttrExpected:     quantity.String(),
		})
	}

	return observer
}

func (o *verificationObserver) finishSuccess(actual int) {
	duration := time.Since(o.start)

	if o.s.logger != nil {
		o.s.logger.Info(
			logMsgVerificationPassed,
			logAttrSubstitute, o.s.name,
			logAttrSpec, o.spec.String(),
			logAttrExpected, o.quantity.String(),
			logAttrActual, actual,
			logAttrDurationMS, toMilliseconds(duration),
		)
	}

	if o.s.contextualLogger != nil {
		o.s.contextualLogger.InfoContext(
			o.ctx,
			logMsgVerificationPassed,
			logAttrSubstitute, o.s.name,
			logAttrSpec, o.spec.String(),
			logAttrActual, actual,
		)
	}

	o.recordDuration(statusSuccess, duration)
	o.finishSpan(statusSuccess, map[string]string{spanAttrActual: strconv.Itoa(actual)})
}

func (o *verificationObserver) finishFailure(err *ReceivedCallsError) {
	duration := time.Since(o.start)

	if o.s.logger != nil {
		o.s.logger.Info(
			logMsgVerificationFailed,
			logAttrSubstitute, o.s.name,
			logAttrSpec, o.spec.String(),
			logAttrExpected, o.quantity.String(),
			logAttrActual, err.Actual,
			logAttrDurationMS, toMilliseconds(duration),
		)
	}

	if o.s.contextualLogger != nil {
		o.s.contextualLogger.InfoContext(
			o.ctx,
			logMsgVerificationFailed,
			logAttrSubstitute, o.s.name,
			logAttrSpec, o.spec.String(),
			logAttrActual, err.Actual,
		)
	}

	o.recordDuration(statusError, duration)

	if o.s.metricsCollector != nil {
		o.s.incrementCounterContext(o.ctx, metricVerificationFailures, o.s.memberLabels(o.spec.member))
	}

	o.finishSpan(statusError, map[string]string{
		spanAttrActual:    strconv.Itoa(err.Actual),
		spanAttrErrorType: errorTypeReceivedCalls,
	})
}

func (o *verificationObserver) finishUsageError(err error) {
	o.s.observeUsageErrorContext(o.ctx, err)
	o.recordDuration(statusError, time.Since(o.start))
	o.finishSpan(statusError, map[string]string{spanAttrErrorType: usageErrorType(err)})
}

func (o *verificationObserver) recordDuration(status string, duration time.Duration) {
	if o.s.metricsCollector == nil {
		return
	}

	labels := o.s.memberLabels(o.spec.member)
	labels[labelStatus] = status
	o.s.recordDurationContext(o.ctx, metricVerificationDuration, duration, labels)
}

func (o *verificationObserver) finishSpan(status string, attrs map[string]string) {
	if o.span == nil {
		return
	}

	o.span.SetStatus(status)
	o.s.tracingCollector.FinishSpan(o.span, status, attrs)
}
