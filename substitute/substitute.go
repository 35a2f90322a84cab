package substitute

import (
	"context"

	"github.com/google/uuid"
)

const defaultSubstituteName = "Substitute"

// Substitute is the record/configure/verify core behind one proxy instance.
// It owns exactly one CallHistory and one stub configuration store; nothing is shared between
// substitutes, so substitutes never contend with each other.
type Substitute struct {
	id               uuid.UUID
	name             string
	history          *CallHistory
	stubs            *stubStore
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// New creates a Substitute with optional configuration.
func New(options ...Option) (*Substitute, error) {
	s := &Substitute{
		id:      uuid.New(),
		name:    defaultSubstituteName,
		history: &CallHistory{},
		stubs:   newStubStore(),
	}

	for _, option := range options {
		if option == nil {
			return nil, ErrNilOption
		}

		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// ID returns the identity of the substitute.
func (s *Substitute) ID() uuid.UUID {
	return s.id
}

// Name returns the name set with WithName, "Substitute" by default.
func (s *Substitute) Name() string {
	return s.name
}

// Invoke is the proxy boundary: it records a real invocation of member and returns the configured
// response, or nil Results (zero values) if nothing matches. A response configured with Panics
// panics here, in the caller's goroutine.
func (s *Substitute) Invoke(member string, args ...any) Results {
	call := newCall(member, args, nil)
	call.sequenceNumber = s.history.Record(call)
	s.observeCallRecorded(call)

	results, configured := s.stubs.resolve(call)
	s.observeResolution(call, configured)

	return results
}

// Recorder returns a new matcher scope for specification calls made by the current goroutine.
func (s *Substitute) Recorder() *Recorder {
	return &Recorder{sub: s}
}

// When starts a specification of member. Arguments may be values (matched by equality) or
// ArgMatchers. The returned PendingCall configures responses or verifies received calls.
func (s *Substitute) When(member string, args ...any) *PendingCall {
	return s.newPendingCall(newCall(member, args, nil))
}

// ReceivedCalls returns a snapshot of every call recorded so far, in sequence order.
func (s *Substitute) ReceivedCalls() []Call {
	return s.history.Snapshot()
}

// Received verifies that calls matching member and args were received in the expected quantity.
func (s *Substitute) Received(quantity Quantity, member string, args ...any) error {
	return s.When(member, args...).Verify(quantity)
}

// DidNotReceive verifies that no call matching member and args was received.
func (s *Substitute) DidNotReceive(member string, args ...any) error {
	return s.Received(Never(), member, args...)
}

func (s *Substitute) newPendingCall(call Call) *PendingCall {
	return &PendingCall{sub: s, call: call, spec: call.Spec()}
}

func (s *Substitute) configure(spec CallSpec, resp response) {
	s.stubs.configure(spec, resp)
	s.observeConfigured(spec, resp)
}

func (s *Substitute) verify(ctx context.Context, spec CallSpec, quantity Quantity) error {
	observer := s.startVerification(ctx, spec, quantity)

	if err := quantity.Validate(); err != nil {
		observer.finishUsageError(err)
		return err
	}

	var matching, related []Call

	for _, call := range s.history.window() {
		if call.member != spec.member {
			continue
		}

		if spec.Matches(call) {
			matching = append(matching, call)
		} else {
			related = append(related, call)
		}
	}

	// the outcome and the failure message are both derived from this single count
	actual := len(matching)

	if quantity.Matches(actual) {
		observer.finishSuccess(actual)
		return nil
	}

	err := &ReceivedCallsError{
		Substitute:    s.describe(),
		Expected:      quantity,
		Spec:          spec,
		Actual:        actual,
		MatchingCalls: matching,
		RelatedCalls:  related,
	}
	observer.finishFailure(err)

	return err
}

func (s *Substitute) describe() string {
	return s.name + "#" + s.id.String()[:8]
}
