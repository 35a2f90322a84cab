package substitute

import (
	"fmt"
	"sync"
)

// Recorder collects the argument matchers declared for the next specification call.
//
// It is the explicit matcher scope of one goroutine on one substitute: obtain one per goroutine
// with Substitute.Recorder. Every Call consumes all pending matchers, so matchers never carry
// over from one specification call to the next.
type Recorder struct {
	sub     *Substitute
	mu      sync.Mutex
	pending []ArgMatcher
}

// Push declares matcher for the next argument position of the next Call.
func (r *Recorder) Push(matcher ArgMatcher) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = append(r.pending, matcher)

	return r
}

// drainForNextCall returns the pending matchers in declaration order and clears the buffer.
func (r *Recorder) drainForNextCall() []ArgMatcher {
	r.mu.Lock()
	defer r.mu.Unlock()

	drained := r.pending
	r.pending = nil

	return drained
}

// Call makes a specification call of member and binds the pending matchers to its arguments.
//
// Without pending matchers the arguments are interpreted as in Substitute.When. With pending
// matchers there must be exactly one per argument, otherwise ErrArgMatcherArity is returned.
func (r *Recorder) Call(member string, args ...any) (*PendingCall, error) {
	pending := r.drainForNextCall()

	if len(pending) > 0 && len(pending) != len(args) {
		err := fmt.Errorf(
			"%w: %s(...) got %d matchers for %d arguments",
			ErrArgMatcherArity,
			member,
			len(pending),
			len(args),
		)
		r.sub.observeUsageError(err)

		return nil, err
	}

	return r.sub.newPendingCall(newCall(member, args, pending)), nil
}

// Close reports ErrUnconsumedArgMatchers if matchers were pushed after the last Call.
// The pending matchers are discarded either way.
func (r *Recorder) Close() error {
	leftover := r.drainForNextCall()
	if len(leftover) == 0 {
		return nil
	}

	err := fmt.Errorf("%w: %d pending", ErrUnconsumedArgMatchers, len(leftover))
	r.sub.observeUsageError(err)

	return err
}

// AnyArg declares an Any matcher on rec and returns the zero T to stand in for the argument
// of a typed specification call.
func AnyArg[T any](rec *Recorder) T {
	rec.Push(Any())

	var zero T
	return zero
}

// ArgEq declares an Eq matcher for value on rec and returns value.
func ArgEq[T any](rec *Recorder, value T) T {
	rec.Push(Eq(value))
	return value
}

// ArgThat declares a Match matcher on rec and returns the zero T.
func ArgThat[T any](rec *Recorder, description string, predicate func(T) bool) T {
	rec.Push(Match(description, predicate))

	var zero T
	return zero
}
