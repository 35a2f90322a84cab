package substitute

import (
	"context"
)

// PendingCall is the token returned by a specification call. It identifies the specified call
// explicitly, so configuring a response or verifying never depends on which call happened last.
type PendingCall struct {
	sub  *Substitute
	call Call
	spec CallSpec
}

// Call returns the specification call this token was created from.
func (p *PendingCall) Call() Call {
	return p.call
}

// Spec returns the matching specification of this token.
func (p *PendingCall) Spec() CallSpec {
	return p.spec
}

// WithAnyArgs returns a token for the same member that matches calls with any argument values.
func (p *PendingCall) WithAnyArgs() *PendingCall {
	return &PendingCall{sub: p.sub, call: p.call, spec: p.spec.withAnyArgs()}
}

// Returns configures matching calls to return value. With more values, the 1st matching call
// returns value, the 2nd returns more[0], and so on; once exhausted the last value is returned
// for every further call. Each value is the single result of the member.
func (p *PendingCall) Returns(value any, more ...any) {
	if len(more) == 0 {
		p.sub.configure(p.spec, constantResponse{results: Results{value}})
		return
	}

	sequence := make([]Results, 0, len(more)+1)
	sequence = append(sequence, Results{value})

	for _, v := range more {
		sequence = append(sequence, Results{v})
	}

	p.sub.configure(p.spec, newSequenceResponse(sequence))
}

// ReturnsResults is Returns for members with several results: every Results is the full result
// tuple of one call.
func (p *PendingCall) ReturnsResults(results Results, more ...Results) {
	if len(more) == 0 {
		p.sub.configure(p.spec, constantResponse{results: results})
		return
	}

	sequence := make([]Results, 0, len(more)+1)
	sequence = append(sequence, results)
	sequence = append(sequence, more...)

	p.sub.configure(p.spec, newSequenceResponse(sequence))
}

// ReturnsFunc configures matching calls to return what compute returns for the actual arguments.
func (p *PendingCall) ReturnsFunc(compute func(args Args) Results) {
	p.sub.configure(p.spec, computedResponse{compute: compute})
}

// Do configures matching calls to run effect with the actual arguments and return zero values.
func (p *PendingCall) Do(effect func(args Args)) {
	p.sub.configure(p.spec, sideEffectResponse{effect: effect})
}

// Panics configures matching calls to panic with value.
func (p *PendingCall) Panics(value any) {
	p.sub.configure(p.spec, panicResponse{value: value})
}

// Verify checks that the calls received so far that match this token satisfy quantity.
// It returns a *ReceivedCallsError if they do not.
func (p *PendingCall) Verify(quantity Quantity) error {
	return p.sub.verify(context.Background(), p.spec, quantity)
}

// VerifyContext is Verify with a context for the contextual logger and tracing collector.
func (p *PendingCall) VerifyContext(ctx context.Context, quantity Quantity) error {
	return p.sub.verify(ctx, p.spec, quantity)
}
