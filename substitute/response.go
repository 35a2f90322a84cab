package substitute

import (
	"slices"
	"sync/atomic"
)

// response produces the Results for one resolved call.
type response interface {
	respond(args Args) Results
	kind() string
}

type constantResponse struct {
	results Results
}

func (r constantResponse) respond(_ Args) Results {
	return slices.Clone(r.results)
}

func (constantResponse) kind() string {
	return "constant"
}

// sequenceResponse yields its results one per call and keeps yielding the last one once exhausted.
// The counter lives on the entry, not on the substitute.
type sequenceResponse struct {
	results []Results
	calls   atomic.Uint64
}

func newSequenceResponse(results []Results) *sequenceResponse {
	return &sequenceResponse{results: results}
}

func (r *sequenceResponse) respond(_ Args) Results {
	position := r.calls.Add(1) - 1
	last := uint64(len(r.results) - 1)

	return slices.Clone(r.results[min(position, last)])
}

func (*sequenceResponse) kind() string {
	return "sequence"
}

type computedResponse struct {
	compute func(Args) Results
}

func (r computedResponse) respond(args Args) Results {
	return r.compute(args)
}

func (computedResponse) kind() string {
	return "computed"
}

type sideEffectResponse struct {
	effect func(Args)
}

func (r sideEffectResponse) respond(args Args) Results {
	r.effect(args)
	return nil
}

func (sideEffectResponse) kind() string {
	return "side_effect"
}

type panicResponse struct {
	value any
}

func (r panicResponse) respond(_ Args) Results {
	panic(r.value)
}

func (panicResponse) kind() string {
	return "panic"
}
