package substitute

import (
	"slices"
	"sync"
)

// CallHistory is the append-only log of calls received by one substitute.
// Record and Snapshot are safe for concurrent use.
type CallHistory struct {
	mu    sync.Mutex
	calls []Call
}

// Record appends call and returns its sequence number, which equals its index in the log.
// Concurrent records are serialized in some order; none is lost or duplicated.
func (h *CallHistory) Record(call Call) SequenceNumber {
	h.mu.Lock()
	defer h.mu.Unlock()

	call.sequenceNumber = SequenceNumber(len(h.calls))
	h.calls = append(h.calls, call)

	return call.sequenceNumber
}

// Snapshot returns a point-in-time copy of the calls recorded so far, in sequence order.
func (h *CallHistory) Snapshot() []Call {
	return slices.Clone(h.window())
}

// window returns the recorded calls without copying them. Entries are never modified after
// Record and later appends never write below the window's length, so it can be read without
// holding the lock. Callers must not write to it.
func (h *CallHistory) window() []Call {
	h.mu.Lock()
	defer h.mu.Unlock()

	return slices.Clip(h.calls)
}

// Len returns the number of recorded calls.
func (h *CallHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.calls)
}
