package substitute

import (
	"sync"
)

type stubEntry struct {
	spec     CallSpec
	response response
}

// stubStore maps member specifications to configured responses for one substitute.
// Entries are only ever appended; lookups scan newest first, so the latest matching
// configuration wins.
type stubStore struct {
	mu      sync.RWMutex
	entries map[string][]*stubEntry
}

func newStubStore() *stubStore {
	return &stubStore{entries: make(map[string][]*stubEntry)}
}

func (s *stubStore) configure(spec CallSpec, resp response) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[spec.member] = append(s.entries[spec.member], &stubEntry{spec: spec, response: resp})
}

// resolve finds the newest entry matching call and produces its response.
// Matchers and responses run outside the lock: they are user code and may call back into
// the substitute.
func (s *stubStore) resolve(call Call) (Results, bool) {
	entry := s.lookup(call)
	if entry == nil {
		return nil, false
	}

	return entry.response.respond(call.Args()), true
}

func (s *stubStore) lookup(call Call) *stubEntry {
	s.mu.RLock()
	candidates := s.entries[call.member]
	s.mu.RUnlock()

	for i := len(candidates) - 1; i >= 0; i-- {
		if candidates[i].spec.Matches(call) {
			return candidates[i]
		}
	}

	return nil
}
