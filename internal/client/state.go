package client

import (
	"sync"

	"github.com/rentease/rentease/internal/core/domain"
)

// State holds the unfiltered listing set the filters operate on. It is the
// single source of truth between fetches: SetProperties replaces the whole
// set on each fetch response (single-writer discipline), and Snapshot
// hands filters an independent view.
//
// Two overlapping fetches race exactly like the page did: the last
// response to arrive wins, regardless of which request started first.
type State struct {
	mu         sync.RWMutex
	properties []*domain.Property
}

func NewState() *State {
	return &State{properties: []*domain.Property{}}
}

// SetProperties replaces the full listing set with a fetch response.
func (s *State) SetProperties(properties []*domain.Property) {
	if properties == nil {
		properties = []*domain.Property{}
	}
	s.mu.Lock()
	s.properties = properties
	s.mu.Unlock()
}

// Snapshot returns the current listing set. The slice is a copy; callers
// may filter and reorder it freely.
func (s *State) Snapshot() []*domain.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Property, len(s.properties))
	copy(out, s.properties)
	return out
}

// Len reports the number of listings currently held.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.properties)
}
