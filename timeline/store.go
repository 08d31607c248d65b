package timeline

import (
	"sync"

	"github.com/CrestNiraj12/openfeed/domain"
)

// Store owns the ordered timeline. The backing slice is replaced, never
// mutated in place, and readers always receive copies.
type Store struct {
	mu         sync.RWMutex
	items      []domain.Item
	version    uint64
	reachedEnd bool
}

// NewStore creates a store holding a copy of initial.
func NewStore(initial []domain.Item) *Store {
	return &Store{items: clone(initial)}
}

// Merge applies incoming to the timeline and publishes the result.
func (s *Store) Merge(incoming []domain.Item, dir domain.Direction) MergeResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := Merge(s.items, incoming, dir)
	if res.Kind == NoOp {
		if dir == domain.Older {
			s.reachedEnd = true
		}
		return res
	}

	// Keep our own copy so the result can be handed out safely.
	s.items = clone(res.Items)
	s.version++
	switch {
	case len(res.Added) > 0:
		s.reachedEnd = false
	case res.Kind == Appended:
		// Only the boundary item came back.
		s.reachedEnd = true
	}
	return res
}

// Replace installs items as the whole timeline.
func (s *Store) Replace(items []domain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = clone(items)
	s.version++
	s.reachedEnd = false
}

// Snapshot returns a copy of the timeline, newest first.
func (s *Store) Snapshot() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.items)
}

// Len returns the number of items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Newest returns the first item.
func (s *Store) Newest() (domain.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.items) == 0 {
		return domain.Item{}, false
	}
	return s.items[0], true
}

// Oldest returns the last item.
func (s *Store) Oldest() (domain.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.items) == 0 {
		return domain.Item{}, false
	}
	return s.items[len(s.items)-1], true
}

// IsOldest reports whether displayed is the oldest item, or the item the
// oldest reshare points to. Views use it to detect the bottom of the list.
func (s *Store) IsOldest(displayed domain.Item) bool {
	last, ok := s.Oldest()
	if !ok {
		return false
	}
	return last.Matches(displayed)
}

// Version increases on every change to the timeline.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// ReachedEnd reports whether the last older-page fetch returned nothing new.
func (s *Store) ReachedEnd() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reachedEnd
}
