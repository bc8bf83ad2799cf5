package inventory

import (
	"slices"
	"sync"

	"github.com/hackinpovo/inventory/internal/client/models"
)

// Snapshot is an immutable view of the client state at one instant.
type Snapshot struct {
	Items  Collection
	Tags   TagRegistry
	Filter Filter
}

// Visible is the filtered list of items the user sees.
func (s Snapshot) Visible() []models.Item {
	return s.Filter.Apply(s.Items.Items())
}

// Store owns the current Snapshot. Updates run under a mutex so each one
// sees the result of the previous. Subscribers are called outside the state
// lock, in subscription order, and receive snapshots in the order the updates
// were applied. A subscriber may read the Store but must not update it.
type Store struct {
	// notify is held from applying an update until its subscribers return.
	notify sync.Mutex

	mu   sync.Mutex
	snap Snapshot
	subs map[int]func(Snapshot)
	next int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]func(Snapshot))}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Update replaces the state with fn(current) and notifies subscribers.
func (s *Store) Update(fn func(Snapshot) Snapshot) Snapshot {
	s.notify.Lock()
	defer s.notify.Unlock()

	s.mu.Lock()
	s.snap = fn(s.snap)
	snap := s.snap
	subs := s.subscribers()
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
	return snap
}

func (s *Store) UpdateItems(fn func(Collection) Collection) Snapshot {
	return s.Update(func(snap Snapshot) Snapshot {
		snap.Items = fn(snap.Items)
		return snap
	})
}

func (s *Store) UpdateTags(fn func(TagRegistry) TagRegistry) Snapshot {
	return s.Update(func(snap Snapshot) Snapshot {
		snap.Tags = fn(snap.Tags)
		return snap
	})
}

func (s *Store) UpdateFilter(fn func(Filter) Filter) Snapshot {
	return s.Update(func(snap Snapshot) Snapshot {
		snap.Filter = fn(snap.Filter)
		return snap
	})
}

// Subscribe registers fn for every future update. The returned func
// unregisters it and is safe to call more than once.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) subscribers() []func(Snapshot) {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]func(Snapshot), 0, len(ids))
	for _, id := range ids {
		out = append(out, s.subs[id])
	}
	return out
}
