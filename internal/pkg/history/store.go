// Package history keeps the bounded, newest-first list of received payments.
package history

import (
	"sync"

	"github.com/ManuelReschke/PayHook/app/models"
)

// DefaultCapacity is the number of payments kept when no capacity is given.
const DefaultCapacity = 100

// Store is a fixed-capacity ring of payments. Inserting into a full store
// evicts exactly the oldest record.
type Store struct {
	mu       sync.RWMutex
	buf      []models.Payment
	head     int // index of the newest record
	size     int
	ids      map[string]struct{}
	capacity int
}

// NewStore creates an empty store. A capacity <= 0 selects DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		buf:      make([]models.Payment, capacity),
		head:     -1,
		ids:      make(map[string]struct{}, capacity),
		capacity: capacity,
	}
}

// Insert prepends p. It returns the evicted record, if any.
func (s *Store) Insert(p models.Payment) (evicted *models.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.head = (s.head + 1) % s.capacity
	if s.size == s.capacity {
		old := s.buf[s.head]
		delete(s.ids, old.ID)
		evicted = &old
	} else {
		s.size++
	}
	s.buf[s.head] = p
	s.ids[p.ID] = struct{}{}
	return evicted
}

// Contains reports whether a record with id is currently stored.
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// Snapshot returns the current contents, newest first. The returned slice is
// owned by the caller.
func (s *Store) Snapshot() []models.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Payment, s.size)
	for i := 0; i < s.size; i++ {
		out[i] = s.buf[(s.head-i+s.capacity)%s.capacity]
	}
	return out
}

// Size returns the number of stored records.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// Capacity returns the maximum number of stored records.
func (s *Store) Capacity() int {
	return s.capacity
}
