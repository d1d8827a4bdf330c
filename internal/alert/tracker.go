// Package alert tracks which products currently have an active
// low-stock alert, so that one continuous low-stock episode produces
// exactly one notification.
package alert

import (
	"sync"

	"github.com/google/uuid"
)

// Tracker is a concurrency-safe set of product ids with an active
// low-stock alert. State is in-memory only: a process restart clears
// it, which may cause one duplicate notification per still-low product
// on the next evaluation. This is accepted behavior.
type Tracker struct {
	mu  sync.RWMutex
	ids map[uuid.UUID]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{ids: make(map[uuid.UUID]struct{})}
}

// Add marks the product as alerted. Reports whether the id was newly
// added, i.e. a new episode began.
func (t *Tracker) Add(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.ids[id]; ok {
		return false
	}
	t.ids[id] = struct{}{}
	return true
}

// Remove clears the alert for the product, closing its episode.
func (t *Tracker) Remove(id uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.ids, id)
}

// Contains reports whether the product has an active alert.
func (t *Tracker) Contains(id uuid.UUID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.ids[id]
	return ok
}

// Clear drops all alert state.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.ids)
}

// Snapshot returns a copy of the current membership, never a live view.
func (t *Tracker) Snapshot() []uuid.UUID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(t.ids))
	for id := range t.ids {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of products with an active alert.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.ids)
}
