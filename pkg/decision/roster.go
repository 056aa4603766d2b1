package decision

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Exilee is one roster entry.
type Exilee struct {
	EntityKey string
	ExiledAt  time.Time
}

// Roster persists the set of exiled entities. Implementations must be safe
// for concurrent use.
type Roster interface {
	// Exiled reports whether the entity is currently exiled.
	Exiled(ctx context.Context, entityKey string) (bool, error)

	// Exile adds the entity to the roster. Exiling an already-exiled
	// entity is a no-op that keeps the original timestamp.
	Exile(ctx context.Context, entityKey string, at time.Time) error

	// Reinstate removes the entity from the roster. It reports whether
	// the entity was present.
	Reinstate(ctx context.Context, entityKey string) (bool, error)

	// List returns all roster entries, oldest exile first.
	List(ctx context.Context) ([]Exilee, error)

	// Close releases backend resources.
	Close() error
}

// MemoryRoster is an in-memory Roster for tests and deployments that accept
// losing exile state on restart.
type MemoryRoster struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

// NewMemoryRoster creates an empty in-memory roster.
func NewMemoryRoster() *MemoryRoster {
	return &MemoryRoster{entries: make(map[string]time.Time)}
}

// Exiled reports whether the entity is on the roster.
func (r *MemoryRoster) Exiled(_ context.Context, entityKey string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[entityKey]
	return ok, nil
}

// Exile adds the entity to the roster.
func (r *MemoryRoster) Exile(_ context.Context, entityKey string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entityKey]; !ok {
		r.entries[entityKey] = at
	}
	return nil
}

// Reinstate removes the entity from the roster.
func (r *MemoryRoster) Reinstate(_ context.Context, entityKey string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[entityKey]
	delete(r.entries, entityKey)
	return ok, nil
}

// List returns all roster entries, oldest exile first.
func (r *MemoryRoster) List(_ context.Context) ([]Exilee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Exilee, 0, len(r.entries))
	for key, at := range r.entries {
		out = append(out, Exilee{EntityKey: key, ExiledAt: at})
	}
	sortExilees(out)
	return out, nil
}

// Close is a no-op for the in-memory roster.
func (r *MemoryRoster) Close() error { return nil }

// sortExilees orders entries by exile time, then key for determinism.
func sortExilees(entries []Exilee) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].ExiledAt.Equal(entries[j].ExiledAt) {
			return entries[i].ExiledAt.Before(entries[j].ExiledAt)
		}
		return entries[i].EntityKey < entries[j].EntityKey
	})
}
