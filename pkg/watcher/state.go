package watcher

import (
	"log/slog"
	"sync"
	"time"

	"mercator-hq/hyperion/pkg/geometry"
)

// Signals holds the three watcher outputs and their triadic aggregate for a
// single evaluation. All four values are risk-oriented in [0,1].
type Signals struct {
	Fast       float64 `json:"fast"`
	Memory     float64 `json:"memory"`
	Governance float64 `json:"governance"`
	DTri       float64 `json:"d_tri"`
}

// State is the per-entity watcher state: decayed suspicion, recent signal
// history, and the previously observed embedded point. It is mutated only
// through Store.Acquire/commit, never shared between evaluations.
type State struct {
	// Suspicion is the exponentially-decayed memory signal.
	Suspicion float64

	// Seen reports whether any observation has been recorded.
	Seen bool

	// History holds the most recent fast signals, oldest first.
	History []float64

	// Triples holds the most recent signal triples for sheaf consistency.
	Triples []Signals

	// PrevPoint is the embedded point from the previous evaluation.
	PrevPoint geometry.Vector

	// LastSeen is when the entity was last observed (eviction input).
	LastSeen time.Time
}

// clone returns a deep copy of the state.
func (s *State) clone() *State {
	out := &State{
		Suspicion: s.Suspicion,
		Seen:      s.Seen,
		LastSeen:  s.LastSeen,
	}
	out.History = append([]float64(nil), s.History...)
	out.Triples = append([]Signals(nil), s.Triples...)
	if s.PrevPoint != nil {
		out.PrevPoint = s.PrevPoint.Clone()
	}
	return out
}

// StoreConfig contains configuration for the watcher state store.
type StoreConfig struct {
	// IdleTimeout is how long an entity may go unobserved before its state
	// is evicted.
	IdleTimeout time.Duration

	// SweepInterval is how often the eviction sweeper runs.
	// Default: IdleTimeout / 4, floored at one second.
	SweepInterval time.Duration
}

// Store owns all per-entity watcher state. State is created on first
// acquisition, serialized per entity key, and evicted after IdleTimeout
// without observations.
type Store struct {
	mu      sync.Mutex
	entries map[string]*storeEntry
	config  StoreConfig
	logger  *slog.Logger

	done    chan struct{}
	wg      sync.WaitGroup
	evicted uint64
}

type storeEntry struct {
	mu    sync.Mutex
	state *State
}

// NewStore creates a watcher state store and starts its eviction sweeper.
func NewStore(config StoreConfig) *Store {
	if config.SweepInterval <= 0 {
		config.SweepInterval = config.IdleTimeout / 4
		if config.SweepInterval < time.Second {
			config.SweepInterval = time.Second
		}
	}

	s := &Store{
		entries: make(map[string]*storeEntry),
		config:  config,
		logger:  slog.Default().With("component", "watcher.store"),
		done:    make(chan struct{}),
	}

	s.wg.Add(1)
	go s.sweeper()

	return s
}

// Acquire locks the entity's state and returns a deep working copy together
// with a release function. Passing the (mutated) copy to release commits it
// atomically; passing nil abandons the evaluation and leaves the stored
// state untouched. The per-key lock is held until release is called, so
// evaluations for the same entity are strictly serialized.
func (s *Store) Acquire(entityKey string) (*State, func(commit *State)) {
	s.mu.Lock()
	entry, ok := s.entries[entityKey]
	if !ok {
		entry = &storeEntry{state: &State{}}
		s.entries[entityKey] = entry
	}
	s.mu.Unlock()

	entry.mu.Lock()
	working := entry.state.clone()

	release := func(commit *State) {
		if commit != nil {
			entry.state = commit
		}
		entry.mu.Unlock()
	}
	return working, release
}

// Len returns the number of tracked entities.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Evicted returns the total number of evicted entities.
func (s *Store) Evicted() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evicted
}

// Close stops the eviction sweeper.
func (s *Store) Close() error {
	close(s.done)
	s.wg.Wait()
	return nil
}

// sweeper periodically evicts entities idle longer than IdleTimeout.
func (s *Store) sweeper() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.sweep(now)
		}
	}
}

func (s *Store) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-s.config.IdleTimeout)
	removed := 0
	for key, entry := range s.entries {
		// TryLock: an entity mid-evaluation is by definition not idle
		if !entry.mu.TryLock() {
			continue
		}
		idle := entry.state.Seen && entry.state.LastSeen.Before(cutoff)
		entry.mu.Unlock()

		if idle {
			delete(s.entries, key)
			removed++
		}
	}

	if removed > 0 {
		s.evicted += uint64(removed)
		s.logger.Debug("evicted idle watcher state",
			"removed", removed,
			"remaining", len(s.entries),
		)
	}
}
