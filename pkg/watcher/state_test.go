package watcher

import (
	"sync"
	"testing"
	"time"
)

func TestStore_CommitAndAbandon(t *testing.T) {
	s := NewStore(StoreConfig{IdleTimeout: time.Hour})
	defer s.Close()

	// commit path
	st, release := s.Acquire("agent-1")
	st.Suspicion = 0.5
	st.Seen = true
	release(st)

	st, release = s.Acquire("agent-1")
	if st.Suspicion != 0.5 {
		t.Errorf("committed suspicion = %g, want 0.5", st.Suspicion)
	}

	// abandon path: mutation on the working copy must not leak
	st.Suspicion = 0.9
	release(nil)

	st, release = s.Acquire("agent-1")
	defer release(nil)
	if st.Suspicion != 0.5 {
		t.Errorf("abandoned mutation leaked: suspicion = %g, want 0.5", st.Suspicion)
	}
}

func TestStore_WorkingCopyIsDeep(t *testing.T) {
	s := NewStore(StoreConfig{IdleTimeout: time.Hour})
	defer s.Close()

	st, release := s.Acquire("agent-1")
	st.History = []float64{0.1, 0.2}
	st.Seen = true
	release(st)

	st, release = s.Acquire("agent-1")
	st.History[0] = 0.99
	release(nil)

	st, release = s.Acquire("agent-1")
	defer release(nil)
	if st.History[0] != 0.1 {
		t.Errorf("working copy aliased stored history: %g, want 0.1", st.History[0])
	}
}

func TestStore_PerKeySerialization(t *testing.T) {
	s := NewStore(StoreConfig{IdleTimeout: time.Hour})
	defer s.Close()

	// 50 goroutines each increment the same entity's suspicion once; with
	// per-key serialization every increment survives.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st, release := s.Acquire("contended")
			st.Suspicion++
			st.Seen = true
			release(st)
		}()
	}
	wg.Wait()

	st, release := s.Acquire("contended")
	defer release(nil)
	if st.Suspicion != 50 {
		t.Errorf("suspicion = %g, want 50 (lost updates)", st.Suspicion)
	}
}

func TestStore_CreatesOnFirstUse(t *testing.T) {
	s := NewStore(StoreConfig{IdleTimeout: time.Hour})
	defer s.Close()

	if s.Len() != 0 {
		t.Fatalf("fresh store has %d entries", s.Len())
	}

	_, release := s.Acquire("new-entity")
	release(nil)

	if s.Len() != 1 {
		t.Errorf("store has %d entries after first acquire, want 1", s.Len())
	}
}

func TestStore_EvictsIdleEntities(t *testing.T) {
	s := NewStore(StoreConfig{IdleTimeout: 10 * time.Millisecond, SweepInterval: time.Hour})
	defer s.Close()

	st, release := s.Acquire("stale")
	st.Seen = true
	st.LastSeen = time.Now().Add(-time.Minute)
	release(st)

	st, release = s.Acquire("fresh")
	st.Seen = true
	st.LastSeen = time.Now()
	release(st)

	s.sweep(time.Now())

	if s.Len() != 1 {
		t.Errorf("store has %d entries after sweep, want 1", s.Len())
	}
	if s.Evicted() != 1 {
		t.Errorf("evicted = %d, want 1", s.Evicted())
	}
}
