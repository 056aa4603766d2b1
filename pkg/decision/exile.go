package decision

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Tracker maintains per-entity consecutive-DENY streaks and escalates to
// EXILE when a streak reaches the configured count inside the rolling
// window. Exile is sticky: once an entity is on the roster, every later
// evaluation's ledger outcome is EXILE until Reinstate is called.
//
// Streaks live in memory; only the roster itself is persisted.
type Tracker struct {
	roster Roster
	count  int
	window time.Duration
	logger *slog.Logger

	mu     sync.Mutex
	denies map[string][]time.Time
}

// NewTracker creates a tracker escalating after count consecutive DENYs
// within window.
func NewTracker(roster Roster, count int, window time.Duration) *Tracker {
	return &Tracker{
		roster: roster,
		count:  count,
		window: window,
		logger: slog.Default().With("component", "decision.exile"),
		denies: make(map[string][]time.Time),
	}
}

// Outcome returns the ledger outcome for an evaluation that decided d, and
// records the decision in the entity's streak.
//
// An entity already on the roster gets EXILE regardless of d. An entity
// whose streak already holds count consecutive in-window DENYs is exiled on
// this evaluation, again regardless of d. Otherwise the outcome is d itself:
// a DENY extends the streak and anything else clears it.
//
// A roster read or write failure is logged and degrades to the in-memory
// streak; it never blocks the evaluation.
func (t *Tracker) Outcome(ctx context.Context, entityKey string, d Decision, now time.Time) Decision {
	exiled, err := t.roster.Exiled(ctx, entityKey)
	if err != nil {
		t.logger.Warn("exile roster read failed", "entity_key", entityKey, "error", err)
	}
	if exiled {
		return Exile
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	streak := pruneBefore(t.denies[entityKey], now.Add(-t.window))

	if len(streak) >= t.count {
		delete(t.denies, entityKey)
		if err := t.roster.Exile(ctx, entityKey, now); err != nil {
			t.logger.Error("exile roster write failed", "entity_key", entityKey, "error", err)
		}
		t.logger.Warn("entity exiled",
			"entity_key", entityKey,
			"consecutive_denies", t.count,
			"window", t.window,
		)
		return Exile
	}

	if d == Deny {
		t.denies[entityKey] = append(streak, now)
	} else {
		delete(t.denies, entityKey)
	}

	return d
}

// Reinstate removes the entity from the roster and clears its streak. It
// reports whether the entity was exiled.
func (t *Tracker) Reinstate(ctx context.Context, entityKey string) (bool, error) {
	t.mu.Lock()
	delete(t.denies, entityKey)
	t.mu.Unlock()

	return t.roster.Reinstate(ctx, entityKey)
}

// pruneBefore drops timestamps older than the cutoff, preserving order.
func pruneBefore(ts []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(ts) && ts[i].Before(cutoff) {
		i++
	}
	return ts[i:]
}
