package decision

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTrackerEscalatesAfterStreak(t *testing.T) {
	tr := NewTracker(NewMemoryRoster(), 3, time.Minute)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		got := tr.Outcome(ctx, "agent-1", Deny, now.Add(time.Duration(i)*time.Second))
		if got != Deny {
			t.Fatalf("deny %d: outcome = %s, want DENY", i, got)
		}
	}

	// the streak is full; the next evaluation escalates regardless of its
	// own verdict
	if got := tr.Outcome(ctx, "agent-1", Allow, now.Add(3*time.Second)); got != Exile {
		t.Errorf("outcome = %s, want EXILE", got)
	}

	exiled, err := tr.roster.Exiled(ctx, "agent-1")
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	if !exiled {
		t.Error("entity not on roster after escalation")
	}
}

func TestTrackerWindowExpiresOldDenies(t *testing.T) {
	tr := NewTracker(NewMemoryRoster(), 3, time.Minute)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	tr.Outcome(ctx, "agent-1", Deny, now)
	tr.Outcome(ctx, "agent-1", Deny, now.Add(10*time.Second))

	// two minutes later the earlier denies have aged out of the window
	if got := tr.Outcome(ctx, "agent-1", Deny, now.Add(2*time.Minute)); got != Deny {
		t.Fatalf("outcome = %s, want DENY", got)
	}
	tr.Outcome(ctx, "agent-1", Deny, now.Add(2*time.Minute+time.Second))
	tr.Outcome(ctx, "agent-1", Deny, now.Add(2*time.Minute+2*time.Second))

	// three fresh denies now sit inside the window
	if got := tr.Outcome(ctx, "agent-1", Deny, now.Add(2*time.Minute+3*time.Second)); got != Exile {
		t.Errorf("outcome = %s, want EXILE", got)
	}
}

func TestTrackerNonDenyClearsStreak(t *testing.T) {
	tr := NewTracker(NewMemoryRoster(), 3, time.Minute)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	tr.Outcome(ctx, "agent-1", Deny, now)
	tr.Outcome(ctx, "agent-1", Deny, now.Add(time.Second))

	if got := tr.Outcome(ctx, "agent-1", Quarantine, now.Add(2*time.Second)); got != Quarantine {
		t.Fatalf("outcome = %s, want QUARANTINE", got)
	}

	// the streak restarted, so two more denies do not escalate
	tr.Outcome(ctx, "agent-1", Deny, now.Add(3*time.Second))
	tr.Outcome(ctx, "agent-1", Deny, now.Add(4*time.Second))
	if got := tr.Outcome(ctx, "agent-1", Deny, now.Add(5*time.Second)); got != Deny {
		t.Errorf("outcome = %s, want DENY after reset", got)
	}
}

func TestTrackerStreaksAreIndependent(t *testing.T) {
	tr := NewTracker(NewMemoryRoster(), 2, time.Minute)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	tr.Outcome(ctx, "agent-1", Deny, now)
	tr.Outcome(ctx, "agent-1", Deny, now.Add(time.Second))
	tr.Outcome(ctx, "agent-2", Deny, now.Add(2*time.Second))

	if got := tr.Outcome(ctx, "agent-2", Deny, now.Add(3*time.Second)); got != Deny {
		t.Errorf("agent-2 outcome = %s, want DENY (one deny in streak)", got)
	}
	if got := tr.Outcome(ctx, "agent-1", Deny, now.Add(4*time.Second)); got != Exile {
		t.Errorf("agent-1 outcome = %s, want EXILE", got)
	}
}

func TestTrackerStickyUntilReinstate(t *testing.T) {
	roster := NewMemoryRoster()
	tr := NewTracker(roster, 3, time.Minute)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	if err := roster.Exile(ctx, "agent-1", now); err != nil {
		t.Fatalf("exile: %v", err)
	}

	if got := tr.Outcome(ctx, "agent-1", Allow, now.Add(time.Hour)); got != Exile {
		t.Errorf("outcome = %s, want EXILE for rostered entity", got)
	}

	was, err := tr.Reinstate(ctx, "agent-1")
	if err != nil {
		t.Fatalf("reinstate: %v", err)
	}
	if !was {
		t.Error("reinstate reported entity was not exiled")
	}

	if got := tr.Outcome(ctx, "agent-1", Allow, now.Add(2*time.Hour)); got != Allow {
		t.Errorf("outcome = %s, want ALLOW after reinstatement", got)
	}

	was, err = tr.Reinstate(ctx, "agent-1")
	if err != nil {
		t.Fatalf("reinstate: %v", err)
	}
	if was {
		t.Error("second reinstate reported entity was still exiled")
	}
}

// brokenRoster fails every operation, standing in for a lost backend.
type brokenRoster struct{}

func (brokenRoster) Exiled(context.Context, string) (bool, error) {
	return false, errors.New("roster unavailable")
}
func (brokenRoster) Exile(context.Context, string, time.Time) error {
	return errors.New("roster unavailable")
}
func (brokenRoster) Reinstate(context.Context, string) (bool, error) {
	return false, errors.New("roster unavailable")
}
func (brokenRoster) List(context.Context) ([]Exilee, error) {
	return nil, errors.New("roster unavailable")
}
func (brokenRoster) Close() error { return nil }

func TestTrackerDegradesOnRosterFailure(t *testing.T) {
	tr := NewTracker(brokenRoster{}, 2, time.Minute)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	// roster reads fail but evaluation proceeds on the in-memory streak
	if got := tr.Outcome(ctx, "agent-1", Deny, now); got != Deny {
		t.Fatalf("outcome = %s, want DENY", got)
	}
	if got := tr.Outcome(ctx, "agent-1", Deny, now.Add(time.Second)); got != Deny {
		t.Fatalf("outcome = %s, want DENY", got)
	}

	// escalation still fires even though the roster write fails
	if got := tr.Outcome(ctx, "agent-1", Deny, now.Add(2*time.Second)); got != Exile {
		t.Errorf("outcome = %s, want EXILE", got)
	}
}

func TestPruneBefore(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	ts := []time.Time{base, base.Add(time.Second), base.Add(2 * time.Second)}

	tests := []struct {
		name   string
		cutoff time.Time
		want   int
	}{
		{"none expired", base, 3},
		{"first expired", base.Add(time.Second), 2},
		{"all expired", base.Add(time.Minute), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pruneBefore(ts, tt.cutoff); len(got) != tt.want {
				t.Errorf("pruneBefore kept %d timestamps, want %d", len(got), tt.want)
			}
		})
	}
}
