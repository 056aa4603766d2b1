package decision

import (
	"time"

	"mercator-hq/hyperion/pkg/gate"
	"mercator-hq/hyperion/pkg/watcher"
)

// Decision is the per-evaluation verdict.
type Decision string

const (
	// Allow admits the request.
	Allow Decision = "ALLOW"

	// Quarantine admits the request into a restricted path.
	Quarantine Decision = "QUARANTINE"

	// Deny rejects the request.
	Deny Decision = "DENY"

	// Exile marks an entity escalated out of normal evaluation. It appears
	// only as a ledger outcome, never as the Omega-derived decision.
	Exile Decision = "EXILE"
)

// Color is the display tier derived from the same thresholds as the
// decision itself. There is no separate color configuration; a display
// threshold that diverged from the decision threshold would be a
// configuration error, so the possibility does not exist.
type Color string

const (
	ColorGreen Color = "green"
	ColorAmber Color = "amber"
	ColorRed   Color = "red"
)

// Request is one evaluation request.
type Request struct {
	// EntityKey identifies the agent or session being evaluated.
	EntityKey string `json:"entity_key"`

	// Context is the raw context vector, Dimension entries.
	Context []float64 `json:"context"`

	// Attestation is the graded cryptographic proof validity in [0,1].
	// Callers without a valid attestation report 0.
	Attestation float64 `json:"attestation"`

	// HarmScore is the caller-assessed harm potential in [0,1]
	// (risk-oriented: higher is worse).
	HarmScore float64 `json:"harm_score"`

	// Violations names externally-detected governance rule violations
	// observed during this request.
	Violations []string `json:"violations,omitempty"`
}

// Envelope is the per-evaluation decision envelope. The field set is
// identical for every evaluation, including fail-closed denials.
type Envelope struct {
	// Decision is the Omega-threshold verdict.
	Decision Decision `json:"decision"`

	// Omega is the five-factor gate score.
	Omega float64 `json:"omega"`

	// Watchers are the three watcher signals and their triadic aggregate.
	Watchers watcher.Signals `json:"watchers"`

	// OmegaFactors are the five lock factors.
	OmegaFactors gate.Factors `json:"omega_factors"`

	// Friction is the wall-derived friction multiplier.
	Friction float64 `json:"friction"`

	// PermissionColor is the display tier for the Omega score.
	PermissionColor Color `json:"permission_color"`

	// WeakestLock names the minimum-valued lock factor.
	WeakestLock string `json:"weakest_lock"`

	// LedgerOutcome is the recorded outcome including exile escalation.
	// It equals Decision unless the entity is exiled.
	LedgerOutcome Decision `json:"ledger_outcome"`

	// EvaluationID is the evaluation's UUID.
	EvaluationID string `json:"evaluation_id"`

	// EvaluatedAt is when the decision was committed.
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// colorFor maps an Omega score to its display tier using the decision
// thresholds themselves.
func colorFor(omega, tauAllow, tauQuarantine float64) Color {
	switch {
	case omega >= tauAllow:
		return ColorGreen
	case omega >= tauQuarantine:
		return ColorAmber
	default:
		return ColorRed
	}
}

// decisionFor maps an Omega score to the verdict.
func decisionFor(omega, tauAllow, tauQuarantine float64) Decision {
	switch {
	case omega >= tauAllow:
		return Allow
	case omega >= tauQuarantine:
		return Quarantine
	default:
		return Deny
	}
}
