package watcher

import (
	"log/slog"
	"math"
	"time"

	"mercator-hq/hyperion/pkg/geometry"
	"mercator-hq/hyperion/pkg/realm"
)

// RuleKind identifies how a governance rule is triggered.
type RuleKind string

const (
	// RuleNormCeiling triggers when the embedded point's norm exceeds Limit.
	RuleNormCeiling RuleKind = "norm_ceiling"

	// RuleRealmDenylist triggers when the point classifies into a listed realm.
	RuleRealmDenylist RuleKind = "realm_denylist"

	// RuleExternal triggers when the caller reports the rule's name as
	// violated during this evaluation.
	RuleExternal RuleKind = "external"
)

// Rule is a single governance policy rule. Severities of all triggered rules
// are summed and clamped to [0,1] to form the governance signal.
type Rule struct {
	Name     string
	Kind     RuleKind
	Limit    float64  // norm_ceiling only
	Realms   []string // realm_denylist only
	Severity float64  // contribution when triggered, in [0,1]
}

// Config contains configuration for the watcher bank.
type Config struct {
	// MemoryDecay is the EWMA decay factor for the memory watcher, in (0,1).
	// Higher values remember longer.
	MemoryDecay float64

	// HistorySize is how many recent fast signals are retained per entity
	// (spectral coherence input).
	HistorySize int

	// SheafWindow is how many recent signal triples feed the cross-watcher
	// consistency measure.
	SheafWindow int

	// Weights are the triadic quadratic-mean weights for fast, memory, and
	// governance in that order.
	Weights [3]float64
}

// Observation is the full output of one bank evaluation for one entity.
type Observation struct {
	// Signals are the three watcher outputs plus the triadic distance.
	Signals Signals

	// Drift is the raw hyperbolic distance from the entity's previous
	// embedded point (0 when there is no history).
	Drift float64

	// History is the fast-signal history including the current sample,
	// oldest first. Input to the spectral coherence check.
	History []float64

	// Triples is the signal-triple window including the current triple.
	Triples []Signals

	// Missing lists watchers that could not produce a signal this
	// evaluation and were defaulted to maximum risk.
	Missing []*MissingSignalError
}

// Bank computes the three watcher signals for an evaluation. It is stateless
// itself; all mutable state travels through the *State passed in, which the
// caller commits (or abandons) via the store.
type Bank struct {
	metric *geometry.Metric
	config Config
	rules  []Rule
	logger *slog.Logger
}

// NewBank creates a watcher bank with the given metric, configuration, and
// governance rule set.
func NewBank(metric *geometry.Metric, config Config, rules []Rule) *Bank {
	return &Bank{
		metric: metric,
		config: config,
		rules:  rules,
		logger: slog.Default().With("component", "watcher.bank"),
	}
}

// Observe computes the watcher signals for one evaluation and applies the
// corresponding state mutation to st (a working copy owned by the caller).
// The caller decides whether the mutation is committed.
//
// A watcher that cannot produce a signal contributes 1.0 (maximum risk) and
// is reported in Observation.Missing; the evaluation proceeds.
func (b *Bank) Observe(st *State, point geometry.Vector, asn realm.Assignment, violations []string, now time.Time) Observation {
	var obs Observation

	fast, err := b.fastSignal(point)
	if err != nil {
		obs.Missing = append(obs.Missing, NewMissingSignalError("fast", err))
		fast = 1.0
	}

	// drift before the state update: distance from the previous point
	obs.Drift = b.driftDistance(st, point)

	memory, err := b.memorySignal(st, fast)
	if err != nil {
		obs.Missing = append(obs.Missing, NewMissingSignalError("memory", err))
		memory = 1.0
	}

	governance := b.governanceSignal(point, asn, violations)

	obs.Signals = Signals{
		Fast:       fast,
		Memory:     memory,
		Governance: governance,
		DTri:       b.triadic(fast, memory, governance),
	}

	// stage the state mutation on the working copy
	st.Seen = true
	st.LastSeen = now
	st.PrevPoint = point.Clone()
	st.History = appendBounded(st.History, fast, b.config.HistorySize)
	st.Triples = appendBoundedTriples(st.Triples, obs.Signals, b.config.SheafWindow)

	obs.History = append([]float64(nil), st.History...)
	obs.Triples = append([]Signals(nil), st.Triples...)

	return obs
}

// fastSignal is the instantaneous anomaly score: the Euclidean norm of the
// embedded point, already in [0,1) by the ball invariant. Points near the
// boundary are far from every realm center and score high.
func (b *Bank) fastSignal(point geometry.Vector) (float64, error) {
	if len(point) == 0 {
		return 0, NewDegenerateSignalCause("empty point")
	}
	norm := point.Norm()
	if math.IsNaN(norm) || norm >= 1 {
		return 0, NewDegenerateSignalCause("point outside ball")
	}
	return norm, nil
}

// memorySignal updates the entity's EWMA suspicion with the current fast
// signal and returns the updated value. A fresh entity starts at the current
// observation so the first evaluation of an entity is history-free and
// reproducible.
func (b *Bank) memorySignal(st *State, fast float64) (float64, error) {
	decay := b.config.MemoryDecay
	if decay <= 0 || decay >= 1 {
		return 0, NewDegenerateSignalCause("memory decay outside (0,1)")
	}

	if !st.Seen {
		st.Suspicion = fast
	} else {
		st.Suspicion = decay*st.Suspicion + (1-decay)*fast
	}
	return st.Suspicion, nil
}

// governanceSignal sums the severities of all triggered rules, clamped to
// [0,1]. With no rules configured the signal is 0: an empty policy set means
// nothing was violated, which is distinct from a watcher being unavailable.
func (b *Bank) governanceSignal(point geometry.Vector, asn realm.Assignment, violations []string) float64 {
	reported := make(map[string]bool, len(violations))
	for _, v := range violations {
		reported[v] = true
	}

	var total float64
	for _, rule := range b.rules {
		triggered := false
		switch rule.Kind {
		case RuleNormCeiling:
			triggered = point.Norm() > rule.Limit
		case RuleRealmDenylist:
			for _, r := range rule.Realms {
				if r == asn.Label {
					triggered = true
					break
				}
			}
		case RuleExternal:
			triggered = reported[rule.Name]
		}
		if triggered {
			total += rule.Severity
			b.logger.Debug("governance rule triggered",
				"rule", rule.Name,
				"kind", string(rule.Kind),
				"severity", rule.Severity,
			)
		}
	}

	return clamp01(total)
}

// triadic is the weighted quadratic mean of the three signals.
func (b *Bank) triadic(fast, memory, governance float64) float64 {
	w := b.config.Weights
	sum := w[0] + w[1] + w[2]
	if sum <= 0 {
		// degenerate weights collapse to maximum risk
		return 1.0
	}
	q := (w[0]*fast*fast + w[1]*memory*memory + w[2]*governance*governance) / sum
	return clamp01(math.Sqrt(q))
}

// driftDistance is the hyperbolic distance between the previous and current
// embedded points. Failure of the ball check degrades to the maximal
// distance, not an aborted evaluation.
func (b *Bank) driftDistance(st *State, point geometry.Vector) float64 {
	if !st.Seen || st.PrevPoint == nil {
		return 0
	}
	d, err := b.metric.Distance(st.PrevPoint, point)
	if err != nil {
		b.logger.Warn("drift distance failed, using maximal distance", "error", err)
		return geometry.MaxDistance
	}
	return d
}

func appendBounded(s []float64, v float64, max int) []float64 {
	s = append(s, v)
	if max > 0 && len(s) > max {
		s = s[len(s)-max:]
	}
	return s
}

func appendBoundedTriples(s []Signals, v Signals, max int) []Signals {
	s = append(s, v)
	if max > 0 && len(s) > max {
		s = s[len(s)-max:]
	}
	return s
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// degenerateSignalCause is an internal cause for MissingSignalError.
type degenerateSignalCause struct{ reason string }

func (e *degenerateSignalCause) Error() string { return e.reason }

// NewDegenerateSignalCause wraps a reason string as an error for use as a
// MissingSignalError cause.
func NewDegenerateSignalCause(reason string) error {
	return &degenerateSignalCause{reason: reason}
}
