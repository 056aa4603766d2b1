package realm

import (
	"log/slog"
	"sync/atomic"

	"mercator-hq/hyperion/pkg/geometry"
)

// Center is a labeled trust-realm center inside the Poincaré ball.
type Center struct {
	// Label is the human-readable trust zone name (e.g., "trusted", "sandbox").
	Label string

	// Point is the embedded center, strictly inside the open ball.
	Point geometry.Vector
}

// Assignment is the result of classifying an embedded point.
type Assignment struct {
	// Index is the position of the winning realm in the center list.
	Index int

	// Label is the winning realm's label.
	Label string

	// Distance is the hyperbolic distance to the winning center.
	Distance float64
}

// Classifier assigns embedded points to the nearest realm center.
// It is safe for concurrent use; Reload swaps the center snapshot atomically.
type Classifier struct {
	metric  *geometry.Metric
	centers atomic.Pointer[[]Center]
	logger  *slog.Logger
}

// NewClassifier creates a Classifier over the given centers. An empty center
// list is rejected with NoRealmsConfiguredError: the engine must not start
// without at least one realm.
func NewClassifier(metric *geometry.Metric, centers []Center) (*Classifier, error) {
	if len(centers) == 0 {
		return nil, &NoRealmsConfiguredError{}
	}

	c := &Classifier{
		metric: metric,
		logger: slog.Default().With("component", "realm.classifier"),
	}
	snapshot := make([]Center, len(centers))
	copy(snapshot, centers)
	c.centers.Store(&snapshot)

	c.logger.Info("realm classifier initialized", "realms", len(centers))
	return c, nil
}

// Classify returns the nearest realm for the embedded point u. Ties break to
// the lowest index. A center that fails the ball check contributes maximal
// distance instead of aborting the evaluation (fail-closed).
func (c *Classifier) Classify(u geometry.Vector) (Assignment, error) {
	centers := *c.centers.Load()
	if len(centers) == 0 {
		return Assignment{}, &NoRealmsConfiguredError{}
	}

	best := Assignment{Index: -1}
	for i, center := range centers {
		d, err := c.metric.Distance(u, center.Point)
		if err != nil {
			c.logger.Warn("realm distance failed, using maximal distance",
				"realm", center.Label,
				"error", err,
			)
			d = geometry.MaxDistance
		}
		// strict less-than keeps the lowest index on ties
		if best.Index < 0 || d < best.Distance {
			best = Assignment{Index: i, Label: center.Label, Distance: d}
		}
	}

	return best, nil
}

// Centers returns the current snapshot of realm centers (for introspection).
func (c *Classifier) Centers() []Center {
	snapshot := *c.centers.Load()
	out := make([]Center, len(snapshot))
	copy(out, snapshot)
	return out
}

// Reload atomically replaces the center set. This is the explicit
// config-reload operation; an empty replacement is rejected and the previous
// snapshot stays active.
func (c *Classifier) Reload(centers []Center) error {
	if len(centers) == 0 {
		return &NoRealmsConfiguredError{}
	}
	snapshot := make([]Center, len(centers))
	copy(snapshot, centers)
	c.centers.Store(&snapshot)

	c.logger.Info("realm centers reloaded", "realms", len(centers))
	return nil
}

// RawCenter is a configured realm center before embedding.
type RawCenter struct {
	Label       string
	Coordinates []float64
}

// EmbedCenters embeds raw configured center coordinates through the same
// embedder used for context vectors and validates each result against the
// ball invariant.
func EmbedCenters(emb *geometry.Embedder, raw []RawCenter) ([]Center, error) {
	centers := make([]Center, 0, len(raw))
	for i, rc := range raw {
		p, err := emb.Embed(geometry.Vector(rc.Coordinates))
		if err != nil {
			return nil, NewCenterError(rc.Label, i, err)
		}
		if err := emb.CheckBall(p); err != nil {
			return nil, NewCenterError(rc.Label, i, err)
		}
		centers = append(centers, Center{Label: rc.Label, Point: p})
	}
	return centers, nil
}
