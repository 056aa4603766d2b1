package decision

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mercator-hq/hyperion/pkg/gate"
	"mercator-hq/hyperion/pkg/geometry"
	"mercator-hq/hyperion/pkg/ledger"
	"mercator-hq/hyperion/pkg/realm"
	"mercator-hq/hyperion/pkg/telemetry/metrics"
	"mercator-hq/hyperion/pkg/telemetry/tracing"
	"mercator-hq/hyperion/pkg/watcher"
)

// Options wires an Engine. Embedder through Appender are required; Logger,
// Metrics, and Tracer may be nil.
type Options struct {
	Embedder   *geometry.Embedder
	Gyro       *geometry.Gyro
	Classifier *realm.Classifier
	Store      *watcher.Store
	Bank       *watcher.Bank
	Wall       *gate.Wall
	Exile      *Tracker
	Appender   *ledger.Appender

	// TauAllow and TauQuarantine are the decision thresholds on Omega.
	TauAllow      float64
	TauQuarantine float64

	Logger  *slog.Logger
	Metrics *metrics.Collector
	Tracer  *tracing.Tracer
}

// Engine evaluates requests through the full governance pipeline. Stateless
// stages run with no shared mutable state; per-entity watcher state is the
// only contended resource and is serialized by the store. Engines are safe
// for concurrent use.
type Engine struct {
	embedder   *geometry.Embedder
	gyro       *geometry.Gyro
	classifier *realm.Classifier
	store      *watcher.Store
	bank       *watcher.Bank
	wall       *gate.Wall
	exile      *Tracker
	appender   *ledger.Appender

	tauAllow      float64
	tauQuarantine float64

	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer

	// injectable for reproducible envelopes in tests
	now   func() time.Time
	newID func() string
}

// NewEngine creates an Engine from options.
func NewEngine(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		embedder:      opts.Embedder,
		gyro:          opts.Gyro,
		classifier:    opts.Classifier,
		store:         opts.Store,
		bank:          opts.Bank,
		wall:          opts.Wall,
		exile:         opts.Exile,
		appender:      opts.Appender,
		tauAllow:      opts.TauAllow,
		tauQuarantine: opts.TauQuarantine,
		logger:        logger.With("component", "decision.engine"),
		metrics:       opts.Metrics,
		tracer:        opts.Tracer,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// Evaluate runs one request through the pipeline and returns its envelope.
//
// The only error Evaluate returns is the context's own: a cancelled
// evaluation is abandoned before any watcher state is committed or any
// ledger record is written. Every other failure fails closed into a DENY
// envelope with the standard field set.
func (e *Engine) Evaluate(ctx context.Context, req Request) (*Envelope, error) {
	started := e.now()

	ctx, span := e.startSpan(ctx, "decision.evaluate",
		trace.WithAttributes(attribute.Int("context.dimension", len(req.Context))),
	)
	defer span.End()

	embedded, err := e.embedPoint(ctx, req.Context)
	if err != nil {
		e.logger.Warn("embedding failed, failing closed",
			"entity_key", req.EntityKey,
			"error", err,
		)
		return e.failClosed(ctx, req.EntityKey, started)
	}

	point := e.transformPoint(ctx, embedded)

	asn, err := e.classifyPoint(ctx, point)
	if err != nil {
		e.logger.Warn("realm classification failed, failing closed",
			"entity_key", req.EntityKey,
			"error", err,
		)
		return e.failClosed(ctx, req.EntityKey, started)
	}

	// Per-entity state is held exclusively from here until release.
	st, release := e.store.Acquire(req.EntityKey)

	obs := e.observe(ctx, st, point, asn, req.Violations)
	for _, missing := range obs.Missing {
		e.logger.Warn("watcher signal unavailable, defaulted to maximum risk",
			"entity_key", req.EntityKey,
			"watcher", missing.Watcher,
			"error", missing,
		)
		if e.metrics != nil {
			e.metrics.RecordMissingSignal(missing.Watcher)
		}
	}

	blend := watcher.BlendSignals(obs)

	cost := e.wall.Cost(asn.Distance)
	friction := e.wall.Friction(cost)

	factors := gate.Factors{
		PQC:      req.Attestation,
		Harm:     1 - req.HarmScore,
		Drift:    math.Exp(-obs.Drift),
		Triadic:  blend.Stable,
		Spectral: gate.SpectralCoherence(obs.History),
	}.Clamp()

	omega := factors.Omega()
	weakest := factors.WeakestLock()
	decision := decisionFor(omega, e.tauAllow, e.tauQuarantine)

	// Abandon before commit if the caller gave up: no state mutation, no
	// ledger record.
	select {
	case <-ctx.Done():
		release(nil)
		return nil, ctx.Err()
	default:
	}

	outcome := e.exile.Outcome(ctx, req.EntityKey, decision, started)
	release(st)

	env := &Envelope{
		Decision:        decision,
		Omega:           omega,
		Watchers:        obs.Signals,
		OmegaFactors:    factors,
		Friction:        friction,
		PermissionColor: colorFor(omega, e.tauAllow, e.tauQuarantine),
		WeakestLock:     weakest.String(),
		LedgerOutcome:   outcome,
		EvaluationID:    e.newID(),
		EvaluatedAt:     started,
	}

	e.commit(ctx, req.EntityKey, env, started)
	return env, nil
}

// Reinstate lifts an entity's exile. It reports whether the entity was
// exiled.
func (e *Engine) Reinstate(ctx context.Context, entityKey string) (bool, error) {
	return e.exile.Reinstate(ctx, entityKey)
}

// failClosed produces the standard DENY envelope for an evaluation whose
// geometry or classification failed. The envelope carries zeroed factors
// and exactly the same field set as a threshold denial, so the cause of the
// denial is not observable from the response.
func (e *Engine) failClosed(ctx context.Context, entityKey string, started time.Time) (*Envelope, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	factors := gate.Factors{}
	outcome := e.exile.Outcome(ctx, entityKey, Deny, started)

	env := &Envelope{
		Decision:        Deny,
		Omega:           0,
		Watchers:        watcher.Signals{},
		OmegaFactors:    factors,
		Friction:        e.wall.Friction(0),
		PermissionColor: ColorRed,
		WeakestLock:     factors.WeakestLock().String(),
		LedgerOutcome:   outcome,
		EvaluationID:    e.newID(),
		EvaluatedAt:     started,
	}

	e.commit(ctx, entityKey, env, started)
	return env, nil
}

// commit records the envelope in the ledger and telemetry. Ledger failures
// are logged and counted, never surfaced to the caller.
func (e *Engine) commit(ctx context.Context, entityKey string, env *Envelope, started time.Time) {
	_, span := e.startSpan(ctx, "decision.commit",
		trace.WithAttributes(
			attribute.String("decision", string(env.Decision)),
			attribute.String("ledger_outcome", string(env.LedgerOutcome)),
		),
	)
	defer span.End()

	record := &ledger.Record{
		ID:            env.EvaluationID,
		EntityKey:     entityKey,
		Decision:      string(env.Decision),
		LedgerOutcome: string(env.LedgerOutcome),
		Omega:         env.Omega,
		Factors:       env.OmegaFactors,
		Watchers:      env.Watchers,
		Friction:      env.Friction,
		WeakestLock:   env.WeakestLock,
		Timestamp:     env.EvaluatedAt,
	}

	err := e.appender.Append(record)
	if err != nil {
		e.logger.Error("ledger append failed, decision still returned",
			"entity_key", entityKey,
			"evaluation_id", env.EvaluationID,
			"error", err,
		)
	}

	if e.metrics != nil {
		e.metrics.RecordEvaluation(
			string(env.Decision),
			string(env.LedgerOutcome),
			env.Omega,
			env.WeakestLock,
			e.now().Sub(started),
		)
		e.metrics.RecordSignals(env.Watchers.Fast, env.Watchers.Memory, env.Watchers.Governance, env.Watchers.DTri)
		e.metrics.RecordLedgerAppend(err)
		e.metrics.SetStateStoreSize(e.store.Len())
		e.metrics.SetStateStoreEvictions(e.store.Evicted())
	}
}

// embedPoint runs the radial embedding stage under its own span.
func (e *Engine) embedPoint(ctx context.Context, raw []float64) (geometry.Vector, error) {
	_, span := e.startSpan(ctx, "decision.embed")
	defer span.End()
	return e.embedder.Embed(geometry.Vector(raw))
}

// transformPoint applies the gyrovector translation and rotation.
func (e *Engine) transformPoint(ctx context.Context, u geometry.Vector) geometry.Vector {
	_, span := e.startSpan(ctx, "decision.transform")
	defer span.End()
	return e.gyro.Transform(u)
}

// classifyPoint assigns the point to its nearest realm.
func (e *Engine) classifyPoint(ctx context.Context, u geometry.Vector) (realm.Assignment, error) {
	_, span := e.startSpan(ctx, "decision.classify")
	defer span.End()
	return e.classifier.Classify(u)
}

// observe runs the watcher bank against the entity's working state.
func (e *Engine) observe(ctx context.Context, st *watcher.State, point geometry.Vector, asn realm.Assignment, violations []string) watcher.Observation {
	_, span := e.startSpan(ctx, "decision.watch",
		trace.WithAttributes(attribute.String("realm", asn.Label)),
	)
	defer span.End()
	return e.bank.Observe(st, point, asn, violations, e.now())
}

// startSpan starts a tracing span, degrading to a no-op when no tracer is
// configured.
func (e *Engine) startSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if e.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return e.tracer.Start(ctx, name, opts...)
}
