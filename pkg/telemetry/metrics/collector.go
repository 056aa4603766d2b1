package metrics

import (
	"time"

	"mercator-hq/hyperion/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns all Prometheus metrics for the decision engine. It manages
// metric registration and provides a unified recording interface so the
// engine never touches prometheus types directly.
//
// All recording methods are cheap no-ops when collection is disabled.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Decision metrics
	decisionsTotal     *prometheus.CounterVec
	omegaScore         prometheus.Histogram
	weakestLockTotal   *prometheus.CounterVec
	evaluationDuration prometheus.Histogram

	// Watcher metrics
	watcherSignal       *prometheus.HistogramVec
	missingSignalsTotal *prometheus.CounterVec
	stateEntities       prometheus.Gauge
	stateEvictions      prometheus.Gauge

	// Ledger metrics
	ledgerAppendsTotal *prometheus.CounterVec
}

// NewCollector creates a metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = "hyperion"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "engine"
	}
	if len(cfg.OmegaBuckets) == 0 {
		cfg.OmegaBuckets = []float64{0.05, 0.15, 0.25, 0.35, 0.45, 0.55, 0.65, 0.75, 0.85, 0.95, 1.0}
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.decisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "decisions_total",
		Help:      "Decisions by verdict and ledger outcome.",
	}, []string{"decision", "ledger_outcome"})

	c.omegaScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "omega_score",
		Help:      "Distribution of the five-factor Omega gate score.",
		Buckets:   cfg.OmegaBuckets,
	})

	c.weakestLockTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "weakest_lock_total",
		Help:      "Evaluations by their minimum-valued lock factor.",
	}, []string{"lock"})

	c.evaluationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "evaluation_duration_seconds",
		Help:      "End-to-end evaluation latency.",
		Buckets:   []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
	})

	c.watcherSignal = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "watcher_signal",
		Help:      "Distribution of watcher signals per watcher.",
		Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
	}, []string{"watcher"})

	c.missingSignalsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "missing_signals_total",
		Help:      "Watcher signals defaulted to maximum risk.",
	}, []string{"watcher"})

	c.stateEntities = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "state_entities",
		Help:      "Entities currently tracked in the watcher state store.",
	})

	c.stateEvictions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "state_evictions_total",
		Help:      "Idle watcher states evicted since startup.",
	})

	c.ledgerAppendsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "ledger_appends_total",
		Help:      "Ledger append attempts by status.",
	}, []string{"status"})

	registry.MustRegister(
		c.decisionsTotal,
		c.omegaScore,
		c.weakestLockTotal,
		c.evaluationDuration,
		c.watcherSignal,
		c.missingSignalsTotal,
		c.stateEntities,
		c.stateEvictions,
		c.ledgerAppendsTotal,
	)

	return c
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordEvaluation records metrics for one completed evaluation.
func (c *Collector) RecordEvaluation(decision, ledgerOutcome string, omega float64, weakestLock string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.decisionsTotal.WithLabelValues(decision, ledgerOutcome).Inc()
	c.omegaScore.Observe(omega)
	c.weakestLockTotal.WithLabelValues(weakestLock).Inc()
	c.evaluationDuration.Observe(duration.Seconds())
}

// RecordSignals records the watcher signal distribution for one evaluation.
func (c *Collector) RecordSignals(fast, memory, governance, dtri float64) {
	if !c.config.Enabled {
		return
	}

	c.watcherSignal.WithLabelValues("fast").Observe(fast)
	c.watcherSignal.WithLabelValues("memory").Observe(memory)
	c.watcherSignal.WithLabelValues("governance").Observe(governance)
	c.watcherSignal.WithLabelValues("d_tri").Observe(dtri)
}

// RecordMissingSignal counts a watcher defaulted to maximum risk.
func (c *Collector) RecordMissingSignal(watcher string) {
	if !c.config.Enabled {
		return
	}
	c.missingSignalsTotal.WithLabelValues(watcher).Inc()
}

// RecordLedgerAppend counts a ledger append attempt.
func (c *Collector) RecordLedgerAppend(err error) {
	if !c.config.Enabled {
		return
	}

	status := "ok"
	if err != nil {
		status = "error"
	}
	c.ledgerAppendsTotal.WithLabelValues(status).Inc()
}

// SetStateStoreSize updates the watcher state store size gauge.
func (c *Collector) SetStateStoreSize(n int) {
	if !c.config.Enabled {
		return
	}
	c.stateEntities.Set(float64(n))
}

// SetStateStoreEvictions updates the cumulative eviction gauge from the
// store's own counter.
func (c *Collector) SetStateStoreEvictions(n uint64) {
	if !c.config.Enabled {
		return
	}
	c.stateEvictions.Set(float64(n))
}
