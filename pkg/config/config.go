package config

import "time"

// Config is the root configuration structure for Hyperion. It contains the
// governance engine parameters, realm centers, watcher tuning, exile
// escalation, ledger storage, and telemetry settings.
type Config struct {
	// Engine contains the geometric and gating parameters. Every field is
	// required; there are no silent defaults for governance math.
	Engine EngineConfig `yaml:"engine"`

	// Realms is the fixed list of trust-realm centers. At least one realm
	// is required; an empty list is a fatal startup error.
	Realms []RealmConfig `yaml:"realms"`

	// Watchers contains tuning for the three risk estimators and their
	// per-entity state.
	Watchers WatchersConfig `yaml:"watchers"`

	// Exile contains the DENY-escalation rule.
	Exile ExileConfig `yaml:"exile"`

	// Ledger contains audit ledger storage and retention settings.
	Ledger LedgerConfig `yaml:"ledger"`

	// Telemetry contains logging, metrics, and tracing settings.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// EngineConfig contains the core decision-math parameters.
// All fields are required.
type EngineConfig struct {
	// Alpha is the embedding scale: r = tanh(alpha*‖x‖). Must be > 0.
	Alpha float64 `yaml:"alpha"`

	// EpsBall is the open-ball margin: embedded norms are clamped below
	// 1-eps_ball and norms at or above it are rejected. Must be > 0.
	EpsBall float64 `yaml:"eps_ball"`

	// EpsDiv is the division floor protecting metric denominators, and the
	// norm below which a context vector embeds to the origin. Must be > 0.
	EpsDiv float64 `yaml:"eps_div"`

	// HarmonicBase is the wall decay base R in H(d) = R^(d²).
	// Must satisfy 0 < R < 1.
	HarmonicBase float64 `yaml:"harmonic_base"`

	// TauAllow is the ALLOW threshold on Omega (also the "green" display
	// threshold). Must satisfy tau_quarantine < tau_allow ≤ 1.
	TauAllow float64 `yaml:"tau_allow"`

	// TauQuarantine is the QUARANTINE threshold on Omega (also the "amber"
	// display threshold). Must satisfy 0 < tau_quarantine < tau_allow.
	TauQuarantine float64 `yaml:"tau_quarantine"`

	// FrictionCap bounds the friction multiplier derived from the wall.
	// Default: 1000
	FrictionCap float64 `yaml:"friction_cap"`

	// Breathing is the magnitude of the gyrovector translation applied to
	// every embedded point. Zero disables translation. Must be in (-1,1).
	Breathing float64 `yaml:"breathing"`

	// Phase is the rotation angle (radians) composed with the translation.
	Phase float64 `yaml:"phase"`

	// Dimension is the expected context vector dimension. Must be > 0 and
	// match every realm center.
	Dimension int `yaml:"dimension"`
}

// RealmConfig is one configured trust-realm center. Coordinates are raw
// (pre-embedding) values run through the same embedder as context vectors.
type RealmConfig struct {
	// Label is the trust zone name (e.g., "trusted", "sandbox", "hostile").
	Label string `yaml:"label"`

	// Coordinates are the raw center coordinates, Dimension entries.
	Coordinates []float64 `yaml:"coordinates"`
}

// WatchersConfig contains tuning for the watcher bank and state store.
type WatchersConfig struct {
	// MemoryDecay is the EWMA decay factor for the memory watcher.
	// Required; must be in (0,1).
	MemoryDecay float64 `yaml:"memory_decay"`

	// HistorySize is the per-entity fast-signal history length.
	// Default: 32
	HistorySize int `yaml:"history_size"`

	// SheafWindow is the signal-triple window for cross-watcher
	// consistency.
	// Default: 8
	SheafWindow int `yaml:"sheaf_window"`

	// Weights are the triadic quadratic-mean weights for fast, memory,
	// and governance, in that order.
	// Default: [1, 1, 1]
	Weights []float64 `yaml:"weights"`

	// IdleTimeout is how long an entity may go unobserved before its
	// watcher state is evicted. Required; must be > 0.
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// Rules is the governance rule set. May be empty (no policy means
	// nothing to violate).
	Rules []RuleConfig `yaml:"rules"`
}

// RuleConfig is one governance policy rule.
type RuleConfig struct {
	// Name identifies the rule (and, for external rules, the violation
	// name callers report).
	Name string `yaml:"name"`

	// Kind is "norm_ceiling", "realm_denylist", or "external".
	Kind string `yaml:"kind"`

	// Limit is the norm ceiling (norm_ceiling rules only).
	Limit float64 `yaml:"limit"`

	// Realms lists denylisted realm labels (realm_denylist rules only).
	Realms []string `yaml:"realms"`

	// Severity is the rule's contribution to the governance signal when
	// triggered, in [0,1].
	Severity float64 `yaml:"severity"`
}

// ExileConfig contains the DENY-escalation rule. All fields are required.
type ExileConfig struct {
	// Count is the number of consecutive DENY decisions that triggers
	// exile. Must be > 0.
	Count int `yaml:"count"`

	// Window is the rolling window within which the consecutive DENYs
	// must fall. Must be > 0.
	Window time.Duration `yaml:"window"`

	// RosterPath is the SQLite file persisting the exile roster so exile
	// stickiness survives restarts. Empty keeps the roster in memory only.
	RosterPath string `yaml:"roster_path"`
}

// LedgerConfig contains audit ledger settings.
type LedgerConfig struct {
	// Backend is "memory" or "sqlite".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// Path is the SQLite database path (sqlite backend only).
	// Default: "data/ledger.db"
	Path string `yaml:"path"`

	// Buffer is the async append channel size.
	// Default: 1000
	Buffer int `yaml:"buffer"`

	// WriteTimeout is the per-write storage timeout.
	// Default: 5s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// RetentionDays is how long records are kept. Zero disables pruning.
	RetentionDays int `yaml:"retention_days"`

	// PruneSchedule is the cron expression for retention pruning.
	// Empty disables the scheduler.
	PruneSchedule string `yaml:"prune_schedule"`
}

// TelemetryConfig contains observability settings.
type TelemetryConfig struct {
	// Logging contains structured logging settings.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains OpenTelemetry settings.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text", "console").
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file:line in log output.
	AddSource bool `yaml:"add_source"`

	// HashEntityKeys replaces raw entity keys in log output with a short
	// hash so identifiers never land in logs verbatim.
	HashEntityKeys bool `yaml:"hash_entity_keys"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled controls metric collection.
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric namespace.
	// Default: "hyperion"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem.
	// Default: "engine"
	Subsystem string `yaml:"subsystem"`

	// OmegaBuckets are histogram buckets for the Omega score.
	// Default: 0.05..0.95 in steps of 0.1, plus 1.0
	OmegaBuckets []float64 `yaml:"omega_buckets"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled controls span emission.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ServiceName is the reported service name.
	// Default: "hyperion"
	ServiceName string `yaml:"service_name"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS to the collector.
	Insecure bool `yaml:"insecure"`

	// Sampler is "always", "never", or "ratio".
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio applies when Sampler is "ratio".
	SampleRatio float64 `yaml:"sample_ratio"`
}
