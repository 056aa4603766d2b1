package config

import "time"

// ApplyDefaults fills in default values for AMBIENT fields only: ledger
// tuning, telemetry, and watcher window sizes. Governance parameters
// (engine, realms, memory decay, idle timeout, exile) are deliberately left
// untouched; their absence is a validation error, never a default.
func ApplyDefaults(cfg *Config) {
	// Engine: only the friction cap is ambient tuning.
	if cfg.Engine.FrictionCap == 0 {
		cfg.Engine.FrictionCap = 1000
	}

	// Watchers: window sizes and triadic weights.
	if cfg.Watchers.HistorySize == 0 {
		cfg.Watchers.HistorySize = 32
	}
	if cfg.Watchers.SheafWindow == 0 {
		cfg.Watchers.SheafWindow = 8
	}
	if len(cfg.Watchers.Weights) == 0 {
		cfg.Watchers.Weights = []float64{1, 1, 1}
	}

	// Ledger
	if cfg.Ledger.Backend == "" {
		cfg.Ledger.Backend = "sqlite"
	}
	if cfg.Ledger.Path == "" {
		cfg.Ledger.Path = "data/ledger.db"
	}
	if cfg.Ledger.Buffer == 0 {
		cfg.Ledger.Buffer = 1000
	}
	if cfg.Ledger.WriteTimeout == 0 {
		cfg.Ledger.WriteTimeout = 5 * time.Second
	}

	// Telemetry
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = "info"
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = "json"
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = "hyperion"
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = "engine"
	}
	if len(cfg.Telemetry.Metrics.OmegaBuckets) == 0 {
		cfg.Telemetry.Metrics.OmegaBuckets = []float64{
			0.05, 0.15, 0.25, 0.35, 0.45, 0.55, 0.65, 0.75, 0.85, 0.95, 1.0,
		}
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = "hyperion"
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = "localhost:4317"
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = "always"
	}
}
