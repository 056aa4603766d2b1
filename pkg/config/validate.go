package config

import (
	"fmt"
	"math"
)

// Validate checks a fully-loaded configuration. Governance parameters are
// strictly required: a zero value that could plausibly mean "unset" is an
// error, not a default.
func Validate(cfg *Config) error {
	if err := validateEngine(&cfg.Engine); err != nil {
		return err
	}
	if err := validateRealms(cfg); err != nil {
		return err
	}
	if err := validateWatchers(&cfg.Watchers); err != nil {
		return err
	}
	if err := validateExile(&cfg.Exile); err != nil {
		return err
	}
	if err := validateLedger(&cfg.Ledger); err != nil {
		return err
	}
	return validateTelemetry(&cfg.Telemetry)
}

func validateEngine(e *EngineConfig) error {
	if e.Alpha <= 0 {
		return fmt.Errorf("engine.alpha is required and must be > 0, got %g", e.Alpha)
	}
	if e.EpsBall <= 0 || e.EpsBall >= 1 {
		return fmt.Errorf("engine.eps_ball is required and must be in (0,1), got %g", e.EpsBall)
	}
	if e.EpsDiv <= 0 || e.EpsDiv >= 1 {
		return fmt.Errorf("engine.eps_div is required and must be in (0,1), got %g", e.EpsDiv)
	}
	if e.HarmonicBase <= 0 || e.HarmonicBase >= 1 {
		return fmt.Errorf("engine.harmonic_base is required and must be in (0,1), got %g", e.HarmonicBase)
	}
	if e.TauAllow <= 0 || e.TauAllow > 1 {
		return fmt.Errorf("engine.tau_allow is required and must be in (0,1], got %g", e.TauAllow)
	}
	if e.TauQuarantine <= 0 || e.TauQuarantine >= e.TauAllow {
		return fmt.Errorf("engine.tau_quarantine is required and must satisfy 0 < tau_quarantine < tau_allow, got %g (tau_allow=%g)",
			e.TauQuarantine, e.TauAllow)
	}
	if e.FrictionCap < 1 {
		return fmt.Errorf("engine.friction_cap must be >= 1, got %g", e.FrictionCap)
	}
	if e.Breathing <= -1 || e.Breathing >= 1 {
		return fmt.Errorf("engine.breathing must be in (-1,1), got %g", e.Breathing)
	}
	if math.IsNaN(e.Phase) || math.IsInf(e.Phase, 0) {
		return fmt.Errorf("engine.phase must be finite")
	}
	if e.Dimension <= 0 {
		return fmt.Errorf("engine.dimension is required and must be > 0, got %d", e.Dimension)
	}
	return nil
}

func validateRealms(cfg *Config) error {
	if len(cfg.Realms) == 0 {
		return fmt.Errorf("realms: at least one trust realm is required")
	}

	seen := make(map[string]bool, len(cfg.Realms))
	for i, r := range cfg.Realms {
		if r.Label == "" {
			return fmt.Errorf("realms[%d]: label is required", i)
		}
		if seen[r.Label] {
			return fmt.Errorf("realms[%d]: duplicate label %q", i, r.Label)
		}
		seen[r.Label] = true

		if len(r.Coordinates) != cfg.Engine.Dimension {
			return fmt.Errorf("realms[%d] (%s): %d coordinates, want engine.dimension=%d",
				i, r.Label, len(r.Coordinates), cfg.Engine.Dimension)
		}
		for j, c := range r.Coordinates {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return fmt.Errorf("realms[%d] (%s): coordinate %d is not finite", i, r.Label, j)
			}
		}
	}
	return nil
}

func validateWatchers(w *WatchersConfig) error {
	if w.MemoryDecay <= 0 || w.MemoryDecay >= 1 {
		return fmt.Errorf("watchers.memory_decay is required and must be in (0,1), got %g", w.MemoryDecay)
	}
	if w.IdleTimeout <= 0 {
		return fmt.Errorf("watchers.idle_timeout is required and must be > 0")
	}
	if w.HistorySize <= 0 {
		return fmt.Errorf("watchers.history_size must be > 0, got %d", w.HistorySize)
	}
	if w.SheafWindow <= 0 {
		return fmt.Errorf("watchers.sheaf_window must be > 0, got %d", w.SheafWindow)
	}
	if len(w.Weights) != 3 {
		return fmt.Errorf("watchers.weights must have exactly 3 entries (fast, memory, governance), got %d", len(w.Weights))
	}
	var sum float64
	for i, wt := range w.Weights {
		if wt < 0 {
			return fmt.Errorf("watchers.weights[%d] must be >= 0, got %g", i, wt)
		}
		sum += wt
	}
	if sum == 0 {
		return fmt.Errorf("watchers.weights must not all be zero")
	}

	for i, r := range w.Rules {
		if r.Name == "" {
			return fmt.Errorf("watchers.rules[%d]: name is required", i)
		}
		switch r.Kind {
		case "norm_ceiling":
			if r.Limit <= 0 || r.Limit >= 1 {
				return fmt.Errorf("watchers.rules[%d] (%s): limit must be in (0,1) for norm_ceiling", i, r.Name)
			}
		case "realm_denylist":
			if len(r.Realms) == 0 {
				return fmt.Errorf("watchers.rules[%d] (%s): realms list is required for realm_denylist", i, r.Name)
			}
		case "external":
			// no extra fields
		default:
			return fmt.Errorf("watchers.rules[%d] (%s): unknown kind %q", i, r.Name, r.Kind)
		}
		if r.Severity <= 0 || r.Severity > 1 {
			return fmt.Errorf("watchers.rules[%d] (%s): severity must be in (0,1], got %g", i, r.Name, r.Severity)
		}
	}
	return nil
}

func validateExile(e *ExileConfig) error {
	if e.Count <= 0 {
		return fmt.Errorf("exile.count is required and must be > 0, got %d", e.Count)
	}
	if e.Window <= 0 {
		return fmt.Errorf("exile.window is required and must be > 0")
	}
	return nil
}

func validateLedger(l *LedgerConfig) error {
	switch l.Backend {
	case "memory":
	case "sqlite":
		if l.Path == "" {
			return fmt.Errorf("ledger.path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("ledger.backend must be \"memory\" or \"sqlite\", got %q", l.Backend)
	}
	if l.Buffer <= 0 {
		return fmt.Errorf("ledger.buffer must be > 0, got %d", l.Buffer)
	}
	if l.WriteTimeout <= 0 {
		return fmt.Errorf("ledger.write_timeout must be > 0")
	}
	if l.RetentionDays < 0 {
		return fmt.Errorf("ledger.retention_days must be >= 0, got %d", l.RetentionDays)
	}
	return nil
}

func validateTelemetry(t *TelemetryConfig) error {
	switch t.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level must be one of debug/info/warn/error, got %q", t.Logging.Level)
	}
	switch t.Logging.Format {
	case "json", "text", "console":
	default:
		return fmt.Errorf("telemetry.logging.format must be one of json/text/console, got %q", t.Logging.Format)
	}

	switch t.Tracing.Sampler {
	case "always", "never":
	case "ratio":
		if t.Tracing.SampleRatio <= 0 || t.Tracing.SampleRatio > 1 {
			return fmt.Errorf("telemetry.tracing.sample_ratio must be in (0,1] for the ratio sampler, got %g", t.Tracing.SampleRatio)
		}
	default:
		return fmt.Errorf("telemetry.tracing.sampler must be one of always/never/ratio, got %q", t.Tracing.Sampler)
	}
	return nil
}
