package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	// Apply defaults
	ApplyDefaults(&cfg)

	// Validate
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention HYPERION_SECTION_FIELD (e.g., HYPERION_ENGINE_TAU_ALLOW).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	// First load from file (this already applies defaults)
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Re-validate after overrides
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format HYPERION_SECTION_FIELD. Realm centers
// and watcher rules are structural and can only come from the file.
func applyEnvOverrides(cfg *Config) {
	// Engine overrides
	if val := os.Getenv("HYPERION_ENGINE_ALPHA"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Engine.Alpha = f
		}
	}
	if val := os.Getenv("HYPERION_ENGINE_HARMONIC_BASE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Engine.HarmonicBase = f
		}
	}
	if val := os.Getenv("HYPERION_ENGINE_TAU_ALLOW"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Engine.TauAllow = f
		}
	}
	if val := os.Getenv("HYPERION_ENGINE_TAU_QUARANTINE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Engine.TauQuarantine = f
		}
	}
	if val := os.Getenv("HYPERION_ENGINE_FRICTION_CAP"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Engine.FrictionCap = f
		}
	}
	if val := os.Getenv("HYPERION_ENGINE_BREATHING"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Engine.Breathing = f
		}
	}
	if val := os.Getenv("HYPERION_ENGINE_PHASE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Engine.Phase = f
		}
	}

	// Watcher overrides
	if val := os.Getenv("HYPERION_WATCHERS_MEMORY_DECAY"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Watchers.MemoryDecay = f
		}
	}
	if val := os.Getenv("HYPERION_WATCHERS_IDLE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watchers.IdleTimeout = d
		}
	}
	if val := os.Getenv("HYPERION_WATCHERS_HISTORY_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Watchers.HistorySize = i
		}
	}
	if val := os.Getenv("HYPERION_WATCHERS_SHEAF_WINDOW"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Watchers.SheafWindow = i
		}
	}

	// Exile overrides
	if val := os.Getenv("HYPERION_EXILE_COUNT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Exile.Count = i
		}
	}
	if val := os.Getenv("HYPERION_EXILE_WINDOW"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Exile.Window = d
		}
	}
	if val := os.Getenv("HYPERION_EXILE_ROSTER_PATH"); val != "" {
		cfg.Exile.RosterPath = val
	}

	// Ledger overrides
	if val := os.Getenv("HYPERION_LEDGER_BACKEND"); val != "" {
		cfg.Ledger.Backend = val
	}
	if val := os.Getenv("HYPERION_LEDGER_PATH"); val != "" {
		cfg.Ledger.Path = val
	}
	if val := os.Getenv("HYPERION_LEDGER_BUFFER"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Ledger.Buffer = i
		}
	}
	if val := os.Getenv("HYPERION_LEDGER_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Ledger.RetentionDays = i
		}
	}
	if val := os.Getenv("HYPERION_LEDGER_PRUNE_SCHEDULE"); val != "" {
		cfg.Ledger.PruneSchedule = val
	}

	// Telemetry overrides
	if val := os.Getenv("HYPERION_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("HYPERION_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("HYPERION_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("HYPERION_TELEMETRY_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("HYPERION_TELEMETRY_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
	if val := os.Getenv("HYPERION_TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
}
