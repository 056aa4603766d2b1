// Package config provides configuration loading, validation, and hot reload
// for the Hyperion governance engine.
//
// # Loading
//
// Configuration is YAML with environment variable overrides:
//
//	cfg, err := config.Load("hyperion.yaml")
//	cfg, err := config.LoadWithEnvOverrides("hyperion.yaml")
//
// Environment overrides use the HYPERION_SECTION_FIELD convention, e.g.
// HYPERION_ENGINE_TAU_ALLOW or HYPERION_LEDGER_PATH.
//
// # Required vs Defaulted
//
// The governance sections (engine, realms, watchers, exile) have NO silent
// defaults: every threshold, epsilon, decay factor, and realm center must be
// stated explicitly, and Validate rejects a configuration that omits one.
// Only ambient tuning (ledger buffers, telemetry, sweep intervals) is
// defaulted by ApplyDefaults.
//
// Permission colors deliberately have no configuration of their own: the
// display thresholds ARE tau_allow and tau_quarantine. A separate color
// table could drift from the decision thresholds, which is treated as a
// configuration error, so the option does not exist.
//
// # Hot Reload
//
// Watch observes the config file with fsnotify and invokes a callback with
// the re-loaded, re-validated configuration. A reload that fails validation
// is logged and discarded, keeping the previous configuration active.
package config
