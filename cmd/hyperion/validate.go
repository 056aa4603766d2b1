package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/hyperion/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load and validate a configuration file without starting the engine.

Validation covers every section: engine parameters (embedding scale, ball
margins, harmonic base, thresholds), realm centers (labels, dimensions,
coordinates), watcher settings, governance rules, exile policy, ledger
backend, and telemetry. Environment overrides are applied before validation,
so the result reflects what "hyperion run" would actually use.

Examples:
  # Validate the default config
  hyperion validate

  # Validate a specific file
  hyperion validate --config /etc/hyperion/config.yaml`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	// center embedding can fail on values validation alone cannot catch
	if _, err := embedCenters(cfg); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	fmt.Printf("✓ Configuration valid: %s\n", cfgFile)
	fmt.Printf("  Realms:         %d\n", len(cfg.Realms))
	fmt.Printf("  Rules:          %d\n", len(cfg.Watchers.Rules))
	fmt.Printf("  Thresholds:     allow ≥ %.2f, quarantine ≥ %.2f\n", cfg.Engine.TauAllow, cfg.Engine.TauQuarantine)
	fmt.Printf("  Exile:          %d denies in %s\n", cfg.Exile.Count, cfg.Exile.Window)
	fmt.Printf("  Ledger backend: %s\n", cfg.Ledger.Backend)
	return nil
}
