package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "hyperion",
	Short: "Hyperion - hyperbolic governance decision engine",
	Long: `Hyperion evaluates agent requests through hyperbolic geometry.

Each request's context vector is embedded into the Poincaré ball, shifted by
a deterministic gyrovector transform, and classified against the configured
trust realms. Three watchers score the entity's behavior, a harmonic wall
prices its distance from the winning realm, and a five-factor multiplicative
Omega gate produces the verdict: ALLOW, QUARANTINE, or DENY. Persistent
offenders are escalated to EXILE in the hash-chained audit ledger.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
