package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/hyperion/pkg/config"
)

var reinstateFlags struct {
	list bool
}

var reinstateCmd = &cobra.Command{
	Use:   "reinstate [entity-key]",
	Short: "Lift an entity's exile",
	Long: `Remove an entity from the exile roster so its evaluations resume normal
ledger outcomes. Exile never expires on its own; this command is the only
way back.

Requires a persistent roster (exile.roster_path in the config); an
in-memory roster belongs to a running process and cannot be edited from
outside it.

Examples:
  # Reinstate an entity
  hyperion reinstate agent-1

  # List exiled entities
  hyperion reinstate --list`,
	Args: cobra.MaximumNArgs(1),
	RunE: reinstateEntity,
}

func init() {
	rootCmd.AddCommand(reinstateCmd)

	reinstateCmd.Flags().BoolVarP(&reinstateFlags.list, "list", "l", false, "list exiled entities instead of reinstating")
}

func reinstateEntity(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Exile.RosterPath == "" {
		return fmt.Errorf("no persistent exile roster configured (exile.roster_path)")
	}

	roster, err := openRoster(cfg)
	if err != nil {
		return err
	}
	defer roster.Close()

	ctx := context.Background()

	if reinstateFlags.list {
		entries, err := roster.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list roster: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No entities exiled")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s\texiled %s\n", e.EntityKey, e.ExiledAt.Format("2006-01-02T15:04:05Z07:00"))
		}
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("entity key required (or --list)")
	}
	entityKey := args[0]

	was, err := roster.Reinstate(ctx, entityKey)
	if err != nil {
		return fmt.Errorf("failed to reinstate: %w", err)
	}
	if !was {
		return fmt.Errorf("entity %q is not exiled", entityKey)
	}

	fmt.Printf("✓ Reinstated %s\n", entityKey)
	return nil
}
