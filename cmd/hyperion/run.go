package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/hyperion/pkg/config"
	"mercator-hq/hyperion/pkg/decision"
	"mercator-hq/hyperion/pkg/gate"
	"mercator-hq/hyperion/pkg/geometry"
	"mercator-hq/hyperion/pkg/ledger"
	"mercator-hq/hyperion/pkg/realm"
	"mercator-hq/hyperion/pkg/telemetry/logging"
	"mercator-hq/hyperion/pkg/telemetry/metrics"
	"mercator-hq/hyperion/pkg/telemetry/tracing"
	"mercator-hq/hyperion/pkg/watcher"
)

// maxRequestLine bounds a single JSONL request on stdin.
const maxRequestLine = 1 << 20

var runFlags struct {
	logLevel string
	watch    bool
	dryRun   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate JSONL requests from stdin",
	Long: `Read evaluation requests from stdin, one JSON object per line, and write
one decision envelope per request to stdout.

Logs go to stderr so stdout stays a clean envelope stream. The ledger,
exile roster, and retention scheduler are started from the configuration;
on shutdown the ledger buffer is drained before exit.

Examples:
  # Evaluate a stream of requests
  hyperion run < requests.jsonl > envelopes.jsonl

  # Evaluate with config hot reload (realm centers only)
  hyperion run --watch

  # Validate config and wiring without reading stdin
  hyperion run --dry-run`,
	RunE: runEngine,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.watch, "watch", false, "reload realm centers when the config file changes")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config and wiring without evaluating")
}

func runEngine(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:          cfg.Telemetry.Logging.Level,
		Format:         cfg.Telemetry.Logging.Format,
		AddSource:      cfg.Telemetry.Logging.AddSource,
		HashEntityKeys: cfg.Telemetry.Logging.HashEntityKeys,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	slog.SetDefault(logger.Slog())

	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	storage, err := openLedgerStorage(cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	appender, err := ledger.NewAppender(storage, &ledger.AppenderConfig{
		Buffer:       cfg.Ledger.Buffer,
		WriteTimeout: cfg.Ledger.WriteTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize ledger appender: %w", err)
	}
	defer appender.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	retention := ledger.NewRetention(storage, ledger.RetentionConfig{
		RetentionDays: cfg.Ledger.RetentionDays,
		PruneSchedule: cfg.Ledger.PruneSchedule,
	})
	if err := retention.Start(ctx); err != nil {
		return fmt.Errorf("failed to start ledger retention: %w", err)
	}
	defer retention.Stop()

	roster, err := openRoster(cfg)
	if err != nil {
		return err
	}
	defer roster.Close()

	store := watcher.NewStore(watcher.StoreConfig{IdleTimeout: cfg.Watchers.IdleTimeout})
	defer store.Close()

	engine, classifier, err := buildEngine(cfg, store, roster, appender, logger, collector, tracer)
	if err != nil {
		return err
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		fmt.Printf("✓ Realms configured (%d centers)\n", len(cfg.Realms))
		fmt.Printf("✓ Ledger backend: %s\n", cfg.Ledger.Backend)
		return nil
	}

	if runFlags.watch {
		fw, err := config.NewFileWatcher(cfgFile, logger.Slog())
		if err != nil {
			return fmt.Errorf("failed to watch config: %w", err)
		}
		defer fw.Stop()
		go func() {
			err := fw.Watch(ctx, func(next *config.Config) error {
				centers, err := embedCenters(next)
				if err != nil {
					return err
				}
				// only realm centers reload live; everything else
				// needs a restart
				return classifier.Reload(centers)
			})
			if err != nil && ctx.Err() == nil {
				logger.Error("config watcher stopped", "error", err)
			}
		}()
	}

	logger.Info("engine started",
		"realms", len(cfg.Realms),
		"ledger_backend", cfg.Ledger.Backend,
		"exile_count", cfg.Exile.Count,
		"exile_window", cfg.Exile.Window,
	)

	return evaluateStream(ctx, engine, logger)
}

// evaluateStream reads one request per line from stdin and writes one
// envelope per request to stdout, stopping at EOF or signal.
func evaluateStream(ctx context.Context, engine *decision.Engine, logger *logging.Logger) error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestLine)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	var evaluated, malformed int
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			logger.Info("shutting down", "evaluated", evaluated)
			return nil
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req decision.Request
		if err := json.Unmarshal(line, &req); err != nil {
			malformed++
			logger.Warn("malformed request line skipped", "error", err)
			continue
		}

		env, err := engine.Evaluate(ctx, req)
		if err != nil {
			// only context cancellation surfaces as an error
			logger.Info("shutting down", "evaluated", evaluated)
			return nil
		}

		b, err := json.Marshal(env)
		if err != nil {
			logger.Error("envelope marshal failed", "evaluation_id", env.EvaluationID, "error", err)
			continue
		}
		b = append(b, '\n')
		if _, err := out.Write(b); err != nil {
			return fmt.Errorf("stdout write failed: %w", err)
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("stdout flush failed: %w", err)
		}
		evaluated++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stdin read failed: %w", err)
	}

	logger.Info("input drained", "evaluated", evaluated, "malformed", malformed)
	return nil
}

// buildEngine wires the geometry, classifier, watcher bank, wall, and exile
// tracker into a decision engine. The classifier is returned separately so
// the config watcher can reload its centers.
func buildEngine(
	cfg *config.Config,
	store *watcher.Store,
	roster decision.Roster,
	appender *ledger.Appender,
	logger *logging.Logger,
	collector *metrics.Collector,
	tracer *tracing.Tracer,
) (*decision.Engine, *realm.Classifier, error) {
	emb := geometry.NewEmbedder(cfg.Engine.Alpha, cfg.Engine.EpsBall, cfg.Engine.EpsDiv)
	metric := geometry.NewMetric(cfg.Engine.EpsBall, cfg.Engine.EpsDiv)
	gyro := geometry.NewGyro(cfg.Engine.Breathing, cfg.Engine.Phase, cfg.Engine.EpsDiv)

	centers, err := embedCenters(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to embed realm centers: %w", err)
	}
	classifier, err := realm.NewClassifier(metric, centers)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build classifier: %w", err)
	}

	var weights [3]float64
	copy(weights[:], cfg.Watchers.Weights)

	rules := make([]watcher.Rule, 0, len(cfg.Watchers.Rules))
	for _, rc := range cfg.Watchers.Rules {
		rules = append(rules, watcher.Rule{
			Name:     rc.Name,
			Kind:     watcher.RuleKind(rc.Kind),
			Limit:    rc.Limit,
			Realms:   rc.Realms,
			Severity: rc.Severity,
		})
	}

	bank := watcher.NewBank(metric, watcher.Config{
		MemoryDecay: cfg.Watchers.MemoryDecay,
		HistorySize: cfg.Watchers.HistorySize,
		SheafWindow: cfg.Watchers.SheafWindow,
		Weights:     weights,
	}, rules)

	engine := decision.NewEngine(decision.Options{
		Embedder:      emb,
		Gyro:          gyro,
		Classifier:    classifier,
		Store:         store,
		Bank:          bank,
		Wall:          gate.NewWall(cfg.Engine.HarmonicBase, cfg.Engine.FrictionCap),
		Exile:         decision.NewTracker(roster, cfg.Exile.Count, cfg.Exile.Window),
		Appender:      appender,
		TauAllow:      cfg.Engine.TauAllow,
		TauQuarantine: cfg.Engine.TauQuarantine,
		Logger:        logger.Slog(),
		Metrics:       collector,
		Tracer:        tracer,
	})

	return engine, classifier, nil
}

// embedCenters embeds the configured realm centers through the same radial
// map used for context vectors.
func embedCenters(cfg *config.Config) ([]realm.Center, error) {
	emb := geometry.NewEmbedder(cfg.Engine.Alpha, cfg.Engine.EpsBall, cfg.Engine.EpsDiv)
	raw := make([]realm.RawCenter, 0, len(cfg.Realms))
	for _, rc := range cfg.Realms {
		raw = append(raw, realm.RawCenter{Label: rc.Label, Coordinates: rc.Coordinates})
	}
	return realm.EmbedCenters(emb, raw)
}

// openLedgerStorage opens the configured ledger backend.
func openLedgerStorage(cfg *config.Config) (ledger.Storage, error) {
	switch cfg.Ledger.Backend {
	case "sqlite":
		sqliteCfg := ledger.DefaultSQLiteConfig()
		sqliteCfg.Path = cfg.Ledger.Path
		storage, err := ledger.NewSQLiteStorage(sqliteCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open ledger database: %w", err)
		}
		return storage, nil
	case "memory":
		return ledger.NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unsupported ledger backend: %s", cfg.Ledger.Backend)
	}
}

// openRoster opens the exile roster: SQLite when a roster path is
// configured, in-memory otherwise.
func openRoster(cfg *config.Config) (decision.Roster, error) {
	if cfg.Exile.RosterPath == "" {
		return decision.NewMemoryRoster(), nil
	}
	roster, err := decision.NewSQLiteRoster(cfg.Exile.RosterPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open exile roster: %w", err)
	}
	return roster, nil
}
