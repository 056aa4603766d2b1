package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// RetentionConfig contains configuration for ledger retention.
type RetentionConfig struct {
	// RetentionDays is how long records are kept. Zero disables pruning.
	RetentionDays int

	// PruneSchedule is a standard cron expression for when pruning runs
	// (e.g., "0 3 * * *" for daily at 3 AM). Empty disables the scheduler.
	PruneSchedule string
}

// Retention prunes old chain prefixes on a cron schedule. Pruning removes
// whole prefixes only, so the retained suffix always remains verifiable.
type Retention struct {
	storage Storage
	config  RetentionConfig
	cron    *cron.Cron
	mu      sync.Mutex
	running bool
	logger  *slog.Logger
}

// NewRetention creates a retention scheduler over the given storage.
func NewRetention(storage Storage, config RetentionConfig) *Retention {
	return &Retention{
		storage: storage,
		config:  config,
		cron:    cron.New(),
		logger:  slog.Default().With("component", "ledger.retention"),
	}
}

// Start begins scheduled pruning. With an empty schedule or zero retention
// the scheduler does nothing.
func (r *Retention) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.config.PruneSchedule == "" || r.config.RetentionDays <= 0 {
		r.logger.Info("ledger retention not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(r.config.PruneSchedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", r.config.PruneSchedule, err)
	}

	_, err := r.cron.AddFunc(r.config.PruneSchedule, func() {
		if _, err := r.PruneOnce(ctx); err != nil {
			r.logger.Error("scheduled ledger pruning failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule ledger pruning: %w", err)
	}

	r.cron.Start()
	r.running = true
	r.logger.Info("ledger retention scheduler started",
		"schedule", r.config.PruneSchedule,
		"retention_days", r.config.RetentionDays,
	)
	return nil
}

// PruneOnce runs a single pruning pass immediately.
func (r *Retention) PruneOnce(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -r.config.RetentionDays)
	removed, err := r.storage.PruneBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		r.logger.Info("ledger retention pass complete",
			"removed", removed,
			"cutoff", cutoff.Format(time.RFC3339),
		)
	}
	return removed, nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (r *Retention) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	stopCtx := r.cron.Stop()
	<-stopCtx.Done()
	r.running = false
}
