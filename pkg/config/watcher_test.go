package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCollapsesRapidEvents(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	for i := 0; i < 10; i++ {
		d.Trigger(func() { calls.Add(1) })
	}

	time.Sleep(200 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("callback ran %d times, want 1", got)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(100 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()

	time.Sleep(250 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("callback ran %d times after Stop, want 0", got)
	}
}

func TestFileWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hyperion.yaml")
	if err := os.WriteFile(path, []byte(validYAML), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	fw, err := NewFileWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 1)
	go func() {
		_ = fw.Watch(ctx, func(cfg *Config) error {
			select {
			case reloaded <- cfg:
			default:
			}
			return nil
		})
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	updated := []byte(validYAML + "\ntelemetry:\n  logging:\n    level: debug\n")
	if err := os.WriteFile(path, updated, 0o600); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Telemetry.Logging.Level != "debug" {
			t.Errorf("reloaded Logging.Level = %q, want debug", cfg.Telemetry.Logging.Level)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	if err := fw.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
}

func TestFileWatcherKeepsPreviousConfigOnBadReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hyperion.yaml")
	if err := os.WriteFile(path, []byte(validYAML), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	fw, err := NewFileWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reloads atomic.Int32
	go func() {
		_ = fw.Watch(ctx, func(*Config) error {
			reloads.Add(1)
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)

	// A broken rewrite must not reach the callback.
	if err := os.WriteFile(path, []byte("engine: {alpha: -1}"), 0o600); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	time.Sleep(500 * time.Millisecond)

	if got := reloads.Load(); got != 0 {
		t.Errorf("callback ran %d times for invalid config, want 0", got)
	}

	if err := fw.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
}
