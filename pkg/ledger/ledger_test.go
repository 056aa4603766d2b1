package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"mercator-hq/hyperion/pkg/gate"
	"mercator-hq/hyperion/pkg/watcher"
)

func testRecord(id, entity, decision string) *Record {
	return &Record{
		ID:            id,
		EntityKey:     entity,
		Decision:      decision,
		LedgerOutcome: decision,
		Omega:         0.8,
		Factors:       gate.Factors{PQC: 1, Harm: 0.9, Drift: 1, Triadic: 0.9, Spectral: 1},
		Watchers:      watcher.Signals{Fast: 0.1, Memory: 0.1, Governance: 0, DTri: 0.08},
		Friction:      1.2,
		WeakestLock:   "harm",
		Timestamp:     time.Unix(1700000000, 0).UTC(),
	}
}

func TestChainHash_Deterministic(t *testing.T) {
	r := testRecord("r1", "agent-1", "ALLOW")
	r.Seq = 1
	r.PrevHash = GenesisHash()

	h1 := ChainHash(r)
	h2 := ChainHash(r)
	if h1 == "" || h1 != h2 {
		t.Errorf("chain hash not deterministic: %q vs %q", h1, h2)
	}

	// hash covers the payload: any field change must change the hash
	r2 := testRecord("r1", "agent-1", "ALLOW")
	r2.Seq = 1
	r2.PrevHash = GenesisHash()
	r2.Omega = 0.7
	if ChainHash(r2) == h1 {
		t.Error("hash unchanged after payload mutation")
	}
}

func TestAppender_BuildsChain(t *testing.T) {
	storage := NewMemoryStorage()
	a, err := NewAppender(storage, &AppenderConfig{
		Buffer:       16,
		WriteTimeout: time.Second,
		RetryDelay:   time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewAppender error: %v", err)
	}

	for i, id := range []string{"r1", "r2", "r3"} {
		rec := testRecord(id, "agent-1", "ALLOW")
		rec.Timestamp = rec.Timestamp.Add(time.Duration(i) * time.Second)
		if err := a.Append(rec); err != nil {
			t.Fatalf("Append(%s) error: %v", id, err)
		}
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	ctx := context.Background()
	count, err := storage.Count(ctx)
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3 (drain on close lost records)", count)
	}

	result, err := Verify(ctx, storage)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if result.Records != 3 || result.FirstSeq != 1 || result.LastSeq != 3 {
		t.Errorf("verify result = %+v, want 3 records seq 1..3", result)
	}
	if a.Appended() != 3 || a.Dropped() != 0 {
		t.Errorf("appended=%d dropped=%d, want 3/0", a.Appended(), a.Dropped())
	}
}

func TestAppender_RecoversChainHead(t *testing.T) {
	storage := NewMemoryStorage()

	a, err := NewAppender(storage, nil)
	if err != nil {
		t.Fatalf("NewAppender error: %v", err)
	}
	if err := a.Append(testRecord("r1", "agent-1", "ALLOW")); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	a.Close()

	// a second appender over the same storage continues the chain
	a2, err := NewAppender(storage, nil)
	if err != nil {
		t.Fatalf("second NewAppender error: %v", err)
	}
	if err := a2.Append(testRecord("r2", "agent-1", "DENY")); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	a2.Close()

	if _, err := Verify(context.Background(), storage); err != nil {
		t.Errorf("chain broken across appender restart: %v", err)
	}
}

func TestVerify_DetectsTampering(t *testing.T) {
	storage := NewMemoryStorage()
	a, err := NewAppender(storage, nil)
	if err != nil {
		t.Fatalf("NewAppender error: %v", err)
	}
	for _, id := range []string{"r1", "r2", "r3"} {
		if err := a.Append(testRecord(id, "agent-1", "ALLOW")); err != nil {
			t.Fatalf("Append error: %v", err)
		}
	}
	a.Close()

	// tamper with the middle record directly
	storage.mu.Lock()
	storage.records[1].Omega = 0.0001
	storage.mu.Unlock()

	_, err = Verify(context.Background(), storage)
	if err == nil {
		t.Fatal("Verify accepted a tampered chain")
	}
	chainErr, ok := err.(*ChainError)
	if !ok {
		t.Fatalf("expected *ChainError, got %T", err)
	}
	if chainErr.Seq != 2 {
		t.Errorf("broken link reported at seq %d, want 2", chainErr.Seq)
	}
}

func TestMemoryStorage_PruneWholePrefixOnly(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()
	base := time.Unix(1700000000, 0).UTC()

	// timestamps: old, old, NEW, old; the trailing old record is protected
	// by the whole-prefix rule because a newer record precedes it.
	stamps := []time.Time{
		base,
		base.Add(time.Minute),
		base.Add(48 * time.Hour),
		base.Add(time.Hour),
	}
	a, err := NewAppender(storage, nil)
	if err != nil {
		t.Fatalf("NewAppender error: %v", err)
	}
	for i, ts := range stamps {
		rec := testRecord("r", "agent-1", "ALLOW")
		rec.Timestamp = ts
		rec.ID = rec.ID + string(rune('0'+i))
		if err := a.Append(rec); err != nil {
			t.Fatalf("Append error: %v", err)
		}
	}
	a.Close()

	removed, err := storage.PruneBefore(ctx, base.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("PruneBefore error: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2 (only the leading old prefix)", removed)
	}

	// retained suffix must still verify
	result, err := Verify(ctx, storage)
	if err != nil {
		t.Fatalf("suffix verification failed after prune: %v", err)
	}
	if result.Records != 2 || result.FirstSeq != 3 {
		t.Errorf("verify result = %+v, want 2 records starting at seq 3", result)
	}
}

func TestAppender_FullBufferReturnsWriteError(t *testing.T) {
	// a storage that blocks forever would be needed to fill the buffer
	// deterministically; instead start the appender closed so the worker
	// has drained and stopped, then overfill the channel.
	storage := NewMemoryStorage()
	a, err := NewAppender(storage, &AppenderConfig{
		Buffer:       1,
		WriteTimeout: time.Second,
		RetryDelay:   time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewAppender error: %v", err)
	}
	a.Close()

	if err := a.Append(testRecord("r1", "agent-1", "ALLOW")); err != nil {
		t.Fatalf("first append should fit the buffer: %v", err)
	}
	err = a.Append(testRecord("r2", "agent-1", "ALLOW"))
	if err == nil {
		t.Fatal("expected WriteError on full buffer")
	}
	if _, ok := err.(*WriteError); !ok {
		t.Errorf("expected *WriteError, got %T", err)
	}
	if !errors.Is(err, ErrBufferFull) {
		t.Errorf("cause = %v, want ErrBufferFull", err)
	}
}
