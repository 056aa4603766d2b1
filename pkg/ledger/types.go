package ledger

import (
	"context"
	"time"

	"mercator-hq/hyperion/pkg/gate"
	"mercator-hq/hyperion/pkg/watcher"
)

// Record is one immutable, hash-chained audit entry. Records are created by
// the Appender (which alone assigns Seq, PrevHash, and Hash) and are never
// mutated or deleted individually; their lifecycle ends only at retention
// pruning of a whole chain prefix.
type Record struct {
	// ID is the evaluation's UUID.
	ID string `json:"id"`

	// Seq is the position in the chain, starting at 1.
	Seq uint64 `json:"seq"`

	// PrevHash is the hex SHA-256 hash of the predecessor record
	// (genesisHash for the first record).
	PrevHash string `json:"prev_hash"`

	// Hash is the hex SHA-256 hash of this record (computed over PrevHash
	// and the canonical payload, with Hash itself blanked).
	Hash string `json:"hash"`

	// EntityKey identifies the evaluated agent/session.
	EntityKey string `json:"entity_key"`

	// Decision is the per-call Omega-threshold decision.
	Decision string `json:"decision"`

	// LedgerOutcome is the recorded outcome including exile escalation.
	// It differs from Decision when the entity is exiled.
	LedgerOutcome string `json:"ledger_outcome"`

	// Omega is the five-factor gate score.
	Omega float64 `json:"omega"`

	// Factors are the five lock factors.
	Factors gate.Factors `json:"factors"`

	// Watchers are the three watcher signals plus the triadic distance.
	Watchers watcher.Signals `json:"watchers"`

	// Friction is the wall-derived friction multiplier.
	Friction float64 `json:"friction"`

	// WeakestLock names the minimum-valued lock factor.
	WeakestLock string `json:"weakest_lock"`

	// Timestamp is when the decision was committed.
	Timestamp time.Time `json:"timestamp"`
}

// Storage is the interface for ledger persistence backends.
// Implementations must be safe for concurrent use; chain ordering is the
// Appender's responsibility, and Append is only ever called from its single
// worker.
type Storage interface {
	// Append persists a fully-chained record.
	Append(ctx context.Context, record *Record) error

	// Last returns the highest-sequence record, or nil when the ledger is
	// empty.
	Last(ctx context.Context) (*Record, error)

	// Scan visits every record in ascending sequence order. Returning an
	// error from fn stops the scan and propagates the error.
	Scan(ctx context.Context, fn func(*Record) error) error

	// Count returns the number of retained records.
	Count(ctx context.Context) (int64, error)

	// PruneBefore removes the chain prefix older than cutoff. Only records
	// forming a whole prefix are removed: pruning stops at the first record
	// at or after the cutoff, so the retained suffix remains a verifiable
	// chain. Returns the number of records removed.
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Close releases backend resources.
	Close() error
}
