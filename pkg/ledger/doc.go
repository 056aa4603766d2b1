// Package ledger provides the hash-chained audit trail for governance
// decisions. Every evaluation appends exactly one immutable record; each
// record carries the SHA-256 hash of its predecessor, so any mutation,
// deletion, or reordering inside the retained window is detectable by replay.
//
// # Append Path
//
// All writes funnel through a single Appender worker: concurrent evaluations
// enqueue onto a buffered channel and the worker alone assigns sequence
// numbers and chain hashes before writing to storage. Decisions never wait
// on durability: a full buffer or failing backend degrades to a logged
// WriteError with out-of-band retries, and the decision is still returned.
//
// # Storage
//
// Two backends implement the Storage interface:
//
//   - memory: bounded in-process slice, used by tests and ephemeral runs
//   - sqlite: durable WAL-mode database (github.com/mattn/go-sqlite3)
//
// # Verification and Retention
//
// Verify replays the chain in sequence order and reports the first broken
// link. Retention prunes whole chain prefixes only (never a middle record),
// so the retained suffix always verifies against its own first record as
// anchor. Pruning runs on a cron schedule.
package ledger
