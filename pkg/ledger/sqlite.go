package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteConfig contains configuration for the SQLite ledger backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite ledger configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/ledger.db",
		MaxOpenConns: 10,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements Storage on SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens (or creates) the ledger database and initializes
// the schema.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: slog.Default().With("component", "ledger.storage.sqlite"),
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Info("SQLite ledger initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)
	return s, nil
}

func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}
	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError("sqlite", "schema_version", err)
	}
	return nil
}

const insertRecord = `
INSERT INTO ledger (
    seq, id, prev_hash, hash, entity_key, decision, ledger_outcome,
    omega, factor_pqc, factor_harm, factor_drift, factor_triadic, factor_spectral,
    watcher_fast, watcher_memory, watcher_governance, watcher_d_tri,
    friction, weakest_lock, timestamp
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Append persists a fully-chained record.
func (s *SQLiteStorage) Append(ctx context.Context, r *Record) error {
	_, err := s.db.ExecContext(ctx, insertRecord,
		r.Seq, r.ID, r.PrevHash, r.Hash, r.EntityKey, r.Decision, r.LedgerOutcome,
		r.Omega, r.Factors.PQC, r.Factors.Harm, r.Factors.Drift, r.Factors.Triadic, r.Factors.Spectral,
		r.Watchers.Fast, r.Watchers.Memory, r.Watchers.Governance, r.Watchers.DTri,
		r.Friction, r.WeakestLock, r.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return NewStorageError("sqlite", "append", err)
	}
	return nil
}

const selectColumns = `
seq, id, prev_hash, hash, entity_key, decision, ledger_outcome,
omega, factor_pqc, factor_harm, factor_drift, factor_triadic, factor_spectral,
watcher_fast, watcher_memory, watcher_governance, watcher_d_tri,
friction, weakest_lock, timestamp
`

func scanRecord(row interface{ Scan(...any) error }) (*Record, error) {
	var r Record
	var ts string
	err := row.Scan(
		&r.Seq, &r.ID, &r.PrevHash, &r.Hash, &r.EntityKey, &r.Decision, &r.LedgerOutcome,
		&r.Omega, &r.Factors.PQC, &r.Factors.Harm, &r.Factors.Drift, &r.Factors.Triadic, &r.Factors.Spectral,
		&r.Watchers.Fast, &r.Watchers.Memory, &r.Watchers.Governance, &r.Watchers.DTri,
		&r.Friction, &r.WeakestLock, &ts,
	)
	if err != nil {
		return nil, err
	}
	r.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Last returns the highest-sequence record, or nil when the ledger is empty.
func (s *SQLiteStorage) Last(ctx context.Context) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM ledger ORDER BY seq DESC LIMIT 1")

	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, NewStorageError("sqlite", "last", err)
	}
	return r, nil
}

// Scan visits every record in ascending sequence order.
func (s *SQLiteStorage) Scan(ctx context.Context, fn func(*Record) error) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+selectColumns+" FROM ledger ORDER BY seq ASC")
	if err != nil {
		return NewStorageError("sqlite", "scan", err)
	}
	defer rows.Close()

	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return NewStorageError("sqlite", "scan", err)
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return NewStorageError("sqlite", "scan", err)
	}
	return nil
}

// Count returns the number of retained records.
func (s *SQLiteStorage) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ledger").Scan(&n); err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return n, nil
}

// PruneBefore removes the chain prefix older than cutoff. The whole-prefix
// rule is enforced in SQL: only records with sequence below the first
// at-or-after-cutoff record are deleted.
func (s *SQLiteStorage) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	cut := cutoff.UTC().Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(ctx, `
DELETE FROM ledger WHERE seq < COALESCE(
    (SELECT MIN(seq) FROM ledger WHERE timestamp >= ?),
    (SELECT MAX(seq)+1 FROM ledger)
) AND timestamp < ?`, cut, cut)
	if err != nil {
		return 0, NewStorageError("sqlite", "prune", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", "prune", err)
	}
	if n > 0 {
		s.logger.Info("ledger prefix pruned", "removed", n, "cutoff", cut)
	}
	return n, nil
}

// Close releases the database handle.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
