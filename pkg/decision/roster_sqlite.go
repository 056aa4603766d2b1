package decision

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteRoster implements Roster using SQLite for persistence, so exile
// stickiness survives process restarts. It is suitable for single-instance
// deployments.
type SQLiteRoster struct {
	db        *sql.DB
	mu        sync.RWMutex
	closeOnce sync.Once

	// preparedStatements contains pre-compiled SQL statements
	existsStmt    *sql.Stmt
	exileStmt     *sql.Stmt
	reinstateStmt *sql.Stmt
	listStmt      *sql.Stmt
}

// NewSQLiteRoster opens (creating if necessary) a roster database at path.
func NewSQLiteRoster(path string) (*SQLiteRoster, error) {
	if path == "" {
		return nil, fmt.Errorf("roster path cannot be empty")
	}

	// Open database with WAL mode and busy timeout
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster database: %w", err)
	}

	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	r := &SQLiteRoster{db: db}

	if err := r.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize roster schema: %w", err)
	}

	if err := r.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare roster statements: %w", err)
	}

	return r, nil
}

// initSchema creates the roster schema if it doesn't exist.
func (r *SQLiteRoster) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exile_roster (
		entity_key TEXT PRIMARY KEY,
		exiled_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_exiled_at ON exile_roster(exiled_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// prepareStatements prepares SQL statements for reuse.
func (r *SQLiteRoster) prepareStatements() error {
	var err error

	r.existsStmt, err = r.db.Prepare(`SELECT 1 FROM exile_roster WHERE entity_key = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare exists statement: %w", err)
	}

	r.exileStmt, err = r.db.Prepare(`
		INSERT INTO exile_roster (entity_key, exiled_at)
		VALUES (?, ?)
		ON CONFLICT (entity_key) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare exile statement: %w", err)
	}

	r.reinstateStmt, err = r.db.Prepare(`DELETE FROM exile_roster WHERE entity_key = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare reinstate statement: %w", err)
	}

	r.listStmt, err = r.db.Prepare(`
		SELECT entity_key, exiled_at FROM exile_roster
		ORDER BY exiled_at ASC, entity_key ASC
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare list statement: %w", err)
	}

	return nil
}

// Exiled reports whether the entity is currently on the roster.
func (r *SQLiteRoster) Exiled(ctx context.Context, entityKey string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var one int
	err := r.existsStmt.QueryRowContext(ctx, entityKey).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query roster: %w", err)
	}
	return true, nil
}

// Exile adds the entity to the roster, keeping the original timestamp if it
// is already present.
func (r *SQLiteRoster) Exile(ctx context.Context, entityKey string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.exileStmt.ExecContext(ctx, entityKey, at.Unix()); err != nil {
		return fmt.Errorf("failed to exile entity: %w", err)
	}
	return nil
}

// Reinstate removes the entity from the roster.
func (r *SQLiteRoster) Reinstate(ctx context.Context, entityKey string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.reinstateStmt.ExecContext(ctx, entityKey)
	if err != nil {
		return false, fmt.Errorf("failed to reinstate entity: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// List returns all roster entries, oldest exile first.
func (r *SQLiteRoster) List(ctx context.Context) ([]Exilee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.listStmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	defer rows.Close()

	var entries []Exilee
	for rows.Next() {
		var key string
		var exiledAt int64
		if err := rows.Scan(&key, &exiledAt); err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}
		entries = append(entries, Exilee{
			EntityKey: key,
			ExiledAt:  time.Unix(exiledAt, 0).UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster rows: %w", err)
	}

	return entries, nil
}

// Close releases the database. Close is idempotent.
func (r *SQLiteRoster) Close() error {
	var closeErr error

	r.closeOnce.Do(func() {
		if r.existsStmt != nil {
			r.existsStmt.Close()
		}
		if r.exileStmt != nil {
			r.exileStmt.Close()
		}
		if r.reinstateStmt != nil {
			r.reinstateStmt.Close()
		}
		if r.listStmt != nil {
			r.listStmt.Close()
		}
		if r.db != nil {
			_, _ = r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = r.db.Close()
		}
	})

	return closeErr
}
