package ledger

// SchemaVersion is the current ledger database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the ledger schema.
const Schema = `
-- Hash-chained audit records
CREATE TABLE IF NOT EXISTS ledger (
    seq INTEGER PRIMARY KEY,
    id TEXT NOT NULL,
    prev_hash TEXT NOT NULL,
    hash TEXT NOT NULL,

    entity_key TEXT NOT NULL,
    decision TEXT NOT NULL,
    ledger_outcome TEXT NOT NULL,

    omega REAL NOT NULL,
    factor_pqc REAL NOT NULL,
    factor_harm REAL NOT NULL,
    factor_drift REAL NOT NULL,
    factor_triadic REAL NOT NULL,
    factor_spectral REAL NOT NULL,

    watcher_fast REAL NOT NULL,
    watcher_memory REAL NOT NULL,
    watcher_governance REAL NOT NULL,
    watcher_d_tri REAL NOT NULL,

    friction REAL NOT NULL,
    weakest_lock TEXT NOT NULL,

    timestamp TIMESTAMP NOT NULL
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_ledger_entity_key ON ledger(entity_key);
CREATE INDEX IF NOT EXISTS idx_ledger_timestamp ON ledger(timestamp);
CREATE INDEX IF NOT EXISTS idx_ledger_ledger_outcome ON ledger(ledger_outcome);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`
