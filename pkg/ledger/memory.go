package ledger

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage is an in-process Storage backend. It is used by tests and
// ephemeral runs; records live in a slice ordered by sequence.
type MemoryStorage struct {
	mu      sync.RWMutex
	records []*Record
}

// NewMemoryStorage creates an empty in-memory ledger backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Append persists a record.
func (m *MemoryStorage) Append(ctx context.Context, record *Record) error {
	if err := ctx.Err(); err != nil {
		return NewStorageError("memory", "append", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := *record
	m.records = append(m.records, &c)
	return nil
}

// Last returns the highest-sequence record, or nil when empty.
func (m *MemoryStorage) Last(ctx context.Context) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.records) == 0 {
		return nil, nil
	}
	c := *m.records[len(m.records)-1]
	return &c, nil
}

// Scan visits every record in ascending sequence order.
func (m *MemoryStorage) Scan(ctx context.Context, fn func(*Record) error) error {
	m.mu.RLock()
	snapshot := make([]*Record, len(m.records))
	copy(snapshot, m.records)
	m.mu.RUnlock()

	for _, r := range snapshot {
		if err := ctx.Err(); err != nil {
			return NewStorageError("memory", "scan", err)
		}
		c := *r
		if err := fn(&c); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of retained records.
func (m *MemoryStorage) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.records)), nil
}

// PruneBefore removes the chain prefix older than cutoff.
func (m *MemoryStorage) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// whole-prefix rule: stop at the first record at or after the cutoff
	n := 0
	for _, r := range m.records {
		if !r.Timestamp.Before(cutoff) {
			break
		}
		n++
	}
	if n == 0 {
		return 0, nil
	}
	m.records = append([]*Record(nil), m.records[n:]...)
	return int64(n), nil
}

// Close releases backend resources.
func (m *MemoryStorage) Close() error {
	return nil
}
