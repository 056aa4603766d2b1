package ledger

import (
	"errors"
	"fmt"
)

// ErrBufferFull reports that the async append buffer was full and the record
// was dropped without being enqueued.
var ErrBufferFull = errors.New("append buffer full")

// StorageError represents a failure in the ledger storage backend.
type StorageError struct {
	Backend   string // "memory" or "sqlite"
	Operation string // Operation that failed ("append", "scan", "prune", ...)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("ledger storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{Backend: backend, Operation: operation, Cause: cause}
}

// WriteError represents a ledger append that could not be completed from the
// decision path. It is non-blocking by contract: the decision is still
// returned and the write is retried or escalated out of band.
type WriteError struct {
	RecordID string // Evaluation UUID
	Cause    error  // Underlying error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("ledger write failure [record_id=%s]: %v", e.RecordID, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

// NewWriteError creates a new WriteError.
func NewWriteError(recordID string, cause error) *WriteError {
	return &WriteError{RecordID: recordID, Cause: cause}
}

// ChainError reports a broken link found during chain verification.
type ChainError struct {
	Seq    uint64 // Sequence number of the offending record
	Reason string // What is wrong with it
}

// Error implements the error interface.
func (e *ChainError) Error() string {
	return fmt.Sprintf("ledger chain broken at seq=%d: %s", e.Seq, e.Reason)
}

// NewChainError creates a new ChainError.
func NewChainError(seq uint64, reason string) *ChainError {
	return &ChainError{Seq: seq, Reason: reason}
}
