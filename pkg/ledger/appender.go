package ledger

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// AppenderConfig contains configuration for the async ledger appender.
type AppenderConfig struct {
	// Buffer is the size of the async append channel.
	// Default: 1000
	Buffer int

	// WriteTimeout is the per-write storage timeout.
	// Default: 5 seconds
	WriteTimeout time.Duration

	// RetryAttempts is how many times a failed write is retried out of
	// band before the record is dropped with a logged WriteError.
	// Default: 3
	RetryAttempts int

	// RetryDelay is the pause between retry attempts.
	// Default: 250ms
	RetryDelay time.Duration
}

// DefaultAppenderConfig returns the default appender configuration.
func DefaultAppenderConfig() *AppenderConfig {
	return &AppenderConfig{
		Buffer:        1000,
		WriteTimeout:  5 * time.Second,
		RetryAttempts: 3,
		RetryDelay:    250 * time.Millisecond,
	}
}

// Appender is the single append point of the ledger. Concurrent evaluations
// enqueue records; one worker goroutine assigns sequence numbers and chain
// hashes and writes to storage, so the chain can never fork or interleave.
//
// Enqueueing never blocks on storage durability. A full buffer returns a
// WriteError to the caller for logging; the decision has already been made
// and is unaffected.
type Appender struct {
	storage Storage
	config  *AppenderConfig
	logger  *slog.Logger

	recordCh  chan *Record
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once

	// chain head, owned by the worker after Start
	lastSeq  uint64
	lastHash string

	appended atomic.Uint64
	dropped  atomic.Uint64
}

// NewAppender creates an appender over the given storage and recovers the
// chain head from the backend.
func NewAppender(storage Storage, config *AppenderConfig) (*Appender, error) {
	if config == nil {
		config = DefaultAppenderConfig()
	}

	a := &Appender{
		storage:  storage,
		config:   config,
		logger:   slog.Default().With("component", "ledger.appender"),
		recordCh: make(chan *Record, config.Buffer),
		done:     make(chan struct{}),
	}

	// recover the chain head so restarts continue the same chain
	ctx, cancel := context.WithTimeout(context.Background(), config.WriteTimeout)
	defer cancel()
	last, err := storage.Last(ctx)
	if err != nil {
		return nil, err
	}
	if last != nil {
		a.lastSeq = last.Seq
		a.lastHash = last.Hash
	} else {
		a.lastHash = GenesisHash()
	}

	a.wg.Add(1)
	go a.worker()

	a.logger.Info("ledger appender initialized",
		"buffer", config.Buffer,
		"chain_head_seq", a.lastSeq,
	)
	return a, nil
}

// Append enqueues a record for chaining and storage. Seq, PrevHash, and Hash
// are assigned by the worker; any values present on the passed record are
// overwritten. A full buffer drops the record and returns a WriteError
// wrapping ErrBufferFull.
func (a *Appender) Append(record *Record) error {
	select {
	case a.recordCh <- record:
		return nil
	default:
		a.dropped.Add(1)
		err := NewWriteError(record.ID, ErrBufferFull)
		a.logger.Error("ledger buffer full, dropping record",
			"record_id", record.ID,
			"capacity", a.config.Buffer,
		)
		return err
	}
}

// Appended returns the number of records durably written.
func (a *Appender) Appended() uint64 { return a.appended.Load() }

// Dropped returns the number of records dropped (full buffer or exhausted
// retries).
func (a *Appender) Dropped() uint64 { return a.dropped.Load() }

// Close drains the buffer, waits for pending writes, and stops the worker.
// Close is idempotent.
func (a *Appender) Close() error {
	a.closeOnce.Do(func() {
		close(a.done)
		a.wg.Wait()
	})
	return nil
}

// worker drains the record channel, chains each record, and writes it.
func (a *Appender) worker() {
	defer a.wg.Done()

	for {
		select {
		case record := <-a.recordCh:
			a.chainAndWrite(record)

		case <-a.done:
			// drain remaining records before exit
			for {
				select {
				case record := <-a.recordCh:
					a.chainAndWrite(record)
				default:
					return
				}
			}
		}
	}
}

// chainAndWrite assigns the record's chain position and persists it with
// out-of-band retries. Exhausted retries drop the record (logged), keeping
// the chain head unchanged so the next record links to the last durable one.
func (a *Appender) chainAndWrite(record *Record) {
	record.Seq = a.lastSeq + 1
	record.PrevHash = a.lastHash
	// storage round-trips timestamps in UTC; hash the same form that will
	// be read back or Verify sees a different payload than was hashed
	record.Timestamp = record.Timestamp.UTC()
	record.Hash = ChainHash(record)

	var lastErr error
	for attempt := 0; attempt <= a.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(a.config.RetryDelay)
		}

		ctx, cancel := context.WithTimeout(context.Background(), a.config.WriteTimeout)
		lastErr = a.storage.Append(ctx, record)
		cancel()

		if lastErr == nil {
			a.lastSeq = record.Seq
			a.lastHash = record.Hash
			a.appended.Add(1)
			return
		}

		a.logger.Warn("ledger write failed, retrying",
			"record_id", record.ID,
			"attempt", attempt+1,
			"error", lastErr,
		)
	}

	a.dropped.Add(1)
	a.logger.Error("ledger write abandoned after retries",
		"record_id", record.ID,
		"error", NewWriteError(record.ID, lastErr),
	)
}
