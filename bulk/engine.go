package bulk

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Engine accumulates commands into batches and fans each completed batch out
// to all subscribed consumers. A batch completes either when the buffer
// reaches the configured bulk size, or at the boundary of an explicit block:
// entering the outermost block flushes whatever was buffered before it, and
// exiting the outermost block flushes the block's accumulated contents as one
// batch regardless of size. While a block is open the size threshold is
// suppressed entirely, which is what lets a block exceed the bulk size
// without being split.
//
// To create a new Engine, call New. The zero value is not usable.
//
// The mutating operations Submit, EnterBlock, ExitBlock and Close must be
// called from a single goroutine; the engine does not serialize them
// internally. Subscribe and Unsubscribe are safe to call concurrently with an
// in-flight flush. This precondition mirrors a single ingestion loop feeding
// the engine, which is the intended topology.
type Engine struct {
	bulkSize int
	logger   zerolog.Logger
	stats    StatsCollector
	onError  func(error)

	buffer Batch
	depth  int
	closed bool

	// mu guards the subscriber registry and the started flag.
	mu          sync.Mutex
	subscribers []Consumer
	started     bool
}

// New creates an Engine that flushes every bulkSize commands outside of
// explicit blocks. It returns ErrInvalidBulkSize if bulkSize is not positive.
func New(bulkSize int) (*Engine, error) {
	if bulkSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBulkSize, bulkSize)
	}
	return &Engine{
		bulkSize: bulkSize,
		logger:   zerolog.Nop(),
		stats:    &NoOpStatsCollector{},
	}, nil
}

// WithLogger sets the logger used by the engine. If not set, logging is
// disabled.
//
// Panics if called after the engine has accepted input, to prevent data
// races and confusion.
func (e *Engine) WithLogger(logger zerolog.Logger) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		panic("bulk: WithLogger cannot be called after the engine has accepted input")
	}

	e.logger = logger
	return e
}

// WithStats sets a custom stats collector for the engine.
// If not set, no statistics are collected (uses NoOpStatsCollector internally).
//
// Panics if called after the engine has accepted input, to prevent data
// races and confusion.
func (e *Engine) WithStats(stats StatsCollector) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		panic("bulk: WithStats cannot be called after the engine has accepted input")
	}

	if stats != nil {
		e.stats = stats
	}
	return e
}

// WithErrorHook registers a function invoked with a ConsumerError every time
// a consumer delivery fails. The hook runs on the failing consumer's
// goroutine and must be safe for concurrent use.
//
// Panics if called after the engine has accepted input.
func (e *Engine) WithErrorHook(hook func(error)) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		panic("bulk: WithErrorHook cannot be called after the engine has accepted input")
	}

	e.onError = hook
	return e
}

// Submit appends a command to the current batch and notifies all subscribers
// with a snapshot of the in-progress buffer. Outside of a block, reaching the
// bulk size triggers a flush; the call does not return until every consumer
// has finished processing the flushed batch. Submit never fails; after Close
// it is a no-op.
func (e *Engine) Submit(ctx context.Context, cmd Command) {
	if e.closed {
		return
	}
	e.markStarted()

	e.buffer = append(e.buffer, cmd)
	e.stats.RecordCommand()
	e.notify()

	e.logger.Debug().
		Str("command", cmd.Text).
		Int("buffered", len(e.buffer)).
		Msg("command accepted")

	if e.depth == 0 && len(e.buffer) >= e.bulkSize {
		e.flush(ctx)
	}
}

// EnterBlock opens an explicit block. Only the outermost enter has a side
// effect: it flushes whatever was buffered before the block started and
// suspends size-based flushing. Deeper nesting just increments the depth
// counter.
func (e *Engine) EnterBlock(ctx context.Context) {
	if e.closed {
		return
	}
	e.markStarted()

	e.depth++
	if e.depth == 1 {
		e.logger.Debug().Msg("block opened")
		e.flush(ctx)
	}
}

// ExitBlock closes an explicit block. Only the outermost exit has a side
// effect: it flushes the block's accumulated contents as a single batch and
// resumes size-based flushing. An ExitBlock with no matching EnterBlock is
// ignored with a warning; the depth counter never goes below zero.
func (e *Engine) ExitBlock(ctx context.Context) {
	if e.closed {
		return
	}
	e.markStarted()

	if e.depth == 0 {
		e.logger.Warn().Msg("unmatched block end ignored")
		return
	}

	e.depth--
	if e.depth == 0 {
		e.logger.Debug().Msg("block closed")
		e.flush(ctx)
	}
}

// Subscribe adds a consumer to the registry. A nil consumer is ignored.
// Subscribing is safe concurrently with an in-flight flush; the new consumer
// starts receiving batches with the next flush that begins after the
// registration.
func (e *Engine) Subscribe(c Consumer) {
	if c == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.subscribers = append(e.subscribers, c)
}

// Unsubscribe removes a consumer from the registry. Once Unsubscribe returns,
// the consumer receives no deliveries from any flush that starts afterwards;
// a flush already in progress may still deliver to it.
func (e *Engine) Unsubscribe(c Consumer) {
	if c == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i, sub := range e.subscribers {
		if sub == c {
			e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
			return
		}
	}
}

// Close shuts the engine down. If no block is open, any buffered commands are
// flushed exactly once and the joined consumer errors from that final flush
// are returned. If a block is still open, the partial batch is discarded: an
// unterminated block is not considered complete. Close is idempotent, and
// all mutating operations become no-ops afterwards.
func (e *Engine) Close(ctx context.Context) error {
	if e.closed {
		return nil
	}
	e.closed = true

	if e.depth > 0 {
		if n := len(e.buffer); n > 0 {
			e.stats.RecordDiscard(n)
			e.logger.Warn().
				Int("commands", n).
				Int("depth", e.depth).
				Msg("discarding partial batch inside open block")
			e.buffer = nil
		}
		return nil
	}

	return errors.Join(e.flush(ctx)...)
}

// BulkSize returns the configured batch size threshold.
func (e *Engine) BulkSize() int {
	return e.bulkSize
}

// Len returns the number of commands currently buffered.
func (e *Engine) Len() int {
	return len(e.buffer)
}

// Depth returns the current block nesting depth.
func (e *Engine) Depth() int {
	return e.depth
}

// InBlock reports whether an explicit block is currently open.
func (e *Engine) InBlock() bool {
	return e.depth > 0
}

func (e *Engine) markStarted() {
	e.mu.Lock()
	e.started = true
	e.mu.Unlock()
}

// notify hands every subscriber a snapshot of the in-progress buffer. The
// snapshot is shared between subscribers; a consumer that wants to mutate it
// must Clone it first.
func (e *Engine) notify() {
	subs := e.snapshotSubscribers()
	if len(subs) == 0 {
		return
	}

	snapshot := e.buffer.Clone()
	for _, c := range subs {
		c.Update(snapshot)
	}
}

// flush delivers the buffered batch to every subscriber and clears the
// buffer. It snapshots the registry and the buffer up front, calls Update
// synchronously on each subscriber, then runs each subscriber's Process on
// its own goroutine and waits for all of them before returning. An empty
// buffer makes flush a no-op. The returned slice holds one ConsumerError per
// failed delivery; failures never abort sibling consumers or the clear.
func (e *Engine) flush(ctx context.Context) []error {
	if len(e.buffer) == 0 {
		return nil
	}

	batch := e.buffer.Clone()
	subs := e.snapshotSubscribers()

	e.stats.RecordFlushStart(len(batch))
	start := time.Now()
	e.logger.Debug().
		Int("size", len(batch)).
		Int("consumers", len(subs)).
		Msg("flushing batch")

	for _, c := range subs {
		c.Update(batch)
	}

	errCh := make(chan error, len(subs))
	var wg sync.WaitGroup
	for _, c := range subs {
		wg.Add(1)
		go func(c Consumer) {
			defer wg.Done()
			errCh <- e.deliver(ctx, c)
		}(c)
	}
	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		if err != nil {
			errs = append(errs, err)
		}
	}

	e.buffer = nil
	e.stats.RecordFlushComplete(len(batch), time.Since(start))
	e.logger.Debug().
		Int("size", len(batch)).
		Int("errors", len(errs)).
		Dur("took", time.Since(start)).
		Msg("flush complete")

	return errs
}

// deliver runs a single consumer's Process with panic containment. Failures
// are wrapped in a ConsumerError, logged, recorded in stats, and passed to
// the error hook if one is registered.
func (e *Engine) deliver(ctx context.Context, c Consumer) (err error) {
	name := fmt.Sprintf("%T", c)
	defer func() {
		if r := recover(); r != nil {
			err = ConsumerError{Consumer: name, Err: fmt.Errorf("panic: %v", r)}
		}
		if err != nil {
			e.stats.RecordConsumerError()
			e.logger.Error().Err(err).Msg("consumer delivery failed")
			if e.onError != nil {
				e.onError(err)
			}
		}
	}()

	if perr := c.Process(ctx); perr != nil {
		err = ConsumerError{Consumer: name, Err: perr}
	}
	return err
}

func (e *Engine) snapshotSubscribers() []Consumer {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.subscribers) == 0 {
		return nil
	}
	subs := make([]Consumer, len(e.subscribers))
	copy(subs, e.subscribers)
	return subs
}
