package ingest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MasterOfBinary/gobulk/bulk"
)

// Session is a connection-style handle over an engine and its consumers: it
// is created with a bulk size and the consumers to attach, accepts raw
// chunks of newline-separated text, and flushes or discards the remaining
// buffer when closed.
//
// Each Receive call splits its chunk independently; a command must not span
// two chunks. Receive calls must come from a single goroutine, matching the
// engine's ingestion precondition.
type Session struct {
	engine *bulk.Engine
	now    func() time.Time

	// mu guards closed.
	mu     sync.Mutex
	closed bool
}

// NewSession creates a Session whose engine flushes every bulkSize commands
// outside of explicit blocks, with the given consumers subscribed. It returns
// an error if bulkSize is not positive.
func NewSession(bulkSize int, consumers ...bulk.Consumer) (*Session, error) {
	engine, err := bulk.New(bulkSize)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	for _, c := range consumers {
		engine.Subscribe(c)
	}
	return &Session{
		engine: engine,
		now:    time.Now,
	}, nil
}

// WithClock replaces the clock used to stamp commands. Useful in tests.
func (s *Session) WithClock(now func() time.Time) *Session {
	if now != nil {
		s.now = now
	}
	return s
}

// Engine returns the underlying engine, for subscribing further consumers or
// reading its state.
func (s *Session) Engine() *bulk.Engine {
	return s.engine
}

// Receive splits data into lines, discards empty ones, and forwards each
// line to the engine: reserved block tokens become block transitions,
// everything else becomes a command. Receiving on a closed session is a
// no-op.
func (s *Session) Receive(ctx context.Context, data string) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}

	for _, line := range strings.Split(data, "\n") {
		if line == "" {
			continue
		}
		route(ctx, s.engine, line, s.now)
	}
}

// Close shuts the session down, flushing any remaining partial batch unless
// a block is still open. It is idempotent and returns the consumer errors of
// the final flush, if any.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return s.engine.Close(ctx)
}
