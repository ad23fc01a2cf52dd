package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/MasterOfBinary/gobulk/bulk"
)

// Scanner drives an engine from an io.Reader, one command per line.
type Scanner struct {
	engine *bulk.Engine
	now    func() time.Time
}

// NewScanner creates a Scanner feeding the given engine.
func NewScanner(engine *bulk.Engine) *Scanner {
	return &Scanner{
		engine: engine,
		now:    time.Now,
	}
}

// WithClock replaces the clock used to stamp commands. Useful in tests.
func (s *Scanner) WithClock(now func() time.Time) *Scanner {
	if now != nil {
		s.now = now
	}
	return s
}

// Run reads r line by line until EOF or a read error, forwarding every
// non-empty line to the engine. It does not close the engine; the caller
// decides when the session ends.
func (s *Scanner) Run(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		route(ctx, s.engine, line, s.now)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}
	return nil
}
