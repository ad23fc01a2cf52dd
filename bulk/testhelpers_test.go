package bulk_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MasterOfBinary/gobulk/bulk"
)

// testConsumer records every Update and Process call and can inject delays,
// errors, or panics.
type testConsumer struct {
	Delay      time.Duration
	ProcessErr error
	PanicWith  interface{}

	// Running and MaxRunning track Process concurrency across consumers
	// sharing the same counters.
	Running    *int32
	MaxRunning *int32

	mu        sync.Mutex
	last      bulk.Batch
	updates   []bulk.Batch
	processed []bulk.Batch
}

func (c *testConsumer) Update(batch bulk.Batch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = batch
	c.updates = append(c.updates, batch)
}

func (c *testConsumer) Process(_ context.Context) error {
	if c.Running != nil {
		n := atomic.AddInt32(c.Running, 1)
		for {
			max := atomic.LoadInt32(c.MaxRunning)
			if n <= max || atomic.CompareAndSwapInt32(c.MaxRunning, max, n) {
				break
			}
		}
		defer atomic.AddInt32(c.Running, -1)
	}

	if c.Delay > 0 {
		time.Sleep(c.Delay)
	}
	if c.PanicWith != nil {
		panic(c.PanicWith)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.processed = append(c.processed, c.last)
	return c.ProcessErr
}

// Processed returns a copy of the batches recorded by Process calls.
func (c *testConsumer) Processed() []bulk.Batch {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]bulk.Batch, len(c.processed))
	copy(out, c.processed)
	return out
}

// Updates returns a copy of the batches recorded by Update calls.
func (c *testConsumer) Updates() []bulk.Batch {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]bulk.Batch, len(c.updates))
	copy(out, c.updates)
	return out
}

// texts flattens a batch to its command texts for easy comparison.
func texts(b bulk.Batch) []string {
	out := make([]string, len(b))
	for i, cmd := range b {
		out[i] = cmd.Text
	}
	return out
}

// submitAll submits each text as a command in order.
func submitAll(ctx context.Context, e *bulk.Engine, cmds ...string) {
	for _, text := range cmds {
		e.Submit(ctx, bulk.NewCommand(text))
	}
}

// equalTexts reports whether a batch consists of exactly the given texts.
func equalTexts(b bulk.Batch, want ...string) bool {
	if len(b) != len(want) {
		return false
	}
	for i, cmd := range b {
		if cmd.Text != want[i] {
			return false
		}
	}
	return true
}
