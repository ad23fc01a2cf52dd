package consumer

import (
	"context"
	"sync"

	"github.com/MasterOfBinary/gobulk/bulk"
)

// Channel is a Consumer that sends each completed batch to an output channel.
//
// Ownership of the output channel remains with the caller. Because the
// consumer is unaware of when the engine has been closed, it does not close
// the channel. The caller who created the channel should close it once
// processing is complete.
type Channel struct {
	// Output is the channel that receives each completed batch.
	// If nil, the consumer does nothing.
	Output chan<- bulk.Batch

	// DropWhenFull makes Process silently discard the batch instead of
	// blocking when Output cannot accept it immediately. Use it when a slow
	// receiver must not stall the whole pipeline.
	DropWhenFull bool

	mu    sync.Mutex
	batch bulk.Batch
}

// Update implements the bulk.Consumer interface.
func (c *Channel) Update(batch bulk.Batch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batch = batch
}

// Process implements the bulk.Consumer interface by forwarding the recorded
// batch to the Output channel. The send blocks until the channel accepts the
// batch or the context is canceled, unless DropWhenFull is set.
func (c *Channel) Process(ctx context.Context) error {
	c.mu.Lock()
	batch := c.batch
	c.mu.Unlock()

	if c.Output == nil || len(batch) == 0 {
		return nil
	}

	if c.DropWhenFull {
		select {
		case c.Output <- batch:
		default:
			// receiver not keeping up, drop rather than stall the flush
		}
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case c.Output <- batch:
		return nil
	}
}
