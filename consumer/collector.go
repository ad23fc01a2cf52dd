package consumer

import (
	"context"
	"sync"

	"github.com/MasterOfBinary/gobulk/bulk"
)

// Collector is a Consumer that accumulates every batch delivered to it.
// It is useful as a sink in tests and tools that want to inspect what the
// engine flushed.
//
// All methods are safe for concurrent use. Collected batches are snapshots
// and are not mutated after collection.
type Collector struct {
	// MaxBatches limits the number of batches collected (0 for unlimited).
	// Once the limit is reached, further batches are discarded.
	MaxBatches int

	mu      sync.RWMutex
	pending bulk.Batch
	batches []bulk.Batch
}

// Update implements the bulk.Consumer interface.
func (c *Collector) Update(batch bulk.Batch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = batch
}

// Process implements the bulk.Consumer interface by collecting the recorded
// batch.
func (c *Collector) Process(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.MaxBatches > 0 && len(c.batches) >= c.MaxBatches {
		return nil
	}
	c.batches = append(c.batches, c.pending)
	return nil
}

// Batches returns a copy of the collected batches and optionally resets the
// collection. With reset=true the retrieval and the clear happen atomically.
func (c *Collector) Batches(reset bool) []bulk.Batch {
	if reset {
		c.mu.Lock()
		defer c.mu.Unlock()
	} else {
		c.mu.RLock()
		defer c.mu.RUnlock()
	}

	out := make([]bulk.Batch, len(c.batches))
	copy(out, c.batches)

	if reset {
		c.batches = nil
	}
	return out
}

// Count returns the number of batches collected so far.
func (c *Collector) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.batches)
}

// Reset clears all collected batches.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = nil
}
