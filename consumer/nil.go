package consumer

import (
	"context"
	"time"

	"github.com/MasterOfBinary/gobulk/bulk"
)

type nilConsumer struct {
	duration time.Duration
}

// Nil returns a Consumer that discards all batches after a specified
// duration. It can be used as a mock Consumer.
func Nil(duration time.Duration) bulk.Consumer {
	return &nilConsumer{
		duration: duration,
	}
}

// Update discards the batch.
func (c *nilConsumer) Update(_ bulk.Batch) {}

// Process waits for the configured duration or until the context is
// canceled.
func (c *nilConsumer) Process(ctx context.Context) error {
	if c.duration <= 0 {
		return nil
	}

	t := time.NewTimer(c.duration)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
