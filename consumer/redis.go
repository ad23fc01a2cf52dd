package consumer

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/MasterOfBinary/gobulk/bulk"
)

// Redis appends each completed batch to a Redis list: one RPUSH per command
// text, sent as a single pipeline round trip per batch. The list preserves
// command order across batches; batch boundaries are not encoded.
type Redis struct {
	client redis.UniversalClient
	key    string

	mu    sync.Mutex
	batch bulk.Batch
}

// NewRedis creates a Redis consumer that RPUSHes onto the list stored at key.
func NewRedis(client redis.UniversalClient, key string) *Redis {
	return &Redis{
		client: client,
		key:    key,
	}
}

// Update implements the bulk.Consumer interface.
func (c *Redis) Update(batch bulk.Batch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batch = batch
}

// Process implements the bulk.Consumer interface by pushing every command of
// the recorded batch onto the list in one pipelined round trip.
func (c *Redis) Process(ctx context.Context) error {
	c.mu.Lock()
	batch := c.batch
	c.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	for _, cmd := range batch {
		pipe.RPush(ctx, c.key, cmd.Text)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rpush bulk to %s: %w", c.key, err)
	}
	return nil
}
