package consumer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MasterOfBinary/gobulk/consumer"
)

func TestCollector(t *testing.T) {
	ctx := context.Background()

	t.Run("collects in order", func(t *testing.T) {
		c := &consumer.Collector{}

		c.Update(batchOf("a"))
		require.NoError(t, c.Process(ctx))
		c.Update(batchOf("b", "c"))
		require.NoError(t, c.Process(ctx))

		assert.Equal(t, 2, c.Count())
		batches := c.Batches(false)
		require.Len(t, batches, 2)
		assert.Equal(t, "a", batches[0].Join())
		assert.Equal(t, "b, c", batches[1].Join())
	})

	t.Run("max batches discards overflow", func(t *testing.T) {
		c := &consumer.Collector{MaxBatches: 1}

		c.Update(batchOf("a"))
		require.NoError(t, c.Process(ctx))
		c.Update(batchOf("b"))
		require.NoError(t, c.Process(ctx))

		assert.Equal(t, 1, c.Count())
	})

	t.Run("atomic get and reset", func(t *testing.T) {
		c := &consumer.Collector{}
		c.Update(batchOf("a"))
		require.NoError(t, c.Process(ctx))

		assert.Len(t, c.Batches(true), 1)
		assert.Zero(t, c.Count())
	})

	t.Run("reset clears", func(t *testing.T) {
		c := &consumer.Collector{}
		c.Update(batchOf("a"))
		require.NoError(t, c.Process(ctx))
		c.Reset()
		assert.Zero(t, c.Count())
	})
}
