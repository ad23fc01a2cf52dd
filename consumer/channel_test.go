package consumer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MasterOfBinary/gobulk/bulk"
	"github.com/MasterOfBinary/gobulk/consumer"
)

func TestChannel(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards batches", func(t *testing.T) {
		out := make(chan bulk.Batch, 2)
		c := &consumer.Channel{Output: out}

		c.Update(batchOf("cmd1", "cmd2"))
		require.NoError(t, c.Process(ctx))
		c.Update(batchOf("cmd3"))
		require.NoError(t, c.Process(ctx))
		close(out)

		var got [][]string
		for b := range out {
			texts := make([]string, len(b))
			for i, cmd := range b {
				texts[i] = cmd.Text
			}
			got = append(got, texts)
		}
		assert.Equal(t, [][]string{{"cmd1", "cmd2"}, {"cmd3"}}, got)
	})

	t.Run("nil output does nothing", func(t *testing.T) {
		c := &consumer.Channel{}
		c.Update(batchOf("cmd1"))
		assert.NoError(t, c.Process(ctx))
	})

	t.Run("drop when full discards instead of blocking", func(t *testing.T) {
		out := make(chan bulk.Batch, 1)
		c := &consumer.Channel{Output: out, DropWhenFull: true}

		c.Update(batchOf("kept"))
		require.NoError(t, c.Process(ctx))

		// Buffer is now full; the next batch is dropped without blocking.
		c.Update(batchOf("dropped"))
		require.NoError(t, c.Process(ctx))

		got := <-out
		assert.Equal(t, "kept", got.Join())
		select {
		case b := <-out:
			t.Fatalf("expected overflow batch to be dropped, got %q", b.Join())
		default:
		}
	})

	t.Run("blocked send honors cancellation", func(t *testing.T) {
		out := make(chan bulk.Batch) // unbuffered, nobody reading
		c := &consumer.Channel{Output: out}
		c.Update(batchOf("cmd1"))

		cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		err := c.Process(cctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
