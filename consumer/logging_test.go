package consumer_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MasterOfBinary/gobulk/bulk"
	"github.com/MasterOfBinary/gobulk/consumer"
)

type failingConsumer struct {
	err error
}

func (c *failingConsumer) Update(bulk.Batch) {}

func (c *failingConsumer) Process(context.Context) error {
	return c.err
}

func TestLogging(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates and logs success", func(t *testing.T) {
		var logBuf, outBuf bytes.Buffer
		logger := zerolog.New(&logBuf).Level(zerolog.DebugLevel)

		l := consumer.WrapWithLogging(consumer.NewConsole(&outBuf), logger, "console")
		l.Update(batchOf("cmd1", "cmd2"))
		require.NoError(t, l.Process(ctx))

		assert.Equal(t, "bulk: cmd1, cmd2\n", outBuf.String())
		assert.Contains(t, logBuf.String(), `"consumer":"console"`)
		assert.Contains(t, logBuf.String(), `"size":2`)
		assert.Contains(t, logBuf.String(), "delivery complete")
	})

	t.Run("logs and returns failure", func(t *testing.T) {
		var logBuf bytes.Buffer
		logger := zerolog.New(&logBuf)

		wantErr := errors.New("sink unavailable")
		l := consumer.WrapWithLogging(&failingConsumer{err: wantErr}, logger, "")
		l.Update(batchOf("cmd1"))

		err := l.Process(ctx)
		assert.ErrorIs(t, err, wantErr)
		assert.Contains(t, logBuf.String(), "delivery failed")
		// Falls back to the wrapped consumer's type name.
		assert.Contains(t, logBuf.String(), "failingConsumer")
	})

	t.Run("nil wrapped consumer is a no-op", func(t *testing.T) {
		l := &consumer.Logging{}
		l.Update(batchOf("cmd1"))
		assert.NoError(t, l.Process(ctx))
	})
}

func TestNil(t *testing.T) {
	ctx := context.Background()

	c := consumer.Nil(0)
	c.Update(batchOf("cmd1"))
	assert.NoError(t, c.Process(ctx))

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	slow := consumer.Nil(time.Minute)
	assert.ErrorIs(t, slow.Process(cctx), context.Canceled)
}
