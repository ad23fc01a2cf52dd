package consumer_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MasterOfBinary/gobulk/bulk"
	"github.com/MasterOfBinary/gobulk/consumer"
)

func TestReport(t *testing.T) {
	ctx := context.Background()

	t.Run("writes one file per batch", func(t *testing.T) {
		dir := t.TempDir()
		r := consumer.NewReport(dir)

		created := time.Unix(1700000000, 0)
		r.Update(bulk.Batch{
			{Text: "cmd1", CreatedAt: created},
			{Text: "cmd2", CreatedAt: created.Add(time.Second)},
		})
		require.NoError(t, r.Process(ctx))

		files, err := filepath.Glob(filepath.Join(dir, "bulk*.log"))
		require.NoError(t, err)
		require.Len(t, files, 1)

		// Filename carries the first command's timestamp.
		assert.Contains(t, filepath.Base(files[0]), fmt.Sprintf("bulk%d_", created.Unix()))

		data, err := os.ReadFile(files[0])
		require.NoError(t, err)
		assert.Equal(t, "bulk: cmd1, cmd2", string(data))
	})

	t.Run("same second yields distinct files", func(t *testing.T) {
		dir := t.TempDir()
		r := consumer.NewReport(dir)

		created := time.Unix(1700000000, 0)
		for i := 0; i < 3; i++ {
			r.Update(bulk.Batch{{Text: fmt.Sprintf("cmd%d", i), CreatedAt: created}})
			require.NoError(t, r.Process(ctx))
		}

		files, err := filepath.Glob(filepath.Join(dir, "bulk*.log"))
		require.NoError(t, err)
		assert.Len(t, files, 3)
	})

	t.Run("empty batch writes nothing", func(t *testing.T) {
		dir := t.TempDir()
		r := consumer.NewReport(dir)
		require.NoError(t, r.Process(ctx))

		files, err := filepath.Glob(filepath.Join(dir, "*"))
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("missing directory fails", func(t *testing.T) {
		r := consumer.NewReport(filepath.Join(t.TempDir(), "missing"))
		r.Update(bulk.Batch{{Text: "cmd1", CreatedAt: time.Now()}})
		assert.Error(t, r.Process(ctx))
	})
}
