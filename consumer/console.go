package consumer

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/MasterOfBinary/gobulk/bulk"
)

// Prefix is prepended to every rendered batch line.
const Prefix = "bulk: "

// Console renders each completed batch as a single line of the form
//
//	bulk: cmd1, cmd2, cmd3
//
// to the configured writer.
type Console struct {
	out io.Writer

	mu    sync.Mutex
	batch bulk.Batch
}

// NewConsole creates a Console consumer writing to out. If out is nil,
// os.Stdout is used.
func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{out: out}
}

// Update implements the bulk.Consumer interface.
func (c *Console) Update(batch bulk.Batch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batch = batch
}

// Process implements the bulk.Consumer interface by writing the recorded
// batch as one line.
func (c *Console) Process(_ context.Context) error {
	c.mu.Lock()
	batch := c.batch
	c.mu.Unlock()

	if _, err := fmt.Fprintf(c.out, "%s%s\n", Prefix, batch.Join()); err != nil {
		return fmt.Errorf("render bulk: %w", err)
	}
	return nil
}
