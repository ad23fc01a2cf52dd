package consumer

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"

	"github.com/MasterOfBinary/gobulk/bulk"
)

// Report persists each completed batch to its own log file in the configured
// directory. Files are named
//
//	bulk<unix seconds of the first command><suffix>.log
//
// where the suffix is a short random id, so concurrent report writers - or
// two batches flushed within the same second - never collide. Writes are
// atomic: the file appears complete or not at all, even across a crash.
type Report struct {
	dir string

	mu    sync.Mutex
	batch bulk.Batch
}

// NewReport creates a Report consumer writing into dir. An empty dir means
// the current working directory.
func NewReport(dir string) *Report {
	return &Report{dir: dir}
}

// Update implements the bulk.Consumer interface.
func (r *Report) Update(batch bulk.Batch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batch = batch
}

// Process implements the bulk.Consumer interface by writing the recorded
// batch to a new report file.
func (r *Report) Process(_ context.Context) error {
	r.mu.Lock()
	batch := r.batch
	r.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	name := fmt.Sprintf("bulk%d_%s.log", batch[0].CreatedAt.Unix(), uuid.NewString()[:8])
	path := filepath.Join(r.dir, name)

	data := []byte(Prefix + batch.Join())
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", name, err)
	}
	return nil
}
