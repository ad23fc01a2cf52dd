package bulk

import "context"

// Consumer receives completed batches from an Engine. Implementations render
// or persist batches; the engine is agnostic to what Process actually does.
//
// The engine drives each consumer through a two-step contract per completed
// batch: first Update with the batch snapshot, then Process. A consumer is
// never asked to Process without a preceding Update delivering the batch it
// should act on. Between successive batches the engine waits for Process to
// return, so a consumer never sees batch K+1's Update before finishing batch
// K's Process.
//
// Some Consumer implementations are provided in the consumer package, or you
// can create your own based on your needs.
type Consumer interface {
	// Update records the given batch snapshot as the batch to act on next.
	// It must be cheap and must not block on I/O. The engine also calls
	// Update with the in-progress buffer after every submitted command, so
	// consumers can observe accumulation as it happens; only the snapshot
	// delivered at flush time is followed by a Process call.
	//
	// The engine hands each Update a fresh copy, so retaining the slice is
	// safe. Implementations that mutate the batch should Clone it first.
	Update(batch Batch)

	// Process acts on the most recently recorded batch. It may block, may
	// perform I/O, and may take arbitrary time; the engine runs it on its
	// own goroutine. A returned error is contained at the task boundary:
	// it is reported through the engine's error path and does not affect
	// sibling consumers or the engine's own state.
	//
	// Process should respect context cancellation.
	Process(ctx context.Context) error
}
