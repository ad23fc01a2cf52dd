// Package consumer contains several implementations of the bulk.Consumer
// interface for common delivery scenarios, including:
//
// - Console: For rendering each batch as a "bulk:" line to a writer
// - Report: For persisting each batch to its own log file atomically
// - Redis: For appending each batch to a Redis list
// - Channel: For forwarding completed batches to an existing channel
// - Collector: For accumulating delivered batches in memory
// - Logging: For wrapping another consumer with delivery logging
// - Nil: For testing timing behavior without side effects
//
// Every implementation follows the Update-then-Process contract: Update
// cheaply records the batch snapshot, Process performs the consumer's effect
// against it. Implementations keep their own reference to the last snapshot,
// so a single consumer instance must not be subscribed to more than one
// engine at a time.
//
// Basic usage of the Console consumer:
//
//	engine, _ := bulk.New(3)
//	engine.Subscribe(consumer.NewConsole(os.Stdout))
package consumer
