package bulk

import (
	"sync"
	"sync/atomic"
	"time"
)

// StatsCollector defines the interface for collecting metrics during bulk
// processing. Implementations can store metrics in memory or export them to
// monitoring systems. The StatsCollector is optional - if not provided, no
// statistics are collected.
type StatsCollector interface {
	// RecordCommand is called for each command accepted by the engine.
	RecordCommand()

	// RecordFlushStart is called when a flush begins delivering a batch.
	RecordFlushStart(batchSize int)

	// RecordFlushComplete is called when all consumer tasks of a flush have
	// finished. duration is the time taken by the slowest consumer.
	RecordFlushComplete(batchSize int, duration time.Duration)

	// RecordConsumerError is called when a consumer's Process fails.
	RecordConsumerError()

	// RecordDiscard is called when a partial batch is dropped at shutdown
	// because a block was still open.
	RecordDiscard(batchSize int)

	// GetStats returns a snapshot of the current statistics.
	GetStats() Stats
}

// Stats holds aggregated statistics about bulk processing.
type Stats struct {
	// CommandsAccepted is the total number of commands submitted.
	CommandsAccepted uint64

	// FlushesStarted is the total number of flushes that began delivery.
	FlushesStarted uint64

	// FlushesCompleted is the total number of flushes whose consumer tasks
	// all finished.
	FlushesCompleted uint64

	// CommandsDelivered is the total number of commands delivered across
	// all completed flushes.
	CommandsDelivered uint64

	// ConsumerErrors is the total number of failed consumer deliveries.
	ConsumerErrors uint64

	// CommandsDiscarded is the total number of commands dropped at shutdown
	// inside an open block.
	CommandsDiscarded uint64

	// TotalFlushTime is the cumulative wall time of all completed flushes.
	TotalFlushTime time.Duration

	// MinFlushTime is the fastest completed flush.
	MinFlushTime time.Duration

	// MaxFlushTime is the slowest completed flush.
	MaxFlushTime time.Duration

	// MinBatchSize is the smallest batch flushed.
	MinBatchSize int

	// MaxBatchSize is the largest batch flushed.
	MaxBatchSize int

	// StartTime is when statistics collection began.
	StartTime time.Time

	// LastUpdateTime is when statistics were last updated.
	LastUpdateTime time.Time
}

// NoOpStatsCollector is a stats collector that discards all metrics.
// It implements the StatsCollector interface but performs no operations.
// This is the default stats collector when none is specified.
type NoOpStatsCollector struct{}

// RecordCommand implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordCommand() {}

// RecordFlushStart implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordFlushStart(batchSize int) {}

// RecordFlushComplete implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordFlushComplete(batchSize int, duration time.Duration) {}

// RecordConsumerError implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordConsumerError() {}

// RecordDiscard implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordDiscard(batchSize int) {}

// GetStats implements the StatsCollector interface.
func (n *NoOpStatsCollector) GetStats() Stats {
	return Stats{}
}

// BasicStatsCollector is a simple in-memory implementation of StatsCollector.
// It maintains counters and timing information about bulk processing.
// All operations are thread-safe.
type BasicStatsCollector struct {
	mu    sync.RWMutex
	stats Stats

	// Atomic counters for lock-free updates
	commandsAccepted  uint64
	flushesStarted    uint64
	flushesCompleted  uint64
	commandsDelivered uint64
	consumerErrors    uint64
	commandsDiscarded uint64
}

// NewBasicStatsCollector creates a new BasicStatsCollector.
func NewBasicStatsCollector() *BasicStatsCollector {
	return &BasicStatsCollector{
		stats: Stats{
			StartTime:      time.Now(),
			LastUpdateTime: time.Now(),
			MinFlushTime:   time.Duration(1<<63 - 1), // Max duration as initial value
		},
	}
}

// RecordCommand implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordCommand() {
	atomic.AddUint64(&b.commandsAccepted, 1)
}

// RecordFlushStart implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordFlushStart(batchSize int) {
	atomic.AddUint64(&b.flushesStarted, 1)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.stats.LastUpdateTime = time.Now()

	if batchSize < b.stats.MinBatchSize || b.stats.MinBatchSize == 0 {
		b.stats.MinBatchSize = batchSize
	}
	if batchSize > b.stats.MaxBatchSize {
		b.stats.MaxBatchSize = batchSize
	}
}

// RecordFlushComplete implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordFlushComplete(batchSize int, duration time.Duration) {
	atomic.AddUint64(&b.flushesCompleted, 1)
	atomic.AddUint64(&b.commandsDelivered, uint64(batchSize))

	b.mu.Lock()
	defer b.mu.Unlock()

	b.stats.LastUpdateTime = time.Now()
	b.stats.TotalFlushTime += duration

	if duration < b.stats.MinFlushTime {
		b.stats.MinFlushTime = duration
	}
	if duration > b.stats.MaxFlushTime {
		b.stats.MaxFlushTime = duration
	}
}

// RecordConsumerError implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordConsumerError() {
	atomic.AddUint64(&b.consumerErrors, 1)
}

// RecordDiscard implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordDiscard(batchSize int) {
	atomic.AddUint64(&b.commandsDiscarded, uint64(batchSize))
}

// GetStats implements the StatsCollector interface.
// It returns a snapshot of the current statistics.
func (b *BasicStatsCollector) GetStats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	// Copy the stats and update atomic values
	stats := b.stats
	stats.CommandsAccepted = atomic.LoadUint64(&b.commandsAccepted)
	stats.FlushesStarted = atomic.LoadUint64(&b.flushesStarted)
	stats.FlushesCompleted = atomic.LoadUint64(&b.flushesCompleted)
	stats.CommandsDelivered = atomic.LoadUint64(&b.commandsDelivered)
	stats.ConsumerErrors = atomic.LoadUint64(&b.consumerErrors)
	stats.CommandsDiscarded = atomic.LoadUint64(&b.commandsDiscarded)

	// Fix min flush time if no flushes completed
	if stats.FlushesCompleted == 0 {
		stats.MinFlushTime = 0
	}

	return stats
}

// AverageFlushTime returns the average wall time of a completed flush.
// Returns 0 if no flushes have completed.
func (s *Stats) AverageFlushTime() time.Duration {
	if s.FlushesCompleted == 0 {
		return 0
	}
	return s.TotalFlushTime / time.Duration(s.FlushesCompleted)
}

// AverageBatchSize returns the average size of flushed batches.
// Returns 0 if no flushes have completed.
func (s *Stats) AverageBatchSize() float64 {
	if s.FlushesCompleted == 0 {
		return 0
	}
	return float64(s.CommandsDelivered) / float64(s.FlushesCompleted)
}

// Duration returns the total duration since statistics collection started.
func (s *Stats) Duration() time.Duration {
	return s.LastUpdateTime.Sub(s.StartTime)
}
