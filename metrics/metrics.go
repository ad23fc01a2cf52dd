// Package metrics exports engine statistics as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MasterOfBinary/gobulk/bulk"
)

const namespace = "gobulk"

// Collector implements bulk.StatsCollector on Prometheus counters and
// histograms. It also keeps an embedded BasicStatsCollector so GetStats
// snapshots stay available to callers that do not scrape.
//
// Example:
//
//	stats := metrics.NewCollector(prometheus.DefaultRegisterer)
//	engine, _ := bulk.New(3)
//	engine.WithStats(stats)
type Collector struct {
	basic *bulk.BasicStatsCollector

	commandsAccepted  prometheus.Counter
	flushesStarted    prometheus.Counter
	flushesCompleted  prometheus.Counter
	commandsDelivered prometheus.Counter
	consumerErrors    prometheus.Counter
	commandsDiscarded prometheus.Counter
	batchSize         prometheus.Histogram
	flushDuration     prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics with reg.
// Registering two Collectors with the same registry panics, as usual with
// promauto.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		basic: bulk.NewBasicStatsCollector(),
		commandsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_accepted_total",
			Help:      "Total number of commands submitted to the engine.",
		}),
		flushesStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flushes_started_total",
			Help:      "Total number of flushes that began delivery.",
		}),
		flushesCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flushes_completed_total",
			Help:      "Total number of flushes whose consumer tasks all finished.",
		}),
		commandsDelivered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_delivered_total",
			Help:      "Total number of commands delivered across completed flushes.",
		}),
		consumerErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "consumer_errors_total",
			Help:      "Total number of failed consumer deliveries.",
		}),
		commandsDiscarded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_discarded_total",
			Help:      "Total number of commands dropped at shutdown inside an open block.",
		}),
		batchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Size of flushed batches.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "flush_duration_seconds",
			Help:      "Wall time of completed flushes, including the slowest consumer.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// RecordCommand implements the bulk.StatsCollector interface.
func (c *Collector) RecordCommand() {
	c.commandsAccepted.Inc()
	c.basic.RecordCommand()
}

// RecordFlushStart implements the bulk.StatsCollector interface.
func (c *Collector) RecordFlushStart(batchSize int) {
	c.flushesStarted.Inc()
	c.batchSize.Observe(float64(batchSize))
	c.basic.RecordFlushStart(batchSize)
}

// RecordFlushComplete implements the bulk.StatsCollector interface.
func (c *Collector) RecordFlushComplete(batchSize int, duration time.Duration) {
	c.flushesCompleted.Inc()
	c.commandsDelivered.Add(float64(batchSize))
	c.flushDuration.Observe(duration.Seconds())
	c.basic.RecordFlushComplete(batchSize, duration)
}

// RecordConsumerError implements the bulk.StatsCollector interface.
func (c *Collector) RecordConsumerError() {
	c.consumerErrors.Inc()
	c.basic.RecordConsumerError()
}

// RecordDiscard implements the bulk.StatsCollector interface.
func (c *Collector) RecordDiscard(batchSize int) {
	c.commandsDiscarded.Add(float64(batchSize))
	c.basic.RecordDiscard(batchSize)
}

// GetStats implements the bulk.StatsCollector interface.
func (c *Collector) GetStats() bulk.Stats {
	return c.basic.GetStats()
}
