package consumer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/MasterOfBinary/gobulk/bulk"
)

// Logging wraps another consumer and logs delivery timing and outcome.
type Logging struct {
	// Consumer is the wrapped consumer that does the actual work.
	Consumer bulk.Consumer

	// Logger receives the delivery events.
	Logger zerolog.Logger

	// Name is an optional name for this consumer used in log events.
	// If empty, the wrapped consumer's type name is used.
	Name string

	mu   sync.Mutex
	size int
}

// WrapWithLogging wraps a consumer with delivery logging.
//
// Example:
//
//	logger := zerolog.New(os.Stderr)
//	engine.Subscribe(consumer.WrapWithLogging(consumer.NewReport(dir), logger, "report"))
func WrapWithLogging(c bulk.Consumer, logger zerolog.Logger, name string) *Logging {
	return &Logging{
		Consumer: c,
		Logger:   logger,
		Name:     name,
	}
}

func (l *Logging) name() string {
	if l.Name != "" {
		return l.Name
	}
	return fmt.Sprintf("%T", l.Consumer)
}

// Update implements the bulk.Consumer interface by delegating to the wrapped
// consumer.
func (l *Logging) Update(batch bulk.Batch) {
	if l.Consumer == nil {
		return
	}

	l.mu.Lock()
	l.size = len(batch)
	l.mu.Unlock()

	l.Consumer.Update(batch)
}

// Process implements the bulk.Consumer interface by delegating to the wrapped
// consumer and logging the outcome.
func (l *Logging) Process(ctx context.Context) error {
	if l.Consumer == nil {
		return nil
	}

	l.mu.Lock()
	size := l.size
	l.mu.Unlock()

	start := time.Now()
	err := l.Consumer.Process(ctx)
	took := time.Since(start)

	if err != nil {
		l.Logger.Error().
			Str("consumer", l.name()).
			Int("size", size).
			Dur("took", took).
			Err(err).
			Msg("delivery failed")
		return err
	}

	l.Logger.Debug().
		Str("consumer", l.name()).
		Int("size", size).
		Dur("took", took).
		Msg("delivery complete")
	return nil
}
