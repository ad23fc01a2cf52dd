package bulk

import (
	"strings"
	"time"
)

// Command is a single textual command together with the time it entered the
// system. Commands are immutable values; copies are cheap and safe to share
// across consumers.
type Command struct {
	// Text is the raw command text.
	Text string

	// CreatedAt is the time at which the command was received.
	CreatedAt time.Time
}

// NewCommand creates a Command with the current time as its creation time.
func NewCommand(text string) Command {
	return Command{
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// Batch is an ordered sequence of commands, insertion order matching arrival
// order. A Batch handed to consumers is a snapshot: the engine never mutates
// it after delivery.
type Batch []Command

// Join renders the batch as a single comma-separated line of command texts,
// for example "cmd1, cmd2, cmd3".
func (b Batch) Join() string {
	var sb strings.Builder
	for i, cmd := range b {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(cmd.Text)
	}
	return sb.String()
}

// Clone returns a copy of the batch that shares no backing storage with the
// receiver. Consumers that retain a batch past Update should clone it.
func (b Batch) Clone() Batch {
	if b == nil {
		return nil
	}
	out := make(Batch, len(b))
	copy(out, b)
	return out
}
