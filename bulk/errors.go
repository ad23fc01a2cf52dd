package bulk

import (
	"errors"
	"fmt"
)

// ErrInvalidBulkSize is returned by New when the bulk size is not positive.
var ErrInvalidBulkSize = errors.New("bulk size must be positive")

// ConsumerError is reported when a consumer's Process call fails or panics.
// It wraps the underlying error so the caller can determine which consumer
// it came from.
type ConsumerError struct {
	// Consumer identifies the failing consumer, typically its type name.
	Consumer string

	Err error
}

func (e ConsumerError) Error() string {
	return fmt.Sprintf("consumer %s: %v", e.Consumer, e.Err)
}

func (e ConsumerError) Unwrap() error {
	return e.Err
}
