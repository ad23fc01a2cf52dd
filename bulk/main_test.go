package bulk_test

import (
	"testing"

	"go.uber.org/goleak"
)

// Every flush joins its consumer goroutines before returning, so the package
// must not leak any.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
