package ingest

import (
	"context"
	"time"

	"github.com/MasterOfBinary/gobulk/bulk"
)

const (
	// StartBlock is the reserved token that opens an explicit block.
	StartBlock = "{"

	// EndBlock is the reserved token that closes an explicit block.
	EndBlock = "}"
)

// route forwards a single non-empty line to the engine, either as a block
// marker or as an ordinary command stamped with the current time.
func route(ctx context.Context, e *bulk.Engine, line string, now func() time.Time) {
	switch line {
	case StartBlock:
		e.EnterBlock(ctx)
	case EndBlock:
		e.ExitBlock(ctx)
	default:
		e.Submit(ctx, bulk.Command{Text: line, CreatedAt: now()})
	}
}
