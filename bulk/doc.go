// Package bulk contains the core command bulking functionality.
// The main type is Engine, which can be created using New. It accumulates
// submitted commands into batches and delivers each completed batch to all
// subscribed Consumer implementations. Some Consumer implementations are
// provided in the consumer package, or you can create your own based on your
// needs.
//
// A batch completes in one of two mutually exclusive ways:
//
//   - Size: outside of a block, the buffer reaching the configured bulk size
//     triggers a flush.
//   - Block: the reserved markers routed to EnterBlock and ExitBlock group an
//     arbitrary number of commands into exactly one batch. While a block is
//     open the size threshold is ignored, so a block is never split.
//
// Blocks nest: only the outermost enter and exit carry side effects, so
//
//	{ a { b c } d }
//
// produces the single batch [a b c d].
//
// Each flush delivers the batch snapshot to every subscriber via Update, then
// runs every subscriber's Process on its own goroutine and waits for all of
// them before returning to the ingestion path. Processing order between
// consumers within one flush is unspecified; order across flushes for the
// same consumer follows arrival order. A slow consumer therefore stalls the
// pipeline - the barrier has no timeout. This is a deliberate simplicity
// trade-off.
//
// On Close, a non-empty buffer is flushed one final time unless a block is
// still open, in which case the partial batch is discarded: an unterminated
// block is not considered complete.
package bulk
