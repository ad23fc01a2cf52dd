// Command bulk reads commands from stdin, groups them into bulks of a fixed
// size or by explicit { } blocks, and delivers each bulk to the console and
// to per-bulk report files.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/MasterOfBinary/gobulk/bulk"
	"github.com/MasterOfBinary/gobulk/consumer"
	"github.com/MasterOfBinary/gobulk/ingest"
)

func main() {
	var (
		size    = flag.Int("n", bulk.DefaultBulkSize, "bulk size threshold")
		dir     = flag.String("dir", ".", "directory for bulk report files")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	engine, err := bulk.New(*size)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid bulk size")
	}
	engine.WithLogger(logger)
	engine.Subscribe(consumer.NewReport(*dir))
	engine.Subscribe(consumer.NewConsole(os.Stdout))

	ctx := context.Background()
	if err := ingest.NewScanner(engine).Run(ctx, os.Stdin); err != nil {
		logger.Error().Err(err).Msg("reading input failed")
	}
	if err := engine.Close(ctx); err != nil {
		logger.Error().Err(err).Msg("final flush failed")
		os.Exit(1)
	}
}
