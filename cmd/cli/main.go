package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/fin-atlas/pkg/runtime/terminal"
	"github.com/de-tools/fin-atlas/pkg/services/config"
	"github.com/de-tools/fin-atlas/pkg/services/ingest"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// .env is optional for the CLI
	_ = godotenv.Load()

	cfg, err := config.LoadAppConfig(os.Getenv("FINATLAS_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	// Logs go to stderr so that --format json stays parseable.
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	cli := terminal.NewCLI(terminal.Options{
		Config:   *cfg,
		Decoders: ingest.DefaultRegistry(),
		Output:   os.Stdout,
	})

	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
