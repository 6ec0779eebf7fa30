package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rendis/redbook/internal/config"
	"github.com/rendis/redbook/internal/engine/catalog"
	"github.com/rendis/redbook/internal/engine/fetch"
	"github.com/rendis/redbook/internal/logger"
)

// newFlagSet loads the configuration and returns a flag set with the shared
// data flags registered against it.
func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg.RegisterFlags(fs)
	return fs, &cfg, nil
}

// loadCatalog fetches the catalog, logging to stderr. SIGINT/SIGTERM cancel
// the download.
func loadCatalog(cfg *config.Config, stderr io.Writer) (*catalog.Catalog, *slog.Logger, error) {
	log := logger.New(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := catalog.Load(ctx, cfg.Sources, fetch.New(cfg.Fetch), log)
	if err != nil {
		return nil, log, fmt.Errorf("loading data: %w", err)
	}
	return c, log, nil
}
