package main

import (
	"fmt"
	"io"

	"github.com/rendis/redbook/internal/logger"
	"github.com/rendis/redbook/internal/tui"
)

func runBrowse(args []string, stderr io.Writer) error {
	fs, cfg, err := newFlagSet("redbook", stderr)
	if err != nil {
		return err
	}
	fs.Usage = func() {
		printUsage(stderr)
		fmt.Fprintf(stderr, "\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	log, closer, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()
	log.Info("session start",
		"species", cfg.Sources.Species,
		"provinces", cfg.Sources.Provinces,
		"version", version)

	return tui.Run(*cfg, log)
}
