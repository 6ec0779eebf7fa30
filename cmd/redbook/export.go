package main

import (
	"fmt"
	"io"

	"github.com/rendis/redbook/internal/engine/export"
)

func runExport(args []string, stdout, stderr io.Writer) error {
	fs, cfg, err := newFlagSet("export", stderr)
	if err != nil {
		return err
	}
	var outputPath, format string
	fs.StringVar(&outputPath, "output", "", "Output file path (default: redbook.<ext> in the current directory)")
	fs.StringVar(&format, "format", "csv", "Export format: csv, xlsx or sqlite")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: redbook export [flags]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  redbook export -format xlsx -output redbook.xlsx\n")
		fmt.Fprintf(stderr, "  redbook export -format sqlite && redbook -species redbook.db\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	if outputPath == "" {
		outputPath = export.DefaultPath("redbook", f)
	}

	c, log, err := loadCatalog(cfg, stderr)
	if err != nil {
		return err
	}

	n, err := export.Write(c.Engine(), f, outputPath)
	if err != nil {
		return fmt.Errorf("exporting: %w", err)
	}
	log.Info("export written", "format", f, "path", outputPath, "rows", n)
	_, err = fmt.Fprintf(stdout, "Exported %d rows to %s\n", n, outputPath)
	return err
}
