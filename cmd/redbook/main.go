package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		switch args[0] {
		case "provinces":
			return runProvinces(args[1:], stdout, stderr)
		case "province":
			return runProvince(args[1:], stdout, stderr)
		case "search":
			return runSearch(args[1:], stdout, stderr)
		case "export":
			return runExport(args[1:], stdout, stderr)
		case "version":
			fmt.Fprintln(stdout, "redbook "+version)
			return nil
		case "help":
			printUsage(stderr)
			return nil
		default:
			printUsage(stderr)
			return fmt.Errorf("unknown command %q", args[0])
		}
	}
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		printUsage(stderr)
		return nil
	}

	// No subcommand → launch TUI
	return runBrowse(args, stderr)
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `redbook - endangered species of Bulgaria, by province

Usage:
  redbook [flags]                  Launch interactive map
  redbook provinces [flags]        List provinces with species counts
  redbook province -name <name>    Show the species recorded in a province
  redbook search [-q text]         Search the species catalog
  redbook export [flags]           Export species/province data (csv, xlsx, sqlite)
  redbook version                  Show version

Data flags (all commands):
  -species, -provinces, -names, -name-property, -proxy, -timeout

Settings are also read from .env and REDBOOK_* environment variables.
Run 'redbook <command> -h' for the flags of a command.
`)
}
