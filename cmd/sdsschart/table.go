package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nudomarinero/DownloadSDSSFindingCharts/internal/batch"
)

// runTable fetches finding charts for a delimited coordinate table. No name
// resolution happens: the table supplies the coordinates directly.
func runTable(args []string) int {
	fs := flag.NewFlagSet("table", flag.ExitOnError)

	cf := registerCommon(fs)
	sizeColumn := fs.Bool("size-column", false, "Use the size column to pick a per-object scale")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: sdsschart table [options] <input-file>

Fetch a finding chart for every row of a delimited table (comma, blank or
tab separated, with a header row). The first columns named ra* and dec* are
required; an obj*/name*/source*/target* column supplies identifiers,
otherwise rows are numbered from 1. With -size-column, a size* column is
required and sets a per-object scale.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one input file is required")
		fs.Usage()
		return ExitInvalidArgs
	}

	cfg, err := cf.buildConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	input, err := openInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}
	defer input.Close()

	tasks, err := batch.ParseTable(input, *sizeColumn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInputFormat
	}

	ctx, cancel := signalContext()
	defer cancel()

	log := setupLogger(cfg, *cf.pretty)
	return executeBatch(ctx, cfg, tasks, log)
}
