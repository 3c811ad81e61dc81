package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nudomarinero/DownloadSDSSFindingCharts/internal/batch"
	"github.com/nudomarinero/DownloadSDSSFindingCharts/internal/config"
)

// runNames fetches finding charts for a list of object names, resolving
// each name to coordinates via the name-resolution service.
func runNames(args []string) int {
	fs := flag.NewFlagSet("names", flag.ExitOnError)

	cf := registerCommon(fs)
	rescale := fs.Float64("rescale", 0, "Rescale charts to this recessional velocity in km/s")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: sdsschart names [options] <input-file>

Fetch a finding chart for every object name in the input file (one name per
line, blank lines skipped). Coordinates are resolved via Simbad; names that
fail to resolve are skipped and reported at the end.

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
	cfg = cfg.Merge(config.Config{RescaleVelocity: *rescale})

	input, err := openInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}
	defer input.Close()

	tasks, err := batch.ParseNameList(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInputFormat
	}

	ctx, cancel := signalContext()
	defer cancel()

	log := setupLogger(cfg, *cf.pretty)
	return executeBatch(ctx, cfg, tasks, log)
}
