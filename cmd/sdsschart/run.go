package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/nudomarinero/DownloadSDSSFindingCharts/internal/batch"
	"github.com/nudomarinero/DownloadSDSSFindingCharts/internal/chart"
	"github.com/nudomarinero/DownloadSDSSFindingCharts/internal/config"
	"github.com/nudomarinero/DownloadSDSSFindingCharts/internal/logging"
	"github.com/nudomarinero/DownloadSDSSFindingCharts/internal/progress"
	"github.com/nudomarinero/DownloadSDSSFindingCharts/internal/resolver"
)

// commonFlags holds the flags shared by the names and table commands. Zero
// flag values mean "not set" and leave the config/env/file value in place.
type commonFlags struct {
	width  *int
	height *int
	scale  *float64
	zoom   *float64

	bucket     *string
	configPath *string
	logLevel   *string
	pretty     *bool
	progress   *bool

	grid    *bool
	label   *bool
	invert  *bool
	photo   *bool
	spec    *bool
	outline *bool
	box     *bool
	fields  *bool
	masks   *bool
	plates  *bool
}

// registerCommon defines the shared flags on fs. The display toggles are
// defined in the order their letters are sent to the cutout service.
func registerCommon(fs *flag.FlagSet) *commonFlags {
	cf := &commonFlags{}

	cf.width = fs.Int("width", 0, "Chart width in pixels (overrides config)")
	cf.height = fs.Int("height", 0, "Chart height in pixels (overrides config)")
	cf.scale = fs.Float64("scale", 0, "Base pixel scale in arcsec/pixel (overrides config)")
	cf.zoom = fs.Float64("zoom", 0, "Zoom ratio, divides into the scale (overrides config)")

	cf.bucket = fs.String("bucket", "", "Destination bucket URL (default: working directory)")
	cf.configPath = fs.String("config", "", "Path to a YAML config file")
	cf.logLevel = fs.String("log-level", "", "Log level: debug, info, warn, error")
	cf.pretty = fs.Bool("pretty", false, "Human-readable log output")
	cf.progress = fs.Bool("progress", false, "Show progress output")

	cf.grid = fs.Bool("grid", false, "Draw a coordinate grid (G)")
	cf.label = fs.Bool("label", false, "Draw labels (L)")
	cf.invert = fs.Bool("invert", false, "Invert the image (I)")
	cf.photo = fs.Bool("photo", false, "Mark photometric objects (P)")
	cf.spec = fs.Bool("spec", false, "Mark spectroscopic objects (S)")
	cf.outline = fs.Bool("outline", false, "Draw object outlines (O)")
	cf.box = fs.Bool("box", false, "Draw bounding boxes (B)")
	cf.fields = fs.Bool("fields", false, "Draw field boundaries (F)")
	cf.masks = fs.Bool("masks", false, "Draw masks (M)")
	cf.plates = fs.Bool("plates", false, "Draw plates (Q)")

	return cf
}

// displayOptions collects the toggled display options in definition order.
func (cf *commonFlags) displayOptions() chart.DisplayOptions {
	var d chart.DisplayOptions
	toggles := []struct {
		set *bool
		opt chart.DisplayOption
	}{
		{cf.grid, chart.Grid},
		{cf.label, chart.Label},
		{cf.invert, chart.Invert},
		{cf.photo, chart.PhotoObjs},
		{cf.spec, chart.SpecObjs},
		{cf.outline, chart.Outline},
		{cf.box, chart.BoundingBox},
		{cf.fields, chart.Fields},
		{cf.masks, chart.Masks},
		{cf.plates, chart.Plates},
	}
	for _, t := range toggles {
		if *t.set {
			d.Add(t.opt)
		}
	}
	return d
}

// buildConfig layers file, environment and flag values over the defaults.
func (cf *commonFlags) buildConfig() (config.Config, error) {
	cfg := config.Default()

	if *cf.configPath != "" {
		fileCfg, err := config.LoadFromFile(*cf.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return config.Config{}, err
	}

	cfg = cfg.Merge(config.Config{
		Width:    *cf.width,
		Height:   *cf.height,
		Scale:    *cf.scale,
		Zoom:     *cf.zoom,
		Bucket:   *cf.bucket,
		Options:  cf.displayOptions().String(),
		Progress: *cf.progress,
		LogLevel: *cf.logLevel,
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// setupLogger builds the process logger from the effective config.
func setupLogger(cfg config.Config, pretty bool) zerolog.Logger {
	return logging.Setup(logging.Config{Level: cfg.LogLevel, Pretty: pretty})
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM,
// so an interrupt stops the whole batch and in-flight downloads clean up.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[sdsschart] Received interrupt, shutting down...")
		cancel()
	}()

	return ctx, cancel
}

// openInput opens the positional input path, with "-" meaning stdin.
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

// openBucket opens the destination bucket. An empty URL means the current
// working directory.
func openBucket(ctx context.Context, bucketURL string) (*blob.Bucket, error) {
	if bucketURL == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("working directory: %w", err)
		}
		bucketURL = "file://" + wd
	}
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", bucketURL, err)
	}
	return bucket, nil
}

// executeBatch runs the worker pool over the tasks and maps the outcome to
// an exit code.
func executeBatch(ctx context.Context, cfg config.Config, tasks []batch.Task, log zerolog.Logger) int {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No objects in input")
		return ExitSuccess
	}

	bucket, err := openBucket(ctx, cfg.Bucket)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}
	defer bucket.Close()

	res := resolver.NewClient(resolver.Options{BaseURL: cfg.ResolverURL}, log)
	fetcher := chart.NewFetcher(bucket, chart.Options{BaseURL: cfg.CutoutURL}, log)

	var reporter *progress.Reporter
	if cfg.Progress {
		reporter = progress.NewReporter(progress.Options{
			TotalCharts: len(tasks),
			Workers:     cfg.Workers,
		})
		reporter.Start()
		defer reporter.Stop()
	}

	runner := batch.NewRunner(res, fetcher, batch.Options{
		Workers:         cfg.Workers,
		Width:           cfg.Width,
		Height:          cfg.Height,
		Scale:           cfg.BaseScale(),
		RescaleVelocity: cfg.RescaleVelocity,
		DisplayOptions:  cfg.Options,
		Progress:        reporter,
	}, log)

	err = runner.Run(ctx, tasks)

	switch {
	case err == nil:
		return ExitSuccess
	case ctx.Err() != nil:
		fmt.Fprintln(os.Stderr, "Cancelled")
		return ExitCancelled
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitTaskFailures
	}
}
