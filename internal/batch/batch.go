package batch

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nudomarinero/DownloadSDSSFindingCharts/internal/chart"
	"github.com/nudomarinero/DownloadSDSSFindingCharts/internal/progress"
	"github.com/nudomarinero/DownloadSDSSFindingCharts/internal/resolver"
)

// DefaultWorkers is the fixed pool size. It is deliberately small and not
// tied to the CPU count: the bound is the name-resolution service's rate
// tolerance, not local compute.
const DefaultWorkers = 10

// Resolver resolves object names to coordinates.
type Resolver interface {
	Resolve(ctx context.Context, name string, wantVelocity bool) (resolver.Result, error)
}

// Fetcher downloads one finding chart.
type Fetcher interface {
	Fetch(ctx context.Context, req chart.Request) (int64, error)
}

// Options configures a batch run.
type Options struct {
	// Workers is the pool size. Default: DefaultWorkers.
	Workers int

	// Width and Height are the chart dimensions in pixels.
	Width, Height int

	// Scale is the base pixel scale in arcsec/pixel, zoom already applied.
	Scale float64

	// RescaleVelocity is the target velocity in km/s for the velocity
	// rescale. Zero disables rescaling.
	RescaleVelocity float64

	// DisplayOptions is the concatenated option string for the cutout
	// service.
	DisplayOptions string

	// Progress is an optional progress reporter.
	Progress *progress.Reporter
}

// TaskFailure records one object that could not be processed.
type TaskFailure struct {
	Object string
	Err    error
}

// RunError is returned after the pool drains when one or more tasks failed.
// Individual failures never stop the other tasks; they are collected here so
// the caller can distinguish partial failure from total success.
type RunError struct {
	Failures []TaskFailure
}

func (e *RunError) Error() string {
	return fmt.Sprintf("batch: %d tasks failed", len(e.Failures))
}

// Runner dispatches tasks to a fixed pool of workers, each running the full
// resolve, scale, fetch sequence for one object at a time.
type Runner struct {
	resolver Resolver
	fetcher  Fetcher
	opts     Options
	log      zerolog.Logger
}

// NewRunner creates a runner.
func NewRunner(r Resolver, f Fetcher, opts Options, log zerolog.Logger) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	return &Runner{
		resolver: r,
		fetcher:  f,
		opts:     opts,
		log:      log,
	}
}

// Run processes all tasks and blocks until the pool drains. Per-task
// failures are collected and returned as *RunError after every task has had
// its chance. Cancellation stops feeding the pool, lets in-flight downloads
// clean up and returns the context error.
func (r *Runner) Run(ctx context.Context, tasks []Task) error {
	jobs := make(chan Task)
	var wg sync.WaitGroup

	var mu sync.Mutex
	var failures []TaskFailure

	for i := 0; i < r.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				if err := r.runTask(ctx, t); err != nil {
					r.log.Warn().Str("object", t.Object).Err(err).Msg("task failed")
					mu.Lock()
					failures = append(failures, TaskFailure{Object: t.Object, Err: err})
					mu.Unlock()
				}
			}
		}()
	}

feed:
	for _, t := range tasks {
		select {
		case jobs <- t:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if len(failures) > 0 {
		return &RunError{Failures: failures}
	}
	return nil
}

// runTask processes one object end to end.
func (r *Runner) runTask(ctx context.Context, t Task) error {
	ra, dec := t.RA, t.Dec

	var velocity float64
	var hasVelocity bool

	if !t.HasCoords {
		res, err := r.resolver.Resolve(ctx, t.Object, r.opts.RescaleVelocity > 0)
		if err != nil {
			// No chart is produced for an unresolvable object.
			return err
		}
		ra, dec = res.RA, res.Dec
		velocity, hasVelocity = res.Velocity, res.HasVelocity
	}

	scale := chart.ComputeScale(
		r.opts.Scale,
		r.opts.RescaleVelocity, velocity, hasVelocity,
		t.Size, t.HasSize,
		r.opts.Width, r.opts.Height,
	)

	if r.opts.Progress != nil {
		r.opts.Progress.ChartStarted()
	}

	n, err := r.fetcher.Fetch(ctx, chart.Request{
		RA:     ra,
		Dec:    dec,
		Width:  r.opts.Width,
		Height: r.opts.Height,
		Scale:  scale,
		Opt:    r.opts.DisplayOptions,
		Key:    t.Key,
	})
	if err != nil {
		if r.opts.Progress != nil {
			r.opts.Progress.ChartFailed()
		}
		return err
	}

	if r.opts.Progress != nil {
		r.opts.Progress.ChartCompleted(n)
	}

	r.log.Info().
		Str("object", t.Object).
		Str("chart", t.Key).
		Int64("bytes", n).
		Msg("chart downloaded")

	return nil
}
