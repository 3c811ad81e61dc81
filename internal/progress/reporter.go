package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Options configures the progress reporter.
type Options struct {
	// TotalCharts is the number of charts in the batch.
	TotalCharts int

	// Workers is the number of parallel workers.
	Workers int

	// Output is where to write progress output.
	// Default: os.Stderr
	Output io.Writer

	// UpdateInterval is how often to update the progress display.
	// Default: 500ms
	UpdateInterval time.Duration
}

// Reporter outputs human-readable progress for a batch of chart downloads.
type Reporter struct {
	opts Options

	mu              sync.Mutex
	completedBytes  atomic.Int64
	completedCharts atomic.Int32
	failedCharts    atomic.Int32
	inProgress      atomic.Int32
	startTime       time.Time
	stopCh          chan struct{}
	stopped         bool
}

// NewReporter creates a new progress reporter.
func NewReporter(opts Options) *Reporter {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.UpdateInterval == 0 {
		opts.UpdateInterval = 500 * time.Millisecond
	}

	return &Reporter{
		opts:   opts,
		stopCh: make(chan struct{}),
	}
}

// Start begins outputting progress information.
func (r *Reporter) Start() {
	r.startTime = time.Now()

	fmt.Fprintf(r.opts.Output, "[sdsschart] Fetching %d charts | Workers: %d\n",
		r.opts.TotalCharts, r.opts.Workers)

	go r.updateLoop()
}

// Stop stops the progress reporter.
func (r *Reporter) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	close(r.stopCh)
}

// ChartStarted marks a chart as in progress.
func (r *Reporter) ChartStarted() {
	r.inProgress.Add(1)
}

// ChartCompleted marks a chart as completed.
func (r *Reporter) ChartCompleted(size int64) {
	r.completedBytes.Add(size)
	r.completedCharts.Add(1)
	r.inProgress.Add(-1)
}

// ChartFailed marks a chart as failed (removes it from in-progress).
func (r *Reporter) ChartFailed() {
	r.failedCharts.Add(1)
	r.inProgress.Add(-1)
}

// updateLoop periodically updates the progress display.
func (r *Reporter) updateLoop() {
	ticker := time.NewTicker(r.opts.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			r.printFinalStatus()
			return
		case <-ticker.C:
			r.printProgress()
		}
	}
}

// printProgress outputs the current progress.
func (r *Reporter) printProgress() {
	completed := int(r.completedCharts.Load())
	failed := int(r.failedCharts.Load())
	inProgress := int(r.inProgress.Load())

	pending := r.opts.TotalCharts - completed - failed - inProgress
	if pending < 0 {
		pending = 0
	}

	fmt.Fprintf(r.opts.Output, "\r[sdsschart] Charts: %d done | %d failed | %d in flight | %d pending | %s    ",
		completed,
		failed,
		inProgress,
		pending,
		formatBytes(r.completedBytes.Load()),
	)
}

// printFinalStatus outputs the final status.
func (r *Reporter) printFinalStatus() {
	completed := int(r.completedCharts.Load())
	failed := int(r.failedCharts.Load())
	duration := time.Since(r.startTime)

	fmt.Fprintf(r.opts.Output, "\r[sdsschart] Charts: %d done | %d failed | %s downloaded    \n",
		completed,
		failed,
		formatBytes(r.completedBytes.Load()),
	)
	fmt.Fprintf(r.opts.Output, "[sdsschart] Total time: %s\n", formatDuration(duration))
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case b >= GB:
		return fmt.Sprintf("%.2f GB", float64(b)/float64(GB))
	case b >= MB:
		return fmt.Sprintf("%.2f MB", float64(b)/float64(MB))
	case b >= KB:
		return fmt.Sprintf("%.2f KB", float64(b)/float64(KB))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatDuration formats a duration as a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

// FormatBytes is exported for use by other packages.
func FormatBytes(b int64) string {
	return formatBytes(b)
}
