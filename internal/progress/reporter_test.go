package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
	}

	for _, tt := range tests {
		result := FormatBytes(tt.input)
		if result != tt.expected {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestReporterChartTracking(t *testing.T) {
	reporter := NewReporter(Options{
		TotalCharts:    4,
		Workers:        2,
		UpdateInterval: 100 * time.Millisecond,
		Output:         &bytes.Buffer{},
	})

	reporter.ChartStarted()
	if reporter.inProgress.Load() != 1 {
		t.Errorf("expected 1 in-progress, got %d", reporter.inProgress.Load())
	}

	reporter.ChartCompleted(256)
	if reporter.inProgress.Load() != 0 {
		t.Errorf("expected 0 in-progress after complete, got %d", reporter.inProgress.Load())
	}
	if reporter.completedCharts.Load() != 1 {
		t.Errorf("expected 1 completed, got %d", reporter.completedCharts.Load())
	}
	if reporter.completedBytes.Load() != 256 {
		t.Errorf("expected 256 bytes, got %d", reporter.completedBytes.Load())
	}

	reporter.ChartStarted()
	reporter.ChartFailed()
	if reporter.inProgress.Load() != 0 {
		t.Errorf("expected 0 in-progress after fail, got %d", reporter.inProgress.Load())
	}
	if reporter.failedCharts.Load() != 1 {
		t.Errorf("expected 1 failed, got %d", reporter.failedCharts.Load())
	}
}

func TestReporterStartStop(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(Options{
		TotalCharts:    2,
		Workers:        2,
		UpdateInterval: 10 * time.Millisecond,
		Output:         &buf,
	})

	reporter.Start()

	reporter.ChartStarted()
	reporter.ChartCompleted(1024)
	reporter.ChartStarted()
	reporter.ChartCompleted(1024)

	time.Sleep(50 * time.Millisecond)

	reporter.Stop()
	reporter.Stop() // second Stop must be a no-op

	time.Sleep(20 * time.Millisecond)

	out := buf.String()
	if !strings.Contains(out, "Fetching 2 charts") {
		t.Errorf("missing header in output: %q", out)
	}
	if !strings.Contains(out, "2 done") {
		t.Errorf("missing final status in output: %q", out)
	}
}
