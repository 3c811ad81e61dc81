package chart

import (
	"math"
	"testing"
)

func TestComputeScaleVelocityRescale(t *testing.T) {
	got := ComputeScale(0.4, 3000, 1500, true, 0, false, 1024, 1024)
	want := 0.4 * 3000 / 1500
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestComputeScaleZeroVelocityKeepsBase(t *testing.T) {
	if got := ComputeScale(0.4, 3000, 0, true, 0, false, 1024, 1024); got != 0.4 {
		t.Errorf("got %v, want base scale 0.4", got)
	}
}

func TestComputeScaleMissingVelocityKeepsBase(t *testing.T) {
	if got := ComputeScale(0.4, 3000, 0, false, 0, false, 1024, 1024); got != 0.4 {
		t.Errorf("got %v, want base scale 0.4", got)
	}
}

func TestComputeScaleSizeFit(t *testing.T) {
	// size*8 / min(width/2, height/2)
	got := ComputeScale(0.4, 0, 0, false, 30, true, 800, 600)
	want := 30.0 * 8 / 300
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestComputeScaleVelocityWinsOverSize(t *testing.T) {
	// Branches are mutually exclusive, velocity rescale is checked first.
	got := ComputeScale(0.4, 2000, 1000, true, 30, true, 800, 600)
	want := 0.4 * 2000 / 1000
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestComputeScaleDefault(t *testing.T) {
	if got := ComputeScale(0.396127, 0, 0, false, 0, false, 1024, 1024); got != 0.396127 {
		t.Errorf("got %v, want 0.396127", got)
	}
}
