package chart

import "math"

// ComputeScale returns the pixel scale in arcsec/pixel for one chart.
//
// The three branches are mutually exclusive and checked in order:
//
//  1. A velocity rescale applies when a target velocity was requested and a
//     non-zero velocity was resolved: base*target/velocity. This shrinks or
//     grows the field so objects at different distances appear at a
//     comparable physical size.
//  2. A known angular size (coordinate-table mode) picks a scale that fits
//     the object into roughly half of the shorter image dimension:
//     size*8/min(width/2, height/2).
//  3. Otherwise the base scale is used unchanged.
//
// An absent or zero resolved velocity makes the rescale a no-op rather than
// an error.
func ComputeScale(base, rescaleTarget, velocity float64, hasVelocity bool, size float64, hasSize bool, width, height int) float64 {
	switch {
	case rescaleTarget > 0 && hasVelocity && velocity != 0:
		return base * rescaleTarget / velocity
	case hasSize:
		half := math.Min(float64(width)/2, float64(height)/2)
		return size * 8 / half
	default:
		return base
	}
}
