package heatmap

import (
	"image/color"
	"math"
)

// The gradient window is fixed: -90 dBm maps to the red end, -30 dBm to the
// green end. Estimates outside the window clamp to the respective end.
const (
	windowLowDbm  = -90.0
	windowHighDbm = -30.0
)

// Bucket is one of the five signal quality classification bands.
type Bucket int

const (
	Excellent Bucket = iota
	Good
	Fair
	Weak
	Poor

	BucketCount = 5
)

// bucketFloors is the single threshold table. The lower dBm bound of each
// band; Poor is open ended. Statistics, exports and the legend all classify
// through BucketFor so the bands can never drift apart.
var bucketFloors = [BucketCount]int{
	Excellent: -50,
	Good:      -60,
	Fair:      -70,
	Weak:      -80,
	Poor:      math.MinInt32,
}

// bucketSwatchDbm is the representative signal level used to pick the swatch
// color of each band from the shared gradient.
var bucketSwatchDbm = [BucketCount]int{
	Excellent: -45,
	Good:      -55,
	Fair:      -65,
	Weak:      -75,
	Poor:      -85,
}

func (b Bucket) String() string {
	switch b {
	case Excellent:
		return "Excellent"
	case Good:
		return "Good"
	case Fair:
		return "Fair"
	case Weak:
		return "Weak"
	case Poor:
		return "Poor"
	}
	return "Unknown"
}

// Color returns the swatch color for the bucket, taken from the same gradient
// the overlay uses.
func (b Bucket) Color(opacity uint8) color.RGBA {
	return ColorFor(float64(bucketSwatchDbm[b]), opacity)
}

// BucketFor classifies a signal level in dBm into its quality band.
func BucketFor(signalDbm int) Bucket {
	for b := Excellent; b < Poor; b++ {
		if signalDbm >= bucketFloors[b] {
			return b
		}
	}
	return Poor
}

// ColorFor maps a signal level to the overlay gradient: red at -90 dBm and
// below, yellow at -60, green at -30 and above. The alpha channel is the
// caller supplied opacity, unmodified.
func ColorFor(signalDbm float64, opacity uint8) color.RGBA {
	t := (signalDbm - windowLowDbm) / (windowHighDbm - windowLowDbm)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	if t < 0.5 {
		return color.RGBA{R: 255, G: uint8(math.Round(t * 2 * 255)), B: 0, A: opacity}
	}
	return color.RGBA{R: uint8(math.Round((1 - (t-0.5)*2) * 255)), G: 255, B: 0, A: opacity}
}
