// Package heatmap turns a sparse set of survey samples into a color coded
// coverage overlay. All entry points are pure: identical inputs produce byte
// identical rasters and no state survives between calls.
package heatmap

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/sigmaps/heatwave/survey"
)

// blurKernelSize is the Gaussian kernel width applied to the estimate grid.
const blurKernelSize = 5

type Config struct {
	// RadiusPx is the IDW core radius in pixels. Inside it a sample's weight
	// is pure 1/d^2, beyond it the weight decays exponentially.
	RadiusPx float64

	// Smoothing in [0,1] controls how fast the weight decays beyond the
	// radius. Zero cuts influence off at the radius.
	Smoothing float64

	// Opacity is the alpha of the overlay.
	Opacity uint8
}

func DefaultConfig() Config {
	return Config{
		RadiusPx:  100,
		Smoothing: 0.7,
		Opacity:   180,
	}
}

// Generate renders the coverage overlay for the given survey at exactly
// width x height pixels. An empty survey yields a fully transparent raster.
// Non-positive dimensions yield a minimal 1x1 raster.
//
// Sample coordinates outside [0,1] are not rejected: they scale off-canvas
// and still contribute to pixels near the border.
func Generate(width, height int, samples []survey.Sample, cfg Config) *image.RGBA {
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if len(samples) == 0 {
		return img
	}

	// Snapshot the survey so callers mutating their slice mid-render cannot
	// skew later rows.
	samples = append([]survey.Sample(nil), samples...)

	g := buildGrid(width, height, samples, cfg.RadiusPx, cfg.Smoothing)
	g = blurGrid(g, blurKernelSize)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, ColorFor(g.at(x, y), cfg.Opacity))
		}
	}

	return img
}

// GeneratePreview renders at width/scale x height/scale and upsamples the
// result back to exactly width x height. Interactive consumers use it where
// a full resolution render is too slow for every redraw.
func GeneratePreview(width, height int, samples []survey.Sample, scale int, cfg Config) *image.RGBA {
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	if scale < 1 {
		scale = 1
	}
	lowW := width / scale
	if lowW < 1 {
		lowW = 1
	}
	lowH := height / scale
	if lowH < 1 {
		lowH = 1
	}

	low := Generate(lowW, lowH, samples, cfg)
	if lowW == width && lowH == height {
		return low
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.BiLinear.Scale(out, out.Bounds(), low, low.Bounds(), xdraw.Src, nil)
	return out
}
