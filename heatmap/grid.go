package heatmap

import (
	"math"
	"runtime"
	"sync"

	"github.com/sigmaps/heatwave/survey"
)

// noSignalDbm is the estimate for cells without any sample weight, which can
// only happen when the survey is empty.
const noSignalDbm = -100

// grid holds one signal estimate per pixel, row-major.
type grid struct {
	w, h  int
	cells []float64
}

func newGrid(w, h int) *grid {
	return &grid{
		w:     w,
		h:     h,
		cells: make([]float64, w*h),
	}
}

func (g *grid) at(x, y int) float64 {
	return g.cells[y*g.w+x]
}

func (g *grid) set(x, y int, v float64) {
	g.cells[y*g.w+x] = v
}

// buildGrid estimates the signal level at every pixel with inverse distance
// weighting. Within radiusPx of a sample the weight is 1/d^2; beyond it the
// weight additionally decays with exp(-(d-radius)/(radius*smoothing)).
// Distances are floored at one pixel so a sample's own pixel stays finite.
// Every row only writes its own cells, so rows are fanned out across the CPUs.
func buildGrid(width, height int, samples []survey.Sample, radiusPx, smoothing float64) *grid {
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	g := newGrid(width, height)

	// Scale the normalized sample positions into pixel space once.
	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.X * float64(width)
		ys[i] = s.Y * float64(height)
	}

	workers := runtime.NumCPU()
	if workers > height {
		workers = height
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for y := w; y < height; y += workers {
				for x := 0; x < width; x++ {
					var weightSum, valueSum float64
					for i := range samples {
						dx := float64(x) - xs[i]
						dy := float64(y) - ys[i]
						dist := math.Sqrt(dx*dx + dy*dy)
						if dist < 1 {
							dist = 1
						}
						weight := 1 / (dist * dist)
						if dist > radiusPx {
							weight *= math.Exp(-(dist - radiusPx) / (radiusPx * smoothing))
						}
						weightSum += weight
						valueSum += weight * float64(samples[i].SignalDbm)
					}
					if weightSum > 0 {
						g.set(x, y, valueSum/weightSum)
					} else {
						g.set(x, y, noSignalDbm)
					}
				}
			}
		}(w)
	}
	wg.Wait()

	return g
}

// blurGrid convolves the grid with a normalized Gaussian kernel
// (sigma = kernelSize/3) into a fresh grid. Edge cells renormalize by the
// kernel weight that is actually in bounds instead of zero-padding, so the
// border does not darken towards noSignalDbm.
func blurGrid(in *grid, kernelSize int) *grid {
	if kernelSize < 1 {
		kernelSize = 1
	}
	sigma := float64(kernelSize) / 3
	half := kernelSize / 2

	kernel := make([][]float64, kernelSize)
	var kernelSum float64
	for ky := range kernel {
		kernel[ky] = make([]float64, kernelSize)
		for kx := range kernel[ky] {
			dx := float64(kx - half)
			dy := float64(ky - half)
			kernel[ky][kx] = math.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
			kernelSum += kernel[ky][kx]
		}
	}
	for ky := range kernel {
		for kx := range kernel[ky] {
			kernel[ky][kx] /= kernelSum
		}
	}

	out := newGrid(in.w, in.h)
	for y := 0; y < in.h; y++ {
		for x := 0; x < in.w; x++ {
			var sum, used float64
			for ky := -half; ky <= half; ky++ {
				for kx := -half; kx <= half; kx++ {
					nx := x + kx
					ny := y + ky
					if nx < 0 || nx >= in.w || ny < 0 || ny >= in.h {
						continue
					}
					k := kernel[ky+half][kx+half]
					sum += k * in.at(nx, ny)
					used += k
				}
			}
			out.set(x, y, sum/used)
		}
	}

	return out
}
