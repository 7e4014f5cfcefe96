package heatmap

import (
	"math"
	"testing"

	"github.com/sigmaps/heatwave/survey"
)

func TestBuildGridNoSamples(t *testing.T) {
	g := buildGrid(8, 8, nil, 100, 0.7)
	for i, v := range g.cells {
		if v != noSignalDbm {
			t.Fatalf("cell %d = %v, want %v", i, v, float64(noSignalDbm))
		}
	}
}

func TestBuildGridSingleSampleIsConstant(t *testing.T) {
	// With one sample every cell is a weighted average of a single value,
	// so the whole grid must equal that value regardless of distance.
	samples := []survey.Sample{{X: 0.5, Y: 0.5, SignalDbm: -50}}
	g := buildGrid(20, 20, samples, 10, 0.7)
	for i, v := range g.cells {
		if math.Abs(v-(-50)) > 1e-9 {
			t.Fatalf("cell %d = %v, want -50", i, v)
		}
	}
}

func TestBuildGridLeansTowardsNearerSample(t *testing.T) {
	samples := []survey.Sample{
		{X: 0.0, Y: 0.5, SignalDbm: -40},
		{X: 1.0, Y: 0.5, SignalDbm: -80},
	}
	g := buildGrid(100, 100, samples, 20, 0.7)
	left := g.at(5, 50)
	right := g.at(95, 50)
	if left <= right {
		t.Fatalf("expected stronger estimate near the strong sample: left %v, right %v", left, right)
	}
	if left < -80 || left > -40 || right < -80 || right > -40 {
		t.Fatalf("estimates must stay within the sample range: left %v, right %v", left, right)
	}
}

func TestBuildGridFiniteAtSamplePixel(t *testing.T) {
	// Distance is floored at one pixel, so the sample's own pixel must be
	// finite even though the raw distance there is zero.
	samples := []survey.Sample{{X: 0.0, Y: 0.0, SignalDbm: -42}}
	g := buildGrid(4, 4, samples, 2, 0.7)
	if v := g.at(0, 0); math.IsNaN(v) || math.IsInf(v, 0) {
		t.Fatalf("estimate at the sample pixel is %v", v)
	}
}

func TestBuildGridDegenerateDimensions(t *testing.T) {
	for _, tc := range []struct{ w, h int }{{0, 0}, {-3, 10}, {10, -3}} {
		g := buildGrid(tc.w, tc.h, nil, 100, 0.7)
		if g.w != 1 || g.h != 1 || len(g.cells) != 1 {
			t.Errorf("buildGrid(%d, %d) = %dx%d grid, want 1x1", tc.w, tc.h, g.w, g.h)
		}
	}
}

func TestBlurGridConstantStaysConstant(t *testing.T) {
	// Edge cells renormalize by the in-bounds kernel weight, so blurring a
	// constant grid must not pull the borders towards zero.
	in := newGrid(10, 7)
	for i := range in.cells {
		in.cells[i] = -63
	}
	out := blurGrid(in, 5)
	for i, v := range out.cells {
		if math.Abs(v-(-63)) > 1e-9 {
			t.Fatalf("cell %d = %v, want -63", i, v)
		}
	}
}

func TestBlurGridSpreadsImpulse(t *testing.T) {
	in := newGrid(9, 9)
	in.set(4, 4, 100)
	out := blurGrid(in, 5)
	if out.at(4, 4) >= 100 {
		t.Fatalf("center not attenuated: %v", out.at(4, 4))
	}
	if out.at(4, 4) <= out.at(2, 4) {
		t.Fatalf("center %v not above neighbor %v", out.at(4, 4), out.at(2, 4))
	}
	if out.at(3, 4) <= 0 {
		t.Fatalf("impulse did not spread to neighbor: %v", out.at(3, 4))
	}
	// Taps outside the kernel reach stay untouched.
	if out.at(0, 0) != 0 {
		t.Fatalf("far corner changed: %v", out.at(0, 0))
	}
}

func TestBlurGridDoesNotWriteInput(t *testing.T) {
	in := newGrid(5, 5)
	in.set(2, 2, 50)
	blurGrid(in, 5)
	if in.at(2, 2) != 50 || in.at(1, 2) != 0 {
		t.Fatal("blurGrid mutated its input grid")
	}
}
