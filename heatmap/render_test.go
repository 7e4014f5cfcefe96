package heatmap

import (
	"bytes"
	"testing"

	"github.com/sigmaps/heatwave/survey"
)

func TestGenerateEmptySurveyIsTransparent(t *testing.T) {
	img := Generate(100, 100, nil, DefaultConfig())
	if got := img.Bounds().Dx(); got != 100 {
		t.Fatalf("width = %d, want 100", got)
	}
	if got := img.Bounds().Dy(); got != 100 {
		t.Fatalf("height = %d, want 100", got)
	}
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				t.Fatalf("pixel (%d,%d) alpha = %d, want 0", x, y, a)
			}
		}
	}
}

func TestGenerateSingleStrongSample(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RadiusPx = 50
	cfg.Opacity = 255
	samples := []survey.Sample{{X: 0.5, Y: 0.5, SignalDbm: -50}}
	img := Generate(200, 200, samples, cfg)
	c := img.RGBAAt(100, 100)
	if c.A == 0 {
		t.Fatal("pixel at the sample is transparent")
	}
	if c.G <= c.R {
		t.Fatalf("pixel at a -50 dBm sample should lean green, got R=%d G=%d", c.R, c.G)
	}
}

func TestGenerateTwoSamples(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Opacity = 255
	samples := []survey.Sample{
		{X: 0.25, Y: 0.25, SignalDbm: -40},
		{X: 0.75, Y: 0.75, SignalDbm: -80},
	}
	img := Generate(200, 200, samples, cfg)
	strong := img.RGBAAt(50, 50)
	weak := img.RGBAAt(150, 150)
	if strong.G <= strong.R {
		t.Errorf("pixel near the -40 dBm sample should lean green, got R=%d G=%d", strong.R, strong.G)
	}
	if weak.R <= weak.G {
		t.Errorf("pixel near the -80 dBm sample should lean red, got R=%d G=%d", weak.R, weak.G)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	samples := []survey.Sample{
		{X: 0.1, Y: 0.9, SignalDbm: -45},
		{X: 0.6, Y: 0.3, SignalDbm: -67},
		{X: 0.9, Y: 0.5, SignalDbm: -82},
	}
	a := Generate(120, 80, samples, DefaultConfig())
	b := Generate(120, 80, samples, DefaultConfig())
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("two renders of the same survey differ")
	}
}

func TestGenerateDegenerateDimensions(t *testing.T) {
	samples := []survey.Sample{{X: 0.5, Y: 0.5, SignalDbm: -50}}
	for _, tc := range []struct{ w, h int }{{0, 0}, {-1, 50}, {50, -1}} {
		img := Generate(tc.w, tc.h, samples, DefaultConfig())
		if img.Bounds().Dx() != 1 || img.Bounds().Dy() != 1 {
			t.Errorf("Generate(%d, %d) = %v, want 1x1", tc.w, tc.h, img.Bounds())
		}
	}
}

func TestGenerateDoesNotMutateInput(t *testing.T) {
	samples := []survey.Sample{
		{X: 0.5, Y: 0.5, SignalDbm: -50, SSID: "office"},
		{X: 0.1, Y: 0.2, SignalDbm: -77, SSID: "guest"},
	}
	want := append([]survey.Sample(nil), samples...)
	Generate(50, 50, samples, DefaultConfig())
	for i := range samples {
		if samples[i] != want[i] {
			t.Fatalf("sample %d changed to %+v", i, samples[i])
		}
	}
}

func TestGeneratePreviewDimensions(t *testing.T) {
	samples := []survey.Sample{{X: 0.4, Y: 0.6, SignalDbm: -58}}
	for _, scale := range []int{1, 2, 4, 8, 0, -2} {
		img := GeneratePreview(301, 199, samples, scale, DefaultConfig())
		if img.Bounds().Dx() != 301 || img.Bounds().Dy() != 199 {
			t.Errorf("GeneratePreview scale %d = %v, want 301x199", scale, img.Bounds())
		}
	}
}

func TestGeneratePreviewEmptySurvey(t *testing.T) {
	img := GeneratePreview(64, 64, nil, 4, DefaultConfig())
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				t.Fatalf("pixel (%d,%d) alpha = %d, want 0", x, y, a)
			}
		}
	}
}

func TestGeneratePreviewIsIdempotent(t *testing.T) {
	samples := []survey.Sample{
		{X: 0.2, Y: 0.2, SignalDbm: -44},
		{X: 0.8, Y: 0.7, SignalDbm: -76},
	}
	a := GeneratePreview(160, 120, samples, 4, DefaultConfig())
	b := GeneratePreview(160, 120, samples, 4, DefaultConfig())
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("two preview renders of the same survey differ")
	}
}
