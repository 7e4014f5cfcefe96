package heatmap

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	legendBackground = color.RGBA{255, 255, 255, 255}
	legendText       = color.RGBA{0, 0, 0, 255}
)

// Legend renders a standalone legend of exactly width x height pixels: a
// gradient bar sweeping the -90..-30 dBm window in the top half and the five
// labeled quality swatches in the bottom half. It only depends on the
// dimensions, never on a survey. Non-positive dimensions yield a 1x1 raster.
func Legend(width, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{legendBackground}, image.Point{}, draw.Src)

	// Gradient bar.
	barH := height / 2
	if barH < 1 {
		barH = 1
	}
	span := width - 1
	if span < 1 {
		span = 1
	}
	for x := 0; x < width; x++ {
		dbm := windowLowDbm + float64(x)/float64(span)*(windowHighDbm-windowLowDbm)
		c := ColorFor(dbm, 255)
		for y := 0; y < barH; y++ {
			img.SetRGBA(x, y, c)
		}
	}
	drawLegendLabel(img, 2, barH-3, fmt.Sprintf("%d dBm", int(windowLowDbm)))
	high := fmt.Sprintf("%d dBm", int(windowHighDbm))
	drawLegendLabel(img, width-2-len(high)*basicfont.Face7x13.Advance, barH-3, high)

	// Quality swatches.
	swatchW := width / BucketCount
	if swatchW < 1 {
		swatchW = 1
	}
	for b := Excellent; b <= Poor; b++ {
		x0 := int(b) * swatchW
		x1 := x0 + swatchW
		if b == Poor {
			x1 = width // last swatch absorbs the integer division remainder
		}
		c := b.Color(255)
		for y := barH; y < height; y++ {
			for x := x0; x < x1 && x < width; x++ {
				img.SetRGBA(x, y, c)
			}
		}
		drawLegendLabel(img, x0+2, height-3, b.String())
	}

	return img
}

// drawLegendLabel draws s with its baseline at (x, y), skipping labels that
// would not fit the raster.
func drawLegendLabel(img *image.RGBA, x, y int, s string) {
	if y < basicfont.Face7x13.Ascent || x < 0 {
		return
	}
	if x+len(s)*basicfont.Face7x13.Advance > img.Bounds().Dx() {
		return
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(legendText),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.I(x),
			Y: fixed.I(y),
		},
	}
	d.DrawString(s)
}
