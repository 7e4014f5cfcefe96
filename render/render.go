package main

/*
This application renders coverage heatmaps for surveys collected with
heatwave.

It currently only supports surveys collected into sqlite.
*/

import (
	"database/sql"
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"strings"

	"github.com/golang/glog"

	"github.com/sigmaps/heatwave/export"
	"github.com/sigmaps/heatwave/heatmap"

	// Blind import support for sqlite3 used by sqlite.go.
	_ "github.com/mattn/go-sqlite3"
)

// Flags
var (
	sqliteFile = flag.String("sqliteFile", "/tmp/heatwave", "File path of the sqlite DB file to use.")
	ssid       = flag.String("ssid", "", "Render only samples of this SSID (empty renders all networks).")
	imgPath    = flag.String("imgPath", "/tmp/heatmap.png", "Path where the rendered heatmap should be written to.")
	legendPath = flag.String("legendPath", "", "Path where the legend should be written to (empty skips the legend).")
	imgWidth   = flag.Int("imgWidth", 800, "Width of output image in pixels.")
	imgHeight  = flag.Int("imgHeight", 600, "Height of output image in pixels.")
	radius     = flag.Float64("radius", 100, "IDW core radius in pixels.")
	smoothing  = flag.Float64("smoothing", 0.7, "Falloff smoothing factor in [0,1].")
	opacity    = flag.Int("opacity", 180, "Overlay alpha in [0,255].")
	preview    = flag.Int("preview", 0, "Preview downscale factor (0 or 1 renders full resolution).")
)

func writeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	switch {
	case strings.HasSuffix(path, ".png"):
		return png.Encode(f, img)
	case strings.HasSuffix(path, ".jpg"), strings.HasSuffix(path, ".jpeg"):
		return jpeg.Encode(f, img, &jpeg.Options{Quality: jpeg.DefaultQuality})
	}
	return fmt.Errorf("unsupported image suffix in %q (use .png, .jpg or .jpeg)", path)
}

func main() {
	// Set defaults for glog flags. Can be overridden via cmdline.
	flag.Set("logtostderr", "false")
	flag.Set("stderrthreshold", "WARNING")
	flag.Set("v", "1")
	// Parse flags globally.
	flag.Parse()

	db, err := sql.Open("sqlite3", *sqliteFile)
	if err != nil {
		glog.Exitf("unable to open sqlite DB %q: %s", *sqliteFile, err)
	}

	samples, err := export.LoadSamples(db, *ssid)
	if err != nil {
		glog.Exitf("unable to load survey: %s", err)
	}

	stats := heatmap.Statistics(samples, "")
	fmt.Println("Selected survey metadata:")
	fmt.Printf("  - Points: %d\n", stats.TotalPoints)
	fmt.Printf("  - Signal: avg %.1f dBm, range [%d, %d] dBm\n", stats.AvgSignal, stats.MinSignal, stats.MaxSignal)
	fmt.Printf("  - Networks: %d (on %d channels)\n", stats.UniqueSSIDs, stats.UniqueChannels)
	for b := heatmap.Excellent; b <= heatmap.Poor; b++ {
		fmt.Printf("  - %-9s %5.1f%% (%d points)\n", b, stats.CoveragePercent(b), stats.Buckets[b])
	}

	cfg := heatmap.Config{
		RadiusPx:  *radius,
		Smoothing: *smoothing,
		Opacity:   uint8(*opacity),
	}
	fmt.Printf("Rendering heatmap (%d x %d)\n", *imgWidth, *imgHeight)
	var img *image.RGBA
	if *preview > 1 {
		img = heatmap.GeneratePreview(*imgWidth, *imgHeight, samples, *preview, cfg)
	} else {
		img = heatmap.Generate(*imgWidth, *imgHeight, samples, cfg)
	}

	fmt.Printf("Writing heatmap to %q\n", *imgPath)
	if err := writeImage(*imgPath, img); err != nil {
		glog.Exitf("unable to write heatmap: %s", err)
	}

	if *legendPath != "" {
		fmt.Printf("Writing legend to %q\n", *legendPath)
		if err := writeImage(*legendPath, heatmap.Legend(300, 60)); err != nil {
			glog.Exitf("unable to write legend: %s", err)
		}
	}

	glog.Flush()
}
