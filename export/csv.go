package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"

	"github.com/sigmaps/heatwave/heatmap"
	"github.com/sigmaps/heatwave/survey"
)

type CSV struct {
	// Out defaults to stdout.
	Out io.Writer
}

func (c *CSV) Write(ctx context.Context, samples <-chan survey.Sample) error {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	w := csv.NewWriter(out)
	w.Write([]string{
		"Identifier",
		"Source",
		"X",
		"Y",
		"SSID",
		"BSSID",
		"Channel",
		"SignalDbm",
		"Quality",
		"QualityLabel",
		"TimeUnixMilli",
	})

	for s := range samples {
		if err := w.Write([]string{
			s.Identifier,
			s.Source,
			fmt.Sprintf("%f", s.X),
			fmt.Sprintf("%f", s.Y),
			s.SSID,
			s.BSSID,
			fmt.Sprintf("%d", s.Channel),
			fmt.Sprintf("%d", s.SignalDbm),
			fmt.Sprintf("%d", s.Quality),
			heatmap.BucketFor(s.SignalDbm).String(),
			fmt.Sprintf("%d", s.Time.UnixMilli()),
		}); err != nil {
			glog.Warningf("error while writing CSV line: %s\n", err)
		}

		w.Flush()
		if err := w.Error(); err != nil {
			glog.Warningf("error flushing CSV: %s\n", err)
		}
	}
	return nil
}
