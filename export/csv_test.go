package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/sigmaps/heatwave/survey"
)

func TestCSVWrite(t *testing.T) {
	samples := make(chan survey.Sample, 2)
	samples <- survey.Sample{
		Identifier: "run-1",
		Source:     "iw",
		X:          0.25,
		Y:          0.75,
		SSID:       "office",
		BSSID:      "aa:bb:cc:dd:ee:01",
		Channel:    6,
		SignalDbm:  -57,
		Quality:    survey.QualityPercent(-57),
		Time:       time.UnixMilli(1700000000000),
	}
	samples <- survey.Sample{
		Identifier: "run-1",
		Source:     "iw",
		SSID:       "guest",
		SignalDbm:  -83,
		Quality:    survey.QualityPercent(-83),
		Time:       time.UnixMilli(1700000001000),
	}
	close(samples)

	var buf bytes.Buffer
	c := &CSV{Out: &buf}
	if err := c.Write(context.Background(), samples); err != nil {
		t.Fatalf("Write: %s", err)
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("reading produced CSV back: %s", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header plus 2 rows", len(records))
	}

	header := records[0]
	if header[9] != "QualityLabel" {
		t.Errorf("header[9] = %q, want QualityLabel", header[9])
	}
	// The label column must come from the shared bucket table.
	if got := records[1][9]; got != "Good" {
		t.Errorf("-57 dBm labeled %q, want Good", got)
	}
	if got := records[2][9]; got != "Poor" {
		t.Errorf("-83 dBm labeled %q, want Poor", got)
	}
	if got := records[1][7]; got != "-57" {
		t.Errorf("SignalDbm column = %q, want -57", got)
	}
}
