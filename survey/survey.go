package survey

import (
	"time"
)

type Sample struct {
	// Metadata
	Identifier string
	Source     string

	// Position of the surveyor on the floor plan, normalized to [0,1].
	// Values outside [0,1] are allowed and scale off-canvas.
	X float64
	Y float64

	// Radio Data
	SSID      string
	BSSID     string
	Channel   int
	SignalDbm int
	Quality   int
	Time      time.Time
}

type Scanner interface {
	Name() string
	Scan(opts *Options, samples chan<- Sample) error
}

type Options struct {
	// Interface is the wireless interface to scan on (e.g. wlan0, en0).
	Interface string

	// X and Y are the normalized floor plan coordinates the samples
	// of this scan are recorded at.
	X float64
	Y float64

	// Passes is the number of scan passes to run. Zero means a single pass.
	Passes int

	// Interval is the pause between scan passes.
	Interval time.Duration
}

// QualityPercent converts a signal level in dBm to the usual link quality
// percentage: -100 dBm and below is 0%, -50 dBm and above is 100%.
func QualityPercent(signalDbm int) int {
	q := 2 * (signalDbm + 100)
	if q < 0 {
		return 0
	}
	if q > 100 {
		return 100
	}
	return q
}
