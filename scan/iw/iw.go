package iw

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/sigmaps/heatwave/survey"
)

const (
	SourceName = "iw"
	scanAlias  = "iw"
)

// network is one BSS block from the scan dump.
type network struct {
	SSID      string
	BSSID     string
	Channel   int
	SignalDbm int
}

type Scanner struct {
	Identifier string
}

func (s Scanner) Name() string {
	return SourceName
}

// Scan shells out to "iw dev <iface> scan" and emits one sample per network
// found, stamped with the surveyor position from opts. It repeats for
// opts.Passes passes with opts.Interval pauses in between.
func (s *Scanner) Scan(opts *survey.Options, samples chan<- survey.Sample) error {
	passes := opts.Passes
	if passes < 1 {
		passes = 1
	}
	for pass := 0; pass < passes; pass++ {
		if pass > 0 {
			time.Sleep(opts.Interval)
		}
		if err := s.scanOnce(opts, samples); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) scanOnce(opts *survey.Options, samples chan<- survey.Sample) error {
	cmd := exec.Command(scanAlias, "dev", opts.Interface, "scan")
	out, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	glog.V(1).Infof("running scan: %q", cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("unable to start scan: %s", err)
	}

	networks, err := parseScan(out)
	if err != nil {
		return err
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("scan command ended with error: %s", err)
	}

	now := time.Now()
	for _, n := range networks {
		samples <- survey.Sample{
			Identifier: s.Identifier,
			Source:     SourceName,
			X:          opts.X,
			Y:          opts.Y,
			SSID:       n.SSID,
			BSSID:      n.BSSID,
			Channel:    n.Channel,
			SignalDbm:  n.SignalDbm,
			Quality:    survey.QualityPercent(n.SignalDbm),
			Time:       now,
		}
	}
	return nil
}

// parseScan reads the "iw dev <iface> scan" dump. Each network starts with a
// "BSS <mac>" line followed by indented attribute lines; only the attributes
// we map into a sample are picked up, everything else is skipped.
func parseScan(r io.Reader) ([]network, error) {
	var networks []network
	var current *network

	flush := func() {
		if current == nil {
			return
		}
		if current.SignalDbm == 0 {
			glog.V(2).Infof("dropping BSS %s without a signal attribute", current.BSSID)
		} else {
			networks = append(networks, *current)
		}
		current = nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "BSS ") {
			flush()
			bssid := strings.TrimPrefix(line, "BSS ")
			// Strip decorations like "(on wlan0) -- associated".
			if i := strings.IndexAny(bssid, "( "); i >= 0 {
				bssid = bssid[:i]
			}
			current = &network{BSSID: bssid}
			continue
		}
		if current == nil {
			continue
		}
		attr := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(attr, "signal:"):
			raw := strings.TrimSpace(strings.TrimPrefix(attr, "signal:"))
			raw = strings.TrimSuffix(raw, " dBm")
			dbm, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				glog.Warningf("unable to parse signal %q: %s", attr, err)
				continue
			}
			current.SignalDbm = int(math.Round(dbm))
		case strings.HasPrefix(attr, "SSID:"):
			current.SSID = strings.TrimSpace(strings.TrimPrefix(attr, "SSID:"))
		case strings.HasPrefix(attr, "DS Parameter set: channel"):
			raw := strings.TrimSpace(strings.TrimPrefix(attr, "DS Parameter set: channel"))
			ch, err := strconv.Atoi(raw)
			if err != nil {
				glog.Warningf("unable to parse channel %q: %s", attr, err)
				continue
			}
			current.Channel = ch
		case strings.HasPrefix(attr, "freq:") && current.Channel == 0:
			raw := strings.TrimSpace(strings.TrimPrefix(attr, "freq:"))
			freq, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				glog.Warningf("unable to parse frequency %q: %s", attr, err)
				continue
			}
			current.Channel = freqToChannel(int(freq))
		}
	}
	flush()

	return networks, scanner.Err()
}

// freqToChannel maps a center frequency in MHz to its channel number for the
// 2.4 GHz and 5 GHz bands.
func freqToChannel(freqMhz int) int {
	switch {
	case freqMhz == 2484: // channel 14 is special cased in the band plan
		return 14
	case freqMhz >= 2412 && freqMhz < 2484:
		return (freqMhz - 2407) / 5
	case freqMhz >= 5000 && freqMhz < 5925:
		return (freqMhz - 5000) / 5
	}
	return 0
}
