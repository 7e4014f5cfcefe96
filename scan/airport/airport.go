package airport

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/sigmaps/heatwave/survey"
)

const (
	SourceName = "airport"
	// airport ships with macOS but is not on the default PATH.
	scanAlias = "/System/Library/PrivateFrameworks/Apple80211.framework/Versions/Current/Resources/airport"
)

// network is one row of the "airport -s" table.
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

// Scan shells out to "airport -s" and emits one sample per network found,
// stamped with the surveyor position from opts. It repeats for opts.Passes
// passes with opts.Interval pauses in between.
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
	cmd := exec.Command(scanAlias, "-s")
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

// parseScan reads the "airport -s" table. The SSID column is right aligned
// and may contain spaces, so rows are split at the BSSID column position
// taken from the header instead of on whitespace.
func parseScan(r io.Reader) ([]network, error) {
	var networks []network
	bssidCol := -1

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if bssidCol < 0 {
			if i := strings.Index(line, "BSSID"); i >= 0 && strings.Contains(line, "SSID") {
				bssidCol = i
			}
			continue
		}
		if len(line) <= bssidCol || strings.TrimSpace(line) == "" {
			continue
		}

		ssid := strings.TrimSpace(line[:bssidCol])
		fields := strings.Fields(line[bssidCol:])
		if len(fields) < 3 {
			glog.Warningf("skipping malformed scan row: %q", line)
			continue
		}
		dbm, err := strconv.Atoi(fields[1])
		if err != nil {
			glog.Warningf("unable to parse RSSI in row %q: %s", line, err)
			continue
		}
		// Wide channels are reported as e.g. "36,+1".
		ch, err := strconv.Atoi(strings.SplitN(fields[2], ",", 2)[0])
		if err != nil {
			glog.Warningf("unable to parse channel in row %q: %s", line, err)
			continue
		}

		networks = append(networks, network{
			SSID:      ssid,
			BSSID:     fields[0],
			Channel:   ch,
			SignalDbm: dbm,
		})
	}

	return networks, scanner.Err()
}
