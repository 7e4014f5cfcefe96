package iw

import (
	"strings"
	"testing"
)

const scanFixture = `BSS aa:bb:cc:dd:ee:01(on wlan0) -- associated
	last seen: 1234.567s [boottime]
	freq: 2437
	capability: ESS Privacy ShortSlotTime (0x0411)
	signal: -57.00 dBm
	SSID: office
	DS Parameter set: channel 6
BSS aa:bb:cc:dd:ee:02(on wlan0)
	freq: 5180
	signal: -71.50 dBm
	SSID: office-5g
BSS aa:bb:cc:dd:ee:03(on wlan0)
	freq: 2412
	SSID: no-signal-attr
`

func TestParseScan(t *testing.T) {
	networks, err := parseScan(strings.NewReader(scanFixture))
	if err != nil {
		t.Fatalf("parseScan: %s", err)
	}
	// The third BSS has no signal attribute and must be dropped.
	if len(networks) != 2 {
		t.Fatalf("got %d networks, want 2: %+v", len(networks), networks)
	}

	want := []network{
		{SSID: "office", BSSID: "aa:bb:cc:dd:ee:01", Channel: 6, SignalDbm: -57},
		{SSID: "office-5g", BSSID: "aa:bb:cc:dd:ee:02", Channel: 36, SignalDbm: -72},
	}
	for i, w := range want {
		if networks[i] != w {
			t.Errorf("network %d = %+v, want %+v", i, networks[i], w)
		}
	}
}

func TestParseScanEmpty(t *testing.T) {
	networks, err := parseScan(strings.NewReader(""))
	if err != nil {
		t.Fatalf("parseScan: %s", err)
	}
	if len(networks) != 0 {
		t.Fatalf("got %d networks, want 0", len(networks))
	}
}

func TestFreqToChannel(t *testing.T) {
	for _, tc := range []struct {
		freqMhz int
		want    int
	}{
		{2412, 1},
		{2437, 6},
		{2462, 11},
		{2484, 14},
		{5180, 36},
		{5745, 149},
		{900, 0},
	} {
		if got := freqToChannel(tc.freqMhz); got != tc.want {
			t.Errorf("freqToChannel(%d) = %d, want %d", tc.freqMhz, got, tc.want)
		}
	}
}
