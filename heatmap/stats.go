package heatmap

import (
	"github.com/sigmaps/heatwave/survey"
)

// Stats summarizes a survey. Buckets always sum to TotalPoints.
type Stats struct {
	TotalPoints    int              `json:"totalPoints"`
	AvgSignal      float64          `json:"avgSignal"`
	MinSignal      int              `json:"minSignal"`
	MaxSignal      int              `json:"maxSignal"`
	AvgQuality     float64          `json:"avgQuality"`
	UniqueSSIDs    int              `json:"uniqueSSIDs"`
	UniqueChannels int              `json:"uniqueChannels"`
	Buckets        [BucketCount]int `json:"bucketCounts"`
}

// Statistics classifies a survey into the quality buckets and aggregates the
// usual summary values. A non-empty ssidFilter restricts the survey to one
// network first; if nothing remains the zero Stats is returned.
func Statistics(samples []survey.Sample, ssidFilter string) Stats {
	var st Stats
	var signalSum, qualitySum int
	ssids := map[string]bool{}
	channels := map[int]bool{}
	for _, s := range samples {
		if ssidFilter != "" && s.SSID != ssidFilter {
			continue
		}
		if st.TotalPoints == 0 || s.SignalDbm < st.MinSignal {
			st.MinSignal = s.SignalDbm
		}
		if st.TotalPoints == 0 || s.SignalDbm > st.MaxSignal {
			st.MaxSignal = s.SignalDbm
		}
		st.TotalPoints++
		signalSum += s.SignalDbm
		qualitySum += s.Quality
		ssids[s.SSID] = true
		channels[s.Channel] = true
		st.Buckets[BucketFor(s.SignalDbm)]++
	}
	if st.TotalPoints == 0 {
		return Stats{}
	}
	st.AvgSignal = float64(signalSum) / float64(st.TotalPoints)
	st.AvgQuality = float64(qualitySum) / float64(st.TotalPoints)
	st.UniqueSSIDs = len(ssids)
	st.UniqueChannels = len(channels)
	return st
}

// CoveragePercent is the share of survey points falling into the bucket,
// in percent. It is zero for an empty survey.
func (s Stats) CoveragePercent(b Bucket) float64 {
	if s.TotalPoints == 0 {
		return 0
	}
	return float64(s.Buckets[b]) / float64(s.TotalPoints) * 100
}
