package filter

import "github.com/sigmaps/heatwave/survey"

type Filterer interface {
	ShouldIgnore(*survey.Sample) bool
}

func Filter(input <-chan survey.Sample, output chan<- survey.Sample, filters []Filterer) error {
	for s := range input {
		skip := false
		for _, f := range filters {
			if f.ShouldIgnore(&s) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		output <- s
	}
	return nil
}

// FilterSSID drops samples of every network except the named one.
type FilterSSID struct {
	SSID string
}

func (f *FilterSSID) ShouldIgnore(s *survey.Sample) bool {
	return s.SSID != f.SSID
}

// FilterFloor drops samples weaker than the given signal level.
type FilterFloor struct {
	MinSignalDbm int
}

func (f *FilterFloor) ShouldIgnore(s *survey.Sample) bool {
	return s.SignalDbm < f.MinSignalDbm
}
