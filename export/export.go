package export

import (
	"context"

	"github.com/sigmaps/heatwave/survey"
)

type Exporter interface {
	Write(context.Context, <-chan survey.Sample) error
}
