package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/golang/glog"

	"github.com/sigmaps/heatwave/survey"
)

const (
	contentType             = "application/json"
	collectEndpoint         = "api/v1/collect"
	defaultSendSampleAmount = 100
)

// Server batches samples and POSTs them to a heatwave server's collect
// endpoint.
type Server struct {
	Server            string
	SendSamplesAmount int
}

func (s *Server) Write(ctx context.Context, samples <-chan survey.Sample) error {
	type collectResponse struct {
		Status      string `json:"status"`
		SampleCount int    `json:"sampleCount"`
	}

	sendSamplesAmount := defaultSendSampleAmount
	if s.SendSamplesAmount > 0 {
		sendSamplesAmount = s.SendSamplesAmount
	}

	var samplesToSend []survey.Sample
	send := func() {
		body, err := json.Marshal(samplesToSend)
		if err != nil {
			glog.Warningf("error marshalling samples to JSON: %s\n", err)
			return
		}

		resp, err := http.Post(fmt.Sprintf("%s/%s", strings.TrimRight(s.Server, "/"), collectEndpoint), contentType, bytes.NewBuffer(body))
		if err != nil {
			glog.Warningf("error POSTing samples: %s\n", err)
			return
		}
		defer resp.Body.Close()
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			glog.Warningf("error reading POST response: %s\n", err)
			return
		}

		collectResponseBody := collectResponse{}
		json.Unmarshal(respBody, &collectResponseBody)
		glog.Infof("submitted %v samples to server %s", collectResponseBody.SampleCount, s.Server)
		samplesToSend = nil
	}

	for sample := range samples {
		samplesToSend = append(samplesToSend, sample)
		if len(samplesToSend) < sendSamplesAmount {
			continue // we haven't collected enough samples to send yet
		}
		send()
	}
	// Flush the remainder once the scan ends.
	if len(samplesToSend) > 0 {
		send()
	}

	return nil
}
