/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package healthutil renders health checker results.
package healthutil

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexliesenfeld/health"
)

type healthStatus struct {
	Status     health.AvailabilityStatus `json:"status"`
	Components map[string]checkResult    `json:"components,omitempty"`
}

type checkResult struct {
	Status              health.AvailabilityStatus `json:"status"`
	Error               string                    `json:"error,omitempty"`
	LastResponseTime    string                    `json:"last_response_time,omitempty"`
	AverageResponseTime string                    `json:"avg_response_time,omitempty"`
}

// JSONResultWriter writes a checker result with the response times collected by ResponseTimeInterceptor.
type JSONResultWriter struct {
	responseTimes map[string]ResponseTimeState
}

func NewJSONResultWriter(m map[string]ResponseTimeState) *JSONResultWriter {
	return &JSONResultWriter{
		responseTimes: m,
	}
}

func (rw *JSONResultWriter) Write(w io.Writer, result *health.CheckerResult) error {
	r := &healthStatus{Status: result.Status}

	if len(result.Details) > 0 {
		r.Components = map[string]checkResult{}

		for name, cr := range result.Details {
			c := checkResult{Status: cr.Status}

			if cr.Error != nil {
				c.Error = cr.Error.Error()
			}

			if t, ok := rw.responseTimes[name]; ok {
				c.LastResponseTime = t.LastResponseTime.String()
				c.AverageResponseTime = t.AverageResponseTime.String()
			}

			r.Components[name] = c
		}
	}

	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("cannot marshal response: %w", err)
	}

	_, err = w.Write(append(b, '\n'))

	return err
}
