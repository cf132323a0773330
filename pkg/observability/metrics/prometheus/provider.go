/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cre8/ephemeral-proof-of-issuance/internal/logfields"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/metrics"
)

var logger = metrics.Logger

var (
	createOnce sync.Once       //nolint:gochecknoglobals
	instance   metrics.Metrics //nolint:gochecknoglobals
)

// GetMetrics returns metrics implementation registered with the default registerer.
func GetMetrics() metrics.Metrics {
	createOnce.Do(func() {
		instance = NewMetrics(prometheus.DefaultRegisterer)
	})

	return instance
}

// PromMetrics manages the metrics for status list issuance.
type PromMetrics struct {
	artifactsCreated *prometheus.CounterVec
	cascadeLayers    prometheus.Histogram
	cascadeFP        *prometheus.GaugeVec
	hashBatchTime    prometheus.Histogram
	issueTime        prometheus.Histogram
}

// NewMetrics creates instance of prometheus metrics and registers it with r.
func NewMetrics(r prometheus.Registerer) *PromMetrics {
	pm := &PromMetrics{
		artifactsCreated: newCounterVec(
			metrics.Store, metrics.ArtifactCreatedMetric,
			"The number of status list artifacts created.",
			[]string{"kind"},
		),
		cascadeLayers: newHistogram(
			metrics.Store, metrics.CascadeLayersMetric,
			"The number of layers in a built cascading bloom filter.",
			nil,
		),
		cascadeFP: newGaugeVec(
			metrics.Store, metrics.CascadeFPMetric,
			"The false positives corrected by a cascade layer of the last build.",
			[]string{"layer"},
		),
		hashBatchTime: newHistogram(
			metrics.Hashing, metrics.HashBatchTimeMetric,
			"The time (in seconds) it takes to hash one bulk load.",
			nil,
		),
		issueTime: newHistogram(
			metrics.Service, metrics.IssueTimeMetric,
			"The time (in seconds) it takes to issue a signed status list.",
			nil,
		),
	}

	r.MustRegister(
		pm.artifactsCreated, pm.cascadeLayers, pm.cascadeFP, pm.hashBatchTime, pm.issueTime,
	)

	return pm
}

// ArtifactCreated counts a created artifact of the given kind.
func (pm *PromMetrics) ArtifactCreated(kind string) {
	pm.artifactsCreated.WithLabelValues(kind).Inc()
}

// CascadeLayers records the layer count of a cascade build.
func (pm *PromMetrics) CascadeLayers(layers int) {
	pm.cascadeLayers.Observe(float64(layers))
}

// CascadeFalsePositives records the corrected false positives of one layer.
func (pm *PromMetrics) CascadeFalsePositives(layer, count int) {
	pm.cascadeFP.WithLabelValues(strconv.Itoa(layer)).Set(float64(count))
}

// HashBatchTime records the time for a bulk hash run.
func (pm *PromMetrics) HashBatchTime(value time.Duration) {
	pm.hashBatchTime.Observe(value.Seconds())

	logger.Debug("bulk hash time", logfields.WithDuration(value))
}

// IssueTime records the time to issue a status list.
func (pm *PromMetrics) IssueTime(value time.Duration) {
	pm.issueTime.Observe(value.Seconds())

	logger.Debug("status list issue time", logfields.WithDuration(value))
}

func newCounterVec(subsystem, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metrics.Namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

func newGaugeVec(subsystem, name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metrics.Namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

func newHistogram(subsystem, name, help string, labels prometheus.Labels) prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   metrics.Namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	})
}
