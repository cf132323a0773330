/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package noop

import (
	"time"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/metrics"
)

// NoMetrics provides default no operation implementation for the Metrics interface.
type NoMetrics struct{}

// GetMetrics returns metrics implementation.
func GetMetrics() metrics.Metrics {
	return &NoMetrics{}
}

func (n *NoMetrics) ArtifactCreated(_ string)       {}
func (n *NoMetrics) CascadeLayers(_ int)            {}
func (n *NoMetrics) CascadeFalsePositives(_, _ int) {}
func (n *NoMetrics) HashBatchTime(_ time.Duration)  {}
func (n *NoMetrics) IssueTime(_ time.Duration)      {}
