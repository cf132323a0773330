/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"time"

	"github.com/trustbloc/logutil-go/pkg/log"
)

// Logger used by different metrics provider.
var Logger = log.New("metrics-provider")

// Constants used by different metrics provider.
const (
	// Namespace Organization namespace.
	Namespace = "statuslist"

	// Store artifact operations.
	Store                 = "store"
	ArtifactCreatedMetric = "artifact_created_total"
	CascadeLayersMetric   = "cascade_layers"
	CascadeFPMetric       = "cascade_false_positives"

	// Hashing bulk hash operations.
	Hashing             = "hashing"
	HashBatchTimeMetric = "hash_batch_seconds"

	// Service operations.
	Service         = "service"
	IssueTimeMetric = "service_issue_seconds"
)

// Metrics is an interface for the metrics to be supported by the provider.
type Metrics interface {
	ArtifactCreated(kind string)
	CascadeLayers(layers int)
	CascadeFalsePositives(layer, count int)
	HashBatchTime(value time.Duration)
	IssueTime(value time.Duration)
}
