/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslist

import (
	"time"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/bloom"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/compression"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/epoch"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashing"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/metrics"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/metrics/noop"
)

const (
	DefaultEpochSeconds  = epoch.DefaultEpochSeconds
	DefaultHashAlgorithm = hashing.SHA256
	DefaultHMACAlgorithm = hashing.HMACSHA256
	DefaultMaxLayers     = 5
)

// ListConfig identifies a status list and its derivation parameters. It is fixed at store creation.
type ListConfig struct {
	ID            string
	Issuer        string
	EpochSeconds  int64
	HashAlgorithm hashing.HashAlgorithm
	HMACAlgorithm hashing.HMACAlgorithm
}

type Opt func(*options)

type options struct {
	epochSeconds     int64
	hashAlg          hashing.HashAlgorithm
	hmacAlg          hashing.HMACAlgorithm
	now              func() time.Time
	bloomParams      bloom.Params
	maxLayers        int
	strictCascade    bool
	strictDuplicates bool
	metrics          metrics.Metrics
	compressor       compression.Compressor
}

func newOptions(opts []Opt) *options {
	o := &options{
		epochSeconds: DefaultEpochSeconds,
		hashAlg:      DefaultHashAlgorithm,
		hmacAlg:      DefaultHMACAlgorithm,
		now:          time.Now,
		bloomParams: bloom.Params{
			Capacity:      bloom.DefaultCapacity,
			FalsePositive: bloom.DefaultFalsePositive,
		},
		maxLayers:  DefaultMaxLayers,
		metrics:    noop.GetMetrics(),
		compressor: compression.NewZlib(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// WithEpoch sets the epoch length in seconds.
func WithEpoch(seconds int64) Opt {
	return func(o *options) {
		o.epochSeconds = seconds
	}
}

// WithHashAlgorithm sets the membership hash algorithm.
func WithHashAlgorithm(alg hashing.HashAlgorithm) Opt {
	return func(o *options) {
		o.hashAlg = alg
	}
}

// WithHMACAlgorithm sets the token MAC algorithm.
func WithHMACAlgorithm(alg hashing.HMACAlgorithm) Opt {
	return func(o *options) {
		o.hmacAlg = alg
	}
}

// WithClock overrides time.Now. The duration is read from it once, at store creation.
func WithClock(now func() time.Time) Opt {
	return func(o *options) {
		o.now = now
	}
}

// WithCapacity sets the expected number of elements of each bloom filter.
func WithCapacity(capacity uint) Opt {
	return func(o *options) {
		o.bloomParams.Capacity = capacity
	}
}

// WithFalsePositive sets the bloom filter false positive rate.
func WithFalsePositive(rate float64) Opt {
	return func(o *options) {
		o.bloomParams.FalsePositive = rate
	}
}

// WithHashFunctions overrides the estimated number of bloom hash functions.
func WithHashFunctions(k uint) Opt {
	return func(o *options) {
		o.bloomParams.HashFunctions = k
	}
}

// WithMaxLayers bounds the number of cascade layers.
func WithMaxLayers(layers int) Opt {
	return func(o *options) {
		o.maxLayers = layers
	}
}

// WithStrictCascade makes a cascade that hits the layer bound fail with ErrMaxCascadeRoundsExceeded.
func WithStrictCascade() Opt {
	return func(o *options) {
		o.strictCascade = true
	}
}

// WithStrictDuplicates makes ListStore reject a second AddValid of the same entry.
func WithStrictDuplicates() Opt {
	return func(o *options) {
		o.strictDuplicates = true
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m metrics.Metrics) Opt {
	return func(o *options) {
		o.metrics = m
	}
}

// WithCompressor overrides the deflate compressor used for artifact content.
func WithCompressor(c compression.Compressor) Opt {
	return func(o *options) {
		o.compressor = c
	}
}
