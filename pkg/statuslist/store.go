/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package statuslist implements the issuer side status list stores.
//
// Every store derives membership keys from a per credential secret and a
// duration counter fixed when the store is created. ListStore and CRLStore
// keep exact hash sets, BloomStore keeps one probabilistic filter and
// CascadingStore builds a chain of filters that separates valid from invalid
// entries without false positives.
package statuslist

import (
	"fmt"
	"time"

	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/epoch"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashexec"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/metrics"
)

var logger = log.New("status-list")

// Store is the issuer side of one status list.
type Store interface {
	Kind() Kind
	Config() ListConfig
	// Duration is the counter every hash of this store is derived with.
	Duration() int64
	// AddValid enrols id as valid and returns the payload the holder needs to create tokens.
	AddValid(id string, secret []byte) (*SecretPayload, error)
	// AddInvalid marks id as revoked.
	AddInvalid(id string, secret []byte) error
	// CreateArtifact returns the publishable state of the list.
	CreateArtifact() (*Artifact, error)
}

// NewStore returns an empty store of the given kind.
func NewStore(kind Kind, id, issuer string, opts ...Opt) (Store, error) {
	switch kind {
	case KindList:
		return NewListStore(id, issuer, opts...)
	case KindCRL:
		return NewCRLStore(id, issuer, opts...)
	case KindBloom:
		return NewBloomStore(id, issuer, opts...)
	case KindCascadingBloom:
		return NewCascadingStore(id, issuer, opts...)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
}

// bulkLoader is implemented by stores that accept precomputed hashes from BulkLoad.
type bulkLoader interface {
	bulkMode() hashexec.Mode
	loadHashes(entries []hashexec.Entry, hashes [][]byte) error
	metrics() metrics.Metrics
}

type base struct {
	cfg    ListConfig
	engine *epoch.Engine
	opts   *options
}

func newBase(id, issuer string, opts []Opt) (*base, error) {
	o := newOptions(opts)

	engine, err := epoch.NewAt(o.now(), o.epochSeconds, o.hashAlg, o.hmacAlg)
	if err != nil {
		return nil, fmt.Errorf("create status list %s: %w", id, err)
	}

	return &base{
		cfg: ListConfig{
			ID:            id,
			Issuer:        issuer,
			EpochSeconds:  o.epochSeconds,
			HashAlgorithm: o.hashAlg,
			HMACAlgorithm: o.hmacAlg,
		},
		engine: engine,
		opts:   o,
	}, nil
}

func (b *base) Config() ListConfig {
	return b.cfg
}

func (b *base) Duration() int64 {
	return b.engine.Duration()
}

func (b *base) metrics() metrics.Metrics {
	return b.opts.metrics
}

func (b *base) hashes(id string, secret []byte) (validHash, invalidHash []byte, err error) {
	if validHash, err = b.engine.ValidHash(id, secret); err != nil {
		return nil, nil, err
	}

	if invalidHash, err = b.engine.InvalidHash(validHash); err != nil {
		return nil, nil, err
	}

	return validHash, invalidHash, nil
}

func (b *base) secretPayload(id string, secret []byte) *SecretPayload {
	return newSecretPayload(b.cfg, b.engine.Duration(), id, secret, b.opts.now())
}

func (b *base) newArtifact(kind Kind) *Artifact {
	iat := b.opts.now()

	return &Artifact{
		Kind:         kind,
		ID:           b.cfg.ID,
		Issuer:       b.cfg.Issuer,
		IssuedAt:     iat.UnixMilli(),
		ExpiresAt:    iat.Add(time.Duration(b.cfg.EpochSeconds) * time.Second).UnixMilli(),
		HashFunction: b.cfg.HashAlgorithm,
		Compression:  b.opts.compressor.Name(),
	}
}

// entrySet is a set of hashes compared by value that remembers insertion order.
type entrySet struct {
	index map[string]int
	order [][]byte
}

func newEntrySet() *entrySet {
	return &entrySet{index: map[string]int{}}
}

func (s *entrySet) add(h []byte) bool {
	if _, ok := s.index[string(h)]; ok {
		return false
	}

	s.index[string(h)] = len(s.order)
	s.order = append(s.order, h)

	return true
}

func (s *entrySet) has(h []byte) bool {
	_, ok := s.index[string(h)]

	return ok
}

func (s *entrySet) remove(h []byte) bool {
	i, ok := s.index[string(h)]
	if !ok {
		return false
	}

	delete(s.index, string(h))
	s.order[i] = nil

	return true
}

func (s *entrySet) len() int {
	return len(s.index)
}

// values returns the members in insertion order.
func (s *entrySet) values() [][]byte {
	out := make([][]byte, 0, len(s.index))

	for _, h := range s.order {
		if h != nil {
			out = append(out, h)
		}
	}

	return out
}
