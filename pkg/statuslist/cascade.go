/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslist

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/cre8/ephemeral-proof-of-issuance/internal/logfields"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/bloom"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashexec"
)

// CascadingStore keeps two disjoint sets of ValidHashes and, when the artifact is
// created, builds a chain of filters with alternating meaning:
//
//	layer 0: every valid hash
//	layer 1: invalid hashes that layer 0 reports as present
//	layer 2: valid hashes that layer 1 reports as present
//	...
//
// The chain stops at the first layer that produces no false positives from the
// opposite set, or at the layer bound.
type CascadingStore struct {
	*base
	valid   *entrySet
	invalid *entrySet
	sealed  bool
}

// NewCascadingStore returns an empty cascading store.
func NewCascadingStore(id, issuer string, opts ...Opt) (*CascadingStore, error) {
	b, err := newBase(id, issuer, opts)
	if err != nil {
		return nil, err
	}

	if err = b.opts.bloomParams.Validate(); err != nil {
		return nil, fmt.Errorf("create cascading list %s: %w", id, err)
	}

	if b.opts.maxLayers < 1 {
		return nil, fmt.Errorf("create cascading list %s: max layers must be positive, got %d", id, b.opts.maxLayers)
	}

	return &CascadingStore{base: b, valid: newEntrySet(), invalid: newEntrySet()}, nil
}

func (s *CascadingStore) Kind() Kind {
	return KindCascadingBloom
}

// Sealed reports whether the artifact was created and further adds are rejected.
func (s *CascadingStore) Sealed() bool {
	return s.sealed
}

// AddValid moves the entry into the valid set.
func (s *CascadingStore) AddValid(id string, secret []byte) (*SecretPayload, error) {
	validHash, err := s.engine.ValidHash(id, secret)
	if err != nil {
		return nil, err
	}

	if err = s.markValid(validHash); err != nil {
		return nil, err
	}

	return s.secretPayload(id, secret), nil
}

// AddInvalid moves the entry into the invalid set.
func (s *CascadingStore) AddInvalid(id string, secret []byte) error {
	validHash, err := s.engine.ValidHash(id, secret)
	if err != nil {
		return err
	}

	return s.markInvalid(validHash)
}

// CreateArtifact seals the store and encodes every layer. Calling it again rebuilds
// the same chain from the same sets.
func (s *CascadingStore) CreateArtifact() (*Artifact, error) {
	s.sealed = true

	layers, err := s.build()
	if err != nil {
		return nil, err
	}

	content := make([]string, len(layers))

	for i, layer := range layers {
		if content[i], err = layer.Encode(s.opts.compressor); err != nil {
			return nil, fmt.Errorf("encode cascade layer %d of %s: %w", i, s.cfg.ID, err)
		}
	}

	p := s.opts.bloomParams

	a := s.newArtifact(KindCascadingBloom)
	a.Content = content
	a.Size = p.Capacity
	a.FalsePositive = p.FalsePositive
	a.HashFunctions = layers[0].HashFunctions()

	s.opts.metrics.ArtifactCreated(string(KindCascadingBloom))
	s.opts.metrics.CascadeLayers(len(layers))

	return a, nil
}

func (s *CascadingStore) build() ([]*bloom.Filter, error) {
	var layers []*bloom.Filter

	insert, other := s.valid.values(), s.invalid.values()

	for {
		layer, err := bloom.New(s.opts.bloomParams)
		if err != nil {
			return nil, err
		}

		for _, h := range insert {
			layer.Add(h)
		}

		layers = append(layers, layer)
		index := len(layers) - 1

		falsePositives := lo.Filter(other, func(h []byte, _ int) bool {
			return layer.Test(h)
		})

		logger.Debug("cascade layer built",
			logfields.WithListID(s.cfg.ID),
			logfields.WithLayer(index),
			logfields.WithEntries(len(insert)),
			logfields.WithFalsePositives(len(falsePositives)),
		)
		s.opts.metrics.CascadeFalsePositives(index, len(falsePositives))

		if len(falsePositives) == 0 {
			return layers, nil
		}

		if len(layers) == s.opts.maxLayers {
			if s.opts.strictCascade {
				return nil, fmt.Errorf("%w: %s has %d unresolved false positives after %d layers",
					ErrMaxCascadeRoundsExceeded, s.cfg.ID, len(falsePositives), len(layers))
			}

			logger.Warn("cascade layer bound reached, last layer keeps false positives",
				logfields.WithListID(s.cfg.ID),
				logfields.WithRounds(len(layers)),
				logfields.WithFalsePositives(len(falsePositives)),
			)

			return layers, nil
		}

		insert, other = falsePositives, insert
	}
}

func (s *CascadingStore) markValid(validHash []byte) error {
	if s.sealed {
		return ErrSealed
	}

	s.invalid.remove(validHash)
	s.valid.add(validHash)

	return nil
}

func (s *CascadingStore) markInvalid(validHash []byte) error {
	if s.sealed {
		return ErrSealed
	}

	s.valid.remove(validHash)
	s.invalid.add(validHash)

	return nil
}

func (s *CascadingStore) bulkMode() hashexec.Mode {
	return hashexec.ModeValidHash
}

func (s *CascadingStore) loadHashes(entries []hashexec.Entry, hashes [][]byte) error {
	if s.sealed {
		return ErrSealed
	}

	for i, e := range entries {
		if e.Valid {
			_ = s.markValid(hashes[i])
		} else {
			_ = s.markInvalid(hashes[i])
		}
	}

	return nil
}
