/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslist

import (
	"fmt"

	"github.com/cre8/ephemeral-proof-of-issuance/internal/logfields"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/bloom"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashexec"
)

// BloomStore keeps one filter holding the ValidHash of valid entries and the InvalidHash
// of revoked ones.
type BloomStore struct {
	*base
	filter *bloom.Filter
	count  int
}

// NewBloomStore returns a store with an empty filter sized from the capacity and false positive options.
func NewBloomStore(id, issuer string, opts ...Opt) (*BloomStore, error) {
	b, err := newBase(id, issuer, opts)
	if err != nil {
		return nil, err
	}

	f, err := bloom.New(b.opts.bloomParams)
	if err != nil {
		return nil, fmt.Errorf("create bloom list %s: %w", id, err)
	}

	return &BloomStore{base: b, filter: f}, nil
}

func (s *BloomStore) Kind() Kind {
	return KindBloom
}

// AddValid inserts the ValidHash.
func (s *BloomStore) AddValid(id string, secret []byte) (*SecretPayload, error) {
	validHash, err := s.engine.ValidHash(id, secret)
	if err != nil {
		return nil, err
	}

	s.add(validHash)

	return s.secretPayload(id, secret), nil
}

// AddInvalid inserts the InvalidHash, never the ValidHash.
func (s *BloomStore) AddInvalid(id string, secret []byte) error {
	_, invalidHash, err := s.hashes(id, secret)
	if err != nil {
		return err
	}

	s.add(invalidHash)

	return nil
}

// CreateArtifact encodes the filter bitmap with its sizing parameters.
func (s *BloomStore) CreateArtifact() (*Artifact, error) {
	content, err := s.filter.Encode(s.opts.compressor)
	if err != nil {
		return nil, fmt.Errorf("encode bloom list %s: %w", s.cfg.ID, err)
	}

	p := s.filter.Params()

	a := s.newArtifact(KindBloom)
	a.Content = []string{content}
	a.Size = p.Capacity
	a.FalsePositive = p.FalsePositive
	a.HashFunctions = s.filter.HashFunctions()

	s.opts.metrics.ArtifactCreated(string(KindBloom))
	logger.Debug("bloom artifact created", logfields.WithListID(s.cfg.ID), logfields.WithEntries(s.count))

	return a, nil
}

func (s *BloomStore) add(h []byte) {
	s.filter.Add(h)
	s.count++
}

func (s *BloomStore) bulkMode() hashexec.Mode {
	return hashexec.ModeStatusHash
}

func (s *BloomStore) loadHashes(_ []hashexec.Entry, hashes [][]byte) error {
	for _, h := range hashes {
		s.add(h)
	}

	return nil
}
