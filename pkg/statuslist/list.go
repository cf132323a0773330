/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslist

import (
	"fmt"

	"github.com/cre8/ephemeral-proof-of-issuance/internal/logfields"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/compaction"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashexec"
)

// ListStore keeps the exact set of valid hashes. Revoking an entry removes its ValidHash.
type ListStore struct {
	*base
	valid *entrySet
}

// NewListStore returns an empty list store.
func NewListStore(id, issuer string, opts ...Opt) (*ListStore, error) {
	b, err := newBase(id, issuer, opts)
	if err != nil {
		return nil, err
	}

	return &ListStore{base: b, valid: newEntrySet()}, nil
}

func (s *ListStore) Kind() Kind {
	return KindList
}

// AddValid inserts the ValidHash. A repeated insert is ignored unless the store is strict.
func (s *ListStore) AddValid(id string, secret []byte) (*SecretPayload, error) {
	validHash, err := s.engine.ValidHash(id, secret)
	if err != nil {
		return nil, err
	}

	if err = s.insert(id, validHash); err != nil {
		return nil, err
	}

	return s.secretPayload(id, secret), nil
}

// AddInvalid removes the ValidHash.
func (s *ListStore) AddInvalid(id string, secret []byte) error {
	validHash, err := s.engine.ValidHash(id, secret)
	if err != nil {
		return err
	}

	s.valid.remove(validHash)

	return nil
}

// CreateArtifact compacts the valid set into the artifact entries.
func (s *ListStore) CreateArtifact() (*Artifact, error) {
	entries, err := compaction.Encode(s.valid.values(), compaction.WithCompressor(s.opts.compressor))
	if err != nil {
		return nil, fmt.Errorf("encode list %s: %w", s.cfg.ID, err)
	}

	a := s.newArtifact(KindList)
	a.Entries = entries

	s.opts.metrics.ArtifactCreated(string(KindList))
	logger.Debug("list artifact created", logfields.WithListID(s.cfg.ID), logfields.WithEntries(s.valid.len()))

	return a, nil
}

func (s *ListStore) insert(id string, validHash []byte) error {
	if !s.valid.add(validHash) && s.opts.strictDuplicates {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, id)
	}

	return nil
}

func (s *ListStore) bulkMode() hashexec.Mode {
	return hashexec.ModeValidHash
}

func (s *ListStore) loadHashes(entries []hashexec.Entry, hashes [][]byte) error {
	for i, e := range entries {
		if !e.Valid {
			s.valid.remove(hashes[i])

			continue
		}

		if err := s.insert(e.ID, hashes[i]); err != nil {
			return err
		}
	}

	return nil
}
