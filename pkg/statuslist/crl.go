/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslist

import (
	"encoding/hex"
	"fmt"

	"github.com/samber/lo"

	"github.com/cre8/ephemeral-proof-of-issuance/internal/logfields"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashexec"
)

// CRLStore is an append only audit list. It holds every ValidHash ever enrolled plus the
// InvalidHash of every revoked entry, so an auditor can tell revoked from never enrolled.
type CRLStore struct {
	*base
	entries *entrySet
}

// NewCRLStore returns an empty crl store.
func NewCRLStore(id, issuer string, opts ...Opt) (*CRLStore, error) {
	b, err := newBase(id, issuer, opts)
	if err != nil {
		return nil, err
	}

	return &CRLStore{base: b, entries: newEntrySet()}, nil
}

func (s *CRLStore) Kind() Kind {
	return KindCRL
}

// AddValid appends the ValidHash. Enrolling the same entry twice fails with ErrDuplicateEntry.
func (s *CRLStore) AddValid(id string, secret []byte) (*SecretPayload, error) {
	validHash, err := s.engine.ValidHash(id, secret)
	if err != nil {
		return nil, err
	}

	if err = s.appendHash(id, validHash); err != nil {
		return nil, err
	}

	return s.secretPayload(id, secret), nil
}

// AddInvalid appends the InvalidHash and leaves the ValidHash in place.
func (s *CRLStore) AddInvalid(id string, secret []byte) error {
	_, invalidHash, err := s.hashes(id, secret)
	if err != nil {
		return err
	}

	s.entries.add(invalidHash)

	return nil
}

// CreateArtifact lists every hash, hex encoded, in insertion order.
func (s *CRLStore) CreateArtifact() (*Artifact, error) {
	a := s.newArtifact(KindCRL)
	a.Compression = ""
	a.CRLEntries = lo.Map(s.entries.values(), func(h []byte, _ int) string {
		return hex.EncodeToString(h)
	})

	s.opts.metrics.ArtifactCreated(string(KindCRL))
	logger.Debug("crl artifact created", logfields.WithListID(s.cfg.ID), logfields.WithEntries(s.entries.len()))

	return a, nil
}

func (s *CRLStore) appendHash(id string, h []byte) error {
	if !s.entries.add(h) {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, id)
	}

	return nil
}

func (s *CRLStore) bulkMode() hashexec.Mode {
	return hashexec.ModeStatusHash
}

func (s *CRLStore) loadHashes(entries []hashexec.Entry, hashes [][]byte) error {
	for i, e := range entries {
		if !e.Valid {
			s.entries.add(hashes[i])

			continue
		}

		if err := s.appendHash(e.ID, hashes[i]); err != nil {
			return err
		}
	}

	return nil
}
