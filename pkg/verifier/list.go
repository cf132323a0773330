/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"encoding/hex"
	"fmt"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/compaction"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/statuslist"
)

// SetVerifier checks exact membership of the ValidHash and, for crl artifacts, absence of the InvalidHash.
type SetVerifier struct {
	*base
	entries     map[string]struct{}
	checkRevoke bool
}

// NewListVerifier decodes the compacted entries of a list artifact.
func NewListVerifier(a *statuslist.Artifact, opts ...Opt) (*SetVerifier, error) {
	b, err := newBase(a, statuslist.KindList, opts)
	if err != nil {
		return nil, err
	}

	c, err := b.compressor()
	if err != nil {
		return nil, err
	}

	hashes, err := compaction.Decode(a.Entries, compaction.WithCompressor(c))
	if err != nil {
		return nil, err
	}

	entries := make(map[string]struct{}, len(hashes))
	for _, h := range hashes {
		entries[string(h)] = struct{}{}
	}

	return &SetVerifier{base: b, entries: entries}, nil
}

// NewCRLVerifier decodes the hex entries of a crl artifact.
func NewCRLVerifier(a *statuslist.Artifact, opts ...Opt) (*SetVerifier, error) {
	b, err := newBase(a, statuslist.KindCRL, opts)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]struct{}, len(a.CRLEntries))

	for i, e := range a.CRLEntries {
		h, decodeErr := hex.DecodeString(e)
		if decodeErr != nil {
			return nil, fmt.Errorf("%w: crl entry %d: %s", ErrDecode, i, decodeErr.Error())
		}

		entries[string(h)] = struct{}{}
	}

	return &SetVerifier{base: b, entries: entries, checkRevoke: true}, nil
}

// Len returns the number of decoded entries.
func (v *SetVerifier) Len() int {
	return len(v.entries)
}

func (v *SetVerifier) IsValid(token *statuslist.TokenPayload) (bool, error) {
	validHash, ok, err := v.validHash(token)
	if err != nil || !ok {
		return false, err
	}

	if _, found := v.entries[string(validHash)]; !found {
		return false, nil
	}

	if !v.checkRevoke {
		return true, nil
	}

	invalidHash, err := v.invalidHash(validHash)
	if err != nil {
		return false, err
	}

	_, revoked := v.entries[string(invalidHash)]

	return !revoked, nil
}
