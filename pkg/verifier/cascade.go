/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/bloom"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/statuslist"
)

// CascadingVerifier walks the layer chain of a cascading-bloom artifact.
type CascadingVerifier struct {
	*base
	layers []*bloom.Filter
}

// NewCascadingVerifier rebuilds every layer with the artifact's shared sizing parameters.
func NewCascadingVerifier(a *statuslist.Artifact, opts ...Opt) (*CascadingVerifier, error) {
	b, err := newBase(a, statuslist.KindCascadingBloom, opts)
	if err != nil {
		return nil, err
	}

	layers, err := decodeLayers(b, a)
	if err != nil {
		return nil, err
	}

	return &CascadingVerifier{base: b, layers: layers}, nil
}

// Layers returns the number of layers in the chain.
func (v *CascadingVerifier) Layers() int {
	return len(v.layers)
}

// IsValid tests the ValidHash layer by layer. Absence from an even layer means invalid,
// absence from an odd layer means valid. Presence in every layer is decided by the parity
// of the last layer.
func (v *CascadingVerifier) IsValid(token *statuslist.TokenPayload) (bool, error) {
	validHash, ok, err := v.validHash(token)
	if err != nil || !ok {
		return false, err
	}

	for i, layer := range v.layers {
		if !layer.Test(validHash) {
			return i%2 == 1, nil
		}
	}

	return (len(v.layers)-1)%2 == 0, nil
}
