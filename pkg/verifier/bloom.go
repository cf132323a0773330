/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"fmt"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/bloom"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/statuslist"
)

// BloomVerifier reports valid when the filter holds the ValidHash and not the InvalidHash.
type BloomVerifier struct {
	*base
	filter *bloom.Filter
}

// NewBloomVerifier rebuilds the filter with the artifact's declared size and false positive rate.
func NewBloomVerifier(a *statuslist.Artifact, opts ...Opt) (*BloomVerifier, error) {
	b, err := newBase(a, statuslist.KindBloom, opts)
	if err != nil {
		return nil, err
	}

	filters, err := decodeLayers(b, a)
	if err != nil {
		return nil, err
	}

	return &BloomVerifier{base: b, filter: filters[0]}, nil
}

func (v *BloomVerifier) IsValid(token *statuslist.TokenPayload) (bool, error) {
	validHash, ok, err := v.validHash(token)
	if err != nil || !ok {
		return false, err
	}

	if !v.filter.Test(validHash) {
		return false, nil
	}

	invalidHash, err := v.invalidHash(validHash)
	if err != nil {
		return false, err
	}

	return !v.filter.Test(invalidHash), nil
}

func decodeLayers(b *base, a *statuslist.Artifact) ([]*bloom.Filter, error) {
	if len(a.Content) == 0 {
		return nil, ErrDecode
	}

	c, err := b.compressor()
	if err != nil {
		return nil, err
	}

	p := bloom.Params{
		Capacity:      a.Size,
		FalsePositive: a.FalsePositive,
		HashFunctions: a.HashFunctions,
	}

	if err = p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecode, err.Error())
	}

	layers := make([]*bloom.Filter, len(a.Content))

	for i, content := range a.Content {
		if layers[i], err = bloom.Decode(content, p, c); err != nil {
			return nil, err
		}
	}

	return layers, nil
}
