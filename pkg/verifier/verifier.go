/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package verifier rebuilds a status list from its artifact and answers whether a holder token is valid.
package verifier

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/compaction"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/compression"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/epoch"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashing"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/statuslist"
)

var (
	// ErrExpired is returned by time checked verifiers once the artifact is past its expiry.
	ErrExpired = errors.New("status list expired")

	ErrDecode               = compaction.ErrDecode
	ErrUnsupportedKind      = statuslist.ErrUnsupportedKind
	ErrUnsupportedAlgorithm = hashing.ErrUnsupportedAlgorithm
)

// Verifier answers membership queries against one artifact.
type Verifier interface {
	IsValid(token *statuslist.TokenPayload) (bool, error)
}

type Opt func(*options)

type options struct {
	timeCheck bool
	now       func() time.Time
}

// WithTimeCheck makes every query fail with ErrExpired once the artifact expired.
func WithTimeCheck() Opt {
	return func(o *options) {
		o.timeCheck = true
	}
}

// WithClock overrides time.Now for the expiry check.
func WithClock(now func() time.Time) Opt {
	return func(o *options) {
		o.now = now
	}
}

// New returns the verifier for the artifact kind.
func New(a *statuslist.Artifact, opts ...Opt) (Verifier, error) {
	switch a.Kind {
	case statuslist.KindList:
		return NewListVerifier(a, opts...)
	case statuslist.KindCRL:
		return NewCRLVerifier(a, opts...)
	case statuslist.KindBloom:
		return NewBloomVerifier(a, opts...)
	case statuslist.KindCascadingBloom:
		return NewCascadingVerifier(a, opts...)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, a.Kind)
	}
}

type base struct {
	artifact *statuslist.Artifact
	hashAlg  hashing.HashAlgorithm
	opts     *options
}

func newBase(a *statuslist.Artifact, kind statuslist.Kind, opts []Opt) (*base, error) {
	if a.Kind != kind {
		return nil, fmt.Errorf("%w: %s verifier got a %s artifact", ErrUnsupportedKind, kind, a.Kind)
	}

	hashAlg, err := hashing.ParseHashAlgorithm(string(a.HashFunction))
	if err != nil {
		return nil, err
	}

	o := &options{now: time.Now}

	for _, opt := range opts {
		opt(o)
	}

	return &base{artifact: a, hashAlg: hashAlg, opts: o}, nil
}

func (b *base) compressor() (compression.Compressor, error) {
	return compression.NewCompressor(b.artifact.CompressionName())
}

func (b *base) checkExpiry() error {
	if b.opts.timeCheck && b.artifact.Expired(b.opts.now()) {
		return fmt.Errorf("%w: %s expired at %d", ErrExpired, b.artifact.ID, b.artifact.ExpiresAt)
	}

	return nil
}

// validHash recomputes the membership key from a holder token. A token that is not
// base64 cannot be a member, so ok is false without an error.
func (b *base) validHash(token *statuslist.TokenPayload) (validHash []byte, ok bool, err error) {
	if err = b.checkExpiry(); err != nil {
		return nil, false, err
	}

	raw, decodeErr := base64.StdEncoding.DecodeString(token.Token)
	if decodeErr != nil {
		return nil, false, nil
	}

	validHash, err = epoch.ValidHash(b.hashAlg, raw, token.Subject)
	if err != nil {
		return nil, false, err
	}

	return validHash, true, nil
}

func (b *base) invalidHash(validHash []byte) ([]byte, error) {
	return epoch.InvalidHash(b.hashAlg, validHash)
}
