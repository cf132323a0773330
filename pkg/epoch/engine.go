/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package epoch derives the time-windowed holder token and the membership
// hashes every status list kind is keyed by.
//
//	token       = HMAC(key = secret, msg = decimal(duration))
//	validHash   = Hash(token || id)
//	invalidHash = Hash(validHash)
package epoch

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"time"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashing"
)

const (
	// DefaultEpochSeconds is the length of one duration bucket.
	DefaultEpochSeconds = 3600
	// SecretSize is the number of random bytes in a generated secret.
	SecretSize = 32
)

// Engine is bound to one duration value for its whole lifetime.
type Engine struct {
	duration int64
	hashAlg  hashing.HashAlgorithm
	hmacAlg  hashing.HMACAlgorithm
}

// DurationAt returns floor(unix(now) / epochSeconds).
func DurationAt(now time.Time, epochSeconds int64) int64 {
	secs := now.Unix()
	d := secs / epochSeconds

	if secs%epochSeconds != 0 && secs < 0 {
		d--
	}

	return d
}

// New returns an engine for an already computed duration.
func New(duration int64, hashAlg hashing.HashAlgorithm, hmacAlg hashing.HMACAlgorithm) (*Engine, error) {
	if _, err := hashing.ParseHashAlgorithm(string(hashAlg)); err != nil {
		return nil, err
	}

	if _, err := hashing.ParseHMACAlgorithm(string(hmacAlg)); err != nil {
		return nil, err
	}

	return &Engine{
		duration: duration,
		hashAlg:  hashAlg,
		hmacAlg:  hmacAlg,
	}, nil
}

// NewAt computes the duration once from now and returns an engine bound to it.
func NewAt(now time.Time, epochSeconds int64, hashAlg hashing.HashAlgorithm,
	hmacAlg hashing.HMACAlgorithm) (*Engine, error) {
	if epochSeconds <= 0 {
		return nil, fmt.Errorf("epoch must be positive, got %d", epochSeconds)
	}

	return New(DurationAt(now, epochSeconds), hashAlg, hmacAlg)
}

// Duration returns the bound duration counter.
func (e *Engine) Duration() int64 {
	return e.duration
}

// HashAlgorithm returns the digest used for membership keys.
func (e *Engine) HashAlgorithm() hashing.HashAlgorithm {
	return e.hashAlg
}

// HMACAlgorithm returns the MAC used for tokens.
func (e *Engine) HMACAlgorithm() hashing.HMACAlgorithm {
	return e.hmacAlg
}

// Token returns the holder token for secret in the bound duration.
func (e *Engine) Token(secret []byte) ([]byte, error) {
	return Token(e.hmacAlg, e.duration, secret)
}

// ValidHash returns the membership key declaring the credential valid.
func (e *Engine) ValidHash(id string, secret []byte) ([]byte, error) {
	token, err := e.Token(secret)
	if err != nil {
		return nil, err
	}

	return ValidHash(e.hashAlg, token, id)
}

// InvalidHash returns the membership key declaring the credential revoked.
func (e *Engine) InvalidHash(validHash []byte) ([]byte, error) {
	return InvalidHash(e.hashAlg, validHash)
}

// Token computes HMAC(secret, decimal(duration)).
func Token(alg hashing.HMACAlgorithm, duration int64, secret []byte) ([]byte, error) {
	return hashing.HMAC(alg, secret, []byte(strconv.FormatInt(duration, 10)))
}

// ValidHash computes Hash(token || id). This is what a verifier recomputes from a holder token.
func ValidHash(alg hashing.HashAlgorithm, token []byte, id string) ([]byte, error) {
	return hashing.Hash(alg, token, []byte(id))
}

// InvalidHash computes Hash(validHash).
func InvalidHash(alg hashing.HashAlgorithm, validHash []byte) ([]byte, error) {
	return hashing.Hash(alg, validHash)
}

// NewSecret returns SecretSize random bytes.
func NewSecret() ([]byte, error) {
	secret := make([]byte, SecretSize)

	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}

	return secret, nil
}
