/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hashing

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"

	"github.com/spaolacci/murmur3"
)

// HashAlgorithm identifies the digest used to derive membership keys.
type HashAlgorithm string

// HMACAlgorithm identifies the MAC used to derive holder tokens.
type HMACAlgorithm string

const (
	// SHA256 is the cryptographic digest. Default for every status list kind.
	SHA256 HashAlgorithm = "SHA-256"
	// MurmurHash3 is the fast 32-bit non-cryptographic digest. Only meant for very large bloom filters.
	MurmurHash3 HashAlgorithm = "MurmurHash3"

	// HMACSHA256 is HMAC with SHA-256.
	HMACSHA256 HMACAlgorithm = "SHA-256"
)

// ErrUnsupportedAlgorithm is returned for hash or HMAC identifiers that are not recognized.
var ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

// ParseHashAlgorithm validates a declared hash function name.
func ParseHashAlgorithm(name string) (HashAlgorithm, error) {
	switch alg := HashAlgorithm(name); alg {
	case SHA256, MurmurHash3:
		return alg, nil
	default:
		return "", fmt.Errorf("%w: hash function %q", ErrUnsupportedAlgorithm, name)
	}
}

// ParseHMACAlgorithm validates a declared HMAC function name.
func ParseHMACAlgorithm(name string) (HMACAlgorithm, error) {
	switch alg := HMACAlgorithm(name); alg {
	case HMACSHA256:
		return alg, nil
	default:
		return "", fmt.Errorf("%w: hmac function %q", ErrUnsupportedAlgorithm, name)
	}
}

func (a HashAlgorithm) newHash() (hash.Hash, error) {
	switch a {
	case SHA256:
		return sha256.New(), nil
	case MurmurHash3:
		return murmur3.New32(), nil
	default:
		return nil, fmt.Errorf("%w: hash function %q", ErrUnsupportedAlgorithm, string(a))
	}
}

// Size returns the digest length in bytes, or 0 for an unknown algorithm.
func (a HashAlgorithm) Size() int {
	h, err := a.newHash()
	if err != nil {
		return 0
	}

	return h.Size()
}

// Hash digests the inputs joined by plain byte concatenation, in the given order.
// No separator is inserted, so ("ab", "c") and ("a", "bc") collide.
func Hash(alg HashAlgorithm, inputs ...[]byte) ([]byte, error) {
	h, err := alg.newHash()
	if err != nil {
		return nil, err
	}

	for _, in := range inputs {
		// hash.Hash.Write never returns an error.
		_, _ = h.Write(in)
	}

	return h.Sum(nil), nil
}

// HMAC computes the MAC of msg keyed with key.
func HMAC(alg HMACAlgorithm, key, msg []byte) ([]byte, error) {
	if alg != HMACSHA256 {
		return nil, fmt.Errorf("%w: hmac function %q", ErrUnsupportedAlgorithm, string(alg))
	}

	mac := hmac.New(sha256.New, key)
	_, _ = mac.Write(msg)

	return mac.Sum(nil), nil
}
