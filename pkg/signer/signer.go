/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package signer holds the signing service seen by the issuer and a JWS implementation of it.
package signer

import (
	"context"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"

	gojose "github.com/go-jose/go-jose/v3"
)

// ErrKeyNotFound is returned for a key handle the signer does not know.
var ErrKeyNotFound = errors.New("signing key not found")

// Signer signs a plain key-value payload with the key behind keyID and returns an opaque envelope.
type Signer interface {
	Sign(ctx context.Context, payload map[string]interface{}, keyID, alg string) ([]byte, error)
}

// KeyResolver maps a key handle to a private key go-jose can sign with.
type KeyResolver interface {
	PrivateKey(ctx context.Context, keyID string) (interface{}, error)
}

// StaticKeys resolves keys from an in-memory map.
type StaticKeys map[string]interface{}

func (k StaticKeys) PrivateKey(_ context.Context, keyID string) (interface{}, error) {
	key, ok := k[keyID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, keyID)
	}

	return key, nil
}

// JWSSigner produces compact JWS with typ JWT and the key handle as kid.
type JWSSigner struct {
	keys KeyResolver
}

// NewJWSSigner returns a JWS signer.
func NewJWSSigner(keys KeyResolver) *JWSSigner {
	return &JWSSigner{keys: keys}
}

func (s *JWSSigner) Sign(ctx context.Context, payload map[string]interface{}, keyID, alg string) ([]byte, error) {
	key, err := s.keys.PrivateKey(ctx, keyID)
	if err != nil {
		return nil, err
	}

	signer, err := gojose.NewSigner(
		gojose.SigningKey{Algorithm: gojose.SignatureAlgorithm(alg), Key: key},
		(&gojose.SignerOptions{}).WithType("JWT").WithHeader("kid", keyID),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s signer: %w", alg, err)
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	jws, err := signer.Sign(b)
	if err != nil {
		return nil, fmt.Errorf("sign payload: %w", err)
	}

	compact, err := jws.CompactSerialize()
	if err != nil {
		return nil, fmt.Errorf("serialize jws: %w", err)
	}

	return []byte(compact), nil
}

// ParsePrivateKeyPEM reads a PKCS#8 or SEC 1 encoded private key.
func ParsePrivateKeyPEM(data []byte) (interface{}, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	key, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	return key, nil
}
