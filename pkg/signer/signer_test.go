/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signer

import (
	"context"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"testing"

	gojose "github.com/go-jose/go-jose/v3"
	"github.com/stretchr/testify/require"
)

func TestJWSSigner(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	s := NewJWSSigner(StaticKeys{"issuer-key": key})
	payload := map[string]interface{}{"jti": "list-1", "iat": float64(1000)}

	t.Run("ES256", func(t *testing.T) {
		signed, err := s.Sign(context.Background(), payload, "issuer-key", "ES256")
		require.NoError(t, err)

		jws, err := gojose.ParseSigned(string(signed))
		require.NoError(t, err)
		require.Len(t, jws.Signatures, 1)
		require.Equal(t, "issuer-key", jws.Signatures[0].Header.KeyID)
		require.Equal(t, "ES256", jws.Signatures[0].Header.Algorithm)

		verified, err := jws.Verify(&key.PublicKey)
		require.NoError(t, err)

		decoded := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(verified, &decoded))
		require.Equal(t, payload, decoded)
	})

	t.Run("EdDSA", func(t *testing.T) {
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)

		signed, err := NewJWSSigner(StaticKeys{"ed": priv}).Sign(context.Background(), payload, "ed", "EdDSA")
		require.NoError(t, err)

		jws, err := gojose.ParseSigned(string(signed))
		require.NoError(t, err)

		_, err = jws.Verify(pub)
		require.NoError(t, err)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := s.Sign(context.Background(), payload, "other", "ES256")
		require.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("algorithm does not fit the key", func(t *testing.T) {
		_, err := s.Sign(context.Background(), payload, "issuer-key", "RS256")
		require.Error(t, err)
	})

	t.Run("payload not serializable", func(t *testing.T) {
		_, err := s.Sign(context.Background(), map[string]interface{}{"c": make(chan int)}, "issuer-key", "ES256")
		require.Error(t, err)
		require.Contains(t, err.Error(), "marshal payload")
	})
}

func TestParsePrivateKeyPEM(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	t.Run("pkcs8", func(t *testing.T) {
		der, err := x509.MarshalPKCS8PrivateKey(key)
		require.NoError(t, err)

		parsed, err := ParsePrivateKeyPEM(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
		require.NoError(t, err)
		require.True(t, key.Equal(parsed))
	})

	t.Run("sec1", func(t *testing.T) {
		der, err := x509.MarshalECPrivateKey(key)
		require.NoError(t, err)

		parsed, err := ParsePrivateKeyPEM(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}))
		require.NoError(t, err)
		require.True(t, key.Equal(parsed))
	})

	t.Run("errors", func(t *testing.T) {
		_, err := ParsePrivateKeyPEM([]byte("not pem"))
		require.Error(t, err)

		_, err = ParsePrivateKeyPEM(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte("junk")}))
		require.Error(t, err)
	})
}
