/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hashing

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	t.Run("sha-256", func(t *testing.T) {
		digest, err := Hash(SHA256, []byte("abc"))
		require.NoError(t, err)
		require.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
			hex.EncodeToString(digest))
	})

	t.Run("inputs are concatenated in order", func(t *testing.T) {
		joined, err := Hash(SHA256, []byte("abc"))
		require.NoError(t, err)

		split, err := Hash(SHA256, []byte("a"), []byte("bc"))
		require.NoError(t, err)
		require.Equal(t, joined, split)

		reversed, err := Hash(SHA256, []byte("bc"), []byte("a"))
		require.NoError(t, err)
		require.NotEqual(t, joined, reversed)
	})

	t.Run("murmur3", func(t *testing.T) {
		digest, err := Hash(MurmurHash3, []byte("hello"))
		require.NoError(t, err)
		require.Equal(t, "248bfa47", hex.EncodeToString(digest))
		require.Equal(t, 4, MurmurHash3.Size())
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := Hash("MD5", []byte("abc"))
		require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
		require.Zero(t, HashAlgorithm("MD5").Size())
	})
}

func TestHMAC(t *testing.T) {
	t.Run("rfc 4231 case 2", func(t *testing.T) {
		mac, err := HMAC(HMACSHA256, []byte("Jefe"), []byte("what do ya want for nothing?"))
		require.NoError(t, err)
		require.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
			hex.EncodeToString(mac))
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := HMAC("SHA-1", []byte("k"), []byte("m"))
		require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})
}

func TestParse(t *testing.T) {
	alg, err := ParseHashAlgorithm("SHA-256")
	require.NoError(t, err)
	require.Equal(t, SHA256, alg)

	alg, err = ParseHashAlgorithm("MurmurHash3")
	require.NoError(t, err)
	require.Equal(t, MurmurHash3, alg)

	_, err = ParseHashAlgorithm("sha256")
	require.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	hmacAlg, err := ParseHMACAlgorithm("SHA-256")
	require.NoError(t, err)
	require.Equal(t, HMACSHA256, hmacAlg)

	_, err = ParseHMACAlgorithm("")
	require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}
