/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hashexec_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/epoch"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashexec"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashing"
)

const duration = 472222

func testEntries(n int) []hashexec.Entry {
	entries := make([]hashexec.Entry, n)

	for i := range entries {
		entries[i] = hashexec.Entry{
			ID:     fmt.Sprintf("urn:uuid:%d", i),
			Secret: []byte(fmt.Sprintf("secret-%d", i)),
			Valid:  i%3 != 0,
		}
	}

	return entries
}

func sequential(t *testing.T, entries []hashexec.Entry, mode hashexec.Mode) [][]byte {
	t.Helper()

	engine, err := epoch.New(duration, hashing.SHA256, hashing.HMACSHA256)
	require.NoError(t, err)

	out := make([][]byte, 0, len(entries))

	for _, e := range entries {
		h, err := engine.ValidHash(e.ID, e.Secret)
		require.NoError(t, err)

		if mode == hashexec.ModeStatusHash && !e.Valid {
			h, err = engine.InvalidHash(h)
			require.NoError(t, err)
		}

		out = append(out, h)
	}

	return out
}

func TestExecuteMatchesSequential(t *testing.T) {
	entries := testEntries(1000)

	for _, mode := range []hashexec.Mode{hashexec.ModeStatusHash, hashexec.ModeValidHash} {
		expected := sequential(t, entries, mode)

		for _, workers := range []int{1, 4, 9} {
			t.Run(fmt.Sprintf("mode %d workers %d", mode, workers), func(t *testing.T) {
				exec := hashexec.New(workers)
				require.Equal(t, workers, exec.Workers())

				hashes, err := exec.Execute(context.Background(), &hashexec.Request{
					Duration:      duration,
					HashAlgorithm: hashing.SHA256,
					HMACAlgorithm: hashing.HMACSHA256,
					Entries:       entries,
					Mode:          mode,
				})
				require.NoError(t, err)
				require.Equal(t, expected, hashes)
			})
		}
	}
}

func TestExecute(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		hashes, err := hashexec.New(4).Execute(context.Background(), &hashexec.Request{
			HashAlgorithm: hashing.SHA256,
			HMACAlgorithm: hashing.HMACSHA256,
		})
		require.NoError(t, err)
		require.Empty(t, hashes)
	})

	t.Run("fewer entries than workers", func(t *testing.T) {
		entries := testEntries(3)

		hashes, err := hashexec.New(9).Execute(context.Background(), &hashexec.Request{
			Duration:      duration,
			HashAlgorithm: hashing.SHA256,
			HMACAlgorithm: hashing.HMACSHA256,
			Entries:       entries,
		})
		require.NoError(t, err)
		require.Equal(t, sequential(t, entries, hashexec.ModeStatusHash), hashes)
	})

	t.Run("default workers", func(t *testing.T) {
		require.Positive(t, hashexec.New(0).Workers())
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		_, err := hashexec.New(2).Execute(context.Background(), &hashexec.Request{
			HashAlgorithm: "SHA-1",
			HMACAlgorithm: hashing.HMACSHA256,
			Entries:       testEntries(2),
		})
		require.ErrorIs(t, err, hashing.ErrUnsupportedAlgorithm)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		hashes, err := hashexec.New(4).Execute(ctx, &hashexec.Request{
			Duration:      duration,
			HashAlgorithm: hashing.SHA256,
			HMACAlgorithm: hashing.HMACSHA256,
			Entries:       testEntries(100),
		})
		require.ErrorIs(t, err, context.Canceled)
		require.Nil(t, hashes)
	})
}
