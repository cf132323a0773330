/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslist_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashexec"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/statuslist"
)

func bulkEntries(n int) []hashexec.Entry {
	entries := make([]hashexec.Entry, n)

	for i := range entries {
		entries[i] = hashexec.Entry{
			ID:     fmt.Sprintf("urn:uuid:%d", i),
			Secret: []byte(fmt.Sprintf("secret-%d", i)),
			Valid:  i%4 != 0,
		}
	}

	return entries
}

type recordingMetrics struct {
	artifacts   []string
	layers      []int
	hashBatches int
}

func (m *recordingMetrics) ArtifactCreated(kind string)    { m.artifacts = append(m.artifacts, kind) }
func (m *recordingMetrics) CascadeLayers(layers int)       { m.layers = append(m.layers, layers) }
func (m *recordingMetrics) CascadeFalsePositives(_, _ int) {}
func (m *recordingMetrics) HashBatchTime(_ time.Duration)  { m.hashBatches++ }
func (m *recordingMetrics) IssueTime(_ time.Duration)      {}

func TestBulkLoadMatchesSequentialAdds(t *testing.T) {
	entries := bulkEntries(400)

	for _, kind := range []statuslist.Kind{
		statuslist.KindList, statuslist.KindCRL, statuslist.KindBloom, statuslist.KindCascadingBloom,
	} {
		t.Run(string(kind), func(t *testing.T) {
			m := &recordingMetrics{}

			sequential, err := statuslist.NewStore(kind, listID, issuer, statuslist.WithClock(fixedClock()))
			require.NoError(t, err)

			for _, e := range entries {
				if e.Valid {
					_, err = sequential.AddValid(e.ID, e.Secret)
					require.NoError(t, err)
				} else {
					require.NoError(t, sequential.AddInvalid(e.ID, e.Secret))
				}
			}

			bulk, err := statuslist.NewStore(kind, listID, issuer,
				statuslist.WithClock(fixedClock()), statuslist.WithMetrics(m))
			require.NoError(t, err)

			require.NoError(t, statuslist.BulkLoad(context.Background(), bulk, entries, hashexec.New(4)))

			expected, err := sequential.CreateArtifact()
			require.NoError(t, err)

			actual, err := bulk.CreateArtifact()
			require.NoError(t, err)

			require.Equal(t, expected, actual)

			require.Equal(t, 1, m.hashBatches)
			require.Equal(t, []string{string(kind)}, m.artifacts)
		})
	}
}

func TestBulkLoad(t *testing.T) {
	t.Run("through a locked store", func(t *testing.T) {
		inner, err := statuslist.NewListStore(listID, issuer, statuslist.WithClock(fixedClock()))
		require.NoError(t, err)

		s := statuslist.NewLockedStore(inner)
		require.NoError(t, statuslist.BulkLoad(context.Background(), s, bulkEntries(10), hashexec.New(2)))

		a, err := s.CreateArtifact()
		require.NoError(t, err)

		direct, err := inner.CreateArtifact()
		require.NoError(t, err)
		require.Equal(t, direct, a)
	})

	t.Run("executor failure leaves the store untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		exec := NewMockHashExecutor(ctrl)
		exec.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, errors.New("worker crashed"))

		s, err := statuslist.NewListStore(listID, issuer, statuslist.WithClock(fixedClock()))
		require.NoError(t, err)

		empty, err := s.CreateArtifact()
		require.NoError(t, err)

		err = statuslist.BulkLoad(context.Background(), s, bulkEntries(10), exec)
		require.Error(t, err)
		require.Contains(t, err.Error(), "worker crashed")

		a, err := s.CreateArtifact()
		require.NoError(t, err)
		require.Equal(t, empty, a)
	})

	t.Run("request carries the store parameters", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		s, err := statuslist.NewCascadingStore(listID, issuer, statuslist.WithClock(fixedClock()))
		require.NoError(t, err)

		entries := bulkEntries(3)
		exec := NewMockHashExecutor(ctrl)
		exec.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req *hashexec.Request) ([][]byte, error) {
				require.Equal(t, s.Duration(), req.Duration)
				require.Equal(t, statuslist.DefaultHashAlgorithm, req.HashAlgorithm)
				require.Equal(t, statuslist.DefaultHMACAlgorithm, req.HMACAlgorithm)
				require.Equal(t, hashexec.ModeValidHash, req.Mode)
				require.Equal(t, entries, req.Entries)

				return [][]byte{{1}}, nil
			})

		err = statuslist.BulkLoad(context.Background(), s, entries, exec)
		require.Error(t, err)
		require.Contains(t, err.Error(), "got 1 hashes for 3 entries")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s, err := statuslist.NewBloomStore(listID, issuer)
		require.NoError(t, err)

		err = statuslist.BulkLoad(ctx, s, bulkEntries(100), hashexec.New(4))
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("sealed cascade", func(t *testing.T) {
		s, err := statuslist.NewCascadingStore(listID, issuer)
		require.NoError(t, err)

		_, err = s.CreateArtifact()
		require.NoError(t, err)

		err = statuslist.BulkLoad(context.Background(), s, bulkEntries(5), hashexec.New(1))
		require.ErrorIs(t, err, statuslist.ErrSealed)
	})

	t.Run("strict duplicates", func(t *testing.T) {
		s, err := statuslist.NewListStore(listID, issuer, statuslist.WithStrictDuplicates())
		require.NoError(t, err)

		entries := []hashexec.Entry{
			{ID: "a", Secret: []byte("s"), Valid: true},
			{ID: "a", Secret: []byte("s"), Valid: true},
		}

		err = statuslist.BulkLoad(context.Background(), s, entries, hashexec.New(2))
		require.ErrorIs(t, err, statuslist.ErrDuplicateEntry)
	})

	t.Run("store without bulk support", func(t *testing.T) {
		err := statuslist.BulkLoad(context.Background(), &foreignStore{}, bulkEntries(1), hashexec.New(1))
		require.ErrorIs(t, err, statuslist.ErrUnsupportedKind)

		err = statuslist.BulkLoad(context.Background(), statuslist.NewLockedStore(&foreignStore{}),
			bulkEntries(1), hashexec.New(1))
		require.ErrorIs(t, err, statuslist.ErrUnsupportedKind)
	})
}

type foreignStore struct{}

func (f *foreignStore) Kind() statuslist.Kind { return "foreign" }

func (f *foreignStore) Config() statuslist.ListConfig {
	return statuslist.ListConfig{
		HashAlgorithm: statuslist.DefaultHashAlgorithm,
		HMACAlgorithm: statuslist.DefaultHMACAlgorithm,
	}
}

func (f *foreignStore) Duration() int64 { return 1 }

func (f *foreignStore) AddValid(string, []byte) (*statuslist.SecretPayload, error) { return nil, nil }

func (f *foreignStore) AddInvalid(string, []byte) error { return nil }

func (f *foreignStore) CreateArtifact() (*statuslist.Artifact, error) { return nil, nil }
