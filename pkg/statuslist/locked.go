/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslist

import (
	"sync"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashexec"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/metrics"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/metrics/noop"
)

// LockedStore serialises every operation of the wrapped store behind one mutex.
type LockedStore struct {
	mutex sync.Mutex
	store Store
}

// NewLockedStore wraps s for use by several writers.
func NewLockedStore(s Store) *LockedStore {
	return &LockedStore{store: s}
}

func (l *LockedStore) Kind() Kind {
	return l.store.Kind()
}

func (l *LockedStore) Config() ListConfig {
	return l.store.Config()
}

func (l *LockedStore) Duration() int64 {
	return l.store.Duration()
}

func (l *LockedStore) AddValid(id string, secret []byte) (*SecretPayload, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.store.AddValid(id, secret)
}

func (l *LockedStore) AddInvalid(id string, secret []byte) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.store.AddInvalid(id, secret)
}

func (l *LockedStore) CreateArtifact() (*Artifact, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.store.CreateArtifact()
}

func (l *LockedStore) bulkMode() hashexec.Mode {
	if b, ok := l.store.(bulkLoader); ok {
		return b.bulkMode()
	}

	return hashexec.ModeStatusHash
}

func (l *LockedStore) loadHashes(entries []hashexec.Entry, hashes [][]byte) error {
	b, ok := l.store.(bulkLoader)
	if !ok {
		return errBulkUnsupported(l.store)
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	return b.loadHashes(entries, hashes)
}

func (l *LockedStore) metrics() metrics.Metrics {
	if b, ok := l.store.(bulkLoader); ok {
		return b.metrics()
	}

	return noop.GetMetrics()
}
