/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination bulk_mocks_test.go -package statuslist_test -source=bulk.go

package statuslist

import (
	"context"
	"fmt"
	"time"

	"github.com/cre8/ephemeral-proof-of-issuance/internal/logfields"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashexec"
)

// HashExecutor computes membership hashes for many entries at once.
type HashExecutor interface {
	Execute(ctx context.Context, req *hashexec.Request) ([][]byte, error)
}

// BulkLoad hashes entries through exec and merges the result into store. The store is
// only touched after every hash was computed, so a cancelled or failed run leaves it unchanged.
func BulkLoad(ctx context.Context, store Store, entries []hashexec.Entry, exec HashExecutor) error {
	loader, ok := store.(bulkLoader)
	if !ok {
		return errBulkUnsupported(store)
	}

	cfg := store.Config()
	start := time.Now()

	hashes, err := exec.Execute(ctx, &hashexec.Request{
		Duration:      store.Duration(),
		HashAlgorithm: cfg.HashAlgorithm,
		HMACAlgorithm: cfg.HMACAlgorithm,
		Entries:       entries,
		Mode:          loader.bulkMode(),
	})
	if err != nil {
		return fmt.Errorf("bulk hash %s: %w", cfg.ID, err)
	}

	if len(hashes) != len(entries) {
		return fmt.Errorf("bulk hash %s: got %d hashes for %d entries", cfg.ID, len(hashes), len(entries))
	}

	elapsed := time.Since(start)
	loader.metrics().HashBatchTime(elapsed)

	logger.Debugc(ctx, "bulk hash completed",
		logfields.WithListID(cfg.ID),
		logfields.WithKind(string(store.Kind())),
		logfields.WithEntries(len(entries)),
		logfields.WithDuration(elapsed),
	)

	return loader.loadHashes(entries, hashes)
}

func errBulkUnsupported(s Store) error {
	return fmt.Errorf("%w: bulk load into %s", ErrUnsupportedKind, s.Kind())
}
