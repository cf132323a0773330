/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package hashexec computes membership hashes for large entry lists on a bounded worker pool.
package hashexec

import (
	"context"
	"fmt"
	"runtime"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/epoch"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashing"
)

// Mode selects which hash is produced per entry.
type Mode int

const (
	// ModeStatusHash yields the ValidHash of valid entries and the InvalidHash of invalid ones.
	ModeStatusHash Mode = iota
	// ModeValidHash yields the ValidHash of every entry regardless of its status.
	ModeValidHash
)

// Entry is one credential to hash.
type Entry struct {
	ID     string
	Secret []byte
	Valid  bool
}

// Request describes one bulk run.
type Request struct {
	Duration      int64
	HashAlgorithm hashing.HashAlgorithm
	HMACAlgorithm hashing.HMACAlgorithm
	Entries       []Entry
	Mode          Mode
}

// Executor fans hashing out over a fixed number of workers.
type Executor struct {
	workers int
}

// New returns an executor with the given number of workers. Values below one select runtime.NumCPU.
func New(workers int) *Executor {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	return &Executor{workers: workers}
}

// Workers returns the pool size.
func (e *Executor) Workers() int {
	return e.workers
}

// Execute returns one hash per entry, in entry order. Nothing is returned until every chunk has finished.
func (e *Executor) Execute(ctx context.Context, req *Request) ([][]byte, error) {
	engine, err := epoch.New(req.Duration, req.HashAlgorithm, req.HMACAlgorithm)
	if err != nil {
		return nil, err
	}

	if len(req.Entries) == 0 {
		return [][]byte{}, nil
	}

	chunkSize := (len(req.Entries) + e.workers - 1) / e.workers
	chunks := lo.Chunk(req.Entries, chunkSize)
	results := make([][][]byte, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, c := range chunks {
		i, c := i, c

		g.Go(func() error {
			hashes, hashErr := hashChunk(gctx, engine, c, req.Mode)
			if hashErr != nil {
				return hashErr
			}

			results[i] = hashes

			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return nil, err
	}

	return lo.Flatten(results), nil
}

func hashChunk(ctx context.Context, engine *epoch.Engine, entries []Entry, mode Mode) ([][]byte, error) {
	out := make([][]byte, 0, len(entries))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		h, err := engine.ValidHash(entry.ID, entry.Secret)
		if err != nil {
			return nil, fmt.Errorf("hash entry %s: %w", entry.ID, err)
		}

		if mode == ModeStatusHash && !entry.Valid {
			if h, err = engine.InvalidHash(h); err != nil {
				return nil, fmt.Errorf("hash entry %s: %w", entry.ID, err)
			}
		}

		out = append(out, h)
	}

	return out, nil
}
