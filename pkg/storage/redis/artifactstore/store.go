/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package artifactstore keeps the latest signed artifact per status list in redis.
// Entries expire together with the artifact they hold.
package artifactstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	statuslistsvc "github.com/cre8/ephemeral-proof-of-issuance/pkg/service/statuslist"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/statuslist"
)

const (
	keyPrefix = "statuslist_artifact"
)

// ErrExpired is returned when an artifact is stored after its expiry.
var ErrExpired = errors.New("artifact already expired")

type document struct {
	Artifact json.RawMessage `json:"artifact"`
	Signed   string          `json:"signed,omitempty"`
}

type Store struct {
	redisClient redisClient
	now         func() time.Time
}

// New creates an artifact store. now may be nil.
func New(redisClient redisClient, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}

	return &Store{
		redisClient: redisClient,
		now:         now,
	}
}

// Put replaces the artifact of the list. The key lives until the artifact expires.
func (s *Store) Put(ctx context.Context, a *statuslist.Artifact, signed []byte) error {
	ttl := time.UnixMilli(a.ExpiresAt).Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("%w: list %s", ErrExpired, a.ID)
	}

	raw, err := a.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}

	b, err := json.Marshal(&document{Artifact: raw, Signed: string(signed)})
	if err != nil {
		return err
	}

	if err = s.redisClient.API().Set(ctx, resolveRedisKey(a.ID), string(b), ttl).Err(); err != nil {
		return fmt.Errorf("redis put artifact: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, listID string) (*statuslistsvc.Record, error) {
	b, err := s.redisClient.API().Get(ctx, resolveRedisKey(listID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, statuslistsvc.ErrDataNotFound
		}

		return nil, err
	}

	var doc document
	if err = json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("data decode: %w", err)
	}

	a, err := statuslist.ParseArtifact(doc.Artifact)
	if err != nil {
		return nil, fmt.Errorf("data decode: %w", err)
	}

	rec := &statuslistsvc.Record{Artifact: a}
	if doc.Signed != "" {
		rec.Signed = []byte(doc.Signed)
	}

	return rec, nil
}

func (s *Store) Delete(ctx context.Context, listID string) error {
	if err := s.redisClient.API().Del(ctx, resolveRedisKey(listID)).Err(); err != nil {
		return fmt.Errorf("failed to delete artifact of list[%s]: %w", listID, err)
	}

	return nil
}

func resolveRedisKey(id string) string {
	return fmt.Sprintf("%s-%s", keyPrefix, id)
}
