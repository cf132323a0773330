/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination statuslist_service_mocks_test.go -self_package mocks -package statuslist_test -source=statuslist_service.go -mock_names hashExecutor=MockHashExecutor,signer=MockSigner,artifactStore=MockArtifactStore

// Package statuslist is the issuer service: it builds a store of the configured kind from a batch of entries,
// then signs and persists the resulting artifact.
package statuslist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/cre8/ephemeral-proof-of-issuance/internal/logfields"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashexec"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/metrics"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/metrics/noop"
	statuslistapi "github.com/cre8/ephemeral-proof-of-issuance/pkg/statuslist"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/verifier"
)

var logger = log.New("status-list-service")

type hashExecutor interface {
	Execute(ctx context.Context, req *hashexec.Request) ([][]byte, error)
}

type signer interface {
	Sign(ctx context.Context, payload map[string]interface{}, keyID, alg string) ([]byte, error)
}

type artifactStore interface {
	Put(ctx context.Context, a *statuslistapi.Artifact, signed []byte) error
	Get(ctx context.Context, listID string) (*Record, error)
}

type Config struct {
	Kind      statuslistapi.Kind
	StoreOpts []statuslistapi.Opt
	// Executor defaults to a hashexec.Executor with one worker per CPU.
	Executor      hashExecutor
	Signer        signer
	ArtifactStore artifactStore
	KeyID         string
	Algorithm     string
	Metrics       metrics.Metrics
	Now           func() time.Time
}

type Service struct {
	kind      statuslistapi.Kind
	storeOpts []statuslistapi.Opt
	executor  hashExecutor
	signer    signer
	store     artifactStore
	keyID     string
	algorithm string
	metrics   metrics.Metrics
	now       func() time.Time
}

var _ ServiceInterface = (*Service)(nil)

// NewService returns a new Service instance.
func NewService(config *Config) (*Service, error) {
	kind, err := statuslistapi.ParseKind(string(config.Kind))
	if err != nil {
		return nil, err
	}

	if config.Signer != nil && (config.KeyID == "" || config.Algorithm == "") {
		return nil, errors.New("signer requires a key id and an algorithm")
	}

	svc := &Service{
		kind:      kind,
		storeOpts: config.StoreOpts,
		executor:  config.Executor,
		signer:    config.Signer,
		store:     config.ArtifactStore,
		keyID:     config.KeyID,
		algorithm: config.Algorithm,
		metrics:   config.Metrics,
		now:       config.Now,
	}

	if svc.executor == nil {
		svc.executor = hashexec.New(0)
	}

	if svc.metrics == nil {
		svc.metrics = noop.GetMetrics()
	}

	if svc.now == nil {
		svc.now = time.Now
	}

	return svc, nil
}

// Issue builds a fresh list from entries. Hashes are computed by the executor before the store is touched.
func (s *Service) Issue(
	ctx context.Context,
	listID, issuer string,
	entries []hashexec.Entry,
) (*IssueResult, error) {
	start := time.Now()

	opts := append([]statuslistapi.Opt{
		statuslistapi.WithMetrics(s.metrics),
		statuslistapi.WithClock(s.now),
	}, s.storeOpts...)

	store, err := statuslistapi.NewStore(s.kind, listID, issuer, opts...)
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	if err = statuslistapi.BulkLoad(ctx, store, entries, s.executor); err != nil {
		return nil, err
	}

	artifact, err := store.CreateArtifact()
	if err != nil {
		return nil, fmt.Errorf("create artifact: %w", err)
	}

	issuedAt := s.now()

	result := &IssueResult{
		Artifact: artifact,
		Secrets: lo.FilterMap(entries, func(e hashexec.Entry, _ int) (*statuslistapi.SecretPayload, bool) {
			if !e.Valid {
				return nil, false
			}

			return statuslistapi.NewSecretPayload(store, e.ID, e.Secret, issuedAt), true
		}),
	}

	if s.signer != nil {
		if result.Signed, err = s.sign(ctx, artifact); err != nil {
			return nil, err
		}
	}

	if s.store != nil {
		if err = s.store.Put(ctx, artifact, result.Signed); err != nil {
			return nil, fmt.Errorf("persist artifact: %w", err)
		}
	}

	elapsed := time.Since(start)
	s.metrics.IssueTime(elapsed)

	logger.Debugc(ctx, "status list issued",
		logfields.WithListID(listID),
		logfields.WithKind(string(s.kind)),
		logfields.WithEntries(len(entries)),
		logfields.WithDuration(elapsed),
	)

	return result, nil
}

func (s *Service) sign(ctx context.Context, artifact *statuslistapi.Artifact) ([]byte, error) {
	payload, err := artifact.ToPayload()
	if err != nil {
		return nil, fmt.Errorf("artifact payload: %w", err)
	}

	signed, err := s.signer.Sign(ctx, payload, s.keyID, s.algorithm)
	if err != nil {
		return nil, fmt.Errorf("sign artifact: %w", err)
	}

	return signed, nil
}

// Get returns the latest persisted artifact of the list.
func (s *Service) Get(ctx context.Context, listID string) (*Record, error) {
	if s.store == nil {
		return nil, ErrStoreNotConfigured
	}

	rec, err := s.store.Get(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("get artifact %s: %w", listID, err)
	}

	return rec, nil
}

// Verify checks token against the latest persisted artifact of the list.
func (s *Service) Verify(
	ctx context.Context,
	listID string,
	token *statuslistapi.TokenPayload,
	opts ...verifier.Opt,
) (bool, error) {
	rec, err := s.Get(ctx, listID)
	if err != nil {
		return false, err
	}

	v, err := verifier.New(rec.Artifact, opts...)
	if err != nil {
		return false, err
	}

	valid, err := v.IsValid(token)
	if err != nil {
		return false, err
	}

	logger.Debugc(ctx, "token checked",
		logfields.WithListID(listID),
		logfields.WithSubject(token.Subject),
		logfields.WithValid(valid),
	)

	return valid, nil
}
