/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination gomocks_test.go -package statuslist . Service

package statuslist

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashexec"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/tracing/attributeutil"
	statuslistsvc "github.com/cre8/ephemeral-proof-of-issuance/pkg/service/statuslist"
	statuslistapi "github.com/cre8/ephemeral-proof-of-issuance/pkg/statuslist"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/verifier"
)

var _ Service = (*Wrapper)(nil) // make sure Wrapper implements statuslist.ServiceInterface

type Service statuslistsvc.ServiceInterface

type Wrapper struct {
	svc    Service
	tracer trace.Tracer
}

func Wrap(svc Service, tracer trace.Tracer) *Wrapper {
	return &Wrapper{svc: svc, tracer: tracer}
}

func (w *Wrapper) Issue(
	ctx context.Context,
	listID, issuer string,
	entries []hashexec.Entry,
) (*statuslistsvc.IssueResult, error) {
	ctx, span := w.tracer.Start(ctx, "statuslist.Issue")
	defer span.End()

	span.SetAttributes(
		attribute.String("list_id", listID),
		attribute.String("issuer", issuer),
		attribute.Int("entries", len(entries)),
	)

	result, err := w.svc.Issue(ctx, listID, issuer, entries)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	span.SetAttributes(
		attribute.String("kind", string(result.Artifact.Kind)),
		attribute.Int("layers", len(result.Artifact.Content)),
		attributeutil.JSON("secrets", result.Secrets, attributeutil.WithRedacted("#.secret")),
	)

	return result, nil
}

func (w *Wrapper) Get(ctx context.Context, listID string) (*statuslistsvc.Record, error) {
	ctx, span := w.tracer.Start(ctx, "statuslist.Get")
	defer span.End()

	span.SetAttributes(attribute.String("list_id", listID))

	rec, err := w.svc.Get(ctx, listID)
	if err != nil {
		return nil, err
	}

	return rec, nil
}

func (w *Wrapper) Verify(
	ctx context.Context,
	listID string,
	token *statuslistapi.TokenPayload,
	opts ...verifier.Opt,
) (bool, error) {
	ctx, span := w.tracer.Start(ctx, "statuslist.Verify")
	defer span.End()

	span.SetAttributes(
		attribute.String("list_id", listID),
		attributeutil.JSON("token", token, attributeutil.WithRedacted("token")),
	)

	valid, err := w.svc.Verify(ctx, listID, token, opts...)
	if err != nil {
		return false, err
	}

	span.SetAttributes(attribute.Bool("valid", valid))

	return valid, nil
}
