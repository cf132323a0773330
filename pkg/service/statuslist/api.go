/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslist

import (
	"context"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashexec"
	statuslistapi "github.com/cre8/ephemeral-proof-of-issuance/pkg/statuslist"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/verifier"
)

// ServiceInterface is implemented by Service and its tracing wrapper.
type ServiceInterface interface {
	Issue(ctx context.Context, listID, issuer string, entries []hashexec.Entry) (*IssueResult, error)
	Get(ctx context.Context, listID string) (*Record, error)
	Verify(ctx context.Context, listID string, token *statuslistapi.TokenPayload, opts ...verifier.Opt) (bool, error)
}
