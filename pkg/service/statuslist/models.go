/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslist

import (
	statuslistapi "github.com/cre8/ephemeral-proof-of-issuance/pkg/statuslist"
)

// IssueResult is the outcome of one issuance run.
type IssueResult struct {
	Artifact *statuslistapi.Artifact
	// Signed is the envelope returned by the signing service, nil without a signer.
	Signed []byte
	// Secrets holds one payload per valid entry, in input order.
	Secrets []*statuslistapi.SecretPayload
}

// Record is the persisted form of the latest artifact of a list.
type Record struct {
	Artifact *statuslistapi.Artifact
	Signed   []byte
}
