/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package holder turns an enrolment secret into the short lived token presented to verifiers.
package holder

import (
	"encoding/base64"
	"errors"
	"time"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/epoch"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/statuslist"
)

// CreateToken derives the token for the duration that now falls into. The expiry starts at
// the payload issuance time and moves forward one epoch at a time until it lies after now.
func CreateToken(payload *statuslist.SecretPayload, issuer string, now time.Time) (*statuslist.TokenPayload, error) {
	epochSeconds := payload.Epoch
	if epochSeconds == 0 {
		epochSeconds = epoch.DefaultEpochSeconds
	}

	if epochSeconds < 0 {
		return nil, errors.New("secret payload has a negative epoch")
	}

	token, err := epoch.Token(payload.HMACFunction, epoch.DurationAt(now, epochSeconds), payload.Secret)
	if err != nil {
		return nil, err
	}

	step := epochSeconds * int64(time.Second/time.Millisecond)
	exp := payload.IssuedAt

	if nowMS := now.UnixMilli(); exp < nowMS {
		exp += ((nowMS-exp)/step + 1) * step
	}

	return &statuslist.TokenPayload{
		Subject:   payload.Subject,
		Token:     base64.StdEncoding.EncodeToString(token),
		IssuedAt:  now.UnixMilli(),
		ExpiresAt: exp,
		Issuer:    issuer,
	}, nil
}
