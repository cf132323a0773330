/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslist

import (
	"time"

	"github.com/google/uuid"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashing"
)

// SecretPayload is handed to the holder once, when an entry is enrolled.
type SecretPayload struct {
	JTI          string                `json:"jti"`
	Issuer       string                `json:"iss"`
	IssuedAt     int64                 `json:"iat"`
	Subject      string                `json:"sub"`
	Secret       []byte                `json:"secret"`
	Duration     int64                 `json:"duration"`
	Epoch        int64                 `json:"epoch"`
	HMACFunction hashing.HMACAlgorithm `json:"hmacFunction"`
}

// TokenPayload is what a holder presents to a verifier.
type TokenPayload struct {
	Subject   string `json:"sub"`
	Token     string `json:"token"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	Issuer    string `json:"iss"`
}

// NewSecretPayload returns the payload AddValid hands out for id, for entries that were bulk loaded into s.
func NewSecretPayload(s Store, id string, secret []byte, issuedAt time.Time) *SecretPayload {
	return newSecretPayload(s.Config(), s.Duration(), id, secret, issuedAt)
}

func newSecretPayload(cfg ListConfig, duration int64, id string, secret []byte, issuedAt time.Time) *SecretPayload {
	return &SecretPayload{
		JTI:          uuid.NewString(),
		Issuer:       cfg.Issuer,
		IssuedAt:     issuedAt.UnixMilli(),
		Subject:      id,
		Secret:       secret,
		Duration:     duration,
		Epoch:        cfg.EpochSeconds,
		HMACFunction: cfg.HMACAlgorithm,
	}
}
