/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslist

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/compaction"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/compression"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashing"
)

// Kind names a status list strategy.
type Kind string

const (
	KindList           Kind = "list"
	KindCRL            Kind = "crl"
	KindBloom          Kind = "bloom"
	KindCascadingBloom Kind = "cascading-bloom"
)

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindList, KindCRL, KindBloom, KindCascadingBloom:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedKind, s)
	}
}

// Artifact is the published, signable state of a status list.
type Artifact struct {
	Kind         Kind
	ID           string
	Issuer       string
	IssuedAt     int64
	ExpiresAt    int64
	HashFunction hashing.HashAlgorithm
	Compression  string

	// Entries is the compacted exact set of a list artifact.
	Entries string
	// CRLEntries are the hex encoded hashes of a crl artifact, in insertion order.
	CRLEntries []string
	// Content holds one encoded bitmap for bloom and one per layer, in layer order, for cascading-bloom.
	Content []string

	Size          uint
	FalsePositive float64
	HashFunctions uint
}

// Expired reports whether now is past the artifact expiry.
func (a *Artifact) Expired(now time.Time) bool {
	return now.UnixMilli() > a.ExpiresAt
}

// CompressionName returns the declared compression, defaulting to deflate.
func (a *Artifact) CompressionName() string {
	if a.Compression == "" {
		return compression.Deflate
	}

	return a.Compression
}

type artifactJSON struct {
	Type          Kind            `json:"type"`
	JTI           string          `json:"jti"`
	Iss           string          `json:"iss"`
	Iat           int64           `json:"iat"`
	Exp           int64           `json:"exp"`
	HashFunction  json.RawMessage `json:"hashFunction"`
	Compression   string          `json:"compression,omitempty"`
	Entries       json.RawMessage `json:"entries,omitempty"`
	Content       json.RawMessage `json:"content,omitempty"`
	Size          uint            `json:"size,omitempty"`
	FalsePositive float64         `json:"falsePositive,omitempty"`
	HashFunctions uint            `json:"hashFunctions,omitempty"`
}

// MarshalJSON writes the per kind payload shape.
func (a *Artifact) MarshalJSON() ([]byte, error) {
	raw := &artifactJSON{
		Type:          a.Kind,
		JTI:           a.ID,
		Iss:           a.Issuer,
		Iat:           a.IssuedAt,
		Exp:           a.ExpiresAt,
		Compression:   a.Compression,
		Size:          a.Size,
		FalsePositive: a.FalsePositive,
		HashFunctions: a.HashFunctions,
	}

	var err error

	if raw.HashFunction, err = json.Marshal(a.HashFunction); err != nil {
		return nil, err
	}

	switch a.Kind {
	case KindList:
		raw.Entries, err = json.Marshal(a.Entries)
	case KindCRL:
		raw.Entries, err = json.Marshal(nonNil(a.CRLEntries))
	case KindBloom:
		if len(a.Content) != 1 {
			return nil, fmt.Errorf("bloom artifact must have exactly one bitmap, got %d", len(a.Content))
		}

		raw.Content, err = json.Marshal(a.Content[0])
	case KindCascadingBloom:
		raw.Content, err = json.Marshal(nonNil(a.Content))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, a.Kind)
	}

	if err != nil {
		return nil, err
	}

	return json.Marshal(raw)
}

// UnmarshalJSON accepts hashFunction, entries and content as either a string or an array of strings.
func (a *Artifact) UnmarshalJSON(data []byte) error {
	raw := &artifactJSON{}

	if err := json.Unmarshal(data, raw); err != nil {
		return fmt.Errorf("%w: artifact: %s", compaction.ErrDecode, err.Error())
	}

	kind, err := ParseKind(string(raw.Type))
	if err != nil {
		return err
	}

	hashFunctions, _, err := stringOrArray(raw.HashFunction)
	if err != nil || len(hashFunctions) == 0 {
		return fmt.Errorf("%w: artifact hashFunction", compaction.ErrDecode)
	}

	*a = Artifact{
		Kind:          kind,
		ID:            raw.JTI,
		Issuer:        raw.Iss,
		IssuedAt:      raw.Iat,
		ExpiresAt:     raw.Exp,
		HashFunction:  hashing.HashAlgorithm(hashFunctions[0]),
		Compression:   raw.Compression,
		Size:          raw.Size,
		FalsePositive: raw.FalsePositive,
		HashFunctions: raw.HashFunctions,
	}

	switch kind {
	case KindList:
		entries, isArray, err := stringOrArray(raw.Entries)
		if err != nil || isArray || len(entries) != 1 {
			return fmt.Errorf("%w: list entries must be a string", compaction.ErrDecode)
		}

		a.Entries = entries[0]
	case KindCRL:
		entries, _, err := stringOrArray(raw.Entries)
		if err != nil {
			return fmt.Errorf("%w: crl entries: %s", compaction.ErrDecode, err.Error())
		}

		a.CRLEntries = entries
	case KindBloom, KindCascadingBloom:
		content, _, err := stringOrArray(raw.Content)
		if err != nil || len(content) == 0 {
			return fmt.Errorf("%w: %s content", compaction.ErrDecode, kind)
		}

		if kind == KindBloom && len(content) != 1 {
			return fmt.Errorf("%w: bloom content must hold one bitmap", compaction.ErrDecode)
		}

		a.Content = content
	}

	return nil
}

// ToPayload returns the artifact as a plain key-value payload for a signing service.
func (a *Artifact) ToPayload() (map[string]interface{}, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{}

	if err = json.Unmarshal(b, &payload); err != nil {
		return nil, err
	}

	return payload, nil
}

// ParseArtifact decodes an artifact from its JSON payload.
func ParseArtifact(data []byte) (*Artifact, error) {
	a := &Artifact{}

	if err := a.UnmarshalJSON(data); err != nil {
		return nil, err
	}

	return a, nil
}

func stringOrArray(raw json.RawMessage) ([]string, bool, error) {
	if len(raw) == 0 {
		return nil, false, errors.New("missing value")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []string{s}, false, nil
	}

	var arr []string
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, true, err
	}

	return arr, true, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
