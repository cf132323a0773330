/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package attributeutil_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/tracing/attributeutil"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name string
		val  interface{}
		opts []attributeutil.Opt
		want attribute.KeyValue
	}{
		{
			name: "no redaction",
			val:  map[string]interface{}{"sub": "urn:uuid:1"},
			want: attribute.String("key", `{"sub":"urn:uuid:1"}`),
		},
		{
			name: "token redacted",
			val:  map[string]interface{}{"sub": "urn:uuid:1", "token": "dG9rZW4="},
			opts: []attributeutil.Opt{attributeutil.WithRedacted("token")},
			want: attribute.String("key", `{"sub":"urn:uuid:1","token":"[REDACTED]"}`),
		},
		{
			name: "secret redacted in every element",
			val: []map[string]interface{}{
				{"sub": "a", "secret": "s1"},
				{"sub": "b"},
				{"sub": "c", "secret": "s3"},
			},
			opts: []attributeutil.Opt{attributeutil.WithRedacted("#.secret")},
			want: attribute.String("key",
				`[{"secret":"[REDACTED]","sub":"a"},{"sub":"b"},{"secret":"[REDACTED]","sub":"c"}]`),
		},
		{
			name: "nested path",
			val:  map[string]interface{}{"payload": map[string]interface{}{"secret": "s"}},
			opts: []attributeutil.Opt{attributeutil.WithRedacted("payload.secret")},
			want: attribute.String("key", `{"payload":{"secret":"[REDACTED]"}}`),
		},
		{
			name: "path not found",
			val:  map[string]interface{}{"sub": "a"},
			opts: []attributeutil.Opt{attributeutil.WithRedacted("secret")},
			want: attribute.String("key", `{"sub":"a"}`),
		},
		{
			name: "nil value",
			val:  nil,
			want: attribute.String("key", `null`),
		},
		{
			name: "fail to marshal",
			val:  func() {},
			want: attribute.KeyValue{Key: attribute.Key("key")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, attributeutil.JSON("key", tt.val, tt.opts...))
		})
	}
}
