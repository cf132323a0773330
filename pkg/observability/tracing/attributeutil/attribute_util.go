/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package attributeutil builds span attributes from values that may carry secrets.
package attributeutil

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.opentelemetry.io/otel/attribute"
)

const redacted = "[REDACTED]"

// JSON returns an attribute holding value as JSON. Paths given with WithRedacted are masked.
// A value that cannot be marshaled yields an empty attribute value.
func JSON(key string, value interface{}, opts ...Opt) attribute.KeyValue {
	op := &options{}

	for _, opt := range opts {
		opt(op)
	}

	b, err := json.Marshal(value)
	if err != nil {
		return attribute.KeyValue{Key: attribute.Key(key)}
	}

	for _, path := range op.redacted {
		b = redact(b, path)
	}

	return attribute.String(key, string(b))
}

// redact masks every match of path. Array queries such as "#.secret" are expanded to one path per element.
func redact(b []byte, path string) []byte {
	res := gjson.GetBytes(b, path)
	if !res.Exists() {
		return b
	}

	if !res.IsArray() || len(path) < 2 || path[:2] != "#." {
		b, _ = sjson.SetBytes(b, path, redacted)

		return b
	}

	field := path[2:]

	for i, item := range gjson.ParseBytes(b).Array() {
		if item.Get(field).Exists() {
			b, _ = sjson.SetBytes(b, fmt.Sprintf("%d.%s", i, field), redacted)
		}
	}

	return b
}

type options struct {
	redacted []string
}

type Opt func(*options)

// WithRedacted masks the value at key. Keys use the gjson path syntax,
// see https://github.com/tidwall/gjson/blob/master/SYNTAX.md.
func WithRedacted(key string) Opt {
	return func(o *options) {
		o.redacted = append(o.redacted, key)
	}
}
