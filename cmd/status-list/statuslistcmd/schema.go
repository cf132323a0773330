/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslistcmd

import (
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

const entriesSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "secret": {"type": "string", "pattern": "^[A-Za-z0-9+/]*={0,2}$"},
      "valid": {"type": "boolean"}
    },
    "additionalProperties": false
  }
}`

const tokenSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["sub", "token"],
  "properties": {
    "sub": {"type": "string"},
    "token": {"type": "string", "minLength": 1},
    "iat": {"type": "integer"},
    "exp": {"type": "integer"},
    "iss": {"type": "string"}
  }
}`

var errMalformed = errors.New("malformed JSON")

var (
	entriesValidator = mustCompile(entriesSchema)
	tokenValidator   = mustCompile(tokenSchema)
)

type validator struct {
	schema *gojsonschema.Schema
}

func mustCompile(schema string) *validator {
	s, err := gojsonschema.NewSchemaLoader().Compile(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("compile JSON schema: %v", err))
	}

	return &validator{schema: s}
}

// validate returns errMalformed when data is not JSON and a validationErrors otherwise.
func (v *validator) validate(data []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %s", errMalformed, err.Error())
	}

	if !result.Valid() {
		return fmt.Errorf("validation error: %w", validationErrors(result.Errors()))
	}

	return nil
}

type validationErrors []gojsonschema.ResultError

func (e validationErrors) Error() string {
	var errMsg string

	for i, msg := range e {
		errMsg += msg.String()
		if i+1 < len(e) {
			errMsg += "; "
		}
	}

	return fmt.Sprintf("[%s]", errMsg)
}
