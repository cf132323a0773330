/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslistcmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/cre8/ephemeral-proof-of-issuance/cmd/common"
	"github.com/cre8/ephemeral-proof-of-issuance/internal/logfields"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/statuslist"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/verifier"
)

type verifyOutput struct {
	Subject string `json:"sub"`
	Valid   bool   `json:"valid"`
}

// GetVerifyCmd returns the relying party command that checks a token against an artifact.
func GetVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a holder token",
		Long:  "Check a holder token against a status list artifact read from a file or from redis",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := getVerifyParameters(cmd)
			if err != nil {
				return err
			}

			return runVerify(cmd, params)
		},
	}

	createVerifyFlags(cmd)

	return cmd
}

func runVerify(cmd *cobra.Command, params *verifyParameters) error {
	common.SetDefaultLogLevel(logger, params.logLevel)

	token, err := readToken(params.token)
	if err != nil {
		return err
	}

	var opts []verifier.Opt
	if params.timeCheck {
		opts = append(opts, verifier.WithTimeCheck())
	}

	var valid bool

	if params.artifact != "" {
		valid, err = verifyWithFile(params.artifact, token, opts)
	} else {
		valid, err = verifyWithStore(cmd, params, token, opts)
	}

	if err != nil {
		return err
	}

	logger.Debug("Token verified", logfields.WithSubject(token.Subject), logfields.WithValid(valid))

	return writeJSON(cmd.OutOrStdout(), "", &verifyOutput{Subject: token.Subject, Valid: valid})
}

func verifyWithFile(path string, token *statuslist.TokenPayload, opts []verifier.Opt) (bool, error) {
	a, err := readArtifact(path)
	if err != nil {
		return false, err
	}

	v, err := verifier.New(a, opts...)
	if err != nil {
		return false, err
	}

	return v.IsValid(token)
}

func verifyWithStore(
	cmd *cobra.Command,
	params *verifyParameters,
	token *statuslist.TokenPayload,
	opts []verifier.Opt,
) (bool, error) {
	store, closeStore, err := common.InitArtifactStore(params.redis, logger)
	if err != nil {
		return false, err
	}

	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			logger.Warn("Failed to close artifact store", log.WithError(closeErr))
		}
	}()

	rec, err := store.Get(cmd.Context(), params.listID)
	if err != nil {
		return false, fmt.Errorf("get artifact %s: %w", params.listID, err)
	}

	v, err := verifier.New(rec.Artifact, opts...)
	if err != nil {
		return false, err
	}

	return v.IsValid(token)
}

// readArtifact accepts a bare artifact or issue output.
func readArtifact(path string) (*statuslist.Artifact, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	if nested := gjson.GetBytes(b, "artifact"); nested.IsObject() {
		b = []byte(nested.Raw)
	}

	return statuslist.ParseArtifact(b)
}

func readToken(path string) (*statuslist.TokenPayload, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}

	if err = tokenValidator.validate(b); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	token := &statuslist.TokenPayload{}
	if err = json.Unmarshal(b, token); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	return token, nil
}
