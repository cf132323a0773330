/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslistcmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/cre8/ephemeral-proof-of-issuance/cmd/common"
	"github.com/cre8/ephemeral-proof-of-issuance/internal/logfields"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/holder"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/statuslist"
)

// GetTokenCmd returns the holder command that derives a token from a secret payload.
func GetTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Create a holder token",
		Long:  "Create the token for the current duration from a secret payload handed out by the issuer",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := getTokenParameters(cmd)
			if err != nil {
				return err
			}

			return runToken(cmd, params, time.Now())
		},
	}

	createTokenFlags(cmd)

	return cmd
}

func runToken(cmd *cobra.Command, params *tokenParameters, now time.Time) error {
	common.SetDefaultLogLevel(logger, params.logLevel)

	payload, err := readSecretPayload(params.secretPayload, params.subject)
	if err != nil {
		return err
	}

	token, err := holder.CreateToken(payload, params.holder, now)
	if err != nil {
		return fmt.Errorf("create token: %w", err)
	}

	logger.Debug("Token created", logfields.WithSubject(token.Subject))

	return writeJSON(cmd.OutOrStdout(), params.output, token)
}

// readSecretPayload accepts a single payload, or issue output together with the subject to pick.
func readSecretPayload(path, subject string) (*statuslist.SecretPayload, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read secret payload: %w", err)
	}

	if !gjson.ValidBytes(b) {
		return nil, fmt.Errorf("secret payload %s is not valid JSON", path)
	}

	raw := b

	if secrets := gjson.GetBytes(b, "secrets"); secrets.Exists() {
		if subject == "" {
			return nil, fmt.Errorf("%s is required to pick from issue output", subjectFlagName)
		}

		match := secrets.Get(fmt.Sprintf("#(sub==%q)", subject))
		if !match.Exists() {
			return nil, fmt.Errorf("no secret for subject %s", subject)
		}

		raw = []byte(match.Raw)
	}

	payload := &statuslist.SecretPayload{}
	if err = json.Unmarshal(raw, payload); err != nil {
		return nil, fmt.Errorf("decode secret payload: %w", err)
	}

	return payload, nil
}
