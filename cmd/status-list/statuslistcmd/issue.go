/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package statuslistcmd holds the issue, token, verify and health commands of the status-list CLI.
package statuslistcmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/cre8/ephemeral-proof-of-issuance/cmd/common"
	"github.com/cre8/ephemeral-proof-of-issuance/internal/logfields"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/epoch"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashexec"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/metrics"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/metrics/noop"
	promprovider "github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/metrics/prometheus"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/tracing"
	tracingwrapper "github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/tracing/wrappers/statuslist"
	statuslistsvc "github.com/cre8/ephemeral-proof-of-issuance/pkg/service/statuslist"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/signer"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/statuslist"
)

const prometheusProvider = "prometheus"

var logger = log.New("status-list-cmd")

type entryJSON struct {
	ID     string `json:"id"`
	Secret []byte `json:"secret,omitempty"`
	Valid  *bool  `json:"valid,omitempty"`
}

type issueOutput struct {
	Artifact *statuslist.Artifact        `json:"artifact"`
	Signed   string                      `json:"signed,omitempty"`
	Secrets  []*statuslist.SecretPayload `json:"secrets"`
}

// GetIssueCmd returns the command that builds, signs and publishes a status list.
func GetIssueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a status list",
		Long:  "Build a status list artifact from a batch of entries, sign it and optionally store it in redis",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := getIssueParameters(cmd)
			if err != nil {
				return err
			}

			return runIssue(cmd, params)
		},
	}

	createIssueFlags(cmd)

	return cmd
}

// nolint:funlen
func runIssue(cmd *cobra.Command, params *issueParameters) error {
	common.SetDefaultLogLevel(logger, params.logLevel)

	entries, err := readEntries(cmd.InOrStdin(), params.entries)
	if err != nil {
		return err
	}

	shutdown, tracer, err := tracing.Initialize(params.tracingProvider, serviceName)
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}

	defer shutdown()

	var (
		m        metrics.Metrics = noop.GetMetrics()
		registry *prometheus.Registry
	)

	if params.metricsProvider == prometheusProvider {
		registry = prometheus.NewRegistry()
		m = promprovider.NewMetrics(registry)
	}

	store, closeStore, err := common.InitArtifactStore(params.redis, logger)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			logger.Warn("Failed to close artifact store", log.WithError(closeErr))
		}
	}()

	config := &statuslistsvc.Config{
		Kind:      params.kind,
		StoreOpts: params.storeOpts,
		Executor:  hashexec.New(params.workers),
		KeyID:     params.keyID,
		Algorithm: params.signingAlg,
		Metrics:   m,
	}

	if store != nil {
		config.ArtifactStore = store
	}

	if params.signingKey != "" {
		keys, keyErr := loadSigningKey(params.signingKey, params.keyID)
		if keyErr != nil {
			return keyErr
		}

		config.Signer = signer.NewJWSSigner(keys)
	}

	svc, err := statuslistsvc.NewService(config)
	if err != nil {
		return err
	}

	listID := params.listID
	if listID == "" {
		listID = uuid.NewString()
	}

	result, err := tracingwrapper.Wrap(svc, tracer).Issue(cmd.Context(), listID, params.issuer, entries)
	if err != nil {
		return err
	}

	logger.Info("Status list issued",
		logfields.WithListID(listID),
		logfields.WithKind(string(params.kind)),
		logfields.WithEntries(len(entries)),
	)

	if err = writeJSON(cmd.OutOrStdout(), params.output, &issueOutput{
		Artifact: result.Artifact,
		Signed:   string(result.Signed),
		Secrets:  result.Secrets,
	}); err != nil {
		return err
	}

	if registry != nil {
		return writeMetrics(cmd.ErrOrStderr(), registry)
	}

	return nil
}

func readEntries(stdin io.Reader, path string) ([]hashexec.Entry, error) {
	var (
		b   []byte
		err error
	)

	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}

	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}

	if err = entriesValidator.validate(b); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}

	var raw []entryJSON
	if err = json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}

	entries := make([]hashexec.Entry, 0, len(raw))

	for _, e := range raw {
		secret := e.Secret
		if len(secret) == 0 {
			if secret, err = epoch.NewSecret(); err != nil {
				return nil, err
			}
		}

		entries = append(entries, hashexec.Entry{
			ID:     e.ID,
			Secret: secret,
			Valid:  e.Valid == nil || *e.Valid,
		})
	}

	return entries, nil
}

func loadSigningKey(path, keyID string) (signer.StaticKeys, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signing key: %w", err)
	}

	key, err := signer.ParsePrivateKeyPEM(b)
	if err != nil {
		return nil, err
	}

	return signer.StaticKeys{keyID: key}, nil
}

func writeJSON(stdout io.Writer, path string, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	b = append(b, '\n')

	if path == "" {
		_, err = stdout.Write(b)

		return err
	}

	if err = os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.FmtText)

	for _, mf := range families {
		if err = enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}

	return nil
}
