/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslistcmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexliesenfeld/health"
	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/cre8/ephemeral-proof-of-issuance/cmd/common"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/health/healthutil"
	redischeck "github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/health/redis"
)

const redisCheckName = "redis"

var errUnavailable = errors.New("artifact store is unavailable")

type healthParameters struct {
	logLevel string
	redis    *common.RedisParameters
}

// GetHealthCmd returns the command that probes the artifact store.
func GetHealthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the artifact store",
		Long:  "Ping the redis holding the signed artifacts and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := getHealthParameters(cmd)
			if err != nil {
				return err
			}

			return runHealth(cmd, params)
		},
	}

	createLogLevelFlag(cmd)
	common.Flags(cmd)

	return cmd
}

func getHealthParameters(cmd *cobra.Command) (*healthParameters, error) {
	logLevel, err := getLogLevel(cmd)
	if err != nil {
		return nil, err
	}

	redisParams, err := common.RedisParams(cmd)
	if err != nil {
		return nil, err
	}

	if redisParams.URL == "" {
		return nil, fmt.Errorf("%s is required", common.RedisURLFlagName)
	}

	return &healthParameters{
		logLevel: logLevel,
		redis:    redisParams,
	}, nil
}

func runHealth(cmd *cobra.Command, params *healthParameters) error {
	common.SetDefaultLogLevel(logger, params.logLevel)

	addrs, err := common.ParseRedisURL(params.redis.URL)
	if err != nil {
		return err
	}

	tlsConfig, err := params.redis.TLSConfig()
	if err != nil {
		return fmt.Errorf("failed to configure redis tls: %w", err)
	}

	check := redischeck.New(addrs,
		redischeck.WithPassword(params.redis.Password),
		redischeck.WithTLSConfig(tlsConfig),
	)

	defer func() {
		if closeErr := check.Close(); closeErr != nil {
			logger.Warn("Failed to close health check client", log.WithError(closeErr))
		}
	}()

	responseTimes := map[string]healthutil.ResponseTimeState{}

	checker := health.NewChecker(
		health.WithCheck(health.Check{
			Name:    redisCheckName,
			Check:   check.Ping,
			Timeout: time.Duration(params.redis.Timeout) * time.Second,
		}),
		health.WithInterceptors(healthutil.ResponseTimeInterceptor(responseTimes)),
	)

	result := checker.Check(cmd.Context())

	if err = healthutil.NewJSONResultWriter(responseTimes).Write(cmd.OutOrStdout(), &result); err != nil {
		return err
	}

	if result.Status != health.StatusUp {
		return errUnavailable
	}

	return nil
}
