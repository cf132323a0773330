/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"crypto/tls"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
	cmdutils "github.com/trustbloc/cmdutil-go/pkg/utils/cmd"
	"github.com/trustbloc/logutil-go/pkg/log"
	"go.opentelemetry.io/otel"

	"github.com/cre8/ephemeral-proof-of-issuance/internal/logfields"
	"github.com/cre8/ephemeral-proof-of-issuance/internal/tlsutil"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/storage/redis"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/storage/redis/artifactstore"
)

const (
	// RedisURLFlagName is the redis url.
	RedisURLFlagName = "redis-url"
	// RedisURLFlagUsage describes the usage.
	RedisURLFlagUsage = "Redis URL used to persist signed artifacts. Format: redis://host:port[,host:port]." +
		" Two or more addresses select a cluster client." +
		" Alternatively, this can be set with the following environment variable: " + RedisURLEnvKey
	// RedisURLEnvKey is the redis url.
	RedisURLEnvKey = "STATUS_LIST_REDIS_URL"

	// RedisPasswordFlagName is the redis password.
	RedisPasswordFlagName = "redis-password" //nolint:gosec
	// RedisPasswordFlagUsage describes the usage.
	RedisPasswordFlagUsage = "Redis password." +
		" Alternatively, this can be set with the following environment variable: " + RedisPasswordEnvKey
	// RedisPasswordEnvKey is the redis password.
	RedisPasswordEnvKey = "STATUS_LIST_REDIS_PASSWORD" //nolint:gosec

	// RedisTimeoutFlagName is the redis timeout.
	RedisTimeoutFlagName = "redis-timeout"
	// RedisTimeoutFlagUsage describes the usage.
	RedisTimeoutFlagUsage = "Total time in seconds to wait until redis is available before giving up." +
		" Default: 30 seconds." +
		" Alternatively, this can be set with the following environment variable: " + RedisTimeoutEnvKey
	// RedisTimeoutEnvKey is the redis timeout.
	RedisTimeoutEnvKey = "STATUS_LIST_REDIS_TIMEOUT"

	// RedisTimeoutDefault is the default number of connection attempts, one per second.
	RedisTimeoutDefault = 30

	// RedisTLSSystemCertPoolFlagName enables TLS towards redis with the system roots.
	RedisTLSSystemCertPoolFlagName = "redis-tls-systemcertpool"
	// RedisTLSSystemCertPoolFlagUsage describes the usage.
	RedisTLSSystemCertPoolFlagUsage = "Use the system certificate pool to verify redis. Possible values [true] [false]." +
		" Defaults to false. Alternatively, this can be set with the following environment variable: " +
		RedisTLSSystemCertPoolEnvKey
	// RedisTLSSystemCertPoolEnvKey enables TLS towards redis with the system roots.
	RedisTLSSystemCertPoolEnvKey = "STATUS_LIST_REDIS_TLS_SYSTEMCERTPOOL"

	// RedisTLSCACertsFlagName lists the CA certificates used to verify redis.
	RedisTLSCACertsFlagName = "redis-tls-cacerts"
	// RedisTLSCACertsFlagUsage describes the usage.
	RedisTLSCACertsFlagUsage = "Comma-separated list of PEM CA certificate paths used to verify redis." +
		" Setting it enables TLS. Alternatively, this can be set with the following environment variable: " +
		RedisTLSCACertsEnvKey
	// RedisTLSCACertsEnvKey lists the CA certificates used to verify redis.
	RedisTLSCACertsEnvKey = "STATUS_LIST_REDIS_TLS_CACERTS"
)

// RedisParameters holds redis configuration. An empty URL means artifacts are not persisted.
type RedisParameters struct {
	URL               string
	Password          string
	Timeout           uint64
	TLSSystemCertPool bool
	TLSCACerts        []string
}

// TLSConfig returns nil when neither the system pool nor CA certificates are configured.
func (p *RedisParameters) TLSConfig() (*tls.Config, error) {
	if !p.TLSSystemCertPool && len(p.TLSCACerts) == 0 {
		return nil, nil //nolint:nilnil
	}

	rootCAs, err := tlsutil.GetCertPool(p.TLSSystemCertPool, p.TLSCACerts)
	if err != nil {
		return nil, err
	}

	return &tls.Config{RootCAs: rootCAs, MinVersion: tls.VersionTLS12}, nil
}

// Flags registers the storage flags.
func Flags(cmd *cobra.Command) {
	cmd.Flags().StringP(RedisURLFlagName, "", "", RedisURLFlagUsage)
	cmd.Flags().StringP(RedisPasswordFlagName, "", "", RedisPasswordFlagUsage)
	cmd.Flags().StringP(RedisTimeoutFlagName, "", "", RedisTimeoutFlagUsage)
	cmd.Flags().StringP(RedisTLSSystemCertPoolFlagName, "", "", RedisTLSSystemCertPoolFlagUsage)
	cmd.Flags().StringSliceP(RedisTLSCACertsFlagName, "", []string{}, RedisTLSCACertsFlagUsage)
}

// RedisParams fetches the redis parameters configured for this command.
func RedisParams(cmd *cobra.Command) (*RedisParameters, error) {
	var err error

	params := &RedisParameters{}

	params.URL, err = cmdutils.GetUserSetVarFromString(cmd, RedisURLFlagName, RedisURLEnvKey, true)
	if err != nil {
		return nil, fmt.Errorf("failed to configure redisURL: %w", err)
	}

	params.Password, err = cmdutils.GetUserSetVarFromString(cmd, RedisPasswordFlagName, RedisPasswordEnvKey, true)
	if err != nil {
		return nil, fmt.Errorf("failed to configure redisPassword: %w", err)
	}

	timeout, err := cmdutils.GetUserSetVarFromString(cmd, RedisTimeoutFlagName, RedisTimeoutEnvKey, true)
	if err != nil && !strings.Contains(err.Error(), "value is empty") {
		return nil, fmt.Errorf("failed to configure redisTimeout: %w", err)
	}

	if timeout == "" {
		timeout = strconv.Itoa(RedisTimeoutDefault)
	}

	params.Timeout, err = strconv.ParseUint(timeout, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redisTimeout %s: %w", timeout, err)
	}

	systemCertPool := cmdutils.GetUserSetOptionalVarFromString(cmd, RedisTLSSystemCertPoolFlagName,
		RedisTLSSystemCertPoolEnvKey)

	if systemCertPool != "" {
		params.TLSSystemCertPool, err = strconv.ParseBool(systemCertPool)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redisTLSSystemCertPool %s: %w", systemCertPool, err)
		}
	}

	if caCerts := cmdutils.GetUserSetOptionalVarFromArrayString(cmd, RedisTLSCACertsFlagName,
		RedisTLSCACertsEnvKey); len(caCerts) > 0 {
		params.TLSCACerts = caCerts
	}

	return params, nil
}

// InitArtifactStore connects to redis, retrying once a second up to the configured timeout.
// It returns a nil store when no URL is configured.
func InitArtifactStore(params *RedisParameters, logger *log.Log) (*artifactstore.Store, func() error, error) {
	if params.URL == "" {
		return nil, func() error { return nil }, nil
	}

	addrs, err := ParseRedisURL(params.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", params.URL, err)
	}

	tlsConfig, err := params.TLSConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to configure redis tls: %w", err)
	}

	var client *redis.Client

	err = retry(
		func() error {
			var connErr error
			client, connErr = redis.New(addrs,
				redis.WithPassword(params.Password),
				redis.WithTLSConfig(tlsConfig),
				redis.WithTimeout(time.Second),
				redis.WithTraceProvider(otel.GetTracerProvider()),
			)
			return connErr
		},
		params.Timeout,
		logger,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init redis artifact store: %w", err)
	}

	return artifactstore.New(client, nil), client.Close, nil
}

// ParseRedisURL returns the addresses of a redis://host:port[,host:port] url.
func ParseRedisURL(u string) ([]string, error) {
	const urlParts = 2

	parsed := strings.SplitN(u, "://", urlParts)

	if len(parsed) != urlParts || parsed[1] == "" {
		return nil, fmt.Errorf("invalid redisURL %s", u)
	}

	if driver := parsed[0]; driver != "redis" {
		return nil, fmt.Errorf("unsupported storage driver: %s", driver)
	}

	return strings.Split(parsed[1], ","), nil
}

func retry(task func() error, numRetries uint64, logger *log.Log) error {
	const sleep = 1 * time.Second

	return backoff.RetryNotify(
		task,
		backoff.WithMaxRetries(backoff.NewConstantBackOff(sleep), numRetries),
		func(retryErr error, t time.Duration) {
			logger.Warn("Failed to connect to storage, will sleep before trying again.",
				logfields.WithSleep(t), log.WithError(retryErr))
		},
	)
}
