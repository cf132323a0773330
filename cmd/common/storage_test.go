/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"crypto/tls"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestRedisParams(t *testing.T) {
	t.Run("valid params", func(t *testing.T) {
		t.Setenv(RedisURLEnvKey, "redis://localhost:6379")
		t.Setenv(RedisPasswordEnvKey, "secret")
		t.Setenv(RedisTimeoutEnvKey, "5")

		cmd := &cobra.Command{}
		Flags(cmd)

		result, err := RedisParams(cmd)
		require.NoError(t, err)
		require.Equal(t, &RedisParameters{URL: "redis://localhost:6379", Password: "secret", Timeout: 5}, result)
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv(RedisURLEnvKey, "redis://env:6379")

		cmd := &cobra.Command{RunE: func(*cobra.Command, []string) error { return nil }}
		Flags(cmd)
		cmd.SetArgs([]string{"--" + RedisURLFlagName, "redis://flag:6379"})
		require.NoError(t, cmd.Execute())

		result, err := RedisParams(cmd)
		require.NoError(t, err)
		require.Equal(t, "redis://flag:6379", result.URL)
	})

	t.Run("nothing set", func(t *testing.T) {
		cmd := &cobra.Command{}
		Flags(cmd)

		result, err := RedisParams(cmd)
		require.NoError(t, err)
		require.Equal(t, &RedisParameters{Timeout: RedisTimeoutDefault}, result)
	})

	t.Run("use default timeout", func(t *testing.T) {
		t.Setenv(RedisTimeoutEnvKey, "")

		cmd := &cobra.Command{}
		Flags(cmd)

		result, err := RedisParams(cmd)
		require.NoError(t, err)
		require.Equal(t, uint64(RedisTimeoutDefault), result.Timeout)
	})

	t.Run("error if timeout has an invalid value", func(t *testing.T) {
		t.Setenv(RedisTimeoutEnvKey, "invalid")

		cmd := &cobra.Command{}
		Flags(cmd)

		_, err := RedisParams(cmd)
		require.ErrorContains(t, err, "failed to parse redisTimeout")
	})

	t.Run("tls", func(t *testing.T) {
		t.Setenv(RedisTLSSystemCertPoolEnvKey, "true")
		t.Setenv(RedisTLSCACertsEnvKey, "a.pem,b.pem")

		cmd := &cobra.Command{}
		Flags(cmd)

		result, err := RedisParams(cmd)
		require.NoError(t, err)
		require.True(t, result.TLSSystemCertPool)
		require.Equal(t, []string{"a.pem", "b.pem"}, result.TLSCACerts)
	})

	t.Run("error if system cert pool is not a bool", func(t *testing.T) {
		t.Setenv(RedisTLSSystemCertPoolEnvKey, "sometimes")

		cmd := &cobra.Command{}
		Flags(cmd)

		_, err := RedisParams(cmd)
		require.ErrorContains(t, err, "failed to parse redisTLSSystemCertPool")
	})
}

func TestRedisParametersTLSConfig(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		cfg, err := (&RedisParameters{}).TLSConfig()
		require.NoError(t, err)
		require.Nil(t, cfg)
	})

	t.Run("system pool", func(t *testing.T) {
		cfg, err := (&RedisParameters{TLSSystemCertPool: true}).TLSConfig()
		require.NoError(t, err)
		require.NotNil(t, cfg.RootCAs)
		require.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
	})

	t.Run("missing ca", func(t *testing.T) {
		_, err := (&RedisParameters{TLSCACerts: []string{"missing.pem"}}).TLSConfig()
		require.ErrorContains(t, err, "failed to read cert")
	})
}

func TestInitArtifactStore(t *testing.T) {
	t.Run("inits ok", func(t *testing.T) {
		srv := miniredis.RunT(t)

		s, closeFn, err := InitArtifactStore(&RedisParameters{URL: "redis://" + srv.Addr(), Timeout: 1}, logger)
		require.NoError(t, err)
		require.NotNil(t, s)
		require.NoError(t, closeFn())
	})

	t.Run("no url", func(t *testing.T) {
		s, closeFn, err := InitArtifactStore(&RedisParameters{}, logger)
		require.NoError(t, err)
		require.Nil(t, s)
		require.NoError(t, closeFn())
	})

	t.Run("error if url format is invalid", func(t *testing.T) {
		_, _, err := InitArtifactStore(&RedisParameters{URL: "invalid"}, logger)
		require.ErrorContains(t, err, "invalid redisURL")
	})

	t.Run("error if driver is not supported", func(t *testing.T) {
		_, _, err := InitArtifactStore(&RedisParameters{URL: "mongodb://localhost:27017"}, logger)
		require.ErrorContains(t, err, "unsupported storage driver: mongodb")
	})

	t.Run("error if tls is misconfigured", func(t *testing.T) {
		_, _, err := InitArtifactStore(&RedisParameters{URL: "redis://localhost:6379", TLSCACerts: []string{"missing.pem"}},
			logger)
		require.ErrorContains(t, err, "failed to configure redis tls")
	})

	t.Run("error if redis is unreachable", func(t *testing.T) {
		srv := miniredis.RunT(t)
		addr := srv.Addr()
		srv.Close()

		_, _, err := InitArtifactStore(&RedisParameters{URL: "redis://" + addr, Timeout: 0}, logger)
		require.ErrorContains(t, err, "failed to init redis artifact store")
	})
}

func TestParseURL(t *testing.T) {
	addrs, err := ParseRedisURL("redis://a:6379,b:6379")
	require.NoError(t, err)
	require.Equal(t, []string{"a:6379", "b:6379"}, addrs)

	_, err = ParseRedisURL("redis://")
	require.Error(t, err)
}
