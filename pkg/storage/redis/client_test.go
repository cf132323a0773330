/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestClient(t *testing.T) {
	srv := miniredis.RunT(t)

	t.Run("OK", func(t *testing.T) {
		client, err := New([]string{srv.Addr()}, WithTimeout(time.Second))
		require.NoError(t, err)
		require.NotNil(t, client.API())

		ctx, cancel := client.ContextWithTimeout()
		defer cancel()

		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		require.WithinDuration(t, time.Now().Add(time.Second), deadline, 100*time.Millisecond)

		require.NoError(t, client.API().Set(ctx, "k", "v", 0).Err())
		require.NoError(t, client.Close())
	})

	t.Run("with tracing", func(t *testing.T) {
		client, err := New([]string{srv.Addr()}, WithTraceProvider(trace.NewNoopTracerProvider()))
		require.NoError(t, err)
		require.NoError(t, client.Close())
	})

	t.Run("unreachable", func(t *testing.T) {
		dead := miniredis.RunT(t)
		addr := dead.Addr()
		dead.Close()

		client, err := New([]string{addr}, WithTimeout(200*time.Millisecond))
		require.Nil(t, client)
		require.ErrorContains(t, err, "connect to redis")
	})

	t.Run("wrong password", func(t *testing.T) {
		secured := miniredis.RunT(t)
		secured.RequireAuth("secret")

		client, err := New([]string{secured.Addr()}, WithPassword("other"))
		require.Nil(t, client)
		require.Error(t, err)
	})
}
