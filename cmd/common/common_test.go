/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trustbloc/logutil-go/pkg/log"
)

var logger = log.New("common-test")

func TestSetDefaultLogLevel(t *testing.T) {
	t.Cleanup(resetLoggingLevels)

	t.Run("Debug", func(t *testing.T) {
		resetLoggingLevels()

		SetDefaultLogLevel(logger, "debug")

		require.Equal(t, log.DEBUG, log.GetLevel(""))
	})

	t.Run("Warning", func(t *testing.T) {
		resetLoggingLevels()

		SetDefaultLogLevel(logger, "WARNING")

		require.Equal(t, log.WARNING, log.GetLevel(""))
	})

	t.Run("Invalid log level", func(t *testing.T) {
		resetLoggingLevels()

		SetDefaultLogLevel(logger, "mango")

		require.Equal(t, log.INFO, log.GetLevel(""))
	})
}

func resetLoggingLevels() {
	log.SetLevel("", log.INFO)
}
