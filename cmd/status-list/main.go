/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package main is the status-list CLI: issue lists, create holder tokens, verify them and probe the artifact store.
package main

import (
	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/cre8/ephemeral-proof-of-issuance/cmd/status-list/statuslistcmd"
)

var logger = log.New("status-list")

func main() {
	rootCmd := &cobra.Command{
		Use:          "status-list",
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	rootCmd.AddCommand(
		statuslistcmd.GetIssueCmd(),
		statuslistcmd.GetTokenCmd(),
		statuslistcmd.GetVerifyCmd(),
		statuslistcmd.GetHealthCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Failed to run status-list", log.WithError(err))
	}
}
