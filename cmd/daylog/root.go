package main

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "daylog",
	Short: "A single-user calendar journal",
	Long: `daylog keeps one journal entry per calendar day, with text blocks and
uploaded media, and serves it as a small web app.

Running daylog without a subcommand starts the server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
