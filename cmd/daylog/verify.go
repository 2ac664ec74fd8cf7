package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/daylog/internal/cli"
	"github.com/terraincognita07/daylog/internal/config"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the stored journal for broken entries and missing media",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadStorage()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		journal, err := openJournal(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("journal init failed: %w", err)
		}
		return cli.RunVerifyCommand(cmd.Context(), journal, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
