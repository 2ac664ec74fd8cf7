package main

import (
	"github.com/spf13/cobra"
	"github.com/terraincognita07/daylog/internal/cli"
)

var secretLength int

var genSecretCmd = &cobra.Command{
	Use:   "gen-secret",
	Short: "Print a random value for SECRET_KEY",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunGenerateSecretCommand(cmd.OutOrStdout(), secretLength)
	},
}

func init() {
	genSecretCmd.Flags().IntVarP(&secretLength, "length", "n", 48, "number of characters (minimum 32)")
	rootCmd.AddCommand(genSecretCmd)
}
