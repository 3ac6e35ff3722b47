package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the askboard-cli command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "askboard-cli",
		Short: "Askboard operator CLI",
		Long: `askboard-cli is a command-line interface for operating an Askboard deployment.

Available commands:
  profile    Show or update a user's profile
  version    Print the CLI version

Configuration is read from the environment (and .env when present), the same
way the server reads it.

Use "askboard-cli [command] --help" for more information about a specific command.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newVersionCmd(), newProfileCmd())
	return rootCmd
}

// Execute executes the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
