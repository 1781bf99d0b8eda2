// Package cmd wires the vault engine, identity store, and artifact
// backends into a cobra CLI: one file per verb, a shared root command for
// global flags, and a helpers file for the spinner/password-prompt
// plumbing every verb needs.
package cmd

import (
	"fmt"

	figure "github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	logger "github.com/vaultenv/vaultenv/internal/logging"
)

var (
	verbose bool
	debug   bool

	// Logger is populated by RootCmd's PersistentPreRun and read by every
	// subcommand in this package.
	Logger logger.Logger

	// RootCmd is the vaultenv entry point.
	RootCmd = &cobra.Command{
		Use:   "vaultenv",
		Short: "vaultenv - encrypted .env sharing for small teams",
		Long: `vaultenv stores encrypted developer .env files and shares them
among your devices and teammates using public-key cryptography: no shared
passwords, no plaintext secrets in version control.

Usage:
  vaultenv <command> [flags]

Run 'vaultenv help <command>' for more details on a specific command.
`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{Verbose: verbose, Debug: debug}
		},
		Run: func(cmd *cobra.Command, args []string) {
			banner := figure.NewColorFigure("vaultenv", "alligator2", "cyan", true)
			banner.Print()
			fmt.Println("Run 'vaultenv --help' to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(identityCmd)
	RootCmd.AddCommand(initRepoCmd)
	RootCmd.AddCommand(addCmd)
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(shareCmd)
	RootCmd.AddCommand(revokeCmd)
	RootCmd.AddCommand(recipientsCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(useCmd)
	RootCmd.AddCommand(rmCmd)
	RootCmd.AddCommand(editCmd)
	RootCmd.AddCommand(doctorCmd)
	RootCmd.AddCommand(resetCmd)
}
