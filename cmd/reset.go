package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vaultenv/vaultenv/internal/ui"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Destroy this device's identity and all central vaults",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_, identityRoot, err := identityStore()
		if err != nil {
			dieWithCodes(err, nil)
		}

		if !resetForce {
			fmt.Println(ui.Error.Sprint("! ") + "this deletes your identity and every central vault it can decrypt")
			fmt.Print("type \"yes\" to continue: ")
			var answer string
			fmt.Scanln(&answer)
			if answer != "yes" {
				fmt.Println("aborted")
				os.Exit(1)
			}
		}

		if err := os.RemoveAll(identityRoot); err != nil {
			dieWithCodes(err, nil)
		}

		fmt.Println(ui.Success.Sprint("✓ ") + "identity reset")
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "skip the confirmation prompt")
}
