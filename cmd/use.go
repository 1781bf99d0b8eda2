package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaultenv/vaultenv/internal/artifact"
	"github.com/vaultenv/vaultenv/internal/configs"
	"github.com/vaultenv/vaultenv/internal/ui"
)

var useCmd = &cobra.Command{
	Use:   "use <name|.>",
	Short: "Set the vault a bare get/edit/recipients targets",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		if name != "." {
			if err := artifact.ValidateName(name); err != nil {
				dieWithCodes(err, nil)
			}
		}

		paths, err := configs.DefaultPaths()
		if err != nil {
			dieWithCodes(err, nil)
		}

		if err := configs.SaveCLIPreferences(paths.ConfigDir, &configs.CLIPreferences{DefaultVault: name}); err != nil {
			dieWithCodes(err, nil)
		}

		fmt.Println(ui.Success.Sprint("✓ ") + "default vault set to " + ui.Code.Sprint(name))
	},
}
