package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vaultenv/vaultenv/internal/artifact"
	"github.com/vaultenv/vaultenv/internal/ui"
)

var rmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a central vault entirely",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := artifact.ValidateName(args[0]); err != nil {
			dieWithCodes(err, nil)
		}

		_, identityRoot, err := identityStore()
		if err != nil {
			dieWithCodes(err, nil)
		}

		dir := filepath.Join(identityRoot, "repos", args[0])
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			fmt.Println(ui.Info.Sprint("• ") + "no such vault: " + args[0])
			os.Exit(1)
		}

		if err := os.RemoveAll(dir); err != nil {
			dieWithCodes(err, nil)
		}

		fmt.Println(ui.Success.Sprint("✓ ") + "removed vault " + ui.Code.Sprint(args[0]))
	},
}
