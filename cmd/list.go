package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaultenv/vaultenv/internal/artifact"
	"github.com/vaultenv/vaultenv/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List central vaults for this identity",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_, identityRoot, err := identityStore()
		if err != nil {
			dieWithCodes(err, nil)
		}

		names, err := artifact.List(identityRoot)
		if err != nil {
			dieWithCodes(err, nil)
		}

		if len(names) == 0 {
			fmt.Println(ui.Info.Sprint("no vaults yet"))
			return
		}
		for _, n := range names {
			fmt.Println(n)
		}
	},
}
