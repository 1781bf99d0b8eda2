package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaultenv/vaultenv/internal/ui"
	"github.com/vaultenv/vaultenv/internal/vault"
)

var recipientsCmd = &cobra.Command{
	Use:   "recipients [name|.]",
	Short: "List who can decrypt a vault",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := defaultVaultName()
		if len(args) == 1 {
			name = args[0]
		}

		store, identityRoot, err := identityStore()
		if err != nil {
			dieWithCodes(err, nil)
		}

		backend, err := resolveBackend(identityRoot, name)
		if err != nil {
			dieWithCodes(err, nil)
		}

		engine := vault.Engine{Identity: store, Backend: backend}

		list, err := engine.Recipients()
		if err != nil {
			dieWithCodes(err, nil)
		}

		fmt.Println("dek_version: " + fmt.Sprint(list.DEKVersion))
		for _, e := range list.Entries {
			marker := " "
			if e.IsCaller {
				marker = "*"
			}
			fmt.Printf("%s %s  %s  added %s\n", marker, e.Fingerprint, ui.Code.Sprint(e.Label), e.AddedAt.Format("2006-01-02"))
		}
	},
}
