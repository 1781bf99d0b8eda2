package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	kerrors "github.com/vaultenv/vaultenv/internal/errors"
	"github.com/vaultenv/vaultenv/internal/envfile"
	"github.com/vaultenv/vaultenv/internal/ui"
	"github.com/vaultenv/vaultenv/internal/vault"
)

var getKeysOnly bool

var getCmd = &cobra.Command{
	Use:   "get [name|.] [out-file]",
	Short: "Decrypt a vault's content",
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		name := defaultVaultName()
		if len(args) >= 1 {
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

		password, err := promptPassword("Password: ")
		if err != nil {
			dieWithCodes(err, nil)
		}

		engine := vault.Engine{Identity: store, Backend: backend}

		plaintext, err := engine.Get(password)
		if err != nil {
			dieWithCodes(err, []exitMapping{
				{kerrors.ErrNoAccess, 1},
				{kerrors.ErrIntegrity, 2},
				{kerrors.ErrBadCredentials, 3},
			})
		}

		if getKeysOnly {
			for _, key := range envfile.Keys(plaintext) {
				fmt.Println(key)
			}
			return
		}

		if len(args) == 2 {
			if err := os.WriteFile(args[1], plaintext, 0600); err != nil {
				dieWithCodes(err, nil)
			}
			fmt.Println(ui.Success.Sprint("✓ ") + "wrote " + ui.Path.Sprint(args[1]))
			return
		}

		os.Stdout.Write(plaintext)
	},
}

func init() {
	getCmd.Flags().BoolVar(&getKeysOnly, "keys", false, "print only variable names, not their values")
}
