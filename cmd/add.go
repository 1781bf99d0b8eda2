package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	kerrors "github.com/vaultenv/vaultenv/internal/errors"
	"github.com/vaultenv/vaultenv/internal/ui"
	"github.com/vaultenv/vaultenv/internal/utils"
	"github.com/vaultenv/vaultenv/internal/vault"
)

var addCmd = &cobra.Command{
	Use:   "add <name|.> [file]",
	Short: "Put plaintext into a vault, from a file or stdin",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		store, identityRoot, err := identityStore()
		if err != nil {
			dieWithCodes(err, nil)
		}

		backend, err := resolveBackend(identityRoot, args[0])
		if err != nil {
			dieWithCodes(err, []exitMapping{{kerrors.ErrInvalidName, 2}})
		}

		var plaintext []byte
		if len(args) == 2 {
			plaintext, err = os.ReadFile(args[1])
		} else {
			plaintext, err = utils.ReadStdin()
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗ ")+err.Error())
			os.Exit(2)
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			dieWithCodes(err, nil)
		}

		engine := vault.Engine{Identity: store, Backend: backend}

		s, cleanup := startSpinner("Encrypting...")
		err = engine.Put(password, plaintext)
		cleanup()
		_ = s

		if err != nil {
			dieWithCodes(err, []exitMapping{
				{kerrors.ErrNoAccess, 1},
				{kerrors.ErrBadCredentials, 1},
			})
		}

		fmt.Println(ui.Success.Sprint("✓ ") + "vault updated")
	},
}
