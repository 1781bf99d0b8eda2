package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	kerrors "github.com/vaultenv/vaultenv/internal/errors"
	"github.com/vaultenv/vaultenv/internal/ui"
	"github.com/vaultenv/vaultenv/internal/vault"
)

var initRepoForce bool

var initRepoCmd = &cobra.Command{
	Use:   "init-repo [env-file]",
	Short: "Create a local vault in the current project",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, identityRoot, err := identityStore()
		if err != nil {
			dieWithCodes(err, nil)
		}

		backend, err := resolveBackend(identityRoot, ".")
		if err != nil {
			dieWithCodes(err, nil)
		}

		var plaintext []byte
		if len(args) == 1 {
			plaintext, err = os.ReadFile(args[0])
			if err != nil {
				dieWithCodes(err, nil)
			}
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			dieWithCodes(err, nil)
		}

		engine := vault.Engine{Identity: store, Backend: backend}

		s, cleanup := startSpinner("Creating vault...")
		err = engine.InitVault(password, plaintext, initRepoForce)
		cleanup()
		_ = s

		if err != nil {
			dieWithCodes(err, []exitMapping{
				{kerrors.ErrNoIdentity, 1},
				{kerrors.ErrAlreadyExists, 2},
			})
		}

		fmt.Println(ui.Success.Sprint("✓ ") + "vault created at " + ui.Path.Sprint(backend.Root()))
	},
}

func init() {
	initRepoCmd.Flags().BoolVarP(&initRepoForce, "force", "f", false, "overwrite an existing vault")
}
