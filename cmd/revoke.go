package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	kerrors "github.com/vaultenv/vaultenv/internal/errors"
	"github.com/vaultenv/vaultenv/internal/ui"
	"github.com/vaultenv/vaultenv/internal/vault"
)

var revokeCmd = &cobra.Command{
	Use:   "revoke <name|.> <fingerprint>",
	Short: "Remove a device's access to a vault",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store, identityRoot, err := identityStore()
		if err != nil {
			dieWithCodes(err, nil)
		}

		backend, err := resolveBackend(identityRoot, args[0])
		if err != nil {
			dieWithCodes(err, nil)
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			dieWithCodes(err, nil)
		}

		engine := vault.Engine{Identity: store, Backend: backend}

		s, cleanup := startSpinner("Rotating key and revoking access...")
		err = engine.Revoke(password, args[1])
		cleanup()
		_ = s

		if err != nil {
			dieWithCodes(err, []exitMapping{
				{kerrors.ErrNotARecipient, 1},
				{kerrors.ErrSelfRevoke, 2},
			})
		}

		fmt.Println(ui.Success.Sprint("✓ ") + "revoked " + args[1])
	},
}
