package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	kerrors "github.com/vaultenv/vaultenv/internal/errors"
	"github.com/vaultenv/vaultenv/internal/ui"
	"github.com/vaultenv/vaultenv/internal/vault"
)

var shareCmd = &cobra.Command{
	Use:   "share <name|.> <public-key-base64> [label]",
	Short: "Grant a device access to a vault",
	Args:  cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		store, identityRoot, err := identityStore()
		if err != nil {
			dieWithCodes(err, nil)
		}

		backend, err := resolveBackend(identityRoot, args[0])
		if err != nil {
			dieWithCodes(err, nil)
		}

		label := ""
		if len(args) == 3 {
			label = args[2]
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			dieWithCodes(err, nil)
		}

		engine := vault.Engine{Identity: store, Backend: backend}

		result, err := engine.Share(password, args[1], label)
		if err != nil {
			dieWithCodes(err, []exitMapping{
				{kerrors.ErrInvalidPublicKey, 1},
				{kerrors.ErrNoAccess, 2},
				{kerrors.ErrBadCredentials, 2},
			})
		}

		if result.AlreadyShared {
			fmt.Println(ui.Info.Sprint("• ") + result.Fingerprint + " already has access as " + ui.Code.Sprint(result.Label))
			return
		}
		fmt.Println(ui.Success.Sprint("✓ ") + "shared with " + ui.Code.Sprint(result.Label) + " (" + result.Fingerprint + ")")
	},
}
