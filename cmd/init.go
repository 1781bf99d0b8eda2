package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	kerrors "github.com/vaultenv/vaultenv/internal/errors"
	"github.com/vaultenv/vaultenv/internal/ui"
	"github.com/vaultenv/vaultenv/internal/utils"
)

var initDeviceLabel string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize this device's identity",
	Long: `Generates a device keypair and secures it with a password. Run this
once per device before using any other command.`,
	Run: func(cmd *cobra.Command, args []string) {
		store, _, err := identityStore()
		if err != nil {
			dieWithCodes(err, nil)
		}

		label := initDeviceLabel
		if label == "" {
			hostname, err := utils.GetHostname()
			if err != nil {
				hostname = "device"
			}
			label = utils.SanitizeDeviceName(hostname)
		}

		password, err := promptPassword("Choose a password: ")
		if err != nil {
			dieWithCodes(err, nil)
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			dieWithCodes(err, nil)
		}
		if string(password) != string(confirm) {
			fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗ ")+"passwords did not match")
			os.Exit(2)
		}

		s, cleanup := startSpinner("Deriving key and generating identity...")
		err = store.Initialize(password, label)
		cleanup()

		if err != nil {
			dieWithCodes(err, []exitMapping{
				{kerrors.ErrAlreadyInitialized, 1},
				{kerrors.ErrBadPassword, 2},
			})
		}
		_ = s

		fp, err := store.FingerprintOf()
		if err != nil {
			dieWithCodes(err, nil)
		}
		fmt.Println(ui.Success.Sprint("✓ ") + "identity created for device " + ui.Code.Sprint(label))
		fmt.Println("  fingerprint: " + fp)
	},
}

func init() {
	initCmd.Flags().StringVar(&initDeviceLabel, "label", "", "device label (default: sanitized hostname)")
}
