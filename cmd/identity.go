package cmd

import (
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"
)

var identityCmd = &cobra.Command{
	Use:   "identity",
	Short: "Print this device's public key and fingerprint",
	Run: func(cmd *cobra.Command, args []string) {
		store, _, err := identityStore()
		if err != nil {
			dieWithCodes(err, nil)
		}

		pub, err := store.PublicKey()
		if err != nil {
			dieWithCodes(err, nil)
		}
		fp, err := store.FingerprintOf()
		if err != nil {
			dieWithCodes(err, nil)
		}
		config, err := store.Config()
		if err != nil {
			dieWithCodes(err, nil)
		}

		fmt.Println("device:      " + config.DeviceLabel)
		fmt.Println("fingerprint: " + fp)
		fmt.Println("public key:  " + base64.StdEncoding.EncodeToString(pub[:]))
	},
}
