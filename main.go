package main

import (
	"os"

	"github.com/vaultenv/vaultenv/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
