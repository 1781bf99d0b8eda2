package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/vaultenv/vaultenv/internal/artifact"
	"github.com/vaultenv/vaultenv/internal/configs"
	"github.com/vaultenv/vaultenv/internal/identity"
	"github.com/vaultenv/vaultenv/internal/ui"
	"github.com/vaultenv/vaultenv/internal/utils"
)

// startSpinner creates and starts a spinner with the given message when
// not in verbose or debug mode. Returns the spinner and a function that
// should be deferred to clean up.
//
// spinner.FinalMSG values do not need trailing newlines: the cleanup
// function calls ui.EnsureNewline on the final message before printing
// it, so output formatting stays consistent across commands.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// identityStore resolves the default identity root and returns a Store
// rooted there.
func identityStore() (identity.Store, string, error) {
	paths, err := configs.DefaultPaths()
	if err != nil {
		return identity.Store{}, "", err
	}
	return identity.Store{Root: paths.IdentityRoot}, paths.IdentityRoot, nil
}

// defaultVaultName returns the vault name a bare get/recipients/edit
// invocation should target: the CLI preference saved by a previous
// `vaultenv use <name>`, or "." (the project-local vault) if none was set.
func defaultVaultName() string {
	paths, err := configs.DefaultPaths()
	if err != nil {
		return "."
	}
	prefs, err := configs.LoadCLIPreferences(paths.ConfigDir)
	if err != nil || prefs.DefaultVault == "" {
		return "."
	}
	return prefs.DefaultVault
}

// resolveBackend resolves name ("." for local, otherwise a central vault
// name) to an artifact.Backend rooted relative to the current working
// directory and the identity root.
func resolveBackend(identityRoot, name string) (artifact.Backend, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return artifact.Resolve(identityRoot, cwd, name)
}

// promptPassword reads a password without echoing it. When stdin is not
// a terminal — e.g. `add <name>` reading the new plaintext from piped
// stdin — it falls back to reading the password from the controlling
// TTY directly, so piping content and entering a password never
// conflict over the same file descriptor.
func promptPassword(prompt string) ([]byte, error) {
	if !utils.IsTerminal() && utils.IsTTYAvailable() {
		return utils.ReadPassphraseFromTTY(prompt)
	}
	return utils.ReadPassphrase(prompt)
}

// exitCodeFor walks codes in order and returns the first code whose
// sentinel error matches err via errors.Is. Falls back to 1.
func exitCodeFor(err error, codes []exitMapping) int {
	for _, m := range codes {
		if errors.Is(err, m.err) {
			return m.code
		}
	}
	return 1
}

// exitMapping pairs a sentinel error with the exit code spec.md's
// command surface assigns it.
type exitMapping struct {
	err  error
	code int
}

// dieWithCodes prints err to stderr in the ui.Error style and exits with
// the first matching code in codes, or 1 if nothing matches.
func dieWithCodes(err error, codes []exitMapping) {
	fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗ ")+err.Error())
	os.Exit(exitCodeFor(err, codes))
}
