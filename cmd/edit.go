package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	kerrors "github.com/vaultenv/vaultenv/internal/errors"
	"github.com/vaultenv/vaultenv/internal/ui"
	"github.com/vaultenv/vaultenv/internal/vault"
)

// shellMetacharacters must not appear in $VISUAL/$EDITOR: those variables
// select an executable, not a shell command line, so a value carrying
// any of these would silently change meaning between "the editor to run"
// and "a shell fragment to interpret".
const shellMetacharacters = ";&|`$"

var editCmd = &cobra.Command{
	Use:   "edit [name|.]",
	Short: "Open a vault's decrypted content in $EDITOR",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := defaultVaultName()
		if len(args) == 1 {
			name = args[0]
		}

		editor, err := resolveEditor()
		if err != nil {
			dieWithCodes(err, nil)
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

		err = engine.Edit(password, func(plaintext []byte) ([]byte, error) {
			return editInEditor(editor, plaintext)
		})
		if err != nil {
			dieWithCodes(err, []exitMapping{
				{kerrors.ErrNoAccess, 1},
				{kerrors.ErrBadCredentials, 1},
			})
		}

		fmt.Println(ui.Success.Sprint("✓ ") + "vault updated")
	},
}

func resolveEditor() (string, error) {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		return "", kerrors.ErrNoEditor
	}
	if strings.ContainsAny(editor, shellMetacharacters) {
		return "", kerrors.ErrUnsafeEditor
	}
	return editor, nil
}

func editInEditor(editor string, plaintext []byte) ([]byte, error) {
	tmp, err := os.CreateTemp("", "vaultenv-edit-*")
	if err != nil {
		return nil, err
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(plaintext); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return nil, err
	}

	return os.ReadFile(path)
}
