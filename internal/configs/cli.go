package configs

import (
	"os"
	"path/filepath"
)

// CLIPreferences holds the handful of interactive-CLI conveniences that
// carry no cryptographic weight: which vault a bare `get`/`recipients`/
// `edit` should target when the caller omits a name. Unlike config.json (identity) and
// recipients.json (vault), this file is not part of the spec's
// authoritative artifact set and is safe to lose or regenerate.
type CLIPreferences struct {
	DefaultVault string `toml:"default_vault"`
}

// LoadCLIPreferences reads config.toml from configDir. A missing file is
// not an error; it returns a zero-value CLIPreferences.
func LoadCLIPreferences(configDir string) (*CLIPreferences, error) {
	path := filepath.Join(configDir, "config.toml")

	prefs := &CLIPreferences{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return prefs, nil
	}

	if err := LoadTOML(path, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// SaveCLIPreferences writes config.toml to configDir.
func SaveCLIPreferences(configDir string, prefs *CLIPreferences) error {
	path := filepath.Join(configDir, "config.toml")
	return SaveTOML(path, prefs)
}
