package artifact

import "path/filepath"

// LocalBackend is the per-project layout: <project>/.env-vault/. Its
// display name is the basename of the project directory, not a field
// stored on disk.
type LocalBackend struct {
	Dir string
}

func (b LocalBackend) Exists() (bool, error)           { return dirBackend{b.Dir}.exists() }
func (b LocalBackend) LoadPayload() ([]byte, error)     { return dirBackend{b.Dir}.loadPayload() }
func (b LocalBackend) SavePayload(data []byte) error    { return dirBackend{b.Dir}.savePayload(data) }
func (b LocalBackend) LoadRecipients() ([]byte, error)  { return dirBackend{b.Dir}.loadRecipients() }
func (b LocalBackend) SaveRecipients(data []byte) error { return dirBackend{b.Dir}.saveRecipients(data) }
func (b LocalBackend) LoadMeta() ([]byte, bool, error)  { return dirBackend{b.Dir}.loadMeta() }
func (b LocalBackend) SaveMeta(data []byte) error       { return dirBackend{b.Dir}.saveMeta(data) }
func (b LocalBackend) Root() string                     { return b.Dir }

// Name returns the display name derived from the project directory.
func (b LocalBackend) Name() string {
	return filepath.Base(filepath.Dir(b.Dir))
}
