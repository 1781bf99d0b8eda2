package artifact

import (
	"os"
	"path/filepath"
)

// payloadFile, recipientsFile, and metaFile are the three artifacts every
// backend layout stores, regardless of whether the backend is central or
// local.
const (
	payloadFile    = "secrets.enc"
	recipientsFile = "recipients.json"
	metaFile       = "meta.json"
)

// dirBackend implements the three-file layout shared by CentralBackend and
// LocalBackend: a directory containing secrets.enc, recipients.json, and
// an optional meta.json, all written atomically at 0600 inside a 0700
// directory.
type dirBackend struct {
	dir string
}

func (b dirBackend) exists() (bool, error) {
	_, err := os.Stat(filepath.Join(b.dir, payloadFile))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (b dirBackend) loadPayload() ([]byte, error) {
	return os.ReadFile(filepath.Join(b.dir, payloadFile))
}

func (b dirBackend) savePayload(data []byte) error {
	if err := os.MkdirAll(b.dir, 0700); err != nil {
		return err
	}
	return WriteFileAtomic(filepath.Join(b.dir, payloadFile), data, 0600)
}

func (b dirBackend) loadRecipients() ([]byte, error) {
	return os.ReadFile(filepath.Join(b.dir, recipientsFile))
}

func (b dirBackend) saveRecipients(data []byte) error {
	if err := os.MkdirAll(b.dir, 0700); err != nil {
		return err
	}
	return WriteFileAtomic(filepath.Join(b.dir, recipientsFile), data, 0600)
}

func (b dirBackend) loadMeta() ([]byte, bool, error) {
	data, err := os.ReadFile(filepath.Join(b.dir, metaFile))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (b dirBackend) saveMeta(data []byte) error {
	if err := os.MkdirAll(b.dir, 0700); err != nil {
		return err
	}
	return WriteFileAtomic(filepath.Join(b.dir, metaFile), data, 0600)
}
