package artifact

import (
	"io/fs"
	"os"
	"path/filepath"
)

// List enumerates the names of every central vault under
// <identityRoot>/repos: directory entries whose secrets.enc exists,
// skipping dotfiles, stray temp files, and non-directory entries.
func List(identityRoot string) ([]string, error) {
	reposDir := filepath.Join(identityRoot, "repos")

	entries, err := os.ReadDir(reposDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if len(name) == 0 || name[0] == '.' {
			continue
		}
		if err := ValidateName(name); err != nil {
			continue
		}

		backend := CentralBackend{Dir: filepath.Join(reposDir, name), name: name}
		exists, err := backend.Exists()
		if err != nil {
			return nil, err
		}
		if exists {
			names = append(names, name)
		}
	}

	return names, nil
}

// walkEntries returns every regular file under root whose full path
// satisfies predicate, skipping directories named in skipDirs. Grounded
// on the teacher's FindEnvOrKanukaFiles walk shape.
func walkEntries(root string, skipDirs map[string]bool, predicate func(path string) bool) ([]string, error) {
	var result []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if predicate(path) {
			result = append(result, path)
		}
		return nil
	})

	return result, err
}
