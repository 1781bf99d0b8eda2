//go:build unix

package artifact

import (
	"os"

	"golang.org/x/sys/unix"
)

// Lock is an advisory exclusive lock on a backend's directory, held for
// the duration of a vault.Engine mutation. Its absence never affects
// correctness of a single invocation — it only narrows the window for two
// concurrent writers to race on recipients.json.
type Lock struct {
	file *os.File
}

// AcquireLock takes an exclusive flock on dir/.lock, creating it if
// necessary. Release with Unlock.
func AcquireLock(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(dir+"/.lock", os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return nil, err
	}

	return &Lock{file: f}, nil
}

// Unlock releases the flock and closes the lock file.
func (l *Lock) Unlock() error {
	if l == nil || l.file == nil {
		return nil
	}
	_ = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	return l.file.Close()
}
