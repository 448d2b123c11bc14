package fsops

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// ErrLocked is returned when another invocation holds the lock for the same target.
var ErrLocked = errors.New("target is locked by another invocation")

// Lock is an exclusive lock file serializing iterations against one target directory.
type Lock struct {
	path string
}

// LockPath returns the lock file used for target inside dir.
func LockPath(dir, target string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(target)))
	return filepath.Join(dir, "git-template-"+hex.EncodeToString(sum[:8])+".lock")
}

// AcquireLock creates the lock file for target in dir, failing with ErrLocked if it exists.
func AcquireLock(dir, target string) (*Lock, error) {
	path := LockPath(dir, target)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s (lock file %s)", ErrLocked, target, path)
		}
		return nil, fmt.Errorf("create lock file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(strconv.Itoa(os.Getpid()) + "\n"); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write lock file: %w", err)
	}
	return &Lock{path: path}, nil
}

// Release removes the lock file. Releasing twice is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	err := os.Remove(l.path)
	l.path = ""
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
