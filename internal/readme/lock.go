package readme

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const (
	lockFileNameTemplateConstant = "candidates-%s-%s.lock"
	lockDigestLengthConstant     = 16
	lockAcquireFailureTemplate   = "failed to acquire lock on %s: %w"
	lockReleaseFailureTemplate   = "failed to release lock on %s: %w"
)

// Locker serializes README rewrites across processes.
type Locker interface {
	Lock() error
	Unlock() error
}

// LockFactory returns the Locker guarding the document at path.
type LockFactory func(path string) Locker

// LockPath returns the lock file guarding the document, kept in the system temporary
// directory and named after a digest of the document's absolute path.
func LockPath(documentPath string) string {
	absolutePath, absoluteError := filepath.Abs(documentPath)
	if absoluteError != nil {
		absolutePath = filepath.Clean(documentPath)
	}
	digest := sha256.Sum256([]byte(absolutePath))
	lockFileName := fmt.Sprintf(lockFileNameTemplateConstant, filepath.Base(absolutePath), hex.EncodeToString(digest[:])[:lockDigestLengthConstant])
	return filepath.Join(os.TempDir(), lockFileName)
}

// FileLock is an advisory flock-based Locker.
type FileLock struct {
	lock *flock.Flock
	path string
}

// NewFileLock creates the advisory lock for the document at documentPath.
func NewFileLock(documentPath string) Locker {
	lockPath := LockPath(documentPath)
	return &FileLock{lock: flock.New(lockPath), path: lockPath}
}

// Lock blocks until the exclusive lock is held.
func (fileLock *FileLock) Lock() error {
	if lockError := fileLock.lock.Lock(); lockError != nil {
		return fmt.Errorf(lockAcquireFailureTemplate, fileLock.path, lockError)
	}
	return nil
}

// Unlock releases the lock.
func (fileLock *FileLock) Unlock() error {
	if unlockError := fileLock.lock.Unlock(); unlockError != nil {
		return fmt.Errorf(lockReleaseFailureTemplate, fileLock.path, unlockError)
	}
	return nil
}
