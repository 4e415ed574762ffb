package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	temporaryFilePatternConstant          = ".%s.tmp-*"
	temporaryFileCreateErrorTemplate      = "failed to create temporary file for %s: %w"
	temporaryFileWriteErrorTemplate       = "failed to write temporary file for %s: %w"
	temporaryFileSyncErrorTemplate        = "failed to sync temporary file for %s: %w"
	temporaryFileCloseErrorTemplate       = "failed to close temporary file for %s: %w"
	temporaryFilePermissionsErrorTemplate = "failed to set permissions on temporary file for %s: %w"
	temporaryFileRenameErrorTemplate      = "failed to replace %s: %w"
)

// OSFileSystem implements FileSystem using the operating system primitives.
type OSFileSystem struct{}

// NewOSFileSystem constructs an OSFileSystem.
func NewOSFileSystem() OSFileSystem {
	return OSFileSystem{}
}

// ReadDir lists directory entries sorted by file name.
func (OSFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Open opens a file for reading.
func (OSFileSystem) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// ReadFile reads file contents.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// MkdirAll ensures a directory hierarchy exists with the provided permissions.
func (OSFileSystem) MkdirAll(path string, permissions fs.FileMode) error {
	return os.MkdirAll(path, permissions)
}

// Rename renames a path.
func (OSFileSystem) Rename(oldPath string, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// WriteFileAtomic writes data to a sibling temporary file and renames it over path,
// so readers observe either the previous or the new content. A symlinked path is
// resolved first and its target is replaced, leaving the link in place.
func (OSFileSystem) WriteFileAtomic(path string, data []byte, permissions fs.FileMode) (writeError error) {
	targetPath := path
	if resolvedPath, resolveError := filepath.EvalSymlinks(path); resolveError == nil {
		targetPath = resolvedPath
	}

	directory := filepath.Dir(targetPath)
	temporaryFile, createError := os.CreateTemp(directory, fmt.Sprintf(temporaryFilePatternConstant, filepath.Base(targetPath)))
	if createError != nil {
		return fmt.Errorf(temporaryFileCreateErrorTemplate, path, createError)
	}
	temporaryPath := temporaryFile.Name()

	defer func() {
		if writeError != nil {
			_ = temporaryFile.Close()
			_ = os.Remove(temporaryPath)
		}
	}()

	if _, err := temporaryFile.Write(data); err != nil {
		return fmt.Errorf(temporaryFileWriteErrorTemplate, path, err)
	}
	if err := temporaryFile.Sync(); err != nil {
		return fmt.Errorf(temporaryFileSyncErrorTemplate, path, err)
	}
	if err := temporaryFile.Close(); err != nil {
		return fmt.Errorf(temporaryFileCloseErrorTemplate, path, err)
	}
	if err := os.Chmod(temporaryPath, permissions); err != nil {
		return fmt.Errorf(temporaryFilePermissionsErrorTemplate, path, err)
	}
	if err := os.Rename(temporaryPath, targetPath); err != nil {
		return fmt.Errorf(temporaryFileRenameErrorTemplate, path, err)
	}

	return nil
}
