// Package filesystem abstracts the disk operations used by the sorter and the
// summary generator so that services can be exercised against temporary trees.
package filesystem

import (
	"io"
	"io/fs"
)

// FileSystem captures the file and directory primitives consumed by the services.
type FileSystem interface {
	ReadDir(path string) ([]fs.DirEntry, error)
	Stat(path string) (fs.FileInfo, error)
	Open(path string) (io.ReadCloser, error)
	ReadFile(path string) ([]byte, error)
	MkdirAll(path string, permissions fs.FileMode) error
	Rename(oldPath string, newPath string) error
	WriteFileAtomic(path string, data []byte, permissions fs.FileMode) error
}
