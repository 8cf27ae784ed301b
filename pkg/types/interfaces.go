package types

import (
	"io/fs"
	"time"
)

// FS is the filesystem interface required for dotsmith operations.
// The engine packages (conflicts, backup, deploy) take an FS so tests
// can point them at isolated roots.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Removal
	Remove(name string) error
	RemoveAll(path string) error

	// Metadata preservation for backups
	Chtimes(name string, atime, mtime time.Time) error
}
