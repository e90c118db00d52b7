package types

import (
	"io/fs"
)

// FS abstracts filesystem operations for testing
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error

	// Optional operations - implementations should check for support
	// For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// Pather provides the backup-tree paths used by dotsnap operations
type Pather interface {
	// BackupRoot returns the root directory of the backup tree
	BackupRoot() string

	// DotfilesDir returns the dotfiles subtree of the backup
	DotfilesDir() string

	// ConfigsDir returns the configs subtree of the backup
	ConfigsDir() string

	// PackagesDir returns the package-list subtree of the backup
	PackagesDir() string

	// FontsDir returns the fonts subtree of the backup
	FontsDir() string

	// HomeDir returns the user's home directory
	HomeDir() string

	// UserFontsDir returns the platform font directory
	UserFontsDir() string

	// ApplicationsDir returns the platform applications directory
	ApplicationsDir() string
}
