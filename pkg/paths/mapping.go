package paths

import (
	"path/filepath"
	"strings"
)

// AbsPrefix is the character that replaces the leading "/" of absolute
// source paths inside the backup tree. "/etc/ssh" is stored as "etc/ssh"
// under a top-level name ":etc", which keeps the entry relative while
// remaining reversible.
const AbsPrefix = ":"

// EscapeAbsPath flattens an absolute installed path into a
// backup-tree-safe relative name: "/etc/ssh" -> ":etc/ssh".
// Relative paths are returned unchanged.
func EscapeAbsPath(installed string) string {
	if !strings.HasPrefix(installed, "/") {
		return installed
	}
	return AbsPrefix + installed[1:]
}

// UnescapeBackupName reverses EscapeAbsPath: ":etc/ssh" -> "/etc/ssh".
// Names without the prefix are returned unchanged.
func UnescapeBackupName(name string) string {
	if !strings.HasPrefix(name, AbsPrefix) {
		return name
	}
	return "/" + name[len(AbsPrefix):]
}

// IsEscapedAbsPath reports whether a backup-tree name was produced from
// an absolute installed path.
func IsEscapedAbsPath(name string) bool {
	return strings.HasPrefix(name, AbsPrefix)
}

// MapDotfileToBackup resolves a configured dotfile entry to its
// (installed path, backup path) pair.
//
// Entries starting with "/" are full paths like /etc/ssh; they are
// escaped into the tree. All other entries live relative to homeDir and
// keep their name in the tree.
func MapDotfileToBackup(entry, homeDir, backupDir string) (installed, backup string) {
	if strings.HasPrefix(entry, "/") {
		return entry, filepath.Join(backupDir, EscapeAbsPath(entry))
	}
	return filepath.Join(homeDir, entry), filepath.Join(backupDir, entry)
}

// MapBackupToInstalled resolves a path inside the dotfiles backup tree
// back to the location it should be reinstalled to. relName is the
// path relative to the backup dotfiles dir.
func MapBackupToInstalled(relName, homeDir string) string {
	if IsEscapedAbsPath(relName) {
		return UnescapeBackupName(relName)
	}
	return filepath.Join(homeDir, relName)
}

// BackupEntryName returns the name a configured dotfile entry has inside
// the backup tree.
func BackupEntryName(entry string) string {
	return EscapeAbsPath(entry)
}
