// Package paths provides centralized path handling for dotsnap.
// It resolves the backup tree layout, the platform font and application
// directories, and implements the reversible mapping between installed
// paths and their location inside the backup tree.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotsnap/pkg/errors"
)

// Environment variable names
const (
	// EnvBackupDir is the primary environment variable for the backup root
	EnvBackupDir = "DOTSNAP_BACKUP_DIR"

	// EnvConfigDir overrides the XDG config directory for dotsnap
	EnvConfigDir = "DOTSNAP_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Backup tree layout.
// IMPORTANT: These constants define the backup tree structure and are NOT
// user-configurable. They must remain consistent so that a tree written by
// one dotsnap installation can be replayed by another.
const (
	// DefaultBackupDir is the default backup root under $HOME
	DefaultBackupDir = "dotsnap-backup"

	// DotsnapDirName is the directory name for dotsnap-specific files
	DotsnapDirName = "dotsnap"

	// DotfilesSubdir holds dotfile and dotfolder copies
	DotfilesSubdir = "dotfiles"

	// ConfigsSubdir holds application config copies
	ConfigsSubdir = "configs"

	// PackagesSubdir holds package manager list files
	PackagesSubdir = "packages"

	// FontsSubdir holds font copies
	FontsSubdir = "fonts"

	// ConfigFileName is the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "dotsnap.log"
)

// Paths provides centralized path management for dotsnap
type Paths interface {
	BackupRoot() string
	DotfilesDir() string
	ConfigsDir() string
	PackagesDir() string
	FontsDir() string
	HomeDir() string
	UserFontsDir() string
	ApplicationsDir() string
	ConfigDir() string
	ConfigFilePath() string
	LogFilePath() string
}

type paths struct {
	// backupRoot is the root of the backup tree
	backupRoot string

	// homeDir is the user's home directory
	homeDir string

	// xdgConfig is the XDG config directory for dotsnap
	xdgConfig string

	// xdgState is the XDG state directory for dotsnap
	xdgState string
}

// New creates a new Paths instance with the given backup root.
// If backupRoot is empty, it is determined from DOTSNAP_BACKUP_DIR or
// defaults to ~/dotsnap-backup.
func New(backupRoot string) (Paths, error) {
	homeDir, err := GetHomeDirectory()
	if err != nil {
		return nil, err
	}

	p := &paths{homeDir: homeDir}

	if backupRoot == "" {
		backupRoot = os.Getenv(EnvBackupDir)
	}
	if backupRoot == "" {
		backupRoot = filepath.Join(homeDir, DefaultBackupDir)
	}
	p.backupRoot = ExpandHome(backupRoot)

	absRoot, err := filepath.Abs(p.backupRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for backup root")
	}
	p.backupRoot = absRoot

	p.setupXDGDirs()

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = ExpandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, DotsnapDirName)
	}

	// XDG doesn't always provide StateHome, so we check manually
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, DotsnapDirName)
	} else {
		p.xdgState = filepath.Join(p.homeDir, ".local", "state", DotsnapDirName)
	}
}

// ExpandHome expands ~ to the home directory
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Try the HOME environment variable as a fallback
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}

// BackupRoot returns the root of the backup tree
func (p *paths) BackupRoot() string {
	return p.backupRoot
}

// getBackupSubdir returns a subdirectory path under the backup root
func (p *paths) getBackupSubdir(name string) string {
	return filepath.Join(p.backupRoot, name)
}

// DotfilesDir returns the dotfiles subtree of the backup
func (p *paths) DotfilesDir() string {
	return p.getBackupSubdir(DotfilesSubdir)
}

// ConfigsDir returns the configs subtree of the backup
func (p *paths) ConfigsDir() string {
	return p.getBackupSubdir(ConfigsSubdir)
}

// PackagesDir returns the package-list subtree of the backup
func (p *paths) PackagesDir() string {
	return p.getBackupSubdir(PackagesSubdir)
}

// FontsDir returns the fonts subtree of the backup
func (p *paths) FontsDir() string {
	return p.getBackupSubdir(FontsSubdir)
}

// HomeDir returns the user's home directory
func (p *paths) HomeDir() string {
	return p.homeDir
}

// UserFontsDir returns the platform directory where user fonts live:
// ~/Library/Fonts on macOS, $XDG_DATA_HOME/fonts elsewhere.
func (p *paths) UserFontsDir() string {
	if runtime.GOOS == "darwin" {
		return filepath.Join(p.homeDir, "Library", "Fonts")
	}
	return filepath.Join(xdg.DataHome, "fonts")
}

// ApplicationsDir returns the platform applications directory used for
// the system application list.
func (p *paths) ApplicationsDir() string {
	if runtime.GOOS == "darwin" {
		return "/Applications"
	}
	return "/usr/share/applications"
}

// ConfigDir returns the XDG config directory for dotsnap
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// ConfigFilePath returns the path to the user configuration file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// LogFilePath returns the path to the dotsnap log file
// Respects XDG_STATE_HOME if set
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}
