package testutil

import (
	"path/filepath"

	"github.com/arthur-debert/dotsnap/pkg/paths"
)

// StubPaths is a paths.Paths with fixed directories, for tests that run
// against a virtual filesystem.
type StubPaths struct {
	Root  string
	Home  string
	Fonts string
	Apps  string
}

var _ paths.Paths = (*StubPaths)(nil)

// Paths builds a StubPaths from the environment's directories.
func (env *TestEnvironment) Paths() *StubPaths {
	return &StubPaths{
		Root:  env.BackupRoot,
		Home:  env.HomeDir,
		Fonts: env.FontsDir,
		Apps:  "/usr/share/applications",
	}
}

func (s *StubPaths) BackupRoot() string      { return s.Root }
func (s *StubPaths) DotfilesDir() string     { return filepath.Join(s.Root, paths.DotfilesSubdir) }
func (s *StubPaths) ConfigsDir() string      { return filepath.Join(s.Root, paths.ConfigsSubdir) }
func (s *StubPaths) PackagesDir() string     { return filepath.Join(s.Root, paths.PackagesSubdir) }
func (s *StubPaths) FontsDir() string        { return filepath.Join(s.Root, paths.FontsSubdir) }
func (s *StubPaths) HomeDir() string         { return s.Home }
func (s *StubPaths) UserFontsDir() string    { return s.Fonts }
func (s *StubPaths) ApplicationsDir() string { return s.Apps }
func (s *StubPaths) ConfigDir() string       { return filepath.Join(s.Home, ".config", "dotsnap") }
func (s *StubPaths) ConfigFilePath() string {
	return filepath.Join(s.ConfigDir(), paths.ConfigFileName)
}
func (s *StubPaths) LogFilePath() string {
	return filepath.Join(s.Home, ".local", "state", "dotsnap", paths.LogFileName)
}
