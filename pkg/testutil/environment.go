// Package testutil orchestrates test environments for dotsnap tests:
// a pure in-memory filesystem with fixed virtual paths, or an isolated
// real filesystem under t.TempDir.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsnap/pkg/filesystem"
	"github.com/arthur-debert/dotsnap/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a complete test environment with all dependencies
type TestEnvironment struct {
	// Core paths
	BackupRoot string
	HomeDir    string
	FontsDir   string

	// Filesystem under test
	FS types.FS

	// Environment type
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		t:    t,
		Type: envType,
	}

	switch envType {
	case EnvMemoryOnly:
		env.setupMemoryEnvironment()
	case EnvIsolated:
		env.setupIsolatedEnvironment()
	}

	t.Setenv("DOTSNAP_BACKUP_DIR", env.BackupRoot)
	t.Setenv("HOME", env.HomeDir)

	return env
}

func (env *TestEnvironment) setupMemoryEnvironment() {
	env.BackupRoot = "/virtual/backup"
	env.HomeDir = "/virtual/home"
	env.FontsDir = "/virtual/home/.local/share/fonts"

	env.FS = filesystem.NewMemory()

	_ = env.FS.MkdirAll(env.BackupRoot, 0755)
	_ = env.FS.MkdirAll(env.HomeDir, 0755)
}

func (env *TestEnvironment) setupIsolatedEnvironment() {
	tempDir := env.t.TempDir()

	env.BackupRoot = filepath.Join(tempDir, "backup")
	env.HomeDir = filepath.Join(tempDir, "home")
	env.FontsDir = filepath.Join(tempDir, "home", ".local", "share", "fonts")

	env.FS = filesystem.NewOS()

	for _, dir := range []string{env.BackupRoot, env.HomeDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			env.t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
}

// WriteFile creates a file with parent directories.
func (env *TestEnvironment) WriteFile(path, content string) {
	env.t.Helper()
	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create parent of %s: %v", path, err)
	}
	if err := env.FS.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// ReadFile reads a file or fails the test.
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(path)
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// Exists reports whether a path exists.
func (env *TestEnvironment) Exists(path string) bool {
	_, err := env.FS.Stat(path)
	return err == nil
}
