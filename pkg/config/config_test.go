package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsnap/pkg/config"
	"github.com/arthur-debert/dotsnap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "~/dotsnap-backup", cfg.BackupDir)
	assert.NotEmpty(t, cfg.Dotfiles)

	entry, ok := cfg.Entry(".bashrc")
	require.True(t, ok)
	assert.Empty(t, entry.BackupCondition)

	entry, ok = cfg.Entry(".zshenv")
	require.True(t, ok)
	assert.Equal(t, "test -f ~/.zshenv", entry.BackupCondition)
}

func TestLoadUserFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
backup_dir = "/tmp/custom-backup"

[[dotfiles]]
path = ".vimrc"

[[dotfiles]]
path = "/etc/hosts"
backup_condition = "test -r /etc/hosts"

[[configs]]
source = "~/.config/kitty/kitty.conf"
target = "kitty/kitty.conf"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom-backup", cfg.BackupDir)

	// User dotfiles list replaces the default list entirely
	require.Len(t, cfg.Dotfiles, 2)
	assert.Equal(t, ".vimrc", cfg.Dotfiles[0].Path)
	assert.Equal(t, "/etc/hosts", cfg.Dotfiles[1].Path)
	assert.Equal(t, "test -r /etc/hosts", cfg.Dotfiles[1].BackupCondition)

	require.Len(t, cfg.Configs, 1)
	assert.Equal(t, "kitty/kitty.conf", cfg.Configs[0].Target)
}

func TestLoadYAMLFallback(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "config.yaml")
	content := `
backup_dir: /tmp/yaml-backup
dotfiles:
  - path: .zshrc
`
	require.NoError(t, os.WriteFile(yamlPath, []byte(content), 0644))

	// Ask for the .toml path; the .yaml sibling should be picked up.
	cfg, err := config.Load(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/yaml-backup", cfg.BackupDir)
	require.Len(t, cfg.Dotfiles, 1)
	assert.Equal(t, ".zshrc", cfg.Dotfiles[0].Path)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("DOTSNAP_BACKUP_DIR", "/tmp/env-wins")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env-wins", cfg.BackupDir)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "~/dotsnap-backup", cfg.BackupDir)
}

func TestValidateRejectsAbsoluteConfigTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
backup_dir = "/tmp/b"

[[configs]]
source = "~/.config/kitty/kitty.conf"
target = "/abs/target"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestDefaultContentParses(t *testing.T) {
	assert.Contains(t, config.DefaultContent(), "backup_dir")
}
