// Test Type: Business Logic Test
// Description: Tests for the reversible installed-path <-> backup-name mapping

package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsnap/pkg/paths"
	"github.com/stretchr/testify/assert"
)

func TestEscapeAbsPath(t *testing.T) {
	tests := []struct {
		name      string
		installed string
		expected  string
	}{
		{
			name:      "absolute_path_is_flattened",
			installed: "/etc/ssh",
			expected:  ":etc/ssh",
		},
		{
			name:      "deep_absolute_path",
			installed: "/usr/local/etc/nginx/nginx.conf",
			expected:  ":usr/local/etc/nginx/nginx.conf",
		},
		{
			name:      "relative_path_unchanged",
			installed: ".vimrc",
			expected:  ".vimrc",
		},
		{
			name:      "nested_relative_path_unchanged",
			installed: ".config/nvim/init.lua",
			expected:  ".config/nvim/init.lua",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, paths.EscapeAbsPath(tt.installed))
		})
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	for _, installed := range []string{"/etc/ssh", "/etc/hosts", ".zshrc", ".ssh"} {
		escaped := paths.EscapeAbsPath(installed)
		assert.Equal(t, installed, paths.UnescapeBackupName(escaped),
			"escape must be reversible for %q", installed)
	}
}

func TestIsEscapedAbsPath(t *testing.T) {
	assert.True(t, paths.IsEscapedAbsPath(":etc/ssh"))
	assert.False(t, paths.IsEscapedAbsPath(".vimrc"))
	assert.False(t, paths.IsEscapedAbsPath("etc/ssh"))
}

func TestMapDotfileToBackup(t *testing.T) {
	home := "/home/user"
	backup := "/backup/dotfiles"

	tests := []struct {
		name          string
		entry         string
		wantInstalled string
		wantBackup    string
	}{
		{
			name:          "home_relative_dotfile",
			entry:         ".bashrc",
			wantInstalled: "/home/user/.bashrc",
			wantBackup:    "/backup/dotfiles/.bashrc",
		},
		{
			name:          "home_relative_dotfolder",
			entry:         ".config/tmux",
			wantInstalled: "/home/user/.config/tmux",
			wantBackup:    "/backup/dotfiles/.config/tmux",
		},
		{
			name:          "absolute_entry_is_escaped",
			entry:         "/etc/ssh",
			wantInstalled: "/etc/ssh",
			wantBackup:    "/backup/dotfiles/:etc/ssh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			installed, backupPath := paths.MapDotfileToBackup(tt.entry, home, backup)
			assert.Equal(t, tt.wantInstalled, installed)
			assert.Equal(t, tt.wantBackup, backupPath)
		})
	}
}

func TestMapBackupToInstalled(t *testing.T) {
	home := "/home/user"

	assert.Equal(t, "/home/user/.bashrc", paths.MapBackupToInstalled(".bashrc", home))
	assert.Equal(t, "/home/user/.ssh/config", paths.MapBackupToInstalled(filepath.Join(".ssh", "config"), home))
	assert.Equal(t, "/etc/ssh/sshd_config", paths.MapBackupToInstalled(":etc/ssh/sshd_config", home))
}

func TestMapRoundTripThroughTree(t *testing.T) {
	// Every configured entry must survive backup name -> reinstall target.
	home := "/home/user"
	for _, entry := range []string{".gitconfig", ".ssh", "/etc/hosts", "/etc/ssh"} {
		name := paths.BackupEntryName(entry)
		installed, _ := paths.MapDotfileToBackup(entry, home, "/b")
		assert.Equal(t, installed, paths.MapBackupToInstalled(name, home))
	}
}
