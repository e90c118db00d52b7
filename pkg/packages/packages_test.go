package packages_test

import (
	"context"
	"strings"
	"testing"

	"github.com/arthur-debert/dotsnap/pkg/executor"
	"github.com/arthur-debert/dotsnap/pkg/filesystem"
	"github.com/arthur-debert/dotsnap/pkg/packages"
	"github.com/arthur-debert/dotsnap/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records commands and returns canned results by prefix.
type fakeRunner struct {
	commands []string
	stdout   map[string]string // command prefix -> stdout
	failing  map[string]int    // command prefix -> exit code
}

func (f *fakeRunner) Run(_ context.Context, command string) (*executor.Result, error) {
	f.commands = append(f.commands, command)
	for prefix, code := range f.failing {
		if strings.HasPrefix(command, prefix) {
			return &executor.Result{ExitCode: code}, nil
		}
	}
	for prefix, out := range f.stdout {
		if strings.HasPrefix(command, prefix) {
			return &executor.Result{Stdout: out}, nil
		}
	}
	return &executor.Result{}, nil
}

type stubPaths struct{}

func (stubPaths) BackupRoot() string      { return "/backup" }
func (stubPaths) DotfilesDir() string     { return "/backup/dotfiles" }
func (stubPaths) ConfigsDir() string      { return "/backup/configs" }
func (stubPaths) PackagesDir() string     { return "/backup/packages" }
func (stubPaths) FontsDir() string        { return "/backup/fonts" }
func (stubPaths) HomeDir() string         { return "/home/user" }
func (stubPaths) UserFontsDir() string    { return "/home/user/.local/share/fonts" }
func (stubPaths) ApplicationsDir() string { return "/usr/share/applications" }

func newRegistry(runner executor.Runner, fsys types.FS) *packages.Registry {
	return packages.NewRegistry(packages.Options{
		Runner: runner,
		FS:     fsys,
		Paths:  stubPaths{},
	})
}

func TestBackupWritesListFiles(t *testing.T) {
	runner := &fakeRunner{stdout: map[string]string{
		"pip list": "requests==2.31.0\nflask==3.0.0\n",
	}}
	fsys := filesystem.NewMemory()

	reg := newRegistry(runner, fsys)
	results := reg.Backup(context.Background(), "/backup/packages")

	require.NotEmpty(t, results)
	byManager := map[string]types.CommandResult{}
	for _, r := range results {
		byManager[r.Manager] = r
	}

	assert.True(t, byManager["pip"].Success)
	data, err := fsys.ReadFile("/backup/packages/pip_list.txt")
	require.NoError(t, err)
	assert.Equal(t, "requests==2.31.0\nflask==3.0.0\n", string(data))
}

func TestBackupBrewWritesOwnFile(t *testing.T) {
	runner := &fakeRunner{}
	fsys := filesystem.NewMemory()

	reg := newRegistry(runner, fsys)
	reg.Backup(context.Background(), "/backup/packages")

	var brewCmd string
	for _, cmd := range runner.commands {
		if strings.HasPrefix(cmd, "brew bundle dump") {
			brewCmd = cmd
		}
	}
	require.NotEmpty(t, brewCmd)
	assert.Contains(t, brewCmd, "/backup/packages/brew_list.txt")

	// brew writes its own file; nothing should be captured for it
	_, err := fsys.Stat("/backup/packages/brew_list.txt")
	assert.Error(t, err)
}

func TestBackupNpmPostProcessing(t *testing.T) {
	runner := &fakeRunner{stdout: map[string]string{
		"npm ls": "/usr/local/lib\n/usr/local/lib/node_modules/typescript\n/usr/local/lib/node_modules/prettier\n",
	}}
	fsys := filesystem.NewMemory()

	reg := newRegistry(runner, fsys)
	reg.Backup(context.Background(), "/backup/packages")

	data, err := fsys.ReadFile("/backup/packages/npm_list.txt")
	require.NoError(t, err)
	assert.Equal(t, "typescript\nprettier\n", string(data))
}

func TestBackupMissingManagerIsNotFatal(t *testing.T) {
	runner := &fakeRunner{failing: map[string]int{"apm list": 127}}
	fsys := filesystem.NewMemory()

	reg := newRegistry(runner, fsys)
	results := reg.Backup(context.Background(), "/backup/packages")

	var apm types.CommandResult
	for _, r := range results {
		if r.Manager == "apm" {
			apm = r
		}
	}
	assert.False(t, apm.Success)
	assert.Error(t, apm.Error)

	_, err := fsys.Stat("/backup/packages/apm_list.txt")
	assert.Error(t, err)
}

func TestFound(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/backup/packages", 0755))
	require.NoError(t, fsys.WriteFile("/backup/packages/pip_list.txt", []byte("a==1\n"), 0644))
	require.NoError(t, fsys.WriteFile("/backup/packages/gem_list.txt", []byte("b\n"), 0644))
	require.NoError(t, fsys.WriteFile("/backup/packages/unrelated.txt", []byte("x\n"), 0644))

	reg := newRegistry(&fakeRunner{}, fsys)
	found, err := reg.Found("/backup/packages")
	require.NoError(t, err)

	names := make([]string, 0, len(found))
	for _, m := range found {
		names = append(names, m.Name)
	}
	assert.ElementsMatch(t, []string{"pip", "gem"}, names)
}

func TestReinstallReplaysSupportedManagers(t *testing.T) {
	runner := &fakeRunner{}
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/backup/packages", 0755))
	require.NoError(t, fsys.WriteFile("/backup/packages/pip_list.txt", []byte("requests==2.31.0\n"), 0644))
	require.NoError(t, fsys.WriteFile("/backup/packages/gem_list.txt", []byte("rake\n"), 0644))

	reg := newRegistry(runner, fsys)
	results, err := reg.Reinstall(context.Background(), "/backup/packages")
	require.NoError(t, err)

	assert.Contains(t, runner.commands, "pip install -r /backup/packages/pip_list.txt")

	// gem is found but replay is unsupported
	var gem types.CommandResult
	for _, r := range results {
		if r.Manager == "gem" {
			gem = r
		}
	}
	assert.True(t, gem.Skipped)
}

func TestReinstallVSCodePerLine(t *testing.T) {
	runner := &fakeRunner{}
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/backup/packages", 0755))
	require.NoError(t, fsys.WriteFile("/backup/packages/vscode_list.txt",
		[]byte("golang.go@0.41.0\nvscodevim.vim@1.27.0\n"), 0644))

	reg := newRegistry(runner, fsys)
	_, err := reg.Reinstall(context.Background(), "/backup/packages")
	require.NoError(t, err)

	assert.Contains(t, runner.commands, "code --install-extension golang.go@0.41.0")
	assert.Contains(t, runner.commands, "code --install-extension vscodevim.vim@1.27.0")
}

func TestNpmOutputWithOnlyRoot(t *testing.T) {
	runner := &fakeRunner{stdout: map[string]string{
		"npm ls": "/usr/local/lib\n",
	}}
	fsys := filesystem.NewMemory()

	reg := newRegistry(runner, fsys)
	reg.Backup(context.Background(), "/backup/packages")

	data, err := fsys.ReadFile("/backup/packages/npm_list.txt")
	require.NoError(t, err)
	assert.Empty(t, string(data))
}
