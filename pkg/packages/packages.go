// Package packages records and replays installed-package lists. Each
// supported package manager carries one fixed dump command whose output
// is persisted under the packages/ directory of the backup tree, and,
// where the manager supports it, one replay command to reinstall from
// that list.
package packages

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotsnap/pkg/errors"
	"github.com/arthur-debert/dotsnap/pkg/executor"
	"github.com/arthur-debert/dotsnap/pkg/filesystem"
	"github.com/arthur-debert/dotsnap/pkg/logging"
	"github.com/arthur-debert/dotsnap/pkg/types"
)

// Manager describes one package manager.
type Manager struct {
	// Name is the manager's short name, also the list file prefix.
	Name string

	// dumpCommand returns the shell command that produces the package
	// list. Its stdout is captured to the list file unless
	// writesOwnFile is set, in which case the command writes the file
	// itself (brew bundle dump).
	dumpCommand func(listPath string) string

	writesOwnFile bool

	// postProcess optionally rewrites the captured output before it is
	// persisted (npm).
	postProcess func(raw string) string

	// replayCommand returns the command that reinstalls from the list
	// file. It receives the list path, or a single list line when
	// replayPerLine is set. Nil means replay is unsupported.
	replayCommand func(listPath string) string

	// replayPerLine runs replayCommand once per list line instead of
	// once per file (vscode).
	replayPerLine bool

	// warnOnReplay emits a warning when a list exists but replay is
	// unsupported (gem, cargo, macports).
	warnOnReplay bool
}

// ListFile returns the list file name for this manager.
func (m *Manager) ListFile() string {
	return m.Name + "_list.txt"
}

// ReplaySupported reports whether the manager's list can be replayed.
func (m *Manager) ReplaySupported() bool {
	return m.replayCommand != nil
}

// Registry holds the supported managers in backup order.
type Registry struct {
	managers []*Manager
	runner   executor.Runner
	fs       types.FS
	dryRun   bool
	logger   zerolog.Logger
}

// Options configures a Registry.
type Options struct {
	Runner executor.Runner
	FS     types.FS
	DryRun bool
	Paths  types.Pather
}

// NewRegistry creates the registry of supported package managers.
func NewRegistry(opts Options) *Registry {
	runner := opts.Runner
	if runner == nil {
		runner = executor.NewShellRunner()
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	return &Registry{
		managers: defaultManagers(opts.Paths),
		runner:   runner,
		fs:       fsys,
		dryRun:   opts.DryRun,
		logger:   logging.GetLogger("packages"),
	}
}

// Managers returns the managers in backup order.
func (r *Registry) Managers() []*Manager {
	return r.managers
}

// Lookup finds a manager by name.
func (r *Registry) Lookup(name string) (*Manager, bool) {
	for _, m := range r.managers {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Backup dumps every manager's package list into packagesDir. A manager
// whose dump command fails is recorded and skipped, never fatal: absent
// package managers are expected.
func (r *Registry) Backup(ctx context.Context, packagesDir string) []types.CommandResult {
	results := make([]types.CommandResult, 0, len(r.managers))
	for _, m := range r.managers {
		results = append(results, r.backupOne(ctx, m, packagesDir))
	}
	return results
}

func (r *Registry) backupOne(ctx context.Context, m *Manager, packagesDir string) types.CommandResult {
	listPath := filepath.Join(packagesDir, m.ListFile())
	command := m.dumpCommand(listPath)

	result := types.CommandResult{
		Manager: m.Name,
		Command: command,
		Dest:    listPath,
	}

	r.logger.Info().Str("manager", m.Name).Str("command", command).Msg("Backing up package list")

	if r.dryRun {
		result.Skipped = true
		result.Success = true
		return result
	}

	run, err := r.runner.Run(ctx, command)
	if err != nil {
		result.Error = err
		return result
	}
	if !run.Succeeded() {
		result.Error = errors.Newf(errors.ErrCommandRun,
			"%s dump exited %d", m.Name, run.ExitCode)
		return result
	}

	if m.writesOwnFile {
		result.Success = true
		return result
	}

	output := run.Stdout
	if m.postProcess != nil {
		output = m.postProcess(output)
	}

	if err := r.fs.MkdirAll(packagesDir, 0755); err != nil {
		result.Error = errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", packagesDir)
		return result
	}
	if err := r.fs.WriteFile(listPath, []byte(output), 0644); err != nil {
		result.Error = errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", listPath)
		return result
	}

	result.Success = true
	return result
}

// Found lists the managers that have a list file in packagesDir.
func (r *Registry) Found(packagesDir string) ([]*Manager, error) {
	entries, err := r.fs.ReadDir(packagesDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", packagesDir)
	}

	var found []*Manager
	for _, m := range r.managers {
		for _, entry := range entries {
			if entry.Name() == m.ListFile() {
				found = append(found, m)
				break
			}
		}
	}
	return found, nil
}

// Reinstall replays every list file found in packagesDir. Managers
// without replay support are reported as skipped with a warning.
func (r *Registry) Reinstall(ctx context.Context, packagesDir string) ([]types.CommandResult, error) {
	found, err := r.Found(packagesDir)
	if err != nil {
		return nil, err
	}

	results := make([]types.CommandResult, 0, len(found))
	for _, m := range found {
		results = append(results, r.reinstallOne(ctx, m, packagesDir)...)
	}
	return results, nil
}

func (r *Registry) reinstallOne(ctx context.Context, m *Manager, packagesDir string) []types.CommandResult {
	listPath := filepath.Join(packagesDir, m.ListFile())

	if !m.ReplaySupported() {
		if m.warnOnReplay {
			r.logger.Warn().Str("manager", m.Name).Msg("Reinstallation is not supported for this manager")
		}
		return []types.CommandResult{{Manager: m.Name, Dest: listPath, Skipped: true, Success: true}}
	}

	var commands []string
	if m.replayPerLine {
		data, err := r.fs.ReadFile(listPath)
		if err != nil {
			return []types.CommandResult{{
				Manager: m.Name,
				Dest:    listPath,
				Error:   errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", listPath),
			}}
		}
		for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			commands = append(commands, m.replayCommand(line))
		}
	} else {
		commands = []string{m.replayCommand(listPath)}
	}

	results := make([]types.CommandResult, 0, len(commands))
	for _, command := range commands {
		result := types.CommandResult{Manager: m.Name, Command: command, Dest: listPath}

		r.logger.Info().Str("manager", m.Name).Str("command", command).Msg("Reinstalling packages")

		if r.dryRun {
			result.Skipped = true
			result.Success = true
			results = append(results, result)
			continue
		}

		run, err := r.runner.Run(ctx, command)
		switch {
		case err != nil:
			result.Error = err
		case !run.Succeeded():
			result.Error = errors.Newf(errors.ErrCommandRun,
				"%s replay exited %d", m.Name, run.ExitCode)
		default:
			result.Success = true
		}
		results = append(results, result)
	}
	return results
}
