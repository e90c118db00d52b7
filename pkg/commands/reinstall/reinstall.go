// Package reinstall implements the restore operations: copying backed-up
// dotfiles, configs and fonts back into place and replaying recorded
// package lists. Dotfile trees are walked file by file so a permission
// error on one file never aborts the rest.
package reinstall

import (
	"context"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dotsnap/pkg/condition"
	"github.com/arthur-debert/dotsnap/pkg/config"
	"github.com/arthur-debert/dotsnap/pkg/copier"
	"github.com/arthur-debert/dotsnap/pkg/errors"
	"github.com/arthur-debert/dotsnap/pkg/executor"
	"github.com/arthur-debert/dotsnap/pkg/filesystem"
	"github.com/arthur-debert/dotsnap/pkg/logging"
	"github.com/arthur-debert/dotsnap/pkg/packages"
	"github.com/arthur-debert/dotsnap/pkg/paths"
	"github.com/arthur-debert/dotsnap/pkg/types"
)

// Options carries the dependencies of every reinstall operation.
type Options struct {
	Config *config.Config
	Paths  paths.Paths
	FS     types.FS
	Runner executor.Runner
	DryRun bool
}

func (o *Options) fs() types.FS {
	if o.FS == nil {
		return filesystem.NewOS()
	}
	return o.FS
}

func (o *Options) runner() executor.Runner {
	if o.Runner == nil {
		return executor.NewShellRunner()
	}
	return o.Runner
}

func (o *Options) copier() *copier.Copier {
	return copier.New(copier.Options{FS: o.fs(), DryRun: o.DryRun})
}

// ensureNonEmpty fails with ErrEmptyBackup when dir is missing or holds
// nothing to restore.
func ensureNonEmpty(fsys types.FS, dir, kind string) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		return errors.Newf(errors.ErrEmptyBackup, "no %s backup found in %s", kind, dir)
	}
	return nil
}

// Dotfiles restores every configured dotfile from the dotfiles/ subtree
// to its installed location, file by file.
func Dotfiles(ctx context.Context, opts Options) (*types.SectionResult, error) {
	logger := logging.GetLogger("reinstall.dotfiles")
	start := time.Now()

	fsys := opts.fs()
	dotsDir := opts.Paths.DotfilesDir()
	home := opts.Paths.HomeDir()

	if err := ensureNonEmpty(fsys, dotsDir, "dotfile"); err != nil {
		return nil, err
	}

	eval := condition.NewEvaluator(opts.runner())

	var items []types.CopyItem
	for _, entry := range opts.Config.Dotfiles {
		ok, err := eval.Evaluate(ctx, entry.ReinstallCondition, condition.DirectionReinstall, entry.Path)
		if err != nil {
			logger.Warn().Err(err).Str("entry", entry.Path).Msg("Condition could not be evaluated, skipping")
			continue
		}
		if !ok {
			continue
		}

		name := paths.BackupEntryName(entry.Path)
		backupPath := filepath.Join(dotsDir, name)

		info, err := fsys.Stat(backupPath)
		if err != nil {
			logger.Debug().Str("entry", entry.Path).Msg("Not in backup, skipping")
			continue
		}

		if !info.IsDir() {
			items = append(items, types.CopyItem{
				Source: backupPath,
				Dest:   paths.MapBackupToInstalled(name, home),
			})
			continue
		}

		// Walk the backed-up tree so each file is copied, and fails,
		// independently.
		subfiles, err := copier.Subfiles(fsys, backupPath)
		if err != nil {
			logger.Warn().Err(err).Str("entry", entry.Path).Msg("Cannot walk backup tree, skipping")
			continue
		}
		for _, rel := range subfiles {
			items = append(items, types.CopyItem{
				Source: filepath.Join(backupPath, rel),
				Dest:   paths.MapBackupToInstalled(filepath.Join(name, rel), home),
			})
		}
	}

	result := &types.SectionResult{
		Section:  types.SectionDotfiles,
		Copies:   opts.copier().CopyAll(items),
		Duration: time.Since(start),
	}

	logger.Info().Int("files", len(items)).Dur("duration", result.Duration).Msg("Dotfiles reinstall finished")
	return result, nil
}

// Configs restores every configured application config from the
// configs/ subtree to its installed path.
func Configs(ctx context.Context, opts Options) (*types.SectionResult, error) {
	logger := logging.GetLogger("reinstall.configs")
	start := time.Now()

	fsys := opts.fs()
	configsDir := opts.Paths.ConfigsDir()

	if err := ensureNonEmpty(fsys, configsDir, "config"); err != nil {
		return nil, err
	}

	var items []types.CopyItem
	for _, mapping := range opts.Config.Configs {
		source := filepath.Join(configsDir, mapping.Target)
		dest := paths.ExpandHome(mapping.Source)

		info, err := fsys.Stat(source)
		if err != nil {
			logger.Debug().Str("source", source).Msg("Not in backup, skipping")
			continue
		}

		items = append(items, types.CopyItem{Source: source, Dest: dest, IsDir: info.IsDir()})
	}

	result := &types.SectionResult{
		Section:  types.SectionConfigs,
		Copies:   opts.copier().CopyAll(items),
		Duration: time.Since(start),
	}

	logger.Info().Int("items", len(items)).Dur("duration", result.Duration).Msg("Configs reinstall finished")
	return result, nil
}

// Fonts restores every backed-up font into the user font directory.
func Fonts(ctx context.Context, opts Options) (*types.SectionResult, error) {
	logger := logging.GetLogger("reinstall.fonts")
	start := time.Now()

	fsys := opts.fs()
	backupDir := opts.Paths.FontsDir()
	fontsDir := opts.Paths.UserFontsDir()

	if err := ensureNonEmpty(fsys, backupDir, "font"); err != nil {
		return nil, err
	}

	subfiles, err := copier.Subfiles(fsys, backupDir)
	if err != nil {
		return nil, err
	}

	var items []types.CopyItem
	for _, rel := range subfiles {
		items = append(items, types.CopyItem{
			Source: filepath.Join(backupDir, rel),
			Dest:   filepath.Join(fontsDir, filepath.Base(rel)),
		})
	}

	result := &types.SectionResult{
		Section:  types.SectionFonts,
		Copies:   opts.copier().CopyAll(items),
		Duration: time.Since(start),
	}

	logger.Info().Int("fonts", len(items)).Dur("duration", result.Duration).Msg("Fonts reinstall finished")
	return result, nil
}

// Packages replays every package list found in the packages/ subtree.
func Packages(ctx context.Context, opts Options) (*types.SectionResult, error) {
	logger := logging.GetLogger("reinstall.packages")
	start := time.Now()

	fsys := opts.fs()
	packagesDir := opts.Paths.PackagesDir()

	if err := ensureNonEmpty(fsys, packagesDir, "package"); err != nil {
		return nil, err
	}

	reg := packages.NewRegistry(packages.Options{
		Runner: opts.runner(),
		FS:     fsys,
		DryRun: opts.DryRun,
		Paths:  opts.Paths,
	})

	found, err := reg.Found(packagesDir)
	if err != nil {
		return nil, err
	}
	for _, m := range found {
		logger.Info().Str("manager", m.Name).Msg("Package manager backup found")
	}

	commands, err := reg.Reinstall(ctx, packagesDir)
	if err != nil {
		return nil, err
	}

	result := &types.SectionResult{
		Section:  types.SectionPackages,
		Commands: commands,
		Duration: time.Since(start),
	}

	logger.Info().Int("managers", len(found)).Dur("duration", result.Duration).Msg("Packages reinstall finished")
	return result, nil
}

// All runs the complete reinstall: dotfiles, packages, fonts, configs.
// A section aborting (for instance on an empty backup) does not stop the
// remaining sections; the first error is returned at the end.
func All(ctx context.Context, opts Options) ([]*types.SectionResult, error) {
	type op func(context.Context, Options) (*types.SectionResult, error)

	var results []*types.SectionResult
	var firstErr error
	for _, run := range []op{Dotfiles, Packages, Fonts, Configs} {
		result, err := run(ctx, opts)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		results = append(results, result)
	}
	return results, firstErr
}
