// Package backup implements the backup operations: dotfiles, configs,
// packages, and fonts. Each operation resolves its copy plan, evaluates
// inclusion conditions, and reports per-item results; a failing item
// never aborts the section.
package backup

import (
	"context"
	"path/filepath"
	"strings"
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

// Options carries the dependencies of every backup operation.
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

// Dotfiles backs up every configured dotfile and dotfolder into the
// dotfiles/ subtree.
func Dotfiles(ctx context.Context, opts Options) (*types.SectionResult, error) {
	logger := logging.GetLogger("backup.dotfiles")
	start := time.Now()

	fsys := opts.fs()
	eval := condition.NewEvaluator(opts.runner())
	destDir := opts.Paths.DotfilesDir()
	home := opts.Paths.HomeDir()

	var folders, files []types.CopyItem
	for _, entry := range opts.Config.Dotfiles {
		ok, err := eval.Evaluate(ctx, entry.BackupCondition, condition.DirectionBackup, entry.Path)
		if err != nil {
			logger.Warn().Err(err).Str("entry", entry.Path).Msg("Condition could not be evaluated, skipping")
			continue
		}
		if !ok {
			continue
		}

		installed, backupPath := paths.MapDotfileToBackup(entry.Path, home, destDir)
		info, err := fsys.Stat(installed)
		if err != nil {
			logger.Debug().Str("entry", entry.Path).Str("installed", installed).Msg("Not installed, skipping")
			continue
		}

		item := types.CopyItem{Source: installed, Dest: backupPath, IsDir: info.IsDir()}
		if item.IsDir {
			folders = append(folders, item)
		} else {
			files = append(files, item)
		}
	}

	result := &types.SectionResult{Section: types.SectionDotfiles}

	c := opts.copier()
	result.Copies = append(result.Copies, c.CopyAll(folders)...)
	result.Copies = append(result.Copies, c.CopyAll(files)...)

	result.Duration = time.Since(start)
	logger.Info().
		Int("folders", len(folders)).
		Int("files", len(files)).
		Dur("duration", result.Duration).
		Msg("Dotfiles backup finished")

	return result, nil
}

// Configs backs up every configured application config into the
// configs/ subtree, at its mapped relative target.
func Configs(ctx context.Context, opts Options) (*types.SectionResult, error) {
	logger := logging.GetLogger("backup.configs")
	start := time.Now()

	fsys := opts.fs()
	destDir := opts.Paths.ConfigsDir()

	var items []types.CopyItem
	for _, mapping := range opts.Config.Configs {
		source := paths.ExpandHome(mapping.Source)
		dest := filepath.Join(destDir, mapping.Target)

		info, err := fsys.Stat(source)
		if err != nil {
			logger.Debug().Str("source", source).Msg("Config source absent, skipping")
			continue
		}

		items = append(items, types.CopyItem{Source: source, Dest: dest, IsDir: info.IsDir()})
	}

	result := &types.SectionResult{
		Section:  types.SectionConfigs,
		Copies:   opts.copier().CopyAll(items),
		Duration: time.Since(start),
	}

	logger.Info().Int("items", len(items)).Dur("duration", result.Duration).Msg("Configs backup finished")
	return result, nil
}

// Packages dumps every package manager's installed list into the
// packages/ subtree.
func Packages(ctx context.Context, opts Options) (*types.SectionResult, error) {
	logger := logging.GetLogger("backup.packages")
	start := time.Now()

	destDir := opts.Paths.PackagesDir()
	if !opts.DryRun {
		if err := opts.fs().MkdirAll(destDir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", destDir)
		}
	}

	reg := packages.NewRegistry(packages.Options{
		Runner: opts.runner(),
		FS:     opts.fs(),
		DryRun: opts.DryRun,
		Paths:  opts.Paths,
	})

	result := &types.SectionResult{
		Section:  types.SectionPackages,
		Commands: reg.Backup(ctx, destDir),
		Duration: time.Since(start),
	}

	logger.Info().Int("managers", len(result.Commands)).Dur("duration", result.Duration).Msg("Packages backup finished")
	return result, nil
}

// Fonts copies .ttf and .otf fonts from the user font directory into
// the fonts/ subtree. A missing font directory skips the section.
func Fonts(ctx context.Context, opts Options) (*types.SectionResult, error) {
	logger := logging.GetLogger("backup.fonts")
	start := time.Now()

	fsys := opts.fs()
	fontsDir := opts.Paths.UserFontsDir()
	destDir := opts.Paths.FontsDir()

	result := &types.SectionResult{Section: types.SectionFonts}

	entries, err := fsys.ReadDir(fontsDir)
	if err != nil {
		logger.Warn().Str("dir", fontsDir).Msg("No fonts directory found, skipping fonts backup")
		result.Duration = time.Since(start)
		return result, nil
	}

	var items []types.CopyItem
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !isFontFile(name) {
			continue
		}
		items = append(items, types.CopyItem{
			Source: filepath.Join(fontsDir, name),
			Dest:   filepath.Join(destDir, name),
		})
	}

	result.Copies = opts.copier().CopyAll(items)
	result.Duration = time.Since(start)

	logger.Info().Int("fonts", len(items)).Dur("duration", result.Duration).Msg("Fonts backup finished")
	return result, nil
}

// All runs the complete backup: dotfiles, packages, fonts, configs.
func All(ctx context.Context, opts Options) ([]*types.SectionResult, error) {
	type op func(context.Context, Options) (*types.SectionResult, error)

	var results []*types.SectionResult
	for _, run := range []op{Dotfiles, Packages, Fonts, Configs} {
		result, err := run(ctx, opts)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func isFontFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".ttf") || strings.HasSuffix(lower, ".otf")
}
