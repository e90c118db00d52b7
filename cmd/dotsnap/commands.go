package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotsnap/pkg/commands/backup"
	"github.com/arthur-debert/dotsnap/pkg/commands/genconfig"
	"github.com/arthur-debert/dotsnap/pkg/commands/reinstall"
	"github.com/arthur-debert/dotsnap/pkg/errors"
	"github.com/arthur-debert/dotsnap/pkg/logging"
	"github.com/arthur-debert/dotsnap/pkg/types"
)

var sectionArgs = []string{"dotfiles", "configs", "packages", "fonts", "all"}

// sectionFromArgs picks the requested section, defaulting to "all".
func sectionFromArgs(args []string) string {
	if len(args) == 0 {
		return "all"
	}
	return args[0]
}

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "backup [dotfiles|configs|packages|fonts|all]",
		Short:     MsgBackupShort,
		Long:      MsgBackupLong,
		Example:   MsgBackupExample,
		ValidArgs: sectionArgs,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.backup")

			cfg, p, err := loadRuntime()
			if err != nil {
				return err
			}

			opts := backup.Options{Config: cfg, Paths: p, DryRun: dryRun}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			logger.Info().
				Str("section", sectionFromArgs(args)).
				Str("backupRoot", p.BackupRoot()).
				Bool("dryRun", dryRun).
				Msg("Starting backup")

			var results []*types.SectionResult
			switch sectionFromArgs(args) {
			case "dotfiles":
				results, err = one(backup.Dotfiles(ctx, opts))
			case "configs":
				results, err = one(backup.Configs(ctx, opts))
			case "packages":
				results, err = one(backup.Packages(ctx, opts))
			case "fonts":
				results, err = one(backup.Fonts(ctx, opts))
			default:
				results, err = backup.All(ctx, opts)
			}

			renderResults("backed up", results)
			if err != nil {
				return err
			}
			return failIfAnyFailed(results)
		},
	}
}

func newReinstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "reinstall [dotfiles|configs|packages|fonts|all]",
		Short:     MsgReinstallShort,
		Long:      MsgReinstallLong,
		Example:   MsgReinstallExample,
		ValidArgs: sectionArgs,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.reinstall")

			cfg, p, err := loadRuntime()
			if err != nil {
				return err
			}

			opts := reinstall.Options{Config: cfg, Paths: p, DryRun: dryRun}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			logger.Info().
				Str("section", sectionFromArgs(args)).
				Str("backupRoot", p.BackupRoot()).
				Bool("dryRun", dryRun).
				Msg("Starting reinstall")

			var results []*types.SectionResult
			switch sectionFromArgs(args) {
			case "dotfiles":
				results, err = one(reinstall.Dotfiles(ctx, opts))
			case "configs":
				results, err = one(reinstall.Configs(ctx, opts))
			case "packages":
				results, err = one(reinstall.Packages(ctx, opts))
			case "fonts":
				results, err = one(reinstall.Fonts(ctx, opts))
			default:
				results, err = reinstall.All(ctx, opts)
			}

			renderResults("reinstalled", results)
			if err != nil {
				return err
			}
			return failIfAnyFailed(results)
		},
	}
}

func newGenConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")

			_, p, err := loadRuntime()
			if err != nil {
				return err
			}

			result, err := genconfig.GenConfig(genconfig.Options{
				ConfigPath: p.ConfigFilePath(),
				Write:      write,
			})
			if err != nil {
				return err
			}

			if result.WrittenPath != "" {
				fmt.Printf("Config written to %s\n", result.WrittenPath)
				return nil
			}
			fmt.Print(result.ConfigContent)
			return nil
		},
	}
	cmd.Flags().Bool("write", false, "Write the default config to the user config path")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: MsgShowShort,
		Long:  MsgShowLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := loadRuntime()
			if err != nil {
				return err
			}
			return renderConfig(cfg, p)
		},
	}
}

// one adapts a single-section call to the []results shape.
func one(result *types.SectionResult, err error) ([]*types.SectionResult, error) {
	if result == nil {
		return nil, err
	}
	return []*types.SectionResult{result}, err
}

// failIfAnyFailed maps per-item failures to a non-zero exit.
func failIfAnyFailed(results []*types.SectionResult) error {
	for _, r := range results {
		if r.Failed() {
			return errors.Newf(errors.ErrInternal, "%s finished with errors", r.Section)
		}
	}
	return nil
}
