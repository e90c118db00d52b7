package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dotsnap/internal/version"
	"github.com/arthur-debert/dotsnap/pkg/config"
	"github.com/arthur-debert/dotsnap/pkg/logging"
	"github.com/arthur-debert/dotsnap/pkg/paths"
)

var (
	verbosity     int
	dryRun        bool
	backupDirFlag string

	rootCmd = &cobra.Command{
		Use:   "dotsnap",
		Short: "Back up and restore dotfiles, configs, packages and fonts",
		Long: `dotsnap backs up your dotfiles, application configuration files,
installed-package lists, and fonts into a single backup tree, and
restores them from it. What gets backed up is driven by a declarative
config mapping source paths to backup destinations.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Preview changes without executing them")
	rootCmd.PersistentFlags().StringVar(&backupDirFlag, "backup-dir", "", "Backup tree root (overrides config and DOTSNAP_BACKUP_DIR)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(manCmd)
	rootCmd.AddCommand(newBackupCmd())
	rootCmd.AddCommand(newReinstallCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newShowCmd())
}

// loadRuntime resolves the configuration and backup-tree paths shared by
// the backup/reinstall/show commands. Priority for the backup root:
// --backup-dir flag, then DOTSNAP_BACKUP_DIR, then the config file.
func loadRuntime() (*config.Config, paths.Paths, error) {
	bootstrap, err := paths.New("")
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(bootstrap.ConfigFilePath())
	if err != nil {
		return nil, nil, err
	}

	root := backupDirFlag
	if root == "" && os.Getenv(paths.EnvBackupDir) == "" {
		root = cfg.BackupDir
	}

	p, err := paths.New(root)
	if err != nil {
		return nil, nil, err
	}

	return cfg, p, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print version information for dotsnap`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dotsnap version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `To load completions:

Bash:
  $ source <(dotsnap completion bash)

Zsh:
  $ dotsnap completion zsh > "${fpath[1]}/_dotsnap"

Fish:
  $ dotsnap completion fish | source

PowerShell:
  PS> dotsnap completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate bash completion")
			}
		case "zsh":
			if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate zsh completion")
			}
		case "fish":
			if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
				log.Error().Err(err).Msg("Failed to generate fish completion")
			}
		case "powershell":
			if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate powershell completion")
			}
		}
	},
}

var manCmd = &cobra.Command{
	Use:   "man",
	Short: "Generate man page",
	Long:  `Generate man page for dotsnap`,
	RunE: func(cmd *cobra.Command, args []string) error {
		header := &doc.GenManHeader{
			Title:   "DOTSNAP",
			Section: "1",
		}
		return doc.GenManTree(rootCmd, header, "/tmp")
	},
}
