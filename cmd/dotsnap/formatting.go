package main

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/dotsnap/pkg/config"
	"github.com/arthur-debert/dotsnap/pkg/errors"
	"github.com/arthur-debert/dotsnap/pkg/paths"
	"github.com/arthur-debert/dotsnap/pkg/style"
	"github.com/arthur-debert/dotsnap/pkg/types"
)

// renderResults prints one block per section: a header, the per-item
// lines (in dry-run or verbose mode), failures, and a summary line.
// verb describes the run for the per-manager package lines.
func renderResults(verb string, results []*types.SectionResult) {
	showItems := dryRun || verbosity > 0

	for _, result := range results {
		style.PrintSectionHeader(strings.ToUpper(string(result.Section)))

		var copied, skipped, failed int
		for _, c := range result.Copies {
			switch {
			case c.Error != nil:
				failed++
				style.PrintWarning(fmt.Sprintf("%s: %v", c.Item.Source, c.Error))
			case c.Skipped:
				skipped++
				if showItems {
					style.PrintCopyInfo(c.Item.Source, c.Item.Dest)
				}
			default:
				copied++
				if showItems {
					style.PrintCopyInfo(c.Item.Source, c.Item.Dest)
				}
			}
		}

		var ran, cmdFailed int
		for _, c := range result.Commands {
			switch {
			case c.Error != nil:
				cmdFailed++
				if showItems {
					style.PrintWarning(fmt.Sprintf("%s: %v", c.Manager, c.Error))
				}
			case c.Skipped:
				if showItems && c.Command != "" {
					style.PrintCopyInfo("$ "+c.Command, c.Dest)
				}
			default:
				ran++
				style.PrintManager(verb, c.Manager)
				if showItems {
					style.PrintCopyInfo("$ "+c.Command, c.Dest)
				}
			}
		}

		switch result.Section {
		case types.SectionPackages:
			fmt.Printf("%d manager commands run, %d unavailable\n\n", ran, cmdFailed)
		default:
			if dryRun {
				fmt.Printf("%d items planned\n\n", skipped)
			} else {
				fmt.Printf("%d copied, %d failed\n\n", copied, failed)
			}
		}
	}
}

// renderConfig prints the resolved configuration as TOML.
func renderConfig(cfg *config.Config, p paths.Paths) error {
	fmt.Printf("config file: %s\n", p.ConfigFilePath())
	fmt.Printf("backup root: %s\n\n", p.BackupRoot())

	out, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render config")
	}
	fmt.Print(string(out))
	return nil
}
