package packages

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotsnap/pkg/types"
)

// defaultManagers builds the supported manager list. paths supplies the
// home and applications directories some dump commands need.
func defaultManagers(paths types.Pather) []*Manager {
	var home, applications string
	if paths != nil {
		home = paths.HomeDir()
		applications = paths.ApplicationsDir()
	}

	return []*Manager{
		{
			Name: "brew",
			dumpCommand: func(listPath string) string {
				return fmt.Sprintf("brew bundle dump --force --file %s", listPath)
			},
			writesOwnFile: true,
			replayCommand: func(listPath string) string {
				return fmt.Sprintf("xargs brew install < %s", listPath)
			},
		},
		{
			Name: "gem",
			dumpCommand: func(string) string {
				return `gem list | tail -n+1 | sed 's/(/--version /' | sed 's/)//'`
			},
			warnOnReplay: true,
		},
		{
			Name: "cargo",
			dumpCommand: func(string) string {
				return fmt.Sprintf("ls %s", filepath.Join(home, ".cargo", "bin"))
			},
			warnOnReplay: true,
		},
		{
			Name: "pip",
			dumpCommand: func(string) string {
				return "pip list --format=freeze"
			},
			replayCommand: func(listPath string) string {
				return fmt.Sprintf("pip install -r %s", listPath)
			},
		},
		{
			Name: "pip3",
			dumpCommand: func(string) string {
				return "pip3 list --format=freeze"
			},
			replayCommand: func(listPath string) string {
				return fmt.Sprintf("pip3 install -r %s", listPath)
			},
		},
		{
			Name: "npm",
			dumpCommand: func(string) string {
				return "npm ls --global --parseable=true --depth=0"
			},
			postProcess: npmPackageNames,
			replayCommand: func(listPath string) string {
				return fmt.Sprintf("cat %s | xargs npm install -g", listPath)
			},
		},
		{
			Name: "apm",
			dumpCommand: func(string) string {
				return "apm list --installed --bare"
			},
			replayCommand: func(listPath string) string {
				return fmt.Sprintf("apm install --packages-file %s", listPath)
			},
		},
		{
			Name: "vscode",
			dumpCommand: func(string) string {
				return "code --list-extensions --show-versions"
			},
			replayCommand: func(line string) string {
				return fmt.Sprintf("code --install-extension %s", line)
			},
			replayPerLine: true,
		},
		{
			Name: "macports",
			dumpCommand: func(string) string {
				return "port installed requested"
			},
			warnOnReplay: true,
		},
		{
			Name: "system_apps",
			dumpCommand: func(string) string {
				return fmt.Sprintf("ls %s", applications)
			},
		},
	}
}

// npmPackageNames reduces `npm ls --parseable` output to bare package
// names: the first line (the npm root itself) is dropped and every
// remaining line is cut down to its last path segment.
func npmPackageNames(raw string) string {
	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")
	if len(lines) <= 1 {
		return ""
	}

	var b strings.Builder
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if idx := strings.LastIndex(line, "/"); idx >= 0 {
			line = line[idx+1:]
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
