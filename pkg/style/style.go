// Package style renders dotsnap's terminal output: section headers,
// per-item copy lines, and warnings. Styling degrades to plain text when
// stdout is not a terminal or NO_COLOR is set.
package style

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Padding(0, 1).
			Border(lipgloss.NormalBorder())

	arrowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Styled reports whether rich output should be produced on stdout.
// It is a variable so tests can force either rendering path.
var Styled = func() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// SectionHeader renders the banner that opens a backup/reinstall section.
func SectionHeader(title string) string {
	if !Styled() {
		return fmt.Sprintf("--- %s ---", title)
	}
	return headerStyle.Render(title)
}

// PrintSectionHeader writes a section banner to stdout.
func PrintSectionHeader(title string) {
	fmt.Println(SectionHeader(title))
}

// CopyInfo renders a "source -> dest" line for verbose/dry-run output.
func CopyInfo(source, dest string) string {
	if !Styled() {
		return fmt.Sprintf("%s -> %s", source, dest)
	}
	return fmt.Sprintf("%s %s %s", source, arrowStyle.Render("->"), dest)
}

// PrintCopyInfo writes a copy line to stdout.
func PrintCopyInfo(source, dest string) {
	fmt.Println(CopyInfo(source, dest))
}

// PrintManager reports the outcome for one package manager.
func PrintManager(verb, name string) {
	if !Styled() {
		fmt.Printf("%s: %s\n", name, verb)
		return
	}
	pterm.Info.Printfln("%s: %s", pterm.Bold.Sprint(name), verb)
}

// PrintWarning writes a warning line to stdout.
func PrintWarning(msg string) {
	if !Styled() {
		fmt.Printf("WARNING: %s\n", msg)
		return
	}
	pterm.Warning.Println(msg)
}
