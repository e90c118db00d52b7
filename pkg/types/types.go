package types

import "time"

// Section identifies one of the four backup sections.
type Section string

const (
	SectionDotfiles Section = "dotfiles"
	SectionConfigs  Section = "configs"
	SectionPackages Section = "packages"
	SectionFonts    Section = "fonts"
)

// Sections lists all sections in the order backup-all and reinstall-all
// process them.
var Sections = []Section{SectionDotfiles, SectionPackages, SectionFonts, SectionConfigs}

// CopyItem is one resolved (installed path, backup path) pair.
type CopyItem struct {
	// Source is the path copied from
	Source string

	// Dest is the path copied to
	Dest string

	// IsDir reports whether Source is a directory tree
	IsDir bool
}

// CopyResult records the outcome of copying a single item.
type CopyResult struct {
	Item    CopyItem
	Success bool
	Skipped bool
	Error   error
}

// SectionResult aggregates the outcome of one backup or reinstall section.
type SectionResult struct {
	Section  Section
	Copies   []CopyResult
	Commands []CommandResult
	Duration time.Duration
}

// Failed returns true if any copy in the section failed. Command
// failures are not counted: absent package managers are expected, their
// failed dump/replay commands are reported and skipped, never fatal.
func (r *SectionResult) Failed() bool {
	for _, c := range r.Copies {
		if !c.Success && !c.Skipped {
			return true
		}
	}
	return false
}

// CommandResult records the outcome of one external command, typically a
// package-manager dump or replay.
type CommandResult struct {
	Manager string
	Command string
	Dest    string
	Success bool
	Skipped bool
	Error   error
}
