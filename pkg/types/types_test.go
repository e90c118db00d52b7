package types_test

import (
	"fmt"
	"testing"

	"github.com/arthur-debert/dotsnap/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestSectionResultFailedOnCopyError(t *testing.T) {
	r := &types.SectionResult{
		Section: types.SectionDotfiles,
		Copies: []types.CopyResult{
			{Item: types.CopyItem{Source: "/home/user/.bashrc"}, Success: true},
			{Item: types.CopyItem{Source: "/home/user/.ssh"}, Error: fmt.Errorf("permission denied")},
		},
	}
	assert.True(t, r.Failed())
}

func TestSectionResultSkippedCopiesDoNotFail(t *testing.T) {
	r := &types.SectionResult{
		Section: types.SectionDotfiles,
		Copies: []types.CopyResult{
			{Item: types.CopyItem{Source: "/home/user/.bashrc"}, Success: true, Skipped: true},
		},
	}
	assert.False(t, r.Failed())
}

func TestSectionResultCommandErrorsDoNotFail(t *testing.T) {
	// Absent package managers surface as failed dump commands; they are
	// reported but must not fail the run.
	r := &types.SectionResult{
		Section: types.SectionPackages,
		Commands: []types.CommandResult{
			{Manager: "pip", Success: true},
			{Manager: "brew", Error: fmt.Errorf("brew dump exited 127")},
			{Manager: "apm", Error: fmt.Errorf("apm dump exited 127")},
		},
	}
	assert.False(t, r.Failed())
}
