package testutil

import (
	"context"
	"strings"

	"github.com/arthur-debert/dotsnap/pkg/executor"
)

// FakeRunner is an executor.Runner that records commands and returns
// canned results matched by command prefix.
type FakeRunner struct {
	Commands []string

	// Stdout maps a command prefix to the stdout it produces.
	Stdout map[string]string

	// ExitCodes maps a command prefix to a non-zero exit code.
	ExitCodes map[string]int

	// Err, when set, is returned for every command.
	Err error
}

var _ executor.Runner = (*FakeRunner)(nil)

func (f *FakeRunner) Run(_ context.Context, command string) (*executor.Result, error) {
	f.Commands = append(f.Commands, command)
	if f.Err != nil {
		return nil, f.Err
	}
	for prefix, code := range f.ExitCodes {
		if strings.HasPrefix(command, prefix) {
			return &executor.Result{ExitCode: code}, nil
		}
	}
	for prefix, out := range f.Stdout {
		if strings.HasPrefix(command, prefix) {
			return &executor.Result{Stdout: out}, nil
		}
	}
	return &executor.Result{}, nil
}

// Ran reports whether any recorded command has the given prefix.
func (f *FakeRunner) Ran(prefix string) bool {
	for _, c := range f.Commands {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}
