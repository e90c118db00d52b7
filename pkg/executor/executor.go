// Package executor runs shell commands for dotsnap: inclusion-condition
// checks and package-manager dump/replay commands. Commands are run
// through `sh -c` so user-supplied pipelines work unchanged.
package executor

import (
	"bytes"
	"context"
	goerrors "errors"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotsnap/pkg/errors"
	"github.com/arthur-debert/dotsnap/pkg/logging"
)

// DefaultTimeout bounds a single external command.
const DefaultTimeout = 5 * time.Minute

// Result holds the output and exit status from a command execution.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes shell commands.
type Runner interface {
	// Run executes command through `sh -c` and captures its output.
	// A non-zero exit status is not an error; it is reported in the
	// Result. An error means the command could not be run at all.
	Run(ctx context.Context, command string) (*Result, error)
}

// ShellRunner is the production Runner backed by os/exec.
type ShellRunner struct {
	logger  zerolog.Logger
	timeout time.Duration
}

// NewShellRunner creates a ShellRunner with the default timeout.
func NewShellRunner() *ShellRunner {
	return &ShellRunner{
		logger:  logging.GetLogger("executor"),
		timeout: DefaultTimeout,
	}
}

// WithTimeout sets the per-command timeout.
func (r *ShellRunner) WithTimeout(d time.Duration) *ShellRunner {
	r.timeout = d
	return r
}

// Run implements Runner.
func (r *ShellRunner) Run(ctx context.Context, command string) (*Result, error) {
	if strings.TrimSpace(command) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "empty command")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.logger.Debug().Str("command", command).Msg("Executing command")

	cmd := exec.CommandContext(ctx, "sh", "-c", command)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if goerrors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			r.logger.Debug().
				Str("command", command).
				Int("exitCode", result.ExitCode).
				Str("stderr", result.Stderr).
				Msg("Command exited non-zero")
			return result, nil
		}
		return nil, errors.Wrapf(err, errors.ErrCommandRun, "failed to run command %q", command)
	}

	r.logger.Trace().
		Str("command", command).
		Int("stdoutBytes", stdout.Len()).
		Msg("Command completed")

	return result, nil
}

// Succeeded reports whether the command exited zero.
func (r *Result) Succeeded() bool {
	return r.ExitCode == 0
}
