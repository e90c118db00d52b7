// Package condition decides whether a configured dotfile entry is
// included in a backup or reinstall run. A condition is a shell command;
// exit status zero includes the entry, anything else skips it. An empty
// condition always includes.
package condition

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotsnap/pkg/errors"
	"github.com/arthur-debert/dotsnap/pkg/executor"
	"github.com/arthur-debert/dotsnap/pkg/logging"
)

// Direction names which condition of an entry is being evaluated.
type Direction string

const (
	DirectionBackup    Direction = "backup"
	DirectionReinstall Direction = "reinstall"
)

// Evaluator evaluates inclusion conditions.
type Evaluator struct {
	runner executor.Runner
	logger zerolog.Logger
}

// NewEvaluator creates an Evaluator on top of the given runner.
func NewEvaluator(runner executor.Runner) *Evaluator {
	return &Evaluator{
		runner: runner,
		logger: logging.GetLogger("condition"),
	}
}

// Evaluate runs the condition for an entry. entryPath is only used for
// logging. A condition that cannot be run at all counts as a skip and
// returns the error so callers can surface it.
func (e *Evaluator) Evaluate(ctx context.Context, cond string, dir Direction, entryPath string) (bool, error) {
	if cond == "" {
		return true, nil
	}

	result, err := e.runner.Run(ctx, cond)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrConditionRun,
			"failed to evaluate %s condition for %s", dir, entryPath)
	}

	if !result.Succeeded() {
		e.logger.Info().
			Str("entry", entryPath).
			Str("direction", string(dir)).
			Str("condition", cond).
			Int("exitCode", result.ExitCode).
			Msg("Condition failed, skipping entry")
		return false, nil
	}

	return true, nil
}
