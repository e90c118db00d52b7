package condition_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/dotsnap/pkg/condition"
	"github.com/arthur-debert/dotsnap/pkg/errors"
	"github.com/arthur-debert/dotsnap/pkg/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner returns canned results per command.
type fakeRunner struct {
	results map[string]*executor.Result
	err     error
}

func (f *fakeRunner) Run(_ context.Context, command string) (*executor.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.results[command]; ok {
		return r, nil
	}
	return &executor.Result{}, nil
}

func TestEmptyConditionAlwaysIncludes(t *testing.T) {
	e := condition.NewEvaluator(&fakeRunner{})

	ok, err := e.Evaluate(context.Background(), "", condition.DirectionBackup, ".vimrc")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConditionExitZeroIncludes(t *testing.T) {
	e := condition.NewEvaluator(&fakeRunner{results: map[string]*executor.Result{
		"test -f ~/.zshenv": {ExitCode: 0},
	}})

	ok, err := e.Evaluate(context.Background(), "test -f ~/.zshenv", condition.DirectionBackup, ".zshenv")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConditionNonZeroSkips(t *testing.T) {
	e := condition.NewEvaluator(&fakeRunner{results: map[string]*executor.Result{
		"false": {ExitCode: 1},
	}})

	ok, err := e.Evaluate(context.Background(), "false", condition.DirectionReinstall, ".ssh")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConditionRunFailureSkipsWithError(t *testing.T) {
	e := condition.NewEvaluator(&fakeRunner{err: errors.New(errors.ErrCommandRun, "sh not found")})

	ok, err := e.Evaluate(context.Background(), "anything", condition.DirectionBackup, ".vimrc")
	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConditionRun))
}

func TestRealShellCondition(t *testing.T) {
	e := condition.NewEvaluator(executor.NewShellRunner())

	ok, err := e.Evaluate(context.Background(), "true", condition.DirectionBackup, ".bashrc")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.Evaluate(context.Background(), "false", condition.DirectionBackup, ".bashrc")
	require.NoError(t, err)
	assert.False(t, ok)
}
