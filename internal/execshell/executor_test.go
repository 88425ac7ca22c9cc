package execshell_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/repostate/internal/execshell"
)

type recordingCommandRunner struct {
	result   execshell.ExecutionResult
	runError error
	commands []execshell.ShellCommand
}

func (runner *recordingCommandRunner) Run(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.commands = append(runner.commands, command)
	return runner.result, runner.runError
}

type recordingEventObserver struct {
	started         []execshell.ShellCommand
	completed       []execshell.ShellCommand
	executionFailed []execshell.ShellCommand
}

func (observer *recordingEventObserver) CommandStarted(command execshell.ShellCommand) {
	observer.started = append(observer.started, command)
}

func (observer *recordingEventObserver) CommandCompleted(command execshell.ShellCommand, _ execshell.ExecutionResult) {
	observer.completed = append(observer.completed, command)
}

func (observer *recordingEventObserver) CommandExecutionFailed(command execshell.ShellCommand, _ error) {
	observer.executionFailed = append(observer.executionFailed, command)
}

func TestNewShellExecutorValidation(t *testing.T) {
	t.Parallel()

	_, missingLoggerError := execshell.NewShellExecutor(nil, &recordingCommandRunner{})
	require.ErrorIs(t, missingLoggerError, execshell.ErrLoggerNotConfigured)

	_, missingRunnerError := execshell.NewShellExecutor(zap.NewNop(), nil)
	require.ErrorIs(t, missingRunnerError, execshell.ErrCommandRunnerNotConfigured)
}

func TestExecuteGitSuccess(t *testing.T) {
	t.Parallel()

	runner := &recordingCommandRunner{result: execshell.ExecutionResult{StandardOutput: "* main\n"}}
	observer := &recordingEventObserver{}
	executor, constructionError := execshell.NewShellExecutorWithObserver(zap.NewNop(), runner, observer)
	require.NoError(t, constructionError)

	result, executionError := executor.ExecuteGit(context.Background(), execshell.CommandDetails{
		Arguments:        []string{"branch", "--no-color"},
		WorkingDirectory: "/workspace/tool",
	})
	require.NoError(t, executionError)
	require.Equal(t, "* main\n", result.StandardOutput)

	require.Len(t, runner.commands, 1)
	require.Equal(t, execshell.CommandGit, runner.commands[0].Name)
	require.Equal(t, "/workspace/tool", runner.commands[0].Details.WorkingDirectory)

	require.Len(t, observer.started, 1)
	require.Len(t, observer.completed, 1)
	require.Empty(t, observer.executionFailed)
}

func TestExecuteGitNonZeroExit(t *testing.T) {
	t.Parallel()

	runner := &recordingCommandRunner{result: execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository"}}
	executor, constructionError := execshell.NewShellExecutor(zap.NewNop(), runner)
	require.NoError(t, constructionError)

	_, executionError := executor.ExecuteGit(context.Background(), execshell.CommandDetails{Arguments: []string{"status", "--porcelain"}})
	require.Error(t, executionError)

	commandFailure := execshell.CommandFailedError{}
	require.ErrorAs(t, executionError, &commandFailure)
	require.Equal(t, 128, commandFailure.Result.ExitCode)
	require.Contains(t, commandFailure.Error(), "exited with code 128")
}

func TestExecuteGitRunFailure(t *testing.T) {
	t.Parallel()

	rootCause := errors.New("executable not found")
	runner := &recordingCommandRunner{runError: rootCause}
	observer := &recordingEventObserver{}
	executor, constructionError := execshell.NewShellExecutorWithObserver(zap.NewNop(), runner, observer)
	require.NoError(t, constructionError)

	_, executionError := executor.ExecuteGit(context.Background(), execshell.CommandDetails{Arguments: []string{"branch"}})
	require.Error(t, executionError)

	executionFailure := execshell.CommandExecutionError{}
	require.ErrorAs(t, executionError, &executionFailure)
	require.ErrorIs(t, executionError, rootCause)
	require.Len(t, observer.executionFailed, 1)
	require.Empty(t, observer.completed)
}
