package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/repostate/internal/execshell"
	"github.com/temirov/repostate/internal/ui"
)

func newObservedEventLogger(t *testing.T) (*ui.ConsoleCommandEventLogger, *observer.ObservedLogs) {
	t.Helper()
	observedCore, observedLogs := observer.New(zap.InfoLevel)
	return ui.NewConsoleCommandEventLogger(zap.New(observedCore)), observedLogs
}

func branchCommandFixture() execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{"branch", "--no-color"},
			WorkingDirectory: "/workspace/tool",
		},
	}
}

func TestConsoleCommandEventLoggerLifecycle(t *testing.T) {
	t.Parallel()

	eventLogger, observedLogs := newObservedEventLogger(t)
	command := branchCommandFixture()

	eventLogger.CommandStarted(command)
	eventLogger.CommandCompleted(command, execshell.ExecutionResult{})

	logEntries := observedLogs.All()
	require.Len(t, logEntries, 2)
	require.Equal(t, zap.InfoLevel, logEntries[0].Level)
	require.Equal(t, "Listing local branches in /workspace/tool", logEntries[0].Message)
	require.Equal(t, "Listed local branches in /workspace/tool", logEntries[1].Message)
}

func TestConsoleCommandEventLoggerFailures(t *testing.T) {
	t.Parallel()

	eventLogger, observedLogs := newObservedEventLogger(t)
	command := branchCommandFixture()

	eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 1, StandardError: "boom"})
	eventLogger.CommandExecutionFailed(command, errors.New("git missing"))

	logEntries := observedLogs.All()
	require.Len(t, logEntries, 2)
	require.Equal(t, zap.WarnLevel, logEntries[0].Level)
	require.Contains(t, logEntries[0].Message, "exit code 1")
	require.Equal(t, zap.WarnLevel, logEntries[1].Level)
	require.Contains(t, logEntries[1].Message, "git missing")
}

func TestNewConsoleCommandEventLoggerNilLogger(t *testing.T) {
	t.Parallel()

	eventLogger := ui.NewConsoleCommandEventLogger(nil)
	require.NotNil(t, eventLogger)
	eventLogger.CommandStarted(branchCommandFixture())
}
