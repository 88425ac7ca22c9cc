package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
)

const (
	gitBranchSubcommandNameConstant   = "branch"
	gitRevParseSubcommandNameConstant = "rev-parse"
	gitRevListSubcommandNameConstant  = "rev-list"
	gitStatusSubcommandNameConstant   = "status"
	gitStashSubcommandNameConstant    = "stash"
	gitDescribeSubcommandNameConstant = "describe"
	gitUpstreamReferenceConstant      = "@{u}"
	gitHeadReferenceConstant          = "HEAD"
	gitAbbrevRefFlagConstant          = "--abbrev-ref"
)

const (
	gitBranchStartTemplateConstant               = "Listing local branches in %s"
	gitBranchSuccessTemplateConstant             = "Listed local branches in %s"
	gitBranchFailureTemplateConstant             = "Failed to list local branches in %s (exit code %d%s)"
	gitBranchExecutionFailureTemplateConstant    = "Unable to list local branches in %s: %s"
	gitUpstreamStartTemplateConstant             = "Checking upstream branch configuration in %s"
	gitUpstreamSuccessTemplateConstant           = "Checked upstream branch configuration in %s"
	gitUpstreamFailureTemplateConstant           = "No upstream branch configured in %s (exit code %d%s)"
	gitUpstreamExecutionFailureTemplateConstant  = "Unable to check upstream branch configuration in %s: %s"
	gitRevisionStartTemplateConstant             = "Resolving %s in %s"
	gitRevisionSuccessTemplateConstant           = "Resolved %s in %s"
	gitRevisionFailureTemplateConstant           = "Failed to resolve %s in %s (exit code %d%s)"
	gitRevisionExecutionFailureTemplateConstant  = "Unable to resolve %s in %s: %s"
	gitRevListStartTemplateConstant              = "Counting ahead/behind commits in %s"
	gitRevListSuccessTemplateConstant            = "Counted ahead/behind commits in %s"
	gitRevListFailureTemplateConstant            = "Failed to count ahead/behind commits in %s (exit code %d%s)"
	gitRevListExecutionFailureTemplateConstant   = "Unable to count ahead/behind commits in %s: %s"
	gitStatusStartTemplateConstant               = "Reviewing working tree status in %s"
	gitStatusSuccessTemplateConstant             = "Collected working tree status for %s"
	gitStatusFailureTemplateConstant             = "Failed to review working tree status in %s (exit code %d%s)"
	gitStatusExecutionFailureTemplateConstant    = "Unable to review working tree status in %s: %s"
	gitStashStartTemplateConstant                = "Listing stashes in %s"
	gitStashSuccessTemplateConstant              = "Listed stashes in %s"
	gitStashFailureTemplateConstant              = "Failed to list stashes in %s (exit code %d%s)"
	gitStashExecutionFailureTemplateConstant     = "Unable to list stashes in %s: %s"
	gitDescribeStartTemplateConstant             = "Checking for an exact tag in %s"
	gitDescribeSuccessTemplateConstant           = "Checked for an exact tag in %s"
	gitDescribeFailureTemplateConstant           = "No exact tag found in %s (exit code %d%s)"
	gitDescribeExecutionFailureTemplateConstant  = "Unable to check for an exact tag in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitBranchSubcommandNameConstant:
		return formatter.renderStaged(command, result, failure, stage,
			gitBranchStartTemplateConstant, gitBranchSuccessTemplateConstant,
			gitBranchFailureTemplateConstant, gitBranchExecutionFailureTemplateConstant)
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitRevListSubcommandNameConstant:
		return formatter.renderStaged(command, result, failure, stage,
			gitRevListStartTemplateConstant, gitRevListSuccessTemplateConstant,
			gitRevListFailureTemplateConstant, gitRevListExecutionFailureTemplateConstant)
	case gitStatusSubcommandNameConstant:
		return formatter.renderStaged(command, result, failure, stage,
			gitStatusStartTemplateConstant, gitStatusSuccessTemplateConstant,
			gitStatusFailureTemplateConstant, gitStatusExecutionFailureTemplateConstant)
	case gitStashSubcommandNameConstant:
		return formatter.renderStaged(command, result, failure, stage,
			gitStashStartTemplateConstant, gitStashSuccessTemplateConstant,
			gitStashFailureTemplateConstant, gitStashExecutionFailureTemplateConstant)
	case gitDescribeSubcommandNameConstant:
		return formatter.renderStaged(command, result, failure, stage,
			gitDescribeStartTemplateConstant, gitDescribeSuccessTemplateConstant,
			gitDescribeFailureTemplateConstant, gitDescribeExecutionFailureTemplateConstant)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if containsArgument(arguments, gitAbbrevRefFlagConstant) && containsArgument(arguments, gitUpstreamReferenceConstant) {
		return formatter.renderStaged(command, result, failure, stage,
			gitUpstreamStartTemplateConstant, gitUpstreamSuccessTemplateConstant,
			gitUpstreamFailureTemplateConstant, gitUpstreamExecutionFailureTemplateConstant)
	}

	reference := gitHeadReferenceConstant
	if len(arguments) > 1 {
		reference = arguments[len(arguments)-1]
	}
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRevisionStartTemplateConstant, reference, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitRevisionSuccessTemplateConstant, reference, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitRevisionFailureTemplateConstant, reference, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitRevisionExecutionFailureTemplateConstant, reference, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) renderStaged(command ShellCommand, result ExecutionResult, failure error, stage messageStage, startTemplate string, successTemplate string, failureTemplate string, executionFailureTemplate string) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(startTemplate, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(successTemplate, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(failureTemplate, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(executionFailureTemplate, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return commandLabel
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory))
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func containsArgument(arguments []string, expected string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == expected {
			return true
		}
	}
	return false
}
