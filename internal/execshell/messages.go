package execshell

import (
	"fmt"
	"strings"
)

const (
	genericStartTemplateConstant            = "Running %s%s"
	genericSuccessTemplateConstant          = "Completed %s%s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	standardErrorSuffixTemplateConstant     = ": %s"
	emptySuffixConstant                     = ""

	blameSubcommandNameConstant    = "blame"
	revParseSubcommandNameConstant = "rev-parse"
	remoteSubcommandNameConstant   = "remote"

	blameStartTemplateConstant    = "Streaming blame for %s at %s"
	blameFailureTemplateConstant  = "Blame for %s at %s failed: %s"
	revParseStartTemplateConstant = "Resolving %s"
	revParseSuccessTemplate       = "Resolved %s"
	remoteStartTemplateConstant   = "Reading remote %s"
	remoteSuccessTemplateConstant = "Read remote %s"

	argumentSeparatorFlagConstant = "--"
	unknownArgumentLabelConstant  = "unknown"
	minimumBlameArgumentCount     = 2
	blamePathOffsetFromSeparator  = 1
	revisionArgumentIndexConstant = 1
)

// CommandMessageFormatter builds human-readable lifecycle messages for commands this tool issues.
type CommandMessageFormatter struct{}

// BuildStartedMessage describes a command that is beginning execution.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	arguments := command.Details.Arguments
	switch formatter.subcommandName(arguments) {
	case blameSubcommandNameConstant:
		return fmt.Sprintf(blameStartTemplateConstant, formatter.blamePath(arguments), formatter.argumentAtIndex(arguments, revisionArgumentIndexConstant))
	case revParseSubcommandNameConstant:
		return fmt.Sprintf(revParseStartTemplateConstant, formatter.lastArgument(arguments))
	case remoteSubcommandNameConstant:
		return fmt.Sprintf(remoteStartTemplateConstant, formatter.lastArgument(arguments))
	}
	return fmt.Sprintf(genericStartTemplateConstant, formatCommandLabel(command), formatter.workingDirectorySuffix(command))
}

// BuildSuccessMessage describes a command that completed successfully.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	arguments := command.Details.Arguments
	switch formatter.subcommandName(arguments) {
	case revParseSubcommandNameConstant:
		return fmt.Sprintf(revParseSuccessTemplate, formatter.lastArgument(arguments))
	case remoteSubcommandNameConstant:
		return fmt.Sprintf(remoteSuccessTemplateConstant, formatter.lastArgument(arguments))
	}
	return fmt.Sprintf(genericSuccessTemplateConstant, formatCommandLabel(command), formatter.workingDirectorySuffix(command))
}

// BuildFailureMessage describes a command that exited unsuccessfully.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return fmt.Sprintf(genericFailureTemplateConstant, formatCommandLabel(command), result.ExitCode, formatter.standardErrorSuffix(result.StandardError))
}

// BuildExecutionFailureMessage describes a command that could not be executed.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	arguments := command.Details.Arguments
	if formatter.subcommandName(arguments) == blameSubcommandNameConstant {
		return fmt.Sprintf(blameFailureTemplateConstant, formatter.blamePath(arguments), formatter.argumentAtIndex(arguments, revisionArgumentIndexConstant), failure)
	}
	return fmt.Sprintf(genericExecutionFailureTemplateConstant, formatCommandLabel(command), failure)
}

func (formatter CommandMessageFormatter) subcommandName(arguments []string) string {
	if len(arguments) == 0 {
		return emptySuffixConstant
	}
	return arguments[0]
}

func (formatter CommandMessageFormatter) blamePath(arguments []string) string {
	for argumentIndex, argumentValue := range arguments {
		if argumentValue == argumentSeparatorFlagConstant && argumentIndex+blamePathOffsetFromSeparator < len(arguments) {
			return arguments[argumentIndex+blamePathOffsetFromSeparator]
		}
	}
	return unknownArgumentLabelConstant
}

func (formatter CommandMessageFormatter) lastArgument(arguments []string) string {
	if len(arguments) < minimumBlameArgumentCount {
		return unknownArgumentLabelConstant
	}
	return arguments[len(arguments)-1]
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index < 0 || index >= len(arguments) {
		return unknownArgumentLabelConstant
	}
	return arguments[index]
}

func (formatter CommandMessageFormatter) workingDirectorySuffix(command ShellCommand) string {
	if len(command.Details.WorkingDirectory) == 0 {
		return emptySuffixConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, command.Details.WorkingDirectory)
}

func (formatter CommandMessageFormatter) standardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptySuffixConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}
