package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	gitExecutableNameConstant             = "git"
	loggerNotConfiguredMessageConstant    = "logger not configured"
	runnerNotConfiguredMessageConstant    = "command runner not configured"
	launchingUnsupportedMessageConstant   = "command runner does not support launching streamed processes"
	commandFailedErrorTemplateConstant    = "%s exited with code %d%s"
	commandExecutionErrorTemplateConstant = "%s could not be executed: %v"
	commandStandardErrorSuffixTemplate    = ": %s"
	commandLabelSeparatorConstant         = " "
)

// CommandName identifies a supported executable.
type CommandName string

// Supported executables.
const (
	CommandGit CommandName = CommandName(gitExecutableNameConstant)
)

// CommandDetails describes one tool invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand pairs a CommandName with invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outcome of a buffered execution.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// Initialization sentinels.
var (
	ErrLoggerNotConfigured         = errors.New(loggerNotConfiguredMessageConstant)
	ErrCommandRunnerNotConfigured  = errors.New(runnerNotConfiguredMessageConstant)
	ErrProcessLaunchingUnsupported = errors.New(launchingUnsupportedMessageConstant)
)

// CommandRunner executes a command to completion with buffered streams.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// ProcessLauncher starts a command without waiting and captures its streams as pipes.
type ProcessLauncher interface {
	Launch(executionContext context.Context, command ShellCommand) (*StartedProcess, error)
}

// CommandFailedError reports a command that ran and exited unsuccessfully.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command.
func (failure CommandFailedError) Error() string {
	standardErrorSuffix := ""
	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) > 0 {
		standardErrorSuffix = fmt.Sprintf(commandStandardErrorSuffixTemplate, trimmedStandardError)
	}
	return fmt.Sprintf(commandFailedErrorTemplateConstant, formatCommandLabel(failure.Command), failure.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError reports a command that could not be run at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, formatCommandLabel(failure.Command), failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// ShellExecutor coordinates command execution with structured lifecycle logging.
type ShellExecutor struct {
	logger           *zap.Logger
	commandRunner    CommandRunner
	messageFormatter CommandMessageFormatter
}

// NewShellExecutor validates collaborators and assembles a ShellExecutor.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	return &ShellExecutor{
		logger:           logger,
		commandRunner:    commandRunner,
		messageFormatter: CommandMessageFormatter{},
	}, nil
}

// Execute runs the command to completion and logs its lifecycle.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.logger.Info(executor.messageFormatter.BuildStartedMessage(command))

	executionResult, runError := executor.commandRunner.Run(executionContext, command)
	if runError != nil {
		executionFailure := CommandExecutionError{Command: command, Cause: runError}
		executor.logger.Error(executor.messageFormatter.BuildExecutionFailureMessage(command, runError))
		return ExecutionResult{}, executionFailure
	}

	if executionResult.ExitCode != 0 {
		commandFailure := CommandFailedError{Command: command, Result: executionResult}
		executor.logger.Error(executor.messageFormatter.BuildFailureMessage(command, executionResult))
		return ExecutionResult{}, commandFailure
	}

	executor.logger.Info(executor.messageFormatter.BuildSuccessMessage(command))
	return executionResult, nil
}

// ExecuteGit runs git with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

// LaunchGit starts git without waiting and returns the running process with captured pipes.
// Spawn and pipe-capture failures surface as ProcessSpawnError and StreamCaptureError.
func (executor *ShellExecutor) LaunchGit(executionContext context.Context, details CommandDetails) (*StartedProcess, error) {
	command := ShellCommand{Name: CommandGit, Details: details}

	processLauncher, launcherAvailable := executor.commandRunner.(ProcessLauncher)
	if !launcherAvailable {
		return nil, ErrProcessLaunchingUnsupported
	}

	executor.logger.Info(executor.messageFormatter.BuildStartedMessage(command))

	startedProcess, launchError := processLauncher.Launch(executionContext, command)
	if launchError != nil {
		executor.logger.Error(executor.messageFormatter.BuildExecutionFailureMessage(command, launchError))
		return nil, launchError
	}
	return startedProcess, nil
}

func formatCommandLabel(command ShellCommand) string {
	labelParts := append([]string{string(command.Name)}, command.Details.Arguments...)
	return strings.Join(labelParts, commandLabelSeparatorConstant)
}
