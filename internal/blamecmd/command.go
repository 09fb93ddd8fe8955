package blamecmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/djhaskin987/codealong/internal/blame"
	"github.com/djhaskin987/codealong/internal/execshell"
	"github.com/djhaskin987/codealong/internal/gitrepo"
	"github.com/djhaskin987/codealong/internal/hosting"
)

const (
	commandUseConstant              = "blame <file>"
	commandShortDescriptionConstant = "Resolve which revision last touched a line of a file"
	commandLongDescriptionConstant  = "blame streams git's incremental blame output and stops as soon as the requested line is attributed, bounded by the configured churn cutoff."
	commandArgumentCountConstant    = 1

	flagRevisionNameConstant        = "revision"
	flagRevisionDescriptionConstant = "Ancestor revision to blame from."
	flagLineNameConstant            = "line"
	flagLineDescriptionConstant     = "Original line number to resolve."
	flagCutoffNameConstant          = "cutoff-days"
	flagCutoffDescriptionConstant   = "Only scan history within this many days (0 uses the configured default)."
	flagRepositoryNameConstant      = "repository"
	flagRepositoryDescription       = "Path inside the repository to query (defaults to the configured repository)."

	missingRevisionMessageConstant = "a revision reference is required"
	missingLineMessageConstant     = "a positive line number is required"

	resolvedLineTemplateConstant   = "%s\n"
	unresolvedLineTemplateConstant = "no blame entry for line %d of %s within %d days\n"

	hostingRepoDebugMessageConstant = "resolved hosting repository"
	logFieldFullNameConstant        = "full_name"
	logFieldHTMLURLConstant         = "html_url"
	logFieldGitURLConstant          = "git_url"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the persisted blame command configuration.
type ConfigurationProvider func() CommandConfiguration

// GitExecutor describes the shell execution surface the blame command requires.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	LaunchGit(executionContext context.Context, details execshell.CommandDetails) (*execshell.StartedProcess, error)
}

// CommandBuilder assembles the blame cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	GitExecutor           GitExecutor
}

// Build constructs the cobra command for blame lookups.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ExactArgs(commandArgumentCountConstant),
		RunE:  builder.run,
	}

	registerCommandFlags(command.Flags())

	return command, nil
}

func registerCommandFlags(flagSet *pflag.FlagSet) {
	flagSet.String(flagRevisionNameConstant, "", flagRevisionDescriptionConstant)
	flagSet.Uint(flagLineNameConstant, 0, flagLineDescriptionConstant)
	flagSet.Uint(flagCutoffNameConstant, 0, flagCutoffDescriptionConstant)
	flagSet.String(flagRepositoryNameConstant, "", flagRepositoryDescription)
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) (runError error) {
	configuration := builder.resolveConfiguration()

	revisionReference, _ := command.Flags().GetString(flagRevisionNameConstant)
	if len(revisionReference) == 0 {
		return errors.New(missingRevisionMessageConstant)
	}
	requestedLine, _ := command.Flags().GetUint(flagLineNameConstant)
	if requestedLine == 0 {
		return errors.New(missingLineMessageConstant)
	}
	cutoffDays, _ := command.Flags().GetUint(flagCutoffNameConstant)
	if cutoffDays == 0 {
		cutoffDays = configuration.ChurnCutoffDays
	}
	repositoryPath, _ := command.Flags().GetString(flagRepositoryNameConstant)
	if len(repositoryPath) == 0 {
		repositoryPath = configuration.Repository
	}
	filePath := arguments[0]

	logger := builder.resolveLogger()
	gitExecutor, executorError := builder.resolveGitExecutor(logger)
	if executorError != nil {
		return executorError
	}

	executionContext := command.Context()
	repository, openError := gitrepo.OpenRepository(executionContext, repositoryPath, gitExecutor)
	if openError != nil {
		return openError
	}

	builder.describeHostingRepository(executionContext, logger, repository, configuration.Remote)

	ancestorRevision, resolveError := repository.ResolveRevision(executionContext, revisionReference)
	if resolveError != nil {
		return resolveError
	}

	session, sessionError := blame.NewSession(executionContext, gitExecutor, repository, ancestorRevision, filePath, cutoffDays)
	if sessionError != nil {
		return sessionError
	}
	defer func() {
		runError = errors.Join(runError, session.Close())
	}()

	resolvedRevision, lineFound, lookupError := session.LookupLine(requestedLine)
	if lookupError != nil {
		return lookupError
	}

	if lineFound {
		fmt.Fprintf(command.OutOrStdout(), resolvedLineTemplateConstant, resolvedRevision)
	} else {
		fmt.Fprintf(command.OutOrStdout(), unresolvedLineTemplateConstant, requestedLine, filePath, cutoffDays)
	}
	return nil
}

// describeHostingRepository logs the hosting coordinates of the configured
// remote when one exists. Lookup failures are not fatal; a repository without
// remotes is still fully blameable.
func (builder *CommandBuilder) describeHostingRepository(executionContext context.Context, logger *zap.Logger, repository *gitrepo.Repository, remoteName string) {
	remoteURLText, remoteError := repository.RemoteURL(executionContext, remoteName)
	if remoteError != nil {
		return
	}
	parsedRemoteURL, parseError := gitrepo.ParseRemoteURL(remoteURLText)
	if parseError != nil {
		return
	}
	hostingRepository := hosting.RepoFromRemoteURL(parsedRemoteURL)
	logger.Debug(hostingRepoDebugMessageConstant,
		zap.String(logFieldFullNameConstant, hostingRepository.FullName),
		zap.String(logFieldHTMLURLConstant, hostingRepository.HTMLURL),
		zap.String(logFieldGitURLConstant, hostingRepository.GitURL),
	)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveGitExecutor(logger *zap.Logger) (GitExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}
	return execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
}
