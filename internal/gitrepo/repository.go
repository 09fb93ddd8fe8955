package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/djhaskin987/codealong/internal/execshell"
)

const (
	gitRevParseSubcommandConstant         = "rev-parse"
	gitWorkTreeFlagConstant               = "--is-inside-work-tree"
	gitTopLevelFlagConstant               = "--show-toplevel"
	gitVerifyFlagConstant                 = "--verify"
	gitQuietFlagConstant                  = "--quiet"
	gitRemoteSubcommandConstant           = "remote"
	gitRemoteGetURLSubcommandConstant     = "get-url"
	gitCommitPeelSuffixConstant           = "^{commit}"
	insideWorkTreeOutputConstant          = "true"
	repositoryOpenErrorTemplateConstant   = "unable to open repository at %s: %w"
	notARepositoryMessageTemplateConstant = "%s is not inside a git work tree"
	revisionResolveErrorTemplateConstant  = "unable to resolve revision %s: %w"
	remoteLookupErrorTemplateConstant     = "unable to read remote %s: %w"
	repositoryPathRequiredMessageConstant = "repository path required"
	executorRequiredMessageConstant       = "git executor required"
	revisionReferenceRequiredConstant     = "revision reference required"
)

// GitExecutor describes the subset of shell execution repository operations require.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Repository represents an opened git working copy rooted at a canonical path.
type Repository struct {
	topLevelPath string
	gitExecutor  GitExecutor
}

// OpenRepository validates the candidate path and returns a Repository rooted at its top level.
func OpenRepository(executionContext context.Context, candidatePath string, gitExecutor GitExecutor) (*Repository, error) {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return nil, errors.New(repositoryPathRequiredMessageConstant)
	}
	if gitExecutor == nil {
		return nil, errors.New(executorRequiredMessageConstant)
	}

	workTreeResult, workTreeError := gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitWorkTreeFlagConstant},
		WorkingDirectory: trimmedPath,
	})
	if workTreeError != nil {
		return nil, fmt.Errorf(repositoryOpenErrorTemplateConstant, trimmedPath, workTreeError)
	}
	if strings.TrimSpace(workTreeResult.StandardOutput) != insideWorkTreeOutputConstant {
		return nil, fmt.Errorf(notARepositoryMessageTemplateConstant, trimmedPath)
	}

	topLevelResult, topLevelError := gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitTopLevelFlagConstant},
		WorkingDirectory: trimmedPath,
	})
	if topLevelError != nil {
		return nil, fmt.Errorf(repositoryOpenErrorTemplateConstant, trimmedPath, topLevelError)
	}

	return &Repository{
		topLevelPath: strings.TrimSpace(topLevelResult.StandardOutput),
		gitExecutor:  gitExecutor,
	}, nil
}

// Path returns the repository's on-disk top-level location.
func (repository *Repository) Path() string {
	return repository.topLevelPath
}

// ResolveRevision resolves a revision reference to its commit identifier.
func (repository *Repository) ResolveRevision(executionContext context.Context, reference string) (RevisionIdentifier, error) {
	trimmedReference := strings.TrimSpace(reference)
	if len(trimmedReference) == 0 {
		return "", errors.New(revisionReferenceRequiredConstant)
	}

	resolveResult, resolveError := repository.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitQuietFlagConstant, gitVerifyFlagConstant, trimmedReference + gitCommitPeelSuffixConstant},
		WorkingDirectory: repository.topLevelPath,
	})
	if resolveError != nil {
		return "", fmt.Errorf(revisionResolveErrorTemplateConstant, trimmedReference, resolveError)
	}

	resolvedIdentifier, parseError := ParseRevisionIdentifier(resolveResult.StandardOutput)
	if parseError != nil {
		return "", fmt.Errorf(revisionResolveErrorTemplateConstant, trimmedReference, parseError)
	}
	return resolvedIdentifier, nil
}

// RemoteURL reads the fetch URL configured for the named remote.
func (repository *Repository) RemoteURL(executionContext context.Context, remoteName string) (string, error) {
	remoteResult, remoteError := repository.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitRemoteGetURLSubcommandConstant, remoteName},
		WorkingDirectory: repository.topLevelPath,
	})
	if remoteError != nil {
		return "", fmt.Errorf(remoteLookupErrorTemplateConstant, remoteName, remoteError)
	}
	return strings.TrimSpace(remoteResult.StandardOutput), nil
}
