package tests

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/djhaskin987/codealong/internal/blame"
	"github.com/djhaskin987/codealong/internal/execshell"
	"github.com/djhaskin987/codealong/internal/gitrepo"
)

const (
	integrationGitExecutableConstant      = "git"
	integrationGitUnavailableSkipMessage  = "git executable not available"
	integrationInitialBranchFlagConstant  = "--initial-branch=main"
	integrationTrackedFileNameConstant    = "journal.txt"
	integrationMissingFileNameConstant    = "missing.txt"
	integrationHeadReferenceConstant      = "HEAD"
	integrationChurnCutoffDaysConstant    = 365
	integrationCommitMessageTemplate      = "append line %d"
	integrationAuthorNameEnvironment      = "GIT_AUTHOR_NAME=Integration Tester"
	integrationAuthorEmailEnvironment     = "GIT_AUTHOR_EMAIL=integration@example.com"
	integrationCommitterNameEnvironment   = "GIT_COMMITTER_NAME=Integration Tester"
	integrationCommitterEmailEnvironment  = "GIT_COMMITTER_EMAIL=integration@example.com"
	integrationAbsentLineNumberConstant   = 99
	integrationFixtureLineContentTemplate = "entry number %d\n"
	integrationFixtureCommitCountConstant = 3
)

func requireGitAvailable(testInstance *testing.T) {
	testInstance.Helper()
	if _, lookupError := exec.LookPath(integrationGitExecutableConstant); lookupError != nil {
		testInstance.Skip(integrationGitUnavailableSkipMessage)
	}
}

func runGitCommand(testInstance *testing.T, repositoryPath string, arguments ...string) string {
	testInstance.Helper()
	command := exec.Command(integrationGitExecutableConstant, arguments...)
	command.Dir = repositoryPath
	command.Env = append(os.Environ(),
		integrationAuthorNameEnvironment,
		integrationAuthorEmailEnvironment,
		integrationCommitterNameEnvironment,
		integrationCommitterEmailEnvironment,
	)
	outputBytes, runError := command.CombinedOutput()
	require.NoError(testInstance, runError, string(outputBytes))
	return strings.TrimSpace(string(outputBytes))
}

// initializeBlameFixtureRepository builds a repository whose tracked file grew
// one line per commit, so every line is attributed to a distinct revision.
func initializeBlameFixtureRepository(testInstance *testing.T) (string, []string) {
	testInstance.Helper()

	repositoryPath := testInstance.TempDir()
	runGitCommand(testInstance, repositoryPath, "init", integrationInitialBranchFlagConstant)

	trackedFilePath := filepath.Join(repositoryPath, integrationTrackedFileNameConstant)
	commitIdentifiers := make([]string, 0, integrationFixtureCommitCountConstant)
	fileContent := ""
	for lineIndex := 1; lineIndex <= integrationFixtureCommitCountConstant; lineIndex++ {
		fileContent += fmt.Sprintf(integrationFixtureLineContentTemplate, lineIndex)
		require.NoError(testInstance, os.WriteFile(trackedFilePath, []byte(fileContent), 0o644))
		runGitCommand(testInstance, repositoryPath, "add", integrationTrackedFileNameConstant)
		runGitCommand(testInstance, repositoryPath, "commit", "-m", fmt.Sprintf(integrationCommitMessageTemplate, lineIndex))
		commitIdentifiers = append(commitIdentifiers, runGitCommand(testInstance, repositoryPath, "rev-parse", integrationHeadReferenceConstant))
	}

	return repositoryPath, commitIdentifiers
}

func openFixtureRepository(testInstance *testing.T, repositoryPath string) (*execshell.ShellExecutor, *gitrepo.Repository, gitrepo.RevisionIdentifier) {
	testInstance.Helper()

	shellExecutor, executorError := execshell.NewShellExecutor(zaptest.NewLogger(testInstance), execshell.NewOSCommandRunner())
	require.NoError(testInstance, executorError)

	repository, openError := gitrepo.OpenRepository(context.Background(), repositoryPath, shellExecutor)
	require.NoError(testInstance, openError)

	headRevision, resolveError := repository.ResolveRevision(context.Background(), integrationHeadReferenceConstant)
	require.NoError(testInstance, resolveError)

	return shellExecutor, repository, headRevision
}

func TestBlameSessionResolvesLinesAgainstRealRepository(testInstance *testing.T) {
	requireGitAvailable(testInstance)
	repositoryPath, commitIdentifiers := initializeBlameFixtureRepository(testInstance)
	shellExecutor, repository, headRevision := openFixtureRepository(testInstance, repositoryPath)

	session, sessionError := blame.NewSession(context.Background(), shellExecutor, repository, headRevision, integrationTrackedFileNameConstant, integrationChurnCutoffDaysConstant)
	require.NoError(testInstance, sessionError)
	defer func() {
		require.NoError(testInstance, session.Close())
	}()

	for lineIndex := 1; lineIndex <= integrationFixtureCommitCountConstant; lineIndex++ {
		resolvedRevision, lineFound, lookupError := session.LookupLine(uint(lineIndex))
		require.NoError(testInstance, lookupError)
		require.True(testInstance, lineFound)
		require.Equal(testInstance, commitIdentifiers[lineIndex-1], resolvedRevision.String())
	}

	_, absentLineFound, absentLookupError := session.LookupLine(integrationAbsentLineNumberConstant)
	require.NoError(testInstance, absentLookupError)
	require.False(testInstance, absentLineFound)
}

func TestBlameSessionsProduceIdenticalResults(testInstance *testing.T) {
	requireGitAvailable(testInstance)
	repositoryPath, _ := initializeBlameFixtureRepository(testInstance)
	shellExecutor, repository, headRevision := openFixtureRepository(testInstance, repositoryPath)

	firstSession, firstSessionError := blame.NewSession(context.Background(), shellExecutor, repository, headRevision, integrationTrackedFileNameConstant, integrationChurnCutoffDaysConstant)
	require.NoError(testInstance, firstSessionError)
	defer func() {
		require.NoError(testInstance, firstSession.Close())
	}()

	secondSession, secondSessionError := blame.NewSession(context.Background(), shellExecutor, repository, headRevision, integrationTrackedFileNameConstant, integrationChurnCutoffDaysConstant)
	require.NoError(testInstance, secondSessionError)
	defer func() {
		require.NoError(testInstance, secondSession.Close())
	}()

	for lineIndex := integrationFixtureCommitCountConstant; lineIndex >= 1; lineIndex-- {
		firstRevision, firstFound, firstError := firstSession.LookupLine(uint(lineIndex))
		require.NoError(testInstance, firstError)
		secondRevision, secondFound, secondError := secondSession.LookupLine(uint(lineIndex))
		require.NoError(testInstance, secondError)
		require.Equal(testInstance, firstFound, secondFound)
		require.Equal(testInstance, firstRevision, secondRevision)
	}
}

func TestBlameSessionReportsDiagnosticsForUnknownPath(testInstance *testing.T) {
	requireGitAvailable(testInstance)
	repositoryPath, _ := initializeBlameFixtureRepository(testInstance)
	shellExecutor, repository, headRevision := openFixtureRepository(testInstance, repositoryPath)

	session, sessionError := blame.NewSession(context.Background(), shellExecutor, repository, headRevision, integrationMissingFileNameConstant, integrationChurnCutoffDaysConstant)
	require.NoError(testInstance, sessionError)
	defer func() {
		require.NoError(testInstance, session.Close())
	}()

	_, lineFound, lookupError := session.LookupLine(1)
	require.False(testInstance, lineFound)
	require.Error(testInstance, lookupError)

	blameFailure := &blame.BlameError{}
	require.ErrorAs(testInstance, lookupError, &blameFailure)
	require.Contains(testInstance, blameFailure.Diagnostics, integrationMissingFileNameConstant)
}

func TestBlameSessionCloseReapsSubprocess(testInstance *testing.T) {
	requireGitAvailable(testInstance)
	repositoryPath, _ := initializeBlameFixtureRepository(testInstance)
	shellExecutor, repository, headRevision := openFixtureRepository(testInstance, repositoryPath)

	session, sessionError := blame.NewSession(context.Background(), shellExecutor, repository, headRevision, integrationTrackedFileNameConstant, integrationChurnCutoffDaysConstant)
	require.NoError(testInstance, sessionError)

	processIdentifier := session.ProcessIdentifier()
	require.Greater(testInstance, processIdentifier, 0)

	require.NoError(testInstance, session.Close())
	require.Error(testInstance, syscall.Kill(processIdentifier, syscall.Signal(0)))
	require.NoError(testInstance, session.Close())
}
