package blame

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/djhaskin987/codealong/internal/execshell"
	"github.com/djhaskin987/codealong/internal/gitrepo"
)

const (
	blameSubcommandConstant           = "blame"
	suppressScoreFlagConstant         = "-s"
	longRevisionFlagConstant          = "-l"
	porcelainFlagConstant             = "-p"
	incrementalFlagConstant           = "--incremental"
	churnCutoffFlagTemplateConstant   = "--since=%d.days"
	pathSeparatorFlagConstant         = "--"
	launcherRequiredMessageConstant   = "git launcher required"
	repositoryRequiredMessageConstant = "open repository required"
	filePathRequiredMessageConstant   = "file path required"
	blameDiagnosticsTemplateConstant  = "blame reported: %s"
)

// BlameError reports diagnostic text the external blame tool wrote to standard
// error before the requested line was found. A session that produced one
// should not be queried again.
type BlameError struct {
	Diagnostics string
}

// Error describes the diagnostic output.
func (blameFailure *BlameError) Error() string {
	return fmt.Sprintf(blameDiagnosticsTemplateConstant, strings.TrimSpace(blameFailure.Diagnostics))
}

// GitLauncher starts git commands whose output is consumed incrementally.
type GitLauncher interface {
	LaunchGit(executionContext context.Context, details execshell.CommandDetails) (*execshell.StartedProcess, error)
}

// RepositoryHandle is the surface of an open repository blame sessions require.
type RepositoryHandle interface {
	Path() string
}

// Session lazily resolves line numbers to revisions from one incremental
// blame run. Lookups mutate internal cursors, so concurrent use of a single
// session is serialized internally; callers wanting parallelism open one
// session per worker.
type Session struct {
	startedProcess *execshell.StartedProcess
	outputReader   *bufio.Reader
	errorReader    *bufio.Reader
	lineRevisions  map[uint]gitrepo.RevisionIdentifier
	scanExhausted  bool
	terminalError  error
	closed         bool
	stateMutex     sync.Mutex
}

// NewSession spawns the blame subprocess for one file at one ancestor
// revision, bounded to the churn-cutoff window. The session owns the process
// and both captured streams until Close.
func NewSession(executionContext context.Context, gitLauncher GitLauncher, repository RepositoryHandle, ancestorRevision gitrepo.RevisionIdentifier, filePath string, churnCutoffDays uint) (*Session, error) {
	if gitLauncher == nil {
		return nil, errors.New(launcherRequiredMessageConstant)
	}
	if repository == nil {
		return nil, errors.New(repositoryRequiredMessageConstant)
	}
	if len(strings.TrimSpace(filePath)) == 0 {
		return nil, errors.New(filePathRequiredMessageConstant)
	}

	blameArguments := []string{
		blameSubcommandConstant,
		ancestorRevision.String(),
		suppressScoreFlagConstant,
		longRevisionFlagConstant,
		porcelainFlagConstant,
		incrementalFlagConstant,
		fmt.Sprintf(churnCutoffFlagTemplateConstant, churnCutoffDays),
		pathSeparatorFlagConstant,
		filePath,
	}

	startedProcess, launchError := gitLauncher.LaunchGit(executionContext, execshell.CommandDetails{
		Arguments:        blameArguments,
		WorkingDirectory: repository.Path(),
	})
	if launchError != nil {
		return nil, launchError
	}

	return &Session{
		startedProcess: startedProcess,
		outputReader:   bufio.NewReader(startedProcess.StandardOutput),
		errorReader:    bufio.NewReader(startedProcess.StandardError),
		lineRevisions:  map[uint]gitrepo.RevisionIdentifier{},
	}, nil
}

// newSessionFromStreams builds a session over raw streams with no subprocess,
// for exercising scan behavior against fixtures.
func newSessionFromStreams(outputStream io.Reader, errorStream io.Reader) *Session {
	return &Session{
		outputReader:  bufio.NewReader(outputStream),
		errorReader:   bufio.NewReader(errorStream),
		lineRevisions: map[uint]gitrepo.RevisionIdentifier{},
	}
}

// LookupLine resolves the revision that last touched the given original line
// number. A cached line answers without I/O; otherwise the output stream is
// scanned forward only as far as needed. A line with no blame entry within
// the churn window reports found=false with a nil error.
func (session *Session) LookupLine(lineNumber uint) (gitrepo.RevisionIdentifier, bool, error) {
	session.stateMutex.Lock()
	defer session.stateMutex.Unlock()

	if resolvedRevision, alreadyResolved := session.lineRevisions[lineNumber]; alreadyResolved {
		return resolvedRevision, true, nil
	}
	return session.scanForLine(lineNumber)
}

func (session *Session) scanForLine(lineNumber uint) (gitrepo.RevisionIdentifier, bool, error) {
	if session.scanExhausted {
		return "", false, session.terminalError
	}

	for {
		rawLine, readError := session.outputReader.ReadString('\n')
		if len(rawLine) > 0 {
			if parsedRecord, matched := ParseRecord(rawLine); matched {
				if _, alreadyResolved := session.lineRevisions[parsedRecord.OriginalLineNumber]; !alreadyResolved {
					session.lineRevisions[parsedRecord.OriginalLineNumber] = parsedRecord.Revision
				}
				if parsedRecord.OriginalLineNumber == lineNumber {
					return session.lineRevisions[lineNumber], true, nil
				}
			}
		}
		if readError != nil {
			if errors.Is(readError, io.EOF) {
				break
			}
			session.scanExhausted = true
			session.terminalError = readError
			return "", false, readError
		}
	}

	session.scanExhausted = true

	diagnosticBytes, drainError := io.ReadAll(session.errorReader)
	if drainError != nil {
		session.terminalError = drainError
		return "", false, drainError
	}
	if len(diagnosticBytes) > 0 {
		session.terminalError = &BlameError{Diagnostics: string(diagnosticBytes)}
		return "", false, session.terminalError
	}
	return "", false, nil
}

// ProcessIdentifier reports the operating-system identifier of the owned
// blame subprocess, or zero when the session has no live process.
func (session *Session) ProcessIdentifier() int {
	return session.startedProcess.ProcessIdentifier()
}

// Close terminates the blame subprocess and waits for it to be reaped.
// It must be called on every exit path once a session was constructed,
// whether or not all lines were resolved.
func (session *Session) Close() error {
	session.stateMutex.Lock()
	defer session.stateMutex.Unlock()

	if session.closed {
		return nil
	}
	session.closed = true
	return session.startedProcess.Terminate()
}
