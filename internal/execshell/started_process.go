package execshell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

const (
	standardOutputStreamNameConstant   = "standard output"
	standardErrorStreamNameConstant    = "standard error"
	processSpawnErrorTemplateConstant  = "unable to spawn %s: %v"
	streamCaptureErrorTemplateConstant = "unable to capture %s: %v"
)

// ProcessSpawnError indicates the external tool could not be started.
type ProcessSpawnError struct {
	CommandName string
	Cause       error
}

// Error describes the spawn failure.
func (spawnError ProcessSpawnError) Error() string {
	return fmt.Sprintf(processSpawnErrorTemplateConstant, spawnError.CommandName, spawnError.Cause)
}

// Unwrap exposes the underlying cause.
func (spawnError ProcessSpawnError) Unwrap() error {
	return spawnError.Cause
}

// StreamCaptureError indicates a standard stream could not be captured as a pipe.
type StreamCaptureError struct {
	StreamName string
	Cause      error
}

// Error describes the capture failure.
func (captureError StreamCaptureError) Error() string {
	return fmt.Sprintf(streamCaptureErrorTemplateConstant, captureError.StreamName, captureError.Cause)
}

// Unwrap exposes the underlying cause.
func (captureError StreamCaptureError) Unwrap() error {
	return captureError.Cause
}

// StartedProcess owns a launched child process together with its captured streams.
// The owner must call Terminate exactly once when the process is no longer needed.
type StartedProcess struct {
	processHandle  *exec.Cmd
	StandardOutput io.ReadCloser
	StandardError  io.ReadCloser
}

// NewStartedProcess wraps an already-started command and its captured streams.
func NewStartedProcess(processHandle *exec.Cmd, standardOutput io.ReadCloser, standardError io.ReadCloser) *StartedProcess {
	return &StartedProcess{
		processHandle:  processHandle,
		StandardOutput: standardOutput,
		StandardError:  standardError,
	}
}

// ProcessIdentifier reports the operating-system identifier of the child process.
func (process *StartedProcess) ProcessIdentifier() int {
	if process == nil || process.processHandle == nil || process.processHandle.Process == nil {
		return 0
	}
	return process.processHandle.Process.Pid
}

// Terminate forcibly stops the child process and waits for it to be reaped.
// The kill-then-wait sequence prevents defunct process-table entries from
// outliving the owner.
func (process *StartedProcess) Terminate() error {
	if process == nil || process.processHandle == nil || process.processHandle.Process == nil {
		return nil
	}

	killError := process.processHandle.Process.Kill()
	waitError := process.processHandle.Wait()

	if killError != nil && !errors.Is(killError, os.ErrProcessDone) {
		return killError
	}
	if waitError != nil {
		exitFailure := &exec.ExitError{}
		if !errors.As(waitError, &exitFailure) {
			return waitError
		}
	}
	return nil
}
