// Package execshell provides structured helpers for invoking the git binary.
//
// ShellExecutor wraps a CommandRunner with lifecycle logging for buffered
// executions, and its launch path hands back StartedProcess values for
// commands whose output must be consumed as a stream, such as incremental
// blame. OSCommandRunner supplies the default os/exec backing for both.
package execshell
