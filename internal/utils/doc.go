// Package utils hosts shared infrastructure for the codealong CLI: the zap
// logger factory, the viper-backed configuration loader, and context plumbing
// for command execution.
package utils
