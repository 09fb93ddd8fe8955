// Package blamecmd wires the blame lookup cobra command.
//
// It exposes CommandBuilder for assembling the command with injectable
// collaborators and CommandConfiguration for the persisted tools.blame
// settings.
package blamecmd
