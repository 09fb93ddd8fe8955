// Package gitrepo binds blame queries to an on-disk Git repository.
//
// It exposes Repository for opening a working copy and resolving revision
// references through git rev-parse, RevisionIdentifier as the opaque
// 40-character hash token those lookups produce, and remote URL parsing used
// to derive hosting metadata.
package gitrepo
