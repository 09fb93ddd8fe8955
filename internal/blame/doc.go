// Package blame answers "which revision last touched line N" by streaming the
// incremental porcelain output of git blame.
//
// A Session owns one blame subprocess and resolves line numbers lazily,
// reading only as much output as each lookup requires and caching every
// line-to-revision pair it passes. ParseRecord is the pure matcher for the
// one record shape the incremental format emits that this package consumes.
package blame
