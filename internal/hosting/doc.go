// Package hosting carries plain data-transfer values describing repositories
// on a remote hosting provider.
package hosting
