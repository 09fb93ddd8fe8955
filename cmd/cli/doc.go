// Package cli constructs the codealong command-line interface, wiring the
// cobra command hierarchy, configuration loader, and structured logging. It
// exposes NewApplication for embedding and Execute for the default entry
// point.
package cli
