// Package cli constructs the repoinsight command-line interface, wiring the
// Cobra command hierarchy, configuration loader, structured logging, and the
// lazily created backend client shared by every subcommand.
package cli
