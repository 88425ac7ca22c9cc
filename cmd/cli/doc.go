// Package cli wires the repostate root command: configuration loading,
// structured logging, and the compare subcommand.
package cli
