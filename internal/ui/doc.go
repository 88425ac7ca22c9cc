// Package ui renders command lifecycle events for human consumption when the
// CLI runs with console logging enabled.
package ui
