// Package workspace locates git repositories beneath workspace roots for
// bulk comparison.
package workspace
