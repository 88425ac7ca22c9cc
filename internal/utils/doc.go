// Package utils bundles shared plumbing for the repostate CLI: structured
// logger construction, Viper-backed configuration loading, and writer
// helpers reused across commands.
package utils
