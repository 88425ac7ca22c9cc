// Package manifest locates and parses the YAML repository list that declares
// the expected state of a workspace.
package manifest
