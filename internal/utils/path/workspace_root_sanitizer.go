// Package pathutils normalizes filesystem path inputs shared across commands.
package pathutils

import (
	"strings"
)

// WorkspaceRootSanitizer normalizes workspace root arguments consistently across commands.
type WorkspaceRootSanitizer struct {
	homeExpander *HomeExpander
}

// NewWorkspaceRootSanitizer constructs a WorkspaceRootSanitizer with default behavior.
func NewWorkspaceRootSanitizer() *WorkspaceRootSanitizer {
	return NewWorkspaceRootSanitizerWithExpander(nil)
}

// NewWorkspaceRootSanitizerWithExpander constructs a WorkspaceRootSanitizer using the provided expander.
func NewWorkspaceRootSanitizerWithExpander(homeExpander *HomeExpander) *WorkspaceRootSanitizer {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}

	return &WorkspaceRootSanitizer{homeExpander: resolvedExpander}
}

// Sanitize trims whitespace, expands the user's home directory, and removes duplicate roots.
func (sanitizer *WorkspaceRootSanitizer) Sanitize(candidateRoots []string) []string {
	expander := NewHomeExpander()
	if sanitizer != nil && sanitizer.homeExpander != nil {
		expander = sanitizer.homeExpander
	}

	seenRoots := make(map[string]struct{}, len(candidateRoots))
	sanitizedRoots := make([]string, 0, len(candidateRoots))
	for candidateIndex := range candidateRoots {
		trimmedCandidate := strings.TrimSpace(candidateRoots[candidateIndex])
		if len(trimmedCandidate) == 0 {
			continue
		}

		expandedRoot := expander.Expand(trimmedCandidate)
		if len(expandedRoot) == 0 {
			continue
		}

		if _, alreadySeen := seenRoots[expandedRoot]; alreadySeen {
			continue
		}
		seenRoots[expandedRoot] = struct{}{}
		sanitizedRoots = append(sanitizedRoots, expandedRoot)
	}

	if len(sanitizedRoots) == 0 {
		return nil
	}

	return sanitizedRoots
}
