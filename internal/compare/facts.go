package compare

import (
	"regexp"
)

const detachedHeadNormalizedVersionConstant = "HEAD detached"

var detachedHeadPattern = regexp.MustCompile(`^\(HEAD detached at (\S+)\)$`)

// ComparisonFacts carries the normalized per-repository state collected from git.
type ComparisonFacts struct {
	LocalVersion    string
	RemoteVersion   string
	Tag             string
	LocalHash       string
	RemoteHash      string
	Remote          string
	Ahead           uint
	Behind          uint
	UnstagedChanges bool
	StagedChanges   bool
	UntrackedFiles  bool
	Stashes         bool
}

// NormalizeComparisonFacts rewrites a detached-HEAD local version into the
// canonical "HEAD detached" form and promotes the embedded revision into
// LocalHash. The rewrite is idempotent; already-normalized facts pass through
// unchanged.
func NormalizeComparisonFacts(facts ComparisonFacts) ComparisonFacts {
	match := detachedHeadPattern.FindStringSubmatch(facts.LocalVersion)
	if match == nil {
		return facts
	}

	normalizedFacts := facts
	normalizedFacts.LocalVersion = detachedHeadNormalizedVersionConstant
	normalizedFacts.LocalHash = match[1]
	return normalizedFacts
}

// IsDetachedHead reports whether the facts describe a detached working copy.
func (facts ComparisonFacts) IsDetachedHead() bool {
	return facts.LocalVersion == detachedHeadNormalizedVersionConstant
}

// HasUpstream reports whether a remote tracking branch was resolved.
func (facts ComparisonFacts) HasUpstream() bool {
	return len(facts.RemoteVersion) > 0
}
