package compare

import (
	"strings"

	"github.com/temirov/repostate/internal/manifest"
)

// RepoStatus captures whether a repository is declared in the manifest.
type RepoStatus string

// Supported repository statuses.
const (
	RepoStatusNominal   RepoStatus = "nominal"
	RepoStatusUntracked RepoStatus = "untracked"
)

// TrackingStatus captures the relationship between local and remote commit positions.
type TrackingStatus string

// Supported tracking statuses.
const (
	TrackingStatusEqual    TrackingStatus = "equal"
	TrackingStatusLocal    TrackingStatus = "local"
	TrackingStatusBehind   TrackingStatus = "behind"
	TrackingStatusAhead    TrackingStatus = "ahead"
	TrackingStatusDiverged TrackingStatus = "diverged"
	TrackingStatusError    TrackingStatus = "error"
)

// ClassifyRepoStatus derives the repository status from manifest membership.
func ClassifyRepoStatus(hasManifestEntry bool) RepoStatus {
	if hasManifestEntry {
		return RepoStatusNominal
	}
	return RepoStatusUntracked
}

// ClassifyTracking derives the tracking status from upstream presence and
// ahead/behind counts. The final branch is a total-function safeguard for
// upstream layers that report malformed counts; it is not reachable for
// unsigned inputs but must render instead of failing.
func ClassifyTracking(facts ComparisonFacts) TrackingStatus {
	if !facts.HasUpstream() {
		return TrackingStatusLocal
	}

	switch {
	case facts.Ahead == 0 && facts.Behind == 0:
		return TrackingStatusEqual
	case facts.Ahead == 0 && facts.Behind > 0:
		return TrackingStatusBehind
	case facts.Ahead > 0 && facts.Behind == 0:
		return TrackingStatusAhead
	case facts.Ahead > 0 && facts.Behind > 0:
		return TrackingStatusDiverged
	default:
		return TrackingStatusError
	}
}

// IsDirty reports whether the working tree carries uncommitted work. Stashes
// are displayed as a flag but never count toward dirtiness.
func IsDirty(facts ComparisonFacts) bool {
	return facts.UnstagedChanges || facts.StagedChanges || facts.UntrackedFiles
}

// IsSignificant decides whether a tracked row deserves attention: dirty
// working tree, non-equal tracking, missing manifest entry, or a manifest
// version that differs from the local version.
func IsSignificant(facts ComparisonFacts, manifestEntry *manifest.Entry) bool {
	if IsDirty(facts) {
		return true
	}
	if ClassifyTracking(facts) != TrackingStatusEqual {
		return true
	}
	if manifestEntry == nil {
		return true
	}
	return manifestEntry.Version != facts.LocalVersion
}

// LocalMatchesManifest reports whether the declared version matches the local
// branch or the local revision. The result only selects presentation.
func LocalMatchesManifest(facts ComparisonFacts, declaredVersion string) bool {
	if len(declaredVersion) == 0 {
		return false
	}
	return declaredVersion == facts.LocalVersion || declaredVersion == facts.LocalHash
}

// RemoteMatchesManifest reports whether the declared version matches the
// remote branch or the remote revision. The result only selects presentation.
func RemoteMatchesManifest(facts ComparisonFacts, declaredVersion string) bool {
	if len(declaredVersion) == 0 {
		return false
	}
	return declaredVersion == facts.RemoteVersion || declaredVersion == facts.RemoteHash
}

// BranchNamePolicy defines the allow-list used to flag unexpected branch names.
type BranchNamePolicy struct {
	AllowedNames    []string
	AllowedPrefixes []string
}

// Default allow-list values preserved across configuration overrides.
var (
	defaultAllowedBranchNames    = []string{"main", "master", "develop", "devel"}
	defaultAllowedBranchPrefixes = []string{"release/", "hotfix/", "feature/"}
)

// DefaultBranchNamePolicy returns the baseline branch-name allow-list.
func DefaultBranchNamePolicy() BranchNamePolicy {
	return BranchNamePolicy{
		AllowedNames:    append([]string{}, defaultAllowedBranchNames...),
		AllowedPrefixes: append([]string{}, defaultAllowedBranchPrefixes...),
	}
}

// IsAcceptableBranchName reports whether the branch name matches the
// allow-list by literal name or prefix. Detached-head placeholders are
// always acceptable; they are not branch names.
func (policy BranchNamePolicy) IsAcceptableBranchName(branchName string) bool {
	if branchName == detachedHeadNormalizedVersionConstant {
		return true
	}
	for _, allowedName := range policy.AllowedNames {
		if branchName == allowedName {
			return true
		}
	}
	for _, allowedPrefix := range policy.AllowedPrefixes {
		if strings.HasPrefix(branchName, allowedPrefix) {
			return true
		}
	}
	return false
}
