package compare

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/temirov/repostate/internal/manifest"
)

const (
	versionHashJoinSeparatorConstant = " "
	remoteVersionTemplateConstant    = "%s/%s"
)

// RowCell pairs a cell's plain text with the style applied after padding.
type RowCell struct {
	Text  string
	Style lipgloss.Style
}

// RowCells holds one value per data column in fixed column order.
type RowCells [tableColumnCount]RowCell

// TableEntry is the uniform row contract shared by tracked and missing rows.
type TableEntry interface {
	// Path reports the workspace-relative repository path used for sorting.
	Path() string
	// Significant reports whether the row deserves attention.
	Significant() bool
	// LegendFlags reports which legend sections this row makes relevant.
	LegendFlags() LegendFlag
	// Cells builds the row values, optionally abbreviated for narrow output.
	Cells(theme Theme, abbreviate bool) RowCells
}

// TrackedEntry is a repository present on disk, classified against the manifest.
type TrackedEntry struct {
	path                 string
	facts                ComparisonFacts
	manifestEntry        *manifest.Entry
	repoStatus           RepoStatus
	trackingStatus       TrackingStatus
	significant          bool
	branchNameAcceptable bool
	superProject         bool
}

// NewTrackedEntry classifies the provided facts and builds a tracked row.
func NewTrackedEntry(repositoryPath string, facts ComparisonFacts, manifestEntry *manifest.Entry, branchPolicy BranchNamePolicy, superProject bool) *TrackedEntry {
	return &TrackedEntry{
		path:                 repositoryPath,
		facts:                facts,
		manifestEntry:        manifestEntry,
		repoStatus:           ClassifyRepoStatus(manifestEntry != nil),
		trackingStatus:       ClassifyTracking(facts),
		significant:          IsSignificant(facts, manifestEntry),
		branchNameAcceptable: branchPolicy.IsAcceptableBranchName(facts.LocalVersion),
		superProject:         superProject,
	}
}

// Path reports the workspace-relative repository path.
func (entry *TrackedEntry) Path() string {
	return entry.path
}

// Facts exposes the classified facts for reporting collaborators.
func (entry *TrackedEntry) Facts() ComparisonFacts {
	return entry.facts
}

// RepoStatus reports the manifest-membership classification.
func (entry *TrackedEntry) RepoStatus() RepoStatus {
	return entry.repoStatus
}

// TrackingStatus reports the local/remote commit-position classification.
func (entry *TrackedEntry) TrackingStatus() TrackingStatus {
	return entry.trackingStatus
}

// Significant reports whether the row deserves attention.
func (entry *TrackedEntry) Significant() bool {
	return entry.significant
}

// LegendFlags reports which legend sections this row makes relevant.
func (entry *TrackedEntry) LegendFlags() LegendFlag {
	var flags LegendFlag
	if entry.trackingStatus != TrackingStatusEqual || len(entry.vcsFlags(PlainTheme())) > 0 {
		flags |= LegendFlagTrackingStatus
	}
	if entry.repoStatus != RepoStatusNominal || entry.superProject {
		flags |= LegendFlagRepoStatus
	}
	return flags
}

// Cells builds the row values in fixed column order.
func (entry *TrackedEntry) Cells(theme Theme, abbreviate bool) RowCells {
	var cells RowCells
	cells[columnIndexStatus] = entry.statusCell(theme)
	cells[columnIndexPath] = RowCell{Text: entry.path}
	cells[columnIndexFlags] = RowCell{Text: entry.vcsFlags(theme), Style: theme.AttentionStyle}
	cells[columnIndexManifest] = entry.manifestCell(theme, abbreviate)
	cells[columnIndexLocalVersion] = entry.localVersionCell(theme, abbreviate)
	cells[columnIndexTrack] = entry.trackCell(theme)
	cells[columnIndexRemoteVersion] = entry.remoteVersionCell(theme, abbreviate)
	return cells
}

func (entry *TrackedEntry) statusCell(theme Theme) RowCell {
	switch {
	case entry.superProject:
		return RowCell{Text: theme.SuperProjectSymbol, Style: theme.MutedStyle}
	case entry.repoStatus == RepoStatusUntracked:
		return RowCell{Text: theme.UntrackedRepoSymbol, Style: theme.AttentionStyle}
	default:
		return RowCell{Text: theme.NominalRepoSymbol, Style: theme.MutedStyle}
	}
}

func (entry *TrackedEntry) vcsFlags(theme Theme) string {
	flagBuilder := strings.Builder{}
	if entry.facts.UnstagedChanges {
		flagBuilder.WriteString(theme.UnstagedFlagSymbol)
	}
	if entry.facts.StagedChanges {
		flagBuilder.WriteString(theme.StagedFlagSymbol)
	}
	if entry.facts.UntrackedFiles {
		flagBuilder.WriteString(theme.UntrackedFilesFlagSymbol)
	}
	if entry.facts.Stashes {
		flagBuilder.WriteString(theme.StashFlagSymbol)
	}
	return flagBuilder.String()
}

func (entry *TrackedEntry) manifestCell(theme Theme, abbreviate bool) RowCell {
	if entry.manifestEntry == nil {
		return RowCell{}
	}

	declaredVersion := entry.manifestEntry.Version
	displayVersion := declaredVersion
	if abbreviate {
		displayVersion = AbbreviateDisplayValue(displayVersion)
	}

	style := theme.MismatchStyle
	if LocalMatchesManifest(entry.facts, declaredVersion) {
		style = theme.MatchStyle
	}
	return RowCell{Text: displayVersion, Style: style}
}

func (entry *TrackedEntry) localVersionCell(theme Theme, abbreviate bool) RowCell {
	displayVersion := entry.facts.LocalVersion
	if entry.facts.IsDetachedHead() && len(entry.facts.Tag) > 0 {
		displayVersion = entry.facts.Tag
	}

	displayHash := entry.facts.LocalHash
	if abbreviate {
		displayVersion = AbbreviateDisplayValue(displayVersion)
		displayHash = AbbreviateDisplayValue(displayHash)
	}

	style := lipgloss.NewStyle()
	if !entry.branchNameAcceptable {
		style = theme.InvalidBranchStyle
	}
	return RowCell{Text: joinVersionAndHash(displayVersion, displayHash), Style: style}
}

func (entry *TrackedEntry) trackCell(theme Theme) RowCell {
	switch entry.trackingStatus {
	case TrackingStatusEqual:
		return RowCell{}
	case TrackingStatusLocal:
		return RowCell{Text: theme.LocalIndicatorLabel, Style: theme.MutedStyle}
	case TrackingStatusAhead:
		return RowCell{Text: fmt.Sprintf(theme.AheadIndicatorTemplate, entry.facts.Ahead), Style: theme.AttentionStyle}
	case TrackingStatusBehind:
		return RowCell{Text: fmt.Sprintf(theme.BehindIndicatorTemplate, entry.facts.Behind), Style: theme.AttentionStyle}
	case TrackingStatusDiverged:
		return RowCell{Text: fmt.Sprintf(theme.DivergedIndicatorTemplate, entry.facts.Ahead, entry.facts.Behind), Style: theme.AttentionStyle}
	default:
		return RowCell{Text: theme.ErrorIndicatorLabel, Style: theme.ErrorStyle}
	}
}

func (entry *TrackedEntry) remoteVersionCell(theme Theme, abbreviate bool) RowCell {
	if !entry.facts.HasUpstream() {
		return RowCell{}
	}

	displayVersion := entry.facts.RemoteVersion
	if len(entry.facts.Remote) > 0 {
		displayVersion = fmt.Sprintf(remoteVersionTemplateConstant, entry.facts.Remote, entry.facts.RemoteVersion)
	}

	displayHash := entry.facts.RemoteHash
	if abbreviate {
		displayVersion = AbbreviateDisplayValue(displayVersion)
		displayHash = AbbreviateDisplayValue(displayHash)
	}

	style := lipgloss.NewStyle()
	if entry.manifestEntry != nil {
		style = theme.MismatchStyle
		if RemoteMatchesManifest(entry.facts, entry.manifestEntry.Version) {
			style = theme.MatchStyle
		}
	}
	return RowCell{Text: joinVersionAndHash(displayVersion, displayHash), Style: style}
}

// MissingEntry is a repository declared in the manifest but absent on disk.
type MissingEntry struct {
	path            string
	declaredVersion string
}

// NewMissingEntry builds a row for a declared-but-absent repository.
func NewMissingEntry(repositoryPath string, declaredVersion string) *MissingEntry {
	return &MissingEntry{path: repositoryPath, declaredVersion: declaredVersion}
}

// Path reports the declared repository path.
func (entry *MissingEntry) Path() string {
	return entry.path
}

// Significant always holds for missing repositories.
func (entry *MissingEntry) Significant() bool {
	return true
}

// LegendFlags reports the missing-repository legend sections.
func (entry *MissingEntry) LegendFlags() LegendFlag {
	return LegendFlagMissingRepo | LegendFlagRepoStatus
}

// Cells builds the row values; only status, path, and manifest carry data.
func (entry *MissingEntry) Cells(theme Theme, abbreviate bool) RowCells {
	displayVersion := entry.declaredVersion
	if abbreviate {
		displayVersion = AbbreviateDisplayValue(displayVersion)
	}

	var cells RowCells
	cells[columnIndexStatus] = RowCell{Text: theme.MissingRepoSymbol, Style: theme.ErrorStyle}
	cells[columnIndexPath] = RowCell{Text: entry.path}
	cells[columnIndexManifest] = RowCell{Text: displayVersion, Style: theme.MismatchStyle}
	return cells
}

func joinVersionAndHash(displayVersion string, displayHash string) string {
	trimmedVersion := strings.TrimSpace(displayVersion)
	trimmedHash := strings.TrimSpace(displayHash)
	switch {
	case len(trimmedVersion) == 0:
		return trimmedHash
	case len(trimmedHash) == 0:
		return trimmedVersion
	default:
		return trimmedVersion + versionHashJoinSeparatorConstant + trimmedHash
	}
}
