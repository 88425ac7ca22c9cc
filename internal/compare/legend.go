package compare

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// LegendFlag is a bitmask of legend sections requested by rendered rows.
type LegendFlag uint8

// Legend sections. Rows raise flags; the generator prints each raised
// section exactly once regardless of how many rows raised it.
const (
	LegendFlagMissingRepo LegendFlag = 1 << iota
	LegendFlagTrackingStatus
	LegendFlagRepoStatus
	LegendFlagNarrowed
)

// Has reports whether the given section flag is raised.
func (flags LegendFlag) Has(flag LegendFlag) bool {
	return flags&flag != 0
}

const (
	trackingLegendTemplateConstant = "%s ahead  %s behind  %s diverged  %s no upstream  |  %s unstaged  %s staged  %s untracked  %s stashes"
	repoLegendTemplateConstant     = "%s nominal  %s untracked repo  %s missing  %s workspace root"
	missingRepoTipConstant         = "missing repositories are declared in the manifest but absent on disk"
	narrowedTipTemplateConstant    = "output narrowed to fit %d columns; widen the terminal or pass --fit=no"
	legendSampleAheadConstant      = 1
	legendSampleBehindConstant     = 1
)

// LegendGenerator assembles the explanatory footer printed below the table.
type LegendGenerator struct {
	theme Theme
}

// NewLegendGenerator builds a generator bound to the provided theme.
func NewLegendGenerator(theme Theme) *LegendGenerator {
	return &LegendGenerator{theme: theme}
}

// Generate renders the legend lines raised by the flags, each centered
// against the table width. An empty table produces no legend at all.
func (generator *LegendGenerator) Generate(flags LegendFlag, tableWidth int, rowCount int) string {
	if rowCount == 0 || flags == 0 {
		return ""
	}

	legendLines := make([]string, 0, 4)
	if flags.Has(LegendFlagTrackingStatus) {
		legendLines = append(legendLines, generator.trackingLine())
	}
	if flags.Has(LegendFlagRepoStatus) {
		legendLines = append(legendLines, generator.repoLine())
	}
	if flags.Has(LegendFlagMissingRepo) {
		legendLines = append(legendLines, missingRepoTipConstant)
	}
	if flags.Has(LegendFlagNarrowed) {
		legendLines = append(legendLines, fmt.Sprintf(narrowedTipTemplateConstant, tableWidth))
	}

	legendBuilder := strings.Builder{}
	for _, legendLine := range legendLines {
		centeredLine := centerLine(legendLine, tableWidth)
		legendBuilder.WriteString(generator.theme.LegendStyle.Render(centeredLine))
		legendBuilder.WriteString("\n")
	}
	return legendBuilder.String()
}

func (generator *LegendGenerator) trackingLine() string {
	return fmt.Sprintf(
		trackingLegendTemplateConstant,
		fmt.Sprintf(generator.theme.AheadIndicatorTemplate, legendSampleAheadConstant),
		fmt.Sprintf(generator.theme.BehindIndicatorTemplate, legendSampleBehindConstant),
		fmt.Sprintf(generator.theme.DivergedIndicatorTemplate, legendSampleAheadConstant, legendSampleBehindConstant),
		generator.theme.LocalIndicatorLabel,
		generator.theme.UnstagedFlagSymbol,
		generator.theme.StagedFlagSymbol,
		generator.theme.UntrackedFilesFlagSymbol,
		generator.theme.StashFlagSymbol,
	)
}

func (generator *LegendGenerator) repoLine() string {
	return fmt.Sprintf(
		repoLegendTemplateConstant,
		generator.theme.NominalRepoSymbol,
		generator.theme.UntrackedRepoSymbol,
		generator.theme.MissingRepoSymbol,
		generator.theme.SuperProjectSymbol,
	)
}

func centerLine(line string, width int) string {
	lineWidth := runewidth.StringWidth(line)
	if lineWidth >= width {
		return line
	}
	leftPadding := (width - lineWidth) / 2
	return strings.Repeat(" ", leftPadding) + line
}
