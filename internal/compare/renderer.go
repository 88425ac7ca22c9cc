package compare

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// Column positions in fixed order. The trailing dummy column is appended by
// the renderer and never carries data; it stops the last data column from
// absorbing the remaining line width.
const (
	columnIndexStatus = iota
	columnIndexPath
	columnIndexFlags
	columnIndexManifest
	columnIndexLocalVersion
	columnIndexTrack
	columnIndexRemoteVersion
	tableColumnCount
)

const (
	statusColumnHeaderConstant        = "Status"
	pathColumnHeaderConstant          = "Path"
	flagsColumnHeaderConstant         = "Flags"
	manifestColumnHeaderConstant      = "Manifest"
	localVersionColumnHeaderConstant  = "Local Version"
	trackColumnHeaderConstant         = "Ah/Bh"
	remoteVersionColumnHeaderConstant = "Remote Version"
	columnSeparatorConstant           = "  "
	fullHashLengthConstant            = 40
	abbreviatedHashLengthConstant     = 7
	maximumDisplayValueWidthConstant  = 35
	abbreviationTailConstant          = "..."
)

var columnHeaders = [tableColumnCount]string{
	columnIndexStatus:        statusColumnHeaderConstant,
	columnIndexPath:          pathColumnHeaderConstant,
	columnIndexFlags:         flagsColumnHeaderConstant,
	columnIndexManifest:      manifestColumnHeaderConstant,
	columnIndexLocalVersion:  localVersionColumnHeaderConstant,
	columnIndexTrack:         trackColumnHeaderConstant,
	columnIndexRemoteVersion: remoteVersionColumnHeaderConstant,
}

// columnHideOrder lists the columns sacrificed when the table does not fit,
// least informative first. Path is never hidden.
var columnHideOrder = []int{
	columnIndexRemoteVersion,
	columnIndexManifest,
	columnIndexTrack,
	columnIndexLocalVersion,
	columnIndexFlags,
	columnIndexStatus,
}

// AbbreviateDisplayValue shortens a value for narrow output. Values of exactly
// 40 characters are taken for full revision hashes and collapse to their first
// 7 characters without a tail; any other value wider than 35 characters is
// truncated to exactly 35 including the tail. Everything else passes through
// unchanged.
func AbbreviateDisplayValue(value string) string {
	if len(value) == fullHashLengthConstant {
		return value[:abbreviatedHashLengthConstant]
	}
	if runewidth.StringWidth(value) > maximumDisplayValueWidthConstant {
		return truncate.StringWithTail(value, maximumDisplayValueWidthConstant, abbreviationTailConstant)
	}
	return value
}

// RenderOptions controls the fitting behavior of a render pass.
type RenderOptions struct {
	// WidthBudget is the maximum table width in terminal cells. Zero or
	// negative disables fitting regardless of FitEnabled.
	WidthBudget int
	// FitEnabled selects whether the renderer may degrade the table to
	// honor the width budget.
	FitEnabled bool
}

// RenderResult carries the rendered table and the facts the legend needs.
type RenderResult struct {
	TableText         string
	TableWidth        int
	RowCount          int
	HiddenColumnCount int
	Abbreviated       bool
	LegendFlags       LegendFlag
}

// AdaptiveRenderer lays out table entries as fixed-width columns and degrades
// the layout in stages when the width budget is exceeded: first abbreviating
// long values, then hiding columns in a fixed order. Rendering is a pure
// function of its inputs; repeated calls yield byte-identical output.
type AdaptiveRenderer struct {
	theme Theme
}

// NewAdaptiveRenderer builds a renderer bound to the provided theme.
func NewAdaptiveRenderer(theme Theme) *AdaptiveRenderer {
	return &AdaptiveRenderer{theme: theme}
}

// Render sorts the entries by path and produces the narrowest acceptable
// layout within the options' width budget.
func (renderer *AdaptiveRenderer) Render(entries []TableEntry, options RenderOptions) RenderResult {
	if len(entries) == 0 {
		return RenderResult{}
	}

	sortedEntries := make([]TableEntry, len(entries))
	copy(sortedEntries, entries)
	sort.Slice(sortedEntries, func(leftIndex int, rightIndex int) bool {
		return sortedEntries[leftIndex].Path() < sortedEntries[rightIndex].Path()
	})

	entryFlags := LegendFlag(0)
	for _, entry := range sortedEntries {
		entryFlags |= entry.LegendFlags()
	}

	result := renderer.fit(sortedEntries, options)
	result.RowCount = len(sortedEntries)
	result.LegendFlags |= entryFlags
	if result.HiddenColumnCount > 0 {
		result.LegendFlags |= LegendFlagNarrowed
	}
	return result
}

func (renderer *AdaptiveRenderer) fit(sortedEntries []TableEntry, options RenderOptions) RenderResult {
	tableText, tableWidth := renderer.renderOnce(sortedEntries, 0, false)
	fittingDisabled := !options.FitEnabled || options.WidthBudget <= 0
	if fittingDisabled || tableWidth <= options.WidthBudget {
		return RenderResult{TableText: tableText, TableWidth: tableWidth}
	}

	tableText, tableWidth = renderer.renderOnce(sortedEntries, 0, true)
	if tableWidth <= options.WidthBudget {
		return RenderResult{TableText: tableText, TableWidth: tableWidth, Abbreviated: true}
	}

	for hiddenColumnCount := 1; hiddenColumnCount <= len(columnHideOrder); hiddenColumnCount++ {
		tableText, tableWidth = renderer.renderOnce(sortedEntries, hiddenColumnCount, true)
		if tableWidth <= options.WidthBudget || hiddenColumnCount == len(columnHideOrder) {
			return RenderResult{
				TableText:         tableText,
				TableWidth:        tableWidth,
				HiddenColumnCount: hiddenColumnCount,
				Abbreviated:       true,
			}
		}
	}
	return RenderResult{TableText: tableText, TableWidth: tableWidth, Abbreviated: true}
}

// renderOnce lays out the entries with the given number of hidden columns.
// It returns the rendered text and the plain-text table width.
func (renderer *AdaptiveRenderer) renderOnce(sortedEntries []TableEntry, hiddenColumnCount int, abbreviate bool) (string, int) {
	visibleColumns := visibleColumnIndexes(hiddenColumnCount)

	entryCells := make([]RowCells, len(sortedEntries))
	for entryIndex, entry := range sortedEntries {
		entryCells[entryIndex] = entry.Cells(renderer.theme, abbreviate)
	}

	columnWidths := make(map[int]int, len(visibleColumns))
	for _, columnIndex := range visibleColumns {
		columnWidth := runewidth.StringWidth(columnHeaders[columnIndex])
		for _, cells := range entryCells {
			cellWidth := runewidth.StringWidth(cells[columnIndex].Text)
			if cellWidth > columnWidth {
				columnWidth = cellWidth
			}
		}
		columnWidths[columnIndex] = columnWidth
	}

	tableWidth := 0
	for _, columnIndex := range visibleColumns {
		tableWidth += columnWidths[columnIndex]
	}
	tableWidth += len(columnSeparatorConstant) * len(visibleColumns)

	tableBuilder := strings.Builder{}
	tableBuilder.WriteString(renderer.renderHeaderRow(visibleColumns, columnWidths))
	tableBuilder.WriteString("\n")
	for entryIndex, cells := range entryCells {
		rowStyle := lipgloss.NewStyle()
		if entryIndex%2 == 1 {
			rowStyle = renderer.theme.AlternateRowStyle
		}
		tableBuilder.WriteString(renderer.renderDataRow(cells, visibleColumns, columnWidths, rowStyle))
		tableBuilder.WriteString("\n")
	}
	return tableBuilder.String(), tableWidth
}

func (renderer *AdaptiveRenderer) renderHeaderRow(visibleColumns []int, columnWidths map[int]int) string {
	rowBuilder := strings.Builder{}
	for _, columnIndex := range visibleColumns {
		paddedHeader := padCell(columnHeaders[columnIndex], columnWidths[columnIndex], columnIndex == columnIndexTrack)
		rowBuilder.WriteString(renderer.theme.HeaderStyle.Render(paddedHeader))
		rowBuilder.WriteString(columnSeparatorConstant)
	}
	return rowBuilder.String()
}

func (renderer *AdaptiveRenderer) renderDataRow(cells RowCells, visibleColumns []int, columnWidths map[int]int, rowStyle lipgloss.Style) string {
	rowBuilder := strings.Builder{}
	for _, columnIndex := range visibleColumns {
		cell := cells[columnIndex]
		paddedText := padCell(cell.Text, columnWidths[columnIndex], columnIndex == columnIndexTrack)
		rowBuilder.WriteString(cell.Style.Inherit(rowStyle).Render(paddedText))
		rowBuilder.WriteString(rowStyle.Render(columnSeparatorConstant))
	}
	return rowBuilder.String()
}

func visibleColumnIndexes(hiddenColumnCount int) []int {
	if hiddenColumnCount > len(columnHideOrder) {
		hiddenColumnCount = len(columnHideOrder)
	}
	hiddenColumns := make(map[int]bool, hiddenColumnCount)
	for _, columnIndex := range columnHideOrder[:hiddenColumnCount] {
		hiddenColumns[columnIndex] = true
	}

	visibleColumns := make([]int, 0, tableColumnCount-hiddenColumnCount)
	for columnIndex := 0; columnIndex < tableColumnCount; columnIndex++ {
		if !hiddenColumns[columnIndex] {
			visibleColumns = append(visibleColumns, columnIndex)
		}
	}
	return visibleColumns
}

func padCell(text string, width int, centered bool) string {
	textWidth := runewidth.StringWidth(text)
	if textWidth >= width {
		return text
	}
	if centered {
		leftPadding := (width - textWidth) / 2
		rightPadding := width - textWidth - leftPadding
		return strings.Repeat(" ", leftPadding) + text + strings.Repeat(" ", rightPadding)
	}
	return text + strings.Repeat(" ", width-textWidth)
}
