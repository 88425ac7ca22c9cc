package compare_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repostate/internal/compare"
	"github.com/temirov/repostate/internal/manifest"
)

const fullRevisionFixtureConstant = "0123456789abcdef0123456789abcdef01234567"

func TestAbbreviateDisplayValue(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "full_revision_collapses_to_seven_characters",
			value:    fullRevisionFixtureConstant,
			expected: "0123456",
		},
		{
			name:     "short_value_passes_through",
			value:    "main",
			expected: "main",
		},
		{
			name:     "thirty_five_character_value_passes_through",
			value:    strings.Repeat("a", 35),
			expected: strings.Repeat("a", 35),
		},
		{
			name:     "long_branch_truncates_to_thirty_five_with_tail",
			value:    "feature/" + strings.Repeat("x", 40),
			expected: "feature/" + strings.Repeat("x", 24) + "...",
		},
		{
			name:     "forty_character_branch_collapses_to_seven",
			value:    strings.Repeat("branch", 6) + "name",
			expected: "branchb",
		},
		{
			name:     "forty_character_revision_collapses_to_seven",
			value:    strings.Repeat("z", 40),
			expected: strings.Repeat("z", 7),
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			abbreviated := compare.AbbreviateDisplayValue(testCase.value)
			require.Equal(t, testCase.expected, abbreviated)
		})
	}
}

func TestAbbreviateDisplayValueNeverExceedsThirtyFive(t *testing.T) {
	t.Parallel()

	longValues := []string{
		strings.Repeat("b", 36),
		strings.Repeat("b", 100),
		"release/" + strings.Repeat("1", 60),
	}
	for _, longValue := range longValues {
		abbreviated := compare.AbbreviateDisplayValue(longValue)
		require.Len(t, abbreviated, 35)
		require.True(t, strings.HasSuffix(abbreviated, "..."))
	}
}

func buildTrackedFixtureEntry(t *testing.T, repositoryPath string, facts compare.ComparisonFacts, manifestEntry *manifest.Entry) compare.TableEntry {
	t.Helper()
	return compare.NewTrackedEntry(repositoryPath, facts, manifestEntry, compare.DefaultBranchNamePolicy(), false)
}

func fixtureEntries(t *testing.T) []compare.TableEntry {
	t.Helper()
	return []compare.TableEntry{
		buildTrackedFixtureEntry(t, "tools/beta", compare.ComparisonFacts{
			LocalVersion:  "main",
			LocalHash:     fullRevisionFixtureConstant,
			RemoteVersion: "main",
			RemoteHash:    fullRevisionFixtureConstant,
			Remote:        "origin",
			Ahead:         2,
		}, &manifest.Entry{Path: "tools/beta", Version: "main"}),
		buildTrackedFixtureEntry(t, "alpha", compare.ComparisonFacts{
			LocalVersion:  "main",
			LocalHash:     fullRevisionFixtureConstant,
			RemoteVersion: "main",
			RemoteHash:    fullRevisionFixtureConstant,
			Remote:        "origin",
		}, &manifest.Entry{Path: "alpha", Version: "main"}),
		compare.NewMissingEntry("gamma", "release/2.0"),
	}
}

func TestRenderEmptyEntriesProducesNothing(t *testing.T) {
	t.Parallel()

	renderer := compare.NewAdaptiveRenderer(compare.PlainTheme())
	result := renderer.Render(nil, compare.RenderOptions{WidthBudget: 80, FitEnabled: true})
	require.Empty(t, result.TableText)
	require.Zero(t, result.RowCount)
	require.Zero(t, result.LegendFlags)
}

func TestRenderSortsRowsByPath(t *testing.T) {
	t.Parallel()

	renderer := compare.NewAdaptiveRenderer(compare.PlainTheme())
	result := renderer.Render(fixtureEntries(t), compare.RenderOptions{})

	alphaIndex := strings.Index(result.TableText, "alpha")
	gammaIndex := strings.Index(result.TableText, "gamma")
	betaIndex := strings.Index(result.TableText, "tools/beta")
	require.Greater(t, alphaIndex, -1)
	require.Greater(t, gammaIndex, alphaIndex)
	require.Greater(t, betaIndex, gammaIndex)
}

func TestRenderIsDeterministic(t *testing.T) {
	t.Parallel()

	renderer := compare.NewAdaptiveRenderer(compare.PlainTheme())
	options := compare.RenderOptions{WidthBudget: 60, FitEnabled: true}

	firstResult := renderer.Render(fixtureEntries(t), options)
	secondResult := renderer.Render(fixtureEntries(t), options)
	require.Equal(t, firstResult, secondResult)
}

func TestRenderWithoutFittingKeepsEveryColumn(t *testing.T) {
	t.Parallel()

	renderer := compare.NewAdaptiveRenderer(compare.PlainTheme())
	result := renderer.Render(fixtureEntries(t), compare.RenderOptions{WidthBudget: 20, FitEnabled: false})

	require.Zero(t, result.HiddenColumnCount)
	require.False(t, result.Abbreviated)
	require.Contains(t, result.TableText, "Status")
	require.Contains(t, result.TableText, "Ah/Bh")
	require.Contains(t, result.TableText, "Remote Version")
	require.Contains(t, result.TableText, "Local Version")
	require.Contains(t, result.TableText, fullRevisionFixtureConstant)
}

func TestRenderShowsAheadIndicator(t *testing.T) {
	t.Parallel()

	renderer := compare.NewAdaptiveRenderer(compare.PlainTheme())
	result := renderer.Render(fixtureEntries(t), compare.RenderOptions{})
	require.Contains(t, result.TableText, "<2")
}

func TestRenderAbbreviatesBeforeHidingColumns(t *testing.T) {
	t.Parallel()

	renderer := compare.NewAdaptiveRenderer(compare.PlainTheme())
	entries := fixtureEntries(t)

	fullResult := renderer.Render(entries, compare.RenderOptions{})
	abbreviatedBudget := fullResult.TableWidth - 1

	result := renderer.Render(entries, compare.RenderOptions{WidthBudget: abbreviatedBudget, FitEnabled: true})
	require.True(t, result.Abbreviated)
	require.Zero(t, result.HiddenColumnCount)
	require.LessOrEqual(t, result.TableWidth, abbreviatedBudget)
	require.NotContains(t, result.TableText, fullRevisionFixtureConstant)
	require.Contains(t, result.TableText, fullRevisionFixtureConstant[:7])
	require.False(t, result.LegendFlags.Has(compare.LegendFlagNarrowed))
}

func TestRenderHidesColumnsInFixedOrder(t *testing.T) {
	t.Parallel()

	renderer := compare.NewAdaptiveRenderer(compare.PlainTheme())
	entries := fixtureEntries(t)

	fullResult := renderer.Render(entries, compare.RenderOptions{})
	abbreviatedResult := renderer.Render(entries, compare.RenderOptions{WidthBudget: fullResult.TableWidth - 1, FitEnabled: true})
	require.Zero(t, abbreviatedResult.HiddenColumnCount)
	narrowBudget := abbreviatedResult.TableWidth - 1

	result := renderer.Render(entries, compare.RenderOptions{WidthBudget: narrowBudget, FitEnabled: true})
	require.Positive(t, result.HiddenColumnCount)
	require.NotContains(t, result.TableText, "Remote Version")
	require.Contains(t, result.TableText, "Path")
	require.True(t, result.LegendFlags.Has(compare.LegendFlagNarrowed))
}

func TestRenderExtremeNarrowBudgetKeepsPathColumn(t *testing.T) {
	t.Parallel()

	renderer := compare.NewAdaptiveRenderer(compare.PlainTheme())
	result := renderer.Render(fixtureEntries(t), compare.RenderOptions{WidthBudget: 1, FitEnabled: true})

	require.Equal(t, 6, result.HiddenColumnCount)
	require.Contains(t, result.TableText, "Path")
	require.Contains(t, result.TableText, "alpha")
	require.NotContains(t, result.TableText, "Manifest")
}

func TestRenderCollectsLegendFlags(t *testing.T) {
	t.Parallel()

	renderer := compare.NewAdaptiveRenderer(compare.PlainTheme())
	result := renderer.Render(fixtureEntries(t), compare.RenderOptions{})

	require.True(t, result.LegendFlags.Has(compare.LegendFlagMissingRepo))
	require.True(t, result.LegendFlags.Has(compare.LegendFlagTrackingStatus))
	require.True(t, result.LegendFlags.Has(compare.LegendFlagRepoStatus))
	require.False(t, result.LegendFlags.Has(compare.LegendFlagNarrowed))
}
