package compare_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repostate/internal/compare"
)

func TestNormalizeComparisonFacts(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name            string
		facts           compare.ComparisonFacts
		expectedVersion string
		expectedHash    string
	}{
		{
			name:            "detached_head_is_rewritten",
			facts:           compare.ComparisonFacts{LocalVersion: "(HEAD detached at abc1234)", LocalHash: "ignored"},
			expectedVersion: "HEAD detached",
			expectedHash:    "abc1234",
		},
		{
			name:            "detached_head_with_full_revision",
			facts:           compare.ComparisonFacts{LocalVersion: "(HEAD detached at 0f0e0d0c0b0a09080706050403020100ffeeddcc)"},
			expectedVersion: "HEAD detached",
			expectedHash:    "0f0e0d0c0b0a09080706050403020100ffeeddcc",
		},
		{
			name:            "regular_branch_passes_through",
			facts:           compare.ComparisonFacts{LocalVersion: "main", LocalHash: "abc1234"},
			expectedVersion: "main",
			expectedHash:    "abc1234",
		},
		{
			name:            "already_normalized_passes_through",
			facts:           compare.ComparisonFacts{LocalVersion: "HEAD detached", LocalHash: "abc1234"},
			expectedVersion: "HEAD detached",
			expectedHash:    "abc1234",
		},
		{
			name:            "detached_marker_inside_text_is_not_rewritten",
			facts:           compare.ComparisonFacts{LocalVersion: "feature/(HEAD detached at abc1234)", LocalHash: "def5678"},
			expectedVersion: "feature/(HEAD detached at abc1234)",
			expectedHash:    "def5678",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			normalized := compare.NormalizeComparisonFacts(testCase.facts)
			require.Equal(t, testCase.expectedVersion, normalized.LocalVersion)
			require.Equal(t, testCase.expectedHash, normalized.LocalHash)
		})
	}
}

func TestNormalizeComparisonFactsIsIdempotent(t *testing.T) {
	t.Parallel()

	facts := compare.ComparisonFacts{LocalVersion: "(HEAD detached at abc1234)"}
	normalizedOnce := compare.NormalizeComparisonFacts(facts)
	normalizedTwice := compare.NormalizeComparisonFacts(normalizedOnce)
	require.Equal(t, normalizedOnce, normalizedTwice)
}

func TestNormalizeComparisonFactsDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	facts := compare.ComparisonFacts{LocalVersion: "(HEAD detached at abc1234)"}
	compare.NormalizeComparisonFacts(facts)
	require.Equal(t, "(HEAD detached at abc1234)", facts.LocalVersion)
	require.Empty(t, facts.LocalHash)
}

func TestIsDetachedHead(t *testing.T) {
	t.Parallel()

	require.True(t, compare.ComparisonFacts{LocalVersion: "HEAD detached"}.IsDetachedHead())
	require.False(t, compare.ComparisonFacts{LocalVersion: "main"}.IsDetachedHead())
}

func TestHasUpstream(t *testing.T) {
	t.Parallel()

	require.True(t, compare.ComparisonFacts{RemoteVersion: "main"}.HasUpstream())
	require.False(t, compare.ComparisonFacts{}.HasUpstream())
}
