package pathutils_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/repostate/internal/utils/path"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	homeExpander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "/home/operator", nil
	})
	sanitizer := pathutils.NewWorkspaceRootSanitizerWithExpander(homeExpander)

	testCases := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "trims_whitespace",
			input:    []string{"  /workspace  "},
			expected: []string{"/workspace"},
		},
		{
			name:     "drops_blank_entries",
			input:    []string{"", "   ", "/workspace"},
			expected: []string{"/workspace"},
		},
		{
			name:     "expands_home_prefix",
			input:    []string{"~/projects"},
			expected: []string{filepath.Join("/home/operator", "projects")},
		},
		{
			name:     "deduplicates_roots",
			input:    []string{"/workspace", " /workspace ", "/other"},
			expected: []string{"/workspace", "/other"},
		},
		{
			name:     "all_blank_yields_nil",
			input:    []string{"", "  "},
			expected: nil,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, testCase.expected, sanitizer.Sanitize(testCase.input))
		})
	}
}

func TestHomeExpander(t *testing.T) {
	t.Parallel()

	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "/home/operator", nil
	})

	require.Equal(t, "/home/operator", expander.Expand("~"))
	require.Equal(t, filepath.Join("/home/operator", "workspace"), expander.Expand("~/workspace"))
	require.Equal(t, "/absolute/path", expander.Expand("/absolute/path"))
	require.Equal(t, "~user/path", expander.Expand("~user/path"))
}
