package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repostate/internal/manifest"
)

const manifestFixtureConstant = `repositories:
  tooling/gadget:
    type: git
    url: https://example.com/gadget.git
    version: main
  library:
    type: git
    url: https://example.com/library.git
    version: release/2.0
  " ":
    type: git
    url: https://example.com/blank.git
    version: main
`

func writeManifestFile(t *testing.T, directory string, fileName string, contents string) string {
	t.Helper()
	manifestPath := filepath.Join(directory, fileName)
	require.NoError(t, os.WriteFile(manifestPath, []byte(contents), 0o644))
	return manifestPath
}

func TestLocate(t *testing.T) {
	t.Parallel()

	t.Run("explicit_path_wins", func(t *testing.T) {
		t.Parallel()

		located, locateError := manifest.Locate(t.TempDir(), " /workspace/custom.repos ")
		require.NoError(t, locateError)
		require.Equal(t, "/workspace/custom.repos", located)
	})

	t.Run("single_candidate_is_selected", func(t *testing.T) {
		t.Parallel()

		workspaceRoot := t.TempDir()
		expectedPath := writeManifestFile(t, workspaceRoot, "workspace.repos", manifestFixtureConstant)

		located, locateError := manifest.Locate(workspaceRoot, "")
		require.NoError(t, locateError)
		require.Equal(t, expectedPath, located)
	})

	t.Run("no_candidate_reports_not_found", func(t *testing.T) {
		t.Parallel()

		workspaceRoot := t.TempDir()
		_, locateError := manifest.Locate(workspaceRoot, "")
		notFound := manifest.NotFoundError{}
		require.ErrorAs(t, locateError, &notFound)
		require.Equal(t, workspaceRoot, notFound.SearchRoot)
	})

	t.Run("multiple_candidates_report_ambiguity", func(t *testing.T) {
		t.Parallel()

		workspaceRoot := t.TempDir()
		writeManifestFile(t, workspaceRoot, "first.repos", manifestFixtureConstant)
		writeManifestFile(t, workspaceRoot, "second.repos", manifestFixtureConstant)

		_, locateError := manifest.Locate(workspaceRoot, "")
		ambiguous := manifest.AmbiguousError{}
		require.ErrorAs(t, locateError, &ambiguous)
		require.Len(t, ambiguous.Candidates, 2)
		require.Contains(t, locateError.Error(), "first.repos")
		require.Contains(t, locateError.Error(), "second.repos")
	})

	t.Run("ignores_other_extensions", func(t *testing.T) {
		t.Parallel()

		workspaceRoot := t.TempDir()
		writeManifestFile(t, workspaceRoot, "notes.yaml", manifestFixtureConstant)

		_, locateError := manifest.Locate(workspaceRoot, "")
		notFound := manifest.NotFoundError{}
		require.ErrorAs(t, locateError, &notFound)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	workspaceRoot := t.TempDir()
	manifestPath := writeManifestFile(t, workspaceRoot, "workspace.repos", manifestFixtureConstant)

	document, loadError := manifest.Load(manifestPath)
	require.NoError(t, loadError)
	require.Len(t, document, 2)

	gadgetEntry, gadgetDeclared := document.Lookup("tooling/gadget")
	require.True(t, gadgetDeclared)
	require.Equal(t, "tooling/gadget", gadgetEntry.Path)
	require.Equal(t, "main", gadgetEntry.Version)

	libraryEntry, libraryDeclared := document.Lookup("library")
	require.True(t, libraryDeclared)
	require.Equal(t, "release/2.0", libraryEntry.Version)

	_, blankDeclared := document.Lookup(" ")
	require.False(t, blankDeclared)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, loadError := manifest.Load(filepath.Join(t.TempDir(), "absent.repos"))
	require.Error(t, loadError)
}

func TestParseInvalidYAML(t *testing.T) {
	t.Parallel()

	_, parseError := manifest.Parse([]byte("repositories: [not a mapping"), "broken.repos")
	require.Error(t, parseError)
	require.Contains(t, parseError.Error(), "broken.repos")
}

func TestParseEmptyDocument(t *testing.T) {
	t.Parallel()

	document, parseError := manifest.Parse(nil, "empty.repos")
	require.NoError(t, parseError)
	require.Empty(t, document)
	require.Empty(t, document.Paths())
}

func TestDocumentPathsAreSorted(t *testing.T) {
	t.Parallel()

	document, parseError := manifest.Parse([]byte(manifestFixtureConstant), "workspace.repos")
	require.NoError(t, parseError)
	require.Equal(t, []string{"library", "tooling/gadget"}, document.Paths())
}
