package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	manifestFileGlobPatternConstant        = "*.repos"
	manifestNotFoundTemplateConstant       = "no %s manifest found in %s"
	manifestAmbiguousTemplateConstant      = "multiple manifests found in %s: %s"
	manifestReadErrorTemplateConstant      = "unable to read manifest %s: %w"
	manifestParseErrorTemplateConstant     = "unable to parse manifest %s: %w"
	manifestCandidateJoinSeparatorConstant = ", "
)

// Entry declares the expected version for one repository path.
type Entry struct {
	Path    string
	Version string
}

// Document maps declared repository paths to their manifest entries.
type Document map[string]Entry

// repositoryRecord mirrors the on-disk YAML schema for a single repository.
type repositoryRecord struct {
	Type    string `yaml:"type"`
	URL     string `yaml:"url"`
	Version string `yaml:"version"`
}

// manifestFile mirrors the on-disk YAML schema of a repository list.
type manifestFile struct {
	Repositories map[string]repositoryRecord `yaml:"repositories"`
}

// NotFoundError reports that no manifest file exists where one was expected.
type NotFoundError struct {
	SearchRoot string
}

// Error describes the missing manifest.
func (notFound NotFoundError) Error() string {
	return fmt.Sprintf(manifestNotFoundTemplateConstant, manifestFileGlobPatternConstant, notFound.SearchRoot)
}

// AmbiguousError reports that several manifest files matched and none was selected explicitly.
type AmbiguousError struct {
	SearchRoot string
	Candidates []string
}

// Error lists the competing manifest candidates.
func (ambiguous AmbiguousError) Error() string {
	return fmt.Sprintf(manifestAmbiguousTemplateConstant, ambiguous.SearchRoot, strings.Join(ambiguous.Candidates, manifestCandidateJoinSeparatorConstant))
}

// Locate resolves the manifest path: an explicit path wins, otherwise exactly
// one *.repos file must exist in the workspace root.
func Locate(workspaceRoot string, explicitPath string) (string, error) {
	trimmedExplicitPath := strings.TrimSpace(explicitPath)
	if len(trimmedExplicitPath) > 0 {
		return trimmedExplicitPath, nil
	}

	candidates, globError := filepath.Glob(filepath.Join(workspaceRoot, manifestFileGlobPatternConstant))
	if globError != nil {
		return "", globError
	}

	switch len(candidates) {
	case 0:
		return "", NotFoundError{SearchRoot: workspaceRoot}
	case 1:
		return candidates[0], nil
	default:
		sort.Strings(candidates)
		return "", AmbiguousError{SearchRoot: workspaceRoot, Candidates: candidates}
	}
}

// Load reads and parses the manifest at the provided path.
func Load(manifestPath string) (Document, error) {
	manifestData, readError := os.ReadFile(manifestPath)
	if readError != nil {
		return nil, fmt.Errorf(manifestReadErrorTemplateConstant, manifestPath, readError)
	}

	return Parse(manifestData, manifestPath)
}

// Parse decodes manifest data into a Document keyed by repository path.
func Parse(manifestData []byte, manifestPath string) (Document, error) {
	var parsedFile manifestFile
	if unmarshalError := yaml.Unmarshal(manifestData, &parsedFile); unmarshalError != nil {
		return nil, fmt.Errorf(manifestParseErrorTemplateConstant, manifestPath, unmarshalError)
	}

	document := make(Document, len(parsedFile.Repositories))
	for repositoryPath, record := range parsedFile.Repositories {
		normalizedPath := filepath.ToSlash(strings.TrimSpace(repositoryPath))
		if len(normalizedPath) == 0 {
			continue
		}
		document[normalizedPath] = Entry{
			Path:    normalizedPath,
			Version: strings.TrimSpace(record.Version),
		}
	}

	return document, nil
}

// Paths returns the declared repository paths in ascending order.
func (document Document) Paths() []string {
	paths := make([]string, 0, len(document))
	for declaredPath := range document {
		paths = append(paths, declaredPath)
	}
	sort.Strings(paths)
	return paths
}

// Lookup returns the entry declared for the provided path when present.
func (document Document) Lookup(repositoryPath string) (Entry, bool) {
	entry, exists := document[repositoryPath]
	return entry, exists
}
