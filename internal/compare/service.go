package compare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/repostate/internal/manifest"
	"github.com/temirov/repostate/internal/workspace"
)

const (
	currentDirectoryPathConstant                = "."
	discoveryFailedErrorTemplateConstant        = "repository discovery failed: %w"
	manifestLoadFailedErrorTemplateConstant     = "manifest could not be loaded: %w"
	manifestLocateFailedErrorTemplateConstant   = "manifest could not be located: %w"
	collectionFailedErrorTemplateConstant       = "fact collection failed: %w"
	noUsableFactsErrorMessageConstant           = "no repositories produced usable facts"
	writeFailedErrorTemplateConstant            = "comparison output could not be written: %w"
	discoveredRepositoriesLogMessageConstant    = "discovered repositories"
	repositoryCountLogFieldConstant             = "repository_count"
	manifestPathLogFieldConstant                = "manifest_path"
	usingManifestLogMessageConstant             = "using manifest"
)

// Sentinel errors reported by the comparison service.
var ErrNoUsableFacts = errors.New(noUsableFactsErrorMessageConstant)

// WidthProber reports the terminal width available for table output. A
// non-positive value disables fitting.
type WidthProber func() int

// ServiceDependencies carries the collaborators required by the Service.
type ServiceDependencies struct {
	Logger      *zap.Logger
	Discoverer  workspace.RepositoryDiscoverer
	GitExecutor GitExecutor
	WidthProber WidthProber
	Output      io.Writer
}

// Service orchestrates one comparison run: discovery, manifest resolution,
// fact collection, classification, rendering, and the legend.
type Service struct {
	logger      *zap.Logger
	discoverer  workspace.RepositoryDiscoverer
	gitExecutor GitExecutor
	widthProber WidthProber
	output      io.Writer
}

// Sentinel errors reported during service construction.
var (
	ErrLoggerNotConfigured      = errors.New("logger not configured")
	ErrDiscovererNotConfigured  = errors.New("repository discoverer not configured")
	ErrGitExecutorNotConfigured = errors.New("git executor not configured")
	ErrOutputNotConfigured      = errors.New("output writer not configured")
)

// NewService validates the dependencies and constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if dependencies.Discoverer == nil {
		return nil, ErrDiscovererNotConfigured
	}
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.Output == nil {
		return nil, ErrOutputNotConfigured
	}

	resolvedWidthProber := dependencies.WidthProber
	if resolvedWidthProber == nil {
		resolvedWidthProber = func() int { return 0 }
	}

	return &Service{
		logger:      dependencies.Logger,
		discoverer:  dependencies.Discoverer,
		gitExecutor: dependencies.GitExecutor,
		widthProber: resolvedWidthProber,
		output:      dependencies.Output,
	}, nil
}

// Compare runs one comparison over the configured workspace roots and writes
// the table and legend to the configured output.
func (service *Service) Compare(executionContext context.Context, configuration CommandConfiguration) error {
	sanitizedConfiguration := configuration.sanitize()
	primaryRoot := sanitizedConfiguration.WorkspaceRoots[0]

	repositoryPaths, discoveryError := service.discoverer.DiscoverRepositories(sanitizedConfiguration.WorkspaceRoots)
	if discoveryError != nil {
		return fmt.Errorf(discoveryFailedErrorTemplateConstant, discoveryError)
	}
	service.logger.Debug(
		discoveredRepositoriesLogMessageConstant,
		zap.Int(repositoryCountLogFieldConstant, len(repositoryPaths)),
	)

	manifestDocument, manifestError := service.resolveManifest(primaryRoot, sanitizedConfiguration.ManifestPath)
	if manifestError != nil {
		return manifestError
	}

	collector := NewFactCollector(service.gitExecutor, service.logger, sanitizedConfiguration.CollectionJobs)
	collectedFacts, collectionError := collector.CollectFacts(executionContext, repositoryPaths)
	if collectionError != nil {
		return fmt.Errorf(collectionFailedErrorTemplateConstant, collectionError)
	}
	if len(collectedFacts) == 0 {
		return ErrNoUsableFacts
	}

	entries := service.buildEntries(primaryRoot, collectedFacts, manifestDocument, sanitizedConfiguration.branchNamePolicy())
	if sanitizedConfiguration.SignificantOnly {
		entries = filterSignificantEntries(entries)
	}

	theme := PlainTheme()
	if sanitizedConfiguration.ColorEnabled {
		theme = DefaultTheme()
	}

	widthBudget := sanitizedConfiguration.WidthOverride
	if widthBudget <= 0 {
		widthBudget = service.widthProber()
	}

	renderer := NewAdaptiveRenderer(theme)
	renderResult := renderer.Render(entries, RenderOptions{
		WidthBudget: widthBudget,
		FitEnabled:  sanitizedConfiguration.FitEnabled,
	})

	legend := NewLegendGenerator(theme).Generate(renderResult.LegendFlags, renderResult.TableWidth, renderResult.RowCount)
	if writeError := service.writeOutput(renderResult.TableText, legend); writeError != nil {
		return fmt.Errorf(writeFailedErrorTemplateConstant, writeError)
	}
	return nil
}

// resolveManifest locates and loads the manifest. A manifest that cannot be
// located unambiguously or parsed is a configuration error.
func (service *Service) resolveManifest(workspaceRoot string, explicitPath string) (manifest.Document, error) {
	manifestPath, locateError := manifest.Locate(workspaceRoot, explicitPath)
	if locateError != nil {
		return nil, fmt.Errorf(manifestLocateFailedErrorTemplateConstant, locateError)
	}

	manifestDocument, loadError := manifest.Load(manifestPath)
	if loadError != nil {
		return nil, fmt.Errorf(manifestLoadFailedErrorTemplateConstant, loadError)
	}
	service.logger.Debug(usingManifestLogMessageConstant, zap.String(manifestPathLogFieldConstant, manifestPath))
	return manifestDocument, nil
}

// buildEntries joins collected facts with manifest declarations: repositories
// on disk become tracked rows, declarations without a repository become
// missing rows.
func (service *Service) buildEntries(workspaceRoot string, collectedFacts map[string]ComparisonFacts, manifestDocument manifest.Document, branchPolicy BranchNamePolicy) []TableEntry {
	entries := make([]TableEntry, 0, len(collectedFacts)+len(manifestDocument))
	presentPaths := make(map[string]bool, len(collectedFacts))

	for repositoryPath, facts := range collectedFacts {
		relativePath := relativizeRepositoryPath(workspaceRoot, repositoryPath)
		presentPaths[relativePath] = true

		var manifestEntry *manifest.Entry
		if declaredEntry, declared := manifestDocument.Lookup(relativePath); declared {
			entryCopy := declaredEntry
			manifestEntry = &entryCopy
		}

		superProject := relativePath == currentDirectoryPathConstant
		entries = append(entries, NewTrackedEntry(relativePath, facts, manifestEntry, branchPolicy, superProject))
	}

	for _, declaredPath := range manifestDocument.Paths() {
		if presentPaths[declaredPath] {
			continue
		}
		declaredEntry, _ := manifestDocument.Lookup(declaredPath)
		entries = append(entries, NewMissingEntry(declaredPath, declaredEntry.Version))
	}
	return entries
}

func (service *Service) writeOutput(tableText string, legend string) error {
	if _, tableWriteError := io.WriteString(service.output, tableText); tableWriteError != nil {
		return tableWriteError
	}
	if len(legend) > 0 {
		if _, legendWriteError := io.WriteString(service.output, legend); legendWriteError != nil {
			return legendWriteError
		}
	}
	return nil
}

func filterSignificantEntries(entries []TableEntry) []TableEntry {
	significantEntries := make([]TableEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Significant() {
			significantEntries = append(significantEntries, entry)
		}
	}
	return significantEntries
}

// relativizeRepositoryPath rewrites a discovered repository path relative to
// the workspace root; the root itself maps to ".".
func relativizeRepositoryPath(workspaceRoot string, repositoryPath string) string {
	relativePath, relativeError := filepath.Rel(workspaceRoot, repositoryPath)
	if relativeError != nil {
		return repositoryPath
	}
	return filepath.ToSlash(relativePath)
}
