package compare

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/repostate/internal/execshell"
)

const (
	defaultCollectionJobLimitConstant   = 8
	currentBranchLinePrefixConstant     = "* "
	upstreamReferenceConstant           = "@{u}"
	remoteReferenceSeparatorConstant    = "/"
	repositoryPathLogFieldConstant      = "repository_path"
	collectionFailureLogMessageConstant = "skipping repository after git failure"
	untrackedPorcelainPrefixConstant    = "??"
	porcelainIgnoredStatusRuneConstant  = '!'
	revListCountFieldCountConstant      = 2
)

var (
	branchListArguments       = []string{"branch", "--no-color"}
	headRevisionArguments     = []string{"rev-parse", "HEAD"}
	upstreamNameArguments     = []string{"rev-parse", "--abbrev-ref", "--symbolic-full-name", upstreamReferenceConstant}
	upstreamRevisionArguments = []string{"rev-parse", upstreamReferenceConstant}
	exactTagArguments         = []string{"describe", "--tags", "--exact-match"}
	aheadBehindCountArguments = []string{"rev-list", "--left-right", "--count", upstreamReferenceConstant + "...HEAD"}
	porcelainStatusArguments  = []string{"status", "--porcelain"}
	stashListArguments        = []string{"stash", "list"}
)

// GitExecutor abstracts git invocation for fact collection.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// FactCollector gathers per-repository comparison facts by querying git.
// Repositories are queried concurrently up to the configured job limit;
// repositories whose essential queries fail are logged and dropped rather
// than failing the whole collection.
type FactCollector struct {
	executor GitExecutor
	logger   *zap.Logger
	jobLimit int
}

// NewFactCollector builds a collector over the provided git executor.
func NewFactCollector(executor GitExecutor, logger *zap.Logger, jobLimit int) *FactCollector {
	resolvedJobLimit := jobLimit
	if resolvedJobLimit <= 0 {
		resolvedJobLimit = defaultCollectionJobLimitConstant
	}
	return &FactCollector{executor: executor, logger: logger, jobLimit: resolvedJobLimit}
}

// CollectFacts queries every repository and returns normalized facts keyed by
// repository path. Paths whose essential queries failed are absent from the
// result.
func (collector *FactCollector) CollectFacts(executionContext context.Context, repositoryPaths []string) (map[string]ComparisonFacts, error) {
	collectedFacts := make(map[string]ComparisonFacts, len(repositoryPaths))
	factsMutex := sync.Mutex{}

	collectionGroup, groupContext := errgroup.WithContext(executionContext)
	collectionGroup.SetLimit(collector.jobLimit)
	for _, repositoryPath := range repositoryPaths {
		collectionGroup.Go(func() error {
			facts, collectError := collector.collectRepository(groupContext, repositoryPath)
			if collectError != nil {
				if groupContext.Err() != nil {
					return groupContext.Err()
				}
				collector.logger.Warn(
					collectionFailureLogMessageConstant,
					zap.String(repositoryPathLogFieldConstant, repositoryPath),
					zap.Error(collectError),
				)
				return nil
			}

			factsMutex.Lock()
			collectedFacts[repositoryPath] = facts
			factsMutex.Unlock()
			return nil
		})
	}

	if waitError := collectionGroup.Wait(); waitError != nil {
		return nil, waitError
	}
	return collectedFacts, nil
}

func (collector *FactCollector) collectRepository(executionContext context.Context, repositoryPath string) (ComparisonFacts, error) {
	facts := ComparisonFacts{}

	branchOutput, branchError := collector.runGit(executionContext, repositoryPath, branchListArguments)
	if branchError != nil {
		return ComparisonFacts{}, branchError
	}
	facts.LocalVersion = parseCurrentBranch(branchOutput)

	headRevision, headError := collector.runGit(executionContext, repositoryPath, headRevisionArguments)
	if headError == nil {
		facts.LocalHash = strings.TrimSpace(headRevision)
	} else if !isCommandFailure(headError) {
		return ComparisonFacts{}, headError
	}

	upstreamName, upstreamError := collector.runGit(executionContext, repositoryPath, upstreamNameArguments)
	if upstreamError == nil {
		facts.Remote, facts.RemoteVersion = parseUpstreamReference(upstreamName)
	} else if !isCommandFailure(upstreamError) {
		return ComparisonFacts{}, upstreamError
	}

	if len(facts.RemoteVersion) > 0 {
		upstreamRevision, upstreamRevisionError := collector.runGit(executionContext, repositoryPath, upstreamRevisionArguments)
		if upstreamRevisionError == nil {
			facts.RemoteHash = strings.TrimSpace(upstreamRevision)
		} else if !isCommandFailure(upstreamRevisionError) {
			return ComparisonFacts{}, upstreamRevisionError
		}

		countOutput, countError := collector.runGit(executionContext, repositoryPath, aheadBehindCountArguments)
		if countError == nil {
			facts.Behind, facts.Ahead = parseAheadBehindCounts(countOutput)
		} else if !isCommandFailure(countError) {
			return ComparisonFacts{}, countError
		}
	}

	tagOutput, tagError := collector.runGit(executionContext, repositoryPath, exactTagArguments)
	if tagError == nil {
		facts.Tag = strings.TrimSpace(tagOutput)
	} else if !isCommandFailure(tagError) {
		return ComparisonFacts{}, tagError
	}

	statusOutput, statusError := collector.runGit(executionContext, repositoryPath, porcelainStatusArguments)
	if statusError != nil {
		return ComparisonFacts{}, statusError
	}
	facts.UnstagedChanges, facts.StagedChanges, facts.UntrackedFiles = parsePorcelainStatus(statusOutput)

	stashOutput, stashError := collector.runGit(executionContext, repositoryPath, stashListArguments)
	if stashError == nil {
		facts.Stashes = len(strings.TrimSpace(stashOutput)) > 0
	} else if !isCommandFailure(stashError) {
		return ComparisonFacts{}, stashError
	}

	return NormalizeComparisonFacts(facts), nil
}

func (collector *FactCollector) runGit(executionContext context.Context, repositoryPath string, arguments []string) (string, error) {
	executionResult, executionError := collector.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}
	return executionResult.StandardOutput, nil
}

// isCommandFailure distinguishes a non-zero git exit, which usually means
// "this repository does not have that" (no upstream, no exact tag, unborn
// HEAD), from an inability to run git at all.
func isCommandFailure(executionError error) bool {
	commandFailure := execshell.CommandFailedError{}
	return errors.As(executionError, &commandFailure)
}

func parseCurrentBranch(branchOutput string) string {
	for _, branchLine := range strings.Split(branchOutput, "\n") {
		if strings.HasPrefix(branchLine, currentBranchLinePrefixConstant) {
			return strings.TrimSpace(strings.TrimPrefix(branchLine, currentBranchLinePrefixConstant))
		}
	}
	return ""
}

func parseUpstreamReference(upstreamOutput string) (string, string) {
	trimmedReference := strings.TrimSpace(upstreamOutput)
	if len(trimmedReference) == 0 {
		return "", ""
	}
	remoteName, branchName, found := strings.Cut(trimmedReference, remoteReferenceSeparatorConstant)
	if !found {
		return "", trimmedReference
	}
	return remoteName, branchName
}

func parseAheadBehindCounts(countOutput string) (uint, uint) {
	countFields := strings.Fields(countOutput)
	if len(countFields) != revListCountFieldCountConstant {
		return 0, 0
	}
	behindCount, behindError := strconv.ParseUint(countFields[0], 10, 32)
	aheadCount, aheadError := strconv.ParseUint(countFields[1], 10, 32)
	if behindError != nil || aheadError != nil {
		return 0, 0
	}
	return uint(behindCount), uint(aheadCount)
}

func parsePorcelainStatus(statusOutput string) (bool, bool, bool) {
	unstagedChanges := false
	stagedChanges := false
	untrackedFiles := false
	for _, statusLine := range strings.Split(statusOutput, "\n") {
		if len(statusLine) < 2 {
			continue
		}
		if strings.HasPrefix(statusLine, untrackedPorcelainPrefixConstant) {
			untrackedFiles = true
			continue
		}
		stagedRune := rune(statusLine[0])
		unstagedRune := rune(statusLine[1])
		if stagedRune == porcelainIgnoredStatusRuneConstant {
			continue
		}
		if stagedRune != ' ' {
			stagedChanges = true
		}
		if unstagedRune != ' ' {
			unstagedChanges = true
		}
	}
	return unstagedChanges, stagedChanges, untrackedFiles
}
