package compare

import "strings"

const (
	configurationRootsKeyConstant          = "roots"
	configurationManifestKeyConstant       = "manifest"
	configurationSignificantKeyConstant    = "significant"
	configurationFitKeyConstant            = "fit"
	configurationWidthKeyConstant          = "width"
	configurationColorKeyConstant          = "color"
	configurationJobsKeyConstant           = "jobs"
	configurationBranchNamesKeyConstant    = "allowed_branch_names"
	configurationBranchPrefixesKeyConstant = "allowed_branch_prefixes"
	configurationKeySeparatorConstant      = "."
	defaultWorkspaceRootConstant           = "."
	defaultFitEnabledConstant              = true
	defaultColorEnabledConstant            = true
	defaultSignificantOnlyConstant         = false
	defaultWidthOverrideConstant           = 0
)

// CommandConfiguration captures configuration values for the compare command.
type CommandConfiguration struct {
	WorkspaceRoots        []string `mapstructure:"roots"`
	ManifestPath          string   `mapstructure:"manifest"`
	SignificantOnly       bool     `mapstructure:"significant"`
	FitEnabled            bool     `mapstructure:"fit"`
	WidthOverride         int      `mapstructure:"width"`
	ColorEnabled          bool     `mapstructure:"color"`
	CollectionJobs        int      `mapstructure:"jobs"`
	AllowedBranchNames    []string `mapstructure:"allowed_branch_names"`
	AllowedBranchPrefixes []string `mapstructure:"allowed_branch_prefixes"`
}

// DefaultCommandConfiguration returns baseline configuration values for compare.
func DefaultCommandConfiguration() CommandConfiguration {
	defaultPolicy := DefaultBranchNamePolicy()
	return CommandConfiguration{
		WorkspaceRoots:        []string{defaultWorkspaceRootConstant},
		ManifestPath:          "",
		SignificantOnly:       defaultSignificantOnlyConstant,
		FitEnabled:            defaultFitEnabledConstant,
		WidthOverride:         defaultWidthOverrideConstant,
		ColorEnabled:          defaultColorEnabledConstant,
		CollectionJobs:        defaultCollectionJobLimitConstant,
		AllowedBranchNames:    defaultPolicy.AllowedNames,
		AllowedBranchPrefixes: defaultPolicy.AllowedPrefixes,
	}
}

// DefaultConfigurationValues produces Viper defaults for the compare command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationRootsKeyConstant:          defaults.WorkspaceRoots,
		rootKey + configurationKeySeparatorConstant + configurationManifestKeyConstant:       defaults.ManifestPath,
		rootKey + configurationKeySeparatorConstant + configurationSignificantKeyConstant:    defaults.SignificantOnly,
		rootKey + configurationKeySeparatorConstant + configurationFitKeyConstant:            defaults.FitEnabled,
		rootKey + configurationKeySeparatorConstant + configurationWidthKeyConstant:          defaults.WidthOverride,
		rootKey + configurationKeySeparatorConstant + configurationColorKeyConstant:          defaults.ColorEnabled,
		rootKey + configurationKeySeparatorConstant + configurationJobsKeyConstant:           defaults.CollectionJobs,
		rootKey + configurationKeySeparatorConstant + configurationBranchNamesKeyConstant:    defaults.AllowedBranchNames,
		rootKey + configurationKeySeparatorConstant + configurationBranchPrefixesKeyConstant: defaults.AllowedBranchPrefixes,
	}
}

// sanitize normalizes configuration values and restores defaults for
// missing or blank entries.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.WorkspaceRoots = trimValues(configuration.WorkspaceRoots)
	if len(sanitized.WorkspaceRoots) == 0 {
		sanitized.WorkspaceRoots = []string{defaultWorkspaceRootConstant}
	}
	sanitized.ManifestPath = strings.TrimSpace(configuration.ManifestPath)
	if sanitized.CollectionJobs <= 0 {
		sanitized.CollectionJobs = defaultCollectionJobLimitConstant
	}
	if sanitized.WidthOverride < 0 {
		sanitized.WidthOverride = defaultWidthOverrideConstant
	}
	sanitized.AllowedBranchNames = trimValues(configuration.AllowedBranchNames)
	sanitized.AllowedBranchPrefixes = trimValues(configuration.AllowedBranchPrefixes)
	defaultPolicy := DefaultBranchNamePolicy()
	if len(sanitized.AllowedBranchNames) == 0 {
		sanitized.AllowedBranchNames = defaultPolicy.AllowedNames
	}
	if len(sanitized.AllowedBranchPrefixes) == 0 {
		sanitized.AllowedBranchPrefixes = defaultPolicy.AllowedPrefixes
	}
	return sanitized
}

// branchNamePolicy materializes the allow-list carried by the configuration.
func (configuration CommandConfiguration) branchNamePolicy() BranchNamePolicy {
	return BranchNamePolicy{
		AllowedNames:    configuration.AllowedBranchNames,
		AllowedPrefixes: configuration.AllowedBranchPrefixes,
	}
}

func trimValues(values []string) []string {
	trimmedValues := make([]string, 0, len(values))
	for _, value := range values {
		trimmedValue := strings.TrimSpace(value)
		if len(trimmedValue) > 0 {
			trimmedValues = append(trimmedValues, trimmedValue)
		}
	}
	return trimmedValues
}
