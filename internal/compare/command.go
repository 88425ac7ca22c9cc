package compare

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/temirov/repostate/internal/execshell"
	"github.com/temirov/repostate/internal/ui"
	"github.com/temirov/repostate/internal/utils"
	flagutils "github.com/temirov/repostate/internal/utils/flags"
	pathutils "github.com/temirov/repostate/internal/utils/path"
	"github.com/temirov/repostate/internal/workspace"
)

const (
	compareUseConstant              = "compare [root ...]"
	compareShortDescriptionConstant = "Compare workspace repositories against their manifest"
	compareLongDescriptionConstant  = "compare inspects every git repository under the workspace roots, classifies each against the manifest, and prints a width-adaptive comparison table with a contextual legend."

	manifestFlagNameConstant     = "manifest"
	manifestFlagUsageConstant    = "path to the repository manifest; discovered in the workspace root when omitted"
	significantFlagNameConstant  = "significant"
	significantFlagShortConstant = "s"
	significantFlagUsageConstant = "show only repositories that need attention"
	fitFlagNameConstant          = "fit"
	fitFlagUsageConstant         = "narrow the table to the terminal width"
	widthFlagNameConstant        = "width"
	widthFlagUsageConstant       = "table width budget in columns; 0 probes the terminal"
	colorFlagNameConstant        = "color"
	colorFlagUsageConstant       = "colorize the table and legend"
	jobsFlagNameConstant         = "jobs"
	jobsFlagUsageConstant        = "maximum concurrent repository queries"
)

// LoggerProvider supplies the logger used during command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the configuration resolved by the application.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the compare command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	Discoverer                   workspace.RepositoryDiscoverer
	GitExecutor                  GitExecutor
	WidthProber                  WidthProber
	HumanReadableLoggingProvider func() bool

	manifestFlagValue    string
	significantFlagValue bool
	fitFlagValue         bool
	widthFlagValue       int
	colorFlagValue       bool
	jobsFlagValue        int
}

// Build constructs the compare command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   compareUseConstant,
		Short: compareShortDescriptionConstant,
		Long:  compareLongDescriptionConstant,
		Args:  cobra.ArbitraryArgs,
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	flagSet := command.Flags()
	flagSet.StringVar(&builder.manifestFlagValue, manifestFlagNameConstant, defaults.ManifestPath, manifestFlagUsageConstant)
	flagutils.AddToggleFlag(flagSet, &builder.significantFlagValue, significantFlagNameConstant, significantFlagShortConstant, defaults.SignificantOnly, significantFlagUsageConstant)
	flagutils.AddToggleFlag(flagSet, &builder.fitFlagValue, fitFlagNameConstant, "", defaults.FitEnabled, fitFlagUsageConstant)
	flagSet.IntVar(&builder.widthFlagValue, widthFlagNameConstant, defaults.WidthOverride, widthFlagUsageConstant)
	flagutils.AddToggleFlag(flagSet, &builder.colorFlagValue, colorFlagNameConstant, "", defaults.ColorEnabled, colorFlagUsageConstant)
	flagSet.IntVar(&builder.jobsFlagValue, jobsFlagNameConstant, defaults.CollectionJobs, jobsFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	configuration = builder.applyFlagOverrides(command, configuration)

	workspaceRoots := configuration.WorkspaceRoots
	if len(arguments) > 0 {
		workspaceRoots = arguments
	}
	configuration.WorkspaceRoots = pathutils.NewWorkspaceRootSanitizer().Sanitize(workspaceRoots)

	logger := builder.resolveLogger()

	gitExecutor, executorError := builder.resolveGitExecutor(logger)
	if executorError != nil {
		return executorError
	}

	widthProber := builder.WidthProber
	if widthProber == nil {
		widthProber = probeTerminalWidth
	}

	service, serviceError := NewService(ServiceDependencies{
		Logger:      logger,
		Discoverer:  builder.resolveDiscoverer(),
		GitExecutor: gitExecutor,
		WidthProber: widthProber,
		Output:      utils.NewFlushingWriter(command.OutOrStdout()),
	})
	if serviceError != nil {
		return serviceError
	}

	return service.Compare(command.Context(), configuration)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

// applyFlagOverrides lets explicitly set flags win over file and environment
// configuration. Unset flags leave the resolved configuration untouched.
func (builder *CommandBuilder) applyFlagOverrides(command *cobra.Command, configuration CommandConfiguration) CommandConfiguration {
	flagSet := command.Flags()
	if flagSet.Changed(manifestFlagNameConstant) {
		configuration.ManifestPath = builder.manifestFlagValue
	}
	if flagSet.Changed(significantFlagNameConstant) {
		configuration.SignificantOnly = builder.significantFlagValue
	}
	if flagSet.Changed(fitFlagNameConstant) {
		configuration.FitEnabled = builder.fitFlagValue
	}
	if flagSet.Changed(widthFlagNameConstant) {
		configuration.WidthOverride = builder.widthFlagValue
	}
	if flagSet.Changed(colorFlagNameConstant) {
		configuration.ColorEnabled = builder.colorFlagValue
	}
	if flagSet.Changed(jobsFlagNameConstant) {
		configuration.CollectionJobs = builder.jobsFlagValue
	}
	return configuration
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider != nil {
		if logger := builder.LoggerProvider(); logger != nil {
			return logger
		}
	}
	return zap.NewNop()
}

func (builder *CommandBuilder) resolveDiscoverer() workspace.RepositoryDiscoverer {
	if builder.Discoverer != nil {
		return builder.Discoverer
	}
	return workspace.NewFilesystemRepositoryDiscoverer()
}

func (builder *CommandBuilder) resolveGitExecutor(logger *zap.Logger) (GitExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}

	var observer execshell.CommandEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		observer = ui.NewConsoleCommandEventLogger(logger)
	}
	return execshell.NewShellExecutorWithObserver(logger, execshell.NewOSCommandRunner(), observer)
}

func probeTerminalWidth() int {
	terminalWidth, _, probeError := term.GetSize(int(os.Stdout.Fd()))
	if probeError != nil {
		return 0
	}
	return terminalWidth
}
