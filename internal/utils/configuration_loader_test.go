package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repostate/internal/utils"
)

type loaderTestConfiguration struct {
	Common struct {
		LogLevel  string `mapstructure:"log_level"`
		LogFormat string `mapstructure:"log_format"`
	} `mapstructure:"common"`
	Compare struct {
		Manifest string `mapstructure:"manifest"`
		Fit      bool   `mapstructure:"fit"`
	} `mapstructure:"compare"`
}

const loaderConfigurationFixtureConstant = `common:
  log_level: debug
compare:
  manifest: workspace.repos
`

func TestLoadConfigurationAppliesDefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	loader := utils.NewConfigurationLoader("config", "yaml", "REPOSTATE", []string{t.TempDir()})

	defaultValues := map[string]any{
		"common.log_level":  "info",
		"common.log_format": "structured",
		"compare.fit":       true,
	}

	var configuration loaderTestConfiguration
	loadedConfiguration, loadError := loader.LoadConfiguration("", defaultValues, &configuration)
	require.NoError(t, loadError)
	require.Empty(t, loadedConfiguration.ConfigFileUsed)
	require.Equal(t, "info", configuration.Common.LogLevel)
	require.Equal(t, "structured", configuration.Common.LogFormat)
	require.True(t, configuration.Compare.Fit)
}

func TestLoadConfigurationMergesFileOverDefaults(t *testing.T) {
	t.Parallel()

	configurationDirectory := t.TempDir()
	configurationFilePath := filepath.Join(configurationDirectory, "config.yaml")
	require.NoError(t, os.WriteFile(configurationFilePath, []byte(loaderConfigurationFixtureConstant), 0o644))

	loader := utils.NewConfigurationLoader("config", "yaml", "REPOSTATE", []string{configurationDirectory})

	defaultValues := map[string]any{
		"common.log_level":  "info",
		"common.log_format": "structured",
		"compare.fit":       true,
	}

	var configuration loaderTestConfiguration
	loadedConfiguration, loadError := loader.LoadConfiguration("", defaultValues, &configuration)
	require.NoError(t, loadError)
	require.Equal(t, configurationFilePath, loadedConfiguration.ConfigFileUsed)
	require.Equal(t, "debug", configuration.Common.LogLevel)
	require.Equal(t, "structured", configuration.Common.LogFormat)
	require.Equal(t, "workspace.repos", configuration.Compare.Manifest)
	require.True(t, configuration.Compare.Fit)
}

func TestLoadConfigurationExplicitFile(t *testing.T) {
	t.Parallel()

	configurationFilePath := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(configurationFilePath, []byte(loaderConfigurationFixtureConstant), 0o644))

	loader := utils.NewConfigurationLoader("config", "yaml", "REPOSTATE", nil)

	var configuration loaderTestConfiguration
	loadedConfiguration, loadError := loader.LoadConfiguration(configurationFilePath, nil, &configuration)
	require.NoError(t, loadError)
	require.Equal(t, configurationFilePath, loadedConfiguration.ConfigFileUsed)
	require.Equal(t, "debug", configuration.Common.LogLevel)
}

func TestLoadConfigurationInvalidFileFails(t *testing.T) {
	t.Parallel()

	configurationFilePath := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(configurationFilePath, []byte("common: [broken"), 0o644))

	loader := utils.NewConfigurationLoader("config", "yaml", "REPOSTATE", nil)

	var configuration loaderTestConfiguration
	_, loadError := loader.LoadConfiguration(configurationFilePath, nil, &configuration)
	require.Error(t, loadError)
}
