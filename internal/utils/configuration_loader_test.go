package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/candidates/internal/utils"
)

const (
	testEnvironmentPrefixConstant                  = "TESTCANDIDATES"
	testReadmePathKeyConstant                      = "tools.table.readme_path"
	testReadmePathEnvironmentNameConstant          = "TESTCANDIDATES_TOOLS_TABLE_README_PATH"
	testDefaultReadmePathConstant                  = "./README.md"
	testEmbeddedReadmePathConstant                 = "./docs/README.md"
	testFileReadmePathConstant                     = "./site/README.md"
	testEnvironmentReadmePathConstant              = "/srv/review/README.md"
	testConfigFileNameConstant                     = "config.yaml"
	testConfigContentTemplateConstant              = "tools:\n  table:\n    readme_path: %s\n"
	testConfigurationNameConstant                  = "config"
	testConfigurationTypeConstant                  = "yaml"
	configurationLoaderSubtestNameTemplateConstant = "%d_%s"
)

type configurationFixture struct {
	Tools configurationToolsFixture `mapstructure:"tools"`
}

type configurationToolsFixture struct {
	Table configurationTableFixture `mapstructure:"table"`
}

type configurationTableFixture struct {
	ReadmePath string `mapstructure:"readme_path"`
}

func TestConfigurationLoaderLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		embeddedReadmePath    string
		fileReadmePath        string
		environmentReadmePath string
		expectedReadmePath    string
	}{
		{
			name:               "defaults are applied",
			expectedReadmePath: testDefaultReadmePathConstant,
		},
		{
			name:               "embedded configuration overrides defaults",
			embeddedReadmePath: testEmbeddedReadmePathConstant,
			expectedReadmePath: testEmbeddedReadmePathConstant,
		},
		{
			name:               "configuration file overrides embedded configuration",
			embeddedReadmePath: testEmbeddedReadmePathConstant,
			fileReadmePath:     testFileReadmePathConstant,
			expectedReadmePath: testFileReadmePathConstant,
		},
		{
			name:                  "environment overrides configuration file",
			embeddedReadmePath:    testEmbeddedReadmePathConstant,
			fileReadmePath:        testFileReadmePathConstant,
			environmentReadmePath: testEnvironmentReadmePathConstant,
			expectedReadmePath:    testEnvironmentReadmePathConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			temporaryDirectory := testInstance.TempDir()

			configurationFilePath := ""
			if len(testCase.fileReadmePath) > 0 {
				configurationFilePath = filepath.Join(temporaryDirectory, testConfigFileNameConstant)
				configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testCase.fileReadmePath)
				require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))
			}

			if len(testCase.environmentReadmePath) > 0 {
				testInstance.Setenv(testReadmePathEnvironmentNameConstant, testCase.environmentReadmePath)
			}

			configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{temporaryDirectory})
			if len(testCase.embeddedReadmePath) > 0 {
				configurationLoader.SetEmbeddedConfiguration([]byte(fmt.Sprintf(testConfigContentTemplateConstant, testCase.embeddedReadmePath)), testConfigurationTypeConstant)
			}

			defaultValues := map[string]any{
				testReadmePathKeyConstant: testDefaultReadmePathConstant,
			}

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedReadmePath, loadedConfiguration.Tools.Table.ReadmePath)

			if len(configurationFilePath) > 0 {
				require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
			} else {
				require.Empty(testInstance, metadata.ConfigFileUsed)
			}
		})
	}
}

func TestConfigurationLoaderDiscoversFileInSearchPath(testInstance *testing.T) {
	searchDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(searchDirectory, testConfigFileNameConstant)
	configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testFileReadmePathConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{searchDirectory})

	loadedConfiguration := configurationFixture{}
	metadata, loadError := configurationLoader.LoadConfiguration("", nil, &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, testFileReadmePathConstant, loadedConfiguration.Tools.Table.ReadmePath)
	require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
}

func TestConfigurationLoaderRejectsMissingExplicitFile(testInstance *testing.T) {
	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration(filepath.Join(testInstance.TempDir(), "absent.yaml"), nil, &loadedConfiguration)
	require.ErrorContains(testInstance, loadError, "failed to read configuration")
}

func TestConfigurationLoaderRequiresTarget(testInstance *testing.T) {
	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	_, loadError := configurationLoader.LoadConfiguration("", nil, nil)
	require.ErrorIs(testInstance, loadError, utils.ErrConfigurationTargetMissing)
}
