package summary

import "strings"

const (
	defaultCandidatesDirectoryConstant = "./candidates"
	defaultReadmePathConstant          = "./README.md"
	defaultTimezoneConstant            = "America/Sao_Paulo"
	candidatesDirectoryConfigKey       = "candidates_directory"
	readmePathConfigKey                = "readme_path"
	timezoneConfigKey                  = "timezone"
	includeTotalsConfigKey             = "include_totals"
	skipIfUnchangedConfigKey           = "skip_if_unchanged"
	dryRunConfigKey                    = "dry_run"
	configurationKeySeparator          = "."
)

// CommandConfiguration captures configuration values for the table-generate command.
type CommandConfiguration struct {
	CandidatesDirectory string `mapstructure:"candidates_directory"`
	ReadmePath          string `mapstructure:"readme_path"`
	Timezone            string `mapstructure:"timezone"`
	IncludeTotals       bool   `mapstructure:"include_totals"`
	SkipIfUnchanged     bool   `mapstructure:"skip_if_unchanged"`
	DryRun              bool   `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration provides baseline configuration values for table-generate.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		CandidatesDirectory: defaultCandidatesDirectoryConstant,
		ReadmePath:          defaultReadmePathConstant,
		Timezone:            defaultTimezoneConstant,
		IncludeTotals:       true,
		SkipIfUnchanged:     true,
		DryRun:              false,
	}
}

// DefaultConfigurationValues returns the Viper defaults for the command rooted at configurationPrefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	keyPrefix := configurationPrefix + configurationKeySeparator
	return map[string]any{
		keyPrefix + candidatesDirectoryConfigKey: defaults.CandidatesDirectory,
		keyPrefix + readmePathConfigKey:          defaults.ReadmePath,
		keyPrefix + timezoneConfigKey:            defaults.Timezone,
		keyPrefix + includeTotalsConfigKey:       defaults.IncludeTotals,
		keyPrefix + skipIfUnchangedConfigKey:     defaults.SkipIfUnchanged,
		keyPrefix + dryRunConfigKey:              defaults.DryRun,
	}
}

// Sanitize trims values and restores defaults for blank paths.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	defaults := DefaultCommandConfiguration()

	sanitized.CandidatesDirectory = strings.TrimSpace(configuration.CandidatesDirectory)
	if len(sanitized.CandidatesDirectory) == 0 {
		sanitized.CandidatesDirectory = defaults.CandidatesDirectory
	}

	sanitized.ReadmePath = strings.TrimSpace(configuration.ReadmePath)
	if len(sanitized.ReadmePath) == 0 {
		sanitized.ReadmePath = defaults.ReadmePath
	}

	sanitized.Timezone = strings.TrimSpace(configuration.Timezone)

	return sanitized
}
