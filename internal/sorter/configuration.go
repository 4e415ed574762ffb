package sorter

import "strings"

const (
	defaultDirectoryConstant   = "./candidates/awaiting_review"
	defaultFilePatternConstant = "*.csv"
	directoryConfigKeyConstant = "directory"
	patternConfigKeyConstant   = "pattern"
	dryRunConfigKeyConstant    = "dry_run"
	configurationKeySeparator  = "."
)

// CommandConfiguration captures configuration values for the files-sort command.
type CommandConfiguration struct {
	Directory   string `mapstructure:"directory"`
	FilePattern string `mapstructure:"pattern"`
	DryRun      bool   `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration provides baseline configuration values for files-sort.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Directory:   defaultDirectoryConstant,
		FilePattern: defaultFilePatternConstant,
		DryRun:      false,
	}
}

// DefaultConfigurationValues returns the Viper defaults for the command rooted at configurationPrefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationPrefix + configurationKeySeparator + directoryConfigKeyConstant: defaults.Directory,
		configurationPrefix + configurationKeySeparator + patternConfigKeyConstant:   defaults.FilePattern,
		configurationPrefix + configurationKeySeparator + dryRunConfigKeyConstant:    defaults.DryRun,
	}
}

// Sanitize trims values and restores defaults for blank entries.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	defaults := DefaultCommandConfiguration()

	sanitized.Directory = strings.TrimSpace(configuration.Directory)
	if len(sanitized.Directory) == 0 {
		sanitized.Directory = defaults.Directory
	}

	sanitized.FilePattern = strings.TrimSpace(configuration.FilePattern)
	if len(sanitized.FilePattern) == 0 {
		sanitized.FilePattern = defaults.FilePattern
	}

	return sanitized
}
