package sorter

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/candidates/internal/console"
	"github.com/temirov/candidates/internal/filesystem"
)

const (
	commandUseNameConstant          = "files-sort"
	commandShortDescriptionConstant = "Move awaiting-review CSV files into per-repository directories"
	commandLongDescriptionConstant  = "files-sort scans the awaiting-review directory once, derives the repository name from the text before the first underscore of each CSV file name, creates a directory for it when missing and moves the repository's files into it."
	commandExampleConstant          = "candidates files-sort --directory ./candidates/awaiting_review"
	directoryFlagNameConstant       = "directory"
	directoryFlagUsageConstant      = "Directory containing the CSV files to organize"
	patternFlagNameConstant         = "pattern"
	patternFlagUsageConstant        = "Glob selecting the files to organize"
	dryRunFlagNameConstant          = "dry-run"
	dryRunFlagUsageConstant         = "Report the planned moves without changing the file system"
	startMessageConstant            = "Organizing the Awaiting Review files in subdirectories according to the repository name..."
	completionMessageConstant       = "\nProcess completed!"
	summaryMessageTemplateConstant  = "%d file(s) moved, %d directory(ies) created."
	logMessageCommandCompleted      = "files-sort completed"
	logFieldMovedCount              = "moved_files"
	logFieldCreatedCount            = "created_directories"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the files-sort command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	FileSystem            filesystem.FileSystem
}

// Build constructs the files-sort command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseNameConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.NoArgs,
		RunE:    builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(directoryFlagNameConstant, defaults.Directory, directoryFlagUsageConstant)
	command.Flags().String(patternFlagNameConstant, defaults.FilePattern, patternFlagUsageConstant)
	command.Flags().Bool(dryRunFlagNameConstant, defaults.DryRun, dryRunFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration(command)
	logger := builder.resolveLogger()
	reporter := console.NewWriterReporter(command.OutOrStdout())

	fileSystem := builder.FileSystem
	if fileSystem == nil {
		fileSystem = filesystem.NewOSFileSystem()
	}

	service, serviceError := NewService(ServiceDependencies{FileSystem: fileSystem, Reporter: reporter, Logger: logger})
	if serviceError != nil {
		return serviceError
	}

	reporter.Plain(startMessageConstant)

	result, organizeError := service.Organize(command.Context(), Options{
		Directory:   configuration.Directory,
		FilePattern: configuration.FilePattern,
		DryRun:      configuration.DryRun,
	})
	if organizeError != nil {
		return organizeError
	}

	logger.Info(
		logMessageCommandCompleted,
		zap.String(logFieldDirectory, result.Directory),
		zap.Int(logFieldMovedCount, len(result.Moves)),
		zap.Int(logFieldCreatedCount, len(result.CreatedDirectories)),
	)

	reporter.Info(summaryMessageTemplateConstant, len(result.Moves), len(result.CreatedDirectories))
	reporter.Success(completionMessageConstant)
	return nil
}

func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command) CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	flagSet := command.Flags()
	if flagSet.Changed(directoryFlagNameConstant) {
		configuration.Directory, _ = flagSet.GetString(directoryFlagNameConstant)
	}
	if flagSet.Changed(patternFlagNameConstant) {
		configuration.FilePattern, _ = flagSet.GetString(patternFlagNameConstant)
	}
	if flagSet.Changed(dryRunFlagNameConstant) {
		configuration.DryRun, _ = flagSet.GetBool(dryRunFlagNameConstant)
	}

	return configuration.Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
