package summary

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/candidates/internal/console"
	"github.com/temirov/candidates/internal/filesystem"
	"github.com/temirov/candidates/internal/readme"
)

const (
	commandUseNameConstant          = "table-generate"
	commandShortDescriptionConstant = "Regenerate the candidates summary table inside README.md"
	commandLongDescriptionConstant  = "table-generate counts the class and method candidates recorded for every repository under each status directory, renders a markdown table stamped with the current time and replaces the region between the README table markers."
	commandExampleConstant          = "candidates table-generate --candidates ./candidates --readme ./README.md"
	candidatesFlagNameConstant      = "candidates"
	candidatesFlagUsageConstant     = "Root directory holding one subdirectory per review status"
	readmeFlagNameConstant          = "readme"
	readmeFlagUsageConstant         = "README file containing the table markers"
	timezoneFlagNameConstant        = "timezone"
	timezoneFlagUsageConstant       = "IANA timezone used for the table timestamp (\"local\" for the system timezone)"
	totalsFlagNameConstant          = "totals"
	totalsFlagUsageConstant         = "Append a totals row to the table"
	skipUnchangedFlagNameConstant   = "skip-unchanged"
	skipUnchangedFlagUsageConstant  = "Leave the README untouched when only the timestamp would change"
	dryRunFlagNameConstant          = "dry-run"
	dryRunFlagUsageConstant         = "Print the rendered table instead of writing the README"
	welcomeMessageConstant          = "Welcome to the Candidates Summary Table Generator!"
	finishedMessageConstant         = "Program finished."
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the table-generate command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	FileSystem            filesystem.FileSystem
	Clock                 Clock
	LockFactory           readme.LockFactory
}

// Build constructs the table-generate command.
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
	command.Flags().String(candidatesFlagNameConstant, defaults.CandidatesDirectory, candidatesFlagUsageConstant)
	command.Flags().String(readmeFlagNameConstant, defaults.ReadmePath, readmeFlagUsageConstant)
	command.Flags().String(timezoneFlagNameConstant, defaults.Timezone, timezoneFlagUsageConstant)
	command.Flags().Bool(totalsFlagNameConstant, defaults.IncludeTotals, totalsFlagUsageConstant)
	command.Flags().Bool(skipUnchangedFlagNameConstant, defaults.SkipIfUnchanged, skipUnchangedFlagUsageConstant)
	command.Flags().Bool(dryRunFlagNameConstant, defaults.DryRun, dryRunFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration(command)
	logger := builder.resolveLogger()
	reporter := console.NewWriterReporter(command.OutOrStdout())

	location, locationError := ResolveLocation(configuration.Timezone)
	if locationError != nil {
		return locationError
	}

	fileSystem := builder.FileSystem
	if fileSystem == nil {
		fileSystem = filesystem.NewOSFileSystem()
	}

	service, serviceError := NewService(ServiceDependencies{
		FileSystem:  fileSystem,
		Reporter:    reporter,
		Logger:      logger,
		Clock:       builder.resolveClock(),
		LockFactory: builder.LockFactory,
	})
	if serviceError != nil {
		return serviceError
	}

	reporter.Plain(welcomeMessageConstant)

	_, generateError := service.Generate(command.Context(), Options{
		CandidatesDirectory: configuration.CandidatesDirectory,
		ReadmePath:          configuration.ReadmePath,
		Location:            location,
		IncludeTotals:       configuration.IncludeTotals,
		SkipIfUnchanged:     configuration.SkipIfUnchanged,
		DryRun:              configuration.DryRun,
	})
	if generateError != nil {
		return generateError
	}

	reporter.Plain(finishedMessageConstant)
	return nil
}

func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command) CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	flagSet := command.Flags()
	if flagSet.Changed(candidatesFlagNameConstant) {
		configuration.CandidatesDirectory, _ = flagSet.GetString(candidatesFlagNameConstant)
	}
	if flagSet.Changed(readmeFlagNameConstant) {
		configuration.ReadmePath, _ = flagSet.GetString(readmeFlagNameConstant)
	}
	if flagSet.Changed(timezoneFlagNameConstant) {
		configuration.Timezone, _ = flagSet.GetString(timezoneFlagNameConstant)
	}
	if flagSet.Changed(totalsFlagNameConstant) {
		configuration.IncludeTotals, _ = flagSet.GetBool(totalsFlagNameConstant)
	}
	if flagSet.Changed(skipUnchangedFlagNameConstant) {
		configuration.SkipIfUnchanged, _ = flagSet.GetBool(skipUnchangedFlagNameConstant)
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

func (builder *CommandBuilder) resolveClock() Clock {
	if builder.Clock == nil {
		return time.Now
	}
	return builder.Clock
}
