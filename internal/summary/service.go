package summary

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/candidates/internal/candidates"
	"github.com/temirov/candidates/internal/console"
	"github.com/temirov/candidates/internal/filesystem"
	"github.com/temirov/candidates/internal/readme"
)

const (
	fileSystemMissingMessageConstant   = "file system not configured"
	candidatesDirectoryRequiredMessage = "candidates directory must be provided"
	readmeInspectionFailureTemplate    = "failed to inspect %s: %w"
	readmeMissingMessageTemplate       = "%s file not found. Exiting program."
	generatingTableMessageConstant     = "Generating markdown table with candidate counts for each repository..."
	unchangedMessageConstant           = "No changes detected in the table. Skipping update."
	updatedMessageTemplate             = "%s updated successfully!"
	markersMissingMessageTemplate      = "Failed to update %s. Table markers not found."
	logMessageRowsCollected            = "candidate rows collected"
	logMessageGenerationFinished       = "summary generation finished"
	logFieldCandidatesDirectory        = "candidates_directory"
	logFieldReadmePath                 = "readme_path"
	logFieldRowCount                   = "row_count"
	logFieldOutcome                    = "outcome"
	logFieldDryRun                     = "dry_run"
)

// ErrFileSystemNotConfigured indicates the file system dependency was missing.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// ErrCandidatesDirectoryRequired indicates the candidates directory option was empty.
var ErrCandidatesDirectoryRequired = errors.New(candidatesDirectoryRequiredMessage)

// Clock returns the current time.
type Clock func() time.Time

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	FileSystem  filesystem.FileSystem
	Reporter    console.Reporter
	Logger      *zap.Logger
	Clock       Clock
	LockFactory readme.LockFactory
}

// Options configure a generation run.
type Options struct {
	CandidatesDirectory string
	ReadmePath          string
	Location            *time.Location
	IncludeTotals       bool
	SkipIfUnchanged     bool
	DryRun              bool
}

// Report captures what a generation run produced.
type Report struct {
	Rows      []candidates.TableRow
	Table     candidates.MarkdownTable
	Outcome   readme.Outcome
	Previewed bool
}

// Service regenerates the README candidates table.
type Service struct {
	fileSystem filesystem.FileSystem
	collector  *candidates.Collector
	updater    *readme.Updater
	reporter   console.Reporter
	logger     *zap.Logger
	clock      Clock
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}

	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = console.DiscardReporter{}
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	clock := dependencies.Clock
	if clock == nil {
		clock = time.Now
	}

	updater, updaterError := readme.NewUpdater(readme.UpdaterDependencies{
		FileSystem:  dependencies.FileSystem,
		LockFactory: dependencies.LockFactory,
		Logger:      logger,
	})
	if updaterError != nil {
		return nil, updaterError
	}

	counter := candidates.NewCandidateCounter(dependencies.FileSystem, reporter, logger)

	return &Service{
		fileSystem: dependencies.FileSystem,
		collector:  candidates.NewCollector(dependencies.FileSystem, counter, reporter, logger),
		updater:    updater,
		reporter:   reporter,
		logger:     logger,
		clock:      clock,
	}, nil
}

// Generate collects candidate counts, renders the summary table and splices it into the README.
// A missing README or missing markers are reported and end the run without an error.
func (service *Service) Generate(executionContext context.Context, options Options) (Report, error) {
	candidatesDirectory := strings.TrimSpace(options.CandidatesDirectory)
	if len(candidatesDirectory) == 0 {
		return Report{}, ErrCandidatesDirectoryRequired
	}
	readmePath := strings.TrimSpace(options.ReadmePath)
	if len(readmePath) == 0 {
		return Report{}, readme.ErrReadmePathRequired
	}

	if !options.DryRun {
		readmeExists, inspectionError := service.readmeExists(readmePath)
		if inspectionError != nil {
			return Report{}, inspectionError
		}
		if !readmeExists {
			service.reporter.Error(readmeMissingMessageTemplate, filepath.Base(readmePath))
			return Report{Outcome: readme.OutcomeReadmeMissing}, nil
		}
	}

	service.reporter.Info(generatingTableMessageConstant)

	rows, collectError := service.collector.BuildRows(candidatesDirectory)
	if collectError != nil {
		return Report{}, collectError
	}
	rows = candidates.SortTableRows(rows)

	service.logger.Debug(
		logMessageRowsCollected,
		zap.String(logFieldCandidatesDirectory, candidatesDirectory),
		zap.Int(logFieldRowCount, len(rows)),
	)

	location := options.Location
	if location == nil {
		location = time.Local
	}
	timestamp := service.clock().In(location).Format(candidates.TimestampLayout)
	table := candidates.MarkdownRenderer{IncludeTotals: options.IncludeTotals}.Render(rows, timestamp)

	report := Report{Rows: rows, Table: table}

	if options.DryRun {
		service.reporter.Plain("%s", table.String())
		report.Outcome = readme.OutcomeUnchanged
		report.Previewed = true
		service.logGeneration(candidatesDirectory, readmePath, report, true)
		return report, nil
	}

	outcome, updateError := service.updater.Update(executionContext, readme.Request{
		ReadmePath:      readmePath,
		Lines:           table.Lines(),
		Markers:         readme.DefaultMarkers(),
		SkipIfUnchanged: options.SkipIfUnchanged,
	})
	if updateError != nil {
		return report, updateError
	}
	report.Outcome = outcome

	readmeName := filepath.Base(readmePath)
	switch outcome {
	case readme.OutcomeUpdated:
		service.reporter.Success(updatedMessageTemplate, service.reporter.Highlight(readmeName))
	case readme.OutcomeUnchanged:
		service.reporter.Success(unchangedMessageConstant)
	case readme.OutcomeMarkersMissing:
		service.reporter.Error(markersMissingMessageTemplate, readmeName)
	case readme.OutcomeReadmeMissing:
		service.reporter.Error(readmeMissingMessageTemplate, readmeName)
	}

	service.logGeneration(candidatesDirectory, readmePath, report, false)
	return report, nil
}

func (service *Service) readmeExists(readmePath string) (bool, error) {
	_, statError := service.fileSystem.Stat(readmePath)
	if statError == nil {
		return true, nil
	}
	if errors.Is(statError, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf(readmeInspectionFailureTemplate, readmePath, statError)
}

func (service *Service) logGeneration(candidatesDirectory string, readmePath string, report Report, dryRun bool) {
	service.logger.Info(
		logMessageGenerationFinished,
		zap.String(logFieldCandidatesDirectory, candidatesDirectory),
		zap.String(logFieldReadmePath, readmePath),
		zap.Int(logFieldRowCount, len(report.Rows)),
		zap.Stringer(logFieldOutcome, report.Outcome),
		zap.Bool(logFieldDryRun, dryRun),
	)
}
