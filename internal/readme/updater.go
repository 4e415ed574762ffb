package readme

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/candidates/internal/filesystem"
)

const (
	fileSystemMissingMessageConstant    = "file system not configured"
	readmePathRequiredMessageConstant   = "readme path must be provided"
	linesRequiredMessageConstant        = "table lines must be provided"
	readmeStatFailureTemplateConstant   = "failed to inspect %s: %w"
	readmeReadFailureTemplateConstant   = "failed to read %s: %w"
	readmeWriteFailureTemplateConstant  = "failed to write %s: %w"
	outcomeUpdatedStringConstant        = "updated"
	outcomeUnchangedStringConstant      = "unchanged"
	outcomeMarkersMissingStringConstant = "markers_missing"
	outcomeReadmeMissingStringConstant  = "readme_missing"
	outcomeUnknownStringConstant        = "unknown"
	logMessageReadmeUpdate              = "readme update finished"
	logFieldPath                        = "path"
	logFieldOutcome                     = "outcome"
)

// ErrFileSystemNotConfigured indicates the file system dependency was missing.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// ErrReadmePathRequired indicates the request did not name a README.
var ErrReadmePathRequired = errors.New(readmePathRequiredMessageConstant)

// ErrLinesRequired indicates the request carried no table lines.
var ErrLinesRequired = errors.New(linesRequiredMessageConstant)

// Outcome describes what Update did to the README.
type Outcome int

// Update outcomes.
const (
	OutcomeUpdated Outcome = iota
	OutcomeUnchanged
	OutcomeMarkersMissing
	OutcomeReadmeMissing
)

// String returns a stable identifier for logging.
func (outcome Outcome) String() string {
	switch outcome {
	case OutcomeUpdated:
		return outcomeUpdatedStringConstant
	case OutcomeUnchanged:
		return outcomeUnchangedStringConstant
	case OutcomeMarkersMissing:
		return outcomeMarkersMissingStringConstant
	case OutcomeReadmeMissing:
		return outcomeReadmeMissingStringConstant
	default:
		return outcomeUnknownStringConstant
	}
}

// UpdaterDependencies enumerates collaborators required by the Updater.
type UpdaterDependencies struct {
	FileSystem  filesystem.FileSystem
	LockFactory LockFactory
	Logger      *zap.Logger
}

// Request describes a README rewrite. Lines[0] is the timestamped title; the remaining
// lines are compared with the existing table when SkipIfUnchanged is set.
type Request struct {
	ReadmePath      string
	Lines           []string
	Markers         Markers
	SkipIfUnchanged bool
}

// Updater splices rendered tables into README documents.
type Updater struct {
	fileSystem  filesystem.FileSystem
	lockFactory LockFactory
	logger      *zap.Logger
}

// NewUpdater constructs an Updater. A nil LockFactory uses flock-based locks.
func NewUpdater(dependencies UpdaterDependencies) (*Updater, error) {
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}

	lockFactory := dependencies.LockFactory
	if lockFactory == nil {
		lockFactory = NewFileLock
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Updater{fileSystem: dependencies.FileSystem, lockFactory: lockFactory, logger: logger}, nil
}

// Update rewrites the marked region of the README with the request lines. The README is left
// byte-for-byte untouched unless the outcome is OutcomeUpdated.
func (updater *Updater) Update(executionContext context.Context, request Request) (outcome Outcome, updateError error) {
	readmePath := strings.TrimSpace(request.ReadmePath)
	if len(readmePath) == 0 {
		return OutcomeUnchanged, ErrReadmePathRequired
	}
	if len(request.Lines) == 0 {
		return OutcomeUnchanged, ErrLinesRequired
	}
	if contextError := executionContext.Err(); contextError != nil {
		return OutcomeUnchanged, contextError
	}

	markers := request.Markers
	if len(markers.Start) == 0 || len(markers.End) == 0 {
		markers = DefaultMarkers()
	}

	readmeInformation, statError := updater.fileSystem.Stat(readmePath)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return updater.finish(readmePath, OutcomeReadmeMissing), nil
		}
		return OutcomeUnchanged, fmt.Errorf(readmeStatFailureTemplateConstant, readmePath, statError)
	}

	documentLock := updater.lockFactory(readmePath)
	if lockError := documentLock.Lock(); lockError != nil {
		return OutcomeUnchanged, lockError
	}
	defer func() {
		if unlockError := documentLock.Unlock(); unlockError != nil && updateError == nil {
			updateError = unlockError
		}
	}()

	documentBytes, readError := updater.fileSystem.ReadFile(readmePath)
	if readError != nil {
		return OutcomeUnchanged, fmt.Errorf(readmeReadFailureTemplateConstant, readmePath, readError)
	}
	document := string(documentBytes)

	region, regionFound := SplitRegion(document, markers)
	if !regionFound {
		return updater.finish(readmePath, OutcomeMarkersMissing), nil
	}

	if request.SkipIfUnchanged && TableUnchanged(region.Body, request.Lines) {
		return updater.finish(readmePath, OutcomeUnchanged), nil
	}

	updatedDocument := region.Join(markers, BlockBody(request.Lines, LineSeparator(document)))
	if writeError := updater.fileSystem.WriteFileAtomic(readmePath, []byte(updatedDocument), readmeInformation.Mode().Perm()); writeError != nil {
		return OutcomeUnchanged, fmt.Errorf(readmeWriteFailureTemplateConstant, readmePath, writeError)
	}

	return updater.finish(readmePath, OutcomeUpdated), nil
}

// TableUnchanged compares the table currently between the markers with lines[1:], ignoring
// the timestamped title and surrounding whitespace.
func TableUnchanged(regionBody string, lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	existingBody := strings.TrimSpace(ExistingTableBody(regionBody))
	renderedBody := strings.TrimSpace(strings.Join(lines[1:], lineSeparatorConstant))
	return existingBody == renderedBody
}

func (updater *Updater) finish(readmePath string, outcome Outcome) Outcome {
	updater.logger.Debug(logMessageReadmeUpdate, zap.String(logFieldPath, readmePath), zap.Stringer(logFieldOutcome, outcome))
	return outcome
}
