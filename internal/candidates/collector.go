package candidates

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/candidates/internal/console"
	"github.com/temirov/candidates/internal/filesystem"
)

const (
	classesFileNameTemplateConstant = "%s_classes_candidates.csv"
	methodsFileNameTemplateConstant = "%s_methods_candidates.csv"
	rootListingFailureTemplate      = "failed to list candidates directory %s: %w"
	statusListingFailureTemplate    = "Error listing %s: %v"
	logMessageStatusListingFailure  = "unable to list status directory"
	logMessageRepositoryCollected   = "repository collected"
	logFieldStatus                  = "status"
	logFieldRepository              = "repository"
	logFieldClassCandidates         = "class_candidates"
	logFieldMethodCandidates        = "method_candidates"
)

// TableRow is one repository line of the summary table.
type TableRow struct {
	Status           string
	RepositoryName   string
	ClassCandidates  int
	MethodCandidates int
}

// ClassesFileName returns the classes candidates file name for a repository.
func ClassesFileName(repositoryName string) string {
	return fmt.Sprintf(classesFileNameTemplateConstant, repositoryName)
}

// MethodsFileName returns the methods candidates file name for a repository.
func MethodsFileName(repositoryName string) string {
	return fmt.Sprintf(methodsFileNameTemplateConstant, repositoryName)
}

// Collector walks the two fixed levels of a candidates tree.
type Collector struct {
	fileSystem filesystem.FileSystem
	counter    *CandidateCounter
	reporter   console.Reporter
	logger     *zap.Logger
}

// NewCollector constructs a Collector that counts files with counter.
func NewCollector(fileSystem filesystem.FileSystem, counter *CandidateCounter, reporter console.Reporter, logger *zap.Logger) *Collector {
	if reporter == nil {
		reporter = console.DiscardReporter{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if counter == nil {
		counter = NewCandidateCounter(fileSystem, reporter, logger)
	}
	return &Collector{fileSystem: fileSystem, counter: counter, reporter: reporter, logger: logger}
}

// BuildRows emits one row per <root>/<status>/<repository> directory in listing order.
// Non-directory entries are ignored at both levels. A status directory that cannot be
// listed is reported and skipped.
func (collector *Collector) BuildRows(root string) ([]TableRow, error) {
	statusEntries, rootError := collector.fileSystem.ReadDir(root)
	if rootError != nil {
		return nil, fmt.Errorf(rootListingFailureTemplate, root, rootError)
	}

	var rows []TableRow
	for _, statusEntry := range statusEntries {
		if !statusEntry.IsDir() {
			continue
		}

		status := statusEntry.Name()
		statusPath := filepath.Join(root, status)
		repositoryEntries, statusError := collector.fileSystem.ReadDir(statusPath)
		if statusError != nil {
			collector.logger.Warn(logMessageStatusListingFailure, zap.String(logFieldPath, statusPath), zap.Error(statusError))
			collector.reporter.Error(statusListingFailureTemplate, statusPath, statusError)
			continue
		}

		for _, repositoryEntry := range repositoryEntries {
			if !repositoryEntry.IsDir() {
				continue
			}

			repositoryName := repositoryEntry.Name()
			repositoryPath := filepath.Join(statusPath, repositoryName)
			row := TableRow{
				Status:           status,
				RepositoryName:   repositoryName,
				ClassCandidates:  collector.counter.Count(filepath.Join(repositoryPath, ClassesFileName(repositoryName))),
				MethodCandidates: collector.counter.Count(filepath.Join(repositoryPath, MethodsFileName(repositoryName))),
			}

			collector.logger.Debug(
				logMessageRepositoryCollected,
				zap.String(logFieldStatus, row.Status),
				zap.String(logFieldRepository, row.RepositoryName),
				zap.Int(logFieldClassCandidates, row.ClassCandidates),
				zap.Int(logFieldMethodCandidates, row.MethodCandidates),
			)
			rows = append(rows, row)
		}
	}

	return rows, nil
}
