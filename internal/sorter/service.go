package sorter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/temirov/candidates/internal/console"
	"github.com/temirov/candidates/internal/filesystem"
)

const (
	repositoryNameSeparatorConstant          = "_"
	repositoryDirectoryPermissionsConstant   = fs.FileMode(0o755)
	fileSystemMissingMessageConstant         = "file system not configured"
	directoryRequiredMessageConstant         = "directory must be provided"
	directoryMissingTemplateConstant         = "directory %s is not accessible: %w"
	directoryNotDirectoryTemplateConstant    = "%s is not a directory"
	invalidPatternTemplateConstant           = "%w %q"
	directoryListingFailureTemplateConstant  = "failed to list %s: %w"
	directoryCreationFailureTemplateConstant = "failed to create directory %s: %w"
	fileMoveFailureTemplateConstant          = "failed to move %s to %s: %w"
	repositoryPathConflictTemplateConstant   = "%s exists and is not a directory"
	directoryCreatedMessageTemplate          = "Directory created: %s"
	directoryPlannedMessageTemplate          = "Directory would be created: %s"
	fileMovedMessageTemplate                 = "File moved: %s -> %s/"
	filePlannedMessageTemplate               = "File would be moved: %s -> %s/"
	logMessageOrganizeStarted                = "organizing candidate files"
	logMessageDirectoryEnsured               = "repository directory ensured"
	logMessageFileMoved                      = "candidate file moved"
	logFieldDirectory                        = "directory"
	logFieldPattern                          = "pattern"
	logFieldRepository                       = "repository"
	logFieldFile                             = "file"
	logFieldCreated                          = "created"
	logFieldDryRun                           = "dry_run"
)

// ErrFileSystemNotConfigured indicates the file system dependency was missing.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// ErrDirectoryRequired indicates the directory option was empty.
var ErrDirectoryRequired = errors.New(directoryRequiredMessageConstant)

// ErrInvalidFilePattern indicates the file pattern is not a valid glob.
var ErrInvalidFilePattern = errors.New("invalid file pattern")

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	FileSystem filesystem.FileSystem
	Reporter   console.Reporter
	Logger     *zap.Logger
}

// Options configure a sorting run.
type Options struct {
	Directory   string
	FilePattern string
	DryRun      bool
}

// Move records a file relocated into its repository directory.
type Move struct {
	FileName       string
	RepositoryName string
}

// Result captures the outcome of a sorting run.
type Result struct {
	Directory          string
	CreatedDirectories []string
	Moves              []Move
}

// Service moves candidate files into per-repository subdirectories.
type Service struct {
	fileSystem filesystem.FileSystem
	reporter   console.Reporter
	logger     *zap.Logger
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

	return &Service{fileSystem: dependencies.FileSystem, reporter: reporter, logger: logger}, nil
}

// RepositoryName extracts the text preceding the first underscore of fileName.
// It reports false when the name has no underscore or starts with one.
func RepositoryName(fileName string) (string, bool) {
	prefix, _, separatorFound := strings.Cut(fileName, repositoryNameSeparatorConstant)
	if !separatorFound || len(prefix) == 0 {
		return "", false
	}
	return prefix, true
}

// Organize lists the directory once and moves every eligible file whose name starts with a
// repository prefix into the directory named after that prefix. Files already moved during
// the run are not considered again.
func (service *Service) Organize(executionContext context.Context, options Options) (Result, error) {
	directory := strings.TrimSpace(options.Directory)
	if len(directory) == 0 {
		return Result{}, ErrDirectoryRequired
	}

	pattern := strings.TrimSpace(options.FilePattern)
	if len(pattern) == 0 {
		pattern = defaultFilePatternConstant
	}
	if !doublestar.ValidatePattern(pattern) {
		return Result{}, fmt.Errorf(invalidPatternTemplateConstant, ErrInvalidFilePattern, pattern)
	}

	directoryInformation, statError := service.fileSystem.Stat(directory)
	if statError != nil {
		return Result{}, fmt.Errorf(directoryMissingTemplateConstant, directory, statError)
	}
	if !directoryInformation.IsDir() {
		return Result{}, fmt.Errorf(directoryNotDirectoryTemplateConstant, directory)
	}

	service.logger.Debug(
		logMessageOrganizeStarted,
		zap.String(logFieldDirectory, directory),
		zap.String(logFieldPattern, pattern),
		zap.Bool(logFieldDryRun, options.DryRun),
	)

	eligibleFileNames, listingError := service.listEligibleFiles(directory, pattern)
	if listingError != nil {
		return Result{}, listingError
	}

	result := Result{Directory: directory}
	movedFileNames := make(map[string]struct{}, len(eligibleFileNames))
	ensuredRepositories := make(map[string]struct{})

	for _, fileName := range eligibleFileNames {
		if _, alreadyMoved := movedFileNames[fileName]; alreadyMoved {
			continue
		}

		repositoryName, matched := RepositoryName(fileName)
		if !matched {
			continue
		}

		if contextError := executionContext.Err(); contextError != nil {
			return result, contextError
		}

		if _, ensured := ensuredRepositories[repositoryName]; !ensured {
			created, ensureError := service.ensureRepositoryDirectory(directory, repositoryName, options.DryRun)
			if ensureError != nil {
				return result, ensureError
			}
			ensuredRepositories[repositoryName] = struct{}{}
			if created {
				result.CreatedDirectories = append(result.CreatedDirectories, repositoryName)
			}
		}

		for _, candidateFileName := range eligibleFileNames {
			if _, alreadyMoved := movedFileNames[candidateFileName]; alreadyMoved {
				continue
			}
			if !strings.HasPrefix(candidateFileName, repositoryName) {
				continue
			}

			if moveError := service.moveFile(directory, candidateFileName, repositoryName, options.DryRun); moveError != nil {
				return result, moveError
			}
			movedFileNames[candidateFileName] = struct{}{}
			result.Moves = append(result.Moves, Move{FileName: candidateFileName, RepositoryName: repositoryName})
		}
	}

	return result, nil
}

func (service *Service) listEligibleFiles(directory string, pattern string) ([]string, error) {
	entries, listingError := service.fileSystem.ReadDir(directory)
	if listingError != nil {
		return nil, fmt.Errorf(directoryListingFailureTemplateConstant, directory, listingError)
	}

	eligibleFileNames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matched, matchError := doublestar.Match(pattern, entry.Name())
		if matchError != nil {
			return nil, fmt.Errorf(invalidPatternTemplateConstant, ErrInvalidFilePattern, pattern)
		}
		if matched {
			eligibleFileNames = append(eligibleFileNames, entry.Name())
		}
	}

	return eligibleFileNames, nil
}

func (service *Service) ensureRepositoryDirectory(directory string, repositoryName string, dryRun bool) (bool, error) {
	repositoryPath := filepath.Join(directory, repositoryName)

	existingInformation, statError := service.fileSystem.Stat(repositoryPath)
	switch {
	case statError == nil && existingInformation.IsDir():
		service.logger.Debug(logMessageDirectoryEnsured, zap.String(logFieldRepository, repositoryName), zap.Bool(logFieldCreated, false))
		return false, nil
	case statError == nil:
		return false, fmt.Errorf(directoryCreationFailureTemplateConstant, repositoryPath, fmt.Errorf(repositoryPathConflictTemplateConstant, repositoryPath))
	case !errors.Is(statError, fs.ErrNotExist):
		return false, fmt.Errorf(directoryCreationFailureTemplateConstant, repositoryPath, statError)
	}

	if dryRun {
		service.reporter.Info(directoryPlannedMessageTemplate, service.reporter.Highlight(repositoryName))
		return true, nil
	}

	if creationError := service.fileSystem.MkdirAll(repositoryPath, repositoryDirectoryPermissionsConstant); creationError != nil {
		return false, fmt.Errorf(directoryCreationFailureTemplateConstant, repositoryPath, creationError)
	}

	service.logger.Debug(logMessageDirectoryEnsured, zap.String(logFieldRepository, repositoryName), zap.Bool(logFieldCreated, true))
	service.reporter.Success(directoryCreatedMessageTemplate, service.reporter.Highlight(repositoryName))
	return true, nil
}

func (service *Service) moveFile(directory string, fileName string, repositoryName string, dryRun bool) error {
	if dryRun {
		service.reporter.Info(filePlannedMessageTemplate, fileName, service.reporter.Highlight(repositoryName))
		return nil
	}

	sourcePath := filepath.Join(directory, fileName)
	destinationPath := filepath.Join(directory, repositoryName, fileName)
	if renameError := service.fileSystem.Rename(sourcePath, destinationPath); renameError != nil {
		return fmt.Errorf(fileMoveFailureTemplateConstant, sourcePath, destinationPath, renameError)
	}

	service.logger.Debug(logMessageFileMoved, zap.String(logFieldFile, fileName), zap.String(logFieldRepository, repositoryName))
	service.reporter.Success(fileMovedMessageTemplate, fileName, service.reporter.Highlight(repositoryName))
	return nil
}
