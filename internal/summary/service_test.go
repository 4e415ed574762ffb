package summary_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/candidates/internal/console"
	"github.com/temirov/candidates/internal/filesystem"
	"github.com/temirov/candidates/internal/readme"
	"github.com/temirov/candidates/internal/summary"
)

const (
	testReadmePrefixConstant = "# Candidates\n\nIntro.\n\n"
	testReadmeSuffixConstant = "\n\n## Footer\n"
	testTimezoneConstant     = "America/Sao_Paulo"
	testFirstTitleConstant   = "### Candidates Summary (Last Updated: 2026-10-15 09:00:00)\n"
	testTableBodyConstant    = "| # | Status | Repo Name | Class Candidates | Method Candidates |\n" +
		"|---|--------|----------|------------------|------------------|\n" +
		"| 1 | in_review | foo | 4 | 0 |\n" +
		"| **Total** | <center>-</center> | **1 Repositories.** | **4 Class Candidates.** | **0 Method Candidates.** |"
)

type nopLock struct{}

func (nopLock) Lock() error { return nil }

func (nopLock) Unlock() error { return nil }

func nopLockFactory(string) readme.Locker {
	return nopLock{}
}

func fixedClock(instant time.Time) summary.Clock {
	return func() time.Time {
		return instant
	}
}

type fixture struct {
	candidatesDirectory string
	readmePath          string
}

func newFixture(testInstance *testing.T, readmeContent string) fixture {
	testInstance.Helper()
	root := testInstance.TempDir()
	candidatesDirectory := filepath.Join(root, "candidates")
	repositoryDirectory := filepath.Join(candidatesDirectory, "in_review", "foo")
	require.NoError(testInstance, os.MkdirAll(repositoryDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryDirectory, "foo_classes_candidates.csv"), []byte("class,reason\nA,1\nB,2\nC,3\nD,4\n"), 0o644))

	readmePath := filepath.Join(root, "README.md")
	if len(readmeContent) > 0 {
		require.NoError(testInstance, os.WriteFile(readmePath, []byte(readmeContent), 0o644))
	}
	return fixture{candidatesDirectory: candidatesDirectory, readmePath: readmePath}
}

func newTestService(testInstance *testing.T, outputBuffer *bytes.Buffer, instant time.Time) *summary.Service {
	testInstance.Helper()
	service, serviceError := summary.NewService(summary.ServiceDependencies{
		FileSystem:  filesystem.NewOSFileSystem(),
		Reporter:    console.NewWriterReporter(outputBuffer),
		Clock:       fixedClock(instant),
		LockFactory: nopLockFactory,
	})
	require.NoError(testInstance, serviceError)
	return service
}

func generateOptions(testInstance *testing.T, testFixture fixture) summary.Options {
	testInstance.Helper()
	location, resolveError := summary.ResolveLocation(testTimezoneConstant)
	require.NoError(testInstance, resolveError)
	return summary.Options{
		CandidatesDirectory: testFixture.candidatesDirectory,
		ReadmePath:          testFixture.readmePath,
		Location:            location,
		IncludeTotals:       true,
		SkipIfUnchanged:     true,
	}
}

func readFile(testInstance *testing.T, path string) string {
	testInstance.Helper()
	content, readError := os.ReadFile(path)
	require.NoError(testInstance, readError)
	return string(content)
}

func markedReadme(body string) string {
	return testReadmePrefixConstant + readme.StartMarker + body + readme.EndMarker + testReadmeSuffixConstant
}

func TestGenerateWritesTableIntoReadme(testInstance *testing.T) {
	testFixture := newFixture(testInstance, markedReadme("\n"))
	outputBuffer := &bytes.Buffer{}

	report, generateError := newTestService(testInstance, outputBuffer, time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)).
		Generate(context.Background(), generateOptions(testInstance, testFixture))
	require.NoError(testInstance, generateError)
	require.Equal(testInstance, readme.OutcomeUpdated, report.Outcome)
	require.Len(testInstance, report.Rows, 1)

	expectedReadme := markedReadme("\n\n" + testFirstTitleConstant + "\n" + testTableBodyConstant + "\n\n")
	require.Equal(testInstance, expectedReadme, readFile(testInstance, testFixture.readmePath))
	require.Contains(testInstance, outputBuffer.String(), "README.md updated successfully!")
}

func TestGenerateSkipsWhenOnlyTimestampChanges(testInstance *testing.T) {
	testFixture := newFixture(testInstance, markedReadme(""))

	_, firstError := newTestService(testInstance, &bytes.Buffer{}, time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)).
		Generate(context.Background(), generateOptions(testInstance, testFixture))
	require.NoError(testInstance, firstError)
	firstContent := readFile(testInstance, testFixture.readmePath)

	outputBuffer := &bytes.Buffer{}
	report, secondError := newTestService(testInstance, outputBuffer, time.Date(2026, time.October, 16, 8, 30, 0, 0, time.UTC)).
		Generate(context.Background(), generateOptions(testInstance, testFixture))
	require.NoError(testInstance, secondError)
	require.Equal(testInstance, readme.OutcomeUnchanged, report.Outcome)
	require.Equal(testInstance, firstContent, readFile(testInstance, testFixture.readmePath))
	require.Contains(testInstance, outputBuffer.String(), "No changes detected in the table. Skipping update.")
}

func TestGenerateRewritesWhenSkipDisabled(testInstance *testing.T) {
	testFixture := newFixture(testInstance, markedReadme(""))
	options := generateOptions(testInstance, testFixture)

	_, firstError := newTestService(testInstance, &bytes.Buffer{}, time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)).
		Generate(context.Background(), options)
	require.NoError(testInstance, firstError)

	options.SkipIfUnchanged = false
	report, secondError := newTestService(testInstance, &bytes.Buffer{}, time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)).
		Generate(context.Background(), options)
	require.NoError(testInstance, secondError)
	require.Equal(testInstance, readme.OutcomeUpdated, report.Outcome)
	require.Contains(testInstance, readFile(testInstance, testFixture.readmePath), "(Last Updated: 2026-10-16 09:00:00)")
}

func TestGenerateReportsMissingReadme(testInstance *testing.T) {
	testFixture := newFixture(testInstance, "")
	outputBuffer := &bytes.Buffer{}

	report, generateError := newTestService(testInstance, outputBuffer, time.Now()).
		Generate(context.Background(), generateOptions(testInstance, testFixture))
	require.NoError(testInstance, generateError)
	require.Equal(testInstance, readme.OutcomeReadmeMissing, report.Outcome)
	require.Contains(testInstance, outputBuffer.String(), "README.md file not found. Exiting program.")
	require.NotContains(testInstance, outputBuffer.String(), "Generating markdown table")
	require.NoFileExists(testInstance, testFixture.readmePath)
}

func TestGenerateReportsMissingMarkers(testInstance *testing.T) {
	originalContent := "# Candidates\n\nNo markers here.\n"
	testFixture := newFixture(testInstance, originalContent)
	outputBuffer := &bytes.Buffer{}

	report, generateError := newTestService(testInstance, outputBuffer, time.Now()).
		Generate(context.Background(), generateOptions(testInstance, testFixture))
	require.NoError(testInstance, generateError)
	require.Equal(testInstance, readme.OutcomeMarkersMissing, report.Outcome)
	require.Contains(testInstance, outputBuffer.String(), "Failed to update README.md. Table markers not found.")
	require.Equal(testInstance, originalContent, readFile(testInstance, testFixture.readmePath))
}

func TestGenerateDryRunPrintsTable(testInstance *testing.T) {
	testFixture := newFixture(testInstance, "")
	options := generateOptions(testInstance, testFixture)
	options.DryRun = true
	outputBuffer := &bytes.Buffer{}

	report, generateError := newTestService(testInstance, outputBuffer, time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)).
		Generate(context.Background(), options)
	require.NoError(testInstance, generateError)
	require.True(testInstance, report.Previewed)
	require.Contains(testInstance, outputBuffer.String(), testFirstTitleConstant)
	require.Contains(testInstance, outputBuffer.String(), testTableBodyConstant)
	require.NoFileExists(testInstance, testFixture.readmePath)
}

func TestGenerateFailsForMissingCandidatesDirectory(testInstance *testing.T) {
	testFixture := newFixture(testInstance, markedReadme(""))
	options := generateOptions(testInstance, testFixture)
	options.CandidatesDirectory = filepath.Join(testInstance.TempDir(), "missing")

	_, generateError := newTestService(testInstance, &bytes.Buffer{}, time.Now()).Generate(context.Background(), options)
	require.ErrorIs(testInstance, generateError, os.ErrNotExist)
}

func TestGenerateValidatesOptions(testInstance *testing.T) {
	service := newTestService(testInstance, &bytes.Buffer{}, time.Now())

	_, candidatesError := service.Generate(context.Background(), summary.Options{ReadmePath: "README.md"})
	require.ErrorIs(testInstance, candidatesError, summary.ErrCandidatesDirectoryRequired)

	_, readmeError := service.Generate(context.Background(), summary.Options{CandidatesDirectory: "candidates"})
	require.ErrorIs(testInstance, readmeError, readme.ErrReadmePathRequired)
}

func TestNewServiceRequiresFileSystem(testInstance *testing.T) {
	_, serviceError := summary.NewService(summary.ServiceDependencies{})
	require.ErrorIs(testInstance, serviceError, summary.ErrFileSystemNotConfigured)
}
