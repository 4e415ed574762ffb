package candidates

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/temirov/candidates/internal/console"
	"github.com/temirov/candidates/internal/filesystem"
)

const (
	headerRowCountConstant         = 1
	invalidEncodingMessageConstant = "content is not valid UTF-8"
	readFailureMessageTemplate     = "Error reading %s: %v"
	logMessageCountingCandidates   = "counting candidates"
	logMessageCandidateReadFailure = "unable to read candidates file"
	logMessageCandidatesCounted    = "candidates counted"
	logFieldPath                   = "path"
	logFieldCount                  = "count"
)

// ErrInvalidEncoding indicates a candidates file that is not UTF-8 text.
var ErrInvalidEncoding = errors.New(invalidEncodingMessageConstant)

var (
	crlfLineBreak = []byte("\r\n")
	crLineBreak   = []byte("\r")
	lfLineBreak   = []byte("\n")
)

// CandidateCounter counts data rows in candidate CSV files.
type CandidateCounter struct {
	fileSystem filesystem.FileSystem
	reporter   console.Reporter
	logger     *zap.Logger
}

// NewCandidateCounter constructs a CandidateCounter. Nil reporter and logger are replaced by no-op implementations.
func NewCandidateCounter(fileSystem filesystem.FileSystem, reporter console.Reporter, logger *zap.Logger) *CandidateCounter {
	if reporter == nil {
		reporter = console.DiscardReporter{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CandidateCounter{fileSystem: fileSystem, reporter: reporter, logger: logger}
}

// Count returns the number of non-blank records in the CSV file at path minus the header, floored at zero.
// A missing file counts as zero. Read and parse failures are reported and also count as zero.
func (counter *CandidateCounter) Count(path string) int {
	counter.logger.Debug(logMessageCountingCandidates, zap.String(logFieldPath, path))

	file, openError := counter.fileSystem.Open(path)
	if openError != nil {
		if errors.Is(openError, fs.ErrNotExist) {
			return 0
		}
		counter.reportFailure(path, openError)
		return 0
	}
	defer file.Close()

	rowCount, countError := CountRows(file)
	if countError != nil {
		counter.reportFailure(path, countError)
		return 0
	}

	candidateCount := max(0, rowCount-headerRowCountConstant)
	counter.logger.Debug(logMessageCandidatesCounted, zap.String(logFieldPath, path), zap.Int(logFieldCount, candidateCount))
	return candidateCount
}

func (counter *CandidateCounter) reportFailure(path string, failure error) {
	counter.logger.Warn(logMessageCandidateReadFailure, zap.String(logFieldPath, path), zap.Error(failure))
	counter.reporter.Error(readFailureMessageTemplate, path, failure)
}

// CountRows counts comma-separated records whose fields are not all blank.
// Records may have differing field counts. CRLF, LF and lone CR all end a line.
// Content that is not valid UTF-8 yields ErrInvalidEncoding.
func CountRows(reader io.Reader) (int, error) {
	content, readError := io.ReadAll(reader)
	if readError != nil {
		return 0, readError
	}
	if !utf8.Valid(content) {
		return 0, ErrInvalidEncoding
	}

	csvReader := csv.NewReader(bytes.NewReader(normalizeLineBreaks(content)))
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.ReuseRecord = true

	rowCount := 0
	for {
		record, recordError := csvReader.Read()
		if errors.Is(recordError, io.EOF) {
			return rowCount, nil
		}
		if recordError != nil {
			return 0, recordError
		}
		if isBlankRecord(record) {
			continue
		}
		rowCount++
	}
}

func normalizeLineBreaks(content []byte) []byte {
	if !bytes.Contains(content, crLineBreak) {
		return content
	}
	normalized := bytes.ReplaceAll(content, crlfLineBreak, lfLineBreak)
	return bytes.ReplaceAll(normalized, crLineBreak, lfLineBreak)
}

func isBlankRecord(record []string) bool {
	for _, field := range record {
		if len(strings.TrimSpace(field)) > 0 {
			return false
		}
	}
	return true
}
