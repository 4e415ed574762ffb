// Package console renders user-facing progress messages for the candidates commands.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const newlineConstant = "\n"

// Reporter emits user-facing progress messages.
type Reporter interface {
	Plain(format string, arguments ...any)
	Info(format string, arguments ...any)
	Success(format string, arguments ...any)
	Error(format string, arguments ...any)
	Highlight(value any) string
}

// WriterReporter writes one line per message to an io.Writer, colorizing when the writer is a terminal.
type WriterReporter struct {
	writer         io.Writer
	infoColor      *color.Color
	successColor   *color.Color
	errorColor     *color.Color
	highlightColor *color.Color
}

// NewWriterReporter constructs a WriterReporter. A nil writer falls back to standard output.
func NewWriterReporter(writer io.Writer) *WriterReporter {
	if writer == nil {
		writer = os.Stdout
	}

	reporter := &WriterReporter{
		writer:         writer,
		infoColor:      color.New(color.FgHiYellow),
		successColor:   color.New(color.FgHiGreen),
		errorColor:     color.New(color.FgHiRed),
		highlightColor: color.New(color.FgHiCyan),
	}

	if !isTerminal(writer) {
		for _, palette := range []*color.Color{reporter.infoColor, reporter.successColor, reporter.errorColor, reporter.highlightColor} {
			palette.DisableColor()
		}
	}

	return reporter
}

// Plain writes an uncolored message.
func (reporter *WriterReporter) Plain(format string, arguments ...any) {
	reporter.write(nil, format, arguments...)
}

// Info writes an informational message.
func (reporter *WriterReporter) Info(format string, arguments ...any) {
	reporter.write(reporter.infoColor, format, arguments...)
}

// Success writes a completion message.
func (reporter *WriterReporter) Success(format string, arguments ...any) {
	reporter.write(reporter.successColor, format, arguments...)
}

// Error writes a failure message.
func (reporter *WriterReporter) Error(format string, arguments ...any) {
	reporter.write(reporter.errorColor, format, arguments...)
}

// Highlight renders a value (a path or a name) in the accent color for embedding in other messages.
func (reporter *WriterReporter) Highlight(value any) string {
	return reporter.highlightColor.Sprint(value)
}

func (reporter *WriterReporter) write(palette *color.Color, format string, arguments ...any) {
	if reporter == nil || reporter.writer == nil {
		return
	}

	message := fmt.Sprintf(format, arguments...)
	if palette != nil {
		message = palette.Sprint(message)
	}
	fmt.Fprint(reporter.writer, message+newlineConstant)
}

func isTerminal(writer io.Writer) bool {
	if color.NoColor {
		return false
	}
	file, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	descriptor := file.Fd()
	return isatty.IsTerminal(descriptor) || isatty.IsCygwinTerminal(descriptor)
}

// DiscardReporter drops every message.
type DiscardReporter struct{}

// Plain implements Reporter.
func (DiscardReporter) Plain(string, ...any) {}

// Info implements Reporter.
func (DiscardReporter) Info(string, ...any) {}

// Success implements Reporter.
func (DiscardReporter) Success(string, ...any) {}

// Error implements Reporter.
func (DiscardReporter) Error(string, ...any) {}

// Highlight implements Reporter.
func (DiscardReporter) Highlight(value any) string {
	return fmt.Sprint(value)
}
