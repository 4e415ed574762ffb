// Package readme replaces the generated candidates table that lives between two
// marker comments of a README document, leaving everything else untouched.
package readme

import "strings"

const (
	// StartMarker opens the generated region.
	StartMarker = "<!-- START README-CANDIDATES-TABLE -->"
	// EndMarker closes the generated region.
	EndMarker = "<!-- END README-CANDIDATES-TABLE -->"

	blockPaddingConstant      = "\n\n"
	lineSeparatorConstant     = "\n"
	crlfSeparatorConstant     = "\r\n"
	tableHeaderPrefixConstant = "| # "
)

// Markers names the pair of literal lines delimiting the generated region.
type Markers struct {
	Start string
	End   string
}

// DefaultMarkers returns the candidates table markers.
func DefaultMarkers() Markers {
	return Markers{Start: StartMarker, End: EndMarker}
}

// Region is a document split around its marked region. Prefix ends right before the start
// marker, Body is the text strictly between the markers and Suffix starts right after the end marker.
type Region struct {
	Prefix string
	Body   string
	Suffix string
}

// SplitRegion locates the first start marker and the first end marker following it.
// It reports false when either marker is missing.
func SplitRegion(document string, markers Markers) (Region, bool) {
	startIndex := strings.Index(document, markers.Start)
	if startIndex < 0 {
		return Region{}, false
	}

	bodyStart := startIndex + len(markers.Start)
	endOffset := strings.Index(document[bodyStart:], markers.End)
	if endOffset < 0 {
		return Region{}, false
	}
	bodyEnd := bodyStart + endOffset

	return Region{
		Prefix: document[:startIndex],
		Body:   document[bodyStart:bodyEnd],
		Suffix: document[bodyEnd+len(markers.End):],
	}, true
}

// Join reassembles the document with replacementBody placed between the markers.
func (region Region) Join(markers Markers, replacementBody string) string {
	var builder strings.Builder
	builder.Grow(len(region.Prefix) + len(markers.Start) + len(replacementBody) + len(markers.End) + len(region.Suffix))
	builder.WriteString(region.Prefix)
	builder.WriteString(markers.Start)
	builder.WriteString(replacementBody)
	builder.WriteString(markers.End)
	builder.WriteString(region.Suffix)
	return builder.String()
}

// LineSeparator reports the line ending used by document: CRLF when it contains any, LF otherwise.
func LineSeparator(document string) string {
	if strings.Contains(document, crlfSeparatorConstant) {
		return crlfSeparatorConstant
	}
	return lineSeparatorConstant
}

// BlockBody surrounds the joined lines with one blank line on each side, the layout
// written between the markers. Every line break in the block uses lineSeparator.
func BlockBody(lines []string, lineSeparator string) string {
	block := blockPaddingConstant + strings.Join(lines, lineSeparatorConstant) + blockPaddingConstant
	if lineSeparator == crlfSeparatorConstant {
		return strings.ReplaceAll(block, lineSeparatorConstant, crlfSeparatorConstant)
	}
	return block
}

// ExistingTableBody returns the region text from the table header row onwards, excluding
// the timestamped title that precedes it, with CRLF line endings turned into LF. It is empty
// when no table header is present.
func ExistingTableBody(body string) string {
	body = strings.ReplaceAll(body, crlfSeparatorConstant, lineSeparatorConstant)
	headerIndex := strings.Index(body, lineSeparatorConstant+tableHeaderPrefixConstant)
	if headerIndex < 0 {
		return ""
	}
	return body[headerIndex+len(lineSeparatorConstant):]
}
