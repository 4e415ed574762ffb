package candidates

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// TimestampLayout formats the "Last Updated" timestamp of the table title.
	TimestampLayout = "2006-01-02 15:04:05"

	titleTemplateConstant         = "### Candidates Summary (Last Updated: %s)\n"
	columnHeaderConstant          = "| # | Status | Repo Name | Class Candidates | Method Candidates |"
	columnSeparatorConstant       = "|---|--------|----------|------------------|------------------|"
	rowTemplateConstant           = "| %d | %s | %s | %d | %d |"
	totalsRowTemplateConstant     = "| **Total** | <center>-</center> | **%d Repositories.** | **%d Class Candidates.** | **%d Method Candidates.** |"
	markdownLineSeparatorConstant = "\n"
)

// SortTableRows orders rows by status, then case-insensitively by repository name.
// Rows with equal keys keep their input order.
func SortTableRows(rows []TableRow) []TableRow {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(left TableRow, right TableRow) int {
		if statusOrder := strings.Compare(left.Status, right.Status); statusOrder != 0 {
			return statusOrder
		}
		return strings.Compare(strings.ToLower(left.RepositoryName), strings.ToLower(right.RepositoryName))
	})
	return sorted
}

// Totals aggregates the counts of every row.
type Totals struct {
	Repositories     int
	ClassCandidates  int
	MethodCandidates int
}

// ComputeTotals sums class and method candidates across rows.
func ComputeTotals(rows []TableRow) Totals {
	totals := Totals{Repositories: len(rows)}
	for _, row := range rows {
		totals.ClassCandidates += row.ClassCandidates
		totals.MethodCandidates += row.MethodCandidates
	}
	return totals
}

// MarkdownTable holds the rendered title line and table lines.
type MarkdownTable struct {
	Title string
	Rows  []string
}

// Lines returns the title followed by the table lines.
func (table MarkdownTable) Lines() []string {
	return append([]string{table.Title}, table.Rows...)
}

// String joins every line of the table.
func (table MarkdownTable) String() string {
	return strings.Join(table.Lines(), markdownLineSeparatorConstant)
}

// MarkdownRenderer renders sorted rows as a markdown table.
type MarkdownRenderer struct {
	IncludeTotals bool
}

// Render produces the table for rows, which are expected to be sorted already.
// The title line ends with a newline so that a blank line separates it from the table.
func (renderer MarkdownRenderer) Render(rows []TableRow, timestamp string) MarkdownTable {
	tableLines := make([]string, 0, len(rows)+3)
	tableLines = append(tableLines, columnHeaderConstant, columnSeparatorConstant)

	for rowIndex, row := range rows {
		tableLines = append(tableLines, fmt.Sprintf(rowTemplateConstant, rowIndex+1, row.Status, row.RepositoryName, row.ClassCandidates, row.MethodCandidates))
	}

	if renderer.IncludeTotals {
		totals := ComputeTotals(rows)
		tableLines = append(tableLines, fmt.Sprintf(totalsRowTemplateConstant, totals.Repositories, totals.ClassCandidates, totals.MethodCandidates))
	}

	return MarkdownTable{
		Title: fmt.Sprintf(titleTemplateConstant, timestamp),
		Rows:  tableLines,
	}
}
