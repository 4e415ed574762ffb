// Package summary regenerates the candidates summary table of a README.
//
// Service collects counts from the candidates tree, renders the sorted markdown
// table and hands it to the readme package for splicing. CommandBuilder exposes
// the workflow as the table-generate Cobra command.
package summary
