// Package sorter groups per-repository candidate CSV files of a flat review
// directory into subdirectories named after the repository prefix.
//
// Service performs a single pass over the directory listing. CommandBuilder
// exposes it as the files-sort Cobra command.
package sorter
