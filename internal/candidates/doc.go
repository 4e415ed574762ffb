// Package candidates counts review candidates stored in per-repository CSV
// files and renders them as a sorted markdown summary table.
//
// The expected layout is <root>/<status>/<repository>/ holding
// <repository>_classes_candidates.csv and <repository>_methods_candidates.csv.
package candidates
