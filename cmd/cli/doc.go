// Package cli constructs the candidates command-line interface, wiring the
// Cobra command hierarchy to the configuration loader and the zap logger.
package cli
