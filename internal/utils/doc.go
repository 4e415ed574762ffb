// Package utils holds the configuration and logging plumbing shared by the
// candidates subcommands.
//
// ConfigurationLoader layers embedded defaults, configuration files and
// CANDIDATES_* environment variables through Viper. LoggerFactory builds the
// zap loggers used for diagnostics.
package utils
