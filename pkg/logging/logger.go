// Package logging provides structured logging for holocron using zerolog.
// Terminals get human-readable console output; pipes and files get JSON.
//
// Loggers travel in the context:
//
//	ctx = logging.WithLogger(ctx, logger)
//	ctx = logging.WithPipeline(ctx, "crew")
//	logging.FromContext(ctx).Error().Err(err).Msg("Pipeline failed")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agentstation/holocron/pkg/constants"
)

// defaultLogger is the global logger instance.
var defaultLogger zerolog.Logger

func init() {
	cfg := ConfigFromEnv(constants.EnvPrefix)
	// Log files are opened only once the application configures logging.
	cfg.Output = "stderr"
	defaultLogger = NewLoggerFromConfig(cfg)
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger // Also update zerolog's global logger
}

// Warn starts a new warning level log event on the default logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
