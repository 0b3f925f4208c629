package logging

import "github.com/rs/zerolog"

// ZerologLogger forwards messages to a zerolog.Logger.
// Verbose maps to debug level, so the logger's level decides whether it is emitted.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger wraps log, tagging every event with component=rstdoc.
func NewZerologLogger(log zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{log: log.With().Str("component", "rstdoc").Logger()}
}

// Verbose logs at debug level.
func (l *ZerologLogger) Verbose(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

// Info logs at info level.
func (l *ZerologLogger) Info(format string, args ...interface{}) {
	l.log.Info().Msgf(format, args...)
}

// Error logs at error level.
func (l *ZerologLogger) Error(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}
