package diagnostics

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a sink that writes events as structured log lines.
type Logger struct {
	log zerolog.Logger
}

// NewLogger creates a sink logging to w with console formatting.
func NewLogger(w io.Writer) *Logger {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return &Logger{log: zerolog.New(output).With().Timestamp().Logger()}
}

// NewLoggerWith wraps an existing zerolog logger.
func NewLoggerWith(log zerolog.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) AmountRejected(recordID, reason, offending string) {
	l.log.Warn().
		Str("record", recordID).
		Str("reason", reason).
		Str("offending", offending).
		Msg("amount rejected")
}

func (l *Logger) RecordSkipped(recordID, reason string) {
	l.log.Warn().
		Str("record", recordID).
		Str("reason", reason).
		Msg("record skipped")
}

func (l *Logger) UnknownCurrency(recordID, code string) {
	l.log.Warn().
		Str("record", recordID).
		Str("code", code).
		Msg("unknown currency")
}
