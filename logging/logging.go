// Package logging builds the loggers used by the CLI and the prebuild runner.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Prefix is printed in front of every log line.
const Prefix = "wetmods"

// New creates a logger writing to w. Verbose loggers emit debug messages,
// including the per-mod trace of the chain engine.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
		Level:  level,
	})
}

// Verbose returns a copy of logger at debug level. A nil logger yields a
// verbose logger that discards its output.
func Verbose(logger *log.Logger) *log.Logger {
	if logger == nil {
		return New(io.Discard, true)
	}
	l := logger.With()
	l.SetLevel(log.DebugLevel)
	return l
}
