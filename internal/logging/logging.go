// ABOUTME: Structured leveled logging shared by commands, server, and pipeline
// ABOUTME: Wraps charmbracelet/log and always writes to stderr-style sinks

package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a logger at the given level ("debug", "info", "warn", "error").
// Unknown levels fall back to info.
func New(w io.Writer, level string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "docassist",
		Level:           lvl,
	})
}

// Discard returns a logger that drops everything
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// ForFlags picks the level from the CLI verbosity flags, falling back to configured
func ForFlags(w io.Writer, configured string, verbose, quiet bool) *log.Logger {
	switch {
	case verbose:
		return New(w, "debug")
	case quiet:
		return New(w, "error")
	default:
		return New(w, configured)
	}
}
