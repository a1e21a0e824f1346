package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a charm logger writing to stderr. format is one of
// text, json or logfmt; anything else falls back to text.
func SetupLogger(debug bool, format string) *log.Logger {
	return NewLogger(os.Stderr, debug, format)
}

// NewLogger is SetupLogger for an arbitrary writer.
func NewLogger(w io.Writer, debug bool, format string) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	opts := log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "betbuilder",
	}
	switch format {
	case "json":
		opts.Formatter = log.JSONFormatter
	case "logfmt":
		opts.Formatter = log.LogfmtFormatter
	default:
		opts.Formatter = log.TextFormatter
	}
	return log.NewWithOptions(w, opts)
}
