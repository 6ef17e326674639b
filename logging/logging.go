// Package logging builds the charmbracelet/log logger shared by bsutil.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error"; empty means info). format selects "text" (default),
// "json" or "logfmt" output.
func New(w io.Writer, level, format string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
		lvl = parsed
	}

	var formatter log.Formatter
	switch strings.ToLower(format) {
	case "", "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: formatter != log.TextFormatter,
		Prefix:          "bsutil",
	}), nil
}

// Install builds a logger with New and makes it the package default, so
// code that logs through log.Default picks it up.
func Install(w io.Writer, level, format string) (*log.Logger, error) {
	logger, err := New(w, level, format)
	if err != nil {
		return nil, err
	}
	log.SetDefault(logger)
	return logger, nil
}
