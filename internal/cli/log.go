// Package cli implements the stratcol command-line interface.
//
// The CLI is built using cobra. Every command reads the TOML configuration
// (see pkg/config) before it runs, so cache, store and reference settings
// come from the same place for the CLI and the HTTP server.
//
// # Commands
//
//   - layout: Compute the layout model of a column file as JSON
//   - render: Render column files to SVG, PNG, PDF or JSON, optionally on change
//   - chrono: Query the geologic time scale
//   - rocks: List rock types by category
//   - validate: Check column files
//   - edit: Interactively toggle and remove layers
//   - serve: Run the HTTP API
//   - cache: Manage the layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// routes pipeline and cache events to the logger.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Rendered 3 columns (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
