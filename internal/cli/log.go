// Package cli implements the kozu command-line interface.
//
// Commands generate random shape compositions, write them as PNG, SVG or
// JSON, run an interactive session and start the HTTP server. The CLI is
// built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - generate (create): one composition from a random or named template
//   - regenerate: a new composition with a fresh seed
//   - idea: a triangle composition as an illustration starting point
//   - batch: many compositions concurrently
//   - interactive: create, regenerate and save from the terminal
//   - serve: the HTTP API and image gallery
//   - templates, cache, completion
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports generation and cache events.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Generated 50 compositions (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
