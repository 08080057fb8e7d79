// Package console renders timestamped, color-coded status lines and keeps
// the terminal window title in sync with the live counters.
package console

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/avelius/stockwatch/notify"
	"github.com/avelius/stockwatch/stats"
)

const timestampLayout = "2006-01-02 15:04:05"

// Logger writes human-facing status lines to a terminal.
//
// Lines are prefixed with a timestamp and colored by [notify.Status]
// (green for success, red for error, cyan for info, yellow for warning).
// The fatih/color package disables colors automatically when the writer is
// not a TTY; colors and title updates can also be disabled explicitly.
type Logger struct {
	out    io.Writer
	titles bool
	colors map[notify.Status]*color.Color
}

// Option configures a [Logger].
type Option func(*Logger)

// WithWriter redirects output away from stdout. Mainly for tests.
func WithWriter(w io.Writer) Option {
	return func(l *Logger) { l.out = w }
}

// WithoutColors disables ANSI colors regardless of TTY detection.
func WithoutColors() Option {
	return func(l *Logger) {
		for _, c := range l.colors {
			c.DisableColor()
		}
	}
}

// WithoutTitleUpdates disables terminal window title updates.
func WithoutTitleUpdates() Option {
	return func(l *Logger) { l.titles = false }
}

// New creates a console [Logger] writing to stdout with colors and title
// updates enabled.
func New(opts ...Option) *Logger {
	l := &Logger{
		out:    os.Stdout,
		titles: true,
		colors: map[notify.Status]*color.Color{
			notify.StatusSuccess: color.New(color.FgGreen),
			notify.StatusError:   color.New(color.FgRed),
			notify.StatusInfo:    color.New(color.FgCyan),
			notify.StatusWarning: color.New(color.FgYellow),
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log writes one timestamped, color-coded line.
func (l *Logger) Log(message string, status notify.Status) {
	c, ok := l.colors[status]
	if !ok {
		c = l.colors[notify.StatusInfo]
	}
	timestamp := time.Now().Format(timestampLayout)
	fmt.Fprintln(l.out, c.Sprintf("[%s] %s", timestamp, message))
}

// UpdateTitle sets the terminal window title to the live counters.
// No-op when title updates are disabled.
func (l *Logger) UpdateTitle(snap stats.Snapshot) {
	if !l.titles {
		return
	}
	title := fmt.Sprintf("stockwatch | No Stock: %d | Stock: %d | Errors: %d",
		snap.OutOfStock, snap.InStock, snap.Errors)
	// OSC 0 escape: set window title
	fmt.Fprintf(l.out, "\033]0;%s\a", title)
}
