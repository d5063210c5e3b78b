// Package logging builds the process logger from configuration.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
)

// Options controls logger construction
type Options struct {
	Name    string
	Level   string // trace, debug, info, warn, error
	Format  string // auto, text, json
	Verbose bool   // forces at least debug level
	Output  io.Writer
}

// New returns an hclog.Logger configured from opts. Output defaults to
// stderr; "auto" format writes text to a terminal and JSON elsewhere.
func New(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	if opts.Verbose && level > hclog.Debug {
		level = hclog.Debug
	}

	jsonFormat := false
	switch strings.ToLower(opts.Format) {
	case "json":
		jsonFormat = true
	case "text":
	default:
		jsonFormat = !isTerminal(out)
	}

	color := hclog.ColorOff
	if !jsonFormat && isTerminal(out) {
		color = hclog.AutoColor
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       opts.Name,
		Level:      level,
		Output:     out,
		JSONFormat: jsonFormat,
		Color:      color,
	})
}

// isTerminal reports whether w is a file attached to a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
