// Package logger builds the process slog logger: colourised output on a
// terminal, logfmt otherwise.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// New returns a logger writing to w. Terminal detection only applies to
// *os.File writers.
func New(w io.Writer) *slog.Logger {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return slog.New(newTerminalHandler(w))
	}
	return slog.New(newTextHandler(w))
}

// Init configures the level, installs a stderr logger as the slog default
// and returns it.
func Init(levelName string) (*slog.Logger, error) {
	if err := Level.SetByName(levelName); err != nil {
		return nil, err
	}
	l := New(os.Stderr)
	slog.SetDefault(l)
	return l, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(99)}))
}
