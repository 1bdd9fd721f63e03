package main

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/gitc/internal/log"
)

// parseWarner adapts the context logger into the warning callback the
// parsers expect for skipped lines.
func parseWarner(l *log.Logger) func(string) {
	return func(msg string) {
		l.Warnf("%s", msg)
	}
}

// stderrIsTerminal reports whether stderr is attached to a terminal.
// Spinners are only useful on a live terminal.
func stderrIsTerminal() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// stdinIsTerminal reports whether stdin is attached to a terminal, used to
// decide whether interactive confirmation is possible.
func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
