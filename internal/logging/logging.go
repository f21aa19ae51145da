// ABOUTME: Logger construction for memopad commands and servers.
// ABOUTME: Wraps charmbracelet/log with a level parsed from configuration.

package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the named level. Unknown levels fall
// back to warn.
func New(w io.Writer, level string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "memopad",
		ReportTimestamp: lvl <= log.DebugLevel,
	})
}

// Setup builds a stderr logger and installs it as the package default.
func Setup(level string) *log.Logger {
	l := New(os.Stderr, level)
	log.SetDefault(l)
	return l
}
