// Package logging configures debug logging for nukedir. The tool writes no
// log files; everything goes to stderr through charmbracelet/log, with the
// level derived from the verbose/quiet flags.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

// Init configures the default logger. Verbose enables debug output; quiet
// raises the threshold so only errors surface.
func Init(verbose, quiet bool) {
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(false)

	switch {
	case quiet:
		log.SetLevel(log.ErrorLevel)
	case verbose:
		log.SetLevel(log.DebugLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// Get returns a logger scoped to a component name.
func Get(component string) *log.Logger {
	return log.Default().WithPrefix(component)
}
