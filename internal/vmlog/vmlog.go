// Package vmlog provides the VM shell's startup/shutdown/error
// logging. It is a thin wrapper around the standard log package — the
// corpus never reaches for a structured logging library — kept
// separate from internal/cpu so the CPU itself stays silent except
// through the debugger's trace sink, per the error-handling design.
package vmlog

import (
	"io"
	"log"
)

// Logger writes timestamped, "chip8: "-prefixed lines to an
// io.Writer, typically os.Stderr.
type Logger struct {
	l *log.Logger
}

// New returns a Logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{l: log.New(w, "chip8: ", log.Ltime)}
}

// Infof logs an informational line.
func (lg *Logger) Infof(format string, args ...any) {
	lg.l.Printf(format, args...)
}

// Errorf logs an error line.
func (lg *Logger) Errorf(format string, args ...any) {
	lg.l.Printf("error: "+format, args...)
}
