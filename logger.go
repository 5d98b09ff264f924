package statspipe

import "log"

// Logger is the collaborator through which the backend reports the failures
// it absorbs: unsupported-kind warnings and transport errors. Both methods
// are called synchronously and their effects are not inspected.
type Logger interface {
	Warn(msg string)
	Error(msg string)
}

// NewLogger returns a Logger printing through l, or through the standard
// logger when l is nil.
func NewLogger(l *log.Logger) Logger {
	if l == nil {
		l = log.Default()
	}
	return printLogger{l: l}
}

type printLogger struct {
	l *log.Logger
}

func (p printLogger) Warn(msg string) { p.l.Printf("warn: %s", msg) }

func (p printLogger) Error(msg string) { p.l.Printf("error: %s", msg) }
