package tripn

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Level is a syslog-style severity, emergency through debug, that a
// logging entry point dispatches on.
type Level uint8

const (
	LevelEmergency Level = iota
	LevelAlert
	LevelCritical
	LevelError
	LevelWarning
	LevelNotice
	LevelInfo
	LevelDebug
)

// Fields is a list of (key, value) pairs attached to a log entry.
type Fields map[string]any

// Logger is the structured-log entry point invoked by the reader for
// its diagnostics (spec §7). If none is installed, diagnostics go to
// the fallback writer in "file:line:col: message" form.
type Logger interface {
	Log(level Level, fields Fields, format string, args ...any)
}

// logrusLogger adapts *logrus.Logger to Logger, the pack's structured
// logging library (see vippsas-sqlcode/cli/cmd/config.go).
type logrusLogger struct {
	l *logrus.Logger
}

// NewLogrusLogger wraps an existing *logrus.Logger, or builds a
// default one writing to stderr if l is nil.
func NewLogrusLogger(l *logrus.Logger) Logger {
	if l == nil {
		l = logrus.New()
		l.SetOutput(os.Stderr)
	}
	return &logrusLogger{l: l}
}

func (g *logrusLogger) Log(level Level, fields Fields, format string, args ...any) {
	entry := g.l.WithFields(logrus.Fields(fields))
	msg := fmt.Sprintf(format, args...)
	switch level {
	case LevelEmergency, LevelAlert, LevelCritical:
		entry.Error(msg)
	case LevelError:
		entry.Error(msg)
	case LevelWarning:
		entry.Warn(msg)
	case LevelNotice, LevelInfo:
		entry.Info(msg)
	default:
		entry.Debug(msg)
	}
}

// fallbackLogger is used when no Logger is installed: it writes
// "file:line:col: message" to an io.Writer, matching spec §7's
// fallback format exactly.
type fallbackLogger struct {
	w io.Writer
}

// NewFallbackLogger builds the diagnostic-stream logger spec §7
// describes as the behaviour when no structured log function is
// installed.
func NewFallbackLogger(w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}
	return &fallbackLogger{w: w}
}

func (f *fallbackLogger) Log(level Level, fields Fields, format string, args ...any) {
	caret, _ := fields["caret"].(Caret)
	fmt.Fprintf(f.w, "%s: %s\n", caret.String(), fmt.Sprintf(format, args...))
}
