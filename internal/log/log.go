// Package log wraps logrus with the small surface treetop needs.
// Startup diagnostics go to stderr; once the TUI owns the terminal the
// output is redirected so log lines never corrupt the screen.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return l
}

// SetOutput redirects all subsequent log output to w.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Silence discards log output until the returned restore function runs.
func Silence() (restore func()) {
	logger.SetOutput(io.Discard)
	return func() { logger.SetOutput(os.Stderr) }
}

func Infof(format string, args ...any)  { logger.Infof(format, args...) }
func Warnf(format string, args ...any)  { logger.Warnf(format, args...) }
func Errorf(format string, args ...any) { logger.Errorf(format, args...) }

// WithField returns an entry carrying a structured field.
func WithField(key string, value any) *logrus.Entry {
	return logger.WithField(key, value)
}
