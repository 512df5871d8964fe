// Package log provides the application-wide logger for sidecap.
// It is a thin wrapper around logrus that keeps call sites short
// and routes everything through a single configurable instance.
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
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	return l
}

// SetDebug enables or disables debug-level output.
func SetDebug(debug bool) {
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// SetOutput redirects log output. The TUI uses this to keep the
// alternate screen clean while the editor is running.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Field is a single structured log field.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field for use with WithFields.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// WithFields returns an entry carrying structured fields.
func WithFields(fields ...Field) *logrus.Entry {
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return logger.WithFields(lf)
}

// Info logs a formatted message at info level.
func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debug logs a formatted message at debug level.
func Debug(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Warn logs a formatted message at warn level.
func Warn(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Error logs a formatted message at error level.
func Error(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}
