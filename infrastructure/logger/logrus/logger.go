// ABOUTME: Logrus implementation of the core Logger interface
// ABOUTME: Verbose mode switches the level to debug for per-article tracing

package logrus

import (
	"io"

	"github.com/sirupsen/logrus"

	"newsdigest/core/interfaces"
)

// Logger implements interfaces.Logger backed by logrus.
type Logger struct {
	log *logrus.Logger
}

var _ interfaces.Logger = (*Logger)(nil)

// New creates a logger writing text output to w. Verbose enables debug
// level; otherwise per-item failures stay out of normal output.
func New(w io.Writer, verbose bool) *Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	return &Logger{log: log}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Error(msg)
}
