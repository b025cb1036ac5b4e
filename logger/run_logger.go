package logger

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/logging"
	"github.com/google/uuid"
)

// Logger stores the needed functionality to print a log.
type Logger struct {
	trace    string
	started  time.Time
	severity logging.Severity
	labels   map[string]string
}

// NewLogger returns a run logger with a fresh trace id.
func NewLogger() *Logger {
	return newDefaultLogger()
}

func newDefaultLogger() *Logger {
	now := time.Now()
	id, _ := uuid.NewRandom()

	return &Logger{
		started: now,
		trace:   id.String(),
		labels:  make(map[string]string),
	}
}

// Trace returns the trace stored in logger.
func (l *Logger) Trace() string {
	return l.trace
}

// Severity returns the highest severity logged so far.
func (l *Logger) Severity() logging.Severity {
	return l.severity
}

// SetLabel allows to optionally specify key/value labels for log entry.
func (l *Logger) SetLabel(key, value string) {
	l.labels[key] = value
}

// SetLabels allows to optionally add additional labels for log entry.
func (l *Logger) SetLabels(labels map[string]string) {
	for key, value := range labels {
		l.SetLabel(key, value)
	}
}

func logEntry(s logging.Severity, l *Logger, msg string) {
	if s > l.severity {
		l.severity = s
	}

	if cloudLogging && cloudLogger != nil {
		cloudLogger.Log(logging.Entry{
			Payload:  msg,
			Severity: s,
			Trace:    l.trace,
			Labels:   l.labels,
		})
	}

	local.Printf("[%s] %s\n", strings.ToLower(s.String()), msg)
}

func logv(s logging.Severity, l *Logger, v ...interface{}) {
	logEntry(s, l, fmt.Sprint(v...))
}

func (l *Logger) Debug(v ...interface{}) {
	logv(logging.Debug, l, v...)
}

func (l *Logger) Info(v ...interface{}) {
	logv(logging.Info, l, v...)
}

func (l *Logger) Print(v ...interface{}) {
	logv(logging.Info, l, v...)
}

func (l *Logger) Warning(v ...interface{}) {
	logv(logging.Warning, l, v...)
}

func (l *Logger) Error(v ...interface{}) {
	logv(logging.Error, l, v...)
}

func logf(s logging.Severity, l *Logger, format string, v ...interface{}) {
	logEntry(s, l, fmt.Sprintf(format, v...))
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	logf(logging.Debug, l, format, v...)
}

func (l *Logger) Infof(format string, v ...interface{}) {
	logf(logging.Info, l, format, v...)
}

func (l *Logger) Printf(format string, v ...interface{}) {
	logf(logging.Info, l, format, v...)
}

func (l *Logger) Warningf(format string, v ...interface{}) {
	logf(logging.Warning, l, format, v...)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	logf(logging.Error, l, format, v...)
}
