// Package logger provides logging implementations for ragtext
package logger

import (
	"fmt"
	"log"
	"os"

	"github.com/ragtext/ragtext/pkg/interfaces"
)

// ConsoleLogger is a leveled logger writing key=value fields to stderr
type ConsoleLogger struct {
	Level  string
	fields map[string]interface{}
}

// Debug logs debug level messages
func (l *ConsoleLogger) Debug(msg string, fields ...map[string]interface{}) {
	if l.Level == "debug" {
		l.logWithFields("DEBUG", msg, fields...)
	}
}

// Info logs info level messages
func (l *ConsoleLogger) Info(msg string, fields ...map[string]interface{}) {
	if l.Level == "error" || l.Level == "warn" {
		return
	}
	l.logWithFields("INFO", msg, fields...)
}

// Warn logs warning level messages
func (l *ConsoleLogger) Warn(msg string, fields ...map[string]interface{}) {
	if l.Level == "error" {
		return
	}
	l.logWithFields("WARN", msg, fields...)
}

// Error logs error level messages
func (l *ConsoleLogger) Error(msg string, err error, fields ...map[string]interface{}) {
	var allFields []map[string]interface{}
	if err != nil {
		allFields = append(allFields, map[string]interface{}{"error": err.Error()})
	}
	allFields = append(allFields, fields...)
	l.logWithFields("ERROR", msg, allFields...)
}

// Fatal logs fatal level messages and exits
func (l *ConsoleLogger) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.Error(msg, err, fields...)
	os.Exit(1)
}

// WithFields returns a logger carrying the additional fields on every line
func (l *ConsoleLogger) WithFields(fields map[string]interface{}) interfaces.Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &ConsoleLogger{Level: l.Level, fields: merged}
}

func (l *ConsoleLogger) logWithFields(level, msg string, fields ...map[string]interface{}) {
	logMsg := fmt.Sprintf("[%s] %s", level, msg)

	for key, value := range l.fields {
		logMsg += fmt.Sprintf(" %s=%v", key, value)
	}
	for _, fieldMap := range fields {
		for key, value := range fieldMap {
			logMsg += fmt.Sprintf(" %s=%v", key, value)
		}
	}

	log.Println(logMsg)
}

// NewConsoleLogger creates a new console logger at the given level
func NewConsoleLogger(level string) interfaces.Logger {
	return &ConsoleLogger{Level: level}
}

// NewTestLogger creates a logger for testing
func NewTestLogger() interfaces.Logger {
	return &ConsoleLogger{Level: "debug"}
}

// NewLogger creates a new logger with default settings
func NewLogger() interfaces.Logger {
	return &ConsoleLogger{Level: "info"}
}
