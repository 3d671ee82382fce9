// Package logger provides structured JSON logging and run metrics for the
// conditions pipeline.
//
// Log entries are single-line JSON on stderr so scheduled runs (cron, CI)
// produce output that is easy to grep and ship. Levels are DEBUG, INFO,
// WARN, ERROR; the update command's --verbose flag lowers the minimum
// level to DEBUG.
//
//	logger.Info("Processed resort", logger.Fields{
//	    "slug":  "mt-rose",
//	    "stale": false,
//	})
//
// The metrics tracker counts per-run events (cache hits, stale fallbacks)
// and records fetch timings; the pipeline logs a snapshot at the end of a
// verbose run.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents log severity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Fields carries structured log fields.
type Fields map[string]interface{}

// Logger writes leveled, structured log entries.
type Logger struct {
	mu       sync.Mutex
	minLevel Level
	out      io.Writer
}

type entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

var defaultLogger = New(LevelInfo, os.Stderr)

// New creates a logger that discards messages below minLevel.
func New(minLevel Level, out io.Writer) *Logger {
	return &Logger{minLevel: minLevel, out: out}
}

// SetDefault replaces the package-level logger used by the convenience
// functions.
func SetDefault(l *Logger) {
	defaultLogger = l
}

// SetVerbose lowers the default logger's minimum level to DEBUG.
func SetVerbose() {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.minLevel = LevelDebug
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if levelRank[level] < levelRank[l.minLevel] {
		return
	}

	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   message,
		Fields:    fields,
	}
	if err != nil {
		e.Error = err.Error()
	}

	data, marshalErr := json.Marshal(e)
	if marshalErr != nil {
		// Fields contained something unmarshalable; fall back to text.
		fmt.Fprintf(l.out, "[%s] %s: %s (marshal error: %v)\n",
			e.Timestamp, e.Level, e.Message, marshalErr)
		return
	}
	fmt.Fprintln(l.out, string(data))
}

func (l *Logger) Debug(message string, fields Fields) { l.log(LevelDebug, message, fields, nil) }
func (l *Logger) Info(message string, fields Fields)  { l.log(LevelInfo, message, fields, nil) }
func (l *Logger) Warn(message string, fields Fields)  { l.log(LevelWarn, message, fields, nil) }
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Package-level convenience functions using the default logger.

func Debug(message string, fields Fields) { defaultLogger.Debug(message, fields) }
func Info(message string, fields Fields)  { defaultLogger.Info(message, fields) }
func Warn(message string, fields Fields)  { defaultLogger.Warn(message, fields) }
func Error(message string, fields Fields, err error) {
	defaultLogger.Error(message, fields, err)
}
