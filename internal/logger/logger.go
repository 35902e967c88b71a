// Package logger provides process-wide diagnostic logging for ganzhi.
// Errors are always written; debug, info and warning messages only
// appear once verbose mode is enabled with --verbose or GANZHI_DEBUG.
// Output goes to stderr so it never mixes with command output.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level is the severity of a log message.
type Level int

// Log levels in increasing severity.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelTags = [...]string{
	LevelDebug: "[DEBUG] ",
	LevelInfo:  "[INFO] ",
	LevelWarn:  "[WARN] ",
	LevelError: "[ERROR] ",
}

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

var (
	mu        sync.RWMutex
	threshold           = LevelError
	output    io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
// Verbose mode writes every level; otherwise only errors are written.
func SetVerbose(v bool) {
	if v {
		SetLevel(LevelDebug)
		return
	}
	SetLevel(LevelError)
}

// IsVerbose returns true if debug messages are written.
func IsVerbose() bool {
	return Enabled(LevelDebug)
}

// SetLevel sets the lowest level that is written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	threshold = l
}

// Enabled reports whether messages at l are written.
func Enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= threshold
}

// SetOutput sets the output writer.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug logs pipeline detail such as queries and token counts.
func Debug(format string, args ...any) {
	logf(LevelDebug, "", format, args...)
}

// Info logs a completed step.
func Info(format string, args ...any) {
	logf(LevelInfo, "", format, args...)
}

// Warn logs a recoverable problem.
func Warn(format string, args ...any) {
	logf(LevelWarn, "", format, args...)
}

// Error logs a failure the process carries on after.
func Error(format string, args ...any) {
	logf(LevelError, "", format, args...)
}

// Section prints a section header in verbose mode.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if threshold <= LevelDebug {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Component logs with a fixed prefix naming the part of the program
// that emitted the message, e.g. "[INFO] watcher: corpus changed".
type Component string

// Debug logs at LevelDebug.
func (c Component) Debug(format string, args ...any) {
	logf(LevelDebug, string(c), format, args...)
}

// Info logs at LevelInfo.
func (c Component) Info(format string, args ...any) {
	logf(LevelInfo, string(c), format, args...)
}

// Warn logs at LevelWarn.
func (c Component) Warn(format string, args ...any) {
	logf(LevelWarn, string(c), format, args...)
}

// Error logs at LevelError.
func (c Component) Error(format string, args ...any) {
	logf(LevelError, string(c), format, args...)
}

func logf(l Level, component, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if l < threshold {
		return
	}
	prefix := levelTags[l]
	if component != "" {
		prefix += component + ": "
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}
