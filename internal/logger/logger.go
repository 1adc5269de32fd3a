// Package logger provides leveled logging for seedmerge.
// Debug, Info and Section messages are printed only when verbose mode is
// enabled via the --verbose flag. Warnings and errors are always printed.
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

// String returns the message prefix for the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "LOG"
	}
}

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(level Level, component, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if level < LevelWarn && !verbose {
		return
	}
	prefix := "[" + level.String() + "] "
	if component != "" {
		prefix += component + ": "
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(LevelDebug, "", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(LevelInfo, "", format, args...)
}

// Warn prints a warning.
func Warn(format string, args ...any) {
	logf(LevelWarn, "", format, args...)
}

// Error prints an error.
func Error(format string, args ...any) {
	logf(LevelError, "", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Component logs with a fixed component name after the level prefix.
type Component string

// Debug prints a message if verbose mode is enabled.
func (c Component) Debug(format string, args ...any) {
	logf(LevelDebug, string(c), format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func (c Component) Info(format string, args ...any) {
	logf(LevelInfo, string(c), format, args...)
}

// Warn prints a warning.
func (c Component) Warn(format string, args ...any) {
	logf(LevelWarn, string(c), format, args...)
}

// Error prints an error.
func (c Component) Error(format string, args ...any) {
	logf(LevelError, string(c), format, args...)
}
