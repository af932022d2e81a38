// Package logger provides leveled diagnostics for the docrag CLI.
// Warnings are printed unless quiet mode is set; debug, info and section
// output is printed only in verbose mode. Everything goes to stderr so
// command output on stdout stays clean.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level controls how much diagnostic output is written.
type Level int

const (
	// LevelQuiet suppresses all diagnostics.
	LevelQuiet Level = iota
	// LevelNormal prints warnings only.
	LevelNormal
	// LevelVerbose prints everything.
	LevelVerbose
)

var (
	mu     sync.RWMutex
	level            = LevelNormal
	output io.Writer = os.Stderr
)

// SetLevel sets the diagnostic level.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// CurrentLevel returns the diagnostic level.
func CurrentLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// SetVerbose switches between verbose and normal level.
func SetVerbose(v bool) {
	if v {
		SetLevel(LevelVerbose)
		return
	}
	SetLevel(LevelNormal)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	return CurrentLevel() == LevelVerbose
}

// SetOutput sets the output writer for diagnostics.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(min Level, prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if level >= min {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(LevelVerbose, "[DEBUG] ", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(LevelVerbose, "[INFO] ", format, args...)
}

// Warn prints a warning unless quiet mode is enabled.
func Warn(format string, args ...any) {
	logf(LevelNormal, "[WARN] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if level >= LevelVerbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
