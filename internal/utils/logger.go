package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// LogLevel represents the level of logging verbosity
type LogLevel int

const (
	// LevelQuiet suppresses all diagnostics except errors
	LevelQuiet LogLevel = iota
	// LevelNormal shows warnings alongside the per-file results
	LevelNormal
	// LevelVerbose shows per-file details
	LevelVerbose
	// LevelDebug shows all debugging information
	LevelDebug
)

var (
	// CurrentLogLevel is the global log level setting
	CurrentLogLevel LogLevel = LevelNormal

	// Stderr is the diagnostic stream; stdout is reserved for results
	Stderr io.Writer = os.Stderr
)

// SetLogLevel sets the global logging level
func SetLogLevel(level LogLevel) {
	CurrentLogLevel = level
}

// SetOutput redirects diagnostics to w
func SetOutput(w io.Writer) {
	Stderr = w
}

// LogLevelFromString converts a string level name to LogLevel
func LogLevelFromString(level string) LogLevel {
	switch strings.ToLower(level) {
	case "quiet", "q":
		return LevelQuiet
	case "normal", "n":
		return LevelNormal
	case "verbose", "v":
		return LevelVerbose
	case "debug", "d":
		return LevelDebug
	default:
		return LevelNormal
	}
}

// LogError logs an error message (always shown)
func LogError(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(Stderr, "%s\n", Error(fmt.Sprintf(format, args...)))
}

// LogVerbose logs a message at Verbose+ level
func LogVerbose(format string, args ...interface{}) {
	if CurrentLogLevel >= LevelVerbose {
		_, _ = fmt.Fprintf(Stderr, "\t%s\n", Info(fmt.Sprintf(format, args...)))
	}
}

// LogDebug logs a debug message at Debug level
func LogDebug(format string, args ...interface{}) {
	if CurrentLogLevel >= LevelDebug {
		_, _ = fmt.Fprintf(Stderr, "\t%s\n", Debug(fmt.Sprintf(format, args...)))
	}
}

// LogWarning logs a warning message at Normal+ level
func LogWarning(format string, args ...interface{}) {
	if CurrentLogLevel >= LevelNormal {
		_, _ = fmt.Fprintf(Stderr, "%s\n", Warning(fmt.Sprintf(format, args...)))
	}
}
