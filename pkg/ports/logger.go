// Package ports declares the interfaces between conversion stages and the
// adapters that talk to files, external tools and log output.
package ports

import (
	"fmt"
	"strings"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug is used by components for per-frame and per-tool details.
	LevelDebug LogLevel = iota
	// LevelInfo is used by the orchestrator for request progress.
	LevelInfo
	// LevelWarn marks recoverable problems such as a fallback to the static path.
	LevelWarn
	// LevelError marks failures surfaced to the caller.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

var levelNames = [...]string{"debug", "info", "warn", "error", "quiet"}

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelQuiet {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLogLevel parses a string into a LogLevel, defaulting to LevelInfo.
func ParseLogLevel(s string) LogLevel {
	level, err := LookupLogLevel(s)
	if err != nil {
		return LevelInfo
	}
	return level
}

// LookupLogLevel is the strict variant of ParseLogLevel used to validate configuration.
func LookupLogLevel(s string) (LogLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	for i, name := range levelNames {
		if name == s {
			return LogLevel(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger abstracts logging operations with multi-language support.
// The msg parameter is a message key with printf verbs; adapters translate
// it before formatting args into it.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that tags messages with the component name.
	WithComponent(component string) Logger
}
