// ABOUTME: Structured logging with verbosity control and level-based output
// ABOUTME: Thin wrapper over charmbracelet/log used by client and cmd only

package logger

import (
	"io"
	"os"

	charm "github.com/charmbracelet/log"
)

var std = charm.NewWithOptions(os.Stderr, charm.Options{
	Prefix: "podman-py",
	Level:  charm.InfoLevel,
})

// SetVerbose enables or disables verbose (DEBUG) logging
func SetVerbose(v bool) {
	if v {
		std.SetLevel(charm.DebugLevel)
	} else {
		std.SetLevel(charm.InfoLevel)
	}
}

// IsVerbose returns current verbose setting
func IsVerbose() bool {
	return std.GetLevel() <= charm.DebugLevel
}

// SetOutput sets the output destination for logs
func SetOutput(w io.Writer) {
	if w == nil {
		std.SetOutput(os.Stderr)
		return
	}
	std.SetOutput(w)
}

// Debug logs at DEBUG level (only shown when verbose)
func Debug(format string, args ...interface{}) {
	std.Debugf(format, args...)
}

// Info logs at INFO level (always shown)
func Info(format string, args ...interface{}) {
	std.Infof(format, args...)
}

// Warn logs at WARN level (always shown)
func Warn(format string, args ...interface{}) {
	std.Warnf(format, args...)
}

// Error logs at ERROR level (always shown)
func Error(format string, args ...interface{}) {
	std.Errorf(format, args...)
}
