package logger

import (
	"github.com/fatih/color" // Colored console output for the different log levels
)

// The log levels are package-level printf-style functions backed by
// fatih/color, so callers log with the same ergonomics as fmt.Printf
// while the level is conveyed by color.

// Info logs informational messages in green color.
// Used for successful updates, additions, and run summaries.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs warning messages in bright magenta color.
// Used for non-fatal conditions such as skipped descriptors or a
// missing config file that gets bootstrapped.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs error messages in red color, on stderr.
// Every fatal run failure is reported through this before exiting.
var Error = func(format string, a ...any) {
	color.New(color.FgRed).FprintfFunc()(color.Error, format, a...)
}

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// It starts as a no-op and is reassigned during Init based on the --debug flag.
var Debug = func(format string, a ...any) {}

// Init initializes the logger, enabling or disabling debug output.
// When disabled, Debug is a no-op function so debug call sites cost nothing.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}
