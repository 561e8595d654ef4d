// Package blog wraps glog with a package-global debug toggle, mirroring
// ygot/util's DbgPrint/Indent/Dedent convention so hot traversal and
// entropy-coding loops can leave trace statements in the source without
// runtime cost when debugging is disabled.
package blog

import (
	"fmt"
	"strings"

	log "github.com/golang/glog"
)

var (
	// debug controls whether DbgPrint emits anything. It is intentionally a
	// package-level toggle, not a per-call option: flipping it on wraps an
	// entire run (driver main, or a test) in trace output.
	debug = false

	// maxLineChars truncates DbgPrint output so a runaway tree dump can't
	// flood a terminal.
	maxLineChars = 2000

	indent = ""
)

// SetDebug turns debug tracing on or off.
func SetDebug(on bool) {
	debug = on
}

// Debug reports whether debug tracing is currently enabled.
func Debug() bool {
	return debug
}

// DbgPrint prints a Printf-style message if debug tracing is enabled.
func DbgPrint(format string, args ...interface{}) {
	if !debug {
		return
	}
	out := fmt.Sprintf(format, args...)
	if len(out) > maxLineChars {
		out = out[:maxLineChars] + "..."
	}
	fmt.Println(indent + out)
}

// Indent increases the DbgPrint indent level.
func Indent() {
	if debug {
		indent += ". "
	}
}

// Dedent decreases the DbgPrint indent level.
func Dedent() {
	if debug {
		indent = strings.TrimPrefix(indent, ". ")
	}
}

// Infof logs at glog info level, prefixed for the calling package.
func Infof(format string, args ...interface{}) {
	log.InfoDepth(1, fmt.Sprintf(format, args...))
}

// Warningf logs at glog warning level.
func Warningf(format string, args ...interface{}) {
	log.WarningDepth(1, fmt.Sprintf(format, args...))
}

// Errorf logs at glog error level.
func Errorf(format string, args ...interface{}) {
	log.ErrorDepth(1, fmt.Sprintf(format, args...))
}
