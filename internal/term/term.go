// Package term provides ANSI color helpers and terminal detection.
//
// Unlike a global palette, colors here are resolved per stream: stdout
// status lines and stderr logs may be redirected independently, so each
// writer asks [Enabled] for itself.
package term

import (
	"os"
	"strings"

	"github.com/backmassage/vidbatch/internal/config"
)

// ANSI color codes.
const (
	Red    = "\033[1;91m"
	Green  = "\033[1;92m"
	Yellow = "\033[1;93m"
	Blue   = "\033[1;94m"
	Cyan   = "\033[1;96m"
	NC     = "\033[0m" // Reset sequence.
)

// Enabled reports whether colors should be used when writing to f under
// the given mode. Auto honours TTY detection, NO_COLOR (https://no-color.org)
// and TERM=dumb.
func Enabled(mode config.ColorMode, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(f) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// Paint wraps s in color when on is true.
func Paint(on bool, color, s string) string {
	if !on {
		return s
	}
	return color + s + NC
}

// IsTerminal reports whether f is attached to a TTY (character device).
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
