package ffmpeg

import "strings"

// ExecError is returned when ffmpeg cannot be started or exits non-zero.
// Its message ends with the last line ffmpeg wrote to stderr, which is
// usually the actual diagnostic.
type ExecError struct {
	Err    error
	Stderr string
}

func (e *ExecError) Error() string {
	if last := Tail(e.Stderr, 1); len(last) == 1 {
		return e.Err.Error() + ": " + last[0]
	}
	return e.Err.Error()
}

func (e *ExecError) Unwrap() error { return e.Err }

// Tail returns up to n trailing non-empty lines of stderr.
func Tail(stderr string, n int) []string {
	trimmed := strings.TrimSpace(stderr)
	if trimmed == "" || n <= 0 {
		return nil
	}
	var lines []string
	for _, l := range strings.Split(trimmed, "\n") {
		if l = strings.TrimRight(l, "\r "); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
