// Package display renders operator-facing output: the per-file status lines
// written to stdout and human-readable sizes for the run summary.
package display

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/backmassage/vidbatch/internal/config"
	"github.com/backmassage/vidbatch/internal/term"
)

// Reporter prints one status line per event. The text of each line is a
// stable interface that scripts grep for; color, when enabled, only wraps
// the leading label.
type Reporter struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

// NewReporter returns a Reporter writing to w.
func NewReporter(w io.Writer, color bool) *Reporter {
	return &Reporter{w: w, color: color}
}

// NewStdoutReporter returns a Reporter on stdout colored per mode.
func NewStdoutReporter(mode config.ColorMode) *Reporter {
	return NewReporter(os.Stdout, term.Enabled(mode, os.Stdout))
}

// Skipped reports an output left untouched because it already exists.
func (r *Reporter) Skipped(outputPath string) {
	r.printf(term.Yellow, "Skipped:", " %s, already exists", outputPath)
}

// Converted reports a successful conversion.
func (r *Reporter) Converted(outputPath string, quality int, format string) {
	r.printf(term.Green, "Converted:", " %s (quality: %d) (format: %s)", outputPath, quality, format)
}

// WouldConvert reports a conversion that a dry run skipped.
func (r *Reporter) WouldConvert(inputPath, outputPath string) {
	r.printf(term.Cyan, "Would convert:", " %s -> %s", inputPath, outputPath)
}

// EngineError reports a failed ffmpeg invocation.
func (r *Reporter) EngineError(err error) {
	r.printf(term.Red, "ffmpeg error:", " %v", err)
}

// InputMissing reports a missing input directory.
func (r *Reporter) InputMissing() {
	r.printf(term.Red, "Input directory does not exist", "")
}

// UnsupportedFormat reports an output format outside the allow-list.
func (r *Reporter) UnsupportedFormat(format string) {
	r.printf(term.Red, "Output format", " %q is not supported", format)
}

func (r *Reporter) printf(color, label, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, term.Paint(r.color, color, label)+fmt.Sprintf(format, args...))
}
