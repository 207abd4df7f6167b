package ffmpeg

import (
	"context"
	"io"
	"os"

	"github.com/backmassage/vidbatch/internal/config"
)

// Request describes one file conversion.
type Request struct {
	InputPath  string
	OutputPath string
	Format     string // Container, lowercase, e.g. "mkv".
	Quality    int    // 0-100, passed as -crf.
	Codec      string // Video codec, passed as -vcodec.
	Overwrite  bool   // Permit clobbering an existing OutputPath.
}

// Transcoder converts one file. Implementations block until the conversion
// finishes or ctx is cancelled.
type Transcoder interface {
	Transcode(ctx context.Context, req Request) Result
}

// Engine is the ffmpeg-backed Transcoder.
type Engine struct {
	Binary  string
	Verbose bool
	// Live receives ffmpeg's stderr as it is written when Verbose is set.
	Live io.Writer
}

// NewEngine returns an Engine configured from cfg.
func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		Binary:  cfg.FFmpegPath,
		Verbose: cfg.Verbose,
		Live:    os.Stderr,
	}
}

// Transcode builds the command for req and runs it.
func (e *Engine) Transcode(ctx context.Context, req Request) Result {
	var tee io.Writer
	if e.Verbose {
		tee = e.Live
	}
	return Execute(ctx, e.Binary, Build(req, e.Verbose), tee)
}
