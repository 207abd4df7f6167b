// Package check provides system diagnostics (--check mode) and a
// pre-run dependency probe (CheckDeps) for the ffmpeg binary and the
// configured video codec.
package check

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	ffmpeggo "github.com/u2takey/ffmpeg-go"

	"github.com/backmassage/vidbatch/internal/config"
	"github.com/backmassage/vidbatch/internal/ffmpeg"
)

// Sentinel errors returned by CheckDeps.
var (
	ErrFfmpegNotFound = errors.New("ffmpeg not found")
	ErrFfmpegBroken   = errors.New("ffmpeg found but -version failed")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the --check flow: ffmpeg version, whether the configured
// codec is listed as an encoder, and a short test encode with it into every
// supported container. It reports true when ffmpeg runs and the test
// encode into the configured format succeeds.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	version, err := ffmpegVersion(ctx, cfg.FFmpegPath)
	if err != nil {
		log.Error("%v", err)
		return false
	}
	log.Success("ffmpeg: %s", version)

	checkEncoderListed(ctx, cfg, log)

	dir, err := os.MkdirTemp("", "vidbatch-check-")
	if err != nil {
		log.Error("Cannot create scratch directory: %v", err)
		return false
	}
	defer os.RemoveAll(dir)

	ok := true
	for _, format := range config.SupportedFormats {
		out := filepath.Join(dir, "check."+format)
		res := ffmpeg.Execute(ctx, cfg.FFmpegPath, testEncodeArgs(cfg.Codec, format, out), nil)
		switch {
		case res.OK():
			log.Success("%s + %s: ok", cfg.Codec, format)
		case format == cfg.Format:
			log.Error("%s + %s: %v", cfg.Codec, format, res.Err)
			ok = false
		default:
			log.Warn("%s + %s: %v", cfg.Codec, format, res.Err)
		}
	}
	return ok
}

// CheckDeps verifies that the configured ffmpeg binary resolves and runs.
func CheckDeps(ctx context.Context, cfg *config.Config) error {
	_, err := ffmpegVersion(ctx, cfg.FFmpegPath)
	return err
}

// ffmpegVersion returns the first line of `ffmpeg -version`.
func ffmpegVersion(ctx context.Context, binary string) (string, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", errors.Wrap(ErrFfmpegNotFound, binary)
	}
	out, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		return "", errors.Wrapf(ErrFfmpegBroken, "%s: %v", path, err)
	}
	first := strings.TrimSpace(string(out))
	if idx := strings.Index(first, "\n"); idx > 0 {
		first = first[:idx]
	}
	return first, nil
}

// checkEncoderListed looks the codec up in `ffmpeg -encoders`.
func checkEncoderListed(ctx context.Context, cfg *config.Config, log Logger) {
	out, err := exec.CommandContext(ctx, cfg.FFmpegPath, "-hide_banner", "-encoders").Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return
	}
	if line, ok := findEncoder(string(out), cfg.Codec); ok {
		log.Success("Encoder: %s", line)
		return
	}
	log.Warn("Encoder %q not listed by ffmpeg -encoders", cfg.Codec)
}

// findEncoder returns the `ffmpeg -encoders` line whose name column equals
// codec. Lines look like " V....D mpeg4    MPEG-4 part 2".
func findEncoder(listing, codec string) (string, bool) {
	for _, line := range strings.Split(listing, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == codec {
			return strings.TrimSpace(line), true
		}
	}
	return "", false
}

// testEncodeArgs encodes a tenth of a second of black video with codec into
// a format container at out. mp4 and mov need a seekable output, so the
// null muxer cannot stand in for a real file.
func testEncodeArgs(codec, format, out string) []string {
	return ffmpeggo.Input("color=black:s=256x256:d=0.1", ffmpeggo.KwArgs{"f": "lavfi"}).
		Output(out, ffmpeggo.KwArgs{"format": ffmpeg.MuxerName(format), "vcodec": codec}).
		GlobalArgs("-hide_banner", "-nostdin", "-loglevel", "error").
		OverWriteOutput().
		GetArgs()
}
