package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"

	"github.com/backmassage/vidbatch/internal/config"
	"github.com/backmassage/vidbatch/internal/display"
	"github.com/backmassage/vidbatch/internal/ffmpeg"
	"github.com/backmassage/vidbatch/internal/logging"
	"github.com/backmassage/vidbatch/internal/naming"
)

// Configuration errors that abort a run before any file is touched.
var (
	ErrInputMissing      = errors.New("input directory does not exist")
	ErrUnsupportedFormat = errors.New("output format is not supported")
)

// stderrTailLines is how much of a failed ffmpeg run's stderr is logged.
const stderrTailLines = 20

// Run is the top-level batch entry point. It validates the input directory
// and output format, creates the output root, discovers files, and
// processes each one sequentially. Per-file failures are counted, never
// returned: the error is non-nil only for ErrInputMissing,
// ErrUnsupportedFormat, setup failures, or cancellation of ctx.
func Run(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	tc ffmpeg.Transcoder,
	report *display.Reporter,
) (RunStats, error) {
	var stats RunStats

	if fi, err := os.Stat(cfg.InputDir); err != nil || !fi.IsDir() {
		report.InputMissing()
		log.Debug("Input not found: %s", cfg.InputDir)
		return stats, ErrInputMissing
	}

	if !config.IsFormatSupported(cfg.Format) {
		report.UnsupportedFormat(cfg.Format)
		log.Debug("Supported formats: %s", strings.Join(config.SupportedFormats, ", "))
		return stats, errors.Wrapf(ErrUnsupportedFormat, "%q", cfg.Format)
	}

	if !cfg.DryRun {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			log.Err(err, "Cannot create output directory")
			return stats, errors.Wrap(err, "create output directory")
		}
	}

	files, err := Discover(cfg.InputDir, cfg.Recursive, cfg.OutputDir)
	if err != nil {
		log.Err(err, "File discovery failed")
		return stats, err
	}

	stats.Total = len(files)
	claims := naming.NewClaimTracker()

	logBatchHeader(cfg, log, &stats)

	for i, path := range files {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted, %d file(s) not attempted", stats.Total-i)
			break
		}

		processFile(ctx, cfg, log, tc, report, path, &stats, claims)
	}

	logSummary(cfg, log, &stats)
	return stats, ctx.Err()
}

// processFile handles one input: derive output → skip check → convert.
func processFile(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	tc ffmpeg.Transcoder,
	report *display.Reporter,
	path string,
	stats *RunStats,
	claims *naming.ClaimTracker,
) {
	flog := log.With("file", path)
	flog.Debug("[%d/%d] %s", stats.Current, stats.Total, filepath.Base(path))

	outputPath, err := naming.OutputPath(cfg.InputDir, cfg.OutputDir, path, cfg.Format)
	if err != nil {
		flog.Err(err, "Cannot derive output path")
		stats.Failed++
		return
	}

	if owner, ok := claims.Claim(path, outputPath); !ok {
		flog.Warn("%s also maps to %s (first claimed by %s)",
			filepath.Base(path), outputPath, filepath.Base(owner))
	}

	// --- Skip-existing check ---
	if !cfg.Overwrite {
		if _, err := os.Stat(outputPath); err == nil {
			report.Skipped(outputPath)
			stats.Skipped++
			return
		}
	}

	logSourceType(flog, path)

	// --- Dry-run ---
	if cfg.DryRun {
		report.WouldConvert(path, outputPath)
		stats.Converted++
		return
	}

	// --- Create output directory ---
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		flog.Err(err, "Cannot create output directory")
		stats.Failed++
		return
	}

	// --- Convert ---
	start := time.Now()
	res := tc.Transcode(ctx, ffmpeg.Request{
		InputPath:  path,
		OutputPath: outputPath,
		Format:     cfg.Format,
		Quality:    cfg.Quality,
		Codec:      cfg.Codec,
		Overwrite:  cfg.Overwrite,
	})
	if !res.OK() {
		report.EngineError(res.Err)
		logStderr(flog, res.Stderr)
		stats.Failed++
		return
	}

	// --- Update stats ---
	if fi, err := os.Stat(path); err == nil {
		stats.TotalInputBytes += fi.Size()
	}
	if fi, err := os.Stat(outputPath); err == nil {
		stats.TotalOutputBytes += fi.Size()
	}
	stats.Converted++

	report.Converted(outputPath, cfg.Quality, cfg.Format)
	flog.Debug("Converted in %s", time.Since(start).Round(time.Millisecond))
}

// logSourceType sniffs the input's content type. Non-video sources are still
// handed to ffmpeg; the warning just explains the failure that likely follows.
func logSourceType(log *logging.Logger, path string) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		log.Debug("Cannot sniff source type: %v", err)
		return
	}
	if !strings.HasPrefix(mt.String(), "video/") {
		log.Warn("Source does not look like video (%s)", mt.String())
		return
	}
	log.Debug("Source type: %s", mt.String())
}

func logStderr(log *logging.Logger, stderr string) {
	lines := ffmpeg.Tail(stderr, stderrTailLines)
	if len(lines) == 0 {
		return
	}
	log.Error("Last ffmpeg output:")
	for _, l := range lines {
		log.Error("  %s", l)
	}
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("Found %d files in %s", stats.Total, cfg.InputDir)
	log.Info("Target: %s (codec %s, quality %d) -> %s",
		strings.ToUpper(cfg.Format), cfg.Codec, cfg.Quality, cfg.OutputDir)
	if cfg.Recursive {
		log.Debug("Recursive scan")
	}
	if cfg.Overwrite {
		log.Info("Existing outputs will be overwritten")
	}
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be written")
	}
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("Done: %d converted, %d skipped, %d failed (of %d)",
		stats.Converted, stats.Skipped, stats.Failed, stats.Total)

	if cfg.DryRun || stats.Converted == 0 {
		return
	}
	log.Info("Size: %s", display.FormatSizeDelta(stats.TotalInputBytes, stats.TotalOutputBytes))
}
