// Package config holds runtime configuration: defaults, layered loading from
// flags, environment and config file, normalization, and validation.
package config

import (
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when the stream is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Quality bounds. The value is handed to ffmpeg's -crf as-is once clamped.
const (
	QualityMin = 0
	QualityMax = 100
)

// SupportedFormats is the output container allow-list, lowercase.
var SupportedFormats = []string{"mp4", "avi", "mkv", "mov"}

var validate = validator.New()

// formatTag is the validator rule for the output format allow-list.
var formatTag = "required,oneof=" + strings.Join(SupportedFormats, " ")

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overridden from flags/env/file by [Load], then normalized by
// [Config.Resolve]. Packages receive it by pointer and treat it as read-only.
type Config struct {
	// Paths. Absolute after Resolve; Resolve rejects empty values.
	InputDir  string
	OutputDir string

	// Conversion settings.
	Format  string // Lowercase. Checked against SupportedFormats by the pipeline, not here.
	Quality int    // Clamped to [QualityMin, QualityMax] by Resolve.
	Codec   string // Lowercase, passed to ffmpeg unvalidated.

	// Behavior flags.
	Recursive   bool
	Overwrite   bool
	DryRun      bool
	FailOnError bool // Exit non-zero on configuration errors or per-file failures.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode `validate:"oneof=auto always never"`
	LogFile   string    // Optional JSON log file path.
	CheckOnly bool      // Run --check diagnostics and exit.

	// External tools.
	FFmpegPath string `validate:"required"`
}

// DefaultConfig returns a Config with the documented defaults. Used as the
// base before flag, env and file values are applied.
func DefaultConfig() Config {
	return Config{
		InputDir:   "input",
		OutputDir:  "output",
		Format:     "mp4",
		Quality:    100,
		Codec:      "mpeg4",
		ColorMode:  ColorAuto,
		FFmpegPath: "ffmpeg",
	}
}

// ClampQuality maps v into [QualityMin, QualityMax].
func ClampQuality(v int) int {
	return max(QualityMin, min(v, QualityMax))
}

// IsFormatSupported reports whether format (case-insensitive) is one of
// SupportedFormats.
func IsFormatSupported(format string) bool {
	return validate.Var(strings.ToLower(format), formatTag) == nil
}

// Resolve normalizes the configuration in place: format and codec are
// lower-cased, quality is clamped, and both directories become absolute.
func (c *Config) Resolve() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.Codec = strings.ToLower(strings.TrimSpace(c.Codec))
	c.Quality = ClampQuality(c.Quality)
	c.ColorMode = ColorMode(strings.ToLower(string(c.ColorMode)))

	in, err := absDir(c.InputDir, "input directory")
	if err != nil {
		return err
	}
	out, err := absDir(c.OutputDir, "output directory")
	if err != nil {
		return err
	}
	c.InputDir, c.OutputDir = in, out
	return nil
}

// absDir makes a directory argument absolute. Abs also cleans it, so
// trailing slashes go away and "//" becomes "/".
func absDir(path, label string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.Errorf("%s must not be empty", label)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s %q", label, path)
	}
	return abs, nil
}

// Validate performs structural checks only. The output format is
// deliberately not checked here: the pipeline reports it after confirming
// the input directory exists.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(err, "validate config")
	}
	fe := verrs[0]
	switch fe.Field() {
	case "ColorMode":
		return errors.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	case "FFmpegPath":
		return errors.New("ffmpeg path must not be empty")
	default:
		return errors.Errorf("invalid %s (%s)", fe.Field(), fe.Tag())
	}
}
