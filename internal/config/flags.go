package config

// This file implements flag registration and layered loading.
// Core option names keep their underscore spelling (--input_dir) so existing
// scripts keep working; operational flags use dashes.

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every option key when read from the environment,
// e.g. VIDBATCH_INPUT_DIR or VIDBATCH_FAIL_ON_ERROR.
const EnvPrefix = "VIDBATCH"

// Option keys, shared by flags, env and config file.
const (
	KeyInputDir    = "input_dir"
	KeyOutputDir   = "output_dir"
	KeyFormat      = "format"
	KeyQuality     = "quality"
	KeyCodec       = "codec"
	KeyRecursive   = "recursive"
	KeyOverwrite   = "overwrite"
	KeyDryRun      = "dry-run"
	KeyFailOnError = "fail-on-error"
	KeyFFmpeg      = "ffmpeg"
	KeyVerbose     = "verbose"
	KeyColor       = "color"
	KeyLog         = "log"
	KeyCheck       = "check"
	KeyConfig      = "config"
)

// BindFlags registers every option on fs with its default from
// [DefaultConfig].
func BindFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()

	// Conversion.
	fs.String(KeyInputDir, d.InputDir, "Input directory")
	fs.String(KeyOutputDir, d.OutputDir, "Output directory")
	fs.String(KeyFormat, d.Format, "Output format: mp4 | avi | mkv | mov")
	fs.Int(KeyQuality, d.Quality, "Output quality, clamped to 0-100 (passed as -crf)")
	fs.String(KeyCodec, d.Codec, "Video codec")
	fs.Bool(KeyRecursive, d.Recursive, "Scan subdirectories")
	fs.Bool(KeyOverwrite, d.Overwrite, "Overwrite existing output files")

	// Behavior.
	fs.BoolP(KeyDryRun, "n", false, "Preview only; do not convert")
	fs.Bool(KeyFailOnError, false, "Exit 1 if the run is aborted or any file fails")
	fs.String(KeyFFmpeg, d.FFmpegPath, "ffmpeg binary")

	// Display and utility.
	fs.BoolP(KeyVerbose, "v", false, "Verbose output (debug logs, live ffmpeg stderr)")
	fs.String(KeyColor, string(d.ColorMode), "Color output: auto | always | never")
	fs.String(KeyLog, "", "Append JSON logs to file")
	fs.Bool(KeyCheck, false, "Run ffmpeg diagnostics and exit")
	fs.String(KeyConfig, "", "Config file (yaml, json or toml)")
}

// NewViper returns a viper instance layered over fs: explicit flags win over
// VIDBATCH_* environment variables, which win over the config file named by
// --config, which wins over flag defaults.
func NewViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}

	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", file)
		}
	}
	return v, nil
}

// Load builds a resolved and validated Config from v.
func Load(v *viper.Viper) (Config, error) {
	cfg := DefaultConfig()

	cfg.InputDir = v.GetString(KeyInputDir)
	cfg.OutputDir = v.GetString(KeyOutputDir)
	cfg.Format = v.GetString(KeyFormat)
	cfg.Quality = v.GetInt(KeyQuality)
	cfg.Codec = v.GetString(KeyCodec)
	cfg.Recursive = v.GetBool(KeyRecursive)
	cfg.Overwrite = v.GetBool(KeyOverwrite)
	cfg.DryRun = v.GetBool(KeyDryRun)
	cfg.FailOnError = v.GetBool(KeyFailOnError)
	cfg.FFmpegPath = v.GetString(KeyFFmpeg)
	cfg.Verbose = v.GetBool(KeyVerbose)
	cfg.ColorMode = ColorMode(v.GetString(KeyColor))
	cfg.LogFile = v.GetString(KeyLog)
	cfg.CheckOnly = v.GetBool(KeyCheck)

	if err := cfg.Resolve(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
