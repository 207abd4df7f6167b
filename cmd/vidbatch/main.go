// Command vidbatch batch-converts the video files of a directory tree to a
// target container and codec by running ffmpeg once per file.
//
// It loads configuration (flags, VIDBATCH_* environment, optional config
// file) and either runs diagnostics (--check) or the conversion pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/backmassage/vidbatch/internal/check"
	"github.com/backmassage/vidbatch/internal/config"
	"github.com/backmassage/vidbatch/internal/display"
	"github.com/backmassage/vidbatch/internal/ffmpeg"
	"github.com/backmassage/vidbatch/internal/logging"
	"github.com/backmassage/vidbatch/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

// exitInterrupted follows the shell convention for SIGINT.
const exitInterrupted = 130

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the root command with args and returns the exit code.
func run(args []string) int {
	code := 0
	cmd := newRootCommand(&code)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "vidbatch: %v\n", err)
		return 1
	}
	return code
}

func newRootCommand(code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vidbatch [flags]",
		Short: "Batch-convert videos with ffmpeg",
		Long: `vidbatch converts every file with an extension in --input_dir (and, with
--recursive, its subdirectories) to --format using --codec, writing the
results under --output_dir with the same relative layout.

Existing outputs are skipped unless --overwrite is given. One status line
per file is printed to stdout; diagnostics go to stderr.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := config.NewViper(cmd.Flags())
			if err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			*code = execute(cmd.Context(), &cfg)
			return nil
		},
	}
	config.BindFlags(cmd.Flags())
	return cmd
}

// execute runs diagnostics or the pipeline for a loaded config and maps the
// outcome to an exit code.
func execute(ctx context.Context, cfg *config.Config) int {
	// Bootstrap: the logger doesn't exist yet, so errors go to stderr via fmt.
	log, err := logging.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vidbatch: %v\n", err)
		return 1
	}
	defer log.Close()

	if cfg.CheckOnly {
		if !check.RunCheck(ctx, cfg, log) {
			return 1
		}
		return 0
	}

	log.Debug("=== vidbatch v%s (%s), run %s ===", version, commit, log.RunID())

	if !cfg.DryRun {
		if err := check.CheckDeps(ctx, cfg); err != nil {
			log.Warn("%v; every conversion will fail (see --check)", err)
		}
	}

	// Cancel on SIGINT/SIGTERM: the running ffmpeg is killed and no
	// further files are attempted.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, stopping")
			cancel()
		case <-ctx.Done():
		}
	}()

	stats, err := pipeline.Run(ctx, cfg, log, ffmpeg.NewEngine(cfg), display.NewStdoutReporter(cfg.ColorMode))
	return exitCode(cfg, stats, err)
}

// exitCode maps a run outcome to the process status. Configuration errors
// and per-file failures exit 0 unless --fail-on-error is set; setup errors
// always exit 1.
func exitCode(cfg *config.Config, stats pipeline.RunStats, err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.Is(err, pipeline.ErrInputMissing), errors.Is(err, pipeline.ErrUnsupportedFormat):
		if cfg.FailOnError {
			return 1
		}
		return 0
	case err != nil:
		return 1
	case cfg.FailOnError && stats.Failed > 0:
		return 1
	}
	return 0
}
