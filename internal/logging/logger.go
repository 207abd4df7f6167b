// Package logging provides leveled diagnostics on top of zerolog: a
// human-readable console sink on stderr and an optional JSON file sink.
// Operator-facing status lines are not logs; see package display.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/backmassage/vidbatch/internal/config"
	"github.com/backmassage/vidbatch/internal/term"
)

const runField = "run"

// Logger provides leveled logging with an optional file sink. Every entry
// carries the run id; the console hides it.
type Logger struct {
	zl    zerolog.Logger
	file  *os.File // Owned by the root logger only.
	runID string
}

// NewLogger builds a logger writing to stderr, colored per cfg.ColorMode.
// Call Close() when done if cfg.LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	return New(os.Stderr, term.Enabled(cfg.ColorMode, os.Stderr), cfg)
}

// New builds a logger whose console output goes to out. Debug entries are
// emitted only when cfg.Verbose is set.
func New(out io.Writer, color bool, cfg *config.Config) (*Logger, error) {
	l := &Logger{runID: uuid.NewString()}

	console := zerolog.ConsoleWriter{
		Out:           out,
		NoColor:       !color,
		TimeFormat:    time.DateTime,
		FieldsExclude: []string{runField},
	}
	writers := []io.Writer{console}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, errors.Wrap(err, "create log directory")
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, errors.Wrap(err, "open log file")
		}
		l.file = f
		writers = append(writers, f)
	}

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	l.zl = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Str(runField, l.runID).
		Logger()
	return l, nil
}

// RunID returns the identifier attached to every entry of this run.
func (l *Logger) RunID() string { return l.runID }

// With returns a child logger that adds key=val to every entry. The child
// shares the parent's sinks; only the parent should be closed.
func (l *Logger) With(key string, val interface{}) *Logger {
	return &Logger{
		zl:    l.zl.With().Interface(key, val).Logger(),
		runID: l.runID,
	}
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.zl.Info().Msg(fmt.Sprintf(format, args...))
}

// Success logs at INFO level tagged status=success.
func (l *Logger) Success(format string, args ...interface{}) {
	l.zl.Info().Str("status", "success").Msg(fmt.Sprintf(format, args...))
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.zl.Error().Msg(fmt.Sprintf(format, args...))
}

// Err logs err at ERROR level with msg as the message.
func (l *Logger) Err(err error, msg string) {
	l.zl.Error().Err(err).Msg(msg)
}

// Debug logs at DEBUG level; dropped unless verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msg(fmt.Sprintf(format, args...))
}
