// Package pipeline orchestrates a batch run: input checks, file discovery,
// the per-file skip/convert decision, and summary reporting.
//
// Files are processed strictly one at a time. Each file's output path is
// derived afresh from the configured roots, so nothing leaks between
// iterations.
package pipeline
