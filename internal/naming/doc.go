// Package naming derives output paths from input paths and tracks which
// input claimed each output within a run.
//
// Paths are computed per file from the immutable input and output roots;
// nothing is carried from one file to the next.
package naming
