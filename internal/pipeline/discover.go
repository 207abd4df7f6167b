package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// isCandidateName reports whether a directory entry name looks like a file
// with an extension, with shell-glob "*.*" semantics: a leading dot never
// matches.
func isCandidateName(name string) bool {
	return !strings.HasPrefix(name, ".") && strings.Contains(name, ".")
}

// isRegular reports whether the entry at path is, or links to, a regular file.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// Discover lists candidate input files under inputDir. Without recursive only
// immediate children are considered; with it the whole tree is walked,
// skipping hidden directories and pruning exclude (normally the output
// directory) when it lies inside inputDir. A symlinked inputDir is followed;
// returned paths stay under inputDir as given. Order follows the directory
// listing and is not part of the contract.
func Discover(inputDir string, recursive bool, exclude string) ([]string, error) {
	if !recursive {
		return discoverFlat(inputDir)
	}

	// WalkDir does not descend into a symlinked root, so walk its target.
	root, err := filepath.EvalSymlinks(inputDir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", inputDir)
	}
	resolvedExclude := ""
	if exclude != "" {
		if r, err := filepath.EvalSymlinks(exclude); err == nil {
			resolvedExclude = r
		}
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		logical := filepath.Join(inputDir, rel)

		if d.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") || isExcluded(logical, path, exclude, resolvedExclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if isCandidateName(d.Name()) && isRegular(path, d) {
			files = append(files, logical)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", inputDir)
	}
	return files, nil
}

// isExcluded matches a directory against exclude both as spelled under
// inputDir and after symlink resolution.
func isExcluded(logical, resolved, exclude, resolvedExclude string) bool {
	return (exclude != "" && logical == exclude) ||
		(resolvedExclude != "" && resolved == resolvedExclude)
}

func discoverFlat(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", inputDir)
	}
	var files []string
	for _, e := range entries {
		path := filepath.Join(inputDir, e.Name())
		if !e.IsDir() && isCandidateName(e.Name()) && isRegular(path, e) {
			files = append(files, path)
		}
	}
	return files, nil
}
