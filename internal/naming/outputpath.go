package naming

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// OutputPath rebases inputPath from inputDir onto outputDir and replaces its
// extension with "."+format, preserving the relative subdirectory layout.
//
//	inputDir=/in, outputDir=/out, inputPath=/in/a/b.mov, format=mp4 → /out/a/b.mp4
//
// inputPath must lie under inputDir.
func OutputPath(inputDir, outputDir, inputPath, format string) (string, error) {
	rel, err := filepath.Rel(inputDir, inputPath)
	if err != nil {
		return "", errors.Wrapf(err, "relative path of %s", inputPath)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("%s is not inside %s", inputPath, inputDir)
	}
	return filepath.Join(outputDir, StripExt(rel)) + "." + format, nil
}

// StripExt removes the final extension from the last path element. Leading
// dots do not start an extension, so ".profile" is returned unchanged and
// ".a.b" becomes ".a".
func StripExt(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(strings.TrimLeft(base, "."))
	return path[:len(path)-len(ext)]
}
