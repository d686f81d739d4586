package merge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fremen-fi/wavmerge/internal/logging"
)

// quotePath escapes a path for a single-quoted concat demuxer entry.
func quotePath(path string) string {
	return "'" + strings.ReplaceAll(path, "'", `'\''`) + "'"
}

// renderManifest returns the concat list for files, one absolute path per line.
func renderManifest(files []string) (string, error) {
	var b strings.Builder
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", f, err)
		}
		fmt.Fprintf(&b, "file %s\n", quotePath(abs))
	}
	return b.String(), nil
}

// writeManifest stores the concat list in a temp file. The caller removes it
// with removeManifest.
func writeManifest(files []string) (string, error) {
	body, err := renderManifest(files)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "wavmerge-*.txt")
	if err != nil {
		return "", fmt.Errorf("creating manifest: %w", err)
	}
	if _, err := f.WriteString(body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing manifest: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing manifest: %w", err)
	}
	return f.Name(), nil
}

func removeManifest(path string) {
	if err := os.Remove(path); err != nil {
		logging.Debug("manifest cleanup failed", logging.String("path", path), logging.ErrorField(err))
	}
}
