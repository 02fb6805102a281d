package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates dir (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %v", dir, err)
	}
	return nil
}

// BaseName returns the input filename without directory or extension,
// used as the default project name for an imported song.
func BaseName(inputFile string) string {
	base := filepath.Base(inputFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ProjectDir resolves the directory that holds a song's generated files.
// With no explicit outputDir it lives next to the input file, named after it.
func ProjectDir(inputFile, outputDir string) (string, string, error) {
	baseName := BaseName(inputFile)

	var projectDir string
	if outputDir != "" {
		abs, err := filepath.Abs(outputDir)
		if err != nil {
			return "", "", err
		}
		projectDir = abs
	} else {
		abs, err := filepath.Abs(inputFile)
		if err != nil {
			return "", "", err
		}
		projectDir = filepath.Join(filepath.Dir(abs), baseName)
	}

	if err := EnsureDir(projectDir); err != nil {
		return "", "", err
	}
	return projectDir, baseName, nil
}

// TempDir creates a temporary working directory for one import run.
func TempDir() (string, error) {
	return os.MkdirTemp("", "karaoke_")
}

// TruncateString shortens s to max runes, appending "..." when cut.
func TruncateString(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
