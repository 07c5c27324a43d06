package buildpipeline

import (
	"path/filepath"
	"strings"
)

// displayName renders path relative to baseDir when it lies below it.
func displayName(path, baseDir string) string {
	p := filepath.Clean(path)
	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		if rel, err := filepath.Rel(base, p); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			p = rel
		}
	}
	return filepath.ToSlash(p)
}

// progressFiles maps the driver's file paths to display names, keeping
// input order and dropping duplicates.
func progressFiles(files []string, baseDir string) (names []string, byPath map[string]string) {
	names = make([]string, 0, len(files))
	byPath = make(map[string]string, len(files))
	seen := make(map[string]struct{}, len(files))
	for _, file := range files {
		if file == "" {
			continue
		}
		name := displayName(file, baseDir)
		byPath[filepath.ToSlash(filepath.Clean(file))] = name
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, byPath
}

// DisplayNames returns the names Build reports progress under.
func DisplayNames(files []string, baseDir string) []string {
	names, _ := progressFiles(files, baseDir)
	return names
}
