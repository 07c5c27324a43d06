package diagfmt

import (
	"fmt"
	"strings"

	"hlslc/internal/source"
)

// PathMode selects how file paths are printed.
type PathMode uint8

const (
	PathModeAuto PathMode = iota // короткие пути как есть, длинные абсолютные - basename
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

var pathModeNames = [...]string{
	PathModeAuto:     "auto",
	PathModeAbsolute: "absolute",
	PathModeRelative: "relative",
	PathModeBasename: "basename",
}

func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return "auto"
}

// ParsePathMode converts a --path-mode flag value.
func ParsePathMode(s string) (PathMode, error) {
	for m, name := range pathModeNames {
		if strings.EqualFold(s, name) {
			return PathMode(m), nil
		}
	}
	return PathModeAuto, fmt.Errorf("invalid path mode %q (expected: auto|absolute|relative|basename)", s)
}

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color     bool
	Context   int8 // строк контекста до и после строки ошибки
	PathMode  PathMode
	ShowNotes bool
}

// JSONOpts configures JSON.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}

// SarifRunMeta describes the tool run for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}

func formatPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeAbsolute, PathModeBasename, PathModeAuto:
		return f.FormatPath(mode.String(), "")
	}
	return f.Path
}
