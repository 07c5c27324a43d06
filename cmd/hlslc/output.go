package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hlslc/internal/diag"
	"hlslc/internal/diagfmt"
	"hlslc/internal/observ"
	"hlslc/internal/source"
	"hlslc/internal/version"
)

// errCompileFailed is returned after the diagnostics have been printed;
// execute does not print it again.
var errCompileFailed = errors.New("compilation failed")

type diagFormat string

const (
	formatPretty diagFormat = "pretty"
	formatShort  diagFormat = "short"
	formatJSON   diagFormat = "json"
	formatSarif  diagFormat = "sarif"
)

func readDiagFormat(value string) (diagFormat, error) {
	switch f := diagFormat(value); f {
	case formatPretty, formatShort, formatJSON, formatSarif:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (expected pretty|short|json|sarif)", value)
}

type diagPrinter struct {
	format    diagFormat
	color     bool
	context   int8
	pathMode  diagfmt.PathMode
	showNotes bool
	args      []string
}

// print writes bag in the selected format. The timings note is only
// rendered by the machine formats; pretty and short get observ summaries.
func (p diagPrinter) print(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	switch p.format {
	case formatJSON:
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         p.pathMode,
			IncludeNotes:     p.showNotes,
		})
	case formatSarif:
		return diagfmt.Sarif(w, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "hlslc",
			ToolVersion:    version.Version,
			InvocationArgs: p.args,
		})
	}
	visible := withoutTimings(bag)
	if p.format == formatShort {
		diagfmt.Short(w, visible, fs, p.pathMode)
		return nil
	}
	diagfmt.Pretty(w, visible, fs, diagfmt.PrettyOpts{
		Color:     p.color,
		Context:   p.context,
		PathMode:  p.pathMode,
		ShowNotes: p.showNotes,
	})
	return nil
}

func withoutTimings(bag *diag.Bag) *diag.Bag {
	if bag.Count(diag.ObsTimings) == 0 {
		return bag
	}
	out := diag.NewBag(0)
	out.Merge(bag)
	out.Filter(func(d *diag.Diagnostic) bool { return d.Code != diag.ObsTimings })
	return out
}

// stderrPrinter is the pretty printer used by parse and tokenize.
func stderrPrinter(cmd *cobra.Command) (diagPrinter, error) {
	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return diagPrinter{}, err
	}
	return diagPrinter{format: formatPretty, color: color, context: 1, showNotes: true}, nil
}

func printTimings(w io.Writer, report *observ.Report) {
	if report == nil {
		return
	}
	fmt.Fprint(w, report.Summary())
}
