package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"hlslc/internal/diag"
	"hlslc/internal/source"
)

const tabWidth = 4

type palette struct {
	sev    map[diag.Severity]*color.Color
	code   *color.Color
	gutter *color.Color
	caret  *color.Color
	note   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		code:   color.New(color.Faint),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.code, p.gutter, p.caret, p.note} {
		setColor(c, enabled)
	}
	for _, c := range p.sev {
		setColor(c, enabled)
	}
	return p
}

func setColor(c *color.Color, enabled bool) {
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

// Pretty пишет диагностики в виде
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	   12 | float x = y;
//	      |           ^
//
// затем notes в том же формате. Ожидается, что bag уже отсортирован.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			formatPath(fs, f, opts.PathMode), start.Line, start.Col,
			p.sev[d.Severity].Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message)
		if f != nil {
			writeExcerpt(w, fs, f, d.Primary, int(opts.Context), p)
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			pos, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), formatPath(fs, nf, opts.PathMode), pos.Line, pos.Col, n.Msg)
		}
	}
}

// Short пишет одну строку на диагностику, без исходного текста.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", formatPath(fs, f, mode), start.Line, start.Col, d.Severity, d.Code.ID(), d.Message)
	}
}

func writeExcerpt(w io.Writer, fs *source.FileSet, f *source.File, sp source.Span, context int, p palette) {
	start, end := fs.Resolve(sp)
	first := max(int(start.Line)-context, 1)
	last := int(start.Line) + context
	width := len(fmt.Sprint(last))

	for line := first; line <= last; line++ {
		if line > len(f.LineIdx)+1 {
			break
		}
		orig := strings.TrimRight(f.GetLine(uint32(line)), "\r")
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, line), expandTabs(orig))
		if line != int(start.Line) {
			continue
		}
		pad := displayWidth(orig, int(start.Col)-1)
		n := 1
		if end.Line == start.Line && end.Col > start.Col {
			n = displayWidth(orig, int(end.Col)-1) - pad
		}
		marker := "^" + strings.Repeat("~", max(n-1, 0))
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", width, ""), strings.Repeat(" ", pad), p.caret.Sprint(marker))
	}
}

// displayWidth is the terminal width of the first n bytes of line after
// tab expansion. Columns in spans count bytes.
func displayWidth(line string, n int) int {
	n = min(max(n, 0), len(line))
	return runewidth.StringWidth(expandTabs(line[:n]))
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}
