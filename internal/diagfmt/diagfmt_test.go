package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"hlslc/internal/diag"
	"hlslc/internal/source"
	"hlslc/internal/token"
)

const shaderText = "float4 main() {\n\treturn x;\n}\n"

// fixture: undeclared x на второй строке, с note на main.
func fixture(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("shader.hlsl", []byte(shaderText))
	bag := diag.NewBag(0)
	d := diag.New(diag.SevError, diag.SemaUndeclaredIdentifier, source.Span{File: id, Start: 24, End: 25}, "undeclared identifier 'x'").
		WithNote(source.Span{File: id, Start: 7, End: 11}, "in function 'main'")
	bag.Add(d)
	bag.Add(diag.New(diag.SevWarning, diag.SemaBadMethod, source.Span{File: id, Start: 0, End: 6}, "second"))
	return bag, fs
}

func TestPrettyExcerpt(t *testing.T) {
	bag, fs := fixture(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto, ShowNotes: true})

	want := strings.Join([]string{
		"shader.hlsl:2:9: ERROR SEM3002: undeclared identifier 'x'",
		"2 |     return x;",
		"  | " + strings.Repeat(" ", 11) + "^",
		"  note: shader.hlsl:1:8: in function 'main'",
		"",
		"shader.hlsl:1:1: WARNING SEM3038: second",
		"1 | float4 main() {",
		"  | ^~~~~~",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("Pretty mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyContextLines(t *testing.T) {
	bag, fs := fixture(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	out := buf.String()
	for _, want := range []string{"1 | float4 main() {", "2 |     return x;", "3 | }"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
	if strings.Contains(out, "note:") {
		t.Fatalf("notes printed without ShowNotes:\n%s", out)
	}
}

func TestShort(t *testing.T) {
	bag, fs := fixture(t)
	var buf bytes.Buffer
	Short(&buf, bag, fs, PathModeBasename)
	want := "shader.hlsl:2:9: ERROR SEM3002: undeclared identifier 'x'\nshader.hlsl:1:1: WARNING SEM3038: second\n"
	if buf.String() != want {
		t.Fatalf("Short = %q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	tests := []struct {
		name      string
		opts      JSONOpts
		count     int
		notes     bool
		positions bool
	}{
		{"plain", JSONOpts{}, 2, false, false},
		{"truncated", JSONOpts{Max: 1}, 1, false, false},
		{"full", JSONOpts{IncludeNotes: true, IncludePositions: true}, 2, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag, fs := fixture(t)
			var buf bytes.Buffer
			if err := JSON(&buf, bag, fs, tt.opts); err != nil {
				t.Fatalf("JSON: %v", err)
			}
			var out DiagnosticsOutput
			if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if out.Count != tt.count || out.Total != 2 || out.Errors != 1 {
				t.Fatalf("count=%d total=%d errors=%d", out.Count, out.Total, out.Errors)
			}
			first := out.Diagnostics[0]
			if first.Code != "SEM3002" || first.Severity != "ERROR" || first.Location.StartByte != 24 {
				t.Fatalf("first = %+v", first)
			}
			if (len(first.Notes) > 0) != tt.notes {
				t.Fatalf("notes = %v", first.Notes)
			}
			if (first.Location.StartLine == 2) != tt.positions {
				t.Fatalf("location = %+v", first.Location)
			}
		})
	}
}

func TestSarif(t *testing.T) {
	bag, fs := fixture(t)
	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, SarifRunMeta{ToolVersion: "1.0", InvocationArgs: []string{"diag", "shader.hlsl"}}); err != nil {
		t.Fatalf("Sarif: %v", err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("log = %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "hlslc" || len(run.Tool.Driver.Rules) != 2 {
		t.Fatalf("driver = %+v", run.Tool.Driver)
	}
	if len(run.Invocations) != 1 || run.Invocations[0].ExecutionSuccessful {
		t.Fatalf("invocations = %+v", run.Invocations)
	}
	r := run.Results[0]
	if r.Level != "error" || r.RuleID != "SEM3002" || run.Tool.Driver.Rules[r.RuleIndex].ID != r.RuleID {
		t.Fatalf("result = %+v", r)
	}
	reg := r.Locations[0].PhysicalLocation.Region
	if reg.StartLine != 2 || reg.StartColumn != 9 || reg.ByteLength != 1 {
		t.Fatalf("region = %+v", reg)
	}
	if len(r.RelatedLocations) != 1 || r.RelatedLocations[0].Message.Text != "in function 'main'" {
		t.Fatalf("related = %+v", r.RelatedLocations)
	}
	if run.Results[1].Level != "warning" {
		t.Fatalf("second level = %q", run.Results[1].Level)
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.hlsl", []byte("x = 3;"))
	toks := []token.Token{
		{Kind: token.Ident, Text: "x", Span: source.Span{File: id, Start: 0, End: 1}},
		{Kind: token.IntLit, Text: "3", Int: 3, Span: source.Span{File: id, Start: 4, End: 5}},
		{Kind: token.EOF, Span: source.Span{File: id, Start: 6, End: 6}},
		{Kind: token.Ident, Text: "after"},
	}

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(pretty.String(), "\n"); lines != 3 {
		t.Fatalf("pretty printed %d lines, want 3 (stop at EOF):\n%s", lines, pretty.String())
	}
	if !strings.Contains(pretty.String(), `"3" at 1:5-1:6 = 3`) {
		t.Fatalf("literal line missing:\n%s", pretty.String())
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[1].Value != float64(3) || out[0].Value != nil {
		t.Fatalf("tokens = %+v", out)
	}
}

func TestParsePathMode(t *testing.T) {
	for _, s := range []string{"auto", "ABSOLUTE", "relative", "basename"} {
		m, err := ParsePathMode(s)
		if err != nil || !strings.EqualFold(m.String(), s) {
			t.Fatalf("ParsePathMode(%q) = %v, %v", s, m, err)
		}
	}
	if _, err := ParsePathMode("full"); err == nil {
		t.Fatal("expected error")
	}
}
