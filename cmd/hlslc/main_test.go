package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hlslc/internal/diagfmt"
	"hlslc/internal/project"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	cleanupRun()
	return out.String(), err
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{" AUTO ", uiModeAuto, false},
		{"on", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := readUIMode(tt.in)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Fatalf("readUIMode(%q) = %q, %v", tt.in, got, err)
			}
		})
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Fatal("explicit ui modes ignored")
	}
}

func TestReadDiagFormat(t *testing.T) {
	for _, ok := range []string{"pretty", "short", "json", "sarif"} {
		if _, err := readDiagFormat(ok); err != nil {
			t.Fatalf("%s: %v", ok, err)
		}
	}
	if _, err := readDiagFormat("xml"); err == nil {
		t.Fatal("xml accepted")
	}
}

func TestParseEmitsIR(t *testing.T) {
	path := filepath.Join("..", "..", "testdata", "shaders", "passthrough.ps.hlsl")
	out, err := runCLI(t, "parse", "--no-manifest", "--emit-ir", path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.HasPrefix(out, "stage frag\n") || !strings.Contains(out, "entry-point: main") {
		t.Fatalf("unexpected dump:\n%s", out)
	}
}

func TestDiagJSONReportsErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.hlsl"), []byte("float4 main( {\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ok.ps.hlsl"), []byte("float4 main(float4 pos : SV_POSITION) : SV_TARGET { return pos; }\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "diag", "--no-manifest", "--format", "json", dir)
	if !errors.Is(err, errCompileFailed) {
		t.Fatalf("err = %v, want errCompileFailed", err)
	}
	var doc diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	if doc.Errors == 0 || len(doc.Diagnostics) == 0 {
		t.Fatalf("no errors reported: %+v", doc)
	}
	for _, d := range doc.Diagnostics {
		if !strings.HasSuffix(d.Location.File, "bad.hlsl") {
			t.Fatalf("diagnostic for clean file: %+v", d)
		}
	}
}

func TestInitWritesManifest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "post_fx")
	if _, err := runCLI(t, "--quiet", "init", dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	m, err := project.Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	if m.Config.Package.Name != "post_fx" {
		t.Fatalf("name = %q", m.Config.Package.Name)
	}
	if _, err := runCLI(t, "init", dir); err == nil {
		t.Fatal("second init succeeded")
	}
}
