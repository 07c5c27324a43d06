package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	// строки: "float4 a;" / "" / "\tb = α;"
	id := fs.AddVirtual("shader.hlsl", []byte("float4 a;\n\n\tb = α;\n"))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"file start", 0, LineCol{1, 1}},
		{"first line", 7, LineCol{1, 8}},
		{"newline belongs to its line", 9, LineCol{1, 10}},
		{"empty line", 10, LineCol{2, 1}},
		{"after tab", 12, LineCol{3, 2}},
		{"bytes not runes", 18, LineCol{3, 8}},
		{"end of file", 20, LineCol{4, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if got != tt.want {
				t.Fatalf("Resolve(%d) = %+v, want %+v", tt.off, got, tt.want)
			}
		})
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.hlsl", []byte("α\n"))
	start, end := fs.Resolve(Span{File: id, Start: 0, End: 1})
	if start != (LineCol{1, 1}) || end != (LineCol{1, 2}) {
		t.Fatalf("got %+v..%+v", start, end)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.hlsl", []byte("one\ntwo\nthree")))
	for n, want := range map[uint32]string{0: "", 1: "one", 2: "two", 3: "three", 4: ""} {
		if got := f.GetLine(n); got != want {
			t.Fatalf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ps.hlsl")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFfloat x;\r\nint y;\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "float x;\nint y;\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", f.Flags)
	}
	if got := f.FormatPath("relative", fs.BaseDir()); got != "ps.hlsl" {
		t.Fatalf("relative path = %q", got)
	}
	if got, ok := fs.GetByPath(path); !ok || got.ID != id {
		t.Fatalf("GetByPath miss")
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.hlsl")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPositionString(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("vs.hlsl", []byte("a\nbb"))
	if got := fs.Position(Span{File: id, Start: 3, End: 4}).String(); got != "vs.hlsl:2:2" {
		t.Fatalf("Position = %q", got)
	}
}
