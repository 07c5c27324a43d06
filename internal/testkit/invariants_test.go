package testkit_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"hlslc/internal/driver"
	"hlslc/internal/ir"
	"hlslc/internal/source"
	"hlslc/internal/testkit"
)

func TestTestdataShadersHoldInvariants(t *testing.T) {
	files, err := driver.ListShaderFiles(filepath.Join("..", "..", "testdata"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Skip("no testdata shaders")
	}
	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			res, err := driver.CompileFile(context.Background(), path, driver.DefaultOptions())
			if err != nil {
				t.Fatal(err)
			}
			if res.Failed() {
				t.Fatalf("%s does not compile: %d errors", path, res.Bag.ErrorCount())
			}
			if err := testkit.CheckModuleInvariants(res.Sema.Module, res.File); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestCheckModuleInvariantsFailures(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("x.hlsl", []byte("float4 main();")))

	tests := []struct {
		name string
		span source.Span
		want string
	}{
		{"past end", source.Span{File: f.ID, Start: 3, End: 40}, "past the file"},
		{"inverted", source.Span{File: f.ID, Start: 5, End: 2}, "inverted"},
		{"other file", source.Span{File: f.ID + 1, Start: 0, End: 1}, "points to file"},
		{"missing operand", source.Span{File: f.ID, Start: 0, End: 6}, "missing operand"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &ir.Binary{Op: ir.OpAdd}
			n.SetSpan(tt.span)
			m := ir.NewModule(ir.StageFragment)
			m.Root = n
			err := testkit.CheckModuleInvariants(m, f)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
