package sema_test

import (
	"testing"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/lexer"
	"hlslc/internal/parser"
	"hlslc/internal/sema"
	"hlslc/internal/source"
	"hlslc/internal/types"
)

func TestFinishDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"no entry point", "float f() { return 1; }", diag.SemaEntryPointMissing},
		{"prototype only", "float f(float x);\nfloat4 main() : SV_TARGET { return f(1); }", diag.SemaFunctionNotDefined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := compile(t, ir.StageFragment, tt.src)
			if got := bag.Count(tt.code); got != 1 {
				t.Fatalf("%s count = %d, want 1: %s", tt.code.ID(), got, diagnosticsSummary(bag))
			}
		})
	}
}

func TestUncalledPrototypeIsFine(t *testing.T) {
	compileClean(t, ir.StageFragment, "float f(float x);\nfloat4 main() : SV_TARGET { return 1; }")
}

func TestLocationAssignment(t *testing.T) {
	const src = `
float4 main(float4 a : TEXCOORD0, float2 b : TEXCOORD1, float4x4 m : MATRIX, float c : TEXCOORD2) : SV_TARGET1
{
    return a + b.x + m[0] + c;
}
`
	res := compileClean(t, ir.StageFragment, src)
	want := map[string]int{"a": 0, "b": 1, "m": 2, "c": 6, "@entryPointOutput": 1}
	for name, loc := range want {
		sym := linked(t, res, name)
		got, ok := sym.Type.Qualifier.Layout(types.LayLocation)
		if !ok || got != loc {
			t.Fatalf("%s location = %d, %v; want %d", name, got, ok, loc)
		}
	}
}

func TestLinkerObjectsCloseTheTree(t *testing.T) {
	const src = `
Texture2D tex;
float4 main(float4 pos : SV_POSITION) : SV_TARGET { return pos; }
`
	res := compileClean(t, ir.StageFragment, src)
	root, ok := res.Module.Root.(*ir.Aggregate)
	if !ok || root.Op != ir.OpSequence {
		t.Fatalf("root = %T", res.Module.Root)
	}
	last, ok := root.Seq[len(root.Seq)-1].(*ir.Aggregate)
	if !ok || last.Op != ir.OpLinkerObjects {
		t.Fatalf("tree does not end with the linker objects:\n%s", ir.DumpString(root))
	}
	names := map[string]bool{}
	for _, n := range last.Seq {
		names[n.(*ir.Symbol).Name] = true
	}
	for _, name := range []string{"tex", "pos", "@entryPointOutput"} {
		if !names[name] {
			t.Fatalf("linker objects miss %s: %v", name, names)
		}
	}
}

func TestFinishIsIdempotent(t *testing.T) {
	bag := diag.NewBag(10)
	r := diag.BagReporter{Bag: bag}
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.hlsl", []byte("float4 main() : SV_TARGET { return 1; }"))
	ctx := sema.New(sema.Options{Reporter: r, Stage: ir.StageFragment})
	parser.Parse(lexer.NewStream(lexer.New(fs.Get(id), lexer.Options{Reporter: r})), ctx, parser.Options{Reporter: r})

	first := ctx.Finish()
	second := ctx.Finish()
	if first.Module != second.Module || first.Errors != second.Errors {
		t.Fatal("second Finish returned a different result")
	}
	if got := len(findAll(second.Module.Root, isAggregate(ir.OpLinkerObjects))); got != 1 {
		t.Fatalf("linker object lists = %d, want 1", got)
	}
}
