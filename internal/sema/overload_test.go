package sema_test

import (
	"testing"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
)

func calledNames(root ir.Node) []string {
	var names []string
	for _, n := range findAll(root, isAggregate(ir.OpFunctionCall)) {
		names = append(names, n.(*ir.Aggregate).Name)
	}
	return names
}

func TestOverloadExactMatchWins(t *testing.T) {
	const body = `
float4 main() : SV_TARGET
{
    return float4(f(1), f(1.5), f(true), 0);
}
`
	tests := []struct {
		name  string
		decls string
	}{
		{"int first", "float f(int x) { return 1; }\nfloat f(float x) { return 2; }\nfloat f(bool x) { return 3; }\n"},
		{"float first", "float f(float x) { return 2; }\nfloat f(int x) { return 1; }\nfloat f(bool x) { return 3; }\n"},
		{"bool first", "float f(bool x) { return 3; }\nfloat f(float x) { return 2; }\nfloat f(int x) { return 1; }\n"},
	}
	want := []string{"f(i;", "f(f;", "f(b;"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := compileClean(t, ir.StageFragment, tt.decls+body)
			got := calledNames(function(t, res, "main(").Seq[1])
			if len(got) != len(want) {
				t.Fatalf("calls = %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("call %d resolved to %s, want %s", i, got[i], want[i])
				}
			}
		})
	}
}

func TestOverloadPromotionPreferred(t *testing.T) {
	const src = `
float g(double x) { return 1; }
float g(bool x) { return 2; }
float4 main() : SV_TARGET
{
    return g(1.5);
}
`
	res := compileClean(t, ir.StageFragment, src)
	got := calledNames(function(t, res, "main(").Seq[1])
	if len(got) != 1 || got[0] != "g(d;" {
		t.Fatalf("calls = %v, want [g(d;]", got)
	}
}

func TestOverloadAmbiguous(t *testing.T) {
	const src = `
void g(float a, int b) {}
void g(int a, float b) {}
float4 main() : SV_TARGET
{
    g(1u, 1u);
    return 0;
}
`
	_, bag := compile(t, ir.StageFragment, src)
	if got := bag.Count(diag.SemaAmbiguousCall); got != 1 {
		t.Fatalf("ambiguous call diagnostics = %d, want 1: %s", got, diagnosticsSummary(bag))
	}
}

func TestOverloadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{
			name: "undeclared",
			src:  "float4 main() : SV_TARGET { return h(1); }",
			code: diag.SemaUndeclaredIdentifier,
		},
		{
			name: "no viable candidate",
			src:  "struct S { float a; };\nfloat k(S s) { return s.a; }\nfloat4 main() : SV_TARGET { return k(1); }",
			code: diag.SemaNoMatchingOverload,
		},
		{
			name: "variable called",
			src:  "static float v = 1;\nfloat4 main() : SV_TARGET { return v(1); }",
			code: diag.SemaBadOperands,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := compile(t, ir.StageFragment, tt.src)
			if bag.Count(tt.code) == 0 {
				t.Fatalf("expected %s, got %s", tt.code.ID(), diagnosticsSummary(bag))
			}
		})
	}
}

func TestDefaultArguments(t *testing.T) {
	const src = `
float scale(float x, float k = 2) { return x * k; }
float4 main() : SV_TARGET
{
    return scale(3);
}
`
	res := compileClean(t, ir.StageFragment, src)
	calls := findAll(function(t, res, "main(").Seq[1], isAggregate(ir.OpFunctionCall))
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	if got := len(calls[0].(*ir.Aggregate).Seq); got != 2 {
		t.Fatalf("call has %d arguments, want 2 with the default filled in", got)
	}
}

func TestOutArgumentConversion(t *testing.T) {
	const src = `
void get(out float x) { x = 1; }
float4 main() : SV_TARGET
{
    int i;
    get(i);
    return i;
}
`
	res := compileClean(t, ir.StageFragment, src)
	body := function(t, res, "main(").Seq[1]
	call := ir.Find(body, isAggregate(ir.OpFunctionCall))
	if call == nil {
		t.Fatal("no call emitted")
	}
	arg, ok := call.(*ir.Aggregate).Seq[0].(*ir.Symbol)
	if !ok || arg.Name == "i" {
		t.Fatalf("out argument of another type must go through a temporary, got %v", call.(*ir.Aggregate).Seq[0])
	}
}

func TestOverloadAmbiguityIndependentOfOrder(t *testing.T) {
	const (
		a = "void f(uint x, double y) {}\n"
		b = "void f(double x, uint y) {}\n"
		c = "void f(uint x, float y) {}\n"
	)
	const body = "float4 main() : SV_TARGET\n{\n    f(1, 1);\n    return 0;\n}\n"
	tests := []struct {
		name  string
		decls string
	}{
		{"abc", a + b + c},
		{"acb", a + c + b},
		{"bac", b + a + c},
		{"bca", b + c + a},
		{"cab", c + a + b},
		{"cba", c + b + a},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := compile(t, ir.StageFragment, tt.decls+body)
			if got := bag.Count(diag.SemaAmbiguousCall); got != 1 {
				t.Fatalf("ambiguous call diagnostics = %d, want 1: %s", got, diagnosticsSummary(bag))
			}
		})
	}
}

func TestOverloadPrefersExactOutputs(t *testing.T) {
	const src = `
RWBuffer<uint> counts;
groupshared uint total;
[numthreads(1, 1, 1)]
void main(uint i : SV_DispatchThreadID)
{
    uint before;
    InterlockedAdd(counts[i], 1, before);
    InterlockedAdd(total, 1);
}
`
	_, bag := compile(t, ir.StageCompute, src)
	if got := bag.Count(diag.SemaAmbiguousCall); got != 0 {
		t.Fatalf("ambiguous call diagnostics = %d, want 0: %s", got, diagnosticsSummary(bag))
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", diagnosticsSummary(bag))
	}
}
