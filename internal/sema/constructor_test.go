package sema_test

import (
	"testing"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
)

func TestConstructorComponentCount(t *testing.T) {
	tests := []struct {
		name string
		decl string
		code diag.Code // 0 - без ошибок
	}{
		{"four scalars", "float4 v = float4(1, 2, 3, 4);", 0},
		{"vector and scalars", "float4 v = float4(float2(1, 2), 3, 4);", 0},
		{"two vectors", "float4 v = float4(float2(1, 2), float2(3, 4));", 0},
		{"same type", "float4 v = float4(float4(1, 2, 3, 4));", 0},
		{"broadcast", "float4 v = float4(2);", 0},
		{"matrix", "float2x2 m = float2x2(1, 2, 3, 4);", 0},
		{"matrix truncation", "float2x2 m = float2x2(float3x3(1, 2, 3, 4, 5, 6, 7, 8, 9));", 0},
		{"too few", "float4 v = float4(1, 2, 3);", diag.SemaConstructorTooFew},
		{"too many", "float4 v = float4(1, 2, 3, 4, 5);", diag.SemaConstructorTooMany},
		{"vector too long", "float3 v = float3(float4(1, 2, 3, 4));", diag.SemaConstructorTooMany},
		{"vector too short", "float4 v = float4(float3(1, 2, 3));", diag.SemaConstructorTooFew},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "float4 main() : SV_TARGET\n{\n    " + tt.decl + "\n    return 0;\n}\n"
			_, bag := compile(t, ir.StageFragment, src)
			if tt.code == 0 {
				if bag.HasErrors() {
					t.Fatalf("unexpected errors: %s", diagnosticsSummary(bag))
				}
				return
			}
			if got := bag.Count(tt.code); got != 1 {
				t.Fatalf("%s count = %d, want 1: %s", tt.code.ID(), got, diagnosticsSummary(bag))
			}
		})
	}
}

func TestStructConstructor(t *testing.T) {
	const src = `
struct S { float a; int2 b; };
float4 main() : SV_TARGET
{
    S s1 = S(1, int2(2, 3));
    S s2 = S(1, 2, 3);
    return s1.a + s2.b.x;
}
`
	compileClean(t, ir.StageFragment, src)
}

func TestCast(t *testing.T) {
	tests := []struct {
		name     string
		decl     string
		wantErr  bool
		wantWarn bool
	}{
		{"truncate without warning", "float2 v = (float2)float4(1, 2, 3, 4);", false, false},
		{"scalar to vector", "int3 v = (int3)1.5;", false, false},
		{"scalar to struct", "S v = (S)0;", false, false},
		{"vector to struct", "S v = (S)float3(1, 2, 3);", false, false},
		{"widen vector", "float4 v = (float4)float2(1, 2);", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "struct S { float a; float2 b; };\nfloat4 main() : SV_TARGET\n{\n    " + tt.decl + "\n    return 0;\n}\n"
			_, bag := compile(t, ir.StageFragment, src)
			if got := bag.Count(diag.SemaBadCast) > 0; got != tt.wantErr {
				t.Fatalf("bad cast reported = %v, want %v: %s", got, tt.wantErr, diagnosticsSummary(bag))
			}
			if got := bag.Count(diag.SemaImplicitTruncation) > 0; got != tt.wantWarn {
				t.Fatalf("truncation warning = %v, want %v: %s", got, tt.wantWarn, diagnosticsSummary(bag))
			}
		})
	}
}
