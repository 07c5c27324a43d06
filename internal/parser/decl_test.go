package parser_test

import (
	"testing"

	"hlslc/internal/diag"
)

func TestDeclarationNotRewoundAfterDeclarators(t *testing.T) {
	tests := []struct {
		name string
		decl string
	}{
		{"short", "float a .x;"},
		{"longer than the stream history", "float a0, a1, a2, a3, a4, a5, a6, a7, a8, a9 .x;"},
		{"long initializer", "float a = 1 + 2 + 3 + 4 + 5 + 6 + 7 + 8 + 9 + 10 b;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "float4 main() : SV_TARGET\n{\n    " + tt.decl + "\n    return 0;\n}\n"
			ok, _, bag := parseSource(t, src)
			if ok {
				t.Fatalf("parse succeeded: %s", diagnosticsSummary(bag))
			}
			if got := bag.Count(diag.SynExpectSemicolon); got != 1 {
				t.Fatalf("missing ';' diagnostics = %d, want 1: %s", got, diagnosticsSummary(bag))
			}
			if bag.Count(diag.SemaRedefinition) != 0 || bag.Count(diag.SemaUndeclaredIdentifier) != 0 {
				t.Fatalf("declaration replayed as an expression: %s", diagnosticsSummary(bag))
			}
		})
	}
}
