package sema_test

import (
	"testing"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
)

func TestArraySizeRange(t *testing.T) {
	tests := []struct {
		name string
		decl string
		bad  int
	}{
		{"fits", "static float a[4];", 0},
		{"zero", "static float a[0];", 1},
		{"past int32", "static float a[3000000000u];", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := tt.decl + "\nfloat4 main() : SV_TARGET\n{\n    return a[0];\n}\n"
			_, bag := compile(t, ir.StageFragment, src)
			if got := bag.Count(diag.SemaBadArraySize); got != tt.bad {
				t.Fatalf("bad array size diagnostics = %d, want %d: %s", got, tt.bad, diagnosticsSummary(bag))
			}
		})
	}
}
