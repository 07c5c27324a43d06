package sema_test

import (
	"testing"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
)

func TestSwitchLabels(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[diag.Code]int
	}{
		{
			name: "duplicate case",
			body: "switch (x) { case 5: r = 1; break; case 5: r = 2; break; }",
			want: map[diag.Code]int{diag.SemaDuplicateCase: 1, diag.SemaDuplicateDefault: 0},
		},
		{
			name: "duplicate default",
			body: "switch (x) { default: r = 1; break; case 1: break; default: r = 2; break; }",
			want: map[diag.Code]int{diag.SemaDuplicateCase: 0, diag.SemaDuplicateDefault: 1},
		},
		{
			name: "nested switches",
			body: "switch (x) { case 5: switch (r) { case 5: break; default: break; } break; default: break; }",
			want: map[diag.Code]int{diag.SemaDuplicateCase: 0, diag.SemaDuplicateDefault: 0},
		},
		{
			name: "non-constant label",
			body: "switch (x) { case r: break; }",
			want: map[diag.Code]int{diag.SemaBadCaseLabel: 1},
		},
		{
			name: "float condition",
			body: "switch (1.5) { case 1: break; }",
			want: map[diag.Code]int{diag.SemaBadCondition: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "int main(int x : X) : SV_TARGET\n{\n    int r = 0;\n    " + tt.body + "\n    return r;\n}\n"
			_, bag := compile(t, ir.StageFragment, src)
			for code, n := range tt.want {
				if got := bag.Count(code); got != n {
					t.Fatalf("%s count = %d, want %d: %s", code.ID(), got, n, diagnosticsSummary(bag))
				}
			}
		})
	}
}

func TestSwitchBody(t *testing.T) {
	const src = `
int main(int x : X) : SV_TARGET
{
    int r = 0;
    switch (x) {
    case 1:
        r = 10;
        break;
    case 2:
    default:
        r = 20;
    }
    return r;
}
`
	res := compileClean(t, ir.StageFragment, src)
	n := ir.Find(res.Module.Root, func(n ir.Node) bool { _, ok := n.(*ir.Switch); return ok })
	if n == nil {
		t.Fatal("no switch node")
	}
	var ops []ir.Op
	for _, s := range n.(*ir.Switch).Body.Seq {
		switch x := s.(type) {
		case *ir.Branch:
			ops = append(ops, x.Op)
		case *ir.Binary:
			ops = append(ops, x.Op)
		}
	}
	want := []ir.Op{ir.OpCase, ir.OpAssign, ir.OpBreak, ir.OpCase, ir.OpDefault, ir.OpAssign}
	if len(ops) != len(want) {
		t.Fatalf("switch body ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("switch body ops = %v, want %v", ops, want)
		}
	}
}

func TestBranchPlacement(t *testing.T) {
	tests := []struct {
		name  string
		stage ir.Stage
		body  string
		code  diag.Code
		warn  bool
	}{
		{"break outside loop", ir.StageFragment, "break;", diag.SemaBreakOutsideLoop, false},
		{"continue outside loop", ir.StageFragment, "continue;", diag.SemaContinueOutsideLoop, false},
		{"continue in switch", ir.StageFragment, "switch (1) { default: continue; }", diag.SemaContinueOutsideLoop, false},
		{"discard outside pixel shader", ir.StageVertex, "discard;", diag.SemaBadShaderStage, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "float4 main() : SV_POSITION\n{\n    " + tt.body + "\n    return 0;\n}\n"
			_, bag := compile(t, tt.stage, src)
			if bag.Count(tt.code) != 1 {
				t.Fatalf("%s not reported once: %s", tt.code.ID(), diagnosticsSummary(bag))
			}
			if bag.HasErrors() == tt.warn {
				t.Fatalf("errors = %v, want %v: %s", bag.HasErrors(), !tt.warn, diagnosticsSummary(bag))
			}
		})
	}
}

func TestLoopAttributes(t *testing.T) {
	tests := []struct {
		name    string
		attr    string
		control ir.LoopControl
		unroll  int
	}{
		{"none", "", ir.LoopNone, 0},
		{"unroll", "[unroll]", ir.LoopUnroll, 0},
		{"unroll count", "[unroll(4)]", ir.LoopUnroll, 4},
		{"loop", "[loop]", ir.LoopDontUnroll, 0},
		{"fastopt", "[fastopt]", ir.LoopDontUnroll, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "float4 main() : SV_TARGET\n{\n    float s = 0;\n    " + tt.attr +
				" for (int i = 0; i < 4; i++) { s += i; }\n    return s;\n}\n"
			res := compileClean(t, ir.StageFragment, src)
			n := ir.Find(res.Module.Root, func(n ir.Node) bool { _, ok := n.(*ir.Loop); return ok })
			if n == nil {
				t.Fatal("no loop node")
			}
			loop := n.(*ir.Loop)
			if loop.Control != tt.control || loop.Unroll != tt.unroll {
				t.Fatalf("control = %v/%d, want %v/%d", loop.Control, loop.Unroll, tt.control, tt.unroll)
			}
			if !loop.TestFirst || loop.Terminal == nil {
				t.Fatal("for loop must test first and keep its iteration expression")
			}
		})
	}
}

func TestDoWhileTestsLast(t *testing.T) {
	const src = `
float4 main() : SV_TARGET
{
    int i = 0;
    do { i++; } while (i < 3);
    return i;
}
`
	res := compileClean(t, ir.StageFragment, src)
	n := ir.Find(res.Module.Root, func(n ir.Node) bool { _, ok := n.(*ir.Loop); return ok })
	if n == nil || n.(*ir.Loop).TestFirst {
		t.Fatalf("do-while must test after the body: %v", n)
	}
}

func TestReturnChecks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"missing value", "float f() { return; }\nfloat4 main() : SV_TARGET { return f(); }", diag.SemaMissingReturnValue},
		{"value from void", "void f() { return 1; }\nfloat4 main() : SV_TARGET { f(); return 0; }", diag.SemaVoidReturnValue},
		{"incompatible", "struct S { float a; };\nS f() { return 1; }\nfloat4 main() : SV_TARGET { return f().a; }", diag.SemaReturnTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := compile(t, ir.StageFragment, tt.src)
			if bag.Count(tt.code) != 1 {
				t.Fatalf("%s not reported once: %s", tt.code.ID(), diagnosticsSummary(bag))
			}
		})
	}
}

func TestSelectionAttributes(t *testing.T) {
	tests := []struct {
		attr string
		want ir.SelectionControl
	}{
		{"", ir.SelectionNone},
		{"[flatten]", ir.SelectionFlatten},
		{"[branch]", ir.SelectionDontFlatten},
	}
	for _, tt := range tests {
		t.Run(tt.attr, func(t *testing.T) {
			src := "float4 main(float x : X) : SV_TARGET\n{\n    float r = 0;\n    " + tt.attr + " if (x > 0) r = 1; else r = 2;\n    return r;\n}\n"
			res := compileClean(t, ir.StageFragment, src)
			n := ir.Find(res.Module.Root, func(n ir.Node) bool {
				s, ok := n.(*ir.Selection)
				return ok && !s.Ternary
			})
			if n == nil {
				t.Fatal("no selection node")
			}
			if got := n.(*ir.Selection).Control; got != tt.want {
				t.Fatalf("control = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBadInitializerStillDeclares(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"local array", "float4 main() : SV_TARGET\n{\n    float a[3] = {1, 2};\n    return a[0];\n}\n"},
		{"too many", "float4 main() : SV_TARGET\n{\n    float2 v = {1, 2, 3};\n    return v.y;\n}\n"},
		{"static global", "static float a[3] = {1, 2};\nfloat4 main() : SV_TARGET\n{\n    return a[1];\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := compile(t, ir.StageFragment, tt.src)
			if got := bag.Count(diag.SemaBadInitializer); got != 1 {
				t.Fatalf("bad initializer diagnostics = %d, want 1: %s", got, diagnosticsSummary(bag))
			}
			if bag.Len() != 1 {
				t.Fatalf("bad initializer cascaded: %s", diagnosticsSummary(bag))
			}
		})
	}
}
