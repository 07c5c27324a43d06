package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/lexer"
	"hlslc/internal/parser"
	"hlslc/internal/sema"
	"hlslc/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, src string) (bool, sema.Result, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(50)
	r := diag.BagReporter{Bag: bag}
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.hlsl", []byte(src))
	ctx := sema.New(sema.Options{Reporter: r, Stage: ir.StageFragment})
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: r})
	ok := parser.Parse(lexer.NewStream(lx), ctx, parser.Options{Reporter: r})
	return ok, ctx.Finish(), bag
}

// returnedExpr parses a helper function and returns the expression of its return.
func returnedExpr(t *testing.T, ret, expr string) ir.Typed {
	t.Helper()
	src := ret + " helper(float a, float b, float c)\n{\n    return " + expr + ";\n}\n" +
		"float4 main() : SV_TARGET { return helper(1, 2, 3); }\n"
	ok, res, bag := parseSource(t, src)
	if !ok || bag.HasErrors() {
		t.Fatalf("parse %q: %s", expr, diagnosticsSummary(bag))
	}
	n := ir.Find(res.Module.Root, func(n ir.Node) bool {
		b, ok := n.(*ir.Branch)
		return ok && b.Op == ir.OpReturn && b.Expr != nil
	})
	if n == nil {
		t.Fatalf("no return value for %q", expr)
	}
	return n.(*ir.Branch).Expr
}

func wantBinary(t *testing.T, n ir.Node, op ir.Op) *ir.Binary {
	t.Helper()
	b, ok := ir.AsBinary(n, op)
	if !ok {
		t.Fatalf("got %v, want %s:\n%s", n, op, ir.DumpString(n))
	}
	return b
}

func TestBinaryPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		ret   string
		expr  string
		check func(t *testing.T, root ir.Typed)
	}{
		{"mul binds tighter than add", "float", "a + b * c", func(t *testing.T, root ir.Typed) {
			add := wantBinary(t, root, ir.OpAdd)
			wantBinary(t, add.Right, ir.OpMul)
		}},
		{"mul on the left", "float", "a * b + c", func(t *testing.T, root ir.Typed) {
			add := wantBinary(t, root, ir.OpAdd)
			wantBinary(t, add.Left, ir.OpMul)
		}},
		{"left associative", "float", "a - b - c", func(t *testing.T, root ir.Typed) {
			sub := wantBinary(t, root, ir.OpSub)
			wantBinary(t, sub.Left, ir.OpSub)
		}},
		{"parentheses", "float", "(a + b) * c", func(t *testing.T, root ir.Typed) {
			mul := wantBinary(t, root, ir.OpMul)
			wantBinary(t, mul.Left, ir.OpAdd)
		}},
		{"and binds tighter than or", "bool", "a < b || b < c && c < a", func(t *testing.T, root ir.Typed) {
			or := wantBinary(t, root, ir.OpLogicalOr)
			and := wantBinary(t, or.Right, ir.OpLogicalAnd)
			wantBinary(t, and.Left, ir.OpLessThan)
		}},
		{"unary minus", "float", "-a * b", func(t *testing.T, root ir.Typed) {
			mul := wantBinary(t, root, ir.OpMul)
			if u, ok := mul.Left.(*ir.Unary); !ok || u.Op != ir.OpNegative {
				t.Fatalf("left operand = %v, want a negation", mul.Left)
			}
		}},
		{"ternary", "float", "a > 0 ? b : c + 1", func(t *testing.T, root ir.Typed) {
			sel, ok := root.(*ir.Selection)
			if !ok || !sel.Ternary {
				t.Fatalf("root = %v, want a ternary", root)
			}
			wantBinary(t, sel.Cond, ir.OpGreaterThan)
			wantBinary(t, sel.False, ir.OpAdd)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, returnedExpr(t, tt.ret, tt.expr))
		})
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	const src = `
float helper(float a, float b, float c)
{
    a = b = c;
    return a;
}
float4 main() : SV_TARGET { return helper(1, 2, 3); }
`
	ok, res, bag := parseSource(t, src)
	if !ok || bag.HasErrors() {
		t.Fatalf("parse: %s", diagnosticsSummary(bag))
	}
	n := ir.Find(res.Module.Root, func(n ir.Node) bool {
		_, ok := ir.AsBinary(n, ir.OpAssign)
		return ok
	})
	if n == nil {
		t.Fatal("no assignment")
	}
	outer := wantBinary(t, n, ir.OpAssign)
	if s, ok := outer.Left.(*ir.Symbol); !ok || s.Name != "a" {
		t.Fatalf("outer target = %v, want a", outer.Left)
	}
	inner := wantBinary(t, outer.Right, ir.OpAssign)
	if s, ok := inner.Left.(*ir.Symbol); !ok || s.Name != "b" {
		t.Fatalf("inner target = %v, want b", inner.Left)
	}
}

func TestSyntaxErrorsStopParsing(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing semicolon", "float4 main() : SV_TARGET { float x = 1 return x; }"},
		{"unbalanced parenthesis", "float4 main() : SV_TARGET { return (1 + 2; }"},
		{"missing closing brace", "float4 main() : SV_TARGET { return 1;"},
		{"stray token at top level", "float4 main() : SV_TARGET { return 1; } )"},
		{"missing expression", "float4 main() : SV_TARGET { return 1 + ; }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _, bag := parseSource(t, tt.src)
			if ok {
				t.Fatalf("parse succeeded on invalid input: %s", diagnosticsSummary(bag))
			}
			if !bag.HasErrors() {
				t.Fatal("syntax error was not reported")
			}
		})
	}
}

func TestSemanticErrorsDoNotStopParsing(t *testing.T) {
	const src = `
float4 main() : SV_TARGET
{
    float x = undefinedName;
    return 1;
}
`
	ok, _, bag := parseSource(t, src)
	if !ok {
		t.Fatalf("semantic error aborted the parse: %s", diagnosticsSummary(bag))
	}
	if bag.Count(diag.SemaUndeclaredIdentifier) != 1 {
		t.Fatalf("undeclared identifier not reported: %s", diagnosticsSummary(bag))
	}
}
