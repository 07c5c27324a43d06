package sema_test

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
	"hlslc/internal/symbols"
)

// compile прогоняет исходник через лексер, парсер и семантику целиком
func compile(t *testing.T, stage ir.Stage, src string) (sema.Result, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(100)
	r := diag.BagReporter{Bag: bag}
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.hlsl", []byte(src))
	ctx := sema.New(sema.Options{Reporter: r, Stage: stage})
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: r})
	parser.Parse(lexer.NewStream(lx), ctx, parser.Options{Reporter: r})
	return ctx.Finish(), bag
}

// compileClean fails the test on any error diagnostic.
func compileClean(t *testing.T, stage ir.Stage, src string) sema.Result {
	t.Helper()
	res, bag := compile(t, stage, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", diagnosticsSummary(bag))
	}
	return res
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	items := bag.Items()
	if len(items) == 0 {
		return "<none>"
	}
	parts := make([]string, 0, len(items))
	for _, d := range items {
		parts = append(parts, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return strings.Join(parts, "; ")
}

func findAll(root ir.Node, pred func(ir.Node) bool) []ir.Node {
	var out []ir.Node
	ir.Walk(root, func(n ir.Node) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

func isAggregate(op ir.Op) func(ir.Node) bool {
	return func(n ir.Node) bool {
		agg, ok := n.(*ir.Aggregate)
		return ok && agg.Op == op
	}
}

func isBinary(op ir.Op) func(ir.Node) bool {
	return func(n ir.Node) bool {
		_, ok := ir.AsBinary(n, op)
		return ok
	}
}

// function returns the definition of the function with the given mangled name.
func function(t *testing.T, res sema.Result, mangled string) *ir.Aggregate {
	t.Helper()
	n := ir.Find(res.Module.Root, func(n ir.Node) bool {
		agg, ok := n.(*ir.Aggregate)
		return ok && agg.Op == ir.OpFunction && agg.Name == mangled
	})
	if n == nil {
		t.Fatalf("function %s not found in:\n%s", mangled, ir.DumpString(res.Module.Root))
	}
	return n.(*ir.Aggregate)
}

func linked(t *testing.T, res sema.Result, name string) *symbols.Symbol {
	t.Helper()
	for _, sym := range res.Linkage {
		if sym.Name == name {
			return sym
		}
	}
	t.Fatalf("linker object %q not found", name)
	return nil
}

func allSymbols(table *symbols.Table) []*symbols.Symbol {
	var out []*symbols.Symbol
	for i := 1; i <= table.Symbols.Len(); i++ {
		if sym := table.Symbols.Get(symbols.SymbolID(i)); sym != nil {
			out = append(out, sym)
		}
	}
	return out
}
