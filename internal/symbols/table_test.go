package symbols

import (
	"testing"

	"hlslc/internal/ir"
	"hlslc/internal/source"
	"hlslc/internal/types"
)

func variable(name string, t *types.Type) Symbol {
	return Symbol{Kind: SymbolVariable, Name: name, Type: t}
}

func function(name string, params ...*types.Type) Symbol {
	ps := make([]Param, len(params))
	for i, p := range params {
		ps[i] = Param{Type: p}
	}
	fn := NewFunction(name, types.NewVoid(), ps)
	return Symbol{Kind: SymbolFunction, Name: name, Type: fn.Return, Func: fn}
}

func TestScopeLevelsAndShadowing(t *testing.T) {
	table := NewTable(Hints{}, nil)
	if !table.AtGlobalLevel() || table.Level() != 1 {
		t.Fatalf("new table must start at global level, got %d", table.Level())
	}
	outer, ok := table.Insert(variable("x", types.NewScalar(types.Float)))
	if !ok {
		t.Fatal("insert x failed")
	}
	table.Push(ScopeBlock, source.Span{})
	inner, ok := table.Insert(variable("x", types.NewScalar(types.Int)))
	if !ok {
		t.Fatal("shadowing in a nested scope must succeed")
	}
	if got := table.Find("x"); got != inner {
		t.Fatalf("Find should return the inner x, got %v", got)
	}
	if _, ok := table.Insert(variable("x", types.NewScalar(types.Int))); ok {
		t.Fatal("redeclaration in the same scope must fail")
	}
	if !table.Pop() {
		t.Fatal("pop failed")
	}
	if got := table.Find("x"); got != outer {
		t.Fatalf("after pop Find should return the outer x, got %v", got)
	}
	if table.Pop() {
		t.Fatal("global scope must not be popped")
	}
	if !table.Balanced() {
		t.Fatal("table should be balanced")
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestOverloadInsert(t *testing.T) {
	table := NewTable(Hints{}, nil)
	fi, ok := table.Insert(function("f", types.NewScalar(types.Int)))
	if !ok {
		t.Fatal("insert f(int) failed")
	}
	if _, ok := table.Insert(function("f", types.NewScalar(types.Float))); !ok {
		t.Fatal("overload f(float) must be accepted")
	}
	if _, ok := table.Insert(function("f", types.NewScalar(types.Int))); ok {
		t.Fatal("same signature must collide")
	}
	if _, ok := table.Insert(variable("f", types.NewScalar(types.Int))); ok {
		t.Fatal("variable named like a function must collide")
	}
	if got := table.FindFunction("f(i;"); got != fi {
		t.Fatalf("FindFunction by mangled name = %v", got)
	}
	if got := len(table.FindCandidates("f")); got != 2 {
		t.Fatalf("expected 2 candidates, got %d", got)
	}
}

func TestBuiltinsLoadedOnce(t *testing.T) {
	calls := 0
	loader := func(name string) []*Function {
		calls++
		if name != "abs" {
			return nil
		}
		return []*Function{
			{Name: "abs", Mangled: "abs(f;", Builtin: true, Op: ir.OpAbs, Return: types.NewScalar(types.Float)},
			{Name: "abs", Mangled: "abs(i;", Builtin: true, Op: ir.OpAbs, Return: types.NewScalar(types.Int)},
		}
	}
	table := NewTable(Hints{}, loader)
	table.Insert(function("abs", types.NewScalar(types.Double)))

	cands := table.FindCandidates("abs")
	if len(cands) != 3 {
		t.Fatalf("expected user overload plus 2 builtins, got %d", len(cands))
	}
	if cands[0].IsBuiltin() || !cands[1].IsBuiltin() {
		t.Fatal("user functions must precede builtins")
	}
	table.FindCandidates("abs")
	table.Find("abs")
	if calls != 1 {
		t.Fatalf("loader called %d times", calls)
	}
	if table.Find("nosuch") != nil {
		t.Fatal("unknown name must not resolve")
	}
}

func TestNewVariableAndPromote(t *testing.T) {
	table := NewTable(Hints{}, nil)
	tmp := table.NewVariable("@tmp", types.NewScalar(types.Float), source.Span{})
	if !tmp.ID.IsValid() || table.Find("@tmp") != nil {
		t.Fatal("temporaries get a handle but are not visible")
	}
	table.Push(ScopeFunction, source.Span{})
	local, _ := table.Insert(variable("in0", types.NewVector(types.Float, 4)))
	table.Promote(local.ID)
	table.Promote(local.ID)
	table.Pop()
	if got := table.Promoted(); len(got) != 1 || got[0] != local.ID {
		t.Fatalf("promoted = %v", got)
	}
	if table.Get(local.ID) != local {
		t.Fatal("promoted symbol must outlive its scope")
	}
	g, ok := table.InsertGlobal(variable("@entryPointOutput", types.NewVector(types.Float, 4)))
	if !ok || g.Scope != table.Global() {
		t.Fatal("InsertGlobal must bind at the global level")
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
