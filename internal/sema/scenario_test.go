package sema_test

import (
	"testing"

	"hlslc/internal/ir"
	"hlslc/internal/types"
)

func TestEntryPointReturnBecomesOutput(t *testing.T) {
	const src = `float4 main(float4 pos : SV_POSITION) : SV_TARGET { return pos; }`
	res := compileClean(t, ir.StageFragment, src)

	if res.EntryPoint == nil || res.EntryPoint.Name != "main" || !res.EntryPoint.EntryPoint {
		t.Fatalf("entry point not marked: %+v", res.EntryPoint)
	}
	if res.Module.EntryPoint != "main" {
		t.Fatalf("module entry point = %q", res.Module.EntryPoint)
	}

	body := function(t, res, "main(vf4;").Seq[1]
	ret := ir.Find(body, func(n ir.Node) bool {
		b, ok := n.(*ir.Branch)
		return ok && b.Op == ir.OpReturn
	})
	if ret == nil {
		t.Fatal("no return in body")
	}
	if ret.(*ir.Branch).Expr != nil {
		t.Fatal("entry point return must not carry a value")
	}
	assign := ir.Find(body, isBinary(ir.OpAssign))
	if assign == nil {
		t.Fatalf("no output assignment:\n%s", ir.DumpString(body))
	}
	bin := assign.(*ir.Binary)
	out, ok := bin.Left.(*ir.Symbol)
	if !ok || out.Name != "@entryPointOutput" {
		t.Fatalf("assignment target = %v, want @entryPointOutput", bin.Left)
	}
	if in, ok := bin.Right.(*ir.Symbol); !ok || in.Name != "pos" {
		t.Fatalf("assigned value = %v, want pos", bin.Right)
	}

	output := linked(t, res, "@entryPointOutput")
	q := output.Type.Qualifier
	if q.Storage != types.VaryingOut || q.Builtin != types.BuiltinNone {
		t.Fatalf("output qualifier = %s", q)
	}
	if loc, ok := q.Layout(types.LayLocation); !ok || loc != 0 {
		t.Fatalf("output location = %d, %v; want 0", loc, ok)
	}

	input := linked(t, res, "pos")
	if input.Type.Qualifier.Storage != types.VaryingIn || input.Type.Qualifier.Builtin != types.BuiltinPosition {
		t.Fatalf("input qualifier = %s", input.Type.Qualifier)
	}
}

func TestDeclaratorList(t *testing.T) {
	const src = `
float4 main() : SV_TARGET
{
    int x = 1, y[3], z = 2;
    return x + z;
}
`
	res := compileClean(t, ir.StageFragment, src)
	body := function(t, res, "main(").Seq[1].(*ir.Aggregate)

	var decl *ir.Aggregate
	for _, s := range body.Seq {
		if agg, ok := s.(*ir.Aggregate); ok && agg.Op == ir.OpSequence {
			decl = agg
			break
		}
	}
	if decl == nil {
		t.Fatalf("declaration did not produce a sequence:\n%s", ir.DumpString(body))
	}
	if len(decl.Seq) != 2 {
		t.Fatalf("initializer count = %d, want 2", len(decl.Seq))
	}
	for i, name := range []string{"x", "z"} {
		bin, ok := ir.AsBinary(decl.Seq[i], ir.OpAssign)
		if !ok {
			t.Fatalf("initializer %d is %T, want an assignment", i, decl.Seq[i])
		}
		if s, ok := bin.Left.(*ir.Symbol); !ok || s.Name != name {
			t.Fatalf("initializer %d assigns %v, want %s", i, bin.Left, name)
		}
	}

	seen := map[string]*types.Type{}
	for _, sym := range allSymbols(res.Table) {
		switch sym.Name {
		case "x", "y", "z":
			seen[sym.Name] = sym.Type
		}
	}
	if len(seen) != 3 {
		t.Fatalf("declared %d of x, y, z", len(seen))
	}
	for name, typ := range seen {
		if typ.Basic != types.Int {
			t.Fatalf("%s has base type %s", name, typ.Basic)
		}
	}
	if !seen["y"].IsArray() || seen["y"].OuterArraySize() != 3 {
		t.Fatalf("y has type %s, want int[3]", seen["y"])
	}
	if seen["x"].IsArray() || seen["z"].IsArray() {
		t.Fatal("array dimension leaked to a sibling declarator")
	}
}

func TestImageCompoundAssignment(t *testing.T) {
	const src = `
RWTexture2D<float4> buf;
[numthreads(8, 8, 1)]
void main(uint2 i : SV_DispatchThreadID)
{
    buf[i] += 1;
}
`
	res := compileClean(t, ir.StageCompute, src)
	body := function(t, res, "main(vu2;").Seq[1]

	if ir.Find(body, isBinary(ir.OpAddAssign)) == nil {
		t.Fatal("no compound add emitted")
	}
	var seq *ir.Aggregate
	for _, n := range findAll(body, isAggregate(ir.OpSequence)) {
		agg := n.(*ir.Aggregate)
		if len(agg.Seq) == 5 {
			seq = agg
			break
		}
	}
	if seq == nil {
		t.Fatalf("no 5-statement lowering:\n%s", ir.DumpString(body))
	}
	if _, ok := ir.AsBinary(seq.Seq[0], ir.OpAssign); !ok {
		t.Fatalf("statement 0 is %T, want the coordinate temporary", seq.Seq[0])
	}
	load, ok := ir.AsBinary(seq.Seq[1], ir.OpAssign)
	if !ok {
		t.Fatalf("statement 1 is %T, want the load", seq.Seq[1])
	}
	if agg, ok := load.Right.(*ir.Aggregate); !ok || agg.Op != ir.OpImageLoad {
		t.Fatalf("statement 1 loads %v", load.Right)
	}
	if _, ok := ir.AsBinary(seq.Seq[2], ir.OpAddAssign); !ok {
		t.Fatalf("statement 2 is %T, want the compound add", seq.Seq[2])
	}
	if store, ok := seq.Seq[3].(*ir.Aggregate); !ok || store.Op != ir.OpImageStore {
		t.Fatalf("statement 3 is %v, want the store", seq.Seq[3])
	}
	if _, ok := seq.Seq[4].(*ir.Symbol); !ok {
		t.Fatalf("statement 4 is %T, want the value temporary", seq.Seq[4])
	}
	if res.Module.LocalSize != [3]int{8, 8, 1} {
		t.Fatalf("local size = %v", res.Module.LocalSize)
	}
}

func TestImagePostIncrement(t *testing.T) {
	const src = `
RWBuffer<int> counts;
[numthreads(1, 1, 1)]
void main(uint i : SV_DispatchThreadID)
{
    int before = counts[i]++;
}
`
	res := compileClean(t, ir.StageCompute, src)
	body := function(t, res, "main(u;").Seq[1]
	if got := len(findAll(body, isAggregate(ir.OpImageStore))); got != 1 {
		t.Fatalf("image stores = %d, want 1", got)
	}
	if got := len(findAll(body, isAggregate(ir.OpImageLoad))); got != 1 {
		t.Fatalf("image loads = %d, want 1", got)
	}
}

func TestScopesBalanced(t *testing.T) {
	const src = `
struct S { float a; };
cbuffer C { float4 tint; };
float helper(float x) { if (x > 0) { float y = x; return y; } return 0; }
float4 main(float4 c : COLOR) : SV_TARGET
{
    for (int i = 0; i < 2; i++) { float t = i; }
    return c * tint + helper(c.x);
}
`
	res := compileClean(t, ir.StageFragment, src)
	if !res.Table.Balanced() {
		t.Fatal("scope stack not balanced after the unit")
	}
	if err := res.Table.Validate(); err != nil {
		t.Fatalf("table validation: %v", err)
	}
}
