package ir

import (
	"strings"
	"testing"

	"hlslc/internal/source"
	"hlslc/internal/types"
)

func newTestBuilder() (*Builder, *[]string) {
	var warnings []string
	b := NewBuilder(NewModule(StageFragment))
	b.Warn = func(_ source.Span, msg string) { warnings = append(warnings, msg) }
	return b, &warnings
}

func sym(b *Builder, id SymbolID, name string, t *types.Type) *Symbol {
	return b.NewSymbol(id, name, t, source.NoSpan)
}

func TestAddBinaryMathPromotion(t *testing.T) {
	b, _ := newTestBuilder()
	tests := []struct {
		name   string
		op     Op
		l, r   *types.Type
		want   string
		wantOp Op
	}{
		{"int+float", OpAdd, types.NewScalar(types.Int), types.NewScalar(types.Float), "float", OpAdd},
		{"int+uint", OpAdd, types.NewScalar(types.Int), types.NewScalar(types.Uint), "uint", OpAdd},
		{"bool+bool", OpAdd, types.NewScalar(types.Bool), types.NewScalar(types.Bool), "int", OpAdd},
		{"float4*float", OpMul, types.NewVector(types.Float, 4), types.NewScalar(types.Float), "float4", OpVectorTimesScalar},
		{"float*float3x3", OpMul, types.NewScalar(types.Float), types.NewMatrix(types.Float, 3, 3), "float3x3", OpMatrixTimesScalar},
		{"float4<float4", OpLessThan, types.NewVector(types.Float, 4), types.NewVector(types.Float, 4), "bool4", OpLessThan},
		{"int3==int3", OpEqual, types.NewVector(types.Int, 3), types.NewVector(types.Int, 3), "bool3", OpVectorEqual},
		{"float&&int", OpLogicalAnd, types.NewScalar(types.Float), types.NewScalar(types.Int), "bool", OpLogicalAnd},
		{"double-float2", OpSub, types.NewScalar(types.Double), types.NewVector(types.Float, 2), "double2", OpSub},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := b.AddBinaryMath(tt.op, sym(b, 1, "a", tt.l), sym(b, 2, "b", tt.r), source.NoSpan)
			if n == nil {
				t.Fatal("AddBinaryMath returned nil")
			}
			bin, ok := n.(*Binary)
			if !ok {
				t.Fatalf("expected binary node, got %T", n)
			}
			if bin.Op != tt.wantOp {
				t.Errorf("op = %s, want %s", bin.Op, tt.wantOp)
			}
			if got := n.Type().String(); got != tt.want {
				t.Errorf("type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAddBinaryMathRejects(t *testing.T) {
	b, _ := newTestBuilder()
	s := &types.StructDef{Name: "S", Members: []types.Member{{Name: "x", Type: types.NewScalar(types.Float)}}}
	tex := types.NewSampler(types.Sampler{Type: types.Float, VectorSize: 4, Dim: types.Dim2D})
	tests := []struct {
		name string
		op   Op
		l, r *types.Type
	}{
		{"float<<int", OpLeftShift, types.NewScalar(types.Float), types.NewScalar(types.Int)},
		{"float&float", OpAnd, types.NewScalar(types.Float), types.NewScalar(types.Float)},
		{"struct+struct", OpAdd, types.NewStruct(s, types.Struct), types.NewStruct(s, types.Struct)},
		{"texture+float", OpAdd, tex, types.NewScalar(types.Float)},
		{"matrix+vector", OpAdd, types.NewMatrix(types.Float, 4, 4), types.NewVector(types.Float, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if n := b.AddBinaryMath(tt.op, sym(b, 1, "a", tt.l), sym(b, 2, "b", tt.r), source.NoSpan); n != nil {
				t.Fatalf("expected nil, got %s", DumpString(n))
			}
		})
	}
}

func TestVectorTruncationWarns(t *testing.T) {
	b, warnings := newTestBuilder()
	n := b.AddBinaryMath(OpAdd, sym(b, 1, "a", types.NewVector(types.Float, 4)), sym(b, 2, "b", types.NewVector(types.Float, 2)), source.NoSpan)
	if n == nil || n.Type().String() != "float2" {
		t.Fatalf("float4+float2 should truncate to float2, got %v", n)
	}
	if len(*warnings) != 1 || !strings.Contains((*warnings)[0], "truncation") {
		t.Fatalf("expected truncation warning, got %v", *warnings)
	}
}

func TestConstantFolding(t *testing.T) {
	b, _ := newTestBuilder()
	sp := source.NoSpan
	tests := []struct {
		name string
		node Typed
		want string
	}{
		{"int arithmetic", b.AddBinaryMath(OpAdd, b.ConstInt(2, sp), b.AddBinaryMath(OpMul, b.ConstInt(3, sp), b.ConstInt(4, sp), sp), sp), "14"},
		{"int/float promotes", b.AddBinaryMath(OpDiv, b.ConstInt(1, sp), b.ConstFloat(4, sp), sp), "0.25"},
		{"int wraps", b.AddBinaryMath(OpAdd, b.ConstInt(0x7FFFFFFF, sp), b.ConstInt(1, sp), sp), "-2147483648"},
		{"shift", b.AddBinaryMath(OpLeftShift, b.ConstUint(1, sp), b.ConstInt(4, sp), sp), "16"},
		{"compare", b.AddBinaryMath(OpLessThan, b.ConstInt(1, sp), b.ConstInt(2, sp), sp), "true"},
		{"negate", b.AddUnaryMath(OpNegative, b.ConstFloat(1.5, sp), sp), "-1.5"},
		{"not", b.AddUnaryMath(OpLogicalNot, b.ConstBool(false, sp), sp), "true"},
		{"bitwise not", b.AddUnaryMath(OpBitwiseNot, b.ConstInt(0, sp), sp), "-1"},
		{"ternary", b.AddTernary(b.ConstBool(true, sp), b.ConstInt(7, sp), b.ConstInt(9, sp), sp), "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := AsConstant(tt.node)
			if !ok {
				t.Fatalf("expected constant, got %T", tt.node)
			}
			if got := c.Values[0].String(); got != tt.want {
				t.Errorf("value = %s, want %s", got, tt.want)
			}
		})
	}

	if n := b.AddBinaryMath(OpDiv, b.ConstInt(1, sp), b.ConstInt(0, sp), sp); IsConstant(n) {
		t.Error("integer division by zero must not fold")
	}
}

func TestFoldConstructor(t *testing.T) {
	b, _ := newTestBuilder()
	sp := source.NoSpan
	v2 := b.NewConstant([]types.ConstUnion{types.ConstFloat(1), types.ConstFloat(2)}, types.NewVector(types.Float, 2), sp)
	agg := b.NewAggregate(OpConstruct, types.NewVector(types.Float, 4), sp, v2, b.ConstInt(3, sp), b.ConstFloat(4, sp))
	c, ok := AsConstant(b.FoldConstructor(agg))
	if !ok {
		t.Fatal("constructor of constants must fold")
	}
	if got := len(c.Values); got != 4 || c.Values[2].F != 3 || c.Values[2].Kind != types.Float {
		t.Fatalf("folded values = %v", c.Values)
	}

	diag := b.NewAggregate(OpConstruct, types.NewMatrix(types.Float, 2, 2), sp, b.ConstFloat(5, sp))
	m, _ := AsConstant(b.FoldConstructor(diag))
	if m == nil || m.Values[0].F != 5 || m.Values[1].F != 0 || m.Values[3].F != 5 {
		t.Fatalf("diagonal matrix = %v", m)
	}
}

func TestShapeConversion(t *testing.T) {
	b, warnings := newTestBuilder()
	sp := source.NoSpan
	s := sym(b, 1, "s", types.NewScalar(types.Float))
	n := b.AddConversion(types.NewVector(types.Float, 3), s)
	agg, ok := n.(*Aggregate)
	if !ok || agg.Op != OpConstruct || agg.Type().String() != "float3" {
		t.Fatalf("scalar->float3 should broadcast, got %s", DumpString(n))
	}

	v := sym(b, 2, "v", types.NewVector(types.Int, 4))
	n = b.AddConversion(types.NewVector(types.Float, 2), v)
	if n == nil || n.Type().String() != "float2" {
		t.Fatalf("int4->float2 got %v", n)
	}
	if len(*warnings) == 0 {
		t.Fatal("expected truncation warning")
	}

	st := &types.StructDef{Name: "S"}
	if b.AddConversion(types.NewStruct(st, types.Struct), s) != nil {
		t.Fatal("scalar must not convert to struct")
	}
	if c := b.AddConversion(types.NewScalar(types.Uint), b.ConstInt(-1, sp)); c == nil || c.(*Constant).Values[0].U != 0xFFFFFFFF {
		t.Fatal("constant conversion must fold")
	}
}

func TestGrowAggregate(t *testing.T) {
	b, _ := newTestBuilder()
	sp := source.NoSpan
	if b.GrowAggregate(nil, nil, sp) != nil {
		t.Fatal("nil+nil must be nil")
	}
	a := b.GrowAggregate(nil, b.ConstInt(1, sp), sp)
	a = b.GrowAggregate(a, b.ConstInt(2, sp), sp)
	if len(a.Seq) != 2 {
		t.Fatalf("expected 2 children, got %d", len(a.Seq))
	}
	seq := b.SetAggregateOperator(a, OpSequence, types.NewVoid(), sp)
	wrapped := b.GrowAggregate(seq, b.ConstInt(3, sp), sp)
	if wrapped == seq || len(wrapped.Seq) != 2 {
		t.Fatal("finished aggregate must be wrapped, not grown")
	}
}

func TestIndexTypes(t *testing.T) {
	b, _ := newTestBuilder()
	sp := source.NoSpan
	m := sym(b, 1, "m", types.NewMatrix(types.Float, 4, 3))
	col := b.AddIndex(OpIndexDirect, m, b.ConstInt(1, sp), sp)
	if col.Type().String() != "float3" {
		t.Fatalf("matrix column = %s", col.Type())
	}
	sw := b.AddIndex(OpVectorSwizzle, col, b.AddSwizzle([]int{2, 0}, sp), sp)
	if sw.Type().String() != "float2" {
		t.Fatalf("swizzle = %s", sw.Type())
	}
	if BaseSymbol(sw) != m {
		t.Fatal("BaseSymbol must walk to m")
	}

	cv := b.NewConstant([]types.ConstUnion{types.ConstInt(1), types.ConstInt(2), types.ConstInt(3)}, types.NewVector(types.Int, 3), sp)
	folded, ok := AsConstant(b.AddIndex(OpVectorSwizzle, cv, b.AddSwizzle([]int{2, 2}, sp), sp))
	if !ok || folded.Values[0].I != 3 || len(folded.Values) != 2 {
		t.Fatalf("constant swizzle must fold, got %v", folded)
	}
}

func TestDump(t *testing.T) {
	b, _ := newTestBuilder()
	sp := source.NoSpan
	x := sym(b, 3, "x", types.NewScalar(types.Int))
	assign := b.AddAssign(OpAssign, x, b.ConstInt(1, sp), sp)
	root := b.SetAggregateOperator(b.MakeAggregate(assign, sp), OpSequence, types.NewVoid(), sp)
	want := strings.Join([]string{
		"Sequence",
		"  move second child to first child (temp int)",
		"    'x' (id 3) (temp int)",
		"    Constant: 1 (const int)",
		"",
	}, "\n")
	if got := DumpString(root); got != want {
		t.Fatalf("dump mismatch:\n%s\nwant:\n%s", got, want)
	}
}
