package ir

import (
	"fortio.org/safecast"

	"hlslc/internal/source"
	"hlslc/internal/types"
)

// Builder creates IR nodes for one module. Operations that can fail on type
// grounds (binary math, assignment, conversion) return nil; the caller is
// expected to report a diagnostic.
type Builder struct {
	Module *Module
	// Warn receives non-fatal notes such as implicit vector truncation. May be nil.
	Warn func(sp source.Span, msg string)
}

// NewBuilder creates a builder over m.
func NewBuilder(m *Module) *Builder {
	return &Builder{Module: m}
}

func (b *Builder) warn(sp source.Span, msg string) {
	if b.Warn != nil {
		b.Warn(sp, msg)
	}
}

func temp(t *types.Type) *types.Type {
	c := t.Clone()
	c.Qualifier = types.Qualifier{}
	return c
}

func constType(t *types.Type) *types.Type {
	c := t.Clone()
	c.Qualifier = types.Qualifier{Storage: types.Const}
	return c
}

// NewSymbol creates a reference to variable id.
func (b *Builder) NewSymbol(id SymbolID, name string, t *types.Type, sp source.Span) *Symbol {
	s := &Symbol{ID: id, Name: name}
	s.typ, s.span = t, sp
	return s
}

// NewConstant creates a constant of type t with flat component values.
func (b *Builder) NewConstant(values []types.ConstUnion, t *types.Type, sp source.Span) *Constant {
	c := &Constant{Values: values}
	c.typ, c.span = constType(t), sp
	return c
}

func (b *Builder) ConstInt(v int64, sp source.Span) *Constant {
	return b.NewConstant([]types.ConstUnion{types.ConstInt(v)}, types.NewScalar(types.Int), sp)
}

func (b *Builder) ConstUint(v uint64, sp source.Span) *Constant {
	return b.NewConstant([]types.ConstUnion{types.ConstUint(v)}, types.NewScalar(types.Uint), sp)
}

func (b *Builder) ConstFloat(v float64, sp source.Span) *Constant {
	return b.NewConstant([]types.ConstUnion{types.ConstFloat(v)}, types.NewScalar(types.Float), sp)
}

func (b *Builder) ConstDouble(v float64, sp source.Span) *Constant {
	return b.NewConstant([]types.ConstUnion{types.ConstDouble(v)}, types.NewScalar(types.Double), sp)
}

func (b *Builder) ConstBool(v bool, sp source.Span) *Constant {
	return b.NewConstant([]types.ConstUnion{types.ConstBool(v)}, types.NewScalar(types.Bool), sp)
}

// ConstScalarOf creates a constant v converted to the component kind of t.
func (b *Builder) ConstScalarOf(v float64, basic types.Basic, sp source.Span) *Constant {
	val := types.ConstDouble(v).Convert(basic)
	return b.NewConstant([]types.ConstUnion{val}, types.NewScalar(basic), sp)
}

// NewUnary creates a unary node without checking operand types.
func (b *Builder) NewUnary(op Op, x Typed, t *types.Type, sp source.Span) *Unary {
	u := &Unary{Op: op, Operand: x}
	u.typ, u.span = t, sp
	return u
}

// NewBinary creates a binary node without checking operand types.
func (b *Builder) NewBinary(op Op, l, r Typed, t *types.Type, sp source.Span) *Binary {
	n := &Binary{Op: op, Left: l, Right: r}
	n.typ, n.span = t, sp
	return n
}

// NewAggregate creates an aggregate with op and type.
func (b *Builder) NewAggregate(op Op, t *types.Type, sp source.Span, seq ...Node) *Aggregate {
	a := &Aggregate{Op: op, Seq: seq}
	a.typ, a.span = t, sp
	return a
}

// GrowAggregate appends right to left. An unfinished (OpNull) aggregate on the
// left grows in place; anything else is wrapped in a new aggregate first.
func (b *Builder) GrowAggregate(left, right Node, sp source.Span) *Aggregate {
	if isNilNode(left) && isNilNode(right) {
		return nil
	}
	var agg *Aggregate
	if !isNilNode(left) {
		if a, ok := left.(*Aggregate); ok && a.Op == OpNull {
			agg = a
		}
	}
	if agg == nil {
		agg = b.NewAggregate(OpNull, types.NewVoid(), sp)
		if !isNilNode(left) {
			agg.Seq = append(agg.Seq, left)
		}
	}
	if !isNilNode(right) {
		agg.Seq = append(agg.Seq, right)
	}
	if agg.span.Empty() {
		agg.span = sp
	}
	return agg
}

// MakeAggregate wraps n into a fresh unfinished aggregate.
func (b *Builder) MakeAggregate(n Node, sp source.Span) *Aggregate {
	agg := b.NewAggregate(OpNull, types.NewVoid(), sp)
	if !isNilNode(n) {
		agg.Seq = append(agg.Seq, n)
	}
	return agg
}

// SetAggregateOperator finishes n as an aggregate with op and type t.
func (b *Builder) SetAggregateOperator(n Node, op Op, t *types.Type, sp source.Span) *Aggregate {
	if a, ok := n.(*Aggregate); ok && a.Op == OpNull {
		a.Op = op
		a.typ = t
		a.span = sp
		return a
	}
	agg := b.NewAggregate(op, t, sp)
	if !isNilNode(n) {
		agg.Seq = append(agg.Seq, n)
	}
	return agg
}

// AddSelection creates an if/else statement.
func (b *Builder) AddSelection(cond Typed, trueNode, falseNode Node, sp source.Span) *Selection {
	s := &Selection{Cond: cond, True: trueNode, False: falseNode}
	s.typ, s.span = types.NewVoid(), sp
	return s
}

// AddTernary creates cond ? t : f after converting both branches to a common
// type. A constant condition with constant branches folds.
func (b *Builder) AddTernary(cond, t, f Typed, sp source.Span) Typed {
	cond = b.ConvertBasic(types.Bool, cond)
	if cond == nil {
		return nil
	}
	if !t.Type().Equal(f.Type()) {
		if t.Type().IsStruct() || f.Type().IsStruct() || t.Type().IsArray() || f.Type().IsArray() {
			return nil
		}
		basic := promoteBasic(t.Type().Basic, f.Type().Basic)
		t, f = b.ConvertBasic(basic, t), b.ConvertBasic(basic, f)
		if t == nil || f == nil {
			return nil
		}
		t, f = b.unifyShapes(t, f, sp)
		if t == nil || f == nil {
			return nil
		}
	}
	if cc, ok := AsConstant(cond); ok && cond.Type().IsScalar() {
		_, tc := AsConstant(t)
		_, fc := AsConstant(f)
		if tc && fc {
			if cc.Values[0].B {
				return t
			}
			return f
		}
	}
	s := &Selection{Cond: cond, True: t, False: f, Ternary: true}
	s.typ, s.span = temp(t.Type()), sp
	return s
}

// AddLoop creates a loop node.
func (b *Builder) AddLoop(body Node, test, terminal Typed, testFirst bool, sp source.Span) *Loop {
	l := &Loop{Body: body, Test: test, Terminal: terminal, TestFirst: testFirst}
	l.span = sp
	return l
}

// AddBranch creates a branch or case label; expr may be nil.
func (b *Builder) AddBranch(op Op, expr Typed, sp source.Span) *Branch {
	br := &Branch{Op: op, Expr: expr}
	br.span = sp
	return br
}

// AddSwitch creates a switch node.
func (b *Builder) AddSwitch(cond Typed, body *Aggregate, sp source.Span) *Switch {
	s := &Switch{Cond: cond, Body: body}
	s.span = sp
	return s
}

// AddComma creates "left, right" typed as right.
func (b *Builder) AddComma(left, right Typed, sp source.Span) Typed {
	if IsConstant(left) && IsConstant(right) {
		return right
	}
	return b.NewAggregate(OpComma, temp(right.Type()), sp, left, right)
}

// AddMethod binds a method name to its object.
func (b *Builder) AddMethod(object Typed, t *types.Type, name string, sp source.Span) *Method {
	m := &Method{Object: object, Name: name}
	m.typ, m.span = t, sp
	return m
}

// AddSwizzle creates the selector list used as the right side of a swizzle.
func (b *Builder) AddSwizzle(components []int, sp source.Span) *Aggregate {
	agg := b.NewAggregate(OpSequence, types.NewVoid(), sp)
	for _, c := range components {
		agg.Seq = append(agg.Seq, b.ConstInt(int64(c), sp))
	}
	return agg
}

// SwizzleComponents reads back the selectors of a swizzle node.
func SwizzleComponents(sel Typed) []int {
	agg, ok := sel.(*Aggregate)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(agg.Seq))
	for _, n := range agg.Seq {
		if c, ok := n.(*Constant); ok {
			out = append(out, int(c.Values[0].Int64()))
		}
	}
	return out
}

// AddIndex creates an index, struct-member or swizzle node and computes its type.
// Constant bases with constant indices fold.
func (b *Builder) AddIndex(op Op, base, index Typed, sp source.Span) Typed {
	bt := base.Type()
	var rt *types.Type
	switch op {
	case OpIndexDirectStruct:
		c, ok := AsConstant(index)
		if !ok || !bt.IsStruct() {
			return nil
		}
		i, err := safecast.Conv[int](c.Values[0].Int64())
		if err != nil || i < 0 || i >= len(bt.Struct.Members) {
			return nil
		}
		rt = bt.Struct.Members[i].Type.Clone()
		if rt.Qualifier.Storage == types.Temporary || bt.Qualifier.Storage == types.Const {
			rt.Qualifier.Storage = bt.Qualifier.Storage
		}
	case OpVectorSwizzle:
		comps := SwizzleComponents(index)
		rt = bt.WithVectorSize(len(comps))
		rt.Qualifier.Storage = bt.Qualifier.Storage
		if len(comps) == 1 {
			rt.Vector1 = false
		}
	case OpMatrixSwizzle:
		comps := SwizzleComponents(index)
		rt = bt.Component().WithVectorSize(len(comps) / 2)
		rt.Qualifier.Storage = bt.Qualifier.Storage
	default:
		rt = bt.Deref(0)
		rt.Qualifier.Storage = bt.Qualifier.Storage
		if bt.IsArray() {
			rt.Qualifier = bt.Qualifier
		}
	}
	if bc, ok := AsConstant(base); ok {
		if folded := b.foldIndex(op, bc, index, rt, sp); folded != nil {
			return folded
		}
	}
	return b.NewBinary(op, base, index, rt, sp)
}

// AddBuiltInCall creates a call of a builtin operator. Unary calls take a
// single typed operand; others take an aggregate or a single node that is wrapped.
func (b *Builder) AddBuiltInCall(op Op, unary bool, arg Node, ret *types.Type, sp source.Span) Typed {
	if unary {
		x, ok := arg.(Typed)
		if !ok {
			return nil
		}
		if c, ok := AsConstant(x); ok {
			if folded := b.foldUnary(op, c, ret, sp); folded != nil {
				return folded
			}
		}
		return b.NewUnary(op, x, temp(ret), sp)
	}
	agg := b.SetAggregateOperator(arg, op, temp(ret), sp)
	if folded := b.foldAggregate(agg); folded != nil {
		return folded
	}
	return agg
}

// SetTreeRoot finalises the module tree.
func (b *Builder) SetTreeRoot(root Node) { b.Module.Root = root }

func isNilNode(n Node) bool {
	if n == nil {
		return true
	}
	switch x := n.(type) {
	case *Aggregate:
		return x == nil
	case *Symbol:
		return x == nil
	case *Constant:
		return x == nil
	case *Binary:
		return x == nil
	case *Unary:
		return x == nil
	case *Selection:
		return x == nil
	case *Loop:
		return x == nil
	case *Branch:
		return x == nil
	case *Switch:
		return x == nil
	case *Method:
		return x == nil
	}
	return false
}
