package ir

import (
	"math"

	"hlslc/internal/source"
	"hlslc/internal/types"
)

func at(vals []types.ConstUnion, i int) types.ConstUnion {
	if len(vals) == 1 {
		return vals[0]
	}
	return vals[i]
}

// foldBinary evaluates op over two constants whose component kinds were
// already unified. Integer division by zero is left unfolded.
func (b *Builder) foldBinary(op Op, l, r *Constant, result *types.Type, sp source.Span) Typed {
	switch op {
	case OpEqual, OpNotEqual:
		eq := len(l.Values) == len(r.Values)
		for i := 0; eq && i < len(l.Values); i++ {
			eq = l.Values[i].Equal(r.Values[i])
		}
		return b.ConstBool(eq == (op == OpEqual), sp)
	}

	n := max(len(l.Values), len(r.Values))
	out := make([]types.ConstUnion, n)
	for i := range n {
		v, ok := foldScalar(op, at(l.Values, i), at(r.Values, i))
		if !ok {
			return nil
		}
		out[i] = v
	}
	return b.NewConstant(out, result, sp)
}

func foldScalar(op Op, x, y types.ConstUnion) (types.ConstUnion, bool) {
	k := x.Kind
	switch op {
	case OpAdd, OpSub, OpMul, OpVectorTimesScalar, OpMatrixTimesScalar, OpDiv, OpMod:
		return foldArith(op, x, y)
	case OpLessThan:
		return types.ConstBool(compare(x, y) < 0), true
	case OpGreaterThan:
		return types.ConstBool(compare(x, y) > 0), true
	case OpLessThanEqual:
		return types.ConstBool(compare(x, y) <= 0), true
	case OpGreaterThanEqual:
		return types.ConstBool(compare(x, y) >= 0), true
	case OpVectorEqual:
		return types.ConstBool(x.Equal(y)), true
	case OpVectorNotEqual:
		return types.ConstBool(!x.Equal(y)), true
	case OpLogicalAnd:
		return types.ConstBool(x.Truth() && y.Truth()), true
	case OpLogicalOr:
		return types.ConstBool(x.Truth() || y.Truth()), true
	case OpLogicalXor:
		return types.ConstBool(x.Truth() != y.Truth()), true
	case OpAnd, OpInclusiveOr, OpExclusiveOr, OpLeftShift, OpRightShift:
		if k == types.Bool {
			switch op {
			case OpAnd:
				return types.ConstBool(x.B && y.B), true
			case OpInclusiveOr:
				return types.ConstBool(x.B || y.B), true
			case OpExclusiveOr:
				return types.ConstBool(x.B != y.B), true
			}
			return x, false
		}
		a, s := x.Uint64(), y.Uint64()
		var v uint64
		switch op {
		case OpAnd:
			v = a & s
		case OpInclusiveOr:
			v = a | s
		case OpExclusiveOr:
			v = a ^ s
		case OpLeftShift:
			v = a << (s & 63)
		case OpRightShift:
			if !k.IsUnsigned() {
				return types.ConstUnion{Kind: types.Int64, I: x.Int64() >> (s & 63)}.Convert(k), true
			}
			v = a >> (s & 63)
		}
		return types.ConstUnion{Kind: types.Uint64, U: v}.Convert(k), true
	}
	return x, false
}

func foldArith(op Op, x, y types.ConstUnion) (types.ConstUnion, bool) {
	k := x.Kind
	switch {
	case k.IsFloat():
		a, c := x.Float64(), y.Float64()
		var v float64
		switch op {
		case OpAdd:
			v = a + c
		case OpSub:
			v = a - c
		case OpMul, OpVectorTimesScalar, OpMatrixTimesScalar:
			v = a * c
		case OpDiv:
			v = a / c
		case OpMod:
			v = math.Mod(a, c)
		}
		return types.ConstDouble(v).Convert(k), true
	case k.IsUnsigned():
		a, c := x.Uint64(), y.Uint64()
		var v uint64
		switch op {
		case OpAdd:
			v = a + c
		case OpSub:
			v = a - c
		case OpMul, OpVectorTimesScalar, OpMatrixTimesScalar:
			v = a * c
		case OpDiv, OpMod:
			if c == 0 {
				return x, false
			}
			if op == OpDiv {
				v = a / c
			} else {
				v = a % c
			}
		}
		return types.ConstUnion{Kind: types.Uint64, U: v}.Convert(k), true
	case k.IsInteger():
		a, c := x.Int64(), y.Int64()
		var v int64
		switch op {
		case OpAdd:
			v = a + c
		case OpSub:
			v = a - c
		case OpMul, OpVectorTimesScalar, OpMatrixTimesScalar:
			v = a * c
		case OpDiv, OpMod:
			if c == 0 {
				return x, false
			}
			if op == OpDiv {
				v = a / c
			} else {
				v = a % c
			}
		}
		return types.ConstUnion{Kind: types.Int64, I: v}.Convert(k), true
	}
	return x, false
}

func compare(x, y types.ConstUnion) int {
	switch {
	case x.Kind.IsFloat():
		a, c := x.Float64(), y.Float64()
		switch {
		case a < c:
			return -1
		case a > c:
			return 1
		}
		return 0
	case x.Kind.IsUnsigned():
		a, c := x.Uint64(), y.Uint64()
		switch {
		case a < c:
			return -1
		case a > c:
			return 1
		}
		return 0
	default:
		a, c := x.Int64(), y.Int64()
		switch {
		case a < c:
			return -1
		case a > c:
			return 1
		}
		return 0
	}
}

var unaryFloatFolds = map[Op]func(float64) float64{
	OpAbs:         math.Abs,
	OpFloor:       math.Floor,
	OpCeil:        math.Ceil,
	OpTrunc:       math.Trunc,
	OpRound:       math.Round,
	OpRoundEven:   math.RoundToEven,
	OpSqrt:        math.Sqrt,
	OpExp:         math.Exp,
	OpExp2:        math.Exp2,
	OpLog:         math.Log,
	OpLog2:        math.Log2,
	OpSin:         math.Sin,
	OpCos:         math.Cos,
	OpTan:         math.Tan,
	OpAsin:        math.Asin,
	OpAcos:        math.Acos,
	OpAtan:        math.Atan,
	OpSinh:        math.Sinh,
	OpCosh:        math.Cosh,
	OpTanh:        math.Tanh,
	OpInverseSqrt: func(v float64) float64 { return 1 / math.Sqrt(v) },
	OpFract:       func(v float64) float64 { return v - math.Floor(v) },
	OpRadians:     func(v float64) float64 { return v * math.Pi / 180 },
	OpDegrees:     func(v float64) float64 { return v * 180 / math.Pi },
}

func (b *Builder) foldUnary(op Op, c *Constant, result *types.Type, sp source.Span) Typed {
	out := make([]types.ConstUnion, len(c.Values))
	for i, v := range c.Values {
		switch op {
		case OpNegative:
			switch {
			case v.Kind.IsFloat():
				out[i] = types.ConstDouble(-v.F).Convert(v.Kind)
			case v.Kind.IsUnsigned():
				out[i] = types.ConstUnion{Kind: types.Uint64, U: -v.U}.Convert(v.Kind)
			default:
				out[i] = types.ConstUnion{Kind: types.Int64, I: -v.I}.Convert(v.Kind)
			}
		case OpLogicalNot:
			out[i] = types.ConstBool(!v.Truth())
		case OpBitwiseNot:
			if v.Kind.IsUnsigned() {
				out[i] = types.ConstUnion{Kind: types.Uint64, U: ^v.U}.Convert(v.Kind)
			} else {
				out[i] = types.ConstUnion{Kind: types.Int64, I: ^v.I}.Convert(v.Kind)
			}
		case OpConvert:
			out[i] = v.Convert(result.Basic)
		case OpAny, OpAll:
			return nil
		default:
			fn, ok := unaryFloatFolds[op]
			if !ok || !v.Kind.IsFloat() {
				if op == OpAbs && v.Kind == types.Int {
					out[i] = types.ConstInt(max(v.I, -v.I))
					continue
				}
				return nil
			}
			out[i] = types.ConstDouble(fn(v.F)).Convert(v.Kind)
		}
	}
	return b.NewConstant(out, result, sp)
}

// foldAggregate folds a handful of multi-argument builtins over constants.
func (b *Builder) foldAggregate(agg *Aggregate) Typed {
	args := agg.Args()
	consts := make([]*Constant, len(args))
	for i, a := range args {
		c, ok := AsConstant(a)
		if !ok {
			return nil
		}
		consts[i] = c
	}
	rt := agg.Type()
	switch agg.Op {
	case OpMin, OpMax, OpPow, OpStep:
		if len(consts) != 2 {
			return nil
		}
		n := rt.ComponentCount()
		out := make([]types.ConstUnion, n)
		for i := range n {
			x, y := at(consts[0].Values, i), at(consts[1].Values, i)
			switch agg.Op {
			case OpMin:
				if compare(x, y) <= 0 {
					out[i] = x
				} else {
					out[i] = y
				}
			case OpMax:
				if compare(x, y) >= 0 {
					out[i] = x
				} else {
					out[i] = y
				}
			case OpPow:
				out[i] = types.ConstDouble(math.Pow(x.Float64(), y.Float64())).Convert(rt.Basic)
			case OpStep:
				v := 1.0
				if y.Float64() < x.Float64() {
					v = 0
				}
				out[i] = types.ConstDouble(v).Convert(rt.Basic)
			}
		}
		return b.NewConstant(out, rt, agg.Span())
	case OpClamp:
		if len(consts) != 3 {
			return nil
		}
		n := rt.ComponentCount()
		out := make([]types.ConstUnion, n)
		for i := range n {
			v, lo, hi := at(consts[0].Values, i), at(consts[1].Values, i), at(consts[2].Values, i)
			switch {
			case compare(v, lo) < 0:
				v = lo
			case compare(v, hi) > 0:
				v = hi
			}
			out[i] = v
		}
		return b.NewConstant(out, rt, agg.Span())
	case OpDot:
		if len(consts) != 2 {
			return nil
		}
		sum := 0.0
		for i := range max(len(consts[0].Values), len(consts[1].Values)) {
			sum += at(consts[0].Values, i).Float64() * at(consts[1].Values, i).Float64()
		}
		return b.NewConstant([]types.ConstUnion{types.ConstDouble(sum).Convert(rt.Basic)}, rt, agg.Span())
	case OpConstruct:
		return b.FoldConstructor(agg)
	}
	return nil
}

// FoldConstructor folds a constructor whose arguments are all constants.
// Returns nil when some argument is not constant.
func (b *Builder) FoldConstructor(agg *Aggregate) Typed {
	var flat []types.ConstUnion
	args := agg.Args()
	if len(args) == 0 {
		return nil
	}
	for _, a := range args {
		c, ok := AsConstant(a)
		if !ok {
			return nil
		}
		flat = append(flat, c.Values...)
	}
	t := agg.Type()
	if t.IsStruct() || t.IsArray() {
		return b.NewConstant(flat, t, agg.Span())
	}
	n := t.ComponentCount()
	out := make([]types.ConstUnion, n)
	single := len(args) == 1 && args[0].Type().IsScalarOrVec1()
	switch {
	case t.IsMatrix() && single:
		// diagonal matrix from a scalar
		zero := types.ConstDouble(0).Convert(t.Basic)
		for c := range t.MatrixCols {
			for r := range t.MatrixRows {
				if c == r {
					out[c*t.MatrixRows+r] = flat[0].Convert(t.Basic)
				} else {
					out[c*t.MatrixRows+r] = zero
				}
			}
		}
	case t.IsMatrix() && len(args) == 1 && args[0].Type().IsMatrix():
		src := args[0].Type()
		for c := range t.MatrixCols {
			for r := range t.MatrixRows {
				var v types.ConstUnion
				switch {
				case c < src.MatrixCols && r < src.MatrixRows:
					v = flat[c*src.MatrixRows+r]
				case c == r:
					v = types.ConstDouble(1)
				default:
					v = types.ConstDouble(0)
				}
				out[c*t.MatrixRows+r] = v.Convert(t.Basic)
			}
		}
	case single:
		for i := range out {
			out[i] = flat[0].Convert(t.Basic)
		}
	default:
		if len(flat) < n {
			return nil
		}
		for i := range out {
			out[i] = flat[i].Convert(t.Basic)
		}
	}
	return b.NewConstant(out, t, agg.Span())
}

func (b *Builder) foldIndex(op Op, base *Constant, index Typed, rt *types.Type, sp source.Span) Typed {
	bt := base.Type()
	switch op {
	case OpVectorSwizzle:
		comps := SwizzleComponents(index)
		out := make([]types.ConstUnion, len(comps))
		for i, c := range comps {
			if c >= len(base.Values) {
				return nil
			}
			out[i] = base.Values[c]
		}
		return b.NewConstant(out, rt, sp)
	case OpIndexDirect, OpIndexIndirect:
		ic, ok := AsConstant(index)
		if !ok {
			return nil
		}
		i := int(ic.Values[0].Int64())
		size := rt.ComponentCount()
		if bt.IsStruct() || size == 0 || i < 0 || (i+1)*size > len(base.Values) {
			return nil
		}
		return b.NewConstant(append([]types.ConstUnion(nil), base.Values[i*size:(i+1)*size]...), rt, sp)
	case OpIndexDirectStruct:
		ic, _ := AsConstant(index)
		i := int(ic.Values[0].Int64())
		off := 0
		for m := range i {
			off += bt.Struct.Members[m].Type.ComponentCount()
		}
		size := rt.ComponentCount()
		if off+size > len(base.Values) {
			return nil
		}
		return b.NewConstant(append([]types.ConstUnion(nil), base.Values[off:off+size]...), rt, sp)
	}
	return nil
}
