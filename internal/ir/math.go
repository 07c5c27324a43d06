package ir

import (
	"hlslc/internal/source"
	"hlslc/internal/types"
)

// AddBinaryMath creates a checked binary operation with HLSL implicit
// conversions. Constant operands fold. Returns nil on a type mismatch.
func (b *Builder) AddBinaryMath(op Op, l, r Typed, sp source.Span) Typed {
	if l == nil || r == nil {
		return nil
	}
	lt, rt := l.Type(), r.Type()

	if lt.IsStruct() || rt.IsStruct() || lt.IsArray() || rt.IsArray() || lt.IsOpaque() || rt.IsOpaque() {
		if (op == OpEqual || op == OpNotEqual) && lt.Equal(rt) && !lt.IsOpaque() {
			return b.NewBinary(op, l, r, types.NewScalar(types.Bool), sp)
		}
		return nil
	}
	if lt.IsVoid() || rt.IsVoid() || !lt.Basic.IsNumeric() || !rt.Basic.IsNumeric() {
		return nil
	}

	var basic types.Basic
	switch op {
	case OpLogicalAnd, OpLogicalOr, OpLogicalXor:
		basic = types.Bool
	case OpLeftShift, OpRightShift:
		if lt.Basic.IsFloat() || rt.Basic.IsFloat() {
			return nil
		}
		basic = lt.Basic
		if basic == types.Bool {
			basic = types.Int
		}
	case OpAnd, OpInclusiveOr, OpExclusiveOr:
		if lt.Basic.IsFloat() || rt.Basic.IsFloat() {
			return nil
		}
		basic = promoteBasic(lt.Basic, rt.Basic)
	case OpEqual, OpNotEqual, OpLessThan, OpGreaterThan, OpLessThanEqual, OpGreaterThanEqual:
		basic = promoteBasic(lt.Basic, rt.Basic)
	default:
		basic = promoteBasic(lt.Basic, rt.Basic)
		if basic == types.Bool {
			basic = types.Int
		}
	}

	if op == OpLeftShift || op == OpRightShift {
		l = b.ConvertBasic(basic, l)
		if rt.Basic == types.Bool {
			r = b.ConvertBasic(types.Int, r)
		}
	} else {
		l, r = b.ConvertBasic(basic, l), b.ConvertBasic(basic, r)
	}
	if l == nil || r == nil {
		return nil
	}

	if (lt.IsMatrix() && rt.IsVector()) || (lt.IsVector() && rt.IsMatrix()) {
		return nil
	}
	l, r = b.unifyShapes(l, r, sp)
	if l == nil || r == nil {
		return nil
	}
	lt, rt = l.Type(), r.Type()

	shape := lt
	if lt.IsScalarOrVec1() && !rt.IsScalarOrVec1() {
		shape = rt
	}

	var result *types.Type
	switch op {
	case OpEqual, OpNotEqual:
		if shape.IsVector() || shape.IsMatrix() {
			// HLSL compares component-wise
			if op == OpEqual {
				op = OpVectorEqual
			} else {
				op = OpVectorNotEqual
			}
			result = temp(shape).WithBasic(types.Bool)
		} else {
			result = types.NewScalar(types.Bool)
		}
	case OpLessThan, OpGreaterThan, OpLessThanEqual, OpGreaterThanEqual, OpLogicalAnd, OpLogicalOr, OpLogicalXor:
		result = temp(shape).WithBasic(types.Bool)
	case OpMul:
		result = temp(shape)
		switch {
		case lt.IsVector() && rt.IsScalar(), lt.IsScalar() && rt.IsVector():
			op = OpVectorTimesScalar
		case lt.IsMatrix() && rt.IsScalar(), lt.IsScalar() && rt.IsMatrix():
			op = OpMatrixTimesScalar
		}
	default:
		result = temp(shape)
	}

	lc, lok := AsConstant(l)
	rc, rok := AsConstant(r)
	if lok && rok {
		if folded := b.foldBinary(op, lc, rc, result, sp); folded != nil {
			return folded
		}
	}
	return b.NewBinary(op, l, r, result, sp)
}

// AddUnaryMath creates a checked unary operation; constant operands fold.
func (b *Builder) AddUnaryMath(op Op, x Typed, sp source.Span) Typed {
	if x == nil {
		return nil
	}
	t := x.Type()
	if t.IsStruct() || t.IsArray() || t.IsOpaque() || t.IsVoid() || !t.Basic.IsNumeric() {
		return nil
	}
	switch op {
	case OpLogicalNot:
		x = b.ConvertBasic(types.Bool, x)
	case OpBitwiseNot:
		if t.Basic.IsFloat() {
			return nil
		}
		if t.Basic == types.Bool {
			x = b.ConvertBasic(types.Int, x)
		}
	case OpNegative:
		if t.Basic == types.Bool {
			x = b.ConvertBasic(types.Int, x)
		}
	case OpPostIncrement, OpPostDecrement, OpPreIncrement, OpPreDecrement:
		if t.Basic == types.Bool {
			return nil
		}
		return b.NewUnary(op, x, temp(t), sp)
	}
	if x == nil {
		return nil
	}
	rt := temp(x.Type())
	if c, ok := AsConstant(x); ok {
		if folded := b.foldUnary(op, c, rt, sp); folded != nil {
			return folded
		}
	}
	return b.NewUnary(op, x, rt, sp)
}

// AddAssign creates an assignment or compound assignment. The right side is
// converted to the left side's type; the result has the left side's type.
func (b *Builder) AddAssign(op Op, l, r Typed, sp source.Span) Typed {
	if l == nil || r == nil {
		return nil
	}
	lt := l.Type()
	if op == OpAssign {
		conv := b.AddConversion(lt, r)
		if conv == nil {
			return nil
		}
		return b.NewBinary(op, l, conv, temp(lt), sp)
	}

	rt := r.Type()
	if lt.IsStruct() || lt.IsArray() || lt.IsOpaque() || rt.IsStruct() || rt.IsArray() || rt.IsOpaque() {
		return nil
	}
	switch op {
	case OpLeftShiftAssign, OpRightShiftAssign, OpAndAssign, OpInclusiveOrAssign, OpExclusiveOrAssign:
		if lt.Basic.IsFloat() || rt.Basic.IsFloat() {
			return nil
		}
	}
	if op == OpLeftShiftAssign || op == OpRightShiftAssign {
		if rt.Basic == types.Bool {
			r = b.ConvertBasic(types.Int, r)
		}
	} else {
		r = b.ConvertBasic(lt.Basic, r)
	}
	if r == nil {
		return nil
	}
	rt = r.Type()
	switch {
	case rt.IsScalarOrVec1():
		if op == OpMulAssign && lt.IsVector() {
			op = OpVectorTimesScalarAssign
		} else if op == OpMulAssign && lt.IsMatrix() {
			op = OpMatrixTimesScalarAssign
		}
	case lt.SameElementShape(rt):
	default:
		r = b.AddShapeConversion(lt, r)
		if !r.Type().SameElementShape(lt) {
			return nil
		}
	}
	return b.NewBinary(op, l, r, temp(lt), sp)
}
