package ir

import (
	"hlslc/internal/source"
	"hlslc/internal/types"
)

// promoteBasic picks the common component kind of a binary operation:
// the higher domain wins, unsigned wins a tie with signed.
func promoteBasic(a, b types.Basic) types.Basic {
	if a == b {
		return a
	}
	ra, rb := a.Rank(), b.Rank()
	switch {
	case ra > rb:
		return a
	case rb > ra:
		return b
	case a.IsUnsigned():
		return a
	default:
		return b
	}
}

// PromoteBasic is the exported form of the binary-operation kind rule.
func PromoteBasic(a, b types.Basic) types.Basic { return promoteBasic(a, b) }

// ConvertBasic converts the component kind of n to basic keeping its shape.
// It returns n unchanged when no conversion is needed and nil when none exists.
func (b *Builder) ConvertBasic(basic types.Basic, n Typed) Typed {
	if n == nil {
		return nil
	}
	from := n.Type()
	if from.Basic == basic {
		return n
	}
	if !from.Basic.IsNumeric() || !basic.IsNumeric() || from.IsStruct() {
		return nil
	}
	to := temp(from).WithBasic(basic)
	if c, ok := AsConstant(n); ok {
		vals := make([]types.ConstUnion, len(c.Values))
		for i, v := range c.Values {
			vals[i] = v.Convert(basic)
		}
		return b.NewConstant(vals, to, n.Span())
	}
	return b.NewUnary(OpConvert, n, to, n.Span())
}

// AddShapeConversion applies the HLSL implicit shape rules towards to:
// scalars broadcast, longer vectors and larger matrices truncate with a warning.
// Shapes it cannot reconcile are returned unchanged.
func (b *Builder) AddShapeConversion(to *types.Type, n Typed) Typed {
	if n == nil {
		return nil
	}
	from := n.Type()
	if to.IsStruct() || from.IsStruct() || to.IsArray() || from.IsArray() || from.IsOpaque() || to.IsOpaque() {
		return n
	}
	sp := n.Span()
	switch {
	case from.IsScalarOrVec1() && (to.IsVector() && to.VectorSize > 1 || to.IsMatrix()):
		target := temp(to).WithBasic(from.Basic)
		if from.Vector1 {
			n = b.AddIndex(OpVectorSwizzle, n, b.AddSwizzle([]int{0}, sp), sp)
		}
		agg := b.NewAggregate(OpConstruct, target, sp, n)
		if folded := b.FoldConstructor(agg); folded != nil {
			return folded
		}
		return agg
	case from.IsVector() && to.IsScalar():
		b.warn(sp, "implicit truncation of vector type")
		return b.AddIndex(OpVectorSwizzle, n, b.AddSwizzle([]int{0}, sp), sp)
	case from.IsVector() && to.IsVector() && from.VectorSize > to.VectorSize:
		b.warn(sp, "implicit truncation of vector type")
		comps := make([]int, to.VectorSize)
		for i := range comps {
			comps[i] = i
		}
		return b.AddIndex(OpVectorSwizzle, n, b.AddSwizzle(comps, sp), sp)
	case from.IsScalar() && to.Vector1:
		agg := b.NewAggregate(OpConstruct, temp(to).WithBasic(from.Basic), sp, n)
		if folded := b.FoldConstructor(agg); folded != nil {
			return folded
		}
		return agg
	case from.IsMatrix() && to.IsMatrix() && (from.MatrixCols > to.MatrixCols || from.MatrixRows > to.MatrixRows):
		if from.MatrixCols < to.MatrixCols || from.MatrixRows < to.MatrixRows {
			return n
		}
		b.warn(sp, "implicit truncation of matrix type")
		agg := b.NewAggregate(OpConstruct, temp(to).WithBasic(from.Basic), sp, n)
		if folded := b.FoldConstructor(agg); folded != nil {
			return folded
		}
		return agg
	case from.IsMatrix() && to.IsScalar():
		b.warn(sp, "implicit truncation of matrix type")
		col := b.AddIndex(OpIndexDirect, n, b.ConstInt(0, sp), sp)
		return b.AddIndex(OpIndexDirect, col, b.ConstInt(0, sp), sp)
	}
	return n
}

// AddConversion converts n to type to (kind first, then shape). Structs,
// arrays and opaque objects only convert to an equal type. Returns nil when
// no implicit conversion exists.
func (b *Builder) AddConversion(to *types.Type, n Typed) Typed {
	if n == nil {
		return nil
	}
	from := n.Type()
	if from.Equal(to) {
		return n
	}
	if to.IsVoid() || from.IsVoid() {
		return nil
	}
	if to.IsStruct() || from.IsStruct() || to.IsOpaque() || from.IsOpaque() {
		return nil
	}
	if to.IsArray() || from.IsArray() {
		if to.IsArray() && from.IsArray() && to.IsImplicitlySizedArray() && from.SameElementType(to) {
			return n
		}
		return nil
	}
	conv := b.ConvertBasic(to.Basic, n)
	if conv == nil {
		return nil
	}
	conv = b.AddShapeConversion(to, conv)
	if !conv.Type().SameElementShape(to) && !(conv.Type().IsScalarOrVec1() && to.IsScalarOrVec1()) {
		return nil
	}
	return conv
}

// CanConvert reports whether AddConversion would succeed, without building nodes.
func CanConvert(from, to *types.Type) bool {
	if from.Equal(to) {
		return true
	}
	if to.IsVoid() || from.IsVoid() || to.IsStruct() || from.IsStruct() || to.IsOpaque() || from.IsOpaque() {
		return false
	}
	if to.IsArray() || from.IsArray() {
		return to.IsArray() && from.IsArray() && to.IsImplicitlySizedArray() && from.SameElementType(to)
	}
	if !from.Basic.IsNumeric() || !to.Basic.IsNumeric() {
		return false
	}
	switch {
	case from.IsScalarOrVec1():
		return true
	case from.IsVector() && to.IsScalarOrVec1():
		return true
	case from.IsVector() && to.IsVector():
		return from.VectorSize >= to.VectorSize
	case from.IsMatrix() && to.IsMatrix():
		return from.MatrixCols >= to.MatrixCols && from.MatrixRows >= to.MatrixRows
	case from.IsMatrix() && to.IsScalar():
		return true
	}
	return false
}

// unifyShapes brings two operands of a component-wise operation to a common
// shape: equal shapes pass, scalars stay scalar (mixed with the other shape),
// longer vectors and larger matrices truncate. Returns nils when incompatible.
func (b *Builder) unifyShapes(l, r Typed, sp source.Span) (Typed, Typed) {
	lt, rt := l.Type(), r.Type()
	switch {
	case lt.SameElementShape(rt) && lt.Vector1 == rt.Vector1:
		return l, r
	case lt.IsScalarOrVec1() && rt.IsScalarOrVec1():
		return l, r
	case lt.IsScalarOrVec1() || rt.IsScalarOrVec1():
		return l, r
	case lt.IsVector() && rt.IsVector():
		if lt.VectorSize > rt.VectorSize {
			return b.AddShapeConversion(rt, l), r
		}
		return l, b.AddShapeConversion(lt, r)
	case lt.IsMatrix() && rt.IsMatrix():
		cols, rows := min(lt.MatrixCols, rt.MatrixCols), min(lt.MatrixRows, rt.MatrixRows)
		target := types.NewMatrix(lt.Basic, cols, rows)
		return b.AddShapeConversion(target.WithBasic(lt.Basic), l), b.AddShapeConversion(target.WithBasic(rt.Basic), r)
	}
	return nil, nil
}
