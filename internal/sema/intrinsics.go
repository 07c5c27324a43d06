package sema

import (
	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/source"
	"hlslc/internal/symbols"
	"hlslc/internal/types"
)

const log10of2 = 0.301029995663981

// lowerIntrinsic builds the IR of a resolved intrinsic call. Intrinsics
// without a direct IR operator are decomposed here.
func (c *Context) lowerIntrinsic(sp source.Span, fn *symbols.Function, args []ir.Typed) ir.Typed {
	ret := fn.Return.Unqualified()
	switch fn.Op {
	case ir.OpGenMul:
		return c.mul(sp, ret, args[0], args[1])
	case ir.OpCopyObject:
		return args[0]
	case ir.OpRcp:
		one := c.b.ConstScalarOf(1, args[0].Type().Basic, sp)
		return c.b.AddBinaryMath(ir.OpDiv, one, args[0], sp)
	case ir.OpSaturate:
		basic := args[0].Type().Basic
		return c.builtinOp(sp, ir.OpClamp, ret, args[0], c.b.ConstScalarOf(0, basic, sp), c.b.ConstScalarOf(1, basic, sp))
	case ir.OpLog10:
		l2 := c.builtinOp(sp, ir.OpLog2, ret, args[0])
		return c.b.AddBinaryMath(ir.OpMul, l2, c.b.ConstScalarOf(log10of2, ret.Basic, sp), sp)
	case ir.OpClip:
		return c.clip(sp, args[0])
	case ir.OpSinCos:
		x := args[0]
		s := c.b.AddAssign(ir.OpAssign, args[1], c.builtinOp(sp, ir.OpSin, x.Type(), x), sp)
		co := c.b.AddAssign(ir.OpAssign, args[2], c.builtinOp(sp, ir.OpCos, x.Type(), x), sp)
		return c.b.NewAggregate(ir.OpSequence, types.NewVoid(), sp, s, co)
	case ir.OpSign:
		sign := c.builtinOp(sp, ir.OpSign, args[0].Type().Unqualified(), args[0])
		return c.b.ConvertBasic(types.Int, sign)
	case ir.OpFma:
		if ret.Basic != types.Double {
			// mad
			return c.b.AddBinaryMath(ir.OpAdd, c.b.AddBinaryMath(ir.OpMul, args[0], args[1], sp), args[2], sp)
		}
	case ir.OpDot:
		if !ret.Basic.IsFloat() {
			return c.intDot(sp, args[0], args[1])
		}
	case ir.OpAny, ir.OpAll:
		return c.anyAll(sp, fn.Op, args[0])
	case ir.OpAsDouble:
		return c.asDouble(sp, ret, args[0], args[1])
	case ir.OpF16tof32:
		return c.perComponent(sp, args[0], ret, func(x ir.Typed) ir.Typed {
			v := c.builtinOp(sp, ir.OpUnpackHalf2x16, types.NewVector(types.Float, 2), x)
			return c.b.AddIndex(ir.OpVectorSwizzle, v, c.b.AddSwizzle([]int{0}, sp), sp)
		})
	case ir.OpF32tof16:
		return c.perComponent(sp, args[0], ret, func(x ir.Typed) ir.Typed {
			pair := c.constructAggregate(sp, types.NewVector(types.Float, 2), []ir.Node{x, c.b.ConstFloat(0, sp)})
			return c.builtinOp(sp, ir.OpPackHalf2x16, types.NewScalar(types.Uint), pair)
		})
	case ir.OpIsFinite:
		return c.perComponent(sp, args[0], ret, func(x ir.Typed) ir.Typed {
			b := types.NewScalar(types.Bool)
			bad := c.b.AddBinaryMath(ir.OpLogicalOr, c.builtinOp(sp, ir.OpIsNan, b, x), c.builtinOp(sp, ir.OpIsInf, b, x), sp)
			return c.b.AddUnaryMath(ir.OpLogicalNot, bad, sp)
		})
	case ir.OpLit:
		return c.lit(sp, args[0], args[1], args[2])
	case ir.OpDst:
		return c.dst(sp, args[0], args[1])
	case ir.OpD3DCOLORtoUBYTE4:
		zyxw := c.b.AddIndex(ir.OpVectorSwizzle, args[0], c.b.AddSwizzle([]int{2, 1, 0, 3}, sp), sp)
		scaled := c.b.AddBinaryMath(ir.OpMul, zyxw, c.b.ConstFloat(255.001953, sp), sp)
		return c.b.ConvertBasic(types.Int, scaled)
	case ir.OpEvaluateAttributeAtCentroid:
		return c.builtinOp(sp, ir.OpInterpolateAtCentroid, ret, args[0])
	case ir.OpEvaluateAttributeAtSample:
		return c.builtinOp(sp, ir.OpInterpolateAtSample, ret, args[0], args[1])
	case ir.OpEvaluateAttributeSnapped:
		// смещение задано в 1/16 пикселя
		off := c.b.ConvertBasic(types.Float, args[1])
		off = c.b.AddBinaryMath(ir.OpDiv, off, c.b.ConstFloat(16, sp), sp)
		return c.builtinOp(sp, ir.OpInterpolateAtOffset, ret, args[0], off)
	case ir.OpGetRenderTargetSampleCount, ir.OpGetRenderTargetSamplePosition:
		c.notImplemented(diag.FutIntrinsic, sp, "intrinsic "+fn.Name)
		return c.zero(ret, sp)
	}
	if len(args) == 0 {
		return c.b.AddBuiltInCall(fn.Op, false, nil, ret, sp)
	}
	return c.builtinOp(sp, fn.Op, ret, args...)
}

// mul follows HLSL row-vector conventions on top of the IR's
// column-major operators: HLSL rows are IR columns, so operand order flips.
func (c *Context) mul(sp source.Span, ret *types.Type, a, b ir.Typed) ir.Typed {
	at, bt := a.Type(), b.Type()
	switch {
	case at.IsScalarOrVec1() || bt.IsScalarOrVec1():
		return c.b.AddBinaryMath(ir.OpMul, a, b, sp)
	case at.IsVector() && bt.IsVector():
		if !at.Basic.IsFloat() {
			return c.intDot(sp, a, b)
		}
		return c.builtinOp(sp, ir.OpDot, ret, a, b)
	case at.IsVector() && bt.IsMatrix():
		return c.b.NewBinary(ir.OpMatrixTimesVector, b, a, ret, sp)
	case at.IsMatrix() && bt.IsVector():
		return c.b.NewBinary(ir.OpVectorTimesMatrix, b, a, ret, sp)
	}
	return c.b.NewBinary(ir.OpMatrixTimesMatrix, b, a, ret, sp)
}

// intDot expands an integer dot product into multiplies and adds.
func (c *Context) intDot(sp source.Span, a, b ir.Typed) ir.Typed {
	n := a.Type().VectorSize
	if a.Type().IsScalarOrVec1() {
		return c.b.AddBinaryMath(ir.OpMul, a, b, sp)
	}
	var sum ir.Typed
	for i := range n {
		ai := c.b.AddIndex(ir.OpIndexDirect, a, c.b.ConstInt(int64(i), sp), sp)
		bi := c.b.AddIndex(ir.OpIndexDirect, b, c.b.ConstInt(int64(i), sp), sp)
		p := c.b.AddBinaryMath(ir.OpMul, ai, bi, sp)
		if sum == nil {
			sum = p
		} else {
			sum = c.b.AddBinaryMath(ir.OpAdd, sum, p, sp)
		}
	}
	return sum
}

// anyAll reduces to a scalar bool; scalars convert, matrices reduce per column.
func (c *Context) anyAll(sp source.Span, op ir.Op, x ir.Typed) ir.Typed {
	t := x.Type()
	b := types.NewScalar(types.Bool)
	switch {
	case t.IsScalarOrVec1():
		if t.Vector1 {
			x = c.b.AddIndex(ir.OpVectorSwizzle, x, c.b.AddSwizzle([]int{0}, sp), sp)
		}
		return c.b.ConvertBasic(types.Bool, x)
	case t.IsMatrix():
		join := ir.OpLogicalOr
		if op == ir.OpAll {
			join = ir.OpLogicalAnd
		}
		var acc ir.Typed
		for i := range t.MatrixCols {
			col := c.anyAll(sp, op, c.b.AddIndex(ir.OpIndexDirect, x, c.b.ConstInt(int64(i), sp), sp))
			if acc == nil {
				acc = col
			} else {
				acc = c.b.AddBinaryMath(join, acc, col, sp)
			}
		}
		return acc
	}
	return c.builtinOp(sp, op, b, c.b.ConvertBasic(types.Bool, x))
}

// perComponent applies f to every scalar of x and rebuilds a value of type ret.
func (c *Context) perComponent(sp source.Span, x ir.Typed, ret *types.Type, f func(ir.Typed) ir.Typed) ir.Typed {
	t := x.Type()
	switch {
	case t.IsMatrix():
		var cols []ir.Node
		for i := range t.MatrixCols {
			col := c.b.AddIndex(ir.OpIndexDirect, x, c.b.ConstInt(int64(i), sp), sp)
			cols = append(cols, c.perComponent(sp, col, ret.Column(), f))
		}
		return c.constructAggregate(sp, ret, cols)
	case t.IsVector() && t.VectorSize > 1:
		var parts []ir.Node
		for i := range t.VectorSize {
			parts = append(parts, f(c.b.AddIndex(ir.OpIndexDirect, x, c.b.ConstInt(int64(i), sp), sp)))
		}
		return c.constructAggregate(sp, ret, parts)
	}
	if t.Vector1 {
		x = c.b.AddIndex(ir.OpVectorSwizzle, x, c.b.AddSwizzle([]int{0}, sp), sp)
	}
	return f(x)
}

func (c *Context) asDouble(sp source.Span, ret *types.Type, lo, hi ir.Typed) ir.Typed {
	pack := func(l, h ir.Typed) ir.Typed {
		pair := c.constructAggregate(sp, types.NewVector(types.Uint, 2), []ir.Node{l, h})
		return c.builtinOp(sp, ir.OpPackDouble2x32, types.NewScalar(types.Double), pair)
	}
	if !lo.Type().IsVector() || lo.Type().VectorSize == 1 {
		return pack(lo, hi)
	}
	var parts []ir.Node
	for i := range lo.Type().VectorSize {
		idx := c.b.ConstInt(int64(i), sp)
		parts = append(parts, pack(c.b.AddIndex(ir.OpIndexDirect, lo, idx, sp), c.b.AddIndex(ir.OpIndexDirect, hi, idx, sp)))
	}
	return c.constructAggregate(sp, ret, parts)
}

// clip discards the fragment when any component is negative.
func (c *Context) clip(sp source.Span, x ir.Typed) ir.Typed {
	zero := c.b.ConstScalarOf(0, x.Type().Basic, sp)
	cond := c.b.AddBinaryMath(ir.OpLessThan, x, zero, sp)
	if !cond.Type().IsScalarOrVec1() {
		cond = c.anyAll(sp, ir.OpAny, cond)
	}
	if c.opts.Stage != ir.StageFragment {
		c.warn(diag.SemaBadShaderStage, sp, "clip outside a pixel shader")
	}
	return c.b.AddSelection(cond, c.b.AddBranch(ir.OpKill, nil, sp), nil, sp)
}

// lit(n·l, n·h, m) = (1, max(n·l, 0), n·l < 0 || n·h < 0 ? 0 : pow(n·h, m), 1).
func (c *Context) lit(sp source.Span, nl, nh, m ir.Typed) ir.Typed {
	f := types.NewScalar(types.Float)
	zero := c.b.ConstFloat(0, sp)
	diffuse := c.builtinOp(sp, ir.OpMax, f, nl, zero)
	negative := c.b.AddBinaryMath(ir.OpLogicalOr,
		c.b.AddBinaryMath(ir.OpLessThan, nl, zero, sp),
		c.b.AddBinaryMath(ir.OpLessThan, nh, zero, sp), sp)
	specular := c.b.AddTernary(negative, c.b.ConstFloat(0, sp), c.builtinOp(sp, ir.OpPow, f, nh, m), sp)
	one := c.b.ConstFloat(1, sp)
	return c.constructAggregate(sp, types.NewVector(types.Float, 4), []ir.Node{one, diffuse, specular, c.b.ConstFloat(1, sp)})
}

// dst(a, b) = (1, a.y*b.y, a.z, b.w).
func (c *Context) dst(sp source.Span, a, b ir.Typed) ir.Typed {
	comp := func(v ir.Typed, i int) ir.Typed {
		return c.b.AddIndex(ir.OpIndexDirect, v, c.b.ConstInt(int64(i), sp), sp)
	}
	y := c.b.AddBinaryMath(ir.OpMul, comp(a, 1), comp(b, 1), sp)
	parts := []ir.Node{c.b.ConstScalarOf(1, a.Type().Basic, sp), y, comp(a, 2), comp(b, 3)}
	return c.constructAggregate(sp, a.Type().Unqualified(), parts)
}

var atomicOps = map[ir.Op][2]ir.Op{
	ir.OpInterlockedAdd:             {ir.OpAtomicAdd, ir.OpImageAtomicAdd},
	ir.OpInterlockedAnd:             {ir.OpAtomicAnd, ir.OpImageAtomicAnd},
	ir.OpInterlockedMax:             {ir.OpAtomicMax, ir.OpImageAtomicMax},
	ir.OpInterlockedMin:             {ir.OpAtomicMin, ir.OpImageAtomicMin},
	ir.OpInterlockedOr:              {ir.OpAtomicOr, ir.OpImageAtomicOr},
	ir.OpInterlockedXor:             {ir.OpAtomicXor, ir.OpImageAtomicXor},
	ir.OpInterlockedExchange:        {ir.OpAtomicExchange, ir.OpImageAtomicExchange},
	ir.OpInterlockedCompareExchange: {ir.OpAtomicCompSwap, ir.OpImageAtomicCompSwap},
	ir.OpInterlockedCompareStore:    {ir.OpAtomicCompSwap, ir.OpImageAtomicCompSwap},
}

// interlocked lowers an Interlocked* intrinsic. The destination stays an
// l-value: a texel of an RW texture or a variable in shared or writable
// buffer memory.
func (c *Context) interlocked(sp source.Span, fn *symbols.Function, args []ir.Typed) ir.Typed {
	dest := args[0]
	var orig ir.Typed
	values := args[1:]
	switch fn.Op {
	case ir.OpInterlockedCompareStore:
	case ir.OpInterlockedCompareExchange, ir.OpInterlockedExchange:
		orig = args[len(args)-1]
		values = args[1 : len(args)-1]
	default:
		if len(args) == 3 {
			orig, values = args[2], args[1:2]
		}
	}
	return c.atomic(sp, fn.Op, dest, values, orig)
}

func (c *Context) atomic(sp source.Span, op ir.Op, dest ir.Typed, values []ir.Typed, orig ir.Typed) ir.Typed {
	ops := atomicOps[op]
	dt := dest.Type()
	if !dt.IsScalar() || !(dt.Basic.IsInteger() || (op == ir.OpInterlockedExchange && dt.Basic == types.Float)) {
		c.report(diag.SemaBadAtomicTarget, sp, "atomic target must be an integer scalar, got %s", dt)
		return c.zero(nil, sp)
	}
	var args []ir.Typed
	var result ir.Typed
	if img, ok := c.imageTarget(dest); ok {
		args = append(args, img.object(), img.coord())
		for _, v := range values {
			args = append(args, c.b.ConvertBasic(dt.Basic, c.rvalue(v)))
		}
		if !c.checkAtomicArgs(sp, op, args) {
			return c.zero(nil, sp)
		}
		result = c.builtinOp(sp, ops[1], dt.Unqualified(), args...)
	} else {
		base := ir.BaseSymbol(dest)
		if base == nil {
			c.report(diag.SemaBadAtomicTarget, sp, "atomic target must be a variable")
			return c.zero(nil, sp)
		}
		q := base.Type().Qualifier
		if q.Storage != types.Shared && !(q.Storage == types.Buffer && !q.Has(types.FlagReadOnly)) {
			c.report(diag.SemaBadAtomicTarget, sp, "atomic target %q is not in groupshared or writable buffer memory", base.Name)
			return c.zero(nil, sp)
		}
		args = append(args, dest)
		for _, v := range values {
			args = append(args, c.b.ConvertBasic(dt.Basic, c.rvalue(v)))
		}
		if !c.checkAtomicArgs(sp, op, args) {
			return c.zero(nil, sp)
		}
		result = c.builtinOp(sp, ops[0], dt.Unqualified(), args...)
	}
	if orig == nil {
		return result
	}
	if !c.checkLValue(orig.Span(), orig) {
		return result
	}
	n := c.b.AddAssign(ir.OpAssign, orig, result, sp)
	if n == nil {
		c.report(diag.SemaTypeMismatch, sp, "cannot store %s result into %s", op, orig.Type())
		return result
	}
	return n
}

func (c *Context) checkAtomicArgs(sp source.Span, op ir.Op, args []ir.Typed) bool {
	for _, a := range args {
		if a == nil {
			c.report(diag.SemaBadArgument, sp, "bad operand for %s", op)
			return false
		}
	}
	return true
}
