package sema

import (
	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/source"
	"hlslc/internal/types"
)

// imageRef is an l-value rooted at a texel load of an RW texture or buffer.
type imageRef struct {
	load  *ir.Aggregate // OpImageLoad(object, coord)
	value ir.Typed      // the full l-value, possibly a swizzle of load
}

func (r imageRef) object() ir.Typed { return r.load.Seq[0].(ir.Typed) }
func (r imageRef) coord() ir.Typed  { return r.load.Seq[1].(ir.Typed) }

// imageTarget recognises writes through rw[coord] and rw[coord].xyzw.
func (c *Context) imageTarget(n ir.Typed) (imageRef, bool) {
	v := n
	if b, ok := n.(*ir.Binary); ok && (b.Op == ir.OpVectorSwizzle || b.Op == ir.OpIndexDirect) {
		n = b.Left
	}
	agg, ok := n.(*ir.Aggregate)
	if !ok || agg.Op != ir.OpImageLoad || len(agg.Seq) < 2 {
		return imageRef{}, false
	}
	return imageRef{load: agg, value: v}, true
}

// wholeTexel reports whether the l-value covers every texel component in order.
func (c *Context) wholeTexel(sp source.Span, img imageRef) bool {
	if img.value == ir.Typed(img.load) {
		return true
	}
	if b, ok := img.value.(*ir.Binary); ok && b.Op == ir.OpVectorSwizzle {
		comps := ir.SwizzleComponents(b.Right)
		if len(comps) == img.load.Type().VectorSize {
			identity := true
			for i, comp := range comps {
				identity = identity && comp == i
			}
			if identity {
				return true
			}
		}
	}
	c.notImplemented(diag.FutPartialImageWrite, sp, "partial write to a texel")
	return false
}

func (c *Context) imageStore(sp source.Span, obj, coord, value ir.Typed) ir.Typed {
	args := c.b.NewAggregate(ir.OpNull, types.NewVoid(), sp, obj, coord, value)
	return c.b.AddBuiltInCall(ir.OpImageStore, false, args, types.NewVoid(), sp)
}

// imageAssign lowers rw[coord] = v and rw[coord] op= v into load, modify
// and store through temporaries; the sequence yields the stored texel.
func (c *Context) imageAssign(sp source.Span, op ir.Op, img imageRef, r ir.Typed) ir.Typed {
	if !c.wholeTexel(sp, img) {
		return img.value
	}
	texel := img.load.Type()
	obj, coord := img.object(), img.coord()
	seq := c.b.NewAggregate(ir.OpSequence, texel.Unqualified(), sp)

	if op == ir.OpAssign {
		conv := c.b.AddConversion(texel.Unqualified(), r)
		if conv == nil {
			c.report(diag.SemaTypeMismatch, sp, "cannot convert from %s to %s", r.Type(), texel)
			return img.value
		}
		if _, ok := conv.(*ir.Symbol); ok {
			seq.Seq = append(seq.Seq, c.imageStore(sp, obj, coord, conv), conv)
			return seq
		}
		tmp := c.ref(c.newTemp(texel, sp), sp)
		seq.Seq = append(seq.Seq,
			c.b.AddAssign(ir.OpAssign, tmp, conv, sp),
			c.imageStore(sp, obj, coord, tmp),
			tmp)
		return seq
	}

	coordTmp := c.ref(c.newTemp(coord.Type(), sp), sp)
	tmp := c.ref(c.newTemp(texel, sp), sp)
	modify := c.b.AddAssign(op, tmp, r, sp)
	if modify == nil {
		c.report(diag.SemaBadOperands, sp, "cannot apply %s to %s and %s", op, texel, r.Type())
		return img.value
	}
	seq.Seq = append(seq.Seq,
		c.b.AddAssign(ir.OpAssign, coordTmp, coord, sp),
		c.b.AddAssign(ir.OpAssign, tmp, c.imageLoad(sp, obj, coordTmp), sp),
		modify,
		c.imageStore(sp, obj, coordTmp, tmp),
		tmp)
	return seq
}

// imageIncDec lowers ++rw[coord] and rw[coord]++. The post forms keep the
// loaded value in a second temporary and yield it.
func (c *Context) imageIncDec(sp source.Span, op ir.Op, img imageRef) ir.Typed {
	if !c.wholeTexel(sp, img) {
		return img.value
	}
	texel := img.load.Type()
	obj, coord := img.object(), img.coord()
	if texel.Basic == types.Bool {
		c.report(diag.SemaBadOperands, sp, "wrong operand type for %s: %s", op, texel)
		return img.value
	}
	coordTmp := c.ref(c.newTemp(coord.Type(), sp), sp)
	loaded := c.ref(c.newTemp(texel, sp), sp)
	seq := c.b.NewAggregate(ir.OpSequence, texel.Unqualified(), sp,
		c.b.AddAssign(ir.OpAssign, coordTmp, coord, sp),
		c.b.AddAssign(ir.OpAssign, loaded, c.imageLoad(sp, obj, coordTmp), sp))

	pre := ir.OpPreIncrement
	if op == ir.OpPreDecrement || op == ir.OpPostDecrement {
		pre = ir.OpPreDecrement
	}
	if op == ir.OpPreIncrement || op == ir.OpPreDecrement {
		seq.Seq = append(seq.Seq,
			c.b.AddUnaryMath(pre, loaded, sp),
			c.imageStore(sp, obj, coordTmp, loaded),
			loaded)
		return seq
	}
	updated := c.ref(c.newTemp(texel, sp), sp)
	seq.Seq = append(seq.Seq,
		c.b.AddAssign(ir.OpAssign, updated, loaded, sp),
		c.b.AddUnaryMath(pre, updated, sp),
		c.imageStore(sp, obj, coordTmp, updated),
		loaded)
	return seq
}
