package sema

import (
	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/source"
	"hlslc/internal/types"
)

// HandleConstructor builds T(args). Numeric constructors take exactly as
// many components as T has; a single scalar broadcasts and a single
// matrix may be truncated to a smaller one.
func (c *Context) HandleConstructor(sp source.Span, t *types.Type, args []ir.Typed) ir.Typed {
	rt := t.Clone()
	rt.Qualifier = types.Qualifier{}
	if rt.ContainsOpaque() {
		c.report(diag.SemaConstructorArgs, sp, "cannot construct %s", rt)
		return c.zero(nil, sp)
	}
	if len(args) == 0 {
		c.report(diag.SemaConstructorTooFew, sp, "constructor of %s needs arguments", rt)
		return c.zero(rt, sp)
	}
	for i, a := range args {
		a = c.rvalue(a)
		at := a.Type()
		if at.IsVoid() || at.ContainsOpaque() {
			c.report(diag.SemaConstructorArgs, a.Span(), "cannot use %s in a constructor", at)
			return c.zero(rt, sp)
		}
		args[i] = a
	}
	if n, ok := c.constructWhole(rt, args); ok {
		return n
	}
	if n, ok := c.constructParts(sp, rt, args); ok {
		return n
	}
	return c.constructFromComponents(sp, rt, args, false)
}

// constructWhole handles the single-argument forms: an identical type,
// a scalar broadcast and matrix truncation.
func (c *Context) constructWhole(rt *types.Type, args []ir.Typed) (ir.Typed, bool) {
	if len(args) != 1 {
		return nil, false
	}
	a := args[0]
	at := a.Type()
	switch {
	case at.Equal(rt):
		return a, true
	case rt.IsNumeric() && at.IsNumeric() && at.IsScalarOrVec1():
		x := c.b.ConvertBasic(rt.Basic, a)
		if x == nil {
			return nil, false
		}
		if v := c.b.AddConversion(rt, x); v != nil {
			return v, true
		}
	case rt.IsMatrix() && at.IsMatrix() && ir.CanConvert(at, rt):
		x := c.b.ConvertBasic(rt.Basic, a)
		if v := c.b.AddConversion(rt, x); v != nil {
			return v, true
		}
	}
	return nil, false
}

// constructParts matches one argument per struct member or array element.
func (c *Context) constructParts(sp source.Span, rt *types.Type, args []ir.Typed) (ir.Typed, bool) {
	var want []*types.Type
	switch {
	case rt.IsArray():
		if rt.IsImplicitlySizedArray() {
			rt.Arrays.SetOuterSize(len(args))
		}
		if rt.OuterArraySize() != len(args) {
			return nil, false
		}
		et := rt.Element()
		for range args {
			want = append(want, et)
		}
	case rt.IsStruct():
		if len(rt.Struct.Members) != len(args) {
			return nil, false
		}
		for _, m := range rt.Struct.Members {
			want = append(want, m.Type)
		}
	default:
		return nil, false
	}
	parts := make([]ir.Node, len(args))
	for i, a := range args {
		if !a.Type().Equal(want[i]) && !ir.CanConvert(a.Type(), want[i]) {
			return nil, false
		}
		v := c.b.AddConversion(want[i], a)
		if v == nil {
			return nil, false
		}
		parts[i] = v
	}
	return c.constructAggregate(sp, rt, parts), true
}

// constructFromComponents reads args as one flat queue of scalars. A cast
// broadcasts a lone scalar over every component of the target.
func (c *Context) constructFromComponents(sp source.Span, rt *types.Type, args []ir.Typed, cast bool) ir.Typed {
	var queue []ir.Typed
	for _, a := range args {
		queue = c.components(sp, a, queue)
	}
	if rt.IsImplicitlySizedArray() {
		per := rt.Element().ComponentCount()
		if per == 0 || len(queue)%per != 0 {
			c.report(diag.SemaConstructorArgs, sp, "%d components do not fill whole elements of %s", len(queue), rt)
			return c.zero(nil, sp)
		}
		rt.Arrays.SetOuterSize(len(queue) / per)
	}
	need := rt.ComponentCount()
	if cast && len(queue) == 1 {
		for len(queue) < need {
			queue = append(queue, queue[0])
		}
	}
	for _, q := range queue {
		if !q.Type().Basic.IsNumeric() {
			c.report(diag.SemaConstructorArgs, q.Span(), "cannot use %s as a component of %s", q.Type(), rt)
			return c.zero(rt, sp)
		}
	}
	switch {
	case len(queue) < need:
		c.report(diag.SemaConstructorTooFew, sp, "too few components to construct %s: want %d, have %d", rt, need, len(queue))
		return c.zero(rt, sp)
	case len(queue) > need:
		if !cast {
			c.report(diag.SemaConstructorTooMany, sp, "too many components to construct %s: want %d, have %d", rt, need, len(queue))
			return c.zero(rt, sp)
		}
		queue = queue[:need]
	}
	n, _ := c.buildFromQueue(sp, rt, queue)
	return n
}

// HandleCast lowers (T)x. Implicitly convertible values convert without
// truncation warnings; everything else is rebuilt component by component.
func (c *Context) HandleCast(sp source.Span, t *types.Type, x ir.Typed) ir.Typed {
	x = c.rvalue(x)
	rt := t.Clone()
	rt.Qualifier = types.Qualifier{}
	xt := x.Type()
	if xt.Equal(rt) {
		return x
	}
	if rt.IsVoid() {
		return c.b.NewUnary(ir.OpConvert, x, rt, sp)
	}
	if ir.CanConvert(xt, rt) {
		warn := c.b.Warn
		c.b.Warn = nil
		v := c.b.AddConversion(rt, x)
		c.b.Warn = warn
		if v != nil {
			return v
		}
	}
	if rt.ContainsOpaque() || xt.ContainsOpaque() || xt.IsVoid() {
		c.report(diag.SemaBadCast, sp, "cannot cast %s to %s", xt, rt)
		return c.zero(nil, sp)
	}
	n := xt.ComponentCount()
	if n != 1 && n < rt.ComponentCount() {
		c.report(diag.SemaBadCast, sp, "cannot cast %s to %s: not enough components", xt, rt)
		return c.zero(rt, sp)
	}
	return c.constructFromComponents(sp, rt, []ir.Typed{x}, true)
}
