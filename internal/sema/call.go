package sema

import (
	"hlslc/internal/builtins"
	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/source"
	"hlslc/internal/symbols"
	"hlslc/internal/types"
)

// HandleCall resolves name(args) or object.name(args).
func (c *Context) HandleCall(sp source.Span, name string, object ir.Typed, args []ir.Typed) ir.Typed {
	if object != nil {
		return c.handleMethod(sp, name, object, args)
	}
	if _, ok := builtins.NotImplemented(name); ok {
		c.notImplemented(diag.FutIntrinsic, sp, "intrinsic "+name)
		return c.zero(nil, sp)
	}
	cands := c.candidates(name)
	if len(cands) == 0 {
		if sym := c.find(name); sym != nil {
			c.report(diag.SemaBadOperands, sp, "%q is not a function", name)
		} else {
			c.report(diag.SemaUndeclaredIdentifier, sp, "undeclared function %q", name)
		}
		return c.zero(nil, sp)
	}
	sym := c.resolveOverload(sp, name, cands, args)
	if sym == nil {
		return c.zero(nil, sp)
	}
	fn := sym.Func
	if fn.Builtin {
		return c.builtinCall(sp, fn, args)
	}
	return c.userCall(sp, sym, args)
}

// argList is a call's argument list after conversion. Out arguments whose
// type differs from the parameter go through temporaries: pre copies
// inout values in, post writes results back.
type argList struct {
	args []ir.Typed
	pre  []ir.Node
	post []ir.Node
}

func (c *Context) passArguments(sp source.Span, fn *symbols.Function, args []ir.Typed) (argList, bool) {
	var out argList
	for i, a := range args {
		pt := fn.Params[i].Type
		dir := fn.Direction(i)
		if dir == types.In {
			v := c.b.AddConversion(pt.Unqualified(), c.rvalue(a))
			if v == nil {
				c.report(diag.SemaBadArgument, a.Span(), "cannot convert argument %d from %s to %s", i+1, a.Type(), pt)
				return out, false
			}
			out.args = append(out.args, v)
			continue
		}
		if !c.checkLValue(a.Span(), a) {
			return out, false
		}
		if pt.Equal(a.Type()) && !c.isAggregateShadow(a) {
			out.args = append(out.args, a)
			continue
		}
		tmp := c.ref(c.newTemp(pt, sp), sp)
		if dir == types.InOut {
			in := c.b.AddAssign(ir.OpAssign, tmp, c.rvalue(a), sp)
			if in == nil {
				c.report(diag.SemaBadArgument, a.Span(), "cannot convert argument %d from %s to %s", i+1, a.Type(), pt)
				return out, false
			}
			out.pre = append(out.pre, in)
		}
		back := c.memberwiseAssign(sp, a, tmp)
		if back == nil {
			c.report(diag.SemaBadArgument, a.Span(), "cannot convert output argument %d from %s to %s", i+1, pt, a.Type())
			return out, false
		}
		out.post = append(out.post, back)
		out.args = append(out.args, tmp)
	}
	return out, true
}

// wrapCall surrounds call with the argument copies of list.
func (c *Context) wrapCall(sp source.Span, call ir.Typed, list argList) ir.Typed {
	if len(list.pre) == 0 && len(list.post) == 0 {
		return call
	}
	rt := call.Type().Unqualified()
	seq := c.b.NewAggregate(ir.OpSequence, rt, sp, list.pre...)
	if rt.IsVoid() {
		seq.Seq = append(seq.Seq, call)
		seq.Seq = append(seq.Seq, list.post...)
		return seq
	}
	ret := c.ref(c.newTemp(rt, sp), sp)
	seq.Seq = append(seq.Seq, c.b.AddAssign(ir.OpAssign, ret, call, sp))
	seq.Seq = append(seq.Seq, list.post...)
	seq.Seq = append(seq.Seq, ret)
	return seq
}

func (c *Context) userCall(sp source.Span, sym *symbols.Symbol, args []ir.Typed) ir.Typed {
	fn := sym.Func
	list, ok := c.passArguments(sp, fn, args)
	if !ok {
		return c.zero(fn.Return, sp)
	}
	for i := len(args); i < len(fn.Params); i++ {
		def := fn.Params[i].Default
		if def == nil {
			c.report(diag.SemaNotEnoughArguments, sp, "missing argument %d of %q", i+1, fn.Name)
			return c.zero(fn.Return, sp)
		}
		list.args = append(list.args, def)
	}
	call := c.b.NewAggregate(ir.OpFunctionCall, fn.Return.Unqualified(), sp)
	call.Name = fn.Mangled
	call.UserDefined = true
	call.Callee = sym.ID
	for i, a := range list.args {
		call.Seq = append(call.Seq, a)
		call.Directions = append(call.Directions, fn.Direction(i))
	}
	fn.Called = true
	return c.wrapCall(sp, call, list)
}

func (c *Context) builtinCall(sp source.Span, fn *symbols.Function, args []ir.Typed) ir.Typed {
	if fn.Op.IsInterlocked() {
		return c.interlocked(sp, fn, args)
	}
	list, ok := c.passArguments(sp, fn, args)
	if !ok {
		return c.zero(fn.Return, sp)
	}
	return c.wrapCall(sp, c.lowerIntrinsic(sp, fn, list.args), list)
}

// builtinOp builds a plain builtin operator call over args.
func (c *Context) builtinOp(sp source.Span, op ir.Op, ret *types.Type, args ...ir.Typed) ir.Typed {
	if len(args) == 1 {
		return c.b.AddBuiltInCall(op, true, args[0], ret, sp)
	}
	agg := c.b.NewAggregate(ir.OpNull, types.NewVoid(), sp)
	for _, a := range args {
		agg.Seq = append(agg.Seq, a)
	}
	return c.b.AddBuiltInCall(op, false, agg, ret, sp)
}
