package sema

import (
	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/source"
	"hlslc/internal/symbols"
	"hlslc/internal/token"
	"hlslc/internal/types"
)

func (c *Context) HandleLiteral(tok token.Token) ir.Typed {
	sp := tok.Span
	switch tok.Kind {
	case token.IntLit:
		return c.b.ConstInt(tok.Int, sp)
	case token.UintLit:
		return c.b.ConstUint(tok.Uint, sp)
	case token.Int64Lit:
		return c.b.NewConstant([]types.ConstUnion{{Kind: types.Int64, I: tok.Int}}, types.NewScalar(types.Int64), sp)
	case token.Uint64Lit:
		return c.b.NewConstant([]types.ConstUnion{{Kind: types.Uint64, U: tok.Uint}}, types.NewScalar(types.Uint64), sp)
	case token.FloatLit:
		return c.b.ConstFloat(tok.Float, sp)
	case token.DoubleLit:
		return c.b.ConstDouble(tok.Float, sp)
	case token.BoolLit:
		return c.b.ConstBool(tok.Bool, sp)
	case token.StringLit:
		return c.b.NewConstant([]types.ConstUnion{types.ConstString(tok.Str)}, types.NewScalar(types.String), sp)
	}
	c.report(diag.SemaError, sp, "unexpected literal %q", tok.Text)
	return c.b.ConstInt(0, sp)
}

// HandleVariable resolves an identifier used as a value. An undeclared
// name is reported once and then bound as a float so that later uses do
// not cascade.
func (c *Context) HandleVariable(sp source.Span, name string) ir.Typed {
	sym := c.find(name)
	if sym == nil {
		c.report(diag.SemaUndeclaredIdentifier, sp, "undeclared identifier %q", name)
		sym, _ = c.table.Insert(symbols.Symbol{Kind: symbols.SymbolVariable, Name: name, Type: types.NewScalar(types.Float), Span: sp})
		return c.ref(sym, sp)
	}
	switch sym.Kind {
	case symbols.SymbolType:
		c.report(diag.SemaNotAType, sp, "type %q used as a value", name)
		return c.zero(nil, sp)
	case symbols.SymbolFunction:
		c.report(diag.SemaBadOperands, sp, "function %q used without a call", name)
		return c.zero(nil, sp)
	}
	return c.ref(sym, sp)
}

func (c *Context) HandleBinary(sp source.Span, op ir.Op, l, r ir.Typed) ir.Typed {
	l, r = c.rvalue(l), c.rvalue(r)
	if op == ir.OpDiv || op == ir.OpMod {
		if v, ok := constIntValue(r); ok && v == 0 && r.Type().Basic.IsInteger() {
			c.warn(diag.SemaDivisionByZero, sp, "integer division by zero")
		}
	}
	n := c.b.AddBinaryMath(op, l, r, sp)
	if n == nil {
		c.report(diag.SemaBadOperands, sp, "cannot apply %s to %s and %s", op, l.Type(), r.Type())
		return l
	}
	return n
}

func (c *Context) HandleUnary(sp source.Span, op ir.Op, x ir.Typed) ir.Typed {
	if op.IsIncDec() {
		if img, ok := c.imageTarget(x); ok {
			return c.imageIncDec(sp, op, img)
		}
		if !c.checkLValue(sp, x) {
			return x
		}
	} else {
		x = c.rvalue(x)
	}
	n := c.b.AddUnaryMath(op, x, sp)
	if n == nil {
		c.report(diag.SemaBadOperands, sp, "wrong operand type for %s: %s", op, x.Type())
		return x
	}
	return n
}

func (c *Context) HandleAssign(sp source.Span, op ir.Op, l, r ir.Typed) ir.Typed {
	if _, ok := c.asInitList(r); ok {
		if op != ir.OpAssign {
			c.report(diag.SemaBadInitializer, sp, "initializer list used with %s", op)
			return l
		}
		t := l.Type().Clone()
		r = c.convertInitializer(sp, t, r)
		if r == nil {
			return l
		}
	}
	if img, ok := c.imageTarget(l); ok {
		return c.imageAssign(sp, op, img, c.rvalue(r))
	}
	if !c.checkLValue(sp, l) {
		return l
	}
	if op == ir.OpAssign && (c.isAggregateShadow(l) || c.isAggregateShadow(r)) {
		if n := c.memberwiseAssign(sp, l, r); n != nil {
			return n
		}
		c.report(diag.SemaTypeMismatch, sp, "cannot assign %s to %s", r.Type(), l.Type())
		return l
	}
	r = c.rvalue(r)
	n := c.b.AddAssign(op, l, r, sp)
	if n == nil {
		if op == ir.OpAssign {
			c.report(diag.SemaTypeMismatch, sp, "cannot convert from %s to %s", r.Type(), l.Type())
		} else {
			c.report(diag.SemaBadOperands, sp, "cannot apply %s to %s and %s", op, l.Type(), r.Type())
		}
		return l
	}
	return n
}

// HandleTernary builds cond ? t : f. A vector condition selects per
// component and lowers to mix.
func (c *Context) HandleTernary(sp source.Span, cond, t, f ir.Typed) ir.Typed {
	cond, t, f = c.rvalue(cond), c.rvalue(t), c.rvalue(f)
	if ct := cond.Type(); ct.IsVector() && ct.VectorSize > 1 {
		return c.vectorSelect(sp, cond, t, f)
	}
	n := c.b.AddTernary(cond, t, f, sp)
	if n == nil {
		c.report(diag.SemaTypeMismatch, sp, "cannot select between %s and %s", t.Type(), f.Type())
		return t
	}
	return n
}

func (c *Context) vectorSelect(sp source.Span, cond, t, f ir.Typed) ir.Typed {
	shape := cond.Type()
	basic := ir.PromoteBasic(t.Type().Basic, f.Type().Basic)
	target := shape.WithBasic(basic)
	target.Qualifier = types.Qualifier{}
	tc, fc := c.b.AddConversion(target, t), c.b.AddConversion(target, f)
	bc := c.b.ConvertBasic(types.Bool, cond)
	if tc == nil || fc == nil || bc == nil {
		c.report(diag.SemaTypeMismatch, sp, "cannot select between %s and %s with %s", t.Type(), f.Type(), shape)
		return t
	}
	args := c.b.NewAggregate(ir.OpNull, types.NewVoid(), sp, fc, tc, bc)
	return c.b.AddBuiltInCall(ir.OpMix, false, args, target, sp)
}

func (c *Context) HandleComma(sp source.Span, l, r ir.Typed) ir.Typed {
	return c.b.AddComma(l, c.rvalue(r), sp)
}

// ConvertCondition turns an if/loop condition into a scalar bool.
func (c *Context) ConvertCondition(sp source.Span, cond ir.Typed) ir.Typed {
	cond = c.rvalue(cond)
	t := cond.Type()
	if !t.IsScalarOrVec1() || !t.Basic.IsNumeric() {
		c.report(diag.SemaBadCondition, sp, "condition must be a scalar, got %s", t)
		return c.b.ConstBool(false, sp)
	}
	if t.Vector1 {
		cond = c.b.AddIndex(ir.OpVectorSwizzle, cond, c.b.AddSwizzle([]int{0}, sp), sp)
	}
	n := c.b.ConvertBasic(types.Bool, cond)
	if n == nil {
		c.report(diag.SemaBadCondition, sp, "cannot convert %s to bool", t)
		return c.b.ConstBool(false, sp)
	}
	return n
}

// checkLValue reports writes to values that cannot be written.
func (c *Context) checkLValue(sp source.Span, n ir.Typed) bool {
	if c.isAggregateShadow(n) {
		return true
	}
	if b, ok := n.(*ir.Binary); ok && b.Op == ir.OpVectorSwizzle {
		seen := 0
		for _, comp := range ir.SwizzleComponents(b.Right) {
			if seen&(1<<comp) != 0 {
				c.report(diag.SemaNotLValue, sp, "l-value swizzle repeats a component")
				return false
			}
			seen |= 1 << comp
		}
	}
	base := ir.BaseSymbol(n)
	if base == nil {
		c.report(diag.SemaNotLValue, sp, "l-value required")
		return false
	}
	q := base.Type().Qualifier
	switch q.Storage {
	case types.Const, types.ConstReadOnly:
		c.report(diag.SemaNotLValue, sp, "cannot assign to const %q", base.Name)
		return false
	case types.Uniform:
		c.report(diag.SemaNotLValue, sp, "cannot assign to uniform %q", base.Name)
		return false
	case types.Buffer:
		if q.Has(types.FlagReadOnly) {
			c.report(diag.SemaNotLValue, sp, "cannot assign to read-only buffer %q", base.Name)
			return false
		}
	}
	if base.Type().IsOpaque() && !n.Type().IsOpaque() {
		c.report(diag.SemaNotLValue, sp, "cannot assign through %s", base.Type())
		return false
	}
	return true
}
