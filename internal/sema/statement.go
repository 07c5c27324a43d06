package sema

import (
	"strings"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/parser"
	"hlslc/internal/source"
	"hlslc/internal/types"
)

// switchState collects the body of the innermost switch statement.
type switchState struct {
	seq       []ir.Node
	cases     map[int64]source.Span
	defaultAt *source.Span
}

// Grow appends right to the statement list left.
func (c *Context) Grow(left, right ir.Node, sp source.Span) ir.Node {
	agg := c.b.GrowAggregate(left, right, sp)
	if agg == nil {
		return nil
	}
	return agg
}

// HandleSequence closes a statement list.
func (c *Context) HandleSequence(sp source.Span, stmts ir.Node) ir.Node {
	if stmts == nil {
		return nil
	}
	return c.b.SetAggregateOperator(stmts, ir.OpSequence, types.NewVoid(), sp)
}

func (c *Context) HandleSelection(sp source.Span, cond ir.Typed, then, els ir.Node, attrs parser.Attributes) ir.Node {
	c.checkStatementAttributes(attrs, "flatten", "branch")
	sel := c.b.AddSelection(cond, then, els, sp)
	sel.Control = selectionControl(attrs)
	return sel
}

func selectionControl(attrs parser.Attributes) ir.SelectionControl {
	for _, a := range attrs {
		switch strings.ToLower(a.Name) {
		case "flatten":
			return ir.SelectionFlatten
		case "branch":
			return ir.SelectionDontFlatten
		}
	}
	return ir.SelectionNone
}

func (c *Context) BeginLoop() { c.loopDepth++ }
func (c *Context) EndLoop()   { c.loopDepth-- }

// HandleLoop builds while, do-while and for loops; a for initializer
// lands in front of the loop.
func (c *Context) HandleLoop(sp source.Span, kind parser.LoopKind, init ir.Node, cond, iter ir.Typed, body ir.Node, attrs parser.Attributes) ir.Node {
	c.checkStatementAttributes(attrs, "unroll", "loop", "fastopt", "allow_uav_condition")
	loop := c.b.AddLoop(body, cond, iter, kind != parser.LoopDo, sp)
	for _, a := range attrs {
		switch strings.ToLower(a.Name) {
		case "unroll":
			loop.Control = ir.LoopUnroll
			if len(a.Args) > 0 {
				if n, ok := c.intAttrArg(a, 0); ok {
					loop.Unroll = n
				}
			}
		case "loop", "fastopt":
			loop.Control = ir.LoopDontUnroll
		}
	}
	if kind != parser.LoopFor || init == nil {
		return loop
	}
	return c.b.NewAggregate(ir.OpSequence, types.NewVoid(), sp, init, loop)
}

func (c *Context) BeginSwitch() {
	c.switches = append(c.switches, &switchState{cases: make(map[int64]source.Span)})
}

// WrapupSwitchSubsequence closes the statements before a case label and
// appends the label itself.
func (c *Context) WrapupSwitchSubsequence(stmts ir.Node, label ir.Node) {
	if len(c.switches) == 0 {
		return
	}
	st := c.switches[len(c.switches)-1]
	st.append(stmts)
	br, ok := label.(*ir.Branch)
	if !ok {
		return
	}
	switch br.Op {
	case ir.OpDefault:
		if st.defaultAt != nil {
			c.reportWithNote(diag.SemaDuplicateDefault, br.Span(), *st.defaultAt, "previous default", "multiple default labels in one switch")
			return
		}
		at := br.Span()
		st.defaultAt = &at
	case ir.OpCase:
		if v, ok := constIntValue(br.Expr); ok {
			if prev, dup := st.cases[v]; dup {
				c.reportWithNote(diag.SemaDuplicateCase, br.Span(), prev, "previous case", "duplicate case value %d", v)
				return
			}
			st.cases[v] = br.Span()
		}
	}
	st.seq = append(st.seq, br)
}

func (st *switchState) append(n ir.Node) {
	if n == nil {
		return
	}
	if agg, ok := n.(*ir.Aggregate); ok && (agg.Op == ir.OpNull || agg.Op == ir.OpSequence) {
		st.seq = append(st.seq, agg.Seq...)
		return
	}
	st.seq = append(st.seq, n)
}

// EndSwitch pops the switch and builds it; the condition must be an
// integer scalar.
func (c *Context) EndSwitch(sp source.Span, cond ir.Typed, last ir.Node, attrs parser.Attributes) ir.Node {
	if len(c.switches) == 0 {
		return nil
	}
	st := c.switches[len(c.switches)-1]
	c.switches = c.switches[:len(c.switches)-1]
	st.append(last)

	c.checkStatementAttributes(attrs, "flatten", "branch", "forcecase", "call")
	if cond == nil {
		return nil
	}
	cond = c.rvalue(cond)
	ct := cond.Type()
	if !ct.IsScalarOrVec1() || !ct.Basic.IsInteger() {
		c.report(diag.SemaBadCondition, cond.Span(), "switch condition must be an integer scalar, not %s", ct)
		return nil
	}
	body := c.b.NewAggregate(ir.OpSequence, types.NewVoid(), sp, st.seq...)
	sw := c.b.AddSwitch(cond, body, sp)
	sw.Control = selectionControl(attrs)
	return sw
}

func (c *Context) HandleCaseLabel(sp source.Span, value ir.Typed) ir.Node {
	if len(c.switches) == 0 {
		c.report(diag.SemaBadCaseLabel, sp, "case label outside a switch")
		return nil
	}
	if _, ok := constIntValue(value); !ok {
		c.report(diag.SemaBadCaseLabel, value.Span(), "case label must be a constant integer expression")
		return c.b.AddBranch(ir.OpCase, c.b.ConstInt(0, sp), sp)
	}
	return c.b.AddBranch(ir.OpCase, value, sp)
}

func (c *Context) HandleDefaultLabel(sp source.Span) ir.Node {
	if len(c.switches) == 0 {
		c.report(diag.SemaBadCaseLabel, sp, "default label outside a switch")
		return nil
	}
	return c.b.AddBranch(ir.OpDefault, nil, sp)
}

// HandleBranch checks break, continue and discard placement.
func (c *Context) HandleBranch(sp source.Span, op ir.Op) ir.Node {
	switch op {
	case ir.OpBreak:
		if c.loopDepth == 0 && len(c.switches) == 0 {
			c.report(diag.SemaBreakOutsideLoop, sp, "break statement only allowed in switch and loops")
			return nil
		}
	case ir.OpContinue:
		if c.loopDepth == 0 {
			c.report(diag.SemaContinueOutsideLoop, sp, "continue statement only allowed in loops")
			return nil
		}
	case ir.OpKill:
		if c.opts.Stage != ir.StageFragment {
			c.warn(diag.SemaBadShaderStage, sp, "discard is only meaningful in a pixel shader")
		}
	}
	return c.b.AddBranch(op, nil, sp)
}

// HandleReturn converts the returned value to the function's return type.
// Inside the entry point the value is copied to the stage outputs instead.
func (c *Context) HandleReturn(sp source.Span, value ir.Typed) ir.Node {
	fs := c.fn
	if fs == nil {
		c.report(diag.SemaError, sp, "return outside a function")
		return nil
	}
	rt := fs.fn.Return
	if value == nil {
		if !rt.IsVoid() {
			c.report(diag.SemaMissingReturnValue, sp, "non-void function %q must return a value", fs.fn.Name)
			return nil
		}
		return c.b.AddBranch(ir.OpReturn, nil, sp)
	}
	value = c.rvalue(value)
	if rt.IsVoid() {
		if value.Type().IsVoid() {
			return c.b.NewAggregate(ir.OpSequence, types.NewVoid(), sp, value, c.b.AddBranch(ir.OpReturn, nil, sp))
		}
		c.report(diag.SemaVoidReturnValue, value.Span(), "void function %q cannot return a value", fs.fn.Name)
		return nil
	}
	if fs.entry && fs.output != nil {
		out := c.ref(fs.output, sp)
		conv := c.b.AddConversion(rt.Unqualified(), value)
		if conv == nil {
			c.report(diag.SemaReturnTypeMismatch, value.Span(), "cannot convert return value from %s to %s", value.Type(), rt)
			return nil
		}
		assign := c.memberwiseAssign(sp, out, conv)
		if assign == nil {
			c.report(diag.SemaReturnTypeMismatch, value.Span(), "cannot copy %s to the entry point output", value.Type())
			return nil
		}
		return c.b.NewAggregate(ir.OpSequence, types.NewVoid(), sp, assign, c.b.AddBranch(ir.OpReturn, nil, sp))
	}
	conv := c.b.AddConversion(rt.Unqualified(), value)
	if conv == nil {
		c.report(diag.SemaReturnTypeMismatch, value.Span(), "cannot convert return value from %s to %s", value.Type(), rt)
		return nil
	}
	return c.b.AddBranch(ir.OpReturn, conv, sp)
}

// SetTreeRoot installs the translation unit.
func (c *Context) SetTreeRoot(root ir.Node) {
	c.b.SetTreeRoot(root)
}
