package sema

import (
	"fmt"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/layout"
	"hlslc/internal/source"
	"hlslc/internal/types"
)

// Finish runs the whole-unit checks after parsing, assigns the remaining
// I/O locations and appends the linker object list to the tree. Calling it
// again returns the same result.
func (c *Context) Finish() Result {
	if c.finished {
		return c.result()
	}
	c.finished = true

	if c.entry == nil {
		c.report(diag.SemaEntryPointMissing, source.Span{}, "entry point %q not found", c.opts.EntryPoint)
	}
	for _, sym := range c.functions {
		if fn := sym.Func; fn.Called && !fn.Defined {
			c.report(diag.SemaFunctionNotDefined, sym.Span, "function %q is called but never defined", fn.Name)
		}
	}
	if name := c.module.PatchConstantFunc; name != "" && !c.definedFunction(name) {
		c.report(diag.SemaFunctionNotDefined, source.Span{}, "patch constant function %q not found", name)
	}

	c.assignLocations()
	if c.globals != nil {
		if _, err := c.layout.Block(c.globals.Type.Struct, layout.RulesCBuffer); err != nil {
			c.report(diag.SemaBadLayout, c.globals.Span, "%v", err)
		}
	}
	if !c.table.Balanced() {
		c.report(diag.SemaError, source.Span{}, "internal error: scope stack not balanced at end of unit")
	}
	if err := c.table.Validate(); err != nil {
		c.report(diag.SemaError, source.Span{}, "internal error: %v", err)
	}

	c.appendLinkerObjects()
	c.pass.End(fmt.Sprintf("errors=%d warnings=%d", c.errors, c.warnings))
	return c.result()
}

func (c *Context) result() Result {
	res := Result{
		Module:     c.module,
		EntryPoint: c.entry,
		Table:      c.table,
		Errors:     c.errors,
		Warnings:   c.warnings,
	}
	for _, id := range c.table.Promoted() {
		if sym := c.table.Get(id); sym != nil {
			res.Linkage = append(res.Linkage, sym)
		}
	}
	return res
}

func (c *Context) definedFunction(name string) bool {
	for _, cand := range c.table.FindCandidates(name) {
		if cand.Func != nil && cand.Func.Defined {
			return true
		}
	}
	return false
}

// assignLocations numbers stage inputs and outputs that have neither a
// builtin role nor an explicit location, skipping slots already taken.
func (c *Context) assignLocations() {
	used := map[types.Storage]map[int]bool{
		types.VaryingIn:  {},
		types.VaryingOut: {},
	}
	var pending []*types.Type
	for _, obj := range c.module.LinkerObjects {
		t := obj.Type()
		q := t.Qualifier
		if !q.Storage.IsIO() || q.Builtin != types.BuiltinNone {
			continue
		}
		if loc, ok := q.Layout(types.LayLocation); ok {
			for i := range ioSlots(t) {
				used[q.Storage][loc+i] = true
			}
			continue
		}
		pending = append(pending, t)
	}
	next := map[types.Storage]int{}
	for _, t := range pending {
		s := t.Qualifier.Storage
		n := ioSlots(t)
		loc := next[s]
		for !freeRun(used[s], loc, n) {
			loc++
		}
		t.Qualifier.SetLayout(types.LayLocation, loc)
		for i := range n {
			used[s][loc+i] = true
		}
		next[s] = loc + n
	}
}

func freeRun(used map[int]bool, at, n int) bool {
	for i := range n {
		if used[at+i] {
			return false
		}
	}
	return true
}

// ioSlots is the number of locations a stage variable occupies.
func ioSlots(t *types.Type) int {
	n := 1
	switch {
	case t.IsStruct():
		n = 0
		for _, m := range t.Struct.Members {
			n += ioSlots(m.Type)
		}
	case t.IsMatrix():
		n = t.MatrixCols
	}
	if t.Basic.Is64() && t.VectorSize > 2 {
		n *= 2
	}
	if t.IsArray() {
		n *= t.Arrays.CumulativeSize()
	}
	return n
}

// appendLinkerObjects closes the tree with the list of linker objects.
func (c *Context) appendLinkerObjects() {
	if len(c.module.LinkerObjects) == 0 {
		return
	}
	objs := c.b.NewAggregate(ir.OpLinkerObjects, types.NewVoid(), source.Span{})
	for _, sym := range c.module.LinkerObjects {
		objs.Seq = append(objs.Seq, sym)
	}
	root := c.module.Root
	if agg, ok := root.(*ir.Aggregate); ok && agg.Op == ir.OpSequence {
		agg.Seq = append(agg.Seq, objs)
		return
	}
	seq := c.b.NewAggregate(ir.OpSequence, types.NewVoid(), source.Span{})
	if root != nil {
		seq.Seq = append(seq.Seq, root)
	}
	seq.Seq = append(seq.Seq, objs)
	c.b.SetTreeRoot(seq)
}
