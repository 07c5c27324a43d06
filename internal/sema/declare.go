package sema

import (
	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/layout"
	"hlslc/internal/source"
	"hlslc/internal/symbols"
	"hlslc/internal/types"
)

// globalBlockName is the implicit constant buffer of loose global uniforms.
const globalBlockName = "$Global"

// DeclareVariable binds one declarator. The result is the initializer
// assignment, or nil when nothing has to execute.
func (c *Context) DeclareVariable(sp source.Span, name string, t *types.Type, init ir.Typed) ir.Node {
	if t.IsVoid() {
		c.report(diag.SemaTypeMismatch, sp, "variable %q cannot have type void", name)
		return nil
	}
	q := &t.Qualifier
	global := c.table.AtGlobalLevel()
	if !global {
		if q.Storage == types.Uniform {
			c.report(diag.SemaQualifierConflict, sp, "local variable %q cannot be uniform", name)
			q.Storage = types.Temporary
		}
		q.ClearInterstage()
	}

	// неудачный инициализатор отбрасывается, сама переменная объявляется
	badInit := false
	if init != nil {
		init = c.convertInitializer(sp, t, c.rvalue(init))
		badInit = init == nil
	}
	if t.IsImplicitlySizedArray() {
		if !badInit {
			c.report(diag.SemaImplicitArraySize, sp, "array %q needs an explicit size or an initializer", name)
		}
		t.Arrays.SetOuterSize(1)
	}

	if global {
		switch q.Storage {
		case types.Uniform:
			if init != nil {
				c.warn(diag.SemaBadInitializer, sp, "initializer of uniform %q is ignored", name)
			}
			c.declareUniform(sp, name, t)
			return nil
		case types.Const:
			if init == nil && !badInit {
				// const без значения ведёт себя как uniform
				q.Storage = types.Uniform
				c.declareUniform(sp, name, t)
				return nil
			}
		}
	}

	sym, ok := c.table.Insert(symbols.Symbol{Kind: symbols.SymbolVariable, Name: name, Type: t, Span: sp})
	if !ok {
		c.reportWithNote(diag.SemaRedefinition, sp, sym.Span, "previous declaration", "redefinition of %q", name)
		return nil
	}
	if global && (q.Storage == types.Shared || q.Storage == types.Global) {
		c.table.Promote(sym.ID)
	}
	if init == nil {
		return nil
	}
	if q.Storage == types.Const {
		if k, ok := ir.AsConstant(init); ok {
			sym.Const = k.Values
			return nil
		}
	}
	assign := c.b.AddAssign(ir.OpAssign, c.ref(sym, sp), init, sp)
	if assign == nil {
		c.report(diag.SemaTypeMismatch, sp, "cannot initialize %s with %s", t, init.Type())
		return nil
	}
	return assign
}

// declareUniform binds a global uniform: opaque values and structs holding
// them become resources of their own, everything else joins $Global.
func (c *Context) declareUniform(sp source.Span, name string, t *types.Type) {
	if t.IsOpaque() || t.ContainsOpaque() {
		sym, ok := c.table.Insert(symbols.Symbol{Kind: symbols.SymbolVariable, Name: name, Type: t, Span: sp})
		if !ok {
			c.reportWithNote(diag.SemaRedefinition, sp, sym.Span, "previous declaration", "redefinition of %q", name)
			return
		}
		c.table.Promote(sym.ID)
		if c.shouldFlatten(t, types.Uniform, true) {
			c.flattenVariable(sym, true)
			return
		}
		c.module.AddLinkerObject(c.b.NewSymbol(sym.ID, sym.Name, sym.Type, sp))
		return
	}

	g := c.globalBlock(sp)
	def := g.Type.Struct
	mt := t.Clone()
	mt.Qualifier.Storage = types.Temporary
	mt.Qualifier.Semantic = ""
	mt.Qualifier.ClearLayout(types.LayBinding)
	mt.Qualifier.ClearLayout(types.LaySet)
	sym, ok := c.table.Insert(symbols.Symbol{
		Kind:        symbols.SymbolVariable,
		Name:        name,
		Type:        t,
		Span:        sp,
		Container:   g.ID,
		MemberIndex: len(def.Members),
	})
	if !ok {
		c.reportWithNote(diag.SemaRedefinition, sp, sym.Span, "previous declaration", "redefinition of %q", name)
		return
	}
	def.Members = append(def.Members, types.Member{Name: name, Type: mt, Span: sp})
}

func (c *Context) globalBlock(sp source.Span) *symbols.Symbol {
	if c.globals != nil {
		return c.globals
	}
	t := types.NewStruct(&types.StructDef{Name: globalBlockName}, types.Block)
	t.TypeName = globalBlockName
	t.Qualifier.Storage = types.Uniform
	t.Object = types.ObjConstantBuffer
	c.globals = c.table.NewVariable(globalBlockName, t, sp)
	c.link(c.globals)
	return c.globals
}

// DeclareBlock binds a cbuffer, tbuffer or resource buffer. Members of a
// nameless block are visible as globals.
func (c *Context) DeclareBlock(sp source.Span, t *types.Type, name string) {
	if t.Basic != types.Block || t.Struct == nil {
		c.report(diag.SemaTypeMismatch, sp, "%s is not a block type", t)
		return
	}
	switch t.Object {
	case types.ObjNone, types.ObjConstantBuffer, types.ObjTextureBuffer:
		c.checkStructMembers(t.Struct)
		if _, err := c.layout.Block(t.Struct, layout.RulesCBuffer); err != nil {
			c.report(diag.SemaBadLayout, sp, "%v", err)
		}
	}

	if name == "" {
		block := c.table.NewVariable(t.Struct.Name, t, sp)
		c.link(block)
		for i, m := range t.Struct.Members {
			mt := m.Type.Clone()
			mt.Qualifier.Storage = t.Qualifier.Storage
			prev, ok := c.table.Insert(symbols.Symbol{
				Kind:        symbols.SymbolVariable,
				Name:        m.Name,
				Type:        mt,
				Span:        m.Span,
				Container:   block.ID,
				MemberIndex: i,
			})
			if !ok {
				c.reportWithNote(diag.SemaRedefinition, m.Span, prev.Span, "previous declaration", "redefinition of %q", m.Name)
			}
		}
		return
	}

	sym, ok := c.table.Insert(symbols.Symbol{Kind: symbols.SymbolVariable, Name: name, Type: t, Span: sp})
	if !ok {
		c.reportWithNote(diag.SemaRedefinition, sp, sym.Span, "previous declaration", "redefinition of %q", name)
		return
	}
	c.link(sym)
	if t.Object.HasCounter() {
		c.counters[sym.ID] = c.declareCounter(sp, sym)
	}
}

// declareCounter creates the hidden atomic counter of an append, consume
// or read-write structured buffer.
func (c *Context) declareCounter(sp source.Span, buf *symbols.Symbol) *symbols.Symbol {
	def := &types.StructDef{
		Name:    buf.Name + counterSuffix,
		Members: []types.Member{{Name: counterSuffix, Type: types.NewScalar(types.Uint), Span: sp}},
	}
	t := types.NewStruct(def, types.Block)
	t.Object = types.ObjRWStructuredBuffer
	t.Qualifier.Storage = types.Buffer
	if set, ok := buf.Type.Qualifier.Layout(types.LaySet); ok {
		t.Qualifier.SetLayout(types.LaySet, set)
	}
	counter := c.table.NewVariable(buf.Name+counterSuffix, t, sp)
	c.link(counter)
	return counter
}

// HandleInitializerList keeps a brace list unconverted until the declared
// type is known.
func (c *Context) HandleInitializerList(sp source.Span, elems []ir.Typed) ir.Typed {
	seq := make([]ir.Node, 0, len(elems))
	for _, e := range elems {
		seq = append(seq, c.rvalue(e))
	}
	agg := c.b.NewAggregate(ir.OpNull, types.NewVoid(), sp, seq...)
	c.initLists[agg] = true
	return agg
}

func (c *Context) asInitList(n ir.Node) (*ir.Aggregate, bool) {
	agg, ok := n.(*ir.Aggregate)
	if !ok || !c.initLists[agg] {
		return nil, false
	}
	return agg, true
}

// convertInitializer converts init to t, sizing an implicit outer array
// dimension from the initializer. Errors are reported here.
func (c *Context) convertInitializer(sp source.Span, t *types.Type, init ir.Typed) ir.Typed {
	if list, ok := c.asInitList(init); ok {
		return c.convertInitList(sp, t, list)
	}
	it := init.Type()
	if t.IsImplicitlySizedArray() && it.IsSizedArray() {
		t.Arrays.SetOuterSize(it.OuterArraySize())
	}
	conv := c.b.AddConversion(t, init)
	if conv == nil {
		c.report(diag.SemaTypeMismatch, sp, "cannot convert initializer of type %s to %s", it, t)
		return nil
	}
	return conv
}

// convertInitList first matches the list structurally (one entry per
// member, element, column or component); when that fails the list is read
// as a flat queue of scalar components.
func (c *Context) convertInitList(sp source.Span, t *types.Type, list *ir.Aggregate) ir.Typed {
	if n, ok := c.structuredInit(sp, t, list); ok {
		return n
	}
	if t.ContainsOpaque() {
		c.report(diag.SemaBadInitializer, sp, "cannot initialize opaque type %s from a list", t)
		return nil
	}
	var queue []ir.Typed
	for _, e := range list.Seq {
		queue = c.components(sp, e.(ir.Typed), queue)
	}
	if t.IsImplicitlySizedArray() {
		per := t.Element().ComponentCount()
		if per == 0 || len(queue) == 0 || len(queue)%per != 0 {
			c.report(diag.SemaBadInitializer, sp, "%d initializer components do not fill whole elements of %s", len(queue), t)
			return nil
		}
		t.Arrays.SetOuterSize(len(queue) / per)
	}
	need := t.ComponentCount()
	switch {
	case len(queue) < need:
		c.report(diag.SemaBadInitializer, sp, "too few initializers for %s: want %d components, have %d", t, need, len(queue))
		return nil
	case len(queue) > need:
		c.report(diag.SemaBadInitializer, sp, "too many initializers for %s: want %d components, have %d", t, need, len(queue))
		return nil
	}
	n, _ := c.buildFromQueue(sp, t, queue)
	return n
}

func (c *Context) structuredInit(sp source.Span, t *types.Type, n ir.Typed) (ir.Typed, bool) {
	list, isList := c.asInitList(n)
	if !isList {
		if !ir.CanConvert(n.Type(), t) {
			return nil, false
		}
		if conv := c.b.AddConversion(t, n); conv != nil {
			return conv, true
		}
		return nil, false
	}
	elems := list.Seq
	var (
		parts []ir.Node
		rt    = t.Clone()
	)
	rt.Qualifier = types.Qualifier{}
	switch {
	case t.IsArray():
		if t.IsImplicitlySizedArray() {
			rt.Arrays.SetOuterSize(len(elems))
		}
		if len(elems) != rt.OuterArraySize() {
			return nil, false
		}
		et := rt.Element()
		for _, e := range elems {
			p, ok := c.structuredInit(sp, et, e.(ir.Typed))
			if !ok {
				return nil, false
			}
			parts = append(parts, p)
		}
		if t.IsImplicitlySizedArray() {
			t.Arrays.SetOuterSize(len(elems))
		}
	case t.IsStruct():
		if len(elems) != len(t.Struct.Members) {
			return nil, false
		}
		for i, e := range elems {
			p, ok := c.structuredInit(sp, t.Struct.Members[i].Type, e.(ir.Typed))
			if !ok {
				return nil, false
			}
			parts = append(parts, p)
		}
	case t.IsMatrix():
		switch len(elems) {
		case t.ComponentCount():
			for _, e := range elems {
				p, ok := c.structuredInit(sp, t.Component(), e.(ir.Typed))
				if !ok {
					return nil, false
				}
				parts = append(parts, p)
			}
		case t.MatrixCols:
			for _, e := range elems {
				p, ok := c.structuredInit(sp, t.Column(), e.(ir.Typed))
				if !ok {
					return nil, false
				}
				parts = append(parts, p)
			}
		default:
			return nil, false
		}
	case t.IsVector():
		if len(elems) != t.VectorSize {
			return nil, false
		}
		for _, e := range elems {
			p, ok := c.structuredInit(sp, t.Component(), e.(ir.Typed))
			if !ok {
				return nil, false
			}
			parts = append(parts, p)
		}
	case t.IsScalar():
		if len(elems) != 1 {
			return nil, false
		}
		return c.structuredInit(sp, t, elems[0].(ir.Typed))
	default:
		return nil, false
	}
	return c.constructAggregate(sp, rt, parts), true
}

func (c *Context) constructAggregate(sp source.Span, t *types.Type, parts []ir.Node) ir.Typed {
	agg := c.b.NewAggregate(ir.OpConstruct, t, sp, parts...)
	if folded := c.b.FoldConstructor(agg); folded != nil {
		return folded
	}
	return agg
}

// components appends the scalar components of n to queue in memory order:
// struct members, array elements, matrix rows, vector components.
func (c *Context) components(sp source.Span, n ir.Typed, queue []ir.Typed) []ir.Typed {
	if list, ok := c.asInitList(n); ok {
		for _, e := range list.Seq {
			queue = c.components(sp, e.(ir.Typed), queue)
		}
		return queue
	}
	t := n.Type()
	switch {
	case t.IsArray():
		for i := range t.OuterArraySize() {
			queue = c.components(sp, c.elementOf(sp, n, i), queue)
		}
	case t.IsStruct():
		for i := range t.Struct.Members {
			queue = c.components(sp, c.memberOf(sp, n, i), queue)
		}
	case t.IsMatrix():
		for i := range t.MatrixCols {
			queue = c.components(sp, c.b.AddIndex(ir.OpIndexDirect, n, c.b.ConstInt(int64(i), sp), sp), queue)
		}
	case t.IsVector():
		for i := range t.VectorSize {
			queue = append(queue, c.b.AddIndex(ir.OpVectorSwizzle, n, c.b.AddSwizzle([]int{i}, sp), sp))
		}
	default:
		queue = append(queue, n)
	}
	return queue
}

// buildFromQueue rebuilds a value of type t consuming scalars from queue.
func (c *Context) buildFromQueue(sp source.Span, t *types.Type, queue []ir.Typed) (ir.Typed, []ir.Typed) {
	rt := t.Clone()
	rt.Qualifier = types.Qualifier{}
	var parts []ir.Node
	switch {
	case t.IsArray():
		et := rt.Element()
		for range t.OuterArraySize() {
			var p ir.Typed
			p, queue = c.buildFromQueue(sp, et, queue)
			parts = append(parts, p)
		}
	case t.IsStruct():
		for _, m := range t.Struct.Members {
			var p ir.Typed
			p, queue = c.buildFromQueue(sp, m.Type, queue)
			parts = append(parts, p)
		}
	case t.IsScalar():
		x := c.b.ConvertBasic(t.Basic, queue[0])
		return x, queue[1:]
	default:
		for range t.ComponentCount() {
			parts = append(parts, c.b.ConvertBasic(t.Basic, queue[0]))
			queue = queue[1:]
		}
	}
	return c.constructAggregate(sp, rt, parts), queue
}
