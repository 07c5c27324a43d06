package sema

import (
	"fmt"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/source"
	"hlslc/internal/symbols"
	"hlslc/internal/types"
)

// flattenData is the offset tree of one flattened aggregate. Each tree
// level reserves one slot per struct member or array element; a slot holds
// the start of the child level, or, one step further for leaves, the index
// into members.
//
// struct S { float a; int b[2]; } flattens to offsets [2 3 0 5 6 1 2]
// with the leaves a, b[0], b[1].
type flattenData struct {
	offsets []int
	members []*symbols.Symbol
	storage types.Storage

	nextBinding  int
	nextLocation int
}

// splitData records an interstage struct whose builtin members were moved
// into their own variables.
type splitData struct {
	stripped *symbols.Symbol            // user members; nil when only builtins were declared
	builtins map[string]*symbols.Symbol // member path -> builtin variable
	paths    map[string][]int           // member path -> index chain inside stripped
	storage  types.Storage
}

// shouldFlatten decides whether an aggregate of the given storage is split
// into one variable per leaf.
func (c *Context) shouldFlatten(t *types.Type, storage types.Storage, topLevel bool) bool {
	switch storage {
	case types.VaryingIn, types.VaryingOut:
		return t.IsStruct() || t.IsSizedArray()
	case types.Uniform:
		return (t.IsSizedArray() && c.opts.FlattenUniformArrays && topLevel) ||
			(t.IsStruct() && t.ContainsOpaque())
	}
	return false
}

func (c *Context) link(sym *symbols.Symbol) {
	c.table.Promote(sym.ID)
	c.module.AddLinkerObject(c.b.NewSymbol(sym.ID, sym.Name, sym.Type, sym.Span))
}

// flattenVariable builds the offset tree of sym and creates its leaves.
func (c *Context) flattenVariable(sym *symbols.Symbol, link bool) *flattenData {
	q := sym.Type.Qualifier
	d := &flattenData{storage: q.Storage, nextBinding: -1, nextLocation: -1}
	if b, ok := q.Layout(types.LayBinding); ok {
		d.nextBinding = b
	}
	if l, ok := q.Layout(types.LayLocation); ok {
		d.nextLocation = l
	}
	c.flattenLevel(sym, sym.Type, d, sym.Name, link)
	c.flattened[sym.ID] = d
	return d
}

func (c *Context) flattenLevel(sym *symbols.Symbol, t *types.Type, d *flattenData, name string, link bool) int {
	if t.IsArray() {
		size := t.OuterArraySize()
		elem := t.Element()
		start := len(d.offsets)
		for range size {
			d.offsets = append(d.offsets, -1)
		}
		for i := range size {
			pos := c.addFlattenedMember(sym, elem, d, fmt.Sprintf("%s[%d]", name, i), link)
			d.offsets[start+i] = pos
		}
		return start
	}
	members := t.Struct.Members
	start := len(d.offsets)
	for range members {
		d.offsets = append(d.offsets, -1)
	}
	for i, m := range members {
		pos := c.addFlattenedMember(sym, m.Type, d, name+"."+m.Name, link)
		d.offsets[start+i] = pos
	}
	return start
}

func (c *Context) addFlattenedMember(sym *symbols.Symbol, t *types.Type, d *flattenData, name string, link bool) int {
	if c.shouldFlatten(t, d.storage, false) {
		return c.flattenLevel(sym, t, d, name, link)
	}
	outer := sym.Type.Qualifier
	mt := t.Clone()
	q := &mt.Qualifier
	q.Storage = outer.Storage
	q.Flags |= outer.Flags
	if set, ok := outer.Layout(types.LaySet); ok && !q.HasLayout(types.LaySet) {
		q.SetLayout(types.LaySet, set)
	}
	if d.nextBinding >= 0 {
		q.SetLayout(types.LayBinding, d.nextBinding)
		d.nextBinding++
	}
	if q.Builtin != types.BuiltinNone {
		// у builtin нет location
		q.ClearLayout(types.LayLocation)
	} else if d.nextLocation >= 0 {
		q.SetLayout(types.LayLocation, d.nextLocation)
		d.nextLocation += locationSlots(mt)
	}
	leaf := c.table.NewVariable(name, mt, sym.Span)
	d.offsets = append(d.offsets, len(d.members))
	d.members = append(d.members, leaf)
	if link {
		c.link(leaf)
	}
	return len(d.offsets) - 1
}

// locationSlots is the number of interface locations t occupies.
func locationSlots(t *types.Type) int {
	n := 1
	switch {
	case t.IsStruct():
		n = 0
		for _, m := range t.Struct.Members {
			n += locationSlots(m.Type)
		}
	case t.IsMatrix():
		n = t.MatrixCols
	case t.Basic.Is64() && t.VectorSize > 2:
		n = 2
	}
	if t.IsArray() {
		n *= max(t.Arrays.CumulativeSize(), 1)
	}
	return n
}

// flattenAccess dereferences member of a flattened symbol or of one of its
// shadows. The result is a leaf variable, or a shadow when deref is still
// an aggregate that was flattened.
func (c *Context) flattenAccess(sp source.Span, s *ir.Symbol, member int, deref *types.Type) ir.Typed {
	d := c.flattened[s.ID]
	subset := 0
	if s.Shadow {
		subset = s.Subset
	}
	if subset+member < 0 || subset+member >= len(d.offsets) {
		c.report(diag.SemaIndexOutOfRange, sp, "index %d out of range", member)
		return c.zero(deref, sp)
	}
	next := d.offsets[subset+member]
	if !c.shouldFlatten(deref, d.storage, false) {
		leaf := d.members[d.offsets[next]]
		return c.b.NewSymbol(leaf.ID, leaf.Name, leaf.Type, sp)
	}
	st := deref.Clone()
	st.Qualifier.Storage = d.storage
	sh := c.b.NewSymbol(s.ID, s.Name, st, sp)
	sh.Shadow = true
	sh.Subset = next
	return sh
}

// splitVariable moves the builtin members of an interstage struct into
// their own variables; the remaining members live in a stripped copy.
func (c *Context) splitVariable(sym *symbols.Symbol, link bool) *splitData {
	d := &splitData{
		builtins: make(map[string]*symbols.Symbol),
		paths:    make(map[string][]int),
		storage:  sym.Type.Qualifier.Storage,
	}
	base := sym.Type
	if base.IsArray() {
		base = base.Element()
		for base.IsArray() {
			base = base.Element()
		}
	}
	stripped := c.stripBuiltins(sym, base, "", nil, d, link)
	if stripped != nil {
		st := stripped.Clone()
		st.Arrays = sym.Type.Arrays.Clone()
		st.Qualifier = sym.Type.Qualifier
		st.Qualifier.Builtin = types.BuiltinNone
		d.stripped = c.table.NewVariable(sym.Name, st, sym.Span)
		if link {
			c.link(d.stripped)
		}
	}
	c.split[sym.ID] = d
	return d
}

func (c *Context) stripBuiltins(sym *symbols.Symbol, t *types.Type, prefix string, chain []int, d *splitData, link bool) *types.Type {
	def := &types.StructDef{Name: t.Struct.Name}
	for _, m := range t.Struct.Members {
		path := m.Name
		if prefix != "" {
			path = prefix + "." + m.Name
		}
		if m.Type.Qualifier.Builtin != types.BuiltinNone {
			bt := m.Type.Clone()
			bt.Qualifier.Storage = d.storage
			bt.Qualifier.Flags |= sym.Type.Qualifier.Flags
			bt.Qualifier.ClearLayout(types.LayLocation)
			if sym.Type.IsArray() {
				arr := sym.Type.Arrays.Clone()
				if bt.IsArray() {
					arr.AddInner(bt.Arrays)
				}
				bt.Arrays = arr
			}
			v := c.table.NewVariable(sym.Name+"."+path, bt, m.Span)
			d.builtins[path] = v
			if link {
				c.link(v)
			}
			continue
		}
		mt := m.Type
		idx := len(def.Members)
		if mt.IsStruct() && mt.ContainsBuiltin() {
			mt = c.stripBuiltins(sym, mt, path, append(append([]int(nil), chain...), idx), d, link)
			if mt == nil {
				continue
			}
		}
		def.Members = append(def.Members, types.Member{Name: m.Name, Type: mt, Span: m.Span})
		d.paths[path] = append(append([]int(nil), chain...), idx)
	}
	if len(def.Members) == 0 {
		return nil
	}
	st := t.Clone()
	st.Struct = def
	st.Arrays = nil
	return st
}

// splitMember resolves base.field where base is a split variable or one of
// its shadows.
func (c *Context) splitMember(sp source.Span, s *ir.Symbol, field string) ir.Typed {
	d := c.split[s.ID]
	st := s.Type()
	i := st.Struct.MemberIndex(field)
	if i < 0 {
		c.report(diag.SemaNoSuchMember, sp, "no member %q in %s", field, st)
		return c.zero(nil, sp)
	}
	mt := st.Struct.Members[i].Type
	path := field
	if s.Path != "" {
		path = s.Path + "." + field
	}
	index := c.splitIndex[s]
	if v, ok := d.builtins[path]; ok {
		r := c.ref(v, sp)
		if index != nil {
			r = c.indexValue(sp, r, index)
		}
		return r
	}
	if mt.IsStruct() && mt.ContainsBuiltin() {
		t := mt.Clone()
		t.Qualifier.Storage = d.storage
		sh := c.b.NewSymbol(s.ID, s.Name, t, sp)
		sh.Shadow = true
		sh.Path = path
		if index != nil {
			c.splitIndex[sh] = index
		}
		return sh
	}
	if d.stripped == nil {
		c.report(diag.SemaNoSuchMember, sp, "no member %q in %s", field, st)
		return c.zero(mt, sp)
	}
	r := c.ref(d.stripped, sp)
	if index != nil {
		r = c.indexValue(sp, r, index)
	}
	for _, k := range d.paths[path] {
		r = c.b.AddIndex(ir.OpIndexDirectStruct, r, c.b.ConstInt(int64(k), sp), sp)
	}
	return r
}

// splitElement indexes the outer array of a split variable.
func (c *Context) splitElement(sp source.Span, s *ir.Symbol, index ir.Typed) ir.Typed {
	t := s.Type().Element()
	t.Qualifier.Storage = c.split[s.ID].storage
	sh := c.b.NewSymbol(s.ID, s.Name, t, sp)
	sh.Shadow = true
	c.splitIndex[sh] = index
	return sh
}

// isAggregateShadow reports a reference to a flattened or split variable,
// or to a shadow of one.
func (c *Context) isAggregateShadow(n ir.Node) bool {
	s, ok := n.(*ir.Symbol)
	if !ok {
		return false
	}
	return s.Shadow || c.flattened[s.ID] != nil || c.split[s.ID] != nil
}

// memberOf is base.<member i> for any struct-typed base.
func (c *Context) memberOf(sp source.Span, base ir.Typed, i int) ir.Typed {
	t := base.Type()
	if s, ok := base.(*ir.Symbol); ok {
		switch {
		case c.flattened[s.ID] != nil:
			return c.flattenAccess(sp, s, i, t.Struct.Members[i].Type)
		case c.split[s.ID] != nil:
			return c.splitMember(sp, s, t.Struct.Members[i].Name)
		}
	}
	return c.b.AddIndex(ir.OpIndexDirectStruct, base, c.b.ConstInt(int64(i), sp), sp)
}

// elementOf is base[i] for any array-typed base.
func (c *Context) elementOf(sp source.Span, base ir.Typed, i int) ir.Typed {
	idx := c.b.ConstInt(int64(i), sp)
	if s, ok := base.(*ir.Symbol); ok {
		switch {
		case c.flattened[s.ID] != nil:
			return c.flattenAccess(sp, s, i, base.Type().Element())
		case c.split[s.ID] != nil && !s.Shadow:
			return c.splitElement(sp, s, idx)
		}
	}
	return c.b.AddIndex(ir.OpIndexDirect, base, idx, sp)
}

func (c *Context) subscript(sp source.Span, n ir.Typed, i int) ir.Typed {
	if n.Type().IsArray() {
		return c.elementOf(sp, n, i)
	}
	return c.memberOf(sp, n, i)
}

// rvalue rebuilds a whole flattened or split aggregate from its parts.
// Other values pass through.
func (c *Context) rvalue(n ir.Typed) ir.Typed {
	if n == nil || !c.isAggregateShadow(n) {
		return n
	}
	t := n.Type()
	if !t.IsStruct() && !t.IsArray() {
		return n
	}
	sp := n.Span()
	var parts []ir.Node
	if t.IsArray() {
		for i := range t.OuterArraySize() {
			parts = append(parts, c.rvalue(c.elementOf(sp, n, i)))
		}
	} else {
		for i := range t.Struct.Members {
			parts = append(parts, c.rvalue(c.memberOf(sp, n, i)))
		}
	}
	rt := t.Clone()
	rt.Qualifier = types.Qualifier{}
	agg := c.b.NewAggregate(ir.OpConstruct, rt, sp, parts...)
	if folded := c.b.FoldConstructor(agg); folded != nil {
		return folded
	}
	return agg
}

// memberwiseAssign copies r into l one member at a time wherever either
// side is flattened or split; untouched subtrees are copied whole.
func (c *Context) memberwiseAssign(sp source.Span, l, r ir.Typed) ir.Typed {
	if !c.isAggregateShadow(l) && !c.isAggregateShadow(r) {
		return c.b.AddAssign(ir.OpAssign, l, r, sp)
	}
	lt, rt := l.Type(), r.Type()
	if !lt.IsStruct() && !lt.IsArray() {
		return c.b.AddAssign(ir.OpAssign, l, r, sp)
	}
	if !lt.Equal(rt) {
		return nil
	}
	var seq ir.Node
	if !c.isAggregateShadow(r) && ir.BaseSymbol(r) == nil {
		tmp := c.newTemp(rt, sp)
		seq = c.b.AddAssign(ir.OpAssign, c.ref(tmp, sp), r, sp)
		r = c.ref(tmp, sp)
	}
	n := len(lt.Struct.Members)
	if lt.IsArray() {
		n = lt.OuterArraySize()
	}
	for i := range n {
		part := c.memberwiseAssign(sp, c.subscript(sp, l, i), c.subscript(sp, r, i))
		if part == nil {
			return nil
		}
		seq = c.b.GrowAggregate(seq, part, sp)
	}
	return c.b.SetAggregateOperator(seq, ir.OpSequence, types.NewVoid(), sp)
}
