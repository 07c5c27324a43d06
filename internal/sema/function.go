package sema

import (
	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/parser"
	"hlslc/internal/source"
	"hlslc/internal/symbols"
	"hlslc/internal/trace"
	"hlslc/internal/types"
)

// funcState is the function definition being parsed.
type funcState struct {
	fn     *symbols.Function
	sym    *symbols.Symbol
	entry  bool
	params []*symbols.Symbol
	// @entryPointOutput; return statements of the entry point assign it
	output *symbols.Symbol
	span   *trace.Span
}

// entryOutputName is the variable receiving the entry point return value.
const entryOutputName = "@entryPointOutput"

// FixParameter finishes the storage of a formal parameter.
func (c *Context) FixParameter(sp source.Span, t *types.Type) {
	q := &t.Qualifier
	switch q.Storage {
	case types.Const:
		q.Storage = types.ConstReadOnly
	case types.Temporary, types.Global:
		q.Storage = types.In
	}
	if t.Object == types.ObjInputPatch || t.Object == types.ObjOutputPatch {
		// патч дальше живёт как обычный массив контрольных точек
		t.Object = types.ObjNone
	}
}

// DefaultParameter converts a default argument value; it must fold to a constant.
func (c *Context) DefaultParameter(sp source.Span, t *types.Type, value ir.Typed) ir.Typed {
	if list, ok := c.asInitList(value); ok {
		value = c.convertInitList(sp, t.Unqualified(), list)
		if value == nil {
			return nil
		}
	}
	conv := c.b.AddConversion(t.Unqualified(), value)
	if conv == nil {
		c.report(diag.SemaBadDefaultArgument, sp, "cannot convert default value of type %s to %s", value.Type(), t)
		return nil
	}
	if !ir.IsConstant(conv) {
		c.report(diag.SemaBadDefaultArgument, sp, "default value must be a compile-time constant")
		return nil
	}
	return conv
}

// DeclareFunction binds a prototype.
func (c *Context) DeclareFunction(sp source.Span, fn *symbols.Function) {
	c.pendingInput, c.pendingOutput = nil, nil
	fn.Prototyped = true
	fn.Span = sp
	if prev := c.table.FindFunction(fn.Mangled); prev != nil {
		if !prev.Func.Return.Equal(fn.Return) {
			c.reportWithNote(diag.SemaRedefinition, sp, prev.Span, "previous declaration",
				"%q redeclared with a different return type", fn.Name)
		}
		return
	}
	c.insertFunction(sp, fn)
}

func (c *Context) insertFunction(sp source.Span, fn *symbols.Function) *symbols.Symbol {
	sym, ok := c.table.InsertGlobal(symbols.Symbol{Kind: symbols.SymbolFunction, Name: fn.Name, Type: fn.Return, Func: fn, Span: sp})
	if !ok {
		c.reportWithNote(diag.SemaRedefinition, sp, sym.Span, "previous declaration", "redefinition of %q", fn.Name)
		return nil
	}
	c.functions = append(c.functions, sym)
	return sym
}

// BeginFunction opens a definition: binds the function, opens its scope
// and declares the parameters. The entry point gets its parameters and
// return value turned into stage I/O.
func (c *Context) BeginFunction(sp source.Span, fn *symbols.Function, attrs parser.Attributes) {
	fs := &funcState{fn: fn}
	c.fn = fs
	fn.Span = sp

	sym := c.table.FindFunction(fn.Mangled)
	switch {
	case sym == nil:
		sym = c.insertFunction(sp, fn)
	case sym.Func.Defined:
		c.reportWithNote(diag.SemaFunctionRedefined, sp, sym.Span, "previous definition", "function %q already has a body", fn.Name)
	default:
		if !sym.Func.Return.Equal(fn.Return) {
			c.reportWithNote(diag.SemaRedefinition, sp, sym.Span, "previous declaration",
				"%q redeclared with a different return type", fn.Name)
		}
		prev := sym.Func
		fn.Called = prev.Called
		fn.Prototyped = true
		for i := range fn.Params {
			if fn.Params[i].Default == nil && i < len(prev.Params) {
				fn.Params[i].Default = prev.Params[i].Default
			}
		}
		sym.Func = fn
		sym.Span = sp
	}
	fn.Defined = true
	fs.sym = sym
	fs.entry = sym != nil && fn.Name == c.opts.EntryPoint && c.entry == nil
	fs.span = trace.Begin(c.tracer, trace.ScopeFunction, fn.Name, c.pass.ID())

	c.table.Push(symbols.ScopeFunction, sp)
	if fs.entry {
		c.beginEntryPoint(sp, fs, attrs)
	} else {
		c.checkStatementAttributes(attrs)
		c.declareParameters(fs)
	}
	c.pendingInput, c.pendingOutput = nil, nil
}

func (c *Context) declareParameters(fs *funcState) {
	fn := fs.fn
	fn.Return.Qualifier.Builtin = types.BuiltinNone
	for i := range fn.Params {
		p := &fn.Params[i]
		p.Type.Qualifier.Builtin = types.BuiltinNone
		if p.Name == "" {
			continue
		}
		sym, ok := c.table.Insert(symbols.Symbol{Kind: symbols.SymbolVariable, Name: p.Name, Type: p.Type, Span: p.Span})
		if !ok {
			c.reportWithNote(diag.SemaRedefinition, p.Span, sym.Span, "previous declaration", "redefinition of parameter %q", p.Name)
			continue
		}
		fs.params = append(fs.params, sym)
	}
}

// EndFunction closes the definition and builds its IR.
func (c *Context) EndFunction(sp source.Span, fn *symbols.Function, body ir.Node) ir.Node {
	fs := c.fn
	c.table.Pop()
	c.fn = nil
	c.pendingInput, c.pendingOutput = nil, nil
	if fs == nil {
		return nil
	}

	params := c.b.NewAggregate(ir.OpParameters, types.NewVoid(), sp)
	for _, p := range fs.params {
		params.Seq = append(params.Seq, c.b.NewSymbol(p.ID, p.Name, p.Type, p.Span))
	}
	def := c.b.NewAggregate(ir.OpFunction, fn.Return.Unqualified(), sp, params)
	if body != nil {
		def.Seq = append(def.Seq, c.asSequence(body, sp))
	} else {
		def.Seq = append(def.Seq, c.b.NewAggregate(ir.OpSequence, types.NewVoid(), sp))
	}
	def.Name = fn.Mangled
	def.UserDefined = true
	if fs.sym != nil {
		def.Callee = fs.sym.ID
	}
	fs.span.End("")
	return def
}

// asSequence finishes n as an OpSequence without re-wrapping one.
func (c *Context) asSequence(n ir.Node, sp source.Span) *ir.Aggregate {
	if agg, ok := n.(*ir.Aggregate); ok && agg.Op == ir.OpSequence {
		return agg
	}
	return c.b.SetAggregateOperator(n, ir.OpSequence, types.NewVoid(), sp)
}
