package sema

import (
	"fmt"

	"hlslc/internal/builtins"
	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/layout"
	"hlslc/internal/parser"
	"hlslc/internal/source"
	"hlslc/internal/symbols"
	"hlslc/internal/trace"
	"hlslc/internal/types"
)

var _ parser.Semantics = (*Context)(nil)

// DefaultEntryPoint is the entry point name used when Options leave it empty.
const DefaultEntryPoint = "main"

// Resources are the per-session implementation limits. They never change
// after New.
type Resources struct {
	MaxTexelOffset          int
	MinTexelOffset          int
	MaxClipDistances        int
	MaxCullDistances        int
	MaxDrawBuffers          int
	MaxGeometryOutVertices  int
	MaxPatchVertices        int
	MaxComputeWorkGroupSize [3]int
}

// DefaultResources mirrors the limits of a D3D11 class device.
func DefaultResources() Resources {
	return Resources{
		MaxTexelOffset:          7,
		MinTexelOffset:          -8,
		MaxClipDistances:        8,
		MaxCullDistances:        8,
		MaxDrawBuffers:          8,
		MaxGeometryOutVertices:  256,
		MaxPatchVertices:        32,
		MaxComputeWorkGroupSize: [3]int{1024, 1024, 64},
	}
}

// BindingShifts are added to register bindings per register class.
type BindingShifts struct {
	B, T, S, U int
}

// Options configure one compile session.
type Options struct {
	Reporter   diag.Reporter
	Tracer     trace.Tracer
	Stage      ir.Stage
	EntryPoint string
	Resources  Resources
	Shifts     BindingShifts
	// FlattenUniformArrays splits uniform arrays into one variable per element.
	FlattenUniformArrays bool
	// DefaultRowMajor applies to matrices without an explicit packing.
	DefaultRowMajor bool
	// TraceParent is the id of the enclosing driver span.
	TraceParent uint64
	Hints       symbols.Hints
}

// Result is what a finished session produced.
type Result struct {
	Module     *ir.Module
	EntryPoint *symbols.Function
	Table      *symbols.Table
	// Linkage lists promoted symbols: interstage I/O and global resources.
	Linkage  []*symbols.Symbol
	Errors   int
	Warnings int
}

// Context is the semantic engine of one session. It implements
// parser.Semantics; all IR is built through it.
type Context struct {
	opts     Options
	reporter diag.Reporter
	tracer   trace.Tracer
	pass     *trace.Span

	table  *symbols.Table
	module *ir.Module
	b      *ir.Builder
	layout *layout.LayoutEngine

	namespaces []string
	loopDepth  int
	switches   []*switchState
	fn         *funcState
	entry      *symbols.Function

	// $Global собирает неупакованные глобальные uniform
	globals   *symbols.Symbol
	flattened map[ir.SymbolID]*flattenData
	split     map[ir.SymbolID]*splitData
	counters  map[ir.SymbolID]*symbols.Symbol
	initLists map[*ir.Aggregate]bool
	warned    map[source.Span]bool
	// индекс элемента массива split-переменной, ждущий обращения к полю
	splitIndex map[*ir.Symbol]ir.Typed
	functions  []*symbols.Symbol

	pendingInput  []pendingPrim
	pendingOutput []pendingPrim

	nextInput  int
	nextOutput int
	tmpCount   int

	errors   int
	warnings int
	finished bool
}

// New creates a session context.
func New(opts Options) *Context {
	if opts.EntryPoint == "" {
		opts.EntryPoint = DefaultEntryPoint
	}
	if opts.Resources == (Resources{}) {
		opts.Resources = DefaultResources()
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	c := &Context{
		opts:      opts,
		reporter:  opts.Reporter,
		tracer:    opts.Tracer,
		table:     symbols.NewTable(opts.Hints, builtins.Lookup),
		module:    ir.NewModule(opts.Stage),
		layout:    layout.New(opts.DefaultRowMajor),
		flattened: make(map[ir.SymbolID]*flattenData),
		split:     make(map[ir.SymbolID]*splitData),
		counters:  make(map[ir.SymbolID]*symbols.Symbol),
		initLists: make(map[*ir.Aggregate]bool),
		warned:    make(map[source.Span]bool),

		splitIndex: make(map[*ir.Symbol]ir.Typed),
	}
	c.b = ir.NewBuilder(c.module)
	c.b.Warn = func(sp source.Span, msg string) {
		c.warn(diag.SemaImplicitTruncation, sp, "%s", msg)
	}
	c.pass = trace.Begin(c.tracer, trace.ScopePass, "sema", opts.TraceParent)
	return c
}

// Table exposes the symbol table, mostly for tests and dumps.
func (c *Context) Table() *symbols.Table { return c.table }

// Module is the module being built.
func (c *Context) Module() *ir.Module { return c.module }

// Errors is the number of semantic errors reported so far.
func (c *Context) Errors() int { return c.errors }

func (c *Context) report(code diag.Code, sp source.Span, format string, args ...any) {
	c.errors++
	msg := fmt.Sprintf(format, args...)
	if b := diag.ReportError(c.reporter, code, sp, msg); b != nil {
		b.Emit()
	}
}

func (c *Context) reportWithNote(code diag.Code, sp source.Span, noteSpan source.Span, note string, format string, args ...any) {
	c.errors++
	msg := fmt.Sprintf(format, args...)
	if b := diag.ReportError(c.reporter, code, sp, msg); b != nil {
		b.WithNote(noteSpan, note).Emit()
	}
}

func (c *Context) warn(code diag.Code, sp source.Span, format string, args ...any) {
	c.warnings++
	msg := fmt.Sprintf(format, args...)
	if b := diag.ReportWarning(c.reporter, code, sp, msg); b != nil {
		b.Emit()
	}
}

func (c *Context) notImplemented(code diag.Code, sp source.Span, what string) {
	c.report(code, sp, "not implemented: %s", what)
}

// newTemp allocates a compiler temporary; its name never clashes with user names.
func (c *Context) newTemp(t *types.Type, sp source.Span) *symbols.Symbol {
	c.tmpCount++
	tt := t.Clone()
	tt.Qualifier = types.Qualifier{}
	return c.table.NewVariable(fmt.Sprintf("@tmp%d", c.tmpCount), tt, sp)
}

// ref builds a reference to a variable symbol, folding constants and
// resolving promoted block members.
func (c *Context) ref(sym *symbols.Symbol, sp source.Span) ir.Typed {
	if sym.IsConst() {
		return c.b.NewConstant(sym.Const, sym.Type, sp)
	}
	if sym.IsMember() {
		container := c.table.Get(sym.Container)
		base := c.b.NewSymbol(container.ID, container.Name, container.Type, sp)
		return c.b.AddIndex(ir.OpIndexDirectStruct, base, c.b.ConstInt(int64(sym.MemberIndex), sp), sp)
	}
	return c.b.NewSymbol(sym.ID, sym.Name, sym.Type, sp)
}

func (c *Context) zero(t *types.Type, sp source.Span) ir.Typed {
	if t == nil || t.IsVoid() || t.IsOpaque() || t.IsStruct() || t.IsArray() {
		return c.b.ConstFloat(0, sp)
	}
	n := t.ComponentCount()
	vals := make([]types.ConstUnion, n)
	for i := range vals {
		vals[i] = types.ConstDouble(0).Convert(t.Basic)
	}
	return c.b.NewConstant(vals, t, sp)
}

func constIntValue(n ir.Node) (int64, bool) {
	k, ok := ir.AsConstant(n)
	if !ok || len(k.Values) != 1 || !k.Type().IsScalarOrVec1() {
		return 0, false
	}
	if !k.Type().Basic.IsInteger() && k.Type().Basic != types.Bool {
		return 0, false
	}
	return k.Values[0].Int64(), true
}
