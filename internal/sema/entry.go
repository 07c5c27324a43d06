package sema

import (
	"strconv"
	"strings"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/parser"
	"hlslc/internal/source"
	"hlslc/internal/symbols"
	"hlslc/internal/types"
)

// beginEntryPoint turns the entry point's parameters into stage inputs and
// outputs, creates the return-value output and applies the stage attributes.
func (c *Context) beginEntryPoint(sp source.Span, fs *funcState, attrs parser.Attributes) {
	fn := fs.fn
	fn.EntryPoint = true
	c.entry = fn
	c.module.EntryPoint = fn.Name
	c.module.EntryPointMangled = fn.Mangled

	for i := range fn.Params {
		p := &fn.Params[i]
		t := p.Type.Clone()
		q := &t.Qualifier
		switch {
		case q.Storage == types.Uniform:
			c.declareUniform(p.Span, p.Name, t)
			continue
		case t.Object.IsStream():
			q.Storage = types.VaryingOut
		case fn.Direction(i) == types.InOut:
			c.warn(diag.SemaQualifierConflict, p.Span, "inout entry point parameter %q is treated as an output", p.Name)
			q.Storage = types.VaryingOut
		case fn.Direction(i) == types.Out:
			q.Storage = types.VaryingOut
		default:
			q.Storage = types.VaryingIn
		}
		if p.Name == "" {
			p.Name = "@param" + strconv.Itoa(i)
		}
		sym, ok := c.table.Insert(symbols.Symbol{Kind: symbols.SymbolVariable, Name: p.Name, Type: t, Span: p.Span})
		if !ok {
			c.reportWithNote(diag.SemaRedefinition, p.Span, sym.Span, "previous declaration", "redefinition of parameter %q", p.Name)
			continue
		}
		c.declareStageIO(sym)
	}

	if !fn.Return.IsVoid() {
		t := fn.Return.Clone()
		t.Qualifier.Storage = types.VaryingOut
		fs.output = c.table.NewVariable(entryOutputName, t, sp)
		c.declareStageIO(fs.output)
	}

	for _, p := range c.pendingInput {
		if !c.module.SetInputPrimitive(p.prim) {
			c.report(diag.SemaBadShaderStage, p.span, "input primitive %s conflicts with %s", p.prim, c.module.InputPrimitive)
		}
	}
	for _, p := range c.pendingOutput {
		if !c.module.SetOutputPrimitive(p.prim) {
			c.report(diag.SemaBadShaderStage, p.span, "output primitive %s conflicts with %s", p.prim, c.module.OutputPrimitive)
		}
	}
	c.applyEntryAttributes(attrs)
}

// declareStageIO promotes an interstage variable and decides how it is
// linked: whole, flattened into leaves, or with builtins split off.
func (c *Context) declareStageIO(sym *symbols.Symbol) {
	t := sym.Type
	c.table.Promote(sym.ID)
	if d := t.Qualifier.Depth; d != types.DepthAny && t.Qualifier.Storage == types.VaryingOut {
		c.module.Depth = d
	}
	switch {
	case t.Object.IsStream():
		// Append пишет в поток поэлементно
		if t.IsStruct() && t.ContainsBuiltin() {
			c.splitVariable(sym, true)
			return
		}
	case c.arrayedIO(t):
		if t.ContainsBuiltin() && t.Element().IsStruct() {
			c.splitVariable(sym, true)
			return
		}
	case c.flattensIO(t):
		c.flattenVariable(sym, true)
		return
	case t.IsStruct() && t.ContainsBuiltin():
		c.splitVariable(sym, true)
		return
	}
	c.module.AddLinkerObject(c.b.NewSymbol(sym.ID, sym.Name, sym.Type, sym.Span))
}

// arrayedIO reports per-vertex arrays of geometry and tessellation stages.
func (c *Context) arrayedIO(t *types.Type) bool {
	if !t.IsArray() {
		return false
	}
	switch c.opts.Stage {
	case ir.StageGeometry, ir.StageHull, ir.StageDomain:
		return t.Qualifier.Storage == types.VaryingIn || c.opts.Stage == ir.StageHull
	}
	return false
}

// flattensIO limits flattening to the interfaces that cannot carry
// structs: vertex inputs and fragment outputs.
func (c *Context) flattensIO(t *types.Type) bool {
	s := t.Qualifier.Storage
	if !(s == types.VaryingIn && c.opts.Stage == ir.StageVertex) && !(s == types.VaryingOut && c.opts.Stage == ir.StageFragment) {
		return false
	}
	return c.shouldFlatten(t, s, true)
}

func (c *Context) applyEntryAttributes(attrs parser.Attributes) {
	for _, a := range attrs {
		if a.Namespace != "" {
			continue
		}
		switch strings.ToLower(a.Name) {
		case "numthreads":
			for i := range 3 {
				v, ok := c.intAttrArg(a, i)
				if !ok {
					break
				}
				if v < 1 || v > c.opts.Resources.MaxComputeWorkGroupSize[i] {
					c.report(diag.SemaBadAttribute, a.Span, "numthreads dimension %d is %d, want 1..%d", i, v, c.opts.Resources.MaxComputeWorkGroupSize[i])
					continue
				}
				c.module.SetLocalSize(i, v)
			}
		case "maxvertexcount":
			if v, ok := c.intAttrArg(a, 0); ok {
				if v < 1 || v > c.opts.Resources.MaxGeometryOutVertices {
					c.report(diag.SemaBadAttribute, a.Span, "maxvertexcount %d out of range 1..%d", v, c.opts.Resources.MaxGeometryOutVertices)
				} else if !c.module.SetVertices(v) {
					c.report(diag.SemaBadAttribute, a.Span, "maxvertexcount %d conflicts with %d", v, c.module.Vertices)
				}
			}
		case "outputcontrolpoints":
			if v, ok := c.intAttrArg(a, 0); ok {
				if v < 1 || v > c.opts.Resources.MaxPatchVertices {
					c.report(diag.SemaBadAttribute, a.Span, "outputcontrolpoints %d out of range 1..%d", v, c.opts.Resources.MaxPatchVertices)
				} else if !c.module.SetVertices(v) {
					c.report(diag.SemaBadAttribute, a.Span, "outputcontrolpoints %d conflicts with %d", v, c.module.Vertices)
				}
			}
		case "instance":
			if v, ok := c.intAttrArg(a, 0); ok && v > 0 {
				c.module.Invocations = v
			}
		case "domain":
			c.applyDomain(a)
		case "partitioning":
			s, _ := stringArg(a, 0)
			switch strings.ToLower(s) {
			case "integer", "pow2":
				c.module.Spacing = ir.SpacingEqual
			case "fractional_even":
				c.module.Spacing = ir.SpacingFractionalEven
			case "fractional_odd":
				c.module.Spacing = ir.SpacingFractionalOdd
			default:
				c.report(diag.SemaBadAttribute, a.Span, "unknown partitioning %q", s)
			}
		case "outputtopology":
			s, _ := stringArg(a, 0)
			switch strings.ToLower(s) {
			case "point":
				c.module.PointMode = true
			case "line":
			case "triangle_cw":
				c.module.Order = ir.OrderCW
			case "triangle_ccw":
				c.module.Order = ir.OrderCCW
			default:
				c.report(diag.SemaBadAttribute, a.Span, "unknown output topology %q", s)
			}
		case "patchconstantfunc":
			s, ok := stringArg(a, 0)
			if !ok || s == "" {
				c.report(diag.SemaBadAttribute, a.Span, "patchconstantfunc expects a function name")
				continue
			}
			c.module.PatchConstantFunc = s
		case "earlydepthstencil":
			c.module.EarlyFragment = true
		case "maxtessfactor", "clipplanes", "fastopt":
		default:
			c.warnAttribute(a, "attribute %q has no effect on an entry point", a.Name)
		}
	}
}

func (c *Context) applyDomain(a parser.Attribute) {
	s, _ := stringArg(a, 0)
	var prim ir.Primitive
	switch strings.ToLower(s) {
	case "tri":
		prim = ir.PrimTriangles
	case "quad":
		prim = ir.PrimQuads
	case "isoline":
		prim = ir.PrimIsolines
	default:
		c.report(diag.SemaBadAttribute, a.Span, "unknown domain %q", s)
		return
	}
	var ok bool
	if c.opts.Stage == ir.StageDomain {
		ok = c.module.SetInputPrimitive(prim)
	} else {
		ok = c.module.SetOutputPrimitive(prim)
	}
	if !ok {
		c.report(diag.SemaBadAttribute, a.Span, "domain %q conflicts with an earlier primitive", s)
	}
}
