package sema

import (
	"strconv"
	"strings"

	"fortio.org/safecast"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/layout"
	"hlslc/internal/parser"
	"hlslc/internal/source"
	"hlslc/internal/types"
)

// MergeQualifier folds src into dst and reports every conflict.
func (c *Context) MergeQualifier(sp source.Span, dst *types.Qualifier, src types.Qualifier) {
	for _, conflict := range dst.Merge(src, types.MergeStrict) {
		c.report(diag.SemaQualifierConflict, sp, "%s", conflict)
	}
}

var semanticBuiltins = map[string]types.Builtin{
	"SV_POSITION":               types.BuiltinPosition,
	"SV_VERTEXID":               types.BuiltinVertexIndex,
	"SV_INSTANCEID":             types.BuiltinInstanceIndex,
	"SV_ISFRONTFACE":            types.BuiltinFrontFacing,
	"SV_PRIMITIVEID":            types.BuiltinPrimitiveID,
	"SV_SAMPLEINDEX":            types.BuiltinSampleID,
	"SV_COVERAGE":               types.BuiltinSampleMask,
	"SV_RENDERTARGETARRAYINDEX": types.BuiltinLayer,
	"SV_VIEWPORTARRAYINDEX":     types.BuiltinViewportIndex,
	"SV_GSINSTANCEID":           types.BuiltinInvocationID,
	"SV_OUTPUTCONTROLPOINTID":   types.BuiltinInvocationID,
	"SV_DOMAINLOCATION":         types.BuiltinTessCoord,
	"SV_TESSFACTOR":             types.BuiltinTessLevelOuter,
	"SV_INSIDETESSFACTOR":       types.BuiltinTessLevelInner,
	"SV_DISPATCHTHREADID":       types.BuiltinGlobalInvocationID,
	"SV_GROUPID":                types.BuiltinWorkGroupID,
	"SV_GROUPTHREADID":          types.BuiltinLocalInvocationID,
	"SV_GROUPINDEX":             types.BuiltinLocalInvocationIndex,
	"SV_DEPTH":                  types.BuiltinFragDepth,
	"SV_DEPTHGREATEREQUAL":      types.BuiltinFragDepth,
	"SV_DEPTHLESSEQUAL":         types.BuiltinFragDepth,
	"SV_STENCILREF":             types.BuiltinFragStencilRef,
	"SV_VIEWID":                 types.BuiltinViewIndex,
	"SV_BARYCENTRICS":           types.BuiltinBaryCoord,
	"PSIZE":                     types.BuiltinPointSize,
}

// splitSemantic separates the trailing semantic index: TEXCOORD3 -> TEXCOORD, 3.
func splitSemantic(s string) (string, int) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return s, 0
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil {
		return s, 0
	}
	return s[:i], n
}

// HandleSemantic records the semantic name and the builtin it implies.
// The parser hands the name upper-cased.
func (c *Context) HandleSemantic(sp source.Span, q *types.Qualifier, semantic string) {
	q.Semantic = semantic
	base, index := splitSemantic(semantic)
	switch base {
	case "SV_TARGET":
		// цвет фрагмента: только location, без builtin
		if index >= c.opts.Resources.MaxDrawBuffers {
			c.report(diag.SemaBadSemantic, sp, "render target index %d exceeds %d", index, c.opts.Resources.MaxDrawBuffers-1)
			return
		}
		q.SetLayout(types.LayLocation, index)
		return
	case "SV_CLIPDISTANCE":
		q.Builtin = types.BuiltinClipDistance
		return
	case "SV_CULLDISTANCE":
		q.Builtin = types.BuiltinCullDistance
		return
	}
	if b, ok := semanticBuiltins[semantic]; ok {
		q.Builtin = b
		switch semantic {
		case "SV_DEPTHGREATEREQUAL":
			q.Depth = types.DepthGreater
		case "SV_DEPTHLESSEQUAL":
			q.Depth = types.DepthLess
		}
		return
	}
	if strings.HasPrefix(semantic, "SV_") {
		c.warn(diag.SemaBadSemantic, sp, "unrecognized system value semantic %s", semantic)
	}
}

// HandleRegister applies register(profile, Xn[sub], spaceN).
func (c *Context) HandleRegister(sp source.Span, q *types.Qualifier, profile, desc string, subComponent int, space string) {
	if profile != "" {
		c.warn(diag.SemaBadRegister, sp, "ignoring shader profile %q", profile)
	}
	if desc == "" {
		c.report(diag.SemaBadRegister, sp, "expected register type")
		return
	}
	reg := 0
	if len(desc) > 1 {
		n, err := strconv.Atoi(desc[1:])
		if err != nil || n < 0 {
			c.report(diag.SemaBadRegister, sp, "expected register number after register type in %q", desc)
			return
		}
		reg = n
	}
	class := desc[0] | 0x20
	switch class {
	case 'c':
		// слот в глобальном константном буфере, 4 компоненты по 32 бита
		q.SetLayout(types.LayOffset, layout.PackOffset(reg, 0))
	case 'b', 't', 's', 'u':
		if !q.HasLayout(types.LayBinding) {
			q.SetLayout(types.LayBinding, reg+subComponent+c.bindingShift(class))
		}
	default:
		c.warn(diag.SemaBadRegister, sp, "ignoring unrecognized register type %q", desc[:1])
	}

	if space == "" || q.HasLayout(types.LaySet) {
		return
	}
	const prefix = "space"
	n, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(space), prefix))
	if !strings.HasPrefix(strings.ToLower(space), prefix) || err != nil || n < 0 {
		c.report(diag.SemaBadRegister, sp, "expected spaceN, got %q", space)
		return
	}
	q.SetLayout(types.LaySet, n)
}

func (c *Context) bindingShift(class byte) int {
	switch class {
	case 'b':
		return c.opts.Shifts.B
	case 't':
		return c.opts.Shifts.T
	case 's':
		return c.opts.Shifts.S
	case 'u':
		return c.opts.Shifts.U
	}
	return 0
}

// HandlePackOffset applies packoffset(cN.comp) as a byte offset.
func (c *Context) HandlePackOffset(sp source.Span, q *types.Qualifier, location, component string) {
	if location == "" || (location[0]|0x20) != 'c' {
		c.report(diag.SemaBadPackOffset, sp, "expected 'c' register in packoffset, got %q", location)
		return
	}
	if len(location) == 1 {
		return
	}
	reg, err := strconv.Atoi(location[1:])
	if err != nil || reg < 0 {
		c.report(diag.SemaBadPackOffset, sp, "expected number after 'c' in packoffset, got %q", location)
		return
	}
	comp := 0
	if component != "" {
		comp = strings.IndexByte("xyzw", component[0])
		if comp < 0 || len(component) > 1 {
			c.report(diag.SemaBadPackOffset, sp, "expected {x, y, z, w} for packoffset component, got %q", component)
			return
		}
	}
	q.SetLayout(types.LayOffset, layout.PackOffset(reg, comp))
}

var layoutValueFields = map[string]types.LayoutField{
	"location":               types.LayLocation,
	"component":              types.LayComponent,
	"binding":                types.LayBinding,
	"set":                    types.LaySet,
	"offset":                 types.LayOffset,
	"align":                  types.LayAlign,
	"index":                  types.LayIndex,
	"stream":                 types.LayStream,
	"xfb_buffer":             types.LayXfbBuffer,
	"xfb_offset":             types.LayXfbOffset,
	"xfb_stride":             types.LayXfbStride,
	"constant_id":            types.LaySpecConstantID,
	"input_attachment_index": types.LayInputAttachment,
}

var imageFormatNames = map[string]bool{
	"rgba32f": true, "rgba16f": true, "r32f": true, "rgba8": true, "rgba8snorm": true,
	"rg32f": true, "rg16f": true, "r11f_g11f_b10f": true, "r16f": true, "rgba16": true,
	"rgb10_a2": true, "rg16": true, "rg8": true, "r16": true, "r8": true,
	"rgba16snorm": true, "rg16snorm": true, "rg8snorm": true, "r16snorm": true, "r8snorm": true,
	"rgba32i": true, "rgba16i": true, "rgba8i": true, "r32i": true, "rg32i": true,
	"rg16i": true, "rg8i": true, "r16i": true, "r8i": true,
	"rgba32ui": true, "rgba16ui": true, "rgba8ui": true, "r32ui": true, "rgb10_a2ui": true,
	"rg32ui": true, "rg16ui": true, "rg8ui": true, "r16ui": true, "r8ui": true,
}

// SetLayoutQualifier applies one layout(id[=value]) entry.
func (c *Context) SetLayoutQualifier(sp source.Span, q *types.Qualifier, id string, value ir.Typed) {
	lower := strings.ToLower(id)
	if value == nil {
		switch {
		case lower == "row_major":
			q.Matrix = types.MatrixColumnMajor
		case lower == "column_major":
			q.Matrix = types.MatrixRowMajor
		case lower == "std140":
			q.Packing = types.PackingStd140
		case lower == "std430":
			q.Packing = types.PackingStd430
		case lower == "scalar":
			q.Packing = types.PackingScalar
		case lower == "push_constant":
			q.Flags |= types.FlagPushConstant
		case imageFormatNames[lower]:
			q.Format = lower
		default:
			c.report(diag.SemaBadLayout, sp, "unrecognized layout identifier %q, or qualifier requires assignment (e.g., binding = 4)", id)
		}
		return
	}
	field, ok := layoutValueFields[lower]
	if !ok {
		c.report(diag.SemaBadLayout, sp, "there is no such layout identifier taking an assigned value: %q", id)
		return
	}
	v, ok := constIntValue(value)
	if !ok {
		c.report(diag.SemaBadLayout, sp, "%s must be a constant integer expression", lower)
		return
	}
	if v < 0 {
		c.report(diag.SemaBadLayout, sp, "%s must be non-negative, got %d", lower, v)
		return
	}
	n, err := safecast.Conv[int32](v)
	if err != nil {
		c.report(diag.SemaBadLayout, sp, "%s is out of range: %d", lower, v)
		return
	}
	q.SetLayout(field, int(n))
	if field == types.LaySpecConstantID {
		q.Flags |= types.FlagSpecConstant
	}
}

// Атрибуты функций и операторов: разбираются в BeginFunction и в операторах.
var knownAttributes = map[string]bool{
	"allow_uav_condition": true, "branch": true, "call": true, "domain": true,
	"earlydepthstencil": true, "fastopt": true, "flatten": true, "forcecase": true,
	"instance": true, "loop": true, "maxtessfactor": true, "maxvertexcount": true,
	"numthreads": true, "outputcontrolpoints": true, "outputtopology": true,
	"partitioning": true, "patchconstantfunc": true, "unroll": true,
	"clipplanes": true,
}

var vkBuiltins = map[string]types.Builtin{
	"pointsize": types.BuiltinPointSize,
	"viewindex": types.BuiltinViewIndex,
}

// TransferAttributes applies [[vk::...]] declaration attributes to t.
func (c *Context) TransferAttributes(sp source.Span, attrs parser.Attributes, t *types.Type) {
	q := &t.Qualifier
	for _, a := range attrs {
		name := strings.ToLower(a.Name)
		ns := strings.ToLower(a.Namespace)
		if ns != "" && ns != "vk" {
			c.warnAttribute(a, "unrecognized attribute namespace %q", a.Namespace)
			continue
		}
		switch name {
		case "location", "constant_id", "input_attachment_index", "offset", "index":
			v, ok := c.intAttrArg(a, 0)
			if !ok {
				continue
			}
			q.SetLayout(layoutValueFields[name], v)
			if name == "constant_id" {
				q.Flags |= types.FlagSpecConstant
			}
		case "binding":
			if v, ok := c.intAttrArg(a, 0); ok {
				q.SetLayout(types.LayBinding, v)
			}
			if len(a.Args) > 1 {
				if v, ok := c.intAttrArg(a, 1); ok {
					q.SetLayout(types.LaySet, v)
				}
			}
		case "push_constant":
			q.Flags |= types.FlagPushConstant
		case "image_format":
			f, ok := stringArg(a, 0)
			if !ok || !imageFormatNames[strings.ToLower(f)] {
				c.warnAttribute(a, "unrecognized image format")
				continue
			}
			q.Format = strings.ToLower(f)
		case "builtin":
			f, _ := stringArg(a, 0)
			b, ok := vkBuiltins[strings.ToLower(f)]
			if !ok {
				c.warnAttribute(a, "unsupported builtin %q", f)
				continue
			}
			q.Builtin = b
		default:
			if ns == "" && knownAttributes[name] {
				continue
			}
			c.warnAttribute(a, "unrecognized attribute %q", a.Name)
		}
	}
}

// warnAttribute warns once per attribute occurrence; the parser may hand the
// same list over for several declarators.
func (c *Context) warnAttribute(a parser.Attribute, format string, args ...any) {
	if c.warned[a.Span] {
		return
	}
	c.warned[a.Span] = true
	c.warn(diag.SemaBadAttribute, a.Span, format, args...)
}

func (c *Context) intAttrArg(a parser.Attribute, i int) (int, bool) {
	if i >= len(a.Args) {
		c.warnAttribute(a, "attribute %q expects an integer argument", a.Name)
		return 0, false
	}
	v, ok := constIntValue(a.Args[i])
	if !ok {
		c.warnAttribute(a, "attribute %q expects a constant integer argument", a.Name)
		return 0, false
	}
	n, err := safecast.Conv[int32](v)
	if err != nil {
		c.warnAttribute(a, "attribute %q argument %d is out of range", a.Name, v)
		return 0, false
	}
	return int(n), true
}

func stringArg(a parser.Attribute, i int) (string, bool) {
	if i >= len(a.Args) {
		return "", false
	}
	k, ok := ir.AsConstant(a.Args[i])
	if !ok || len(k.Values) == 0 || k.Values[0].Kind != types.String {
		return "", false
	}
	return k.Values[0].S, true
}

// checkStatementAttributes warns about attributes a statement does not use.
func (c *Context) checkStatementAttributes(attrs parser.Attributes, allowed ...string) {
	for _, a := range attrs {
		ok := false
		for _, name := range allowed {
			if strings.EqualFold(a.Name, name) {
				ok = true
				break
			}
		}
		if !ok {
			c.warnAttribute(a, "attribute %q has no effect here", a.Name)
		}
	}
}
