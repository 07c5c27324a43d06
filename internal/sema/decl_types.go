package sema

import (
	"fortio.org/safecast"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/source"
	"hlslc/internal/types"
)

// imageFormats[kind][norm] lists formats by component count; "" is unknown.
var imageFormats = map[types.Basic]map[types.Flags][5]string{
	types.Float: {
		0:               {"", "r32f", "rg32f", "", "rgba32f"},
		types.FlagUNorm: {"", "r8", "rg8", "", "rgba8"},
		types.FlagSNorm: {"", "r8snorm", "rg8snorm", "", "rgba8snorm"},
	},
	types.Int:  {0: {"", "r32i", "rg32i", "", "rgba32i"}},
	types.Uint: {0: {"", "r32ui", "rg32ui", "", "rgba32ui"}},
}

// TextureReturnType records the element type of a texture template into s
// and derives the image format of RW objects.
func (c *Context) TextureReturnType(sp source.Span, s *types.Sampler, elem *types.Type) (string, bool) {
	if elem == nil {
		elem = types.NewVector(types.Float, 4)
	}
	if elem.IsStruct() || elem.IsArray() || elem.IsMatrix() || elem.IsOpaque() || !elem.Basic.IsNumeric() || elem.Basic == types.Bool {
		c.report(diag.SemaBadTextureType, sp, "texture template type must be a numeric scalar or vector, got %s", elem)
		return "", false
	}
	if elem.VectorSize < 1 || elem.VectorSize > 4 {
		c.report(diag.SemaBadTextureType, sp, "texture template vector size %d out of range", elem.VectorSize)
		return "", false
	}
	s.Type = elem.Basic
	s.VectorSize = elem.VectorSize
	if !s.Image {
		return "", true
	}
	norm := elem.Qualifier.Flags & (types.FlagUNorm | types.FlagSNorm)
	if byNorm, ok := imageFormats[elem.Basic]; ok {
		if row, ok := byNorm[norm]; ok {
			return row[elem.VectorSize], true
		}
	}
	return "", true
}

// StructBufferType builds the block type of a structured, byte-address,
// constant or texture buffer. Structured data lives in the single runtime
// sized member "@data".
func (c *Context) StructBufferType(sp source.Span, kind types.ObjectKind, elem *types.Type) *types.Type {
	switch kind {
	case types.ObjConstantBuffer, types.ObjTextureBuffer:
		members := make([]types.Member, len(elem.Struct.Members))
		copy(members, elem.Struct.Members)
		t := types.NewStruct(&types.StructDef{Name: elem.Struct.Name, Members: members}, types.Block)
		t.Object = kind
		if kind == types.ObjConstantBuffer {
			t.Qualifier.Storage = types.Uniform
		} else {
			t.Qualifier.Storage = types.Buffer
			t.Qualifier.Flags |= types.FlagReadOnly
		}
		return t
	}

	if elem == nil {
		elem = types.NewScalar(types.Uint)
	}
	if elem.IsOpaque() || elem.ContainsOpaque() {
		c.report(diag.SemaBadTemplateType, sp, "%s cannot hold opaque type %s", kind, elem)
		elem = types.NewScalar(types.Float)
	}
	data := elem.Clone()
	data.Qualifier = types.Qualifier{}
	arr := types.NewArraySizes(types.Implicit)
	if data.IsArray() {
		arr.AddInner(data.Arrays)
	}
	data.Arrays = arr
	def := &types.StructDef{Name: kind.String(), Members: []types.Member{{Name: structDataMember, Type: data, Span: sp}}}
	t := types.NewStruct(def, types.Block)
	t.Object = kind
	t.Qualifier.Storage = types.Buffer
	if kind == types.ObjStructuredBuffer || kind == types.ObjByteAddressBuffer {
		t.Qualifier.Flags |= types.FlagReadOnly
	}
	return t
}

const (
	structDataMember = "@data"
	counterSuffix    = "@count"
)

// HandleInputGeometry remembers a geometry input primitive seen on a
// parameter; it only takes effect when the function is the entry point.
func (c *Context) HandleInputGeometry(sp source.Span, prim ir.Primitive) bool {
	c.pendingInput = append(c.pendingInput, pendingPrim{prim: prim, span: sp})
	return true
}

// HandleOutputGeometry remembers the primitive of a stream-output parameter.
func (c *Context) HandleOutputGeometry(sp source.Span, prim ir.Primitive) bool {
	c.pendingOutput = append(c.pendingOutput, pendingPrim{prim: prim, span: sp})
	return true
}

type pendingPrim struct {
	prim ir.Primitive
	span source.Span
}

// ArraySize validates an explicit array dimension.
func (c *Context) ArraySize(sp source.Span, size ir.Typed) types.ArrayDim {
	if sym, ok := ir.AsSymbol(size); ok && sym.Type().Qualifier.Has(types.FlagSpecConstant) {
		c.notImplemented(diag.FutSpecConstantArrays, sp, "specialization constant array sizes")
		return types.ArrayDim{Size: 1, Expr: size}
	}
	n, ok := constIntValue(size)
	if !ok {
		c.report(diag.SemaBadArraySize, sp, "array size must be a constant integer expression")
		return types.ArrayDim{Size: 1}
	}
	if n <= 0 {
		c.report(diag.SemaBadArraySize, sp, "array size must be positive, got %d", n)
		return types.ArrayDim{Size: 1}
	}
	// размеры уходят в 32-битные литералы
	dim, err := safecast.Conv[int32](n)
	if err != nil {
		c.report(diag.SemaBadArraySize, sp, "array size %d is out of range", n)
		return types.ArrayDim{Size: 1}
	}
	return types.ArrayDim{Size: int(dim)}
}
