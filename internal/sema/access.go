package sema

import (
	"strconv"
	"strings"

	"hlslc/internal/builtins"
	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/source"
	"hlslc/internal/types"
)

// HandleDot resolves base.field: struct members, vector and matrix swizzles.
func (c *Context) HandleDot(sp source.Span, base ir.Typed, field string) ir.Typed {
	if s, ok := base.(*ir.Symbol); ok {
		switch {
		case c.split[s.ID] != nil && base.Type().IsStruct():
			return c.splitMember(sp, s, field)
		case c.flattened[s.ID] != nil && base.Type().IsStruct():
			i := base.Type().Struct.MemberIndex(field)
			if i < 0 {
				c.report(diag.SemaNoSuchMember, sp, "no member %q in %s", field, base.Type())
				return c.zero(nil, sp)
			}
			return c.flattenAccess(sp, s, i, base.Type().Struct.Members[i].Type)
		}
	}
	base = c.rvalue(base)
	t := base.Type()
	switch {
	case t.IsStruct() && !t.IsArray() && t.Object == types.ObjNone:
		i := t.Struct.MemberIndex(field)
		if i < 0 {
			c.report(diag.SemaNoSuchMember, sp, "no member %q in %s", field, t)
			return c.zero(nil, sp)
		}
		return c.b.AddIndex(ir.OpIndexDirectStruct, base, c.b.ConstInt(int64(i), sp), sp)
	case t.IsMatrix():
		return c.matrixSwizzle(sp, base, field)
	case t.IsVector() || (t.IsScalar() && t.Basic.IsNumeric()):
		return c.vectorSwizzle(sp, base, field)
	case builtins.ObjectOf(t) != 0:
		if _, ok := builtins.LookupMethod(field); ok {
			c.report(diag.SemaBadMethod, sp, "method %q must be called", field)
			return c.zero(nil, sp)
		}
	}
	c.report(diag.SemaNoSuchMember, sp, "no member %q in %s", field, t)
	return c.zero(nil, sp)
}

var swizzleSets = [2]string{"xyzw", "rgba"}

// vectorSwizzle handles .xyzw/.rgba selections; a scalar base is widened.
func (c *Context) vectorSwizzle(sp source.Span, base ir.Typed, field string) ir.Typed {
	t := base.Type()
	size := t.VectorSize
	if t.IsScalar() {
		size = 1
	}
	if len(field) > 4 {
		c.report(diag.SemaBadSwizzle, sp, "swizzle %q selects more than 4 components", field)
		return base
	}
	set := -1
	comps := make([]int, 0, len(field))
	for _, r := range field {
		found := false
		for si, letters := range swizzleSets {
			i := strings.IndexRune(letters, r)
			if i < 0 {
				continue
			}
			if set >= 0 && set != si {
				c.report(diag.SemaBadSwizzle, sp, "swizzle %q mixes component sets", field)
				return base
			}
			set = si
			comps = append(comps, i)
			found = true
			break
		}
		if !found {
			c.report(diag.SemaBadSwizzle, sp, "invalid swizzle %q on %s", field, t)
			return base
		}
		if comps[len(comps)-1] >= size {
			c.report(diag.SemaBadSwizzle, sp, "swizzle %q out of range for %s", field, t)
			return base
		}
	}
	if t.IsScalar() {
		if len(comps) == 1 {
			return base
		}
		rt := t.WithVectorSize(len(comps))
		return c.constructAggregate(sp, rt, []ir.Node{base})
	}
	return c.b.AddIndex(ir.OpVectorSwizzle, base, c.b.AddSwizzle(comps, sp), sp)
}

// matrixSwizzle handles _m<r><c> (zero based) and _<r><c> (one based)
// selections. HLSL row r is IR column r.
func (c *Context) matrixSwizzle(sp source.Span, base ir.Typed, field string) ir.Typed {
	t := base.Type()
	if !strings.HasPrefix(field, "_") {
		c.report(diag.SemaBadSwizzle, sp, "invalid matrix swizzle %q", field)
		return base
	}
	parts := strings.Split(field[1:], "_")
	if len(parts) > 4 {
		c.report(diag.SemaBadSwizzle, sp, "matrix swizzle %q selects more than 4 components", field)
		return base
	}
	var comps []int
	for _, p := range parts {
		zeroBased := strings.HasPrefix(p, "m")
		if zeroBased {
			p = p[1:]
		}
		if len(p) != 2 {
			c.report(diag.SemaBadSwizzle, sp, "invalid matrix swizzle %q", field)
			return base
		}
		row, err1 := strconv.Atoi(p[:1])
		col, err2 := strconv.Atoi(p[1:])
		if err1 != nil || err2 != nil {
			c.report(diag.SemaBadSwizzle, sp, "invalid matrix swizzle %q", field)
			return base
		}
		if !zeroBased {
			row, col = row-1, col-1
		}
		if row < 0 || col < 0 || row >= t.MatrixCols || col >= t.MatrixRows {
			c.report(diag.SemaBadSwizzle, sp, "matrix swizzle %q out of range for %s", field, t)
			return base
		}
		comps = append(comps, row, col)
	}
	if len(comps) == 2 {
		column := c.b.AddIndex(ir.OpIndexDirect, base, c.b.ConstInt(int64(comps[0]), sp), sp)
		return c.b.AddIndex(ir.OpIndexDirect, column, c.b.ConstInt(int64(comps[1]), sp), sp)
	}
	return c.b.AddIndex(ir.OpMatrixSwizzle, base, c.b.AddSwizzle(comps, sp), sp)
}

// HandleBracket resolves base[index]: arrays, vectors, matrix columns,
// structured buffer elements and texel access on textures and images.
func (c *Context) HandleBracket(sp source.Span, base, index ir.Typed) ir.Typed {
	index = c.rvalue(index)
	if s, ok := base.(*ir.Symbol); ok && base.Type().IsArray() {
		switch {
		case c.flattened[s.ID] != nil:
			v, ok := constIntValue(index)
			if !ok {
				c.notImplemented(diag.FutNotImplemented, sp, "dynamic index into a flattened array")
				return c.zero(base.Type().Element(), sp)
			}
			return c.flattenAccess(sp, s, int(v), base.Type().Element())
		case c.split[s.ID] != nil && !s.Shadow:
			return c.splitElement(sp, s, c.indexInt(sp, index))
		}
	}
	base = c.rvalue(base)
	bt := base.Type()
	if !bt.IsArray() {
		switch {
		case bt.Basic == types.Block && bt.Object.IsStructBuffer() && !bt.Object.IsByteAddress():
			data := c.b.AddIndex(ir.OpIndexDirectStruct, base, c.b.ConstInt(0, sp), sp)
			return c.indexValue(sp, data, index)
		case bt.IsImage():
			return c.imageLoad(sp, base, c.indexInt(sp, index))
		case bt.IsTexture():
			return c.textureFetch(sp, base, c.indexInt(sp, index))
		}
	}
	return c.indexValue(sp, base, index)
}

// indexInt converts an index to a signed integer of the same shape.
func (c *Context) indexInt(sp source.Span, index ir.Typed) ir.Typed {
	it := index.Type()
	if it.Basic.IsInteger() {
		return index
	}
	if it.Basic.IsFloat() {
		c.warn(diag.SemaImplicitConversion, sp, "implicit conversion of %s index to int", it)
	}
	if conv := c.b.ConvertBasic(types.Int, index); conv != nil {
		return conv
	}
	c.report(diag.SemaBadIndex, sp, "index of type %s is not an integer", it)
	return c.b.ConstInt(0, sp)
}

func (c *Context) indexValue(sp source.Span, base, index ir.Typed) ir.Typed {
	bt := base.Type()
	if !bt.IsArray() && !bt.IsVector() && !bt.IsMatrix() {
		c.report(diag.SemaBadIndex, sp, "%s cannot be indexed", bt)
		return base
	}
	it := index.Type()
	if !it.IsScalarOrVec1() {
		c.report(diag.SemaBadIndex, sp, "index must be a scalar, got %s", it)
		return c.zero(bt.Deref(0), sp)
	}
	if it.Vector1 {
		index = c.b.AddIndex(ir.OpVectorSwizzle, index, c.b.AddSwizzle([]int{0}, sp), sp)
	}
	index = c.indexInt(sp, index)
	op := ir.OpIndexIndirect
	if v, ok := constIntValue(index); ok {
		size := 0
		switch {
		case bt.IsArray():
			size = bt.OuterArraySize()
		case bt.IsMatrix():
			size = bt.MatrixCols
		default:
			size = bt.VectorSize
		}
		if v < 0 || (size > 0 && int(v) >= size) {
			c.report(diag.SemaIndexOutOfRange, sp, "index %d out of range [0, %d)", v, size)
			index = c.b.ConstInt(0, sp)
		}
		op = ir.OpIndexDirect
	}
	n := c.b.AddIndex(op, base, index, sp)
	if n == nil {
		c.report(diag.SemaBadIndex, sp, "cannot index %s", bt)
		return base
	}
	return n
}

// texelType is the value type returned by loads and samples of s.
func texelType(s types.Sampler) *types.Type {
	if s.VectorSize <= 1 {
		return types.NewScalar(s.Type)
	}
	return types.NewVector(s.Type, s.VectorSize)
}

func (c *Context) imageLoad(sp source.Span, img, coord ir.Typed) ir.Typed {
	args := c.b.NewAggregate(ir.OpNull, types.NewVoid(), sp, img, coord)
	return c.b.AddBuiltInCall(ir.OpImageLoad, false, args, texelType(img.Type().Sampler), sp)
}

// textureFetch is tex[coord]: mip 0 of ordinary textures, sample 0 of
// multisampled ones, plain element of texel buffers.
func (c *Context) textureFetch(sp source.Span, tex, coord ir.Typed) ir.Typed {
	s := tex.Type().Sampler
	seq := []ir.Node{tex, coord}
	if !s.IsBuffer() {
		seq = append(seq, c.b.ConstInt(0, sp))
	}
	args := c.b.NewAggregate(ir.OpNull, types.NewVoid(), sp, seq...)
	return c.b.AddBuiltInCall(ir.OpTextureFetch, false, args, texelType(s), sp)
}
