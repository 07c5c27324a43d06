package sema

import (
	"hlslc/internal/builtins"
	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/layout"
	"hlslc/internal/source"
	"hlslc/internal/types"
)

// handleMethod lowers object.name(args) on textures, buffers and streams.
func (c *Context) handleMethod(sp source.Span, name string, obj ir.Typed, args []ir.Typed) ir.Typed {
	ot := obj.Type()
	m, ok := builtins.LookupMethod(name)
	if !ok || !m.Accepts(ot) {
		if ot.IsStruct() && ot.Object == types.ObjNone {
			c.notImplemented(diag.FutMemberFunction, sp, "member function "+name)
		} else {
			c.report(diag.SemaBadMethod, sp, "%s has no method %q", ot, name)
		}
		return c.zero(nil, sp)
	}
	switch {
	case len(args) < m.MinArgs:
		c.report(diag.SemaNotEnoughArguments, sp, "%s expects at least %d arguments, got %d", name, m.MinArgs, len(args))
		return c.zero(nil, sp)
	case len(args) > m.MaxArgs:
		c.report(diag.SemaTooManyArguments, sp, "%s expects at most %d arguments, got %d", name, m.MaxArgs, len(args))
		return c.zero(nil, sp)
	}
	if ot.Object.IsStream() {
		return c.streamMethod(sp, m, obj, args)
	}
	obj = c.rvalue(obj)

	switch m.Op {
	case ir.OpMethodSample, ir.OpMethodSampleBias, ir.OpMethodSampleGrad, ir.OpMethodSampleLevel,
		ir.OpMethodSampleCmp, ir.OpMethodSampleCmpLevelZero:
		return c.sample(sp, m, obj, args)
	case ir.OpMethodLoad:
		if ot.Basic == types.Block {
			return c.bufferLoad(sp, obj, args[0], 1)
		}
		return c.textureLoad(sp, obj, args)
	case ir.OpMethodLoad2, ir.OpMethodLoad3, ir.OpMethodLoad4:
		return c.bufferLoad(sp, obj, args[0], int(m.Op-ir.OpMethodLoad2)+2)
	case ir.OpMethodStore, ir.OpMethodStore2, ir.OpMethodStore3, ir.OpMethodStore4:
		n := 1
		if m.Op != ir.OpMethodStore {
			n = int(m.Op-ir.OpMethodStore2) + 2
		}
		return c.bufferStore(sp, obj, args[0], args[1], n)
	case ir.OpMethodGetDimensions:
		if ot.Basic == types.Block {
			return c.bufferDimensions(sp, obj, args)
		}
		return c.textureDimensions(sp, obj, args)
	case ir.OpMethodGather, ir.OpMethodGatherRed, ir.OpMethodGatherGreen, ir.OpMethodGatherBlue, ir.OpMethodGatherAlpha:
		return c.gather(sp, m, obj, args)
	case ir.OpMethodGatherCmp, ir.OpMethodGatherCmpRed:
		return c.gatherCmp(sp, obj, args)
	case ir.OpMethodGatherCmpGreen, ir.OpMethodGatherCmpBlue, ir.OpMethodGatherCmpAlpha:
		c.notImplemented(diag.FutNotImplemented, sp, name+" on a channel other than red")
		return c.zero(nil, sp)
	case ir.OpMethodCalculateLevelOfDetail, ir.OpMethodCalculateLevelOfDetailUnclamped:
		comb, ok := c.combine(sp, obj, args[0], false)
		if !ok {
			return c.zero(nil, sp)
		}
		coord := c.coordArg(sp, args[1], types.Float, ot.Sampler.CoordComponents())
		lod := c.builtinOp(sp, ir.OpTextureQueryLod, types.NewVector(types.Float, 2), comb, coord)
		comp := 0
		if m.Op == ir.OpMethodCalculateLevelOfDetailUnclamped {
			comp = 1
		}
		return c.b.AddIndex(ir.OpIndexDirect, lod, c.b.ConstInt(int64(comp), sp), sp)
	case ir.OpMethodGetSamplePosition:
		c.notImplemented(diag.FutNotImplemented, sp, name)
		return c.zero(types.NewVector(types.Float, 2), sp)
	case ir.OpMethodIncrementCounter, ir.OpMethodDecrementCounter, ir.OpMethodAppend, ir.OpMethodConsume:
		return c.counterMethod(sp, m, obj, args)
	}
	if m.Op.IsMethod() && m.Op >= ir.OpMethodInterlockedAdd {
		return c.rawInterlocked(sp, m, obj, args)
	}
	c.notImplemented(diag.FutNotImplemented, sp, name)
	return c.zero(nil, sp)
}

// combine pairs a texture with a SamplerState into one sampler value.
func (c *Context) combine(sp source.Span, tex, samp ir.Typed, shadow bool) (ir.Typed, bool) {
	samp = c.rvalue(samp)
	st := samp.Type()
	if !st.IsOpaque() || !st.Sampler.Pure || st.IsArray() {
		c.report(diag.SemaBadArgument, samp.Span(), "expected a sampler state, got %s", st)
		return nil, false
	}
	t := types.NewSampler(tex.Type().Sampler.Combine(shadow))
	return c.b.NewAggregate(ir.OpConstructTextureSampler, t, sp, tex, samp), true
}

// coordArg converts a coordinate, offset or address argument to n
// components of basic.
func (c *Context) coordArg(sp source.Span, a ir.Typed, basic types.Basic, n int) ir.Typed {
	a = c.rvalue(a)
	t := types.NewScalar(basic)
	if n > 1 {
		t = types.NewVector(basic, n)
	}
	v := c.b.AddConversion(t, a)
	if v == nil {
		c.report(diag.SemaBadArgument, a.Span(), "cannot convert %s to %s", a.Type(), t)
		return c.zero(t, sp)
	}
	return v
}

func (c *Context) scalarArg(sp source.Span, a ir.Typed, basic types.Basic) ir.Typed {
	return c.coordArg(sp, a, basic, 1)
}

// sample lowers the Sample* family. Optional trailing clamp and status
// arguments are accepted and ignored.
func (c *Context) sample(sp source.Span, m builtins.Method, tex ir.Typed, args []ir.Typed) ir.Typed {
	s := tex.Type().Sampler
	cmp := m.Op == ir.OpMethodSampleCmp || m.Op == ir.OpMethodSampleCmpLevelZero
	comb, ok := c.combine(sp, tex, args[0], cmp)
	if !ok {
		return c.zero(nil, sp)
	}
	n := s.CoordComponents()
	coord := c.coordArg(sp, args[1], types.Float, n)
	rest := args[2:]
	offsetArg := func(i int) ir.Typed {
		if i >= len(rest) {
			return nil
		}
		return c.coordArg(sp, rest[i], types.Int, s.OffsetComponents())
	}
	ret := texelType(s)

	switch m.Op {
	case ir.OpMethodSample:
		if len(rest) > 1 {
			c.warn(diag.SemaBadArgument, sp, "Sample clamp argument is ignored")
		}
		if off := offsetArg(0); off != nil {
			return c.builtinOp(sp, ir.OpTextureOffset, ret, comb, coord, off)
		}
		return c.builtinOp(sp, ir.OpTexture, ret, comb, coord)
	case ir.OpMethodSampleBias:
		bias := c.scalarArg(sp, rest[0], types.Float)
		if off := offsetArg(1); off != nil {
			return c.builtinOp(sp, ir.OpTextureOffset, ret, comb, coord, off, bias)
		}
		return c.builtinOp(sp, ir.OpTexture, ret, comb, coord, bias)
	case ir.OpMethodSampleGrad:
		dx := c.coordArg(sp, rest[0], types.Float, gradComponents(s))
		dy := c.coordArg(sp, rest[1], types.Float, gradComponents(s))
		if off := offsetArg(2); off != nil {
			return c.builtinOp(sp, ir.OpTextureGradOffset, ret, comb, coord, dx, dy, off)
		}
		return c.builtinOp(sp, ir.OpTextureGrad, ret, comb, coord, dx, dy)
	case ir.OpMethodSampleLevel:
		lod := c.scalarArg(sp, rest[0], types.Float)
		if off := offsetArg(1); off != nil {
			return c.builtinOp(sp, ir.OpTextureLodOffset, ret, comb, coord, lod, off)
		}
		return c.builtinOp(sp, ir.OpTextureLod, ret, comb, coord, lod)
	}

	// сравнение: опорное значение дописывается к координате, пока влезает в vec4
	ref := c.scalarArg(sp, rest[0], types.Float)
	ret = types.NewScalar(types.Float)
	coordArgs := []ir.Typed{comb}
	if n < 4 {
		coordArgs = append(coordArgs, c.constructAggregate(sp, types.NewVector(types.Float, n+1), []ir.Node{coord, ref}))
	} else {
		coordArgs = append(coordArgs, coord, ref)
	}
	off := offsetArg(1)
	if m.Op == ir.OpMethodSampleCmpLevelZero {
		lod := c.b.ConstFloat(0, sp)
		if off != nil {
			return c.builtinOp(sp, ir.OpTextureLodOffset, ret, append(coordArgs, lod, off)...)
		}
		return c.builtinOp(sp, ir.OpTextureLod, ret, append(coordArgs, lod)...)
	}
	if off != nil {
		return c.builtinOp(sp, ir.OpTextureOffset, ret, append(coordArgs, off)...)
	}
	return c.builtinOp(sp, ir.OpTexture, ret, coordArgs...)
}

// gradComponents is the size of a derivative: the coordinate without the layer.
func gradComponents(s types.Sampler) int {
	n := s.CoordComponents()
	if s.Arrayed {
		n--
	}
	return n
}

// textureLoad is Load on textures, typed buffers and RW textures. For
// mipmapped textures the last location component is the mip level.
func (c *Context) textureLoad(sp source.Span, tex ir.Typed, args []ir.Typed) ir.Typed {
	s := tex.Type().Sampler
	n := s.CoordComponents()
	ret := texelType(s)
	switch {
	case s.IsImage():
		return c.imageLoad(sp, tex, c.coordArg(sp, args[0], types.Int, n))
	case s.IsBuffer():
		return c.builtinOp(sp, ir.OpTextureFetch, ret, tex, c.coordArg(sp, args[0], types.Int, n))
	case s.MS:
		if len(args) < 2 {
			c.report(diag.SemaNotEnoughArguments, sp, "Load on a multisampled texture needs a sample index")
			return c.zero(ret, sp)
		}
		coord := c.coordArg(sp, args[0], types.Int, n)
		sample := c.scalarArg(sp, args[1], types.Int)
		return c.builtinOp(sp, ir.OpTextureFetch, ret, tex, coord, sample)
	}
	loc := c.coordArg(sp, args[0], types.Int, n+1)
	comps := make([]int, n)
	for i := range comps {
		comps[i] = i
	}
	coord := c.b.AddIndex(ir.OpVectorSwizzle, loc, c.b.AddSwizzle(comps, sp), sp)
	lod := c.b.AddIndex(ir.OpIndexDirect, loc, c.b.ConstInt(int64(n), sp), sp)
	if len(args) > 1 {
		off := c.coordArg(sp, args[1], types.Int, s.OffsetComponents())
		return c.builtinOp(sp, ir.OpTextureFetchOffset, ret, tex, coord, lod, off)
	}
	return c.builtinOp(sp, ir.OpTextureFetch, ret, tex, coord, lod)
}

// bufferData is the runtime array member of a structured or raw buffer.
func (c *Context) bufferData(sp source.Span, buf ir.Typed) ir.Typed {
	return c.b.AddIndex(ir.OpIndexDirectStruct, buf, c.b.ConstInt(0, sp), sp)
}

// wordIndex converts a byte address into an index of 32-bit words.
func (c *Context) wordIndex(sp source.Span, addr ir.Typed) ir.Typed {
	a := c.scalarArg(sp, addr, types.Uint)
	return c.b.AddBinaryMath(ir.OpRightShift, a, c.b.ConstUint(2, sp), sp)
}

// bufferLoad reads n consecutive words of a raw buffer, or one element of
// a structured buffer.
func (c *Context) bufferLoad(sp source.Span, buf, addr ir.Typed, n int) ir.Typed {
	data := c.bufferData(sp, buf)
	if !buf.Type().Object.IsByteAddress() {
		return c.indexValue(sp, data, c.rvalue(addr))
	}
	word := c.wordIndex(sp, addr)
	if n == 1 {
		return c.b.AddIndex(ir.OpIndexIndirect, data, word, sp)
	}
	tmp := c.ref(c.newTemp(word.Type(), sp), sp)
	init := c.b.AddAssign(ir.OpAssign, tmp, word, sp)
	parts := make([]ir.Node, n)
	for i := range n {
		idx := c.b.AddBinaryMath(ir.OpAdd, tmp, c.b.ConstUint(uint64(i), sp), sp)
		parts[i] = c.b.AddIndex(ir.OpIndexIndirect, data, idx, sp)
	}
	value := c.constructAggregate(sp, types.NewVector(types.Uint, n), parts)
	return c.b.AddComma(init, value, sp)
}

// bufferStore writes n words starting at a byte address.
func (c *Context) bufferStore(sp source.Span, buf, addr, value ir.Typed, n int) ir.Typed {
	data := c.bufferData(sp, buf)
	v := c.coordArg(sp, value, types.Uint, n)
	tmp := c.ref(c.newTemp(types.NewScalar(types.Uint), sp), sp)
	seq := c.b.NewAggregate(ir.OpSequence, types.NewVoid(), sp, c.b.AddAssign(ir.OpAssign, tmp, c.wordIndex(sp, addr), sp))
	for i := range n {
		idx := c.b.AddBinaryMath(ir.OpAdd, tmp, c.b.ConstUint(uint64(i), sp), sp)
		word := v
		if n > 1 {
			word = c.b.AddIndex(ir.OpIndexDirect, v, c.b.ConstInt(int64(i), sp), sp)
		}
		seq.Seq = append(seq.Seq, c.b.AddAssign(ir.OpAssign, c.b.AddIndex(ir.OpIndexIndirect, data, idx, sp), word, sp))
	}
	return seq
}

// storeOut assigns a query result to an out argument of GetDimensions.
func (c *Context) storeOut(sp source.Span, dst, value ir.Typed) ir.Node {
	if !c.checkLValue(dst.Span(), dst) {
		return nil
	}
	n := c.b.AddAssign(ir.OpAssign, dst, value, sp)
	if n == nil {
		c.report(diag.SemaBadArgument, dst.Span(), "cannot store %s into %s", value.Type(), dst.Type())
	}
	return n
}

// textureDimensions lowers GetDimensions on textures. The optional first
// argument is a mip level; it is present when more outputs are given than
// the texture has size components, and then the last one receives the
// number of levels.
func (c *Context) textureDimensions(sp source.Span, tex ir.Typed, args []ir.Typed) ir.Typed {
	s := tex.Type().Sampler
	numDims := s.CoordComponents()
	if s.Dim == types.DimCube {
		numDims--
	}
	ms := 0
	if s.MS {
		ms = 1
	}
	mipQuery := len(args) > numDims+ms && !s.IsImage() && !s.IsBuffer() && !s.MS
	pos := 0
	if mipQuery {
		pos = 1
	}
	if len(args) < pos+numDims+ms {
		c.report(diag.SemaNotEnoughArguments, sp, "GetDimensions on %s needs %d outputs", tex.Type(), numDims+ms)
		return c.zero(nil, sp)
	}

	sizeType := types.NewScalar(types.Int)
	if numDims > 1 {
		sizeType = types.NewVector(types.Int, numDims)
	}
	var query ir.Typed
	switch {
	case s.IsImage():
		query = c.builtinOp(sp, ir.OpImageQuerySize, sizeType, tex)
	case s.IsBuffer() || s.MS:
		query = c.builtinOp(sp, ir.OpTextureQuerySize, sizeType, tex)
	default:
		lod := ir.Typed(c.b.ConstInt(0, sp))
		if mipQuery {
			lod = c.scalarArg(sp, args[0], types.Int)
		}
		query = c.builtinOp(sp, ir.OpTextureQuerySize, sizeType, tex, lod)
	}
	size := c.ref(c.newTemp(sizeType, sp), sp)
	seq := c.b.NewAggregate(ir.OpSequence, types.NewVoid(), sp, c.b.AddAssign(ir.OpAssign, size, query, sp))
	for i := range numDims {
		v := size
		if numDims > 1 {
			v = c.b.AddIndex(ir.OpIndexDirect, size, c.b.ConstInt(int64(i), sp), sp)
		}
		if n := c.storeOut(sp, args[pos+i], v); n != nil {
			seq.Seq = append(seq.Seq, n)
		}
	}
	next := pos + numDims
	if mipQuery && next < len(args) {
		levels := c.builtinOp(sp, ir.OpTextureQueryLevels, types.NewScalar(types.Int), tex)
		if n := c.storeOut(sp, args[next], levels); n != nil {
			seq.Seq = append(seq.Seq, n)
		}
	}
	if s.MS {
		op := ir.OpTextureQuerySamples
		if s.IsImage() {
			op = ir.OpImageQuerySamples
		}
		samples := c.builtinOp(sp, op, types.NewScalar(types.Int), tex)
		if n := c.storeOut(sp, args[next], samples); n != nil {
			seq.Seq = append(seq.Seq, n)
		}
	}
	return seq
}

// bufferDimensions lowers GetDimensions on structured and raw buffers.
func (c *Context) bufferDimensions(sp source.Span, buf ir.Typed, args []ir.Typed) ir.Typed {
	data := c.bufferData(sp, buf)
	length := c.builtinOp(sp, ir.OpArrayLength, types.NewScalar(types.Uint), data)
	seq := c.b.NewAggregate(ir.OpSequence, types.NewVoid(), sp)
	if buf.Type().Object.IsByteAddress() {
		bytes := c.b.AddBinaryMath(ir.OpMul, length, c.b.ConstUint(4, sp), sp)
		if n := c.storeOut(sp, args[0], bytes); n != nil {
			seq.Seq = append(seq.Seq, n)
		}
		return seq
	}
	if len(args) != 2 {
		c.report(diag.SemaBadArgument, sp, "GetDimensions on %s takes (count, stride)", buf.Type())
		return seq
	}
	if n := c.storeOut(sp, args[0], length); n != nil {
		seq.Seq = append(seq.Seq, n)
	}
	tl, err := c.layout.LayoutOf(data.Type().Element(), layout.RulesScalar)
	if err != nil {
		c.report(diag.SemaBadLayout, sp, "%v", err)
		return seq
	}
	if n := c.storeOut(sp, args[1], c.b.ConstUint(uint64(tl.Size), sp)); n != nil {
		seq.Seq = append(seq.Seq, n)
	}
	return seq
}

// gather lowers Gather and the per-channel GatherRed..GatherAlpha forms.
func (c *Context) gather(sp source.Span, m builtins.Method, tex ir.Typed, args []ir.Typed) ir.Typed {
	s := tex.Type().Sampler
	comb, ok := c.combine(sp, tex, args[0], false)
	if !ok {
		return c.zero(nil, sp)
	}
	coord := c.coordArg(sp, args[1], types.Float, s.CoordComponents())
	ret := types.NewVector(s.Type, 4)
	channel := 0
	if m.Op != ir.OpMethodGather {
		channel = int(m.Op - ir.OpMethodGatherRed)
	}
	comp := c.b.ConstInt(int64(channel), sp)
	offN := s.OffsetComponents()
	switch len(args) {
	case 2:
		return c.builtinOp(sp, ir.OpTextureGather, ret, comb, coord, comp)
	case 3:
		off := c.coordArg(sp, args[2], types.Int, offN)
		return c.builtinOp(sp, ir.OpTextureGatherOffset, ret, comb, coord, off, comp)
	case 6:
		offType := types.NewVector(types.Int, offN)
		arrType := offType.Clone()
		arrType.Arrays = types.NewArraySizes(4)
		var offs []ir.Node
		for _, a := range args[2:] {
			offs = append(offs, c.coordArg(sp, a, types.Int, offN))
		}
		arr := c.constructAggregate(sp, arrType, offs)
		return c.builtinOp(sp, ir.OpTextureGatherOffsets, ret, comb, coord, arr, comp)
	}
	c.notImplemented(diag.FutNotImplemented, sp, m.Name+" with a status argument")
	return c.zero(ret, sp)
}

func (c *Context) gatherCmp(sp source.Span, tex ir.Typed, args []ir.Typed) ir.Typed {
	s := tex.Type().Sampler
	ret := types.NewVector(s.Type, 4)
	comb, ok := c.combine(sp, tex, args[0], true)
	if !ok {
		return c.zero(nil, sp)
	}
	coord := c.coordArg(sp, args[1], types.Float, s.CoordComponents())
	ref := c.scalarArg(sp, args[2], types.Float)
	switch len(args) {
	case 3:
		return c.builtinOp(sp, ir.OpTextureGather, ret, comb, coord, ref)
	case 4:
		off := c.coordArg(sp, args[3], types.Int, s.OffsetComponents())
		return c.builtinOp(sp, ir.OpTextureGatherOffset, ret, comb, coord, ref, off)
	}
	c.notImplemented(diag.FutNotImplemented, sp, "GatherCmp with per-texel offsets")
	return c.zero(ret, sp)
}

// counterMethod lowers the hidden-counter methods of append, consume and
// RW structured buffers.
func (c *Context) counterMethod(sp source.Span, m builtins.Method, buf ir.Typed, args []ir.Typed) ir.Typed {
	base := ir.BaseSymbol(buf)
	var counter ir.Typed
	if base != nil {
		if sym := c.counters[base.ID]; sym != nil {
			counter = c.memberOf(sp, c.ref(sym, sp), 0)
		}
	}
	if counter == nil {
		c.report(diag.SemaBadMethod, sp, "%s has no counter", buf.Type())
		return c.zero(nil, sp)
	}
	uintT := types.NewScalar(types.Uint)
	add := func(delta uint64) ir.Typed {
		return c.builtinOp(sp, ir.OpAtomicAdd, uintT, counter, c.b.ConstUint(delta, sp))
	}
	// -1 по модулю 2^32
	const minusOne = 0xFFFFFFFF
	data := c.bufferData(sp, buf)

	switch m.Op {
	case ir.OpMethodIncrementCounter:
		return add(1)
	case ir.OpMethodDecrementCounter:
		return c.b.AddBinaryMath(ir.OpSub, add(minusOne), c.b.ConstUint(1, sp), sp)
	case ir.OpMethodAppend:
		slot := c.b.AddIndex(ir.OpIndexIndirect, data, add(1), sp)
		store := c.b.AddAssign(ir.OpAssign, slot, c.rvalue(args[0]), sp)
		if store == nil {
			c.report(diag.SemaBadArgument, sp, "cannot append %s to %s", args[0].Type(), buf.Type())
			return c.zero(nil, sp)
		}
		return c.b.NewAggregate(ir.OpSequence, types.NewVoid(), sp, store)
	}
	idx := c.b.AddBinaryMath(ir.OpSub, add(minusOne), c.b.ConstUint(1, sp), sp)
	return c.b.AddIndex(ir.OpIndexIndirect, data, idx, sp)
}

// streamMethod lowers Append and RestartStrip on geometry output streams.
// Append copies the vertex into the stream's output variables and emits it.
func (c *Context) streamMethod(sp source.Span, m builtins.Method, stream ir.Typed, args []ir.Typed) ir.Typed {
	if m.Op == ir.OpMethodRestartStrip {
		return c.b.AddBuiltInCall(ir.OpEndPrimitive, false, nil, types.NewVoid(), sp)
	}
	s, ok := stream.(*ir.Symbol)
	if !ok {
		c.report(diag.SemaBadMethod, sp, "Append needs a stream variable")
		return c.zero(nil, sp)
	}
	vt := s.Type().Clone()
	vt.Object = types.ObjNone
	view := c.b.NewSymbol(s.ID, s.Name, vt, sp)
	view.Shadow, view.Subset, view.Path = s.Shadow, s.Subset, s.Path
	copyOut := c.memberwiseAssign(sp, view, args[0])
	if copyOut == nil {
		c.report(diag.SemaTypeMismatch, sp, "cannot append %s to a stream of %s", args[0].Type(), vt)
		return c.zero(nil, sp)
	}
	emit := c.b.AddBuiltInCall(ir.OpEmitVertex, false, nil, types.NewVoid(), sp)
	return c.b.NewAggregate(ir.OpSequence, types.NewVoid(), sp, copyOut, emit)
}

var rawAtomics = map[ir.Op]ir.Op{
	ir.OpMethodInterlockedAdd:             ir.OpInterlockedAdd,
	ir.OpMethodInterlockedAnd:             ir.OpInterlockedAnd,
	ir.OpMethodInterlockedCompareExchange: ir.OpInterlockedCompareExchange,
	ir.OpMethodInterlockedCompareStore:    ir.OpInterlockedCompareStore,
	ir.OpMethodInterlockedExchange:        ir.OpInterlockedExchange,
	ir.OpMethodInterlockedMax:             ir.OpInterlockedMax,
	ir.OpMethodInterlockedMin:             ir.OpInterlockedMin,
	ir.OpMethodInterlockedOr:              ir.OpInterlockedOr,
	ir.OpMethodInterlockedXor:             ir.OpInterlockedXor,
}

// rawInterlocked lowers Interlocked* methods of RWByteAddressBuffer onto
// the addressed word.
func (c *Context) rawInterlocked(sp source.Span, m builtins.Method, buf ir.Typed, args []ir.Typed) ir.Typed {
	op := rawAtomics[m.Op]
	dest := c.b.AddIndex(ir.OpIndexIndirect, c.bufferData(sp, buf), c.wordIndex(sp, args[0]), sp)
	rest := args[1:]
	var orig ir.Typed
	switch op {
	case ir.OpInterlockedCompareStore:
	case ir.OpInterlockedCompareExchange, ir.OpInterlockedExchange:
		orig, rest = rest[len(rest)-1], rest[:len(rest)-1]
	default:
		if len(rest) == 2 {
			orig, rest = rest[1], rest[:1]
		}
	}
	return c.atomic(sp, op, dest, rest, orig)
}
