package layout

import (
	"fortio.org/safecast"

	"hlslc/internal/types"
)

// TypeLayout is the buffer layout of a type under some Rules.
type TypeLayout struct {
	Size  int
	Align int

	// Struct-only:
	FieldOffsets []int

	// Arrays and matrices:
	Stride       int
	MatrixStride int

	// StartsRegister is set for types that begin a new 16-byte register
	// under cbuffer rules.
	StartsRegister bool
}

// LayoutEngine computes buffer layouts. Struct layouts are cached by
// struct identity and rules.
type LayoutEngine struct {
	// DefaultRowMajor flips the matrix packing used when a matrix carries
	// no explicit row_major/column_major qualifier.
	DefaultRowMajor bool

	cache *cache
}

// New creates a layout engine.
func New(defaultRowMajor bool) *LayoutEngine {
	return &LayoutEngine{DefaultRowMajor: defaultRowMajor, cache: newCache()}
}

// LayoutOf computes the layout of t.
func (e *LayoutEngine) LayoutOf(t *types.Type, rules Rules) (TypeLayout, error) {
	l, err := e.layoutOf(t, rules, "")
	if err != nil {
		return l, err
	}
	return l, nil
}

// Block lays out the members of a cbuffer, tbuffer or buffer block.
// Members with an explicit offset layout (packoffset) keep it; the others
// are placed after the previous member.
func (e *LayoutEngine) Block(def *types.StructDef, rules Rules) (TypeLayout, error) {
	l, err := e.structLayout(def, rules)
	if err != nil {
		return l, err
	}
	if rules == RulesCBuffer {
		l.Size = roundUp(l.Size, RegisterSize)
	}
	return l, nil
}

func (e *LayoutEngine) layoutOf(t *types.Type, rules Rules, member string) (TypeLayout, *LayoutError) {
	if t.IsArray() {
		if t.Arrays.IsImplicit() {
			return TypeLayout{}, &LayoutError{Kind: LayoutErrUnsized, Member: member}
		}
		el, err := e.layoutOf(t.Element(), rules, member)
		if err != nil {
			return el, err
		}
		n := t.OuterArraySize()
		stride := roundUp(el.Size, el.Align)
		if rules == RulesCBuffer {
			stride = roundUp(el.Size, RegisterSize)
		}
		size := stride*(n-1) + el.Size
		if rules == RulesScalar {
			size = stride * n
		}
		if _, cerr := safecast.Conv[int32](size); cerr != nil {
			return TypeLayout{}, &LayoutError{Kind: LayoutErrTooLarge, Member: member, Err: cerr}
		}
		return TypeLayout{
			Size:           size,
			Align:          max(el.Align, alignFor(rules, true)),
			Stride:         stride,
			StartsRegister: rules == RulesCBuffer,
		}, nil
	}
	switch {
	case t.IsOpaque():
		return TypeLayout{}, &LayoutError{Kind: LayoutErrOpaque, Member: member}
	case t.IsStruct():
		l, err := e.structLayout(t.Struct, rules)
		if err != nil {
			return l, err
		}
		return l, nil
	case t.IsMatrix():
		return e.matrixLayout(t, rules), nil
	}
	comp := t.Basic.Size()
	size := comp * max(t.VectorSize, 1)
	return TypeLayout{Size: size, Align: comp}, nil
}

func alignFor(rules Rules, aggregate bool) int {
	if rules == RulesCBuffer && aggregate {
		return RegisterSize
	}
	return 1
}

// matrixLayout packs one IR column per register when the IR tag is
// column-major (the HLSL row_major spelling), otherwise one IR row.
func (e *LayoutEngine) matrixLayout(t *types.Type, rules Rules) TypeLayout {
	comp := t.Basic.Size()
	colMajor := t.Qualifier.Matrix == types.MatrixColumnMajor ||
		(t.Qualifier.Matrix == types.MatrixNone && e.DefaultRowMajor)
	vectors, perVector := t.MatrixRows, t.MatrixCols
	if colMajor {
		vectors, perVector = t.MatrixCols, t.MatrixRows
	}
	if rules == RulesScalar {
		return TypeLayout{
			Size:         vectors * perVector * comp,
			Align:        comp,
			MatrixStride: perVector * comp,
		}
	}
	return TypeLayout{
		Size:           (vectors-1)*RegisterSize + perVector*comp,
		Align:          RegisterSize,
		MatrixStride:   RegisterSize,
		StartsRegister: true,
	}
}

func (e *LayoutEngine) structLayout(def *types.StructDef, rules Rules) (TypeLayout, *LayoutError) {
	key := cacheKey{def: def, rules: rules}
	if cached, ok := e.cache.get(key); ok {
		return cached.Layout, cached.Err
	}
	l, err := e.computeStruct(def, rules)
	e.cache.put(key, cacheEntry{Layout: l, Err: err})
	return l, err
}
