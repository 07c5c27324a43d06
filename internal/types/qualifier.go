package types

import (
	"fmt"
	"strings"
)

// Storage is the storage class of a qualifier.
type Storage uint8

const (
	Temporary Storage = iota // cleared record
	Global
	Const
	ConstReadOnly // const input parameter
	Uniform
	Buffer
	Shared
	VaryingIn
	VaryingOut
	In
	Out
	InOut
)

var storageNames = [...]string{
	Temporary:     "temp",
	Global:        "global",
	Const:         "const",
	ConstReadOnly: "const (read only)",
	Uniform:       "uniform",
	Buffer:        "buffer",
	Shared:        "shared",
	VaryingIn:     "in",
	VaryingOut:    "out",
	In:            "in param",
	Out:           "out param",
	InOut:         "inout param",
}

func (s Storage) String() string {
	if int(s) < len(storageNames) {
		return storageNames[s]
	}
	return fmt.Sprintf("Storage(%d)", s)
}

// IsParam reports the parameter directions.
func (s Storage) IsParam() bool {
	return s == In || s == Out || s == InOut || s == ConstReadOnly
}

// IsIO reports interstage storage.
func (s Storage) IsIO() bool { return s == VaryingIn || s == VaryingOut }

// IsParamOutput reports parameters that are written back to the caller.
func (s Storage) IsParamOutput() bool { return s == Out || s == InOut }

// Flags holds interpolation and auxiliary qualifiers.
type Flags uint32

const (
	FlagFlat Flags = 1 << iota
	FlagNoPerspective
	FlagSmooth
	FlagCentroid
	FlagSample
	FlagPatch
	FlagInvariant
	FlagPrecise
	FlagVolatile
	FlagCoherent
	FlagReadOnly
	FlagWriteOnly
	FlagSNorm
	FlagUNorm
	FlagSpecConstant
	FlagPushConstant
	FlagExplicitInterp
)

const interpolationFlags = FlagFlat | FlagNoPerspective | FlagSmooth | FlagExplicitInterp

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagFlat, "flat"},
	{FlagNoPerspective, "noperspective"},
	{FlagSmooth, "smooth"},
	{FlagCentroid, "centroid"},
	{FlagSample, "sample"},
	{FlagPatch, "patch"},
	{FlagInvariant, "invariant"},
	{FlagPrecise, "precise"},
	{FlagVolatile, "volatile"},
	{FlagCoherent, "coherent"},
	{FlagReadOnly, "readonly"},
	{FlagWriteOnly, "writeonly"},
	{FlagSNorm, "snorm"},
	{FlagUNorm, "unorm"},
	{FlagSpecConstant, "specialization-constant"},
	{FlagPushConstant, "push_constant"},
	{FlagExplicitInterp, "pervertex"},
}

func (f Flags) String() string {
	var parts []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, " ")
}

// MatrixLayout is the packing tag of matrices.
type MatrixLayout uint8

const (
	MatrixNone MatrixLayout = iota
	MatrixRowMajor
	MatrixColumnMajor
)

func (m MatrixLayout) String() string {
	switch m {
	case MatrixRowMajor:
		return "row_major"
	case MatrixColumnMajor:
		return "column_major"
	default:
		return ""
	}
}

// Packing is the block packing rule.
type Packing uint8

const (
	PackingNone Packing = iota
	PackingStd140
	PackingStd430
	PackingScalar
)

// DepthMode is the side channel of SV_DepthGreaterEqual / SV_DepthLessEqual.
type DepthMode uint8

const (
	DepthAny DepthMode = iota
	DepthGreater
	DepthLess
)

// LayoutField names one numeric layout slot.
type LayoutField uint8

const (
	LayLocation LayoutField = iota
	LayComponent
	LayBinding
	LaySet
	LayOffset
	LayAlign
	LayStream
	LayXfbBuffer
	LayXfbOffset
	LayXfbStride
	LayInputAttachment
	LaySpecConstantID
	LayIndex
	layoutFieldCount
)

var layoutFieldNames = [layoutFieldCount]string{
	LayLocation:        "location",
	LayComponent:       "component",
	LayBinding:         "binding",
	LaySet:             "set",
	LayOffset:          "offset",
	LayAlign:           "align",
	LayStream:          "stream",
	LayXfbBuffer:       "xfb_buffer",
	LayXfbOffset:       "xfb_offset",
	LayXfbStride:       "xfb_stride",
	LayInputAttachment: "input_attachment_index",
	LaySpecConstantID:  "constant_id",
	LayIndex:           "index",
}

func (f LayoutField) String() string {
	if f < layoutFieldCount {
		return layoutFieldNames[f]
	}
	return fmt.Sprintf("LayoutField(%d)", f)
}

// Qualifier describes storage, interpolation, layout and builtin role.
// The zero value is the cleared record.
type Qualifier struct {
	Storage   Storage
	Flags     Flags
	Builtin   Builtin
	Semantic  string
	Matrix    MatrixLayout
	Packing   Packing
	Depth     DepthMode
	Format    string // image format, "" when unset
	layout    [layoutFieldCount]int
	layoutSet uint16
}

// Clear resets q to the cleared record.
func (q *Qualifier) Clear() { *q = Qualifier{} }

// IsCleared reports whether q carries no information.
func (q Qualifier) IsCleared() bool { return q == Qualifier{} }

// Has reports a flag.
func (q Qualifier) Has(f Flags) bool { return q.Flags&f != 0 }

// Layout returns a layout slot value.
func (q Qualifier) Layout(f LayoutField) (int, bool) {
	if q.layoutSet&(1<<f) == 0 {
		return 0, false
	}
	return q.layout[f], true
}

// HasLayout reports whether slot f is set.
func (q Qualifier) HasLayout(f LayoutField) bool { return q.layoutSet&(1<<f) != 0 }

// SetLayout assigns a layout slot.
func (q *Qualifier) SetLayout(f LayoutField, v int) {
	q.layout[f] = v
	q.layoutSet |= 1 << f
}

// ClearLayout unsets a layout slot.
func (q *Qualifier) ClearLayout(f LayoutField) {
	q.layout[f] = 0
	q.layoutSet &^= 1 << f
}

// HasAnyLayout reports whether any numeric layout slot or tag is set.
func (q Qualifier) HasAnyLayout() bool {
	return q.layoutSet != 0 || q.Matrix != MatrixNone || q.Packing != PackingNone || q.Format != ""
}

// ClearLayouts unsets all layout information.
func (q *Qualifier) ClearLayouts() {
	q.layout = [layoutFieldCount]int{}
	q.layoutSet = 0
	q.Matrix = MatrixNone
	q.Packing = PackingNone
	q.Format = ""
}

// ClearInterstage drops what only makes sense on interstage I/O.
func (q *Qualifier) ClearInterstage() {
	q.Flags &^= interpolationFlags | FlagCentroid | FlagSample | FlagPatch | FlagInvariant
	q.ClearLayout(LayLocation)
	q.ClearLayout(LayComponent)
	q.ClearLayout(LayIndex)
	q.ClearLayout(LayXfbBuffer)
	q.ClearLayout(LayXfbOffset)
	q.ClearLayout(LayXfbStride)
	q.Builtin = BuiltinNone
}

// MergeMode selects how Merge treats slots set on both sides.
type MergeMode uint8

const (
	// MergeStrict reports a conflict when both sides set a slot differently.
	MergeStrict MergeMode = iota
	// MergeInheritOnly fills layout slots the destination has not set and never conflicts.
	MergeInheritOnly
)

// Merge folds src into q and returns human-readable conflicts.
// Merging a cleared record is the identity.
func (q *Qualifier) Merge(src Qualifier, mode MergeMode) []string {
	if mode == MergeInheritOnly {
		q.inheritLayout(src)
		return nil
	}

	var conflicts []string
	if s, ok := mergeStorage(q.Storage, src.Storage); ok {
		q.Storage = s
	} else {
		conflicts = append(conflicts, fmt.Sprintf("storage %q conflicts with %q", src.Storage, q.Storage))
	}

	if a, b := q.Flags&interpolationFlags, src.Flags&interpolationFlags; a != 0 && b != 0 && a != b {
		conflicts = append(conflicts, "only one interpolation qualifier allowed")
	}
	q.Flags |= src.Flags

	if src.Builtin != BuiltinNone {
		if q.Builtin != BuiltinNone && q.Builtin != src.Builtin {
			conflicts = append(conflicts, fmt.Sprintf("builtin %s conflicts with %s", src.Builtin, q.Builtin))
		} else {
			q.Builtin = src.Builtin
		}
	}
	if src.Semantic != "" {
		if q.Semantic != "" && !strings.EqualFold(q.Semantic, src.Semantic) {
			conflicts = append(conflicts, fmt.Sprintf("semantic %s conflicts with %s", src.Semantic, q.Semantic))
		} else {
			q.Semantic = src.Semantic
		}
	}
	if src.Depth != DepthAny {
		q.Depth = src.Depth
	}

	if src.Matrix != MatrixNone {
		if q.Matrix != MatrixNone && q.Matrix != src.Matrix {
			conflicts = append(conflicts, "conflicting matrix packing")
		}
		q.Matrix = src.Matrix
	}
	if src.Packing != PackingNone {
		q.Packing = src.Packing
	}
	if src.Format != "" {
		if q.Format != "" && q.Format != src.Format {
			conflicts = append(conflicts, fmt.Sprintf("format %s conflicts with %s", src.Format, q.Format))
		}
		q.Format = src.Format
	}
	for f := LayoutField(0); f < layoutFieldCount; f++ {
		v, ok := src.Layout(f)
		if !ok {
			continue
		}
		if cur, has := q.Layout(f); has && cur != v {
			conflicts = append(conflicts, fmt.Sprintf("%s = %d conflicts with %s = %d", f, v, f, cur))
		}
		q.SetLayout(f, v)
	}
	return conflicts
}

func (q *Qualifier) inheritLayout(src Qualifier) {
	if q.Matrix == MatrixNone {
		q.Matrix = src.Matrix
	}
	if q.Packing == PackingNone {
		q.Packing = src.Packing
	}
	if q.Format == "" {
		q.Format = src.Format
	}
	for _, f := range []LayoutField{LayStream, LayXfbBuffer, LaySet, LayAlign} {
		if v, ok := src.Layout(f); ok && !q.HasLayout(f) {
			q.SetLayout(f, v)
		}
	}
}

func mergeStorage(dst, src Storage) (Storage, bool) {
	switch {
	case src == Temporary || src == dst:
		return dst, true
	case dst == Temporary:
		return src, true
	case dst == In && src == Out, dst == Out && src == In:
		return InOut, true
	case dst == Global && src == Const, dst == Const && src == Global:
		return Const, true
	case dst == Global && (src == Uniform || src == Shared || src == Buffer):
		return src, true
	case src == Global && (dst == Uniform || dst == Shared || dst == Buffer):
		return dst, true
	case dst == Const && src == In, dst == In && src == Const:
		return ConstReadOnly, true
	}
	return dst, false
}

// String renders the set parts of q, e.g. "uniform row_major binding=3".
func (q Qualifier) String() string {
	var parts []string
	if q.Storage != Temporary {
		parts = append(parts, q.Storage.String())
	}
	if q.Flags != 0 {
		parts = append(parts, q.Flags.String())
	}
	if q.Matrix != MatrixNone {
		parts = append(parts, q.Matrix.String())
	}
	for f := LayoutField(0); f < layoutFieldCount; f++ {
		if v, ok := q.Layout(f); ok {
			parts = append(parts, fmt.Sprintf("%s=%d", f, v))
		}
	}
	if q.Format != "" {
		parts = append(parts, "format="+q.Format)
	}
	if q.Builtin != BuiltinNone {
		parts = append(parts, q.Builtin.String())
	}
	if q.Semantic != "" {
		parts = append(parts, ":"+q.Semantic)
	}
	return strings.Join(parts, " ")
}
