package types

import (
	"fmt"
	"strings"

	"hlslc/internal/source"
)

// Member is one field of a struct or block.
type Member struct {
	Name string
	Type *Type
	Span source.Span
}

// StructDef is the shared body of a struct or block type.
// Two types referring to the same *StructDef are the same struct.
type StructDef struct {
	Name    string
	Members []Member
}

// MemberIndex finds a member by name.
func (s *StructDef) MemberIndex(name string) int {
	for i := range s.Members {
		if s.Members[i].Name == name {
			return i
		}
	}
	return -1
}

// Type is the type descriptor attached to IR nodes and symbols.
//
// HLSL floatRxC (R rows of C components) is stored with MatrixCols=R and
// MatrixRows=C, i.e. as R columns of C-vectors in the IR's column-major view.
type Type struct {
	Basic      Basic
	VectorSize int // 1 for scalars
	Vector1    bool
	MatrixCols int
	MatrixRows int
	Arrays     *ArraySizes
	Qualifier  Qualifier
	Sampler    Sampler
	Struct     *StructDef
	TypeName   string
	// Object is set for buffer blocks, stream-output and patch types.
	Object ObjectKind
}

// NewScalar returns a scalar of kind b.
func NewScalar(b Basic) *Type { return &Type{Basic: b, VectorSize: 1} }

// NewVoid returns the void type.
func NewVoid() *Type { return NewScalar(Void) }

// NewVector returns an n-component vector; n == 1 gives an explicit 1-vector.
func NewVector(b Basic, n int) *Type {
	return &Type{Basic: b, VectorSize: n, Vector1: n == 1}
}

// NewMatrix returns a matrix with cols columns of rows components.
func NewMatrix(b Basic, cols, rows int) *Type {
	return &Type{Basic: b, VectorSize: 1, MatrixCols: cols, MatrixRows: rows}
}

// NewSampler returns an opaque object type.
func NewSampler(s Sampler) *Type { return &Type{Basic: SamplerKind, VectorSize: 1, Sampler: s} }

// NewStruct returns a struct (or block when basic is Block) type.
func NewStruct(def *StructDef, basic Basic) *Type {
	return &Type{Basic: basic, VectorSize: 1, Struct: def, TypeName: def.Name}
}

// Clone copies t; the struct body stays shared, array sizes are copied.
func (t *Type) Clone() *Type {
	c := *t
	c.Arrays = t.Arrays.Clone()
	return &c
}

// Unqualified returns a copy with a cleared qualifier.
func (t *Type) Unqualified() *Type {
	c := t.Clone()
	c.Qualifier = Qualifier{}
	return c
}

func (t *Type) IsVoid() bool   { return t.Basic == Void && !t.IsArray() }
func (t *Type) IsArray() bool  { return t.Arrays != nil && len(t.Arrays.Dims) > 0 }
func (t *Type) IsStruct() bool { return t.Basic == Struct || t.Basic == Block }
func (t *Type) IsMatrix() bool { return t.MatrixCols > 0 }
func (t *Type) IsOpaque() bool { return t.Basic == SamplerKind }

// IsVector reports vectors, including explicit 1-vectors.
func (t *Type) IsVector() bool {
	return !t.IsMatrix() && !t.IsArray() && !t.IsStruct() && (t.VectorSize > 1 || t.Vector1)
}

// IsScalar reports a non-array, non-vector, non-matrix basic value.
func (t *Type) IsScalar() bool {
	return !t.IsVector() && !t.IsMatrix() && !t.IsArray() && !t.IsStruct() && t.Basic != SamplerKind
}

// IsScalarOrVec1 reports scalars and 1-vectors.
func (t *Type) IsScalarOrVec1() bool { return t.IsScalar() || (t.Vector1 && !t.IsArray()) }

// IsNumeric reports numeric non-aggregate values.
func (t *Type) IsNumeric() bool { return !t.IsArray() && !t.IsStruct() && t.Basic.IsNumeric() }

func (t *Type) IsTexture() bool { return t.Basic == SamplerKind && t.Sampler.IsTexture() }
func (t *Type) IsImage() bool   { return t.Basic == SamplerKind && t.Sampler.IsImage() }

// IsImplicitlySizedArray reports an array whose outer size is unresolved.
func (t *Type) IsImplicitlySizedArray() bool { return t.IsArray() && t.Arrays.IsOuterImplicit() }

// IsSizedArray reports an array with all dimensions resolved.
func (t *Type) IsSizedArray() bool { return t.IsArray() && !t.Arrays.IsImplicit() }

// OuterArraySize returns the outer dimension or 0.
func (t *Type) OuterArraySize() int {
	if !t.IsArray() {
		return 0
	}
	return t.Arrays.OuterSize()
}

// ComponentCount is the number of scalar components (struct and array included).
func (t *Type) ComponentCount() int {
	var n int
	switch {
	case t.IsStruct():
		for _, m := range t.Struct.Members {
			n += m.Type.ComponentCount()
		}
	case t.IsMatrix():
		n = t.MatrixCols * t.MatrixRows
	default:
		n = t.VectorSize
	}
	if t.IsArray() {
		n *= t.Arrays.CumulativeSize()
	}
	return n
}

// Element drops the outer array dimension.
func (t *Type) Element() *Type {
	c := t.Clone()
	if c.IsArray() {
		c.Arrays = c.Arrays.Inner()
	}
	return c
}

// Column is the column vector of a matrix.
func (t *Type) Column() *Type {
	c := t.Clone()
	c.Arrays = nil
	c.VectorSize = t.MatrixRows
	c.MatrixCols, c.MatrixRows = 0, 0
	return c
}

// Component is the scalar type of one vector component.
func (t *Type) Component() *Type {
	c := t.Clone()
	c.Arrays = nil
	c.VectorSize, c.Vector1 = 1, false
	c.MatrixCols, c.MatrixRows = 0, 0
	return c
}

// Deref returns the type obtained by indexing t once: array element,
// matrix column, vector component, or struct member i.
func (t *Type) Deref(member int) *Type {
	switch {
	case t.IsArray():
		return t.Element()
	case t.IsStruct():
		return t.Struct.Members[member].Type
	case t.IsMatrix():
		return t.Column()
	default:
		return t.Component()
	}
}

// WithBasic returns a copy of the same shape with another component kind.
func (t *Type) WithBasic(b Basic) *Type {
	c := t.Clone()
	c.Basic = b
	return c
}

// WithVectorSize returns a non-array vector (or scalar for n == 1) of the same kind.
func (t *Type) WithVectorSize(n int) *Type {
	c := t.Component()
	c.VectorSize = n
	return c
}

// Contains walks t, struct members and array elements included.
func (t *Type) Contains(pred func(*Type) bool) bool {
	if pred(t) {
		return true
	}
	if t.IsStruct() {
		for _, m := range t.Struct.Members {
			if m.Type.Contains(pred) {
				return true
			}
		}
	}
	return false
}

// ContainsOpaque reports textures or samplers anywhere inside t.
func (t *Type) ContainsOpaque() bool {
	return t.Contains(func(x *Type) bool { return x.Basic == SamplerKind })
}

// ContainsBuiltin reports builtin-tagged members anywhere inside t.
func (t *Type) ContainsBuiltin() bool {
	return t.Contains(func(x *Type) bool { return x.Qualifier.Builtin != BuiltinNone })
}

// ContainsArray reports an array anywhere inside t.
func (t *Type) ContainsArray() bool {
	return t.Contains(func(x *Type) bool { return x.IsArray() })
}

// ContainsStructure reports a struct anywhere inside t.
func (t *Type) ContainsStructure() bool {
	return t.Contains(func(x *Type) bool { return x.IsStruct() })
}

// SameElementShape compares vector/matrix shape ignoring arrays and kind.
func (t *Type) SameElementShape(o *Type) bool {
	return t.VectorSize == o.VectorSize && t.MatrixCols == o.MatrixCols && t.MatrixRows == o.MatrixRows &&
		t.IsStruct() == o.IsStruct() && t.Struct == o.Struct
}

// SameElementType compares t and o ignoring arrays and qualifiers.
func (t *Type) SameElementType(o *Type) bool {
	if t.Basic != o.Basic || !t.SameElementShape(o) || t.Vector1 != o.Vector1 {
		return false
	}
	if t.Basic == SamplerKind && t.Sampler != o.Sampler {
		return false
	}
	if t.IsStruct() {
		return sameStruct(t.Struct, o.Struct)
	}
	return true
}

// Equal compares everything but the qualifier.
func (t *Type) Equal(o *Type) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	if t.Basic != o.Basic || t.VectorSize != o.VectorSize || t.MatrixCols != o.MatrixCols ||
		t.MatrixRows != o.MatrixRows || t.Vector1 != o.Vector1 || t.Object != o.Object {
		return false
	}
	if !t.Arrays.Equal(o.Arrays) {
		return false
	}
	if t.Basic == SamplerKind && t.Sampler != o.Sampler {
		return false
	}
	if t.IsStruct() {
		return sameStruct(t.Struct, o.Struct)
	}
	return true
}

func sameStruct(a, b *StructDef) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Name != b.Name || len(a.Members) != len(b.Members) {
		return false
	}
	for i := range a.Members {
		if a.Members[i].Name != b.Members[i].Name || !a.Members[i].Type.Equal(b.Members[i].Type) {
			return false
		}
	}
	return true
}

// String renders t in HLSL spelling: float4, float3x4, int[3], S, Texture2D<float4>.
func (t *Type) String() string {
	var sb strings.Builder
	t.writeElement(&sb)
	if t.IsArray() {
		sb.WriteString(t.Arrays.String())
	}
	return sb.String()
}

func (t *Type) writeElement(sb *strings.Builder) {
	switch {
	case t.Basic == SamplerKind:
		sb.WriteString(t.Sampler.String())
	case t.IsStruct():
		if t.TypeName != "" {
			sb.WriteString(t.TypeName)
		} else {
			sb.WriteString("<anonymous struct>")
		}
	case t.IsMatrix():
		// rows x cols in HLSL spelling, see the layout note on Type
		fmt.Fprintf(sb, "%s%dx%d", t.Basic, t.MatrixCols, t.MatrixRows)
	case t.VectorSize > 1 || t.Vector1:
		fmt.Fprintf(sb, "%s%d", t.Basic, t.VectorSize)
	default:
		sb.WriteString(t.Basic.String())
	}
}

// Describe renders the qualifier followed by the type.
func (t *Type) Describe() string {
	if q := t.Qualifier.String(); q != "" {
		return q + " " + t.String()
	}
	return t.String()
}
