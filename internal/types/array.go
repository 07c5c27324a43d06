package types

import (
	"fmt"
	"strings"
)

// Implicit marks an array dimension whose size is not known yet.
const Implicit = 0

// Node is the slice of an IR node an array dimension may defer to
// (specialization-constant sizes).
type Node interface {
	Type() *Type
}

// ArrayDim is one array dimension.
type ArrayDim struct {
	Size int
	Expr Node // deferred size expression, nil for literal sizes
}

// ArraySizes lists dimensions outer-first.
type ArraySizes struct {
	Dims []ArrayDim
}

// NewArraySizes creates sizes from literal dimensions, outer-first.
func NewArraySizes(sizes ...int) *ArraySizes {
	a := &ArraySizes{Dims: make([]ArrayDim, len(sizes))}
	for i, s := range sizes {
		a.Dims[i].Size = s
	}
	return a
}

// Clone deep-copies the dimension list.
func (a *ArraySizes) Clone() *ArraySizes {
	if a == nil {
		return nil
	}
	return &ArraySizes{Dims: append([]ArrayDim(nil), a.Dims...)}
}

// NumDims returns the number of dimensions.
func (a *ArraySizes) NumDims() int {
	if a == nil {
		return 0
	}
	return len(a.Dims)
}

// OuterSize returns the size of the outermost dimension.
func (a *ArraySizes) OuterSize() int { return a.Dims[0].Size }

// SetOuterSize resolves the outermost dimension.
func (a *ArraySizes) SetOuterSize(n int) { a.Dims[0] = ArrayDim{Size: n} }

// AddInner appends dimensions of other after the existing ones.
func (a *ArraySizes) AddInner(other *ArraySizes) {
	if other != nil {
		a.Dims = append(a.Dims, other.Dims...)
	}
}

// AddOuter prepends one dimension.
func (a *ArraySizes) AddOuter(d ArrayDim) {
	a.Dims = append([]ArrayDim{d}, a.Dims...)
}

// IsOuterImplicit reports whether the outer dimension is unresolved.
func (a *ArraySizes) IsOuterImplicit() bool {
	return a.Dims[0].Size == Implicit && a.Dims[0].Expr == nil
}

// IsImplicit reports whether any dimension is unresolved.
func (a *ArraySizes) IsImplicit() bool {
	for _, d := range a.Dims {
		if d.Size == Implicit && d.Expr == nil {
			return true
		}
	}
	return false
}

// IsDeferred reports whether any dimension waits on a size expression.
func (a *ArraySizes) IsDeferred() bool {
	for _, d := range a.Dims {
		if d.Expr != nil {
			return true
		}
	}
	return false
}

// CumulativeSize is the product of all dimensions (0 if any is unresolved).
func (a *ArraySizes) CumulativeSize() int {
	n := 1
	for _, d := range a.Dims {
		n *= d.Size
	}
	return n
}

// Inner returns sizes without the outer dimension, or nil for a 1-D array.
func (a *ArraySizes) Inner() *ArraySizes {
	if len(a.Dims) <= 1 {
		return nil
	}
	return &ArraySizes{Dims: append([]ArrayDim(nil), a.Dims[1:]...)}
}

// Equal compares literal sizes dimension by dimension.
func (a *ArraySizes) Equal(b *ArraySizes) bool {
	if a.NumDims() != b.NumDims() {
		return false
	}
	for i := range a.NumDims() {
		if a.Dims[i].Size != b.Dims[i].Size || a.Dims[i].Expr != b.Dims[i].Expr {
			return false
		}
	}
	return true
}

func (a *ArraySizes) String() string {
	var sb strings.Builder
	for _, d := range a.Dims {
		switch {
		case d.Expr != nil:
			sb.WriteString("[?]")
		case d.Size == Implicit:
			sb.WriteString("[]")
		default:
			fmt.Fprintf(&sb, "[%d]", d.Size)
		}
	}
	return sb.String()
}
