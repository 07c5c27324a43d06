package types

import (
	"fmt"
	"strings"
)

// Dim is the dimensionality of a texture or image.
type Dim uint8

const (
	DimNone Dim = iota
	Dim1D
	Dim2D
	Dim3D
	DimCube
	DimRect
	DimBuffer
	DimSubpass
)

var dimNames = [...]string{DimNone: "", Dim1D: "1D", Dim2D: "2D", Dim3D: "3D", DimCube: "Cube", DimRect: "Rect", DimBuffer: "Buffer", DimSubpass: "Subpass"}

func (d Dim) String() string {
	if int(d) < len(dimNames) {
		return dimNames[d]
	}
	return fmt.Sprintf("Dim(%d)", d)
}

// Sampler describes opaque texture/image/sampler objects.
// Type and VectorSize are the component type returned by loads and samples.
type Sampler struct {
	Type       Basic
	VectorSize int
	Dim        Dim
	Arrayed    bool
	Shadow     bool
	MS         bool
	Image      bool // RW texture or RW buffer
	Combined   bool // texture + sampler in one value
	Pure       bool // SamplerState / SamplerComparisonState
	External   bool
}

// IsPureSampler reports SamplerState-like objects.
func (s Sampler) IsPureSampler() bool { return s.Pure }

// IsTexture reports a separate, sampleable texture.
func (s Sampler) IsTexture() bool { return !s.Pure && !s.Image && !s.Combined && s.Dim != DimSubpass }

// IsImage reports read/write images.
func (s Sampler) IsImage() bool { return s.Image && s.Dim != DimSubpass }

// IsSubpass reports subpass inputs.
func (s Sampler) IsSubpass() bool { return s.Dim == DimSubpass }

// IsBuffer reports Buffer / RWBuffer.
func (s Sampler) IsBuffer() bool { return s.Dim == DimBuffer }

// CoordComponents is the number of coordinate components including the array layer.
func (s Sampler) CoordComponents() int {
	n := 0
	switch s.Dim {
	case Dim1D, DimBuffer:
		n = 1
	case Dim2D, DimRect, DimSubpass:
		n = 2
	case Dim3D, DimCube:
		n = 3
	}
	if s.Arrayed {
		n++
	}
	return n
}

// OffsetComponents is the number of components of an integer texel offset.
func (s Sampler) OffsetComponents() int {
	switch s.Dim {
	case Dim1D, DimBuffer:
		return 1
	case Dim2D, DimRect:
		return 2
	case Dim3D:
		return 3
	default:
		return 0
	}
}

// Combine returns the combined-sampler descriptor built from a texture and a sampler.
func (s Sampler) Combine(shadow bool) Sampler {
	c := s
	c.Combined = true
	c.Pure = false
	c.Shadow = shadow
	return c
}

// String renders the descriptor in HLSL-ish spelling, e.g. "Texture2DArray<float4>".
func (s Sampler) String() string {
	var sb strings.Builder
	switch {
	case s.Pure && s.Shadow:
		return "SamplerComparisonState"
	case s.Pure:
		return "SamplerState"
	case s.Combined:
		sb.WriteString("sampler")
	case s.Image:
		sb.WriteString("RW")
	}
	switch {
	case s.Dim == DimBuffer:
		sb.WriteString("Buffer")
	case s.Dim == DimSubpass:
		sb.WriteString("SubpassInput")
	default:
		sb.WriteString("Texture")
		sb.WriteString(s.Dim.String())
	}
	if s.MS {
		sb.WriteString("MS")
	}
	if s.Arrayed {
		sb.WriteString("Array")
	}
	if s.Shadow {
		sb.WriteString("Shadow")
	}
	sb.WriteByte('<')
	sb.WriteString(s.Type.String())
	if s.VectorSize > 1 {
		fmt.Fprintf(&sb, "%d", s.VectorSize)
	}
	sb.WriteByte('>')
	return sb.String()
}
