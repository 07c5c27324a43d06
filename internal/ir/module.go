package ir

import (
	"fmt"
	"strings"

	"hlslc/internal/types"
)

// Stage is the shader pipeline stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StageHull
	StageDomain
	StageGeometry
	StageFragment
	StageCompute
)

var stageNames = [...]string{"vert", "tesc", "tese", "geom", "frag", "comp"}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", s)
}

// ParseStage accepts the short names and the HLSL profile prefixes (vs, ps, ...).
func ParseStage(s string) (Stage, error) {
	switch strings.ToLower(s) {
	case "vert", "vertex", "vs":
		return StageVertex, nil
	case "tesc", "hull", "hs":
		return StageHull, nil
	case "tese", "domain", "ds":
		return StageDomain, nil
	case "geom", "geometry", "gs":
		return StageGeometry, nil
	case "frag", "fragment", "pixel", "ps":
		return StageFragment, nil
	case "comp", "compute", "cs":
		return StageCompute, nil
	}
	return StageVertex, fmt.Errorf("unknown shader stage %q", s)
}

// Primitive is a geometry or tessellation primitive kind.
type Primitive uint8

const (
	PrimNone Primitive = iota
	PrimPoints
	PrimLines
	PrimLinesAdjacency
	PrimTriangles
	PrimTrianglesAdjacency
	PrimLineStrip
	PrimTriangleStrip
	PrimQuads
	PrimIsolines
)

var primNames = [...]string{"none", "points", "lines", "lines_adjacency", "triangles", "triangles_adjacency", "line_strip", "triangle_strip", "quads", "isolines"}

func (p Primitive) String() string {
	if int(p) < len(primNames) {
		return primNames[p]
	}
	return fmt.Sprintf("Primitive(%d)", p)
}

// Spacing is the tessellation partitioning.
type Spacing uint8

const (
	SpacingNone Spacing = iota
	SpacingEqual
	SpacingFractionalEven
	SpacingFractionalOdd
)

// VertexOrder is the tessellation winding.
type VertexOrder uint8

const (
	OrderNone VertexOrder = iota
	OrderCW
	OrderCCW
)

// Module is the compiled unit: the tree plus shader-stage configuration.
type Module struct {
	Stage             Stage
	Root              Node
	EntryPoint        string
	EntryPointMangled string
	LocalSize         [3]int
	Vertices          int // maxvertexcount / outputcontrolpoints
	Invocations       int
	InputPrimitive    Primitive
	OutputPrimitive   Primitive
	Spacing           Spacing
	Order             VertexOrder
	PointMode         bool
	Depth             types.DepthMode
	EarlyFragment     bool
	PatchConstantFunc string
	LinkerObjects     []*Symbol
	linked            map[SymbolID]bool
}

// NewModule creates an empty module for stage.
func NewModule(stage Stage) *Module {
	return &Module{Stage: stage, LocalSize: [3]int{1, 1, 1}, linked: make(map[SymbolID]bool)}
}

// AddLinkerObject records a variable that is visible across the stage boundary
// or as a global resource. Adding the same symbol twice is a no-op.
func (m *Module) AddLinkerObject(sym *Symbol) {
	if m.linked[sym.ID] {
		return
	}
	m.linked[sym.ID] = true
	m.LinkerObjects = append(m.LinkerObjects, sym)
}

// SetLocalSize sets one workgroup dimension.
func (m *Module) SetLocalSize(dim, size int) { m.LocalSize[dim] = size }

// SetVertices sets the output vertex count; false when it was already set differently.
func (m *Module) SetVertices(n int) bool {
	if m.Vertices != 0 && m.Vertices != n {
		return false
	}
	m.Vertices = n
	return true
}

// SetInputPrimitive sets the geometry input primitive once.
func (m *Module) SetInputPrimitive(p Primitive) bool {
	if m.InputPrimitive != PrimNone && m.InputPrimitive != p {
		return false
	}
	m.InputPrimitive = p
	return true
}

// SetOutputPrimitive sets the geometry/tessellation output primitive once.
func (m *Module) SetOutputPrimitive(p Primitive) bool {
	if m.OutputPrimitive != PrimNone && m.OutputPrimitive != p {
		return false
	}
	m.OutputPrimitive = p
	return true
}
