package types

import "fmt"

// Builtin is the fixed interstage role of a variable or member.
type Builtin uint8

const (
	BuiltinNone Builtin = iota
	BuiltinPosition
	BuiltinPointSize
	BuiltinClipDistance
	BuiltinCullDistance
	BuiltinVertexIndex
	BuiltinInstanceIndex
	BuiltinPrimitiveID
	BuiltinInvocationID
	BuiltinLayer
	BuiltinViewportIndex
	BuiltinTessLevelOuter
	BuiltinTessLevelInner
	BuiltinTessCoord
	BuiltinFragCoord
	BuiltinFrontFacing
	BuiltinSampleID
	BuiltinSampleMask
	BuiltinFragDepth
	BuiltinFragStencilRef
	BuiltinNumWorkGroups
	BuiltinWorkGroupID
	BuiltinLocalInvocationID
	BuiltinGlobalInvocationID
	BuiltinLocalInvocationIndex
	BuiltinViewIndex
	BuiltinBaryCoord
	builtinCount
)

var builtinNames = [builtinCount]string{
	BuiltinNone:                 "",
	BuiltinPosition:             "Position",
	BuiltinPointSize:            "PointSize",
	BuiltinClipDistance:         "ClipDistance",
	BuiltinCullDistance:         "CullDistance",
	BuiltinVertexIndex:          "VertexIndex",
	BuiltinInstanceIndex:        "InstanceIndex",
	BuiltinPrimitiveID:          "PrimitiveID",
	BuiltinInvocationID:         "InvocationID",
	BuiltinLayer:                "Layer",
	BuiltinViewportIndex:        "ViewportIndex",
	BuiltinTessLevelOuter:       "TessLevelOuter",
	BuiltinTessLevelInner:       "TessLevelInner",
	BuiltinTessCoord:            "TessCoord",
	BuiltinFragCoord:            "FragCoord",
	BuiltinFrontFacing:          "FrontFacing",
	BuiltinSampleID:             "SampleId",
	BuiltinSampleMask:           "SampleMask",
	BuiltinFragDepth:            "FragDepth",
	BuiltinFragStencilRef:       "FragStencilRef",
	BuiltinNumWorkGroups:        "NumWorkGroups",
	BuiltinWorkGroupID:          "WorkGroupID",
	BuiltinLocalInvocationID:    "LocalInvocationID",
	BuiltinGlobalInvocationID:   "GlobalInvocationID",
	BuiltinLocalInvocationIndex: "LocalInvocationIndex",
	BuiltinViewIndex:            "ViewIndex",
	BuiltinBaryCoord:            "BaryCoord",
}

func (b Builtin) String() string {
	if b < builtinCount {
		return builtinNames[b]
	}
	return fmt.Sprintf("Builtin(%d)", b)
}

// IsArrayed reports builtins that are arrays of scalars in the IR
// (clip/cull distances and tessellation factors).
func (b Builtin) IsArrayed() bool {
	switch b {
	case BuiltinClipDistance, BuiltinCullDistance, BuiltinTessLevelOuter, BuiltinTessLevelInner:
		return true
	default:
		return false
	}
}
