package ir

import "fmt"

// Op is the operator of an IR node.
type Op uint16

const (
	OpNull Op = iota // unfinished aggregate
	OpSequence
	OpLinkerObjects
	OpFunctionCall
	OpFunction
	OpParameters
	OpComma

	// unary
	OpNegative
	OpLogicalNot
	OpBitwiseNot
	OpPostIncrement
	OpPostDecrement
	OpPreIncrement
	OpPreDecrement
	OpConvert // component kind conversion, target on node type
	OpCopyObject

	// binary
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpRightShift
	OpLeftShift
	OpAnd
	OpInclusiveOr
	OpExclusiveOr
	OpEqual
	OpNotEqual
	OpVectorEqual
	OpVectorNotEqual
	OpLessThan
	OpGreaterThan
	OpLessThanEqual
	OpGreaterThanEqual
	OpVectorTimesScalar
	OpVectorTimesMatrix
	OpMatrixTimesVector
	OpMatrixTimesScalar
	OpMatrixTimesMatrix
	OpLogicalOr
	OpLogicalXor
	OpLogicalAnd
	OpIndexDirect
	OpIndexIndirect
	OpIndexDirectStruct
	OpVectorSwizzle
	OpMatrixSwizzle

	// assignment
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpVectorTimesMatrixAssign
	OpVectorTimesScalarAssign
	OpMatrixTimesScalarAssign
	OpMatrixTimesMatrixAssign
	OpDivAssign
	OpModAssign
	OpAndAssign
	OpInclusiveOrAssign
	OpExclusiveOrAssign
	OpLeftShiftAssign
	OpRightShiftAssign

	// constructors
	OpConstruct
	OpConstructTextureSampler

	// math and common functions
	OpRadians
	OpDegrees
	OpSin
	OpCos
	OpTan
	OpAsin
	OpAcos
	OpAtan
	OpSinh
	OpCosh
	OpTanh
	OpPow
	OpExp
	OpLog
	OpExp2
	OpLog2
	OpSqrt
	OpInverseSqrt
	OpAbs
	OpSign
	OpFloor
	OpTrunc
	OpRound
	OpRoundEven
	OpCeil
	OpFract
	OpMod2 // fmod
	OpModf
	OpMin
	OpMax
	OpClamp
	OpMix
	OpStep
	OpSmoothStep
	OpIsNan
	OpIsInf
	OpFma
	OpFrexp
	OpLdexp
	OpFloatBitsToInt
	OpFloatBitsToUint
	OpIntBitsToFloat
	OpUintBitsToFloat
	OpPackHalf2x16
	OpUnpackHalf2x16
	OpPackDouble2x32
	OpUnpackDouble2x32
	OpLength
	OpDistance
	OpDot
	OpCross
	OpNormalize
	OpFaceForward
	OpReflect
	OpRefract
	OpOuterProduct
	OpDeterminant
	OpMatrixInverse
	OpTranspose
	OpAny
	OpAll
	OpBitFieldReverse
	OpBitCount
	OpFindLSB
	OpFindMSB
	OpDPdx
	OpDPdy
	OpFwidth
	OpDPdxFine
	OpDPdyFine
	OpFwidthFine
	OpDPdxCoarse
	OpDPdyCoarse
	OpFwidthCoarse
	OpInterpolateAtCentroid
	OpInterpolateAtSample
	OpInterpolateAtOffset
	OpEmitVertex
	OpEndPrimitive
	OpEmitStreamVertex
	OpEndStreamPrimitive
	OpBarrier
	OpMemoryBarrier
	OpMemoryBarrierImage
	OpGroupMemoryBarrier
	OpWorkgroupMemoryBarrier
	OpWorkgroupMemoryBarrierWithGroupSync
	OpAllMemoryBarrier
	OpAllMemoryBarrierWithGroupSync
	OpDeviceMemoryBarrier
	OpDeviceMemoryBarrierWithGroupSync
	OpArrayLength

	// memory and image atomics
	OpAtomicAdd
	OpAtomicMin
	OpAtomicMax
	OpAtomicAnd
	OpAtomicOr
	OpAtomicXor
	OpAtomicExchange
	OpAtomicCompSwap
	OpImageAtomicAdd
	OpImageAtomicMin
	OpImageAtomicMax
	OpImageAtomicAnd
	OpImageAtomicOr
	OpImageAtomicXor
	OpImageAtomicExchange
	OpImageAtomicCompSwap

	// images and textures
	OpImageLoad
	OpImageStore
	OpImageQuerySize
	OpImageQuerySamples
	OpSubpassLoad
	OpSubpassLoadMS
	OpTextureQuerySize
	OpTextureQueryLod
	OpTextureQueryLevels
	OpTextureQuerySamples
	OpTexture
	OpTextureLod
	OpTextureOffset
	OpTextureFetch
	OpTextureFetchOffset
	OpTextureLodOffset
	OpTextureGrad
	OpTextureGradOffset
	OpTextureGather
	OpTextureGatherOffset
	OpTextureGatherOffsets

	// HLSL intrinsics, decomposed before the tree is finished
	OpClip
	OpRcp
	OpSaturate
	OpLog10
	OpSinCos
	OpGenMul // mul()
	OpDst
	OpLit
	OpD3DCOLORtoUBYTE4
	OpF16tof32
	OpF32tof16
	OpAsDouble
	OpIsFinite
	OpEvaluateAttributeAtCentroid
	OpEvaluateAttributeAtSample
	OpEvaluateAttributeSnapped
	OpGetRenderTargetSampleCount
	OpGetRenderTargetSamplePosition
	OpInterlockedAdd
	OpInterlockedAnd
	OpInterlockedCompareExchange
	OpInterlockedCompareStore
	OpInterlockedExchange
	OpInterlockedMax
	OpInterlockedMin
	OpInterlockedOr
	OpInterlockedXor
	OpAbort
	OpErrorf
	OpPrintf
	OpTex1D // DX9 tex*() family
	OpTex2D
	OpTex3D
	OpTexCube

	// texture, buffer and stream methods
	OpMethodSample
	OpMethodSampleBias
	OpMethodSampleCmp
	OpMethodSampleCmpLevelZero
	OpMethodSampleGrad
	OpMethodSampleLevel
	OpMethodLoad
	OpMethodGetDimensions
	OpMethodGetSamplePosition
	OpMethodGather
	OpMethodCalculateLevelOfDetail
	OpMethodCalculateLevelOfDetailUnclamped
	OpMethodGatherRed
	OpMethodGatherGreen
	OpMethodGatherBlue
	OpMethodGatherAlpha
	OpMethodGatherCmp
	OpMethodGatherCmpRed
	OpMethodGatherCmpGreen
	OpMethodGatherCmpBlue
	OpMethodGatherCmpAlpha
	OpMethodLoad2
	OpMethodLoad3
	OpMethodLoad4
	OpMethodStore
	OpMethodStore2
	OpMethodStore3
	OpMethodStore4
	OpMethodIncrementCounter
	OpMethodDecrementCounter
	OpMethodConsume
	OpMethodAppend
	OpMethodRestartStrip
	OpMethodInterlockedAdd
	OpMethodInterlockedAnd
	OpMethodInterlockedCompareExchange
	OpMethodInterlockedCompareStore
	OpMethodInterlockedExchange
	OpMethodInterlockedMax
	OpMethodInterlockedMin
	OpMethodInterlockedOr
	OpMethodInterlockedXor

	// branches
	OpKill
	OpReturn
	OpBreak
	OpContinue
	OpCase
	OpDefault

	opCount
)

var opNames = [opCount]string{
	OpNull:          "null",
	OpSequence:      "Sequence",
	OpLinkerObjects: "Linker Objects",
	OpFunctionCall:  "Function Call",
	OpFunction:      "Function Definition",
	OpParameters:    "Function Parameters",
	OpComma:         "Comma",

	OpNegative:      "Negate value",
	OpLogicalNot:    "Negate conditional",
	OpBitwiseNot:    "Bitwise not",
	OpPostIncrement: "Post-Increment",
	OpPostDecrement: "Post-Decrement",
	OpPreIncrement:  "Pre-Increment",
	OpPreDecrement:  "Pre-Decrement",
	OpConvert:       "Convert",
	OpCopyObject:    "copy object",

	OpAdd:               "add",
	OpSub:               "subtract",
	OpMul:               "component-wise multiply",
	OpDiv:               "divide",
	OpMod:               "mod",
	OpRightShift:        "right-shift",
	OpLeftShift:         "left-shift",
	OpAnd:               "bitwise and",
	OpInclusiveOr:       "inclusive-or",
	OpExclusiveOr:       "exclusive-or",
	OpEqual:             "Compare Equal",
	OpNotEqual:          "Compare Not Equal",
	OpVectorEqual:       "Equal",
	OpVectorNotEqual:    "NotEqual",
	OpLessThan:          "Compare Less Than",
	OpGreaterThan:       "Compare Greater Than",
	OpLessThanEqual:     "Compare Less Than or Equal",
	OpGreaterThanEqual:  "Compare Greater Than or Equal",
	OpVectorTimesScalar: "vector-scale",
	OpVectorTimesMatrix: "vector-times-matrix",
	OpMatrixTimesVector: "matrix-times-vector",
	OpMatrixTimesScalar: "matrix-scale",
	OpMatrixTimesMatrix: "matrix-multiply",
	OpLogicalOr:         "logical-or",
	OpLogicalXor:        "logical-xor",
	OpLogicalAnd:        "logical-and",
	OpIndexDirect:       "direct index",
	OpIndexIndirect:     "indirect index",
	OpIndexDirectStruct: "direct index for structure",
	OpVectorSwizzle:     "vector swizzle",
	OpMatrixSwizzle:     "matrix swizzle",

	OpAssign:                  "move second child to first child",
	OpAddAssign:               "add second child into first child",
	OpSubAssign:               "subtract second child into first child",
	OpMulAssign:               "multiply second child into first child",
	OpVectorTimesMatrixAssign: "matrix mult second child into first child",
	OpVectorTimesScalarAssign: "vector scale second child into first child",
	OpMatrixTimesScalarAssign: "matrix scale second child into first child",
	OpMatrixTimesMatrixAssign: "matrix mult second child into first child",
	OpDivAssign:               "divide second child into first child",
	OpModAssign:               "mod second child into first child",
	OpAndAssign:               "and second child into first child",
	OpInclusiveOrAssign:       "or second child into first child",
	OpExclusiveOrAssign:       "exclusive or second child into first child",
	OpLeftShiftAssign:         "left shift second child into first child",
	OpRightShiftAssign:        "right shift second child into first child",

	OpConstruct:               "Construct",
	OpConstructTextureSampler: "Construct combined texture-sampler",

	OpRadians:          "radians",
	OpDegrees:          "degrees",
	OpSin:              "sine",
	OpCos:              "cosine",
	OpTan:              "tangent",
	OpAsin:             "arc sine",
	OpAcos:             "arc cosine",
	OpAtan:             "arc tangent",
	OpSinh:             "hyp. sine",
	OpCosh:             "hyp. cosine",
	OpTanh:             "hyp. tangent",
	OpPow:              "pow",
	OpExp:              "exp",
	OpLog:              "log",
	OpExp2:             "exp2",
	OpLog2:             "log2",
	OpSqrt:             "sqrt",
	OpInverseSqrt:      "inverse sqrt",
	OpAbs:              "Absolute value",
	OpSign:             "Sign",
	OpFloor:            "Floor",
	OpTrunc:            "trunc",
	OpRound:            "round",
	OpRoundEven:        "roundEven",
	OpCeil:             "Ceiling",
	OpFract:            "Fraction",
	OpMod2:             "mod",
	OpModf:             "modf",
	OpMin:              "min",
	OpMax:              "max",
	OpClamp:            "clamp",
	OpMix:              "mix",
	OpStep:             "step",
	OpSmoothStep:       "smoothstep",
	OpIsNan:            "isnan",
	OpIsInf:            "isinf",
	OpFma:              "fma",
	OpFrexp:            "frexp",
	OpLdexp:            "ldexp",
	OpFloatBitsToInt:   "floatBitsToInt",
	OpFloatBitsToUint:  "floatBitsToUint",
	OpIntBitsToFloat:   "intBitsToFloat",
	OpUintBitsToFloat:  "uintBitsToFloat",
	OpPackHalf2x16:     "packHalf2x16",
	OpUnpackHalf2x16:   "unpackHalf2x16",
	OpPackDouble2x32:   "packDouble2x32",
	OpUnpackDouble2x32: "unpackDouble2x32",
	OpLength:           "length",
	OpDistance:         "distance",
	OpDot:              "dot-product",
	OpCross:            "cross-product",
	OpNormalize:        "normalize",
	OpFaceForward:      "face-forward",
	OpReflect:          "reflect",
	OpRefract:          "refract",
	OpOuterProduct:     "outer product",
	OpDeterminant:      "determinant",
	OpMatrixInverse:    "inverse",
	OpTranspose:        "transpose",
	OpAny:              "any",
	OpAll:              "all",
	OpBitFieldReverse:  "bitFieldReverse",
	OpBitCount:         "bitCount",
	OpFindLSB:          "findLSB",
	OpFindMSB:          "findMSB",
	OpDPdx:             "dPdx",
	OpDPdy:             "dPdy",
	OpFwidth:           "fwidth",
	OpDPdxFine:         "dPdxFine",
	OpDPdyFine:         "dPdyFine",
	OpFwidthFine:       "fwidthFine",
	OpDPdxCoarse:       "dPdxCoarse",
	OpDPdyCoarse:       "dPdyCoarse",
	OpFwidthCoarse:     "fwidthCoarse",

	OpInterpolateAtCentroid: "interpolateAtCentroid",
	OpInterpolateAtSample:   "interpolateAtSample",
	OpInterpolateAtOffset:   "interpolateAtOffset",
	OpEmitVertex:            "EmitVertex",
	OpEndPrimitive:          "EndPrimitive",
	OpEmitStreamVertex:      "EmitStreamVertex",
	OpEndStreamPrimitive:    "EndStreamPrimitive",

	OpBarrier:                             "Barrier",
	OpMemoryBarrier:                       "MemoryBarrier",
	OpMemoryBarrierImage:                  "MemoryBarrierImage",
	OpGroupMemoryBarrier:                  "GroupMemoryBarrier",
	OpWorkgroupMemoryBarrier:              "WorkgroupMemoryBarrier",
	OpWorkgroupMemoryBarrierWithGroupSync: "WorkgroupMemoryBarrierWithGroupSync",
	OpAllMemoryBarrier:                    "AllMemoryBarrier",
	OpAllMemoryBarrierWithGroupSync:       "AllMemoryBarrierWithGroupSync",
	OpDeviceMemoryBarrier:                 "DeviceMemoryBarrier",
	OpDeviceMemoryBarrierWithGroupSync:    "DeviceMemoryBarrierWithGroupSync",
	OpArrayLength:                         "array length",

	OpAtomicAdd:           "AtomicAdd",
	OpAtomicMin:           "AtomicMin",
	OpAtomicMax:           "AtomicMax",
	OpAtomicAnd:           "AtomicAnd",
	OpAtomicOr:            "AtomicOr",
	OpAtomicXor:           "AtomicXor",
	OpAtomicExchange:      "AtomicExchange",
	OpAtomicCompSwap:      "AtomicCompSwap",
	OpImageAtomicAdd:      "imageAtomicAdd",
	OpImageAtomicMin:      "imageAtomicMin",
	OpImageAtomicMax:      "imageAtomicMax",
	OpImageAtomicAnd:      "imageAtomicAnd",
	OpImageAtomicOr:       "imageAtomicOr",
	OpImageAtomicXor:      "imageAtomicXor",
	OpImageAtomicExchange: "imageAtomicExchange",
	OpImageAtomicCompSwap: "imageAtomicCompSwap",

	OpImageLoad:            "imageLoad",
	OpImageStore:           "imageStore",
	OpImageQuerySize:       "imageQuerySize",
	OpImageQuerySamples:    "imageQuerySamples",
	OpSubpassLoad:          "subpassLoad",
	OpSubpassLoadMS:        "subpassLoadMS",
	OpTextureQuerySize:     "textureSize",
	OpTextureQueryLod:      "textureQueryLod",
	OpTextureQueryLevels:   "textureQueryLevels",
	OpTextureQuerySamples:  "textureSamples",
	OpTexture:              "texture",
	OpTextureLod:           "textureLod",
	OpTextureOffset:        "textureOffset",
	OpTextureFetch:         "textureFetch",
	OpTextureFetchOffset:   "textureFetchOffset",
	OpTextureLodOffset:     "textureLodOffset",
	OpTextureGrad:          "textureGrad",
	OpTextureGradOffset:    "textureGradOffset",
	OpTextureGather:        "textureGather",
	OpTextureGatherOffset:  "textureGatherOffset",
	OpTextureGatherOffsets: "textureGatherOffsets",

	OpClip:                          "clip",
	OpRcp:                           "rcp",
	OpSaturate:                      "saturate",
	OpLog10:                         "log10",
	OpSinCos:                        "sincos",
	OpGenMul:                        "mul",
	OpDst:                           "dst",
	OpLit:                           "lit",
	OpD3DCOLORtoUBYTE4:              "D3DCOLORtoUBYTE4",
	OpF16tof32:                      "f16tof32",
	OpF32tof16:                      "f32tof16",
	OpAsDouble:                      "asdouble",
	OpIsFinite:                      "isfinite",
	OpEvaluateAttributeAtCentroid:   "EvaluateAttributeAtCentroid",
	OpEvaluateAttributeAtSample:     "EvaluateAttributeAtSample",
	OpEvaluateAttributeSnapped:      "EvaluateAttributeSnapped",
	OpGetRenderTargetSampleCount:    "GetRenderTargetSampleCount",
	OpGetRenderTargetSamplePosition: "GetRenderTargetSamplePosition",
	OpInterlockedAdd:                "InterlockedAdd",
	OpInterlockedAnd:                "InterlockedAnd",
	OpInterlockedCompareExchange:    "InterlockedCompareExchange",
	OpInterlockedCompareStore:       "InterlockedCompareStore",
	OpInterlockedExchange:           "InterlockedExchange",
	OpInterlockedMax:                "InterlockedMax",
	OpInterlockedMin:                "InterlockedMin",
	OpInterlockedOr:                 "InterlockedOr",
	OpInterlockedXor:                "InterlockedXor",
	OpAbort:                         "abort",
	OpErrorf:                        "errorf",
	OpPrintf:                        "printf",
	OpTex1D:                         "tex1D",
	OpTex2D:                         "tex2D",
	OpTex3D:                         "tex3D",
	OpTexCube:                       "texCUBE",

	OpMethodSample:                          "Sample",
	OpMethodSampleBias:                      "SampleBias",
	OpMethodSampleCmp:                       "SampleCmp",
	OpMethodSampleCmpLevelZero:              "SampleCmpLevelZero",
	OpMethodSampleGrad:                      "SampleGrad",
	OpMethodSampleLevel:                     "SampleLevel",
	OpMethodLoad:                            "Load",
	OpMethodGetDimensions:                   "GetDimensions",
	OpMethodGetSamplePosition:               "GetSamplePosition",
	OpMethodGather:                          "Gather",
	OpMethodCalculateLevelOfDetail:          "CalculateLevelOfDetail",
	OpMethodCalculateLevelOfDetailUnclamped: "CalculateLevelOfDetailUnclamped",
	OpMethodGatherRed:                       "GatherRed",
	OpMethodGatherGreen:                     "GatherGreen",
	OpMethodGatherBlue:                      "GatherBlue",
	OpMethodGatherAlpha:                     "GatherAlpha",
	OpMethodGatherCmp:                       "GatherCmp",
	OpMethodGatherCmpRed:                    "GatherCmpRed",
	OpMethodGatherCmpGreen:                  "GatherCmpGreen",
	OpMethodGatherCmpBlue:                   "GatherCmpBlue",
	OpMethodGatherCmpAlpha:                  "GatherCmpAlpha",
	OpMethodLoad2:                           "Load2",
	OpMethodLoad3:                           "Load3",
	OpMethodLoad4:                           "Load4",
	OpMethodStore:                           "Store",
	OpMethodStore2:                          "Store2",
	OpMethodStore3:                          "Store3",
	OpMethodStore4:                          "Store4",
	OpMethodIncrementCounter:                "IncrementCounter",
	OpMethodDecrementCounter:                "DecrementCounter",
	OpMethodConsume:                         "Consume",
	OpMethodAppend:                          "Append",
	OpMethodRestartStrip:                    "RestartStrip",
	OpMethodInterlockedAdd:                  "InterlockedAdd",
	OpMethodInterlockedAnd:                  "InterlockedAnd",
	OpMethodInterlockedCompareExchange:      "InterlockedCompareExchange",
	OpMethodInterlockedCompareStore:         "InterlockedCompareStore",
	OpMethodInterlockedExchange:             "InterlockedExchange",
	OpMethodInterlockedMax:                  "InterlockedMax",
	OpMethodInterlockedMin:                  "InterlockedMin",
	OpMethodInterlockedOr:                   "InterlockedOr",
	OpMethodInterlockedXor:                  "InterlockedXor",

	OpKill:     "Kill",
	OpReturn:   "Return",
	OpBreak:    "Break",
	OpContinue: "Continue",
	OpCase:     "case",
	OpDefault:  "default",
}

func (op Op) String() string {
	if op < opCount && opNames[op] != "" {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", op)
}

// IsAssignment reports the assignment family.
func (op Op) IsAssignment() bool { return op >= OpAssign && op <= OpRightShiftAssign }

// IsIncDec reports ++ and -- in both positions.
func (op Op) IsIncDec() bool { return op >= OpPostIncrement && op <= OpPreDecrement }

// IsComparison reports relational and equality operators.
func (op Op) IsComparison() bool { return op >= OpEqual && op <= OpGreaterThanEqual }

// IsLogical reports &&, || and ^^.
func (op Op) IsLogical() bool { return op >= OpLogicalOr && op <= OpLogicalAnd }

// IsIndex reports the index and swizzle family.
func (op Op) IsIndex() bool { return op >= OpIndexDirect && op <= OpMatrixSwizzle }

// IsMethod reports object methods.
func (op Op) IsMethod() bool { return op >= OpMethodSample && op <= OpMethodInterlockedXor }

// IsTexture reports canonical sampling/fetch ops.
func (op Op) IsTexture() bool { return op >= OpTextureQuerySize && op <= OpTextureGatherOffsets }

// IsImage reports canonical image ops.
func (op Op) IsImage() bool {
	return (op >= OpImageLoad && op <= OpImageQuerySamples) || (op >= OpImageAtomicAdd && op <= OpImageAtomicCompSwap)
}

// IsInterlocked reports the HLSL Interlocked* intrinsics.
func (op Op) IsInterlocked() bool { return op >= OpInterlockedAdd && op <= OpInterlockedXor }

// IsBranch reports branch ops.
func (op Op) IsBranch() bool { return op >= OpKill && op <= OpDefault }

// BinaryOfAssign maps a compound assignment to its binary operator.
func (op Op) BinaryOfAssign() Op {
	switch op {
	case OpAddAssign:
		return OpAdd
	case OpSubAssign:
		return OpSub
	case OpMulAssign:
		return OpMul
	case OpVectorTimesScalarAssign:
		return OpVectorTimesScalar
	case OpMatrixTimesScalarAssign:
		return OpMatrixTimesScalar
	case OpVectorTimesMatrixAssign:
		return OpVectorTimesMatrix
	case OpMatrixTimesMatrixAssign:
		return OpMatrixTimesMatrix
	case OpDivAssign:
		return OpDiv
	case OpModAssign:
		return OpMod
	case OpAndAssign:
		return OpAnd
	case OpInclusiveOrAssign:
		return OpInclusiveOr
	case OpExclusiveOrAssign:
		return OpExclusiveOr
	case OpLeftShiftAssign:
		return OpLeftShift
	case OpRightShiftAssign:
		return OpRightShift
	}
	return OpNull
}
