package builtins

import "hlslc/internal/ir"

// entry describes a family of intrinsic prototypes.
//
// Type templates are two characters, kind then shape:
//
//	kind:  T current, F float, D double, I int, U uint, B bool
//	shape: T current, S scalar, 1..4 vector size, X transposed current matrix
//
// "void" is the void type. An argument may carry an "out " or "inout "
// prefix and a trailing "?" for an optional argument. Shapes lists the
// iterated shapes: S scalar, V vectors 2..4, M matrices 2..4 x 2..4,
// Q square matrices, a digit a fixed vector size. Kinds lists the
// iterated component kinds.
type entry struct {
	name   string
	op     ir.Op
	ret    string
	args   string
	shapes string
	kinds  string
}

var intrinsics = []entry{
	{"abs", ir.OpAbs, "TT", "TT", "SVM", "FDI"},
	{"acos", ir.OpAcos, "TT", "TT", "SVM", "F"},
	{"all", ir.OpAll, "BS", "TT", "SVM", "FIUB"},
	{"AllMemoryBarrier", ir.OpAllMemoryBarrier, "void", "", "S", "F"},
	{"AllMemoryBarrierWithGroupSync", ir.OpAllMemoryBarrierWithGroupSync, "void", "", "S", "F"},
	{"any", ir.OpAny, "BS", "TT", "SVM", "FIUB"},
	{"asdouble", ir.OpAsDouble, "DT", "TT TT", "S2", "U"},
	{"asfloat", ir.OpIntBitsToFloat, "FT", "TT", "SVM", "I"},
	{"asfloat", ir.OpUintBitsToFloat, "FT", "TT", "SVM", "U"},
	{"asfloat", ir.OpCopyObject, "FT", "TT", "SVM", "F"},
	{"asint", ir.OpFloatBitsToInt, "IT", "TT", "SVM", "F"},
	{"asint", ir.OpCopyObject, "IT", "TT", "SVM", "IU"},
	{"asuint", ir.OpFloatBitsToUint, "UT", "TT", "SVM", "F"},
	{"asuint", ir.OpCopyObject, "UT", "TT", "SVM", "IU"},
	{"asin", ir.OpAsin, "TT", "TT", "SVM", "F"},
	{"atan", ir.OpAtan, "TT", "TT", "SVM", "F"},
	{"atan2", ir.OpAtan, "TT", "TT TT", "SVM", "F"},
	{"ceil", ir.OpCeil, "TT", "TT", "SVM", "F"},
	{"clamp", ir.OpClamp, "TT", "TT TT TT", "SVM", "FDIU"},
	{"clip", ir.OpClip, "void", "TT", "SVM", "F"},
	{"cos", ir.OpCos, "TT", "TT", "SVM", "F"},
	{"cosh", ir.OpCosh, "TT", "TT", "SVM", "F"},
	{"countbits", ir.OpBitCount, "TT", "TT", "SV", "UI"},
	{"cross", ir.OpCross, "T3", "T3 T3", "3", "F"},
	{"D3DCOLORtoUBYTE4", ir.OpD3DCOLORtoUBYTE4, "I4", "T4", "4", "F"},
	{"ddx", ir.OpDPdx, "TT", "TT", "SVM", "F"},
	{"ddx_coarse", ir.OpDPdxCoarse, "TT", "TT", "SVM", "F"},
	{"ddx_fine", ir.OpDPdxFine, "TT", "TT", "SVM", "F"},
	{"ddy", ir.OpDPdy, "TT", "TT", "SVM", "F"},
	{"ddy_coarse", ir.OpDPdyCoarse, "TT", "TT", "SVM", "F"},
	{"ddy_fine", ir.OpDPdyFine, "TT", "TT", "SVM", "F"},
	{"degrees", ir.OpDegrees, "TT", "TT", "SVM", "F"},
	{"determinant", ir.OpDeterminant, "TS", "TT", "Q", "F"},
	{"DeviceMemoryBarrier", ir.OpDeviceMemoryBarrier, "void", "", "S", "F"},
	{"DeviceMemoryBarrierWithGroupSync", ir.OpDeviceMemoryBarrierWithGroupSync, "void", "", "S", "F"},
	{"distance", ir.OpDistance, "TS", "TT TT", "SV", "F"},
	{"dot", ir.OpDot, "TS", "TT TT", "SV", "FIU"},
	{"dst", ir.OpDst, "TT", "TT TT", "4", "F"},
	{"EvaluateAttributeAtCentroid", ir.OpEvaluateAttributeAtCentroid, "TT", "TT", "SVM", "F"},
	{"EvaluateAttributeAtSample", ir.OpEvaluateAttributeAtSample, "TT", "TT US", "SVM", "F"},
	{"EvaluateAttributeSnapped", ir.OpEvaluateAttributeSnapped, "TT", "TT I2", "SVM", "F"},
	{"exp", ir.OpExp, "TT", "TT", "SVM", "F"},
	{"exp2", ir.OpExp2, "TT", "TT", "SVM", "F"},
	{"f16tof32", ir.OpF16tof32, "FT", "TT", "SV", "U"},
	{"f32tof16", ir.OpF32tof16, "UT", "TT", "SV", "F"},
	{"faceforward", ir.OpFaceForward, "TT", "TT TT TT", "V", "F"},
	{"firstbithigh", ir.OpFindMSB, "TT", "TT", "SV", "UI"},
	{"firstbitlow", ir.OpFindLSB, "TT", "TT", "SV", "UI"},
	{"floor", ir.OpFloor, "TT", "TT", "SVM", "F"},
	{"fma", ir.OpFma, "TT", "TT TT TT", "SVM", "D"},
	{"fmod", ir.OpMod2, "TT", "TT TT", "SVM", "F"},
	{"frac", ir.OpFract, "TT", "TT", "SVM", "F"},
	{"frexp", ir.OpFrexp, "TT", "TT out TT", "SVM", "F"},
	{"fwidth", ir.OpFwidth, "TT", "TT", "SVM", "F"},
	{"GetRenderTargetSampleCount", ir.OpGetRenderTargetSampleCount, "US", "", "S", "U"},
	{"GetRenderTargetSamplePosition", ir.OpGetRenderTargetSamplePosition, "F2", "TS", "S", "I"},
	{"GroupMemoryBarrier", ir.OpWorkgroupMemoryBarrier, "void", "", "S", "F"},
	{"GroupMemoryBarrierWithGroupSync", ir.OpWorkgroupMemoryBarrierWithGroupSync, "void", "", "S", "F"},
	{"InterlockedAdd", ir.OpInterlockedAdd, "void", "inout TT TT out TT?", "S", "IU"},
	{"InterlockedAnd", ir.OpInterlockedAnd, "void", "inout TT TT out TT?", "S", "IU"},
	{"InterlockedCompareExchange", ir.OpInterlockedCompareExchange, "void", "inout TT TT TT out TT", "S", "IU"},
	{"InterlockedCompareStore", ir.OpInterlockedCompareStore, "void", "inout TT TT TT", "S", "IU"},
	{"InterlockedExchange", ir.OpInterlockedExchange, "void", "inout TT TT out TT", "S", "IUF"},
	{"InterlockedMax", ir.OpInterlockedMax, "void", "inout TT TT out TT?", "S", "IU"},
	{"InterlockedMin", ir.OpInterlockedMin, "void", "inout TT TT out TT?", "S", "IU"},
	{"InterlockedOr", ir.OpInterlockedOr, "void", "inout TT TT out TT?", "S", "IU"},
	{"InterlockedXor", ir.OpInterlockedXor, "void", "inout TT TT out TT?", "S", "IU"},
	{"isfinite", ir.OpIsFinite, "BT", "TT", "SVM", "F"},
	{"isinf", ir.OpIsInf, "BT", "TT", "SVM", "F"},
	{"isnan", ir.OpIsNan, "BT", "TT", "SVM", "F"},
	{"ldexp", ir.OpLdexp, "TT", "TT TT", "SVM", "F"},
	{"length", ir.OpLength, "TS", "TT", "SV", "F"},
	{"lerp", ir.OpMix, "TT", "TT TT TT", "SVM", "F"},
	{"lit", ir.OpLit, "F4", "TS TS TS", "S", "F"},
	{"log", ir.OpLog, "TT", "TT", "SVM", "F"},
	{"log10", ir.OpLog10, "TT", "TT", "SVM", "F"},
	{"log2", ir.OpLog2, "TT", "TT", "SVM", "F"},
	{"mad", ir.OpFma, "TT", "TT TT TT", "SVM", "FDIU"},
	{"max", ir.OpMax, "TT", "TT TT", "SVM", "FDIU"},
	{"min", ir.OpMin, "TT", "TT TT", "SVM", "FDIU"},
	{"modf", ir.OpModf, "TT", "TT out TT", "SVM", "FI"},
	{"normalize", ir.OpNormalize, "TT", "TT", "SV", "F"},
	{"pow", ir.OpPow, "TT", "TT TT", "SVM", "F"},
	{"radians", ir.OpRadians, "TT", "TT", "SVM", "F"},
	{"rcp", ir.OpRcp, "TT", "TT", "SVM", "FD"},
	{"reflect", ir.OpReflect, "TT", "TT TT", "V", "F"},
	{"refract", ir.OpRefract, "TT", "TT TT TS", "V", "F"},
	{"reversebits", ir.OpBitFieldReverse, "TT", "TT", "SV", "UI"},
	{"round", ir.OpRound, "TT", "TT", "SVM", "F"},
	{"rsqrt", ir.OpInverseSqrt, "TT", "TT", "SVM", "F"},
	{"saturate", ir.OpSaturate, "TT", "TT", "SVM", "F"},
	{"sign", ir.OpSign, "IT", "TT", "SVM", "FI"},
	{"sin", ir.OpSin, "TT", "TT", "SVM", "F"},
	{"sincos", ir.OpSinCos, "void", "TT out TT out TT", "SVM", "F"},
	{"sinh", ir.OpSinh, "TT", "TT", "SVM", "F"},
	{"smoothstep", ir.OpSmoothStep, "TT", "TT TT TT", "SVM", "F"},
	{"sqrt", ir.OpSqrt, "TT", "TT", "SVM", "F"},
	{"step", ir.OpStep, "TT", "TT TT", "SVM", "F"},
	{"tan", ir.OpTan, "TT", "TT", "SVM", "F"},
	{"tanh", ir.OpTanh, "TT", "TT", "SVM", "F"},
	{"transpose", ir.OpTranspose, "TX", "TT", "M", "FIUB"},
	{"trunc", ir.OpTrunc, "TT", "TT", "SVM", "F"},
}

// DX9 and debugging intrinsics recognised by name but not lowered.
var notImplemented = map[string]ir.Op{
	"abort":                       ir.OpAbort,
	"errorf":                      ir.OpErrorf,
	"printf":                      ir.OpPrintf,
	"tex1D":                       ir.OpTex1D,
	"tex1Dbias":                   ir.OpTex1D,
	"tex1Dgrad":                   ir.OpTex1D,
	"tex1Dlod":                    ir.OpTex1D,
	"tex1Dproj":                   ir.OpTex1D,
	"tex2D":                       ir.OpTex2D,
	"tex2Dbias":                   ir.OpTex2D,
	"tex2Dgrad":                   ir.OpTex2D,
	"tex2Dlod":                    ir.OpTex2D,
	"tex2Dproj":                   ir.OpTex2D,
	"tex3D":                       ir.OpTex3D,
	"tex3Dbias":                   ir.OpTex3D,
	"tex3Dgrad":                   ir.OpTex3D,
	"tex3Dlod":                    ir.OpTex3D,
	"tex3Dproj":                   ir.OpTex3D,
	"texCUBE":                     ir.OpTexCube,
	"texCUBEbias":                 ir.OpTexCube,
	"texCUBEgrad":                 ir.OpTexCube,
	"texCUBElod":                  ir.OpTexCube,
	"texCUBEproj":                 ir.OpTexCube,
	"noise":                       ir.OpNull,
	"msad4":                       ir.OpNull,
	"CheckAccessFullyMapped":      ir.OpNull,
	"Process2DQuadTessFactorsAvg": ir.OpNull,
	"Process2DQuadTessFactorsMax": ir.OpNull,
	"Process2DQuadTessFactorsMin": ir.OpNull,
	"ProcessIsolineTessFactors":   ir.OpNull,
	"ProcessQuadTessFactorsAvg":   ir.OpNull,
	"ProcessQuadTessFactorsMax":   ir.OpNull,
	"ProcessQuadTessFactorsMin":   ir.OpNull,
	"ProcessTriTessFactorsAvg":    ir.OpNull,
	"ProcessTriTessFactorsMax":    ir.OpNull,
	"ProcessTriTessFactorsMin":    ir.OpNull,
}
