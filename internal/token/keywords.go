package token

import "fmt"

var (
	keywords  = make(map[string]Kind, 400)
	kindNames [kindCount]string
)

// Scalar is the component type named by a numeric type keyword.
type Scalar uint8

const (
	ScalarNone Scalar = iota
	ScalarBool
	ScalarInt
	ScalarUint
	ScalarInt64
	ScalarUint64
	ScalarFloat
	ScalarDouble
)

var scalarBases = [...]struct {
	name   string
	scalar Scalar
	kind   Kind
	vec1   Kind
	mat1x1 Kind
}{
	{"bool", ScalarBool, KwBool, Bool1, Bool1x1},
	{"int", ScalarInt, KwInt, Int1, Int1x1},
	{"uint", ScalarUint, KwUint, Uint1, Uint1x1},
	{"float", ScalarFloat, KwFloat, Float1, Float1x1},
	{"double", ScalarDouble, KwDouble, Double1, Double1x1},
}

// min-precision and half spellings are accepted at full precision
var aliasBases = [...]struct {
	name string
	base int // index into scalarBases
}{
	{"half", 3},
	{"min16float", 3},
	{"min10float", 3},
	{"min16int", 1},
	{"min12int", 1},
	{"min16uint", 2},
}

func register(text string, k Kind) {
	keywords[text] = k
	if kindNames[k] == "" {
		kindNames[k] = text
	}
}

func init() {
	for _, b := range scalarBases {
		register(b.name, b.kind)
		for n := 1; n <= 4; n++ {
			register(fmt.Sprintf("%s%d", b.name, n), b.vec1+Kind(n-1))
			for c := 1; c <= 4; c++ {
				register(fmt.Sprintf("%s%dx%d", b.name, n, c), b.mat1x1+Kind((n-1)*4+(c-1)))
			}
		}
	}
	register("half", KwHalf)
	for _, a := range aliasBases {
		b := scalarBases[a.base]
		if a.name != "half" {
			register(a.name, b.kind)
		}
		for n := 1; n <= 4; n++ {
			register(fmt.Sprintf("%s%d", a.name, n), b.vec1+Kind(n-1))
			for c := 1; c <= 4; c++ {
				register(fmt.Sprintf("%s%dx%d", a.name, n, c), b.mat1x1+Kind((n-1)*4+(c-1)))
			}
		}
	}
	register("dword", KwUint)
	register("int64_t", KwInt64)
	register("uint64_t", KwUint64)

	for text, k := range plainKeywords {
		register(text, k)
	}
	for k, text := range punctNames {
		kindNames[k] = text
	}
	kindNames[Invalid] = "<invalid>"
	kindNames[EOF] = "<eof>"
	kindNames[Ident] = "identifier"
	kindNames[IntLit] = "int literal"
	kindNames[UintLit] = "uint literal"
	kindNames[Int64Lit] = "int64 literal"
	kindNames[Uint64Lit] = "uint64 literal"
	kindNames[FloatLit] = "float literal"
	kindNames[DoubleLit] = "double literal"
	kindNames[BoolLit] = "bool literal"
	kindNames[StringLit] = "string literal"
}

var plainKeywords = map[string]Kind{
	"static":                  KwStatic,
	"const":                   KwConst,
	"snorm":                   KwSNorm,
	"unorm":                   KwUNorm,
	"extern":                  KwExtern,
	"uniform":                 KwUniform,
	"volatile":                KwVolatile,
	"precise":                 KwPrecise,
	"shared":                  KwShared,
	"groupshared":             KwGroupShared,
	"linear":                  KwLinear,
	"centroid":                KwCentroid,
	"nointerpolation":         KwNoInterpolation,
	"noperspective":           KwNoPerspective,
	"sample":                  KwSample,
	"row_major":               KwRowMajor,
	"column_major":            KwColumnMajor,
	"packoffset":              KwPackOffset,
	"register":                KwRegister,
	"in":                      KwIn,
	"out":                     KwOut,
	"inout":                   KwInOut,
	"layout":                  KwLayout,
	"globallycoherent":        KwGloballyCoherent,
	"inline":                  KwInline,
	"point":                   KwPoint,
	"line":                    KwLine,
	"triangle":                KwTriangle,
	"lineadj":                 KwLineAdj,
	"triangleadj":             KwTriangleAdj,
	"PointStream":             KwPointStream,
	"LineStream":              KwLineStream,
	"TriangleStream":          KwTriangleStream,
	"InputPatch":              KwInputPatch,
	"OutputPatch":             KwOutputPatch,
	"vector":                  KwVector,
	"matrix":                  KwMatrix,
	"void":                    KwVoid,
	"string":                  KwString,
	"sampler":                 KwSampler,
	"sampler1D":               KwSampler1D,
	"sampler2D":               KwSampler2D,
	"sampler3D":               KwSampler3D,
	"samplerCUBE":             KwSamplerCube,
	"SamplerState":            KwSamplerState,
	"SamplerComparisonState":  KwSamplerComparisonState,
	"texture":                 KwTexture,
	"Texture1D":               KwTexture1D,
	"Texture1DArray":          KwTexture1DArray,
	"Texture2D":               KwTexture2D,
	"Texture2DArray":          KwTexture2DArray,
	"Texture3D":               KwTexture3D,
	"TextureCube":             KwTextureCube,
	"TextureCubeArray":        KwTextureCubeArray,
	"Texture2DMS":             KwTexture2DMS,
	"Texture2DMSArray":        KwTexture2DMSArray,
	"RWTexture1D":             KwRWTexture1D,
	"RWTexture1DArray":        KwRWTexture1DArray,
	"RWTexture2D":             KwRWTexture2D,
	"RWTexture2DArray":        KwRWTexture2DArray,
	"RWTexture3D":             KwRWTexture3D,
	"Buffer":                  KwBuffer,
	"RWBuffer":                KwRWBuffer,
	"SubpassInput":            KwSubpassInput,
	"SubpassInputMS":          KwSubpassInputMS,
	"StructuredBuffer":        KwStructuredBuffer,
	"RWStructuredBuffer":      KwRWStructuredBuffer,
	"AppendStructuredBuffer":  KwAppendStructuredBuffer,
	"ConsumeStructuredBuffer": KwConsumeStructuredBuffer,
	"ByteAddressBuffer":       KwByteAddressBuffer,
	"RWByteAddressBuffer":     KwRWByteAddressBuffer,
	"ConstantBuffer":          KwConstantBuffer,
	"TextureBuffer":           KwTextureBuffer,
	"struct":                  KwStruct,
	"cbuffer":                 KwCBuffer,
	"tbuffer":                 KwTBuffer,
	"typedef":                 KwTypedef,
	"this":                    KwThis,
	"namespace":               KwNamespace,
	"class":                   KwClass,
	"interface":               KwInterface,
	"for":                     KwFor,
	"do":                      KwDo,
	"while":                   KwWhile,
	"break":                   KwBreak,
	"continue":                KwContinue,
	"if":                      KwIf,
	"else":                    KwElse,
	"discard":                 KwDiscard,
	"return":                  KwReturn,
	"switch":                  KwSwitch,
	"case":                    KwCase,
	"default":                 KwDefault,
}

var punctNames = map[Kind]string{
	LeftParen: "(", RightParen: ")", LeftBracket: "[", RightBracket: "]",
	LeftBrace: "{", RightBrace: "}", LeftAngle: "<", RightAngle: ">",
	Dot: ".", Comma: ",", Colon: ":", ColonColon: "::", Semicolon: ";",
	Bang: "!", Dash: "-", Tilde: "~", Plus: "+", Star: "*", Slash: "/", Percent: "%",
	LeftOp: "<<", RightOp: ">>", IncOp: "++", DecOp: "--",
	LeOp: "<=", GeOp: ">=", EqOp: "==", NeOp: "!=",
	AndOp: "&&", OrOp: "||", XorOp: "^^",
	Ampersand: "&", VerticalBar: "|", Caret: "^", Question: "?",
	Assign: "=", MulAssign: "*=", DivAssign: "/=", AddAssign: "+=", SubAssign: "-=",
	ModAssign: "%=", LeftAssign: "<<=", RightAssign: ">>=",
	AndAssign: "&=", XorAssign: "^=", OrAssign: "|=",
}

// LookupKeyword возвращает класс ключевого слова для ident.
// Ключевые слова HLSL регистрозависимы.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// String returns the canonical spelling of the kind.
func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// NumericInfo describes the shape named by a scalar, vector or matrix keyword.
type NumericInfo struct {
	Scalar Scalar
	Size   int // vector size, 0 for scalars and matrices
	Rows   int // HLSL rows of a matrix keyword
	Cols   int // HLSL columns of a matrix keyword
}

// Numeric decodes a numeric type keyword; ok is false for any other kind.
func Numeric(k Kind) (NumericInfo, bool) {
	switch {
	case k == KwHalf:
		return NumericInfo{Scalar: ScalarFloat}, true
	case k == KwInt64:
		return NumericInfo{Scalar: ScalarInt64}, true
	case k == KwUint64:
		return NumericInfo{Scalar: ScalarUint64}, true
	}
	for _, b := range scalarBases {
		switch {
		case k == b.kind:
			return NumericInfo{Scalar: b.scalar}, true
		case k >= b.vec1 && k < b.vec1+4:
			return NumericInfo{Scalar: b.scalar, Size: int(k-b.vec1) + 1}, true
		case k >= b.mat1x1 && k < b.mat1x1+16:
			off := int(k - b.mat1x1)
			return NumericInfo{Scalar: b.scalar, Rows: off/4 + 1, Cols: off%4 + 1}, true
		}
	}
	return NumericInfo{}, false
}

// keyword classes that may also spell an ordinary identifier
var identifierSpellings = map[Kind]string{
	KwSample:          "sample",
	KwHalf:            "half",
	KwPoint:           "point",
	KwLine:            "line",
	KwTriangle:        "triangle",
	KwLineAdj:         "lineadj",
	KwTriangleAdj:     "triangleadj",
	KwLinear:          "linear",
	KwCentroid:        "centroid",
	KwNoInterpolation: "nointerpolation",
	KwNoPerspective:   "noperspective",
	KwPrecise:         "precise",
	KwShared:          "shared",
	KwVector:          "vector",
	KwMatrix:          "matrix",
	KwString:          "string",
	KwTexture:         "texture",
	KwSampler:         "sampler",
	KwLayout:          "layout",
	KwThis:            "this",
}

// IdentifierSpelling reports whether a token of class k can additionally be
// read as an identifier, and with which text.
func IdentifierSpelling(k Kind) (string, bool) {
	s, ok := identifierSpellings[k]
	return s, ok
}
