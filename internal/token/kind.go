package token

// Kind is the lexical category of an HLSL token.
type Kind uint16

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Ident is an identifier that is not a keyword.
	Ident

	IntLit    // 12, 0x1F, 017
	UintLit   // 12u
	Int64Lit  // 12l
	Uint64Lit // 12ul
	FloatLit  // 1.0, 1.0f, 1.0h
	DoubleLit // 1.0lf
	BoolLit   // true, false
	StringLit // "text"

	// storage and interpolation qualifiers
	KwStatic
	KwConst
	KwSNorm
	KwUNorm
	KwExtern
	KwUniform
	KwVolatile
	KwPrecise
	KwShared
	KwGroupShared
	KwLinear
	KwCentroid
	KwNoInterpolation
	KwNoPerspective
	KwSample
	KwRowMajor
	KwColumnMajor
	KwPackOffset
	KwRegister
	KwIn
	KwOut
	KwInOut
	KwLayout
	KwGloballyCoherent
	KwInline

	// primitive type modifiers of geometry shader parameters
	KwPoint
	KwLine
	KwTriangle
	KwLineAdj
	KwTriangleAdj

	// templates
	KwPointStream
	KwLineStream
	KwTriangleStream
	KwInputPatch
	KwOutputPatch
	KwVector
	KwMatrix

	KwVoid
	KwString

	// scalar keywords; half, dword and the min-precision spellings map onto these
	KwBool
	KwInt
	KwUint
	KwInt64
	KwUint64
	KwFloat
	KwDouble
	KwHalf // also usable as an identifier
	// vector keywords, ordered so that <Base>N == <Base>1 + N-1
	Bool1
	Bool2
	Bool3
	Bool4
	Int1
	Int2
	Int3
	Int4
	Uint1
	Uint2
	Uint3
	Uint4
	Float1
	Float2
	Float3
	Float4
	Double1
	Double2
	Double3
	Double4

	// matrix keywords, ordered so that <Base>RxC == <Base>1x1 + (R-1)*4 + (C-1)
	Bool1x1
	Bool1x2
	Bool1x3
	Bool1x4
	Bool2x1
	Bool2x2
	Bool2x3
	Bool2x4
	Bool3x1
	Bool3x2
	Bool3x3
	Bool3x4
	Bool4x1
	Bool4x2
	Bool4x3
	Bool4x4
	Int1x1
	Int1x2
	Int1x3
	Int1x4
	Int2x1
	Int2x2
	Int2x3
	Int2x4
	Int3x1
	Int3x2
	Int3x3
	Int3x4
	Int4x1
	Int4x2
	Int4x3
	Int4x4
	Uint1x1
	Uint1x2
	Uint1x3
	Uint1x4
	Uint2x1
	Uint2x2
	Uint2x3
	Uint2x4
	Uint3x1
	Uint3x2
	Uint3x3
	Uint3x4
	Uint4x1
	Uint4x2
	Uint4x3
	Uint4x4
	Float1x1
	Float1x2
	Float1x3
	Float1x4
	Float2x1
	Float2x2
	Float2x3
	Float2x4
	Float3x1
	Float3x2
	Float3x3
	Float3x4
	Float4x1
	Float4x2
	Float4x3
	Float4x4
	Double1x1
	Double1x2
	Double1x3
	Double1x4
	Double2x1
	Double2x2
	Double2x3
	Double2x4
	Double3x1
	Double3x2
	Double3x3
	Double3x4
	Double4x1
	Double4x2
	Double4x3
	Double4x4

	// samplers
	KwSampler
	KwSampler1D
	KwSampler2D
	KwSampler3D
	KwSamplerCube
	KwSamplerState
	KwSamplerComparisonState

	// textures and images
	KwTexture
	KwTexture1D
	KwTexture1DArray
	KwTexture2D
	KwTexture2DArray
	KwTexture3D
	KwTextureCube
	KwTextureCubeArray
	KwTexture2DMS
	KwTexture2DMSArray
	KwRWTexture1D
	KwRWTexture1DArray
	KwRWTexture2D
	KwRWTexture2DArray
	KwRWTexture3D
	KwBuffer
	KwRWBuffer
	KwSubpassInput
	KwSubpassInputMS

	// structured and raw buffers
	KwStructuredBuffer
	KwRWStructuredBuffer
	KwAppendStructuredBuffer
	KwConsumeStructuredBuffer
	KwByteAddressBuffer
	KwRWByteAddressBuffer
	KwConstantBuffer
	KwTextureBuffer

	// aggregates and declarations
	KwStruct
	KwCBuffer
	KwTBuffer
	KwTypedef
	KwThis
	KwNamespace
	KwClass
	KwInterface

	// statements
	KwFor
	KwDo
	KwWhile
	KwBreak
	KwContinue
	KwIf
	KwElse
	KwDiscard
	KwReturn
	KwSwitch
	KwCase
	KwDefault

	// punctuation and operators
	LeftParen    // (
	RightParen   // )
	LeftBracket  // [
	RightBracket // ]
	LeftBrace    // {
	RightBrace   // }
	LeftAngle    // <
	RightAngle   // >
	Dot          // .
	Comma        // ,
	Colon        // :
	ColonColon   // ::
	Semicolon    // ;
	Bang         // !
	Dash         // -
	Tilde        // ~
	Plus         // +
	Star         // *
	Slash        // /
	Percent      // %
	LeftOp       // <<
	RightOp      // >>
	IncOp        // ++
	DecOp        // --
	LeOp         // <=
	GeOp         // >=
	EqOp         // ==
	NeOp         // !=
	AndOp        // &&
	OrOp         // ||
	XorOp        // ^^
	Ampersand    // &
	VerticalBar  // |
	Caret        // ^
	Question     // ?
	Assign       // =
	MulAssign    // *=
	DivAssign    // /=
	AddAssign    // +=
	SubAssign    // -=
	ModAssign    // %=
	LeftAssign   // <<=
	RightAssign  // >>=
	AndAssign    // &=
	XorAssign    // ^=
	OrAssign     // |=

	kindCount
)

// IsVectorKeyword reports whether k names a vector type such as float3.
func (k Kind) IsVectorKeyword() bool { return k >= Bool1 && k <= Double4 }

// IsMatrixKeyword reports whether k names a matrix type such as float3x4.
func (k Kind) IsMatrixKeyword() bool { return k >= Bool1x1 && k <= Double4x4 }

// IsScalarKeyword reports whether k names a scalar type such as uint.
func (k Kind) IsScalarKeyword() bool { return k >= KwBool && k <= KwHalf }

// IsAssignOp reports whether k is '=' or a compound assignment.
func (k Kind) IsAssignOp() bool { return k >= Assign && k <= OrAssign }
