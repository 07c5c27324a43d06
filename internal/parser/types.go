package parser

import (
	"fortio.org/safecast"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/source"
	"hlslc/internal/token"
	"hlslc/internal/types"
)

// scalarBasics - соответствие компонентных типов токенов базовым типам
var scalarBasics = map[token.Scalar]types.Basic{
	token.ScalarBool:   types.Bool,
	token.ScalarInt:    types.Int,
	token.ScalarUint:   types.Uint,
	token.ScalarInt64:  types.Int64,
	token.ScalarUint64: types.Uint64,
	token.ScalarFloat:  types.Float,
	token.ScalarDouble: types.Double,
}

// numericType builds the type named by a scalar, vector or matrix keyword.
func numericType(k token.Kind) (*types.Type, bool) {
	info, ok := token.Numeric(k)
	if !ok {
		return nil, false
	}
	b := scalarBasics[info.Scalar]
	switch {
	case info.Rows > 0:
		// floatRxC: R столбцов по C компонент
		return types.NewMatrix(b, info.Rows, info.Cols), true
	case info.Size > 0:
		return types.NewVector(b, info.Size), true
	default:
		return types.NewScalar(b), true
	}
}

// type
//
//	: [UNORM | SNORM] type_body
func (g *Grammar) acceptType() (*types.Type, bool) {
	var norm types.Flags
	switch g.ts.Peek() {
	case token.KwUNorm:
		norm = types.FlagUNorm
	case token.KwSNorm:
		norm = types.FlagSNorm
	}
	if norm != 0 {
		g.advance()
	}
	before := g.opts.CurrentErrors
	t, ok := g.acceptTypeBody()
	if !ok {
		if norm != 0 && g.opts.CurrentErrors == before {
			g.expected(diag.SynExpectType, "type after unorm/snorm")
		}
		return nil, false
	}
	t.Qualifier.Flags |= norm
	return t, true
}

func (g *Grammar) acceptTypeBody() (*types.Type, bool) {
	tok := g.ts.Token()
	switch k := tok.Kind; {
	case k == token.KwVector:
		return g.acceptVectorTemplateType()
	case k == token.KwMatrix:
		return g.acceptMatrixTemplateType()
	case k == token.KwPointStream || k == token.KwLineStream || k == token.KwTriangleStream:
		return g.acceptStreamOutTemplateType()
	case k == token.KwInputPatch || k == token.KwOutputPatch:
		return g.acceptPatchTemplateType()
	case isSamplerKeyword(k):
		g.advance()
		s := types.Sampler{Pure: true, Shadow: k == token.KwSamplerComparisonState}
		return types.NewSampler(s), true
	case isTextureKeyword(k):
		return g.acceptTextureType()
	case isStructBufferKeyword(k):
		return g.acceptStructBufferType()
	case k == token.KwConstantBuffer || k == token.KwTextureBuffer:
		return g.acceptConstantBufferType()
	case k == token.KwStruct || k == token.KwClass || k == token.KwCBuffer || k == token.KwTBuffer:
		return g.acceptStruct()
	case k == token.KwInterface:
		g.err(diag.FutClassDeclaration, "interface declarations are not supported")
		return nil, false
	case k == token.Ident:
		// пользовательский тип: struct или typedef
		t, ok := g.sema.LookupType(tok.Text)
		if !ok {
			return nil, false
		}
		g.advance()
		return t.Clone(), true
	case k == token.KwVoid:
		g.advance()
		return types.NewVoid(), true
	case k == token.KwString:
		g.advance()
		return types.NewScalar(types.String), true
	}
	t, ok := numericType(tok.Kind)
	if !ok {
		return nil, false
	}
	g.advance()
	return t, true
}

func isSamplerKeyword(k token.Kind) bool {
	switch k {
	case token.KwSampler, token.KwSampler1D, token.KwSampler2D, token.KwSampler3D, token.KwSamplerCube,
		token.KwSamplerState, token.KwSamplerComparisonState:
		return true
	}
	return false
}

// acceptTemplateScalar reads the scalar argument of vector<> / matrix<>.
func (g *Grammar) acceptTemplateScalar() (types.Basic, bool) {
	info, ok := token.Numeric(g.ts.Peek())
	if !ok || info.Size != 0 || info.Rows != 0 {
		g.expected(diag.SynBadTemplateArgument, "scalar type")
		return 0, false
	}
	g.advance()
	return scalarBasics[info.Scalar], true
}

// acceptTemplateSize reads an integer literal template argument in [lo, hi].
func (g *Grammar) acceptTemplateSize(what string, lo, hi int) (int, bool) {
	tok := g.ts.Token()
	var n int
	var err error
	switch tok.Kind {
	case token.IntLit:
		n, err = safecast.Conv[int](tok.Int)
	case token.UintLit:
		n, err = safecast.Conv[int](tok.Uint)
	default:
		g.expected(diag.SynBadTemplateArgument, what)
		return 0, false
	}
	if err != nil || n < lo || n > hi {
		g.err(diag.SynBadTemplateArgument, what+" out of range")
		return 0, false
	}
	g.advance()
	return n, true
}

// vector_template_type
//
//	: VECTOR
//	| VECTOR LEFT_ANGLE template_type COMMA integer_literal RIGHT_ANGLE
func (g *Grammar) acceptVectorTemplateType() (*types.Type, bool) {
	g.advance()
	if !g.accept(token.LeftAngle) {
		// vector без аргументов - float4
		return types.NewVector(types.Float, 4), true
	}
	b, ok := g.acceptTemplateScalar()
	if !ok {
		return nil, false
	}
	if _, ok := g.expect(token.Comma, diag.SynExpectComma, "expected ',' in vector<>"); !ok {
		return nil, false
	}
	n, ok := g.acceptTemplateSize("vector size", 1, 4)
	if !ok {
		return nil, false
	}
	if _, ok := g.expect(token.RightAngle, diag.SynExpectRightAngle, "expected '>' to close vector<>"); !ok {
		return nil, false
	}
	return types.NewVector(b, n), true
}

// matrix_template_type
//
//	: MATRIX
//	| MATRIX LEFT_ANGLE template_type COMMA integer_literal COMMA integer_literal RIGHT_ANGLE
func (g *Grammar) acceptMatrixTemplateType() (*types.Type, bool) {
	g.advance()
	if !g.accept(token.LeftAngle) {
		return types.NewMatrix(types.Float, 4, 4), true
	}
	b, ok := g.acceptTemplateScalar()
	if !ok {
		return nil, false
	}
	var dims [2]int
	for i := range dims {
		if _, ok := g.expect(token.Comma, diag.SynExpectComma, "expected ',' in matrix<>"); !ok {
			return nil, false
		}
		if dims[i], ok = g.acceptTemplateSize("matrix dimension", 1, 4); !ok {
			return nil, false
		}
	}
	if _, ok := g.expect(token.RightAngle, diag.SynExpectRightAngle, "expected '>' to close matrix<>"); !ok {
		return nil, false
	}
	return types.NewMatrix(b, dims[0], dims[1]), true
}

var streamKinds = map[token.Kind]struct {
	obj  types.ObjectKind
	prim ir.Primitive
}{
	token.KwPointStream:    {types.ObjPointStream, ir.PrimPoints},
	token.KwLineStream:     {types.ObjLineStream, ir.PrimLineStrip},
	token.KwTriangleStream: {types.ObjTriangleStream, ir.PrimTriangleStrip},
}

// stream_out_template_type
//
//	: output_primitive_geometry_type LEFT_ANGLE type RIGHT_ANGLE
func (g *Grammar) acceptStreamOutTemplateType() (*types.Type, bool) {
	tok := g.advance()
	kind := streamKinds[tok.Kind]
	if _, ok := g.expect(token.LeftAngle, diag.SynExpectLeftAngle, "expected '<' after "+tok.Text); !ok {
		return nil, false
	}
	elem, ok := g.acceptType()
	if !ok {
		g.expected(diag.SynExpectType, "stream output type")
		return nil, false
	}
	if _, ok := g.expect(token.RightAngle, diag.SynExpectRightAngle, "expected '>' to close "+tok.Text); !ok {
		return nil, false
	}
	if !g.sema.HandleOutputGeometry(tok.Span, kind.prim) {
		return nil, false
	}
	t := elem.Clone()
	t.Object = kind.obj
	t.Qualifier.Storage = types.Out
	return t, true
}

// tessellation_patch_template_type
//
//	: tessellation_patch_type LEFT_ANGLE type COMMA integer_literal RIGHT_ANGLE
func (g *Grammar) acceptPatchTemplateType() (*types.Type, bool) {
	tok := g.advance()
	obj := types.ObjInputPatch
	if tok.Kind == token.KwOutputPatch {
		obj = types.ObjOutputPatch
	}
	if _, ok := g.expect(token.LeftAngle, diag.SynExpectLeftAngle, "expected '<' after "+tok.Text); !ok {
		return nil, false
	}
	elem, ok := g.acceptType()
	if !ok {
		g.expected(diag.SynExpectType, "control point type")
		return nil, false
	}
	if _, ok := g.expect(token.Comma, diag.SynExpectComma, "expected ',' in "+tok.Text); !ok {
		return nil, false
	}
	n, ok := g.acceptTemplateSize("control point count", 1, 32)
	if !ok {
		return nil, false
	}
	if _, ok := g.expect(token.RightAngle, diag.SynExpectRightAngle, "expected '>' to close "+tok.Text); !ok {
		return nil, false
	}
	t := elem.Clone()
	t.Arrays = types.NewArraySizes(n)
	t.Object = obj
	return t, true
}

type textureShape struct {
	dim     types.Dim
	arrayed bool
	ms      bool
	image   bool
}

var textureShapes = map[token.Kind]textureShape{
	token.KwBuffer:           {dim: types.DimBuffer},
	token.KwTexture1D:        {dim: types.Dim1D},
	token.KwTexture1DArray:   {dim: types.Dim1D, arrayed: true},
	token.KwTexture2D:        {dim: types.Dim2D},
	token.KwTexture2DArray:   {dim: types.Dim2D, arrayed: true},
	token.KwTexture3D:        {dim: types.Dim3D},
	token.KwTextureCube:      {dim: types.DimCube},
	token.KwTextureCubeArray: {dim: types.DimCube, arrayed: true},
	token.KwTexture2DMS:      {dim: types.Dim2D, ms: true},
	token.KwTexture2DMSArray: {dim: types.Dim2D, arrayed: true, ms: true},
	token.KwRWBuffer:         {dim: types.DimBuffer, image: true},
	token.KwRWTexture1D:      {dim: types.Dim1D, image: true},
	token.KwRWTexture1DArray: {dim: types.Dim1D, arrayed: true, image: true},
	token.KwRWTexture2D:      {dim: types.Dim2D, image: true},
	token.KwRWTexture2DArray: {dim: types.Dim2D, arrayed: true, image: true},
	token.KwRWTexture3D:      {dim: types.Dim3D, image: true},
	token.KwSubpassInput:     {dim: types.DimSubpass},
	token.KwSubpassInputMS:   {dim: types.DimSubpass, ms: true},
}

func isTextureKeyword(k token.Kind) bool {
	_, ok := textureShapes[k]
	return ok
}

// texture_type
//
//	| BUFFER
//	| TEXTURE1D
//	| ...
//	| RWTEXTURE3D
//
// с необязательным < type [, sample_count] >
func (g *Grammar) acceptTextureType() (*types.Type, bool) {
	tok := g.advance()
	shape := textureShapes[tok.Kind]
	elem := types.NewVector(types.Float, 4)
	sp := tok.Span
	if g.accept(token.LeftAngle) {
		t, ok := g.acceptType()
		if !ok {
			g.expected(diag.SynBadTemplateArgument, "scalar or vector type")
			return nil, false
		}
		elem = t
		if shape.ms && g.accept(token.Comma) {
			// число сэмплов читаем и игнорируем
			if _, ok := g.acceptTemplateSize("multisample count", 1, 64); !ok {
				return nil, false
			}
		}
		if _, ok := g.expect(token.RightAngle, diag.SynExpectRightAngle, "expected '>' to close "+tok.Text); !ok {
			return nil, false
		}
		sp = g.spanFrom(tok.Span)
	} else if shape.ms {
		g.expected(diag.SynExpectLeftAngle, "texture type for multisample")
		return nil, false
	} else if shape.image {
		g.expected(diag.SynExpectLeftAngle, "type for "+tok.Text)
		return nil, false
	}
	s := types.Sampler{
		Dim:     shape.dim,
		Arrayed: shape.arrayed,
		MS:      shape.ms,
		Image:   shape.image,
	}
	format, ok := g.sema.TextureReturnType(sp, &s, elem)
	if !ok {
		return nil, false
	}
	t := types.NewSampler(s)
	t.Qualifier.Format = format
	if shape.image {
		t.Qualifier.Storage = types.Uniform
	}
	return t, true
}

var structBufferKinds = map[token.Kind]types.ObjectKind{
	token.KwStructuredBuffer:        types.ObjStructuredBuffer,
	token.KwRWStructuredBuffer:      types.ObjRWStructuredBuffer,
	token.KwAppendStructuredBuffer:  types.ObjAppendStructuredBuffer,
	token.KwConsumeStructuredBuffer: types.ObjConsumeStructuredBuffer,
	token.KwByteAddressBuffer:       types.ObjByteAddressBuffer,
	token.KwRWByteAddressBuffer:     types.ObjRWByteAddressBuffer,
}

func isStructBufferKeyword(k token.Kind) bool {
	_, ok := structBufferKinds[k]
	return ok
}

// struct_buffer
//
//	: APPENDSTRUCTUREDBUFFER
//	| BYTEADDRESSBUFFER
//	| CONSUMESTRUCTUREDBUFFER
//	| RWBYTEADDRESSBUFFER
//	| RWSTRUCTUREDBUFFER
//	| STRUCTUREDBUFFER
func (g *Grammar) acceptStructBufferType() (*types.Type, bool) {
	tok := g.advance()
	kind := structBufferKinds[tok.Kind]
	var elem *types.Type
	if !kind.IsByteAddress() {
		var ok bool
		if elem, ok = g.acceptTemplateType(tok); !ok {
			return nil, false
		}
	}
	return g.sema.StructBufferType(g.spanFrom(tok.Span), kind, elem), true
}

// constant_buffer_type
//
//	: CONSTANTBUFFER LEFT_ANGLE type RIGHT_ANGLE
//	| TEXTUREBUFFER LEFT_ANGLE type RIGHT_ANGLE
func (g *Grammar) acceptConstantBufferType() (*types.Type, bool) {
	tok := g.advance()
	kind := types.ObjConstantBuffer
	if tok.Kind == token.KwTextureBuffer {
		kind = types.ObjTextureBuffer
	}
	elem, ok := g.acceptTemplateType(tok)
	if !ok {
		return nil, false
	}
	if !elem.IsStruct() {
		g.report(diag.SynBadTemplateArgument, diag.SevError, g.spanFrom(tok.Span), tok.Text+" requires a struct template type")
		return nil, false
	}
	return g.sema.StructBufferType(g.spanFrom(tok.Span), kind, elem), true
}

// LEFT_ANGLE type RIGHT_ANGLE after a template keyword
func (g *Grammar) acceptTemplateType(kw token.Token) (*types.Type, bool) {
	if _, ok := g.expect(token.LeftAngle, diag.SynExpectLeftAngle, "expected '<' after "+kw.Text); !ok {
		return nil, false
	}
	elem, ok := g.acceptType()
	if !ok {
		g.expected(diag.SynBadTemplateArgument, "type")
		return nil, false
	}
	if arr, ok := g.acceptArraySpecifier(); !ok {
		return nil, false
	} else if arr != nil {
		elem = elem.Clone()
		elem.Arrays = arr
	}
	if _, ok := g.expect(token.RightAngle, diag.SynExpectRightAngle, "expected '>' to close "+kw.Text); !ok {
		return nil, false
	}
	return elem, true
}

// struct
//
//	: struct_type IDENTIFIER post_decls LEFT_BRACE struct_declaration_list RIGHT_BRACE
//	| struct_type            post_decls LEFT_BRACE struct_declaration_list RIGHT_BRACE
//	| struct_type IDENTIFIER // use of previously declared struct type
//
// struct_type
//
//	: STRUCT
//	| CLASS
//	| CBUFFER
//	| TBUFFER
func (g *Grammar) acceptStruct() (*types.Type, bool) {
	kw := g.advance()
	storage := types.Temporary
	readOnly := false
	switch kw.Kind {
	case token.KwCBuffer:
		storage = types.Uniform
	case token.KwTBuffer:
		storage = types.Buffer
		readOnly = true
	}

	name, _, _ := g.acceptIdentifier()

	var post types.Qualifier
	hadPost := g.at_or(token.Colon, token.LeftAngle)
	if !g.acceptPostDecls(&post) {
		return nil, false
	}

	if !g.at(token.LeftBrace) {
		if name != "" && !hadPost {
			if t, ok := g.sema.LookupType(name); ok {
				return t.Clone(), true
			}
		}
		g.expected(diag.SynExpectStructBody, "'{'")
		return nil, false
	}
	g.advance()

	if name != "" {
		g.sema.PushNamespace(name)
	}
	members, ok := g.acceptStructDeclarationList()
	if name != "" {
		g.sema.PopNamespace()
	}
	if !ok {
		return nil, false
	}
	if _, ok := g.expect(token.RightBrace, diag.SynExpectRightBrace, "expected '}' to close "+kw.Text); !ok {
		return nil, false
	}

	def := &types.StructDef{Name: name, Members: members}
	var t *types.Type
	if storage == types.Temporary {
		t = types.NewStruct(def, types.Struct)
	} else {
		post.Storage = storage
		if readOnly {
			post.Flags |= types.FlagReadOnly
		}
		t = types.NewStruct(def, types.Block)
		t.Qualifier = post
	}
	g.sema.DeclareStruct(g.spanFrom(kw.Span), t)
	return t, true
}

// struct_declaration_list
//
//	: struct_declaration SEMI_COLON struct_declaration SEMI_COLON ...
//
// struct_declaration
//
//	: attributes fully_specified_type struct_declarator COMMA struct_declarator ...
//
// struct_declarator
//
//	: IDENTIFIER post_decls
//	| IDENTIFIER array_specifier post_decls
//	| IDENTIFIER function_parameters post_decls // member-function prototype
func (g *Grammar) acceptStructDeclarationList() ([]types.Member, bool) {
	var members []types.Member
	for {
		if g.at(token.RightBrace) {
			return members, true
		}
		attrs, ok := g.acceptAttributes()
		if !ok {
			return nil, false
		}
		before := g.opts.CurrentErrors
		start := g.ts.Token().Span
		memberType, ok := g.acceptFullySpecifiedType(attrs, false)
		if !ok {
			if g.opts.CurrentErrors == before {
				g.expected(diag.SynExpectType, "member type")
			}
			return nil, false
		}
		g.sema.TransferAttributes(start, attrs, memberType)

		skippedFunction := false
		for {
			name, sp, ok := g.acceptIdentifier()
			if !ok {
				g.expected(diag.SynExpectIdentifier, "member name")
				return nil, false
			}
			if g.at(token.LeftParen) {
				if !g.skipMemberFunction(sp) {
					return nil, false
				}
				skippedFunction = true
				break
			}
			mt := memberType.Clone()
			arr, ok := g.acceptArraySpecifier()
			if !ok {
				return nil, false
			}
			addArrayDims(mt, arr)
			if !g.acceptPostDecls(&mt.Qualifier) {
				return nil, false
			}
			if g.at(token.Assign) {
				// инициализаторы членов не поддерживаются, разбираем и выбрасываем
				g.report(diag.SemaBadStructMember, diag.SevError, g.getDiagnosticSpan(), "struct member initializers are not supported")
				g.advance()
				if _, ok := g.acceptAssignmentExpression(); !ok {
					g.expected(diag.SynExpectInitializer, "initializer")
					return nil, false
				}
			}
			members = append(members, types.Member{Name: name, Type: mt, Span: sp})
			if g.at(token.Semicolon) {
				break
			}
			if _, ok := g.expect(token.Comma, diag.SynExpectComma, "expected ',' or ';' after member declarator"); !ok {
				return nil, false
			}
		}
		if skippedFunction {
			g.accept(token.Semicolon)
			continue
		}
		if _, ok := g.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after struct member"); !ok {
			return nil, false
		}
	}
}

// skipMemberFunction reports a member function and skips its parameter
// list and body with balanced brackets.
func (g *Grammar) skipMemberFunction(sp source.Span) bool {
	g.report(diag.FutMemberFunction, diag.SevError, sp, "member functions are not supported")
	if !g.skipBalanced(token.LeftParen, token.RightParen) {
		return false
	}
	var ignored types.Qualifier
	if !g.acceptPostDecls(&ignored) {
		return false
	}
	if g.at(token.LeftBrace) {
		return g.skipBalanced(token.LeftBrace, token.RightBrace)
	}
	return true
}

// skipBalanced consumes open ... close, counting nesting.
func (g *Grammar) skipBalanced(open, closing token.Kind) bool {
	if !g.accept(open) {
		return false
	}
	depth := 1
	for depth > 0 {
		switch g.ts.Peek() {
		case token.EOF:
			g.expected(diag.SynUnexpectedToken, "'"+closing.String()+"'")
			return false
		case open:
			depth++
		case closing:
			depth--
		}
		g.advance()
	}
	return true
}

// addArrayDims puts declarator dimensions outside the dimensions the
// type already carries (typedef float T[2]; T x[3] is float[3][2]).
func addArrayDims(t *types.Type, arr *types.ArraySizes) {
	if arr == nil {
		return
	}
	sizes := arr.Clone()
	sizes.AddInner(t.Arrays)
	t.Arrays = sizes
}
