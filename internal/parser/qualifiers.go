package parser

import (
	"strings"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/token"
	"hlslc/internal/types"
)

// geometryPrimitives - ключевые слова входной геометрии GS
var geometryPrimitives = map[token.Kind]ir.Primitive{
	token.KwPoint:       ir.PrimPoints,
	token.KwLine:        ir.PrimLines,
	token.KwTriangle:    ir.PrimTriangles,
	token.KwLineAdj:     ir.PrimLinesAdjacency,
	token.KwTriangleAdj: ir.PrimTrianglesAdjacency,
}

// qualifierFollows decides whether a keyword that may also spell an
// identifier acts as a qualifier here: only when a type or a name follows.
func (g *Grammar) qualifierFollows() bool {
	next := g.ts.PeekAhead(1)
	if next == token.Ident {
		return true
	}
	return token.Token{Kind: next}.IsKeyword()
}

// qualifier
//
//	: (STATIC | CONST | UNIFORM | IN | OUT | ... | layout(...))*
func (g *Grammar) acceptPreQualifier(q *types.Qualifier) bool {
	for {
		tok := g.ts.Token()
		if _, dual := token.IdentifierSpelling(tok.Kind); dual && tok.Kind != token.KwLayout && !g.qualifierFollows() {
			return true
		}
		switch tok.Kind {
		case token.KwStatic:
			q.Storage = types.Global
		case token.KwExtern, token.KwShared, token.KwInline:
			// no effect
		case token.KwGroupShared:
			q.Storage = types.Shared
		case token.KwUniform:
			q.Storage = types.Uniform
		case token.KwConst:
			q.Storage = types.Const
		case token.KwVolatile:
			q.Flags |= types.FlagVolatile
		case token.KwLinear:
			q.Flags |= types.FlagSmooth
		case token.KwCentroid:
			q.Flags |= types.FlagCentroid
		case token.KwNoInterpolation:
			q.Flags |= types.FlagFlat
		case token.KwNoPerspective:
			q.Flags |= types.FlagNoPerspective
		case token.KwSample:
			q.Flags |= types.FlagSample
		case token.KwRowMajor:
			// HLSL row_major - это column major в представлении IR
			q.Matrix = types.MatrixColumnMajor
		case token.KwColumnMajor:
			q.Matrix = types.MatrixRowMajor
		case token.KwPrecise:
			q.Flags |= types.FlagPrecise
		case token.KwGloballyCoherent:
			q.Flags |= types.FlagCoherent
		case token.KwIn:
			switch q.Storage {
			case types.Uniform:
			case types.Out:
				q.Storage = types.InOut
			default:
				q.Storage = types.In
			}
		case token.KwOut:
			if q.Storage == types.In {
				q.Storage = types.InOut
			} else {
				q.Storage = types.Out
			}
		case token.KwInOut:
			q.Storage = types.InOut
		case token.KwLayout:
			if !g.acceptLayoutQualifierList(q) {
				return false
			}
			continue
		case token.KwPoint, token.KwLine, token.KwTriangle, token.KwLineAdj, token.KwTriangleAdj:
			q.Storage = types.In
			if !g.sema.HandleInputGeometry(tok.Span, geometryPrimitives[tok.Kind]) {
				return false
			}
		default:
			return true
		}
		g.advance()
	}
}

// layout_qualifier_list
//
//	: LAYOUT LEFT_PAREN layout_qualifier (COMMA layout_qualifier)* RIGHT_PAREN
//
// layout_qualifier
//
//	: identifier
//	| identifier EQUAL expression
func (g *Grammar) acceptLayoutQualifierList(q *types.Qualifier) bool {
	if !g.accept(token.KwLayout) {
		return false
	}
	if _, ok := g.expect(token.LeftParen, diag.SynExpectLeftParen, "expected '(' after layout"); !ok {
		return false
	}
	for {
		id, sp, ok := g.acceptIdentifier()
		if !ok {
			break
		}
		var value ir.Typed
		if g.accept(token.Assign) {
			value, ok = g.acceptConditionalExpression()
			if !ok {
				g.expected(diag.SynBadLayout, "layout value")
				return false
			}
		}
		g.sema.SetLayoutQualifier(sp, q, id, value)
		if !g.accept(token.Comma) {
			break
		}
	}
	_, ok := g.expect(token.RightParen, diag.SynExpectRightParen, "expected ')' to close layout")
	return ok
}

// post_decls
//
//	: (COLON layout_qualifier_list
//	|  COLON PACKOFFSET LEFT_PAREN c[sub][.comp] RIGHT_PAREN
//	|  COLON REGISTER LEFT_PAREN [profile,] Type#[sub] [, spaceN] RIGHT_PAREN
//	|  COLON SEMANTIC
//	|  annotations)*
func (g *Grammar) acceptPostDecls(q *types.Qualifier) bool {
	for {
		switch {
		case g.accept(token.Colon):
			var ok bool
			switch {
			case g.at(token.KwLayout):
				ok = g.acceptLayoutQualifierList(q)
			case g.at(token.KwPackOffset):
				ok = g.acceptPackOffset(q)
			case g.at(token.KwRegister):
				ok = g.acceptRegister(q)
			default:
				name, sp, isIdent := g.acceptIdentifier()
				if !isIdent {
					g.expected(diag.SynBadPostDeclaration, "layout, semantic, packoffset, or register")
					return false
				}
				g.sema.HandleSemantic(sp, q, strings.ToUpper(name))
				ok = true
			}
			if !ok {
				return false
			}
		case g.at(token.LeftAngle):
			if !g.acceptAnnotations() {
				return false
			}
		default:
			return true
		}
	}
}

// PACKOFFSET LEFT_PAREN c[Subcomponent][.component] RIGHT_PAREN
func (g *Grammar) acceptPackOffset(q *types.Qualifier) bool {
	g.advance()
	if _, ok := g.expect(token.LeftParen, diag.SynExpectLeftParen, "expected '(' after packoffset"); !ok {
		return false
	}
	location, sp, ok := g.acceptIdentifier()
	if !ok {
		g.expected(diag.SynBadPostDeclaration, "c[subcomponent][.component]")
		return false
	}
	component := ""
	if g.accept(token.Dot) {
		if component, _, ok = g.acceptIdentifier(); !ok {
			g.expected(diag.SynBadPostDeclaration, "component")
			return false
		}
	}
	if _, ok := g.expect(token.RightParen, diag.SynExpectRightParen, "expected ')' to close packoffset"); !ok {
		return false
	}
	g.sema.HandlePackOffset(sp, q, location, component)
	return true
}

// REGISTER LEFT_PAREN [shader_profile,] Type#[subcomp]opt (COMMA SPACEN)opt RIGHT_PAREN
func (g *Grammar) acceptRegister(q *types.Qualifier) bool {
	g.advance()
	if _, ok := g.expect(token.LeftParen, diag.SynExpectLeftParen, "expected '(' after register"); !ok {
		return false
	}
	desc, sp, ok := g.acceptIdentifier()
	if !ok {
		g.expected(diag.SynBadPostDeclaration, "register number description")
		return false
	}
	profile := ""
	// ps_5_0, b0: первым шёл профиль
	if len(desc) > 1 && (desc[1] < '0' || desc[1] > '9') && g.accept(token.Comma) {
		profile = desc
		if desc, sp, ok = g.acceptIdentifier(); !ok {
			g.expected(diag.SynBadPostDeclaration, "register number description")
			return false
		}
	}
	subComponent := 0
	if g.accept(token.LeftBracket) {
		if !g.at(token.IntLit) && !g.at(token.UintLit) {
			g.expected(diag.SynBadPostDeclaration, "literal integer")
			return false
		}
		tok := g.advance()
		subComponent = int(tok.Int)
		if tok.Kind == token.UintLit {
			subComponent = int(tok.Uint)
		}
		if _, ok := g.expect(token.RightBracket, diag.SynExpectRightBracket, "expected ']'"); !ok {
			return false
		}
	}
	space := ""
	if g.accept(token.Comma) {
		if space, _, ok = g.acceptIdentifier(); !ok {
			g.expected(diag.SynBadPostDeclaration, "space identifier")
			return false
		}
	}
	if _, ok := g.expect(token.RightParen, diag.SynExpectRightParen, "expected ')' to close register"); !ok {
		return false
	}
	g.sema.HandleRegister(sp, q, profile, desc, subComponent, space)
	return true
}

// annotations
//
//	: LEFT_ANGLE declaration SEMI_COLON ... declaration SEMICOLON RIGHT_ANGLE
//
// Объявления внутри аннотаций разбираются, но не объявляются.
func (g *Grammar) acceptAnnotations() bool {
	if !g.accept(token.LeftAngle) {
		return false
	}
	g.annotationDepth++
	defer func() { g.annotationDepth-- }()
	for {
		for g.accept(token.Semicolon) {
		}
		if g.accept(token.RightAngle) {
			return true
		}
		var node ir.Node
		before := g.opts.CurrentErrors
		if !g.acceptDeclaration(&node) {
			if g.opts.CurrentErrors == before {
				g.expected(diag.SynExpectAnnotation, "declaration in annotation")
			}
			return false
		}
	}
}

// sampler_state
//
//	: LEFT_BRACE [sampler_state_assignment ... ] RIGHT_BRACE
//
// sampler_state_assignment
//
//	: sampler_state_identifier EQUAL value SEMICOLON
func (g *Grammar) acceptSamplerState() bool {
	if !g.at(token.LeftBrace) {
		return true
	}
	g.warn(diag.SynExpectSamplerState, "immediate sampler state is not implemented and is ignored")
	g.advance()
	for {
		state, _, ok := g.acceptIdentifier()
		if !ok {
			break
		}
		if _, ok := g.expect(token.Assign, diag.SynExpectSamplerState, "expected '=' in sampler state"); !ok {
			return false
		}
		switch strings.ToLower(state) {
		case "minlod", "maxlod", "maxanisotropy":
			if !g.at(token.IntLit) && !g.at(token.UintLit) {
				g.expected(diag.SynExpectSamplerState, "integer")
				return false
			}
			g.advance()
		case "filter", "addressu", "addressv", "addressw":
			if _, _, ok := g.acceptIdentifier(); !ok {
				g.expected(diag.SynExpectSamplerState, "sampler state mode")
				return false
			}
		case "mipmaplodbias":
			if !g.ts.Token().IsLiteral() {
				g.expected(diag.SynExpectSamplerState, "lod bias")
				return false
			}
			g.advance()
		default:
			g.err(diag.SynExpectSamplerState, "unsupported sampler state \""+state+"\"")
			return false
		}
		if _, ok := g.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after sampler state"); !ok {
			return false
		}
	}
	_, ok := g.expect(token.RightBrace, diag.SynExpectRightBrace, "expected '}' to close sampler state")
	return ok
}

// array_specifier
//
//	: LEFT_BRACKET RIGHT_BRACKET // optional
//	| LEFT_BRACKET constant_expression RIGHT_BRACKET
//
// Возвращает nil, если скобок нет.
func (g *Grammar) acceptArraySpecifier() (*types.ArraySizes, bool) {
	if !g.at(token.LeftBracket) {
		return nil, true
	}
	sizes := &types.ArraySizes{}
	for g.at(token.LeftBracket) {
		start := g.advance().Span
		size, hasSize := g.acceptAssignmentExpression()
		if _, ok := g.expect(token.RightBracket, diag.SynExpectRightBracket, "expected ']' after array size"); !ok {
			return nil, false
		}
		if hasSize {
			sizes.Dims = append(sizes.Dims, g.sema.ArraySize(g.spanFrom(start), size))
		} else {
			// размер определит инициализатор
			sizes.Dims = append(sizes.Dims, types.ArrayDim{Size: types.Implicit})
		}
	}
	return sizes, true
}
