package parser

import (
	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/source"
	"hlslc/internal/symbols"
	"hlslc/internal/token"
	"hlslc/internal/types"
)

// declaration
//
//	: attributes attributed_declaration
//	| NAMESPACE IDENTIFIER LEFT_BRACE declaration_list RIGHT_BRACE
//
// attributed_declaration
//
//	: sampler_declaration_dx9 post_decls SEMICOLON
//	| fully_specified_type                           // for cbuffer/tbuffer
//	| fully_specified_type declarator_list SEMICOLON // for non cbuffer/tbuffer
//	| fully_specified_type identifier function_parameters post_decls compound_statement  // function definition
//	| fully_specified_type identifier sampler_state post_decls compound_statement        // sampler definition
//	| typedef declaration
//
// declarator_list
//
//	: declarator COMMA declarator COMMA declarator...  // zero or more declarators
//
// declarator
//
//	: identifier array_specifier post_decls
//	| identifier array_specifier post_decls EQUAL assignment_expression
//	| identifier function_parameters post_decls                                          // function prototype
//
// Если сразу после типа вместо ';' стоит '=', '[', '.' или ',', это было не
// объявление, а выражение вида "float = 4": откатываемся и возвращаем false
// без ошибки. После первого декларатора отката нет, это ошибка.
func (g *Grammar) acceptDeclaration(nodes *ir.Node) bool {
	if g.at(token.KwNamespace) {
		return g.acceptNamespace(nodes)
	}

	start := g.mark()
	startSpan := g.ts.Token().Span

	attrs, ok := g.acceptAttributes()
	if !ok {
		return false
	}
	typedefDecl := g.accept(token.KwTypedef)
	forbidDeclarators := g.at_or(token.KwCBuffer, token.KwTBuffer)

	declared, ok := g.acceptFullySpecifiedType(attrs, forbidDeclarators)
	if !ok {
		if typedefDecl {
			g.expected(diag.SynExpectType, "type after typedef")
		}
		return false
	}
	// cbuffer и tbuffer заканчиваются на '}', без ';'
	if forbidDeclarators {
		return true
	}

	switch declared.Qualifier.Storage {
	case types.In, types.Out, types.InOut:
		g.report(diag.SemaQualifierConflict, diag.SevError, g.spanFrom(startSpan), "in/out qualifiers are only valid on parameters")
	}

	var initializers ir.Node
	declaratorList := false
	declarators := 0
	lastSpan := startSpan
	for {
		name, idSpan, isIdent := g.acceptIdentifier()
		if !isIdent {
			break
		}
		declarators++
		lastSpan = idSpan
		fullName := name
		if g.sema.AtGlobalLevel() {
			fullName = g.sema.FullName(name)
		}

		if g.at(token.LeftParen) {
			ret := declared.Clone()
			g.sema.TransferAttributes(idSpan, attrs, ret)
			fn, ok := g.acceptFunctionParameters(fullName, ret, idSpan)
			if !ok {
				return false
			}
			if !g.acceptPostDecls(&fn.Return.Qualifier) {
				return false
			}
			if g.at(token.LeftBrace) {
				if declaratorList {
					g.report(diag.SynExpectSemicolon, diag.SevError, idSpan, "function body can't be in a declarator list")
				}
				if typedefDecl {
					g.report(diag.SynExpectSemicolon, diag.SevError, idSpan, "function body can't be in a typedef")
				}
				return g.acceptFunctionDefinition(fn, attrs, nodes)
			}
			if typedefDecl {
				g.report(diag.SemaBadTypedef, diag.SevError, idSpan, "function typedefs are not supported")
			}
			g.sema.DeclareFunction(idSpan, fn)
		} else {
			if !declaratorList {
				g.sema.TransferAttributes(idSpan, attrs, declared)
			}
			if declared.Qualifier.Storage == types.Temporary && g.sema.AtGlobalLevel() {
				declared.Qualifier.Storage = types.Uniform
			}

			arr, ok := g.acceptArraySpecifier()
			if !ok {
				return false
			}
			varType := declared.Clone()
			addArrayDims(varType, arr)

			if varType.Basic == types.SamplerKind {
				if !g.acceptSamplerState() {
					return false
				}
			}
			if !g.acceptPostDecls(&varType.Qualifier) {
				return false
			}

			var init ir.Typed
			if g.accept(token.Assign) {
				if typedefDecl {
					g.report(diag.SemaBadTypedef, diag.SevError, idSpan, "typedef can't have an initializer")
				}
				if init, ok = g.acceptAssignmentExpression(); !ok {
					g.expected(diag.SynExpectInitializer, "initializer")
					return false
				}
			}

			// строки и всё внутри аннотаций не объявляются
			if varType.Basic != types.String && g.annotationDepth == 0 {
				switch {
				case typedefDecl:
					g.sema.DeclareTypedef(idSpan, fullName, varType)
				case varType.Basic == types.Block:
					if init != nil {
						g.report(diag.SemaBadInitializer, diag.SevError, idSpan, "buffer aliasing is not supported")
					}
					g.sema.DeclareBlock(idSpan, varType, fullName)
				default:
					decl := g.sema.DeclareVariable(idSpan, fullName, varType, init)
					initializers = g.sema.Grow(initializers, decl, idSpan)
				}
			}
		}

		if !g.accept(token.Comma) {
			break
		}
		declaratorList = true
	}

	if initializers != nil {
		initializers = g.sema.HandleSequence(startSpan.Cover(lastSpan), initializers)
	}
	if declared.Qualifier.Storage == types.Global && !g.sema.AtGlobalLevel() {
		// локальный static инициализируется на уровне модуля
		g.unit = g.sema.Grow(g.unit, initializers, lastSpan)
	} else if *nodes == nil {
		*nodes = initializers
	} else {
		*nodes = g.sema.Grow(*nodes, initializers, lastSpan)
	}

	if !g.accept(token.Semicolon) {
		// "float = 4": это было выражение; откат возможен, пока ничего
		// не объявлено
		if declarators == 0 && g.at_or(token.Assign, token.LeftBracket, token.Dot, token.Comma) && g.restore(start) {
			return false
		}
		g.expected(diag.SynExpectSemicolon, "';' after declaration")
		return false
	}
	return true
}

// NAMESPACE IDENTIFIER LEFT_BRACE declaration_list RIGHT_BRACE
func (g *Grammar) acceptNamespace(nodes *ir.Node) bool {
	g.advance()
	name, _, ok := g.acceptIdentifier()
	if !ok {
		g.expected(diag.SynExpectIdentifier, "namespace name")
		return false
	}
	g.sema.PushNamespace(name)
	defer g.sema.PopNamespace()
	if _, ok := g.expect(token.LeftBrace, diag.SynExpectLeftBrace, "expected '{' after namespace name"); !ok {
		return false
	}
	if !g.acceptDeclarationList(nodes) {
		return false
	}
	_, ok = g.expect(token.RightBrace, diag.SynExpectRightBrace, "expected '}' to close namespace")
	return ok
}

// fully_specified_type
//
//	: type_specifier
//	| type_qualifier type_specifier
//	| type_specifier type_qualifier
func (g *Grammar) acceptFullySpecifiedType(attrs Attributes, forbidDeclarators bool) (*types.Type, bool) {
	m := g.mark()
	var q types.Qualifier
	if !g.acceptPreQualifier(&q) {
		return nil, false
	}
	sp := g.ts.Token().Span
	before := g.opts.CurrentErrors
	t, ok := g.acceptType()
	if !ok {
		if g.opts.CurrentErrors == before && !g.restore(m) {
			// квалификаторы без типа: это не объявление
			g.expected(diag.SynExpectType, "type after qualifiers")
		}
		return nil, false
	}

	if t.Basic == types.Block {
		// cbuffer/tbuffer и структурные буферы: квалификаторы сливаются с блоком
		g.sema.MergeQualifier(sp, &t.Qualifier, q)
		g.sema.TransferAttributes(sp, attrs, t)
		if _, named := g.ts.Token().IdentText(); forbidDeclarators || !named {
			g.sema.DeclareBlock(g.spanFrom(sp), t, "")
		}
		return t, true
	}

	q.Format = t.Qualifier.Format
	if s := t.Qualifier.Storage; s == types.Out || s == types.Buffer {
		q.Storage = s
		q.Flags |= t.Qualifier.Flags & types.FlagReadOnly
	}
	q.Flags |= t.Qualifier.Flags & (types.FlagUNorm | types.FlagSNorm)
	if t.Qualifier.Builtin != types.BuiltinNone {
		q.Builtin = t.Qualifier.Builtin
	}
	// квалификаторы из typedef сохраняются
	if t.Qualifier.Matrix != types.MatrixNone && q.Matrix == types.MatrixNone {
		q.Matrix = t.Qualifier.Matrix
	}
	t.Qualifier = q
	return t, true
}

// function_parameters
//
//	: LEFT_PAREN parameter_declaration COMMA parameter_declaration ... RIGHT_PAREN
//	| LEFT_PAREN VOID RIGHT_PAREN
func (g *Grammar) acceptFunctionParameters(name string, ret *types.Type, sp source.Span) (*symbols.Function, bool) {
	if _, ok := g.expect(token.LeftParen, diag.SynExpectLeftParen, "expected '(' to open parameter list"); !ok {
		return nil, false
	}
	var params []symbols.Param
	if g.at(token.KwVoid) && g.ts.PeekAhead(1) == token.RightParen {
		g.advance()
	} else {
		for {
			p, ok, matched := g.acceptParameterDeclaration(params)
			if !ok {
				return nil, false
			}
			if !matched {
				break
			}
			params = append(params, p)
			if !g.accept(token.Comma) {
				break
			}
		}
	}
	if _, ok := g.expect(token.RightParen, diag.SynExpectRightParen, "expected ')' to close parameter list"); !ok {
		return nil, false
	}
	fn := symbols.NewFunction(name, ret, params)
	fn.Span = sp
	return fn, true
}

// parameter_declaration
//
//	: attributes attributed_declaration
//
// attributed_declaration
//
//	: fully_specified_type post_decls [ = default_parameter_declaration ]
//	| fully_specified_type identifier array_specifier post_decls [ = default_parameter_declaration ]
//
// matched is false when no parameter starts here (no error reported).
func (g *Grammar) acceptParameterDeclaration(prior []symbols.Param) (p symbols.Param, ok, matched bool) {
	attrs, ok := g.acceptAttributes()
	if !ok {
		return p, false, false
	}
	start := g.ts.Token().Span
	before := g.opts.CurrentErrors
	t, ok := g.acceptFullySpecifiedType(attrs, false)
	if !ok {
		if g.opts.CurrentErrors != before {
			return p, false, false
		}
		if len(attrs) > 0 {
			g.expected(diag.SynExpectParameter, "parameter type")
			return p, false, false
		}
		return p, true, false
	}
	g.sema.TransferAttributes(start, attrs, t)

	name, idSpan, _ := g.acceptIdentifier()
	arr, ok := g.acceptArraySpecifier()
	if !ok {
		return p, false, false
	}
	if arr != nil {
		if arr.IsImplicit() {
			g.err(diag.SynExpectArraySize, "function parameter requires array size")
			return p, false, false
		}
		addArrayDims(t, arr)
	}
	if !g.acceptPostDecls(&t.Qualifier) {
		return p, false, false
	}

	var def ir.Typed
	if g.accept(token.Assign) {
		// default_parameter_declaration
		//	: EQUAL conditional_expression
		//	| EQUAL initializer
		var value ir.Typed
		if g.at(token.LeftBrace) {
			value, ok = g.acceptInitializer()
		} else {
			value, ok = g.acceptConditionalExpression()
		}
		if !ok {
			g.expected(diag.SynExpectInitializer, "default parameter value")
			return p, false, false
		}
		if def = g.sema.DefaultParameter(g.spanFrom(start), t, value); def == nil {
			return p, false, false
		}
	}

	g.sema.FixParameter(g.spanFrom(start), t)

	if def == nil && len(prior) > 0 && prior[len(prior)-1].Default != nil {
		g.report(diag.SemaBadDefaultArgument, diag.SevError, idSpan, "invalid parameter after default value parameters")
		return p, false, false
	}
	if idSpan.Empty() || name == "" {
		idSpan = start
	}
	return symbols.Param{Name: name, Type: t, Default: def, Span: idSpan}, true, true
}

// function_definition
//
//	: function_parameters post_decls compound_statement
func (g *Grammar) acceptFunctionDefinition(fn *symbols.Function, attrs Attributes, nodes *ir.Node) bool {
	start := fn.Span
	g.sema.BeginFunction(start, fn, attrs)
	var body ir.Node
	ok := g.acceptCompoundStatement(&body)
	// EndFunction закрывает область функции даже после ошибки
	def := g.sema.EndFunction(g.spanFrom(start), fn, body)
	if !ok {
		return false
	}
	*nodes = g.sema.Grow(*nodes, def, g.spanFrom(start))
	return true
}

// control_declaration
//
//	: fully_specified_type identifier EQUAL expression
func (g *Grammar) acceptControlDeclaration() (ir.Typed, bool) {
	m := g.mark()
	attrs, ok := g.acceptAttributes()
	if !ok {
		return nil, false
	}
	t, ok := g.acceptFullySpecifiedType(attrs, false)
	if !ok {
		g.restore(m)
		return nil, false
	}
	// отсеиваем приведения типа: if (float(x) > 0)
	if g.at(token.LeftParen) {
		g.restore(m)
		return nil, false
	}
	name, sp, ok := g.acceptIdentifier()
	if !ok {
		g.restore(m)
		return nil, false
	}
	if _, ok := g.expect(token.Assign, diag.SynExpectInitializer, "expected '=' in control declaration"); !ok {
		return nil, false
	}
	init, ok := g.acceptExpression()
	if !ok {
		g.expected(diag.SynExpectInitializer, "initializer")
		return nil, false
	}
	node := g.sema.DeclareVariable(sp, name, t, init)
	typed, isTyped := node.(ir.Typed)
	if node == nil || !isTyped {
		g.report(diag.SynExpectInitializer, diag.SevError, sp, "expected initialized declaration")
		return nil, false
	}
	return typed, true
}
