package parser

import (
	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/token"
)

// scopeSeparator соединяет части имени N::name
const scopeSeparator = "::"

// postfix_expression
//
//	: LEFT_PAREN expression RIGHT_PAREN
//	| literal
//	| constructor
//	| IDENTIFIER [ COLONCOLON IDENTIFIER [ COLONCOLON IDENTIFIER ... ] ]
//	| function_call
//	| postfix_expression LEFT_BRACKET integer_expression RIGHT_BRACKET
//	| postfix_expression DOT IDENTIFIER
//	| postfix_expression DOT IDENTIFIER arguments
//	| postfix_expression INC_OP
//	| postfix_expression DEC_OP
func (g *Grammar) acceptPostfixExpression() (ir.Typed, bool) {
	node, ok := g.acceptPrimaryExpression()
	if !ok {
		return nil, false
	}

	// цепочка постфиксных операций
	for {
		switch g.ts.Peek() {
		case token.Dot:
			g.advance()
			field, sp, ok := g.acceptIdentifier()
			if !ok {
				g.expected(diag.SynExpectIdentifier, "swizzle or member")
				return nil, false
			}
			if g.at(token.LeftParen) {
				// метод объекта: t.Sample(s, uv)
				args, ok := g.acceptArguments()
				if !ok {
					return nil, false
				}
				node = g.sema.HandleCall(g.spanFrom(node.Span()), field, node, args)
			} else {
				node = g.sema.HandleDot(node.Span().Cover(sp), node, field)
			}
		case token.LeftBracket:
			g.advance()
			index, ok := g.acceptExpression()
			if !ok || !g.at(token.RightBracket) {
				g.expected(diag.SynExpectRightBracket, "expression followed by ']'")
				return nil, false
			}
			g.advance()
			node = g.sema.HandleBracket(g.spanFrom(node.Span()), node, index)
		case token.IncOp, token.DecOp:
			op := ir.OpPostIncrement
			if g.advance().Kind == token.DecOp {
				op = ir.OpPostDecrement
			}
			node = g.sema.HandleUnary(g.spanFrom(node.Span()), op, node)
		default:
			return node, true
		}
		if node == nil {
			return nil, false
		}
	}
}

func (g *Grammar) acceptPrimaryExpression() (ir.Typed, bool) {
	tok := g.ts.Token()
	switch {
	case tok.Kind == token.LeftParen:
		g.advance()
		node, ok := g.acceptExpression()
		if !ok {
			g.expected(diag.SynExpectExpression, "expression")
			return nil, false
		}
		if _, ok := g.expect(token.RightParen, diag.SynExpectRightParen, "expected ')'"); !ok {
			return nil, false
		}
		return node, true
	case tok.IsLiteral():
		g.advance()
		node := g.sema.HandleLiteral(tok)
		return node, node != nil
	}

	if node, ok, matched := g.acceptConstructor(); matched {
		return node, ok
	}

	name, sp, ok := g.acceptIdentifier()
	if !ok {
		// ничего не нашли
		return nil, false
	}
	for g.accept(token.ColonColon) {
		part, partSpan, ok := g.acceptIdentifier()
		if !ok {
			g.expected(diag.SynExpectIdentifier, "identifier after '::'")
			return nil, false
		}
		name += scopeSeparator + part
		sp = sp.Cover(partSpan)
	}
	if !g.at(token.LeftParen) {
		node := g.sema.HandleVariable(sp, name)
		return node, node != nil
	}
	args, ok := g.acceptArguments()
	if !ok {
		return nil, false
	}
	node := g.sema.HandleCall(g.spanFrom(sp), name, nil, args)
	return node, node != nil
}

// constructor
//
//	: type arguments
//
// Если за типом нет '(', это ключевое слово в роли идентификатора
// (half, vector ...): откатываемся.
func (g *Grammar) acceptConstructor() (node ir.Typed, ok, matched bool) {
	m := g.mark()
	start := g.ts.Token().Span
	before := g.opts.CurrentErrors
	t, isType := g.acceptType()
	if !isType {
		if g.opts.CurrentErrors != before {
			return nil, false, true
		}
		g.restore(m)
		return nil, false, false
	}
	if !g.at(token.LeftParen) {
		g.restore(m)
		return nil, false, false
	}
	args, ok := g.acceptArguments()
	if !ok {
		return nil, false, true
	}
	if len(args) == 0 {
		g.report(diag.SemaConstructorArgs, diag.SevError, g.spanFrom(start), "constructor requires one or more arguments")
		return nil, false, true
	}
	node = g.sema.HandleConstructor(g.spanFrom(start), t, args)
	return node, node != nil, true
}

// arguments
//
//	: LEFT_PAREN expression COMMA expression COMMA ... RIGHT_PAREN
func (g *Grammar) acceptArguments() ([]ir.Typed, bool) {
	if _, ok := g.expect(token.LeftParen, diag.SynExpectLeftParen, "expected '(' to open argument list"); !ok {
		return nil, false
	}
	args := []ir.Typed{}
	if g.accept(token.RightParen) {
		return args, true
	}
	for {
		before := g.opts.CurrentErrors
		arg, ok := g.acceptAssignmentExpression()
		if !ok {
			if g.opts.CurrentErrors == before {
				g.expected(diag.SynExpectExpression, "argument")
			}
			return nil, false
		}
		args = append(args, arg)
		if !g.accept(token.Comma) {
			break
		}
	}
	if _, ok := g.expect(token.RightParen, diag.SynExpectRightParen, "expected ')' to close argument list"); !ok {
		return nil, false
	}
	return args, true
}
