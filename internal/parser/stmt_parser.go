package parser

import (
	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/token"
)

// statement
//
//	: attributes attributed_statement
//
// attributed_statement
//
//	: compound_statement
//	| simple_statement
//	| selection_statement
//	| switch_statement
//	| case_label
//	| default_label
//	| iteration_statement
//	| jump_statement
func (g *Grammar) acceptStatement() (ir.Node, bool) {
	attrs, ok := g.acceptAttributes()
	if !ok {
		return nil, false
	}
	switch g.ts.Peek() {
	case token.LeftBrace:
		return g.acceptScopedCompoundStatement()
	case token.KwIf:
		return g.acceptSelectionStatement(attrs)
	case token.KwSwitch:
		return g.acceptSwitchStatement(attrs)
	case token.KwFor, token.KwDo, token.KwWhile:
		return g.acceptIterationStatement(attrs)
	case token.KwContinue, token.KwBreak, token.KwDiscard, token.KwReturn:
		return g.acceptJumpStatement()
	case token.KwCase:
		return g.acceptCaseLabel()
	case token.KwDefault:
		return g.acceptDefaultLabel()
	case token.RightBrace:
		return nil, false
	default:
		return g.acceptSimpleStatement()
	}
}

// compound_statement
//
//	: LEFT_CURLY statement statement ... RIGHT_CURLY
//
// Метки case/default закрывают текущую подпоследовательность switch.
func (g *Grammar) acceptCompoundStatement(out *ir.Node) bool {
	open, ok := g.expect(token.LeftBrace, diag.SynExpectLeftBrace, "expected '{'")
	if !ok {
		return false
	}
	var compound ir.Node
	for !g.at_or(token.RightBrace, token.EOF) {
		before := g.opts.CurrentErrors
		stmt, ok := g.acceptStatement()
		if !ok {
			if g.opts.CurrentErrors == before {
				g.expected(diag.SynExpectStatement, "statement")
			}
			return false
		}
		if br, isBranch := stmt.(*ir.Branch); isBranch && (br.Op == ir.OpCase || br.Op == ir.OpDefault) {
			g.sema.WrapupSwitchSubsequence(compound, stmt)
			compound = nil
			continue
		}
		compound = g.sema.Grow(compound, stmt, g.spanFrom(open.Span))
	}
	if _, ok := g.expect(token.RightBrace, diag.SynExpectRightBrace, "expected '}'"); !ok {
		return false
	}
	if compound != nil {
		compound = g.sema.HandleSequence(g.spanFrom(open.Span), compound)
	}
	*out = compound
	return true
}

func (g *Grammar) acceptScopedCompoundStatement() (ir.Node, bool) {
	g.sema.PushScope(g.ts.Token().Span)
	defer g.sema.PopScope()
	var node ir.Node
	ok := g.acceptCompoundStatement(&node)
	return node, ok
}

// acceptScopedStatement - тело if/цикла в собственной области видимости
func (g *Grammar) acceptScopedStatement() (ir.Node, bool) {
	g.sema.PushScope(g.ts.Token().Span)
	defer g.sema.PopScope()
	return g.acceptStatement()
}

// simple_statement
//
//	: SEMICOLON
//	| declaration_statement
//	| expression SEMICOLON
func (g *Grammar) acceptSimpleStatement() (ir.Node, bool) {
	if g.accept(token.Semicolon) {
		return nil, true
	}
	var decl ir.Node
	before := g.opts.CurrentErrors
	if g.acceptDeclaration(&decl) {
		return decl, true
	}
	if g.opts.CurrentErrors != before {
		return nil, false
	}
	expr, ok := g.acceptExpression()
	if !ok {
		return nil, false
	}
	if _, ok := g.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression"); !ok {
		return nil, false
	}
	return expr, true
}

// paren_expression
//
//	: LEFT_PAREN expression RIGHT_PAREN
//	| LEFT_PAREN control_declaration RIGHT_PAREN
func (g *Grammar) acceptParenExpression() (ir.Typed, bool) {
	if _, ok := g.expect(token.LeftParen, diag.SynExpectLeftParen, "expected '('"); !ok {
		return nil, false
	}
	before := g.opts.CurrentErrors
	expr, ok := g.acceptControlDeclaration()
	if !ok {
		if g.opts.CurrentErrors != before {
			return nil, false
		}
		if expr, ok = g.acceptExpression(); !ok {
			if g.opts.CurrentErrors == before {
				g.expected(diag.SynExpectExpression, "expression")
			}
			return nil, false
		}
	}
	if _, ok := g.expect(token.RightParen, diag.SynExpectRightParen, "expected ')'"); !ok {
		return nil, false
	}
	return expr, true
}
