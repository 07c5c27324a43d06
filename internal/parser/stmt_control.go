package parser

import (
	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/token"
)

// selection_statement
//
//	: IF LEFT_PAREN expression RIGHT_PAREN statement
//	: IF LEFT_PAREN expression RIGHT_PAREN statement ELSE statement
func (g *Grammar) acceptSelectionStatement(attrs Attributes) (ir.Node, bool) {
	kw := g.advance()
	// объявленное в условии живёт до конца then/else
	g.sema.PushScope(kw.Span)
	defer g.sema.PopScope()

	cond, ok := g.acceptParenExpression()
	if !ok {
		return nil, false
	}
	if cond = g.sema.ConvertCondition(cond.Span(), cond); cond == nil {
		return nil, false
	}

	before := g.opts.CurrentErrors
	then, ok := g.acceptScopedStatement()
	if !ok {
		if g.opts.CurrentErrors == before {
			g.expected(diag.SynExpectStatement, "then statement")
		}
		return nil, false
	}
	var els ir.Node
	if g.accept(token.KwElse) {
		before = g.opts.CurrentErrors
		if els, ok = g.acceptScopedStatement(); !ok {
			if g.opts.CurrentErrors == before {
				g.expected(diag.SynExpectStatement, "else statement")
			}
			return nil, false
		}
	}
	return g.sema.HandleSelection(g.spanFrom(kw.Span), cond, then, els, attrs), true
}

// switch_statement
//
//	: SWITCH LEFT_PAREN expression RIGHT_PAREN compound_statement
func (g *Grammar) acceptSwitchStatement(attrs Attributes) (ir.Node, bool) {
	kw := g.advance()
	g.sema.PushScope(kw.Span)
	defer g.sema.PopScope()

	cond, ok := g.acceptParenExpression()
	if !ok {
		return nil, false
	}

	g.sema.BeginSwitch()
	var last ir.Node
	ok = g.acceptCompoundStatement(&last)
	// EndSwitch снимает последовательность со стека в любом случае
	node := g.sema.EndSwitch(g.spanFrom(kw.Span), cond, last, attrs)
	if !ok {
		return nil, false
	}
	return node, true
}

// iteration_statement
//
//	: WHILE LEFT_PAREN condition RIGHT_PAREN statement
//	| DO LEFT_BRACE statement RIGHT_BRACE WHILE LEFT_PAREN expression RIGHT_PAREN SEMICOLON
//	| FOR LEFT_PAREN for_init_statement for_rest_statement RIGHT_PAREN statement
func (g *Grammar) acceptIterationStatement(attrs Attributes) (ir.Node, bool) {
	switch g.ts.Peek() {
	case token.KwWhile:
		return g.acceptWhile(attrs)
	case token.KwDo:
		return g.acceptDoWhile(attrs)
	default:
		return g.acceptFor(attrs)
	}
}

func (g *Grammar) acceptWhile(attrs Attributes) (ir.Node, bool) {
	kw := g.advance()
	g.sema.PushScope(kw.Span)
	defer g.sema.PopScope()
	g.sema.BeginLoop()
	defer g.sema.EndLoop()

	cond, ok := g.acceptParenExpression()
	if !ok {
		return nil, false
	}
	if cond = g.sema.ConvertCondition(cond.Span(), cond); cond == nil {
		return nil, false
	}
	before := g.opts.CurrentErrors
	body, ok := g.acceptScopedStatement()
	if !ok {
		if g.opts.CurrentErrors == before {
			g.expected(diag.SynExpectStatement, "while sub-statement")
		}
		return nil, false
	}
	return g.sema.HandleLoop(g.spanFrom(kw.Span), LoopWhile, nil, cond, nil, body, attrs), true
}

func (g *Grammar) acceptDoWhile(attrs Attributes) (ir.Node, bool) {
	kw := g.advance()
	g.sema.BeginLoop()
	defer g.sema.EndLoop()

	before := g.opts.CurrentErrors
	body, ok := g.acceptScopedStatement()
	if !ok {
		if g.opts.CurrentErrors == before {
			g.expected(diag.SynExpectStatement, "do sub-statement")
		}
		return nil, false
	}
	if _, ok := g.expect(token.KwWhile, diag.SynExpectWhile, "expected 'while' after do body"); !ok {
		return nil, false
	}
	cond, ok := g.acceptParenExpression()
	if !ok {
		return nil, false
	}
	if cond = g.sema.ConvertCondition(cond.Span(), cond); cond == nil {
		return nil, false
	}
	if _, ok := g.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after do-while"); !ok {
		return nil, false
	}
	return g.sema.HandleLoop(g.spanFrom(kw.Span), LoopDo, nil, cond, nil, body, attrs), true
}

func (g *Grammar) acceptFor(attrs Attributes) (ir.Node, bool) {
	kw := g.advance()
	if _, ok := g.expect(token.LeftParen, diag.SynExpectLeftParen, "expected '(' after for"); !ok {
		return nil, false
	}
	// переменные из инициализатора живут до конца цикла
	g.sema.PushScope(kw.Span)
	defer g.sema.PopScope()

	before := g.opts.CurrentErrors
	init, ok := g.acceptSimpleStatement()
	if !ok {
		if g.opts.CurrentErrors == before {
			g.expected(diag.SynExpectStatement, "for-loop initializer statement")
		}
		return nil, false
	}

	g.sema.BeginLoop()
	defer g.sema.EndLoop()

	var cond ir.Typed
	if !g.at(token.Semicolon) {
		if cond, ok = g.acceptExpression(); !ok {
			g.expected(diag.SynExpectExpression, "for-loop condition")
			return nil, false
		}
		if cond = g.sema.ConvertCondition(cond.Span(), cond); cond == nil {
			return nil, false
		}
	}
	if _, ok := g.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after for-loop condition"); !ok {
		return nil, false
	}

	var iter ir.Typed
	if !g.at(token.RightParen) {
		if iter, ok = g.acceptExpression(); !ok {
			g.expected(diag.SynExpectExpression, "for-loop iterator")
			return nil, false
		}
	}
	if _, ok := g.expect(token.RightParen, diag.SynExpectRightParen, "expected ')' to close for header"); !ok {
		return nil, false
	}

	before = g.opts.CurrentErrors
	body, ok := g.acceptScopedStatement()
	if !ok {
		if g.opts.CurrentErrors == before {
			g.expected(diag.SynExpectStatement, "for sub-statement")
		}
		return nil, false
	}
	return g.sema.HandleLoop(g.spanFrom(kw.Span), LoopFor, init, cond, iter, body, attrs), true
}

// jump_statement
//
//	: CONTINUE SEMICOLON
//	| BREAK SEMICOLON
//	| DISCARD SEMICOLON
//	| RETURN SEMICOLON
//	| RETURN expression SEMICOLON
func (g *Grammar) acceptJumpStatement() (ir.Node, bool) {
	kw := g.advance()
	var node ir.Node
	switch kw.Kind {
	case token.KwContinue:
		node = g.sema.HandleBranch(kw.Span, ir.OpContinue)
	case token.KwBreak:
		node = g.sema.HandleBranch(kw.Span, ir.OpBreak)
	case token.KwDiscard:
		node = g.sema.HandleBranch(kw.Span, ir.OpKill)
	case token.KwReturn:
		var value ir.Typed
		if !g.at(token.Semicolon) {
			var ok bool
			if value, ok = g.acceptExpression(); !ok {
				g.expected(diag.SynExpectExpression, "return value")
				return nil, false
			}
		}
		node = g.sema.HandleReturn(g.spanFrom(kw.Span), value)
	}
	if _, ok := g.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after "+kw.Text); !ok {
		return nil, false
	}
	return node, true
}

// case_label
//
//	: CASE expression COLON
func (g *Grammar) acceptCaseLabel() (ir.Node, bool) {
	kw := g.advance()
	value, ok := g.acceptExpression()
	if !ok {
		g.expected(diag.SynExpectCaseExpression, "case expression")
		return nil, false
	}
	if _, ok := g.expect(token.Colon, diag.SynExpectColon, "expected ':' after case expression"); !ok {
		return nil, false
	}
	return g.sema.HandleCaseLabel(g.spanFrom(kw.Span), value), true
}

// default_label
//
//	: DEFAULT COLON
func (g *Grammar) acceptDefaultLabel() (ir.Node, bool) {
	kw := g.advance()
	if _, ok := g.expect(token.Colon, diag.SynExpectColon, "expected ':' after default"); !ok {
		return nil, false
	}
	return g.sema.HandleDefaultLabel(g.spanFrom(kw.Span)), true
}
