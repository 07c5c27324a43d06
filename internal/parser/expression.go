package parser

import (
	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/token"
)

// expression
//
//	: assignment_expression
//	| assignment_expression COMMA assignment_expression COMMA assignment_expression ...
func (g *Grammar) acceptExpression() (ir.Typed, bool) {
	node, ok := g.acceptAssignmentExpression()
	if !ok {
		return nil, false
	}
	for g.at(token.Comma) {
		comma := g.advance()
		right, ok := g.acceptAssignmentExpression()
		if !ok {
			g.expected(diag.SynExpectExpression, "expression after ','")
			return nil, false
		}
		if node = g.sema.HandleComma(comma.Span.Cover(right.Span()), node, right); node == nil {
			return nil, false
		}
	}
	return node, true
}

// initializer
//
//	: LEFT_BRACE RIGHT_BRACE
//	| LEFT_BRACE initializer_list RIGHT_BRACE
//
// initializer_list
//
//	: assignment_expression COMMA assignment_expression COMMA ...
func (g *Grammar) acceptInitializer() (ir.Typed, bool) {
	open, ok := g.expect(token.LeftBrace, diag.SynExpectLeftBrace, "expected '{' to open initializer list")
	if !ok {
		return nil, false
	}
	var elems []ir.Typed
	for !g.accept(token.RightBrace) {
		before := g.opts.CurrentErrors
		elem, ok := g.acceptAssignmentExpression()
		if !ok {
			if g.opts.CurrentErrors == before {
				g.expected(diag.SynExpectInitializer, "assignment expression in initializer list")
			}
			return nil, false
		}
		elems = append(elems, elem)
		if g.accept(token.Comma) {
			// запятая в конце списка допустима
			continue
		}
		if _, ok := g.expect(token.RightBrace, diag.SynExpectRightBrace, "expected ',' or '}' in initializer list"); !ok {
			return nil, false
		}
		break
	}
	list := g.sema.HandleInitializerList(g.spanFrom(open.Span), elems)
	return list, list != nil
}

// assignment_expression
//
//	: initializer
//	| conditional_expression
//	| conditional_expression assign_op conditional_expression assign_op conditional_expression ...
func (g *Grammar) acceptAssignmentExpression() (ir.Typed, bool) {
	if g.at(token.LeftBrace) {
		return g.acceptInitializer()
	}
	node, ok := g.acceptConditionalExpression()
	if !ok {
		return nil, false
	}
	op, isAssign := assignOps[g.ts.Peek()]
	if !isAssign {
		return node, true
	}
	g.advance()
	// правая ассоциативность через рекурсию
	right, ok := g.acceptAssignmentExpression()
	if !ok {
		g.expected(diag.SynExpectExpression, "assignment expression")
		return nil, false
	}
	assign := g.sema.HandleAssign(node.Span().Cover(right.Span()), op, node, right)
	return assign, assign != nil
}

// conditional_expression
//
//	: binary_expression
//	| binary_expression QUESTION expression COLON assignment_expression
func (g *Grammar) acceptConditionalExpression() (ir.Typed, bool) {
	cond, ok := g.parseBinaryExpr(precLogicalOr)
	if !ok {
		return nil, false
	}
	if !g.accept(token.Question) {
		return cond, true
	}
	whenTrue, ok := g.acceptExpression()
	if !ok {
		g.expected(diag.SynExpectExpression, "expression after '?'")
		return nil, false
	}
	if _, ok := g.expect(token.Colon, diag.SynExpectColon, "expected ':' in conditional expression"); !ok {
		return nil, false
	}
	whenFalse, ok := g.acceptAssignmentExpression()
	if !ok {
		g.expected(diag.SynExpectExpression, "expression after ':'")
		return nil, false
	}
	node := g.sema.HandleTernary(cond.Span().Cover(whenFalse.Span()), cond, whenTrue, whenFalse)
	return node, node != nil
}

// parseBinaryExpr - разбор бинарных выражений по приоритетам (Pratt).
// Все бинарные операторы HLSL левоассоциативны.
func (g *Grammar) parseBinaryExpr(minPrec int) (ir.Typed, bool) {
	// Парсим левую часть (унарные операторы + postfix)
	left, ok := g.acceptUnaryExpression()
	if !ok {
		return nil, false
	}

	for {
		prec, op := getBinaryOperatorPrec(g.ts.Peek())
		if prec < minPrec {
			break // приоритет слишком низкий
		}
		g.advance()

		right, ok := g.parseBinaryExpr(prec + 1)
		if !ok {
			g.expected(diag.SynExpectExpression, "expression after binary operator")
			return nil, false
		}
		if left = g.sema.HandleBinary(left.Span().Cover(right.Span()), op, left, right); left == nil {
			return nil, false
		}
	}
	return left, true
}

// unary_expression
//
//	: LEFT_PAREN type RIGHT_PAREN unary_expression
//	| unary_operator unary_expression
//	| postfix_expression
func (g *Grammar) acceptUnaryExpression() (ir.Typed, bool) {
	if g.at(token.LeftParen) {
		if node, ok, matched := g.acceptCast(); matched {
			return node, ok
		}
	}

	op, isUnary := unaryOps[g.ts.Peek()]
	if !isUnary {
		return g.acceptPostfixExpression()
	}
	opTok := g.advance()
	operand, ok := g.acceptUnaryExpression()
	if !ok {
		g.expected(diag.SynExpectExpression, "operand of unary '"+opTok.Text+"'")
		return nil, false
	}
	// '+' ничего не делает
	if op == ir.OpNull {
		return operand, true
	}
	node := g.sema.HandleUnary(opTok.Span.Cover(operand.Span()), op, operand)
	return node, node != nil
}

// acceptCast разбирает "(type[arr]) unary_expression". Если за типом нет ')',
// это скобочный конструктор вроде (int(3)): откатываемся к '('.
func (g *Grammar) acceptCast() (node ir.Typed, ok, matched bool) {
	m := g.mark()
	open := g.advance()
	before := g.opts.CurrentErrors
	castType, isType := g.acceptType()
	if !isType {
		if g.opts.CurrentErrors != before {
			return nil, false, true
		}
		g.restore(m)
		return nil, false, false
	}
	arr, ok := g.acceptArraySpecifier()
	if !ok {
		return nil, false, true
	}
	addArrayDims(castType, arr)
	if !g.accept(token.RightParen) {
		if arr != nil {
			g.err(diag.SemaBadCast, "parenthesized array constructor not allowed")
			return nil, false, true
		}
		g.restore(m)
		return nil, false, false
	}
	operand, ok := g.acceptUnaryExpression()
	if !ok {
		g.expected(diag.SynExpectExpression, "expression to cast")
		return nil, false, true
	}
	node = g.sema.HandleCast(open.Span.Cover(operand.Span()), castType, operand)
	return node, node != nil, true
}
