package parser

import (
	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/token"
)

// attributes
//
//	: [zero or more:] bracketed-attribute
//
// bracketed-attribute
//
//	: LEFT_BRACKET scoped-attribute RIGHT_BRACKET
//	| LEFT_BRACKET LEFT_BRACKET scoped-attribute RIGHT_BRACKET RIGHT_BRACKET
//
// scoped-attribute
//
//	: attribute
//	| namespace COLON COLON attribute
//
// attribute
//
//	: IDENTIFIER
//	| IDENTIFIER LEFT_PAREN assignment_expression (COMMA assignment_expression)* RIGHT_PAREN
func (g *Grammar) acceptAttributes() (Attributes, bool) {
	var attrs Attributes
	for g.at(token.LeftBracket) {
		start := g.advance().Span
		double := g.accept(token.LeftBracket)

		name, _, named := g.acceptIdentifier()
		if !named && !g.at(token.RightBracket) {
			g.expected(diag.SynBadAttribute, "namespace or attribute identifier")
			return nil, false
		}
		namespace := ""
		if g.accept(token.ColonColon) {
			namespace = name
			if name, _, named = g.acceptIdentifier(); !named {
				g.expected(diag.SynBadAttribute, "attribute identifier")
				return nil, false
			}
		}

		var args []ir.Typed
		if g.accept(token.LeftParen) {
			expecting := false
			for {
				arg, ok := g.acceptAssignmentExpression()
				if !ok {
					break
				}
				args = append(args, arg)
				expecting = g.accept(token.Comma)
				if !expecting {
					break
				}
			}
			if _, ok := g.expect(token.RightParen, diag.SynExpectRightParen, "expected ')' to close attribute arguments"); !ok {
				return nil, false
			}
			if expecting || len(args) == 0 {
				g.err(diag.SynBadAttribute, "expected attribute argument expression")
				return nil, false
			}
		}

		if _, ok := g.expect(token.RightBracket, diag.SynExpectRightBracket, "expected ']' to close attribute"); !ok {
			return nil, false
		}
		if double {
			if _, ok := g.expect(token.RightBracket, diag.SynExpectRightBracket, "expected ']]' to close attribute"); !ok {
				return nil, false
			}
		}
		if named {
			attrs = append(attrs, Attribute{
				Namespace: namespace,
				Name:      name,
				Args:      args,
				Span:      g.spanFrom(start),
			})
		}
	}
	return attrs, true
}
