package token

import (
	"hlslc/internal/source"
)

// Token is one lexical unit with its decoded literal payload.
// Tokens are immutable once produced by the scanner.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Int   int64
	Uint  uint64
	Float float64
	Bool  bool
	Str   string // decoded string literal
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, UintLit, Int64Lit, Uint64Lit, FloatLit, DoubleLit, BoolLit, StringLit:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is a plain identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= LeftParen && t.Kind < kindCount
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwStatic && t.Kind < LeftParen
}

// IdentText returns the identifier text of the token when it is an
// identifier or a keyword that doubles as one.
func (t Token) IdentText() (string, bool) {
	if t.Kind == Ident {
		return t.Text, true
	}
	if s, ok := IdentifierSpelling(t.Kind); ok {
		return s, true
	}
	return "", false
}
