package lexer

import (
	"unicode/utf8"

	"hlslc/internal/diag"
	"hlslc/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	switch {
	case lx.try3('<', '<', '='):
		return emit(token.LeftAssign)
	case lx.try3('>', '>', '='):
		return emit(token.RightAssign)
	case lx.try2(':', ':'):
		return emit(token.ColonColon)
	case lx.try2('+', '+'):
		return emit(token.IncOp)
	case lx.try2('-', '-'):
		return emit(token.DecOp)
	case lx.try2('<', '<'):
		return emit(token.LeftOp)
	case lx.try2('>', '>'):
		return emit(token.RightOp)
	case lx.try2('<', '='):
		return emit(token.LeOp)
	case lx.try2('>', '='):
		return emit(token.GeOp)
	case lx.try2('=', '='):
		return emit(token.EqOp)
	case lx.try2('!', '='):
		return emit(token.NeOp)
	case lx.try2('&', '&'):
		return emit(token.AndOp)
	case lx.try2('|', '|'):
		return emit(token.OrOp)
	case lx.try2('^', '^'):
		return emit(token.XorOp)
	case lx.try2('*', '='):
		return emit(token.MulAssign)
	case lx.try2('/', '='):
		return emit(token.DivAssign)
	case lx.try2('+', '='):
		return emit(token.AddAssign)
	case lx.try2('-', '='):
		return emit(token.SubAssign)
	case lx.try2('%', '='):
		return emit(token.ModAssign)
	case lx.try2('&', '='):
		return emit(token.AndAssign)
	case lx.try2('^', '='):
		return emit(token.XorAssign)
	case lx.try2('|', '='):
		return emit(token.OrAssign)
	}

	// односимвольные
	switch lx.cursor.Bump() {
	case '(':
		return emit(token.LeftParen)
	case ')':
		return emit(token.RightParen)
	case '[':
		return emit(token.LeftBracket)
	case ']':
		return emit(token.RightBracket)
	case '{':
		return emit(token.LeftBrace)
	case '}':
		return emit(token.RightBrace)
	case '<':
		return emit(token.LeftAngle)
	case '>':
		return emit(token.RightAngle)
	case '.':
		return emit(token.Dot)
	case ',':
		return emit(token.Comma)
	case ':':
		return emit(token.Colon)
	case ';':
		return emit(token.Semicolon)
	case '!':
		return emit(token.Bang)
	case '-':
		return emit(token.Dash)
	case '~':
		return emit(token.Tilde)
	case '+':
		return emit(token.Plus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '&':
		return emit(token.Ampersand)
	case '|':
		return emit(token.VerticalBar)
	case '^':
		return emit(token.Caret)
	case '?':
		return emit(token.Question)
	case '=':
		return emit(token.Assign)
	default:
		if _, size := utf8.DecodeRune(lx.file.Content[start:]); size > 1 {
			for range size - 1 {
				lx.cursor.Bump()
			}
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
}
