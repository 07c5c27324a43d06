package lexer

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"hlslc/internal/diag"
	"hlslc/internal/token"
)

// "..." с escape-последовательностями \" \\ \n \t \r \0.
// Строки в HLSL встречаются только в аннотациях и аргументах атрибутов;
// декодированное значение нормализуем в NFC, чтобы сравнение имён было стабильным.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	var sb strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp), Str: norm.NFC.String(sb.String())}
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				continue
			}
			switch e := lx.cursor.Bump(); e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '0':
				sb.WriteByte(0)
			case '\n':
				// продолжение строки
			default:
				sb.WriteByte(e)
			}
			continue
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		sb.WriteByte(lx.cursor.Bump())
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
