package lexer

import (
	"strconv"
	"strings"

	"hlslc/internal/diag"
	"hlslc/internal/token"
)

// Поддержка: 0, 123, 017 (octal), 0x1F, 1.0, .5, 1., 1e-3, 1.5e+2.
// Суффиксы: u/U → uint, l/L → int64, ul/lu → uint64, f/F/h/H → float, lf/LF → double.
// Неверные формы - репорт в opts.Reporter, токен по возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	isFloat := false
	base := 10

	switch {
	case lx.cursor.Peek() == '.':
		isFloat = true
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	case lx.try2('0', 'x') || lx.try2('0', 'X'):
		base = 16
		if !isHex(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected hexadecimal digit after '0x'")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	default:
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		if lx.cursor.Peek() == '.' {
			isFloat = true
			lx.cursor.Bump()
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	// экспонента
	if base == 10 && (lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E') {
		isFloat = true
		lx.cursor.Bump()
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	digitsEnd := lx.cursor.Off

	if isFloat {
		return lx.finishFloat(start, digitsEnd, false)
	}
	return lx.finishInt(start, digitsEnd, base)
}

func (lx *Lexer) finishFloat(start Mark, digitsEnd uint32, suffixed bool) token.Token {
	kind := token.FloatLit
	if !suffixed {
		switch {
		case lx.try2('l', 'f') || lx.try2('L', 'F'):
			kind = token.DoubleLit
		case lx.cursor.Eat('f') || lx.cursor.Eat('F') || lx.cursor.Eat('h') || lx.cursor.Eat('H'):
		}
	}
	sp := lx.cursor.SpanFrom(start)
	if isIdentContinueByte(lx.cursor.Peek()) {
		return lx.badSuffix(start)
	}
	digits := string(lx.file.Content[sp.Start:digitsEnd])
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		lx.errLex(diag.LexBadNumber, sp, "malformed floating-point literal")
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp), Float: v}
}

func (lx *Lexer) finishInt(start Mark, digitsEnd uint32, base int) token.Token {
	unsigned, long := false, false
	for range 2 {
		switch {
		case !unsigned && (lx.cursor.Eat('u') || lx.cursor.Eat('U')):
			unsigned = true
		case !long && (lx.cursor.Eat('l') || lx.cursor.Eat('L')):
			long = true
		}
	}
	// "1f" - целое с float-суффиксом, так пишут в HLSL
	if !unsigned && !long && (lx.cursor.Peek() == 'f' || lx.cursor.Peek() == 'F' || lx.cursor.Peek() == 'h' || lx.cursor.Peek() == 'H') && base == 10 {
		lx.cursor.Bump()
		return lx.finishFloat(start, digitsEnd, true)
	}
	sp := lx.cursor.SpanFrom(start)
	if isIdentContinueByte(lx.cursor.Peek()) {
		return lx.badSuffix(start)
	}

	digits := string(lx.file.Content[sp.Start:digitsEnd])
	if base == 16 {
		digits = digits[2:]
	} else if len(digits) > 1 && digits[0] == '0' {
		base = 8
		if strings.IndexFunc(digits, func(r rune) bool { return !isOct(byte(r)) }) >= 0 {
			lx.errLex(diag.LexBadNumber, sp, "invalid digit in octal literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		lx.errLex(diag.LexBadNumber, sp, "integer literal is too large")
	}

	tok := token.Token{Span: sp, Text: lx.text(sp), Uint: v}
	switch {
	case unsigned && long:
		tok.Kind = token.Uint64Lit
		tok.Int = int64(v)
	case long:
		tok.Kind = token.Int64Lit
		tok.Int = int64(v)
	case unsigned:
		if v > 0xFFFFFFFF {
			lx.errLex(diag.LexBadNumber, sp, "integer literal does not fit in 32 bits")
		}
		tok.Kind = token.UintLit
		tok.Uint = v & 0xFFFFFFFF
		tok.Int = int64(tok.Uint)
	default:
		if v > 0xFFFFFFFF {
			lx.errLex(diag.LexBadNumber, sp, "integer literal does not fit in 32 bits")
		}
		tok.Kind = token.IntLit
		// 0xFFFFFFFF → -1, как у 32-битного int
		tok.Int = int64(int32(uint32(v)))
	}
	return tok
}

func (lx *Lexer) badSuffix(start Mark) token.Token {
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadNumber, sp, "invalid suffix on numeric literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
