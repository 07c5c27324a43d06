package lexer

import (
	"bytes"

	"hlslc/internal/diag"
)

// skipTrivia пропускает пробелы, комментарии и строки препроцессора.
//
//   - // ... до \n
//   - /* ... */ (без вложенности, как в C; незакрытый - репорт и обрезаем на EOF)
//   - '#' в начале строки: директивы препроцессора сюда не должны доходить;
//     #line и #pragma молча пропускаем, остальные - предупреждение.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f':
			lx.cursor.Bump()
		case b == '/':
			if !lx.skipComment() {
				return
			}
		case b == '#' && lx.atLineStart():
			lx.skipDirective()
		case b == '\\':
			// продолжение строки вне директив
			b0, b1, ok := lx.cursor.Peek2()
			if !ok || b0 != '\\' || b1 != '\n' {
				return
			}
			lx.cursor.Bump()
			lx.cursor.Bump()
		default:
			return
		}
	}
}

func (lx *Lexer) skipComment() bool {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}
	switch b1 {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return true
	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		for !lx.cursor.EOF() {
			if c0, c1, ok := lx.cursor.Peek2(); ok && c0 == '*' && c1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				return true
			}
			lx.cursor.Bump()
		}
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		return true
	}
	return false
}

func (lx *Lexer) atLineStart() bool {
	content := lx.file.Content
	for i := int(lx.cursor.Off) - 1; i >= 0; i-- {
		switch content[i] {
		case ' ', '\t', '\r':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

func (lx *Lexer) skipDirective() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' {
			if _, b1, ok := lx.cursor.Peek2(); ok && b1 == '\n' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				continue
			}
		}
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	line := bytes.TrimSpace(bytes.TrimPrefix(lx.file.Content[sp.Start:sp.End], []byte("#")))
	if bytes.HasPrefix(line, []byte("line")) || bytes.HasPrefix(line, []byte("pragma")) {
		return
	}
	lx.warnLex(diag.LexDirectiveIgnored, sp, "preprocessor directive ignored; run the preprocessor first")
}
