package parser

import (
	"hlslc/internal/diag"
	"hlslc/internal/source"
	"hlslc/internal/token"
)

// advance - съедает текущий токен и обновляет lastSpan
func (g *Grammar) advance() token.Token {
	tok := g.ts.Token()
	g.ts.Advance()
	if tok.Kind == token.EOF {
		return tok
	}
	g.consumed++
	if tok.Kind != token.Invalid {
		g.lastSpan = tok.Span
	}
	return tok
}

// accept - съедает токен, если он нужного вида
func (g *Grammar) accept(k token.Kind) bool {
	if !g.at(k) {
		return false
	}
	g.advance()
	return true
}

// mark запоминает позицию в потоке для отката
func (g *Grammar) mark() int {
	return g.consumed
}

// restore откатывает поток к позиции m. Если история потока короче
// отката, поток не двигается и возвращается false.
func (g *Grammar) restore(m int) bool {
	if g.consumed-m > g.ts.Depth() {
		return false
	}
	for g.consumed > m {
		g.ts.Recede()
		g.consumed--
	}
	return true
}

// recede - вернуть один токен
func (g *Grammar) recede() {
	if g.consumed > 0 && g.ts.Recede() {
		g.consumed--
	}
}

// spanFrom - span от start до последнего съеденного токена
func (g *Grammar) spanFrom(start source.Span) source.Span {
	return start.Cover(g.lastSpan)
}

// acceptIdentifier принимает идентификатор или ключевое слово, которое
// может служить идентификатором (sample, point, half ...).
func (g *Grammar) acceptIdentifier() (string, source.Span, bool) {
	tok := g.ts.Token()
	name, ok := tok.IdentText()
	if !ok {
		return "", tok.Span, false
	}
	g.advance()
	return name, tok.Span, true
}

// getDiagnosticSpan - возвращает лучший span для диагностики
// Если текущий токен EOF, используем позицию после lastSpan
func (g *Grammar) getDiagnosticSpan() source.Span {
	peek := g.ts.Token()
	if peek.Kind == token.EOF && peek.Span.Empty() {
		if g.lastSpan.End > 0 {
			return g.lastSpan.After()
		}
	}
	return peek.Span
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем (invalid,false).
func (g *Grammar) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if g.at(k) {
		return g.advance(), true
	}
	diagSpan := g.getDiagnosticSpan()
	g.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: g.ts.Token().Text}, false
}

// want - желаем увидеть токен, но кидаем warning, если нет
func (g *Grammar) want(k token.Kind, code diag.Code, msg string) bool {
	if g.at(k) {
		g.advance()
		return true
	}
	g.report(code, diag.SevWarning, g.getDiagnosticSpan(), msg)
	return false
}

// репортует ошибку и передает текущий спан
func (g *Grammar) err(code diag.Code, msg string) bool {
	return g.report(code, diag.SevError, g.getDiagnosticSpan(), msg)
}

// expected - типовое "expected X" на текущем токене
func (g *Grammar) expected(code diag.Code, what string) bool {
	got := g.ts.Token().Text
	if g.at(token.EOF) {
		got = "end of file"
	}
	return g.err(code, "expected "+what+", got \""+got+"\"")
}

// репортует warning и передает текущий спан
func (g *Grammar) warn(code diag.Code, msg string) bool {
	return g.report(code, diag.SevWarning, g.getDiagnosticSpan(), msg)
}

func (g *Grammar) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if g.opts.Reporter != nil {
		if sev == diag.SevError {
			g.opts.CurrentErrors++
		}
		if !g.opts.Enough() {
			g.opts.Reporter.Report(code, sev, sp, msg, nil)
			return true
		}
		return false // достигли максимального количества ошибок
	}
	if sev == diag.SevError {
		g.opts.CurrentErrors++
	}
	return false // нет reporter - ничего не записали
}
