package parser

import (
	"slices"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/lexer"
	"hlslc/internal/source"
	"hlslc/internal/token"
)

type Options struct {
	Trace         bool
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Grammar - состояние разбора одной единицы трансляции
type Grammar struct {
	ts       *lexer.Stream // поток токенов (Peek/Advance/Recede)
	sema     Semantics     // семантические действия
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики

	consumed        int // сколько токенов съедено; нужно для mark/restore
	annotationDepth int // вложенность аннотаций < ... >
	unit            ir.Node
}

// Parse разбирает весь поток. Возвращает false на первой синтаксической
// ошибке; семантические ошибки идут через Reporter и разбор не прерывают.
func Parse(ts *lexer.Stream, helper Semantics, opts Options) bool {
	g := &Grammar{
		ts:       ts,
		sema:     helper,
		opts:     opts,
		lastSpan: ts.Token().Span.At(),
	}
	return g.acceptCompilationUnit()
}

func (g *Grammar) at(k token.Kind) bool {
	return g.ts.PeekIs(k)
}

func (g *Grammar) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, g.ts.Peek())
}

// compilation_unit
//
//	: declaration_list EOF
func (g *Grammar) acceptCompilationUnit() bool {
	start := g.ts.Token().Span
	if !g.acceptDeclarationList(&g.unit) {
		return false
	}
	if !g.at(token.EOF) {
		g.err(diag.SynUnexpectedTopLevel, "expected declaration, got \""+g.ts.Token().Text+"\"")
		return false
	}
	if g.unit != nil {
		g.unit = g.sema.HandleSequence(start.Cover(g.lastSpan), g.unit)
	}
	g.sema.SetTreeRoot(g.unit)
	return true
}

// declaration_list
//
//	: DECLARATION... (лишние ';' разрешены)
func (g *Grammar) acceptDeclarationList(nodes *ir.Node) bool {
	for {
		for g.accept(token.Semicolon) {
		}
		if g.at_or(token.EOF, token.RightBrace) {
			return true
		}
		start := g.ts.Token().Span
		before := g.opts.CurrentErrors
		if !g.acceptDeclaration(nodes) {
			if g.opts.CurrentErrors == before {
				g.report(diag.SynExpectDeclaration, diag.SevError, start, "expected declaration")
			}
			return false
		}
	}
}
