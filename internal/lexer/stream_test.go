package lexer_test

import (
	"strings"
	"testing"

	"hlslc/internal/lexer"
	"hlslc/internal/token"
)

func TestStream_AdvanceRecede(t *testing.T) {
	lx, _ := makeTestLexer("a b c d")
	s := lexer.NewStream(lx)

	if !s.PeekIs(token.Ident) || s.Token().Text != "a" {
		t.Fatalf("first token: %v %q", s.Peek(), s.Token().Text)
	}
	s.Advance()
	s.Advance()
	if s.Token().Text != "c" {
		t.Fatalf("after two advances: %q", s.Token().Text)
	}
	// two-step pushback
	if !s.Recede() || !s.Recede() {
		t.Fatal("recede failed")
	}
	if s.Token().Text != "a" {
		t.Fatalf("after recede: %q", s.Token().Text)
	}
	if s.Recede() {
		t.Fatal("recede past start must fail")
	}
	s.Advance()
	s.Advance()
	s.Advance()
	if s.Token().Text != "d" {
		t.Fatalf("replay: %q", s.Token().Text)
	}
	s.Advance()
	if !s.PeekIs(token.EOF) {
		t.Fatalf("expected EOF, got %v", s.Peek())
	}
	s.Advance()
	if !s.PeekIs(token.EOF) {
		t.Fatalf("EOF must be sticky, got %v", s.Peek())
	}
}

func TestStream_PeekAheadAndAccept(t *testing.T) {
	lx, _ := makeTestLexer("( float ) x")
	s := lexer.NewStream(lx)

	if got := s.PeekAhead(2); got != token.RightParen {
		t.Fatalf("PeekAhead(2) = %v", got)
	}
	if !s.PeekIs(token.LeftParen) {
		t.Fatalf("PeekAhead must not move the stream, at %v", s.Peek())
	}
	if got := s.PeekAhead(10); got != token.EOF {
		t.Fatalf("PeekAhead past end = %v", got)
	}
	if s.Accept(token.RightParen) {
		t.Fatal("Accept of wrong kind must fail")
	}
	if !s.Accept(token.LeftParen) || !s.Accept(token.KwFloat) || !s.Accept(token.RightParen) {
		t.Fatal("Accept sequence failed")
	}
	if s.Token().Text != "x" {
		t.Fatalf("at %q", s.Token().Text)
	}
}

func TestStream_HistoryIsBounded(t *testing.T) {
	lx, _ := makeTestLexer(strings.Repeat("x ", 40))
	s := lexer.NewStream(lx)
	for range 20 {
		s.Advance()
	}
	if got := s.Depth(); got != 16 {
		t.Fatalf("Depth() = %d, want 16", got)
	}
	for range 16 {
		if !s.Recede() {
			t.Fatal("recede within history failed")
		}
	}
	if s.Depth() != 0 || s.Recede() {
		t.Fatal("recede past the history must fail")
	}
}
