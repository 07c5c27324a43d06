package token_test

import (
	"testing"

	"hlslc/internal/token"
)

func TestKeywordsAreCaseSensitive(t *testing.T) {
	if _, ok := token.LookupKeyword("Float"); ok {
		t.Fatalf("Float must not be a keyword")
	}
	if k, ok := token.LookupKeyword("Buffer"); !ok || k != token.KwBuffer {
		t.Fatalf("Buffer must lex as KwBuffer, got %v", k)
	}
	if _, ok := token.LookupKeyword("buffer"); ok {
		t.Fatalf("lowercase buffer is an ordinary identifier")
	}
}

func TestIdentifierSpelling(t *testing.T) {
	for _, k := range []token.Kind{token.KwSample, token.KwHalf, token.KwPoint, token.KwTriangleAdj} {
		if _, ok := token.IdentifierSpelling(k); !ok {
			t.Errorf("%v should double as an identifier", k)
		}
	}
	for _, k := range []token.Kind{token.KwFloat, token.KwStruct, token.KwIf, token.KwReturn} {
		if _, ok := token.IdentifierSpelling(k); ok {
			t.Errorf("%v must not double as an identifier", k)
		}
	}
	tok := token.Token{Kind: token.KwSample, Text: "sample"}
	if s, ok := tok.IdentText(); !ok || s != "sample" {
		t.Fatalf("IdentText() = %q, %v", s, ok)
	}
}
