package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"hlslc/internal/source"
	"hlslc/internal/token"
)

type TokenOutput struct {
	Kind  string      `json:"kind"`
	Text  string      `json:"text,omitempty"`
	Span  source.Span `json:"span"`
	Value any         `json:"value,omitempty"`
}

// literalValue returns the decoded payload of a literal token.
func literalValue(tok token.Token) any {
	switch tok.Kind {
	case token.IntLit, token.Int64Lit:
		return tok.Int
	case token.UintLit, token.Uint64Lit:
		return tok.Uint
	case token.FloatLit, token.DoubleLit:
		return tok.Float
	case token.BoolLit:
		return tok.Bool
	case token.StringLit:
		return tok.Str
	}
	return nil
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if v := literalValue(tok); v != nil && tok.Kind != token.StringLit {
			fmt.Fprintf(w, " = %v", v)
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Span:  tok.Span,
			Value: literalValue(tok),
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
