package lexer_test

import (
	"fmt"
	"testing"

	"hlslc/internal/diag"
	"hlslc/internal/lexer"
	"hlslc/internal/source"
	"hlslc/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) ErrorCount() int {
	count := 0
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			count++
		}
	}
	return count
}

func (r *testReporter) messages() []string {
	out := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return out
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.hlsl", []byte(input))
	reporter := &testReporter{}
	return lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter}), reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func kindsOf(tokens []token.Token) []token.Kind {
	kinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestLexer_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "declaration",
			input: "float4 pos : SV_Position;",
			want:  []token.Kind{token.Float4, token.Ident, token.Colon, token.Ident, token.Semicolon, token.EOF},
		},
		{
			name:  "matrix and min precision",
			input: "float4x4 m; min16float2 h; half3x2 q;",
			want: []token.Kind{
				token.Float4x4, token.Ident, token.Semicolon,
				token.Float2, token.Ident, token.Semicolon,
				token.Float3x2, token.Ident, token.Semicolon,
				token.EOF,
			},
		},
		{
			name:  "greedy operators",
			input: "a <<= b >> c && d ++ -- != :: ^^",
			want: []token.Kind{
				token.Ident, token.LeftAssign, token.Ident, token.RightOp, token.Ident,
				token.AndOp, token.Ident, token.IncOp, token.DecOp, token.NeOp,
				token.ColonColon, token.XorOp, token.EOF,
			},
		},
		{
			name:  "comments and continuation",
			input: "a // line\n/* block\n */ b \\\n c",
			want:  []token.Kind{token.Ident, token.Ident, token.Ident, token.EOF},
		},
		{
			name:  "pragma skipped",
			input: "#pragma pack_matrix(row_major)\nint x;",
			want:  []token.Kind{token.KwInt, token.Ident, token.Semicolon, token.EOF},
		},
		{
			name:  "textures and buffers",
			input: "Texture2D<float4> t; RWStructuredBuffer<uint> b; SamplerState s;",
			want: []token.Kind{
				token.KwTexture2D, token.LeftAngle, token.Float4, token.RightAngle, token.Ident, token.Semicolon,
				token.KwRWStructuredBuffer, token.LeftAngle, token.KwUint, token.RightAngle, token.Ident, token.Semicolon,
				token.KwSamplerState, token.Ident, token.Semicolon,
				token.EOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			got := kindsOf(collectAllTokens(lx))
			if rep.ErrorCount() != 0 {
				t.Fatalf("unexpected errors: %v", rep.messages())
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		i     int64
		u     uint64
		f     float64
	}{
		{"42", token.IntLit, 42, 42, 0},
		{"0x1F", token.IntLit, 31, 31, 0},
		{"017", token.IntLit, 15, 15, 0},
		{"0xFFFFFFFF", token.IntLit, -1, 0xFFFFFFFF, 0},
		{"7u", token.UintLit, 7, 7, 0},
		{"7l", token.Int64Lit, 7, 7, 0},
		{"7ul", token.Uint64Lit, 7, 7, 0},
		{"7LU", token.Uint64Lit, 7, 7, 0},
		{"1.5", token.FloatLit, 0, 0, 1.5},
		{".25f", token.FloatLit, 0, 0, 0.25},
		{"2.", token.FloatLit, 0, 0, 2},
		{"1e3", token.FloatLit, 0, 0, 1000},
		{"1.5e-1h", token.FloatLit, 0, 0, 0.15},
		{"3f", token.FloatLit, 0, 0, 3},
		{"2.0lf", token.DoubleLit, 0, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			tok := lx.Next()
			if rep.ErrorCount() != 0 {
				t.Fatalf("unexpected errors: %v", rep.messages())
			}
			if tok.Kind != tt.kind {
				t.Fatalf("kind: got %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Text != tt.input {
				t.Errorf("text: got %q, want %q", tok.Text, tt.input)
			}
			switch tt.kind {
			case token.FloatLit, token.DoubleLit:
				if tok.Float != tt.f {
					t.Errorf("float: got %v, want %v", tok.Float, tt.f)
				}
			default:
				if tok.Int != tt.i || tok.Uint != tt.u {
					t.Errorf("int: got %d/%d, want %d/%d", tok.Int, tok.Uint, tt.i, tt.u)
				}
			}
			if next := lx.Next(); next.Kind != token.EOF {
				t.Errorf("expected EOF after literal, got %v", next.Kind)
			}
		})
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"bad octal", "09", diag.LexBadNumber},
		{"bad suffix", "12abc", diag.LexBadNumber},
		{"bare hex prefix", "0x", diag.LexBadNumber},
		{"dangling exponent", "1e+", diag.LexBadNumber},
		{"unterminated string", "\"abc", diag.LexUnterminatedString},
		{"newline in string", "\"ab\ncd\"", diag.LexUnterminatedString},
		{"unterminated comment", "/* never", diag.LexUnterminatedBlockComment},
		{"unknown char", "a $ b", diag.LexUnknownChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			collectAllTokens(lx)
			if len(rep.diagnostics) == 0 {
				t.Fatalf("expected diagnostic %v, got none", tt.code)
			}
			if rep.diagnostics[0].Code != tt.code {
				t.Errorf("got %v, want %v", rep.diagnostics[0].Code, tt.code)
			}
		})
	}
}

func TestLexer_DirectiveWarning(t *testing.T) {
	lx, rep := makeTestLexer("#define FOO 1\nfloat f;")
	got := kindsOf(collectAllTokens(lx))
	if rep.ErrorCount() != 0 {
		t.Fatalf("directive must not be an error: %v", rep.messages())
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexDirectiveIgnored {
		t.Fatalf("expected one LexDirectiveIgnored warning, got %v", rep.messages())
	}
	if len(got) != 4 || got[0] != token.KwFloat {
		t.Errorf("unexpected tokens after directive: %v", got)
	}
}

func TestLexer_StringDecoding(t *testing.T) {
	lx, rep := makeTestLexer(`"a\tb\"c"`)
	first := lx.Next()
	if rep.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %v", rep.messages())
	}
	if first.Kind != token.StringLit || first.Str != "a\tb\"c" {
		t.Fatalf("got %v %q", first.Kind, first.Str)
	}
}

func TestLexer_StringNFC(t *testing.T) {
	// e + combining acute folds into one code point
	lx, _ := makeTestLexer("\"e\u0301\"")
	tok := lx.Next()
	if tok.Str != "\u00e9" {
		t.Errorf("expected NFC-composed string, got %q", tok.Str)
	}
}

func TestLexer_Spans(t *testing.T) {
	lx, _ := makeTestLexer("int  abc")
	kw := lx.Next()
	id := lx.Next()
	if kw.Span.Start != 0 || kw.Span.End != 3 {
		t.Errorf("keyword span: %v", kw.Span)
	}
	if id.Span.Start != 5 || id.Span.End != 8 || id.Text != "abc" {
		t.Errorf("ident span: %v text %q", id.Span, id.Text)
	}
}

func TestLexer_EOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("x")
	lx.Next()
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok.Kind)
		}
	}
}
