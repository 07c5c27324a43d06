package fuzztests

import (
	"testing"

	"hlslc/internal/diag"
	"hlslc/internal/lexer"
	"hlslc/internal/source"
	"hlslc/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.hlsl", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		prev := uint32(0)
		// каждый токен должен сдвигать позицию, иначе лексер зациклится
		for n := 0; ; n++ {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			if tok.Span.End > uint32(len(file.Content)) || tok.Span.Start < prev {
				t.Fatalf("token %d has bad span %v (len %d)", n, tok.Span, len(file.Content))
			}
			prev = tok.Span.Start
			if n > 2*len(input)+2 {
				t.Fatalf("lexer produced more tokens than input bytes")
			}
		}
	})
}
