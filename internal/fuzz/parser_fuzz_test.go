package fuzztests

import (
	"context"
	"testing"
	"time"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/lexer"
	"hlslc/internal/parser"
	"hlslc/internal/sema"
	"hlslc/internal/source"
	"hlslc/internal/testkit"
)

// parseTimeout is the maximum time allowed for one input. Longer runs
// point at a loop in error recovery.
const parseTimeout = 5 * time.Second

var fuzzStages = []ir.Stage{ir.StageFragment, ir.StageVertex, ir.StageCompute}

func compileBytes(input []byte, stage ir.Stage) (sema.Result, *diag.Bag, *source.File) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.hlsl", input))

	bag := diag.NewBag(128)
	reporter := diag.BagReporter{Bag: bag}
	ctx := sema.New(sema.Options{Reporter: reporter, Stage: stage})
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	parser.Parse(lexer.NewStream(lx), ctx, parser.Options{Reporter: reporter, MaxErrors: 128})
	return ctx.Finish(), bag, file
}

func FuzzParserBuildsIR(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		stage := fuzzStages[len(input)%len(fuzzStages)]
		res, bag, file := compileBytes(input, stage)
		if bag.HasErrors() {
			return
		}
		if res.Module == nil {
			t.Fatalf("clean compile without a module")
		}
		if res.Table != nil && !res.Table.Balanced() {
			t.Fatalf("scope stack left unbalanced")
		}
		if err := testkit.CheckModuleInvariants(res.Module, file); err != nil {
			t.Fatal(err)
		}
	})
}

// FuzzParserNoHang checks that grammar recovery always terminates.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("float4 main() : SV_TARGET { float x = 1\nfloat y = 2; }"))
	f.Add([]byte("void main() { x + y\nint z = 3; }"))
	f.Add([]byte("cbuffer C { float4 a float4 b; };"))
	f.Add([]byte("void f() { { { { } } } }"))
	f.Add([]byte("void f() { switch (x) { } }"))
	f.Add([]byte("void f() { for (int i = 0 i < 10 i++) {} }"))
	f.Add([]byte("Texture2D<float4 tex; void main() { tex.Sample(; }"))
	f.Add([]byte("[numthreads(8, 8, void main() {}"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _, _ = compileBytes(input, ir.StageFragment)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], "..."...)
}
