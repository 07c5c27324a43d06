package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/project"
)

const (
	passThrough  = "float4 main(float4 pos : SV_POSITION) : SV_TARGET { return pos; }\n"
	withUniform  = "uniform float scale = 2.0;\n" + passThrough
	brokenSyntax = "float4 main( : SV_TARGET {\n"
)

func writeShader(t *testing.T, path, src string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func diagnosticsSummary(bag *diag.Bag) string {
	parts := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		parts = append(parts, d.Code.ID()+" "+d.Message)
	}
	return strings.Join(parts, "; ")
}

func TestCompileSource(t *testing.T) {
	opts := DefaultOptions()
	opts.EmitIR = true
	res := CompileSource(context.Background(), "ps.hlsl", []byte(passThrough), opts)
	if res.Failed() {
		t.Fatalf("compile failed: %s", diagnosticsSummary(res.Bag))
	}
	if res.Sema.Module == nil || res.Sema.Module.EntryPoint != "main" {
		t.Fatalf("module = %+v", res.Sema.Module)
	}
	for _, want := range []string{"stage frag", "entry-point: main"} {
		if !strings.Contains(res.IR, want) {
			t.Fatalf("IR misses %q:\n%s", want, res.IR)
		}
	}
}

func TestCompileSyntaxError(t *testing.T) {
	res := CompileSource(context.Background(), "bad.hlsl", []byte(brokenSyntax), DefaultOptions())
	if res.Parsed || !res.Failed() {
		t.Fatalf("parsed=%t failed=%t", res.Parsed, res.Failed())
	}
	if res.IR != "" {
		t.Fatal("IR must not be emitted for a failed compile")
	}
}

func TestWarningPolicy(t *testing.T) {
	tests := []struct {
		name     string
		ignore   bool
		asErrors bool
		warnings bool
		failed   bool
	}{
		{"default", false, false, true, false},
		{"ignore", true, false, false, false},
		{"as errors", false, true, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.IgnoreWarnings = tt.ignore
			opts.WarningsAsErrors = tt.asErrors
			res := CompileSource(context.Background(), "u.hlsl", []byte(withUniform), opts)
			if res.Bag.HasWarnings() != tt.warnings || res.Failed() != tt.failed {
				t.Fatalf("warnings=%t failed=%t: %s", res.Bag.HasWarnings(), res.Failed(), diagnosticsSummary(res.Bag))
			}
			if !tt.ignore && res.Bag.Count(diag.SemaBadInitializer) != 1 {
				t.Fatalf("uniform initializer diagnostic missing: %s", diagnosticsSummary(res.Bag))
			}
		})
	}
}

func TestTimingsAndObserver(t *testing.T) {
	var (
		mu     sync.Mutex
		events []PhaseEvent
	)
	opts := DefaultOptions()
	opts.EnableTimings = true
	opts.Observer = func(ev PhaseEvent) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	}
	res := CompileSource(context.Background(), "ps.hlsl", []byte(passThrough), opts)

	if res.Timing == nil || len(res.Timing.Phases) != 2 {
		t.Fatalf("timing = %+v", res.Timing)
	}
	if res.Timing.Phases[0].Name != PhaseParse || res.Timing.Phases[1].Name != PhaseFinish {
		t.Fatalf("phases = %+v", res.Timing.Phases)
	}
	if res.Bag.Count(diag.ObsTimings) != 1 {
		t.Fatalf("no timing diagnostic: %s", diagnosticsSummary(res.Bag))
	}

	var names []string
	for _, ev := range events {
		if ev.Status == PhaseStart {
			names = append(names, ev.Name)
		}
	}
	if strings.Join(names, ",") != "parse,finish" {
		t.Fatalf("started phases = %v", names)
	}
	last := events[len(events)-1]
	if last.Name != PhaseDone || last.Failed || last.File != "ps.hlsl" {
		t.Fatalf("last event = %+v", last)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewDiskCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	path := writeShader(t, filepath.Join(dir, "u.hlsl"), withUniform)

	opts := DefaultOptions()
	opts.EmitIR = true
	opts.Cache = cache

	first, err := CompileFile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := CompileFile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached || !second.Cached {
		t.Fatalf("cached: first=%t second=%t", first.Cached, second.Cached)
	}
	if second.IR != first.IR || second.IR == "" {
		t.Fatal("cached IR differs")
	}
	if diagnosticsSummary(second.Bag) != diagnosticsSummary(first.Bag) {
		t.Fatalf("diagnostics differ:\n%s\n%s", diagnosticsSummary(first.Bag), diagnosticsSummary(second.Bag))
	}
	if d := second.Bag.Items()[0]; d.Primary.File != second.File.ID {
		t.Fatalf("restored span points at file %d", d.Primary.File)
	}

	// другие опции дают другой ключ
	opts.Stage = ir.StageVertex
	third, err := CompileFile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached {
		t.Fatal("stage change must miss the cache")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	opts.Stage = ir.StageFragment
	fourth, _ := CompileFile(context.Background(), path, opts)
	if fourth.Cached {
		t.Fatal("hit after DropAll")
	}
}

func TestCompileDir(t *testing.T) {
	dir := t.TempDir()
	writeShader(t, filepath.Join(dir, "post", "blit.ps.hlsl"), passThrough)
	writeShader(t, filepath.Join(dir, "broken.hlsl"), brokenSyntax)
	writeShader(t, filepath.Join(dir, "common.hlsli"), "float4 helper();\n")
	writeShader(t, filepath.Join(dir, ".cache", "stale.hlsl"), brokenSyntax)

	var mu sync.Mutex
	done := map[string]bool{}
	opts := DefaultOptions()
	opts.EnableTimings = true
	opts.Observer = func(ev PhaseEvent) {
		if ev.Name == PhaseDone {
			mu.Lock()
			done[filepath.Base(ev.File)] = ev.Failed
			mu.Unlock()
		}
	}

	res, err := CompileDir(context.Background(), dir, opts, 2)
	if err != nil {
		t.Fatalf("CompileDir: %v", err)
	}
	if len(res.Files) != 2 || res.Stats.Compiled != 2 || res.Stats.Failed != 1 {
		t.Fatalf("files=%d stats=%+v", len(res.Files), res.Stats)
	}
	if filepath.Base(res.Files[0].File.Path) != "broken.hlsl" || !res.Files[0].Failed() || res.Files[1].Failed() {
		t.Fatal("results are not in path order or outcomes are wrong")
	}
	if !done["broken.hlsl"] || done["blit.ps.hlsl"] || len(done) != 2 {
		t.Fatalf("done events = %v", done)
	}
	if res.Timing == nil || res.Timing.Phases[0].Count != 2 {
		t.Fatalf("merged timing = %+v", res.Timing)
	}
	if !res.Bag().HasErrors() {
		t.Fatal("merged bag lost the syntax error")
	}
}

func TestCompileDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeShader(t, filepath.Join(dir, "a.hlsl"), passThrough)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CompileDir(ctx, dir, DefaultOptions(), 1); err == nil {
		t.Fatal("expected context error")
	}
}

func TestApplyManifest(t *testing.T) {
	root := t.TempDir()
	path, err := project.Init(root, "fx")
	if err != nil {
		t.Fatal(err)
	}
	m, err := project.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	m.Config.Compile.Stage = "cs"
	m.Config.Bindings.ShiftT = 4
	opts := DefaultOptions()
	if err := opts.ApplyManifest(m); err != nil {
		t.Fatal(err)
	}
	if opts.Stage != ir.StageCompute || opts.Shifts.T != 4 || opts.Resources.MinTexelOffset != -8 {
		t.Fatalf("opts = %+v", opts)
	}
	if got := opts.stageFor(filepath.Join(root, "sky.vs.hlsl")); got != ir.StageVertex {
		t.Fatalf("stageFor = %v", got)
	}
	opts.StageFixed = true
	if got := opts.stageFor(filepath.Join(root, "sky.vs.hlsl")); got != ir.StageCompute {
		t.Fatalf("fixed stageFor = %v", got)
	}
	if opts.fingerprint(ir.StageVertex) == opts.fingerprint(ir.StageCompute) {
		t.Fatal("fingerprint ignores the stage")
	}
}
