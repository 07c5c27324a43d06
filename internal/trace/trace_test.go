package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level Level
		want  map[Scope]bool
	}{
		{LevelOff, map[Scope]bool{ScopeDriver: false, ScopePass: false}},
		{LevelPhase, map[Scope]bool{ScopeDriver: true, ScopeFile: true, ScopePass: false}},
		{LevelDetail, map[Scope]bool{ScopePass: true, ScopeFunction: false}},
		{LevelDebug, map[Scope]bool{ScopeFunction: true}},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			for scope, want := range tt.want {
				if got := tt.level.ShouldEmit(scope); got != want {
					t.Fatalf("ShouldEmit(%s) = %v, want %v", scope, got, want)
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "ERROR", "Phase", "detail", "debug"} {
		if _, err := ParseLevel(s); err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("ParseLevel accepted an unknown level")
	}
}

func TestStreamSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	file := Begin(tr, ScopeFile, "a.hlsl", 0)
	pass := Begin(tr, ScopePass, "parse", file.ID())
	if fn := Begin(tr, ScopeFunction, "main", pass.ID()); fn != nil {
		t.Fatal("function span opened at detail level")
	}
	pass.End("")
	file.WithExtra("errors", "0").End("ok")

	out := buf.String()
	for _, want := range []string{"→ a.hlsl", "→ parse", "← parse", "← a.hlsl (ok) {errors=0}"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output misses %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "main") {
		t.Fatalf("filtered span leaked:\n%s", out)
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeDriver, "cache", "hit", 0)

	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("invalid ndjson %q: %v", buf.String(), err)
	}
	if ev["kind"] != "point" || ev["scope"] != "driver" || ev["detail"] != "hit" {
		t.Fatalf("event = %v", ev)
	}
}

func TestRingKeepsTail(t *testing.T) {
	ring := NewRingTracer(3, LevelError)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeFile, name, "", 0)
	}
	snap := ring.Snapshot()
	if len(snap) != 3 || snap[0].Name != "c" || snap[2].Name != "e" {
		t.Fatalf("snapshot = %v", snap)
	}
	Point(ring, ScopeFunction, "hidden", "", 0)
	if got := ring.Snapshot(); got[2].Name != "e" {
		t.Fatal("ring recorded a function event at error level")
	}

	var buf bytes.Buffer
	if err := DumpRing(NewMultiTracer(LevelError, Nop, ring), &buf); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must give Nop")
	}
	ring := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatal("tracer not stored")
	}
	span := Begin(ring, ScopeDriver, "diag", 0)
	ctx = WithParent(ctx, span)
	if ParentFromContext(ctx) != span.ID() || span.ID() == 0 {
		t.Fatalf("parent = %d, want %d", ParentFromContext(ctx), span.ID())
	}
}

func TestNilSpanIsInert(t *testing.T) {
	var s *Span
	if s.End("x") != 0 || s.ID() != 0 || s.WithExtra("k", "v") != nil {
		t.Fatal("nil span did something")
	}
	if Begin(Nop, ScopeDriver, "x", 0) != nil {
		t.Fatal("Nop opened a span")
	}
}
