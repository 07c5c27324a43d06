package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"hlslc/internal/buildpipeline"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan buildpipeline.Event)
	m := NewProgressModel("build", []string{"a.hlsl", "b.hlsl"}, events).(*progressModel)

	steps := []buildpipeline.Event{
		{File: "a.hlsl", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking},
		{File: "a.hlsl", Stage: buildpipeline.StageFinish, Status: buildpipeline.StatusDone},
		{File: "b.hlsl", Stage: buildpipeline.StageFinish, Status: buildpipeline.StatusError},
		{File: "unknown.hlsl", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking},
		{Stage: buildpipeline.StageEmit, Status: buildpipeline.StatusWorking},
	}
	for _, ev := range steps {
		m.Update(eventMsg(ev))
	}
	if m.items[0].status != "done" || m.items[1].status != "error" {
		t.Fatalf("items = %+v", m.items)
	}
	if m.failed != 1 || m.stageLabel != "writing" {
		t.Fatalf("failed=%d label=%q", m.failed, m.stageLabel)
	}

	m.Update(doneMsg{})
	view := m.View()
	if !strings.Contains(view, "failed (1): build (writing)") || !strings.Contains(view, "a.hlsl") {
		t.Fatalf("view:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.hlsl", 20, "short.hlsl"},
		{"very/long/path/shader.hlsl", 10, "very/lo..."},
		{"abcdef", 2, "ab"},
		{"шейдер.hlsl", 0, "шейдер.hlsl"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestLineSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewLineSink(&buf)
	s.OnEvent(buildpipeline.Event{File: "a.hlsl", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})
	s.OnEvent(buildpipeline.Event{File: "a.hlsl", Stage: buildpipeline.StageFinish, Status: buildpipeline.StatusDone})
	s.OnEvent(buildpipeline.Event{File: "b.hlsl", Stage: buildpipeline.StageEmit, Status: buildpipeline.StatusError, Err: errors.New("disk full")})
	s.OnEvent(buildpipeline.Event{Stage: buildpipeline.StageEmit, Status: buildpipeline.StatusDone})

	want := "          ok a.hlsl\n       error b.hlsl: disk full\n"
	if buf.String() != want {
		t.Fatalf("output = %q", buf.String())
	}
}
