package buildpipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hlslc/internal/driver"
)

const passThrough = "float4 main(float4 pos : SV_POSITION) : SV_TARGET { return pos; }\n"

func write(t *testing.T, path, src string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildWritesDumps(t *testing.T) {
	root := t.TempDir()
	files := []string{
		write(t, filepath.Join(root, "a.hlsl"), passThrough),
		write(t, filepath.Join(root, "fx", "b.hlsl"), passThrough),
	}
	out := filepath.Join(root, "out")
	sink := &RecordingSink{}

	res, err := Build(context.Background(), &BuildRequest{
		Root:       root,
		Files:      files,
		Options:    driver.DefaultOptions(),
		Jobs:       2,
		OutputRoot: out,
		Progress:   sink,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(res.Outputs) != 2 {
		t.Fatalf("outputs = %v", res.Outputs)
	}
	data, err := os.ReadFile(OutputPath(out, "fx/b.hlsl"))
	if err != nil {
		t.Fatalf("dump not written: %v", err)
	}
	if !strings.Contains(string(data), "stage frag") {
		t.Fatalf("dump:\n%s", data)
	}
	if !res.Timings.Has(StageParse) || !res.Timings.Has(StageEmit) {
		t.Fatal("timings not recorded")
	}

	final := map[string]Status{}
	queued := 0
	for _, ev := range sink.Events() {
		if ev.File == "" {
			continue
		}
		if ev.Status == StatusQueued {
			queued++
		}
		final[ev.File] = ev.Status
	}
	if queued != 2 || final["a.hlsl"] != StatusDone || final["fx/b.hlsl"] != StatusDone {
		t.Fatalf("queued=%d final=%v", queued, final)
	}
	events := sink.Events()
	if last := events[len(events)-1]; last.File != "" || last.Status != StatusDone {
		t.Fatalf("last event = %+v", last)
	}
}

func TestBuildFailure(t *testing.T) {
	root := t.TempDir()
	files := []string{
		write(t, filepath.Join(root, "ok.hlsl"), passThrough),
		write(t, filepath.Join(root, "bad.hlsl"), "float4 main( {\n"),
	}
	sink := &RecordingSink{}
	res, err := Build(context.Background(), &BuildRequest{
		Root:       root,
		Files:      files,
		Options:    driver.DefaultOptions(),
		OutputRoot: filepath.Join(root, "out"),
		Progress:   sink,
	})
	if !errors.Is(err, ErrBuildFailed) {
		t.Fatalf("err = %v, want ErrBuildFailed", err)
	}
	if len(res.Outputs) != 1 {
		t.Fatalf("good shader must still be emitted, outputs = %v", res.Outputs)
	}
	if _, err := os.Stat(OutputPath(filepath.Join(root, "out"), "bad.hlsl")); !os.IsNotExist(err) {
		t.Fatalf("dump of a failed shader exists: %v", err)
	}
	var badStatus Status
	for _, ev := range sink.Events() {
		if ev.File == "bad.hlsl" {
			badStatus = ev.Status
		}
	}
	if badStatus != StatusError {
		t.Fatalf("bad.hlsl ended with %q", badStatus)
	}
}

func TestDisplayName(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		path, base, want string
	}{
		{filepath.Join(root, "x", "y.hlsl"), root, "x/y.hlsl"},
		{"rel/z.hlsl", "", "rel/z.hlsl"},
		{filepath.Join(root, "x.hlsl"), filepath.Join(root, "sub"), filepath.ToSlash(filepath.Join(root, "x.hlsl"))},
	}
	for _, tt := range tests {
		if got := displayName(tt.path, tt.base); got != tt.want {
			t.Fatalf("displayName(%q, %q) = %q, want %q", tt.path, tt.base, got, tt.want)
		}
	}
	names, _ := progressFiles([]string{"a.hlsl", "./a.hlsl", "", "b.hlsl"}, "")
	if strings.Join(names, ",") != "a.hlsl,b.hlsl" {
		t.Fatalf("progressFiles = %v", names)
	}
}

func TestTimingsSum(t *testing.T) {
	var tm Timings
	if tm.Has(StageParse) || tm.Sum(StageParse) != 0 {
		t.Fatal("zero Timings must be empty")
	}
	tm.Set(StageParse, 3)
	tm.Set(StageEmit, 4)
	if tm.Sum(StageParse, StageEmit, StageCache) != 7 || tm.Duration(StageEmit) != 4 {
		t.Fatal("Sum/Duration mismatch")
	}
}
