package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hlslc/internal/ir"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestInitThenDiscover(t *testing.T) {
	root := t.TempDir()
	path, err := Init(root, "lighting")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := Init(root, "lighting"); err == nil {
		t.Fatal("second Init must fail")
	}

	nested := filepath.Join(root, "passes", "deferred")
	writeFile(t, filepath.Join(nested, "gbuffer.ps.hlsl"), "float4 main() : SV_TARGET { return 0; }\n")

	m, err := Discover(filepath.Join(nested, "gbuffer.ps.hlsl"))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if m.Path != path || m.Root != root {
		t.Fatalf("manifest at %s (root %s), want %s", m.Path, m.Root, path)
	}
	c := m.Config
	if c.Package.Name != "lighting" || c.Compile.Entry != "main" || c.Compile.Stage != "frag" {
		t.Fatalf("config = %+v", c)
	}
	if c.Resources.MaxTexelOffset == nil || *c.Resources.MaxTexelOffset != 7 || *c.Resources.MinTexelOffset != -8 {
		t.Fatalf("resources = %+v", c.Resources)
	}
	if len(m.Unknown) != 0 {
		t.Fatalf("unknown keys in template: %v", m.Unknown)
	}
	if dirs := m.SourceDirs(); len(dirs) != 1 || dirs[0] != root {
		t.Fatalf("SourceDirs = %v", dirs)
	}
}

func TestDiscoverMissing(t *testing.T) {
	_, err := Discover(t.TempDir())
	// выше TempDir манифеста быть не должно
	if !errors.Is(err, ErrNoManifest) {
		t.Skipf("a manifest exists above the temp dir: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[package\nname = 1", "failed to parse TOML"},
		{"no package", "[compile]\nentry = \"main\"\n", "missing [package]"},
		{"no name", "[package]\nname = \"  \"\n", "missing [package].name"},
		{"bad stage", "[package]\nname = \"x\"\n[compile]\nstage = \"mesh\"\n", "[compile].stage"},
		{"negative shift", "[package]\nname = \"x\"\n[bindings]\nshift_t = -1\n", "shift_t"},
		{"offsets", "[package]\nname = \"x\"\n[resources]\nmax_texel_offset = 1\nmin_texel_offset = 2\n", "min_texel_offset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[package]\nname = \"x\"\n[compile]\nentyr = \"vs\"\nsources = [\"src\"]\n")
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Unknown) != 1 || m.Unknown[0] != "compile.entyr" {
		t.Fatalf("Unknown = %v", m.Unknown)
	}
	if dirs := m.SourceDirs(); len(dirs) != 1 || dirs[0] != filepath.Join(m.Root, "src") {
		t.Fatalf("SourceDirs = %v", dirs)
	}
}

func TestStageFor(t *testing.T) {
	withStage := Config{Compile: CompileConfig{Stage: "compute"}}
	tests := []struct {
		name     string
		cfg      Config
		path     string
		fallback ir.Stage
		want     ir.Stage
	}{
		{"suffix", Config{}, "a/blur.cs.hlsl", ir.StageFragment, ir.StageCompute},
		{"suffix beats manifest", withStage, "sky.VS.hlsl", ir.StageFragment, ir.StageVertex},
		{"manifest", withStage, "blur.hlsl", ir.StageFragment, ir.StageCompute},
		{"fallback", Config{}, "blur.hlsl", ir.StageFragment, ir.StageFragment},
		{"unrelated dot", Config{}, "v1.2.hlsl", ir.StageGeometry, ir.StageGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.StageFor(tt.path, tt.fallback); got != tt.want {
				t.Fatalf("StageFor(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestCombineOrderMatters(t *testing.T) {
	a, b := HashString("a"), HashString("b")
	if Combine(a, b) == Combine(b, a) {
		t.Fatal("Combine must depend on order")
	}
	if Combine(a, b) != Combine(a, b) {
		t.Fatal("Combine must be deterministic")
	}
}
