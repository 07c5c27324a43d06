package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"hlslc/internal/ir"
)

// Manifest is a loaded hlsl.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
	// Unknown lists keys the decoder did not consume, e.g. "compile.entyr".
	Unknown []string
}

// Config mirrors the hlsl.toml layout.
type Config struct {
	Package   PackageConfig   `toml:"package"`
	Compile   CompileConfig   `toml:"compile"`
	Bindings  BindingsConfig  `toml:"bindings"`
	Resources ResourcesConfig `toml:"resources"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type CompileConfig struct {
	Entry                string   `toml:"entry"`
	Stage                string   `toml:"stage"`
	FlattenUniformArrays bool     `toml:"flatten_uniform_arrays"`
	RowMajor             bool     `toml:"row_major"`
	Sources              []string `toml:"sources"`
}

type BindingsConfig struct {
	ShiftB int `toml:"shift_b"`
	ShiftT int `toml:"shift_t"`
	ShiftS int `toml:"shift_s"`
	ShiftU int `toml:"shift_u"`
}

// ResourcesConfig overrides device limits; zero keeps the default.
type ResourcesConfig struct {
	MaxTexelOffset         *int `toml:"max_texel_offset"`
	MinTexelOffset         *int `toml:"min_texel_offset"`
	MaxDrawBuffers         int  `toml:"max_draw_buffers"`
	MaxGeometryOutVertices int  `toml:"max_geometry_out_vertices"`
}

// ErrNoManifest is returned by Discover when no hlsl.toml is found.
var ErrNoManifest = errors.New("no " + ManifestName + " found")

// Discover finds and loads the manifest governing startDir.
func Discover(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoManifest
	}
	return Load(path)
}

// Load parses and validates one manifest file.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m := &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}
	for _, k := range meta.Undecoded() {
		m.Unknown = append(m.Unknown, k.String())
	}
	return m, nil
}

// Validate checks values the decoder cannot.
func (c *Config) Validate() error {
	if c.Compile.Stage != "" {
		if _, err := ir.ParseStage(c.Compile.Stage); err != nil {
			return fmt.Errorf("[compile].stage: %w", err)
		}
	}
	for _, s := range []struct {
		name string
		v    int
	}{{"shift_b", c.Bindings.ShiftB}, {"shift_t", c.Bindings.ShiftT}, {"shift_s", c.Bindings.ShiftS}, {"shift_u", c.Bindings.ShiftU}} {
		if s.v < 0 {
			return fmt.Errorf("[bindings].%s must not be negative, got %d", s.name, s.v)
		}
	}
	r := c.Resources
	if r.MaxTexelOffset != nil && r.MinTexelOffset != nil && *r.MinTexelOffset > *r.MaxTexelOffset {
		return fmt.Errorf("[resources]: min_texel_offset %d > max_texel_offset %d", *r.MinTexelOffset, *r.MaxTexelOffset)
	}
	return nil
}

// SourceDirs returns the absolute directories holding project shaders.
func (m *Manifest) SourceDirs() []string {
	if len(m.Config.Compile.Sources) == 0 {
		return []string{m.Root}
	}
	dirs := make([]string, 0, len(m.Config.Compile.Sources))
	for _, s := range m.Config.Compile.Sources {
		dirs = append(dirs, filepath.Join(m.Root, filepath.FromSlash(s)))
	}
	return dirs
}

// stageSuffixes maps the usual "name.ps.hlsl" naming to stages.
var stageSuffixes = map[string]ir.Stage{
	"vs": ir.StageVertex,
	"hs": ir.StageHull,
	"ds": ir.StageDomain,
	"gs": ir.StageGeometry,
	"ps": ir.StageFragment,
	"cs": ir.StageCompute,
}

// StageFor picks the stage of one file: the "name.<vs|ps|...>.hlsl" suffix
// wins, then [compile].stage, then fallback.
func (c *Config) StageFor(path string, fallback ir.Stage) ir.Stage {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if ext := filepath.Ext(base); ext != "" {
		if st, ok := stageSuffixes[strings.ToLower(ext[1:])]; ok {
			return st
		}
	}
	if c.Compile.Stage != "" {
		if st, err := ir.ParseStage(c.Compile.Stage); err == nil {
			return st
		}
	}
	return fallback
}

const manifestTemplate = `[package]
name = %q

[compile]
entry = "main"
stage = "frag"
flatten_uniform_arrays = false
row_major = false

[bindings]
shift_b = 0
shift_t = 0
shift_s = 0
shift_u = 0

[resources]
max_texel_offset = 7
min_texel_offset = -8
`

// Init writes a fresh hlsl.toml into dir. An existing manifest is an error.
func Init(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %q: %w", dir, err)
	}
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "shaders"
	}
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("project already initialized: %s exists", path)
	}
	// #nosec G306 -- manifest is not secret
	if err := os.WriteFile(path, fmt.Appendf(nil, manifestTemplate, name), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
