package driver

import (
	"fmt"

	"hlslc/internal/ir"
	"hlslc/internal/project"
	"hlslc/internal/sema"
	"hlslc/internal/version"
)

// Options configure compile sessions started by the driver.
type Options struct {
	Stage                ir.Stage
	EntryPoint           string
	MaxDiagnostics       int
	Resources            sema.Resources
	Shifts               sema.BindingShifts
	FlattenUniformArrays bool
	RowMajor             bool

	IgnoreWarnings   bool
	WarningsAsErrors bool
	EnableTimings    bool
	// EmitIR keeps the textual IR dump in Result.IR.
	EmitIR bool

	// StageFixed compiles every file as Stage. Otherwise a "name.ps.hlsl"
	// suffix or the manifest picks the stage per file.
	StageFixed bool
	Manifest   *project.Manifest
	Observer   PhaseObserver
	Cache      *DiskCache
}

// DefaultOptions compile a fragment shader with entry point "main".
func DefaultOptions() Options {
	return Options{
		Stage:          ir.StageFragment,
		EntryPoint:     sema.DefaultEntryPoint,
		MaxDiagnostics: 100,
		Resources:      sema.DefaultResources(),
	}
}

// ApplyManifest copies manifest settings over opts. Command-line flags are
// applied afterwards by the caller so they win.
func (o *Options) ApplyManifest(m *project.Manifest) error {
	if m == nil {
		return nil
	}
	o.Manifest = m
	c := m.Config
	if c.Compile.Entry != "" {
		o.EntryPoint = c.Compile.Entry
	}
	if c.Compile.Stage != "" {
		st, err := ir.ParseStage(c.Compile.Stage)
		if err != nil {
			return fmt.Errorf("%s: %w", m.Path, err)
		}
		o.Stage = st
	}
	o.FlattenUniformArrays = c.Compile.FlattenUniformArrays
	o.RowMajor = c.Compile.RowMajor
	o.Shifts = sema.BindingShifts{B: c.Bindings.ShiftB, T: c.Bindings.ShiftT, S: c.Bindings.ShiftS, U: c.Bindings.ShiftU}

	if o.Resources == (sema.Resources{}) {
		o.Resources = sema.DefaultResources()
	}
	r := c.Resources
	if r.MaxTexelOffset != nil {
		o.Resources.MaxTexelOffset = *r.MaxTexelOffset
	}
	if r.MinTexelOffset != nil {
		o.Resources.MinTexelOffset = *r.MinTexelOffset
	}
	if r.MaxDrawBuffers > 0 {
		o.Resources.MaxDrawBuffers = r.MaxDrawBuffers
	}
	if r.MaxGeometryOutVertices > 0 {
		o.Resources.MaxGeometryOutVertices = r.MaxGeometryOutVertices
	}
	return nil
}

// stageFor returns the stage used for path.
func (o *Options) stageFor(path string) ir.Stage {
	if o.StageFixed {
		return o.Stage
	}
	var cfg project.Config
	if o.Manifest != nil {
		cfg = o.Manifest.Config
	}
	return cfg.StageFor(path, o.Stage)
}

// fingerprint identifies everything that changes the output of a session
// besides the source text.
func (o *Options) fingerprint(stage ir.Stage) project.Digest {
	return project.HashString(fmt.Sprintf("%s|%s|%s|%d|%+v|%+v|%t|%t|%t|%t|%t",
		version.Version, stage, o.EntryPoint, o.MaxDiagnostics, o.Resources, o.Shifts,
		o.FlattenUniformArrays, o.RowMajor, o.IgnoreWarnings, o.WarningsAsErrors, o.EmitIR))
}
