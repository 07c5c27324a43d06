package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"hlslc/internal/driver"
	"hlslc/internal/ir"
	"hlslc/internal/project"
)

// addCompileFlags registers the flags shared by parse, diag and build.
func addCompileFlags(f *pflag.FlagSet) {
	f.String("stage", "frag", "pipeline stage (vert|tesc|tese|geom|frag|comp, or vs|hs|ds|gs|ps|cs)")
	f.String("entry", "main", "entry point name")
	f.Bool("flatten-uniform-arrays", false, "split arrays of samplers and textures into scalars")
	f.Bool("row-major", false, "make row_major the default matrix layout")
	f.Int("shift-b", 0, "binding shift for register(b#)")
	f.Int("shift-t", 0, "binding shift for register(t#)")
	f.Int("shift-s", 0, "binding shift for register(s#)")
	f.Int("shift-u", 0, "binding shift for register(u#)")
	f.Bool("no-warnings", false, "drop warnings")
	f.Bool("werror", false, "treat warnings as errors")
	f.String("manifest", "", "path to "+project.ManifestName+" (default: search upwards)")
	f.Bool("no-manifest", false, "ignore "+project.ManifestName)
	f.Bool("disk-cache", false, "reuse results stored in the user cache directory")
}

// compileOptions builds driver options for target: defaults, then the
// manifest, then explicitly set flags.
func compileOptions(cmd *cobra.Command, target string) (driver.Options, error) {
	opts := driver.DefaultOptions()
	root := cmd.Root().PersistentFlags()
	flags := cmd.Flags()

	var err error
	if opts.MaxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if opts.EnableTimings, err = root.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}

	m, err := loadManifest(flags, target)
	if err != nil {
		return opts, err
	}
	if m != nil {
		if err := opts.ApplyManifest(m); err != nil {
			return opts, err
		}
		quiet, _ := root.GetBool("quiet")
		if len(m.Unknown) > 0 && !quiet {
			fmt.Fprintf(os.Stderr, "%s: unknown keys ignored: %v\n", m.Path, m.Unknown)
		}
	}

	if flags.Changed("stage") {
		value, _ := flags.GetString("stage")
		st, err := ir.ParseStage(value)
		if err != nil {
			return opts, err
		}
		opts.Stage = st
		opts.StageFixed = true
	}
	if flags.Changed("entry") {
		opts.EntryPoint, _ = flags.GetString("entry")
	}
	if flags.Changed("flatten-uniform-arrays") {
		opts.FlattenUniformArrays, _ = flags.GetBool("flatten-uniform-arrays")
	}
	if flags.Changed("row-major") {
		opts.RowMajor, _ = flags.GetBool("row-major")
	}
	for name, dst := range map[string]*int{
		"shift-b": &opts.Shifts.B,
		"shift-t": &opts.Shifts.T,
		"shift-s": &opts.Shifts.S,
		"shift-u": &opts.Shifts.U,
	} {
		if !flags.Changed(name) {
			continue
		}
		v, _ := flags.GetInt(name)
		if v < 0 {
			return opts, fmt.Errorf("--%s must not be negative", name)
		}
		*dst = v
	}
	opts.IgnoreWarnings, _ = flags.GetBool("no-warnings")
	opts.WarningsAsErrors, _ = flags.GetBool("werror")

	if useCache, _ := flags.GetBool("disk-cache"); useCache {
		cache, err := driver.OpenDiskCache("hlslc")
		if err != nil {
			return opts, fmt.Errorf("disk cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

func loadManifest(flags *pflag.FlagSet, target string) (*project.Manifest, error) {
	if skip, _ := flags.GetBool("no-manifest"); skip {
		return nil, nil
	}
	if path, _ := flags.GetString("manifest"); path != "" {
		return project.Load(path)
	}
	start := target
	if start == "" || start == "-" {
		start = "."
	}
	if st, err := os.Stat(start); err == nil && !st.IsDir() {
		start = filepath.Dir(start)
	}
	m, err := project.Discover(start)
	if errors.Is(err, project.ErrNoManifest) {
		return nil, nil
	}
	return m, err
}
