package main

import (
	"testing"

	"github.com/spf13/cobra"

	"hlslc/internal/ir"
	"hlslc/internal/project"
)

func newOptionsCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	root := &cobra.Command{Use: "hlslc"}
	root.PersistentFlags().Int("max-diagnostics", 100, "")
	root.PersistentFlags().Bool("timings", false, "")
	root.PersistentFlags().Bool("quiet", true, "")
	child := &cobra.Command{Use: "diag"}
	addCompileFlags(child.Flags())
	root.AddCommand(child)
	if err := child.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return child
}

func TestCompileOptionsPrecedence(t *testing.T) {
	dir := t.TempDir()
	if _, err := project.Init(dir, "fx"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		args      []string
		wantStage ir.Stage
		fixed     bool
		shiftT    int
		manifest  bool
	}{
		{"manifest", nil, ir.StageFragment, false, 0, true},
		{"flags win", []string{"--stage", "cs", "--shift-t", "3"}, ir.StageCompute, true, 3, true},
		{"no manifest", []string{"--no-manifest", "--entry", "vs_main"}, ir.StageFragment, false, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := compileOptions(newOptionsCommand(t, tt.args...), dir)
			if err != nil {
				t.Fatal(err)
			}
			if opts.Stage != tt.wantStage || opts.StageFixed != tt.fixed || opts.Shifts.T != tt.shiftT {
				t.Fatalf("opts = stage %v fixed %t shifts %+v", opts.Stage, opts.StageFixed, opts.Shifts)
			}
			if (opts.Manifest != nil) != tt.manifest {
				t.Fatalf("manifest loaded = %t, want %t", opts.Manifest != nil, tt.manifest)
			}
		})
	}
}

func TestCompileOptionsRejectsNegativeShift(t *testing.T) {
	if _, err := compileOptions(newOptionsCommand(t, "--no-manifest", "--shift-b", "-1"), t.TempDir()); err == nil {
		t.Fatal("negative shift accepted")
	}
}
