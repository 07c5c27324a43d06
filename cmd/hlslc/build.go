package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"hlslc/internal/buildpipeline"
	"hlslc/internal/driver"
	"hlslc/internal/ui"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [dir]",
	Short: "Compile every shader of a project and write IR dumps",
	Long: `Build compiles every *.hlsl file below dir (or below the source
directories of the nearest hlsl.toml) in parallel and writes one .ir dump
per shader under --out.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	addCompileFlags(buildCmd.Flags())
	buildCmd.Flags().String("out", "", "output directory (default <root>/build/ir)")
	buildCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	buildCmd.Flags().Int("jobs", runtime.GOMAXPROCS(0), "files compiled in parallel")
}

func runBuild(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	opts, err := compileOptions(cmd, target)
	if err != nil {
		return err
	}

	root, dirs := target, []string{target}
	if len(args) == 0 && opts.Manifest != nil {
		root, dirs = opts.Manifest.Root, opts.Manifest.SourceDirs()
	}
	var files []string
	for _, dir := range dirs {
		found, err := driver.ListShaderFiles(dir)
		if err != nil {
			return err
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found in %s", driver.ShaderExt, root)
	}

	outRoot, _ := cmd.Flags().GetString("out")
	if outRoot == "" {
		outRoot = filepath.Join(root, "build", "ir")
	}
	uiValue, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	jobs, _ := cmd.Flags().GetInt("jobs")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	req := &buildpipeline.BuildRequest{
		Root:       root,
		Files:      files,
		Options:    opts,
		Jobs:       jobs,
		OutputRoot: outRoot,
	}
	var res buildpipeline.BuildResult
	if shouldUseTUI(mode) && !quiet {
		res, err = runBuildWithUI(cmd.Context(), "hlslc build", buildpipeline.DisplayNames(files, root), req)
	} else {
		if !quiet {
			req.Progress = ui.NewLineSink(cmd.ErrOrStderr())
		}
		res, err = buildpipeline.Build(cmd.Context(), req)
	}

	if res.Dir != nil {
		if bag := withoutTimings(res.Dir.Bag()); bag.Len() > 0 {
			printer, perr := stderrPrinter(cmd)
			if perr != nil {
				return perr
			}
			if perr := printer.print(os.Stderr, bag, res.Dir.FileSet); perr != nil {
				return perr
			}
		}
	}
	if opts.EnableTimings {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
		if res.Dir != nil {
			printTimings(cmd.ErrOrStderr(), res.Dir.Timing)
		}
	}
	if errors.Is(err, buildpipeline.ErrBuildFailed) {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return errCompileFailed
	}
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d dumps to %s\n", len(res.Outputs), outRoot)
	}
	return nil
}

func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	for _, stage := range []buildpipeline.Stage{buildpipeline.StageParse, buildpipeline.StageEmit} {
		if timings.Has(stage) {
			fmt.Fprintf(out, "%s %.1f ms\n", stage, toMillis(timings.Duration(stage)))
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
