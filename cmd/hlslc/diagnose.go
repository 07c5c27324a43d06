package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"hlslc/internal/diag"
	"hlslc/internal/diagfmt"
	"hlslc/internal/driver"
	"hlslc/internal/observ"
	"hlslc/internal/source"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] file.hlsl|dir",
	Short: "Report diagnostics for a shader or a directory of shaders",
	Long: `Diag compiles one shader or every *.hlsl file below a directory and
prints the collected diagnostics. Files named name.vs.hlsl, name.ps.hlsl and
so on are compiled for the matching stage unless --stage is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

func init() {
	addCompileFlags(diagCmd.Flags())
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	diagCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	diagCmd.Flags().Int8("context", 1, "source lines shown around each diagnostic")
	diagCmd.Flags().Bool("notes", true, "show diagnostic notes")
	diagCmd.Flags().Int("jobs", runtime.GOMAXPROCS(0), "files compiled in parallel")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	target := args[0]
	flags := cmd.Flags()

	formatStr, _ := flags.GetString("format")
	format, err := readDiagFormat(formatStr)
	if err != nil {
		return err
	}
	pathModeStr, _ := flags.GetString("path-mode")
	pathMode, err := diagfmt.ParsePathMode(pathModeStr)
	if err != nil {
		return err
	}
	context, _ := flags.GetInt8("context")
	showNotes, _ := flags.GetBool("notes")
	jobs, _ := flags.GetInt("jobs")

	opts, err := compileOptions(cmd, target)
	if err != nil {
		return err
	}

	color, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	printer := diagPrinter{
		format:    format,
		color:     color,
		context:   context,
		pathMode:  pathMode,
		showNotes: showNotes,
		args:      os.Args,
	}

	var (
		bag    *diag.Bag
		fs     *source.FileSet
		timing *observ.Report
		failed bool
	)
	if st, err := os.Stat(target); err == nil && st.IsDir() {
		res, err := driver.CompileDir(cmd.Context(), target, opts, jobs)
		if err != nil {
			return err
		}
		bag, fs, timing, failed = res.Bag(), res.FileSet, res.Timing, res.Failed()
		if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet && format == formatPretty {
			defer fmt.Fprintf(cmd.ErrOrStderr(), "%d files: %d compiled, %d cached, %d failed\n",
				len(res.Files), res.Stats.Compiled, res.Stats.Cached, res.Stats.Failed)
		}
	} else {
		res, err := driver.CompileFile(cmd.Context(), target, opts)
		if err != nil {
			return err
		}
		bag, fs, timing, failed = res.Bag, res.FileSet, res.Timing, res.Failed()
	}

	if err := printer.print(cmd.OutOrStdout(), bag, fs); err != nil {
		return err
	}
	if opts.EnableTimings && (format == formatPretty || format == formatShort) {
		printTimings(cmd.ErrOrStderr(), timing)
	}
	if failed {
		return errCompileFailed
	}
	return nil
}
