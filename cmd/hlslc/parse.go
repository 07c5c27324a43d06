package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hlslc/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.hlsl|-",
	Short: "Compile one shader and print its IR",
	Long: `Parse runs the full front end over one shader: grammar, semantic
checks and lowering. Diagnostics go to stderr; with --emit-ir the module
dump goes to stdout or to --out. "-" reads the shader from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	addCompileFlags(parseCmd.Flags())
	parseCmd.Flags().Bool("emit-ir", false, "print the IR dump")
	parseCmd.Flags().StringP("out", "o", "", "write the IR dump to file instead of stdout")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	opts, err := compileOptions(cmd, path)
	if err != nil {
		return err
	}
	emit, _ := cmd.Flags().GetBool("emit-ir")
	outPath, _ := cmd.Flags().GetString("out")
	opts.EmitIR = emit || outPath != ""

	var res *driver.Result
	if path == "-" {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		res = driver.CompileSource(cmd.Context(), "<stdin>", src, opts)
	} else if res, err = driver.CompileFile(cmd.Context(), path, opts); err != nil {
		return err
	}

	printer, err := stderrPrinter(cmd)
	if err != nil {
		return err
	}
	if err := printer.print(os.Stderr, res.Bag, res.FileSet); err != nil {
		return err
	}
	if opts.EnableTimings {
		printTimings(os.Stderr, res.Timing)
	}
	if res.Failed() {
		return errCompileFailed
	}

	switch {
	case outPath != "":
		if err := os.WriteFile(outPath, []byte(res.IR), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
	case emit:
		_, err = io.WriteString(cmd.OutOrStdout(), res.IR)
		return err
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "ok: %s (%s, entry %q)\n", res.File.Path, res.Stage, opts.EntryPoint)
	}
	return nil
}
