package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hlslc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "hlslc",
	Short: "HLSL front end: diagnostics and intermediate representation",
	Long: `hlslc parses HLSL shaders, checks them and lowers them to an
intermediate representation for one pipeline stage`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setupRun,
	PersistentPostRunE: teardownRun,
}

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "ring", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace event format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept by the trace ring buffer")

	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")
}

// main executes the root command; any error exits with status 1.
func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

// execute runs the root command. A panic dumps the trace ring to stderr
// before it propagates.
func execute() error {
	defer func() {
		if r := recover(); r != nil {
			dumpTraceRing(os.Stderr)
			panic(r)
		}
	}()
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		cleanupRun()
		if !errors.Is(err, errCompileFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	return err
}

func setupRun(cmd *cobra.Command, _ []string) error {
	if err := setupProfiling(cmd); err != nil {
		return err
	}
	if err := setupTracing(cmd); err != nil {
		cleanupRun()
		return err
	}
	return nil
}

func teardownRun(*cobra.Command, []string) error {
	cleanupRun()
	return nil
}

// cleanupRun stops tracing and profiling; it may be called more than once.
func cleanupRun() {
	if runCleanup.trace != nil {
		runCleanup.trace()
		runCleanup.trace = nil
	}
	if runCleanup.prof != nil {
		runCleanup.prof()
		runCleanup.prof = nil
	}
}

var runCleanup struct {
	trace func()
	prof  func()
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch value {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
}
