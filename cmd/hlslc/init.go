package main

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"hlslc/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Create an hlsl.toml manifest",
	Long: `Init writes an hlsl.toml with the default compile settings. If
[path|name] is omitted the current directory is used; a missing directory
is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var projectNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	name := filepath.Base(abs)
	if !projectNameRe.MatchString(name) {
		name = "shaders"
	}
	path, err := project.Init(abs, name)
	if err != nil {
		return err
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	}
	return nil
}
