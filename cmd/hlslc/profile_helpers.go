package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hlslc/internal/prof"
)

// setupProfiling enables the profilers requested by the persistent flags.
func setupProfiling(cmd *cobra.Command) error {
	root := cmd.Root()

	var opts prof.Options
	var err error
	if opts.CPU, err = root.PersistentFlags().GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = root.PersistentFlags().GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.RuntimeTrace, err = root.PersistentFlags().GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil
	}

	session, err := prof.Start(opts)
	if err != nil {
		return err
	}
	runCleanup.prof = func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "profile: %v\n", err)
		}
	}
	return nil
}
