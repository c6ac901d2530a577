package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/regtb/bench"
	"github.com/sarchlab/regtb/report"
)

// NewConfigCommand creates the config command, which writes a default run
// configuration file for later editing.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <path>",
		Short: "Write a default run config JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := bench.DefaultRunConfig()
			if err := cfg.SaveConfig(args[0]); err != nil {
				return &ExitError{
					Code:    report.ExitIntegrity,
					Message: "failed to write config",
					Err:     err,
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
	return cmd
}
