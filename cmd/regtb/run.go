package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/regtb/bench"
	"github.com/sarchlab/regtb/report"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions

	ConfigPath   string
	Seed         int64
	Length       int
	Mode         string
	ResetCycles  int
	PatternFile  string
	ActivityFile string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the testbench scenario",
		Long: `Run the verification scenario: reset, drive the stimulus sequence,
drain the pipeline, and report every mismatch.

Example:
  regtb run --seed 42 --length 100
  regtb run --mode DIRECTED --pattern vectors.yaml --activity toggles.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to run config JSON file")
	cmd.Flags().Int64Var(&opts.Seed, "seed", -1, "generator seed (overrides config)")
	cmd.Flags().IntVar(&opts.Length, "length", -1, "stimulus count (overrides config)")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "test mode: RANDOM or DIRECTED (overrides config)")
	cmd.Flags().IntVar(&opts.ResetCycles, "reset-cycles", -1, "startup reset length in cycles (overrides config)")
	cmd.Flags().StringVar(&opts.PatternFile, "pattern", "", "YAML directed pattern file")
	cmd.Flags().StringVar(&opts.ActivityFile, "activity", "", "write switching-activity artifact to this file")

	return cmd
}

// resolveConfig merges the config file with flag overrides.
func resolveConfig(opts *RunOptions) (*bench.RunConfig, error) {
	cfg := bench.DefaultRunConfig()
	if opts.ConfigPath != "" {
		loaded, err := bench.LoadRunConfig(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.Seed >= 0 {
		cfg.Seed = opts.Seed
	}
	if opts.Length >= 0 {
		cfg.SequenceLength = opts.Length
	}
	if opts.Mode != "" {
		cfg.TestMode = bench.TestMode(opts.Mode)
	}
	if opts.ResetCycles >= 0 {
		cfg.ResetCycles = opts.ResetCycles
	}
	if opts.PatternFile != "" {
		cfg.PatternFile = opts.PatternFile
	}
	if opts.ActivityFile != "" {
		cfg.ActivityFile = opts.ActivityFile
	}

	return cfg, nil
}

func runBench(cmd *cobra.Command, opts *RunOptions) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	cfg, err := resolveConfig(opts)
	if err != nil {
		return &ExitError{Code: report.ExitIntegrity, Message: "bad configuration", Err: err}
	}

	envOpts := []bench.EnvOption{}
	if opts.Verbose {
		envOpts = append(envOpts, bench.WithLogger(logger))
	}

	env, err := bench.NewEnvironment(cfg, envOpts...)
	if err != nil {
		return &ExitError{Code: report.ExitIntegrity, Message: "failed to build environment", Err: err}
	}

	logger.Info("starting run",
		"seed", cfg.Seed,
		"length", cfg.SequenceLength,
		"mode", string(cfg.TestMode))

	summary, runErr := env.Run()

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		if err := summary.WriteJSON(out); err != nil {
			return &ExitError{Code: report.ExitIntegrity, Message: "failed to write report", Err: err}
		}
	} else {
		summary.WriteText(out)
	}

	if runErr != nil {
		return &ExitError{Code: report.ExitIntegrity, Message: "harness integrity failure", Err: runErr}
	}
	if summary.Mismatches > 0 {
		return &ExitError{Code: report.ExitMismatch}
	}
	return nil
}
