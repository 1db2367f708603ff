// basestatsgen converts the class base-stat TSV exports into a Go source
// file of constants and per-class lookup maps for the combat simulator.
//
// Usage:
//
//	go run ./cmd/basestatsgen [--config basestats.toml] [--input-dir dir] [--out file] [--check] [--summary]
//
// Defaults: assets/db_inputs/basestats/*.txt → sim/core/base_stats_auto_gen.go
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/simtools/basestats/internal/config"
	"github.com/simtools/basestats/internal/logging"
	"github.com/simtools/basestats/internal/pipeline"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	inputDir   string
	outPath    string
	logLevel   string
	check      bool
	summary    bool
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "basestatsgen",
		Short: "Generate base stat constants from the basestats TSV tables",
		Long: `Generate base stat constants from the basestats TSV tables.

Reads the six tables (base mana, melee/spell crit by level, melee/spell base
crit, combat ratings), samples them at the reference level and writes a Go
file of rating constants and per-class maps.

Environment overrides (also read from .env):
- BASESTATS_INPUT_DIR
- BASESTATS_OUTPUT
- BASESTATS_LOG_LEVEL
- BASESTATS_LOG_FORMAT`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(f, stdout)
		},
	}

	cmd.Flags().StringVar(&f.configPath, "config", "", "TOML config file (defaults apply when empty)")
	cmd.Flags().StringVar(&f.inputDir, "input-dir", "", "directory holding the six TSV tables")
	cmd.Flags().StringVar(&f.outPath, "out", "", "generated Go file path")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&f.check, "check", false, "fail if the generated file is out of date instead of writing it")
	cmd.Flags().BoolVar(&f.summary, "summary", false, "print the derived values as YAML on stdout")

	return cmd
}

func run(f flags, stdout io.Writer) error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if f.inputDir != "" {
		cfg.Input.Dir = f.inputDir
	}
	if f.outPath != "" {
		cfg.Output.Path = f.outPath
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	opts := pipeline.Options{
		Paths:      cfg.Paths(),
		Parse:      cfg.ParseOptions(),
		OutputPath: cfg.Output.Path,
		Emit:       cfg.EmitOptions(),
		Check:      f.check,
	}
	if f.summary {
		opts.Summary = stdout
	}

	return pipeline.Run(opts, log)
}
