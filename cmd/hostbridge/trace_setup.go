package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"hostbridge/internal/trace"
)

// traceConfig turns the --trace* flags into a tracer configuration. A
// --trace destination without an explicit level traces stage boundaries.
func traceConfig(flags *pflag.FlagSet) (trace.Config, error) {
	var cfg trace.Config
	out, err1 := flags.GetString("trace")
	level, err2 := flags.GetString("trace-level")
	mode, err3 := flags.GetString("trace-mode")
	format, err4 := flags.GetString("trace-format")
	ring, err5 := flags.GetInt("trace-ring-size")
	if err := errors.Join(err1, err2, err3, err4, err5); err != nil {
		return cfg, fmt.Errorf("trace flags: %w", err)
	}

	var err error
	if cfg.Level, err = trace.ParseLevel(level); err != nil {
		return cfg, err
	}
	if cfg.Level == trace.LevelOff && out != "" {
		cfg.Level = trace.LevelPhase
	}
	if cfg.Mode, err = trace.ParseMode(mode); err != nil {
		return cfg, err
	}
	if cfg.Format, err = trace.ParseFormat(format); err != nil {
		return cfg, err
	}
	cfg.OutputPath, cfg.RingSize = out, ring
	return cfg, nil
}

// setupTracing attaches the configured tracer to the command context and
// returns the cleanup that drains it.
func setupTracing(cmd *cobra.Command) (func(), error) {
	cfg, err := traceConfig(cmd.Root().PersistentFlags())
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	if !tracer.Enabled() {
		return func() {}, nil
	}

	errOut := cmd.ErrOrStderr()
	return func() {
		var dumpErr error
		// кольцевой буфер сам ничего не пишет
		if ring, ok := tracer.(*trace.RingTracer); ok {
			dumpErr = ring.Dump(errOut, cfg.Format)
		}
		if err := errors.Join(dumpErr, tracer.Close()); err != nil {
			fmt.Fprintf(errOut, "trace: %v\n", err)
		}
	}, nil
}
