package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"hostbridge/internal/bridge"
	"hostbridge/internal/driver"
	"hostbridge/internal/vfs"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] <manifest>...",
	Short: "Compile every request of one or more manifests",
	Long: `Compile loads each manifest (TOML or YAML), snapshots its root directory
into memory and compiles all of its requests. Manifests are processed
concurrently; output keeps the order given on the command line.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().Bool("code", false, "print compiled code in pretty mode")
	compileCmd.Flags().String("emit-dir", "", "write every emitted file under this directory")
	compileCmd.Flags().Bool("progress", false, "show live progress on stderr when it is a terminal")
}

// manifestRun is one manifest's snapshot and outcomes.
type manifestRun struct {
	manifest *manifest
	provider vfs.Provider
	outcomes []bridge.Outcome
}

func runCompile(cmd *cobra.Command, args []string) error {
	opts, err := readRenderOptions(cmd)
	if err != nil {
		return err
	}
	if opts.showCode, err = cmd.Flags().GetBool("code"); err != nil {
		return err
	}
	emitDir, err := cmd.Flags().GetString("emit-dir")
	if err != nil {
		return err
	}

	manifests := make([]*manifest, 0, len(args))
	for _, arg := range args {
		m, err := loadManifest(arg)
		if err != nil {
			return err
		}
		manifests = append(manifests, m)
	}

	showProgress, err := cmd.Flags().GetBool("progress")
	if err != nil {
		return err
	}
	var progress *progressUI
	if showProgress && isTerminal(os.Stderr) {
		progress = startProgress(cmd.ErrOrStderr(), manifests)
	}

	runs, err := compileManifests(cmd.Context(), manifests, bridge.Options{Format: opts.wireFormat()}, progress.observer)
	if perr := progress.finish(runs); perr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "progress: %v\n", perr)
	}
	if err != nil {
		return err
	}

	failed := false
	for _, run := range runs {
		for i, o := range run.outcomes {
			input := run.manifest.Requests[i].InputPath
			if err := renderOutcome(cmd.OutOrStdout(), cmd.ErrOrStderr(), o, input, providerLookup(run.provider), opts); err != nil {
				return err
			}
			if !o.Result.Succeeded() {
				failed = true
			}
			if emitDir != "" {
				if err := writeEmitted(emitDir, o.Files); err != nil {
					return err
				}
			}
		}
	}
	if failed {
		return errCompileFailed
	}
	return nil
}

// compileManifests snapshots and compiles each manifest concurrently. Every
// request still gets its own host group inside bridge.CompileAll. observe,
// when non-nil, supplies a per-manifest stage observer.
func compileManifests(ctx context.Context, manifests []*manifest, opts bridge.Options, observe func(*manifest) func(string, driver.PhaseEvent)) ([]manifestRun, error) {
	runs := make([]manifestRun, len(manifests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, m := range manifests {
		g.Go(func() error {
			provider, err := vfs.LoadDir(m.rootDir(), m.Extensions...)
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(m.path), err)
			}
			mopts := opts
			if observe != nil {
				mopts.Observer = observe(m)
			}
			outs, err := bridge.CompileAll(gctx, provider, m.Requests, mopts)
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(m.path), err)
			}
			runs[i] = manifestRun{manifest: m, provider: provider, outcomes: outs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}
