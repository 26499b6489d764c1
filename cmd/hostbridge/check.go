package main

import (
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"hostbridge/internal/bridge"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file>...",
	Short: "Type-check source files without a manifest",
	Long: `Check compiles each file against a snapshot of its own directory and
reports errors only. Compiler options are given with --option key=value.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringToStringP("option", "o", nil, "compiler option (key=value), repeatable")
	checkCmd.Flags().StringSlice("ext", nil, "only snapshot files with these extensions")
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := readRenderOptions(cmd)
	if err != nil {
		return err
	}
	rawOpts, err := cmd.Flags().GetStringToString("option")
	if err != nil {
		return err
	}
	exts, err := cmd.Flags().GetStringSlice("ext")
	if err != nil {
		return err
	}
	options := parseOptionValues(rawOpts)

	manifests := make([]*manifest, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return err
		}
		// a synthetic manifest next to the file
		manifests = append(manifests, &manifest{
			Extensions: exts,
			Requests:   []bridge.Request{{InputPath: filepath.Base(abs), Options: options}},
			path:       filepath.Join(filepath.Dir(abs), "check.toml"),
		})
	}

	runs, err := compileManifests(cmd.Context(), manifests, bridge.Options{Format: opts.wireFormat()}, nil)
	if err != nil {
		return err
	}

	failed := false
	for i, run := range runs {
		o := run.outcomes[0]
		if err := renderOutcome(cmd.OutOrStdout(), cmd.ErrOrStderr(), o, args[i], providerLookup(run.provider), opts); err != nil {
			return err
		}
		failed = failed || !o.Result.Succeeded()
	}
	if failed {
		return errCompileFailed
	}
	return nil
}

// parseOptionValues turns flag strings into option values: booleans and
// integers are recognized, everything else stays a string.
func parseOptionValues(raw map[string]string) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		switch v {
		case "true", "false":
			out[k] = v == "true"
			continue
		}
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			out[k] = n
			continue
		}
		out[k] = v
	}
	return out
}
