package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hostbridge/internal/bridge"
	"hostbridge/internal/diagfmt"
	"hostbridge/internal/result"
	"hostbridge/internal/vfs"
)

type outputFormat string

const (
	outputJSON    outputFormat = "json"
	outputMsgpack outputFormat = "msgpack"
	outputPretty  outputFormat = "pretty"
)

type renderOptions struct {
	format  outputFormat
	color   bool
	timings bool
	// showCode prints compiledCode in pretty mode.
	showCode bool
}

func readRenderOptions(cmd *cobra.Command) (renderOptions, error) {
	flags := cmd.Root().PersistentFlags()
	formatStr, err := flags.GetString("format")
	if err != nil {
		return renderOptions{}, err
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return renderOptions{}, err
	}
	opts := renderOptions{
		format:  outputFormat(strings.ToLower(formatStr)),
		color:   !color.NoColor,
		timings: timings,
	}
	switch opts.format {
	case outputJSON, outputMsgpack, outputPretty:
	default:
		return renderOptions{}, fmt.Errorf("unsupported format %q (must be json, msgpack or pretty)", formatStr)
	}
	return opts, nil
}

// wireFormat is the payload encoding the bridge should produce.
func (o renderOptions) wireFormat() result.Format {
	if o.format == outputMsgpack {
		return result.FormatMsgpack
	}
	return result.FormatJSON
}

// renderOutcome prints one request's result. lookup supplies source text
// for excerpts in pretty mode.
func renderOutcome(out, errOut io.Writer, o bridge.Outcome, input string, lookup diagfmt.SourceLookup, opts renderOptions) error {
	if opts.timings {
		fmt.Fprintf(errOut, "%s: %s\n", input, o.Timings.Summary())
	}
	if opts.format != outputPretty {
		_, err := fmt.Fprintln(out, o.Payload)
		return err
	}

	if !o.Result.Succeeded() {
		return diagfmt.Pretty(out, o.Result.Errors, lookup, diagfmt.PrettyOpts{
			Color:    opts.color,
			PathMode: diagfmt.PathModeRelative,
			BaseDir:  "/",
			Summary:  true,
		})
	}

	ok := color.New(color.FgGreen, color.Bold)
	if !opts.color {
		ok.DisableColor()
	}
	deps := "no dependencies"
	if n := len(o.Result.DependencyPaths); n > 0 {
		deps = fmt.Sprintf("%d dependencies", n)
	}
	if _, err := fmt.Fprintf(out, "%s %s (%s)\n", ok.Sprint("ok"), input, deps); err != nil {
		return err
	}
	if opts.showCode {
		_, err := io.WriteString(out, o.Result.Code())
		return err
	}
	return nil
}

func providerLookup(p vfs.Provider) diagfmt.SourceLookup {
	return func(path string) (string, bool) {
		text, err := p.ReadFile(path)
		return text, err == nil
	}
}

// writeEmitted mirrors the sink of an outcome under dir.
func writeEmitted(dir string, files map[string]string) error {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	for _, p := range paths {
		dst := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(p, "/")))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, []byte(files[p]), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dst, err)
		}
	}
	return nil
}
