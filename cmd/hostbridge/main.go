package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hostbridge/internal/version"
)

// errCompileFailed marks a run where at least one request produced errors.
// The diagnostics are already printed, so main only sets the exit code.
var errCompileFailed = errors.New("compilation failed")

var rootCmd = &cobra.Command{
	Use:           "hostbridge",
	Short:         "Compile sources against a virtual file set",
	Long:          `hostbridge snapshots a directory into memory and runs the staged compiler over it, reporting one result per input`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := applyColor(cmd); err != nil {
			return err
		}
		stopProf, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		stopTrace, err := setupTracing(cmd)
		if err != nil {
			stopProf()
			return err
		}
		finish = func() {
			stopTrace()
			stopProf()
		}
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		runFinish()
	},
}

// finish flushes tracing and profiles; it runs once per invocation.
var finish func()

func runFinish() {
	if finish != nil {
		finish()
		finish = nil
	}
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("format", "pretty", "output format (json|msgpack|pretty)")
	rootCmd.PersistentFlags().Bool("timings", false, "print per-stage timings to stderr")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "text", "trace event format (text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer capacity for ring mode")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go execution trace to file")
}

func main() {
	err := rootCmd.Execute()
	runFinish()
	if err != nil {
		if !errors.Is(err, errCompileFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func applyColor(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	enabled, err := colorEnabled(mode, isTerminal(os.Stdout))
	if err != nil {
		return err
	}
	color.NoColor = !enabled
	return nil
}

func colorEnabled(mode string, tty bool) (bool, error) {
	switch mode {
	case "auto", "":
		return tty, nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}
