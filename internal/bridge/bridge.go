// Package bridge compiles one input against a virtual file set and returns
// a serialized result. Every call builds its own host, ledger and sink and
// disposes them before returning.
package bridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"hostbridge/internal/diagfmt"
	"hostbridge/internal/driver"
	"hostbridge/internal/host"
	"hostbridge/internal/observ"
	"hostbridge/internal/result"
	"hostbridge/internal/source"
	"hostbridge/internal/toolchain"
	"hostbridge/internal/trace"
	"hostbridge/internal/vfs"
)

// ErrInternal wraps a toolchain panic; it aborts the request.
var ErrInternal = errors.New("bridge: internal toolchain failure")

// Request is one compilation: an entry path and a free-form option map.
// Unknown option keys are ignored.
type Request struct {
	InputPath string         `json:"inputPath" yaml:"inputPath" toml:"inputPath"`
	Options   map[string]any `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
}

// Options tune how a request is run and reported.
type Options struct {
	Format result.Format
	// Observer receives stage events tagged with the request's InputPath.
	Observer func(inputPath string, ev driver.PhaseEvent)
}

// Outcome is what Compile hands back.
type Outcome struct {
	RequestID string
	Result    result.Result
	// Payload is Result serialized with Options.Format.
	Payload string
	// Files snapshots everything emitted into the sink, keyed by path.
	Files   map[string]string
	Timings observ.Report
}

// Compile runs req against provider. Diagnostics of any kind end up in the
// result; the returned error is reserved for failures that leave no
// meaningful result (serialization, toolchain panics).
func Compile(ctx context.Context, provider vfs.Provider, req Request, opts Options) (out Outcome, err error) {
	id := newRequestID()
	ctx = trace.WithRequestID(ctx, id)
	ctx, span := trace.Start(ctx, trace.ScopeRequest, "compile")
	span.WithExtra("input", req.InputPath)
	defer func() { span.End(outcomeNote(out, err)) }()

	parsed, cfgDiags := toolchain.ParseOptions(req.Options)
	sys := host.NewSystem(ctx, provider, host.Options{
		UseCaseSensitiveFileNames: parsed.UseCaseSensitiveFileNames,
		NewLine:                   parsed.NewLine,
	})
	defer sys.Dispose()
	defer func() {
		if r := recover(); r != nil {
			out, err = Outcome{RequestID: id}, fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	input := source.JoinPath(provider.GetCurrentDirectory(), req.InputPath)
	run := driver.Run(ctx, driver.Request{
		RootNames:         []string{input},
		Options:           parsed,
		ConfigDiagnostics: cfgDiags,
		Host:              host.NewCompilerHost(sys),
		Observer:          phaseObserver(req.InputPath, opts.Observer),
	})

	res := result.Assemble(result.Assembly{
		InputPath:    input,
		OutputPath:   run.Program.OutputFileName(input, ".js"),
		Errors:       diagfmt.Translate(run.Diagnostics, sys.NewLine()),
		Outputs:      sys,
		Dependencies: sys.IncludedFilePaths(),
	})
	payload, err := result.Encode(res, opts.Format)
	if err != nil {
		return Outcome{RequestID: id}, err
	}
	return Outcome{
		RequestID: id,
		Result:    res,
		Payload:   payload,
		Files:     snapshot(sys),
		Timings:   run.Timings,
	}, nil
}

func phaseObserver(input string, fn func(string, driver.PhaseEvent)) driver.PhaseObserver {
	if fn == nil {
		return nil
	}
	return func(ev driver.PhaseEvent) { fn(input, ev) }
}

func snapshot(sys *host.System) map[string]string {
	files := make(map[string]string)
	for _, p := range sys.OutputPaths() {
		if text, ok := sys.Output(p); ok {
			files[p] = text
		}
	}
	return files
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func outcomeNote(out Outcome, err error) string {
	switch {
	case err != nil:
		return "failed: " + err.Error()
	case out.Result.Succeeded():
		return fmt.Sprintf("ok deps=%d", len(out.Result.DependencyPaths))
	default:
		return fmt.Sprintf("errors=%d", len(out.Result.Errors))
	}
}
