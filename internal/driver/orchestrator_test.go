package driver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostbridge/internal/diag"
	"hostbridge/internal/host"
	"hostbridge/internal/toolchain"
	"hostbridge/internal/trace"
	"hostbridge/internal/vfs"
)

type fixture struct {
	sys *host.System
	req Request
}

func newFixture(t *testing.T, files map[string]string, opts map[string]any, roots ...string) *fixture {
	t.Helper()
	o, cfg := toolchain.ParseOptions(opts)
	sys := host.NewSystem(context.Background(), vfs.NewMemProvider("/", files), host.Options{NewLine: o.NewLine})
	return &fixture{
		sys: sys,
		req: Request{RootNames: roots, Options: o, ConfigDiagnostics: cfg, Host: host.NewCompilerHost(sys)},
	}
}

func errorCodes(ds []diag.Diagnostic) []diag.Code {
	var out []diag.Code
	for _, d := range ds {
		if d.Severity == diag.SevError {
			out = append(out, d.Code)
		}
	}
	return out
}

func TestValidProgram(t *testing.T) {
	fx := newFixture(t, map[string]string{"/a.ts": "let x: number = 1;\nprint(x + 1);\n"}, nil, "/a.ts")
	res := Run(context.Background(), fx.req)

	assert.Empty(t, errorCodes(res.Diagnostics))
	assert.Equal(t, Stage(""), res.StoppedAt)
	assert.True(t, res.TypeChecking())
	out, ok := fx.sys.Output("/a.js")
	require.True(t, ok)
	assert.Equal(t, "var x = 1;\nprint(x + 1);\n", out)
}

func TestSyntaxErrorsShortCircuit(t *testing.T) {
	fx := newFixture(t, map[string]string{
		"/a.ts": "let x: number = \"s\";\nconst c;\n",
	}, nil, "/a.ts")
	res := Run(context.Background(), fx.req)

	assert.Equal(t, StageSyntax, res.StoppedAt)
	assert.Equal(t, []diag.Code{diag.SynConstMustBeInitialized}, errorCodes(res.Diagnostics))
	assert.Empty(t, fx.sys.OutputPaths())
}

func TestOptionsErrorsShortCircuit(t *testing.T) {
	fx := newFixture(t, map[string]string{"/a.ts": "print(1);\n"}, map[string]any{"target": "es1"}, "/a.ts")
	res := Run(context.Background(), fx.req)

	assert.Equal(t, StageOptions, res.StoppedAt)
	assert.Equal(t, []diag.Code{diag.OptInvalidArgument}, errorCodes(res.Diagnostics))
	assert.Empty(t, fx.sys.OutputPaths())
}

func TestMissingRootIsOneOptionsError(t *testing.T) {
	fx := newFixture(t, nil, nil, "/a.src")
	res := Run(context.Background(), fx.req)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diag.OptFileNotFound, res.Diagnostics[0].Code)
	assert.Equal(t, StageOptions, res.StoppedAt)
}

func TestSemanticErrorsStillEmit(t *testing.T) {
	fx := newFixture(t, map[string]string{"/a.ts": "let x: number = \"hello\";\n"}, nil, "/a.ts")
	res := Run(context.Background(), fx.req)

	assert.Equal(t, []diag.Code{diag.SemaTypeNotAssignable}, errorCodes(res.Diagnostics))
	_, ok := fx.sys.Output("/a.js")
	assert.True(t, ok)
}

func TestGlobalErrorsSkipSemantic(t *testing.T) {
	var events []PhaseEvent
	fx := newFixture(t, map[string]string{
		"/a.ts": "let print = 1;\nlet y: number = \"s\";\n",
	}, nil, "/a.ts")
	fx.req.Observer = func(ev PhaseEvent) { events = append(events, ev) }
	res := Run(context.Background(), fx.req)

	codes := errorCodes(res.Diagnostics)
	assert.NotEmpty(t, codes)
	assert.NotContains(t, codes, diag.SemaTypeNotAssignable)
	assert.Contains(t, events, PhaseEvent{Stage: StageSemantic, Status: PhaseSkipped})
	_, ok := fx.sys.Output("/a.js")
	assert.True(t, ok, "emit runs after global errors")
}

func TestTranspileOnlyCollectsAndEmits(t *testing.T) {
	fx := newFixture(t, map[string]string{
		"/a.ts": "let x: number = \"s\";\nconst c;\n",
	}, map[string]any{"transpileOnly": true}, "/a.ts")
	res := Run(context.Background(), fx.req)

	assert.False(t, res.TypeChecking())
	assert.Equal(t, Stage(""), res.StoppedAt)
	assert.Equal(t, []diag.Code{diag.SynConstMustBeInitialized}, errorCodes(res.Diagnostics))
	out, ok := fx.sys.Output("/a.js")
	require.True(t, ok)
	assert.Contains(t, out, "var c;")
}

func TestEmitDiagnosticsMergedSortedAndDeduplicated(t *testing.T) {
	fx := newFixture(t, map[string]string{
		"/a.ts": "import \"./a.js\";\nlet x: number = \"s\";\n",
		"/a.js": "print(1);\n",
	}, nil, "/a.ts")
	res := Run(context.Background(), fx.req)

	// a.ts and a.js both map onto /a.js; the duplicate collapses
	assert.Equal(t, []diag.Code{diag.OptWouldOverwriteInput, diag.SemaTypeNotAssignable}, errorCodes(res.Diagnostics))
}

func TestStagesAreTracedAndTimed(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)
	fx := newFixture(t, map[string]string{"/a.ts": "print(1);\n"}, nil, "/a.ts")
	res := Run(ctx, fx.req)

	var names []string
	for _, p := range res.Timings.Phases {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"program", "syntax", "options", "global", "semantic", "emit"}, names)
	ends := ring.Named("semantic")
	require.Len(t, ends, 2)
	assert.Equal(t, "diags=0", ends[1].Detail)
}
