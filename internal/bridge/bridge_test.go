package bridge

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostbridge/internal/diagfmt"
	"hostbridge/internal/driver"
	"hostbridge/internal/result"
	"hostbridge/internal/toolchain"
	"hostbridge/internal/trace"
	"hostbridge/internal/vfs"
)

func compile(t *testing.T, files map[string]string, req Request) Outcome {
	t.Helper()
	out, err := Compile(context.Background(), vfs.NewMemProvider("/", files), req, Options{})
	require.NoError(t, err)
	return out
}

func TestTypeMismatchReportsLineOne(t *testing.T) {
	out := compile(t, map[string]string{"/a.src": "let x: number = \"hello\";\n"}, Request{InputPath: "a.src"})

	require.NotEmpty(t, out.Result.Errors)
	assert.Nil(t, out.Result.CompiledCode)
	first := out.Result.Errors[0]
	assert.Equal(t, "/a.src", first.FileName)
	assert.Equal(t, 1, first.LineNumber)
	assert.Equal(t, 5, first.ColumnNumber)
	assert.Contains(t, first.Message, "is not assignable to type 'number'")
}

func TestTranspileOnlyPrint(t *testing.T) {
	out := compile(t, map[string]string{"/a.src": "print(1+1)"}, Request{
		InputPath: "a.src",
		Options:   map[string]any{"transpileOnly": true},
	})

	require.True(t, out.Result.Succeeded(), "errors: %+v", out.Result.Errors)
	assert.Contains(t, out.Result.Code(), "print(1 + 1);")
	assert.NotContains(t, out.Payload, `"errors"`)
}

func TestImportPullsDependencies(t *testing.T) {
	for _, spec := range []string{"./b.src", "./b"} {
		t.Run(spec, func(t *testing.T) {
			out := compile(t, map[string]string{
				"/a.src": "import { b } from \"" + spec + "\";\nprint(b);\n",
				"/b.src": "export const b = 1;\n",
			}, Request{InputPath: "/a.src"})

			require.True(t, out.Result.Succeeded(), "errors: %+v", out.Result.Errors)
			assert.ElementsMatch(t, []string{"/a.src", "/b.src"}, out.Result.DependencyPaths)
			assert.Contains(t, out.Result.Code(), "require(")
		})
	}
}

func TestMissingInputIsOneError(t *testing.T) {
	out := compile(t, map[string]string{}, Request{InputPath: "a.src"})

	require.Len(t, out.Result.Errors, 1)
	assert.Equal(t, diagfmt.Record{Message: "File '/a.src' not found."}, out.Result.Errors[0])
	assert.Contains(t, strings.ToLower(out.Payload), "not found")
}

func TestSyntaxErrorsOnly(t *testing.T) {
	out := compile(t, map[string]string{
		"/a.src": "let x: number = \"s\";\nconst c;\n",
	}, Request{InputPath: "a.src"})

	assert.Nil(t, out.Result.CompiledCode)
	assert.Equal(t, []diagfmt.Record{{
		Message:      "'const' declarations must be initialized.",
		FileName:     "/a.src",
		LineNumber:   2,
		ColumnNumber: 7,
	}}, out.Result.Errors)
}

func TestTranspileOnlyCollectsSyntaxAndOptionErrors(t *testing.T) {
	out := compile(t, map[string]string{
		"/a.src": "let x: number = \"s\";\nconst c;\n",
	}, Request{
		InputPath: "a.src",
		Options:   map[string]any{"transpileOnly": true, "target": "es1"},
	})

	assert.Nil(t, out.Result.CompiledCode)
	require.Len(t, out.Result.Errors, 2)
	assert.Equal(t, diagfmt.Record{
		Message:      "'const' declarations must be initialized.",
		FileName:     "/a.src",
		LineNumber:   2,
		ColumnNumber: 7,
	}, out.Result.Errors[0])
	assert.True(t, strings.HasPrefix(out.Result.Errors[1].Message, "Argument for '--target' option must be: "),
		out.Result.Errors[1].Message)
	assert.Empty(t, out.Result.Errors[1].FileName)
	for _, e := range out.Result.Errors {
		assert.NotContains(t, e.Message, "not assignable")
	}
}

func TestDefaultLibNeverInDependencies(t *testing.T) {
	for _, target := range []string{"es5", "es2015", "esnext"} {
		out := compile(t, map[string]string{"/a.src": "print(NaN);\n"}, Request{
			InputPath: "a.src",
			Options:   map[string]any{"target": target},
		})
		require.True(t, out.Result.Succeeded(), "errors: %+v", out.Result.Errors)
		for _, dep := range out.Result.DependencyPaths {
			assert.False(t, toolchain.IsDefaultLibPath(dep), dep)
		}
	}
}

func TestDeterministic(t *testing.T) {
	files := map[string]string{
		"/src/a.src": "import { f } from \"./b.src\";\nexport const v = f(2);\n",
		"/src/b.src": "export function f(n: number): number { return n * 2; }\n",
	}
	req := Request{InputPath: "/src/a.src", Options: map[string]any{"sourceMap": true, "declaration": true}}
	one := compile(t, files, req)
	two := compile(t, files, req)

	require.True(t, one.Result.Succeeded(), "errors: %+v", one.Result.Errors)
	assert.Equal(t, one.Payload, two.Payload)
	assert.Equal(t, one.Files, two.Files)
	assert.NotEqual(t, one.RequestID, two.RequestID)
	assert.Contains(t, one.Files, "/src/a.js.map")
	assert.Contains(t, one.Files, "/src/a.d.ts")
}

func TestNoEmitReportsMissingOutput(t *testing.T) {
	out := compile(t, map[string]string{"/a.src": "print(1);\n"}, Request{
		InputPath: "a.src",
		Options:   map[string]any{"noEmit": true},
	})
	require.Len(t, out.Result.Errors, 1)
	assert.Equal(t, "No output generated for '/a.src'.", out.Result.Errors[0].Message)
}

func TestMsgpackPayload(t *testing.T) {
	out, err := Compile(context.Background(), vfs.NewMemProvider("/", map[string]string{"/a.src": "print(2);\n"}),
		Request{InputPath: "a.src"}, Options{Format: result.FormatMsgpack})
	require.NoError(t, err)

	decoded, err := result.Decode(out.Payload, result.FormatMsgpack)
	require.NoError(t, err)
	assert.Equal(t, out.Result.Code(), decoded.Code())
	assert.Equal(t, []string{"/a.src"}, decoded.DependencyPaths)
}

func TestAssemblyErrorIsFatal(t *testing.T) {
	_, err := Compile(context.Background(), vfs.NewMemProvider("/", map[string]string{"/a.src": ""}),
		Request{InputPath: "a.src"}, Options{Format: result.Format("xml")})
	assert.ErrorIs(t, err, result.ErrAssembly)
}

func TestCompileAllIsolatesRequests(t *testing.T) {
	provider := vfs.NewMemProvider("/", map[string]string{
		"/a.src": "import { b } from \"./b.src\";\nprint(b);\n",
		"/b.src": "export const b = 1;\n",
		"/c.src": "print(3);\n",
		"/d.src": "let d: string = 1;\n",
	})
	reqs := []Request{{InputPath: "a.src"}, {InputPath: "c.src"}, {InputPath: "d.src"}, {InputPath: "a.src"}}
	outs, err := CompileAll(context.Background(), provider, reqs, Options{})
	require.NoError(t, err)
	require.Len(t, outs, 4)

	assert.ElementsMatch(t, []string{"/a.src", "/b.src"}, outs[0].Result.DependencyPaths)
	assert.Equal(t, []string{"/c.src"}, outs[1].Result.DependencyPaths)
	assert.NotEmpty(t, outs[2].Result.Errors)
	assert.Equal(t, outs[0].Payload, outs[3].Payload)

	ids := map[string]bool{}
	for _, o := range outs {
		ids[o.RequestID] = true
	}
	assert.Len(t, ids, 4)
}

func TestObserverSeesTaggedStages(t *testing.T) {
	provider := vfs.NewMemProvider("/", map[string]string{"/a.src": "print(1);\n", "/c.src": "print(3);\n"})
	var mu sync.Mutex
	seen := map[string][]driver.Stage{}
	opts := Options{Observer: func(input string, ev driver.PhaseEvent) {
		if ev.Status != driver.PhaseEnd {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		seen[input] = append(seen[input], ev.Stage)
	}}

	_, err := CompileAll(context.Background(), provider, []Request{{InputPath: "a.src"}, {InputPath: "c.src"}}, opts)
	require.NoError(t, err)

	require.Len(t, seen, 2)
	for _, input := range []string{"a.src", "c.src"} {
		stages := seen[input]
		require.NotEmpty(t, stages, input)
		assert.Equal(t, driver.StageProgram, stages[0])
		assert.Equal(t, driver.StageEmit, stages[len(stages)-1])
	}
}

func TestRequestIsTraced(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)
	out, err := Compile(ctx, vfs.NewMemProvider("/", map[string]string{"/a.src": "print(1);\n"}), Request{InputPath: "a.src"}, Options{})
	require.NoError(t, err)

	ends := ring.Named("compile")
	require.Len(t, ends, 2)
	assert.Equal(t, out.RequestID, ends[1].RequestID)
	assert.Equal(t, "ok deps=1", ends[1].Detail)
	assert.Equal(t, "a.src", ends[1].Extra["input"])
}

func TestProviderDecidesCasing(t *testing.T) {
	files := map[string]string{
		"/a.src": "import { b } from \"./B.src\";\nprint(b);\n",
		"/b.src": "export const b = 1;\n",
	}
	for _, sensitive := range []bool{false, true} {
		out := compile(t, files, Request{
			InputPath: "a.src",
			Options:   map[string]any{"useCaseSensitiveFileNames": sensitive},
		})
		require.NotEmpty(t, out.Result.Errors)
		assert.Contains(t, out.Result.Errors[0].Message, "Cannot find module './B.src'")
	}
}
