package driver

import (
	"context"
	"fmt"
	"time"

	"hostbridge/internal/diag"
	"hostbridge/internal/observ"
	"hostbridge/internal/toolchain"
	"hostbridge/internal/trace"
)

// Request is one compile attempt.
type Request struct {
	RootNames []string
	Options   toolchain.Options
	// ConfigDiagnostics are option-decoding problems; they surface in the
	// options stage.
	ConfigDiagnostics []diag.Diagnostic
	Host              toolchain.CompilerHost
	Observer          PhaseObserver
}

// Result is the outcome of Run.
type Result struct {
	Program     *toolchain.Program
	Diagnostics []diag.Diagnostic
	Emit        toolchain.EmitResult
	// StoppedAt is the stage that short-circuited the pipeline, or "".
	StoppedAt Stage
	Timings   observ.Report
}

// TypeChecking reports whether the run included the global and semantic stages.
func (r *Result) TypeChecking() bool {
	return r.Program != nil && !r.Program.Options().NoCheck
}

type run struct {
	req      Request
	checking bool
	program  *toolchain.Program
	global   []diag.Diagnostic
	emit     toolchain.EmitResult
}

type stage struct {
	name    Stage
	enabled func(*run) bool
	exec    func(*run) StageResult
}

func always(*run) bool { return true }

func checking(r *run) bool { return r.checking }

// pipeline порядок важен: дешёвые стадии идут первыми
var pipeline = []stage{
	{StageProgram, always, func(r *run) StageResult {
		r.program = toolchain.CreateProgram(toolchain.ProgramOptions{
			RootNames:         r.req.RootNames,
			Options:           r.req.Options,
			Host:              r.req.Host,
			ConfigDiagnostics: r.req.ConfigDiagnostics,
		})
		return Continue(nil)
	}},
	{StageSyntax, always, func(r *run) StageResult {
		return StopWith(r.program.SyntacticDiagnostics(nil))
	}},
	{StageOptions, always, func(r *run) StageResult {
		return StopWith(r.program.OptionsDiagnostics())
	}},
	{StageGlobal, checking, func(r *run) StageResult {
		r.global = r.program.GlobalDiagnostics()
		return Continue(r.global)
	}},
	{StageSemantic, func(r *run) bool { return r.checking && len(r.global) == 0 }, func(r *run) StageResult {
		return Continue(r.program.SemanticDiagnostics(nil))
	}},
	// emission is best effort: type errors do not prevent it
	{StageEmit, always, func(r *run) StageResult {
		r.emit = r.program.Emit()
		if !r.checking {
			return Continue(nil)
		}
		return Continue(r.emit.Diagnostics)
	}},
}

// Run drives req through the stage pipeline. With type checking on, a
// stopping stage ends the run; in transpile-only mode every stage's
// diagnostics are collected and emission still happens.
func Run(ctx context.Context, req Request) *Result {
	r := &run{req: req, checking: !req.Options.NoCheck}
	timer := observ.NewTimer()
	res := &Result{}
	var diags []diag.Diagnostic

	for _, st := range pipeline {
		if res.StoppedAt != "" || !st.enabled(r) {
			req.Observer.notify(PhaseEvent{Stage: st.name, Status: PhaseSkipped})
			continue
		}
		out := runStage(ctx, timer, req.Observer, st, r)
		diags = append(diags, out.Diagnostics...)
		if out.Stop && r.checking {
			res.StoppedAt = st.name
		}
	}

	if r.checking {
		diags = diag.DedupDiagnostics(diags)
		diag.SortDiagnostics(diags)
	}

	res.Program = r.program
	res.Diagnostics = diags
	res.Emit = r.emit
	res.Timings = timer.Report()
	return res
}

func runStage(ctx context.Context, timer *observ.Timer, obs PhaseObserver, st stage, r *run) StageResult {
	_, span := trace.Start(ctx, trace.ScopeStage, string(st.name))
	idx := timer.Begin(string(st.name))
	obs.notify(PhaseEvent{Stage: st.name, Status: PhaseStart})
	started := time.Now()

	out := st.exec(r)

	note := fmt.Sprintf("diags=%d", len(out.Diagnostics))
	timer.End(idx, note)
	span.End(note)
	obs.notify(PhaseEvent{Stage: st.name, Status: PhaseEnd, Elapsed: time.Since(started), Diagnostics: len(out.Diagnostics)})
	return out
}
