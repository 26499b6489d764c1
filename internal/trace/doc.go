// Package trace records what a compilation request did and how long each
// part took.
//
// Events are grouped by scope:
//
//   - ScopeRequest: one bridge call (compile one input)
//   - ScopeStage: orchestrator stages (program, syntax, options, ...)
//   - ScopeHost: host file-system traffic (reads, writes, misses)
//
// Verbosity is a Level (off, error, phase, detail, debug). Every event
// carries the request ID so concurrent compilations can be told apart in
// a single stream.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx = trace.WithRequestID(ctx, id)
//
//	ctx, span := trace.Start(ctx, trace.ScopeStage, "syntax")
//	defer span.End("")
package trace
