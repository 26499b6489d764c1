package driver

import "hostbridge/internal/diag"

// Stage names one step of the orchestrator pipeline.
type Stage string

const (
	StageProgram  Stage = "program"
	StageSyntax   Stage = "syntax"
	StageOptions  Stage = "options"
	StageGlobal   Stage = "global"
	StageSemantic Stage = "semantic"
	StageEmit     Stage = "emit"
)

// StageResult is what a stage hands back to the pipeline: its diagnostics
// and whether later stages may run.
type StageResult struct {
	Diagnostics []diag.Diagnostic
	Stop        bool
}

// Continue lets the pipeline proceed, carrying ds along.
func Continue(ds []diag.Diagnostic) StageResult {
	return StageResult{Diagnostics: ds}
}

// StopWith halts the pipeline when ds is non-empty.
func StopWith(ds []diag.Diagnostic) StageResult {
	return StageResult{Diagnostics: ds, Stop: len(ds) > 0}
}
