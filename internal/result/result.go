// Package result builds the single payload a compilation request returns.
package result

import (
	"fmt"
	"slices"

	"hostbridge/internal/diagfmt"
)

// Result is either a success {CompiledCode, DependencyPaths} or a failure
// {Errors}. Assemble never fills both.
type Result struct {
	CompiledCode    *string          `json:"compiledCode,omitempty" msgpack:"compiledCode,omitempty" yaml:"compiledCode,omitempty"`
	DependencyPaths []string         `json:"dependencyPaths,omitempty" msgpack:"dependencyPaths,omitempty" yaml:"dependencyPaths,omitempty"`
	Errors          []diagfmt.Record `json:"errors,omitempty" msgpack:"errors,omitempty" yaml:"errors,omitempty"`
}

// Succeeded reports whether r carries compiled code.
func (r Result) Succeeded() bool {
	return r.CompiledCode != nil && len(r.Errors) == 0
}

// Code returns the compiled code or "".
func (r Result) Code() string {
	if r.CompiledCode == nil {
		return ""
	}
	return *r.CompiledCode
}

// Outputs is where emitted files can be looked up.
type Outputs interface {
	Output(path string) (string, bool)
}

// Assembly is everything Assemble needs from a finished run.
type Assembly struct {
	InputPath    string
	OutputPath   string // primary emitted file for InputPath
	Errors       []diagfmt.Record
	Outputs      Outputs
	Dependencies []string
}

// Assemble picks the payload shape. Any error wins; otherwise the primary
// output must exist in Outputs, and its absence is itself reported as an
// error.
func Assemble(a Assembly) Result {
	if len(a.Errors) > 0 {
		return Failure(slices.Clone(a.Errors)...)
	}
	var (
		code string
		ok   bool
	)
	if a.Outputs != nil {
		code, ok = a.Outputs.Output(a.OutputPath)
	}
	if !ok {
		return Failure(NoOutput(a.InputPath))
	}
	deps := slices.Clone(a.Dependencies)
	if deps == nil {
		deps = []string{}
	}
	return Result{CompiledCode: &code, DependencyPaths: deps}
}

// NoOutput is the record used when a clean run produced no primary output.
func NoOutput(inputPath string) diagfmt.Record {
	return diagfmt.Record{
		Message:  fmt.Sprintf("No output generated for '%s'.", inputPath),
		FileName: inputPath,
	}
}

// Failure wraps records as a failed Result.
func Failure(recs ...diagfmt.Record) Result {
	return Result{Errors: recs}
}
