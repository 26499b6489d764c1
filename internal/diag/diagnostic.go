package diag

import (
	"hostbridge/internal/source"
)

// Note is related information attached to a diagnostic ("declared here").
type Note struct {
	File *source.File
	Span source.Span
	Msg  string
}

// MessageChain is an elaboration tree under a diagnostic message.
type MessageChain struct {
	Message string
	Next    []MessageChain
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Chain    []MessageChain
	// File is nil for diagnostics not tied to a source file (options, program).
	File    *source.File
	Primary source.Span
	Notes   []Note
}

// FilePath returns the path of the diagnostic's file or "".
func (d *Diagnostic) FilePath() string {
	if d.File == nil {
		return ""
	}
	return d.File.Path
}

// Position resolves the primary start to a 1-based line/column.
// ok is false for file-less diagnostics.
func (d *Diagnostic) Position() (pos source.LineCol, ok bool) {
	if d.File == nil {
		return source.LineCol{}, false
	}
	return d.File.Resolve(d.Primary.Start), true
}
