package ast

import (
	"hostbridge/internal/diag"
	"hostbridge/internal/source"
)

// Node is implemented by every syntax node.
type Node interface {
	Span() source.Span
}

// Sp is embedded into nodes to carry their span.
type Sp struct {
	S source.Span
}

func (s Sp) Span() source.Span { return s.S }

// File is the parse result for one source file.
type File struct {
	Sp
	Source *source.File
	Stmts  []Stmt
	// IsDeclaration marks ".d.ts" files: everything is ambient, nothing is emitted.
	IsDeclaration bool
	// IsModule is set when the file has at least one import or export.
	IsModule bool
	Imports  []*ImportDecl
	// ParseDiagnostics are the lexer and parser diagnostics for this file.
	ParseDiagnostics []diag.Diagnostic
}

// Path returns the source path.
func (f *File) Path() string {
	if f == nil || f.Source == nil {
		return ""
	}
	return f.Source.Path
}

// Ident is a name occurrence.
type Ident struct {
	Sp
	Name string
}

func (*Ident) exprNode() {}
