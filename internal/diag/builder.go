package diag

import "hostbridge/internal/source"

func New(sev Severity, code Code, file *source.File, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		File:     file,
		Primary:  primary,
		Message:  msg,
	}
}

// Newf builds a diagnostic with the code's default severity and formatted template.
func Newf(code Code, file *source.File, primary source.Span, args ...any) Diagnostic {
	return New(code.DefaultSeverity(), code, file, primary, code.Message(args...))
}

// Global builds a file-less diagnostic.
func Global(code Code, args ...any) Diagnostic {
	return New(code.DefaultSeverity(), code, nil, source.Span{}, code.Message(args...))
}

func (d Diagnostic) WithNote(file *source.File, sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{File: file, Span: sp, Msg: msg})
	return d
}

// WithChain appends elaboration messages below the head message.
func (d Diagnostic) WithChain(chain ...MessageChain) Diagnostic {
	d.Chain = append(d.Chain, chain...)
	return d
}

// WithSeverity overrides the severity.
func (d Diagnostic) WithSeverity(sev Severity) Diagnostic {
	d.Severity = sev
	return d
}
