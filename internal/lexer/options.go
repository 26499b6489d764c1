package lexer

import (
	"hostbridge/internal/diag"
	"hostbridge/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, args ...any) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(diag.Newf(code, lx.file, sp, args...))
	}
}
