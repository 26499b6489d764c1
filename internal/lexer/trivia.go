package lexer

import (
	"hostbridge/internal/diag"
)

// skipTrivia пропускает пробелы, переводы строк и комментарии перед значимым токеном.
// Незакрытый блочный комментарий репортится и обрезается на EOF.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v':
			lx.cursor.Bump()
		case b == '\n':
			lx.newline = true
			lx.cursor.Bump()
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			lx.skipBlockComment()
		default:
			return
		}
	}
}

func (lx *Lexer) skipBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\n' {
			lx.newline = true
		}
		if b == '*' && lx.cursor.Peek() == '/' {
			lx.cursor.Bump()
			return
		}
	}
	sp := lx.cursor.SpanFrom(start)
	sp.Start = sp.End
	lx.errLex(diag.SynCommentNotClosed, sp)
}
