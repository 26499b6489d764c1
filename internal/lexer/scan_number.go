package lexer

import (
	"hostbridge/internal/diag"
	"hostbridge/internal/token"
)

// Числа: десятичные с дробной частью и экспонентой, 0x.., разделители '_'.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	} else {
		lx.eatDigits()
		if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) || lx.cursor.Peek() == '.' && lx.cursor.Off == uint32(start) {
			lx.cursor.Bump()
			lx.eatDigits()
		}
		if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
			next := lx.cursor.PeekAt(1)
			if isDec(next) || ((next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2))) {
				lx.cursor.Bump()
				if next == '+' || next == '-' {
					lx.cursor.Bump()
				}
				lx.eatDigits()
			}
		}
	}

	sp := lx.cursor.SpanFrom(start)
	tok := token.Token{Kind: token.NumberLit, Span: sp, Text: lx.text(sp)}

	// 3abc - идентификатор сразу после числа
	if b := lx.cursor.Peek(); isIdentStartByte(b) {
		errStart := lx.cursor.Mark()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		lx.errLex(diag.SynIdentAfterNumber, lx.cursor.SpanFrom(errStart))
	}
	return tok
}

func (lx *Lexer) eatDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
	}
}
