package lexer

import (
	"hostbridge/internal/diag"
	"hostbridge/internal/token"
)

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	kind := token.Invalid
	switch b {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case ':':
		kind = token.Colon
	case '?':
		kind = token.Question
	case '@':
		kind = token.At
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '%':
		kind = token.Percent
	case '.':
		kind = token.Dot
		if lx.cursor.Peek() == '.' && lx.cursor.PeekAt(1) == '.' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			kind = token.DotDotDot
		}
	case '=':
		kind = token.Assign
		switch {
		case lx.cursor.Eat('>'):
			kind = token.Arrow
		case lx.cursor.Eat('='):
			kind = token.EqEq
			if lx.cursor.Eat('=') {
				kind = token.EqEqEq
			}
		}
	case '!':
		kind = token.Bang
		if lx.cursor.Eat('=') {
			kind = token.BangEq
			if lx.cursor.Eat('=') {
				kind = token.BangEqEq
			}
		}
	case '<':
		kind = token.Lt
		if lx.cursor.Eat('=') {
			kind = token.LtEq
		}
	case '>':
		kind = token.Gt
		if lx.cursor.Eat('=') {
			kind = token.GtEq
		}
	case '&':
		if lx.cursor.Eat('&') {
			kind = token.AndAnd
		}
	case '|':
		kind = token.Pipe
		if lx.cursor.Eat('|') {
			kind = token.OrOr
		}
	}

	tok := lx.invalid(start)
	tok.Kind = kind
	if kind == token.Invalid {
		lx.errLex(diag.SynInvalidCharacter, tok.Span)
	}
	return tok
}
