package lexer

import (
	"hostbridge/internal/diag"
	"hostbridge/internal/token"
)

// "..." и '...' с escape-последовательностями. Перевод строки внутри - ошибка.
// Text содержит кавычки; декодирование значения - StringValue.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
	}
	// незакрытая строка: отдаём как StringLit, чтобы парсер мог продолжить
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.SynUnterminatedString, sp)
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
}

// StringValue decodes the literal text of a string token (quotes included).
func StringValue(text string) string {
	if len(text) < 2 {
		return ""
	}
	quote := text[0]
	body := text[1:]
	if body != "" && body[len(body)-1] == quote {
		body = body[:len(body)-1]
	}
	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			out = append(out, c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		case '0':
			out = append(out, 0)
		default:
			out = append(out, body[i])
		}
	}
	return string(out)
}
