package parser

import (
	"slices"

	"hostbridge/internal/ast"

	"hostbridge/internal/diag"
	"hostbridge/internal/source"
	"hostbridge/internal/token"
)

func (p *Parser) peekN(n int) token.Token {
	for len(p.buf) <= n {
		p.buf = append(p.buf, p.lx.Next())
	}
	return p.buf[n]
}

func (p *Parser) peek() token.Token { return p.peekN(0) }

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance - съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	p.buf = p.buf[1:]
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// eat съедает токен, если он нужного вида
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// getDiagnosticSpan - лучший span для диагностики: на EOF используем позицию после lastSpan
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF || peek.NewlineBefore {
		return source.Span{Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect - ожидаем конкретный токен. Если нет - репортим "'x' expected." и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.getDiagnosticSpan()
	p.report(diag.Newf(diag.SynTokenExpected, p.file, sp, k.String()))
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// err репортует ошибку в текущей позиции
func (p *Parser) err(code diag.Code, args ...any) {
	p.report(diag.Newf(code, p.file, p.getDiagnosticSpan(), args...))
}

func (p *Parser) errAt(code diag.Code, sp source.Span, args ...any) {
	p.report(diag.Newf(code, p.file, sp, args...))
}

func (p *Parser) report(d diag.Diagnostic) {
	p.Report(d)
}

// parseSemicolon принимает ';', либо вставляет его автоматически перед '}', EOF или переводом строки.
func (p *Parser) parseSemicolon() {
	if p.eat(token.Semicolon) {
		return
	}
	if p.atOr(token.RBrace, token.EOF) || p.peek().NewlineBefore {
		return
	}
	p.expect(token.Semicolon)
	p.resyncStatement()
}

// resyncStatement - восстановление после ошибки: прокручиваем до ';' (съедая его),
// до '}' / стартера следующего statement / перевода строки, либо EOF.
func (p *Parser) resyncStatement() {
	for !p.at(token.EOF) {
		if p.eat(token.Semicolon) {
			return
		}
		tok := p.peek()
		if tok.Kind == token.RBrace || tok.NewlineBefore || isStatementStarter(tok.Kind) {
			return
		}
		p.advance()
	}
}

// isStatementStarter reports whether k begins a declaration or statement.
func isStatementStarter(k token.Kind) bool {
	switch k {
	case token.KwImport, token.KwExport, token.KwLet, token.KwConst, token.KwVar, token.KwFunction,
		token.KwIf, token.KwWhile, token.KwReturn, token.At:
		return true
	default:
		return false
	}
}

func (p *Parser) newIdent(tok token.Token) *ast.Ident {
	return &ast.Ident{Sp: ast.Sp{S: tok.Span}, Name: tok.Text}
}

// parseIdent ожидает Ident; на ошибке репортит SynIdentifierExpected и возвращает nil.
func (p *Parser) parseIdent() *ast.Ident {
	if p.at(token.Ident) {
		return p.newIdent(p.advance())
	}
	p.err(diag.SynIdentifierExpected)
	return nil
}
