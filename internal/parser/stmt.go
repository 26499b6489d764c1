package parser

import (
	"hostbridge/internal/ast"
	"hostbridge/internal/diag"
	"hostbridge/internal/source"
	"hostbridge/internal/token"
)

// parseStatement выбирает по первому токену нужный распознаватель.
func (p *Parser) parseStatement(top bool) ast.Stmt {
	tok := p.peek()
	switch tok.Kind {
	case token.At:
		return p.parseDecorated(top)
	case token.KwImport:
		if !top {
			p.err(diag.SynImportNotTopLevel)
		}
		return p.parseImport()
	case token.KwExport:
		if !top {
			p.err(diag.SynExportNotTopLevel)
		}
		return p.parseExport(nil)
	case token.KwLet, token.KwConst, token.KwVar:
		return p.parseVar(tok.Span, false, p.opts.Declaration && top)
	case token.KwFunction:
		return p.parseFunc(tok.Span, nil, false, p.opts.Declaration && top)
	case token.Ident:
		if tok.Text == "declare" && p.declareFollows() {
			return p.parseDeclare(tok.Span, false)
		}
	}

	if p.opts.Declaration && top {
		p.err(diag.SynStatementsInAmbient)
		start := p.peek().Span
		p.resyncStatement()
		if p.peek().Span == start && !p.at(token.EOF) {
			p.advance()
		}
		return nil
	}

	switch tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwReturn:
		return p.parseReturn()
	case token.Semicolon:
		p.advance()
		return &ast.EmptyStmt{Sp: ast.Sp{S: tok.Span}}
	}
	return p.parseExprStmt()
}

// declareFollows: `declare` используется как модификатор, только если за ним идёт объявление.
func (p *Parser) declareFollows() bool {
	switch p.peekN(1).Kind {
	case token.KwFunction, token.KwLet, token.KwConst, token.KwVar:
		return !p.peekN(1).NewlineBefore
	}
	return false
}

func (p *Parser) parseBlock() *ast.Block {
	open, _ := p.expect(token.LBrace)
	stmts := p.parseStatements(false)
	closeTok, _ := p.expect(token.RBrace)
	return &ast.Block{Sp: ast.Sp{S: open.Span.Cover(closeTok.Span)}, Stmts: stmts}
}

func (p *Parser) parseIf() ast.Stmt {
	kw := p.advance()
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expect(token.RParen)
	then := p.parseNested()
	stmt := &ast.IfStmt{Cond: cond, Then: then}
	end := spanOf(then, kw.Span)
	if p.eat(token.KwElse) {
		stmt.Else = p.parseNested()
		end = spanOf(stmt.Else, end)
	}
	stmt.S = kw.Span.Cover(end)
	return stmt
}

func (p *Parser) parseWhile() ast.Stmt {
	kw := p.advance()
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expect(token.RParen)
	body := p.parseNested()
	return &ast.WhileStmt{Sp: ast.Sp{S: kw.Span.Cover(spanOf(body, kw.Span))}, Cond: cond, Body: body}
}

// parseNested парсит тело if/while; объявления import/export там запрещены.
func (p *Parser) parseNested() ast.Stmt {
	if p.at(token.EOF) {
		p.err(diag.SynDeclarationExpected)
		return &ast.EmptyStmt{Sp: ast.Sp{S: p.getDiagnosticSpan()}}
	}
	return p.parseStatement(false)
}

func (p *Parser) parseReturn() ast.Stmt {
	kw := p.advance()
	if p.fnDepth == 0 {
		p.errAt(diag.SynReturnOutsideFunction, kw.Span)
	}
	stmt := &ast.ReturnStmt{}
	end := kw.Span
	if !p.atOr(token.Semicolon, token.RBrace, token.EOF) && !p.peek().NewlineBefore {
		stmt.Value = p.parseExpr()
		end = stmt.Value.Span()
	}
	p.parseSemicolon()
	stmt.S = kw.Span.Cover(end)
	return stmt
}

func (p *Parser) parseExprStmt() ast.Stmt {
	x := p.parseExpr()
	if _, bad := x.(*ast.BadExpr); bad {
		p.resyncStatement()
		return &ast.ExprStmt{Sp: ast.Sp{S: x.Span()}, X: x}
	}
	p.parseSemicolon()
	return &ast.ExprStmt{Sp: ast.Sp{S: x.Span()}, X: x}
}

func spanOf(n ast.Node, fallback source.Span) source.Span {
	if n == nil {
		return fallback
	}
	return n.Span()
}
