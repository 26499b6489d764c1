package parser

import (
	"hostbridge/internal/ast"
	"hostbridge/internal/diag"
	"hostbridge/internal/token"
)

// parseType:
//
//	Type     = Primary { "[" "]" } .
//	Primary  = Ident | "null" | "void" | FuncType | "(" Type ")" .
//	FuncType = "(" Params ")" "=>" Type .
func (p *Parser) parseType() ast.TypeNode {
	var t ast.TypeNode
	tok := p.peek()
	switch {
	case tok.Kind == token.Ident:
		p.advance()
		t = &ast.TypeRef{Sp: ast.Sp{S: tok.Span}, Name: tok.Text}
	case tok.Kind == token.KwNull:
		p.advance()
		t = &ast.TypeRef{Sp: ast.Sp{S: tok.Span}, Name: "null"}
	case tok.Kind == token.LParen && p.looksLikeFuncType():
		t = p.parseFuncType()
	case tok.Kind == token.LParen:
		p.advance()
		inner := p.parseType()
		p.expect(token.RParen)
		t = inner
	default:
		p.err(diag.SynTypeExpected)
		return &ast.TypeRef{Sp: ast.Sp{S: p.getDiagnosticSpan()}}
	}

	for p.at(token.LBracket) && p.peekN(1).Kind == token.RBracket {
		p.advance()
		closeTok := p.advance()
		t = &ast.ArrayType{Sp: ast.Sp{S: t.Span().Cover(closeTok.Span)}, Elem: t}
	}
	return t
}

// looksLikeFuncType смотрит за '(' и решает, начинается ли тип функции.
func (p *Parser) looksLikeFuncType() bool {
	next := p.peekN(1)
	switch next.Kind {
	case token.DotDotDot:
		return true
	case token.RParen:
		return p.peekN(2).Kind == token.Arrow
	case token.Ident:
		switch p.peekN(2).Kind {
		case token.Colon, token.Question, token.Comma:
			return true
		case token.RParen:
			return p.peekN(3).Kind == token.Arrow
		}
	}
	return false
}

func (p *Parser) parseFuncType() ast.TypeNode {
	start := p.peek().Span
	params := p.parseParams()
	p.expect(token.Arrow)
	result := p.parseType()
	return &ast.FuncType{Sp: ast.Sp{S: start.Cover(result.Span())}, Params: params, Result: result}
}
