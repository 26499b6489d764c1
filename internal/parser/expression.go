package parser

import (
	"strconv"
	"strings"

	"hostbridge/internal/ast"
	"hostbridge/internal/diag"
	"hostbridge/internal/lexer"
	"hostbridge/internal/token"
)

// binaryPrec возвращает приоритет бинарного оператора; 0 - не бинарный.
func binaryPrec(k token.Kind) int {
	switch k {
	case token.OrOr:
		return 1
	case token.AndAnd:
		return 2
	case token.EqEq, token.EqEqEq, token.BangEq, token.BangEqEq:
		return 3
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return 4
	case token.Plus, token.Minus:
		return 5
	case token.Star, token.Slash, token.Percent:
		return 6
	default:
		return 0
	}
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssign()
}

// parseAssign: правоассоциативное присваивание поверх бинарных выражений.
func (p *Parser) parseAssign() ast.Expr {
	lhs := p.parseBinary(1)
	if !p.at(token.Assign) {
		return lhs
	}
	p.advance()
	rhs := p.parseAssign()
	return &ast.AssignExpr{Sp: ast.Sp{S: lhs.Span().Cover(rhs.Span())}, Target: lhs, Value: rhs}
}

// parseBinary - precedence climbing; все бинарные операторы левоассоциативны.
func (p *Parser) parseBinary(minPrec int) ast.Expr {
	x := p.parseUnary()
	for {
		op := p.peek()
		prec := binaryPrec(op.Kind)
		if prec == 0 || prec < minPrec {
			return x
		}
		p.advance()
		y := p.parseBinary(prec + 1)
		x = &ast.BinaryExpr{
			Sp:     ast.Sp{S: x.Span().Cover(y.Span())},
			Op:     op.Kind,
			OpSpan: ast.Sp{S: op.Span},
			X:      x,
			Y:      y,
		}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	switch tok := p.peek(); tok.Kind {
	case token.Bang, token.Minus, token.Plus:
		p.advance()
		x := p.parseUnary()
		return &ast.UnaryExpr{Sp: ast.Sp{S: tok.Span.Cover(x.Span())}, Op: tok.Kind, X: x}
	}
	return p.parsePostfix()
}

// parsePostfix: primary, затем цепочка вызовов, обращений к полям и индексов.
func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	if _, bad := x.(*ast.BadExpr); bad {
		return x
	}
	for {
		switch p.peek().Kind {
		case token.LParen:
			p.advance()
			args := p.parseExprList(token.RParen)
			closeTok, _ := p.expect(token.RParen)
			x = &ast.CallExpr{Sp: ast.Sp{S: x.Span().Cover(closeTok.Span)}, Callee: x, Args: args}
		case token.Dot:
			p.advance()
			nameTok := p.peek()
			if nameTok.Kind != token.Ident && !nameTok.IsKeyword() {
				p.err(diag.SynIdentifierExpected)
				return x
			}
			p.advance()
			name := p.newIdent(nameTok)
			x = &ast.MemberExpr{Sp: ast.Sp{S: x.Span().Cover(name.S)}, X: x, Name: name}
		case token.LBracket:
			p.advance()
			idx := p.parseExpr()
			closeTok, _ := p.expect(token.RBracket)
			x = &ast.IndexExpr{Sp: ast.Sp{S: x.Span().Cover(closeTok.Span)}, X: x, Index: idx}
		default:
			return x
		}
	}
}

// parseExprList разбирает элементы через запятую до закрывающего токена (не съедая его).
func (p *Parser) parseExprList(closing token.Kind) []ast.Expr {
	var list []ast.Expr
	for !p.atOr(closing, token.EOF) {
		x := p.parseAssign()
		list = append(list, x)
		if _, bad := x.(*ast.BadExpr); bad {
			break
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	return list
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	sp := ast.Sp{S: tok.Span}
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.newIdent(tok)
	case token.NumberLit:
		p.advance()
		return &ast.NumberLit{Sp: sp, Text: tok.Text, Value: parseNumber(tok.Text)}
	case token.StringLit:
		p.advance()
		return &ast.StringLit{Sp: sp, Text: tok.Text, Value: lexer.StringValue(tok.Text)}
	case token.KwTrue, token.KwFalse:
		p.advance()
		return &ast.BoolLit{Sp: sp, Value: tok.Kind == token.KwTrue}
	case token.KwNull:
		p.advance()
		return &ast.NullLit{Sp: sp}
	case token.LParen:
		p.advance()
		x := p.parseExpr()
		closeTok, _ := p.expect(token.RParen)
		return &ast.ParenExpr{Sp: ast.Sp{S: tok.Span.Cover(closeTok.Span)}, X: x}
	case token.LBracket:
		p.advance()
		elems := p.parseExprList(token.RBracket)
		closeTok, _ := p.expect(token.RBracket)
		return &ast.ArrayLit{Sp: ast.Sp{S: tok.Span.Cover(closeTok.Span)}, Elems: elems}
	}
	p.err(diag.SynExpressionExpected)
	return &ast.BadExpr{Sp: ast.Sp{S: p.getDiagnosticSpan()}}
}

// parseNumber понимает десятичные, экспоненциальные и 0x/0o/0b литералы; '_' допускается как разделитель.
func parseNumber(text string) float64 {
	clean := strings.ReplaceAll(text, "_", "")
	if len(clean) > 2 && clean[0] == '0' {
		base := 0
		switch clean[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			if v, err := strconv.ParseUint(clean[2:], base, 64); err == nil {
				return float64(v)
			}
			return 0
		}
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return v
}
