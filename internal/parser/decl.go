package parser

import (
	"hostbridge/internal/ast"
	"hostbridge/internal/diag"
	"hostbridge/internal/lexer"
	"hostbridge/internal/source"
	"hostbridge/internal/token"
)

// parseImport:
//
//	import "m";
//	import * as ns from "m";
//	import { a, b as c } from "m";
func (p *Parser) parseImport() ast.Stmt {
	kw := p.advance()
	p.isModule = true
	decl := &ast.ImportDecl{}

	switch {
	case p.at(token.StringLit):
		// side-effect import
	case p.eat(token.Star):
		if !p.peek().IsContextual("as") {
			p.expect(token.Ident)
			p.resyncStatement()
			return nil
		}
		p.advance()
		decl.Namespace = p.parseIdent()
		p.expectFrom()
	case p.at(token.LBrace):
		p.advance()
		for !p.atOr(token.RBrace, token.EOF) {
			nameTok := p.peek()
			if nameTok.Kind != token.Ident && !nameTok.IsKeyword() {
				p.err(diag.SynIdentifierExpected)
				break
			}
			p.advance()
			spec := &ast.ImportSpec{Name: p.newIdent(nameTok)}
			spec.Local = spec.Name
			if p.peek().IsContextual("as") {
				p.advance()
				if local := p.parseIdent(); local != nil {
					spec.Local = local
				}
			}
			spec.S = spec.Name.S.Cover(spec.Local.S)
			decl.Named = append(decl.Named, spec)
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expect(token.RBrace)
		p.expectFrom()
	default:
		p.expect(token.LBrace)
		p.resyncStatement()
		return nil
	}

	specTok, ok := p.expect(token.StringLit)
	if !ok {
		p.resyncStatement()
		return nil
	}
	decl.Specifier = lexer.StringValue(specTok.Text)
	decl.SpecifierSpan = ast.Sp{S: specTok.Span}
	p.parseSemicolon()
	decl.S = kw.Span.Cover(specTok.Span)
	p.imports = append(p.imports, decl)
	return decl
}

func (p *Parser) expectFrom() {
	if p.peek().IsContextual("from") {
		p.advance()
		return
	}
	sp := p.getDiagnosticSpan()
	p.report(diag.Newf(diag.SynTokenExpected, p.file, sp, "from"))
}

// parseExport: export (function | let | const | var | declare ...)
func (p *Parser) parseExport(decorators []*ast.Decorator) ast.Stmt {
	kw := p.advance()
	p.isModule = true
	ambient := p.opts.Declaration
	switch tok := p.peek(); {
	case tok.Kind == token.KwFunction:
		return p.parseFunc(kw.Span, decorators, true, ambient)
	case tok.Kind == token.KwLet || tok.Kind == token.KwConst || tok.Kind == token.KwVar:
		if len(decorators) > 0 {
			p.errAt(diag.SynDecoratorsNotValid, decorators[0].S)
		}
		return p.parseVar(kw.Span, true, ambient)
	case tok.IsContextual("declare") && p.declareFollows():
		return p.parseDeclare(kw.Span, true)
	}
	p.err(diag.SynDeclarationExpected)
	p.resyncStatement()
	return nil
}

// parseDeclare: declare (function | let | const | var)
func (p *Parser) parseDeclare(start source.Span, exported bool) ast.Stmt {
	p.advance()
	if p.at(token.KwFunction) {
		return p.parseFunc(start, nil, exported, true)
	}
	return p.parseVar(start, exported, true)
}

// parseDecorated: @expr ... function
func (p *Parser) parseDecorated(top bool) ast.Stmt {
	var decorators []*ast.Decorator
	for p.at(token.At) {
		at := p.advance()
		x := p.parsePostfix()
		decorators = append(decorators, &ast.Decorator{Sp: ast.Sp{S: at.Span.Cover(x.Span())}, X: x})
	}
	switch {
	case p.at(token.KwFunction):
		return p.parseFunc(decorators[0].S, decorators, false, p.opts.Declaration && top)
	case p.at(token.KwExport):
		if !top {
			p.err(diag.SynExportNotTopLevel)
		}
		return p.parseExport(decorators)
	}
	p.errAt(diag.SynDecoratorsNotValid, decorators[0].S)
	return p.parseStatement(top)
}

// parseVar: (let|const|var) name (: T)? (= init)? ;
func (p *Parser) parseVar(start source.Span, exported, ambient bool) ast.Stmt {
	kw := p.advance()
	decl := &ast.VarDecl{Exported: exported, Declare: ambient}
	switch kw.Kind {
	case token.KwConst:
		decl.Kind = ast.VarConst
	case token.KwVar:
		decl.Kind = ast.VarVar
	default:
		decl.Kind = ast.VarLet
	}
	decl.Name = p.parseIdent()
	if decl.Name == nil {
		p.resyncStatement()
		return nil
	}
	end := decl.Name.S
	if p.eat(token.Colon) {
		decl.Type = p.parseType()
		end = decl.Type.Span()
	}
	if p.eat(token.Assign) {
		decl.Init = p.parseAssign()
		end = decl.Init.Span()
		if ambient {
			p.errAt(diag.SynInitializerInAmbient, decl.Init.Span())
		}
	} else if decl.Kind == ast.VarConst && !ambient {
		p.errAt(diag.SynConstMustBeInitialized, decl.Name.S)
	}
	p.parseSemicolon()
	decl.S = start.Cover(kw.Span).Cover(end)
	return decl
}

// parseFunc: function name(params) (: T)? { body } | ;
func (p *Parser) parseFunc(start source.Span, decorators []*ast.Decorator, exported, ambient bool) ast.Stmt {
	kw := p.advance()
	fn := &ast.FuncDecl{Exported: exported, Declare: ambient, Decorators: decorators}
	fn.Name = p.parseIdent()
	if fn.Name == nil {
		p.resyncStatement()
		return nil
	}
	fn.Params = p.parseParams()
	end := p.lastSpan
	if p.eat(token.Colon) {
		fn.Result = p.parseType()
		end = fn.Result.Span()
	}

	switch {
	case p.at(token.LBrace):
		if ambient {
			p.errAt(diag.SynAmbientImplementation, p.peek().Span)
		}
		p.fnDepth++
		body := p.parseBlock()
		p.fnDepth--
		if !ambient {
			fn.Body = body
		}
		end = body.S
	case ambient:
		p.parseSemicolon()
	default:
		p.expect(token.LBrace)
		p.resyncStatement()
	}
	fn.S = start.Cover(kw.Span).Cover(end)
	return fn
}

// parseParams: ( [...]name[?][: T], ... )
func (p *Parser) parseParams() []*ast.Param {
	if _, ok := p.expect(token.LParen); !ok {
		return nil
	}
	var params []*ast.Param
	seenOptional := false
	for !p.atOr(token.RParen, token.EOF) {
		param := &ast.Param{}
		startTok := p.peek()
		if p.eat(token.DotDotDot) {
			param.Rest = true
		}
		param.Name = p.parseIdent()
		if param.Name == nil {
			break
		}
		if p.eat(token.Question) {
			param.Optional = true
			if param.Rest {
				p.errAt(diag.SynParameterCannotBeOptional, param.Name.S)
			}
		}
		if p.eat(token.Colon) {
			param.Type = p.parseType()
		}
		param.S = startTok.Span.Cover(p.lastSpan)
		if !param.Optional && !param.Rest && seenOptional {
			p.errAt(diag.SynOptionalAfterRequired, param.Name.S)
		}
		seenOptional = seenOptional || param.Optional
		params = append(params, param)
		if !p.eat(token.Comma) {
			break
		}
		if param.Rest {
			p.errAt(diag.SynRestParamMustBeLast, param.S)
		}
	}
	p.expect(token.RParen)
	return params
}
