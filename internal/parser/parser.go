package parser

import (
	"slices"

	"hostbridge/internal/ast"
	"hostbridge/internal/diag"
	"hostbridge/internal/lexer"
	"hostbridge/internal/source"
	"hostbridge/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	// Reporter additionally receives every diagnostic; may be nil.
	Reporter diag.Reporter
	// Declaration parses the file as an ambient declaration file (".d.ts").
	Declaration bool
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser - состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	opts     Options
	buf      []token.Token // lookahead поверх лексера
	lastSpan source.Span   // span последнего съеденного токена для лучшей диагностики
	bag      *diag.Bag
	fnDepth  int
	isModule bool
	imports  []*ast.ImportDecl
}

// ParseFile - входная точка для разбора одного файла.
// Lexer and parser diagnostics land in the returned File.ParseDiagnostics.
func ParseFile(file *source.File, opts Options) *ast.File {
	p := &Parser{
		file: file,
		opts: opts,
		bag:  diag.NewBag(0),
	}
	p.lx = lexer.New(file, lexer.Options{Reporter: p})

	out := &ast.File{
		Source:        file,
		IsDeclaration: opts.Declaration,
	}
	out.Stmts = p.parseStatements(true)
	out.S = source.Span{Start: 0, End: file.Len()}
	out.IsModule = p.isModule
	out.Imports = p.imports
	out.ParseDiagnostics = slices.Clone(p.bag.Items())
	return out
}

// Report implements diag.Reporter for the lexer: lexical errors count towards MaxErrors.
func (p *Parser) Report(d diag.Diagnostic) {
	if d.Severity == diag.SevError {
		if p.opts.Enough() {
			return
		}
		p.opts.CurrentErrors++
	}
	p.bag.Add(d)
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(d)
	}
}

// parseStatements - основной цикл: пока не EOF (или '}' во вложенном блоке) - parseStatement.
func (p *Parser) parseStatements(top bool) []ast.Stmt {
	stmts := make([]ast.Stmt, 0, 8)
	for !p.at(token.EOF) && (top || !p.at(token.RBrace)) {
		before := p.peek().Span
		stmt := p.parseStatement(top)
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		// гарантия прогресса: если ничего не съели - пропускаем токен
		if p.peek().Span == before && !p.at(token.EOF) {
			if top && p.at(token.RBrace) {
				p.err(diag.SynDeclarationExpected)
			}
			p.advance()
		}
	}
	return stmts
}
