package checker

import (
	"strings"

	"hostbridge/internal/ast"
	"hostbridge/internal/diag"
	"hostbridge/internal/types"
)

func (c *Checker) checkStmt(scope *Scope, st ast.Stmt) {
	switch s := st.(type) {
	case *ast.ImportDecl:
		c.checkImport(s)
	case *ast.VarDecl:
		c.checkVarDecl(scope, s)
	case *ast.FuncDecl:
		c.checkFuncDecl(scope, s)
	case *ast.Block:
		c.checkBlock(scope, s.Stmts)
	case *ast.IfStmt:
		c.checkExpr(scope, s.Cond)
		c.checkNested(scope, s.Then)
		c.checkNested(scope, s.Else)
	case *ast.WhileStmt:
		c.checkExpr(scope, s.Cond)
		c.checkNested(scope, s.Body)
	case *ast.ReturnStmt:
		c.checkReturn(scope, s)
	case *ast.ExprStmt:
		c.checkExpr(scope, s.X)
	}
}

// checkNested checks the body of if/while; a lone declaration gets its own scope.
func (c *Checker) checkNested(scope *Scope, st ast.Stmt) {
	if st == nil {
		return
	}
	if _, isBlock := st.(*ast.Block); isBlock {
		c.checkStmt(scope, st)
		return
	}
	c.checkBlock(scope, []ast.Stmt{st})
}

func (c *Checker) checkBlock(parent *Scope, stmts []ast.Stmt) {
	scope := newScope(ScopeBlock, parent)
	c.bindInto(scope, stmts)
	for _, st := range stmts {
		c.checkStmt(scope, st)
	}
	c.reportUnused(scope)
}

// bindInto hoists stmts into scope, reporting clashes to the current sink.
func (c *Checker) bindInto(scope *Scope, stmts []ast.Stmt) {
	var out []diag.Diagnostic
	c.bindStmts(scope, c.file, stmts, &out)
	for _, d := range out {
		c.report(d)
	}
}

func (c *Checker) checkImport(d *ast.ImportDecl) {
	target, ok := c.resolve(c.file, d.Specifier)
	if !ok {
		c.report(diag.Newf(diag.SemaCannotFindModule, c.file.Source, d.SpecifierSpan.S, d.Specifier))
		return
	}
	if len(d.Named) == 0 && d.Namespace == nil {
		return
	}
	if !target.IsModule {
		c.report(diag.Newf(diag.SemaNotAModule, c.file.Source, d.SpecifierSpan.S, target.Path()))
		return
	}
	for _, spec := range d.Named {
		if c.exportOfFile(target, spec.Name.Name) == nil {
			c.report(diag.Newf(diag.SemaNoExportedMember, c.file.Source, spec.Name.S, d.Specifier, spec.Name.Name))
		}
	}
}

func (c *Checker) checkVarDecl(scope *Scope, d *ast.VarDecl) {
	if d.Name == nil {
		return
	}
	var declared types.TypeID
	if d.Type != nil {
		declared = c.resolveType(d.Type)
	}
	if d.Init != nil {
		initT := c.checkExpr(scope, d.Init)
		if declared != types.NoTypeID {
			c.checkAssignable(initT, declared, d.Name.S, diag.SemaTypeNotAssignable)
		} else {
			declared = c.widen(initT)
		}
	}
	if declared == types.NoTypeID {
		declared = c.types.Builtins().Any
	}
	sym := scope.LookupLocal(d.Name.Name)
	if sym != nil && sym.Decl == d && sym.state != stateResolved {
		sym.typ, sym.state = declared, stateResolved
	}
}

func (c *Checker) checkFuncDecl(scope *Scope, d *ast.FuncDecl) {
	if d.Name == nil {
		return
	}
	if c.fn != nil && c.fn.inferring {
		return
	}
	for _, dec := range d.Decorators {
		if !c.cfg.ExperimentalDecorators {
			c.report(diag.Newf(diag.SemaDecoratorsExperimental, c.file.Source, dec.S))
		}
		c.checkExpr(scope, dec.X)
	}

	// аннотации проверяем с репортингом; тип символа считается лениво и тихо
	for _, p := range d.Params {
		if p.Type != nil {
			c.resolveType(p.Type)
		}
	}
	if d.Result != nil {
		c.resolveType(d.Result)
	}
	sym := c.declSyms[d]
	fnT := c.types.Builtins().Any
	if sym != nil {
		fnT = c.typeOfSymbol(sym)
	}
	if d.Body == nil {
		return
	}

	info, _ := c.types.FnInfo(fnT)
	body := newScope(ScopeFunction, scope)
	var clashes []diag.Diagnostic
	c.bindParams(body, c.file, d.Params, &clashes)
	c.bindStmts(body, c.file, d.Body.Stmts, &clashes)
	for _, cd := range clashes {
		c.report(cd)
	}

	prevFn := c.fn
	ctx := &fnContext{result: c.types.Builtins().Any, annotated: d.Result != nil}
	if info != nil {
		ctx.result = info.Result
	}
	c.fn = ctx
	for _, st := range d.Body.Stmts {
		c.checkStmt(body, st)
	}
	c.fn = prevFn
	c.reportUnused(body)

	if !ctx.annotated {
		return
	}
	switch c.types.KindOf(ctx.result) {
	case types.KindVoid, types.KindAny:
		return
	}
	if ctx.valueCount == 0 {
		c.report(diag.Newf(diag.SemaFunctionMustReturn, c.file.Source, d.Result.Span()))
	} else if !alwaysReturns(d.Body.Stmts) {
		c.report(diag.Newf(diag.SemaLacksEndingReturn, c.file.Source, d.Result.Span()))
	}
}

func (c *Checker) checkReturn(scope *Scope, s *ast.ReturnStmt) {
	if s.Value == nil {
		return
	}
	t := c.checkExpr(scope, s.Value)
	if c.fn == nil {
		return
	}
	c.fn.valueCount++
	if c.fn.inferring {
		c.fn.returns = append(c.fn.returns, t)
		return
	}
	if c.fn.annotated {
		c.checkAssignable(t, c.fn.result, s.Value.Span(), diag.SemaTypeNotAssignable)
	}
}

// alwaysReturns reports whether every path through stmts ends in a return.
func alwaysReturns(stmts []ast.Stmt) bool {
	for _, st := range stmts {
		switch s := st.(type) {
		case *ast.ReturnStmt:
			return true
		case *ast.Block:
			if alwaysReturns(s.Stmts) {
				return true
			}
		case *ast.IfStmt:
			if s.Else != nil && alwaysReturns([]ast.Stmt{s.Then}) && alwaysReturns([]ast.Stmt{s.Else}) {
				return true
			}
		}
	}
	return false
}

// reportUnused flags locals that are never read.
func (c *Checker) reportUnused(scope *Scope) {
	if c.fn != nil && c.fn.inferring {
		return
	}
	sev := diag.SevSuggestion
	if c.cfg.NoUnusedLocals {
		sev = diag.SevError
	}
	for _, sym := range scope.Symbols() {
		if sym.Used || sym.Exported || sym.Kind == SymParam || sym.Ambient || strings.HasPrefix(sym.Name, "_") {
			continue
		}
		if sym.File != c.file {
			continue
		}
		c.report(diag.Newf(diag.SemaDeclaredNeverRead, c.file.Source, sym.NameSpan, sym.Name).WithSeverity(sev))
	}
}
