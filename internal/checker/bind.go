package checker

import (
	"hostbridge/internal/ast"
	"hostbridge/internal/diag"
)

func (c *Checker) bindGlobal() {
	if c.globalBound {
		return
	}
	c.globalBound = true
	c.global = newScope(ScopeGlobal, nil)
	for _, f := range c.files {
		if f.IsModule && !c.libs[f] {
			continue
		}
		c.bindStmts(c.global, f, f.Stmts, &c.globalDiags)
	}
}

// moduleScope binds a module's top-level declarations once.
func (c *Checker) moduleScope(f *ast.File) *Scope {
	c.bindGlobal()
	if s, ok := c.modules[f]; ok {
		return s
	}
	s := newScope(ScopeModule, c.global)
	c.modules[f] = s
	var out []diag.Diagnostic
	c.bindStmts(s, f, f.Stmts, &out)
	c.bindDiags[f] = out
	return s
}

// bindStmts hoists the declarations of one statement list into scope.
func (c *Checker) bindStmts(scope *Scope, f *ast.File, stmts []ast.Stmt, out *[]diag.Diagnostic) {
	for _, st := range stmts {
		switch s := st.(type) {
		case *ast.VarDecl:
			if s.Name == nil {
				continue
			}
			kind := SymLet
			switch s.Kind {
			case ast.VarConst:
				kind = SymConst
			case ast.VarVar:
				kind = SymVar
			}
			c.declare(scope, &Symbol{
				Name: s.Name.Name, Kind: kind, File: f, Decl: s, NameSpan: s.Name.S,
				Exported: s.Exported, Ambient: s.Declare || f.IsDeclaration,
			}, out)
		case *ast.FuncDecl:
			if s.Name == nil {
				continue
			}
			c.declare(scope, &Symbol{
				Name: s.Name.Name, Kind: SymFunc, File: f, Decl: s, NameSpan: s.Name.S,
				Exported: s.Exported, Ambient: s.Declare || s.Body == nil || f.IsDeclaration,
			}, out)
		case *ast.ImportDecl:
			for _, spec := range s.Named {
				c.declare(scope, &Symbol{
					Name: spec.Local.Name, Kind: SymImport, File: f, Decl: spec, NameSpan: spec.Local.S,
					importDecl: s,
				}, out)
			}
			if s.Namespace != nil {
				c.declare(scope, &Symbol{
					Name: s.Namespace.Name, Kind: SymNamespace, File: f, Decl: s, NameSpan: s.Namespace.S,
					importDecl: s,
				}, out)
			}
		}
	}
}

// declare inserts sym unless it clashes with an existing declaration.
// Clashing declarations are reported on both sides.
func (c *Checker) declare(scope *Scope, sym *Symbol, out *[]diag.Diagnostic) {
	if sym.Decl != nil && c.inferDepth == 0 {
		if _, isImport := sym.Decl.(*ast.ImportDecl); !isImport {
			c.declSyms[sym.Decl] = sym
		}
	}
	prev := scope.LookupLocal(sym.Name)
	if prev == nil {
		scope.insert(sym)
		return
	}
	code, clash := conflictCode(prev, sym)
	if !clash {
		sym.Scope = scope
		return
	}
	var args []any
	if code != diag.SemaDuplicateFunction {
		args = []any{sym.Name}
	}
	if !prev.conflicted {
		prev.conflicted = true
		*out = append(*out, diag.Newf(code, prev.File.Source, prev.NameSpan, args...))
	}
	sym.conflicted = true
	sym.Scope = scope
	*out = append(*out, diag.Newf(code, sym.File.Source, sym.NameSpan, args...))
}

func conflictCode(prev, next *Symbol) (diag.Code, bool) {
	switch {
	case prev.Kind == SymFunc && next.Kind == SymFunc:
		if !prev.Ambient && !next.Ambient {
			return diag.SemaDuplicateFunction, true
		}
		return 0, false
	case prev.Kind == SymVar && next.Kind == SymVar:
		return 0, false
	case prev.Kind.blockScoped() || next.Kind.blockScoped():
		if prev.Kind == SymParam || prev.Kind == SymImport || prev.Kind == SymNamespace ||
			next.Kind == SymImport || next.Kind == SymNamespace {
			return diag.SemaDuplicateIdentifier, true
		}
		return diag.SemaRedeclareBlockScoped, true
	}
	return diag.SemaDuplicateIdentifier, true
}
