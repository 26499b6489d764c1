package checker

import (
	"hostbridge/internal/ast"
	"hostbridge/internal/diag"
	"hostbridge/internal/types"
)

// resolveType turns an annotation into a TypeID; nil means any.
func (c *Checker) resolveType(n ast.TypeNode) types.TypeID {
	b := c.types.Builtins()
	switch t := n.(type) {
	case nil:
		return b.Any
	case *ast.TypeRef:
		switch t.Name {
		case "", "any", "unknown", "object":
			return b.Any
		case "number":
			return b.Number
		case "string":
			return b.String
		case "boolean":
			return b.Boolean
		case "void", "undefined":
			return b.Void
		case "null":
			return b.Null
		}
		c.report(diag.Newf(diag.SemaCannotFindName, c.file.Source, t.S, t.Name))
		return b.Any
	case *ast.ArrayType:
		return c.types.Array(c.resolveType(t.Elem))
	case *ast.FuncType:
		return c.types.RegisterFn(c.resolveParams(t.Params), c.resolveType(t.Result))
	}
	return b.Any
}

func (c *Checker) resolveParams(params []*ast.Param) []types.Param {
	out := make([]types.Param, 0, len(params))
	for _, p := range params {
		if p.Name == nil {
			continue
		}
		out = append(out, types.Param{
			Name:     p.Name.Name,
			Type:     c.paramType(p),
			Optional: p.Optional,
			Rest:     p.Rest,
		})
	}
	return out
}

func (c *Checker) paramType(p *ast.Param) types.TypeID {
	if p.Type == nil && p.Rest {
		return c.types.Array(c.types.Builtins().Any)
	}
	return c.resolveType(p.Type)
}

// widen maps the type of an initializer to the declared type of an unannotated variable.
func (c *Checker) widen(t types.TypeID) types.TypeID {
	b := c.types.Builtins()
	switch c.types.KindOf(t) {
	case types.KindNull:
		if !c.cfg.StrictNullChecks {
			return b.Any
		}
	case types.KindVoid, types.KindInvalid:
		return b.Any
	}
	return t
}

// typeOfSymbol computes a symbol's type on demand. Cycles resolve to any.
func (c *Checker) typeOfSymbol(sym *Symbol) types.TypeID {
	b := c.types.Builtins()
	switch sym.state {
	case stateResolved:
		return sym.typ
	case stateResolving:
		return b.Any
	}
	sym.state = stateResolving
	t := b.Any
	c.quietly(sym.File, func() {
		t = c.computeSymbolType(sym)
	})
	if sym.state != stateResolved {
		sym.typ, sym.state = t, stateResolved
	}
	return sym.typ
}

func (c *Checker) computeSymbolType(sym *Symbol) types.TypeID {
	b := c.types.Builtins()
	switch d := sym.Decl.(type) {
	case *ast.VarDecl:
		if d.Type != nil {
			return c.resolveType(d.Type)
		}
		if d.Init != nil {
			return c.widen(c.checkExpr(sym.Scope, d.Init))
		}
	case *ast.FuncDecl:
		return c.funcType(sym, d)
	case *ast.Param:
		return c.paramType(d)
	case *ast.ImportSpec:
		if target := c.exportOf(sym.File, sym.importDecl.Specifier, d.Name.Name); target != nil {
			return c.typeOfSymbol(target)
		}
	case *ast.ImportDecl:
		if target, ok := c.resolve(sym.File, d.Specifier); ok && target.IsModule {
			return c.types.Module(target.Path())
		}
	}
	return b.Any
}

// exportOf finds the exported symbol name of the module imported by specifier.
func (c *Checker) exportOf(from *ast.File, specifier, name string) *Symbol {
	target, ok := c.resolve(from, specifier)
	if !ok || !target.IsModule {
		return nil
	}
	return c.exportOfFile(target, name)
}

func (c *Checker) exportOfFile(target *ast.File, name string) *Symbol {
	sym := c.moduleScope(target).LookupLocal(name)
	if sym == nil || !sym.Exported {
		return nil
	}
	return sym
}

// funcType builds the signature; an unannotated result is inferred from the body.
func (c *Checker) funcType(sym *Symbol, d *ast.FuncDecl) types.TypeID {
	b := c.types.Builtins()
	params := c.resolveParams(d.Params)
	var result types.TypeID
	switch {
	case d.Result != nil:
		result = c.resolveType(d.Result)
	case d.Body == nil:
		result = b.Any
	default:
		result = c.inferResult(sym, d)
	}
	return c.types.RegisterFn(params, result)
}

func (c *Checker) inferResult(sym *Symbol, d *ast.FuncDecl) types.TypeID {
	b := c.types.Builtins()
	parent := sym.Scope
	if parent == nil {
		parent = c.global
	}
	scope := newScope(ScopeFunction, parent)
	c.inferDepth++
	defer func() { c.inferDepth-- }()
	var ignored []diag.Diagnostic
	c.bindParams(scope, sym.File, d.Params, &ignored)
	c.bindStmts(scope, sym.File, d.Body.Stmts, &ignored)
	c.fn = &fnContext{inferring: true}
	for _, st := range d.Body.Stmts {
		c.checkStmt(scope, st)
	}
	if len(c.fn.returns) == 0 {
		return b.Void
	}
	return c.widen(c.fn.returns[0])
}

func (c *Checker) bindParams(scope *Scope, f *ast.File, params []*ast.Param, out *[]diag.Diagnostic) {
	for _, p := range params {
		if p.Name == nil {
			continue
		}
		sym := &Symbol{Name: p.Name.Name, Kind: SymParam, File: f, Decl: p, NameSpan: p.Name.S}
		sym.typ, sym.state = c.paramType(p), stateResolved
		c.declare(scope, sym, out)
	}
}
