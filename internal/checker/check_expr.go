package checker

import (
	"fmt"

	"hostbridge/internal/ast"
	"hostbridge/internal/diag"
	"hostbridge/internal/source"
	"hostbridge/internal/token"
	"hostbridge/internal/types"
)

func (c *Checker) checkExpr(scope *Scope, x ast.Expr) types.TypeID {
	b := c.types.Builtins()
	switch e := x.(type) {
	case nil:
		return b.Any
	case *ast.Ident:
		return c.checkIdent(scope, e, true)
	case *ast.NumberLit:
		return b.Number
	case *ast.StringLit:
		return b.String
	case *ast.BoolLit:
		return b.Boolean
	case *ast.NullLit:
		return b.Null
	case *ast.ArrayLit:
		return c.checkArrayLit(scope, e)
	case *ast.ParenExpr:
		return c.checkExpr(scope, e.X)
	case *ast.UnaryExpr:
		c.checkExpr(scope, e.X)
		if e.Op == token.Bang {
			return b.Boolean
		}
		return b.Number
	case *ast.BinaryExpr:
		return c.checkBinary(scope, e)
	case *ast.AssignExpr:
		return c.checkAssign(scope, e)
	case *ast.CallExpr:
		return c.checkCall(scope, e)
	case *ast.MemberExpr:
		return c.checkMember(scope, e)
	case *ast.IndexExpr:
		return c.checkIndex(scope, e)
	}
	return b.Any
}

func (c *Checker) checkIdent(scope *Scope, id *ast.Ident, read bool) types.TypeID {
	sym := scope.Lookup(id.Name)
	if sym == nil {
		c.report(diag.Newf(diag.SemaCannotFindName, c.file.Source, id.S, id.Name))
		return c.types.Builtins().Any
	}
	if read {
		sym.Used = true
	}
	return c.typeOfSymbol(sym)
}

func (c *Checker) checkArrayLit(scope *Scope, e *ast.ArrayLit) types.TypeID {
	b := c.types.Builtins()
	elem := types.NoTypeID
	for _, el := range e.Elems {
		t := c.widen(c.checkExpr(scope, el))
		switch {
		case elem == types.NoTypeID:
			elem = t
		case elem != t:
			elem = b.Any
		}
	}
	if elem == types.NoTypeID {
		elem = b.Any
	}
	return c.types.Array(elem)
}

func (c *Checker) checkBinary(scope *Scope, e *ast.BinaryExpr) types.TypeID {
	b := c.types.Builtins()
	lt := c.checkExpr(scope, e.X)
	rt := c.checkExpr(scope, e.Y)
	switch e.Op {
	case token.Plus:
		if t, ok := c.types.AddResult(lt, rt); ok {
			return t
		}
		c.reportOperator(e, lt, rt)
		return b.Any
	case token.Minus, token.Star, token.Slash, token.Percent:
		if !c.types.IsNumeric(lt) {
			c.report(diag.Newf(diag.SemaArithmeticLeft, c.file.Source, e.X.Span()))
		}
		if !c.types.IsNumeric(rt) {
			c.report(diag.Newf(diag.SemaArithmeticRight, c.file.Source, e.Y.Span()))
		}
		return b.Number
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		if !c.types.Orderable(lt, rt) {
			c.reportOperator(e, lt, rt)
		}
		return b.Boolean
	case token.EqEq, token.BangEq, token.EqEqEq, token.BangEqEq:
		if !c.rel.Comparable(lt, rt) {
			c.report(diag.Newf(diag.SemaComparisonNoOverlap, c.file.Source, e.S,
				types.Label(c.types, lt), types.Label(c.types, rt)))
		}
		return b.Boolean
	case token.AndAnd:
		return rt
	case token.OrOr:
		if lt == rt {
			return lt
		}
		return b.Any
	}
	return b.Any
}

func (c *Checker) reportOperator(e *ast.BinaryExpr, lt, rt types.TypeID) {
	c.report(diag.Newf(diag.SemaOperatorNotApplicable, c.file.Source, e.S,
		e.Op.String(), types.Label(c.types, lt), types.Label(c.types, rt)))
}

func (c *Checker) checkAssign(scope *Scope, e *ast.AssignExpr) types.TypeID {
	var target types.TypeID
	switch t := e.Target.(type) {
	case *ast.Ident:
		target = c.checkIdent(scope, t, false)
		if sym := scope.Lookup(t.Name); sym != nil {
			switch sym.Kind {
			case SymConst:
				c.report(diag.Newf(diag.SemaAssignToConstant, c.file.Source, t.S, t.Name))
			case SymFunc:
				c.report(diag.Newf(diag.SemaAssignToFunction, c.file.Source, t.S, t.Name))
			case SymImport, SymNamespace:
				c.report(diag.Newf(diag.SemaAssignToImport, c.file.Source, t.S, t.Name))
			}
		}
	case *ast.MemberExpr, *ast.IndexExpr:
		target = c.checkExpr(scope, e.Target)
	default:
		c.checkExpr(scope, e.Target)
		c.report(diag.Newf(diag.SemaInvalidAssignTarget, c.file.Source, e.Target.Span()))
		return c.checkExpr(scope, e.Value)
	}
	vt := c.checkExpr(scope, e.Value)
	c.checkAssignable(vt, target, e.Target.Span(), diag.SemaTypeNotAssignable)
	return vt
}

func (c *Checker) checkCall(scope *Scope, e *ast.CallExpr) types.TypeID {
	b := c.types.Builtins()
	callee := c.checkExpr(scope, e.Callee)
	argTypes := make([]types.TypeID, len(e.Args))
	for i, a := range e.Args {
		argTypes[i] = c.checkExpr(scope, a)
	}
	if c.types.IsAny(callee) {
		return b.Any
	}
	info, ok := c.types.FnInfo(callee)
	if !ok {
		c.report(diag.Newf(diag.SemaNotCallable, c.file.Source, e.Callee.Span()).WithChain(diag.MessageChain{
			Message: fmt.Sprintf("Type '%s' has no call signatures.", types.Label(c.types, callee)),
		}))
		return b.Any
	}

	argc, lo, hi := len(e.Args), info.MinArgs(), info.MaxArgs()
	switch {
	case argc < lo && hi < 0:
		c.report(diag.Newf(diag.SemaExpectedAtLeastArguments, c.file.Source, e.Callee.Span(), lo, argc))
		return info.Result
	case argc < lo:
		c.report(diag.Newf(diag.SemaExpectedArguments, c.file.Source, e.Callee.Span(), arityRange(lo, hi), argc))
		return info.Result
	case hi >= 0 && argc > hi:
		excess := source.Span{Start: e.Args[hi].Span().Start, End: e.Args[argc-1].Span().End}
		c.report(diag.Newf(diag.SemaExpectedArguments, c.file.Source, excess, arityRange(lo, hi), argc))
		return info.Result
	}

	for i, a := range e.Args {
		c.checkAssignable(argTypes[i], paramTypeAt(c.types, info, i), a.Span(), diag.SemaArgumentNotAssignable)
	}
	return info.Result
}

func arityRange(lo, hi int) string {
	if lo == hi {
		return fmt.Sprint(lo)
	}
	return fmt.Sprintf("%d-%d", lo, hi)
}

func paramTypeAt(in *types.Interner, info *types.FnInfo, i int) types.TypeID {
	if i >= len(info.Params) {
		i = len(info.Params) - 1
	}
	p := info.Params[i]
	if p.Rest {
		if elem := in.ElemOf(p.Type); elem != types.NoTypeID {
			return elem
		}
		return in.Builtins().Any
	}
	return p.Type
}

func (c *Checker) checkMember(scope *Scope, e *ast.MemberExpr) types.TypeID {
	b := c.types.Builtins()
	obj := c.checkExpr(scope, e.X)
	if c.types.IsAny(obj) {
		return b.Any
	}
	if c.types.KindOf(obj) == types.KindNull && c.cfg.StrictNullChecks {
		c.report(diag.Newf(diag.SemaObjectPossiblyNull, c.file.Source, e.X.Span()))
		return b.Any
	}
	if t, ok := c.memberType(obj, e.Name.Name); ok {
		return t
	}
	c.report(diag.Newf(diag.SemaPropertyNotExist, c.file.Source, e.Name.S, e.Name.Name, types.Label(c.types, obj)))
	return b.Any
}

func (c *Checker) checkIndex(scope *Scope, e *ast.IndexExpr) types.TypeID {
	b := c.types.Builtins()
	obj := c.checkExpr(scope, e.X)
	c.checkExpr(scope, e.Index)
	switch c.types.KindOf(obj) {
	case types.KindArray:
		return c.types.ElemOf(obj)
	case types.KindString:
		return b.String
	}
	return b.Any
}

// checkAssignable reports code at sp when src does not fit dst.
func (c *Checker) checkAssignable(src, dst types.TypeID, sp source.Span, code diag.Code) {
	ok, why := c.rel.Assignable(src, dst)
	if ok {
		return
	}
	d := diag.Newf(code, c.file.Source, sp, types.Label(c.types, src), types.Label(c.types, dst))
	c.report(d.WithChain(toChain(why)...))
}

func toChain(els []types.Elaboration) []diag.MessageChain {
	if len(els) == 0 {
		return nil
	}
	out := make([]diag.MessageChain, 0, len(els))
	for _, el := range els {
		out = append(out, diag.MessageChain{Message: el.Message, Next: toChain(el.Next)})
	}
	return out
}
