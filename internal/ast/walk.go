package ast

// Inspect walks statements and expressions depth-first, calling fn for each
// node. Returning false from fn skips the node's children. Type nodes are not visited.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch x := n.(type) {
	case *File:
		for _, s := range x.Stmts {
			Inspect(s, fn)
		}
	case *VarDecl:
		if x.Init != nil {
			Inspect(x.Init, fn)
		}
	case *FuncDecl:
		for _, d := range x.Decorators {
			Inspect(d.X, fn)
		}
		if x.Body != nil {
			Inspect(x.Body, fn)
		}
	case *Block:
		for _, s := range x.Stmts {
			Inspect(s, fn)
		}
	case *IfStmt:
		Inspect(x.Cond, fn)
		Inspect(x.Then, fn)
		if x.Else != nil {
			Inspect(x.Else, fn)
		}
	case *WhileStmt:
		Inspect(x.Cond, fn)
		Inspect(x.Body, fn)
	case *ReturnStmt:
		if x.Value != nil {
			Inspect(x.Value, fn)
		}
	case *ExprStmt:
		Inspect(x.X, fn)
	case *ArrayLit:
		for _, e := range x.Elems {
			Inspect(e, fn)
		}
	case *ParenExpr:
		Inspect(x.X, fn)
	case *UnaryExpr:
		Inspect(x.X, fn)
	case *BinaryExpr:
		Inspect(x.X, fn)
		Inspect(x.Y, fn)
	case *AssignExpr:
		Inspect(x.Target, fn)
		Inspect(x.Value, fn)
	case *CallExpr:
		Inspect(x.Callee, fn)
		for _, a := range x.Args {
			Inspect(a, fn)
		}
	case *MemberExpr:
		Inspect(x.X, fn)
	case *IndexExpr:
		Inspect(x.X, fn)
		Inspect(x.Index, fn)
	}
}
