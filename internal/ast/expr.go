package ast

import "hostbridge/internal/token"

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

type NumberLit struct {
	Sp
	Text  string
	Value float64
}

// StringLit keeps the raw text (quotes included) for printing and the decoded value.
type StringLit struct {
	Sp
	Text  string
	Value string
}

type BoolLit struct {
	Sp
	Value bool
}

type NullLit struct {
	Sp
}

type ArrayLit struct {
	Sp
	Elems []Expr
}

type ParenExpr struct {
	Sp
	X Expr
}

type UnaryExpr struct {
	Sp
	Op token.Kind
	X  Expr
}

type BinaryExpr struct {
	Sp
	Op     token.Kind
	OpSpan Sp
	X      Expr
	Y      Expr
}

type AssignExpr struct {
	Sp
	Target Expr
	Value  Expr
}

type CallExpr struct {
	Sp
	Callee Expr
	Args   []Expr
}

type MemberExpr struct {
	Sp
	X    Expr
	Name *Ident
}

type IndexExpr struct {
	Sp
	X     Expr
	Index Expr
}

// BadExpr stands in for an expression that failed to parse.
type BadExpr struct {
	Sp
}

func (*NumberLit) exprNode()  {}
func (*StringLit) exprNode()  {}
func (*BoolLit) exprNode()    {}
func (*NullLit) exprNode()    {}
func (*ArrayLit) exprNode()   {}
func (*ParenExpr) exprNode()  {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*AssignExpr) exprNode() {}
func (*CallExpr) exprNode()   {}
func (*MemberExpr) exprNode() {}
func (*IndexExpr) exprNode()  {}
func (*BadExpr) exprNode()    {}
