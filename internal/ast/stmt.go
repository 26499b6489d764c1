package ast

// Stmt is a statement or declaration.
type Stmt interface {
	Node
	stmtNode()
}

// VarKind is the declaration keyword of a VarDecl.
type VarKind uint8

const (
	VarLet VarKind = iota
	VarConst
	VarVar
)

func (k VarKind) String() string {
	switch k {
	case VarConst:
		return "const"
	case VarVar:
		return "var"
	default:
		return "let"
	}
}

// ImportSpec is one `name as local` entry of a named import.
type ImportSpec struct {
	Sp
	Name  *Ident // exported name in the target module
	Local *Ident // local binding; same as Name when there is no `as`
}

// ImportDecl covers `import {a} from "m"`, `import * as ns from "m"` and `import "m"`.
type ImportDecl struct {
	Sp
	Specifier     string
	SpecifierSpan Sp
	Named         []*ImportSpec
	Namespace     *Ident
}

// VarDecl is `let|const|var name: T = init`.
type VarDecl struct {
	Sp
	Kind     VarKind
	Name     *Ident
	Type     TypeNode
	Init     Expr
	Exported bool
	Declare  bool
}

// Param is a function parameter.
type Param struct {
	Sp
	Name     *Ident
	Type     TypeNode
	Optional bool
	Rest     bool
}

// FuncDecl is a function declaration; Body is nil for ambient declarations.
type FuncDecl struct {
	Sp
	Name       *Ident
	Params     []*Param
	Result     TypeNode
	Body       *Block
	Exported   bool
	Declare    bool
	Decorators []*Decorator
}

// Decorator is `@expr` before a function.
type Decorator struct {
	Sp
	X Expr
}

type Block struct {
	Sp
	Stmts []Stmt
}

type IfStmt struct {
	Sp
	Cond Expr
	Then Stmt
	Else Stmt
}

type WhileStmt struct {
	Sp
	Cond Expr
	Body Stmt
}

type ReturnStmt struct {
	Sp
	Value Expr
}

type ExprStmt struct {
	Sp
	X Expr
}

type EmptyStmt struct {
	Sp
}

func (*ImportDecl) stmtNode() {}
func (*VarDecl) stmtNode()    {}
func (*FuncDecl) stmtNode()   {}
func (*Block) stmtNode()      {}
func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*ReturnStmt) stmtNode() {}
func (*ExprStmt) stmtNode()   {}
func (*EmptyStmt) stmtNode()  {}
