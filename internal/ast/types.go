package ast

// TypeNode is a syntactic type annotation.
type TypeNode interface {
	Node
	typeNode()
}

// TypeRef names a type: number, string, boolean, void, any, null.
type TypeRef struct {
	Sp
	Name string
}

type ArrayType struct {
	Sp
	Elem TypeNode
}

type FuncType struct {
	Sp
	Params []*Param
	Result TypeNode
}

func (*TypeRef) typeNode()   {}
func (*ArrayType) typeNode() {}
func (*FuncType) typeNode()  {}
