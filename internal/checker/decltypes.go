package checker

import (
	"hostbridge/internal/ast"
	"hostbridge/internal/types"
)

// VarTypeText renders the declared or inferred type of a top-level variable.
func (c *Checker) VarTypeText(file *ast.File, d *ast.VarDecl) string {
	if sym := c.boundSymbol(file, d); sym != nil {
		return types.Label(c.types, c.typeOfSymbol(sym))
	}
	return "any"
}

// ResultTypeText renders the declared or inferred result type of a top-level function.
func (c *Checker) ResultTypeText(file *ast.File, d *ast.FuncDecl) string {
	sym := c.boundSymbol(file, d)
	if sym == nil {
		return "any"
	}
	info, ok := c.types.FnInfo(c.typeOfSymbol(sym))
	if !ok {
		return "any"
	}
	return types.Label(c.types, info.Result)
}

func (c *Checker) boundSymbol(file *ast.File, d ast.Node) *Symbol {
	c.bindGlobal()
	if file.IsModule && !c.libs[file] {
		c.moduleScope(file)
	}
	return c.declSyms[d]
}
