package checker

import "hostbridge/internal/types"

// memberType resolves a property of the built-in string, array and module types.
func (c *Checker) memberType(obj types.TypeID, name string) (types.TypeID, bool) {
	b := c.types.Builtins()
	fn := func(result types.TypeID, params ...types.Param) types.TypeID {
		return c.types.RegisterFn(params, result)
	}
	switch c.types.KindOf(obj) {
	case types.KindString:
		switch name {
		case "length":
			return b.Number, true
		case "toUpperCase", "toLowerCase", "trim":
			return fn(b.String), true
		case "charAt":
			return fn(b.String, types.Param{Name: "pos", Type: b.Number}), true
		case "indexOf":
			return fn(b.Number, types.Param{Name: "searchString", Type: b.String}), true
		case "slice":
			return fn(b.String,
				types.Param{Name: "start", Type: b.Number, Optional: true},
				types.Param{Name: "end", Type: b.Number, Optional: true}), true
		}
	case types.KindArray:
		elem := c.types.ElemOf(obj)
		switch name {
		case "length":
			return b.Number, true
		case "push":
			return fn(b.Number, types.Param{Name: "items", Type: obj, Rest: true}), true
		case "pop":
			return fn(elem), true
		case "join":
			return fn(b.String, types.Param{Name: "separator", Type: b.String, Optional: true}), true
		case "indexOf":
			return fn(b.Number, types.Param{Name: "searchElement", Type: elem}), true
		case "concat":
			return fn(obj, types.Param{Name: "items", Type: obj, Rest: true}), true
		}
	case types.KindModule:
		path, _ := c.types.ModulePath(obj)
		target, ok := c.byPath[path]
		if !ok {
			return types.NoTypeID, false
		}
		if sym := c.exportOfFile(target, name); sym != nil {
			return c.typeOfSymbol(sym), true
		}
	}
	return types.NoTypeID, false
}
