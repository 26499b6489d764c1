package types

import (
	"strconv"
	"strings"
)

// Label returns a user-friendly label for a TypeID.
func Label(in *Interner, id TypeID) string {
	return labelDepth(in, id, 0)
}

func labelDepth(in *Interner, id TypeID, depth int) string {
	if depth > 6 {
		return "..."
	}
	tt, ok := in.Lookup(id)
	if !ok {
		return "any"
	}
	switch tt.Kind {
	case KindArray:
		elem := labelDepth(in, tt.Elem, depth+1)
		if in.KindOf(tt.Elem) == KindFn {
			elem = "(" + elem + ")"
		}
		return elem + "[]"
	case KindFn:
		info, _ := in.FnInfo(id)
		var sb strings.Builder
		sb.WriteByte('(')
		for i, p := range info.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			if p.Rest {
				sb.WriteString("...")
			}
			sb.WriteString(p.Name)
			if p.Optional {
				sb.WriteByte('?')
			}
			sb.WriteString(": ")
			sb.WriteString(labelDepth(in, p.Type, depth+1))
		}
		sb.WriteString(") => ")
		sb.WriteString(labelDepth(in, info.Result, depth+1))
		return sb.String()
	case KindModule:
		path, _ := in.ModulePath(id)
		return "typeof import(" + strconv.Quote(path) + ")"
	default:
		return tt.Kind.String()
	}
}
