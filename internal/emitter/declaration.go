package emitter

import (
	"strings"

	"hostbridge/internal/ast"
)

// TypeNamer supplies inferred types for declarations without annotations.
type TypeNamer interface {
	VarTypeText(file *ast.File, d *ast.VarDecl) string
	ResultTypeText(file *ast.File, d *ast.FuncDecl) string
}

// DeclOptions controls declaration (.d.ts) emission.
type DeclOptions struct {
	NewLine string
	// Map, when set, requests a declaration map and names its files.
	Map *MapRef
}

// EmitDeclaration prints the public surface of f as an ambient declaration file.
// Module files keep only exported declarations.
func EmitDeclaration(f *ast.File, namer TypeNamer, opts DeclOptions) (Output, error) {
	nl := opts.NewLine
	if nl == "" {
		nl = "\n"
	}
	p := newPrinter(f.Source, nl)
	wrote := false
	for _, st := range f.Stmts {
		switch s := st.(type) {
		case *ast.VarDecl:
			if f.IsModule && !s.Exported {
				continue
			}
			p.mark(s.S.Start)
			p.write(declPrefix(s.Exported) + s.Kind.String() + " " + s.Name.Name + ": ")
			if s.Type != nil {
				p.write(typeText(s.Type))
			} else {
				p.write(namer.VarTypeText(f, s))
			}
			p.writeLine(";")
			wrote = true
		case *ast.FuncDecl:
			if f.IsModule && !s.Exported {
				continue
			}
			p.mark(s.S.Start)
			p.write(declPrefix(s.Exported) + "function " + s.Name.Name + "(" + paramsText(s.Params) + "): ")
			if s.Result != nil {
				p.write(typeText(s.Result))
			} else {
				p.write(namer.ResultTypeText(f, s))
			}
			p.writeLine(";")
			wrote = true
		}
	}
	if f.IsModule && !wrote {
		p.writeLine("export {};")
	}

	out := Output{Text: p.String()}
	if opts.Map == nil {
		return out, nil
	}
	doc, err := buildSourceMap(*opts.Map, p.mappings, "", false)
	if err != nil {
		return Output{}, err
	}
	out.Text += "//# sourceMappingURL=" + opts.Map.URL
	out.Map = doc
	return out, nil
}

func declPrefix(exported bool) string {
	if exported {
		return "export declare "
	}
	return "declare "
}

func paramsText(params []*ast.Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		var sb strings.Builder
		if p.Rest {
			sb.WriteString("...")
		}
		sb.WriteString(p.Name.Name)
		if p.Optional {
			sb.WriteByte('?')
		}
		sb.WriteString(": ")
		switch {
		case p.Type != nil:
			sb.WriteString(typeText(p.Type))
		case p.Rest:
			sb.WriteString("any[]")
		default:
			sb.WriteString("any")
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, ", ")
}

// typeText prints an annotation back in source form.
func typeText(t ast.TypeNode) string {
	switch x := t.(type) {
	case *ast.TypeRef:
		if x.Name == "" {
			return "any"
		}
		return x.Name
	case *ast.ArrayType:
		elem := typeText(x.Elem)
		if _, isFn := x.Elem.(*ast.FuncType); isFn {
			elem = "(" + elem + ")"
		}
		return elem + "[]"
	case *ast.FuncType:
		return "(" + paramsText(x.Params) + ") => " + typeText(x.Result)
	}
	return "any"
}
