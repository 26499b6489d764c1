package emitter

import (
	"strconv"
	"strings"

	"hostbridge/internal/ast"
	"hostbridge/internal/source"
)

// importRef is the CommonJS rewrite of a named import binding.
type importRef struct {
	moduleVar string
	name      string
}

// moduleInfo collects what the module transform needs before printing.
type moduleInfo struct {
	commonJS  bool
	refs      map[string]int // value references per identifier
	imports   map[string]importRef
	exported  map[string]bool // exported variables, rewritten to exports.x
	moduleVar map[*ast.ImportDecl]string
	taken     map[string]bool
}

func analyzeModule(f *ast.File, opts Options) *moduleInfo {
	m := &moduleInfo{
		commonJS:  f.IsModule && !opts.Module.IsESM(),
		refs:      make(map[string]int),
		imports:   make(map[string]importRef),
		exported:  make(map[string]bool),
		moduleVar: make(map[*ast.ImportDecl]string),
		taken:     make(map[string]bool),
	}
	ast.Inspect(f, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.Ident:
			m.refs[x.Name]++
			m.taken[x.Name] = true
		case *ast.VarDecl:
			if x.Name != nil {
				m.taken[x.Name.Name] = true
			}
		case *ast.FuncDecl:
			if x.Name != nil {
				m.taken[x.Name.Name] = true
			}
		}
		return true
	})
	if !m.commonJS {
		return m
	}
	for _, st := range f.Stmts {
		switch s := st.(type) {
		case *ast.VarDecl:
			if s.Exported && !s.Declare && s.Name != nil {
				m.exported[s.Name.Name] = true
			}
		case *ast.ImportDecl:
			if len(s.Named) == 0 {
				continue
			}
			v := m.uniqueVar(s.Specifier)
			m.moduleVar[s] = v
			for _, spec := range s.Named {
				m.imports[spec.Local.Name] = importRef{moduleVar: v, name: spec.Name.Name}
			}
		}
	}
	return m
}

// uniqueVar derives "b_1" from "./b", bumping the suffix on collisions.
func (m *moduleInfo) uniqueVar(specifier string) string {
	base := source.BaseName(specifier)
	if ext := source.Extension(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	var sb strings.Builder
	for i, r := range base {
		switch {
		case r == '_' || r == '$' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			sb.WriteRune(r)
		case r >= '0' && r <= '9' && i > 0:
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	name := sb.String()
	if name == "" {
		name = "module"
	}
	for i := 1; ; i++ {
		cand := name + "_" + strconv.Itoa(i)
		if !m.taken[cand] {
			m.taken[cand] = true
			return cand
		}
	}
}

// usedSpecs keeps the named imports that are referenced as values.
func (m *moduleInfo) usedSpecs(d *ast.ImportDecl) []*ast.ImportSpec {
	var out []*ast.ImportSpec
	for _, spec := range d.Named {
		if m.refs[spec.Local.Name] > 0 {
			out = append(out, spec)
		}
	}
	return out
}

// importElided reports whether an import declaration produces no code.
func (m *moduleInfo) importElided(d *ast.ImportDecl) bool {
	switch {
	case d.Namespace != nil:
		return m.refs[d.Namespace.Name] == 0
	case len(d.Named) > 0:
		return len(m.usedSpecs(d)) == 0
	}
	return false
}
