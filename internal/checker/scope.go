package checker

import (
	"hostbridge/internal/ast"
	"hostbridge/internal/source"
	"hostbridge/internal/types"
)

// SymbolKind classifies declarations.
type SymbolKind uint8

const (
	SymVar SymbolKind = iota
	SymLet
	SymConst
	SymFunc
	SymParam
	SymImport
	SymNamespace
)

func (k SymbolKind) blockScoped() bool { return k == SymLet || k == SymConst }

type resolveState uint8

const (
	stateUnresolved resolveState = iota
	stateResolving
	stateResolved
)

// Symbol is a named declaration.
type Symbol struct {
	Name     string
	Kind     SymbolKind
	File     *ast.File
	Decl     ast.Node
	NameSpan source.Span
	Scope    *Scope
	Exported bool
	Ambient  bool
	Used     bool

	// import is the owning declaration for SymImport and SymNamespace.
	importDecl *ast.ImportDecl
	conflicted bool
	typ        types.TypeID
	state      resolveState
}

// ScopeKind tells where a scope was opened.
type ScopeKind uint8

const (
	ScopeGlobal ScopeKind = iota
	ScopeModule
	ScopeFunction
	ScopeBlock
)

// Scope maps names to symbols; Parent is consulted on misses.
type Scope struct {
	Kind   ScopeKind
	Parent *Scope
	syms   map[string]*Symbol
	order  []*Symbol
}

func newScope(kind ScopeKind, parent *Scope) *Scope {
	return &Scope{Kind: kind, Parent: parent, syms: make(map[string]*Symbol)}
}

// LookupLocal finds name in this scope only.
func (s *Scope) LookupLocal(name string) *Symbol {
	return s.syms[name]
}

// Lookup walks the scope chain outwards.
func (s *Scope) Lookup(name string) *Symbol {
	for cur := s; cur != nil; cur = cur.Parent {
		if sym, ok := cur.syms[name]; ok {
			return sym
		}
	}
	return nil
}

func (s *Scope) insert(sym *Symbol) {
	sym.Scope = s
	s.syms[sym.Name] = sym
	s.order = append(s.order, sym)
}

// Symbols returns the declarations of this scope in declaration order.
func (s *Scope) Symbols() []*Symbol {
	return s.order
}
