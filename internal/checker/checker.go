// Package checker binds names and type-checks parsed files.
//
// Diagnostics come in two stages: GlobalDiagnostics reports conflicts in the
// scope shared by script files and the default library; SemanticDiagnostics
// checks one file at a time.
package checker

import (
	"slices"

	"hostbridge/internal/ast"
	"hostbridge/internal/diag"
	"hostbridge/internal/types"
)

// Config carries the compiler options the checker looks at.
type Config struct {
	StrictNullChecks       bool
	StrictFunctionTypes    bool
	NoUnusedLocals         bool
	ExperimentalDecorators bool
	// ModuleNone reports import/export usage (module kind "none").
	ModuleNone bool
}

// Resolver maps an import specifier written in from to the imported file.
type Resolver func(from *ast.File, specifier string) (*ast.File, bool)

// Checker holds the program-wide symbol tables. It is not safe for concurrent use.
type Checker struct {
	cfg     Config
	types   *types.Interner
	rel     types.Relation
	files   []*ast.File
	libs    map[*ast.File]bool
	byPath  map[string]*ast.File
	resolve Resolver

	global      *Scope
	globalBound bool
	globalDiags []diag.Diagnostic

	modules   map[*ast.File]*Scope
	bindDiags map[*ast.File][]diag.Diagnostic
	checked   map[*ast.File][]diag.Diagnostic
	declSyms  map[ast.Node]*Symbol

	// состояние текущей проверки
	file *ast.File
	sink diag.Reporter
	fn   *fnContext
	// inferDepth > 0 while a function body is walked only to infer its result.
	inferDepth int
}

type fnContext struct {
	result     types.TypeID
	annotated  bool
	inferring  bool
	returns    []types.TypeID
	valueCount int
}

// New creates a checker over files. libs lists the default library files,
// which share the global scope but are never checked themselves.
func New(cfg Config, files []*ast.File, libs []*ast.File, resolve Resolver) *Checker {
	in := types.NewInterner()
	c := &Checker{
		cfg:   cfg,
		types: in,
		rel: types.Relation{
			In:              in,
			StrictNull:      cfg.StrictNullChecks,
			StrictFunctions: cfg.StrictFunctionTypes,
		},
		libs:      make(map[*ast.File]bool, len(libs)),
		byPath:    make(map[string]*ast.File, len(files)+len(libs)),
		resolve:   resolve,
		modules:   make(map[*ast.File]*Scope),
		bindDiags: make(map[*ast.File][]diag.Diagnostic),
		checked:   make(map[*ast.File][]diag.Diagnostic),
		declSyms:  make(map[ast.Node]*Symbol),
		sink:      diag.NopReporter{},
	}
	for _, f := range libs {
		c.libs[f] = true
		c.files = append(c.files, f)
		c.byPath[f.Path()] = f
	}
	for _, f := range files {
		if c.libs[f] {
			continue
		}
		c.files = append(c.files, f)
		c.byPath[f.Path()] = f
	}
	if c.resolve == nil {
		c.resolve = func(*ast.File, string) (*ast.File, bool) { return nil, false }
	}
	return c
}

// Types exposes the interner used for all TypeIDs handed out by the checker.
func (c *Checker) Types() *types.Interner { return c.types }

// GlobalScope returns the shared scope of script files and libraries.
func (c *Checker) GlobalScope() *Scope {
	c.bindGlobal()
	return c.global
}

// GlobalDiagnostics reports redeclarations in the global scope.
func (c *Checker) GlobalDiagnostics() []diag.Diagnostic {
	c.bindGlobal()
	return slices.Clone(c.globalDiags)
}

// SemanticDiagnostics type-checks file. Library files yield nothing.
func (c *Checker) SemanticDiagnostics(file *ast.File) []diag.Diagnostic {
	if file == nil || c.libs[file] {
		return nil
	}
	c.bindGlobal()
	if ds, ok := c.checked[file]; ok {
		return slices.Clone(ds)
	}

	bag := diag.NewBag(0)
	prevFile, prevSink, prevFn := c.file, c.sink, c.fn
	c.file, c.sink, c.fn = file, diag.NewDedupReporter(diag.BagReporter{Bag: bag}), nil
	defer func() { c.file, c.sink, c.fn = prevFile, prevSink, prevFn }()

	scope := c.global
	if file.IsModule {
		scope = c.moduleScope(file)
		bag.AddAll(c.bindDiags[file])
	}
	c.checkModuleNone(file)
	for _, st := range file.Stmts {
		c.checkStmt(scope, st)
	}
	if file.IsModule && !file.IsDeclaration {
		c.reportUnused(scope)
	}

	c.checked[file] = bag.Items()
	return slices.Clone(bag.Items())
}

func (c *Checker) report(d diag.Diagnostic) {
	c.sink.Report(d)
}

func (c *Checker) checkModuleNone(file *ast.File) {
	if !c.cfg.ModuleNone || !file.IsModule || file.IsDeclaration {
		return
	}
	for _, st := range file.Stmts {
		if isImportOrExport(st) {
			c.report(diag.Newf(diag.SemaModuleNoneImports, file.Source, st.Span()))
			return
		}
	}
}

func isImportOrExport(st ast.Stmt) bool {
	switch s := st.(type) {
	case *ast.ImportDecl:
		return true
	case *ast.VarDecl:
		return s.Exported
	case *ast.FuncDecl:
		return s.Exported
	}
	return false
}

// quietly runs fn with reporting switched off in the context of file.
func (c *Checker) quietly(file *ast.File, fn func()) {
	prevFile, prevSink, prevFn := c.file, c.sink, c.fn
	c.file, c.sink, c.fn = file, diag.NopReporter{}, nil
	defer func() { c.file, c.sink, c.fn = prevFile, prevSink, prevFn }()
	fn()
}
