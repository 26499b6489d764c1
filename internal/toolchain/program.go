package toolchain

import (
	"slices"

	"hostbridge/internal/ast"
	"hostbridge/internal/checker"
	"hostbridge/internal/diag"
	"hostbridge/internal/emitter"
	"hostbridge/internal/source"
)

// ProgramOptions are the inputs of CreateProgram.
type ProgramOptions struct {
	RootNames []string
	Options   Options
	Host      CompilerHost
	// ConfigDiagnostics are problems found while decoding the options.
	ConfigDiagnostics []diag.Diagnostic
}

// Program is an immutable set of parsed files plus the options they were
// built with. Checking happens lazily on the first diagnostics query.
type Program struct {
	opts      Options
	host      CompilerHost
	rootNames []string

	lib      *ast.File
	files    []*ast.File // dependencies precede the files importing them
	byKey    map[string]*ast.File
	missing  map[string]bool
	resolved map[*ast.File]map[string]*ast.File

	configDiags []diag.Diagnostic
	fileDiags   []diag.Diagnostic

	checker   *checker.Checker
	commonDir *string
}

// CreateProgram reads the root files and everything they import through host.
func CreateProgram(po ProgramOptions) *Program {
	p := &Program{
		opts:        po.Options,
		host:        po.Host,
		rootNames:   slices.Clone(po.RootNames),
		byKey:       make(map[string]*ast.File),
		missing:     make(map[string]bool),
		resolved:    make(map[*ast.File]map[string]*ast.File),
		configDiags: slices.Clone(po.ConfigDiagnostics),
	}

	libPath := p.host.GetDefaultLibFileName(p.opts)
	p.lib = p.host.GetSourceFile(libPath, p.opts.Target, nil)
	if p.lib == nil {
		p.fileDiags = append(p.fileDiags, diag.Global(diag.OptFileNotFound, libPath))
	} else {
		p.byKey[p.canonical(libPath)] = p.lib
		p.files = append(p.files, p.lib)
	}

	for _, name := range p.rootNames {
		p.processFile(name, true)
	}
	p.verifyRootDir()
	return p
}

func (p *Program) canonical(name string) string {
	return p.host.GetCanonicalFileName(realpath(p.host, name))
}

func (p *Program) processFile(name string, root bool) *ast.File {
	key := p.canonical(name)
	if f, ok := p.byKey[key]; ok {
		return f
	}
	if p.missing[key] {
		return nil
	}

	var readErr string
	called := false
	f := p.host.GetSourceFile(name, p.opts.Target, func(msg string) {
		called, readErr = true, msg
	})
	if f == nil {
		p.missing[key] = true
		if root {
			if called && p.host.FileExists(name) {
				p.fileDiags = append(p.fileDiags, diag.Global(diag.OptCannotReadFile, name, readErr))
			} else {
				p.fileDiags = append(p.fileDiags, diag.Global(diag.OptFileNotFound, name))
			}
		}
		return nil
	}
	p.byKey[key] = f

	deps := make(map[string]*ast.File, len(f.Imports))
	for _, imp := range f.Imports {
		if _, done := deps[imp.Specifier]; done {
			continue
		}
		path, ok := ResolveModuleName(imp.Specifier, f.Path(), p.opts, p.host)
		if !ok {
			continue
		}
		if dep := p.processFile(path, false); dep != nil {
			deps[imp.Specifier] = dep
		}
	}
	p.resolved[f] = deps
	p.files = append(p.files, f)
	return f
}

func (p *Program) verifyRootDir() {
	if p.opts.RootDir == "" {
		return
	}
	root := source.JoinPath(p.host.GetCurrentDirectory(), p.opts.RootDir)
	for _, f := range p.files {
		if f == p.lib || f.IsDeclaration {
			continue
		}
		if !source.IsUnder(f.Path(), root) {
			p.fileDiags = append(p.fileDiags, diag.Global(diag.OptFileNotUnderRootDir, f.Path(), p.opts.RootDir))
		}
	}
}

func (p *Program) resolveImport(from *ast.File, specifier string) (*ast.File, bool) {
	f, ok := p.resolved[from][specifier]
	return f, ok
}

func (p *Program) typeChecker() *checker.Checker {
	if p.checker != nil {
		return p.checker
	}
	var libs []*ast.File
	if p.lib != nil {
		libs = append(libs, p.lib)
	}
	p.checker = checker.New(checker.Config{
		StrictNullChecks:       p.opts.StrictNullChecks,
		StrictFunctionTypes:    p.opts.Strict,
		NoUnusedLocals:         p.opts.NoUnusedLocals,
		ExperimentalDecorators: p.opts.ExperimentalDecorators,
		ModuleNone:             p.opts.Module == emitter.ModuleNone,
	}, p.files, libs, p.resolveImport)
	return p.checker
}

// Options returns the options the program was created with.
func (p *Program) Options() Options { return p.opts }

// SourceFiles returns every file in the program, the default library first.
func (p *Program) SourceFiles() []*ast.File { return slices.Clone(p.files) }

// SourceFile finds a program file by path.
func (p *Program) SourceFile(name string) *ast.File {
	return p.byKey[p.canonical(name)]
}

// IsDefaultLib reports whether f is the bundled library.
func (p *Program) IsDefaultLib(f *ast.File) bool { return f != nil && f == p.lib }

// SyntacticDiagnostics returns parse errors of file, or of all files when file is nil.
func (p *Program) SyntacticDiagnostics(file *ast.File) []diag.Diagnostic {
	if file != nil {
		return slices.Clone(file.ParseDiagnostics)
	}
	var out []diag.Diagnostic
	for _, f := range p.files {
		out = append(out, f.ParseDiagnostics...)
	}
	return out
}

// OptionsDiagnostics returns option problems and program-level file problems.
func (p *Program) OptionsDiagnostics() []diag.Diagnostic {
	out := slices.Clone(p.configDiags)
	out = append(out, p.opts.Verify()...)
	return append(out, p.fileDiags...)
}

// GlobalDiagnostics returns redeclarations across the shared global scope.
func (p *Program) GlobalDiagnostics() []diag.Diagnostic {
	return p.typeChecker().GlobalDiagnostics()
}

// SemanticDiagnostics type-checks file, or every file when file is nil.
func (p *Program) SemanticDiagnostics(file *ast.File) []diag.Diagnostic {
	tc := p.typeChecker()
	if file != nil {
		return tc.SemanticDiagnostics(file)
	}
	var out []diag.Diagnostic
	for _, f := range p.files {
		out = append(out, tc.SemanticDiagnostics(f)...)
	}
	return out
}

// CommonSourceDirectory is rootDir when set, else the deepest directory
// containing every emitted source file.
func (p *Program) CommonSourceDirectory() string {
	if p.commonDir != nil {
		return *p.commonDir
	}
	var dir string
	if p.opts.RootDir != "" {
		dir = source.JoinPath(p.host.GetCurrentDirectory(), p.opts.RootDir)
	} else {
		var paths []string
		for _, f := range p.files {
			if f != p.lib && !f.IsDeclaration {
				paths = append(paths, f.Path())
			}
		}
		dir = source.CommonDir(paths)
	}
	p.commonDir = &dir
	return dir
}

// OutputFileName maps an input path to its output with extension ext,
// honouring outDir.
func (p *Program) OutputFileName(input, ext string) string {
	out := input
	if p.opts.OutDir != "" {
		outDir := source.JoinPath(p.host.GetCurrentDirectory(), p.opts.OutDir)
		out = source.JoinPath(outDir, source.RelativePath(input, p.CommonSourceDirectory()))
	}
	return source.ChangeExtension(out, ext)
}

// FlattenMessage joins a diagnostic's message chain with newLine.
func FlattenMessage(d diag.Diagnostic, newLine string) string {
	return d.Flatten(newLine)
}
