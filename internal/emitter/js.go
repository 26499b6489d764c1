package emitter

import (
	"slices"
	"strconv"
	"strings"

	"hostbridge/internal/ast"
)

type jsPrinter struct {
	*printer
	opts Options
	mod  *moduleInfo
	esm  bool // at least one import/export statement was written
}

// EmitJS prints f as JavaScript. Ambient declarations produce no code.
func EmitJS(f *ast.File, opts Options, ref MapRef) (Output, error) {
	p := &jsPrinter{
		printer: newPrinter(f.Source, opts.newLine()),
		opts:    opts,
		mod:     analyzeModule(f, opts),
	}
	p.prologue(f)
	for _, st := range f.Stmts {
		p.stmt(st)
	}
	if f.IsModule && opts.Module.IsESM() && !p.esm {
		p.writeLine("export {};")
	}

	out := Output{Text: p.String()}
	if !opts.SourceMap && !opts.InlineSourceMap {
		return out, nil
	}
	doc, err := buildSourceMap(ref, p.mappings, string(f.Source.Content), opts.InlineSources)
	if err != nil {
		return Output{}, err
	}
	if opts.InlineSourceMap {
		out.Text += "//# sourceMappingURL=" + inlineMapURL(doc)
		return out, nil
	}
	out.Text += "//# sourceMappingURL=" + ref.URL
	out.Map = doc
	return out, nil
}

func (p *jsPrinter) prologue(f *ast.File) {
	if p.mod.commonJS || (p.opts.AlwaysStrict && !f.IsModule) {
		p.writeLine(`"use strict";`)
	}
	if !p.mod.commonJS {
		return
	}
	p.writeLine(`Object.defineProperty(exports, "__esModule", { value: true });`)

	var vars, funcs []string
	for _, st := range f.Stmts {
		switch s := st.(type) {
		case *ast.VarDecl:
			if p.mod.exported[s.Name.Name] {
				vars = append(vars, s.Name.Name)
			}
		case *ast.FuncDecl:
			if s.Exported && s.Body != nil && !s.Declare {
				funcs = append(funcs, s.Name.Name)
			}
		}
	}
	if len(vars) > 0 {
		slices.Reverse(vars)
		var sb strings.Builder
		for _, v := range vars {
			sb.WriteString("exports.")
			sb.WriteString(v)
			sb.WriteString(" = ")
		}
		sb.WriteString("void 0;")
		p.writeLine(sb.String())
	}
	for _, fn := range funcs {
		p.writeLine("exports." + fn + " = " + fn + ";")
	}
}

func (p *jsPrinter) varKeyword(k ast.VarKind) string {
	if p.opts.Target == TargetES5 {
		return "var"
	}
	return k.String()
}

func (p *jsPrinter) stmt(st ast.Stmt) {
	switch s := st.(type) {
	case *ast.ImportDecl:
		p.importDecl(s)
	case *ast.VarDecl:
		p.varDecl(s)
	case *ast.FuncDecl:
		p.funcDecl(s)
	case *ast.Block:
		p.mark(s.S.Start)
		p.block(s.Stmts, nil)
		p.newline()
	case *ast.IfStmt:
		p.mark(s.S.Start)
		p.write("if (")
		p.expr(s.Cond)
		p.write(")")
		p.body(s.Then)
		if s.Else != nil {
			p.write("else")
			p.body(s.Else)
		}
	case *ast.WhileStmt:
		p.mark(s.S.Start)
		p.write("while (")
		p.expr(s.Cond)
		p.write(")")
		p.body(s.Body)
	case *ast.ReturnStmt:
		p.mark(s.S.Start)
		if s.Value == nil {
			p.writeLine("return;")
			return
		}
		p.write("return ")
		p.expr(s.Value)
		p.writeLine(";")
	case *ast.ExprStmt:
		p.mark(s.S.Start)
		p.expr(s.X)
		p.writeLine(";")
	case *ast.EmptyStmt:
		p.mark(s.S.Start)
		p.writeLine(";")
	}
}

// body prints the statement after if/while/else, a block on the same line.
func (p *jsPrinter) body(st ast.Stmt) {
	if b, ok := st.(*ast.Block); ok {
		p.write(" ")
		p.block(b.Stmts, nil)
		p.newline()
		return
	}
	p.newline()
	p.indent++
	p.stmt(st)
	p.indent--
}

// block prints "{ ... }" without the trailing line break; pre runs first inside the braces.
func (p *jsPrinter) block(stmts []ast.Stmt, pre func()) {
	if len(stmts) == 0 && pre == nil {
		p.write("{ }")
		return
	}
	p.write("{")
	p.newline()
	p.indent++
	if pre != nil {
		pre()
	}
	for _, st := range stmts {
		p.stmt(st)
	}
	p.indent--
	p.write("}")
}

func (p *jsPrinter) importDecl(d *ast.ImportDecl) {
	if p.mod.importElided(d) {
		return
	}
	spec := quote(d.Specifier)
	if p.mod.commonJS {
		p.mark(d.S.Start)
		switch {
		case d.Namespace != nil:
			p.writeLine(p.varKeyword(ast.VarConst) + " " + d.Namespace.Name + " = require(" + spec + ");")
		case len(d.Named) > 0:
			p.writeLine(p.varKeyword(ast.VarConst) + " " + p.mod.moduleVar[d] + " = require(" + spec + ");")
		default:
			p.writeLine("require(" + spec + ");")
		}
		return
	}
	if !p.opts.Module.IsESM() {
		return
	}
	p.esm = true
	p.mark(d.S.Start)
	switch {
	case d.Namespace != nil:
		p.writeLine("import * as " + d.Namespace.Name + " from " + spec + ";")
	case len(d.Named) > 0:
		names := make([]string, 0, len(d.Named))
		for _, s := range p.mod.usedSpecs(d) {
			if s.Local.Name != s.Name.Name {
				names = append(names, s.Name.Name+" as "+s.Local.Name)
			} else {
				names = append(names, s.Name.Name)
			}
		}
		p.writeLine("import { " + strings.Join(names, ", ") + " } from " + spec + ";")
	default:
		p.writeLine("import " + spec + ";")
	}
}

func (p *jsPrinter) varDecl(d *ast.VarDecl) {
	if d.Declare || d.Name == nil {
		return
	}
	if p.mod.exported[d.Name.Name] {
		if d.Init == nil {
			return
		}
		p.mark(d.S.Start)
		p.write("exports." + d.Name.Name + " = ")
		p.expr(d.Init)
		p.writeLine(";")
		return
	}
	p.mark(d.S.Start)
	if d.Exported && p.opts.Module.IsESM() {
		p.esm = true
		p.write("export ")
	}
	p.write(p.varKeyword(d.Kind) + " " + d.Name.Name)
	if d.Init != nil {
		p.write(" = ")
		p.expr(d.Init)
	}
	p.writeLine(";")
}

func (p *jsPrinter) funcDecl(d *ast.FuncDecl) {
	if d.Declare || d.Body == nil || d.Name == nil {
		return
	}
	p.mark(d.S.Start)
	if d.Exported && p.opts.Module.IsESM() {
		p.esm = true
		p.write("export ")
	}
	p.write("function " + d.Name.Name + "(")
	var rest *ast.Param
	restIndex := 0
	for i, param := range d.Params {
		if param.Rest && p.opts.Target == TargetES5 {
			rest, restIndex = param, i
			break
		}
		if i > 0 {
			p.write(", ")
		}
		if param.Rest {
			p.write("...")
		}
		p.write(param.Name.Name)
	}
	p.write(") ")
	var pre func()
	if rest != nil {
		pre = func() { p.lowerRest(rest.Name.Name, restIndex) }
	}
	p.block(d.Body.Stmts, pre)
	p.newline()

	if len(d.Decorators) > 0 {
		name := d.Name.Name
		p.mark(d.Decorators[0].S.Start)
		p.write(name + " = ")
		for _, dec := range d.Decorators {
			p.expr(dec.X)
			p.write("(")
		}
		p.write(name)
		p.write(strings.Repeat(")", len(d.Decorators)))
		p.writeLine(" || " + name + ";")
	}
}

// lowerRest copies trailing arguments into an array for ES5 output.
func (p *jsPrinter) lowerRest(name string, index int) {
	p.writeLine("var " + name + " = [];")
	p.writeLine("for (var _i = " + strconv.Itoa(index) + "; _i < arguments.length; _i++) {")
	p.indent++
	if index == 0 {
		p.writeLine(name + "[_i] = arguments[_i];")
	} else {
		p.writeLine(name + "[_i - " + strconv.Itoa(index) + "] = arguments[_i];")
	}
	p.indent--
	p.writeLine("}")
}

func (p *jsPrinter) expr(x ast.Expr) {
	switch e := x.(type) {
	case *ast.Ident:
		p.write(p.identText(e.Name))
	case *ast.NumberLit:
		p.write(e.Text)
	case *ast.StringLit:
		p.write(e.Text)
	case *ast.BoolLit:
		p.write(strconv.FormatBool(e.Value))
	case *ast.NullLit:
		p.write("null")
	case *ast.ArrayLit:
		p.write("[")
		for i, el := range e.Elems {
			if i > 0 {
				p.write(", ")
			}
			p.expr(el)
		}
		p.write("]")
	case *ast.ParenExpr:
		p.write("(")
		p.expr(e.X)
		p.write(")")
	case *ast.UnaryExpr:
		p.write(e.Op.String())
		p.expr(e.X)
	case *ast.BinaryExpr:
		p.expr(e.X)
		p.write(" " + e.Op.String() + " ")
		p.expr(e.Y)
	case *ast.AssignExpr:
		p.expr(e.Target)
		p.write(" = ")
		p.expr(e.Value)
	case *ast.CallExpr:
		if id, ok := e.Callee.(*ast.Ident); ok && p.isImportRef(id.Name) {
			p.write("(0, " + p.identText(id.Name) + ")")
		} else {
			p.expr(e.Callee)
		}
		p.write("(")
		for i, a := range e.Args {
			if i > 0 {
				p.write(", ")
			}
			p.expr(a)
		}
		p.write(")")
	case *ast.MemberExpr:
		p.expr(e.X)
		p.write("." + e.Name.Name)
	case *ast.IndexExpr:
		p.expr(e.X)
		p.write("[")
		p.expr(e.Index)
		p.write("]")
	case *ast.BadExpr:
	}
}

func (p *jsPrinter) isImportRef(name string) bool {
	_, ok := p.mod.imports[name]
	return ok
}

func (p *jsPrinter) identText(name string) string {
	if ref, ok := p.mod.imports[name]; ok {
		return ref.moduleVar + "." + ref.name
	}
	if p.mod.exported[name] {
		return "exports." + name
	}
	return name
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
