package toolchain

import (
	"hostbridge/internal/ast"
	"hostbridge/internal/diag"
	"hostbridge/internal/emitter"
	"hostbridge/internal/source"
)

// EmitResult reports what Emit wrote.
type EmitResult struct {
	EmitSkipped  bool
	Diagnostics  []diag.Diagnostic
	EmittedFiles []string
}

// Emit writes JavaScript (plus maps and declarations when requested) for
// every non-declaration file through the host.
func (p *Program) Emit() EmitResult {
	var res EmitResult
	if p.opts.NoEmit {
		res.EmitSkipped = true
		return res
	}
	inputs := make(map[string]bool, len(p.files))
	for _, f := range p.files {
		inputs[p.canonical(f.Path())] = true
	}
	for _, f := range p.files {
		if f == p.lib || f.IsDeclaration {
			continue
		}
		p.emitJS(f, inputs, &res)
		if p.opts.Declaration {
			p.emitDeclaration(f, inputs, &res)
		}
	}
	res.EmitSkipped = len(res.EmittedFiles) == 0
	return res
}

func (p *Program) emitJS(f *ast.File, inputs map[string]bool, res *EmitResult) {
	jsPath := p.OutputFileName(f.Path(), ".js")
	if inputs[p.canonical(jsPath)] {
		res.Diagnostics = append(res.Diagnostics, diag.Global(diag.OptWouldOverwriteInput, jsPath))
		return
	}
	mapPath := jsPath + ".map"
	ref := emitter.MapRef{
		File:   source.BaseName(jsPath),
		Source: source.LinkPath(source.DirName(jsPath), f.Path()),
		URL:    source.BaseName(mapPath),
	}
	out, err := emitter.EmitJS(f, p.opts.EmitterOptions(), ref)
	if err != nil {
		res.Diagnostics = append(res.Diagnostics, diag.Global(diag.OptCouldNotWriteFile, jsPath, err.Error()))
		return
	}
	p.write(jsPath, out.Text, res)
	if out.Map != "" {
		p.write(mapPath, out.Map, res)
	}
}

func (p *Program) emitDeclaration(f *ast.File, inputs map[string]bool, res *EmitResult) {
	dtsPath := p.OutputFileName(f.Path(), ".d.ts")
	if inputs[p.canonical(dtsPath)] {
		res.Diagnostics = append(res.Diagnostics, diag.Global(diag.OptWouldOverwriteInput, dtsPath))
		return
	}
	opts := emitter.DeclOptions{NewLine: p.opts.NewLine}
	mapPath := dtsPath + ".map"
	if p.opts.DeclarationMap {
		opts.Map = &emitter.MapRef{
			File:   source.BaseName(dtsPath),
			Source: source.LinkPath(source.DirName(dtsPath), f.Path()),
			URL:    source.BaseName(mapPath),
		}
	}
	out, err := emitter.EmitDeclaration(f, p.typeChecker(), opts)
	if err != nil {
		res.Diagnostics = append(res.Diagnostics, diag.Global(diag.OptCouldNotWriteFile, dtsPath, err.Error()))
		return
	}
	p.write(dtsPath, out.Text, res)
	if out.Map != "" {
		p.write(mapPath, out.Map, res)
	}
}

func (p *Program) write(path, data string, res *EmitResult) {
	failed := false
	p.host.WriteFile(path, data, false, func(msg string) {
		failed = true
		res.Diagnostics = append(res.Diagnostics, diag.Global(diag.OptCouldNotWriteFile, path, msg))
	})
	if !failed {
		res.EmittedFiles = append(res.EmittedFiles, path)
	}
}
