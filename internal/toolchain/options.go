package toolchain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"hostbridge/internal/diag"
	"hostbridge/internal/emitter"
)

// ResolutionKind selects the module resolution strategy.
type ResolutionKind uint8

const (
	ResolutionClassic ResolutionKind = iota
	ResolutionNode
)

// JSXMode is accepted and validated; the language has no JSX syntax.
type JSXMode uint8

const (
	JSXNone JSXMode = iota
	JSXPreserve
	JSXReact
	JSXReactJSX
	JSXReactNative
)

// RawOptions mirrors the request's option map. Absent keys stay nil.
type RawOptions struct {
	Target                           *string `msgpack:"target"`
	Module                           *string `msgpack:"module"`
	ModuleResolution                 *string `msgpack:"moduleResolution"`
	NoCheck                          *bool   `msgpack:"noCheck"`
	TranspileOnly                    *bool   `msgpack:"transpileOnly"`
	SourceMap                        *bool   `msgpack:"sourceMap"`
	InlineSourceMap                  *bool   `msgpack:"inlineSourceMap"`
	InlineSources                    *bool   `msgpack:"inlineSources"`
	Declaration                      *bool   `msgpack:"declaration"`
	DeclarationMap                   *bool   `msgpack:"declarationMap"`
	ExperimentalDecorators           *bool   `msgpack:"experimentalDecorators"`
	EmitDecoratorMetadata            *bool   `msgpack:"emitDecoratorMetadata"`
	JSX                              *string `msgpack:"jsx"`
	BaseURL                          *string `msgpack:"baseUrl"`
	RootDir                          *string `msgpack:"rootDir"`
	OutDir                           *string `msgpack:"outDir"`
	NewLine                          *string `msgpack:"newLine"`
	Strict                           *bool   `msgpack:"strict"`
	StrictNullChecks                 *bool   `msgpack:"strictNullChecks"`
	NoUnusedLocals                   *bool   `msgpack:"noUnusedLocals"`
	ForceConsistentCasingInFileNames *bool   `msgpack:"forceConsistentCasingInFileNames"` // accepted, no casing check is made
	UseCaseSensitiveFileNames        *bool   `msgpack:"useCaseSensitiveFileNames"`
	NoEmit                           *bool   `msgpack:"noEmit"`
}

// optionKinds lists recognized keys and the value type reported on mismatch.
var optionKinds = map[string]string{
	"target": "string", "module": "string", "moduleResolution": "string", "jsx": "string",
	"baseUrl": "string", "rootDir": "string", "outDir": "string", "newLine": "string",
	"noCheck": "boolean", "transpileOnly": "boolean", "sourceMap": "boolean",
	"inlineSourceMap": "boolean", "inlineSources": "boolean", "declaration": "boolean",
	"declarationMap": "boolean", "experimentalDecorators": "boolean",
	"emitDecoratorMetadata": "boolean", "strict": "boolean", "strictNullChecks": "boolean",
	"noUnusedLocals": "boolean", "forceConsistentCasingInFileNames": "boolean", "noEmit": "boolean",
	"useCaseSensitiveFileNames": "boolean",
}

// DecodeRawOptions decodes a loosely typed option map. Unknown keys are
// ignored; values of the wrong type are dropped and reported (TS5024).
func DecodeRawOptions(m map[string]any) (RawOptions, []diag.Diagnostic) {
	var raw RawOptions
	var diags []diag.Diagnostic
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, key := range keys {
		kind, known := optionKinds[key]
		if !known || m[key] == nil {
			continue
		}
		data, err := msgpack.Marshal(map[string]any{key: m[key]})
		if err == nil {
			// a failed decode may still set the field, so try a scratch copy first
			var scratch RawOptions
			err = msgpack.Unmarshal(data, &scratch)
		}
		if err != nil {
			diags = append(diags, diag.Global(diag.OptRequiresType, key, kind))
			continue
		}
		if err := msgpack.Unmarshal(data, &raw); err != nil {
			diags = append(diags, diag.Global(diag.OptRequiresType, key, kind))
		}
	}
	return raw, diags
}

// Options are the resolved compiler options.
type Options struct {
	Target           emitter.Target
	Module           emitter.ModuleKind
	ModuleResolution ResolutionKind
	// NoCheck disables type checking (noCheck or transpileOnly).
	NoCheck                bool
	SourceMap              bool
	InlineSourceMap        bool
	InlineSources          bool
	Declaration            bool
	DeclarationMap         bool
	ExperimentalDecorators bool
	EmitDecoratorMetadata  bool
	JSX                    JSXMode
	BaseURL                string
	RootDir                string
	OutDir                 string
	// NewLine is "\n" or "\r\n".
	NewLine                   string
	Strict                    bool
	StrictNullChecks          bool
	NoUnusedLocals            bool
	UseCaseSensitiveFileNames bool
	NoEmit                    bool
}

var (
	resolutionNames = map[string]ResolutionKind{"classic": ResolutionClassic, "node": ResolutionNode, "node10": ResolutionNode}
	jsxNames        = map[string]JSXMode{"preserve": JSXPreserve, "react": JSXReact, "react-jsx": JSXReactJSX, "react-native": JSXReactNative}
	newLineNames    = map[string]string{"lf": "\n", "crlf": "\r\n"}
)

// ParseOptions decodes and resolves a request option map. Invalid enum
// values are reported (TS6046) and fall back to defaults.
func ParseOptions(m map[string]any) (Options, []diag.Diagnostic) {
	raw, diags := DecodeRawOptions(m)
	opts, more := ResolveOptions(raw)
	return opts, append(diags, more...)
}

// ResolveOptions applies defaults and validates enum values.
func ResolveOptions(raw RawOptions) (Options, []diag.Diagnostic) {
	var diags []diag.Diagnostic
	opts := Options{
		Target:                    emitter.TargetES5,
		NewLine:                   "\n",
		NoCheck:                   flag(raw.NoCheck) || flag(raw.TranspileOnly),
		SourceMap:                 flag(raw.SourceMap),
		InlineSourceMap:           flag(raw.InlineSourceMap),
		InlineSources:             flag(raw.InlineSources),
		Declaration:               flag(raw.Declaration),
		DeclarationMap:            flag(raw.DeclarationMap),
		ExperimentalDecorators:    flag(raw.ExperimentalDecorators),
		EmitDecoratorMetadata:     flag(raw.EmitDecoratorMetadata),
		BaseURL:                   str(raw.BaseURL),
		RootDir:                   str(raw.RootDir),
		OutDir:                    str(raw.OutDir),
		Strict:                    flag(raw.Strict),
		NoUnusedLocals:            flag(raw.NoUnusedLocals),
		UseCaseSensitiveFileNames: flag(raw.UseCaseSensitiveFileNames),
		NoEmit:                    flag(raw.NoEmit),
	}
	opts.StrictNullChecks = opts.Strict
	if raw.StrictNullChecks != nil {
		opts.StrictNullChecks = *raw.StrictNullChecks
	}

	if raw.Target != nil {
		if t, ok := emitter.ParseTarget(*raw.Target); ok {
			opts.Target = t
		} else {
			diags = append(diags, invalidEnum("target", "'es3', 'es5', 'es6', 'es2015', 'es2016', 'es2017', 'es2018', 'es2019', 'es2020', 'es2021', 'es2022', 'esnext'"))
		}
	}
	opts.Module = emitter.ModuleCommonJS
	if opts.Target != emitter.TargetES5 {
		opts.Module = emitter.ModuleES2015
	}
	if raw.Module != nil {
		if m, ok := emitter.ParseModuleKind(*raw.Module); ok {
			opts.Module = m
		} else {
			diags = append(diags, invalidEnum("module", "'none', 'commonjs', 'es6', 'es2015', 'es2020', 'esnext'"))
		}
	}
	opts.ModuleResolution = ResolutionClassic
	if opts.Module == emitter.ModuleCommonJS {
		opts.ModuleResolution = ResolutionNode
	}
	if raw.ModuleResolution != nil {
		if r, ok := resolutionNames[strings.ToLower(*raw.ModuleResolution)]; ok {
			opts.ModuleResolution = r
		} else {
			diags = append(diags, invalidEnum("moduleResolution", "'classic', 'node', 'node10'"))
		}
	}
	if raw.JSX != nil {
		if j, ok := jsxNames[strings.ToLower(*raw.JSX)]; ok {
			opts.JSX = j
		} else {
			diags = append(diags, invalidEnum("jsx", "'preserve', 'react', 'react-jsx', 'react-native'"))
		}
	}
	if raw.NewLine != nil {
		if nl, ok := newLineNames[strings.ToLower(*raw.NewLine)]; ok {
			opts.NewLine = nl
		} else {
			diags = append(diags, invalidEnum("newLine", "'crlf', 'lf'"))
		}
	}
	return opts, diags
}

// Verify reports contradictory option combinations.
func (o Options) Verify() []diag.Diagnostic {
	var diags []diag.Diagnostic
	if o.SourceMap && o.InlineSourceMap {
		diags = append(diags, diag.Global(diag.OptCannotSpecifyWith, "sourceMap", "inlineSourceMap"))
	}
	if o.InlineSources && !o.SourceMap && !o.InlineSourceMap {
		diags = append(diags, diag.Global(diag.OptInlineSourcesRequiresMap))
	}
	if o.EmitDecoratorMetadata && !o.ExperimentalDecorators {
		diags = append(diags, diag.Global(diag.OptRequiresOption, "emitDecoratorMetadata", "experimentalDecorators"))
	}
	if o.DeclarationMap && !o.Declaration {
		diags = append(diags, diag.Global(diag.OptRequiresOption, "declarationMap", "declaration"))
	}
	return diags
}

// EmitterOptions projects the options the JavaScript printer needs.
func (o Options) EmitterOptions() emitter.Options {
	return emitter.Options{
		Target:          o.Target,
		Module:          o.Module,
		NewLine:         o.NewLine,
		AlwaysStrict:    o.Strict,
		SourceMap:       o.SourceMap,
		InlineSourceMap: o.InlineSourceMap,
		InlineSources:   o.InlineSources,
	}
}

func invalidEnum(name, values string) diag.Diagnostic {
	return diag.Global(diag.OptInvalidArgument, name, values)
}

func flag(b *bool) bool { return b != nil && *b }

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (k ResolutionKind) String() string {
	if k == ResolutionNode {
		return "node"
	}
	return "classic"
}

func (o Options) String() string {
	return fmt.Sprintf("target=%d module=%d resolution=%s noCheck=%t", o.Target, o.Module, o.ModuleResolution, o.NoCheck)
}
