package emitter

import "strings"

// Target is the ECMAScript language level of the output.
type Target uint8

const (
	TargetES5 Target = iota
	TargetES2015
	TargetES2016
	TargetES2017
	TargetES2018
	TargetES2019
	TargetES2020
	TargetES2021
	TargetES2022
	TargetESNext
)

var targetNames = map[string]Target{
	"es3":    TargetES5,
	"es5":    TargetES5,
	"es6":    TargetES2015,
	"es2015": TargetES2015,
	"es2016": TargetES2016,
	"es2017": TargetES2017,
	"es2018": TargetES2018,
	"es2019": TargetES2019,
	"es2020": TargetES2020,
	"es2021": TargetES2021,
	"es2022": TargetES2022,
	"esnext": TargetESNext,
}

// ParseTarget maps an option value (case-insensitive) to a Target.
func ParseTarget(s string) (Target, bool) {
	t, ok := targetNames[strings.ToLower(s)]
	return t, ok
}

// ModuleKind selects how imports and exports are written.
type ModuleKind uint8

const (
	ModuleNone ModuleKind = iota
	ModuleCommonJS
	ModuleES2015
	ModuleES2020
	ModuleESNext
)

var moduleNames = map[string]ModuleKind{
	"none":     ModuleNone,
	"commonjs": ModuleCommonJS,
	"es6":      ModuleES2015,
	"es2015":   ModuleES2015,
	"es2020":   ModuleES2020,
	"esnext":   ModuleESNext,
}

// ParseModuleKind maps an option value (case-insensitive) to a ModuleKind.
func ParseModuleKind(s string) (ModuleKind, bool) {
	m, ok := moduleNames[strings.ToLower(s)]
	return m, ok
}

// IsESM reports whether import/export syntax is kept as written.
func (m ModuleKind) IsESM() bool {
	return m == ModuleES2015 || m == ModuleES2020 || m == ModuleESNext
}

// Options controls JavaScript emission.
type Options struct {
	Target Target
	Module ModuleKind
	// NewLine defaults to "\n".
	NewLine string
	// AlwaysStrict adds "use strict" to scripts and CommonJS modules.
	AlwaysStrict bool

	SourceMap       bool
	InlineSourceMap bool
	InlineSources   bool
}

func (o Options) newLine() string {
	if o.NewLine == "" {
		return "\n"
	}
	return o.NewLine
}

// MapRef names the files a source map links together.
type MapRef struct {
	// File is the generated file name recorded in the map ("a.js").
	File string
	// Source is the source path relative to the map's directory.
	Source string
	// URL is what the sourceMappingURL comment points to for external maps.
	URL string
}

// Output is one emitted text plus its external source map, if any.
type Output struct {
	Text string
	Map  string
}
