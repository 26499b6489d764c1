package toolchain

import (
	"strings"

	"hostbridge/internal/ast"
	"hostbridge/internal/emitter"
	"hostbridge/internal/parser"
	"hostbridge/internal/source"
)

// maxParseErrors caps syntax errors per file.
const maxParseErrors = 100

// CreateSourceFile parses text as the file fileName. ".d.ts" files are
// parsed as ambient declaration files. Every target shares one grammar.
func CreateSourceFile(fileName, text string, _ emitter.Target) *ast.File {
	f := source.NewFile(fileName, []byte(text))
	return parser.ParseFile(f, parser.Options{
		MaxErrors:   maxParseErrors,
		Declaration: IsDeclarationFile(fileName),
	})
}

// IsDeclarationFile reports whether fileName has the ".d.ts" extension.
func IsDeclarationFile(fileName string) bool {
	return strings.EqualFold(source.Extension(fileName), ".d.ts")
}
