package toolchain

import (
	"hostbridge/internal/ast"
	"hostbridge/internal/emitter"
)

// CompilerHost is everything a Program needs from its environment.
type CompilerHost interface {
	// GetSourceFile reads and parses fileName. On failure it calls onError
	// (when non-nil) with a reason and returns nil.
	GetSourceFile(fileName string, target emitter.Target, onError func(message string)) *ast.File
	GetDefaultLibFileName(opts Options) string
	WriteFile(fileName, data string, writeBOM bool, onError func(message string))
	GetCurrentDirectory() string
	GetCanonicalFileName(fileName string) string
	UseCaseSensitiveFileNames() bool
	GetNewLine() string
	FileExists(fileName string) bool
	ReadFile(fileName string) (string, bool)
	DirectoryExists(dir string) bool
}

// RealpathHost resolves symbolic links. Without it paths are used as given.
type RealpathHost interface {
	Realpath(path string) string
}

// DirectoryReader lists directories. Without it no directory is enumerated.
type DirectoryReader interface {
	GetDirectories(dir string) []string
	ReadDirectory(dir string, extensions []string) []string
}

// ContentHasher fingerprints file text. Without it no hashes are recorded.
type ContentHasher interface {
	CreateHash(data string) string
}

func realpath(host CompilerHost, p string) string {
	if rp, ok := host.(RealpathHost); ok {
		return rp.Realpath(p)
	}
	return p
}
