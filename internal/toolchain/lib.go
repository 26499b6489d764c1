package toolchain

import (
	"embed"
	"strings"

	"hostbridge/internal/emitter"
)

//go:embed lib/*.d.ts
var libFS embed.FS

// DefaultLibDir is the virtual directory the bundled libraries live in.
const DefaultLibDir = "/__hostbridge__/lib"

// DefaultLibFileName is the bare library file name for the target.
func DefaultLibFileName(opts Options) string {
	if opts.Target == emitter.TargetES5 {
		return "lib.es5.d.ts"
	}
	return "lib.es2015.d.ts"
}

// DefaultLibFilePath is the rooted path of the target's library.
func DefaultLibFilePath(opts Options) string {
	return DefaultLibDir + "/" + DefaultLibFileName(opts)
}

// IsDefaultLibPath reports whether path names one of the bundled libraries.
func IsDefaultLibPath(path string) bool {
	_, ok := LibContent(path)
	return ok
}

// LibContent returns the text of a bundled library addressed by its rooted path.
func LibContent(path string) (string, bool) {
	name, ok := strings.CutPrefix(path, DefaultLibDir+"/")
	if !ok || strings.Contains(name, "/") {
		return "", false
	}
	data, err := libFS.ReadFile("lib/" + name)
	if err != nil {
		return "", false
	}
	return string(data), true
}
