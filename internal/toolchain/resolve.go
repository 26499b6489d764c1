package toolchain

import (
	"slices"
	"strings"

	"hostbridge/internal/source"
)

var (
	classicExtensions = []string{".ts", ".d.ts"}
	nodeExtensions    = []string{".ts", ".tsx", ".d.ts"}
)

// ResolveModuleName maps an import specifier to a file path using the
// configured strategy. ok is false when no candidate exists on the host.
func ResolveModuleName(specifier, containingFile string, opts Options, host CompilerHost) (string, bool) {
	dir := source.DirName(containingFile)
	// importers with a custom extension may omit it on their siblings
	own := source.Extension(containingFile)
	if isRelativeSpecifier(specifier) {
		candidate := source.JoinPath(dir, specifier)
		if opts.ModuleResolution == ResolutionNode {
			if p, ok := tryNodeFile(candidate, host); ok {
				return p, true
			}
		} else if p, ok := tryFile(candidate, classicExtensions, host); ok {
			return p, true
		}
		return tryOwnExtension(candidate, own, host)
	}

	if opts.BaseURL != "" {
		base := source.JoinPath(host.GetCurrentDirectory(), opts.BaseURL)
		candidate := source.JoinPath(base, specifier)
		if opts.ModuleResolution == ResolutionNode {
			if p, ok := tryNodeFile(candidate, host); ok {
				return p, true
			}
		} else if p, ok := tryFile(candidate, classicExtensions, host); ok {
			return p, true
		}
	}

	// walk outwards from the importing file's directory
	for cur := dir; ; {
		if opts.ModuleResolution == ResolutionNode {
			if p, ok := tryNodeFile(source.JoinPath(cur, "node_modules/"+specifier), host); ok {
				return p, true
			}
		} else if p, ok := tryFile(source.JoinPath(cur, specifier), classicExtensions, host); ok {
			return p, true
		}
		parent := source.DirName(cur)
		if parent == cur || cur == "" || cur == "." {
			break
		}
		cur = parent
	}
	return "", false
}

func tryOwnExtension(candidate, ext string, host CompilerHost) (string, bool) {
	if ext == "" || slices.Contains(nodeExtensions, strings.ToLower(ext)) {
		return "", false
	}
	if p := candidate + ext; host.FileExists(p) {
		return p, true
	}
	return "", false
}

func isRelativeSpecifier(s string) bool {
	return strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../") || s == "." || s == ".." || source.IsRooted(s)
}

// tryFile checks candidate as written when it already has an extension,
// then candidate plus each extension.
func tryFile(candidate string, exts []string, host CompilerHost) (string, bool) {
	ext := source.Extension(candidate)
	if ext != "" && host.FileExists(candidate) {
		return candidate, true
	}
	if strings.EqualFold(ext, ".js") {
		for _, alt := range []string{".ts", ".d.ts"} {
			if p := source.ChangeExtension(candidate, alt); host.FileExists(p) {
				return p, true
			}
		}
	}
	for _, e := range exts {
		if p := candidate + e; host.FileExists(p) {
			return p, true
		}
	}
	return "", false
}

func tryNodeFile(candidate string, host CompilerHost) (string, bool) {
	if p, ok := tryFile(candidate, nodeExtensions, host); ok {
		return p, true
	}
	return tryFile(source.JoinPath(candidate, "index"), nodeExtensions, host)
}
