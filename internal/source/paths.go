package source

import (
	"path"
	"strings"
)

// Virtual paths always use forward slashes; drive-letter roots ("c:/") are kept as-is.

// NormalizePath converts separators to '/' and cleans the path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	vol, rest := splitVolume(p)
	if rest == "" {
		return vol
	}
	return vol + path.Clean(rest)
}

// IsRooted reports whether p is absolute: "/x" or "c:/x".
func IsRooted(p string) bool {
	p = strings.ReplaceAll(p, "\\", "/")
	if strings.HasPrefix(p, "/") {
		return true
	}
	vol, _ := splitVolume(p)
	return vol != ""
}

// JoinPath resolves rel against base unless rel is already rooted.
func JoinPath(base, rel string) string {
	if rel == "" {
		return NormalizePath(base)
	}
	if IsRooted(rel) || base == "" {
		return NormalizePath(rel)
	}
	return NormalizePath(strings.TrimRight(NormalizePath(base), "/") + "/" + rel)
}

// DirName returns the directory part of p.
func DirName(p string) string {
	p = NormalizePath(p)
	vol, rest := splitVolume(p)
	if rest == "" {
		return vol
	}
	return vol + path.Dir(rest)
}

// BaseName returns the last element of p.
func BaseName(p string) string {
	return path.Base(NormalizePath(p))
}

// RelativePath returns target relative to base. When target is not below
// base the normalized target is returned unchanged.
func RelativePath(target, base string) string {
	target = NormalizePath(target)
	base = NormalizePath(base)
	if base == "/" {
		return strings.TrimPrefix(target, "/")
	}
	base = strings.TrimRight(base, "/")
	if base == "" || base == "." {
		return target
	}
	if target == base {
		return "."
	}
	if strings.HasPrefix(target, base+"/") {
		return target[len(base)+1:]
	}
	return target
}

// IsUnder reports whether target equals dir or lies below it.
func IsUnder(target, dir string) bool {
	target = NormalizePath(target)
	dir = strings.TrimRight(NormalizePath(dir), "/")
	if dir == "" {
		return true
	}
	return target == dir || strings.HasPrefix(target, dir+"/") || dir == "/" && strings.HasPrefix(target, "/")
}

// declarationSuffixes lists compound extensions that must be stripped as a whole.
var declarationSuffixes = []string{".d.ts", ".js.map", ".d.ts.map"}

// Extension returns the file extension, treating ".d.ts" as one extension.
func Extension(p string) string {
	lower := strings.ToLower(p)
	for _, suf := range declarationSuffixes {
		if strings.HasSuffix(lower, suf) {
			return p[len(p)-len(suf):]
		}
	}
	return path.Ext(p)
}

// ChangeExtension replaces the extension of p (see Extension) with ext.
func ChangeExtension(p, ext string) string {
	return strings.TrimSuffix(p, Extension(p)) + ext
}

// CommonDir returns the deepest directory containing every path.
func CommonDir(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	common := strings.Split(DirName(paths[0]), "/")
	for _, p := range paths[1:] {
		parts := strings.Split(DirName(p), "/")
		n := 0
		for n < len(common) && n < len(parts) && common[n] == parts[n] {
			n++
		}
		common = common[:n]
	}
	if len(common) == 1 && common[0] == "" {
		return "/"
	}
	return strings.Join(common, "/")
}

func splitVolume(p string) (vol, rest string) {
	if len(p) >= 2 && p[1] == ':' && isASCIILetter(p[0]) && (len(p) == 2 || p[2] == '/') {
		return p[:2], p[2:]
	}
	return "", p
}

func isASCIILetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// LinkPath returns target as seen from dir, climbing with ".." where needed
// (e.g. the "sources" entry of a source map). Paths on different volumes
// are returned unchanged.
func LinkPath(dir, target string) string {
	dir, target = NormalizePath(dir), NormalizePath(target)
	dv, drest := splitVolume(dir)
	tv, trest := splitVolume(target)
	if !strings.EqualFold(dv, tv) || !IsRooted(dir) || !IsRooted(target) {
		return target
	}
	from := strings.Split(strings.Trim(drest, "/"), "/")
	to := strings.Split(strings.Trim(trest, "/"), "/")
	if len(from) == 1 && from[0] == "" {
		from = nil
	}
	n := 0
	for n < len(from) && n < len(to) && from[n] == to[n] {
		n++
	}
	parts := make([]string, 0, len(from)-n+len(to)-n)
	for range from[n:] {
		parts = append(parts, "..")
	}
	parts = append(parts, to[n:]...)
	return strings.Join(parts, "/")
}
