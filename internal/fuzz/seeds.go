package fuzztests

import (
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
)

var languageSeeds = []string{
	"",
	"print(1+1)",
	"let x: number = \"hello\";\n",
	"import { dep } from \"./dep\";\nexport const y = dep + 1;\n",
	"function add(a: number, b: number): number { return a + b; }\nprint(add(1, 2));\n",
	"export function greet(name: string): string { return \"hi \" + name; }\n",
	"let xs: number[] = [1, 2, 3];\nfor (let i = 0; i < xs.length; i++) { print(xs[i]); }\n",
	"if (true) { let s = 'a'; } else { let s = \"b\"; }\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addLibSeeds(f)
}

// addLibSeeds adds the bundled declaration files; they cover most of the
// type syntax the parser knows.
func addLibSeeds(f *testing.F) {
	paths, err := filepath.Glob(filepath.Join("..", "toolchain", "lib", "*.d.ts"))
	if err != nil {
		return
	}
	for _, p := range paths {
		// #nosec G304 -- path comes from a fixed repository glob
		src, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		f.Add(clampSeed(src))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
