package vfs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMemProvider(t *testing.T) {
	p := NewMemProvider("/proj", map[string]string{
		"a.ts":      "let a = 1;",
		"/lib/b.ts": "let b = 2;",
	})
	if !p.FileExists("/proj/a.ts") || !p.FileExists("a.ts") {
		t.Fatalf("a.ts should exist under cwd")
	}
	text, err := p.ReadFile("/lib/b.ts")
	if err != nil || text != "let b = 2;" {
		t.Fatalf("ReadFile = %q, %v", text, err)
	}
	if _, err := p.ReadFile("/missing.ts"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	p.Set("/lib/b.ts", "let b = 3;")
	if text, _ := p.ReadFile("/lib/b.ts"); text != "let b = 3;" {
		t.Fatalf("after Set = %q", text)
	}
	if got := p.Paths(); len(got) != 2 || got[0] != "/lib/b.ts" || got[1] != "/proj/a.ts" {
		t.Fatalf("Paths = %v", got)
	}
	if p.GetCurrentDirectory() != "/proj" {
		t.Fatalf("cwd = %s", p.GetCurrentDirectory())
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, text string) {
		t.Helper()
		full := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(text), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	write("src/a.ts", "import { b } from \"./b\";")
	write("src/b.ts", "export const b = 1;")
	write("README.md", "# readme")
	write(".git/HEAD", "ref")

	p, err := LoadDir(dir, ".ts")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Paths(); len(got) != 2 || got[0] != "/src/a.ts" || got[1] != "/src/b.ts" {
		t.Fatalf("Paths = %v", got)
	}

	all, err := LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if all.FileExists("/.git/HEAD") || !all.FileExists("/README.md") {
		t.Fatalf("Paths = %v", all.Paths())
	}
}
