package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadManifestTOML(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "build.toml")
	writeFile(t, path, `# two inputs
root = "src"
extensions = [".src"]

[[requests]]
inputPath = "a.src"

[[requests]]
inputPath = "b.src"
[requests.options]
transpileOnly = true
target = "es2015"
`)

	m, err := loadManifest(path)
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if got, want := m.rootDir(), filepath.Join(root, "src"); got != want {
		t.Fatalf("rootDir = %q, want %q", got, want)
	}
	if len(m.Requests) != 2 {
		t.Fatalf("requests = %d, want 2", len(m.Requests))
	}
	if m.Requests[0].Options != nil {
		t.Fatalf("first request options = %v, want none", m.Requests[0].Options)
	}
	opts := m.Requests[1].Options
	if opts["transpileOnly"] != true || opts["target"] != "es2015" {
		t.Fatalf("unexpected options: %v", opts)
	}
}

func TestLoadManifestYAML(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "build.yaml")
	writeFile(t, path, `requests:
  - inputPath: main.src
    options:
      noCheck: true
`)

	m, err := loadManifest(path)
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if m.rootDir() != root {
		t.Fatalf("rootDir = %q, want manifest directory %q", m.rootDir(), root)
	}
	if got := m.Requests[0].Options["noCheck"]; got != true {
		t.Fatalf("noCheck = %v", got)
	}
}

func TestLoadManifestRejects(t *testing.T) {
	cases := []struct {
		name string
		file string
		data string
		want string
	}{
		{"no requests", "m.toml", `root = "."`, "no requests"},
		{"empty input", "m.toml", "[[requests]]\ninputPath = \"  \"\n", "has no inputPath"},
		{"unknown toml key", "m.toml", "rooot = \".\"\n[[requests]]\ninputPath = \"a\"\n", "unknown key"},
		{"unknown yaml key", "m.yml", "requests:\n  - inputPath: a\n    extra: 1\n", "failed to parse"},
		{"extension", "m.json", "{}", "unsupported manifest type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.file)
			writeFile(t, path, tc.data)
			_, err := loadManifest(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want containing %q", err, tc.want)
			}
		})
	}
}

func TestParseOptionValues(t *testing.T) {
	got := parseOptionValues(map[string]string{
		"noCheck": "true",
		"strict":  "false",
		"target":  "es5",
		"depth":   "3",
	})
	if got["noCheck"] != true || got["strict"] != false {
		t.Fatalf("booleans not parsed: %v", got)
	}
	if got["target"] != "es5" {
		t.Fatalf("target = %v", got["target"])
	}
	if got["depth"] != int64(3) {
		t.Fatalf("depth = %#v", got["depth"])
	}
	if parseOptionValues(nil) != nil {
		t.Fatal("empty input should give nil options")
	}
}

func TestColorEnabled(t *testing.T) {
	cases := []struct {
		mode string
		tty  bool
		want bool
	}{
		{"auto", true, true},
		{"auto", false, false},
		{"on", false, true},
		{"off", true, false},
	}
	for _, tc := range cases {
		got, err := colorEnabled(tc.mode, tc.tty)
		if err != nil {
			t.Fatalf("colorEnabled(%q): %v", tc.mode, err)
		}
		if got != tc.want {
			t.Fatalf("colorEnabled(%q, %v) = %v", tc.mode, tc.tty, got)
		}
	}
	if _, err := colorEnabled("sometimes", true); err == nil {
		t.Fatal("expected error for bad mode")
	}
}
