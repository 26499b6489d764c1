package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"hostbridge/internal/bridge"
)

// manifest describes a batch of compilations over one directory snapshot.
//
//	root = "src"
//	extensions = [".ts"]
//
//	[[requests]]
//	inputPath = "main.ts"
//	[requests.options]
//	target = "es2015"
type manifest struct {
	// Root is the directory snapshotted into the virtual file set,
	// relative to the manifest file. Defaults to the manifest's directory.
	Root string `toml:"root" yaml:"root"`
	// Extensions filters the snapshot; empty keeps every file.
	Extensions []string         `toml:"extensions" yaml:"extensions"`
	Requests   []bridge.Request `toml:"requests" yaml:"requests"`

	path string
}

// rootDir returns the absolute on-disk directory of the snapshot.
func (m *manifest) rootDir() string {
	base := filepath.Dir(m.path)
	if m.Root == "" {
		return base
	}
	if filepath.IsAbs(m.Root) {
		return filepath.Clean(m.Root)
	}
	return filepath.Join(base, m.Root)
}

func loadManifest(path string) (*manifest, error) {
	var m manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		meta, err := toml.DecodeFile(path, &m)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			// options tables are free-form, anything else is a typo
			for _, key := range undecoded {
				if len(key) > 0 && key[0] != "requests" {
					return nil, fmt.Errorf("%s: unknown key %q", path, key.String())
				}
			}
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported manifest type (want .toml, .yaml or .yml)", path)
	}

	if len(m.Requests) == 0 {
		return nil, fmt.Errorf("%s: no requests", path)
	}
	for i, req := range m.Requests {
		if strings.TrimSpace(req.InputPath) == "" {
			return nil, fmt.Errorf("%s: request %d has no inputPath", path, i+1)
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	m.path = abs
	return &m, nil
}
