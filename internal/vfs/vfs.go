// Package vfs supplies the files a compilation reads. A Provider is owned
// by the caller; the bridge only ever reads from it.
package vfs

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"hostbridge/internal/source"
)

// ErrNotFound is returned by ReadFile for paths the provider does not know.
var ErrNotFound = errors.New("file not found")

// Provider is the read side of a virtual file set.
type Provider interface {
	// ReadFile returns the file's text. A missing file yields an error
	// wrapping ErrNotFound; other errors are I/O failures.
	ReadFile(path string) (string, error)
	FileExists(path string) bool
	GetCurrentDirectory() string
}

// MemProvider is a map-backed Provider. It is safe for concurrent readers,
// so one snapshot can serve several independent compilations.
type MemProvider struct {
	mu    sync.RWMutex
	files map[string]string
	cwd   string
}

// NewMemProvider builds a provider rooted at cwd. Keys of files are
// normalized; relative keys are resolved against cwd.
func NewMemProvider(cwd string, files map[string]string) *MemProvider {
	if cwd == "" {
		cwd = "/"
	}
	m := &MemProvider{files: make(map[string]string, len(files)), cwd: source.NormalizePath(cwd)}
	for p, text := range files {
		m.files[m.abs(p)] = text
	}
	return m
}

func (m *MemProvider) abs(p string) string {
	return source.JoinPath(m.cwd, p)
}

// Set adds or replaces a file.
func (m *MemProvider) Set(path, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[m.abs(path)] = text
}

// ReadFile implements Provider.
func (m *MemProvider) ReadFile(path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	text, ok := m.files[m.abs(path)]
	if !ok {
		return "", fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return text, nil
}

// FileExists implements Provider.
func (m *MemProvider) FileExists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[m.abs(path)]
	return ok
}

// GetCurrentDirectory implements Provider.
func (m *MemProvider) GetCurrentDirectory() string { return m.cwd }

// Paths returns every stored path in sorted order.
func (m *MemProvider) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.files))
}

// LoadDir snapshots every regular file under dir whose extension is in
// exts (all files when exts is empty) into a MemProvider. Paths inside the
// provider are rooted at "/" with dir as the virtual current directory.
func LoadDir(dir string, exts ...string) (*MemProvider, error) {
	files := make(map[string]string)
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if len(exts) > 0 && !slices.Contains(exts, source.Extension(d.Name())) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("snapshot %s: %w", p, err)
		}
		files["/"+filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewMemProvider("/", files), nil
}
