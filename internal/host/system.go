package host

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/cases"

	"hostbridge/internal/source"
	"hostbridge/internal/toolchain"
	"hostbridge/internal/trace"
	"hostbridge/internal/vfs"
)

// Options configure a System.
type Options struct {
	// UseCaseSensitiveFileNames turns off case folding of canonical names.
	UseCaseSensitiveFileNames bool
	// NewLine is reported to the toolchain; "\n" when empty.
	NewLine string
}

type output struct {
	path string // as first written
	text string
}

// System is the request-scoped file-system view: sink over provider.
// It is not safe for concurrent use.
type System struct {
	ctx      context.Context
	provider vfs.Provider
	opts     Options
	fold     cases.Caser

	sink     map[string]output // canonical path -> last write
	ledger   []string          // every recorded read, in order
	disposed bool
}

// NewSystem creates a System over provider. ctx carries the tracer and
// request ID used for host-scope trace events.
func NewSystem(ctx context.Context, provider vfs.Provider, opts Options) *System {
	if opts.NewLine == "" {
		opts.NewLine = "\n"
	}
	return &System{
		ctx:      ctx,
		provider: provider,
		opts:     opts,
		fold:     cases.Fold(),
		sink:     make(map[string]output),
	}
}

// GetCanonicalFileName normalizes separators and, unless the System is
// case-sensitive, folds case.
func (s *System) GetCanonicalFileName(path string) string {
	p := source.NormalizePath(path)
	if s.opts.UseCaseSensitiveFileNames {
		return p
	}
	return s.fold.String(p)
}

// UseCaseSensitiveFileNames reports the canonicalization policy.
func (s *System) UseCaseSensitiveFileNames() bool { return s.opts.UseCaseSensitiveFileNames }

// NewLine returns the newline sequence for emitted text and flattened messages.
func (s *System) NewLine() string { return s.opts.NewLine }

// GetCurrentDirectory delegates to the provider.
func (s *System) GetCurrentDirectory() string {
	if s.disposed {
		return ""
	}
	return s.provider.GetCurrentDirectory()
}

// Read looks path up in the sink, then in the provider. Missing files
// yield an error wrapping vfs.ErrNotFound.
func (s *System) Read(path string) (string, error) {
	if s.disposed {
		return "", ErrDisposed
	}
	s.record(path)
	if out, ok := s.sink[s.GetCanonicalFileName(path)]; ok {
		trace.Point(s.ctx, trace.ScopeHost, "read", path+" <- sink")
		return out.text, nil
	}
	text, err := s.provider.ReadFile(path)
	if err != nil {
		trace.Point(s.ctx, trace.ScopeHost, "read_miss", path)
		if errors.Is(err, vfs.ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	trace.Point(s.ctx, trace.ScopeHost, "read", path)
	return text, nil
}

// ReadFile is Read with "not found" and I/O failures folded into ok=false.
func (s *System) ReadFile(path string) (string, bool) {
	text, err := s.Read(path)
	return text, err == nil
}

func (s *System) record(path string) {
	if !source.IsRooted(path) || toolchain.IsDefaultLibPath(path) {
		return
	}
	s.ledger = append(s.ledger, source.NormalizePath(path))
}

// FileExists checks the sink, then the provider.
func (s *System) FileExists(path string) bool {
	if s.disposed {
		return false
	}
	if _, ok := s.sink[s.GetCanonicalFileName(path)]; ok {
		return true
	}
	return s.provider.FileExists(path)
}

// WriteFile stores data under the canonical form of path, replacing any
// earlier write.
func (s *System) WriteFile(path, data string) error {
	if s.disposed {
		return ErrDisposed
	}
	key := s.GetCanonicalFileName(path)
	first := path
	if prev, ok := s.sink[key]; ok {
		first = prev.path
	}
	s.sink[key] = output{path: source.NormalizePath(first), text: data}
	trace.Point(s.ctx, trace.ScopeHost, "write", path)
	return nil
}

// Output returns what was last written to path.
func (s *System) Output(path string) (string, bool) {
	if s.disposed {
		return "", false
	}
	out, ok := s.sink[s.GetCanonicalFileName(path)]
	return out.text, ok
}

// OutputPaths lists written paths in sorted order.
func (s *System) OutputPaths() []string {
	paths := make([]string, 0, len(s.sink))
	for _, key := range slices.Sorted(maps.Keys(s.sink)) {
		paths = append(paths, s.sink[key].path)
	}
	return paths
}

// IncludedFilePaths returns the ledger as a set in first-read order.
// Repeated reads of one file (in any letter case, unless case-sensitive)
// appear once.
func (s *System) IncludedFilePaths() []string {
	if s.disposed {
		return nil
	}
	return lo.UniqBy(s.ledger, s.GetCanonicalFileName)
}

// Dispose drops the ledger and the sink. The System is unusable afterwards.
func (s *System) Dispose() {
	s.sink = nil
	s.ledger = nil
	s.disposed = true
}

// Disposed reports whether Dispose was called.
func (s *System) Disposed() bool { return s.disposed }

// DeleteFile is not supported.
func (s *System) DeleteFile(string) error { return unsupported("deleteFile") }

// GetModifiedTime is not supported.
func (s *System) GetModifiedTime(string) (time.Time, error) {
	return time.Time{}, unsupported("getModifiedTime")
}

// Realpath is not supported.
func (s *System) Realpath(string) (string, error) { return "", unsupported("realpath") }

// GetEnv is not supported.
func (s *System) GetEnv(string) (string, error) { return "", unsupported("getEnvironmentVariable") }

// Exit is not supported.
func (s *System) Exit(int) error { return unsupported("exit") }

// ReadDirectory is not supported.
func (s *System) ReadDirectory(string, []string) ([]string, error) {
	return nil, unsupported("readDirectory")
}

// GetDirectories is not supported.
func (s *System) GetDirectories(string) ([]string, error) {
	return nil, unsupported("getDirectories")
}
