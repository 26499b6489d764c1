package host

import (
	"errors"

	"hostbridge/internal/ast"
	"hostbridge/internal/emitter"
	"hostbridge/internal/toolchain"
	"hostbridge/internal/vfs"
)

const bom = "\uFEFF"

// CompilerHost presents a System in the shape toolchain.CreateProgram
// wants. The bundled standard library is served from the toolchain itself
// and never reaches the System.
type CompilerHost struct {
	sys *System
}

var _ toolchain.CompilerHost = (*CompilerHost)(nil)

// NewCompilerHost wraps sys.
func NewCompilerHost(sys *System) *CompilerHost {
	return &CompilerHost{sys: sys}
}

// System returns the wrapped System.
func (h *CompilerHost) System() *System { return h.sys }

// GetSourceFile reads and parses fileName. Read failures go to onError
// and produce nil.
func (h *CompilerHost) GetSourceFile(fileName string, target emitter.Target, onError func(string)) *ast.File {
	if text, ok := toolchain.LibContent(fileName); ok {
		return toolchain.CreateSourceFile(fileName, text, target)
	}
	text, err := h.sys.Read(fileName)
	if err != nil {
		if onError != nil {
			onError(readFailure(err))
		}
		return nil
	}
	return toolchain.CreateSourceFile(fileName, text, target)
}

func readFailure(err error) string {
	if errors.Is(err, vfs.ErrNotFound) {
		return vfs.ErrNotFound.Error()
	}
	return err.Error()
}

// GetDefaultLibFileName returns the rooted path of the bundled library.
func (h *CompilerHost) GetDefaultLibFileName(opts toolchain.Options) string {
	return toolchain.DefaultLibFilePath(opts)
}

// WriteFile stores data in the sink; failures are funnelled to onError.
func (h *CompilerHost) WriteFile(fileName, data string, writeBOM bool, onError func(string)) {
	if writeBOM {
		data = bom + data
	}
	if err := h.sys.WriteFile(fileName, data); err != nil && onError != nil {
		onError(err.Error())
	}
}

func (h *CompilerHost) GetCurrentDirectory() string { return h.sys.GetCurrentDirectory() }

func (h *CompilerHost) GetCanonicalFileName(fileName string) string {
	return h.sys.GetCanonicalFileName(fileName)
}

func (h *CompilerHost) UseCaseSensitiveFileNames() bool { return h.sys.UseCaseSensitiveFileNames() }

func (h *CompilerHost) GetNewLine() string { return h.sys.NewLine() }

// FileExists includes the bundled library.
func (h *CompilerHost) FileExists(fileName string) bool {
	return toolchain.IsDefaultLibPath(fileName) || h.sys.FileExists(fileName)
}

// ReadFile includes the bundled library.
func (h *CompilerHost) ReadFile(fileName string) (string, bool) {
	if text, ok := toolchain.LibContent(fileName); ok {
		return text, true
	}
	return h.sys.ReadFile(fileName)
}

// DirectoryExists always answers true: a virtual file set has no
// directories of its own, and resolution probes files directly.
func (h *CompilerHost) DirectoryExists(string) bool { return true }
