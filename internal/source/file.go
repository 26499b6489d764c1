package source

import (
	"crypto/sha256"
	"fmt"

	"fortio.org/safecast"
)

// NewFile normalizes BOM/CRLF, builds the line index and hashes content.
func NewFile(path string, content []byte) *File {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return &File{
		Path:    NormalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
}

// NewVirtualFile creates a file that did not come from a provider (bundled library, tests).
func NewVirtualFile(path string, content []byte) *File {
	f := NewFile(path, content)
	f.Flags |= FileVirtual
	return f
}

// Len returns the content length as uint32.
func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return n
}

// Resolve converts a byte offset into a line/column position.
func (f *File) Resolve(off uint32) LineCol {
	if off > f.Len() {
		off = f.Len()
	}
	return toLineCol(f.LineIdx, off)
}

// ResolveSpan converts a span into start and end positions.
func (f *File) ResolveSpan(span Span) (start, end LineCol) {
	return f.Resolve(span.Start), f.Resolve(span.End)
}

// Text returns the source text covered by span, clamped to the file bounds.
func (f *File) Text(span Span) string {
	n := f.Len()
	start, end := span.Start, span.End
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	if end < start {
		return ""
	}
	return string(f.Content[start:end])
}

// GetLine возвращает строку с заданным номером (1-based) из файла.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenLineIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent := f.Len()

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if (lineNum - 1) < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}
	if start > lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}
	return string(f.Content[start:end])
}

// LineCount returns the number of lines in the file.
func (f *File) LineCount() int {
	return len(f.LineIdx) + 1
}
