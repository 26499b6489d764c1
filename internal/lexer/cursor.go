package lexer

import "hostbridge/internal/source"

// Cursor walks the bytes of one file. Reads past the end yield 0.
type Cursor struct {
	File *source.File
	Off  uint32
}

func NewCursor(f *source.File) Cursor { return Cursor{File: f} }

// at returns the byte at absolute offset off, or 0 past the end.
func (c *Cursor) at(off uint32) byte {
	if off >= c.File.Len() {
		return 0
	}
	return c.File.Content[off]
}

func (c *Cursor) EOF() bool { return c.Off >= c.File.Len() }

// Peek returns the current byte without consuming it.
func (c *Cursor) Peek() byte { return c.at(c.Off) }

// PeekAt looks n bytes ahead.
func (c *Cursor) PeekAt(n uint32) byte { return c.at(c.Off + n) }

// Bump consumes one byte and returns it.
func (c *Cursor) Bump() byte {
	b := c.at(c.Off)
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Eat consumes the current byte only if it equals b.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.File.Content[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// Mark запоминает позицию начала токена.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// SpanFrom covers everything consumed since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{Start: uint32(m), End: c.Off}
}
