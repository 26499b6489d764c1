package emitter

import (
	"strings"
	"unicode/utf8"

	"hostbridge/internal/source"
)

const indentUnit = "    "

// printer accumulates generated text and tracks the generated position
// for source map segments.
type printer struct {
	sb          strings.Builder
	nl          string
	indent      int
	line, col   int
	atLineStart bool
	src         *source.File
	mappings    []mapping
}

func newPrinter(src *source.File, nl string) *printer {
	return &printer{nl: nl, src: src, atLineStart: true}
}

func (p *printer) ensureIndent() {
	if !p.atLineStart {
		return
	}
	p.atLineStart = false
	for range p.indent {
		p.sb.WriteString(indentUnit)
		p.col += len(indentUnit)
	}
}

// write appends s, which must not contain line breaks.
func (p *printer) write(s string) {
	p.ensureIndent()
	p.sb.WriteString(s)
	p.col += utf8.RuneCountInString(s)
}

func (p *printer) newline() {
	p.sb.WriteString(p.nl)
	p.line++
	p.col = 0
	p.atLineStart = true
}

// line writes s followed by a line break.
func (p *printer) writeLine(s string) {
	p.write(s)
	p.newline()
}

// mark maps the current generated position to the source offset off.
func (p *printer) mark(off uint32) {
	if p.src == nil {
		return
	}
	p.ensureIndent()
	lc := p.src.Resolve(off)
	p.mappings = append(p.mappings, mapping{
		genLine: p.line,
		genCol:  p.col,
		srcLine: int(lc.Line) - 1,
		srcCol:  int(lc.Col) - 1,
	})
}

func (p *printer) String() string { return p.sb.String() }
