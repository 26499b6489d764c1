package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"

	"hostbridge/internal/source"
)

const tabWidth = 4

type palette struct {
	path, errLabel, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:     color.New(color.Bold),
		errLabel: color.New(color.FgRed, color.Bold),
		gutter:   color.New(color.FgBlue),
		caret:    color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.path, p.errLabel, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty пишет записи в человекочитаемом виде:
//
//	<path>:<line>:<col> - error: <message>
//
// затем строку исходника с кареткой под колонкой, если текст доступен.
func Pretty(w io.Writer, recs []Record, lookup SourceLookup, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	var sb strings.Builder
	for i, r := range recs {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeHeader(&sb, pal, r, opts)
		if r.FileName != "" && r.LineNumber > 0 && lookup != nil {
			if text, ok := lookup(r.FileName); ok {
				writeExcerpt(&sb, pal, text, r, opts.Width)
			}
		}
	}
	if opts.Summary && len(recs) > 0 {
		sb.WriteString("\n")
		sb.WriteString(summary(recs, opts.Color))
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func displayPath(p string, opts PrettyOpts) string {
	switch opts.PathMode {
	case PathModeRelative:
		if opts.BaseDir != "" {
			return source.RelativePath(p, opts.BaseDir)
		}
	case PathModeBasename:
		return source.BaseName(p)
	}
	return p
}

func writeHeader(sb *strings.Builder, pal palette, r Record, opts PrettyOpts) {
	if r.FileName != "" {
		loc := displayPath(r.FileName, opts)
		if r.LineNumber > 0 {
			loc += fmt.Sprintf(":%d:%d", r.LineNumber, r.ColumnNumber)
		}
		sb.WriteString(pal.path.Sprint(loc))
		sb.WriteString(" - ")
	}
	sb.WriteString(pal.errLabel.Sprint("error"))
	sb.WriteString(": ")
	lines := strings.Split(strings.ReplaceAll(r.Message, "\r\n", "\n"), "\n")
	sb.WriteString(lines[0])
	sb.WriteString("\n")
	for _, l := range lines[1:] {
		sb.WriteString("  ")
		sb.WriteString(l)
		sb.WriteString("\n")
	}
}

func writeExcerpt(sb *strings.Builder, pal palette, text string, r Record, width int) {
	f := source.NewVirtualFile(r.FileName, []byte(text))
	line, err := lineNumber(r.LineNumber)
	if err != nil || int(line) > f.LineCount() {
		return
	}
	raw := f.GetLine(line)
	col := min(max(r.ColumnNumber-1, 0), len(raw))
	shown := expandTabs(raw)
	prefix := runewidth.StringWidth(expandTabs(raw[:col]))
	if width > 0 {
		shown = runewidth.Truncate(shown, width, "...")
		prefix = min(prefix, width)
	}

	num := strconv.Itoa(r.LineNumber)
	pad := strings.Repeat(" ", len(num))
	sb.WriteString("\n")
	sb.WriteString(pal.gutter.Sprint(num + " | "))
	sb.WriteString(shown)
	sb.WriteString("\n")
	sb.WriteString(pal.gutter.Sprint(pad + " | "))
	sb.WriteString(strings.Repeat(" ", prefix))
	sb.WriteString(pal.caret.Sprint("^"))
	sb.WriteString("\n")
}

func lineNumber(n int) (uint32, error) {
	if n < 1 {
		return 0, fmt.Errorf("line %d out of range", n)
	}
	return safecast.Conv[uint32](n)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func summary(recs []Record, colored bool) string {
	files := lo.Uniq(lo.FilterMap(recs, func(r Record, _ int) (string, bool) {
		return r.FileName, r.FileName != ""
	}))
	noun := "errors"
	if len(recs) == 1 {
		noun = "error"
	}
	msg := fmt.Sprintf("Found %d %s", len(recs), noun)
	switch len(files) {
	case 0:
		msg += "."
	case 1:
		msg += " in " + files[0] + "."
	default:
		msg += fmt.Sprintf(" in %d files.", len(files))
	}
	if !colored {
		return msg
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render(msg)
}
