package diag

import (
	"fmt"
	"strings"
)

// FormatShort renders diagnostics one per line in a stable form:
//
//	error TS2322 a.ts:1:5 Type 'string' is not assignable to type 'number'.
//
// Chained messages are folded onto the same line. Used by tests and the CLI short output.
func FormatShort(ds []Diagnostic) string {
	lines := make([]string, 0, len(ds))
	for i := range ds {
		d := &ds[i]
		loc := "-"
		if pos, ok := d.Position(); ok {
			loc = fmt.Sprintf("%s:%d:%d", d.FilePath(), pos.Line, pos.Col)
		}
		msg := strings.Join(strings.Fields(d.Flatten("\n")), " ")
		lines = append(lines, fmt.Sprintf("%s %s %s %s", strings.ToLower(d.Severity.String()), d.Code.ID(), loc, msg))
	}
	return strings.Join(lines, "\n")
}
