// Package diagfmt turns toolchain diagnostics into flat error records and
// renders them for people.
package diagfmt

import (
	"fortio.org/safecast"
	"github.com/samber/lo"

	"hostbridge/internal/diag"
	"hostbridge/internal/toolchain"
)

// Record is one error as the bridge reports it. File-less errors have an
// empty FileName and zero position.
type Record struct {
	Message      string `json:"message" msgpack:"message" yaml:"message"`
	FileName     string `json:"fileName" msgpack:"fileName" yaml:"fileName"`
	LineNumber   int    `json:"lineNumber" msgpack:"lineNumber" yaml:"lineNumber"`
	ColumnNumber int    `json:"columnNumber" msgpack:"columnNumber" yaml:"columnNumber"`
}

// Translate keeps error-severity diagnostics and flattens each into a Record.
// Chained messages are joined with newLine.
func Translate(ds []diag.Diagnostic, newLine string) []Record {
	errs := lo.Filter(ds, func(d diag.Diagnostic, _ int) bool {
		return d.Severity == diag.SevError
	})
	return lo.Map(errs, func(d diag.Diagnostic, _ int) Record {
		return TranslateOne(d, newLine)
	})
}

// TranslateOne converts d regardless of its severity.
func TranslateOne(d diag.Diagnostic, newLine string) Record {
	rec := Record{
		Message:  toolchain.FlattenMessage(d, newLine),
		FileName: d.FilePath(),
	}
	if pos, ok := d.Position(); ok {
		// позиции вне диапазона int просто не сообщаем
		if line, err := safecast.Conv[int](pos.Line); err == nil {
			rec.LineNumber = line
		}
		if col, err := safecast.Conv[int](pos.Col); err == nil {
			rec.ColumnNumber = col
		}
	}
	return rec
}
