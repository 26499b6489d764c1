// Package testkit holds structural checks shared by parser and fuzz tests.
package testkit

import (
	"fmt"

	"hostbridge/internal/ast"
	"hostbridge/internal/source"
)

// CheckSpanBounds holds for any parse result, however broken the input:
//  1. the file span covers exactly the file content
//  2. every statement and expression span is well-formed and inside the file
func CheckSpanBounds(f *ast.File) error {
	if f == nil || f.Source == nil {
		return fmt.Errorf("nil file or source")
	}
	size := f.Source.Len()
	if f.S.Start != 0 || f.S.End != size {
		return fmt.Errorf("file span %v does not cover content [0,%d)", f.S, size)
	}

	var err error
	ast.Inspect(f, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		sp := n.Span()
		if sp.End < sp.Start {
			err = fmt.Errorf("%T: inverted span %v", n, sp)
		} else if sp.End > size {
			err = fmt.Errorf("%T: span %v beyond content length %d", n, sp, size)
		}
		return err == nil
	})
	return err
}

// CheckSpanInvariants adds ordering checks that only hold for inputs that
// parse cleanly: top-level statements appear in source order without
// overlapping.
func CheckSpanInvariants(f *ast.File) error {
	if err := CheckSpanBounds(f); err != nil {
		return err
	}
	var prev source.Span
	for i, st := range f.Stmts {
		sp := st.Span()
		if i > 0 && sp.Start < prev.End {
			return fmt.Errorf("statement %d (%T) span %v overlaps previous %v", i, st, sp, prev)
		}
		prev = sp
	}
	return nil
}
