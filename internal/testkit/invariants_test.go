package testkit

import (
	"strings"
	"testing"

	"hostbridge/internal/ast"
	"hostbridge/internal/source"
)

func file(src string, stmts ...ast.Stmt) *ast.File {
	sf := source.NewVirtualFile("/a.ts", []byte(src))
	return &ast.File{Sp: ast.Sp{S: source.Span{End: sf.Len()}}, Source: sf, Stmts: stmts}
}

func stmt(start, end uint32) ast.Stmt {
	return &ast.EmptyStmt{Sp: ast.Sp{S: source.Span{Start: start, End: end}}}
}

func TestCheckSpanInvariants(t *testing.T) {
	tests := []struct {
		name string
		f    *ast.File
		want string
	}{
		{"ok", file(";;", stmt(0, 1), stmt(1, 2)), ""},
		{"short file span", &ast.File{Source: source.NewVirtualFile("/a.ts", []byte(";"))}, "does not cover"},
		{"inverted", file(";;", stmt(2, 1)), "inverted"},
		{"beyond", file(";", stmt(0, 5)), "beyond content"},
		{"overlap", file(";;;", stmt(0, 2), stmt(1, 3)), "overlaps"},
		{"nil", nil, "nil file"},
	}
	for _, tt := range tests {
		err := CheckSpanInvariants(tt.f)
		if tt.want == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: err = %v, want %q", tt.name, err, tt.want)
		}
	}
}

func TestCheckSpanBoundsIgnoresOrder(t *testing.T) {
	if err := CheckSpanBounds(file(";;;", stmt(0, 2), stmt(1, 3))); err != nil {
		t.Fatalf("bounds check should not care about overlap: %v", err)
	}
}
