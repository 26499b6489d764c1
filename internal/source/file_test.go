package source

import (
	"testing"
)

func TestNewFileNormalizesBOMAndCRLF(t *testing.T) {
	f := NewFile("a.ts", []byte{0xEF, 0xBB, 0xBF, 'x', '\r', '\n', 'y'})
	if string(f.Content) != "x\ny" {
		t.Fatalf("content = %q, want %q", f.Content, "x\ny")
	}
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag")
	}
}

func TestResolvePositions(t *testing.T) {
	f := NewVirtualFile("a.ts", []byte("ab\ncd\n\nef"))
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // сам перевод строки
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
		{100, LineCol{4, 3}},
	}
	for _, tt := range tests {
		if got := f.Resolve(tt.off); got != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
}

func TestResolveUTF8(t *testing.T) {
	f := NewFile("a.ts", []byte("α\n"))
	start, end := f.ResolveSpan(Span{Start: 0, End: 1})
	if start != (LineCol{Line: 1, Col: 1}) || end != (LineCol{Line: 1, Col: 2}) {
		t.Fatalf("unexpected positions %+v %+v", start, end)
	}
}

func TestGetLine(t *testing.T) {
	f := NewFile("a.ts", []byte("one\ntwo\nthree"))
	for i, want := range []string{"", "one", "two", "three", ""} {
		if got := f.GetLine(uint32(i)); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestSpanShiftLeftUnderflow(t *testing.T) {
	sp := Span{Start: 5, End: 10}
	if got := sp.ShiftLeft(6); got != sp {
		t.Fatalf("expected unchanged span, got %v", got)
	}
	if got := sp.ShiftLeft(5); got != (Span{Start: 0, End: 5}) {
		t.Fatalf("unexpected shift result %v", got)
	}
}

func TestFileSetReplacesInPlace(t *testing.T) {
	fs := NewFileSet()
	fs.Add("/a.ts", NewFile("/a.ts", []byte("1")))
	fs.Add("/b.ts", NewFile("/b.ts", []byte("2")))
	fs.Add("/a.ts", NewFile("/a.ts", []byte("3")))
	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}
	f, ok := fs.Get("/a.ts")
	if !ok || string(f.Content) != "3" {
		t.Fatalf("expected replaced content, got %v %v", f, ok)
	}
	if fs.Files()[0] != f {
		t.Fatal("replacement must keep insertion order")
	}
}
