package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"hostbridge/internal/diag"
	"hostbridge/internal/source"
)

func TestTranslateKeepsErrorsOnly(t *testing.T) {
	f := source.NewVirtualFile("/a.src", []byte("let a = 1;\nlet x: number = \"hello\";\n"))
	ds := []diag.Diagnostic{
		diag.Newf(diag.SemaTypeNotAssignable, f, source.Span{Start: 15, End: 16}, "string", "number"),
		diag.Newf(diag.SemaDeclaredNeverRead, f, source.Span{Start: 4, End: 5}, "a"),
		diag.Global(diag.OptFileNotFound, "/b.src"),
	}
	ds[1] = ds[1].WithSeverity(diag.SevSuggestion)

	got := Translate(ds, "\n")
	want := []Record{
		{Message: "Type 'string' is not assignable to type 'number'.", FileName: "/a.src", LineNumber: 2, ColumnNumber: 5},
		{Message: "File '/b.src' not found."},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d records: %+v", len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTranslateFlattensChain(t *testing.T) {
	d := diag.Global(diag.OptFileNotFound, "/x").WithChain(diag.MessageChain{
		Message: "outer",
		Next:    []diag.MessageChain{{Message: "inner"}},
	})
	rec := TranslateOne(d, "\r\n")
	if rec.Message != "File '/x' not found.\r\n  outer\r\n    inner" {
		t.Fatalf("message = %q", rec.Message)
	}
}

func TestPrettyExcerpt(t *testing.T) {
	src := map[string]string{"/proj/src/a.src": "let a = 1;\n\tlet x: number = \"héllo\";\n"}
	recs := []Record{
		{Message: "Type 'string' is not assignable to type 'number'.\n  detail", FileName: "/proj/src/a.src", LineNumber: 2, ColumnNumber: 6},
		{Message: "File '/b.src' not found."},
	}
	var buf bytes.Buffer
	err := Pretty(&buf, recs, func(p string) (string, bool) {
		text, ok := src[p]
		return text, ok
	}, PrettyOpts{PathMode: PathModeRelative, BaseDir: "/proj", Summary: true})
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"src/a.src:2:6 - error: Type 'string' is not assignable to type 'number'.",
		"    detail",
		"",
		"2 |     let x: number = \"héllo\";",
		"  |         ^",
		"",
		"error: File '/b.src' not found.",
		"",
		"Found 2 errors in /proj/src/a.src.",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyBasenameAndWidth(t *testing.T) {
	recs := []Record{{Message: "boom", FileName: "/deep/dir/file.src", LineNumber: 1, ColumnNumber: 1}}
	var buf bytes.Buffer
	err := Pretty(&buf, recs, func(string) (string, bool) {
		return "一二三四五六七八九十", true
	}, PrettyOpts{PathMode: PathModeBasename, Width: 8})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "file.src:1:1 - error: boom\n") {
		t.Fatalf("header: %q", out)
	}
	if !strings.Contains(out, "1 | 一二...\n") {
		t.Fatalf("excerpt not truncated: %q", out)
	}
}
