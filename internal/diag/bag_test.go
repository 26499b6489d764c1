package diag

import (
	"testing"

	"hostbridge/internal/source"
)

func TestBagSortByFileThenPosition(t *testing.T) {
	a := source.NewFile("/src/a.ts", []byte("let x = 1;\nlet y = 2;\n"))
	b := source.NewFile("/src/b.ts", []byte("let z = 3;\n"))

	bag := NewBag(0)
	bag.Add(Newf(SemaCannotFindName, b, source.Span{Start: 4, End: 5}, "z"))
	bag.Add(Newf(SemaCannotFindName, a, source.Span{Start: 15, End: 16}, "y"))
	bag.Add(Global(OptFileNotFound, "/src/c.ts"))
	bag.Add(Newf(SemaCannotFindName, a, source.Span{Start: 4, End: 5}, "x"))
	bag.Sort()

	got := FormatShort(bag.Items())
	want := "error TS6053 - File '/src/c.ts' not found.\n" +
		"error TS2304 /src/a.ts:1:5 Cannot find name 'x'.\n" +
		"error TS2304 /src/a.ts:2:5 Cannot find name 'y'.\n" +
		"error TS2304 /src/b.ts:1:5 Cannot find name 'z'."
	if got != want {
		t.Fatalf("unexpected order:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestBagDedupKeepsDistinctChains(t *testing.T) {
	f := source.NewFile("/a.ts", []byte("x"))
	d := Newf(SemaTypeNotAssignable, f, source.Span{Start: 0, End: 1}, "string", "number")

	bag := NewBag(0)
	bag.Add(d)
	bag.Add(d)
	bag.Add(d.WithChain(MessageChain{Message: "extra"}))
	bag.Dedup()

	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", bag.Len())
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	for i := 0; i < 5; i++ {
		bag.Add(Global(OptFileNotFound, "x"))
	}
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
	other := NewBag(0)
	other.Add(Global(OptFileNotFound, "y"))
	bag.Merge(other)
	if bag.Len() != 3 {
		t.Fatalf("Merge must grow the limit, Len = %d", bag.Len())
	}
}

func TestFlattenChain(t *testing.T) {
	d := Global(SemaTypeNotAssignable, "(a: string) => void", "(a: number) => void").WithChain(MessageChain{
		Message: SemaParamTypesIncompatible.Message("a", "a"),
		Next: []MessageChain{{
			Message: SemaTypeNotAssignable.Message("number", "string"),
		}},
	})
	want := "Type '(a: string) => void' is not assignable to type '(a: number) => void'.\r\n" +
		"  Types of parameters 'a' and 'a' are incompatible.\r\n" +
		"    Type 'number' is not assignable to type 'string'."
	if got := d.Flatten("\r\n"); got != want {
		t.Fatalf("Flatten mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	d := Global(OptFileNotFound, "a.ts")
	r.Report(d)
	r.Report(d)
	ReportError(r, OptFileNotFound, nil, source.Span{}, "other").Emit()
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
}

func TestSeverityDefaults(t *testing.T) {
	if SemaDeclaredNeverRead.DefaultSeverity() != SevSuggestion {
		t.Fatal("unused-declaration diagnostics default to suggestions")
	}
	if SemaTypeNotAssignable.DefaultSeverity() != SevError {
		t.Fatal("type errors default to errors")
	}
	if SemaTypeNotAssignable.ID() != "TS2322" {
		t.Fatalf("unexpected ID %s", SemaTypeNotAssignable.ID())
	}
}
