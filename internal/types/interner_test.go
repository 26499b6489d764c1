package types

import "testing"

func TestInternerStableIDs(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if in.Array(b.Number) != in.Array(b.Number) {
		t.Fatal("array types must be interned")
	}
	if in.Array(b.Number) == in.Array(b.String) {
		t.Fatal("distinct element types must produce distinct arrays")
	}
	f1 := in.RegisterFn([]Param{{Name: "a", Type: b.Number}}, b.Void)
	f2 := in.RegisterFn([]Param{{Name: "a", Type: b.Number}}, b.Void)
	if f1 != f2 {
		t.Fatal("identical function types must be interned")
	}
	if in.Module("/b.ts") != in.Module("/b.ts") {
		t.Fatal("module types must be interned")
	}
}

func TestLabel(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	fn := in.RegisterFn([]Param{
		{Name: "a", Type: b.Number},
		{Name: "b", Type: b.String, Optional: true},
		{Name: "rest", Type: in.Array(b.Any), Rest: true},
	}, b.Void)
	tests := map[TypeID]string{
		b.Number:            "number",
		in.Array(b.String):  "string[]",
		fn:                  "(a: number, b?: string, ...rest: any[]) => void",
		in.Array(fn):        "((a: number, b?: string, ...rest: any[]) => void)[]",
		in.Module("./util"): `typeof import("./util")`,
	}
	for id, want := range tests {
		if got := Label(in, id); got != want {
			t.Errorf("Label = %q, want %q", got, want)
		}
	}
}

func TestAssignable(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	r := Relation{In: in}
	strict := Relation{In: in, StrictNull: true, StrictFunctions: true}

	cases := []struct {
		name     string
		rel      Relation
		src, dst TypeID
		want     bool
	}{
		{"same", r, b.Number, b.Number, true},
		{"any source", r, b.Any, b.String, true},
		{"any target", r, b.Boolean, b.Any, true},
		{"mismatch", r, b.String, b.Number, false},
		{"null loose", r, b.Null, b.Number, true},
		{"null strict", strict, b.Null, b.Number, false},
		{"array covariance", r, in.Array(b.Number), in.Array(b.Any), true},
		{"array mismatch", r, in.Array(b.String), in.Array(b.Number), false},
	}
	for _, tc := range cases {
		if got, _ := tc.rel.Assignable(tc.src, tc.dst); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFunctionAssignabilityElaboration(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	r := Relation{In: in, StrictFunctions: true}
	takesString := in.RegisterFn([]Param{{Name: "s", Type: b.String}}, b.Void)
	wantsNumber := in.RegisterFn([]Param{{Name: "n", Type: b.Number}}, b.Void)

	ok, why := r.Assignable(takesString, wantsNumber)
	if ok {
		t.Fatal("incompatible parameter types must not be assignable")
	}
	if len(why) != 1 || why[0].Message != "Types of parameters 's' and 'n' are incompatible." {
		t.Fatalf("elaboration = %+v", why)
	}
	if len(why[0].Next) != 1 || why[0].Next[0].Message != "Type 'number' is not assignable to type 'string'." {
		t.Fatalf("nested elaboration = %+v", why[0].Next)
	}

	fewer := in.RegisterFn(nil, b.Number)
	if ok, _ := r.Assignable(fewer, wantsNumber); !ok {
		t.Fatal("a function with fewer parameters is assignable; void result accepts any result")
	}
}

func TestOperators(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if got, ok := in.AddResult(b.Number, b.String); !ok || got != b.String {
		t.Error("number + string must be string")
	}
	if _, ok := in.AddResult(b.Boolean, b.Number); ok {
		t.Error("boolean + number must be rejected")
	}
	if !in.Orderable(b.String, b.String) || in.Orderable(b.String, b.Number) {
		t.Error("Orderable mismatch")
	}
}
