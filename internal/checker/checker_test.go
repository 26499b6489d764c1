package checker

import (
	"strings"
	"testing"

	"hostbridge/internal/ast"
	"hostbridge/internal/diag"
	"hostbridge/internal/parser"
	"hostbridge/internal/source"
)

const testLib = `declare function print(...args: any[]): void;
declare const undefined: any;
`

type program struct {
	lib   *ast.File
	files map[string]*ast.File
	order []*ast.File
}

func newProgram(t *testing.T, srcs ...string) *program {
	t.Helper()
	p := &program{files: make(map[string]*ast.File)}
	p.lib = parser.ParseFile(source.NewFile("/lib.d.ts", []byte(testLib)), parser.Options{Declaration: true})
	for i := 0; i+1 < len(srcs); i += 2 {
		path := srcs[i]
		f := parser.ParseFile(source.NewFile(path, []byte(srcs[i+1])), parser.Options{
			Declaration: source.Extension(path) == ".d.ts",
		})
		if len(f.ParseDiagnostics) != 0 {
			t.Fatalf("%s: parse errors: %s", path, diag.FormatShort(f.ParseDiagnostics))
		}
		p.files[path] = f
		p.order = append(p.order, f)
	}
	return p
}

func (p *program) resolve(from *ast.File, spec string) (*ast.File, bool) {
	base := source.JoinPath(source.DirName(from.Path()), spec)
	for _, cand := range []string{base, base + ".ts", base + ".d.ts"} {
		if f, ok := p.files[cand]; ok {
			return f, true
		}
	}
	return nil, false
}

func (p *program) checker(cfg Config) *Checker {
	return New(cfg, p.order, []*ast.File{p.lib}, p.resolve)
}

func errorsOnly(ds []diag.Diagnostic) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range ds {
		if d.Severity == diag.SevError {
			out = append(out, d)
		}
	}
	return out
}

func semantic(t *testing.T, cfg Config, srcs ...string) []diag.Diagnostic {
	t.Helper()
	p := newProgram(t, srcs...)
	c := p.checker(cfg)
	var all []diag.Diagnostic
	for _, f := range p.order {
		all = append(all, c.SemanticDiagnostics(f)...)
	}
	diag.SortDiagnostics(all)
	return all
}

func TestTypeMismatchOnFirstLine(t *testing.T) {
	ds := errorsOnly(semantic(t, Config{}, "/a.ts", `let x: number = "hello";`))
	if len(ds) != 1 {
		t.Fatalf("got %s", diag.FormatShort(ds))
	}
	d := ds[0]
	if d.Code != diag.SemaTypeNotAssignable || d.Message != "Type 'string' is not assignable to type 'number'." {
		t.Fatalf("got %s %q", d.Code, d.Message)
	}
	pos, _ := d.Position()
	if pos.Line != 1 || pos.Col != 5 {
		t.Fatalf("position = %d:%d", pos.Line, pos.Col)
	}
}

func TestValidProgramHasNoErrors(t *testing.T) {
	ds := errorsOnly(semantic(t, Config{StrictNullChecks: true},
		"/main.ts", `function add(a: number, b: number): number {
	return a + b
}
let total = add(1, 2)
let label: string = "total: " + total
let xs = [1, 2, 3]
xs.push(4)
if (xs.length > 3 && label.length > 0) {
	print(label.toUpperCase(), xs[0])
}
`))
	if len(ds) != 0 {
		t.Fatalf("unexpected errors: %s", diag.FormatShort(ds))
	}
}

func TestSemanticErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		msg  string
	}{
		{"unknown name", "print(missing)", diag.SemaCannotFindName, "Cannot find name 'missing'."},
		{"unknown type", "let x: Foo = 1", diag.SemaCannotFindName, "Cannot find name 'Foo'."},
		{"argument", "function f(a: number) {}\nf(\"s\")", diag.SemaArgumentNotAssignable,
			"Argument of type 'string' is not assignable to parameter of type 'number'."},
		{"too few", "function f(a: number, b: number) {}\nf(1)", diag.SemaExpectedArguments, "Expected 2 arguments, but got 1."},
		{"optional range", "function f(a: number, b?: number) {}\nf(1, 2, 3)", diag.SemaExpectedArguments, "Expected 1-2 arguments, but got 3."},
		{"at least", "function f(a: number, ...r: number[]) {}\nf()", diag.SemaExpectedAtLeastArguments, "Expected at least 1 arguments, but got 0."},
		{"not callable", "let n = 1\nn()", diag.SemaNotCallable, "This expression is not callable."},
		{"no property", "let s = \"a\"\nprint(s.size)", diag.SemaPropertyNotExist, "Property 'size' does not exist on type 'string'."},
		{"const assign", "const c = 1\nc = 2", diag.SemaAssignToConstant, "Cannot assign to 'c' because it is a constant."},
		{"arith left", "let s = \"a\"\nprint(s - 1)", diag.SemaArithmeticLeft, ""},
		{"arith right", "print(1 * true)", diag.SemaArithmeticRight, ""},
		{"operator", "print(true + 1)", diag.SemaOperatorNotApplicable, "Operator '+' cannot be applied to types 'boolean' and 'number'."},
		{"no overlap", "print(1 === \"1\")", diag.SemaComparisonNoOverlap, ""},
		{"must return", "function f(): number {\n}", diag.SemaFunctionMustReturn, ""},
		{"lacks ending return", "function f(b: boolean): number {\n if (b) { return 1 }\n}", diag.SemaLacksEndingReturn, ""},
		{"bad return", "function f(): string { return 1 }", diag.SemaTypeNotAssignable, "Type 'number' is not assignable to type 'string'."},
		{"bad assign target", "1 = 2", diag.SemaInvalidAssignTarget, ""},
		{"decorators", "function dec(x: any) {}\n@dec function g() {}\ng()", diag.SemaDecoratorsExperimental, ""},
		{"inferred result", "function f() { return 1 }\nlet s: string = f()", diag.SemaTypeNotAssignable, "Type 'number' is not assignable to type 'string'."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := errorsOnly(semantic(t, Config{}, "/t.ts", tt.src))
			if len(ds) != 1 {
				t.Fatalf("got %d errors: %s", len(ds), diag.FormatShort(ds))
			}
			if ds[0].Code != tt.code {
				t.Fatalf("code = %s, want %s", ds[0].Code, tt.code)
			}
			if tt.msg != "" && ds[0].Message != tt.msg {
				t.Fatalf("message = %q, want %q", ds[0].Message, tt.msg)
			}
		})
	}
}

func TestNotCallableChain(t *testing.T) {
	ds := errorsOnly(semantic(t, Config{}, "/t.ts", "let n = 1\nn()"))
	if len(ds) != 1 {
		t.Fatalf("got %s", diag.FormatShort(ds))
	}
	got := ds[0].Flatten("\n")
	want := "This expression is not callable.\n  Type 'number' has no call signatures."
	if got != want {
		t.Fatalf("flattened = %q", got)
	}
}

func TestFunctionArgumentElaboration(t *testing.T) {
	ds := errorsOnly(semantic(t, Config{StrictFunctionTypes: true}, "/t.ts",
		"function run(cb: (n: number) => void) {}\nfunction onString(s: string) {}\nrun(onString)"))
	if len(ds) != 1 || ds[0].Code != diag.SemaArgumentNotAssignable {
		t.Fatalf("got %s", diag.FormatShort(ds))
	}
	flat := ds[0].Flatten("\n")
	if !strings.Contains(flat, "\n  Types of parameters 's' and 'n' are incompatible.\n    Type 'number' is not assignable to type 'string'.") {
		t.Fatalf("flattened = %q", flat)
	}
}

func TestImports(t *testing.T) {
	ds := errorsOnly(semantic(t, Config{},
		"/a.ts", `import { add, nope } from "./b"
import * as b from "./b"
import { x } from "./missing"
let n: number = add(1, 2)
let s: string = b.add(1, 2)
print(n, s, x, nope)
`,
		"/b.ts", "export function add(a: number, b: number): number { return a + b }\n"))
	want := []diag.Code{diag.SemaNoExportedMember, diag.SemaCannotFindModule, diag.SemaTypeNotAssignable}
	if len(ds) != len(want) {
		t.Fatalf("got %s", diag.FormatShort(ds))
	}
	for i, code := range want {
		if ds[i].Code != code {
			t.Errorf("diag %d = %s, want %s", i, ds[i].Code, code)
		}
	}
	if ds[0].Message != `Module '"./b"' has no exported member 'nope'.` {
		t.Errorf("message = %q", ds[0].Message)
	}
}

func TestNotAModule(t *testing.T) {
	ds := errorsOnly(semantic(t, Config{},
		"/a.ts", "import { y } from \"./script\"\nprint(y)",
		"/script.ts", "let y = 1"))
	if len(ds) != 1 || ds[0].Code != diag.SemaNotAModule {
		t.Fatalf("got %s", diag.FormatShort(ds))
	}
}

func TestModuleNone(t *testing.T) {
	ds := errorsOnly(semantic(t, Config{ModuleNone: true}, "/a.ts", "export const a = 1"))
	if len(ds) != 1 || ds[0].Code != diag.SemaModuleNoneImports {
		t.Fatalf("got %s", diag.FormatShort(ds))
	}
}

func TestStrictNull(t *testing.T) {
	src := "let a: number = null"
	if ds := errorsOnly(semantic(t, Config{}, "/a.ts", src)); len(ds) != 0 {
		t.Fatalf("non-strict: %s", diag.FormatShort(ds))
	}
	ds := errorsOnly(semantic(t, Config{StrictNullChecks: true}, "/a.ts", src))
	if len(ds) != 1 || ds[0].Message != "Type 'null' is not assignable to type 'number'." {
		t.Fatalf("strict: %s", diag.FormatShort(ds))
	}
}

func TestUnusedLocals(t *testing.T) {
	src := "import { add } from \"./b\"\nexport function f() {\n\tlet unused = 1\n\tlet _ignored = 2\n}\n"
	lib := "export function add(a: number, b: number): number { return a + b }"

	ds := semantic(t, Config{}, "/a.ts", src, "/b.ts", lib)
	if len(errorsOnly(ds)) != 0 {
		t.Fatalf("unused locals are suggestions by default: %s", diag.FormatShort(ds))
	}
	if len(ds) != 2 || ds[0].Severity != diag.SevSuggestion {
		t.Fatalf("got %s", diag.FormatShort(ds))
	}

	ds = errorsOnly(semantic(t, Config{NoUnusedLocals: true}, "/a.ts", src, "/b.ts", lib))
	if len(ds) != 2 {
		t.Fatalf("got %s", diag.FormatShort(ds))
	}
	if ds[0].Message != "'add' is declared but its value is never read." ||
		ds[1].Message != "'unused' is declared but its value is never read." {
		t.Fatalf("got %s", diag.FormatShort(ds))
	}
}

func TestGlobalRedeclarations(t *testing.T) {
	p := newProgram(t,
		"/one.ts", "let shared = 1\nfunction impl() {}\n",
		"/two.ts", "let shared = 2\nfunction impl() {}\nvar v = 1\n",
		"/three.ts", "var v = 2\nlet print = 0\n",
		"/mod.ts", "export let shared = 3\n",
	)
	c := p.checker(Config{})
	ds := c.GlobalDiagnostics()
	diag.SortDiagnostics(ds)
	got := make([]string, 0, len(ds))
	for _, d := range ds {
		got = append(got, d.FilePath()+" "+d.Code.ID())
	}
	want := []string{
		"/lib.d.ts TS2451",
		"/one.ts TS2451",
		"/one.ts TS2393",
		"/three.ts TS2451",
		"/two.ts TS2451",
		"/two.ts TS2393",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
	if len(c.SemanticDiagnostics(p.files["/mod.ts"])) != 0 {
		t.Fatal("module declarations do not clash with globals")
	}
}

func TestDuplicateInBlock(t *testing.T) {
	ds := errorsOnly(semantic(t, Config{}, "/a.ts", "export function f(a: number) {\n\tlet b = a\n\tlet b = 2\n\tprint(b)\n}"))
	if len(ds) != 2 || ds[0].Code != diag.SemaRedeclareBlockScoped {
		t.Fatalf("got %s", diag.FormatShort(ds))
	}
}

func TestRecursionInference(t *testing.T) {
	ds := errorsOnly(semantic(t, Config{}, "/a.ts",
		"function fact(n: number) {\n\tif (n <= 1) { return 1 }\n\treturn n * fact(n - 1)\n}\nlet r: number = fact(5)"))
	if len(ds) != 0 {
		t.Fatalf("got %s", diag.FormatShort(ds))
	}
}

func TestDeclarationTypeText(t *testing.T) {
	p := newProgram(t, "/a.ts", "export const n = 1 + 2\nexport function greet(name: string) { return \"hi \" + name }\nexport let xs = [\"a\"]\n")
	c := p.checker(Config{})
	f := p.files["/a.ts"]
	if got := c.VarTypeText(f, f.Stmts[0].(*ast.VarDecl)); got != "number" {
		t.Errorf("n: %q", got)
	}
	if got := c.ResultTypeText(f, f.Stmts[1].(*ast.FuncDecl)); got != "string" {
		t.Errorf("greet: %q", got)
	}
	if got := c.VarTypeText(f, f.Stmts[2].(*ast.VarDecl)); got != "string[]" {
		t.Errorf("xs: %q", got)
	}
}
