package codegen

import (
	"errors"
	"strings"
	"testing"

	"unsure/internal/ast"
	"unsure/internal/lexer"
	"unsure/internal/parser"
	"unsure/internal/source"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.uns", []byte(input)))
	toks, err := lexer.Tokenize(f, lexer.Options{})
	if err != nil {
		t.Fatalf("tokenize %q: %v", input, err)
	}
	prog, err := parser.ParseFile(f, toks, parser.Options{})
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return prog
}

func TestGenerateBody(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"binary", "x = 1 + 2;", `$x=bigint(1n)[s.add](bigint(2n))`},
		{"precedence", "x = 1 + 2 * 3;", `$x=bigint(1n)[s.add](bigint(2n)[s.mul](bigint(3n)))`},
		{"let without value", "let y;", `let $y=$null`},
		{"const", "const z = 'a';", `const $z=string("a")`},
		{"typed const", "const int x = 2i;", `const $x=$int[s.call](int32(2))`},
		{"typed without value", "int x;", `let $x=$int[s.call]()`},
		{"unary minus", "y = -x;", `$y=$x[s.unary_minus]()`},
		{"unary plus", "y = +x;", `$y=$x[s.unary_plus]()`},
		{"postfix", "y = x++;", `$y=$x[s.increment]()`},
		{"prefix decrement", "y = --x;", `$y=$x[s.decrement]()`},
		{"typeof", "y = typeof x == s;", `$y=$x[s.typeof]()[s.eq]($s)`},
		{"instanceof", "y = a instanceof B;", `$y=$a[s.is_instance]($B)`},
		{"negative literal", "y = a - -1;", `$y=$a[s.sub](bigint(-1n))`},
		{"literal widths", "y = f(1b, 1ub, 1s, 1us, 1ui, 1l, 1ul, 1n, 0x1F);",
			`$y=$f[s.call](byte(1),unsigned_byte(1),short(1),unsigned_short(1),unsigned_int32(1),long(1n),unsigned_long(1n),bigint(1n),bigint(0x1Fn))`},
		{"floats", "y = f(1.5, 1.5f, 2d);", `$y=$f[s.call](double(1.5),float32(1.5),double(2))`},
		{"string escapes", `s = 'hi\n"';`, `$s=string("hi\n\"")`},
		{"constants are plain names", "x = true;", `$x=$true`},
		{"property set", "a.b = 1b;", `$a[s.setattr]("b",byte(1))`},
		{"item set", "a[0] = 1.5;", `$a[s.set_item](bigint(0n),double(1.5))`},
		{"slice set", "a[:2] = b;", `$a[s.set_slice](undefined,bigint(2n),$b)`},
		{"slice get", "y = a[1:];", `$y=$a[s.get_slice](bigint(1n),undefined)`},
		{"item get", "y = a[i];", `$y=$a[s.get_item]($i)`},
		{"method call", "y = a.b(c);", `$y=$a[s.getattr]("b")[s.call]($c)`},
		{"ternary", "y = c ? 1f : 2ul;", `$y=$c[s.ternary_conditional](float32(1),unsigned_long(2n))`},
		{"statements joined", "a; b;", `$a;$b`},
		{"if else", "if (x) { a(); } else { b(); }", `if(truthy($x)){$a[s.call]()}else{$b[s.call]()}`},
		{"if", "if (x) { a(); }", `if(truthy($x)){$a[s.call]()}`},
		{"else if", "if (a) { x = 1; } else if (b) { x = 2; }",
			`if(truthy($a)){$x=bigint(1n)}else{if(truthy($b)){$x=bigint(2n)}}`},
		{"for", "for (let i = 0; i < 3; i++) { print(i); }",
			`for(let $i=bigint(0n);truthy($i[s.lt](bigint(3n)));$i[s.increment]()){$print[s.call]($i)}`},
		{"for empty", "for (;;) { break; }", `for(;;){break}`},
		{"while", "while (x) { continue; }", `while(truthy($x)){continue}`},
		{"def", "def add(a, int b = 1) { return a + b; }",
			`const $add=func(function($a,$b=bigint(1n)){$b=$int[s.call]($b);return $a[s.add]($b)},"add")`},
		{"bare return", "def f() { return; }", `const $f=func(function(){return $null},"f")`},
		{"class", "class P(Base) { int x = 0; y = 1; def get() { return x; } }",
			`const $P=createSubclass($Base,"P",{"x":$int[s.call](bigint(0n)),"y":bigint(1n),"get":func(function(){return $x},"get")})`},
		{"class without base", "class E { }", `const $E=createSubclass($any,"E",{})`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateBody(parse(t, tt.input))
			if err != nil {
				t.Fatalf("generate %q: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("generate %q\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateWrapsPreludeAndEpilogue(t *testing.T) {
	out, err := Generate(parse(t, "x = 1;"), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "import {s,") {
		t.Errorf("missing prelude: %q", out)
	}
	if !strings.Contains(out, "let $__debug__=undefined;$x=bigint(1n);if($__debug__!==undefined)") {
		t.Errorf("unexpected layout: %q", out)
	}

	out, err = Generate(parse(t, "x = 1;"), Options{Runtime: "./rt.cjs", Module: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out, `=require("./rt.cjs");$x=bigint(1n)`) {
		t.Errorf("cjs without debug: %q", out)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	prog := parse(t, "def f(a) { while (a > 0) { a = a - 1; } return a; } x = f(3);")
	first, err := Generate(prog, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	second, err := Generate(prog, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("outputs differ:\n%s\n%s", first, second)
	}
}

func TestMultipleBasesRejected(t *testing.T) {
	out, err := Generate(parse(t, "class C(A, B) { }"), DefaultOptions())
	if !errors.Is(err, ErrUnsupportedNode) {
		t.Fatalf("err = %v", err)
	}
	var une *UnsupportedNodeError
	if !errors.As(err, &une) || une.Kind != "ClassDefinition" {
		t.Errorf("err = %#v", err)
	}
	if out != "" {
		t.Errorf("partial output %q", out)
	}
}

func TestGenericRejected(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	target := b.Exprs.NewIdent(source.Span{}, source.LineCol{}, "List")
	arg := b.Exprs.NewIdent(source.Span{}, source.LineCol{}, "int")
	gen := b.Exprs.NewGeneric(source.Span{}, source.LineCol{}, target, []ast.ExprID{arg})
	prog := &ast.Program{Builder: b, Statements: []ast.StmtID{b.Stmts.NewExpr(source.Span{}, source.LineCol{}, gen)}}

	_, err := Generate(prog, DefaultOptions())
	var une *UnsupportedNodeError
	if !errors.As(err, &une) || une.Kind != "Generic" {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "Generic") {
		t.Errorf("message = %q", err.Error())
	}
}
