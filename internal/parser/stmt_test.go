package parser

import (
	"testing"

	"unsure/internal/ast"
	"unsure/internal/diag"
)

func TestStatementShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"let", "let x = 1;", "(let x 1)"},
		{"const", "const x = 1;", "(const x 1)"},
		{"let without value", "let y;", "(let y _)"},
		{"implicit typed", "int x = 1;", "(let int x 1)"},
		{"implicit typed without value", "int x;", "(let int x _)"},
		{"const typed", "const int x = 2;", "(const int x 2)"},
		{"let typed", "let int x = 2;", "(let int x 2)"},
		{"reassignment", "x = 2;", "(= x 2)"},
		{"property target", "a.b = 1;", "(= (. a b) 1)"},
		{"item target", "a[0] = 1;", "(= ([] a 0) 1)"},
		{"slice target", "a[1:2] = b;", "(= ([:] a 1 2) b)"},
		{"last statement without semicolon", "print(x)", "(call print x)"},
		{"two statements", "a; b;", "a; b"},
		{"empty statements skipped", ";;x;;", "x"},
		{"if else fused", "if (x) { a(); } else { b(); }", "(if x [(call a)] [(call b)])"},
		{"if then next statement", "if (x) { a(); }\nb();", "(if x [(call a)] []); (call b)"},
		{"else if chain", "if (a) { x = 1; } else if (b) { x = 2; } else { x = 3; }",
			"(if a [(= x 1)] [(if b [(= x 2)] [(= x 3)])])"},
		{"for", "for (let i = 0; i < 10; i++) { print(i); }",
			"(for (let i 0) (< i 10) (post++ i) [(call print i)])"},
		{"for with empty clauses", "for (;;) { break; }", "(for _ _ _ [break])"},
		{"while", "while (x > 0) { x = x - 1; continue; }", "(while (> x 0) [(= x (- x 1)) continue])"},
		{"def", "def add(a, int b, c = 1, int d = 2) { return a + b; }",
			"(def add (a int:b c=1 int:d=2) [(return (+ a b))])"},
		{"bare return", "def f() { return; }", "(def f () [(return _)])"},
		{"class", "class P(Base) { int x = 0; def get() { return x; } }",
			"(class P (Base) [(let int x 0) (def get () [(return x)])])"},
		{"empty class", "class E { }", "(class E () [])"},
		{"def inside loop", "while (a) { def f() { return 1; } }", "(while a [(def f () [(return 1)])])"},
		{"nested blocks", "if (a) { while (b) { if (c) { break; } } }",
			"(if a [(while b [(if c [break] [])])] [])"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dump(mustParse(t, tt.input)); got != tt.want {
				t.Errorf("parse %q\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestDeclarationFlags(t *testing.T) {
	prog := mustParse(t, "let x = 1; int y = 1;")
	as, ok := prog.Builder.Stmts.Assign(prog.Statements[0])
	if !ok || !as.Declare || as.Const {
		t.Errorf("let x: %+v", as)
	}
	if id, _ := prog.Builder.Exprs.Ident(as.Target); id.Name != "x" {
		t.Errorf("target = %q", id.Name)
	}
	typed, ok := prog.Builder.Stmts.TypedAssign(prog.Statements[1])
	if !ok || typed.Const {
		t.Fatalf("int y: %+v", typed)
	}
	if id, _ := prog.Builder.Exprs.Ident(typed.Type); id.Name != "int" {
		t.Errorf("type = %q", id.Name)
	}
}

func TestIfElseIsOneStatement(t *testing.T) {
	prog := mustParse(t, "if (x) { a(); } else { b(); }")
	if len(prog.Statements) != 1 {
		t.Fatalf("got %d statements", len(prog.Statements))
	}
	data, ok := prog.Builder.Stmts.If(prog.Statements[0])
	if !ok || len(data.Else) != 1 {
		t.Fatalf("if = %+v", data)
	}
}

func TestCallArguments(t *testing.T) {
	prog := mustParse(t, "f(1, 2);")
	st, _ := prog.Builder.Stmts.Expr(prog.Statements[0])
	call, ok := prog.Builder.Exprs.Call(st.Expr)
	if !ok {
		t.Fatalf("expression is %s", prog.Builder.Exprs.Get(st.Expr).Kind)
	}
	if callee, _ := prog.Builder.Exprs.Ident(call.Target); callee.Name != "f" {
		t.Errorf("callee = %q", callee.Name)
	}
	if len(call.Args) != 2 {
		t.Fatalf("args = %d", len(call.Args))
	}
	for i, arg := range call.Args {
		if !arg.IsValueOnly() {
			t.Errorf("arg %d is not value-only: %+v", i, arg)
		}
		if prog.Builder.Exprs.Get(arg.Value).Kind != ast.ExprLit {
			t.Errorf("arg %d kind = %s", i, prog.Builder.Exprs.Get(arg.Value).Kind)
		}
	}
}

func TestStatementErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		code      diag.Code
		line, col int
	}{
		{"return outside def", "return 1;", diag.SynReturnOutsideDef, 1, 1},
		{"break outside loop", "break;", diag.SynLoopControlOutsideLoop, 1, 1},
		{"break in def inside no loop", "def f() { while (a) { } break; }", diag.SynLoopControlOutsideLoop, 1, 25},
		{"break with value", "while (a) { break 2; }", diag.SynTrailingTokens, 1, 19},
		{"const without value", "const x;", diag.SynConstWithoutValue, 1, 7},
		{"const typed without value", "const int x;", diag.SynConstWithoutValue, 1, 11},
		{"for needs three clauses", "for (i = 0; i < 3) { }", diag.SynForBadHeader, 1, 5},
		{"unknown keyword", "yield 1;", diag.SynNoAssignedMeaning, 1, 1},
		{"stray else", "else { }", diag.SynNoAssignedMeaning, 1, 1},
		{"invalid start", "1 + 2;", diag.SynInvalidStatementStart, 1, 1},
		{"if without paren", "if x { }", diag.SynExpectParen, 1, 4},
		{"if without brace", "if (x) y;", diag.SynExpectBrace, 1, 8},
		{"empty condition", "while () { }", diag.SynEmptyExpression, 1, 8},
		{"class member", "class C { print(1); }", diag.SynBadClassMember, 1, 11},
		{"duplicate parameter", "def f(a, a) { }", diag.SynBadParameter, 1, 10},
		{"literal parameter", "def f(1) { }", diag.SynBadParameter, 1, 7},
		{"def without name", "def (a) { }", diag.SynExpectIdentifier, 1, 5},
		{"declaration without name", "let 5 = 1;", diag.SynExpectIdentifier, 1, 5},
		{"let garbage", "let x y z;", diag.SynBadAssignment, 1, 9},
		{"stray brace", "}", diag.SynUnbalancedClose, 1, 1},
		{"unclosed body", "def f() { x = 1;", diag.SynUnclosedBrace, 1, 9},
		{"assign to call", "let a = 1; f() = 2;", diag.SynAmbiguousStatement, 1, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := mustFail(t, tt.input)
			if se.Code != tt.code || se.Line != tt.line || se.Col != tt.col {
				t.Errorf("got %s %q at %d:%d; want %s at %d:%d",
					se.Code.ID(), se.Message, se.Line, se.Col, tt.code.ID(), tt.line, tt.col)
			}
		})
	}
}

func TestReporterReceivesError(t *testing.T) {
	fs := newTestFile("x = 1 +;")
	bag := diag.NewBag(5)
	_, err := ParseFile(fs.file, fs.tokens, Options{Reporter: diag.BagReporter{Bag: bag}})
	if err == nil {
		t.Fatal("expected an error")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SynAmbiguousStatement {
		t.Errorf("bag = %+v", bag.Items())
	}
}
