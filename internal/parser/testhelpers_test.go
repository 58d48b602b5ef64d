package parser

import (
	"fmt"
	"strings"
	"testing"

	"unsure/internal/ast"
	"unsure/internal/diag"
	"unsure/internal/lexer"
	"unsure/internal/source"
	"unsure/internal/token"
)

func parseSource(input string) (*ast.Program, error) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.uns", []byte(input)))
	toks, err := lexer.Tokenize(f, lexer.Options{})
	if err != nil {
		return nil, err
	}
	return ParseFile(f, toks, Options{})
}

type testFile struct {
	file   *source.File
	tokens []token.Token
}

func newTestFile(input string) testFile {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.uns", []byte(input)))
	toks, err := lexer.Tokenize(f, lexer.Options{})
	if err != nil {
		panic(err)
	}
	return testFile{file: f, tokens: toks}
}

func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, err := parseSource(input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return prog
}

func mustFail(t *testing.T, input string) *diag.SyntaxError {
	t.Helper()
	_, err := parseSource(input)
	if err == nil {
		t.Fatalf("parse %q: expected an error", input)
	}
	se, ok := diag.AsSyntaxError(err)
	if !ok {
		t.Fatalf("parse %q: error %v (%T) is not a SyntaxError", input, err, err)
	}
	return se
}

// dump renders every top-level statement as an s-expression, joined by "; ".
func dump(prog *ast.Program) string {
	d := dumper{b: prog.Builder}
	parts := make([]string, len(prog.Statements))
	for i, id := range prog.Statements {
		parts[i] = d.stmt(id)
	}
	return strings.Join(parts, "; ")
}

type dumper struct{ b *ast.Builder }

func (d dumper) block(ids []ast.StmtID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = d.stmt(id)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (d dumper) opt(id ast.ExprID) string {
	if !id.IsValid() {
		return "_"
	}
	return d.expr(id)
}

func (d dumper) optStmt(id ast.StmtID) string {
	if !id.IsValid() {
		return "_"
	}
	return d.stmt(id)
}

func (d dumper) stmt(id ast.StmtID) string {
	st := d.b.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtExpr:
		data, _ := d.b.Stmts.Expr(id)
		return d.expr(data.Expr)
	case ast.StmtAssign:
		data, _ := d.b.Stmts.Assign(id)
		kw := "="
		if data.Declare {
			kw = "let"
			if data.Const {
				kw = "const"
			}
		}
		return fmt.Sprintf("(%s %s %s)", kw, d.expr(data.Target), d.opt(data.Value))
	case ast.StmtTypedAssign:
		data, _ := d.b.Stmts.TypedAssign(id)
		kw := "let"
		if data.Const {
			kw = "const"
		}
		return fmt.Sprintf("(%s %s %s %s)", kw, d.expr(data.Type), d.expr(data.Target), d.opt(data.Value))
	case ast.StmtIf:
		data, _ := d.b.Stmts.If(id)
		return fmt.Sprintf("(if %s %s %s)", d.expr(data.Cond), d.block(data.Then), d.block(data.Else))
	case ast.StmtFor:
		data, _ := d.b.Stmts.For(id)
		return fmt.Sprintf("(for %s %s %s %s)", d.optStmt(data.Init), d.opt(data.Cond), d.optStmt(data.Post), d.block(data.Body))
	case ast.StmtWhile:
		data, _ := d.b.Stmts.While(id)
		return fmt.Sprintf("(while %s %s)", d.expr(data.Cond), d.block(data.Body))
	case ast.StmtDef:
		data, _ := d.b.Stmts.Def(id)
		return fmt.Sprintf("(def %s (%s) %s)", data.Name, d.params(data.Params), d.block(data.Body))
	case ast.StmtClass:
		data, _ := d.b.Stmts.Class(id)
		bases := make([]string, len(data.Bases))
		for i, b := range data.Bases {
			bases[i] = d.expr(b)
		}
		return fmt.Sprintf("(class %s (%s) %s)", data.Name, strings.Join(bases, " "), d.block(data.Body))
	case ast.StmtReturn:
		data, _ := d.b.Stmts.Return(id)
		return fmt.Sprintf("(return %s)", d.opt(data.Value))
	case ast.StmtBreak:
		return "break"
	case ast.StmtContinue:
		return "continue"
	}
	return "?" + st.Kind.String()
}

func (d dumper) params(args []ast.Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		s := a.Name
		if a.Type.IsValid() {
			s = d.expr(a.Type) + ":" + s
		}
		if a.Value.IsValid() {
			s += "=" + d.expr(a.Value)
		}
		parts[i] = s
	}
	return strings.Join(parts, " ")
}

func (d dumper) expr(id ast.ExprID) string {
	e := d.b.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprIdent:
		data, _ := d.b.Exprs.Ident(id)
		return data.Name
	case ast.ExprLit:
		data, _ := d.b.Exprs.Literal(id)
		if data.Kind == ast.LitString {
			return fmt.Sprintf("%q", data.Value)
		}
		return data.Value
	case ast.ExprUnary:
		data, _ := d.b.Exprs.Unary(id)
		if data.Postfix {
			return fmt.Sprintf("(post%s %s)", data.Op, d.expr(data.Operand))
		}
		return fmt.Sprintf("(%s %s)", data.Op, d.expr(data.Operand))
	case ast.ExprBinary:
		data, _ := d.b.Exprs.Binary(id)
		return fmt.Sprintf("(%s %s %s)", data.Op, d.expr(data.Left), d.expr(data.Right))
	case ast.ExprTernary:
		data, _ := d.b.Exprs.Ternary(id)
		return fmt.Sprintf("(? %s %s %s)", d.expr(data.Cond), d.expr(data.Then), d.expr(data.Else))
	case ast.ExprMember:
		data, _ := d.b.Exprs.Member(id)
		return fmt.Sprintf("(. %s %s)", d.expr(data.Target), data.Field)
	case ast.ExprCall:
		data, _ := d.b.Exprs.Call(id)
		s := "(call " + d.expr(data.Target)
		for _, a := range data.Args {
			s += " " + d.expr(a.Value)
		}
		return s + ")"
	case ast.ExprIndex:
		data, _ := d.b.Exprs.Index(id)
		return fmt.Sprintf("([] %s %s)", d.expr(data.Target), d.expr(data.Index))
	case ast.ExprSlice:
		data, _ := d.b.Exprs.Slice(id)
		return fmt.Sprintf("([:] %s %s %s)", d.expr(data.Target), d.opt(data.Start), d.opt(data.Stop))
	}
	return "?" + e.Kind.String()
}
