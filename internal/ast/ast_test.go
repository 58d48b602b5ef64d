package ast

import (
	"testing"

	"unsure/internal/source"
)

func TestArenaIndexing(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatal("empty arena must return nil")
	}
	i := a.Allocate(10)
	j := a.Allocate(20)
	if i != 1 || j != 2 {
		t.Fatalf("indices = %d,%d", i, j)
	}
	*a.Get(j) = 21
	if a.Slice()[1] != 21 || a.Len() != 2 {
		t.Errorf("arena contents = %v", a.Slice())
	}
}

func TestPayloadAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{})
	x := b.Exprs.NewIdent(source.Span{Start: 0, End: 1}, source.LineCol{Line: 1, Col: 1}, "x")
	one := b.Exprs.NewLiteral(source.Span{Start: 4, End: 5}, source.LineCol{Line: 1, Col: 5}, LitBigint, "1")
	sum := b.Exprs.NewBinary(source.Span{Start: 0, End: 5}, source.LineCol{Line: 1, Col: 1}, "+", x, one)

	if _, ok := b.Exprs.Binary(x); ok {
		t.Error("Binary() on an identifier must fail")
	}
	bin, ok := b.Exprs.Binary(sum)
	if !ok || bin.Op != "+" || bin.Left != x || bin.Right != one {
		t.Errorf("binary payload = %+v", bin)
	}
	if id, ok := b.Exprs.Ident(x); !ok || id.Name != "x" {
		t.Errorf("ident payload = %+v", id)
	}
	if _, ok := b.Exprs.Ident(NoExprID); ok {
		t.Error("NoExprID must not resolve")
	}

	ret := b.Stmts.NewReturn(source.Span{}, source.LineCol{Line: 2, Col: 1}, NoExprID)
	brk := b.Stmts.NewBreak(source.Span{}, source.LineCol{Line: 3, Col: 1})
	if r, ok := b.Stmts.Return(ret); !ok || r.Value.IsValid() {
		t.Errorf("return payload = %+v", r)
	}
	if b.Stmts.Get(brk).Kind != StmtBreak {
		t.Errorf("break kind = %v", b.Stmts.Get(brk).Kind)
	}
}

func TestKindNames(t *testing.T) {
	if ExprCall.String() != "FunctionCall" || ExprSlice.String() != "GetSlice" {
		t.Errorf("expr names: %s %s", ExprCall, ExprSlice)
	}
	if StmtTypedAssign.String() != "TypedAssignment" || StmtKind(200).String() != "UnknownStmt" {
		t.Errorf("stmt names wrong")
	}
	if LitUnsignedLong.String() != "UnsignedLongLiteral" || !LitBigint.IsInteger() || LitDouble.IsInteger() {
		t.Errorf("literal kinds wrong")
	}
}

func TestProgramRaw(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("r.uns", []byte("x = 1;")))
	b := NewBuilder(Hints{})
	x := b.Exprs.NewIdent(source.Span{File: f.ID, Start: 0, End: 1}, source.LineCol{Line: 1, Col: 1}, "x")
	prog := &Program{File: f, Builder: b}
	if got := prog.ExprRaw(x); got != "x" {
		t.Errorf("ExprRaw = %q", got)
	}
	if got := prog.StmtRaw(StmtID(9)); got != "" {
		t.Errorf("StmtRaw on unknown id = %q", got)
	}
}
