package ast

import (
	"unsure/internal/source"
)

type Hints struct{ Stmts, Exprs uint }

// Builder owns the node arenas of one parse.
type Builder struct {
	Stmts *Stmts
	Exprs *Exprs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Stmts: NewStmts(hints.Stmts),
		Exprs: NewExprs(hints.Exprs),
	}
}

// Program is the root of a parse: top-level statements in source order plus
// the arenas they live in.
type Program struct {
	File       *source.File
	Builder    *Builder
	Statements []StmtID
	Span       source.Span
}

// Raw returns the exact source text of a span of this program's file.
func (p *Program) Raw(sp source.Span) string {
	if p == nil || p.File == nil {
		return ""
	}
	return p.File.Text(sp)
}

// ExprRaw returns the source text an expression was built from.
func (p *Program) ExprRaw(id ExprID) string {
	if e := p.Builder.Exprs.Get(id); e != nil {
		return p.Raw(e.Span)
	}
	return ""
}

// StmtRaw returns the source text a statement was built from.
func (p *Program) StmtRaw(id StmtID) string {
	if s := p.Builder.Stmts.Get(id); s != nil {
		return p.Raw(s.Span)
	}
	return ""
}
