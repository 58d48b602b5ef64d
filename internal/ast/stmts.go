package ast

import (
	"unsure/internal/source"
)

// Stmts manages allocation of statements.
type Stmts struct {
	Arena        *Arena[Stmt]
	Exprs        *Arena[StmtExprData]
	Assigns      *Arena[StmtAssignData]
	TypedAssigns *Arena[StmtTypedAssignData]
	Ifs          *Arena[StmtIfData]
	Fors         *Arena[StmtForData]
	Whiles       *Arena[StmtWhileData]
	Defs         *Arena[StmtDefData]
	Classes      *Arena[StmtClassData]
	Returns      *Arena[StmtReturnData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 7
	}
	small := capHint/4 + 1
	return &Stmts{
		Arena:        NewArena[Stmt](capHint),
		Exprs:        NewArena[StmtExprData](capHint),
		Assigns:      NewArena[StmtAssignData](capHint),
		TypedAssigns: NewArena[StmtTypedAssignData](small),
		Ifs:          NewArena[StmtIfData](small),
		Fors:         NewArena[StmtForData](small),
		Whiles:       NewArena[StmtWhileData](small),
		Defs:         NewArena[StmtDefData](small),
		Classes:      NewArena[StmtClassData](small),
		Returns:      NewArena[StmtReturnData](small),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, pos source.LineCol, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Pos:     pos,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return 0, false
	}
	return uint32(st.Payload), true
}

func (s *Stmts) NewExpr(span source.Span, pos source.LineCol, expr ExprID) StmtID {
	return s.new(StmtExpr, span, pos, s.Exprs.Allocate(StmtExprData{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}

func (s *Stmts) NewAssign(span source.Span, pos source.LineCol, data StmtAssignData) StmtID {
	return s.new(StmtAssign, span, pos, s.Assigns.Allocate(data))
}

func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	p, ok := s.payload(id, StmtAssign)
	if !ok {
		return nil, false
	}
	return s.Assigns.Get(p), true
}

func (s *Stmts) NewTypedAssign(span source.Span, pos source.LineCol, data StmtTypedAssignData) StmtID {
	return s.new(StmtTypedAssign, span, pos, s.TypedAssigns.Allocate(data))
}

func (s *Stmts) TypedAssign(id StmtID) (*StmtTypedAssignData, bool) {
	p, ok := s.payload(id, StmtTypedAssign)
	if !ok {
		return nil, false
	}
	return s.TypedAssigns.Get(p), true
}

func (s *Stmts) NewIf(span source.Span, pos source.LineCol, cond ExprID, then, els []StmtID) StmtID {
	return s.new(StmtIf, span, pos, s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els}))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) NewFor(span source.Span, pos source.LineCol, data StmtForData) StmtID {
	return s.new(StmtFor, span, pos, s.Fors.Allocate(data))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	p, ok := s.payload(id, StmtFor)
	if !ok {
		return nil, false
	}
	return s.Fors.Get(p), true
}

func (s *Stmts) NewWhile(span source.Span, pos source.LineCol, cond ExprID, body []StmtID) StmtID {
	return s.new(StmtWhile, span, pos, s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body}))
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	p, ok := s.payload(id, StmtWhile)
	if !ok {
		return nil, false
	}
	return s.Whiles.Get(p), true
}

func (s *Stmts) NewDef(span source.Span, pos source.LineCol, name string, params []Argument, body []StmtID) StmtID {
	payload := s.Defs.Allocate(StmtDefData{
		Name:   name,
		Params: append([]Argument(nil), params...),
		Body:   body,
	})
	return s.new(StmtDef, span, pos, payload)
}

func (s *Stmts) Def(id StmtID) (*StmtDefData, bool) {
	p, ok := s.payload(id, StmtDef)
	if !ok {
		return nil, false
	}
	return s.Defs.Get(p), true
}

func (s *Stmts) NewClass(span source.Span, pos source.LineCol, name string, bases []ExprID, body []StmtID) StmtID {
	return s.new(StmtClass, span, pos, s.Classes.Allocate(StmtClassData{Name: name, Bases: bases, Body: body}))
}

func (s *Stmts) Class(id StmtID) (*StmtClassData, bool) {
	p, ok := s.payload(id, StmtClass)
	if !ok {
		return nil, false
	}
	return s.Classes.Get(p), true
}

// NewReturn creates a return statement; value may be NoExprID.
func (s *Stmts) NewReturn(span source.Span, pos source.LineCol, value ExprID) StmtID {
	return s.new(StmtReturn, span, pos, s.Returns.Allocate(StmtReturnData{Value: value}))
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

// NewBreak and NewContinue carry no payload.
func (s *Stmts) NewBreak(span source.Span, pos source.LineCol) StmtID {
	return s.new(StmtBreak, span, pos, 0)
}

func (s *Stmts) NewContinue(span source.Span, pos source.LineCol) StmtID {
	return s.new(StmtContinue, span, pos, 0)
}
