package ast

import (
	"unsure/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Idents    *Arena[ExprIdentData]
	Literals  *Arena[ExprLiteralData]
	Unaries   *Arena[ExprUnaryData]
	Binaries  *Arena[ExprBinaryData]
	Ternaries *Arena[ExprTernaryData]
	Members   *Arena[ExprMemberData]
	Calls     *Arena[ExprCallData]
	Indices   *Arena[ExprIndexData]
	Slices    *Arena[ExprSliceData]
	Generics  *Arena[ExprGenericData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint.
// If capHint is 0, a default capacity of 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/4 + 1
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Idents:    NewArena[ExprIdentData](capHint),
		Literals:  NewArena[ExprLiteralData](capHint),
		Unaries:   NewArena[ExprUnaryData](small),
		Binaries:  NewArena[ExprBinaryData](capHint),
		Ternaries: NewArena[ExprTernaryData](small),
		Members:   NewArena[ExprMemberData](small),
		Calls:     NewArena[ExprCallData](small),
		Indices:   NewArena[ExprIndexData](small),
		Slices:    NewArena[ExprSliceData](small),
		Generics:  NewArena[ExprGenericData](1),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, pos source.LineCol, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Pos:     pos,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

func (e *Exprs) NewIdent(span source.Span, pos source.LineCol, name string) ExprID {
	return e.new(ExprIdent, span, pos, e.Idents.Allocate(ExprIdentData{Name: name}))
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	p, ok := e.payload(id, ExprIdent)
	if !ok {
		return nil, false
	}
	return e.Idents.Get(p), true
}

func (e *Exprs) NewLiteral(span source.Span, pos source.LineCol, kind LitKind, value string) ExprID {
	return e.new(ExprLit, span, pos, e.Literals.Allocate(ExprLiteralData{Kind: kind, Value: value}))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	p, ok := e.payload(id, ExprLit)
	if !ok {
		return nil, false
	}
	return e.Literals.Get(p), true
}

// NewUnary creates a prefix (postfix=false) or postfix operator node.
func (e *Exprs) NewUnary(span source.Span, pos source.LineCol, op string, operand ExprID, postfix bool) ExprID {
	return e.new(ExprUnary, span, pos, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand, Postfix: postfix}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

func (e *Exprs) NewBinary(span source.Span, pos source.LineCol, op string, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, pos, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewTernary(span source.Span, pos source.LineCol, cond, then, els ExprID) ExprID {
	return e.new(ExprTernary, span, pos, e.Ternaries.Allocate(ExprTernaryData{Cond: cond, Then: then, Else: els}))
}

func (e *Exprs) Ternary(id ExprID) (*ExprTernaryData, bool) {
	p, ok := e.payload(id, ExprTernary)
	if !ok {
		return nil, false
	}
	return e.Ternaries.Get(p), true
}

func (e *Exprs) NewMember(span source.Span, pos source.LineCol, target ExprID, field string) ExprID {
	return e.new(ExprMember, span, pos, e.Members.Allocate(ExprMemberData{Target: target, Field: field}))
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	p, ok := e.payload(id, ExprMember)
	if !ok {
		return nil, false
	}
	return e.Members.Get(p), true
}

// NewCall creates a call node; args are copied.
func (e *Exprs) NewCall(span source.Span, pos source.LineCol, target ExprID, args []Argument) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Target: target,
		Args:   append([]Argument(nil), args...),
	})
	return e.new(ExprCall, span, pos, payload)
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) NewIndex(span source.Span, pos source.LineCol, target, index ExprID) ExprID {
	return e.new(ExprIndex, span, pos, e.Indices.Allocate(ExprIndexData{Target: target, Index: index}))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	p, ok := e.payload(id, ExprIndex)
	if !ok {
		return nil, false
	}
	return e.Indices.Get(p), true
}

func (e *Exprs) NewSlice(span source.Span, pos source.LineCol, target, start, stop ExprID) ExprID {
	return e.new(ExprSlice, span, pos, e.Slices.Allocate(ExprSliceData{Target: target, Start: start, Stop: stop}))
}

func (e *Exprs) Slice(id ExprID) (*ExprSliceData, bool) {
	p, ok := e.payload(id, ExprSlice)
	if !ok {
		return nil, false
	}
	return e.Slices.Get(p), true
}

func (e *Exprs) NewGeneric(span source.Span, pos source.LineCol, target ExprID, args []ExprID) ExprID {
	payload := e.Generics.Allocate(ExprGenericData{Target: target, Args: append([]ExprID(nil), args...)})
	return e.new(ExprGeneric, span, pos, payload)
}

func (e *Exprs) Generic(id ExprID) (*ExprGenericData, bool) {
	p, ok := e.payload(id, ExprGeneric)
	if !ok {
		return nil, false
	}
	return e.Generics.Get(p), true
}
