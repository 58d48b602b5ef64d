package codegen

import (
	"unsure/internal/ast"
	"unsure/internal/rtlib"
)

func (g *generator) expr(id ast.ExprID) error {
	e := g.b.Exprs.Get(id)
	if e == nil {
		return &UnsupportedNodeError{Kind: "missing expression"}
	}
	switch e.Kind {
	case ast.ExprIdent:
		data, _ := g.b.Exprs.Ident(id)
		g.write(rtlib.IdentPrefix, data.Name)
		return nil
	case ast.ExprLit:
		return g.literal(id)
	case ast.ExprUnary:
		data, _ := g.b.Exprs.Unary(id)
		key, ok := rtlib.UnaryKey(data.Op)
		if !ok {
			return unsupported(e.Kind, "operator %q", data.Op)
		}
		if err := g.expr(data.Operand); err != nil {
			return err
		}
		g.write(rtlib.Ref(key), "()")
		return nil
	case ast.ExprBinary:
		data, _ := g.b.Exprs.Binary(id)
		key, ok := rtlib.BinaryKey(data.Op)
		if !ok {
			return unsupported(e.Kind, "operator %q", data.Op)
		}
		if err := g.expr(data.Left); err != nil {
			return err
		}
		g.write(rtlib.Ref(key), "(")
		if err := g.expr(data.Right); err != nil {
			return err
		}
		g.write(")")
		return nil
	case ast.ExprTernary:
		data, _ := g.b.Exprs.Ternary(id)
		if err := g.expr(data.Cond); err != nil {
			return err
		}
		g.write(rtlib.Ref(rtlib.KeyTernaryConditional))
		return g.args(data.Then, data.Else)
	case ast.ExprMember:
		data, _ := g.b.Exprs.Member(id)
		if err := g.expr(data.Target); err != nil {
			return err
		}
		g.write(rtlib.Ref(rtlib.KeyGetAttr), "(", rtlib.Quote(data.Field), ")")
		return nil
	case ast.ExprCall:
		data, _ := g.b.Exprs.Call(id)
		if err := g.expr(data.Target); err != nil {
			return err
		}
		vals := make([]ast.ExprID, len(data.Args))
		for i, a := range data.Args {
			if !a.IsValueOnly() {
				return unsupported(e.Kind, "named argument %q", a.Name)
			}
			vals[i] = a.Value
		}
		g.write(rtlib.Ref(rtlib.KeyCall))
		return g.args(vals...)
	case ast.ExprIndex:
		data, _ := g.b.Exprs.Index(id)
		if err := g.expr(data.Target); err != nil {
			return err
		}
		g.write(rtlib.Ref(rtlib.KeyGetItem))
		return g.args(data.Index)
	case ast.ExprSlice:
		data, _ := g.b.Exprs.Slice(id)
		if err := g.expr(data.Target); err != nil {
			return err
		}
		g.write(rtlib.Ref(rtlib.KeyGetSlice))
		return g.args(data.Start, data.Stop)
	default:
		// ExprGeneric и всё неизвестное
		return &UnsupportedNodeError{Kind: e.Kind.String()}
	}
}

// args writes `(a,b,...)`; an invalid id becomes `undefined`.
func (g *generator) args(ids ...ast.ExprID) error {
	g.write("(")
	for i, id := range ids {
		if i > 0 {
			g.write(",")
		}
		if !id.IsValid() {
			g.write("undefined")
			continue
		}
		if err := g.expr(id); err != nil {
			return err
		}
	}
	g.write(")")
	return nil
}

func (g *generator) literal(id ast.ExprID) error {
	data, _ := g.b.Exprs.Literal(id)
	ctor, ok := rtlib.Constructor(data.Kind)
	if !ok {
		return unsupported(data.Kind, "no runtime constructor")
	}
	g.write(ctor, "(")
	switch {
	case data.Kind == ast.LitString:
		g.write(rtlib.Quote(data.Value))
	case rtlib.BigintBacked(data.Kind):
		g.write(data.Value, "n")
	default:
		g.write(data.Value)
	}
	g.write(")")
	return nil
}
