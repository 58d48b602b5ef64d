package codegen

import (
	"unsure/internal/ast"
	"unsure/internal/rtlib"
)

func (g *generator) stmts(ids []ast.StmtID) error {
	for i, id := range ids {
		if i > 0 {
			g.write(";")
		}
		if err := g.stmt(id); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) block(ids []ast.StmtID) error {
	g.write("{")
	if err := g.stmts(ids); err != nil {
		return err
	}
	g.write("}")
	return nil
}

func (g *generator) stmt(id ast.StmtID) error {
	st := g.b.Stmts.Get(id)
	if st == nil {
		return &UnsupportedNodeError{Kind: "missing statement"}
	}
	switch st.Kind {
	case ast.StmtExpr:
		data, _ := g.b.Stmts.Expr(id)
		return g.expr(data.Expr)
	case ast.StmtAssign:
		data, _ := g.b.Stmts.Assign(id)
		return g.assign(st, data)
	case ast.StmtTypedAssign:
		data, _ := g.b.Stmts.TypedAssign(id)
		g.write(declKeyword(data.Const), " ")
		if err := g.expr(data.Target); err != nil {
			return err
		}
		g.write("=")
		return g.convert(data.Type, data.Value)
	case ast.StmtIf:
		data, _ := g.b.Stmts.If(id)
		g.write("if(")
		if err := g.condition(data.Cond); err != nil {
			return err
		}
		g.write(")")
		if err := g.block(data.Then); err != nil {
			return err
		}
		if len(data.Else) > 0 {
			g.write("else")
			return g.block(data.Else)
		}
		return nil
	case ast.StmtFor:
		data, _ := g.b.Stmts.For(id)
		g.write("for(")
		if data.Init.IsValid() {
			if err := g.stmt(data.Init); err != nil {
				return err
			}
		}
		g.write(";")
		if data.Cond.IsValid() {
			if err := g.condition(data.Cond); err != nil {
				return err
			}
		}
		g.write(";")
		if data.Post.IsValid() {
			if err := g.stmt(data.Post); err != nil {
				return err
			}
		}
		g.write(")")
		return g.block(data.Body)
	case ast.StmtWhile:
		data, _ := g.b.Stmts.While(id)
		g.write("while(")
		if err := g.condition(data.Cond); err != nil {
			return err
		}
		g.write(")")
		return g.block(data.Body)
	case ast.StmtDef:
		data, _ := g.b.Stmts.Def(id)
		g.write("const ", rtlib.IdentPrefix, data.Name, "=")
		return g.function(data)
	case ast.StmtClass:
		data, _ := g.b.Stmts.Class(id)
		return g.class(st, data)
	case ast.StmtReturn:
		data, _ := g.b.Stmts.Return(id)
		g.write("return ")
		if !data.Value.IsValid() {
			g.write(rtlib.Null)
			return nil
		}
		return g.expr(data.Value)
	case ast.StmtBreak:
		g.write("break")
		return nil
	case ast.StmtContinue:
		g.write("continue")
		return nil
	default:
		return &UnsupportedNodeError{Kind: st.Kind.String()}
	}
}

func declKeyword(isConst bool) string {
	if isConst {
		return "const"
	}
	return "let"
}

// condition оборачивает результат диспетчеризации в примитивный boolean.
func (g *generator) condition(id ast.ExprID) error {
	g.write(rtlib.Truthy, "(")
	if err := g.expr(id); err != nil {
		return err
	}
	g.write(")")
	return nil
}

// convert writes `T[s.call](value)`; without a value the type is called bare.
func (g *generator) convert(typ, value ast.ExprID) error {
	if err := g.expr(typ); err != nil {
		return err
	}
	g.write(rtlib.Ref(rtlib.KeyCall))
	if !value.IsValid() {
		g.write("()")
		return nil
	}
	return g.args(value)
}

func (g *generator) assign(st *ast.Stmt, data *ast.StmtAssignData) error {
	if data.Declare {
		g.write(declKeyword(data.Const), " ")
		if err := g.expr(data.Target); err != nil {
			return err
		}
		g.write("=")
		if !data.Value.IsValid() {
			g.write(rtlib.Null)
			return nil
		}
		return g.expr(data.Value)
	}

	target := g.b.Exprs.Get(data.Target)
	if target == nil {
		return &UnsupportedNodeError{Kind: st.Kind.String(), Detail: "missing target"}
	}
	switch target.Kind {
	case ast.ExprIdent:
		if err := g.expr(data.Target); err != nil {
			return err
		}
		g.write("=")
		return g.expr(data.Value)
	case ast.ExprMember:
		m, _ := g.b.Exprs.Member(data.Target)
		if err := g.expr(m.Target); err != nil {
			return err
		}
		g.write(rtlib.Ref(rtlib.KeySetAttr), "(", rtlib.Quote(m.Field), ",")
		if err := g.expr(data.Value); err != nil {
			return err
		}
		g.write(")")
		return nil
	case ast.ExprIndex:
		ix, _ := g.b.Exprs.Index(data.Target)
		if err := g.expr(ix.Target); err != nil {
			return err
		}
		g.write(rtlib.Ref(rtlib.KeySetItem))
		return g.args(ix.Index, data.Value)
	case ast.ExprSlice:
		sl, _ := g.b.Exprs.Slice(data.Target)
		if err := g.expr(sl.Target); err != nil {
			return err
		}
		g.write(rtlib.Ref(rtlib.KeySetSlice))
		return g.args(sl.Start, sl.Stop, data.Value)
	default:
		return unsupported(st.Kind, "cannot assign to %s", target.Kind)
	}
}

// function writes `func(function(params){body},"name")`. Typed parameters are
// converted through their type on entry.
func (g *generator) function(data *ast.StmtDefData) error {
	g.write(rtlib.Func, "(function(")
	var typed []ast.Argument
	for i, p := range data.Params {
		if i > 0 {
			g.write(",")
		}
		g.write(rtlib.IdentPrefix, p.Name)
		if p.Value.IsValid() {
			g.write("=")
			if err := g.expr(p.Value); err != nil {
				return err
			}
		}
		if p.Type.IsValid() {
			typed = append(typed, p)
		}
	}
	g.write("){")
	for _, p := range typed {
		g.write(rtlib.IdentPrefix, p.Name, "=")
		if err := g.expr(p.Type); err != nil {
			return err
		}
		g.write(rtlib.Ref(rtlib.KeyCall), "(", rtlib.IdentPrefix, p.Name, ");")
	}
	if err := g.stmts(data.Body); err != nil {
		return err
	}
	g.write("},", rtlib.Quote(data.Name), ")")
	return nil
}

// class writes `const $C=createSubclass(base,"C",{member:value,...})`.
func (g *generator) class(st *ast.Stmt, data *ast.StmtClassData) error {
	if len(data.Bases) > 1 {
		return unsupported(st.Kind, "class %s has %d base classes, at most one is supported", data.Name, len(data.Bases))
	}
	g.write("const ", rtlib.IdentPrefix, data.Name, "=", rtlib.CreateSubclass, "(")
	if len(data.Bases) == 1 {
		if err := g.expr(data.Bases[0]); err != nil {
			return err
		}
	} else {
		g.write(rtlib.Any)
	}
	g.write(",", rtlib.Quote(data.Name), ",{")
	for i, id := range data.Body {
		if i > 0 {
			g.write(",")
		}
		if err := g.member(id); err != nil {
			return err
		}
	}
	g.write("})")
	return nil
}

func (g *generator) member(id ast.StmtID) error {
	st := g.b.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtTypedAssign:
		data, _ := g.b.Stmts.TypedAssign(id)
		name, err := g.memberName(st, data.Target)
		if err != nil {
			return err
		}
		g.write(rtlib.Quote(name), ":")
		return g.convert(data.Type, data.Value)
	case ast.StmtAssign:
		data, _ := g.b.Stmts.Assign(id)
		name, err := g.memberName(st, data.Target)
		if err != nil {
			return err
		}
		g.write(rtlib.Quote(name), ":")
		if !data.Value.IsValid() {
			g.write(rtlib.Null)
			return nil
		}
		return g.expr(data.Value)
	case ast.StmtDef:
		data, _ := g.b.Stmts.Def(id)
		g.write(rtlib.Quote(data.Name), ":")
		return g.function(data)
	default:
		return unsupported(st.Kind, "not allowed in a class body")
	}
}

func (g *generator) memberName(st *ast.Stmt, target ast.ExprID) (string, error) {
	ident, ok := g.b.Exprs.Ident(target)
	if !ok {
		return "", unsupported(st.Kind, "class member target is not a name")
	}
	return ident.Name, nil
}
