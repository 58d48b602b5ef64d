package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"unsure/internal/ast"
)

// ASTNodeOutput is one node of the JSON AST dump.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Line     uint32          `json:"line"`
	Col      uint32          `json:"col"`
	Text     string          `json:"text,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

type treeNode struct {
	label    string
	children []*treeNode
}

func (n *treeNode) add(children ...*treeNode) *treeNode {
	for _, c := range children {
		if c != nil {
			n.children = append(n.children, c)
		}
	}
	return n
}

func leaf(format string, args ...any) *treeNode {
	return &treeNode{label: fmt.Sprintf(format, args...)}
}

// FormatASTPretty печатает программу деревом:
//
//	Program (2 statements)
//	├─ Assignment let @1:1
//	│  ├─ Target: Identifier x
//	│  └─ Value: BigintLiteral 1
//	└─ ...
func FormatASTPretty(w io.Writer, prog *ast.Program) error {
	if prog == nil {
		return fmt.Errorf("nil program")
	}
	tb := treeBuilder{b: prog.Builder}
	root := leaf("Program (%d statements)", len(prog.Statements))
	for _, id := range prog.Statements {
		root.add(tb.stmt(id))
	}
	var sb strings.Builder
	sb.WriteString(root.label)
	sb.WriteByte('\n')
	writeTree(&sb, root.children, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTree(sb *strings.Builder, nodes []*treeNode, prefix string) {
	for i, n := range nodes {
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix + branch + n.label + "\n")
		writeTree(sb, n.children, prefix+next)
	}
}

type treeBuilder struct{ b *ast.Builder }

func (t treeBuilder) block(label string, ids []ast.StmtID) *treeNode {
	n := leaf("%s (%d)", label, len(ids))
	for _, id := range ids {
		n.add(t.stmt(id))
	}
	return n
}

func (t treeBuilder) named(label string, id ast.ExprID) *treeNode {
	if !id.IsValid() {
		return nil
	}
	n := t.expr(id)
	n.label = label + ": " + n.label
	return n
}

func (t treeBuilder) stmt(id ast.StmtID) *treeNode {
	st := t.b.Stmts.Get(id)
	if st == nil {
		return leaf("<nil stmt>")
	}
	n := leaf("%s @%s", st.Kind, st.Pos)
	switch st.Kind {
	case ast.StmtExpr:
		data, _ := t.b.Stmts.Expr(id)
		n.add(t.expr(data.Expr))
	case ast.StmtAssign:
		data, _ := t.b.Stmts.Assign(id)
		if data.Declare {
			n.label = fmt.Sprintf("%s %s @%s", st.Kind, declKind(data.Const), st.Pos)
		}
		n.add(t.named("Target", data.Target), t.named("Value", data.Value))
	case ast.StmtTypedAssign:
		data, _ := t.b.Stmts.TypedAssign(id)
		n.label = fmt.Sprintf("%s %s @%s", st.Kind, declKind(data.Const), st.Pos)
		n.add(t.named("Type", data.Type), t.named("Target", data.Target), t.named("Value", data.Value))
	case ast.StmtIf:
		data, _ := t.b.Stmts.If(id)
		n.add(t.named("Cond", data.Cond), t.block("Then", data.Then))
		if len(data.Else) > 0 {
			n.add(t.block("Else", data.Else))
		}
	case ast.StmtFor:
		data, _ := t.b.Stmts.For(id)
		if data.Init.IsValid() {
			n.add(leaf("Init").add(t.stmt(data.Init)))
		}
		n.add(t.named("Cond", data.Cond))
		if data.Post.IsValid() {
			n.add(leaf("Post").add(t.stmt(data.Post)))
		}
		n.add(t.block("Body", data.Body))
	case ast.StmtWhile:
		data, _ := t.b.Stmts.While(id)
		n.add(t.named("Cond", data.Cond), t.block("Body", data.Body))
	case ast.StmtDef:
		data, _ := t.b.Stmts.Def(id)
		n.add(leaf("Name: %s", data.Name), t.params(data.Params), t.block("Body", data.Body))
	case ast.StmtClass:
		data, _ := t.b.Stmts.Class(id)
		n.add(leaf("Name: %s", data.Name))
		if len(data.Bases) > 0 {
			bases := leaf("Bases")
			for _, b := range data.Bases {
				bases.add(t.expr(b))
			}
			n.add(bases)
		}
		n.add(t.block("Body", data.Body))
	case ast.StmtReturn:
		data, _ := t.b.Stmts.Return(id)
		n.add(t.named("Value", data.Value))
	}
	return n
}

func (t treeBuilder) params(args []ast.Argument) *treeNode {
	n := leaf("Params (%d)", len(args))
	for _, a := range args {
		p := leaf("%s", a.Name)
		p.add(t.named("Type", a.Type), t.named("Default", a.Value))
		n.add(p)
	}
	return n
}

func (t treeBuilder) expr(id ast.ExprID) *treeNode {
	e := t.b.Exprs.Get(id)
	if e == nil {
		return leaf("<nil expr>")
	}
	switch e.Kind {
	case ast.ExprIdent:
		data, _ := t.b.Exprs.Ident(id)
		return leaf("%s %s", e.Kind, data.Name)
	case ast.ExprLit:
		data, _ := t.b.Exprs.Literal(id)
		if data.Kind == ast.LitString {
			return leaf("%s %q", data.Kind, data.Value)
		}
		return leaf("%s %s", data.Kind, data.Value)
	case ast.ExprUnary:
		data, _ := t.b.Exprs.Unary(id)
		fix := "prefix"
		if data.Postfix {
			fix = "postfix"
		}
		return leaf("%s %s (%s)", e.Kind, data.Op, fix).add(t.expr(data.Operand))
	case ast.ExprBinary:
		data, _ := t.b.Exprs.Binary(id)
		return leaf("%s %s", e.Kind, data.Op).add(t.expr(data.Left), t.expr(data.Right))
	case ast.ExprTernary:
		data, _ := t.b.Exprs.Ternary(id)
		return leaf("%s", e.Kind).add(t.named("Cond", data.Cond), t.named("Then", data.Then), t.named("Else", data.Else))
	case ast.ExprMember:
		data, _ := t.b.Exprs.Member(id)
		return leaf("%s .%s", e.Kind, data.Field).add(t.expr(data.Target))
	case ast.ExprCall:
		data, _ := t.b.Exprs.Call(id)
		n := leaf("%s (%d args)", e.Kind, len(data.Args)).add(t.named("Callee", data.Target))
		for _, a := range data.Args {
			n.add(t.expr(a.Value))
		}
		return n
	case ast.ExprIndex:
		data, _ := t.b.Exprs.Index(id)
		return leaf("%s", e.Kind).add(t.expr(data.Target), t.named("Index", data.Index))
	case ast.ExprSlice:
		data, _ := t.b.Exprs.Slice(id)
		return leaf("%s", e.Kind).add(t.expr(data.Target), t.named("Start", data.Start), t.named("Stop", data.Stop))
	case ast.ExprGeneric:
		data, _ := t.b.Exprs.Generic(id)
		n := leaf("%s", e.Kind).add(t.expr(data.Target))
		for _, a := range data.Args {
			n.add(t.expr(a))
		}
		return n
	}
	return leaf("%s", e.Kind)
}

func declKind(isConst bool) string {
	if isConst {
		return "const"
	}
	return "let"
}

// FormatASTJSON пишет программу JSON-деревом; text — исходный текст узла.
func FormatASTJSON(w io.Writer, prog *ast.Program) error {
	if prog == nil {
		return fmt.Errorf("nil program")
	}
	jb := jsonBuilder{p: prog}
	root := ASTNodeOutput{Type: "Program", Line: 1, Col: 1}
	for _, id := range prog.Statements {
		root.Children = append(root.Children, jb.stmt(id))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(root)
}

type jsonBuilder struct{ p *ast.Program }

func (j jsonBuilder) stmts(ids []ast.StmtID) []ASTNodeOutput {
	out := make([]ASTNodeOutput, len(ids))
	for i, id := range ids {
		out[i] = j.stmt(id)
	}
	return out
}

func (j jsonBuilder) opt(id ast.ExprID) any {
	if !id.IsValid() {
		return nil
	}
	return j.expr(id)
}

func (j jsonBuilder) stmt(id ast.StmtID) ASTNodeOutput {
	b := j.p.Builder
	st := b.Stmts.Get(id)
	n := ASTNodeOutput{Type: st.Kind.String(), Line: st.Pos.Line, Col: st.Pos.Col, Text: j.p.StmtRaw(id)}
	switch st.Kind {
	case ast.StmtExpr:
		data, _ := b.Stmts.Expr(id)
		n.Children = []ASTNodeOutput{j.expr(data.Expr)}
	case ast.StmtAssign:
		data, _ := b.Stmts.Assign(id)
		n.Fields = map[string]any{"declare": data.Declare, "const": data.Const, "target": j.expr(data.Target), "value": j.opt(data.Value)}
	case ast.StmtTypedAssign:
		data, _ := b.Stmts.TypedAssign(id)
		n.Fields = map[string]any{"const": data.Const, "type": j.expr(data.Type), "target": j.expr(data.Target), "value": j.opt(data.Value)}
	case ast.StmtIf:
		data, _ := b.Stmts.If(id)
		n.Fields = map[string]any{"cond": j.expr(data.Cond), "then": j.stmts(data.Then), "else": j.stmts(data.Else)}
	case ast.StmtFor:
		data, _ := b.Stmts.For(id)
		fields := map[string]any{"cond": j.opt(data.Cond), "init": nil, "post": nil}
		if data.Init.IsValid() {
			fields["init"] = j.stmt(data.Init)
		}
		if data.Post.IsValid() {
			fields["post"] = j.stmt(data.Post)
		}
		n.Fields = fields
		n.Children = j.stmts(data.Body)
	case ast.StmtWhile:
		data, _ := b.Stmts.While(id)
		n.Fields = map[string]any{"cond": j.expr(data.Cond)}
		n.Children = j.stmts(data.Body)
	case ast.StmtDef:
		data, _ := b.Stmts.Def(id)
		params := make([]map[string]any, len(data.Params))
		for i, a := range data.Params {
			params[i] = map[string]any{"name": a.Name, "type": j.opt(a.Type), "default": j.opt(a.Value)}
		}
		n.Fields = map[string]any{"name": data.Name, "params": params}
		n.Children = j.stmts(data.Body)
	case ast.StmtClass:
		data, _ := b.Stmts.Class(id)
		bases := make([]ASTNodeOutput, len(data.Bases))
		for i, base := range data.Bases {
			bases[i] = j.expr(base)
		}
		n.Fields = map[string]any{"name": data.Name, "bases": bases}
		n.Children = j.stmts(data.Body)
	case ast.StmtReturn:
		data, _ := b.Stmts.Return(id)
		n.Fields = map[string]any{"value": j.opt(data.Value)}
	}
	return n
}

func (j jsonBuilder) expr(id ast.ExprID) ASTNodeOutput {
	b := j.p.Builder
	e := b.Exprs.Get(id)
	n := ASTNodeOutput{Type: e.Kind.String(), Line: e.Pos.Line, Col: e.Pos.Col, Text: j.p.ExprRaw(id)}
	switch e.Kind {
	case ast.ExprIdent:
		data, _ := b.Exprs.Ident(id)
		n.Fields = map[string]any{"name": data.Name}
	case ast.ExprLit:
		data, _ := b.Exprs.Literal(id)
		n.Type = data.Kind.String()
		n.Fields = map[string]any{"value": data.Value}
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		n.Fields = map[string]any{"op": data.Op, "postfix": data.Postfix}
		n.Children = []ASTNodeOutput{j.expr(data.Operand)}
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		n.Fields = map[string]any{"op": data.Op}
		n.Children = []ASTNodeOutput{j.expr(data.Left), j.expr(data.Right)}
	case ast.ExprTernary:
		data, _ := b.Exprs.Ternary(id)
		n.Children = []ASTNodeOutput{j.expr(data.Cond), j.expr(data.Then), j.expr(data.Else)}
	case ast.ExprMember:
		data, _ := b.Exprs.Member(id)
		n.Fields = map[string]any{"property": data.Field}
		n.Children = []ASTNodeOutput{j.expr(data.Target)}
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		n.Children = []ASTNodeOutput{j.expr(data.Target)}
		for _, a := range data.Args {
			n.Children = append(n.Children, j.expr(a.Value))
		}
	case ast.ExprIndex:
		data, _ := b.Exprs.Index(id)
		n.Children = []ASTNodeOutput{j.expr(data.Target), j.expr(data.Index)}
	case ast.ExprSlice:
		data, _ := b.Exprs.Slice(id)
		n.Fields = map[string]any{"start": j.opt(data.Start), "stop": j.opt(data.Stop)}
		n.Children = []ASTNodeOutput{j.expr(data.Target)}
	case ast.ExprGeneric:
		data, _ := b.Exprs.Generic(id)
		n.Children = []ASTNodeOutput{j.expr(data.Target)}
		for _, a := range data.Args {
			n.Children = append(n.Children, j.expr(a))
		}
	}
	return n
}
