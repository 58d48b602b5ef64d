package parser

import (
	"fmt"

	"unsure/internal/ast"
	"unsure/internal/diag"
	"unsure/internal/token"
)

// parseStatement dispatches on the first token of toks[lo:hi].
func (p *Parser) parseStatement(lo, hi int) (ast.StmtID, error) {
	first := p.toks[lo]
	switch first.Kind {
	case token.Keyword:
		switch first.Value {
		case "let", "const":
			return p.parseDeclaration(lo, hi)
		case "if":
			return p.parseIf(lo, hi)
		case "for":
			return p.parseFor(lo, hi)
		case "while":
			return p.parseWhile(lo, hi)
		case "def":
			return p.parseDef(lo, hi)
		case "class":
			return p.parseClass(lo, hi)
		case "return":
			return p.parseReturn(lo, hi)
		case "break", "continue":
			return p.parseLoopControl(lo, hi)
		}
		return ast.NoStmtID, p.errorf(diag.SynNoAssignedMeaning, first, "keyword %q has no assigned meaning", first.Value)
	case token.Ident:
		return p.parseIdentStatement(lo, hi)
	}
	return ast.NoStmtID, p.errorf(diag.SynInvalidStatementStart, first, "invalid token for start of statement: %s", describe(first))
}

// parseSimple parses a for-header clause: a declaration, an assignment or an
// expression. An empty range yields NoStmtID.
func (p *Parser) parseSimple(lo, hi int) (ast.StmtID, error) {
	if hi <= lo {
		return ast.NoStmtID, nil
	}
	switch first := p.toks[lo]; {
	case first.IsKeyword("let"), first.IsKeyword("const"):
		return p.parseDeclaration(lo, hi)
	case first.Kind == token.Ident:
		return p.parseIdentStatement(lo, hi)
	}
	return p.parseExprStatement(lo, hi)
}

// parseDeclaration handles
//
//	let|const name [= value]
//	let|const Type name [= value]
func (p *Parser) parseDeclaration(lo, hi int) (ast.StmtID, error) {
	kw := p.toks[lo]
	isConst := kw.Value == "const"

	i := lo + 1
	if i >= hi || p.toks[i].Kind != token.Ident {
		return ast.NoStmtID, p.errorf(diag.SynExpectIdentifier, p.toks[i], "expected a name after %q, got %s", kw.Value, describe(p.toks[i]))
	}
	typeIdx, nameIdx := -1, i
	if i+1 < hi && p.toks[i+1].Kind == token.Ident {
		typeIdx, nameIdx = i, i+1
	}
	rest := nameIdx + 1

	value := ast.NoExprID
	switch {
	case rest == hi:
		if isConst {
			return ast.NoStmtID, p.errorf(diag.SynConstWithoutValue, p.toks[nameIdx], "const %q declared without a value", p.toks[nameIdx].Value)
		}
	case p.toks[rest].Kind != token.Equals:
		return ast.NoStmtID, p.errorf(diag.SynBadAssignment, p.toks[rest], "expected '=' after %q, got %s", p.toks[nameIdx].Value, describe(p.toks[rest]))
	default:
		var err error
		if value, err = p.parseExprRange(rest+1, hi); err != nil {
			return ast.NoStmtID, err
		}
	}

	target := p.identExpr(nameIdx)
	span, pos := p.spanOf(lo, hi), kw.Pos
	if typeIdx >= 0 {
		return p.b.Stmts.NewTypedAssign(span, pos, ast.StmtTypedAssignData{
			Type:   p.identExpr(typeIdx),
			Const:  isConst,
			Target: target,
			Value:  value,
		}), nil
	}
	return p.b.Stmts.NewAssign(span, pos, ast.StmtAssignData{
		Declare: true,
		Const:   isConst,
		Target:  target,
		Value:   value,
	}), nil
}

// parseIdentStatement tries an assignment first and falls back to an
// expression statement. If both fail the error names both reasons.
func (p *Parser) parseIdentStatement(lo, hi int) (ast.StmtID, error) {
	id, assignErr := p.parseAssignment(lo, hi)
	if assignErr == nil || diag.IsInternal(assignErr) {
		return id, assignErr
	}
	id, exprErr := p.parseExprStatement(lo, hi)
	if exprErr == nil || diag.IsInternal(exprErr) {
		return id, exprErr
	}

	a, okA := diag.AsSyntaxError(assignErr)
	e, okE := diag.AsSyntaxError(exprErr)
	if !okA || !okE {
		return ast.NoStmtID, exprErr
	}
	// позиция — у той попытки, что продвинулась дальше
	at := e
	if a.Span.Start > e.Span.Start {
		at = a
	}
	return ast.NoStmtID, &diag.SyntaxError{
		Code:    diag.SynAmbiguousStatement,
		Message: fmt.Sprintf("not an assignment (%s) and not an expression (%s)", a.Message, e.Message),
		Line:    at.Line,
		Col:     at.Col,
		Span:    at.Span,
	}
}

// parseAssignment handles the identifier-led forms
//
//	name = value         reassignment
//	Type name [= value]  implicitly non-const typed declaration
//	target = value       target is obj.name, obj[i] or obj[a:b]
func (p *Parser) parseAssignment(lo, hi int) (ast.StmtID, error) {
	span, pos := p.spanOf(lo, hi), p.toks[lo].Pos
	eq := p.findTopLevel(lo, hi, token.Equals)

	if eq < 0 {
		if hi-lo == 2 && p.toks[lo+1].Kind == token.Ident {
			return p.b.Stmts.NewTypedAssign(span, pos, ast.StmtTypedAssignData{
				Type:   p.identExpr(lo),
				Target: p.identExpr(lo + 1),
			}), nil
		}
		return ast.NoStmtID, p.errorf(diag.SynBadAssignment, p.toks[lo+1], "expected '=' or a name after %q, got %s", p.toks[lo].Value, describe(p.toks[lo+1]))
	}

	typed := eq == lo+2 && p.toks[lo+1].Kind == token.Ident
	var target ast.ExprID
	switch {
	case eq == lo+1:
		target = p.identExpr(lo)
	case typed:
		target = p.identExpr(lo + 1)
	default:
		var err error
		if target, err = p.parseExprRange(lo, eq); err != nil {
			return ast.NoStmtID, err
		}
		switch p.b.Exprs.Get(target).Kind {
		case ast.ExprMember, ast.ExprIndex, ast.ExprSlice:
		default:
			return ast.NoStmtID, p.errorAtExpr(diag.SynBadAssignment, target, "cannot assign to %s", p.b.Exprs.Get(target).Kind)
		}
	}

	value, err := p.parseExprRange(eq+1, hi)
	if err != nil {
		return ast.NoStmtID, err
	}
	if typed {
		return p.b.Stmts.NewTypedAssign(span, pos, ast.StmtTypedAssignData{
			Type:   p.identExpr(lo),
			Target: target,
			Value:  value,
		}), nil
	}
	return p.b.Stmts.NewAssign(span, pos, ast.StmtAssignData{Target: target, Value: value}), nil
}

func (p *Parser) parseExprStatement(lo, hi int) (ast.StmtID, error) {
	expr, err := p.parseExprRange(lo, hi)
	if err != nil {
		return ast.NoStmtID, err
	}
	return p.b.Stmts.NewExpr(p.spanOf(lo, hi), p.toks[lo].Pos, expr), nil
}

func (p *Parser) parseReturn(lo, hi int) (ast.StmtID, error) {
	kw := p.toks[lo]
	if p.defDepth == 0 {
		return ast.NoStmtID, p.errorf(diag.SynReturnOutsideDef, kw, "return outside of def")
	}
	value := ast.NoExprID
	if hi > lo+1 {
		var err error
		if value, err = p.parseExprRange(lo+1, hi); err != nil {
			return ast.NoStmtID, err
		}
	}
	return p.b.Stmts.NewReturn(p.spanOf(lo, hi), kw.Pos, value), nil
}

func (p *Parser) parseLoopControl(lo, hi int) (ast.StmtID, error) {
	kw := p.toks[lo]
	if p.loopDepth == 0 {
		return ast.NoStmtID, p.errorf(diag.SynLoopControlOutsideLoop, kw, "%s outside of a loop", kw.Value)
	}
	if hi > lo+1 {
		return ast.NoStmtID, p.errorf(diag.SynTrailingTokens, p.toks[lo+1], "unexpected %s after %s", describe(p.toks[lo+1]), kw.Value)
	}
	if kw.Value == "break" {
		return p.b.Stmts.NewBreak(kw.Span, kw.Pos), nil
	}
	return p.b.Stmts.NewContinue(kw.Span, kw.Pos), nil
}

func (p *Parser) identExpr(i int) ast.ExprID {
	tok := p.toks[i]
	return p.b.Exprs.NewIdent(tok.Span, tok.Pos, tok.Value)
}
