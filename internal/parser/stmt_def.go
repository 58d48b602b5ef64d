package parser

import (
	"unsure/internal/ast"
	"unsure/internal/diag"
	"unsure/internal/token"
)

// def name(params) { ... }
func (p *Parser) parseDef(lo, hi int) (ast.StmtID, error) {
	kw := p.toks[lo]
	nameIdx, open := lo+1, lo+2
	if nameIdx >= hi || !p.at(nameIdx, token.Ident) {
		return ast.NoStmtID, p.errorf(diag.SynExpectIdentifier, p.toks[nameIdx], "expected a function name after def, got %s", describe(p.toks[nameIdx]))
	}
	if open >= hi || !p.at(open, token.LParen) {
		return ast.NoStmtID, p.errorf(diag.SynExpectParen, p.toks[open], "expected '(' after %q, got %s", p.toks[nameIdx].Value, describe(p.toks[open]))
	}
	closeIdx, err := p.matchClose(open, hi)
	if err != nil {
		return ast.NoStmtID, err
	}
	params, err := p.parseParams(open+1, closeIdx)
	if err != nil {
		return ast.NoStmtID, err
	}

	// тело функции — новый контекст: break/continue внешнего цикла недоступны
	savedLoop := p.loopDepth
	p.loopDepth = 0
	p.defDepth++
	body, next, err := p.parseBody(closeIdx + 1)
	p.defDepth--
	p.loopDepth = savedLoop
	if err != nil {
		return ast.NoStmtID, err
	}
	if err := p.expectEnd(next, hi); err != nil {
		return ast.NoStmtID, err
	}
	return p.b.Stmts.NewDef(p.spanOf(lo, hi), kw.Pos, p.toks[nameIdx].Value, params, body), nil
}

// parseParams accepts `name`, `Type name`, `name = default` and
// `Type name = default`, separated by commas.
func (p *Parser) parseParams(lo, hi int) ([]ast.Argument, error) {
	if lo == hi {
		return nil, nil
	}
	parts, err := p.splitTopLevel(lo, hi, token.Comma)
	if err != nil {
		return nil, err
	}
	params := make([]ast.Argument, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		a, b := part[0], part[1]
		if a == b {
			return nil, p.errorf(diag.SynBadParameter, p.toks[b], "empty parameter")
		}
		head := b
		eq := p.findTopLevel(a, b, token.Equals)
		if eq >= 0 {
			head = eq
		}

		arg := ast.Argument{Span: p.spanOf(a, b), Pos: p.toks[a].Pos}
		nameIdx := -1
		switch {
		case head-a == 1 && p.at(a, token.Ident):
			nameIdx = a
		case head-a == 2 && p.at(a, token.Ident) && p.at(a+1, token.Ident):
			arg.Type = p.identExpr(a)
			nameIdx = a + 1
		default:
			return nil, p.errorf(diag.SynBadParameter, p.toks[a], "expected 'name', 'type name' or either with '= default'")
		}
		arg.Name = p.toks[nameIdx].Value
		if _, dup := seen[arg.Name]; dup {
			return nil, p.errorf(diag.SynBadParameter, p.toks[nameIdx], "duplicate parameter %q", arg.Name)
		}
		seen[arg.Name] = struct{}{}

		if eq >= 0 {
			if arg.Value, err = p.parseExprRange(eq+1, b); err != nil {
				return nil, err
			}
		}
		params = append(params, arg)
	}
	return params, nil
}

// class Name[(bases)] { members }
func (p *Parser) parseClass(lo, hi int) (ast.StmtID, error) {
	kw := p.toks[lo]
	nameIdx := lo + 1
	if nameIdx >= hi || !p.at(nameIdx, token.Ident) {
		return ast.NoStmtID, p.errorf(diag.SynExpectIdentifier, p.toks[nameIdx], "expected a class name, got %s", describe(p.toks[nameIdx]))
	}

	idx := nameIdx + 1
	var bases []ast.ExprID
	if idx < hi && p.at(idx, token.LParen) {
		closeIdx, err := p.matchClose(idx, hi)
		if err != nil {
			return ast.NoStmtID, err
		}
		if closeIdx > idx+1 {
			parts, err := p.splitTopLevel(idx+1, closeIdx, token.Comma)
			if err != nil {
				return ast.NoStmtID, err
			}
			for _, part := range parts {
				base, err := p.parseExprRange(part[0], part[1])
				if err != nil {
					return ast.NoStmtID, err
				}
				bases = append(bases, base)
			}
		}
		idx = closeIdx + 1
	}

	savedDef, savedLoop := p.defDepth, p.loopDepth
	p.defDepth, p.loopDepth = 0, 0
	body, next, err := p.parseBody(idx)
	p.defDepth, p.loopDepth = savedDef, savedLoop
	if err != nil {
		return ast.NoStmtID, err
	}
	if err := p.expectEnd(next, hi); err != nil {
		return ast.NoStmtID, err
	}
	for _, id := range body {
		if err := p.checkClassMember(id); err != nil {
			return ast.NoStmtID, err
		}
	}
	return p.b.Stmts.NewClass(p.spanOf(lo, hi), kw.Pos, p.toks[nameIdx].Value, bases, body), nil
}

// В теле класса допустимы только объявления полей и методы.
func (p *Parser) checkClassMember(id ast.StmtID) error {
	st := p.b.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtTypedAssign, ast.StmtDef:
		return nil
	case ast.StmtAssign:
		if as, _ := p.b.Stmts.Assign(id); p.b.Exprs.Get(as.Target).Kind == ast.ExprIdent {
			return nil
		}
	}
	return diag.NewSyntaxError(diag.SynBadClassMember, st.Span, st.Pos, "%s is not allowed in a class body", st.Kind)
}
