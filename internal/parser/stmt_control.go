package parser

import (
	"unsure/internal/ast"
	"unsure/internal/diag"
	"unsure/internal/token"
)

// if (cond) { ... } [else { ... } | else if ...]
func (p *Parser) parseIf(lo, hi int) (ast.StmtID, error) {
	kw := p.toks[lo]
	cond, closeIdx, err := p.parseParenHeader(lo)
	if err != nil {
		return ast.NoStmtID, err
	}
	body, next, err := p.parseBody(closeIdx + 1)
	if err != nil {
		return ast.NoStmtID, err
	}

	var orelse []ast.StmtID
	if next < hi && p.atKeyword(next, "else") {
		if next+1 < hi && p.atKeyword(next+1, "if") {
			nested, err := p.parseIf(next+1, hi)
			if err != nil {
				return ast.NoStmtID, err
			}
			orelse, next = []ast.StmtID{nested}, hi
		} else if orelse, next, err = p.parseBody(next + 1); err != nil {
			return ast.NoStmtID, err
		}
	}
	if err := p.expectEnd(next, hi); err != nil {
		return ast.NoStmtID, err
	}
	return p.b.Stmts.NewIf(p.spanOf(lo, hi), kw.Pos, cond, body, orelse), nil
}

// for (init; cond; post) { ... } — ровно три клаузы, любая может быть пустой.
func (p *Parser) parseFor(lo, hi int) (ast.StmtID, error) {
	kw := p.toks[lo]
	open := lo + 1
	if open >= hi || !p.at(open, token.LParen) {
		return ast.NoStmtID, p.errorf(diag.SynExpectParen, p.toks[open], "expected '(' after for, got %s", describe(p.toks[open]))
	}
	closeIdx, err := p.matchClose(open, hi)
	if err != nil {
		return ast.NoStmtID, err
	}
	parts, err := p.splitTopLevel(open+1, closeIdx, token.Semicolon)
	if err != nil {
		return ast.NoStmtID, err
	}
	if len(parts) != 3 {
		return ast.NoStmtID, p.errorf(diag.SynForBadHeader, p.toks[open],
			"for header needs 3 clauses separated by ';', got %d", len(parts))
	}

	var data ast.StmtForData
	if data.Init, err = p.parseSimple(parts[0][0], parts[0][1]); err != nil {
		return ast.NoStmtID, err
	}
	if parts[1][1] > parts[1][0] {
		if data.Cond, err = p.parseExprRange(parts[1][0], parts[1][1]); err != nil {
			return ast.NoStmtID, err
		}
	}
	if data.Post, err = p.parseSimple(parts[2][0], parts[2][1]); err != nil {
		return ast.NoStmtID, err
	}

	p.loopDepth++
	body, next, err := p.parseBody(closeIdx + 1)
	p.loopDepth--
	if err != nil {
		return ast.NoStmtID, err
	}
	if err := p.expectEnd(next, hi); err != nil {
		return ast.NoStmtID, err
	}
	data.Body = body
	return p.b.Stmts.NewFor(p.spanOf(lo, hi), kw.Pos, data), nil
}

// while (cond) { ... }
func (p *Parser) parseWhile(lo, hi int) (ast.StmtID, error) {
	kw := p.toks[lo]
	cond, closeIdx, err := p.parseParenHeader(lo)
	if err != nil {
		return ast.NoStmtID, err
	}
	p.loopDepth++
	body, next, err := p.parseBody(closeIdx + 1)
	p.loopDepth--
	if err != nil {
		return ast.NoStmtID, err
	}
	if err := p.expectEnd(next, hi); err != nil {
		return ast.NoStmtID, err
	}
	return p.b.Stmts.NewWhile(p.spanOf(lo, hi), kw.Pos, cond, body), nil
}

// parseParenHeader parses `(expr)` right after the keyword at kwIdx and
// returns the index of ')'.
func (p *Parser) parseParenHeader(kwIdx int) (ast.ExprID, int, error) {
	kw := p.toks[kwIdx]
	open := kwIdx + 1
	if !p.at(open, token.LParen) {
		return ast.NoExprID, open, p.errorf(diag.SynExpectParen, p.toks[open], "expected '(' after %s, got %s", kw.Value, describe(p.toks[open]))
	}
	cond, end, err := p.parseExpression(open+1, true)
	if err != nil {
		return ast.NoExprID, end, err
	}
	if !p.at(end, token.RParen) {
		return ast.NoExprID, end, p.errorf(diag.SynUnexpectedToken, p.toks[end], "expected ')' to close the %s condition, got %s", kw.Value, describe(p.toks[end]))
	}
	return cond, end, nil
}

// parseBody parses a `{ ... }` block starting at idx.
func (p *Parser) parseBody(idx int) ([]ast.StmtID, int, error) {
	if !p.at(idx, token.LBrace) {
		return nil, idx, p.errorf(diag.SynExpectBrace, p.toks[idx], "expected '{', got %s", describe(p.toks[idx]))
	}
	return p.parseBlock(idx+1, idx)
}

func (p *Parser) expectEnd(next, hi int) error {
	if next < hi {
		return p.errorf(diag.SynTrailingTokens, p.toks[next], "unexpected %s after block", describe(p.toks[next]))
	}
	return nil
}
