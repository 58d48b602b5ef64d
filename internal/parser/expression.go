package parser

import (
	"unsure/internal/ast"
	"unsure/internal/diag"
	"unsure/internal/source"
	"unsure/internal/token"
)

// item — элемент плоского списка выражения: либо операнд (expr), либо
// оператор (op). tok — токен оператора или первый токен операнда.
type item struct {
	expr ast.ExprID
	op   string
	tok  token.Token
}

func (it item) isOperand() bool { return it.expr.IsValid() }

// parseExpression parses the expression starting at start. It ends before
// the first depth-0 ';', '{', '}', ',' or EOF, or before the ')' that closes
// an enclosing group when stopAtCloseParen is set. Returns the node and the
// index of the terminating token.
func (p *Parser) parseExpression(start int, stopAtCloseParen bool) (ast.ExprID, int, error) {
	end, depth := start, 0
loop:
	for ; ; end++ {
		tok := p.toks[end]
		switch {
		case tok.Kind == token.EOF:
			break loop
		case depth == 0 && (tok.Kind == token.Semicolon || tok.Kind == token.LBrace ||
			tok.Kind == token.RBrace || tok.Kind == token.Comma):
			break loop
		case isOpener(tok.Kind):
			depth++
		case isCloser(tok.Kind):
			if depth == 0 {
				if stopAtCloseParen && tok.Kind == token.RParen {
					break loop
				}
				return ast.NoExprID, end, p.errorf(diag.SynUnbalancedClose, tok, "unbalanced %q", tok.Text)
			}
			depth--
		}
	}
	id, err := p.parseExprRange(start, end)
	return id, end, err
}

// parseExprRange parses exactly toks[lo:hi] as one expression.
func (p *Parser) parseExprRange(lo, hi int) (ast.ExprID, error) {
	if hi <= lo {
		return ast.NoExprID, p.errorf(diag.SynEmptyExpression, p.toks[lo], "expected an expression before %s", describe(p.toks[lo]))
	}
	items, err := p.collectItems(lo, hi)
	if err != nil {
		return ast.NoExprID, err
	}
	return p.reduce(items, p.toks[lo])
}

// collectItems is the grouping and postfix pass: parenthesised groups are
// parsed recursively, and calls, subscripts and property access are folded
// into the operand before them.
func (p *Parser) collectItems(lo, hi int) ([]item, error) {
	items := make([]item, 0, hi-lo)
	lastOperand := func() bool {
		return len(items) > 0 && items[len(items)-1].isOperand()
	}

	for i := lo; i < hi; i++ {
		tok := p.toks[i]
		switch tok.Kind {
		case token.Ident:
			items = append(items, item{expr: p.b.Exprs.NewIdent(tok.Span, tok.Pos, tok.Value), tok: tok})

		case token.StringLit:
			items = append(items, item{expr: p.b.Exprs.NewLiteral(tok.Span, tok.Pos, ast.LitString, tok.Value), tok: tok})

		case token.NumberLit:
			id, err := p.lowerNumber(tok)
			if err != nil {
				return nil, err
			}
			items = append(items, item{expr: id, tok: tok})

		case token.Operator:
			items = append(items, item{op: tok.Value, tok: tok})

		case token.Keyword:
			if !token.IsWordOperator(tok.Value) {
				return nil, p.errorf(diag.SynUnexpectedToken, tok, "unexpected keyword %q in expression", tok.Value)
			}
			items = append(items, item{op: tok.Value, tok: tok})

		case token.LParen:
			closeIdx, err := p.matchClose(i, hi)
			if err != nil {
				return nil, err
			}
			if lastOperand() {
				callee := items[len(items)-1]
				args, err := p.parseCallArgs(i+1, closeIdx)
				if err != nil {
					return nil, err
				}
				span := p.exprSpan(callee.expr).Cover(p.toks[closeIdx].Span)
				items[len(items)-1] = item{expr: p.b.Exprs.NewCall(span, p.exprPos(callee.expr), callee.expr, args), tok: callee.tok}
			} else {
				if closeIdx == i+1 {
					return nil, p.errorf(diag.SynEmptyExpression, p.toks[closeIdx], "empty parentheses")
				}
				inner, err := p.parseExprRange(i+1, closeIdx)
				if err != nil {
					return nil, err
				}
				items = append(items, item{expr: inner, tok: tok})
			}
			i = closeIdx

		case token.LBracket:
			if !lastOperand() {
				return nil, p.errorf(diag.SynBadSubscript, tok, "subscript without an operand")
			}
			closeIdx, err := p.matchClose(i, hi)
			if err != nil {
				return nil, err
			}
			target := items[len(items)-1]
			id, err := p.parseSubscript(target.expr, i, closeIdx)
			if err != nil {
				return nil, err
			}
			items[len(items)-1] = item{expr: id, tok: target.tok}
			i = closeIdx

		case token.Period:
			if !lastOperand() {
				return nil, p.errorf(diag.SynUnexpectedToken, tok, "property access without an operand")
			}
			if i+1 >= hi || p.toks[i+1].Kind != token.Ident {
				return nil, p.errorf(diag.SynExpectIdentifier, p.toks[i+1], "expected property name after '.', got %s", describe(p.toks[i+1]))
			}
			target := items[len(items)-1]
			name := p.toks[i+1]
			span := p.exprSpan(target.expr).Cover(name.Span)
			items[len(items)-1] = item{expr: p.b.Exprs.NewMember(span, p.exprPos(target.expr), target.expr, name.Value), tok: target.tok}
			i++

		case token.RParen, token.RBracket, token.RBrace:
			return nil, p.errorf(diag.SynUnbalancedClose, tok, "unbalanced %q", tok.Text)

		default:
			return nil, p.errorf(diag.SynUnexpectedToken, tok, "unexpected %s in expression", describe(tok))
		}
	}
	return items, nil
}

// parseCallArgs parses the comma separated arguments in toks[lo:hi].
// Only plain values are accepted: names and defaults belong to def.
func (p *Parser) parseCallArgs(lo, hi int) ([]ast.Argument, error) {
	if lo == hi {
		return nil, nil
	}
	parts, err := p.splitTopLevel(lo, hi, token.Comma)
	if err != nil {
		return nil, err
	}
	args := make([]ast.Argument, 0, len(parts))
	for _, part := range parts {
		if part[0] == part[1] {
			return nil, p.errorf(diag.SynEmptyExpression, p.toks[part[1]], "empty argument")
		}
		if eq := p.findTopLevel(part[0], part[1], token.Equals); eq >= 0 {
			return nil, p.errorf(diag.SynNamedArgument, p.toks[eq], "named or default arguments are only allowed in a def")
		}
		value, err := p.parseExprRange(part[0], part[1])
		if err != nil {
			return nil, err
		}
		args = append(args, ast.Argument{
			Span:  p.spanOf(part[0], part[1]),
			Pos:   p.toks[part[0]].Pos,
			Value: value,
		})
	}
	return args, nil
}

// parseSubscript builds GetItem or, with a depth-0 ':' that does not belong
// to a '?', GetSlice. Either slice bound may be empty.
func (p *Parser) parseSubscript(target ast.ExprID, open, closeIdx int) (ast.ExprID, error) {
	span := p.exprSpan(target).Cover(p.toks[closeIdx].Span)
	pos := p.exprPos(target)
	lo, hi := open+1, closeIdx
	if lo == hi {
		return ast.NoExprID, p.errorf(diag.SynBadSubscript, p.toks[closeIdx], "empty subscript")
	}

	colon, pending, depth := -1, 0, 0
	for i := lo; i < hi && colon < 0; i++ {
		tok := p.toks[i]
		switch {
		case isOpener(tok.Kind):
			depth++
		case isCloser(tok.Kind):
			depth--
		case depth == 0 && tok.IsOp("?"):
			pending++
		case depth == 0 && tok.IsOp(":"):
			if pending == 0 {
				colon = i
			} else {
				pending--
			}
		}
	}

	if colon < 0 {
		index, err := p.parseExprRange(lo, hi)
		if err != nil {
			return ast.NoExprID, err
		}
		return p.b.Exprs.NewIndex(span, pos, target, index), nil
	}

	start, stop := ast.NoExprID, ast.NoExprID
	var err error
	if colon > lo {
		if start, err = p.parseExprRange(lo, colon); err != nil {
			return ast.NoExprID, err
		}
	}
	if hi > colon+1 {
		if stop, err = p.parseExprRange(colon+1, hi); err != nil {
			return ast.NoExprID, err
		}
	}
	return p.b.Exprs.NewSlice(span, pos, target, start, stop), nil
}

// findTopLevel returns the index of the first depth-0 token of kind k, or -1.
func (p *Parser) findTopLevel(lo, hi int, k token.Kind) int {
	depth := 0
	for i := lo; i < hi; i++ {
		switch kind := p.toks[i].Kind; {
		case isOpener(kind):
			depth++
		case isCloser(kind):
			depth--
		case kind == k && depth == 0:
			return i
		}
	}
	return -1
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.b.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{}
}

func (p *Parser) exprPos(id ast.ExprID) source.LineCol {
	if e := p.b.Exprs.Get(id); e != nil {
		return e.Pos
	}
	return source.LineCol{}
}

// errorAtExpr positions a SyntaxError at the first byte of an expression.
func (p *Parser) errorAtExpr(code diag.Code, id ast.ExprID, format string, args ...any) error {
	return diag.NewSyntaxError(code, p.exprSpan(id), p.exprPos(id), format, args...)
}
