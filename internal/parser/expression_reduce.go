package parser

import (
	"unsure/internal/ast"
	"unsure/internal/diag"
	"unsure/internal/token"
)

// reduce turns a flat item list into one node: ternary split first, then the
// unary pass, then binary reduction. at positions the error for an empty list.
func (p *Parser) reduce(items []item, at token.Token) (ast.ExprID, error) {
	if len(items) == 0 {
		return ast.NoExprID, p.errorf(diag.SynEmptyExpression, at, "expected an expression")
	}
	q := -1
	for i, it := range items {
		if it.op == "?" {
			q = i
			break
		}
		if it.op == ":" {
			return ast.NoExprID, p.errorf(diag.SynBadTernary, it.tok, "':' without a matching '?'")
		}
	}
	if q >= 0 {
		return p.reduceTernary(items, q)
	}

	seq, err := p.unaryPass(items)
	if err != nil {
		return ast.NoExprID, err
	}
	return p.reduceBinary(seq)
}

// reduceTernary splits at the first '?' and its matching ':'; the else branch
// is reduced recursively, so a ? b : c ? d : e nests to the right.
func (p *Parser) reduceTernary(items []item, q int) (ast.ExprID, error) {
	c, depth := -1, 0
	for j := q + 1; j < len(items) && c < 0; j++ {
		switch items[j].op {
		case "?":
			depth++
		case ":":
			if depth == 0 {
				c = j
			} else {
				depth--
			}
		}
	}
	qtok := items[q].tok
	if c < 0 {
		return ast.NoExprID, p.errorf(diag.SynBadTernary, qtok, "'?' without a matching ':'")
	}
	ctok := items[c].tok
	switch {
	case q == 0:
		return ast.NoExprID, p.errorf(diag.SynBadTernary, qtok, "missing condition before '?'")
	case c == q+1:
		return ast.NoExprID, p.errorf(diag.SynBadTernary, ctok, "missing value between '?' and ':'")
	case c == len(items)-1:
		return ast.NoExprID, p.errorf(diag.SynBadTernary, ctok, "missing value after ':'")
	}

	cond, err := p.reduce(items[:q], qtok)
	if err != nil {
		return ast.NoExprID, err
	}
	then, err := p.reduce(items[q+1:c], ctok)
	if err != nil {
		return ast.NoExprID, err
	}
	els, err := p.reduce(items[c+1:], ctok)
	if err != nil {
		return ast.NoExprID, err
	}
	span := p.exprSpan(cond).Cover(p.exprSpan(els))
	return p.b.Exprs.NewTernary(span, p.exprPos(cond), cond, then, els), nil
}

// unaryPass resolves prefix and postfix operators. The result alternates
// operand, binary operator, operand, ...
func (p *Parser) unaryPass(items []item) ([]item, error) {
	out := make([]item, 0, len(items))
	expectOperand := true

	for i := 0; i < len(items); i++ {
		it := items[i]
		if expectOperand {
			operand, next, err := p.applyPrefix(items, i)
			if err != nil {
				return nil, err
			}
			out = append(out, operand)
			expectOperand = false
			i = next
			continue
		}

		switch {
		case it.isOperand():
			return nil, p.errorAtExpr(diag.SynExtraOperand, it.expr, "unexpected operand, expected an operator")
		case it.op == "++" || it.op == "--":
			// постфикс переписывает предыдущий операнд на месте
			prev := out[len(out)-1]
			span := p.exprSpan(prev.expr).Cover(it.tok.Span)
			out[len(out)-1] = item{expr: p.b.Exprs.NewUnary(span, p.exprPos(prev.expr), it.op, prev.expr, true), tok: prev.tok}
		case binaryPrecedence(it.op) >= 0:
			out = append(out, it)
			expectOperand = true
		default:
			return nil, p.errorf(diag.SynUnexpectedToken, it.tok, "operator %q cannot follow an operand", it.op)
		}
	}

	if expectOperand {
		last := out[len(out)-1]
		return nil, p.errorf(diag.SynMissingOperand, last.tok, "missing operand after %q", last.op)
	}
	return out, nil
}

// applyPrefix returns the operand starting at items[i] with every prefix
// operator before it applied, and the index of the last item consumed.
func (p *Parser) applyPrefix(items []item, i int) (item, int, error) {
	it := items[i]
	if it.isOperand() {
		return it, i, nil
	}
	if !token.IsUnary(it.op) {
		return item{}, i, p.errorf(diag.SynNotUnary, it.tok, "%q is not a unary operator", it.op)
	}
	if i+1 >= len(items) {
		return item{}, i, p.errorf(diag.SynMissingOperand, it.tok, "missing operand for %q", it.op)
	}
	operand, next, err := p.applyPrefix(items, i+1)
	if err != nil {
		return item{}, next, err
	}
	span := it.tok.Span.Cover(p.exprSpan(operand.expr))
	return item{expr: p.b.Exprs.NewUnary(span, it.tok.Pos, it.op, operand.expr, false), tok: it.tok}, next, nil
}

// reduceBinary orders operators into postfix form and folds it.
//
// Входящий оператор выталкивает из стека только операторы со строго большим
// приоритетом; в конце стек сливается в обратном порядке. Поэтому цепочка
// операторов одного уровня группируется вправо: 1 - 2 - 3 == 1 - (2 - 3).
func (p *Parser) reduceBinary(seq []item) (ast.ExprID, error) {
	output := make([]item, 0, len(seq))
	var pending []item
	for _, it := range seq {
		if it.isOperand() {
			output = append(output, it)
			continue
		}
		prec := binaryPrecedence(it.op)
		for len(pending) > 0 && binaryPrecedence(pending[len(pending)-1].op) > prec {
			output = append(output, pending[len(pending)-1])
			pending = pending[:len(pending)-1]
		}
		pending = append(pending, it)
	}
	for len(pending) > 0 {
		output = append(output, pending[len(pending)-1])
		pending = pending[:len(pending)-1]
	}

	var slots []ast.ExprID
	for _, it := range output {
		if it.isOperand() {
			slots = append(slots, it.expr)
			continue
		}
		if len(slots) < 2 {
			return ast.NoExprID, diag.Unreachable("binary reduction: %q at %d:%d has %d operands", it.op, it.tok.Line(), it.tok.Col(), len(slots))
		}
		left, right := slots[len(slots)-2], slots[len(slots)-1]
		span := p.exprSpan(left).Cover(p.exprSpan(right))
		slots = append(slots[:len(slots)-2], p.b.Exprs.NewBinary(span, p.exprPos(left), it.op, left, right))
	}

	switch len(slots) {
	case 1:
		return slots[0], nil
	case 0:
		return ast.NoExprID, diag.Unreachable("binary reduction produced no value")
	default:
		return ast.NoExprID, p.errorAtExpr(diag.SynExtraOperand, slots[1], "too many operands")
	}
}
