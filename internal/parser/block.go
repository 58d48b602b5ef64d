package parser

import (
	"unsure/internal/ast"
	"unsure/internal/diag"
	"unsure/internal/token"
)

// parseBlock splits toks[start:] into statements and parses each one.
// open is the index of the '{' that started the block, or -1 for the whole
// program; a block returns the index just past its closing '}', a program
// the index of EOF.
//
// На глубине 0 ';' закрывает инструкцию; '}', вернувший глубину в 0, тоже
// закрывает, кроме случая когда следом идёт else.
func (p *Parser) parseBlock(start, open int) ([]ast.StmtID, int, error) {
	var (
		stmts     []ast.StmtID
		stack     []int
		stmtStart = start
	)
	flush := func(hi int) error {
		if hi > stmtStart {
			id, err := p.parseStatement(stmtStart, hi)
			if err != nil {
				return err
			}
			stmts = append(stmts, id)
		}
		stmtStart = hi + 1
		return nil
	}

	for i := start; ; i++ {
		tok := p.toks[i]
		switch tok.Kind {
		case token.EOF:
			if len(stack) > 0 {
				return nil, i, p.unclosed(stack[len(stack)-1])
			}
			if open >= 0 {
				return nil, i, p.unclosed(open)
			}
			if err := flush(i); err != nil {
				return nil, i, err
			}
			return stmts, i, nil

		case token.LParen, token.LBracket, token.LBrace:
			stack = append(stack, i)

		case token.RParen, token.RBracket, token.RBrace:
			if len(stack) == 0 {
				if tok.Kind == token.RBrace && open >= 0 {
					if err := flush(i); err != nil {
						return nil, i, err
					}
					return stmts, i + 1, nil
				}
				return nil, i, p.errorf(diag.SynUnbalancedClose, tok, "unbalanced %q", tok.Text)
			}
			top := stack[len(stack)-1]
			if closerFor(p.toks[top].Kind) != tok.Kind {
				return nil, i, p.mismatched(top, i)
			}
			stack = stack[:len(stack)-1]
			if tok.Kind == token.RBrace && len(stack) == 0 && !p.atKeyword(i+1, "else") {
				if err := flush(i + 1); err != nil {
					return nil, i, err
				}
				stmtStart = i + 1
			}

		case token.Semicolon:
			if len(stack) == 0 {
				if err := flush(i); err != nil {
					return nil, i, err
				}
			}
		}
	}
}

// matchClose finds the closer for toks[open] before limit.
func (p *Parser) matchClose(open, limit int) (int, error) {
	stack := []int{open}
	for i := open + 1; i < limit; i++ {
		k := p.toks[i].Kind
		switch {
		case isOpener(k):
			stack = append(stack, i)
		case isCloser(k):
			top := stack[len(stack)-1]
			if closerFor(p.toks[top].Kind) != k {
				return -1, p.mismatched(top, i)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, nil
			}
		}
	}
	return -1, p.unclosed(stack[len(stack)-1])
}

// splitTopLevel returns the boundaries of the pieces of toks[lo:hi] separated
// by sep at nesting depth 0. Delimiters inside the range must be balanced.
func (p *Parser) splitTopLevel(lo, hi int, sep token.Kind) ([][2]int, error) {
	var parts [][2]int
	depth, from := 0, lo
	for i := lo; i < hi; i++ {
		k := p.toks[i].Kind
		switch {
		case isOpener(k):
			depth++
		case isCloser(k):
			depth--
			if depth < 0 {
				return nil, p.errorf(diag.SynUnbalancedClose, p.toks[i], "unbalanced %q", p.toks[i].Text)
			}
		case k == sep && depth == 0:
			parts = append(parts, [2]int{from, i})
			from = i + 1
		}
	}
	return append(parts, [2]int{from, hi}), nil
}

func (p *Parser) unclosed(open int) error {
	tok := p.toks[open]
	code := diag.SynUnclosedParen
	switch tok.Kind {
	case token.LBracket:
		code = diag.SynUnclosedBracket
	case token.LBrace:
		code = diag.SynUnclosedBrace
	}
	return p.errorf(code, tok, "unclosed %q", tok.Text)
}

func (p *Parser) mismatched(open, close int) error {
	o := p.toks[open]
	return p.errorf(diag.SynUnbalancedClose, p.toks[close],
		"mismatched %q: %q opened at line %d, col %d", p.toks[close].Text, o.Text, o.Line(), o.Col())
}

func isOpener(k token.Kind) bool {
	return k == token.LParen || k == token.LBracket || k == token.LBrace
}

func isCloser(k token.Kind) bool {
	return k == token.RParen || k == token.RBracket || k == token.RBrace
}

func closerFor(k token.Kind) token.Kind {
	switch k {
	case token.LParen:
		return token.RParen
	case token.LBracket:
		return token.RBracket
	case token.LBrace:
		return token.RBrace
	}
	return token.Invalid
}
