package parser

import (
	"fmt"
	"strings"

	"unsure/internal/ast"
	"unsure/internal/diag"
	"unsure/internal/token"
)

var intSuffixes = map[string]ast.LitKind{
	"b":  ast.LitByte,
	"ub": ast.LitUnsignedByte,
	"s":  ast.LitShort,
	"us": ast.LitUnsignedShort,
	"i":  ast.LitInt32,
	"ui": ast.LitUnsignedInt32,
	"l":  ast.LitLong,
	"ul": ast.LitUnsignedLong,
	"n":  ast.LitBigint,
}

// lowerNumber picks the literal variant from the decimal point and suffix.
// Вариант однозначно определяется текстом литерала.
func (p *Parser) lowerNumber(tok token.Token) (ast.ExprID, error) {
	kind, err := literalKind(tok.Value, tok.Flag)
	if err != nil {
		return ast.NoExprID, p.errorf(diag.LexBadNumber, tok, "%s: %q", err.Error(), tok.Text)
	}
	return p.b.Exprs.NewLiteral(tok.Span, tok.Pos, kind, tok.Value), nil
}

func literalKind(digits, flag string) (ast.LitKind, error) {
	isFloat := strings.ContainsRune(digits, '.')
	switch flag {
	case "":
		if isFloat {
			return ast.LitDouble, nil
		}
		return ast.LitBigint, nil
	case "f":
		return ast.LitFloat32, nil
	case "d":
		return ast.LitDouble, nil
	}
	kind, ok := intSuffixes[flag]
	if !ok {
		return 0, fmt.Errorf("unknown number suffix %q", flag)
	}
	if isFloat {
		return 0, fmt.Errorf("integer suffix %q on a floating literal", flag)
	}
	return kind, nil
}
