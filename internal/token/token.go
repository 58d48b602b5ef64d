package token

import (
	"unsure/internal/source"
)

// Token is one lexeme with its decoded payload and position.
type Token struct {
	Kind  Kind
	Span  source.Span
	Pos   source.LineCol
	Text  string // raw source text
	Value string // name, symbol, decoded string or signed digits
	Flag  string // numeric suffix: "", n, f, d, b, s, i, l, ub, us, ui, ul
}

// Is reports whether the token has kind k.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// IsOp reports whether the token is the operator sym.
func (t Token) IsOp(sym string) bool { return t.Kind == Operator && t.Value == sym }

// IsKeyword reports whether the token is the keyword name.
func (t Token) IsKeyword(name string) bool { return t.Kind == Keyword && t.Value == name }

// IsWhitespace reports whether the token is Space or Newline.
func (t Token) IsWhitespace() bool { return t.Kind == Space || t.Kind == Newline }

// OperatorSymbol returns the operator spelled by the token, including the word
// operators that are lexed as keywords.
func (t Token) OperatorSymbol() (string, bool) {
	switch t.Kind {
	case Operator:
		return t.Value, true
	case Keyword:
		if IsWordOperator(t.Value) {
			return t.Value, true
		}
	}
	return "", false
}

// Line returns the 1-based line of the first byte.
func (t Token) Line() int { return int(t.Pos.Line) }

// Col returns the 1-based column of the first byte.
func (t Token) Col() int { return int(t.Pos.Col) }
