package lexer

import (
	"unsure/internal/token"
)

// scanOperator applies maximal munch over token.Operators.
func (lx *Lexer) scanOperator(start Mark) (token.Token, error) {
	op, ok := token.MatchOperator(lx.cursor.Rest())
	if !ok {
		return token.Token{}, lx.errUnknown(start)
	}
	lx.cursor.BumpN(len(op))
	return lx.emit(token.Operator, start), nil
}
