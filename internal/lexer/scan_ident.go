package lexer

import (
	"unsure/internal/token"
)

// scanIdentOrKeyword reads [A-Za-z_$][A-Za-z0-9_$]* and checks it against
// the keyword table. Регистр значим: "Let" — идентификатор.
func (lx *Lexer) scanIdentOrKeyword(start Mark) token.Token {
	for isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Ident, start)
	if token.IsKeyword(tok.Text) {
		tok.Kind = token.Keyword
	}
	return tok
}
