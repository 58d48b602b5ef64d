package lexer

import (
	"unsure/internal/diag"
	"unsure/internal/token"
)

// Формы:
//   -?(0|[1-9][0-9]*)(\.[0-9]+)?
//   0b[01]+ | 0o[0-7]+ | 0x[0-9A-Fa-f]+
// затем необязательный суффикс: n, f, d или u?[bsil].
// Value хранит знак и мантиссу без суффикса, Flag — суффикс.
func (lx *Lexer) scanNumber(start Mark) (token.Token, error) {
	lx.cursor.Eat('-')
	mantStart := lx.cursor.Off

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'b', 'o', 'x':
			return lx.scanPrefixed(start)
		}
	}

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		if isDec(lx.cursor.Peek()) {
			return token.Token{}, lx.fail(diag.LexBadNumber, start, "leading zeros in number literal")
		}
	} else {
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	// дробная часть только если за точкой цифра, иначе '.' — доступ к свойству
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	mantEnd := lx.cursor.Off

	return lx.finishNumber(start, mantStart, mantEnd)
}

func (lx *Lexer) scanPrefixed(start Mark) (token.Token, error) {
	mantStart := lx.cursor.Off
	lx.cursor.Bump() // '0'
	base := lx.cursor.Bump()

	var digit func(byte) bool
	switch base {
	case 'b':
		digit = func(b byte) bool { return b == '0' || b == '1' }
	case 'o':
		digit = func(b byte) bool { return b >= '0' && b <= '7' }
	default:
		digit = isHex
	}

	n := 0
	for digit(lx.cursor.Peek()) {
		lx.cursor.Bump()
		n++
	}
	if n == 0 {
		return token.Token{}, lx.fail(diag.LexBadNumber, start, "expected digits after 0%c", base)
	}
	return lx.finishNumber(start, mantStart, lx.cursor.Off)
}

// finishNumber reads the optional suffix and rejects glued identifier chars.
func (lx *Lexer) finishNumber(start Mark, mantStart, mantEnd uint32) (token.Token, error) {
	flag := lx.scanSuffix()
	if isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
		return token.Token{}, lx.fail(diag.LexBadNumber, start, "invalid character in number literal")
	}

	tok := lx.emit(token.NumberLit, start)
	sign := ""
	if lx.file.Content[start.off] == '-' {
		sign = "-"
	}
	tok.Value = sign + string(lx.file.Content[mantStart:mantEnd])
	tok.Flag = flag
	return tok, nil
}

func (lx *Lexer) scanSuffix() string {
	switch b := lx.cursor.Peek(); b {
	case 'n', 'f', 'd', 'b', 's', 'i', 'l':
		lx.cursor.Bump()
		return string(b)
	case 'u':
		if next := lx.cursor.PeekAt(1); isIntWidth(next) {
			lx.cursor.BumpN(2)
			return "u" + string(next)
		}
	}
	return ""
}

func isIntWidth(b byte) bool {
	return b == 'b' || b == 's' || b == 'i' || b == 'l'
}
