package lexer

import (
	"strings"
	"unicode/utf8"

	"unsure/internal/diag"
	"unsure/internal/token"
)

var namedEscapes = map[byte]byte{
	'a': '\a', 'b': '\b', 'e': 0x1b, 'f': '\f',
	'n': '\n', 'r': '\r', 't': '\t', 'v': '\v',
}

// scanString reads a '...' or "..." literal. Literals may span lines; Value
// holds the decoded text.
func (lx *Lexer) scanString(start Mark) (token.Token, error) {
	quote := lx.cursor.Bump()
	var sb strings.Builder

	for {
		if lx.cursor.EOF() {
			return token.Token{}, lx.failAt(diag.LexUnterminatedString, start, "unterminated string literal")
		}
		b := lx.cursor.Peek()
		switch {
		case b == quote:
			lx.cursor.Bump()
			tok := lx.emit(token.StringLit, start)
			tok.Value = sb.String()
			return tok, nil
		case b == '\\':
			if err := lx.scanEscape(&sb); err != nil {
				return token.Token{}, err
			}
		default:
			sb.WriteByte(lx.cursor.Bump())
		}
	}
}

func (lx *Lexer) scanEscape(sb *strings.Builder) error {
	esc := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	if lx.cursor.EOF() {
		return nil // незакрытая строка, сообщит scanString
	}
	b := lx.cursor.Peek()

	if r, ok := namedEscapes[b]; ok {
		lx.cursor.Bump()
		sb.WriteByte(r)
		return nil
	}

	switch b {
	case 'x', 'u', 'U':
		width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[b]
		lx.cursor.Bump()
		var v rune
		for i := 0; i < width; i++ {
			h := lx.cursor.Peek()
			if !isHex(h) {
				return lx.failAt(diag.LexBadEscape, esc, "invalid \\%c escape: expected %d hex digits", b, width)
			}
			v = v<<4 | rune(hexVal(h))
			lx.cursor.Bump()
		}
		if !utf8.ValidRune(v) {
			return lx.failAt(diag.LexBadEscape, esc, "escape \\%c%0*X is not a valid code point", b, width, v)
		}
		sb.WriteRune(v)
		return nil
	}

	if isOct(b) {
		var v rune
		for i := 0; i < 3 && isOct(lx.cursor.Peek()); i++ {
			v = v<<3 | rune(lx.cursor.Bump()-'0')
		}
		sb.WriteRune(v)
		return nil
	}

	// любой другой символ — буквально, включая кавычки и '\'
	r, size := lx.peekRune()
	lx.cursor.BumpN(size)
	sb.WriteRune(r)
	return nil
}
