package lexer

import (
	"unsure/internal/diag"
	"unsure/internal/source"
	"unsure/internal/token"
)

// Lexer scans one file left to right. It stops at the first unrecognised input.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	last   token.Token // последний значимый (не пробельный) токен
	err    error
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next token, whitespace included. After the input is
// exhausted it keeps returning EOF. Once an error was returned it is
// returned again on every call.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.err != nil {
		return token.Token{}, lx.err
	}
	if lx.cursor.EOF() {
		at := lx.cursor.Mark()
		return token.Token{Kind: token.EOF, Span: lx.cursor.SpanFrom(at), Pos: lx.cursor.Pos()}, nil
	}

	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	var (
		tok token.Token
		err error
	)

	switch {
	case ch == '=' && lx.cursor.PeekAt(1) == '=':
		// "==" должен победить структурный '='
		tok, err = lx.scanOperator(start)
	case isPunct(ch):
		tok = lx.scanPunct(start)
	case isBlank(ch):
		tok = lx.scanSpace(start)
	case ch == '\n':
		lx.cursor.Bump()
		tok = lx.emit(token.Newline, start)
	case isIdentStart(ch):
		tok = lx.scanIdentOrKeyword(start)
	case ch == '"' || ch == '\'':
		tok, err = lx.scanString(start)
	case isDec(ch), ch == '-' && isDec(lx.cursor.PeekAt(1)) && !lx.operandBefore():
		tok, err = lx.scanNumber(start)
	default:
		tok, err = lx.scanOperator(start)
	}

	if err != nil {
		lx.err = err
		return token.Token{}, err
	}
	if !tok.IsWhitespace() {
		lx.last = tok
	}
	return tok, nil
}

// Tokenize scans the whole file. The result has no EOF sentinel and is
// lossless: the concatenated Text of all tokens equals the file content.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	tokens := make([]token.Token, 0, len(file.Content)/2+1)
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// emit builds a token for the bytes consumed since start.
func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	return token.Token{Kind: kind, Span: sp, Pos: start.PosOf(), Text: text, Value: text}
}

// operandBefore reports whether the previous significant token can end an
// operand; then '-' followed by a digit is the binary minus, not a sign.
func (lx *Lexer) operandBefore() bool {
	switch lx.last.Kind {
	case token.Ident, token.NumberLit, token.StringLit, token.RParen, token.RBracket:
		return true
	case token.Operator:
		return lx.last.Value == "++" || lx.last.Value == "--"
	}
	return false
}

func (lx *Lexer) scanPunct(start Mark) token.Token {
	kind, _ := token.LookupPunct(lx.cursor.Bump())
	return lx.emit(kind, start)
}

func (lx *Lexer) scanSpace(start Mark) token.Token {
	for !lx.cursor.EOF() && isBlank(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.Space, start)
}

func (lx *Lexer) errUnknown(start Mark) error {
	r, _ := lx.peekRune()
	return lx.fail(diag.LexUnknownChar, start, "cannot find token %q", r)
}
