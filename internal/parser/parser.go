package parser

import (
	"fmt"

	"fortio.org/safecast"

	"unsure/internal/ast"
	"unsure/internal/diag"
	"unsure/internal/source"
	"unsure/internal/token"
)

type Options struct {
	// Reporter получает первую (и единственную) синтаксическую ошибку. May be nil.
	Reporter diag.Reporter
	Hints    ast.Hints
}

// Parser — состояние парсера на один файл. Разбор останавливается на первой
// ошибке, восстановления нет.
type Parser struct {
	file *source.File
	b    *ast.Builder
	toks []token.Token // только значимые токены, последний — EOF
	opts Options

	defDepth  int // вложенность def: return допустим только внутри
	loopDepth int // вложенность циклов в текущей функции
}

// ParseFile builds a Program from the tokens of file. Whitespace tokens are
// dropped here; tokens may or may not end with EOF.
func ParseFile(file *source.File, tokens []token.Token, opts Options) (*ast.Program, error) {
	p := newParser(file, tokens, opts)

	stmts, _, err := p.parseBlock(0, -1)
	if err != nil {
		p.report(err)
		return nil, err
	}

	return &ast.Program{
		File:       file,
		Builder:    p.b,
		Statements: stmts,
		Span:       p.spanOf(0, len(p.toks)),
	}, nil
}

func newParser(file *source.File, tokens []token.Token, opts Options) *Parser {
	toks := make([]token.Token, 0, len(tokens)/2+1)
	for _, tok := range tokens {
		if tok.IsWhitespace() || tok.Kind == token.EOF {
			continue
		}
		toks = append(toks, tok)
	}
	toks = append(toks, eofToken(file))

	return &Parser{
		file: file,
		b:    ast.NewBuilder(opts.Hints),
		toks: toks,
		opts: opts,
	}
}

func eofToken(file *source.File) token.Token {
	end, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		panic(fmt.Errorf("file too large: %w", err))
	}
	return token.Token{
		Kind: token.EOF,
		Span: source.Span{File: file.ID, Start: end, End: end},
		Pos:  file.Position(end),
	}
}

func (p *Parser) report(err error) {
	if p.opts.Reporter == nil {
		return
	}
	if se, ok := diag.AsSyntaxError(err); ok {
		p.opts.Reporter.Report(se.Code, diag.SevError, se.Span, se.Message, nil)
	}
}

// errorf returns a SyntaxError positioned at tok.
func (p *Parser) errorf(code diag.Code, tok token.Token, format string, args ...any) error {
	return diag.NewSyntaxError(code, tok.Span, tok.Pos, format, args...)
}

// spanOf covers toks[lo:hi]; an empty range yields the empty span at lo.
func (p *Parser) spanOf(lo, hi int) source.Span {
	if hi <= lo {
		sp := p.toks[lo].Span
		sp.End = sp.Start
		return sp
	}
	return p.toks[lo].Span.Cover(p.toks[hi-1].Span)
}

func (p *Parser) at(i int, k token.Kind) bool {
	return i < len(p.toks) && p.toks[i].Kind == k
}

func (p *Parser) atKeyword(i int, name string) bool {
	return i < len(p.toks) && p.toks[i].IsKeyword(name)
}

// describe renders a token for error messages.
func describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
}
