package lexer

import (
	"unsure/internal/diag"
)

type Options struct {
	// Reporter receives the fatal scan error before Next returns it. May be nil.
	Reporter diag.Reporter
}

func (lx *Lexer) fail(code diag.Code, at Mark, format string, args ...any) error {
	sp := lx.cursor.SpanFrom(at)
	if sp.Empty() && !lx.cursor.EOF() {
		sp.End++
	}
	err := diag.NewSyntaxError(code, sp, at.PosOf(), format, args...)
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(err.Code, diag.SevError, err.Span, err.Message, nil)
	}
	return err
}

// failAt is like fail but the span covers only the byte at at.
func (lx *Lexer) failAt(code diag.Code, at Mark, format string, args ...any) error {
	here := lx.cursor.Mark()
	lx.cursor.Reset(at)
	err := lx.fail(code, at, format, args...)
	lx.cursor.Reset(here)
	return err
}
