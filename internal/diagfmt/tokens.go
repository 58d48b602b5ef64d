package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"unsure/internal/source"
	"unsure/internal/token"
)

type TokenOutput struct {
	Kind  string      `json:"kind"`
	Text  string      `json:"text,omitempty"`
	Value string      `json:"value,omitempty"`
	Flag  string      `json:"flag,omitempty"`
	Line  uint32      `json:"line"`
	Col   uint32      `json:"col"`
	Span  source.Span `json:"span"`
}

// TokenOpts selects which tokens are listed.
type TokenOpts struct {
	SkipWhitespace bool
}

func listed(tok token.Token, opts TokenOpts) bool {
	return !opts.SkipWhitespace || !tok.IsWhitespace()
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, opts TokenOpts) error {
	n := 0
	for _, tok := range tokens {
		if !listed(tok, opts) {
			continue
		}
		n++
		if _, err := fmt.Fprintf(w, "%4d: %-14s %-8s %q", n, tok.Kind, tok.Pos, tok.Text); err != nil {
			return err
		}
		if tok.Value != "" && tok.Value != tok.Text {
			fmt.Fprintf(w, " value=%q", tok.Value)
		}
		if tok.Flag != "" {
			fmt.Fprintf(w, " flag=%s", tok.Flag)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, opts TokenOpts) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		if !listed(tok, opts) {
			continue
		}
		out := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Flag: tok.Flag,
			Line: tok.Pos.Line,
			Col:  tok.Pos.Col,
			Span: tok.Span,
		}
		if tok.Value != tok.Text {
			out.Value = tok.Value
		}
		output = append(output, out)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
