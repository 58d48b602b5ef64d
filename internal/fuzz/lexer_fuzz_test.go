package fuzztests

import (
	"testing"

	"unsure/internal/diag"
	"unsure/internal/lexer"
	"unsure/internal/source"
	"unsure/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.uns", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		// каждый шаг съедает хотя бы байт, так что len+1 итераций достаточно
		for i := 0; i <= len(input)+1; i++ {
			tok, err := lx.Next()
			if err != nil {
				if !bag.HasErrors() {
					t.Fatalf("lexer error %v was not reported", err)
				}
				return
			}
			if tok.Kind == token.EOF {
				return
			}
			if tok.Span.End <= tok.Span.Start {
				t.Fatalf("empty token span %v for %s", tok.Span, tok.Kind)
			}
		}
		t.Fatalf("lexer did not reach EOF on %q", truncateForLog(input, 200))
	})
}
