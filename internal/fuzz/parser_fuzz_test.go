package fuzztests

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"unsure/internal/codegen"
	"unsure/internal/diag"
	"unsure/internal/lexer"
	"unsure/internal/parser"
	"unsure/internal/source"
	"unsure/internal/testkit"
)

// parseTimeout bounds one input; longer means a loop in the parser.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.uns", input))

		toks, err := lexer.Tokenize(file, lexer.Options{})
		if err != nil {
			return
		}

		done := make(chan error, 1)
		go func() {
			bag := diag.NewBag(8)
			prog, perr := parser.ParseFile(file, toks, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
			if perr != nil {
				if bag.Len() != 1 {
					done <- fmt.Errorf("syntax error %v produced %d diagnostics", perr, bag.Len())
					return
				}
				done <- nil
				return
			}
			if err := testkit.CheckSpanInvariants(prog); err != nil {
				done <- err
				return
			}
			// генератор либо принимает дерево, либо отказывает явно
			if _, gerr := codegen.Generate(prog, codegen.DefaultOptions()); gerr != nil && !errors.Is(gerr, codegen.ErrUnsupportedNode) {
				done <- gerr
				return
			}
			done <- nil
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("input %q: %v", truncateForLog(input, 200), err)
			}
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}
