package driver

import (
	"unsure/internal/diag"
	"unsure/internal/lexer"
	"unsure/internal/source"
	"unsure/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token // заканчивается EOF, если лексер дошёл до конца
	Bag     *diag.Bag
}

// Tokenize lexes the file at path. A lexical error ends the token list and
// lands in Bag; only I/O problems are returned as errors.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokenizeWithEOF(file, bag),
		Bag:     bag,
	}, nil
}

func tokenizeWithEOF(file *source.File, bag *diag.Bag) []token.Token {
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	var tokens []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			// лексер уже отправил ошибку в bag
			return tokens
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}
