// Package driver runs the compiler pipeline (lex, parse, codegen) over
// strings, single files and whole directories.
package driver

import (
	"unsure/internal/ast"
	"unsure/internal/codegen"
	"unsure/internal/lexer"
	"unsure/internal/parser"
	"unsure/internal/source"
	"unsure/internal/token"
)

// inputName is the path reported for in-memory sources.
const inputName = "<input>"

func virtualFile(src string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual(inputName, []byte(src)))
}

// TokenizeString splits src into tokens, whitespace included, without EOF.
func TokenizeString(src string) ([]token.Token, error) {
	return lexer.Tokenize(virtualFile(src), lexer.Options{})
}

// ParseString parses src into a Program. The first syntax problem is
// returned as *diag.SyntaxError.
func ParseString(src string) (*ast.Program, error) {
	file := virtualFile(src)
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		return nil, err
	}
	return parser.ParseFile(file, toks, parser.Options{})
}

// Generate lowers prog to a JavaScript module.
func Generate(prog *ast.Program, opts codegen.Options) (string, error) {
	return codegen.Generate(prog, opts)
}

// CompileString is ParseString followed by Generate.
func CompileString(src string, opts codegen.Options) (string, error) {
	prog, err := ParseString(src)
	if err != nil {
		return "", err
	}
	return Generate(prog, opts)
}
