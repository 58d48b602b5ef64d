package driver

import (
	"context"

	"unsure/internal/ast"
	"unsure/internal/diag"
	"unsure/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Program *ast.Program // nil when the file has a syntax error
	Bag     *diag.Bag
}

// Parse lexes and parses the file at path. Syntax errors land in Bag;
// I/O failures and internal compiler errors are returned.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	res := &ParseResult{FileSet: fs, File: file, Bag: diag.NewBag(maxDiagnostics)}

	p := &pipeline{ctx: context.Background(), file: file, bag: res.Bag}
	res.Program, err = parseFile(p)
	return res, err
}

func parseFile(p *pipeline) (*ast.Program, error) {
	toks, err := p.lex()
	if err != nil {
		return nil, dropUserError(err)
	}
	prog, err := p.parse(toks)
	if err != nil {
		return nil, dropUserError(err)
	}
	return prog, nil
}

func dropUserError(err error) error {
	if userError(err) {
		return nil
	}
	return err
}
