// Package codegen lowers a parsed program to JavaScript that runs on top of
// the unsure runtime library.
package codegen

import (
	"errors"
	"fmt"
	"strings"

	"unsure/internal/ast"
	"unsure/internal/rtlib"
)

// ErrUnsupportedNode is wrapped by every UnsupportedNodeError.
var ErrUnsupportedNode = errors.New("unsupported AST node")

// UnsupportedNodeError means the generator met a node it cannot lower. This is
// a compiler defect or an unfinished feature, not a user error.
type UnsupportedNodeError struct {
	Kind   string
	Detail string
}

func (e *UnsupportedNodeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("AST nodes of type %s are not supported: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("AST nodes of type %s are not supported", e.Kind)
}

func (e *UnsupportedNodeError) Unwrap() error { return ErrUnsupportedNode }

// Options control the runtime binding of the generated module.
type Options struct {
	Runtime string             // module specifier of the runtime library
	Module  rtlib.ModuleFormat // esm | cjs
	Debug   bool               // emit the $__debug__ slot and its epilogue
}

func DefaultOptions() Options {
	cfg := rtlib.DefaultConfig()
	return Options{Runtime: cfg.Runtime, Module: cfg.Module, Debug: cfg.Debug}
}

func (o Options) config() rtlib.Config {
	return rtlib.Config{Runtime: o.Runtime, Module: o.Module, Debug: o.Debug}
}

// Generate renders prog as a complete module: prelude, statements, epilogue.
// On error nothing is returned.
func Generate(prog *ast.Program, opts Options) (string, error) {
	body, err := GenerateBody(prog)
	if err != nil {
		return "", err
	}
	cfg := opts.config()
	return rtlib.Prelude(cfg) + body + rtlib.Epilogue(cfg), nil
}

// GenerateBody renders only the statements of prog, joined by ';'.
func GenerateBody(prog *ast.Program) (string, error) {
	if prog == nil || prog.Builder == nil {
		return "", nil
	}
	g := &generator{b: prog.Builder}
	if err := g.stmts(prog.Statements); err != nil {
		return "", err
	}
	return g.out.String(), nil
}

type generator struct {
	b   *ast.Builder
	out strings.Builder
}

func (g *generator) write(parts ...string) {
	for _, p := range parts {
		g.out.WriteString(p)
	}
}

func unsupported(kind fmt.Stringer, format string, args ...any) error {
	return &UnsupportedNodeError{Kind: kind.String(), Detail: fmt.Sprintf(format, args...)}
}
