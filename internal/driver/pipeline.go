package driver

import (
	"context"
	"fmt"
	"time"

	"unsure/internal/ast"
	"unsure/internal/codegen"
	"unsure/internal/diag"
	"unsure/internal/lexer"
	"unsure/internal/observ"
	"unsure/internal/parser"
	"unsure/internal/source"
	"unsure/internal/token"
	"unsure/internal/trace"
)

// pipeline — проход по одному файлу: lex → parse → codegen.
type pipeline struct {
	ctx      context.Context
	file     *source.File
	bag      *diag.Bag
	timer    *observ.Timer
	observer FileObserver
	parent   uint64
}

// phase wraps fn with a trace span, a timer entry and observer events.
func (p *pipeline) phase(stage Stage, fn func() (string, error)) error {
	if err := p.ctx.Err(); err != nil {
		return err
	}
	span := trace.Begin(trace.FromContext(p.ctx), trace.ScopePass, string(stage), p.parent)
	done := p.timer.Track(string(stage))
	p.observer.emit(FileEvent{Path: p.file.Path, Stage: stage, Status: FileStarted})

	start := time.Now()
	note, err := fn()
	elapsed := time.Since(start)

	status := FileFinished
	if err != nil {
		span.Fail()
		status = FileFailed
		note = err.Error()
	}
	done(note)
	span.End(note)
	p.observer.emit(FileEvent{Path: p.file.Path, Stage: stage, Status: status, Elapsed: elapsed, Err: err})
	return err
}

func (p *pipeline) reporter() diag.Reporter {
	return diag.BagReporter{Bag: p.bag}
}

func (p *pipeline) lex() ([]token.Token, error) {
	var toks []token.Token
	err := p.phase(StageLex, func() (string, error) {
		var err error
		toks, err = lexer.Tokenize(p.file, lexer.Options{Reporter: p.reporter()})
		return fmt.Sprintf("%d tokens", len(toks)), err
	})
	return toks, err
}

func (p *pipeline) parse(toks []token.Token) (*ast.Program, error) {
	var prog *ast.Program
	err := p.phase(StageParse, func() (string, error) {
		var err error
		prog, err = parser.ParseFile(p.file, toks, parser.Options{Reporter: p.reporter()})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d statements", len(prog.Statements)), nil
	})
	return prog, err
}

func (p *pipeline) generate(prog *ast.Program, opts codegen.Options) (string, error) {
	var out string
	err := p.phase(StageCodegen, func() (string, error) {
		var err error
		out, err = codegen.Generate(prog, opts)
		if err != nil {
			diag.ReportErr(p.reporter(), err, diag.GenUnsupportedNode)
			return "", err
		}
		return fmt.Sprintf("%d bytes", len(out)), nil
	})
	return out, err
}

// userError reports whether err is a source problem already sitting in the
// bag, as opposed to a compiler failure the caller must see.
func userError(err error) bool {
	_, ok := diag.AsSyntaxError(err)
	return ok
}
