package driver

import (
	"context"
	"time"

	"unsure/internal/ast"
	"unsure/internal/codegen"
	"unsure/internal/diag"
	"unsure/internal/observ"
	"unsure/internal/source"
	"unsure/internal/trace"
	"unsure/internal/version"
)

// CompileOptions configures file and directory compilation.
type CompileOptions struct {
	Codegen        codegen.Options
	MaxDiagnostics int
	EnableTimings  bool
	Cache          *DiskCache   // nil disables caching
	Jobs           int          // directory mode; <= 0 means GOMAXPROCS
	Observer       FileObserver // stage events per file
}

type CompileResult struct {
	FileSet *source.FileSet
	File    *source.File
	Program *ast.Program // nil on syntax errors and cache hits
	Output  string       // empty when Bag has errors
	Cached  bool
	Bag     *diag.Bag
	Timing  *observ.Report
}

// Compile turns the file at path into a JavaScript module. Syntax errors
// are reported through Bag. The returned error is reserved for I/O failures
// and compiler defects (internal errors, unsupported nodes).
func Compile(ctx context.Context, path string, opts CompileOptions) (*CompileResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "compile", trace.ParentID(ctx)).
		WithExtra("path", path)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		span.Fail()
		return nil, err
	}
	return compileLoaded(ctx, span, fs, fs.Get(fileID), opts)
}

// CompileSource is Compile for in-memory text (REPL lines, -c snippets);
// name is the path shown in diagnostics.
func CompileSource(ctx context.Context, name, src string, opts CompileOptions) (*CompileResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if name == "" {
		name = inputName
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "compile", trace.ParentID(ctx)).
		WithExtra("path", name)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	// кэш для виртуальных входов не нужен
	opts.Cache = nil
	fs := source.NewFileSet()
	return compileLoaded(ctx, span, fs, fs.Get(fs.AddVirtual(name, []byte(src))), opts)
}

func compileLoaded(ctx context.Context, span *trace.Span, fs *source.FileSet, file *source.File, opts CompileOptions) (*CompileResult, error) {
	res := &CompileResult{FileSet: fs, File: file, Bag: diag.NewBag(opts.MaxDiagnostics)}

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	out, err := compileFile(ctx, file, opts, res.Bag, timer, span.ID())
	res.Program, res.Output, res.Cached = out.program, out.output, out.cached
	if err != nil || res.Bag.HasErrors() {
		span.Fail()
	}
	if timer != nil {
		report := timer.Report()
		res.Timing = &report
		appendTimingDiagnostic(res.Bag, timingPayload{Kind: "compile", Path: file.Path, TotalMS: report.TotalMS, Phases: report.Phases})
	}
	return res, err
}

type compileOutcome struct {
	program *ast.Program
	output  string
	cached  bool
}

// compileFile is the shared per-file body of Compile and CompileDir.
func compileFile(ctx context.Context, file *source.File, opts CompileOptions, bag *diag.Bag, timer *observ.Timer, parent uint64) (compileOutcome, error) {
	var out compileOutcome
	tracer := trace.FromContext(ctx)

	var key Digest
	if opts.Cache != nil {
		key = cacheKey(file.Hash, opts.Codegen)
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			// битая запись кэша — просто компилируем заново
			trace.Point(tracer, trace.ScopeModule, "cache", "read failed: "+err.Error(), parent)
		case hit:
			trace.Point(tracer, trace.ScopeModule, "cache", "hit "+key.String()[:12], parent)
			opts.Observer.emit(FileEvent{Path: file.Path, Status: FileCached})
			out.output, out.cached = payload.Output, true
			return out, nil
		}
	}

	p := &pipeline{ctx: ctx, file: file, bag: bag, timer: timer, observer: opts.Observer, parent: parent}
	prog, err := parseFile(p)
	if err != nil || prog == nil {
		return out, err
	}
	out.program = prog

	js, err := p.generate(prog, opts.Codegen)
	if err != nil {
		return out, err
	}
	out.output = js

	if opts.Cache != nil {
		payload := &DiskPayload{Path: file.Path, Compiler: version.Version, Output: js, Created: time.Now().UTC()}
		if err := opts.Cache.Put(key, payload); err != nil {
			trace.Point(tracer, trace.ScopeModule, "cache", "write failed: "+err.Error(), parent)
		}
	}
	return out, nil
}
